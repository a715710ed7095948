// Package ordinal derives stable integer client identities from pod names.
package ordinal

import (
	"encoding/binary"
	"os"
	"regexp"
	"strconv"

	"golang.org/x/crypto/blake2b"
)

var ordinalRegex = regexp.MustCompile(`.*-(\d+)$`)

// FromPodName extracts the StatefulSet ordinal from a pod name: "app-3" -> 3.
// Names without a trailing ordinal fall back to a stable hash; the identity
// stays deterministic across restarts but is no longer dense in
// [0, replicas), so SlotsM must cover the hash range modulo SlotsM instead.
func FromPodName(name string) uint64 {
	if m := ordinalRegex.FindStringSubmatch(name); m != nil {
		if n, err := strconv.ParseUint(m[1], 10, 64); err == nil {
			return n
		}
	}
	return stableHash(name)
}

// FromEnv derives the identity from the POD_NAME environment variable,
// the conventional downward-API injection for StatefulSet pods.
func FromEnv() uint64 {
	return FromPodName(os.Getenv("POD_NAME"))
}

// stableHash maps a name to a deterministic 32-bit identity.
func stableHash(name string) uint64 {
	if name == "" {
		name = "unknown"
	}
	sum := blake2b.Sum256([]byte(name))
	return uint64(binary.BigEndian.Uint32(sum[:4]))
}
