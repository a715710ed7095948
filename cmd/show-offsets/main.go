package main

import (
	"flag"
	"fmt"
	"log"
	"strings"

	"github.com/status-im/backoff-common/backoff"
	"github.com/status-im/backoff-common/schedule"
)

func main() {
	slots := flag.Int("slots", 64, "permutation modulus (power of two recommended)")
	seed := flag.Uint64("seed", 27, "collatz seed shared across the fleet")
	ids := flag.String("ids", "0,1,2,3,7,13", "comma-separated identities to show")
	steps := flag.String("steps", "0,1,2,3,4,5", "comma-separated retry steps to show")
	flag.Parse()

	cfg := backoff.LoadFromEnv()
	cfg.SlotsM = *slots
	cfg.CollatzSeed = *seed

	b, err := backoff.New(cfg)
	if err != nil {
		log.Fatal("invalid configuration: ", err)
	}

	fmt.Print(schedule.Table(b, parseIDs(*ids), parseSteps(*steps)).String())
}

func parseIDs(s string) []uint64 {
	var out []uint64
	for _, p := range strings.Split(s, ",") {
		var n uint64
		if _, err := fmt.Sscanf(strings.TrimSpace(p), "%d", &n); err != nil {
			log.Fatalf("bad id %q", p)
		}
		out = append(out, n)
	}
	return out
}

func parseSteps(s string) []int {
	var out []int
	for _, p := range strings.Split(s, ",") {
		var n int
		if _, err := fmt.Sscanf(strings.TrimSpace(p), "%d", &n); err != nil || n < 0 {
			log.Fatalf("bad step %q", p)
		}
		out = append(out, n)
	}
	return out
}
