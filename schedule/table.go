// Package schedule renders the deterministic backoff schedule for
// inspection: per-step coefficients, slot assignments and waits.
package schedule

import (
	"fmt"
	"strings"

	"github.com/status-im/backoff-common/backoff"
)

// Row is one identity's slot and wait at a retry step
type Row struct {
	ID          uint64  `json:"id"`
	Slot        uint64  `json:"slot"`
	WaitSeconds float64 `json:"wait_seconds"`
}

// StepTable holds the affine pair and per-identity rows for one retry step
type StepTable struct {
	K    int    `json:"k"`
	A    uint64 `json:"a"`
	B    uint64 `json:"b"`
	Rows []Row  `json:"rows"`
}

// OffsetTable is the rendered schedule for a set of identities and steps
type OffsetTable struct {
	SlotsM      int         `json:"slots_m"`
	CollatzSeed uint64      `json:"collatz_seed"`
	Steps       []StepTable `json:"steps"`
}

// Table renders the schedule for ids at the given retry steps. Waits are
// computed through the slot math directly, so steps beyond a configured
// MaxRetries are still shown.
func Table(b *backoff.Backoff, ids []uint64, steps []int) *OffsetTable {
	cfg := b.Config()
	t := &OffsetTable{
		SlotsM:      cfg.SlotsM,
		CollatzSeed: cfg.CollatzSeed,
		Steps:       make([]StepTable, 0, len(steps)),
	}

	for _, k := range steps {
		a, bk := b.Coefficients(k)
		st := StepTable{K: k, A: a, B: bk, Rows: make([]Row, 0, len(ids))}

		for _, id := range ids {
			slot := b.OffsetSlot(id, k)
			st.Rows = append(st.Rows, Row{
				ID:          id,
				Slot:        slot,
				WaitSeconds: b.WaitForSlot(slot, k).Seconds(),
			})
		}

		t.Steps = append(t.Steps, st)
	}

	return t
}

// String formats the table for terminal output.
func (t *OffsetTable) String() string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "Collatz-seeded offsets + waits (slots_m=%d seed=%d)\n\n", t.SlotsM, t.CollatzSeed)
	for _, st := range t.Steps {
		fmt.Fprintf(&sb, "retry k=%d -> a=%d, b=%d\n", st.K, st.A, st.B)
		for _, row := range st.Rows {
			fmt.Fprintf(&sb, "  id=%3d slot=%4d wait=%.4fs\n", row.ID, row.Slot, row.WaitSeconds)
		}
		sb.WriteByte('\n')
	}

	return sb.String()
}
