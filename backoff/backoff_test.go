package backoff

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() Config {
	return Config{
		SlotsM:       1024,
		SlotDuration: 1 * time.Millisecond,
		BaseWait:     50 * time.Millisecond,
		CollatzSeed:  27,
		Cap:          10 * time.Second,
	}
}

func TestNewValidatesConfig(t *testing.T) {
	tests := []struct {
		name  string
		cfg   Config
		field string
	}{
		{
			name:  "negative slots",
			cfg:   Config{SlotsM: -1},
			field: "slots_m",
		},
		{
			name:  "negative slot duration",
			cfg:   Config{SlotsM: 64, SlotDuration: -time.Millisecond},
			field: "slot_duration",
		},
		{
			name:  "negative base wait",
			cfg:   Config{SlotsM: 64, SlotDuration: time.Millisecond, BaseWait: -time.Second},
			field: "base_wait",
		},
		{
			name:  "negative cap",
			cfg:   Config{SlotsM: 64, SlotDuration: time.Millisecond, BaseWait: time.Millisecond, Cap: -time.Second},
			field: "cap",
		},
		{
			name:  "negative max retries",
			cfg:   Config{SlotsM: 64, SlotDuration: time.Millisecond, BaseWait: time.Millisecond, Cap: time.Second, MaxRetries: -3},
			field: "max_retries",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.cfg)
			require.Error(t, err)

			var cfgErr *ConfigError
			require.ErrorAs(t, err, &cfgErr)
			assert.Equal(t, tt.field, cfgErr.Field)
		})
	}
}

func TestNewAppliesDefaults(t *testing.T) {
	b, err := New(Config{})
	require.NoError(t, err)

	cfg := b.Config()
	assert.Equal(t, 1024, cfg.SlotsM)
	assert.Equal(t, 1*time.Millisecond, cfg.SlotDuration)
	assert.Equal(t, 50*time.Millisecond, cfg.BaseWait)
	assert.Equal(t, uint64(27), cfg.CollatzSeed)
	assert.Equal(t, 10*time.Second, cfg.Cap)
	assert.Equal(t, 0, cfg.MaxRetries)
}

func TestOffsetSlotIsBijection(t *testing.T) {
	for _, m := range []int{4, 8, 16, 32, 64, 256, 1024} {
		cfg := testConfig()
		cfg.SlotsM = m
		b, err := New(cfg)
		require.NoError(t, err)

		for _, k := range []int{0, 1, 2, 3, 5, 8, 13, 100, 1000} {
			seen := make(map[uint64]bool, m)
			for id := 0; id < m; id++ {
				slot := b.OffsetSlot(uint64(id), k)
				require.Less(t, slot, uint64(m))
				require.False(t, seen[slot], "duplicate slot %d for m=%d k=%d id=%d", slot, m, k, id)
				seen[slot] = true
			}
			require.Len(t, seen, m)
		}
	}
}

func TestOffsetSlotCollisionFreeFleet(t *testing.T) {
	// 128 replicas in 1024 slots: no two ids may share a slot at any step.
	b, err := New(testConfig())
	require.NoError(t, err)

	for k := 0; k <= 20; k++ {
		seen := make(map[uint64]uint64)
		for id := uint64(0); id < 128; id++ {
			slot := b.OffsetSlot(id, k)
			if other, ok := seen[slot]; ok {
				t.Fatalf("ids %d and %d collide on slot %d at k=%d", other, id, slot, k)
			}
			seen[slot] = id
		}
	}
}

func TestOffsetSlotPigeonholeOverflow(t *testing.T) {
	// More participants than slots must collide; the documented
	// precondition, not a bug.
	cfg := testConfig()
	cfg.SlotsM = 16
	b, err := New(cfg)
	require.NoError(t, err)

	seen := make(map[uint64]bool)
	for id := uint64(0); id < 32; id++ {
		seen[b.OffsetSlot(id, 3)] = true
	}
	assert.Less(t, len(seen), 32)
}

func TestOffsetSlotLargeIDReducedModM(t *testing.T) {
	b, err := New(testConfig())
	require.NoError(t, err)

	// id >= SlotsM is permitted and behaves like id mod SlotsM.
	assert.Equal(t, b.OffsetSlot(3, 7), b.OffsetSlot(3+1024, 7))
	assert.Less(t, b.OffsetSlot(math.MaxUint64, 7), uint64(1024))
}

func TestWaitDurationDeterministic(t *testing.T) {
	for _, id := range []uint64{0, 1, 7, 13} {
		for _, k := range []int{0, 1, 2, 5, 10, 15} {
			b1, err := New(testConfig())
			require.NoError(t, err)
			b2, err := New(testConfig())
			require.NoError(t, err)

			w1, err := b1.WaitDuration(id, k)
			require.NoError(t, err)
			w2, err := b2.WaitDuration(id, k)
			require.NoError(t, err)

			assert.Equal(t, w1, w2, "id=%d k=%d", id, k)
		}
	}
}

func TestWaitDurationCapAndMonotonic(t *testing.T) {
	b, err := New(testConfig())
	require.NoError(t, err)

	prev := time.Duration(-1)
	for k := 0; k <= 100; k++ {
		wait, err := b.WaitDuration(7, k)
		require.NoError(t, err)

		assert.GreaterOrEqual(t, wait, time.Duration(0))
		assert.LessOrEqual(t, wait, b.Config().Cap)

		// Non-decreasing growth dominates the sub-cap regime; once the
		// cap is hit the wait stays pinned there.
		if prev == b.Config().Cap {
			assert.Equal(t, b.Config().Cap, wait, "k=%d", k)
		}
		prev = wait
	}
	assert.Equal(t, b.Config().Cap, prev)
}

func TestWaitDurationGrowthDominates(t *testing.T) {
	// growth(k) alone is non-decreasing and the jitter term is bounded by
	// SlotsM*SlotDuration, so growth(k+1) >= growth(k)*2 overtakes any
	// jitter delta once 2^k*BaseWait exceeds the jitter bound.
	b, err := New(testConfig())
	require.NoError(t, err)

	jitterBound := time.Duration(b.Config().SlotsM) * b.Config().SlotDuration

	prev := time.Duration(0)
	for k := 0; k <= 100; k++ {
		wait, err := b.WaitDuration(3, k)
		require.NoError(t, err)
		if prev > jitterBound {
			assert.GreaterOrEqual(t, wait, prev-jitterBound, "k=%d", k)
		}
		prev = wait
	}
}

func TestWaitDurationMonotonicWhenJitterBounded(t *testing.T) {
	// With the jitter band narrower than the smallest growth increment the
	// schedule is non-decreasing in k until it pins at the cap.
	cfg := Config{
		SlotsM:       64,
		SlotDuration: 100 * time.Microsecond, // band: 6.4ms < 50ms base
		BaseWait:     50 * time.Millisecond,
		CollatzSeed:  27,
		Cap:          10 * time.Second,
	}
	b, err := New(cfg)
	require.NoError(t, err)

	for _, id := range []uint64{0, 3, 17} {
		prev := time.Duration(0)
		for k := 0; k <= 40; k++ {
			wait, err := b.WaitDuration(id, k)
			require.NoError(t, err)
			require.GreaterOrEqual(t, wait, prev, "id=%d k=%d", id, k)
			prev = wait
		}
		require.Equal(t, cfg.Cap, prev)
	}
}

func TestWaitDurationBaseCase(t *testing.T) {
	b, err := New(testConfig())
	require.NoError(t, err)

	// k=0 is the minimal, well-defined base of the schedule.
	wait, err := b.WaitDuration(0, 0)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, wait, b.Config().BaseWait)
	assert.LessOrEqual(t, wait, b.Config().BaseWait+time.Duration(b.Config().SlotsM)*b.Config().SlotDuration)
}

func TestWaitDurationRetriesExhausted(t *testing.T) {
	cfg := testConfig()
	cfg.MaxRetries = 5
	b, err := New(cfg)
	require.NoError(t, err)

	for k := 0; k < 5; k++ {
		_, err := b.WaitDuration(1, k)
		require.NoError(t, err, "k=%d", k)
	}

	_, err = b.WaitDuration(1, 5)
	assert.ErrorIs(t, err, ErrRetriesExhausted)
	_, err = b.WaitDuration(1, 50)
	assert.ErrorIs(t, err, ErrRetriesExhausted)
}

func TestWaitDurationConcurrentCallsAgree(t *testing.T) {
	b, err := New(testConfig())
	require.NoError(t, err)

	want, err := b.WaitDuration(13, 4)
	require.NoError(t, err)

	done := make(chan time.Duration, 32)
	for i := 0; i < 32; i++ {
		go func() {
			w, _ := b.WaitDuration(13, 4)
			done <- w
		}()
	}
	for i := 0; i < 32; i++ {
		assert.Equal(t, want, <-done)
	}
}

func TestWaitForSlotMatchesWaitDuration(t *testing.T) {
	b, err := New(testConfig())
	require.NoError(t, err)

	slot := b.OffsetSlot(9, 3)
	want, err := b.WaitDuration(9, 3)
	require.NoError(t, err)
	assert.Equal(t, want, b.WaitForSlot(slot, 3))
}

func TestExponentialSaturates(t *testing.T) {
	assert.Equal(t, 50*time.Millisecond, exponential(50*time.Millisecond, 0))
	assert.Equal(t, 400*time.Millisecond, exponential(50*time.Millisecond, 3))
	assert.Equal(t, 50*time.Millisecond, exponential(50*time.Millisecond, -1))
	assert.Equal(t, time.Duration(0), exponential(0, 10))

	// Far past the shift limit the result pins at MaxInt64 instead of
	// wrapping negative.
	assert.Equal(t, time.Duration(math.MaxInt64), exponential(time.Hour, 1000))
}
