package audit

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/status-im/backoff-common/backoff/mock"
)

// fakeRedis implements RedisClient over an in-memory hash map
type fakeRedis struct {
	mu      sync.Mutex
	hashes  map[string]map[string]string
	failing bool
}

func newFakeRedis() *fakeRedis {
	return &fakeRedis{hashes: make(map[string]map[string]string)}
}

func (f *fakeRedis) HSetNX(ctx context.Context, key, field string, value interface{}) *redis.BoolCmd {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.failing {
		return redis.NewBoolResult(false, errors.New("connection refused"))
	}

	h, ok := f.hashes[key]
	if !ok {
		h = make(map[string]string)
		f.hashes[key] = h
	}
	if _, exists := h[field]; exists {
		return redis.NewBoolResult(false, nil)
	}
	h[field] = value.(string)
	return redis.NewBoolResult(true, nil)
}

func (f *fakeRedis) HGet(ctx context.Context, key, field string) *redis.StringCmd {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.failing {
		return redis.NewStringResult("", errors.New("connection refused"))
	}
	if v, ok := f.hashes[key][field]; ok {
		return redis.NewStringResult(v, nil)
	}
	return redis.NewStringResult("", redis.Nil)
}

func (f *fakeRedis) Expire(ctx context.Context, key string, ttl time.Duration) *redis.BoolCmd {
	return redis.NewBoolResult(true, nil)
}

func (f *fakeRedis) Ping(ctx context.Context) *redis.StatusCmd {
	return redis.NewStatusResult("PONG", nil)
}

func (f *fakeRedis) Close() error { return nil }

// countingLogger counts Info calls, for the flusher test
type countingLogger struct {
	infos int32
}

func (l *countingLogger) Debug(msg string, keysAndValues ...interface{}) {}
func (l *countingLogger) Info(msg string, keysAndValues ...interface{}) {
	atomic.AddInt32(&l.infos, 1)
}
func (l *countingLogger) Warn(msg string, keysAndValues ...interface{})  {}
func (l *countingLogger) Error(msg string, keysAndValues ...interface{}) {}

func TestRecordClaimLifecycle(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	metrics := mock.NewMockMetricsRecorder(ctrl)
	metrics.EXPECT().RecordAuditClaim("claimed").Times(2)
	metrics.EXPECT().RecordAuditClaim("held").Times(1)
	metrics.EXPECT().RecordAuditClaim("collision").Times(1)
	metrics.EXPECT().RecordAuditCollision().Times(1)

	r := NewRecorder(&Config{}, newFakeRedis(), WithMetrics(metrics))
	ctx := context.Background()

	// id 3 claims slot 334 at k=5, then re-reports it.
	assert.Equal(t, ClaimClaimed, r.RecordClaim(ctx, 27, 5, 334, 3))
	assert.Equal(t, ClaimHeld, r.RecordClaim(ctx, 27, 5, 334, 3))

	// Another id on the same slot is a collision; same slot at another
	// step is an independent claim.
	assert.Equal(t, ClaimCollision, r.RecordClaim(ctx, 27, 5, 334, 9))
	assert.Equal(t, ClaimClaimed, r.RecordClaim(ctx, 27, 6, 334, 9))

	assert.Equal(t, uint64(2), r.Claims())
	assert.Equal(t, uint64(1), r.Collisions())
}

func TestRecordClaimLedgerDown(t *testing.T) {
	fake := newFakeRedis()
	fake.failing = true

	r := NewRecorder(&Config{}, fake)

	// A dead ledger must degrade to "nothing verified", never an error.
	status := r.RecordClaim(context.Background(), 27, 0, 5, 1)
	assert.Equal(t, ClaimError, status)
	assert.Zero(t, r.Claims())
	assert.Zero(t, r.Collisions())
}

func TestStatsFlusher(t *testing.T) {
	logger := &countingLogger{}
	cfg := &Config{FlushInterval: 20 * time.Millisecond}
	r := NewRecorder(cfg, newFakeRedis(), WithLogger(logger))

	r.StartStatsFlusher()
	assert.True(t, r.IsFlusherRunning())
	r.StartStatsFlusher() // second start is a no-op

	time.Sleep(70 * time.Millisecond)

	r.StopStatsFlusher()
	assert.False(t, r.IsFlusherRunning())
	assert.GreaterOrEqual(t, atomic.LoadInt32(&logger.infos), int32(2))

	flushed := atomic.LoadInt32(&logger.infos)
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, flushed, atomic.LoadInt32(&logger.infos))
}

func TestStopStatsFlusherBeforeStart(t *testing.T) {
	r := NewRecorder(&Config{}, newFakeRedis())
	r.StopStatsFlusher() // must not panic
	assert.False(t, r.IsFlusherRunning())
}
