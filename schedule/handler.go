package schedule

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/allegro/bigcache/v3"

	"github.com/status-im/backoff-common/backoff"
)

const (
	maxTableIDs   = 4096
	maxTableSteps = 256
)

// Handler serves rendered schedule tables as JSON for dashboards and
// debugging. Rendered payloads are cached; the cache holds derived output
// only and never feeds back into the schedule computation.
type Handler struct {
	backoff *backoff.Backoff
	cache   *bigcache.BigCache
	logger  backoff.Logger
}

// HandlerOption is a functional option for configuring Handler
type HandlerOption func(*Handler)

// WithLogger sets the logger for Handler
func WithLogger(logger backoff.Logger) HandlerOption {
	return func(h *Handler) {
		h.logger = logger
	}
}

// NewHandler creates a Handler for the given schedule
func NewHandler(b *backoff.Backoff, opts ...HandlerOption) (*Handler, error) {
	config := bigcache.DefaultConfig(10 * time.Minute)
	config.Verbose = false

	c, err := bigcache.New(context.Background(), config)
	if err != nil {
		return nil, err
	}

	h := &Handler{
		backoff: b,
		cache:   c,
		logger:  backoff.NoopLogger{},
	}

	for _, opt := range opts {
		opt(h)
	}

	return h, nil
}

// ServeHTTP renders the table for ?ids=0,1,2&steps=0,1,2 (with defaults
// of ids 0..7 and steps 0..5).
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ids, err := parseUints(r.URL.Query().Get("ids"), defaultIDs(), maxTableIDs)
	if err != nil {
		http.Error(w, fmt.Sprintf("bad ids: %v", err), http.StatusBadRequest)
		return
	}

	steps, err := parseInts(r.URL.Query().Get("steps"), defaultSteps(), maxTableSteps)
	if err != nil {
		http.Error(w, fmt.Sprintf("bad steps: %v", err), http.StatusBadRequest)
		return
	}

	key := h.cacheKey(ids, steps)
	if data, err := h.cache.Get(key); err == nil {
		writeJSON(w, data)
		return
	}

	data, err := json.Marshal(Table(h.backoff, ids, steps))
	if err != nil {
		http.Error(w, "rendering failed", http.StatusInternalServerError)
		return
	}

	if err := h.cache.Set(key, data); err != nil {
		h.logger.Warn("caching schedule table failed", "err", err)
	}

	writeJSON(w, data)
}

func (h *Handler) cacheKey(ids []uint64, steps []int) string {
	cfg := h.backoff.Config()

	var sb strings.Builder
	fmt.Fprintf(&sb, "%d|%d|%d|%d|", cfg.CollatzSeed, cfg.SlotsM, cfg.BaseWait, cfg.SlotDuration)
	for _, id := range ids {
		fmt.Fprintf(&sb, "%d,", id)
	}
	sb.WriteByte('|')
	for _, k := range steps {
		fmt.Fprintf(&sb, "%d,", k)
	}
	return sb.String()
}

func writeJSON(w http.ResponseWriter, data []byte) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(data)
}

func defaultIDs() []uint64 {
	ids := make([]uint64, 8)
	for i := range ids {
		ids[i] = uint64(i)
	}
	return ids
}

func defaultSteps() []int {
	steps := make([]int, 6)
	for i := range steps {
		steps[i] = i
	}
	return steps
}

func parseUints(param string, def []uint64, limit int) ([]uint64, error) {
	if param == "" {
		return def, nil
	}

	parts := strings.Split(param, ",")
	if len(parts) > limit {
		return nil, fmt.Errorf("too many values (max %d)", limit)
	}

	out := make([]uint64, 0, len(parts))
	for _, p := range parts {
		n, err := strconv.ParseUint(strings.TrimSpace(p), 10, 64)
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, nil
}

func parseInts(param string, def []int, limit int) ([]int, error) {
	if param == "" {
		return def, nil
	}

	parts := strings.Split(param, ",")
	if len(parts) > limit {
		return nil, fmt.Errorf("too many values (max %d)", limit)
	}

	out := make([]int, 0, len(parts))
	for _, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, err
		}
		if n < 0 {
			return nil, fmt.Errorf("negative step %d", n)
		}
		out = append(out, n)
	}
	return out, nil
}
