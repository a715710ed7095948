package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/status-im/backoff-common/audit"
	"github.com/status-im/backoff-common/backoff"
	"github.com/status-im/backoff-common/metrics"
	"github.com/status-im/backoff-common/ordinal"
	"github.com/status-im/backoff-common/probe"
	"github.com/status-im/backoff-common/schedule"
)

// stdLogger adapts the standard library logger to backoff.Logger
type stdLogger struct{}

func (stdLogger) Debug(msg string, keysAndValues ...interface{}) {}
func (stdLogger) Info(msg string, keysAndValues ...interface{}) {
	log.Println(append([]interface{}{"INFO", msg}, keysAndValues...)...)
}
func (stdLogger) Warn(msg string, keysAndValues ...interface{}) {
	log.Println(append([]interface{}{"WARN", msg}, keysAndValues...)...)
}
func (stdLogger) Error(msg string, keysAndValues ...interface{}) {
	log.Println(append([]interface{}{"ERROR", msg}, keysAndValues...)...)
}

func main() {
	podName := getenv("POD_NAME", "collatz-demo-0")
	id := ordinal.FromPodName(podName)

	cfg := backoff.LoadFromEnv()
	logger := stdLogger{}
	recorder := metrics.New(metrics.Config{Namespace: "demo_client"})

	b, err := backoff.New(cfg, backoff.WithLogger(logger), backoff.WithMetrics(recorder))
	if err != nil {
		log.Fatal("invalid backoff configuration: ", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	opts := probe.DefaultOptions()
	opts.LogPrefix = "demo"
	opts.TargetURL = getenv("TARGET_URL", opts.TargetURL)
	opts.ProbeTimeout = envSeconds("PROBE_TIMEOUT", opts.ProbeTimeout)
	opts.ConnectionTimeout = opts.ProbeTimeout
	opts.HybridProb = envFloat("HYBRID_RNG_PROB", 0)
	opts.HybridSeed = int64(envInt("HYBRID_RNG_SEED", 1337))

	p := probe.NewProber(opts, b, id, nil, nil)

	if url := os.Getenv("AUDIT_REDIS_URL"); url != "" {
		auditCfg := &audit.Config{URL: url}
		client, err := audit.NewRedisClient(auditCfg, audit.WithClientLogger(logger))
		if err != nil {
			// The audit is advisory; run without it.
			log.Println("WARN audit ledger unavailable:", err)
		} else {
			defer func() { _ = client.Close() }()

			rec := audit.NewRecorder(auditCfg, client,
				audit.WithLogger(logger), audit.WithMetrics(recorder))
			rec.StartStatsFlusher()
			defer rec.StopStatsFlusher()

			p.SlotObserver = func(k int, slot uint64) {
				rec.RecordClaim(ctx, cfg.CollatzSeed, k, slot, id)
			}
		}
	}

	startDebugServer(b)

	log.Printf("boot: pod=%s id=%d url=%s slots_m=%d seed=%d",
		podName, id, opts.TargetURL, cfg.SlotsM, cfg.CollatzSeed)

	k, err := p.Run(ctx)
	switch {
	case err == nil:
		log.Printf("ok: pod=%s reached target at retry=%d", podName, k)
	case errors.Is(err, backoff.ErrRetriesExhausted):
		log.Printf("fail: pod=%s exhausted retries at k=%d", podName, k)
		os.Exit(2)
	default:
		log.Printf("fail: pod=%s aborted: %v", podName, err)
		os.Exit(1)
	}
}

// startDebugServer serves /metrics and the /schedule table in the background.
func startDebugServer(b *backoff.Backoff) {
	addr := getenv("METRICS_ADDR", ":9090")

	scheduleHandler, err := schedule.NewHandler(b, schedule.WithLogger(stdLogger{}))
	if err != nil {
		log.Println("WARN schedule handler unavailable:", err)
		return
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.Handle("/schedule", scheduleHandler)

	go func() {
		if err := http.ListenAndServe(addr, mux); err != nil {
			log.Println("WARN debug server stopped:", err)
		}
	}()
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func envFloat(key string, def float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return def
	}
	return f
}

func envSeconds(key string, def time.Duration) time.Duration {
	f := envFloat(key, def.Seconds())
	return time.Duration(f * float64(time.Second))
}
