package audit

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/status-im/backoff-common/backoff"
)

// RedisClient defines the redis operations the audit ledger needs
type RedisClient interface {
	HSetNX(ctx context.Context, key, field string, value interface{}) *redis.BoolCmd
	HGet(ctx context.Context, key, field string) *redis.StringCmd
	Expire(ctx context.Context, key string, ttl time.Duration) *redis.BoolCmd
	Ping(ctx context.Context) *redis.StatusCmd
	Close() error
}

// Ensure redisClient implements RedisClient
var _ RedisClient = (*redisClient)(nil)

// redisClient wraps redis.Client to implement RedisClient
type redisClient struct {
	client *redis.Client
	logger backoff.Logger
}

// ClientOption is a functional option for configuring the redis client
type ClientOption func(*redisClient)

// WithClientLogger sets the logger for the redis client
func WithClientLogger(logger backoff.Logger) ClientOption {
	return func(r *redisClient) {
		r.logger = logger
	}
}

// NewRedisClient connects to the audit ledger at the given redis URL
func NewRedisClient(cfg *Config, opts ...ClientOption) (RedisClient, error) {
	cfg.ApplyDefaults()

	parsedURL, err := url.Parse(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse audit redis URL: %w", err)
	}

	host := parsedURL.Hostname()
	port := parsedURL.Port()
	if port == "" {
		port = "6379"
	}

	redisOpts := &redis.Options{
		Addr:         fmt.Sprintf("%s:%s", host, port),
		DialTimeout:  cfg.Connection.ConnectTimeout,
		ReadTimeout:  cfg.Connection.ReadTimeout,
		WriteTimeout: cfg.Connection.SendTimeout,
	}

	if parsedURL.User != nil {
		if password, ok := parsedURL.User.Password(); ok {
			redisOpts.Password = password
		}
	}

	if parsedURL.Path != "" && len(parsedURL.Path) > 1 {
		if db, err := strconv.Atoi(parsedURL.Path[1:]); err == nil {
			redisOpts.DB = db
		}
	}

	client := redis.NewClient(redisOpts)

	r := &redisClient{
		client: client,
		logger: backoff.NoopLogger{},
	}

	for _, opt := range opts {
		opt(r)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Connection.ConnectTimeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to audit redis at %s: %w", redisOpts.Addr, err)
	}

	r.logger.Info("Connected to audit redis",
		"address", redisOpts.Addr,
		"connect_timeout", cfg.Connection.ConnectTimeout)

	return r, nil
}

func (r *redisClient) HSetNX(ctx context.Context, key, field string, value interface{}) *redis.BoolCmd {
	return r.client.HSetNX(ctx, key, field, value)
}

func (r *redisClient) HGet(ctx context.Context, key, field string) *redis.StringCmd {
	return r.client.HGet(ctx, key, field)
}

func (r *redisClient) Expire(ctx context.Context, key string, ttl time.Duration) *redis.BoolCmd {
	return r.client.Expire(ctx, key, ttl)
}

func (r *redisClient) Ping(ctx context.Context) *redis.StatusCmd {
	return r.client.Ping(ctx)
}

func (r *redisClient) Close() error {
	return r.client.Close()
}
