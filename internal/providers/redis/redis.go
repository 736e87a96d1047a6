package redis

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// ErrCacheMiss is returned by GetJSON when the key does not exist.
var ErrCacheMiss = errors.New("cache miss")

// Cache is the subset of Redis the services depend on.
type Cache interface {
	GetJSON(ctx context.Context, key string, dest interface{}) error
	SetJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	DeleteByPattern(ctx context.Context, pattern string) (int, error)
}

type RedisProvider struct {
	Client *redis.Client
	URL    string
	logger *zap.SugaredLogger
	ttl    time.Duration
	cancel context.CancelFunc
}

func NewRedisProvider(redisURL string, logger *zap.Logger, ttl time.Duration) *RedisProvider {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		opts = &redis.Options{
			Addr: redisURL,
			DB:   0,
		}
	}
	opts.MaxRetries = 3
	opts.MinRetryBackoff = 100 * time.Millisecond
	opts.MaxRetryBackoff = 500 * time.Millisecond

	client := redis.NewClient(opts)

	ctx, cancel := context.WithCancel(context.Background())
	provider := &RedisProvider{
		Client: client,
		URL:    redisURL,
		logger: logger.Sugar(),
		ttl:    ttl,
		cancel: cancel,
	}

	client.AddHook(&loggerHook{provider: provider})

	go provider.startConnectionMonitor(ctx)

	if err := client.Ping(ctx).Err(); err != nil {
		provider.logger.Errorw("Redis connection failed at startup", "error", err)
	} else {
		provider.logger.Infow("Redis connected",
			"url", redisURL,
			"db", opts.DB,
			"default_ttl", ttl.String(),
		)
	}

	return provider
}

func (r *RedisProvider) GetJSON(ctx context.Context, key string, dest interface{}) error {
	data, err := r.Client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return ErrCacheMiss
	}
	if err != nil {
		return err
	}
	return json.Unmarshal(data, dest)
}

// SetJSON stores value under key. A non-positive ttl uses the provider default.
func (r *RedisProvider) SetJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = r.ttl
	}
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return r.Client.Set(ctx, key, data, ttl).Err()
}

func (r *RedisProvider) DeleteByPattern(ctx context.Context, pattern string) (int, error) {
	var cursor uint64
	deleted := 0

	for {
		keys, cur, err := r.Client.Scan(ctx, cursor, pattern, 100).Result()
		if err != nil {
			return deleted, err
		}

		if len(keys) > 0 {
			n, err := r.Client.Del(ctx, keys...).Result()
			if err != nil {
				return deleted, err
			}
			deleted += int(n)
		}

		if cur == 0 {
			return deleted, nil
		}
		cursor = cur
	}
}

func (r *RedisProvider) Close() error {
	r.cancel()
	return r.Client.Close()
}

func (r *RedisProvider) startConnectionMonitor(ctx context.Context) {
	ticker := time.NewTicker(5 * time.Second)
	defer ticker.Stop()

	wasConnected := r.Client.Ping(ctx).Err() == nil

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			err := r.Client.Ping(ctx).Err()
			switch {
			case err != nil && wasConnected:
				r.logger.Errorw("Redis disconnected", "error", err)
				wasConnected = false
			case err == nil && !wasConnected:
				r.logger.Infow("Redis reconnected", "url", r.URL)
				wasConnected = true
			}
		}
	}
}

type loggerHook struct {
	provider *RedisProvider
}

func (h *loggerHook) DialHook(next redis.DialHook) redis.DialHook {
	return func(ctx context.Context, network, addr string) (net.Conn, error) {
		conn, err := next(ctx, network, addr)
		if err != nil {
			h.provider.logger.Errorw("Redis dial failed", "network", network, "addr", addr, "error", err)
		}
		return conn, err
	}
}

func (h *loggerHook) ProcessHook(next redis.ProcessHook) redis.ProcessHook {
	return func(ctx context.Context, cmd redis.Cmder) error {
		start := time.Now()
		err := next(ctx, cmd)

		if cmd.Name() == "ping" && err == nil {
			return err
		}
		// a missing key is a normal cache miss
		if errors.Is(err, redis.Nil) {
			return err
		}

		if err != nil {
			h.provider.logger.Errorw("Redis command failed",
				"command", cmd.Name(),
				"duration_ms", time.Since(start).Milliseconds(),
				"error", err,
			)
		} else {
			h.provider.logger.Debugw("Redis command executed",
				"command", cmd.Name(),
				"duration_ms", time.Since(start).Milliseconds(),
			)
		}
		return err
	}
}

func (h *loggerHook) ProcessPipelineHook(next redis.ProcessPipelineHook) redis.ProcessPipelineHook {
	return func(ctx context.Context, cmds []redis.Cmder) error {
		start := time.Now()
		err := next(ctx, cmds)
		if err != nil {
			h.provider.logger.Errorw("Redis pipeline failed",
				"commands", len(cmds),
				"duration_ms", time.Since(start).Milliseconds(),
				"error", err,
			)
		}
		return err
	}
}

// NopCache never hits and never stores.
type NopCache struct{}

func (NopCache) GetJSON(context.Context, string, interface{}) error { return ErrCacheMiss }

func (NopCache) SetJSON(context.Context, string, interface{}, time.Duration) error { return nil }

func (NopCache) DeleteByPattern(context.Context, string) (int, error) { return 0, nil }
