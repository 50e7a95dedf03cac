package ratelimit

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"
)

// Limiter decides whether one more request for key is allowed right now.
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

type memoryEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// Memory is a per-key token bucket refilling requests tokens per window.
// A key idle for a whole window has a full bucket again, so its entry is dropped.
type Memory struct {
	mu        sync.Mutex
	limiters  map[string]*memoryEntry
	limit     rate.Limit
	burst     int
	idle      time.Duration
	lastSweep time.Time
	now       func() time.Time
}

func NewMemory(requests int, window time.Duration) *Memory {
	if requests <= 0 {
		requests = 1
	}
	if window <= 0 {
		window = time.Second
	}
	return &Memory{
		limiters: make(map[string]*memoryEntry),
		limit:    rate.Every(window / time.Duration(requests)),
		burst:    requests,
		idle:     window,
		now:      time.Now,
	}
}

func (m *Memory) getLimiter(key string, now time.Time) *rate.Limiter {
	m.mu.Lock()
	defer m.mu.Unlock()

	if now.Sub(m.lastSweep) >= m.idle {
		m.sweep(now)
	}

	e, ok := m.limiters[key]
	if !ok {
		e = &memoryEntry{limiter: rate.NewLimiter(m.limit, m.burst)}
		m.limiters[key] = e
	}
	e.lastSeen = now
	return e.limiter
}

// sweep drops entries idle for at least one window. Caller holds mu.
func (m *Memory) sweep(now time.Time) {
	for key, e := range m.limiters {
		if now.Sub(e.lastSeen) >= m.idle {
			delete(m.limiters, key)
		}
	}
	m.lastSweep = now
}

// Len returns the number of tracked keys.
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.limiters)
}

func (m *Memory) Allow(_ context.Context, key string) (bool, error) {
	now := m.now()
	return m.getLimiter(key, now).AllowN(now, 1), nil
}

// Redis is a fixed-window counter shared by every process using the same server.
type Redis struct {
	client   *redis.Client
	requests int
	window   time.Duration
}

func NewRedis(client *redis.Client, requests int, window time.Duration) *Redis {
	if window <= 0 {
		window = time.Second
	}
	return &Redis{client: client, requests: requests, window: window}
}

func (r *Redis) Allow(ctx context.Context, key string) (bool, error) {
	if r.client == nil {
		return false, fmt.Errorf("redis client is nil")
	}
	redisKey := "rate_limit:" + key

	// The window key is created with its TTL before the increment, in one transaction.
	var incr *redis.IntCmd
	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.SetNX(ctx, redisKey, 0, r.window)
		incr = pipe.Incr(ctx, redisKey)
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("failed to increment rate limit: %w", err)
	}

	return incr.Val() <= int64(r.requests), nil
}

// NewRedisClient creates a client and verifies the connection.
func NewRedisClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}
	return client, nil
}
