// Package ristretto is an in-process cachex.Backend on dgraph-io/ristretto.
// Values are stored as-is (no serialization), so the negative-cache
// placeholder keeps its identity without framing.
package ristretto

import (
	"context"
	"errors"
	"time"

	rc "github.com/dgraph-io/ristretto"

	"github.com/unkn0wn-root/cachex"
)

type Backend struct {
	c    *rc.Cache
	cost func(value any) int64
	wait bool
}

var _ cachex.Backend = (*Backend)(nil)

type Config struct {
	NumCounters int64
	MaxCost     int64
	BufferItems int64
	Metrics     bool

	// Cost of one entry; nil => 1 per entry, MaxCost is then an item count.
	// Ristretto's internal per-item overhead is never added on top.
	Cost func(value any) int64
	// WaitOnWrite blocks writes until ristretto applied them, so a read
	// right after a write observes it. Costs write throughput.
	WaitOnWrite bool
}

func New(cfg Config) (*Backend, error) {
	if cfg.NumCounters <= 0 || cfg.MaxCost <= 0 || cfg.BufferItems <= 0 {
		return nil, errors.New("ristretto: invalid config")
	}
	c, err := rc.NewCache(&rc.Config{
		NumCounters: cfg.NumCounters,
		MaxCost:     cfg.MaxCost,
		BufferItems: cfg.BufferItems,
		Metrics:     cfg.Metrics,

		IgnoreInternalCost: true,
	})
	if err != nil {
		return nil, err
	}
	cost := cfg.Cost
	if cost == nil {
		cost = func(any) int64 { return 1 }
	}
	return &Backend{c: c, cost: cost, wait: cfg.WaitOnWrite}, nil
}

func (b *Backend) Read(_ context.Context, key string) (any, error) {
	v, ok := b.c.Get(key)
	if !ok {
		return nil, nil
	}
	return v, nil
}

func (b *Backend) ReadMany(_ context.Context, keys []string) (map[string]any, error) {
	out := make(map[string]any, len(keys))
	for _, k := range keys {
		if v, ok := b.c.Get(k); ok && v != nil {
			out[k] = v
		}
	}
	return out, nil
}

// Write stores value; ttl <= 0 means no expiry. A write dropped by ristretto's
// admission policy is not an error: a cache may decline to keep anything.
func (b *Backend) Write(_ context.Context, key string, value any, ttl time.Duration) error {
	b.set(key, value, ttl)
	if b.wait {
		b.c.Wait()
	}
	return nil
}

func (b *Backend) WriteMany(_ context.Context, items map[string]any, ttl time.Duration) error {
	for k, v := range items {
		b.set(k, v, ttl)
	}
	if b.wait {
		b.c.Wait()
	}
	return nil
}

func (b *Backend) set(key string, value any, ttl time.Duration) {
	if ttl < 0 {
		ttl = 0 // ristretto rejects negative TTLs; 0 is "no expiry"
	}
	b.c.SetWithTTL(key, value, b.cost(value), ttl)
}

func (b *Backend) Remove(_ context.Context, keys ...string) error {
	for _, k := range keys {
		b.c.Del(k)
	}
	return nil
}

func (b *Backend) Close(_ context.Context) error {
	b.c.Wait()
	b.c.Close()
	return nil
}

// Metrics exposes ristretto's counters (nil unless Config.Metrics is set).
func (b *Backend) Metrics() *rc.Metrics { return b.c.Metrics }
