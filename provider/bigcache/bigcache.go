// Package bigcache is an in-process, off-heap cachex.Backend on
// allegro/bigcache. Values are serialized through a provider.Envelope.
package bigcache

import (
	"context"
	"errors"
	"time"

	bc "github.com/allegro/bigcache/v3"

	"github.com/unkn0wn-root/cachex"
	"github.com/unkn0wn-root/cachex/codec"
	"github.com/unkn0wn-root/cachex/provider"
)

type Backend struct {
	c   *bc.BigCache
	env provider.Envelope
}

var _ cachex.Backend = (*Backend)(nil)

type Config struct {
	LifeWindow         time.Duration // 0 => 10m
	CleanWindow        time.Duration
	Shards             int // power of two; 0 = bigcache default
	MaxEntriesInWindow int
	MaxEntrySize       int
	HardMaxCacheSizeMB int // ~ memory limit; 0 = unlimited

	Codec codec.Codec[any] // nil => msgpack
}

func New(ctx context.Context, cfg Config) (*Backend, error) {
	life := cfg.LifeWindow
	if life <= 0 {
		life = 10 * time.Minute
	}
	conf := bc.DefaultConfig(life)
	conf.Verbose = false
	if cfg.CleanWindow > 0 {
		conf.CleanWindow = cfg.CleanWindow
	}
	if cfg.Shards > 0 {
		conf.Shards = cfg.Shards
	}
	if cfg.MaxEntriesInWindow > 0 {
		conf.MaxEntriesInWindow = cfg.MaxEntriesInWindow
	}
	if cfg.MaxEntrySize > 0 {
		conf.MaxEntrySize = cfg.MaxEntrySize
	}
	if cfg.HardMaxCacheSizeMB > 0 {
		conf.HardMaxCacheSize = cfg.HardMaxCacheSizeMB
	}
	c, err := bc.New(ctx, conf)
	if err != nil {
		return nil, err
	}
	return &Backend{c: c, env: provider.NewEnvelope(cfg.Codec)}, nil
}

func (b *Backend) Read(_ context.Context, key string) (any, error) {
	raw, err := b.c.Get(key)
	if errors.Is(err, bc.ErrEntryNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	v, err := b.env.Decode(raw)
	if err != nil {
		_ = b.c.Delete(key) // self-heal corrupt
		return nil, nil
	}
	return v, nil
}

func (b *Backend) ReadMany(ctx context.Context, keys []string) (map[string]any, error) {
	out := make(map[string]any, len(keys))
	for _, k := range keys {
		v, err := b.Read(ctx, k)
		if err != nil {
			return nil, err
		}
		if v != nil {
			out[k] = v
		}
	}
	return out, nil
}

// Write stores value. BigCache has no per-entry TTL; every entry lives for
// Config.LifeWindow and ttl is ignored.
func (b *Backend) Write(_ context.Context, key string, value any, _ time.Duration) error {
	raw, err := b.env.Encode(value)
	if err != nil {
		return err
	}
	return b.c.Set(key, raw)
}

func (b *Backend) WriteMany(_ context.Context, items map[string]any, _ time.Duration) error {
	encoded, err := b.env.EncodeAll(items)
	if err != nil {
		return err
	}
	var errs []error
	for k, raw := range encoded {
		if err := b.c.Set(k, raw); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (b *Backend) Remove(_ context.Context, keys ...string) error {
	var errs []error
	for _, k := range keys {
		if err := b.c.Delete(k); err != nil && !errors.Is(err, bc.ErrEntryNotFound) {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (b *Backend) Close(_ context.Context) error {
	return b.c.Close()
}

// Stats exposes bigcache's hit/miss/collision counters.
func (b *Backend) Stats() bc.Stats { return b.c.Stats() }
