// Package redis is a distributed cachex.Backend on redis/go-redis. Batch reads
// use a single MGET and batch writes a single pipelined round-trip.
package redis

import (
	"context"
	"errors"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/unkn0wn-root/cachex"
	"github.com/unkn0wn-root/cachex/codec"
	"github.com/unkn0wn-root/cachex/provider"
)

var ErrNilClient = errors.New("redis provider: nil client")

type Backend struct {
	rdb         goredis.UniversalClient
	env         provider.Envelope
	prefix      string
	closeClient bool
}

var _ cachex.Backend = (*Backend)(nil)

type Config struct {
	Client      goredis.UniversalClient
	Codec       codec.Codec[any] // nil => msgpack
	Prefix      string           // prepended to every key, e.g. "app:prod:"
	CloseClient bool             // set true only if this backend exclusively owns the client
}

func New(cfg Config) (*Backend, error) {
	if cfg.Client == nil {
		return nil, ErrNilClient
	}
	return &Backend{
		rdb:         cfg.Client,
		env:         provider.NewEnvelope(cfg.Codec),
		prefix:      cfg.Prefix,
		closeClient: cfg.CloseClient,
	}, nil
}

func (b *Backend) key(k string) string { return b.prefix + k }

func (b *Backend) Read(ctx context.Context, key string) (any, error) {
	raw, err := b.rdb.Get(ctx, b.key(key)).Bytes()
	if err == goredis.Nil {
		return nil, nil // miss
	}
	if err != nil {
		return nil, err // transport/server error
	}
	return b.decode(ctx, key, raw), nil
}

func (b *Backend) ReadMany(ctx context.Context, keys []string) (map[string]any, error) {
	if len(keys) == 0 {
		return map[string]any{}, nil
	}
	full := make([]string, len(keys))
	for i, k := range keys {
		full[i] = b.key(k)
	}
	vals, err := b.rdb.MGet(ctx, full...).Result()
	if err != nil {
		return nil, err
	}

	out := make(map[string]any, len(keys))
	for i, v := range vals {
		var raw []byte
		switch vv := v.(type) {
		case nil:
			continue
		case string:
			raw = []byte(vv)
		case []byte:
			raw = vv
		default:
			continue
		}
		if dv := b.decode(ctx, keys[i], raw); dv != nil {
			out[keys[i]] = dv
		}
	}
	return out, nil
}

// decode returns nil for undecodable entries and deletes them (best-effort).
func (b *Backend) decode(ctx context.Context, key string, raw []byte) any {
	v, err := b.env.Decode(raw)
	if err != nil {
		_ = b.rdb.Del(ctx, b.key(key)).Err()
		return nil
	}
	return v
}

// Write stores value; ttl <= 0 means no expiry.
func (b *Backend) Write(ctx context.Context, key string, value any, ttl time.Duration) error {
	raw, err := b.env.Encode(value)
	if err != nil {
		return err
	}
	return b.rdb.Set(ctx, b.key(key), raw, expiry(ttl)).Err()
}

func (b *Backend) WriteMany(ctx context.Context, items map[string]any, ttl time.Duration) error {
	encoded, err := b.env.EncodeAll(items)
	if err != nil {
		return err
	}
	exp := expiry(ttl)
	_, err = b.rdb.Pipelined(ctx, func(p goredis.Pipeliner) error {
		for k, raw := range encoded {
			p.Set(ctx, b.key(k), raw, exp)
		}
		return nil
	})
	return err
}

func (b *Backend) Remove(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	full := make([]string, len(keys))
	for i, k := range keys {
		full[i] = b.key(k)
	}
	return b.rdb.Del(ctx, full...).Err()
}

// Close releases the underlying redis client only when this backend owns it.
// Safe to call multiple times; repeated calls become no-ops.
func (b *Backend) Close(context.Context) error {
	if b.closeClient {
		if err := b.rdb.Close(); err != nil && !errors.Is(err, goredis.ErrClosed) {
			return err
		}
	}
	return nil
}

// expiry maps non-positive TTLs to "no expiry"; go-redis reads -1 as KEEPTTL.
func expiry(ttl time.Duration) time.Duration {
	if ttl <= 0 {
		return 0
	}
	return ttl
}
