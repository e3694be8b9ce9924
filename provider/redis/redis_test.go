package redis

import (
	"context"
	"errors"
	"testing"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/unkn0wn-root/cachex"
)

func TestNilClient(t *testing.T) {
	if _, err := New(Config{}); !errors.Is(err, ErrNilClient) {
		t.Fatalf("want ErrNilClient, got %v", err)
	}
}

func TestExpiry(t *testing.T) {
	cases := map[time.Duration]time.Duration{
		-time.Second: 0,
		0:            0,
		time.Minute:  time.Minute,
	}
	for in, want := range cases {
		if got := expiry(in); got != want {
			t.Fatalf("expiry(%v) = %v, want %v", in, got, want)
		}
	}
}

// An unreachable server must surface as a backend error, which the Manager
// contains as a miss.
func TestUnreachableServerIsContained(t *testing.T) {
	ctx := context.Background()
	rdb := goredis.NewClient(&goredis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 200 * time.Millisecond,
		MaxRetries:  -1,
	})
	b, err := New(Config{Client: rdb, CloseClient: true})
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = b.Close(ctx) })

	if _, err := b.Read(ctx, "k"); err == nil {
		t.Fatalf("expected a dial error from the backend")
	}

	reg := cachex.NewRegistry()
	_ = reg.Register("redis", b)
	m := cachex.NewManager(reg, cachex.Options{})

	v, err := m.Read(ctx, "redis", "k")
	if err != nil || v != nil {
		t.Fatalf("Manager.Read: v=%v err=%v", v, err)
	}
	res, err := m.ReadBatch(ctx, "redis", []string{"a", "b"})
	if err != nil || res.HitCount() != 0 || res.MissCount() != 0 {
		t.Fatalf("Manager.ReadBatch: %+v err=%v", res, err)
	}
	if err := m.Write(ctx, "redis", "k", "v", time.Second); err != nil {
		t.Fatalf("Manager.Write: %v", err)
	}
}
