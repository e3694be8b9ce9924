package ristretto

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/unkn0wn-root/cachex"
)

func newTestBackend(t *testing.T) *Backend {
	t.Helper()
	b, err := New(Config{NumCounters: 1000, MaxCost: 100, BufferItems: 64, WaitOnWrite: true})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(func() { _ = b.Close(context.Background()) })
	return b
}

func TestInvalidConfig(t *testing.T) {
	if _, err := New(Config{}); err == nil {
		t.Fatalf("expected error for zero config")
	}
}

func TestReadWriteRemove(t *testing.T) {
	ctx := context.Background()
	b := newTestBackend(t)

	if v, err := b.Read(ctx, "k"); err != nil || v != nil {
		t.Fatalf("miss expected, v=%v err=%v", v, err)
	}
	if err := b.Write(ctx, "k", "v", 0); err != nil {
		t.Fatal(err)
	}
	if v, _ := b.Read(ctx, "k"); v != "v" {
		t.Fatalf("Read = %v", v)
	}
	if err := b.Remove(ctx, "k"); err != nil {
		t.Fatal(err)
	}
	if v, _ := b.Read(ctx, "k"); v != nil {
		t.Fatalf("Read after Remove = %v", v)
	}
}

func TestReadManyOmitsMisses(t *testing.T) {
	ctx := context.Background()
	b := newTestBackend(t)
	if err := b.WriteMany(ctx, map[string]any{"a": 1, "b": 2}, time.Minute); err != nil {
		t.Fatal(err)
	}
	got, err := b.ReadMany(ctx, []string{"a", "b", "c"})
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 || got["a"] != 1 || got["b"] != 2 {
		t.Fatalf("ReadMany = %v", got)
	}
	if _, ok := got["c"]; ok {
		t.Fatalf("missing key must be omitted")
	}
}

func TestPlaceholderKeepsIdentity(t *testing.T) {
	ctx := context.Background()
	b := newTestBackend(t)
	_ = b.Write(ctx, "gone", cachex.Prevent(), time.Minute)
	v, _ := b.Read(ctx, "gone")
	if !cachex.IsPrevent(v) {
		t.Fatalf("Read = %#v, want placeholder", v)
	}
}

func TestBehindManager(t *testing.T) {
	ctx := context.Background()
	reg := cachex.NewRegistry()
	if err := reg.Register("local", newTestBackend(t)); err != nil {
		t.Fatal(err)
	}
	m := cachex.NewManager(reg, cachex.Options{})

	_ = m.WriteBatch(ctx, "", map[string]any{"u1": "ada", "u3": "bob"}, 0)
	_ = m.WritePrevent(ctx, "", "u2", 0)

	res, err := m.ReadBatch(ctx, "local", []string{"u3", "u2", "u1", "u4"})
	if err != nil {
		t.Fatal(err)
	}
	keys := res.Hits.Keys()
	if len(keys) != 3 || keys[0] != "u3" || keys[1] != "u2" || keys[2] != "u1" {
		t.Fatalf("hits = %v", keys)
	}
	if len(res.Misses) != 1 || res.Misses[0] != "u4" {
		t.Fatalf("misses = %v", res.Misses)
	}

	list, err := cachex.CollectionAs[*cachex.List](cachex.NewConverter(nil), cachex.KindList, res.Hits)
	if err != nil {
		t.Fatal(err)
	}
	if list.Len() != 2 || (*list)[0] != "bob" || (*list)[1] != "ada" {
		t.Fatalf("values = %v", *list)
	}
}

func TestMaxCostCountsEntries(t *testing.T) {
	ctx := context.Background()
	b := newTestBackend(t)

	items := make(map[string]any, 50)
	keys := make([]string, 0, 50)
	for i := 0; i < 50; i++ {
		k := fmt.Sprintf("k%d", i)
		items[k] = i
		keys = append(keys, k)
	}
	if err := b.WriteMany(ctx, items, time.Minute); err != nil {
		t.Fatal(err)
	}
	got, _ := b.ReadMany(ctx, keys)
	if len(got) != 50 {
		t.Fatalf("kept %d of 50 entries under MaxCost 100", len(got))
	}
}
