package asynchook

import (
	"sync"
	"testing"
	"time"

	"github.com/unkn0wn-root/cachex"
)

type countHooks struct {
	mu       sync.Mutex
	ops      int
	batches  int
	filtered int
	block    chan struct{}
}

func (c *countHooks) OpCompleted(string, cachex.Op, time.Duration, error) {
	if c.block != nil {
		<-c.block
	}
	c.mu.Lock()
	c.ops++
	c.mu.Unlock()
}

func (c *countHooks) BatchRead(string, int, int) {
	c.mu.Lock()
	c.batches++
	c.mu.Unlock()
}

func (c *countHooks) SentinelFiltered(n int) {
	c.mu.Lock()
	c.filtered += n
	c.mu.Unlock()
}

func TestForwardsAndDrainsOnClose(t *testing.T) {
	inner := &countHooks{}
	h := New(inner, 2, 100)

	for i := 0; i < 10; i++ {
		h.OpCompleted("c", cachex.OpRead, time.Millisecond, nil)
	}
	h.BatchRead("c", 3, 1)
	h.SentinelFiltered(2)
	h.Close()

	if inner.ops != 10 || inner.batches != 1 || inner.filtered != 2 {
		t.Fatalf("forwarded ops=%d batches=%d filtered=%d", inner.ops, inner.batches, inner.filtered)
	}

	h.SentinelFiltered(1) // after Close: dropped, must not panic
	if h.Dropped() != 1 {
		t.Fatalf("Dropped = %d, want 1", h.Dropped())
	}
}

func TestDropsWhenFull(t *testing.T) {
	inner := &countHooks{block: make(chan struct{})}
	h := New(inner, 1, 1)

	// first event occupies the worker, second fills the queue, the rest drop
	for i := 0; i < 5; i++ {
		h.OpCompleted("c", cachex.OpRead, 0, nil)
		time.Sleep(10 * time.Millisecond)
	}
	if h.Dropped() == 0 {
		t.Fatalf("expected drops with a blocked worker")
	}
	close(inner.block)
	h.Close()
}
