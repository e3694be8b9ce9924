// usage:
//
//	raw := sloghooks.New(slog.Default(), sloghooks.Options{FailureEvery: 10})
//	hooks := asynchook.New(cachex.MultiHooks{raw, promhooks.New(reg)}, 1, 1000)
//	defer hooks.Close()
//
//	m := cachex.NewManager(registry, cachex.Options{Hooks: hooks})
package asynchook

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/unkn0wn-root/cachex"
)

// Hooks forwards events to inner on background workers. When the queue is
// full, events are dropped rather than blocking the cache call.
type Hooks struct {
	inner   cachex.Hooks
	q       chan func()
	wg      sync.WaitGroup
	once    sync.Once
	closed  atomic.Bool
	dropped atomic.Uint64
}

var _ cachex.Hooks = (*Hooks)(nil)

func New(inner cachex.Hooks, workers, qlen int) *Hooks {
	if workers <= 0 {
		workers = 1
	}
	if qlen <= 0 {
		qlen = 1024
	}

	h := &Hooks{inner: inner, q: make(chan func(), qlen)}
	h.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer h.wg.Done()
			for f := range h.q {
				f()
			}
		}()
	}
	return h
}

// Close drains queued events and stops the workers. Events sent after Close
// are dropped.
func (h *Hooks) Close() {
	h.once.Do(func() {
		h.closed.Store(true)
		close(h.q)
		h.wg.Wait()
	})
}

// Dropped returns how many events were discarded.
func (h *Hooks) Dropped() uint64 { return h.dropped.Load() }

func (h *Hooks) try(f func()) {
	if h.closed.Load() {
		h.dropped.Add(1)
		return
	}
	defer func() {
		// lost a race with Close
		if recover() != nil {
			h.dropped.Add(1)
		}
	}()
	select {
	case h.q <- f:
	default:
		h.dropped.Add(1)
	}
}

func (h *Hooks) OpCompleted(cache string, op cachex.Op, elapsed time.Duration, err error) {
	h.try(func() { h.inner.OpCompleted(cache, op, elapsed, err) })
}

func (h *Hooks) BatchRead(cache string, requested, hits int) {
	h.try(func() { h.inner.BatchRead(cache, requested, hits) })
}

func (h *Hooks) SentinelFiltered(n int) { h.try(func() { h.inner.SentinelFiltered(n) }) }
