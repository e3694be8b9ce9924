package cachex

import (
	"context"
	"errors"
	"sync"
	"time"
)

// memBackend is an in-memory Backend that counts calls and can be told to
// fail or panic.
type memBackend struct {
	mu    sync.Mutex
	m     map[string]any
	calls map[string]int
	ttls  map[string]time.Duration

	failWith error
	panicMsg string
}

var _ Backend = (*memBackend)(nil)

var errBoom = errors.New("boom")

func newMemBackend() *memBackend {
	return &memBackend{
		m:     make(map[string]any),
		calls: make(map[string]int),
		ttls:  make(map[string]time.Duration),
	}
}

func (b *memBackend) enter(op string) error {
	b.mu.Lock()
	b.calls[op]++
	b.mu.Unlock()
	if b.panicMsg != "" {
		panic(b.panicMsg)
	}
	return b.failWith
}

func (b *memBackend) count(op string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.calls[op]
}

func (b *memBackend) total() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	n := 0
	for _, c := range b.calls {
		n += c
	}
	return n
}

func (b *memBackend) Read(_ context.Context, key string) (any, error) {
	if err := b.enter("read"); err != nil {
		return nil, err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.m[key], nil
}

func (b *memBackend) ReadMany(_ context.Context, keys []string) (map[string]any, error) {
	if err := b.enter("read_many"); err != nil {
		return nil, err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make(map[string]any, len(keys))
	for _, k := range keys {
		if v, ok := b.m[k]; ok {
			out[k] = v
		}
	}
	return out, nil
}

func (b *memBackend) Write(_ context.Context, key string, value any, ttl time.Duration) error {
	if err := b.enter("write"); err != nil {
		return err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.m[key] = value
	b.ttls[key] = ttl
	return nil
}

func (b *memBackend) WriteMany(_ context.Context, items map[string]any, ttl time.Duration) error {
	if err := b.enter("write_many"); err != nil {
		return err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	for k, v := range items {
		b.m[k] = v
		b.ttls[k] = ttl
	}
	return nil
}

func (b *memBackend) Remove(_ context.Context, keys ...string) error {
	if err := b.enter("remove"); err != nil {
		return err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, k := range keys {
		delete(b.m, k)
	}
	return nil
}

type logRecord struct {
	level string
	msg   string
	f     Fields
}

// recLogger records every log call.
type recLogger struct {
	mu   sync.Mutex
	recs []logRecord
}

func (l *recLogger) add(level, msg string, f Fields) {
	l.mu.Lock()
	l.recs = append(l.recs, logRecord{level: level, msg: msg, f: f})
	l.mu.Unlock()
}

func (l *recLogger) Debug(msg string, f Fields) { l.add("debug", msg, f) }
func (l *recLogger) Info(msg string, f Fields)  { l.add("info", msg, f) }
func (l *recLogger) Warn(msg string, f Fields)  { l.add("warn", msg, f) }
func (l *recLogger) Error(msg string, f Fields) { l.add("error", msg, f) }

func (l *recLogger) byLevel(level string) []logRecord {
	l.mu.Lock()
	defer l.mu.Unlock()
	var out []logRecord
	for _, r := range l.recs {
		if r.level == level {
			out = append(out, r)
		}
	}
	return out
}

type opEvent struct {
	cache   string
	op      Op
	elapsed time.Duration
	err     error
}

// recHooks records hook events.
type recHooks struct {
	mu       sync.Mutex
	ops      []opEvent
	batches  [][2]int
	filtered int
}

func (h *recHooks) OpCompleted(cache string, op Op, elapsed time.Duration, err error) {
	h.mu.Lock()
	h.ops = append(h.ops, opEvent{cache, op, elapsed, err})
	h.mu.Unlock()
}

func (h *recHooks) BatchRead(_ string, requested, hits int) {
	h.mu.Lock()
	h.batches = append(h.batches, [2]int{requested, hits})
	h.mu.Unlock()
}

func (h *recHooks) SentinelFiltered(n int) {
	h.mu.Lock()
	h.filtered += n
	h.mu.Unlock()
}
