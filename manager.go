package cachex

import (
	"context"
	"sort"
	"time"
)

// Options tune the Manager. All fields are optional.
type Options struct {
	Logger Logger           // if nil, NopLogger is used
	Hooks  Hooks            // if nil, NopHooks is used
	Clock  func() time.Time // latency clock; nil => time.Now
}

// Manager dispatches cache operations to backends resolved through a Registry.
//
// Every backend call is timed and wrapped in total failure containment: errors
// and panics from a backend are logged, reported to Hooks and turned into a
// miss or a no-op. The only errors returned to callers are configuration
// errors from the Registry (*NoSuchCacheError, ErrNoDefaultCache).
//
// The Manager adds no timeout of its own; cancellation is whatever the
// backend does with ctx.
type Manager struct {
	reg   *Registry
	log   Logger
	hooks Hooks
	now   func() time.Time
}

func NewManager(reg *Registry, opts Options) *Manager {
	m := &Manager{
		reg:   reg,
		log:   coalesce[Logger](opts.Logger, NopLogger{}),
		hooks: coalesce[Hooks](opts.Hooks, NopHooks{}),
		now:   opts.Clock,
	}
	if m.now == nil {
		m.now = time.Now
	}
	return m
}

func (m *Manager) Registry() *Registry { return m.reg }

// Read returns the cached value for key, or nil on miss or backend failure.
func (m *Manager) Read(ctx context.Context, cache, key string) (any, error) {
	e, err := m.reg.Resolve(cache)
	if err != nil {
		return nil, err
	}
	var v any
	ok := m.do(e, OpRead, []string{key}, func() (err error) {
		v, err = e.Backend.Read(ctx, key)
		return err
	})
	if !ok {
		return nil, nil
	}
	return v, nil
}

// Write stores value under key. A nil value, typed or not, is never written.
func (m *Manager) Write(ctx context.Context, cache, key string, value any, ttl time.Duration) error {
	e, err := m.reg.Resolve(cache)
	if err != nil {
		return err
	}
	if isNil(value) {
		return nil
	}
	m.do(e, OpWrite, []string{key}, func() error {
		return e.Backend.Write(ctx, key, value, ttl)
	})
	return nil
}

// WritePrevent stores the negative-cache placeholder for a key that is known
// to be absent from the source of truth.
func (m *Manager) WritePrevent(ctx context.Context, cache, key string, ttl time.Duration) error {
	return m.Write(ctx, cache, key, Prevent(), ttl)
}

// ReadBatch reads keys in one backend call and partitions the result.
// Empty keys return an empty result without touching the backend. A backend
// failure yields an empty result, i.e. a total miss with empty Misses; callers
// must treat that as "load everything".
func (m *Manager) ReadBatch(ctx context.Context, cache string, keys []string) (*ReadResult, error) {
	e, err := m.reg.Resolve(cache)
	if err != nil {
		return nil, err
	}
	if len(keys) == 0 {
		return emptyResult(), nil
	}

	uniq := distinct(keys)
	var raw map[string]any
	ok := m.do(e, OpReadBatch, uniq, func() (err error) {
		raw, err = e.Backend.ReadMany(ctx, uniq)
		return err
	})
	if !ok {
		return emptyResult(), nil
	}

	res := Partition(uniq, raw)
	m.hooks.BatchRead(e.Name, len(uniq), res.HitCount())
	return res, nil
}

// WriteBatch stores items with one ttl. Nil values are dropped. There is no
// retry and no partial-success reporting.
func (m *Manager) WriteBatch(ctx context.Context, cache string, items map[string]any, ttl time.Duration) error {
	e, err := m.reg.Resolve(cache)
	if err != nil {
		return err
	}
	items = nonNil(items)
	if len(items) == 0 {
		return nil
	}
	m.do(e, OpWriteBatch, sortedKeys(items), func() error {
		return e.Backend.WriteMany(ctx, items, ttl)
	})
	return nil
}

// Remove deletes keys. No keys is a no-op.
func (m *Manager) Remove(ctx context.Context, cache string, keys ...string) error {
	e, err := m.reg.Resolve(cache)
	if err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}
	m.do(e, OpRemove, keys, func() error {
		return e.Backend.Remove(ctx, keys...)
	})
	return nil
}

// do runs fn against e, timing it and containing any error or panic.
// It reports whether fn succeeded.
func (m *Manager) do(e Entry, op Op, keys []string, fn func() error) bool {
	start := m.now()
	err := protect(fn)
	elapsed := m.now().Sub(start)

	if err != nil {
		berr := &BackendError{Cache: e.Name, Op: op, Keys: keys, Err: err}
		m.log.Error("cachex: backend call failed", keyFields(Fields{
			"cache":      e.Name,
			"op":         string(op),
			"elapsed_ms": millis(elapsed),
			"err":        err,
		}, keys))
		m.hooks.OpCompleted(e.Name, op, elapsed, berr)
		return false
	}

	m.log.Debug("cachex: backend call", Fields{
		"cache":      e.Name,
		"op":         string(op),
		"elapsed_ms": millis(elapsed),
	})
	m.hooks.OpCompleted(e.Name, op, elapsed, nil)
	return true
}

func protect(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &PanicError{Value: r}
		}
	}()
	return fn()
}

// nonNil returns items without nil values, copying only when needed.
func nonNil(items map[string]any) map[string]any {
	for _, v := range items {
		if !isNil(v) {
			continue
		}
		out := make(map[string]any, len(items))
		for k, v := range items {
			if !isNil(v) {
				out[k] = v
			}
		}
		return out
	}
	return items
}

func sortedKeys(items map[string]any) []string {
	keys := make([]string, 0, len(items))
	for k := range items {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
