package cachex

import "time"

// Op names a Manager operation in logs, hooks and errors.
type Op string

const (
	OpRead       Op = "read"
	OpWrite      Op = "write"
	OpReadBatch  Op = "read_batch"
	OpWriteBatch Op = "write_batch"
	OpRemove     Op = "remove"
)

// Hooks lightweight callbacks for high-signal events.
// Implementations MUST be cheap and non-blocking.
// The Manager calls them on hot paths.
type Hooks interface {
	// A backend call finished. err is a *BackendError when it failed.
	OpCompleted(cache string, op Op, elapsed time.Duration, err error)

	// A batch read reached the backend; hits <= requested.
	BatchRead(cache string, requested, hits int)

	// The Converter dropped n negative-cache placeholders.
	SentinelFiltered(n int)
}

// NopHooks is the default no-op
type NopHooks struct{}

func (NopHooks) OpCompleted(string, Op, time.Duration, error) {}
func (NopHooks) BatchRead(string, int, int)                  {}
func (NopHooks) SentinelFiltered(int)                        {}

// MultiHooks fans every event out to each hook in order.
type MultiHooks []Hooks

var _ Hooks = MultiHooks(nil)

func (m MultiHooks) OpCompleted(cache string, op Op, elapsed time.Duration, err error) {
	for _, h := range m {
		h.OpCompleted(cache, op, elapsed, err)
	}
}

func (m MultiHooks) BatchRead(cache string, requested, hits int) {
	for _, h := range m {
		h.BatchRead(cache, requested, hits)
	}
}

func (m MultiHooks) SentinelFiltered(n int) {
	for _, h := range m {
		h.SentinelFiltered(n)
	}
}
