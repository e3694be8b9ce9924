package sloghooks

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/unkn0wn-root/cachex"
)

type Options struct {
	// Sampling to avoid floods during an outage; 0/1 = log all.
	FailureEvery uint64
	// Calls slower than this are logged at Warn; 0 disables.
	SlowThreshold time.Duration
	// Optional key redactor. Defaults to SHA-256 prefix.
	Redact func(string) string
}

// Hooks logs backend failures and slow calls through slog.
type Hooks struct {
	l    *slog.Logger
	opts Options

	failureCtr atomic.Uint64
}

var _ cachex.Hooks = (*Hooks)(nil)

func New(l *slog.Logger, opts Options) *Hooks {
	return &Hooks{l: l, opts: opts}
}

func (h *Hooks) redact(k string) string {
	if h.opts.Redact != nil {
		return h.opts.Redact(k)
	}
	sum := sha256.Sum256([]byte(k))
	return hex.EncodeToString(sum[:8])
}

func sample(n uint64, ctr *atomic.Uint64) bool {
	if n == 0 || n == 1 {
		return true
	}
	return ctr.Add(1)%n == 0
}

func (h *Hooks) OpCompleted(cache string, op cachex.Op, elapsed time.Duration, err error) {
	if h.l == nil {
		return
	}
	if err != nil {
		if !sample(h.opts.FailureEvery, &h.failureCtr) {
			return
		}
		attrs := []any{"cache", cache, "op", string(op)}
		var berr *cachex.BackendError
		if errors.As(err, &berr) {
			// BackendError.Error spells out raw keys; log only the cause.
			attrs = append(attrs, "err", berr.Err)
			if len(berr.Keys) > 0 {
				attrs = append(attrs, "key", h.redact(berr.Keys[0]), "key_count", len(berr.Keys))
			}
		} else {
			attrs = append(attrs, "err", err)
		}
		h.l.Error("cachex.backend_failure", attrs...)
		return
	}
	if h.opts.SlowThreshold > 0 && elapsed >= h.opts.SlowThreshold {
		h.l.Warn("cachex.slow_call",
			"cache", cache,
			"op", string(op),
			"elapsed", elapsed)
	}
}

func (h *Hooks) BatchRead(cache string, requested, hits int) {
	if h.l == nil {
		return
	}
	h.l.Debug("cachex.batch_read",
		"cache", cache,
		"requested", requested,
		"hits", hits)
}

func (h *Hooks) SentinelFiltered(n int) {
	if h.l == nil {
		return
	}
	h.l.Debug("cachex.sentinel_filtered", "count", n)
}
