package sloghooks

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/unkn0wn-root/cachex"
)

func newTestHooks(opts Options) (*Hooks, *bytes.Buffer) {
	var buf bytes.Buffer
	l := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return New(l, opts), &buf
}

func TestFailureIsRedactedAndSampled(t *testing.T) {
	h, buf := newTestHooks(Options{FailureEvery: 2})
	berr := &cachex.BackendError{Cache: "redis", Op: cachex.OpRead, Keys: []string{"user:secret"}, Err: errors.New("down")}

	for i := 0; i < 4; i++ {
		h.OpCompleted("redis", cachex.OpRead, time.Millisecond, berr)
	}
	out := buf.String()
	if n := strings.Count(out, "cachex.backend_failure"); n != 2 {
		t.Fatalf("want 2 sampled lines, got %d:\n%s", n, out)
	}
	if strings.Contains(out, "user:secret") {
		t.Fatalf("key must be redacted:\n%s", out)
	}
	if !strings.Contains(out, "err=down") || !strings.Contains(out, "key_count=1") {
		t.Fatalf("cause and key count should still be logged:\n%s", out)
	}
}

func TestBatchFailureHidesEveryKey(t *testing.T) {
	h, buf := newTestHooks(Options{})
	berr := &cachex.BackendError{
		Cache: "redis",
		Op:    cachex.OpReadBatch,
		Keys:  []string{"tok:a", "tok:b", "tok:c"},
		Err:   errors.New("timeout"),
	}
	h.OpCompleted("redis", cachex.OpReadBatch, time.Millisecond, berr)

	out := buf.String()
	for _, k := range berr.Keys {
		if strings.Contains(out, k) {
			t.Fatalf("key %s leaked:\n%s", k, out)
		}
	}
	if !strings.Contains(out, "key_count=3") {
		t.Fatalf("missing key_count:\n%s", out)
	}
}

func TestPlainErrorIsLoggedAsIs(t *testing.T) {
	h, buf := newTestHooks(Options{})
	h.OpCompleted("local", cachex.OpRemove, 0, errors.New("closed"))
	if !strings.Contains(buf.String(), "err=closed") {
		t.Fatalf("plain error not logged:\n%s", buf.String())
	}
}

func TestSlowCallWarns(t *testing.T) {
	h, buf := newTestHooks(Options{SlowThreshold: 50 * time.Millisecond})
	h.OpCompleted("local", cachex.OpWrite, time.Millisecond, nil)
	h.OpCompleted("local", cachex.OpWrite, 80*time.Millisecond, nil)
	if n := strings.Count(buf.String(), "cachex.slow_call"); n != 1 {
		t.Fatalf("want 1 slow line, got %d:\n%s", n, buf.String())
	}
}

func TestNilLoggerIsSafe(t *testing.T) {
	h := New(nil, Options{})
	h.OpCompleted("x", cachex.OpRead, 0, errors.New("e"))
	h.BatchRead("x", 1, 0)
	h.SentinelFiltered(1)
}
