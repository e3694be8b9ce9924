package logrus

import (
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"

	"github.com/unkn0wn-root/cachex"
)

func TestFieldsAndError(t *testing.T) {
	base, hook := test.NewNullLogger()
	base.SetLevel(logrus.InfoLevel)
	l := New(base)

	l.Debug("dropped", cachex.Fields{"cache": "x"})
	l.Error("cachex: backend call failed", cachex.Fields{
		"cache": "bigcache",
		"op":    "read",
		"err":   errors.New("boom"),
	})

	if len(hook.Entries) != 1 {
		t.Fatalf("want 1 entry, got %d", len(hook.Entries))
	}
	e := hook.LastEntry()
	if e.Level != logrus.ErrorLevel || e.Data["cache"] != "bigcache" || e.Data["component"] != "cachex" {
		t.Fatalf("entry data = %v", e.Data)
	}
	if err, _ := e.Data[logrus.ErrorKey].(error); err == nil || err.Error() != "boom" {
		t.Fatalf("error field = %v", e.Data[logrus.ErrorKey])
	}
}
