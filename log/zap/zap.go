package zap

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/unkn0wn-root/cachex"
)

// Logger adapts a *zap.Logger to cachex.Logger. An "err" field is emitted with
// zap.Error so it lands under zap's standard error key.
type Logger struct{ L *zap.Logger }

var _ cachex.Logger = Logger{}

func New(l *zap.Logger) Logger { return Logger{L: l.Named("cachex")} }

func (z Logger) Debug(msg string, f cachex.Fields) { z.log(zapcore.DebugLevel, msg, f) }
func (z Logger) Info(msg string, f cachex.Fields)  { z.log(zapcore.InfoLevel, msg, f) }
func (z Logger) Warn(msg string, f cachex.Fields)  { z.log(zapcore.WarnLevel, msg, f) }
func (z Logger) Error(msg string, f cachex.Fields) { z.log(zapcore.ErrorLevel, msg, f) }

// log skips building fields when the level is disabled; Debug timings run on
// every cache call.
func (z Logger) log(lvl zapcore.Level, msg string, f cachex.Fields) {
	if ce := z.L.Check(lvl, msg); ce != nil {
		ce.Write(zf(f)...)
	}
}

func zf(f cachex.Fields) []zap.Field {
	if len(f) == 0 {
		return nil
	}
	out := make([]zap.Field, 0, len(f))
	for k, v := range f {
		if err, ok := v.(error); ok && k == "err" {
			out = append(out, zap.Error(err))
			continue
		}
		out = append(out, zap.Any(k, v))
	}
	return out
}
