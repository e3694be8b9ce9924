package logrus

import (
	"github.com/sirupsen/logrus"

	"github.com/unkn0wn-root/cachex"
)

// Logger adapts a *logrus.Entry to cachex.Logger. An "err" field is attached
// with WithError.
type Logger struct{ E *logrus.Entry }

var _ cachex.Logger = Logger{}

func New(l *logrus.Logger) Logger {
	return Logger{E: logrus.NewEntry(l).WithField("component", "cachex")}
}

func (l Logger) Debug(msg string, f cachex.Fields) { l.entry(logrus.DebugLevel, f).Debug(msg) }
func (l Logger) Info(msg string, f cachex.Fields)  { l.entry(logrus.InfoLevel, f).Info(msg) }
func (l Logger) Warn(msg string, f cachex.Fields)  { l.entry(logrus.WarnLevel, f).Warn(msg) }
func (l Logger) Error(msg string, f cachex.Fields) { l.entry(logrus.ErrorLevel, f).Error(msg) }

func (l Logger) entry(lvl logrus.Level, f cachex.Fields) *logrus.Entry {
	if len(f) == 0 || !l.E.Logger.IsLevelEnabled(lvl) {
		return l.E
	}
	fields := make(logrus.Fields, len(f))
	e := l.E
	for k, v := range f {
		if err, ok := v.(error); ok && k == "err" {
			e = e.WithError(err)
			continue
		}
		fields[k] = v
	}
	return e.WithFields(fields)
}
