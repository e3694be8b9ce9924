package cachex

// Fields is a minimal structured field map for logs.
type Fields map[string]any

// Logger is a tiny leveled logger. Adapters for zap, logrus and slog live under
// log/. If Logger is nil in Options, logging is disabled.
type Logger interface {
	Debug(msg string, f Fields)
	Info(msg string, f Fields)
	Warn(msg string, f Fields)
	Error(msg string, f Fields)
}

type NopLogger struct{}

func (NopLogger) Debug(string, Fields) {}
func (NopLogger) Info(string, Fields)  {}
func (NopLogger) Warn(string, Fields)  {}
func (NopLogger) Error(string, Fields) {}

// keyFields attaches the failing key(s) under "key" or "keys".
func keyFields(f Fields, keys []string) Fields {
	switch len(keys) {
	case 0:
	case 1:
		f["key"] = keys[0]
	default:
		f["keys"] = keys
	}
	return f
}
