package diskcache

// Fields is a minimal structured field map for logs.
type Fields map[string]any

// Logger is the leveled logger the cache reports through. Adapters for zap,
// logrus and slog live under log/. A nil Logger in Options disables logging.
//
// The cache only logs at Warn for unexpected filesystem failures during a
// sweep and for corrupt entries; everything else is Debug.
type Logger interface {
	Debug(msg string, f Fields)
	Info(msg string, f Fields)
	Warn(msg string, f Fields)
	Error(msg string, f Fields)
}

type NopLogger struct{}

var _ Logger = NopLogger{}

func (NopLogger) Debug(string, Fields) {}
func (NopLogger) Info(string, Fields)  {}
func (NopLogger) Warn(string, Fields)  {}
func (NopLogger) Error(string, Fields) {}
