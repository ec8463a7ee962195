package pricing

// Log levels understood by Logger implementations.
const (
	LevelDebug   = "DEBUG"
	LevelInfo    = "INFO"
	LevelWarning = "WARNING"
	LevelError   = "ERROR"
)

// Logger receives diagnostics from the pricing core. Dropped price points,
// placeholder detections and passthrough conversions are reported here
// instead of being returned as errors.
type Logger interface {
	Log(level, message string, metadata map[string]interface{})
}

// NopLogger discards everything.
type NopLogger struct{}

func (NopLogger) Log(level, message string, metadata map[string]interface{}) {}

func loggerOrNop(l Logger) Logger {
	if l == nil {
		return NopLogger{}
	}
	return l
}
