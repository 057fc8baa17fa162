package logging

import "log/slog"

// LoopLogger adapts a slog.Logger to loop.Logger.
type LoopLogger struct {
	logger *slog.Logger
}

func NewLoopLogger(logger *slog.Logger) *LoopLogger {
	return &LoopLogger{logger: logger.With("component", "loop")}
}

func (l *LoopLogger) Debug(msg string, keysAndValues ...any) {
	l.logger.Debug(msg, keysAndValues...)
}

func (l *LoopLogger) Info(msg string, keysAndValues ...any) {
	l.logger.Info(msg, keysAndValues...)
}

func (l *LoopLogger) Error(msg string, keysAndValues ...any) {
	l.logger.Error(msg, keysAndValues...)
}
