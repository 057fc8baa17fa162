package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"
)

func decodeEntry(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("failed to parse log output: %v", err)
	}
	return entry
}

func TestLoopLogger_Levels(t *testing.T) {
	tests := []struct {
		level string
		log   func(*LoopLogger)
	}{
		{"DEBUG", func(l *LoopLogger) { l.Debug("msg", "events", 3) }},
		{"INFO", func(l *LoopLogger) { l.Info("msg", "events", 3) }},
		{"ERROR", func(l *LoopLogger) { l.Error("msg", "events", 3) }},
	}
	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			var buf bytes.Buffer
			logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
			tt.log(NewLoopLogger(logger))

			entry := decodeEntry(t, &buf)
			if entry["level"] != tt.level {
				t.Errorf("expected level %s, got %v", tt.level, entry["level"])
			}
			if entry["component"] != "loop" {
				t.Errorf("expected component=loop, got %v", entry["component"])
			}
			if entry["events"] != float64(3) {
				t.Errorf("expected events=3, got %v", entry["events"])
			}
		})
	}
}

func TestLoopLogger_RespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo}))
	NewLoopLogger(logger).Debug("hidden")

	if buf.Len() != 0 {
		t.Errorf("expected no output, got %q", buf.String())
	}
}
