package logging

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func TestNewLevels(t *testing.T) {
	tests := []struct {
		name   string
		level  string
		enable slog.Level
	}{
		{"debug level", "debug", slog.LevelDebug},
		{"error level", "error", slog.LevelError},
		{"warn level", "warn", slog.LevelWarn},
		{"default info", "", slog.LevelInfo},
		{"unknown falls back to info", "chatty", slog.LevelInfo},
	}

	ctx := context.Background()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger := New(tt.level)
			if !logger.Enabled(ctx, tt.enable) {
				t.Fatalf("expected level %s to be enabled", tt.enable)
			}
		})
	}
}

func TestDefaultLogger(t *testing.T) {
	logger := Default()

	logger.Info("test message", "key", "value")

	ctx := context.Background()
	if !logger.Enabled(ctx, slog.LevelInfo) {
		t.Error("Default() should enable info level")
	}
	if logger.Enabled(ctx, slog.LevelDebug) {
		t.Error("Default() should not enable debug level (info is higher)")
	}

	if logger.Logger == nil {
		t.Fatal("Default() returned Logger with nil slog.Logger")
	}
}

func TestWithCarriesAttributes(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter(&buf, "info").With("component", "intake")

	logger.Info("submission received")

	line := buf.String()
	if !strings.Contains(line, `"component":"intake"`) {
		t.Fatalf("expected component attribute in output, got %s", line)
	}
	if !strings.Contains(line, `"submission received"`) {
		t.Fatalf("expected message in output, got %s", line)
	}
}

func TestNewWithWriterRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter(&buf, "warn")

	logger.Info("should be dropped")
	logger.Warn("should be written")

	out := buf.String()
	if strings.Contains(out, "should be dropped") {
		t.Errorf("info record written despite warn level: %s", out)
	}
	if !strings.Contains(out, "should be written") {
		t.Errorf("warn record missing: %s", out)
	}
}
