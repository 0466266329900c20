package logger

import (
	"testing"
)

func TestSetup(t *testing.T) {
	tests := []struct {
		name   string
		level  string
		format string
	}{
		{"debug level", "debug", "console"},
		{"info level", "info", "console"},
		{"warn level", "warn", "console"},
		{"error level", "error", "console"},
		{"json format", "info", "json"},
		{"uppercase level", "DEBUG", "console"},
		{"unknown level falls back to info", "verbose", "console"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			Setup(tt.level, tt.format)
			if Log == nil {
				t.Error("expected Log to be initialized")
			}
		})
	}
}

func TestLoggerMethods(t *testing.T) {
	if Log == nil {
		Setup("info", "console")
	}

	// These should not panic
	Log.Info("test info message", "key", "value")
	Log.Debug("test debug message", "key", "value")
	Log.Warn("test warn message", "key", "value")
	Log.Error("test error message", "key", "value")
}

func TestLoggerOddFields(t *testing.T) {
	if Log == nil {
		Setup("info", "console")
	}

	// Trailing key without a value is dropped, not panicked on.
	Log.Info("odd fields", "key1", "value1", "dangling")
}

func TestWithComponent(t *testing.T) {
	Setup("info", "console")
	child := Log.WithComponent("prompt")
	if child == nil {
		t.Fatal("expected child logger")
	}
	child.Info("component message", "rows", 3)
}
