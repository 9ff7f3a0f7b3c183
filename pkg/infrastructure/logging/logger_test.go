package logging

import (
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	testCases := []struct {
		raw      string
		expected zapcore.Level
	}{
		{"debug", zapcore.DebugLevel},
		{" WARN ", zapcore.WarnLevel},
		{"", zapcore.InfoLevel},
		{"nonsense", zapcore.InfoLevel},
	}

	for _, tc := range testCases {
		t.Run(tc.raw, func(t *testing.T) {
			if got := parseLevel(tc.raw).Level(); got != tc.expected {
				t.Errorf("Expected %s, got %s", tc.expected, got)
			}
		})
	}
}

func TestNewLogger(t *testing.T) {
	t.Setenv("LOG_LEVEL", "error")

	logger, err := NewLogger(Config{Encoding: "console"})
	if err != nil {
		t.Fatalf("NewLogger failed: %v", err)
	}
	if logger.Core().Enabled(zapcore.WarnLevel) {
		t.Error("Expected LOG_LEVEL=error to disable warnings")
	}

	logger, err = NewLogger(Config{Level: "debug"})
	if err != nil {
		t.Fatalf("NewLogger failed: %v", err)
	}
	if !logger.Core().Enabled(zapcore.DebugLevel) {
		t.Error("Expected explicit level to override LOG_LEVEL")
	}

	if _, err := NewLogger(Config{Encoding: "xml"}); err == nil {
		t.Error("Expected unknown encoding to fail")
	}
}
