// Package logging builds the zap loggers used by the simulator.
package logging

import (
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const defaultLogLevel = "info"

// Config selects the encoder and level of a logger. Empty fields fall back
// to LOG_LEVEL, JSON encoding and stderr.
type Config struct {
	Level    string
	Encoding string // "json" or "console"
	Output   []string
}

// LevelFromEnv parses LOG_LEVEL, defaulting to info when unset or invalid
func LevelFromEnv() zap.AtomicLevel {
	return parseLevel(os.Getenv("LOG_LEVEL"))
}

func parseLevel(raw string) zap.AtomicLevel {
	level := zap.NewAtomicLevel()
	if err := level.UnmarshalText([]byte(strings.ToLower(strings.TrimSpace(raw)))); err != nil {
		_ = level.UnmarshalText([]byte(defaultLogLevel))
	}
	return level
}

// NewLogger constructs a structured logger
func NewLogger(cfg Config) (*zap.Logger, error) {
	level := LevelFromEnv()
	if cfg.Level != "" {
		level = parseLevel(cfg.Level)
	}

	encoding := cfg.Encoding
	if encoding == "" {
		encoding = "json"
	}
	output := cfg.Output
	if len(output) == 0 {
		output = []string{"stderr"}
	}

	encoderCfg := zapcore.EncoderConfig{
		MessageKey: "message",
		TimeKey:    "timestamp",
		LevelKey:   "severity",
		EncodeTime: zapcore.RFC3339NanoTimeEncoder,
		EncodeLevel: func(level zapcore.Level, enc zapcore.PrimitiveArrayEncoder) {
			enc.AppendString(strings.ToUpper(level.String()))
		},
		CallerKey:     "caller",
		EncodeCaller:  zapcore.ShortCallerEncoder,
		StacktraceKey: "stacktrace",
	}

	zc := zap.Config{
		Level:             level,
		Encoding:          encoding,
		EncoderConfig:     encoderCfg,
		OutputPaths:       output,
		ErrorOutputPaths:  []string{"stderr"},
		DisableStacktrace: true,
	}
	return zc.Build()
}
