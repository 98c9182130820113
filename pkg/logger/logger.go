// Package logger provides opinionated logging capabilities for parley
package logger

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func NewLogger(debug bool) *zap.Logger {
	return newLogger(debug, zapcore.AddSync(os.Stdout), true)
}

// NewFileLogger logs to the given path instead of stdout. Used in TUI
// mode, where stdout belongs to the terminal renderer. The returned
// cleanup closes the file.
func NewFileLogger(debug bool, path string) (*zap.Logger, func(), error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("create log directory: %w", err)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}

	l := newLogger(debug, zapcore.AddSync(f), false)
	cleanup := func() {
		l.Sync()
		f.Close()
	}
	return l, cleanup, nil
}

func newLogger(debug bool, sink zapcore.WriteSyncer, color bool) *zap.Logger {
	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.TimeKey = "time"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	if color {
		encoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	} else {
		encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	}

	// Set log level
	level := zap.InfoLevel
	if debug {
		level = zap.DebugLevel
	}

	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderConfig),
		sink,
		level,
	)

	return zap.New(core, zap.AddCaller())
}
