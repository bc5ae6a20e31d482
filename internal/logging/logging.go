package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"
)

// DefaultFile is the debug log path relative to the project directory.
const DefaultFile = ".claude/vibehooks-debug.log"

// Config contains logging configuration.
type Config struct {
	// Level is the minimum log level (debug, info, warn, error).
	Level string
	// FilePath is the path to the log file. Empty means no file logging.
	FilePath string
	// MaxSizeMB is the maximum size in MB before rotation (default: 5).
	MaxSizeMB int
	// MaxBackups is the maximum number of rotated files to keep (default: 2).
	MaxBackups int
	// WriteToStderr also writes to Stderr. Off by default for hooks.
	WriteToStderr bool
	// Stderr overrides os.Stderr, for tests.
	Stderr io.Writer
}

// DefaultConfig returns the configuration used when nothing is enabled:
// info level, no file, no stderr.
func DefaultConfig() Config {
	return Config{
		Level:      "info",
		MaxSizeMB:  5,
		MaxBackups: 2,
	}
}

// DebugConfig returns configuration for --debug: debug level written to path.
func DebugConfig(path string) Config {
	cfg := DefaultConfig()
	cfg.Level = "debug"
	if path == "" {
		path = DefaultFile
	}
	cfg.FilePath = path
	return cfg
}

// Setup builds a logger from cfg and returns it with a cleanup function that
// closes the log file. With neither a file nor stderr the logger discards.
func Setup(cfg Config) (*slog.Logger, func(), error) {
	var writers []io.Writer
	cleanup := func() {}

	if cfg.FilePath != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.FilePath), 0o755); err != nil {
			return nil, nil, fmt.Errorf("failed to create log directory: %w", err)
		}

		maxSize := cfg.MaxSizeMB
		if maxSize <= 0 {
			maxSize = DefaultConfig().MaxSizeMB
		}
		fileWriter := &lumberjack.Logger{
			Filename:   cfg.FilePath,
			MaxSize:    maxSize,
			MaxBackups: cfg.MaxBackups,
			LocalTime:  true,
			Compress:   false,
		}
		writers = append(writers, fileWriter)
		cleanup = func() { _ = fileWriter.Close() }
	}

	if cfg.WriteToStderr {
		stderr := cfg.Stderr
		if stderr == nil {
			stderr = os.Stderr
		}
		writers = append(writers, stderr)
	}

	var output io.Writer
	switch len(writers) {
	case 0:
		output = io.Discard
	case 1:
		output = writers[0]
	default:
		output = io.MultiWriter(writers...)
	}

	handler := slog.NewJSONHandler(output, &slog.HandlerOptions{
		Level: parseLevel(cfg.Level),
	})

	return slog.New(handler), cleanup, nil
}

// Discard returns a logger that drops everything.
func Discard() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

// parseLevel converts string level to slog.Level.
func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// ValidLevel reports whether level names a known log level.
func ValidLevel(level string) bool {
	switch strings.ToLower(level) {
	case "debug", "info", "warn", "warning", "error":
		return true
	}
	return false
}
