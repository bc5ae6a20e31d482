package usagelog

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const (
	// DefaultPath is the usage log location relative to the project directory.
	DefaultPath = ".claude/usage.log"
	// DefaultBackupSuffix is appended to the log path to name the backup file.
	DefaultBackupSuffix = ".old"
	// DefaultMaxSize is the rotation threshold in bytes (100 KiB).
	DefaultMaxSize int64 = 100 * 1024
	// DefaultLockTimeout bounds how long Record waits for the cross-process lock.
	DefaultLockTimeout = 2 * time.Second

	// TimestampFormat is the UTC millisecond ISO-8601 layout used for entries.
	TimestampFormat = "2006-01-02T15:04:05.000Z"

	// Separator sits between the timestamp and the description.
	Separator = " | "
)

// Config contains usage log configuration.
type Config struct {
	// Path is the log file path.
	Path string
	// BackupSuffix names the backup file as Path+BackupSuffix.
	BackupSuffix string
	// MaxSize is the size in bytes the log may reach before the next append rotates it.
	MaxSize int64
	// Lock takes an advisory lock on Path+".lock" around rotate and append.
	Lock bool
	// LockTimeout bounds the wait for the lock. On timeout the append proceeds unlocked.
	LockTimeout time.Duration
}

// DefaultConfig returns the defaults used by the hooks.
func DefaultConfig() Config {
	return Config{
		Path:         DefaultPath,
		BackupSuffix: DefaultBackupSuffix,
		MaxSize:      DefaultMaxSize,
		Lock:         false,
		LockTimeout:  DefaultLockTimeout,
	}
}

// Logger appends entries to a size-bounded usage log.
// A Logger holds no file handles between calls; all state lives on disk.
type Logger struct {
	cfg  Config
	now  func() time.Time
	diag *slog.Logger
}

// Option configures a Logger.
type Option func(*Logger)

// WithClock sets the clock used by Log to timestamp entries.
func WithClock(now func() time.Time) Option {
	return func(l *Logger) {
		if now != nil {
			l.now = now
		}
	}
}

// WithLogger sets the diagnostic logger that receives swallowed errors.
func WithLogger(logger *slog.Logger) Option {
	return func(l *Logger) {
		if logger != nil {
			l.diag = logger
		}
	}
}

// New creates a Logger. Zero-valued fields in cfg fall back to DefaultConfig.
func New(cfg Config, opts ...Option) *Logger {
	defaults := DefaultConfig()
	if cfg.Path == "" {
		cfg.Path = defaults.Path
	}
	if cfg.BackupSuffix == "" {
		cfg.BackupSuffix = defaults.BackupSuffix
	}
	if cfg.MaxSize <= 0 {
		cfg.MaxSize = defaults.MaxSize
	}
	if cfg.LockTimeout <= 0 {
		cfg.LockTimeout = defaults.LockTimeout
	}

	l := &Logger{
		cfg:  cfg,
		now:  time.Now,
		diag: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Path returns the log file path.
func (l *Logger) Path() string {
	return l.cfg.Path
}

// BackupPath returns the path of the single rotation backup.
func (l *Logger) BackupPath() string {
	return l.cfg.Path + l.cfg.BackupSuffix
}

// MaxSize returns the rotation threshold in bytes.
func (l *Logger) MaxSize() int64 {
	return l.cfg.MaxSize
}

// Log timestamps description with the logger's clock and records it.
func (l *Logger) Log(description string) {
	if l == nil {
		return
	}
	l.Record(FormatEntry(l.now(), description))
}

// Record appends entry as one line, rotating first when the log has grown
// past MaxSize. It never fails observably: every I/O error is discarded after
// being reported to the diagnostic logger.
func (l *Logger) Record(entry string) {
	if l == nil {
		return
	}
	if err := l.record(entry); err != nil {
		l.diag.Debug("usage log append skipped",
			slog.String("path", l.cfg.Path),
			slog.String("error", err.Error()))
	}
}

func (l *Logger) record(entry string) error {
	if err := os.MkdirAll(filepath.Dir(l.cfg.Path), 0o755); err != nil {
		// The append below reports the real failure if the directory is still missing.
		l.diag.Debug("failed to create usage log directory",
			slog.String("dir", filepath.Dir(l.cfg.Path)),
			slog.String("error", err.Error()))
	}

	if l.cfg.Lock {
		unlock := l.lock()
		defer unlock()
	}

	if err := l.rotateIfNeeded(); err != nil {
		// Keep appending to the current file if rotation fails.
		l.diag.Debug("usage log rotation failed",
			slog.String("path", l.cfg.Path),
			slog.String("error", err.Error()))
	}

	return l.append(entry)
}

// lock acquires the advisory lock and returns its release function.
// Failing to lock is not fatal: the returned function is then a no-op.
func (l *Logger) lock() func() {
	fl := NewFileLock(l.cfg.Path + ".lock")
	acquired, err := fl.TryLockTimeout(l.cfg.LockTimeout)
	if err != nil || !acquired {
		l.diag.Debug("usage log lock not acquired, continuing unlocked",
			slog.String("lock", fl.path),
			slog.Bool("timeout", err == nil))
		return func() {}
	}
	return func() { _ = fl.Unlock() }
}

// rotateIfNeeded moves the log to the backup path when it exceeds MaxSize.
// usage.log -> usage.log.old, replacing any previous backup.
func (l *Logger) rotateIfNeeded() error {
	info, err := os.Stat(l.cfg.Path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to stat usage log: %w", err)
	}

	if info.Size() <= l.cfg.MaxSize {
		return nil
	}

	backup := l.BackupPath()
	if err := os.Remove(backup); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to remove old backup: %w", err)
	}
	if err := os.Rename(l.cfg.Path, backup); err != nil {
		return fmt.Errorf("failed to rotate usage log: %w", err)
	}

	l.diag.Debug("usage log rotated",
		slog.String("path", l.cfg.Path),
		slog.String("backup", backup),
		slog.Int64("size", info.Size()))
	return nil
}

// append writes entry plus a line terminator, creating the file if needed.
func (l *Logger) append(entry string) error {
	f, err := os.OpenFile(l.cfg.Path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open usage log: %w", err)
	}

	if _, err := f.WriteString(entry + "\n"); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to append usage entry: %w", err)
	}

	return f.Close()
}

// FormatEntry renders a log line (without terminator) for description at t.
func FormatEntry(t time.Time, description string) string {
	return t.UTC().Format(TimestampFormat) + Separator + description
}

// SingleLine collapses line breaks so description cannot span entries.
func SingleLine(description string) string {
	if !strings.ContainsAny(description, "\r\n") {
		return description
	}
	replacer := strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ")
	return replacer.Replace(description)
}
