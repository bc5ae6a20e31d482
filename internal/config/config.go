package config

import (
	"bytes"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/docker/go-units"
	"github.com/google/shlex"
	"gopkg.in/yaml.v3"

	"github.com/dg-vibecoding/vibehooks/internal/errors"
)

// File names.
const (
	ProjectFileYAML = ".vibehooks.yaml"
	ProjectFileYML  = ".vibehooks.yml"
	appName         = "vibehooks"
)

// Config represents the complete vibehooks configuration.
type Config struct {
	Version   int            `yaml:"version" json:"version"`
	UsageLog  UsageLogConfig `yaml:"usage_log" json:"usage_log"`
	Guard     GuardConfig    `yaml:"guard" json:"guard"`
	Format    ToolConfig     `yaml:"format" json:"format"`
	TypeCheck ToolConfig     `yaml:"typecheck" json:"typecheck"`
	Git       GitConfig      `yaml:"git" json:"git"`
	Session   SessionConfig  `yaml:"session" json:"session"`
	Logging   LoggingConfig  `yaml:"logging" json:"logging"`

	// Sources lists the files that were merged, lowest precedence first.
	Sources []string `yaml:"-" json:"-"`
}

// UsageLogConfig configures the usage log.
type UsageLogConfig struct {
	// Path is relative to the project directory unless absolute.
	Path string `yaml:"path" json:"path"`

	// BackupSuffix names the single rotated generation (<path><suffix>).
	BackupSuffix string `yaml:"backup_suffix" json:"backup_suffix"`

	// MaxSize is the rotation threshold, e.g. "100KiB" or "1MB".
	MaxSize string `yaml:"max_size" json:"max_size"`

	// Lock takes a cross-process file lock around rotate and append.
	Lock bool `yaml:"lock" json:"lock"`

	// LockTimeout bounds the wait for the lock, e.g. "2s".
	LockTimeout string `yaml:"lock_timeout" json:"lock_timeout"`
}

// GuardConfig configures block-env.
type GuardConfig struct {
	// Patterns replaces the built-in sensitive patterns when set.
	Patterns []string `yaml:"patterns" json:"patterns"`

	// ExtraPatterns are added to Patterns. Values from every config layer
	// accumulate.
	ExtraPatterns []string `yaml:"extra_patterns,omitempty" json:"extra_patterns,omitempty"`
}

// ToolConfig configures an external tool hook (auto-format, type-check).
type ToolConfig struct {
	Enabled    bool     `yaml:"enabled" json:"enabled"`
	Command    string   `yaml:"command" json:"command"`
	Extensions []string `yaml:"extensions" json:"extensions"`
	Timeout    string   `yaml:"timeout" json:"timeout"`
}

// GitConfig configures git-context.
type GitConfig struct {
	LogCount int    `yaml:"log_count" json:"log_count"`
	Timeout  string `yaml:"timeout" json:"timeout"`
}

// SessionConfig configures session-init.
type SessionConfig struct {
	ProjectFile string `yaml:"project_file" json:"project_file"`
	SprintFile  string `yaml:"sprint_file" json:"sprint_file"`
}

// LoggingConfig configures diagnostic logging. Hooks never log to stderr
// unless Stderr is set, because the host shows a hook's stderr to the
// assistant.
type LoggingConfig struct {
	Level      string `yaml:"level" json:"level"`
	File       string `yaml:"file" json:"file"`
	MaxSizeMB  int    `yaml:"max_size_mb" json:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups" json:"max_backups"`
	Stderr     bool   `yaml:"stderr" json:"stderr"`
}

// NewConfig returns a Config with default values.
func NewConfig() *Config {
	return &Config{
		Version: 1,
		UsageLog: UsageLogConfig{
			Path:         ".claude/usage.log",
			BackupSuffix: ".old",
			MaxSize:      "100KiB",
			Lock:         false,
			LockTimeout:  "2s",
		},
		Guard: GuardConfig{
			Patterns: []string{
				".env", "credentials", "secrets", ".pem", ".key",
				"private_key", "api_key", "password", ".secret",
			},
		},
		Format: ToolConfig{
			Enabled:    true,
			Command:    "npx prettier --write",
			Extensions: []string{"js", "jsx", "ts", "tsx", "json", "css", "scss", "md"},
			Timeout:    "10s",
		},
		TypeCheck: ToolConfig{
			Enabled:    true,
			Command:    "npx tsc --noEmit",
			Extensions: []string{"ts", "tsx"},
			Timeout:    "30s",
		},
		Git: GitConfig{
			LogCount: 20,
			Timeout:  "5s",
		},
		Session: SessionConfig{
			ProjectFile: "PROJECT.md",
			SprintFile:  "sprint/sprint.json",
		},
		Logging: LoggingConfig{
			Level:      "info",
			MaxSizeMB:  5,
			MaxBackups: 2,
		},
	}
}

// GetUserConfigPath returns the path to the user/global configuration file.
// It follows XDG Base Directory specification:
//   - $XDG_CONFIG_HOME/vibehooks/config.yaml (if XDG_CONFIG_HOME is set)
//   - ~/.config/vibehooks/config.yaml (default)
func GetUserConfigPath() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, appName, "config.yaml")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), ".config", appName, "config.yaml")
	}
	return filepath.Join(home, ".config", appName, "config.yaml")
}

// ProjectConfigPath returns the project config file in dir: .vibehooks.yaml,
// else an existing .vibehooks.yml, else the .yaml path.
func ProjectConfigPath(dir string) string {
	yamlPath := filepath.Join(dir, ProjectFileYAML)
	if fileExists(yamlPath) {
		return yamlPath
	}
	ymlPath := filepath.Join(dir, ProjectFileYML)
	if fileExists(ymlPath) {
		return ymlPath
	}
	return yamlPath
}

// Load loads configuration for the project in dir.
// It applies configuration in order of increasing precedence:
//  1. Hardcoded defaults
//  2. User/global config (~/.config/vibehooks/config.yaml)
//  3. Project config (.vibehooks.yaml in the project directory)
//  4. Environment variables (VIBEHOOKS_*)
func Load(dir string) (*Config, error) {
	cfg := NewConfig()

	if userPath := GetUserConfigPath(); fileExists(userPath) {
		if err := cfg.loadYAML(userPath); err != nil {
			return nil, err
		}
	}

	if projectPath := ProjectConfigPath(dir); fileExists(projectPath) {
		if err := cfg.loadYAML(projectPath); err != nil {
			return nil, err
		}
	}

	cfg.applyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// loadYAML decodes a file over the current values. Keys absent from the file
// keep their current value, so booleans can be switched off explicitly.
func (c *Config) loadYAML(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.New(errors.ErrCodeConfigNotFound, "failed to read config file "+path, err)
	}

	extra := c.Guard.ExtraPatterns
	c.Guard.ExtraPatterns = nil

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !stderrors.Is(err, io.EOF) {
		c.Guard.ExtraPatterns = extra
		return errors.New(errors.ErrCodeConfigParse, "failed to parse config file "+path, err).
			WithDetail("path", path).
			WithSuggestion("Check the YAML syntax and key names against 'vibehooks config show'")
	}

	c.Guard.ExtraPatterns = append(extra, c.Guard.ExtraPatterns...)
	c.Sources = append(c.Sources, path)
	return nil
}

// applyEnvOverrides applies VIBEHOOKS_* environment variable overrides.
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("VIBEHOOKS_USAGE_LOG"); v != "" {
		c.UsageLog.Path = v
	}
	if v := os.Getenv("VIBEHOOKS_USAGE_MAX_SIZE"); v != "" {
		c.UsageLog.MaxSize = v
	}
	if v := os.Getenv("VIBEHOOKS_USAGE_LOCK"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.UsageLog.Lock = b
		}
	}
	if v := os.Getenv("VIBEHOOKS_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv("VIBEHOOKS_DEBUG_LOG"); v != "" {
		c.Logging.File = v
	}
	if v := os.Getenv("VIBEHOOKS_FORMAT_COMMAND"); v != "" {
		c.Format.Command = v
	}
	if v := os.Getenv("VIBEHOOKS_TYPECHECK_COMMAND"); v != "" {
		c.TypeCheck.Command = v
	}
}

// Validate validates the configuration and returns an error if invalid.
func (c *Config) Validate() error {
	if c.UsageLog.Path == "" {
		return invalid("usage_log.path must not be empty")
	}
	if c.UsageLog.BackupSuffix == "" {
		return invalid("usage_log.backup_suffix must not be empty")
	}
	if size, err := units.RAMInBytes(c.UsageLog.MaxSize); err != nil {
		return invalid(fmt.Sprintf("usage_log.max_size: %v", err))
	} else if size <= 0 {
		return invalid(fmt.Sprintf("usage_log.max_size must be positive, got %s", c.UsageLog.MaxSize))
	}

	durations := []struct{ key, value string }{
		{"usage_log.lock_timeout", c.UsageLog.LockTimeout},
		{"format.timeout", c.Format.Timeout},
		{"typecheck.timeout", c.TypeCheck.Timeout},
		{"git.timeout", c.Git.Timeout},
	}
	for _, d := range durations {
		v, err := time.ParseDuration(d.value)
		if err != nil {
			return invalid(fmt.Sprintf("%s: %v", d.key, err))
		}
		if v <= 0 {
			return invalid(fmt.Sprintf("%s must be positive, got %s", d.key, d.value))
		}
	}

	commands := []struct{ key, value string }{
		{"format.command", c.Format.Command},
		{"typecheck.command", c.TypeCheck.Command},
	}
	for _, cmd := range commands {
		argv, err := shlex.Split(cmd.value)
		if err != nil {
			return invalid(fmt.Sprintf("%s: %v", cmd.key, err))
		}
		if len(argv) == 0 {
			return invalid(cmd.key + " must not be empty")
		}
	}

	if c.Git.LogCount <= 0 {
		return invalid(fmt.Sprintf("git.log_count must be positive, got %d", c.Git.LogCount))
	}
	if c.Logging.MaxSizeMB < 0 || c.Logging.MaxBackups < 0 {
		return invalid("logging.max_size_mb and logging.max_backups must be non-negative")
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "warning": true, "error": true}
	if !validLevels[strings.ToLower(c.Logging.Level)] {
		return invalid(fmt.Sprintf("logging.level must be 'debug', 'info', 'warn', or 'error', got %s", c.Logging.Level))
	}

	return nil
}

func invalid(msg string) error {
	return errors.ConfigError(msg, nil).
		WithSuggestion("Fix the value in " + ProjectFileYAML + " or " + GetUserConfigPath())
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := c.YAML()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.IOError("failed to create config directory", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.IOError("failed to write config file", err)
	}
	return nil
}

// YAML renders the configuration.
func (c *Config) YAML() ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return nil, errors.InternalError("failed to marshal config", err)
	}
	if err := enc.Close(); err != nil {
		return nil, errors.InternalError("failed to marshal config", err)
	}
	return buf.Bytes(), nil
}

// MaxSizeBytes returns the parsed rotation threshold.
// Call after Validate; an unparseable value yields 0.
func (u UsageLogConfig) MaxSizeBytes() int64 {
	size, err := units.RAMInBytes(u.MaxSize)
	if err != nil {
		return 0
	}
	return size
}

// GuardPatterns returns Patterns followed by ExtraPatterns.
func (g GuardConfig) GuardPatterns() []string {
	out := make([]string, 0, len(g.Patterns)+len(g.ExtraPatterns))
	out = append(out, g.Patterns...)
	return append(out, g.ExtraPatterns...)
}

// Argv splits Command into program and arguments.
func (t ToolConfig) Argv() []string {
	argv, err := shlex.Split(t.Command)
	if err != nil {
		return nil
	}
	return argv
}

// Duration parses s, returning def when s is empty or invalid.
func Duration(s string, def time.Duration) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return def
	}
	return d
}

// ResolvePath makes p absolute against projectDir unless it already is.
func ResolvePath(projectDir, p string) string {
	if p == "" || filepath.IsAbs(p) || projectDir == "" {
		return p
	}
	return filepath.Join(projectDir, p)
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

func dirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
