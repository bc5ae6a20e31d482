// Package session implements the session-init hook: it marks the start of a
// session in the usage log and reports project state the assistant should
// know about.
package session

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/dg-vibecoding/vibehooks/internal/hook"
	"github.com/dg-vibecoding/vibehooks/internal/output"
)

// Name is the hook's CLI name.
const Name = "session-init"

// StartEntry is the usage log description written at session start.
const StartEntry = "SESSION_START"

// IconSprint prefixes the sprint status line.
const IconSprint = "📋"

// Defaults, relative to the project directory.
const (
	DefaultProjectFile = "PROJECT.md"
	DefaultSprintFile  = "sprint/sprint.json"
)

// Recorder appends a usage description to the usage log.
type Recorder interface {
	Log(description string)
}

// Config locates the files the hook inspects.
type Config struct {
	// ProjectDir is where relative paths are resolved.
	ProjectDir string
	// ProjectFile must exist, else a warning is printed.
	ProjectFile string
	// SprintFile is an optional JSON sprint plan.
	SprintFile string
}

// Sprint is the subset of sprint.json read by the hook.
type Sprint struct {
	Features []Feature `json:"features"`
}

// Feature is one sprint item.
type Feature struct {
	ID     FeatureID `json:"id"`
	Status string    `json:"status"`
}

// FeatureID is a feature identifier. Plans use both "F-2" and 2.
type FeatureID string

// UnmarshalJSON accepts a string or any other JSON scalar, which is kept as
// written.
func (id *FeatureID) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*id = FeatureID(s)
		return nil
	}
	*id = FeatureID(bytes.TrimSpace(data))
	return nil
}

// InProgress returns the IDs of features whose status is "in_progress".
func (s *Sprint) InProgress() []string {
	var ids []string
	for _, f := range s.Features {
		if f.Status == "in_progress" {
			ids = append(ids, string(f.ID))
		}
	}
	return ids
}

// Init is the session-init hook.
type Init struct {
	cfg      Config
	recorder Recorder
	logger   *slog.Logger
}

// New creates the hook. Empty file names use the defaults.
func New(cfg Config, recorder Recorder, logger *slog.Logger) *Init {
	if cfg.ProjectFile == "" {
		cfg.ProjectFile = DefaultProjectFile
	}
	if cfg.SprintFile == "" {
		cfg.SprintFile = DefaultSprintFile
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Init{cfg: cfg, recorder: recorder, logger: logger}
}

func (s *Init) Name() string { return Name }

func (s *Init) Event() hook.Event { return hook.SessionStart }

func (s *Init) Matcher() string { return "" }

// Once marks the hook as run-once-per-session in generated settings.
func (s *Init) Once() bool { return true }

// Handle records the session start and prints project warnings.
func (s *Init) Handle(_ context.Context, in *hook.Input, out *output.Writer) hook.Result {
	if s.recorder != nil {
		s.recorder.Log(StartEntry)
	}

	projectFile := s.resolve(s.cfg.ProjectFile)
	if _, err := os.Stat(projectFile); err != nil {
		s.logger.Debug("project file missing", "path", projectFile, "error", err)
		out.Warning(s.cfg.ProjectFile + " not found - run framework setup or create " + s.cfg.ProjectFile)
	}

	sprint, err := LoadSprint(s.resolve(s.cfg.SprintFile))
	if err != nil {
		s.logger.Debug("sprint file unreadable", "path", s.cfg.SprintFile, "error", err)
	}
	if sprint != nil {
		if ids := sprint.InProgress(); len(ids) > 0 {
			out.Status(IconSprint, "Sprint in progress: "+strings.Join(ids, ", "))
		}
	}

	s.logger.Debug("session started", "session", in.SessionID, "source", in.Source)
	return hook.Allow()
}

func (s *Init) resolve(path string) string {
	if filepath.IsAbs(path) || s.cfg.ProjectDir == "" {
		return path
	}
	return filepath.Join(s.cfg.ProjectDir, path)
}

// LoadSprint reads a sprint file. A missing file returns (nil, nil).
func LoadSprint(path string) (*Sprint, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}

	var sprint Sprint
	if err := json.Unmarshal(data, &sprint); err != nil {
		return nil, err
	}
	return &sprint, nil
}
