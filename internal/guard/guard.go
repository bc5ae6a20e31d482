// Package guard implements the block-env hook, which stops the assistant
// from reading files that look like they hold secrets.
package guard

import (
	"context"
	"log/slog"
	"strings"

	"github.com/dg-vibecoding/vibehooks/internal/hook"
	"github.com/dg-vibecoding/vibehooks/internal/output"
)

// Name is the hook's CLI name.
const Name = "block-env"

// DefaultPatterns are the substrings that mark a path as sensitive.
var DefaultPatterns = []string{
	".env",
	"credentials",
	"secrets",
	".pem",
	".key",
	"private_key",
	"api_key",
	"password",
	".secret",
}

// Guard blocks Read and Grep calls on sensitive paths.
type Guard struct {
	patterns []string
	logger   *slog.Logger
}

// New creates a Guard. Patterns are matched case-insensitively as substrings
// of the path; an empty list uses DefaultPatterns.
func New(patterns []string, logger *slog.Logger) *Guard {
	if len(patterns) == 0 {
		patterns = DefaultPatterns
	}
	lower := make([]string, 0, len(patterns))
	for _, p := range patterns {
		if p = strings.ToLower(strings.TrimSpace(p)); p != "" {
			lower = append(lower, p)
		}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Guard{patterns: lower, logger: logger}
}

func (g *Guard) Name() string { return Name }

func (g *Guard) Event() hook.Event { return hook.PreToolUse }

func (g *Guard) Matcher() string { return "Read|Grep" }

// Handle blocks when the target path contains a sensitive pattern.
func (g *Guard) Handle(_ context.Context, in *hook.Input, out *output.Writer) hook.Result {
	path := strings.ToLower(in.ToolInput.TargetPath())

	pattern, blocked := g.Check(path)
	if !blocked {
		return hook.Allow()
	}

	g.logger.Info("blocked sensitive path", "path", path, "pattern", pattern, "tool", in.ToolName)
	out.Status(output.IconBlocked, `BLOCKED: "`+path+`" contains sensitive data.`)
	out.Status("", "Add to .gitignore and use environment variables instead.")
	return hook.Block()
}

// Check reports the first pattern contained in path. Path is compared
// case-insensitively.
func (g *Guard) Check(path string) (string, bool) {
	if path == "" {
		return "", false
	}
	path = strings.ToLower(path)
	for _, p := range g.patterns {
		if strings.Contains(path, p) {
			return p, true
		}
	}
	return "", false
}

// Patterns returns the active patterns.
func (g *Guard) Patterns() []string {
	out := make([]string, len(g.patterns))
	copy(out, g.patterns)
	return out
}
