// Package tracker implements the usage-tracker hook. It records which
// skills, slash commands, subagents and tools the assistant invoked.
package tracker

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/dg-vibecoding/vibehooks/internal/hook"
	"github.com/dg-vibecoding/vibehooks/internal/output"
	"github.com/dg-vibecoding/vibehooks/internal/usagelog"
)

// Name is the hook's CLI name.
const Name = "usage-tracker"

// IconTracked prefixes the confirmation line.
const IconTracked = "📊"

// Recorder appends a usage description to the usage log.
// *usagelog.Logger satisfies it.
type Recorder interface {
	Log(description string)
}

// Tracker records tool usage after the tool ran.
type Tracker struct {
	recorder Recorder
	logger   *slog.Logger
}

// New creates a Tracker writing to recorder.
func New(recorder Recorder, logger *slog.Logger) *Tracker {
	if logger == nil {
		logger = slog.Default()
	}
	return &Tracker{recorder: recorder, logger: logger}
}

func (t *Tracker) Name() string { return Name }

func (t *Tracker) Event() hook.Event { return hook.PostToolUse }

func (t *Tracker) Matcher() string { return "Skill|SlashCommand|Task" }

// Handle records the usage and echoes it back to the host.
func (t *Tracker) Handle(_ context.Context, in *hook.Input, out *output.Writer) hook.Result {
	usage := Describe(in)

	if t.recorder != nil {
		t.recorder.Log(usage)
	}
	t.logger.Debug("usage tracked", "usage", usage, "session", in.SessionID)

	out.Status(IconTracked, "Tracked: "+usage)
	return hook.Allow()
}

// Describe turns a tool call into a usage description such as
// "SKILL: commit" or "AGENT: Explore (find callers)". The result is always
// a single line.
func Describe(in *hook.Input) string {
	tool := in.ToolName
	if tool == "" {
		tool = "unknown"
	}
	ti := in.ToolInput

	var usage string
	switch tool {
	case "Skill":
		usage = "SKILL: " + orDefault(ti.Skill, "unknown")
	case "SlashCommand":
		usage = "COMMAND: " + orDefault(ti.Command, "unknown")
	case "Task":
		usage = fmt.Sprintf("AGENT: %s (%s)", orDefault(ti.SubagentType, "general"), ti.Description)
	default:
		usage = "TOOL: " + tool
	}
	return usagelog.SingleLine(usage)
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
