package hook

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/dg-vibecoding/vibehooks/internal/errors"
)

// MaxInputBytes caps how much of stdin is read. Payloads are small JSON
// objects; anything larger is rejected rather than buffered.
const MaxInputBytes = 1 << 20

// Input is the JSON payload the host sends on stdin.
type Input struct {
	SessionID      string    `json:"session_id,omitempty"`
	TranscriptPath string    `json:"transcript_path,omitempty"`
	Cwd            string    `json:"cwd,omitempty"`
	HookEventName  string    `json:"hook_event_name,omitempty"`
	ToolName       string    `json:"tool_name,omitempty"`
	ToolInput      ToolInput `json:"tool_input"`
	Source         string    `json:"source,omitempty"`
}

// ToolInput holds the tool arguments the handlers look at. Unknown fields
// are ignored.
type ToolInput struct {
	FilePath     string `json:"file_path,omitempty"`
	Path         string `json:"path,omitempty"`
	Pattern      string `json:"pattern,omitempty"`
	Command      string `json:"command,omitempty"`
	Skill        string `json:"skill,omitempty"`
	SubagentType string `json:"subagent_type,omitempty"`
	Description  string `json:"description,omitempty"`
}

// TargetPath returns file_path, falling back to path.
func (t ToolInput) TargetPath() string {
	if t.FilePath != "" {
		return t.FilePath
	}
	return t.Path
}

// ReadInput reads the whole payload from r and decodes it.
// Empty input decodes to an empty Input.
func ReadInput(r io.Reader) (*Input, error) {
	if r == nil {
		return &Input{}, nil
	}

	data, err := io.ReadAll(io.LimitReader(r, MaxInputBytes+1))
	if err != nil {
		return nil, errors.InputError("failed to read hook input", err)
	}
	if len(data) > MaxInputBytes {
		return nil, errors.New(errors.ErrCodePayloadTooBig,
			fmt.Sprintf("hook input exceeds %d bytes", MaxInputBytes), nil)
	}
	return DecodeInput(data)
}

// DecodeInput decodes a payload already in memory.
func DecodeInput(data []byte) (*Input, error) {
	in := &Input{}
	if len(bytes.TrimSpace(data)) == 0 {
		return in, nil
	}
	if err := json.Unmarshal(data, in); err != nil {
		return nil, errors.InputError("invalid hook input: "+err.Error(), err).
			WithDetail("bytes", fmt.Sprint(len(data)))
	}
	return in, nil
}

// HasExtension reports whether path ends in "."+ext for one of exts.
// Extensions may be given with or without the leading dot and compare
// case-sensitively.
func HasExtension(path string, exts []string) bool {
	ext := filepath.Ext(path)
	if ext == "" {
		return false
	}
	for _, e := range exts {
		if strings.TrimPrefix(e, ".") == ext[1:] {
			return true
		}
	}
	return false
}
