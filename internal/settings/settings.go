// Package settings generates the host's hook registration and merges it into
// a settings file such as .claude/settings.local.json.
package settings

import (
	"bytes"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	vherrors "github.com/dg-vibecoding/vibehooks/internal/errors"
	"github.com/dg-vibecoding/vibehooks/internal/hook"
)

// DefaultPath is the settings file written by install, relative to the
// project directory.
const DefaultPath = ".claude/settings.local.json"

// HandlerCommand is the only handler type vibehooks registers.
const HandlerCommand = "command"

// HookHandler is a single hook action in the host's settings format.
type HookHandler struct {
	Type    string `json:"type"`
	Command string `json:"command,omitempty"`
	Timeout int    `json:"timeout,omitempty"`
	Once    bool   `json:"once,omitempty"`
}

// HookMatcherGroup is a matcher regex paired with one or more handlers.
type HookMatcherGroup struct {
	Matcher string        `json:"matcher,omitempty"`
	Hooks   []HookHandler `json:"hooks"`
}

// HookConfig maps event names to matcher groups. It is the value of the
// "hooks" key.
type HookConfig map[string][]HookMatcherGroup

// onceHandler is implemented by handlers that should run only once per
// session.
type onceHandler interface {
	Once() bool
}

// Command returns the command line the host runs for a hook.
func Command(binary, name string) string {
	return shellQuote(binary) + " hook " + name
}

// Build produces the hooks object for every enabled handler in the registry.
// Handlers sharing an event and matcher are grouped in registration order.
func Build(reg *hook.Registry, binary string) HookConfig {
	hc := HookConfig{}
	for _, event := range hook.Events() {
		var groups []HookMatcherGroup
		index := map[string]int{}

		for _, h := range reg.ForEvent(event) {
			if !hook.IsEnabled(h) {
				continue
			}
			handler := HookHandler{Type: HandlerCommand, Command: Command(binary, h.Name())}
			if o, ok := h.(onceHandler); ok && o.Once() {
				handler.Once = true
			}

			i, ok := index[h.Matcher()]
			if !ok {
				i = len(groups)
				index[h.Matcher()] = i
				groups = append(groups, HookMatcherGroup{Matcher: h.Matcher()})
			}
			groups[i].Hooks = append(groups[i].Hooks, handler)
		}

		if len(groups) > 0 {
			hc[string(event)] = groups
		}
	}
	return hc
}

// MarshalSettingsJSON serializes the config as {"hooks": {...}}.
func (hc HookConfig) MarshalSettingsJSON() ([]byte, error) {
	wrapper := struct {
		Hooks HookConfig `json:"hooks"`
	}{
		Hooks: hc,
	}
	return json.MarshalIndent(wrapper, "", "  ")
}

// Merge installs hooks into the settings file at path. Every other top-level
// key is preserved, as are hook entries that do not run binary; entries that
// do are replaced. The file and its directory are created when missing.
func Merge(path string, hooks HookConfig, binary string) error {
	doc := map[string]json.RawMessage{}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if len(bytes.TrimSpace(data)) > 0 {
			if err := json.Unmarshal(data, &doc); err != nil {
				return vherrors.New(vherrors.ErrCodeFileCorrupt, "failed to parse "+path, err).
					WithSuggestion("Fix the JSON syntax or move the file aside and re-run install")
			}
		}
	case errors.Is(err, fs.ErrNotExist):
	default:
		return vherrors.IOError("failed to read "+path, err)
	}

	existing := map[string][]json.RawMessage{}
	if raw, ok := doc["hooks"]; ok {
		if err := json.Unmarshal(raw, &existing); err != nil {
			return vherrors.New(vherrors.ErrCodeFileCorrupt, "unexpected \"hooks\" value in "+path, err)
		}
	}

	merged, err := mergeHooks(existing, hooks, binary)
	if err != nil {
		return err
	}
	raw, err := json.Marshal(merged)
	if err != nil {
		return vherrors.InternalError("failed to encode hooks", err)
	}
	doc["hooks"] = raw

	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return vherrors.InternalError("failed to encode settings", err)
	}
	out = append(out, '\n')

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return vherrors.IOError("failed to create settings directory", err)
	}
	if err := os.WriteFile(path, out, 0o644); err != nil {
		return vherrors.IOError("failed to write "+path, err)
	}
	return nil
}

// mergeHooks drops handlers that run binary from existing, drops groups left
// empty, then appends the new groups. Existing groups stay raw so keys this
// package does not model (prompt handlers, model, an empty matcher) survive.
func mergeHooks(existing map[string][]json.RawMessage, hooks HookConfig, binary string) (map[string][]json.RawMessage, error) {
	prefix := shellQuote(binary) + " hook "
	out := map[string][]json.RawMessage{}

	for event, groups := range existing {
		for _, g := range groups {
			kept, ok, err := dropOwned(g, prefix)
			if err != nil {
				return nil, err
			}
			if ok {
				out[event] = append(out[event], kept)
			}
		}
	}

	for event, groups := range hooks {
		for _, g := range groups {
			raw, err := json.Marshal(g)
			if err != nil {
				return nil, vherrors.InternalError("failed to encode hooks", err)
			}
			out[event] = append(out[event], raw)
		}
	}
	return out, nil
}

// dropOwned removes handlers whose command starts with prefix from a matcher
// group. A group with nothing removed is returned byte for byte; ok is false
// when no handlers remain. Anything that is not a recognisable group is kept.
func dropOwned(group json.RawMessage, prefix string) (json.RawMessage, bool, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(group, &fields); err != nil {
		return group, true, nil
	}
	var handlers []json.RawMessage
	if err := json.Unmarshal(fields["hooks"], &handlers); err != nil {
		return group, true, nil
	}

	kept := make([]json.RawMessage, 0, len(handlers))
	for _, h := range handlers {
		var cmd struct {
			Command string `json:"command"`
		}
		if json.Unmarshal(h, &cmd) == nil && strings.HasPrefix(cmd.Command, prefix) {
			continue
		}
		kept = append(kept, h)
	}

	switch {
	case len(kept) == len(handlers):
		return group, true, nil
	case len(kept) == 0:
		return nil, false, nil
	}

	encoded, err := json.Marshal(kept)
	if err != nil {
		return nil, false, vherrors.InternalError("failed to encode hooks", err)
	}
	fields["hooks"] = encoded
	rewritten, err := json.Marshal(fields)
	if err != nil {
		return nil, false, vherrors.InternalError("failed to encode hooks", err)
	}
	return rewritten, true, nil
}

// shellQuote quotes s for a POSIX shell when it contains anything other
// than safe characters.
func shellQuote(s string) string {
	if s != "" && strings.IndexFunc(s, unsafeShellRune) < 0 {
		return s
	}
	return "'" + strings.ReplaceAll(s, "'", "'\\''") + "'"
}

func unsafeShellRune(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return false
	case strings.ContainsRune("-_./:@+=,", r):
		return false
	}
	return true
}
