package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Color palette.
const (
	ColorLime     = "154"
	ColorCyan     = "87"
	ColorMagenta  = "177"
	ColorWhite    = "255"
	ColorGray     = "245"
	ColorDarkGray = "238"
	ColorRed      = "196"
	ColorYellow   = "220"
)

// Styles holds the styles used by the usage viewer and CLI reports.
type Styles struct {
	Header  lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style
	Dim     lipgloss.Style
	Label   lipgloss.Style

	// Per entry kind
	Skill   lipgloss.Style
	Command lipgloss.Style
	Agent   lipgloss.Style
	Tool    lipgloss.Style
	Session lipgloss.Style
}

// DefaultStyles returns coloured styles.
func DefaultStyles() Styles {
	return Styles{
		Header:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(ColorLime)),
		Success: lipgloss.NewStyle().Foreground(lipgloss.Color(ColorLime)),
		Warning: lipgloss.NewStyle().Foreground(lipgloss.Color(ColorYellow)),
		Error:   lipgloss.NewStyle().Foreground(lipgloss.Color(ColorRed)),
		Dim:     lipgloss.NewStyle().Foreground(lipgloss.Color(ColorDarkGray)),
		Label:   lipgloss.NewStyle().Foreground(lipgloss.Color(ColorGray)),

		Skill:   lipgloss.NewStyle().Foreground(lipgloss.Color(ColorLime)),
		Command: lipgloss.NewStyle().Foreground(lipgloss.Color(ColorCyan)),
		Agent:   lipgloss.NewStyle().Foreground(lipgloss.Color(ColorMagenta)),
		Tool:    lipgloss.NewStyle().Foreground(lipgloss.Color(ColorGray)),
		Session: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(ColorYellow)),
	}
}

// NoColorStyles returns unstyled components for plain mode.
func NoColorStyles() Styles {
	return Styles{
		Header:  lipgloss.NewStyle(),
		Success: lipgloss.NewStyle(),
		Warning: lipgloss.NewStyle(),
		Error:   lipgloss.NewStyle(),
		Dim:     lipgloss.NewStyle(),
		Label:   lipgloss.NewStyle(),
		Skill:   lipgloss.NewStyle(),
		Command: lipgloss.NewStyle(),
		Agent:   lipgloss.NewStyle(),
		Tool:    lipgloss.NewStyle(),
		Session: lipgloss.NewStyle(),
	}
}

// Kind returns the style for a usage entry kind such as "SKILL" or "AGENT".
func (s Styles) Kind(kind string) lipgloss.Style {
	switch strings.ToUpper(kind) {
	case "SKILL":
		return s.Skill
	case "COMMAND":
		return s.Command
	case "AGENT":
		return s.Agent
	case "TOOL":
		return s.Tool
	case "SESSION_START":
		return s.Session
	default:
		return s.Label
	}
}
