package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNoColorStyles_RenderPlainText(t *testing.T) {
	// Given: no color styles
	styles := NoColorStyles()

	// When: rendering text with every style
	// Then: the text is returned unchanged
	assert.Equal(t, "x", styles.Header.Render("x"))
	assert.Equal(t, "x", styles.Skill.Render("x"))
	assert.Equal(t, "x", styles.Session.Render("x"))
}

func TestDefaultStyles_RenderContainsText(t *testing.T) {
	styles := DefaultStyles()
	assert.Contains(t, styles.Header.Render("Test"), "Test")
	assert.Contains(t, styles.Agent.Render("AGENT"), "AGENT")
}

func TestStyles_Kind(t *testing.T) {
	styles := DefaultStyles()

	tests := []struct {
		kind string
		want string
	}{
		{"SKILL", "skill"},
		{"skill", "skill"},
		{"COMMAND", "command"},
		{"AGENT", "agent"},
		{"TOOL", "tool"},
		{"SESSION_START", "session"},
		{"OTHER", "label"},
	}

	for _, tt := range tests {
		t.Run(tt.kind, func(t *testing.T) {
			got := styles.Kind(tt.kind)
			want := map[string]string{
				"skill":   styles.Skill.Render("k"),
				"command": styles.Command.Render("k"),
				"agent":   styles.Agent.Render("k"),
				"tool":    styles.Tool.Render("k"),
				"session": styles.Session.Render("k"),
				"label":   styles.Label.Render("k"),
			}[tt.want]
			assert.Equal(t, want, got.Render("k"))
		})
	}
}

func TestStylesFor(t *testing.T) {
	plain := StylesFor(false)
	assert.Equal(t, "abc", plain.Agent.Render("abc"))
}
