package hook

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEvent_IsToolEvent(t *testing.T) {
	assert.True(t, PreToolUse.IsToolEvent())
	assert.True(t, PostToolUse.IsToolEvent())
	assert.False(t, SessionStart.IsToolEvent())
}

func TestRegistry(t *testing.T) {
	// Given: a registry with handlers on different events
	guard := &stubHandler{name: "block-env", event: PreToolUse, matcher: "Read|Grep"}
	tracker := &stubHandler{name: "usage-tracker", event: PostToolUse}
	session := &stubHandler{name: "session-init", event: SessionStart}
	r := NewRegistry(guard, tracker, session)

	// Then: lookups and ordering work
	got, err := r.Get("usage-tracker")
	assert.NoError(t, err)
	assert.Same(t, tracker, got)

	assert.Equal(t, []string{"block-env", "session-init", "usage-tracker"}, r.Names())
	assert.Equal(t, []Handler{guard, tracker, session}, r.Handlers())
	assert.Equal(t, []Handler{session}, r.ForEvent(SessionStart))

	_, err = r.Get("missing")
	assert.Error(t, err)
}

func TestRegistry_ReplaceKeepsPosition(t *testing.T) {
	first := &stubHandler{name: "a", event: PreToolUse}
	second := &stubHandler{name: "b", event: PreToolUse}
	r := NewRegistry(first, second)

	replacement := &stubHandler{name: "a", event: PostToolUse}
	r.Register(replacement)

	assert.Equal(t, []Handler{replacement, second}, r.Handlers())
}
