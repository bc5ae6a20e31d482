package usagelog

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummarize(t *testing.T) {
	// Given: a mix of entries including an unparseable line
	entries := []ParsedEntry{
		ParseLine("2026-01-01T00:00:02.000Z | SKILL: commit"),
		ParseLine("2026-01-01T00:00:00.000Z | SESSION_START"),
		ParseLine("2026-01-01T00:00:03.000Z | SKILL: commit"),
		ParseLine("2026-01-01T00:00:04.000Z | AGENT: Explore (scan)"),
		ParseLine("2026-01-01T00:00:05.000Z | SKILL: review"),
		ParseLine("junk"),
	}

	// When: summarising
	s := Summarize(entries)

	// Then: totals and bounds are computed from valid entries only
	assert.Equal(t, 5, s.Total)
	assert.Equal(t, 1, s.Invalid)
	assert.True(t, s.First.Equal(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)))
	assert.True(t, s.Last.Equal(time.Date(2026, 1, 1, 0, 0, 5, 0, time.UTC)))

	kinds := s.Kinds()
	require.Len(t, kinds, 3)
	assert.Equal(t, Count{Label: "SKILL", N: 3}, kinds[0])
	assert.Equal(t, Count{Label: "AGENT", N: 1}, kinds[1])
	assert.Equal(t, Count{Label: "SESSION_START", N: 1}, kinds[2])

	top := s.Top(1)
	require.Len(t, top, 1)
	assert.Equal(t, Count{Label: "SKILL: commit", N: 2}, top[0])
}

func TestSummarize_Empty(t *testing.T) {
	s := Summarize(nil)

	assert.Zero(t, s.Total)
	assert.True(t, s.First.IsZero())
	assert.Empty(t, s.Kinds())
	assert.Empty(t, s.Top(5))
}
