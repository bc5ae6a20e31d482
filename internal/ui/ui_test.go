package ui

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsTTY_NilWriter(t *testing.T) {
	assert.False(t, IsTTY(nil))
}

func TestIsTTY_Buffer(t *testing.T) {
	// Given: a non-file writer
	buf := &bytes.Buffer{}

	// Then: it is never a terminal
	assert.False(t, IsTTY(buf))
}

func TestIsTTY_RegularFile(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "out")
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = f.Close() }()

	assert.False(t, IsTTY(f))
}

func TestDetectNoColor(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	assert.True(t, DetectNoColor())
}

func TestUseColor_ForceOff(t *testing.T) {
	// Given: color forced off
	// Then: even stdout never gets color
	assert.False(t, UseColor(os.Stdout, true))
}

func TestUseColor_NoColorEnv(t *testing.T) {
	t.Setenv("NO_COLOR", "")
	assert.False(t, UseColor(os.Stdout, false))
}

func TestUseColor_NonTerminal(t *testing.T) {
	assert.False(t, UseColor(&bytes.Buffer{}, false))
}
