package logger

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func withBuffer(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	SetOutput(&buf)
	t.Cleanup(func() {
		SetOutput(os.Stderr)
		SetVerbose(false)
	})
	return &buf
}

func TestLogger_SilentByDefault(t *testing.T) {
	buf := withBuffer(t)

	Debug("resolving %q", "rofst-1")
	Info("done")
	Warn("slow response")
	Section("Indicator Resolution")

	assert.Empty(t, buf.String())
}

func TestLogger_VerboseOutput(t *testing.T) {
	buf := withBuffer(t)
	SetVerbose(true)

	assert.True(t, IsVerbose())

	Debug("resolving %q", "rofst-1")
	Info("done")
	Warn("slow response")
	Section("Indicator Resolution")

	out := buf.String()
	assert.Contains(t, out, `[DEBUG] resolving "rofst-1"`)
	assert.Contains(t, out, "[INFO] done")
	assert.Contains(t, out, "[WARN] slow response")
	assert.Contains(t, out, "=== Indicator Resolution ===")
}
