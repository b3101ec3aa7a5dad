package ui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sokinpui/tidydiff.go/model"
)

func capture(t *testing.T) *bytes.Buffer {
	t.Helper()
	SetColor(false)
	var buf bytes.Buffer
	prev := SetOutput(&buf)
	t.Cleanup(func() { SetOutput(prev) })
	return &buf
}

func TestPrintSummary(t *testing.T) {
	buf := capture(t)
	PrintSummary("Summary", model.Summary{
		Modified: []string{"a.txt", "b.txt"},
		Failed:   []string{"c.txt"},
	})

	assert.Equal(t, "\n--- Summary ---\n"+
		"Modified 2 file(s):\n  - a.txt\n  - b.txt\n"+
		"Failed to process 1 item(s):\n  - c.txt\n", buf.String())
}

func TestPrintSummary_Empty(t *testing.T) {
	buf := capture(t)
	PrintSummary("Check", model.Summary{})
	assert.Contains(t, buf.String(), "Nothing to do.")

	buf.Reset()
	PrintSummary("Check", model.Summary{Message: "100% done"})
	assert.Contains(t, buf.String(), "100% done\n")
	assert.NotContains(t, buf.String(), "Nothing to do.")
}

func TestProgressBar(t *testing.T) {
	buf := capture(t)
	bar := NewProgressBar(4, "Applying")
	bar.Set(0)
	bar.Set(2)
	bar.Set(9)
	bar.Finish()

	frames := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\r")[1:]
	assert.Len(t, frames, 3)
	assert.Contains(t, frames[0], "[0/4] 0.0%")
	assert.Contains(t, frames[1], strings.Repeat("█", 20)+strings.Repeat("-", 20))
	assert.Contains(t, frames[2], "[4/4] 100.0%")
}

func TestProgressBar_ZeroTotal(t *testing.T) {
	buf := capture(t)
	bar := NewProgressBar(0, "x")
	bar.Set(1)
	bar.Finish()
	assert.Empty(t, buf.String())
}
