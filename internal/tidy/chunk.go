package tidy

import (
	"github.com/sokinpui/tidydiff.go/internal/ses"
	"github.com/sokinpui/tidydiff.go/internal/unidiff"
)

// Keys accepted by DiffChunk.Info.
const (
	InfoContext = "context"
	InfoDelete  = "delete"
	InfoInsert  = "insert"
	InfoRange   = "range"
)

// DiffChunk is one hunk prepared for display.
type DiffChunk struct {
	rng      unidiff.Header
	lines    []*DiffLine
	counts   [3]int
	resolved bool
}

// NewChunk returns an empty chunk covering rng.
func NewChunk(rng unidiff.Header) *DiffChunk {
	return &DiffChunk{rng: rng}
}

// AddLine appends a line and counts it under its kind.
func (c *DiffChunk) AddLine(kind Kind, pos Position, content string) {
	c.lines = append(c.lines, &DiffLine{Kind: kind, Pos: pos, content: content})
	if kind >= Context && kind <= Insert {
		c.counts[kind]++
	}
}

// Lines returns the lines in the order they were added.
func (c *DiffChunk) Lines() []*DiffLine {
	return c.lines
}

// Count returns how many lines of kind the chunk holds.
func (c *DiffChunk) Count(kind Kind) int {
	if kind < Context || kind > Insert {
		return 0
	}
	return c.counts[kind]
}

// Range returns the header the chunk was built from.
func (c *DiffChunk) Range() unidiff.Header {
	return c.rng
}

// Info looks a property up by name: "context", "delete" and "insert" give
// line counts, "range" gives the unidiff.Header. Unknown keys report false.
func (c *DiffChunk) Info(key string) (any, bool) {
	switch key {
	case InfoContext:
		return c.counts[Context], true
	case InfoDelete:
		return c.counts[Delete], true
	case InfoInsert:
		return c.counts[Insert], true
	case InfoRange:
		return c.rng, true
	default:
		return nil, false
	}
}

// FindInsideChanges marks the differing span of paired lines. It only acts
// when the chunk holds as many deleted as inserted lines: the i-th deleted
// line is paired with the i-th inserted one, and both get MarkStart after
// their common rune prefix and MarkEnd before their common rune suffix.
// Calling it again has no effect.
func (c *DiffChunk) FindInsideChanges() {
	if c.resolved {
		return
	}
	c.resolved = true

	var deleted, inserted []*DiffLine
	for _, line := range c.lines {
		switch line.Kind {
		case Delete:
			deleted = append(deleted, line)
		case Insert:
			inserted = append(inserted, line)
		}
	}
	if len(deleted) == 0 || len(deleted) != len(inserted) {
		return
	}

	for i := range deleted {
		a := []rune(deleted[i].content)
		b := []rune(inserted[i].content)
		prefix, suffix := ses.Trim(a, b)

		markedA := mark(a, prefix, suffix)
		markedB := mark(b, prefix, suffix)
		deleted[i].SetContent(&markedA)
		inserted[i].SetContent(&markedB)
	}
}

func mark(r []rune, prefix, suffix int) string {
	end := len(r) - suffix
	return string(r[:prefix]) + MarkStart + string(r[prefix:end]) + MarkEnd + string(r[end:])
}
