// Package tidy turns a unified diff into chunks ready to be rendered.
//
// Parsing is forgiving: lines with an unexpected prefix are kept as context
// and never cause an error. Use unidiff.Check when strictness matters.
package tidy

import (
	"strings"

	"github.com/sokinpui/tidydiff.go/internal/unidiff"
)

// TidyDiff is a parsed diff, one DiffChunk per hunk.
type TidyDiff struct {
	chunks []*DiffChunk
}

// New parses diff. With resolveInsideChanges set, FindInsideChanges runs on
// every chunk. Blank context lines at the very end of the diff are dropped
// since there is nothing to display for them.
func New(diff string, resolveInsideChanges bool) *TidyDiff {
	t := &TidyDiff{}
	for _, hunk := range unidiff.Parse(trimTrailingBlank(diff)) {
		chunk := NewChunk(hunk.Header)
		oldNo, newNo := hunk.Header.SrcStart, hunk.Header.DstStart

		for _, raw := range hunk.Body {
			kind, content := classify(raw)
			switch kind {
			case Delete:
				chunk.AddLine(kind, Position{Old: oldNo}, content)
				oldNo++
			case Insert:
				chunk.AddLine(kind, Position{New: newNo}, content)
				newNo++
			default:
				chunk.AddLine(kind, Position{Old: oldNo, New: newNo}, content)
				oldNo++
				newNo++
			}
		}

		if resolveInsideChanges {
			chunk.FindInsideChanges()
		}
		t.chunks = append(t.chunks, chunk)
	}
	return t
}

// Chunks returns the parsed chunks in diff order.
func (t *TidyDiff) Chunks() []*DiffChunk {
	return t.chunks
}

func classify(raw string) (Kind, string) {
	if raw == "" {
		return Context, ""
	}
	switch raw[0] {
	case unidiff.PrefixContext:
		return Context, raw[1:]
	case unidiff.PrefixDelete:
		return Delete, raw[1:]
	case unidiff.PrefixInsert:
		return Insert, raw[1:]
	default:
		return Context, raw
	}
}

func trimTrailingBlank(diff string) string {
	lines := strings.Split(strings.TrimRight(diff, "\n"), "\n")
	end := len(lines)
	for end > 0 && strings.TrimSpace(lines[end-1]) == "" {
		end--
	}
	return strings.Join(lines[:end], "\n")
}
