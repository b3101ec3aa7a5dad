// Package tidydiff computes, validates, applies and tidies line-based unified
// diffs.
//
// The functions in this file are pure and safe for concurrent use. App wraps
// them with file, clipboard, Neovim and undo-history handling for the
// tidydiff command.
package tidydiff

import (
	"strings"

	"github.com/sokinpui/tidydiff.go/internal/patcher"
	"github.com/sokinpui/tidydiff.go/internal/ses"
	"github.com/sokinpui/tidydiff.go/internal/tidy"
	"github.com/sokinpui/tidydiff.go/internal/unidiff"
)

type (
	// Op is one edit operation of a shortest edit script.
	Op = ses.Op
	// Chunk is one tidied hunk.
	Chunk = tidy.DiffChunk
	// Line is one line of a Chunk.
	Line = tidy.DiffLine
	// CheckError locates the defect Check found.
	CheckError = unidiff.CheckError
)

// Failure kinds returned by Check, for use with errors.Is.
var (
	ErrInvalidDiffFormat = unidiff.ErrInvalidDiffFormat
	ErrChunkOutOfRange   = unidiff.ErrChunkOutOfRange
	ErrInvalidLineNumber = unidiff.ErrInvalidLineNumber
	ErrInvalidRange      = unidiff.ErrInvalidRange
)

// Compare returns the shortest edit script turning src into dst.
func Compare(src, dst []string) []Op {
	return ses.Compute(src, dst)
}

// Diff returns the unified diff from old to new, or "" if they are equal.
func Diff(old, new string) string {
	return unidiff.Format(old, new)
}

// Patch applies diff to old without validating it.
func Patch(old, diff string) string {
	return patcher.Apply(old, diff)
}

// SafePatch applies diff to old after checking it.
func SafePatch(old, diff string) (string, error) {
	return patcher.SafeApply(old, diff)
}

// Check reports the first structural defect in diff, or nil.
func Check(diff string) error {
	return unidiff.Check(diff)
}

// Fix recomputes hunk header counts and start lines from the hunk bodies.
func Fix(diff string) string {
	return unidiff.Fix(diff)
}

// Reverse returns the diff that undoes diff.
func Reverse(diff string) string {
	return unidiff.Reverse(diff)
}

// Tidy parses diff into chunks. With inline set, matching delete and insert
// lines get their changed spans marked; see SplitMarks.
func Tidy(diff string, inline bool) []*Chunk {
	return tidy.New(diff, inline).Chunks()
}

// SplitMarks splits a marked line content around its changed span.
func SplitMarks(content string) (before, changed, after string, ok bool) {
	return tidy.SplitMarks(content)
}

// StripMarks removes inside-change markers from content.
func StripMarks(content string) string {
	return strings.NewReplacer(tidy.MarkStart, "", tidy.MarkEnd, "").Replace(content)
}
