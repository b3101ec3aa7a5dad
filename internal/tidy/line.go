package tidy

import "strings"

// Markers bracketing the changed span of a line after FindInsideChanges.
const (
	MarkStart = "\x02"
	MarkEnd   = "\x03"
)

// Kind is the role of a line inside a chunk.
type Kind int

const (
	Context Kind = iota
	Delete
	Insert
)

func (k Kind) String() string {
	switch k {
	case Context:
		return "context"
	case Delete:
		return "delete"
	case Insert:
		return "insert"
	default:
		return "unknown"
	}
}

// Prefix is the unified diff prefix for k.
func (k Kind) Prefix() string {
	switch k {
	case Delete:
		return "-"
	case Insert:
		return "+"
	default:
		return " "
	}
}

// Position locates a line: Old and New are its line numbers in the source
// and destination texts, 0 on the side the line does not exist in.
type Position struct {
	Old int
	New int
}

// DiffLine is one rendered line of a chunk.
type DiffLine struct {
	Kind    Kind
	Pos     Position
	content string
}

// Content returns the line text without its prefix.
func (l *DiffLine) Content() string {
	return l.content
}

// SetContent replaces the line text. A nil content leaves it unchanged.
func (l *DiffLine) SetContent(content *string) {
	if content == nil {
		return
	}
	l.content = *content
}

// SplitMarks splits a marked line into the text before the changed span, the
// span itself and the text after it. ok is false if content carries no
// markers, in which case before holds the whole content.
func SplitMarks(content string) (before, changed, after string, ok bool) {
	before, rest, found := strings.Cut(content, MarkStart)
	if !found {
		return content, "", "", false
	}
	changed, after, found = strings.Cut(rest, MarkEnd)
	if !found {
		return content, "", "", false
	}
	return before, changed, after, true
}
