package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/sokinpui/tidydiff.go/internal/tidy"
)

// Styles controls how a diff is drawn.
type Styles struct {
	Header     lipgloss.Style
	Gutter     lipgloss.Style
	Context    lipgloss.Style
	Delete     lipgloss.Style
	Insert     lipgloss.Style
	DeleteEmph lipgloss.Style
	InsertEmph lipgloss.Style
}

// DefaultStyles returns the colors used by the viewer.
func DefaultStyles() Styles {
	return Styles{
		Header:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63")),
		Gutter:     lipgloss.NewStyle().Faint(true),
		Context:    lipgloss.NewStyle(),
		Delete:     lipgloss.NewStyle().Foreground(lipgloss.Color("197")),
		Insert:     lipgloss.NewStyle().Foreground(lipgloss.Color("78")),
		DeleteEmph: lipgloss.NewStyle().Foreground(lipgloss.Color("231")).Background(lipgloss.Color("124")),
		InsertEmph: lipgloss.NewStyle().Foreground(lipgloss.Color("231")).Background(lipgloss.Color("28")),
	}
}

// PlainStyles returns styles that add no escape sequences.
func PlainStyles() Styles {
	s := lipgloss.NewStyle()
	return Styles{Header: s, Gutter: s, Context: s, Delete: s, Insert: s, DeleteEmph: s, InsertEmph: s}
}

// Render draws chunks with old and new line numbers in a gutter. Spans marked
// by FindInsideChanges are drawn with the emphasis styles.
func Render(chunks []*tidy.DiffChunk, styles Styles) string {
	var b strings.Builder
	for i, chunk := range chunks {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(styles.Header.Render(chunk.Range().String()))
		b.WriteString("\n")
		for _, line := range chunk.Lines() {
			b.WriteString(styles.Gutter.Render(gutter(line)))
			b.WriteString(renderLine(line, styles))
			b.WriteString("\n")
		}
	}
	return b.String()
}

func gutter(line *tidy.DiffLine) string {
	num := func(n int) string {
		if n == 0 {
			return ""
		}
		return fmt.Sprint(n)
	}
	return fmt.Sprintf("%4s %4s │", num(line.Pos.Old), num(line.Pos.New))
}

func renderLine(line *tidy.DiffLine, styles Styles) string {
	base, emph := styles.Context, styles.Context
	switch line.Kind {
	case tidy.Delete:
		base, emph = styles.Delete, styles.DeleteEmph
	case tidy.Insert:
		base, emph = styles.Insert, styles.InsertEmph
	}

	prefix := line.Kind.Prefix()
	before, changed, after, ok := tidy.SplitMarks(line.Content())
	if !ok {
		return base.Render(prefix + line.Content())
	}
	return base.Render(prefix+before) + emph.Render(changed) + base.Render(after)
}
