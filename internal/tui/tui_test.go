package tui

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sokinpui/tidydiff.go/internal/tidy"
	"github.com/sokinpui/tidydiff.go/model"
)

const fixtureDiff = "@@ -1,5 +1,4 @@\n Ligne 1\n-Ligne 2 ajoutée\n-Ligne 3 ajoutée\n-Ligne 4 ajoutée\n+Ligne 2 (ligne 3 supprimée) ajoutée\n+Ligne 4\n \n"

func TestRender_Plain(t *testing.T) {
	chunks := tidy.New(fixtureDiff, true).Chunks()
	out := Render(chunks, PlainStyles())
	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")

	require.Len(t, lines, 7)
	assert.Equal(t, "@@ -1,5 +1,4 @@", lines[0])
	assert.Equal(t, "   1    1 │ Ligne 1", lines[1])
	assert.Equal(t, "   2      │-Ligne 2 ajoutée", lines[2])
	assert.Equal(t, "   4      │-Ligne 4 ajoutée", lines[4])
	assert.Equal(t, "        2 │+Ligne 2 (ligne 3 supprimée) ajoutée", lines[5])
	assert.Equal(t, "        3 │+Ligne 4", lines[6])
}

func TestRender_InsideChanges(t *testing.T) {
	chunks := tidy.New("@@ -1,1 +1,1 @@\n-hello world\n+hello there\n", true).Chunks()

	styles := PlainStyles()
	bracket := lipgloss.NewStyle().Transform(func(s string) string { return "[" + s + "]" })
	styles.DeleteEmph = bracket
	styles.InsertEmph = bracket

	out := Render(chunks, styles)
	assert.Contains(t, out, "│-hello [world]\n")
	assert.Contains(t, out, "│+hello [there]\n")
	assert.NotContains(t, out, tidy.MarkStart)
	assert.NotContains(t, out, tidy.MarkEnd)
}

func TestRender_SeparatesChunks(t *testing.T) {
	diff := "@@ -1,1 +1,1 @@\n-a\n+b\n@@ -10,1 +10,1 @@\n-c\n+d\n"
	out := Render(tidy.New(diff, false).Chunks(), PlainStyles())
	assert.Contains(t, out, "\n\n@@ -10,1 +10,1 @@\n")
}

func TestViewer(t *testing.T) {
	v := NewViewer("demo.txt", tidy.New(fixtureDiff, false).Chunks(), PlainStyles())
	assert.Equal(t, "Loading...", v.View())

	m, _ := v.Update(tea.WindowSizeMsg{Width: 80, Height: 20})
	view := m.View()
	assert.Contains(t, view, "demo.txt")
	assert.Contains(t, view, "Ligne 1")

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestViewer_Empty(t *testing.T) {
	v := NewViewer("empty", nil, PlainStyles())
	m, _ := v.Update(tea.WindowSizeMsg{Width: 40, Height: 10})
	assert.Contains(t, m.View(), "No changes.")
}

func TestModel_Summary(t *testing.T) {
	m := New(func() (model.Summary, error) {
		return model.Summary{Modified: []string{"a.txt"}, Message: "Applied."}, nil
	})

	next, cmd := m.Update(m.run())
	require.NotNil(t, cmd)
	done := next.(Model)
	assert.NoError(t, done.Err())
	assert.Equal(t, []string{"a.txt"}, done.Summary().Modified)
	assert.Contains(t, done.View(), "Modified:")
	assert.Contains(t, done.View(), "a.txt")
}

func TestModel_Error(t *testing.T) {
	m := New(func() (model.Summary, error) {
		return model.Summary{}, errors.New("boom")
	})

	next, _ := m.Update(m.run())
	done := next.(Model)
	assert.EqualError(t, done.Err(), "boom")
	assert.Contains(t, done.View(), "boom")
}

func TestModel_NothingToDo(t *testing.T) {
	m := New(func() (model.Summary, error) { return model.Summary{}, nil })
	next, _ := m.Update(m.run())
	assert.Contains(t, next.View(), "Nothing to do.")
}
