package tui

import (
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sokinpui/tidydiff.go/internal/tidy"
)

var titleStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1).
	Foreground(lipgloss.Color("231")).Background(lipgloss.Color("63"))

// Viewer is a scrollable view of a tidied diff.
type Viewer struct {
	title    string
	content  string
	viewport viewport.Model
	ready    bool
}

// NewViewer renders chunks once; the viewport is sized on the first
// WindowSizeMsg.
func NewViewer(title string, chunks []*tidy.DiffChunk, styles Styles) Viewer {
	content := Render(chunks, styles)
	if len(chunks) == 0 {
		content = faintStyle.Render("No changes.") + "\n"
	}
	return Viewer{title: title, content: content}
}

func (v Viewer) Init() tea.Cmd {
	return nil
}

func (v Viewer) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return v, tea.Quit
		}

	case tea.WindowSizeMsg:
		height := max(msg.Height-lipgloss.Height(v.headerView()), 1)
		if !v.ready {
			v.viewport = viewport.New(msg.Width, height)
			v.viewport.SetContent(v.content)
			v.ready = true
		} else {
			v.viewport.Width = msg.Width
			v.viewport.Height = height
		}
	}

	var cmd tea.Cmd
	v.viewport, cmd = v.viewport.Update(msg)
	return v, cmd
}

func (v Viewer) View() string {
	if !v.ready {
		return "Loading..."
	}
	return v.headerView() + "\n" + v.viewport.View()
}

func (v Viewer) headerView() string {
	return titleStyle.Render(v.title)
}
