// Package tui holds the bubbletea models of the tidydiff command: a spinner
// that waits on a job and reports its summary, and a scrollable diff viewer.
package tui

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sokinpui/tidydiff.go/model"
)

var (
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63")) // Mauve
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("78"))            // Green
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("197"))           // Red
	faintStyle   = lipgloss.NewStyle().Faint(true)
)

// Job is the work the spinner waits on.
type Job func() (model.Summary, error)

// resultMsg carries the outcome of the job back into the update loop.
type resultMsg struct {
	summary model.Summary
	err     error
}

// Model shows a spinner while its job runs, then the job's summary or error.
type Model struct {
	job     Job
	spinner spinner.Model
	done    bool
	result  resultMsg
}

func New(job Job) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	return Model{job: job, spinner: s}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.run)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if s := msg.String(); s == "q" || s == "ctrl+c" {
			return m, tea.Quit
		}
		return m, nil
	case resultMsg:
		m.done = true
		m.result = msg
		return m, tea.Quit
	}

	if m.done {
		return m, nil
	}
	var cmd tea.Cmd
	m.spinner, cmd = m.spinner.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	switch {
	case !m.done:
		return m.spinner.View() + " Processing..."
	case m.result.err != nil:
		return errorStyle.Render("Error: "+m.result.err.Error()) + "\n"
	default:
		return renderSummary(m.result.summary)
	}
}

// Err returns the error the job failed with, if any.
func (m Model) Err() error {
	return m.result.err
}

// Summary returns the job's summary once it has completed.
func (m Model) Summary() model.Summary {
	return m.result.summary
}

func (m Model) run() tea.Msg {
	summary, err := m.job()
	if st, ok := err.(interface{ StackTrace() []byte }); ok {
		// The program is about to exit; stderr is still ours.
		fmt.Fprintf(os.Stderr, "\n--- Stack Trace ---\n%s\n", st.StackTrace())
	}
	return resultMsg{summary: summary, err: err}
}

func renderSummary(s model.Summary) string {
	var b strings.Builder
	if s.Message != "" {
		b.WriteString(headerStyle.Render(s.Message))
		b.WriteString("\n\n")
	}

	listed := false
	list := func(title string, style lipgloss.Style, paths []string) {
		if len(paths) == 0 {
			return
		}
		listed = true
		fmt.Fprintf(&b, "%s\n", style.Render(title))
		for _, p := range paths {
			fmt.Fprintf(&b, "  %s\n", p)
		}
	}
	list("Created:", successStyle, s.Created)
	list("Modified:", successStyle, s.Modified)
	list("Valid:", successStyle, s.Valid)
	list("Failed:", errorStyle, s.Failed)

	if !listed && s.Message == "" {
		b.WriteString(faintStyle.Render("Nothing to do."))
		b.WriteString("\n")
	}
	return b.String()
}
