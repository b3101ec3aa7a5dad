// Package ui prints colored progress and result messages to stderr.
package ui

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"

	"github.com/sokinpui/tidydiff.go/model"
)

var (
	HeaderColor  = color.New(color.FgBlue, color.Bold)
	InfoColor    = color.New(color.FgCyan)
	SuccessColor = color.New(color.FgGreen)
	WarningColor = color.New(color.FgYellow)
	ErrorColor   = color.New(color.FgRed)
)

var output io.Writer = os.Stderr

// SetColor turns colored output on or off for the whole process.
func SetColor(enabled bool) {
	color.NoColor = !enabled
}

// SetOutput redirects all messages and returns the previous writer.
func SetOutput(w io.Writer) io.Writer {
	prev := output
	output = w
	return prev
}

func emit(c *color.Color, format string, a []interface{}) {
	c.Fprintf(output, format+"\n", a...)
}

func Header(format string, a ...interface{}) { emit(HeaderColor, format, a) }
func Info(format string, a ...interface{}) { emit(InfoColor, format, a) }
func Success(format string, a ...interface{}) { emit(SuccessColor, format, a) }
func Warning(format string, a ...interface{}) { emit(WarningColor, format, a) }
func Error(format string, a ...interface{}) { emit(ErrorColor, format, a) }

// PrintSummary prints the outcome of a run under title.
func PrintSummary(title string, summary model.Summary) {
	Header("\n--- %s ---", title)
	if summary.Message != "" {
		Info("%s", summary.Message)
	}

	sections := []struct {
		c      *color.Color
		format string
		items  []string
	}{
		{SuccessColor, "Created %d file(s):", summary.Created},
		{SuccessColor, "Modified %d file(s):", summary.Modified},
		{SuccessColor, "%d valid diff(s):", summary.Valid},
		{ErrorColor, "Failed to process %d item(s):", summary.Failed},
	}
	empty := true
	for _, s := range sections {
		if len(s.items) == 0 {
			continue
		}
		empty = false
		emit(s.c, s.format, []interface{}{len(s.items)})
		for _, item := range s.items {
			fmt.Fprintf(output, "  - %s\n", item)
		}
	}

	if empty && summary.Message == "" {
		Info("Nothing to do.")
	}
}

// ProgressBar redraws a single status line as work advances.
type ProgressBar struct {
	total   int
	prefix  string
	current int
}

const barWidth = 40

func NewProgressBar(total int, prefix string) *ProgressBar {
	return &ProgressBar{total: total, prefix: prefix}
}

// Set moves the bar to current and redraws it.
func (p *ProgressBar) Set(current int) {
	p.current = min(max(current, 0), p.total)
	p.draw()
}

// Finish ends the status line.
func (p *ProgressBar) Finish() {
	if p.total > 0 {
		fmt.Fprintln(output)
	}
}

func (p *ProgressBar) draw() {
	if p.total == 0 {
		return
	}
	filled := p.current * barWidth / p.total
	bar := strings.Repeat("█", filled) + strings.Repeat("-", barWidth-filled)
	fmt.Fprintf(output, "\r%s |%s| [%d/%d] %.1f%%", p.prefix, bar, p.current, p.total, float64(p.current)*100/float64(p.total))
}
