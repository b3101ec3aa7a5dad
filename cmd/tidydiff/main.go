package main

import (
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sokinpui/tidydiff.go/cli"
	"github.com/sokinpui/tidydiff.go/internal/tui"
	"github.com/sokinpui/tidydiff.go/internal/ui"
	"github.com/sokinpui/tidydiff.go/model"
	"github.com/sokinpui/tidydiff.go/tidydiff"
)

func main() {
	cfg, err := cli.ParseFlags()
	if errors.Is(err, cli.ErrHelp) {
		return
	}
	if err != nil {
		// pflag already prints the error message for unknown flags.
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}
	if cfg.NoColor {
		ui.SetColor(false)
	}

	app, err := tidydiff.New(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize application: %v\n", err)
		os.Exit(1)
	}

	switch {
	case cfg.View:
		os.Exit(runViewer(app))
	case cfg.Diff || cfg.OutputDiffFix:
		// These print to stdout and should not run the TUI.
		if _, err := app.Execute(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case cfg.NoAnimation:
		os.Exit(runPlain(app, cfg))
	default:
		os.Exit(runTUI(app))
	}
}

func runViewer(app *tidydiff.App) int {
	m, err := app.ViewModel()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	if _, err := tea.NewProgram(m, tea.WithAltScreen()).Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running program: %v\n", err)
		return 1
	}
	return 0
}

func runTUI(app *tidydiff.App) int {
	job := func() (model.Summary, error) {
		summary, err := app.Execute()
		if errors.Is(err, tidydiff.ErrFailedItems) {
			// Reported through summary.Failed.
			return summary, nil
		}
		return summary, err
	}
	final, err := tea.NewProgram(tui.New(job)).Run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error running program: %v\n", err)
		return 1
	}
	m := final.(tui.Model)
	return exitCode(m.Summary(), m.Err())
}

func runPlain(app *tidydiff.App, cfg *cli.Config) int {
	var bar *ui.ProgressBar
	app.SetProgressCallback(func(current, total int) {
		if bar == nil {
			bar = ui.NewProgressBar(total, "Applying")
		}
		bar.Set(current)
		if current == total {
			bar.Finish()
		}
	})

	summary, err := app.Execute()
	var detailed *tidydiff.DetailedError
	if errors.As(err, &detailed) {
		fmt.Fprintf(os.Stderr, "\n--- Stack Trace ---\n%s\n", detailed.Stack)
	}
	if err != nil && !errors.Is(err, tidydiff.ErrFailedItems) {
		ui.Error("Error: %v", err)
		return 1
	}

	title := "Summary"
	if cfg.Check {
		title = "Check"
	}
	ui.PrintSummary(title, summary)
	return exitCode(summary, err)
}

func exitCode(summary model.Summary, err error) int {
	if err != nil || len(summary.Failed) > 0 {
		return 1
	}
	return 0
}
