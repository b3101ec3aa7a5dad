package tidydiff

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime/debug"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sokinpui/tidydiff.go/cli"
	"github.com/sokinpui/tidydiff.go/internal/fs"
	"github.com/sokinpui/tidydiff.go/internal/nvim"
	"github.com/sokinpui/tidydiff.go/internal/parser"
	"github.com/sokinpui/tidydiff.go/internal/patcher"
	"github.com/sokinpui/tidydiff.go/internal/source"
	"github.com/sokinpui/tidydiff.go/internal/state"
	"github.com/sokinpui/tidydiff.go/internal/tidy"
	"github.com/sokinpui/tidydiff.go/internal/tui"
	"github.com/sokinpui/tidydiff.go/internal/ui"
	"github.com/sokinpui/tidydiff.go/internal/unidiff"
	"github.com/sokinpui/tidydiff.go/model"
)

// ProgressUpdate is a callback function to report progress.
type ProgressUpdate func(current, total int)

// App orchestrates the entire application logic.
type App struct {
	cfg              *cli.Config
	history          *state.Store
	pathResolver     *fs.PathResolver
	sourceProvider   *source.SourceProvider
	progressCallback ProgressUpdate
	out              io.Writer
}

// DetailedError enhances a standard error with a stack trace.
type DetailedError struct {
	Err   error
	Stack []byte
}

func (e *DetailedError) Error() string {
	return e.Err.Error()
}

func (e *DetailedError) Unwrap() error {
	return e.Err
}

// StackTrace returns the stack captured when the error was created.
func (e *DetailedError) StackTrace() []byte {
	return e.Stack
}

// ErrFailedItems is returned by Execute in check mode when at least one diff
// block is invalid. The summary is still returned.
var ErrFailedItems = errors.New("some diff blocks failed")

// New creates a new App instance.
func New(cfg *cli.Config) (*App, error) {
	if cfg == nil {
		cfg = &cli.Config{}
	}
	return &App{
		cfg:            cfg,
		pathResolver:   fs.NewPathResolver(cfg.LookupDirs),
		sourceProvider: source.New(cfg.File),
		out:            os.Stdout,
	}, nil
}

// SetProgressCallback sets a function to be called for progress updates.
func (a *App) SetProgressCallback(cb ProgressUpdate) {
	a.progressCallback = cb
}

// SetOutput redirects what the diff and fix modes print.
func (a *App) SetOutput(w io.Writer) {
	a.out = w
}

// Execute executes the main application logic based on parsed flags.
func (a *App) Execute() (summary model.Summary, err error) {
	// Centralized panic recovery.
	defer func() {
		if r := recover(); r != nil {
			err = &DetailedError{
				Err:   fmt.Errorf("internal panic: %v", r),
				Stack: debug.Stack(),
			}
		}
	}()

	switch {
	case a.cfg.Undo:
		return a.undoLastOperation()
	case a.cfg.Redo:
		return a.redoLastOperation()
	case a.cfg.Diff:
		return a.diffFiles()
	case a.cfg.OutputDiffFix:
		return a.fixAndPrintDiffs()
	case a.cfg.Check:
		return a.checkDiffs()
	default:
		return a.processContent()
	}
}

// ViewModel builds the pager for the first diff block of the source.
func (a *App) ViewModel() (tea.Model, error) {
	blocks, err := a.readBlocks()
	if err != nil {
		return nil, err
	}
	if len(blocks) == 0 {
		return nil, errors.New("no diff block found in source")
	}

	styles := tui.DefaultStyles()
	if a.cfg.NoColor {
		styles = tui.PlainStyles()
	}
	chunks := tidy.New(blocks[0].RawContent, a.cfg.Inline).Chunks()
	return tui.NewViewer(blocks[0].Label(0), chunks, styles), nil
}

// store opens the undo history on first use.
func (a *App) store() (*state.Store, error) {
	if a.history != nil {
		return a.history, nil
	}
	var (
		s   *state.Store
		err error
	)
	if a.cfg.StateDir != "" {
		s, err = state.Open(a.cfg.StateDir)
	} else {
		s, err = state.OpenDefault()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open undo history: %w", err)
	}
	a.history = s
	return s, nil
}

func (a *App) readBlocks() ([]model.DiffBlock, error) {
	content, err := a.sourceProvider.GetContent()
	if err != nil {
		return nil, err
	}
	return parser.ExtractDiffBlocks(content), nil
}

// processContent handles the core logic of parsing source, patching files
// and recording the result for undo.
func (a *App) processContent() (model.Summary, error) {
	blocks, err := a.readBlocks()
	if err != nil {
		return model.Summary{}, err
	}
	if len(blocks) == 0 {
		return model.Summary{Message: "No diff blocks found. Nothing to do."}, nil
	}

	changes, failed := patcher.GeneratePatchedContents(blocks, a.pathResolver)
	if len(changes) == 0 {
		return a.relativize(model.Summary{Failed: failed}), nil
	}

	paths := make([]string, len(changes))
	for i, change := range changes {
		paths[i] = change.Path
	}
	targets := fs.Classify(paths)
	if err := targets.CreateDirs(); err != nil {
		return model.Summary{}, err
	}

	var updated, failedWrites []string
	if a.cfg.Buffer {
		updated, failedWrites, err = a.pushToNeovim(changes)
		if err != nil {
			return model.Summary{}, err
		}
	} else {
		updated, failedWrites = a.writeFiles(changes)
		if len(updated) > 0 {
			if err := a.record(changes, updated, targets.Actions); err != nil {
				return model.Summary{}, err
			}
		}
	}

	summary := model.Summary{Failed: append(failed, failedWrites...)}
	for _, path := range updated {
		if targets.Actions[path] == fs.ActionCreate {
			summary.Created = append(summary.Created, path)
		} else {
			summary.Modified = append(summary.Modified, path)
		}
	}
	if a.cfg.Buffer && len(updated) > 0 {
		summary.Message = "Buffers updated in Neovim; they have not been saved."
	}
	return a.relativize(summary), nil
}

func (a *App) writeFiles(changes []model.FileChange) (written, failed []string) {
	total := len(changes)
	a.report(0, total)
	return patcher.WriteChanges(changes, func(current int) {
		a.report(current, total)
	})
}

func (a *App) pushToNeovim(changes []model.FileChange) (updated, failed []string, err error) {
	session, err := nvim.Connect()
	if err != nil {
		return nil, nil, err
	}
	defer session.Close()

	total := len(changes)
	a.report(0, total)
	updated, failed = session.Load(changes, func(current int) {
		a.report(current, total)
	})
	return updated, failed, nil
}

func (a *App) report(current, total int) {
	if a.progressCallback != nil {
		a.progressCallback(current, total)
	}
}

func (a *App) record(changes []model.FileChange, written []string, actions map[string]string) error {
	s, err := a.store()
	if err != nil {
		return err
	}
	return s.Record(state.OperationsFor(changes, written, actions))
}

// diffFiles prints the diff between the two files named on the command line.
// A missing file is treated as empty.
func (a *App) diffFiles() (model.Summary, error) {
	if len(a.cfg.Args) != 2 {
		return model.Summary{}, fmt.Errorf("--diff takes exactly two files")
	}
	before, err := fs.ReadFileIfExists(a.cfg.Args[0])
	if err != nil {
		return model.Summary{}, err
	}
	after, err := fs.ReadFileIfExists(a.cfg.Args[1])
	if err != nil {
		return model.Summary{}, err
	}
	fmt.Fprint(a.out, unidiff.Format(before, after))
	return model.Summary{}, nil
}

// fixAndPrintDiffs corrects diffs from the source and prints them.
func (a *App) fixAndPrintDiffs() (model.Summary, error) {
	blocks, err := a.readBlocks()
	if err != nil {
		return model.Summary{}, err
	}
	for _, block := range blocks {
		if fixed := unidiff.Fix(block.RawContent); fixed != "" {
			fmt.Fprint(a.out, fixed)
		}
	}
	return model.Summary{}, nil
}

// checkDiffs validates every diff block without touching any file.
func (a *App) checkDiffs() (model.Summary, error) {
	blocks, err := a.readBlocks()
	if err != nil {
		return model.Summary{}, err
	}
	if len(blocks) == 0 {
		return model.Summary{Message: "No diff blocks found. Nothing to check."}, nil
	}

	var summary model.Summary
	for i, block := range blocks {
		if err := unidiff.Check(block.RawContent); err != nil {
			summary.Failed = append(summary.Failed, fmt.Sprintf("%s: %v", block.Label(i), err))
			continue
		}
		summary.Valid = append(summary.Valid, block.Label(i))
	}
	summary.Message = fmt.Sprintf("Checked %d diff block(s).", len(blocks))
	if len(summary.Failed) > 0 {
		return summary, ErrFailedItems
	}
	return summary, nil
}

// undoLastOperation handles the undo logic.
func (a *App) undoLastOperation() (model.Summary, error) {
	s, err := a.store()
	if err != nil {
		return model.Summary{}, err
	}
	ops, err := s.Undo()
	if err != nil {
		return model.Summary{}, err
	}
	if len(ops) == 0 {
		return model.Summary{Message: "No operation to undo."}, nil
	}

	undone, failed := a.replay(ops, patcher.Revert)
	return a.relativize(model.Summary{
		Modified: undone,
		Failed:   failed,
		Message:  "Undid last operation.",
	}), nil
}

// redoLastOperation handles the redo logic.
func (a *App) redoLastOperation() (model.Summary, error) {
	s, err := a.store()
	if err != nil {
		return model.Summary{}, err
	}
	ops, err := s.Redo()
	if err != nil {
		return model.Summary{}, err
	}
	if len(ops) == 0 {
		return model.Summary{Message: "No operation to redo."}, nil
	}

	redone, failed := a.replay(ops, patcher.Reapply)
	return a.relativize(model.Summary{
		Modified: redone,
		Failed:   failed,
		Message:  "Redid last undone operation.",
	}), nil
}

func (a *App) replay(ops []state.Operation, fn func(state.Operation) error) (done, failed []string) {
	total := len(ops)
	a.report(0, total)
	for i, op := range ops {
		if err := fn(op); err != nil {
			ui.Error("  -> %s: %v", op.Path, err)
			failed = append(failed, op.Path)
		} else {
			done = append(done, op.Path)
		}
		a.report(i+1, total)
	}
	return done, failed
}

// relativize converts absolute file paths in a summary to be relative to the
// current working directory for cleaner display.
func (a *App) relativize(summary model.Summary) model.Summary {
	wd, err := os.Getwd()
	if err != nil {
		return summary
	}

	makeRelative := func(paths []string) []string {
		if paths == nil {
			return nil
		}
		rel := make([]string, len(paths))
		for i, p := range paths {
			r, err := filepath.Rel(wd, p)
			if err != nil {
				rel[i] = p
			} else {
				rel[i] = r
			}
		}
		return rel
	}

	summary.Created = makeRelative(summary.Created)
	summary.Modified = makeRelative(summary.Modified)
	summary.Failed = makeRelative(summary.Failed)
	return summary
}
