package source

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/atotto/clipboard"

	"github.com/sokinpui/tidydiff.go/internal/ui"
)

// SourceProvider determines and retrieves the source content.
type SourceProvider struct {
	file  string
	stdin io.Reader
}

// New creates a new SourceProvider. A non-empty file takes precedence over
// stdin and the clipboard.
func New(file string) *SourceProvider {
	return &SourceProvider{file: file, stdin: os.Stdin}
}

// GetContent retrieves content from the configured file, from stdin (if
// piped) or from the clipboard.
func (sp *SourceProvider) GetContent() (string, error) {
	if sp.file != "" {
		ui.Header("--- Reading from %s ---", sp.file)
		content, err := os.ReadFile(sp.file)
		if err != nil {
			return "", fmt.Errorf("failed to read %s: %w", sp.file, err)
		}
		return string(content), nil
	}

	if sp.isPiped() {
		ui.Header("--- Reading from stdin ---")
		content, err := io.ReadAll(sp.stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read from stdin: %w", err)
		}
		return string(content), nil
	}

	ui.Header("--- Reading from clipboard ---")
	content, err := clipboard.ReadAll()
	if err != nil {
		return "", fmt.Errorf("failed to read from clipboard: %w", err)
	}
	if strings.TrimSpace(content) == "" {
		ui.Warning("Clipboard is empty. Nothing to process.")
		return "", nil
	}
	return content, nil
}

func (sp *SourceProvider) isPiped() bool {
	f, ok := sp.stdin.(*os.File)
	if !ok {
		return sp.stdin != nil
	}
	stat, err := f.Stat()
	if err != nil {
		return false
	}
	return (stat.Mode() & os.ModeCharDevice) == 0
}
