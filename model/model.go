package model

import "fmt"

// FileChange represents a single planned change to a file.
type FileChange struct {
	Path string
	// Before is the file content the diff was applied to ("" for a new file).
	Before  string
	Content string
	Diff    string
	Source  string
}

// DiffBlock represents a raw diff block from the source content.
type DiffBlock struct {
	// FilePath comes from the path hint above the block; it may be empty.
	FilePath   string
	RawContent string
}

// Label names a block for messages.
func (d DiffBlock) Label(index int) string {
	if d.FilePath != "" {
		return d.FilePath
	}
	return fmt.Sprintf("diff block #%d", index+1)
}

// Summary holds the results of an operation for display.
type Summary struct {
	Created  []string
	Modified []string
	Valid    []string
	Failed   []string
	Message  string
}
