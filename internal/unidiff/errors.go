package unidiff

import (
	"errors"
	"fmt"
)

// Failure kinds reported by Check. Match them with errors.Is.
var (
	// ErrInvalidDiffFormat: a line is neither a hunk header nor a body line
	// starting with ' ', '-' or '+'.
	ErrInvalidDiffFormat = errors.New("invalid diff format")
	// ErrChunkOutOfRange: header counts disagree with the hunk body.
	ErrChunkOutOfRange = errors.New("chunk out of range")
	// ErrInvalidLineNumber: a hunk start is inconsistent with the hunks before it.
	ErrInvalidLineNumber = errors.New("invalid line number")
	// ErrInvalidRange: a hunk header declares a non-positive start line.
	ErrInvalidRange = errors.New("invalid range")
)

// CheckError locates the first defect Check found.
type CheckError struct {
	Err error
	// Line is the 1-based line of the diff text the defect was found on.
	Line int
	// Text is the offending line.
	Text   string
	Detail string
}

func (e *CheckError) Error() string {
	msg := fmt.Sprintf("line %d: %v", e.Line, e.Err)
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	return msg
}

func (e *CheckError) Unwrap() error {
	return e.Err
}
