package unidiff

import "strings"

// SplitLines splits text on '\n'. A trailing newline yields a trailing empty
// element, so "has a final newline" shows up in a diff like any other line.
func SplitLines(text string) []string {
	return strings.Split(text, "\n")
}

// JoinLines is the inverse of SplitLines.
func JoinLines(lines []string) string {
	return strings.Join(lines, "\n")
}

// Hunk is a header together with the raw body lines that follow it.
type Hunk struct {
	Header Header
	// Line is the 1-based line number of the header within the diff text.
	Line int
	Body []string
}

// Parse splits diff text into hunks without validating them. Lines before
// the first header are dropped, as are headers that cannot be read at all
// together with their bodies. Body lines are kept verbatim, prefix included.
func Parse(diff string) []Hunk {
	lines := diffLines(diff)

	var hunks []Hunk
	var current *Hunk
	for i, line := range lines {
		if IsHeader(line) {
			if current != nil {
				hunks = append(hunks, *current)
				current = nil
			}
			if h, ok := ParseHeaderLoose(line); ok {
				current = &Hunk{Header: h, Line: i + 1}
			}
			continue
		}
		if current != nil {
			current.Body = append(current.Body, line)
		}
	}
	if current != nil {
		hunks = append(hunks, *current)
	}
	return hunks
}

// diffLines splits diff text into lines, ignoring the empty element left by a
// terminating newline.
func diffLines(diff string) []string {
	if diff == "" {
		return nil
	}
	lines := strings.Split(diff, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// countBody returns the number of context, deleted and inserted lines.
// Lines with any other prefix are not counted.
func countBody(body []string) (context, deleted, inserted int) {
	for _, line := range body {
		if line == "" {
			continue
		}
		switch line[0] {
		case PrefixContext:
			context++
		case PrefixDelete:
			deleted++
		case PrefixInsert:
			inserted++
		}
	}
	return context, deleted, inserted
}
