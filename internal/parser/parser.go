package parser

import (
	"regexp"
	"strings"

	"github.com/sokinpui/tidydiff.go/internal/ui"
	"github.com/sokinpui/tidydiff.go/internal/unidiff"
	"github.com/sokinpui/tidydiff.go/model"
)

var pathInHintRegex = regexp.MustCompile("`([^`\n]+)`")

// ExtractDiffBlocks finds all ```diff (or ```patch) blocks in markdown
// content. The target file comes from a backticked path in the paragraph or
// heading right above the block, or else from a "+++ b/path" line inside it;
// file header lines are removed from the block. Content that is itself a
// bare diff (it starts with a hunk header) is returned as a single block
// without a path.
func ExtractDiffBlocks(content string) []model.DiffBlock {
	if trimmed := strings.TrimLeft(content, "\n"); unidiff.IsHeader(trimmed) {
		return []model.DiffBlock{{RawContent: ensureNewline(trimmed)}}
	}

	found, err := fences([]byte(content))
	if err != nil {
		ui.Warning("Could not parse markdown content: %v", err)
		return nil
	}

	var diffs []model.DiffBlock
	for _, f := range found {
		if f.lang != "diff" && f.lang != "patch" {
			continue
		}
		headerPath, body := stripFileHeader(f.content)
		path := extractPathFromHint(f.hint)
		if path == "" {
			path = headerPath
		}
		diffs = append(diffs, model.DiffBlock{
			FilePath:   path,
			RawContent: ensureNewline(body),
		})
	}
	return diffs
}

func extractPathFromHint(hint string) string {
	hint = strings.TrimSpace(hint)

	// A path hint must be enclosed in backticks, e.g., `path/to/file.go`
	if match := pathInHintRegex.FindStringSubmatch(hint); len(match) > 1 {
		path := strings.TrimSpace(match[1])
		// Disallow spaces to avoid capturing commands like `go run main.go` as a path.
		if !strings.Contains(path, " ") {
			return path
		}
	}

	return ""
}

// stripFileHeader drops the "diff --git", "index", "---" and "+++" lines that
// precede the first hunk and returns the destination path they name.
func stripFileHeader(content string) (path, body string) {
	rest := content
	for rest != "" && !unidiff.IsHeader(rest) {
		line, tail, _ := strings.Cut(rest, "\n")
		switch {
		case strings.HasPrefix(line, "+++ "):
			path = headerPath(strings.TrimPrefix(line, "+++ "))
		case strings.HasPrefix(line, "--- "),
			strings.HasPrefix(line, "diff --git "),
			strings.HasPrefix(line, "index "):
		default:
			// Not a file header: leave the block for Check to judge.
			return "", content
		}
		rest = tail
	}
	return path, rest
}

func headerPath(s string) string {
	s, _, _ = strings.Cut(s, "\t")
	s = strings.TrimSpace(s)
	if s == "/dev/null" {
		return ""
	}
	return strings.TrimPrefix(s, "b/")
}

func ensureNewline(s string) string {
	if s == "" || strings.HasSuffix(s, "\n") {
		return s
	}
	return s + "\n"
}
