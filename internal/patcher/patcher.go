package patcher

import (
	"fmt"

	"github.com/sokinpui/tidydiff.go/internal/fs"
	"github.com/sokinpui/tidydiff.go/internal/ui"
	"github.com/sokinpui/tidydiff.go/internal/unidiff"
	"github.com/sokinpui/tidydiff.go/model"
)

// Apply applies diff to source and returns the patched text.
//
// Apply trusts its input: it follows the line prefixes of each hunk without
// checking header counts. Context lines are copied from source, deleted lines
// are skipped, inserted lines are emitted, and source lines outside any hunk
// pass through unchanged. Run unidiff.Check first when the diff comes from
// somewhere else.
func Apply(source, diff string) string {
	src := unidiff.SplitLines(source)
	out := make([]string, 0, len(src))
	cursor := 0

	for _, hunk := range unidiff.Parse(diff) {
		start := min(max(hunk.Header.SrcStart-1, cursor), len(src))
		out = append(out, src[cursor:start]...)
		cursor = start

		for _, line := range hunk.Body {
			if line == "" {
				continue
			}
			switch line[0] {
			case unidiff.PrefixContext:
				if cursor < len(src) {
					out = append(out, src[cursor])
					cursor++
				} else {
					out = append(out, line[1:])
				}
			case unidiff.PrefixDelete:
				if cursor < len(src) {
					cursor++
				}
			case unidiff.PrefixInsert:
				out = append(out, line[1:])
			}
		}
	}

	out = append(out, src[cursor:]...)
	return unidiff.JoinLines(out)
}

// SafeApply checks diff before applying it.
func SafeApply(source, diff string) (string, error) {
	if err := unidiff.Check(diff); err != nil {
		return "", err
	}
	return Apply(source, diff), nil
}

// GeneratePatchedContents validates and applies diff blocks to the files they
// name and returns the resulting file contents. Blocks that cannot be applied
// are reported by path in failed.
func GeneratePatchedContents(diffs []model.DiffBlock, resolver *fs.PathResolver) (changes []model.FileChange, failed []string) {
	if len(diffs) == 0 {
		return nil, nil
	}
	ui.Info("\nFound %d diff block(s) to process.", len(diffs))

	for _, diff := range diffs {
		if diff.FilePath == "" {
			ui.Warning("  -> Diff block has no file path hint. Skipping.")
			failed = append(failed, "(unnamed diff)")
			continue
		}

		change, err := patchFile(diff, resolver)
		if err != nil {
			ui.Error("  -> Failed to apply patch for %s: %v", diff.FilePath, err)
			failed = append(failed, resolver.Resolve(diff.FilePath))
			continue
		}

		ui.Success("  -> Successfully generated patch for: %s", diff.FilePath)
		changes = append(changes, change)
	}
	return changes, failed
}

func patchFile(diff model.DiffBlock, resolver *fs.PathResolver) (model.FileChange, error) {
	if err := unidiff.Check(diff.RawContent); err != nil {
		return model.FileChange{}, fmt.Errorf("invalid diff: %w", err)
	}

	path := resolver.Resolve(diff.FilePath)
	before, err := fs.ReadFileIfExists(path)
	if err != nil {
		return model.FileChange{}, err
	}

	return model.FileChange{
		Path:    path,
		Before:  before,
		Content: Apply(before, diff.RawContent),
		Diff:    diff.RawContent,
		Source:  "diff",
	}, nil
}

// WriteChanges writes every change to disk, creating parent directories as
// needed, and returns the paths written and the paths that failed. progress,
// if set, is called with the number of changes handled so far.
func WriteChanges(changes []model.FileChange, progress func(int)) (written, failed []string) {
	for i, change := range changes {
		if err := fs.WriteFile(change.Path, change.Content); err != nil {
			ui.Error("  -> Failed to write %s: %v", change.Path, err)
			failed = append(failed, change.Path)
		} else {
			written = append(written, change.Path)
		}
		if progress != nil {
			progress(i + 1)
		}
	}
	return written, failed
}
