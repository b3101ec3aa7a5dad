package patcher

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sokinpui/tidydiff.go/internal/fs"
	"github.com/sokinpui/tidydiff.go/internal/state"
	"github.com/sokinpui/tidydiff.go/internal/unidiff"
	"github.com/sokinpui/tidydiff.go/model"
)

const (
	fixtureOld  = "Ligne 1\nLigne 2 ajoutée\nLigne 3 ajoutée\nLigne 4 ajoutée\n"
	fixtureNew  = "Ligne 1\nLigne 2 (ligne 3 supprimée) ajoutée\nLigne 4\n"
	fixtureDiff = "@@ -1,5 +1,4 @@\n Ligne 1\n-Ligne 2 ajoutée\n-Ligne 3 ajoutée\n-Ligne 4 ajoutée\n+Ligne 2 (ligne 3 supprimée) ajoutée\n+Ligne 4\n \n"
)

func TestApply(t *testing.T) {
	tests := []struct {
		name   string
		source string
		diff   string
		want   string
	}{
		{name: "fixture", source: fixtureOld, diff: fixtureDiff, want: fixtureNew},
		{name: "empty diff", source: "a\nb\n", diff: "", want: "a\nb\n"},
		{
			name:   "lines outside hunks pass through",
			source: "1\n2\n3\n4\n5\n",
			diff:   "@@ -2,3 +2,3 @@\n 2\n-3\n+three\n 4\n",
			want:   "1\n2\nthree\n4\n5\n",
		},
		{
			name:   "two hunks",
			source: "a\nb\nc\nd\ne\nf\ng\nh\n",
			diff:   "@@ -1,2 +1,2 @@\n-a\n+A\n b\n@@ -7,2 +7,3 @@\n g\n+G\n h\n",
			want:   "A\nb\nc\nd\ne\nf\ng\nG\nh\n",
		},
		{
			name:   "context is taken from source",
			source: "keep\nold\n",
			diff:   "@@ -1,2 +1,2 @@\n kept\n-old\n+new\n",
			want:   "keep\nnew\n",
		},
		{
			name:   "empty and unknown lines are skipped",
			source: "a\nb\n",
			diff:   "@@ -1,2 +1,2 @@\n a\n\n*noise\n-b\n+c\n",
			want:   "a\nc\n",
		},
		{
			name:   "insertion past the end",
			source: "a",
			diff:   "@@ -5,1 +5,2 @@\n z\n+tail\n",
			want:   "a\nz\ntail",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Apply(tt.source, tt.diff))
		})
	}
}

func TestApply_RoundTrip(t *testing.T) {
	pairs := [][2]string{
		{"", "x\n"},
		{"x\n", ""},
		{"a\nb\nc\n", "a\nc\n"},
		{"a\nb\nc", "a\nb\nc\n"},
		{"1\n2\n3\n4\n5\n6\n7\n8\n9\n", "1\ntwo\n3\n4\n5\n6\n7\neight\n9\n"},
	}
	for _, p := range pairs {
		diff := unidiff.Format(p[0], p[1])
		assert.Equal(t, p[1], Apply(p[0], diff), "diff=%q", diff)
		assert.Equal(t, p[0], Apply(p[1], unidiff.Reverse(diff)), "diff=%q", diff)
	}
}

func TestSafeApply(t *testing.T) {
	got, err := SafeApply(fixtureOld, fixtureDiff)
	require.NoError(t, err)
	assert.Equal(t, fixtureNew, got)

	_, err = SafeApply(fixtureOld, "@@ -1,9 +1,4 @@\n Ligne 1\n")
	assert.ErrorIs(t, err, unidiff.ErrChunkOutOfRange)
}

func TestGeneratePatchedContents(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(target, []byte(fixtureOld), 0644))
	resolver := fs.NewPathResolver([]string{dir})

	diffs := []model.DiffBlock{
		{FilePath: "notes.txt", RawContent: fixtureDiff},
		{RawContent: fixtureDiff},
		{FilePath: "broken.txt", RawContent: "@@ -1,1 +1,1 @@\n?\n"},
		{FilePath: "fresh.txt", RawContent: unidiff.Format("", "hi\n")},
	}
	changes, failed := GeneratePatchedContents(diffs, resolver)

	assert.Equal(t, []string{"(unnamed diff)", filepath.Join(dir, "broken.txt")}, failed)
	require.Len(t, changes, 2)

	assert.Equal(t, target, changes[0].Path)
	assert.Equal(t, fixtureOld, changes[0].Before)
	assert.Equal(t, fixtureNew, changes[0].Content)
	assert.Equal(t, fixtureDiff, changes[0].Diff)

	assert.Equal(t, filepath.Join(dir, "fresh.txt"), changes[1].Path)
	assert.Equal(t, "", changes[1].Before)
	assert.Equal(t, "hi\n", changes[1].Content)

	// Nothing is written yet.
	assert.NoFileExists(t, filepath.Join(dir, "fresh.txt"))

	written, writeFailed := WriteChanges(changes, nil)
	assert.Empty(t, writeFailed)
	assert.Len(t, written, 2)
	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, fixtureNew, string(data))
}

func TestRevertReapply(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sub", "notes.txt")
	change := model.FileChange{Path: path, Before: "", Content: "hi\n", Diff: unidiff.Format("", "hi\n")}
	require.NoError(t, fs.WriteFile(path, change.Content))

	ops := state.OperationsFor([]model.FileChange{change}, []string{path}, map[string]string{path: fs.ActionCreate})
	require.Len(t, ops, 1)

	require.NoError(t, Revert(ops[0]))
	assert.NoFileExists(t, path)

	require.NoError(t, Reapply(ops[0]))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "hi\n", string(data))

	// Reapplying twice must fail: the file no longer holds the original text.
	assert.ErrorContains(t, Reapply(ops[0]), "modified after it was reverted")
}

func TestRevert_Modify(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.txt")
	require.NoError(t, fs.WriteFile(path, fixtureNew))
	change := model.FileChange{Path: path, Before: fixtureOld, Content: fixtureNew, Diff: fixtureDiff}
	ops := state.OperationsFor([]model.FileChange{change}, []string{path}, map[string]string{path: fs.ActionModify})

	require.NoError(t, Revert(ops[0]))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, fixtureOld, string(data))

	assert.ErrorContains(t, Revert(ops[0]), "modified after it was patched")
}
