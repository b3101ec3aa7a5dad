package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_Defaults(t *testing.T) {
	cfg, err := Parse(nil)
	require.NoError(t, err)
	assert.False(t, cfg.Buffer)
	assert.Empty(t, cfg.File)
	assert.Empty(t, cfg.LookupDirs)
	assert.Empty(t, cfg.Args)
}

func TestParse_Flags(t *testing.T) {
	cfg, err := Parse([]string{"-b", "-f", "plan.md", "-l", "src,lib", "--lookup-dir", "pkg", "--no-color", "--state-dir", "/tmp/st"})
	require.NoError(t, err)
	assert.True(t, cfg.Buffer)
	assert.True(t, cfg.NoColor)
	assert.Equal(t, "plan.md", cfg.File)
	assert.Equal(t, "/tmp/st", cfg.StateDir)
	assert.Equal(t, []string{"src", "lib", "pkg"}, cfg.LookupDirs)
}

func TestParse_Diff(t *testing.T) {
	cfg, err := Parse([]string{"--diff", "old.txt", "new.txt"})
	require.NoError(t, err)
	assert.True(t, cfg.Diff)
	assert.Equal(t, []string{"old.txt", "new.txt"}, cfg.Args)

	_, err = Parse([]string{"-d", "old.txt"})
	assert.ErrorContains(t, err, "exactly two files")
}

func TestParse_ViewInline(t *testing.T) {
	cfg, err := Parse([]string{"-v", "-i"})
	require.NoError(t, err)
	assert.True(t, cfg.View)
	assert.True(t, cfg.Inline)

	_, err = Parse([]string{"-i"})
	assert.ErrorContains(t, err, "--inline requires --view")
}

func TestParse_Rejects(t *testing.T) {
	tests := []struct {
		name string
		args []string
		msg  string
	}{
		{"undo and redo", []string{"-u", "-r"}, "mutually exclusive"},
		{"two modes", []string{"--check", "-o"}, "mutually exclusive"},
		{"check and undo", []string{"-c", "-u"}, "mutually exclusive"},
		{"stray argument", []string{"file.txt"}, "unexpected argument"},
		{"unknown flag", []string{"--nope"}, "unknown flag"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.args)
			assert.ErrorContains(t, err, tt.msg)
		})
	}
}
