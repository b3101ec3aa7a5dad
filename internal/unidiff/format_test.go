package unidiff

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	fixtureSrc  = "Ligne 1\nLigne 2 ajoutée\nLigne 3 ajoutée\nLigne 4 ajoutée\n"
	fixtureDst  = "Ligne 1\nLigne 2 (ligne 3 supprimée) ajoutée\nLigne 4\n"
	fixtureDiff = "@@ -1,5 +1,4 @@\n" +
		" Ligne 1\n" +
		"-Ligne 2 ajoutée\n" +
		"-Ligne 3 ajoutée\n" +
		"-Ligne 4 ajoutée\n" +
		"+Ligne 2 (ligne 3 supprimée) ajoutée\n" +
		"+Ligne 4\n" +
		" \n"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name string
		src  string
		dst  string
		want string
	}{
		{name: "fixture", src: fixtureSrc, dst: fixtureDst, want: fixtureDiff},
		{name: "identical", src: fixtureSrc, dst: fixtureSrc, want: ""},
		{name: "both empty", src: "", dst: "", want: ""},
		{name: "empty to text", src: "", dst: "x", want: "@@ -1,1 +1,1 @@\n-\n+x\n"},
		{name: "insert at start", src: "a\n", dst: "x\na\n", want: "@@ -1,1 +1,2 @@\n+x\n a\n"},
		{name: "delete last line", src: "a\nb\n", dst: "a\n", want: "@@ -1,3 +1,2 @@\n a\n-b\n \n"},
		{name: "drop trailing newline", src: "a\n", dst: "a", want: "@@ -1,2 +1,1 @@\n a\n-\n"},
		{
			name: "separate hunks",
			src:  "a\nb\nc\nd\ne\nf\ng\n",
			dst:  "a\nB\nc\nd\ne\nF\ng\n",
			want: "@@ -1,3 +1,3 @@\n a\n-b\n+B\n c\n" +
				"@@ -5,3 +5,3 @@\n e\n-f\n+F\n g\n",
		},
		{
			name: "merged hunk",
			src:  "a\nb\nc\nd\ne\n",
			dst:  "a\nB\nc\nD\ne\n",
			want: "@@ -1,5 +1,5 @@\n a\n-b\n+B\n c\n-d\n+D\n e\n",
		},
		{
			name: "offset second hunk",
			src:  "a\nb\nc\nd\ne\nf\n",
			dst:  "a\nx\ny\nb\nc\nd\ne\n",
			want: "@@ -1,2 +1,4 @@\n a\n+x\n+y\n b\n" +
				"@@ -5,3 +7,2 @@\n e\n-f\n \n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Format(tt.src, tt.dst)
			assert.Equal(t, tt.want, got)
			require.NoError(t, Check(got))
		})
	}
}

func TestFormat_Deterministic(t *testing.T) {
	first := Format(fixtureSrc, fixtureDst)
	for i := 0; i < 3; i++ {
		require.Equal(t, first, Format(fixtureSrc, fixtureDst))
	}
}

func TestFormat_EndsWithNewline(t *testing.T) {
	got := Format("one\ntwo", "one\nthree")
	require.NotEmpty(t, got)
	assert.Equal(t, byte('\n'), got[len(got)-1])
}

func TestParseHeader(t *testing.T) {
	h, ok := ParseHeader("@@ -1,5 +1,4 @@")
	require.True(t, ok)
	assert.Equal(t, Header{SrcStart: 1, SrcLen: 5, DstStart: 1, DstLen: 4}, h)
	assert.Equal(t, "@@ -1,5 +1,4 @@", h.String())

	_, ok = ParseHeader("@@ -3 +4,2 @@ func main()")
	assert.False(t, ok)

	h, ok = ParseHeaderLoose("@@ -3 +4,2 @@ func main()")
	require.True(t, ok)
	assert.Equal(t, Header{SrcStart: 3, SrcLen: 1, DstStart: 4, DstLen: 2}, h)

	_, ok = ParseHeaderLoose("@@ nonsense @@")
	assert.False(t, ok)
}

func TestParse(t *testing.T) {
	diff := "preamble\n" +
		"@@ -1,2 +1,2 @@\n a\n-b\n+B\n" +
		"@@ broken @@\n ignored\n" +
		"@@ -9,1 +9,1 @@\n-z\n+Z\n"

	hunks := Parse(diff)
	require.Len(t, hunks, 2)

	assert.Equal(t, Header{SrcStart: 1, SrcLen: 2, DstStart: 1, DstLen: 2}, hunks[0].Header)
	assert.Equal(t, 2, hunks[0].Line)
	assert.Equal(t, []string{" a", "-b", "+B"}, hunks[0].Body)

	assert.Equal(t, 9, hunks[1].Header.SrcStart)
	assert.Equal(t, 8, hunks[1].Line)
	assert.Equal(t, []string{"-z", "+Z"}, hunks[1].Body)

	assert.Empty(t, Parse(""))
}

func TestSplitJoinLines(t *testing.T) {
	for _, text := range []string{"", "a", "a\n", "a\n\nb", "\n"} {
		assert.Equal(t, text, JoinLines(SplitLines(text)))
	}
	assert.Equal(t, []string{"a", ""}, SplitLines("a\n"))
}
