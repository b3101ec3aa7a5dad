package unidiff

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFix(t *testing.T) {
	tests := []struct {
		name string
		diff string
		want string
	}{
		{
			name: "recount and keep start",
			diff: "@@ -3,99 +7,1 @@\n a\n-b\n+B\n\n c\n",
			want: "@@ -3,4 +3,4 @@\n a\n-b\n+B\n \n c\n",
		},
		{
			name: "chain destination starts",
			diff: "@@ -1,1 +1,1 @@\n a\n+x\n+y\n@@ -5 +5 @@\n-e\n",
			want: "@@ -1,1 +1,3 @@\n a\n+x\n+y\n@@ -5,1 +7,0 @@\n-e\n",
		},
		{
			name: "zero start clamped",
			diff: "@@ -0,0 +0,0 @@\n+x\n",
			want: "@@ -1,0 +1,1 @@\n+x\n",
		},
		{
			name: "unknown prefixes dropped",
			diff: "@@ -1,1 +1,1 @@\n-a\n\\ No newline at end of file\n+b\n",
			want: "@@ -1,1 +1,1 @@\n-a\n+b\n",
		},
		{
			name: "already valid",
			diff: fixtureDiff,
			want: fixtureDiff,
		},
		{
			name: "no hunks",
			diff: "just words\n",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Fix(tt.diff)
			assert.Equal(t, tt.want, got)
			require.NoError(t, Check(got))
		})
	}
}
