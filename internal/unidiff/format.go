package unidiff

import (
	"strings"

	"github.com/sokinpui/tidydiff.go/internal/ses"
)

// Context is the number of unchanged lines kept on each side of a change.
const Context = 1

// region is one changed area: source lines [a0,a1) are replaced by
// destination lines [b0,b1).
type region struct {
	a0, a1 int
	b0, b1 int
}

// Format returns the unified diff that turns src into dst. Identical texts
// produce the empty string. The output always ends with a newline.
func Format(src, dst string) string {
	a := SplitLines(src)
	b := SplitLines(dst)

	regions := toRegions(ses.Compute(a, b))
	if len(regions) == 0 {
		return ""
	}

	var sb strings.Builder
	for _, group := range groupRegions(regions, Context) {
		writeHunk(&sb, a, b, group, Context)
	}
	return sb.String()
}

// toRegions folds canonical ops into changed regions.
func toRegions(ops []ses.Op) []region {
	var regions []region
	delta := 0
	for i := 0; i < len(ops); {
		r := region{a0: ops[i].Src, a1: ops[i].Src}
		if ops[i].Kind == ses.Delete {
			r.a1 += ops[i].Len
			i++
		}
		r.b0 = r.a0 + delta
		r.b1 = r.b0
		for i < len(ops) && ops[i].Kind == ses.Insert && ops[i].Src == r.a1 {
			r.b1++
			i++
		}
		delta += (r.b1 - r.b0) - (r.a1 - r.a0)
		regions = append(regions, r)
	}
	return regions
}

// groupRegions merges regions whose context lines would touch or overlap.
func groupRegions(regions []region, context int) [][]region {
	var groups [][]region
	for _, r := range regions {
		if n := len(groups); n > 0 {
			last := groups[n-1][len(groups[n-1])-1]
			if r.a0-last.a1 <= 2*context {
				groups[n-1] = append(groups[n-1], r)
				continue
			}
		}
		groups = append(groups, []region{r})
	}
	return groups
}

func writeHunk(sb *strings.Builder, a, b []string, group []region, context int) {
	first, last := group[0], group[len(group)-1]
	start := max(first.a0-context, 0)
	end := min(last.a1+context, len(a))

	h := Header{
		SrcStart: start + 1,
		SrcLen:   end - start,
		DstStart: start + (first.b0 - first.a0) + 1,
	}
	h.DstLen = h.SrcLen
	for _, r := range group {
		h.DstLen += (r.b1 - r.b0) - (r.a1 - r.a0)
	}

	sb.WriteString(h.String())
	sb.WriteByte('\n')

	cursor := start
	for _, r := range group {
		writeLines(sb, PrefixContext, a[cursor:r.a0])
		writeLines(sb, PrefixDelete, a[r.a0:r.a1])
		writeLines(sb, PrefixInsert, b[r.b0:r.b1])
		cursor = r.a1
	}
	writeLines(sb, PrefixContext, a[cursor:end])
}

func writeLines(sb *strings.Builder, prefix byte, lines []string) {
	for _, line := range lines {
		sb.WriteByte(prefix)
		sb.WriteString(line)
		sb.WriteByte('\n')
	}
}
