package unidiff

import "strings"

// Fix rewrites every hunk header from its body. Counts are recounted, source
// starts are clamped so hunks stay ordered, and destination starts are
// chained from the source starts. Blank body lines are read as empty context
// lines (editors and chat tools like to strip the lone space); lines with an
// unknown prefix are dropped. Hunks are never moved to a different place.
func Fix(diff string) string {
	hunks := Parse(diff)
	if len(hunks) == 0 {
		return ""
	}

	var sb strings.Builder
	cursor, offset := 1, 0
	for _, hunk := range hunks {
		body := normalizeBody(hunk.Body)
		ctx, del, ins := countBody(body)

		h := Header{
			SrcStart: max(hunk.Header.SrcStart, cursor),
			SrcLen:   ctx + del,
			DstLen:   ctx + ins,
		}
		h.DstStart = h.SrcStart + offset

		sb.WriteString(h.String())
		sb.WriteByte('\n')
		for _, line := range body {
			sb.WriteString(line)
			sb.WriteByte('\n')
		}

		cursor = h.SrcStart + h.SrcLen
		offset += h.DstLen - h.SrcLen
	}
	return sb.String()
}

func normalizeBody(body []string) []string {
	out := make([]string, 0, len(body))
	for _, line := range body {
		if line == "" {
			out = append(out, string(PrefixContext))
			continue
		}
		switch line[0] {
		case PrefixContext, PrefixDelete, PrefixInsert:
			out = append(out, line)
		}
	}
	return out
}
