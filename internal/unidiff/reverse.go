package unidiff

import "strings"

// Reverse returns the diff that undoes diff: applying it to the destination
// text gives back the source text. Within each change run the former
// insertions become deletions and are written first, so the result keeps the
// deletes-before-inserts order.
func Reverse(diff string) string {
	var sb strings.Builder
	for _, hunk := range Parse(diff) {
		h := Header{
			SrcStart: hunk.Header.DstStart,
			SrcLen:   hunk.Header.DstLen,
			DstStart: hunk.Header.SrcStart,
			DstLen:   hunk.Header.SrcLen,
		}
		sb.WriteString(h.String())
		sb.WriteByte('\n')

		var deleted, inserted []string
		flush := func() {
			writeLines(&sb, PrefixDelete, inserted)
			writeLines(&sb, PrefixInsert, deleted)
			deleted, inserted = nil, nil
		}
		for _, line := range hunk.Body {
			if line == "" {
				continue
			}
			switch line[0] {
			case PrefixContext:
				flush()
				sb.WriteString(line)
				sb.WriteByte('\n')
			case PrefixDelete:
				deleted = append(deleted, line[1:])
			case PrefixInsert:
				inserted = append(inserted, line[1:])
			}
		}
		flush()
	}
	return sb.String()
}
