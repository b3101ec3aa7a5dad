package unidiff

import "fmt"

// Check validates diff and returns the first defect as a *CheckError.
//
// Each header must follow the strict grammar and declare positive starts.
// A hunk must not start before the previous one ended, and its destination
// start must equal its source start shifted by the line delta of all earlier
// hunks. Every body line needs a ' ', '-' or '+' prefix, and the header
// counts must equal the context+deleted and context+inserted lines present.
func Check(diff string) error {
	var (
		current       *Hunk
		headerRaw     string
		ctx, del, ins int
	)
	cursor, offset := 1, 0

	closeHunk := func() error {
		if current == nil {
			return nil
		}
		h := current.Header
		if ctx+del != h.SrcLen || ctx+ins != h.DstLen {
			return &CheckError{
				Err:    ErrChunkOutOfRange,
				Line:   current.Line,
				Text:   headerRaw,
				Detail: fmt.Sprintf("header declares -%d,%d +%d,%d but body has -%d,%d +%d,%d", h.SrcStart, h.SrcLen, h.DstStart, h.DstLen, h.SrcStart, ctx+del, h.DstStart, ctx+ins),
			}
		}
		cursor = h.SrcStart + h.SrcLen
		offset += h.DstLen - h.SrcLen
		return nil
	}

	for i, line := range diffLines(diff) {
		lineNo := i + 1

		if IsHeader(line) {
			if err := closeHunk(); err != nil {
				return err
			}
			h, ok := ParseHeader(line)
			if !ok {
				return &CheckError{Err: ErrInvalidDiffFormat, Line: lineNo, Text: line, Detail: "malformed hunk header"}
			}
			if h.SrcStart <= 0 || h.DstStart <= 0 {
				return &CheckError{Err: ErrInvalidRange, Line: lineNo, Text: line}
			}
			if h.SrcStart < cursor {
				return &CheckError{Err: ErrInvalidLineNumber, Line: lineNo, Text: line, Detail: fmt.Sprintf("hunk starts at %d, previous hunk ended at %d", h.SrcStart, cursor)}
			}
			if want := h.SrcStart + offset; h.DstStart != want {
				return &CheckError{Err: ErrInvalidLineNumber, Line: lineNo, Text: line, Detail: fmt.Sprintf("destination start %d, expected %d", h.DstStart, want)}
			}
			current = &Hunk{Header: h, Line: lineNo}
			headerRaw = line
			ctx, del, ins = 0, 0, 0
			continue
		}

		if current == nil || line == "" {
			return &CheckError{Err: ErrInvalidDiffFormat, Line: lineNo, Text: line}
		}
		switch line[0] {
		case PrefixContext:
			ctx++
		case PrefixDelete:
			del++
		case PrefixInsert:
			ins++
		default:
			return &CheckError{Err: ErrInvalidDiffFormat, Line: lineNo, Text: line, Detail: fmt.Sprintf("unexpected line prefix %q", line[0])}
		}
	}
	return closeHunk()
}
