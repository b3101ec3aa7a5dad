package unidiff

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Body line prefixes.
const (
	PrefixContext = ' '
	PrefixDelete  = '-'
	PrefixInsert  = '+'
)

var (
	// strictHeaderRegex is the only header shape Check accepts.
	strictHeaderRegex = regexp.MustCompile(`^@@ -(\d+),(\d+) \+(\d+),(\d+) @@$`)
	// looseHeaderRegex also accepts omitted counts and trailing section text.
	looseHeaderRegex = regexp.MustCompile(`^@@ -(\d+)(?:,(\d+))? \+(\d+)(?:,(\d+))? @@`)
)

// Header is the range line of a hunk. Starts are 1-based.
type Header struct {
	SrcStart int
	SrcLen   int
	DstStart int
	DstLen   int
}

func (h Header) String() string {
	return fmt.Sprintf("@@ -%d,%d +%d,%d @@", h.SrcStart, h.SrcLen, h.DstStart, h.DstLen)
}

// IsHeader reports whether line introduces a hunk.
func IsHeader(line string) bool {
	return strings.HasPrefix(line, "@@")
}

// ParseHeader parses line with the strict "@@ -S,L +S2,L2 @@" grammar.
func ParseHeader(line string) (Header, bool) {
	m := strictHeaderRegex.FindStringSubmatch(line)
	if m == nil {
		return Header{}, false
	}
	return Header{
		SrcStart: atoi(m[1], 0),
		SrcLen:   atoi(m[2], 0),
		DstStart: atoi(m[3], 0),
		DstLen:   atoi(m[4], 0),
	}, true
}

// ParseHeaderLoose parses line the way most diff producers write it: a
// missing count means 1 and anything after the closing "@@" is ignored.
func ParseHeaderLoose(line string) (Header, bool) {
	m := looseHeaderRegex.FindStringSubmatch(line)
	if m == nil {
		return Header{}, false
	}
	return Header{
		SrcStart: atoi(m[1], 0),
		SrcLen:   atoi(m[2], 1),
		DstStart: atoi(m[3], 0),
		DstLen:   atoi(m[4], 1),
	}, true
}

func atoi(s string, def int) int {
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}
