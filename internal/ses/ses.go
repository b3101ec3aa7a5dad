// Package ses computes shortest edit scripts between two sequences.
//
// The comparison runs Myers' O(ND) greedy algorithm over any comparable
// element type, so the same code serves whole lines and single runes.
// Scripts are returned in a canonical order: for every changed region the
// deletion run comes first, followed by the insertions that replace it, each
// group in input order.
package ses

import "slices"

// Kind tags an edit operation.
type Kind int

const (
	Delete Kind = iota
	Insert
)

func (k Kind) String() string {
	switch k {
	case Delete:
		return "delete"
	case Insert:
		return "insert"
	default:
		return "unknown"
	}
}

// Op is one edit operation.
//
// For Delete, Src is the 0-based index of the first removed source element
// and Len the length of the removed run. For Insert, Src is the anchor (the
// number of source elements consumed before the insertion) and Dst is the
// 0-based index of the inserted element in the destination.
type Op struct {
	Kind Kind
	Src  int
	Len  int
	Dst  int
}

// move is one step of the alignment path.
type move byte

const (
	moveEqual move = iota
	moveDelete
	moveInsert
)

// Compute returns the shortest edit script transforming src into dst.
func Compute[T comparable](src, dst []T) []Op {
	prefix, suffix := Trim(src, dst)
	a := src[prefix : len(src)-suffix]
	b := dst[prefix : len(dst)-suffix]
	return canonical(walk(a, b), prefix)
}

// Trim reports the length of the common prefix of a and b, and the length of
// the common suffix of what remains after the prefix is removed.
func Trim[T comparable](a, b []T) (prefix, suffix int) {
	n := min(len(a), len(b))
	for prefix < n && a[prefix] == b[prefix] {
		prefix++
	}
	for suffix < n-prefix && a[len(a)-1-suffix] == b[len(b)-1-suffix] {
		suffix++
	}
	return prefix, suffix
}

// Distance is the number of single-element edits in ops.
func Distance(ops []Op) int {
	d := 0
	for _, op := range ops {
		if op.Kind == Delete {
			d += op.Len
		} else {
			d++
		}
	}
	return d
}

// ApplyOps replays ops against src, taking inserted elements from dst.
// ops must be in the order produced by Compute.
func ApplyOps[T any](src, dst []T, ops []Op) []T {
	out := make([]T, 0, len(dst))
	cursor := 0
	for _, op := range ops {
		if op.Src > cursor {
			out = append(out, src[cursor:op.Src]...)
			cursor = op.Src
		}
		switch op.Kind {
		case Delete:
			cursor += op.Len
		case Insert:
			out = append(out, dst[op.Dst])
		}
	}
	return append(out, src[cursor:]...)
}

// walk aligns a and b and returns the path from (0,0) to (len(a),len(b)).
func walk[T comparable](a, b []T) []move {
	n, m := len(a), len(b)
	if n == 0 && m == 0 {
		return nil
	}

	max := n + m
	offset := max + 1
	v := make([]int, 2*max+3)

	// trace[d] holds v[k] for k in [-d, d] after round d.
	var trace [][]int
	for d := 0; d <= max; d++ {
		for k := -d; k <= d; k += 2 {
			var x int
			if k == -d || (k != d && v[offset+k-1] < v[offset+k+1]) {
				x = v[offset+k+1]
			} else {
				x = v[offset+k-1] + 1
			}
			y := x - k
			for x < n && y < m && a[x] == b[y] {
				x++
				y++
			}
			v[offset+k] = x

			if x >= n && y >= m {
				trace = append(trace, slices.Clone(v[offset-d:offset+d+1]))
				return backtrack(trace, n, m)
			}
		}
		trace = append(trace, slices.Clone(v[offset-d:offset+d+1]))
	}
	return nil
}

func backtrack(trace [][]int, n, m int) []move {
	at := func(d, k int) int { return trace[d][k+d] }

	var moves []move
	x, y := n, m
	for d := len(trace) - 1; d > 0; d-- {
		k := x - y
		var prevK int
		down := k == -d || (k != d && at(d-1, k-1) < at(d-1, k+1))
		if down {
			prevK = k + 1
		} else {
			prevK = k - 1
		}
		prevX := at(d-1, prevK)
		prevY := prevX - prevK

		for x > prevX && y > prevY {
			moves = append(moves, moveEqual)
			x--
			y--
		}
		if down {
			moves = append(moves, moveInsert)
		} else {
			moves = append(moves, moveDelete)
		}
		x, y = prevX, prevY
	}
	for x > 0 && y > 0 {
		moves = append(moves, moveEqual)
		x--
		y--
	}

	slices.Reverse(moves)
	return moves
}

// canonical folds the path into ops, offsetting indices by the trimmed prefix.
func canonical(moves []move, prefix int) []Op {
	var ops []Op
	si, di := prefix, prefix
	for i := 0; i < len(moves); {
		if moves[i] == moveEqual {
			si++
			di++
			i++
			continue
		}

		start := si
		var inserts []int
		for ; i < len(moves) && moves[i] != moveEqual; i++ {
			if moves[i] == moveDelete {
				si++
			} else {
				inserts = append(inserts, di)
				di++
			}
		}
		if si > start {
			ops = append(ops, Op{Kind: Delete, Src: start, Len: si - start})
		}
		for _, j := range inserts {
			ops = append(ops, Op{Kind: Insert, Src: si, Dst: j})
		}
	}
	return ops
}
