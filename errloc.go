package cssparse

import (
	"fmt"
	"sort"
)

// errLocation is the line/column rendering of a byte offset, computed
// when the parser creates a ParseError and printed by its Error
// method. Adapted from pos.go's
// LineIndex: that type binary-searches rune-based line starts for a
// Unicode source; this one searches byte offsets directly, since the
// CSS grammar is structurally ASCII (names, punctuation) over a raw
// byte buffer and only opaque values may carry UTF-8.
type errLocation struct {
	line, column int
}

func (l errLocation) String() string {
	return fmt.Sprintf("%d:%d", l.line, l.column)
}

// byteLineIndex stores the start byte offset of each line (0-based)
// so a byte offset can be converted to a 1-based line/column pair by
// binary search in O(log lines).
type byteLineIndex struct {
	lineStart []int
}

func newByteLineIndex(input []byte) *byteLineIndex {
	lineStart := make([]int, 1, 64)
	lineStart[0] = 0
	for i, b := range input {
		if b == '\n' {
			lineStart = append(lineStart, i+1)
		}
	}
	return &byteLineIndex{lineStart: lineStart}
}

func (bi *byteLineIndex) locationAt(offset int) errLocation {
	if offset < 0 {
		offset = 0
	}

	lineIdx := sort.Search(len(bi.lineStart), func(i int) bool {
		return bi.lineStart[i] > offset
	}) - 1
	if lineIdx < 0 {
		lineIdx = 0
	}

	return errLocation{
		line:   lineIdx + 1,
		column: offset - bi.lineStart[lineIdx] + 1,
	}
}
