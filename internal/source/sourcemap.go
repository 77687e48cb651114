// Package source implements the line-start index used throughout the
// toolchain for O(1) line extraction (spec.md §2, §4.2). It owns the
// preprocessed source buffer: every later stage borrows a *Map rather than
// re-scanning bytes.
package source

import "strings"

// Map indexes the byte offsets at which each line of a buffer begins,
// built once at construction time the way
// original_source/src/lexer.c's build_line_index does (Lexer builds one
// and exposes it as Lexer.Map), then queried in O(1) by the caret-ruler
// renderer in internal/diagnostics.
type Map struct {
	buf        string
	lineStarts []int // lineStarts[i] = byte offset where line i+1 (1-indexed) begins
}

// New builds a Map over buf. Line numbers are 1-indexed to match spec.md's
// "(line, column)" positions.
func New(buf string) *Map {
	starts := make([]int, 1, 64)
	starts[0] = 0
	for i := 0; i < len(buf); i++ {
		if buf[i] == '\n' {
			starts = append(starts, i+1)
		}
	}
	return &Map{buf: buf, lineStarts: starts}
}

// LineCount returns the number of lines in the buffer. A buffer with no
// trailing newline still counts its last partial line.
func (m *Map) LineCount() int {
	return len(m.lineStarts)
}

// Line returns the text of line n (1-indexed), excluding its trailing
// newline. Out-of-range n returns "".
func (m *Map) Line(n int) string {
	if n < 1 || n > len(m.lineStarts) {
		return ""
	}
	start := m.lineStarts[n-1]
	var end int
	if n == len(m.lineStarts) {
		end = len(m.buf)
	} else {
		end = m.lineStarts[n] - 1 // exclude the '\n'
	}
	if end > start && m.buf[end-1] == '\r' {
		end--
	}
	return m.buf[start:end]
}

// LineLength returns the length of line n, excluding its trailing newline.
func (m *Map) LineLength(n int) int {
	return len(m.Line(n))
}

// Offset returns the byte offset of (line, col) — both 1-indexed — into the
// underlying buffer.
func (m *Map) Offset(line, col int) int {
	if line < 1 || line > len(m.lineStarts) {
		return -1
	}
	return m.lineStarts[line-1] + (col - 1)
}

// Position converts a byte offset back into a (line, col) pair.
func (m *Map) Position(offset int) (line, col int) {
	// binary search for the last lineStarts[i] <= offset
	lo, hi := 0, len(m.lineStarts)-1
	for lo < hi {
		mid := (lo + hi + 1) / 2
		if m.lineStarts[mid] <= offset {
			lo = mid
		} else {
			hi = mid - 1
		}
	}
	return lo + 1, offset - m.lineStarts[lo] + 1
}

// ExpandTabs renders s with every tab expanded to four spaces, the
// alignment spec.md §4.7 requires between a rendered source line and its
// caret ruler.
func ExpandTabs(s string) string {
	if !strings.ContainsRune(s, '\t') {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r == '\t' {
			b.WriteString("    ")
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}
