package source

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMapLines(t *testing.T) {
	m := New("fn main()\n  ret 0\nend\n")
	assert.Equal(t, 4, m.LineCount())
	assert.Equal(t, "fn main()", m.Line(1))
	assert.Equal(t, "  ret 0", m.Line(2))
	assert.Equal(t, "end", m.Line(3))
	assert.Equal(t, "", m.Line(4))
	assert.Equal(t, "", m.Line(0))
	assert.Equal(t, "", m.Line(5))
}

func TestMapNoTrailingNewline(t *testing.T) {
	m := New("let x = 1")
	assert.Equal(t, 1, m.LineCount())
	assert.Equal(t, "let x = 1", m.Line(1))
}

func TestMapOffsetAndPosition(t *testing.T) {
	m := New("abc\ndef\nghi")
	off := m.Offset(2, 2)
	assert.Equal(t, 5, off) // "abc\n" is 4 bytes, +1 for col 2 (0-indexed 1)
	line, col := m.Position(off)
	assert.Equal(t, 2, line)
	assert.Equal(t, 2, col)
}

func TestExpandTabs(t *testing.T) {
	assert.Equal(t, "    x", ExpandTabs("\tx"))
	assert.Equal(t, "no tabs", ExpandTabs("no tabs"))
}
