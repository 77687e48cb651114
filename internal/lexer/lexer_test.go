package lexer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/konacodes/null/internal/token"
)

func scanAll(t *testing.T, src string) []token.Token {
	t.Helper()
	l := New(src)
	var toks []token.Token
	for {
		tok := l.Next()
		toks = append(toks, tok)
		if tok.Tag == token.EOF {
			break
		}
	}
	return toks
}

func tags(toks []token.Token) []token.Tag {
	out := make([]token.Tag, len(toks))
	for i, t := range toks {
		out[i] = t.Tag
	}
	return out
}

func TestLexerKeywordsAndIdents(t *testing.T) {
	toks := scanAll(t, "fn main let mut xs")
	got := tags(toks)
	require.Len(t, got, 6)
	assert.Equal(t, token.FN, got[0])
	assert.Equal(t, token.IDENT, got[1]) // "main" is not a keyword
	assert.Equal(t, token.LET, got[2])
	assert.Equal(t, token.MUT, got[3])
	assert.Equal(t, token.IDENT, got[4])
	assert.Equal(t, token.EOF, got[5])
}

func TestLexerNumbers(t *testing.T) {
	toks := scanAll(t, "42 3.14")
	require.Len(t, toks, 3)
	assert.Equal(t, token.INT, toks[0].Tag)
	assert.EqualValues(t, 42, toks[0].IntValue)
	assert.Equal(t, token.FLOAT, toks[1].Tag)
	assert.InDelta(t, 3.14, toks[1].FloatValue, 1e-9)
}

func TestLexerOperatorsMaximalMunch(t *testing.T) {
	toks := scanAll(t, "== != <= >= << >> -> => :: .. |>")
	got := tags(toks)
	want := []token.Tag{
		token.EQEQ, token.NE, token.LE, token.GE, token.LSHIFT, token.RSHIFT,
		token.ARROW, token.FATARROW, token.COLONCOLON, token.DOTDOT, token.PIPEGT,
		token.EOF,
	}
	assert.Equal(t, want, got)
}

func TestLexerComments(t *testing.T) {
	toks := scanAll(t, "let x = 1 -- trailing comment\nlet y = 2")
	got := tags(toks)
	// comment is skipped; NEWLINE still produced
	assert.Contains(t, got, token.NEWLINE)
	assert.NotContains(t, got, token.ERROR)
}

func TestLexerBlockComment(t *testing.T) {
	toks := scanAll(t, "let x = 1\n--- this\nspans lines ---\nlet y = 2")
	got := tags(toks)
	assert.NotContains(t, got, token.ERROR)
	// both declarations still present
	count := 0
	for _, tg := range got {
		if tg == token.LET {
			count++
		}
	}
	assert.Equal(t, 2, count)
}

func TestLexerDirectives(t *testing.T) {
	toks := scanAll(t, "@use @extern @alloc @free @bogus")
	got := tags(toks)
	assert.Equal(t, token.DIR_USE, got[0])
	assert.Equal(t, token.DIR_EXTERN, got[1])
	assert.Equal(t, token.DIR_ALLOC, got[2])
	assert.Equal(t, token.DIR_FREE, got[3])
	assert.Equal(t, token.ERROR, got[4])
}

func TestLexerUnterminatedString(t *testing.T) {
	l := New(`"hello`)
	tok := l.Next()
	assert.Equal(t, token.ERROR, tok.Tag)
	assert.Contains(t, tok.Message, "Unterminated")
}

func TestLexerPositions(t *testing.T) {
	l := New("fn\nmain")
	fnTok := l.Next()
	assert.Equal(t, token.Pos{Line: 1, Column: 1}, fnTok.Pos)
	nlTok := l.Next()
	assert.Equal(t, token.NEWLINE, nlTok.Tag)
	mainTok := l.Next()
	assert.Equal(t, token.Pos{Line: 2, Column: 1}, mainTok.Pos)
}

func TestDecodeString(t *testing.T) {
	s, err := DecodeString(`"a\nb\t\"c\""`)
	require.NoError(t, err)
	assert.Equal(t, "a\nb\t\"c\"", s)

	_, err = DecodeString(`"bad\x"`)
	assert.Error(t, err)
}

func TestLexerPeekDoesNotConsume(t *testing.T) {
	l := New("fn main")
	peeked := l.Peek()
	assert.Equal(t, token.FN, peeked.Tag)
	next := l.Next()
	assert.Equal(t, token.FN, next.Tag)
}
