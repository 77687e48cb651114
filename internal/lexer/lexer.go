// Package lexer converts a preprocessed source buffer into a token stream
// (spec.md §4.2). It is constructed once per compilation over a buffer that
// must outlive it, and produces tokens lazily — the parser calls Next as it
// goes rather than receiving a pre-built slice.
package lexer

import (
	"errors"
	"strconv"
	"strings"

	"github.com/konacodes/null/internal/source"
	"github.com/konacodes/null/internal/token"
)

// Lexer scans a borrowed source buffer into tokens. It owns no allocation
// beyond its source.Map (spec.md §4.2: "Input: a borrowed source buffer
// (must outlive the lexer)").
type Lexer struct {
	src    string
	Map    *source.Map
	pos    int // byte offset of the next unread byte
	line   int
	col    int
	tStart int // byte offset of the token currently being scanned
	tLine  int
	tCol   int
}

// New builds a Lexer over src, computing its source map up front.
func New(src string) *Lexer {
	return &Lexer{
		src:  src,
		Map:  source.New(src),
		line: 1,
		col:  1,
	}
}

func (l *Lexer) atEnd() bool { return l.pos >= len(l.src) }

func (l *Lexer) peek() byte {
	if l.atEnd() {
		return 0
	}
	return l.src[l.pos]
}

func (l *Lexer) peekAt(off int) byte {
	if l.pos+off >= len(l.src) {
		return 0
	}
	return l.src[l.pos+off]
}

func (l *Lexer) advance() byte {
	c := l.src[l.pos]
	l.pos++
	l.col++
	return c
}

func (l *Lexer) match(c byte) bool {
	if l.atEnd() || l.src[l.pos] != c {
		return false
	}
	l.pos++
	l.col++
	return true
}

func isAlpha(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c == '_'
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isAlnum(c byte) bool { return isAlpha(c) || isDigit(c) }

// skipWhitespaceAndComments advances past spaces, tabs, carriage returns,
// "--" line comments, and "---"-delimited block comments — everything
// except '\n', which is itself a significant NEWLINE token
// (spec.md §4.2).
func (l *Lexer) skipWhitespaceAndComments() {
	for {
		switch l.peek() {
		case ' ', '\t', '\r':
			l.advance()
		case '-':
			if l.peekAt(1) != '-' {
				return
			}
			if l.peekAt(2) == '-' {
				l.advance()
				l.advance()
				l.advance()
				for !l.atEnd() {
					if l.peek() == '-' && l.peekAt(1) == '-' && l.peekAt(2) == '-' {
						l.advance()
						l.advance()
						l.advance()
						break
					}
					if l.peek() == '\n' {
						l.line++
						l.col = 0
					}
					l.advance()
				}
			} else {
				l.advance()
				l.advance()
				for l.peek() != '\n' && !l.atEnd() {
					l.advance()
				}
			}
		default:
			return
		}
	}
}

func (l *Lexer) makeToken(tag token.Tag) token.Token {
	return token.Token{
		Tag:    tag,
		Start:  l.tStart,
		Length: l.pos - l.tStart,
		Pos:    token.Pos{Line: l.tLine, Column: l.tCol},
	}
}

func (l *Lexer) errorToken(msg string) token.Token {
	return token.Token{
		Tag:     token.ERROR,
		Start:   l.tStart,
		Length:  l.pos - l.tStart,
		Pos:     token.Pos{Line: l.tLine, Column: l.tCol},
		Message: msg,
	}
}

func (l *Lexer) identifier() token.Token {
	for isAlnum(l.peek()) {
		l.advance()
	}
	text := l.src[l.tStart:l.pos]
	if tag, ok := token.Keywords[text]; ok {
		return l.makeToken(tag)
	}
	return l.makeToken(token.IDENT)
}

func (l *Lexer) number() token.Token {
	for isDigit(l.peek()) {
		l.advance()
	}
	if l.peek() == '.' && isDigit(l.peekAt(1)) {
		l.advance()
		for isDigit(l.peek()) {
			l.advance()
		}
		tok := l.makeToken(token.FLOAT)
		tok.FloatValue, _ = strconv.ParseFloat(l.src[l.tStart:l.pos], 64)
		return tok
	}
	tok := l.makeToken(token.INT)
	tok.IntValue, _ = strconv.ParseInt(l.src[l.tStart:l.pos], 10, 64)
	return tok
}

// stringLiteral preserves the raw span including the surrounding quotes;
// escape decoding happens in the parser (spec.md §4.2: "decoded at parse
// time (not lex time)").
func (l *Lexer) stringLiteral() token.Token {
	for l.peek() != '"' && !l.atEnd() {
		if l.peek() == '\n' {
			l.line++
			l.col = 0
		}
		if l.peek() == '\\' && l.peekAt(1) != 0 {
			l.advance()
		}
		l.advance()
	}
	if l.atEnd() {
		return l.errorToken("Unterminated string.")
	}
	l.advance() // closing quote
	return l.makeToken(token.STRING)
}

func (l *Lexer) directive() token.Token {
	for isAlpha(l.peek()) {
		l.advance()
	}
	name := l.src[l.tStart+1 : l.pos]
	if tag, ok := token.Directives[name]; ok {
		return l.makeToken(tag)
	}
	return l.errorToken("Unknown directive.")
}

// Next scans and returns the next token, advancing the lexer's position.
func (l *Lexer) Next() token.Token {
	l.skipWhitespaceAndComments()

	l.tStart = l.pos
	l.tLine = l.line
	l.tCol = l.col

	if l.atEnd() {
		return l.makeToken(token.EOF)
	}

	c := l.advance()

	if isAlpha(c) {
		return l.identifier()
	}
	if isDigit(c) {
		return l.number()
	}

	switch c {
	case '\n':
		l.line++
		l.col = 1
		return l.makeToken(token.NEWLINE)
	case '(':
		return l.makeToken(token.LPAREN)
	case ')':
		return l.makeToken(token.RPAREN)
	case '{':
		return l.makeToken(token.LBRACE)
	case '}':
		return l.makeToken(token.RBRACE)
	case '[':
		return l.makeToken(token.LBRACKET)
	case ']':
		return l.makeToken(token.RBRACKET)
	case ',':
		return l.makeToken(token.COMMA)
	case ';':
		return l.makeToken(token.SEMICOLON)
	case '~':
		return l.makeToken(token.TILDE)
	case '@':
		return l.directive()
	case '+':
		return l.makeToken(token.PLUS)
	case '*':
		return l.makeToken(token.STAR)
	case '/':
		return l.makeToken(token.SLASH)
	case '%':
		return l.makeToken(token.PERCENT)
	case '^':
		return l.makeToken(token.CARET)
	case '"':
		return l.stringLiteral()
	case '.':
		if l.match('.') {
			return l.makeToken(token.DOTDOT)
		}
		return l.makeToken(token.DOT)
	case ':':
		if l.match(':') {
			return l.makeToken(token.COLONCOLON)
		}
		return l.makeToken(token.COLON)
	case '-':
		if l.match('>') {
			return l.makeToken(token.ARROW)
		}
		return l.makeToken(token.MINUS)
	case '=':
		if l.match('=') {
			return l.makeToken(token.EQEQ)
		}
		if l.match('>') {
			return l.makeToken(token.FATARROW)
		}
		return l.makeToken(token.EQ)
	case '!':
		if l.match('=') {
			return l.makeToken(token.NE)
		}
		return l.errorToken("Expected '=' after '!'.")
	case '<':
		if l.match('=') {
			return l.makeToken(token.LE)
		}
		if l.match('<') {
			return l.makeToken(token.LSHIFT)
		}
		return l.makeToken(token.LT)
	case '>':
		if l.match('=') {
			return l.makeToken(token.GE)
		}
		if l.match('>') {
			return l.makeToken(token.RSHIFT)
		}
		return l.makeToken(token.GT)
	case '&':
		return l.makeToken(token.AMP)
	case '|':
		if l.match('>') {
			return l.makeToken(token.PIPEGT)
		}
		return l.makeToken(token.PIPE)
	}

	return l.errorToken("Unexpected character.")
}

// Peek returns the next token without consuming it.
func (l *Lexer) Peek() token.Token {
	savedPos, savedLine, savedCol := l.pos, l.line, l.col
	tok := l.Next()
	l.pos, l.line, l.col = savedPos, savedLine, savedCol
	return tok
}

// DecodeString decodes the escape sequences in a raw string-literal lexeme
// (including its surrounding quotes) per spec.md §4.2:
// \n \t \r \\ \" \0.
func DecodeString(raw string) (string, error) {
	if len(raw) < 2 || raw[0] != '"' || raw[len(raw)-1] != '"' {
		return "", errors.New("malformed string literal")
	}
	body := raw[1 : len(raw)-1]
	var b strings.Builder
	b.Grow(len(body))
	for i := 0; i < len(body); i++ {
		c := body[i]
		if c != '\\' {
			b.WriteByte(c)
			continue
		}
		i++
		if i >= len(body) {
			return "", errors.New("trailing backslash in string literal")
		}
		switch body[i] {
		case 'n':
			b.WriteByte('\n')
		case 't':
			b.WriteByte('\t')
		case 'r':
			b.WriteByte('\r')
		case '\\':
			b.WriteByte('\\')
		case '"':
			b.WriteByte('"')
		case '0':
			b.WriteByte(0)
		default:
			return "", errors.New("unknown escape sequence '\\" + string(body[i]) + "'")
		}
	}
	return b.String(), nil
}
