// Package parser implements the predictive recursive-descent,
// precedence-climbing parser (spec.md §4.3, grammar in spec.md §6).
// Grounded on original_source/src/parser.c for the exact precedence
// table and panic-mode synchronization points, restructured into
// idiomatic Go: methods on a *Parser, explicit error returns collected
// through an analysis.ErrorReporterImpl rather than C's setjmp/longjmp
// panic mode. github.com/antlr4-go/antlr/v4, the teacher's own parser
// generator, is deliberately not used here (see DESIGN.md).
package parser

import (
	"fmt"

	"github.com/konacodes/null/internal/analysis"
	"github.com/konacodes/null/internal/arena"
	"github.com/konacodes/null/internal/ast"
	"github.com/konacodes/null/internal/lexer"
	"github.com/konacodes/null/internal/token"
)

// Parser holds one token of committed lookahead (cur) plus one token of
// peek (next), matching spec.md §4.3's "look-ahead 1 (plus one-token
// peek)".
type Parser struct {
	lx  *lexer.Lexer
	src string
	a   *arena.Arena

	Reporter *analysis.ErrorReporterImpl

	cur  token.Token
	next token.Token

	hadError  bool
	panicking bool
}

// New constructs a Parser over src, allocating AST nodes from a.
// reporter is shared with whatever other pipeline stages run alongside
// it, matching internal/interp's and internal/analysis's convention of
// taking an ErrorReporterImpl rather than constructing their own.
func New(src string, a *arena.Arena, reporter *analysis.ErrorReporterImpl) *Parser {
	p := &Parser{
		lx:       lexer.New(src),
		src:      src,
		a:        a,
		Reporter: reporter,
	}
	p.cur = p.scan()
	p.next = p.scan()
	return p
}

// HadError reports whether any syntax error was encountered.
func (p *Parser) HadError() bool { return p.hadError }

// scan pulls the next well-formed token from the lexer, reporting (and
// skipping over) any ERROR tokens it produces along the way — lex-stage
// faults (spec.md §7's Lex taxonomy: unterminated string, unknown
// directive, unexpected character) surface through the same
// ErrorReporter the parser itself uses, then scanning continues past
// the offending byte.
func (p *Parser) scan() token.Token {
	for {
		t := p.lx.Next()
		if t.Tag != token.ERROR {
			return t
		}
		p.errorAt(t.Pos, t.Lexeme(p.src), t.Message)
	}
}

func (p *Parser) advance() token.Token {
	tok := p.cur
	p.cur = p.next
	p.next = p.scan()
	return tok
}

func (p *Parser) check(tag token.Tag) bool { return p.cur.Tag == tag }

func (p *Parser) match(tag token.Tag) bool {
	if !p.check(tag) {
		return false
	}
	p.advance()
	return true
}

// expect consumes cur if it has tag, else reports a "expected-token"
// failure (spec.md §7: "carries the expected-what string") and leaves
// cur in place for the caller's recovery to handle.
func (p *Parser) expect(tag token.Tag, what string) (token.Token, bool) {
	if p.check(tag) {
		return p.advance(), true
	}
	p.errorAt(p.cur.Pos, p.cur.Lexeme(p.src), fmt.Sprintf("expected %s, found '%s'", what, p.cur.Tag))
	return p.cur, false
}

// errorAt records a syntax error unless the parser is already in panic
// mode (spec.md §7: "the first error in a construct is reported;
// subsequent errors are suppressed until the next synchronization
// point").
func (p *Parser) errorAt(pos token.Pos, lexeme, msg string) {
	p.hadError = true
	if p.panicking {
		return
	}
	p.panicking = true
	_ = lexeme
	p.Reporter.ReportTypedError(pos.Line, pos.Column, msg, analysis.SyntaxError)
}

// synchronize skips tokens until a likely statement/declaration boundary
// (spec.md §7: "recovers by skipping to the next synchronization token,
// typically NEWLINE / end / EOF", then "suppressed until ... a
// declaration boundary"). Leaving panic mode here is what lets the next
// real error report again.
func (p *Parser) synchronize() {
	p.panicking = false
	for !p.check(token.EOF) {
		if p.check(token.NEWLINE) {
			p.advance()
			return
		}
		switch p.cur.Tag {
		case token.END, token.FN, token.STRUCT, token.ENUM,
			token.LET, token.MUT, token.CONST, token.DIR_USE, token.DIR_EXTERN:
			return
		}
		p.advance()
	}
}

// skipNewlines consumes zero or more NEWLINE tokens, used between
// top-level declarations and between statements in a block (spec.md §6:
// "Program := { Decl NEWLINE* }*").
func (p *Parser) skipNewlines() {
	for p.match(token.NEWLINE) {
	}
}

// Parse runs the whole grammar over the parser's token stream, returning
// the Program AST root (never nil; may hold zero declarations) along
// with whether any syntax error occurred.
func Parse(src string, a *arena.Arena, reporter *analysis.ErrorReporterImpl) (*ast.Program, bool) {
	p := New(src, a, reporter)
	return p.parseProgram(), p.hadError
}

func (p *Parser) parseProgram() *ast.Program {
	prog := ast.NewProgram(p.a, p.cur.Pos)
	p.skipNewlines()
	for !p.check(token.EOF) {
		// Each top-level declaration is a synchronization point: leave
		// panic mode so an error inside this declaration reports again.
		p.panicking = false
		if d := p.parseDecl(); d != nil {
			prog.Decls = append(prog.Decls, d)
		}
		p.skipNewlines()
	}
	return prog
}
