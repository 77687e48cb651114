package parser

import (
	"github.com/konacodes/null/internal/ast"
	"github.com/konacodes/null/internal/token"
)

// parseStmt dispatches on the leading token of a statement (spec.md §6:
// Stmt := VarDecl | 'ret' [Expr] | 'break' | 'continue' | IfStmt |
// WhileStmt | ForStmt | ExprStmt).
func (p *Parser) parseStmt() ast.Stmt {
	switch p.cur.Tag {
	case token.LET, token.MUT, token.CONST:
		return p.parseVarDecl()
	case token.RET:
		return p.parseRetStmt()
	case token.BREAK:
		n := ast.NewBreakStmt(p.a, p.cur.Pos)
		p.advance()
		return n
	case token.CONTINUE:
		n := ast.NewContinueStmt(p.a, p.cur.Pos)
		p.advance()
		return n
	case token.IF:
		return p.parseIfStmt()
	case token.WHILE:
		return p.parseWhileStmt()
	case token.FOR:
		return p.parseForStmt()
	default:
		n := ast.NewExprStmt(p.a, p.cur.Pos)
		n.X = p.parseExpr()
		return n
	}
}

func (p *Parser) parseRetStmt() *ast.RetStmt {
	pos := p.cur.Pos
	p.advance() // 'ret'
	n := ast.NewRetStmt(p.a, pos)
	if !p.stmtEnds() {
		n.Value = p.parseExpr()
	}
	return n
}

// stmtEnds reports whether the current token can only follow a
// bare `ret` with no expression (end of the enclosing block/program, or
// a statement separator).
func (p *Parser) stmtEnds() bool {
	switch p.cur.Tag {
	case token.NEWLINE, token.END, token.EOF, token.ELIF, token.ELSE:
		return true
	default:
		return false
	}
}

func (p *Parser) parseIfStmt() *ast.IfStmt {
	pos := p.cur.Pos
	p.advance() // 'if'
	n := ast.NewIfStmt(p.a, pos)
	n.Cond = p.parseExpr()
	p.expect(token.DO, "'do'")
	n.Then = p.parseBlockNoEnd()

	for p.check(token.ELIF) {
		clausePos := p.cur.Pos
		p.advance()
		cond := p.parseExpr()
		p.expect(token.DO, "'do'")
		body := p.parseBlockNoEnd()
		n.Elifs = append(n.Elifs, ast.ElifClause{Cond: cond, Body: body, Pos: clausePos})
	}

	if p.match(token.ELSE) {
		n.Else = p.parseBlockNoEnd()
	}

	p.expect(token.END, "'end'")
	return n
}

// parseBlockNoEnd parses the statement sequence of an if/elif/else arm,
// stopping at 'elif', 'else', or 'end' without consuming it — the
// surrounding IfStmt owns the single trailing 'end'.
func (p *Parser) parseBlockNoEnd() *ast.Block {
	pos := p.cur.Pos
	n := ast.NewBlock(p.a, pos)
	p.skipNewlines()
	for !p.check(token.END) && !p.check(token.ELIF) && !p.check(token.ELSE) && !p.check(token.EOF) {
		if s := p.parseStmt(); s != nil {
			n.Stmts = append(n.Stmts, s)
		}
		p.skipNewlines()
	}
	return n
}

func (p *Parser) parseWhileStmt() *ast.WhileStmt {
	pos := p.cur.Pos
	p.advance() // 'while'
	n := ast.NewWhileStmt(p.a, pos)
	n.Cond = p.parseExpr()
	p.expect(token.DO, "'do'")
	n.Body = p.parseBlock()
	return n
}

func (p *Parser) parseForStmt() *ast.ForStmt {
	pos := p.cur.Pos
	p.advance() // 'for'
	n := ast.NewForStmt(p.a, pos)
	varTok, _ := p.expect(token.IDENT, "loop variable")
	n.Var = varTok.Lexeme(p.src)
	p.expect(token.IN, "'in'")
	n.From = p.parseExpr()
	p.expect(token.DOTDOT, "'..'")
	n.To = p.parseExpr()
	p.expect(token.DO, "'do'")
	n.Body = p.parseBlock()
	return n
}
