package parser

import (
	"github.com/konacodes/null/internal/ast"
	"github.com/konacodes/null/internal/lexer"
	"github.com/konacodes/null/internal/token"
)

// stringLitValue decodes a raw STRING token's escape sequences (spec.md
// §4.2: decoding happens at parse time, not lex time).
func stringLitValue(tok token.Token, src string) string {
	raw := tok.Lexeme(src)
	decoded, err := lexer.DecodeString(raw)
	if err != nil {
		return raw
	}
	return decoded
}

// binOpInfo is one row of spec.md §4.3's precedence table, levels 2
// ('or', lowest) through 11 ('*','/','%', highest binary level before
// unary). Assignment (level 1) and unary/postfix/primary (levels 12-14)
// are handled by their own dedicated parse functions instead of this
// table.
type binOpInfo struct {
	op   ast.BinOp
	prec int
}

var binOpTable = map[token.Tag]binOpInfo{
	token.OR:      {ast.OpOr, 2},
	token.AND:     {ast.OpAnd, 3},
	token.EQEQ:    {ast.OpEq, 4},
	token.NE:      {ast.OpNe, 4},
	token.LT:      {ast.OpLt, 5},
	token.LE:      {ast.OpLe, 5},
	token.GT:      {ast.OpGt, 5},
	token.GE:      {ast.OpGe, 5},
	token.PIPE:    {ast.OpBitOr, 6},
	token.CARET:   {ast.OpBitXor, 7},
	token.AMP:     {ast.OpBitAnd, 8},
	token.LSHIFT:  {ast.OpShl, 9},
	token.RSHIFT:  {ast.OpShr, 9},
	token.PLUS:    {ast.OpAdd, 10},
	token.MINUS:   {ast.OpSub, 10},
	token.STAR:    {ast.OpMul, 11},
	token.SLASH:   {ast.OpDiv, 11},
	token.PERCENT: {ast.OpMod, 11},
}

const minBinaryPrec = 2

// parseExpr is the top-level expression entry point: assignment, the
// lowest-precedence level.
func (p *Parser) parseExpr() ast.Expr {
	return p.parseAssignment()
}

// parseAssignment implements level 1, right-associative: `target = value`.
func (p *Parser) parseAssignment() ast.Expr {
	left := p.parseBinary(minBinaryPrec)
	if p.check(token.EQ) {
		pos := p.cur.Pos
		p.advance()
		value := p.parseAssignment()
		n := ast.NewAssignExpr(p.a, pos)
		n.Target = left
		n.Value = value
		return n
	}
	return left
}

// parseBinary implements precedence climbing over levels 2-11.
func (p *Parser) parseBinary(minPrec int) ast.Expr {
	left := p.parseUnary()
	for {
		info, ok := binOpTable[p.cur.Tag]
		if !ok || info.prec < minPrec {
			return left
		}
		opPos := p.cur.Pos
		p.advance()
		right := p.parseBinary(info.prec + 1)
		n := ast.NewBinaryExpr(p.a, left.Pos())
		n.Op = info.op
		n.Left = left
		n.Right = right
		n.OpPos = opPos
		left = n
	}
}

// parseUnary implements level 12: `- not ~ & *` as prefix operators.
func (p *Parser) parseUnary() ast.Expr {
	var op ast.UnOp
	switch p.cur.Tag {
	case token.MINUS:
		op = ast.OpNeg
	case token.NOT:
		op = ast.OpNot
	case token.TILDE:
		op = ast.OpBitNot
	case token.AMP:
		op = ast.OpAddr
	case token.STAR:
		op = ast.OpDeref
	default:
		return p.parsePostfix()
	}
	pos := p.cur.Pos
	p.advance()
	n := ast.NewUnaryExpr(p.a, pos)
	n.Op = op
	n.X = p.parseUnary()
	return n
}

// parsePostfix implements level 13: call, member, index, and the
// left-associative pipe `x |> f`, which rewrites to the call node
// `f(x)` (spec.md §4.3).
func (p *Parser) parsePostfix() ast.Expr {
	x := p.parsePrimary()
	for {
		switch p.cur.Tag {
		case token.LPAREN:
			x = p.finishCall(x)
		case token.DOT:
			pos := p.cur.Pos
			p.advance()
			fieldTok, _ := p.expect(token.IDENT, "field name")
			n := ast.NewMemberExpr(p.a, pos)
			n.X = x
			n.Field = fieldTok.Lexeme(p.src)
			x = n
		case token.LBRACKET:
			pos := p.cur.Pos
			p.advance()
			idx := p.parseExpr()
			p.expect(token.RBRACKET, "']'")
			n := ast.NewIndexExpr(p.a, pos)
			n.X = x
			n.Index = idx
			x = n
		case token.PIPEGT:
			pos := p.cur.Pos
			p.advance()
			callee := p.parsePipeCallee()
			n := ast.NewCallExpr(p.a, pos)
			n.Callee = callee
			n.Args = []ast.Expr{x}
			x = n
		default:
			return x
		}
	}
}

// parsePipeCallee parses the right-hand side of `|>`: a primary followed
// only by call/member/index postfixes, stopping before another `|>` so
// the enclosing parsePostfix loop — not this one — handles chaining.
// Without this, `x |> f |> g` would parse as `(g(f))(x)` instead of the
// left-associative `g(f(x))` spec.md §4.3 requires.
func (p *Parser) parsePipeCallee() ast.Expr {
	x := p.parsePrimary()
	for {
		switch p.cur.Tag {
		case token.LPAREN:
			x = p.finishCall(x)
		case token.DOT:
			pos := p.cur.Pos
			p.advance()
			fieldTok, _ := p.expect(token.IDENT, "field name")
			n := ast.NewMemberExpr(p.a, pos)
			n.X = x
			n.Field = fieldTok.Lexeme(p.src)
			x = n
		case token.LBRACKET:
			pos := p.cur.Pos
			p.advance()
			idx := p.parseExpr()
			p.expect(token.RBRACKET, "']'")
			n := ast.NewIndexExpr(p.a, pos)
			n.X = x
			n.Index = idx
			x = n
		default:
			return x
		}
	}
}

func (p *Parser) finishCall(callee ast.Expr) *ast.CallExpr {
	pos := p.cur.Pos
	p.advance() // '('
	n := ast.NewCallExpr(p.a, pos)
	n.Callee = callee
	if !p.check(token.RPAREN) {
		n.Args = append(n.Args, p.parseExpr())
		for p.match(token.COMMA) {
			n.Args = append(n.Args, p.parseExpr())
		}
	}
	p.expect(token.RPAREN, "')'")
	return n
}

// parsePrimary implements level 14: literals, identifier, parenthesized
// expressions, array initializers, struct initializers, and enum
// variant access.
func (p *Parser) parsePrimary() ast.Expr {
	pos := p.cur.Pos
	switch p.cur.Tag {
	case token.INT:
		tok := p.advance()
		n := ast.NewIntLit(p.a, pos)
		n.Value = tok.IntValue
		return n
	case token.FLOAT:
		tok := p.advance()
		n := ast.NewFloatLit(p.a, pos)
		n.Value = tok.FloatValue
		return n
	case token.STRING:
		tok := p.advance()
		n := ast.NewStringLit(p.a, pos)
		n.Value = stringLitValue(tok, p.src)
		return n
	case token.TRUE, token.FALSE:
		tok := p.advance()
		n := ast.NewBoolLit(p.a, pos)
		n.Value = tok.Tag == token.TRUE
		return n
	case token.IDENT:
		return p.parseIdentPrimary()
	case token.LPAREN:
		p.advance()
		x := p.parseExpr()
		p.expect(token.RPAREN, "')'")
		return x
	case token.LBRACKET:
		return p.parseArrayLit()
	default:
		p.errorAt(pos, p.cur.Lexeme(p.src), "expected an expression")
		p.advance()
		n := ast.NewIdent(p.a, pos)
		n.Name = "<error>"
		return n
	}
}

// parseIdentPrimary disambiguates a leading identifier between a plain
// variable reference, `Name::Variant` enum access, and `Name { field =
// value, … }` struct initialization (spec.md §4.3 level 14).
func (p *Parser) parseIdentPrimary() ast.Expr {
	pos := p.cur.Pos
	tok := p.advance()
	name := tok.Lexeme(p.src)

	if p.match(token.COLONCOLON) {
		variantTok, _ := p.expect(token.IDENT, "enum variant name")
		n := ast.NewEnumAccessExpr(p.a, pos)
		n.Enum = name
		n.Variant = variantTok.Lexeme(p.src)
		return n
	}

	if p.check(token.LBRACE) {
		return p.parseStructLit(pos, name)
	}

	n := ast.NewIdent(p.a, pos)
	n.Name = name
	return n
}

func (p *Parser) parseStructLit(pos token.Pos, name string) *ast.StructLit {
	n := ast.NewStructLit(p.a, pos)
	n.Name = name
	p.advance() // '{'
	p.skipNewlines()
	for !p.check(token.RBRACE) && !p.check(token.EOF) {
		fieldTok, _ := p.expect(token.IDENT, "field name")
		p.expect(token.EQ, "'='")
		value := p.parseExpr()
		n.Fields = append(n.Fields, ast.FieldInit{Name: fieldTok.Lexeme(p.src), Value: value})
		p.skipNewlines()
		if !p.match(token.COMMA) {
			break
		}
		p.skipNewlines()
	}
	p.skipNewlines()
	p.expect(token.RBRACE, "'}'")
	return n
}

func (p *Parser) parseArrayLit() *ast.ArrayLit {
	pos := p.cur.Pos
	p.advance() // '['
	n := ast.NewArrayLit(p.a, pos)
	p.skipNewlines()
	if !p.check(token.RBRACKET) {
		n.Elems = append(n.Elems, p.parseExpr())
		p.skipNewlines()
		for p.match(token.COMMA) {
			p.skipNewlines()
			n.Elems = append(n.Elems, p.parseExpr())
			p.skipNewlines()
		}
	}
	p.expect(token.RBRACKET, "']'")
	return n
}
