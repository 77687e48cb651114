package parser

import (
	"github.com/konacodes/null/internal/ast"
	"github.com/konacodes/null/internal/token"
)

// parseDecl dispatches on the leading token of a top-level declaration
// (spec.md §6: Decl := FnDecl | StructDecl | EnumDecl | VarDecl | UseDecl
// | ExternBlock). Returning nil signals a synchronized-past error; the
// caller simply skips it.
func (p *Parser) parseDecl() ast.Decl {
	switch p.cur.Tag {
	case token.FN:
		return p.parseFnDecl("")
	case token.STRUCT:
		return p.parseStructDecl()
	case token.ENUM:
		return p.parseEnumDecl()
	case token.LET, token.MUT, token.CONST:
		return p.parseVarDecl()
	case token.DIR_USE:
		return p.parseUseDecl()
	case token.DIR_EXTERN:
		return p.parseExternBlock()
	default:
		p.errorAt(p.cur.Pos, p.cur.Lexeme(p.src), "expected a declaration")
		p.synchronize()
		return nil
	}
}

// parseFnDecl parses `fn name(p :: T, …) [-> T] [do body end]`. abi is
// "" for an ordinary fn and the enclosing @extern block's ABI string
// when called from parseExternBlock, where the fn has no body.
func (p *Parser) parseFnDecl(abi string) *ast.FnDecl {
	pos := p.cur.Pos
	p.advance() // 'fn'
	n := ast.NewFnDecl(p.a, pos)
	n.ExternABI = abi
	n.IsExtern = abi != ""

	nameTok, _ := p.expect(token.IDENT, "function name")
	n.Name = nameTok.Lexeme(p.src)

	p.expect(token.LPAREN, "'('")
	if !p.check(token.RPAREN) {
		n.Params = append(n.Params, p.parseParam())
		for p.match(token.COMMA) {
			n.Params = append(n.Params, p.parseParam())
		}
	}
	p.expect(token.RPAREN, "')'")

	if p.match(token.ARROW) {
		n.RetType = p.parseType()
	} else {
		n.RetType = ast.Void
	}

	if n.IsExtern {
		return n
	}

	p.expect(token.DO, "'do'")
	n.Body = p.parseBlock()
	return n
}

func (p *Parser) parseParam() ast.Param {
	pos := p.cur.Pos
	nameTok, _ := p.expect(token.IDENT, "parameter name")
	p.expect(token.COLONCOLON, "'::'")
	return ast.Param{Name: nameTok.Lexeme(p.src), Type: p.parseType(), Pos: pos}
}

func (p *Parser) parseStructDecl() *ast.StructDecl {
	pos := p.cur.Pos
	p.advance() // 'struct'
	n := ast.NewStructDecl(p.a, pos)
	nameTok, _ := p.expect(token.IDENT, "struct name")
	n.Name = nameTok.Lexeme(p.src)
	p.expect(token.DO, "'do'")
	p.skipNewlines()
	for !p.check(token.END) && !p.check(token.EOF) {
		fieldTok, ok := p.expect(token.IDENT, "field name")
		if !ok {
			p.synchronize()
			continue
		}
		p.expect(token.COLONCOLON, "'::'")
		fieldType := p.parseType()
		n.Fields = append(n.Fields, ast.Field{Name: fieldTok.Lexeme(p.src), Type: fieldType})
		p.skipNewlines()
	}
	p.expect(token.END, "'end'")
	return n
}

func (p *Parser) parseEnumDecl() *ast.EnumDecl {
	pos := p.cur.Pos
	p.advance() // 'enum'
	n := ast.NewEnumDecl(p.a, pos)
	nameTok, _ := p.expect(token.IDENT, "enum name")
	n.Name = nameTok.Lexeme(p.src)
	p.expect(token.DO, "'do'")
	p.skipNewlines()
	next := int64(0)
	for !p.check(token.END) && !p.check(token.EOF) {
		variantTok, ok := p.expect(token.IDENT, "variant name")
		if !ok {
			p.synchronize()
			continue
		}
		val := next
		if p.match(token.EQ) {
			intTok, _ := p.expect(token.INT, "integer value")
			val = intTok.IntValue
		}
		n.Variants = append(n.Variants, ast.Variant{Name: variantTok.Lexeme(p.src), Value: val})
		next = val + 1
		p.skipNewlines()
	}
	p.expect(token.END, "'end'")
	return n
}

// parseVarDecl parses `('let'|'mut'|'const') IDENT ['::' T] '=' Expr`,
// usable both as a top-level Decl and as a local Stmt (spec.md §6).
func (p *Parser) parseVarDecl() *ast.VarDecl {
	pos := p.cur.Pos
	var bind ast.BindKind
	switch p.cur.Tag {
	case token.MUT:
		bind = ast.BindMut
	case token.CONST:
		bind = ast.BindConst
	default:
		bind = ast.BindLet
	}
	p.advance()

	n := ast.NewVarDecl(p.a, pos)
	n.Bind = bind
	nameTok, _ := p.expect(token.IDENT, "variable name")
	n.Name = nameTok.Lexeme(p.src)

	if p.match(token.COLONCOLON) {
		n.Annotation = p.parseType()
	}
	p.expect(token.EQ, "'='")
	n.Init = p.parseExpr()
	return n
}

func (p *Parser) parseUseDecl() *ast.UseDecl {
	pos := p.cur.Pos
	p.advance() // '@use'
	n := ast.NewUseDecl(p.a, pos)
	pathTok, _ := p.expect(token.STRING, "import path string")
	n.Path = stringLitValue(pathTok, p.src)
	if p.match(token.AS) {
		aliasTok, _ := p.expect(token.IDENT, "alias name")
		n.Alias = aliasTok.Lexeme(p.src)
	}
	return n
}

func (p *Parser) parseExternBlock() *ast.ExternBlock {
	pos := p.cur.Pos
	p.advance() // '@extern'
	n := ast.NewExternBlock(p.a, pos)
	abiTok, _ := p.expect(token.STRING, "ABI string")
	n.ABI = stringLitValue(abiTok, p.src)
	p.expect(token.DO, "'do'")
	p.skipNewlines()
	for !p.check(token.END) && !p.check(token.EOF) {
		if !p.check(token.FN) {
			p.errorAt(p.cur.Pos, p.cur.Lexeme(p.src), "expected 'fn' inside @extern block")
			p.synchronize()
			continue
		}
		n.Fns = append(n.Fns, p.parseFnDecl(n.ABI))
		p.skipNewlines()
	}
	p.expect(token.END, "'end'")
	return n
}

// parseType parses spec.md §6's Type production:
// Type := 'void'|'bool'|'i8'..'f64' | 'ptr' '<' Type '>'
//
//	| '[' Type [';' INT] ']' | IDENT
//
// An IDENT names a struct or enum declared elsewhere in the program;
// the parser has no forward-looking symbol table, so it provisionally
// tags named types KindStruct — internal/analysis never cross-checks an
// explicit annotation against the initializer (spec.md §4.4: "an
// explicit annotation wins outright"), so this does not affect the var's
// resolved type, only the rarer case of comparing two named-type
// annotations directly against each other.
func (p *Parser) parseType() *ast.Type {
	pos := p.cur.Pos
	switch p.cur.Tag {
	case token.VOID:
		p.advance()
		return ast.Void
	case token.BOOL:
		p.advance()
		return ast.Bool
	case token.I8:
		p.advance()
		return ast.I8
	case token.I16:
		p.advance()
		return ast.I16
	case token.I32:
		p.advance()
		return ast.I32
	case token.I64:
		p.advance()
		return ast.I64
	case token.U8:
		p.advance()
		return ast.U8
	case token.U16:
		p.advance()
		return ast.U16
	case token.U32:
		p.advance()
		return ast.U32
	case token.U64:
		p.advance()
		return ast.U64
	case token.F32:
		p.advance()
		return ast.F32
	case token.F64:
		p.advance()
		return ast.F64
	case token.PTR:
		p.advance()
		p.expect(token.LT, "'<'")
		elem := p.parseType()
		p.expect(token.GT, "'>'")
		return &ast.Type{Kind: ast.KindPtr, Pos: pos, Elem: elem}
	case token.LBRACKET:
		p.advance()
		elem := p.parseType()
		if p.match(token.SEMICOLON) {
			lenTok, _ := p.expect(token.INT, "array length")
			p.expect(token.RBRACKET, "']'")
			return &ast.Type{Kind: ast.KindArray, Pos: pos, Elem: elem, ArrayLen: lenTok.IntValue}
		}
		p.expect(token.RBRACKET, "']'")
		return &ast.Type{Kind: ast.KindSlice, Pos: pos, Elem: elem}
	case token.IDENT:
		nameTok := p.advance()
		return &ast.Type{Kind: ast.KindStruct, Pos: pos, Name: nameTok.Lexeme(p.src)}
	default:
		p.errorAt(pos, p.cur.Lexeme(p.src), "expected a type")
		return ast.Unknown
	}
}

func (p *Parser) parseBlock() *ast.Block {
	pos := p.cur.Pos
	n := ast.NewBlock(p.a, pos)
	p.skipNewlines()
	for !p.check(token.END) && !p.check(token.EOF) {
		if s := p.parseStmt(); s != nil {
			n.Stmts = append(n.Stmts, s)
		}
		p.skipNewlines()
	}
	p.expect(token.END, "'end'")
	return n
}
