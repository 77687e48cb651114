package ast

import (
	"fmt"
	"strings"
)

// Print renders p as an indented s-expression-ish tree, used by the
// cmd/null --dump-ast debug flag (SPEC_FULL.md §2) and by tests that want
// a human-readable snapshot instead of a full go-cmp structural diff.
func Print(p *Program) string {
	var b strings.Builder
	for _, d := range p.Decls {
		printDecl(&b, d, 0)
	}
	return b.String()
}

func indent(b *strings.Builder, depth int) {
	b.WriteString(strings.Repeat("  ", depth))
}

func printDecl(b *strings.Builder, d Decl, depth int) {
	switch n := d.(type) {
	case *FnDecl:
		indent(b, depth)
		fmt.Fprintf(b, "fn %s(", n.Name)
		for i, p := range n.Params {
			if i > 0 {
				b.WriteString(", ")
			}
			fmt.Fprintf(b, "%s: %s", p.Name, p.Type)
		}
		fmt.Fprintf(b, ") -> %s\n", n.RetType)
		if n.Body != nil {
			printBlock(b, n.Body, depth+1)
		}
	case *StructDecl:
		indent(b, depth)
		fmt.Fprintf(b, "struct %s\n", n.Name)
		for _, f := range n.Fields {
			indent(b, depth+1)
			fmt.Fprintf(b, "%s: %s\n", f.Name, f.Type)
		}
	case *EnumDecl:
		indent(b, depth)
		fmt.Fprintf(b, "enum %s\n", n.Name)
		for _, v := range n.Variants {
			indent(b, depth+1)
			fmt.Fprintf(b, "%s = %d\n", v.Name, v.Value)
		}
	case *VarDecl:
		printVarDecl(b, n, depth)
	case *UseDecl:
		indent(b, depth)
		if n.Alias != "" {
			fmt.Fprintf(b, "use %q as %s\n", n.Path, n.Alias)
		} else {
			fmt.Fprintf(b, "use %q\n", n.Path)
		}
	case *ExternBlock:
		indent(b, depth)
		fmt.Fprintf(b, "extern %q\n", n.ABI)
		for _, fn := range n.Fns {
			printDecl(b, fn, depth+1)
		}
	default:
		indent(b, depth)
		fmt.Fprintf(b, "<unknown decl %T>\n", d)
	}
}

func bindKindName(k BindKind) string {
	switch k {
	case BindLet:
		return "let"
	case BindMut:
		return "mut"
	case BindConst:
		return "const"
	default:
		return "?"
	}
}

func printVarDecl(b *strings.Builder, n *VarDecl, depth int) {
	indent(b, depth)
	fmt.Fprintf(b, "%s %s", bindKindName(n.Bind), n.Name)
	if n.Annotation != nil {
		fmt.Fprintf(b, " :: %s", n.Annotation)
	}
	b.WriteString(" = ")
	printExprInline(b, n.Init)
	b.WriteString("\n")
}

func printBlock(b *strings.Builder, blk *Block, depth int) {
	for _, s := range blk.Stmts {
		printStmt(b, s, depth)
	}
}

func printStmt(b *strings.Builder, s Stmt, depth int) {
	switch n := s.(type) {
	case *VarDecl:
		printVarDecl(b, n, depth)
	case *IfStmt:
		indent(b, depth)
		b.WriteString("if ")
		printExprInline(b, n.Cond)
		b.WriteString("\n")
		printBlock(b, n.Then, depth+1)
		for _, e := range n.Elifs {
			indent(b, depth)
			b.WriteString("elif ")
			printExprInline(b, e.Cond)
			b.WriteString("\n")
			printBlock(b, e.Body, depth+1)
		}
		if n.Else != nil {
			indent(b, depth)
			b.WriteString("else\n")
			printBlock(b, n.Else, depth+1)
		}
	case *WhileStmt:
		indent(b, depth)
		b.WriteString("while ")
		printExprInline(b, n.Cond)
		b.WriteString("\n")
		printBlock(b, n.Body, depth+1)
	case *ForStmt:
		indent(b, depth)
		fmt.Fprintf(b, "for %s in ", n.Var)
		printExprInline(b, n.From)
		b.WriteString("..")
		printExprInline(b, n.To)
		b.WriteString("\n")
		printBlock(b, n.Body, depth+1)
	case *RetStmt:
		indent(b, depth)
		b.WriteString("ret")
		if n.Value != nil {
			b.WriteString(" ")
			printExprInline(b, n.Value)
		}
		b.WriteString("\n")
	case *BreakStmt:
		indent(b, depth)
		b.WriteString("break\n")
	case *ContinueStmt:
		indent(b, depth)
		b.WriteString("continue\n")
	case *ExprStmt:
		indent(b, depth)
		printExprInline(b, n.X)
		b.WriteString("\n")
	default:
		indent(b, depth)
		fmt.Fprintf(b, "<unknown stmt %T>\n", s)
	}
}

func printExprInline(b *strings.Builder, e Expr) {
	b.WriteString(exprString(e))
}

func exprString(e Expr) string {
	switch n := e.(type) {
	case nil:
		return "<nil>"
	case *Ident:
		return n.Name
	case *IntLit:
		return fmt.Sprintf("%d", n.Value)
	case *FloatLit:
		return fmt.Sprintf("%g", n.Value)
	case *StringLit:
		return fmt.Sprintf("%q", n.Value)
	case *BoolLit:
		return fmt.Sprintf("%t", n.Value)
	case *UnaryExpr:
		return fmt.Sprintf("(%s%s)", unOpString(n.Op), exprString(n.X))
	case *BinaryExpr:
		return fmt.Sprintf("(%s %s %s)", exprString(n.Left), binOpString(n.Op), exprString(n.Right))
	case *AssignExpr:
		return fmt.Sprintf("(%s = %s)", exprString(n.Target), exprString(n.Value))
	case *CallExpr:
		args := make([]string, len(n.Args))
		for i, a := range n.Args {
			args[i] = exprString(a)
		}
		return fmt.Sprintf("%s(%s)", exprString(n.Callee), strings.Join(args, ", "))
	case *MemberExpr:
		return fmt.Sprintf("%s.%s", exprString(n.X), n.Field)
	case *IndexExpr:
		return fmt.Sprintf("%s[%s]", exprString(n.X), exprString(n.Index))
	case *ArrayLit:
		parts := make([]string, len(n.Elems))
		for i, el := range n.Elems {
			parts[i] = exprString(el)
		}
		return fmt.Sprintf("[%s]", strings.Join(parts, ", "))
	case *StructLit:
		parts := make([]string, len(n.Fields))
		for i, f := range n.Fields {
			parts[i] = fmt.Sprintf("%s = %s", f.Name, exprString(f.Value))
		}
		return fmt.Sprintf("%s { %s }", n.Name, strings.Join(parts, ", "))
	case *EnumAccessExpr:
		return fmt.Sprintf("%s::%s", n.Enum, n.Variant)
	default:
		return fmt.Sprintf("<unknown expr %T>", e)
	}
}

var unOpNames = map[UnOp]string{
	OpNeg: "-", OpNot: "not ", OpBitNot: "~", OpAddr: "&", OpDeref: "*",
}

func unOpString(op UnOp) string { return unOpNames[op] }

var binOpNames = map[BinOp]string{
	OpOr: "or", OpAnd: "and", OpEq: "==", OpNe: "!=",
	OpLt: "<", OpLe: "<=", OpGt: ">", OpGe: ">=",
	OpBitOr: "|", OpBitXor: "^", OpBitAnd: "&",
	OpShl: "<<", OpShr: ">>",
	OpAdd: "+", OpSub: "-", OpMul: "*", OpDiv: "/", OpMod: "%",
}

func binOpString(op BinOp) string { return binOpNames[op] }
