// Package analysis implements the two-pass semantic analyzer (spec.md
// §4.4): pass 1 hoists top-level declarations into the global scope,
// pass 2 walks function bodies with a lexical scope stack, inferring and
// checking types and enforcing mutability. Grounded on
// internal/transpiler/analysis/analyzer.go for the two-pass
// hoist-then-walk shape and on original_source/src/analyzer.c for the
// exact inference and type-checking rules; the teacher's
// typesys.go/unify.go Hindley-Milner unification is intentionally not
// ported (see DESIGN.md) since spec.md's inference is local bidirectional
// propagation only.
package analysis

import (
	"fmt"

	"github.com/konacodes/null/internal/ast"
)

// Analyzer runs the two-pass walk over a Program, mutating its
// VarDecl.ResolvedType and Expr.SetType in place (spec.md §4.4's
// "Output: the AST is mutated in place").
type Analyzer struct {
	Reporter *ErrorReporterImpl

	global *Scope
	scopes []*Scope // open scopes, innermost last: pushScope appends, popScope removes

	structs map[string]*ast.StructDecl
	enums   map[string]*ast.EnumDecl

	loopDepth int
	hadError  bool
}

// New constructs an Analyzer with a fresh global scope.
func New() *Analyzer {
	global := NewScope(nil)
	return &Analyzer{
		Reporter: NewErrorReporter(),
		global:   global,
		scopes:   []*Scope{global},
		structs:  make(map[string]*ast.StructDecl),
		enums:    make(map[string]*ast.EnumDecl),
	}
}

// HadError reports whether any error was reported during Analyze.
func (a *Analyzer) HadError() bool { return a.hadError }

func (a *Analyzer) pushScope() *Scope {
	s := NewScope(a.currentScope())
	a.scopes = append(a.scopes, s)
	return s
}

func (a *Analyzer) currentScope() *Scope {
	return a.scopes[len(a.scopes)-1]
}

func (a *Analyzer) popScope() {
	a.scopes = a.scopes[:len(a.scopes)-1]
}

// report records a semantic error at pos and flips the sticky had_error
// flag (spec.md §7: "each stage sets a sticky had_error flag").
func (a *Analyzer) report(pos ast.Node, format string, args ...any) {
	a.hadError = true
	p := pos.Pos()
	a.Reporter.ReportTypedError(p.Line, p.Column, fmt.Sprintf(format, args...), SemanticError)
}

func (a *Analyzer) typeErr(pos ast.Node, format string, args ...any) {
	a.hadError = true
	p := pos.Pos()
	a.Reporter.ReportTypedError(p.Line, p.Column, fmt.Sprintf(format, args...), TypeError)
}

// Analyze runs both passes over prog. The analyzer reports at most one
// error per visited construct (spec.md §4.4: "first-error mode") but
// still visits the whole tree, per spec.md's explicit contract that a
// later pass could switch to accumulate-all without changing it.
func (a *Analyzer) Analyze(prog *ast.Program) error {
	a.hoist(prog)
	for _, d := range prog.Decls {
		a.analyzeDecl(d)
	}
	if a.hadError {
		return fmt.Errorf("analysis failed with %d error(s)", a.Reporter.GetErrorCount())
	}
	return nil
}

// hoist implements pass 1: install every fn/struct/enum (including fns
// inside @extern blocks) into the global scope before any body is
// walked, so forward references resolve (spec.md §4.4 pass 1).
func (a *Analyzer) hoist(prog *ast.Program) {
	for _, d := range prog.Decls {
		switch n := d.(type) {
		case *ast.FnDecl:
			a.hoistFn(n)
		case *ast.StructDecl:
			a.hoistStruct(n)
		case *ast.EnumDecl:
			a.hoistEnum(n)
		case *ast.ExternBlock:
			for _, fn := range n.Fns {
				a.hoistFn(fn)
			}
		}
	}
}

func (a *Analyzer) hoistFn(n *ast.FnDecl) {
	params := make([]*ast.Type, len(n.Params))
	for i, p := range n.Params {
		params[i] = p.Type
	}
	ret := n.RetType
	if ret == nil {
		ret = ast.Void
	}
	fnType := &ast.Type{Kind: ast.KindFn, Pos: n.Pos(), Params: params, Ret: ret}
	if !a.global.Define(&Symbol{Name: n.Name, Kind: SymFn, Type: fnType}) {
		a.report(n, "'%s' is already declared at top level", n.Name)
	}
}

func (a *Analyzer) hoistStruct(n *ast.StructDecl) {
	if _, exists := a.structs[n.Name]; exists {
		a.report(n, "'%s' is already declared at top level", n.Name)
		return
	}
	a.structs[n.Name] = n
	t := &ast.Type{Kind: ast.KindStruct, Pos: n.Pos(), Name: n.Name, Fields: n.Fields}
	if !a.global.Define(&Symbol{Name: n.Name, Kind: SymStruct, Type: t}) {
		a.report(n, "'%s' is already declared at top level", n.Name)
	}
}

func (a *Analyzer) hoistEnum(n *ast.EnumDecl) {
	if _, exists := a.enums[n.Name]; exists {
		a.report(n, "'%s' is already declared at top level", n.Name)
		return
	}
	a.enums[n.Name] = n
	t := &ast.Type{Kind: ast.KindEnum, Pos: n.Pos(), Name: n.Name, Variants: n.Variants}
	if !a.global.Define(&Symbol{Name: n.Name, Kind: SymEnum, Type: t}) {
		a.report(n, "'%s' is already declared at top level", n.Name)
	}
}

func (a *Analyzer) analyzeDecl(d ast.Decl) {
	switch n := d.(type) {
	case *ast.FnDecl:
		a.analyzeFnBody(n)
	case *ast.ExternBlock:
		for _, fn := range n.Fns {
			a.analyzeFnBody(fn)
		}
	case *ast.VarDecl:
		a.analyzeVarDecl(n)
	case *ast.StructDecl, *ast.EnumDecl, *ast.UseDecl:
		// fully handled in pass 1 / the preprocessor; nothing more to walk.
	}
}

func (a *Analyzer) analyzeFnBody(n *ast.FnDecl) {
	if n.Body == nil {
		return // @extern declaration: no body to walk.
	}
	fnScope := a.pushScope()
	defer a.popScope()
	for _, p := range n.Params {
		fnScope.Define(&Symbol{Name: p.Name, Kind: SymParam, Type: p.Type, Mutable: false})
	}
	a.analyzeBlock(n.Body)
}

func (a *Analyzer) analyzeBlock(b *ast.Block) {
	a.pushScope()
	defer a.popScope()
	for _, s := range b.Stmts {
		a.analyzeStmt(s)
	}
}

func (a *Analyzer) analyzeStmt(s ast.Stmt) {
	switch n := s.(type) {
	case *ast.VarDecl:
		a.analyzeVarDecl(n)
	case *ast.IfStmt:
		a.checkBool(a.typeOf(n.Cond), n.Cond)
		a.analyzeBlock(n.Then)
		for _, e := range n.Elifs {
			a.checkBool(a.typeOf(e.Cond), e.Cond)
			a.analyzeBlock(e.Body)
		}
		if n.Else != nil {
			a.analyzeBlock(n.Else)
		}
	case *ast.WhileStmt:
		a.checkBool(a.typeOf(n.Cond), n.Cond)
		a.loopDepth++
		a.analyzeBlock(n.Body)
		a.loopDepth--
	case *ast.ForStmt:
		a.typeOf(n.From)
		a.typeOf(n.To)
		loopScope := a.pushScope()
		loopScope.Define(&Symbol{Name: n.Var, Kind: SymVar, Type: ast.I64, Mutable: true})
		a.loopDepth++
		for _, st := range n.Body.Stmts {
			a.analyzeStmt(st)
		}
		a.loopDepth--
		a.popScope()
	case *ast.RetStmt:
		if n.Value != nil {
			a.typeOf(n.Value)
		}
	case *ast.BreakStmt:
		if a.loopDepth == 0 {
			a.report(n, "'break' used outside a loop")
		}
	case *ast.ContinueStmt:
		if a.loopDepth == 0 {
			a.report(n, "'continue' used outside a loop")
		}
	case *ast.ExprStmt:
		a.typeOf(n.X)
	}
}

func (a *Analyzer) checkBool(t *ast.Type, at ast.Node) {
	if t != nil && t.Kind != ast.KindBool && t.Kind != ast.KindUnknown {
		a.typeErr(at, "condition is not bool")
	}
}

// analyzeVarDecl implements spec.md §4.4's inference table: an explicit
// annotation wins outright; without one, the initializer's inferred type
// is used; an unresolved initializer reports "cannot infer type for
// variable".
func (a *Analyzer) analyzeVarDecl(n *ast.VarDecl) {
	inferred := a.typeOf(n.Init)
	switch {
	case n.Annotation != nil:
		n.ResolvedType = n.Annotation
	case inferred != nil && inferred.Kind != ast.KindUnknown:
		n.ResolvedType = inferred
	default:
		a.report(n, "cannot infer type for variable '%s'", n.Name)
		n.ResolvedType = ast.Unknown
	}
	a.currentScope().Define(&Symbol{
		Name:    n.Name,
		Kind:    SymVar,
		Type:    n.ResolvedType,
		Mutable: n.Bind == ast.BindMut,
	})
}

// typeOf computes and caches the type of e on the node itself
// (e.SetType), implementing spec.md §4.4's inference rules.
func (a *Analyzer) typeOf(e ast.Expr) *ast.Type {
	if e == nil {
		return ast.Void
	}
	t := a.inferExpr(e)
	e.SetType(t)
	return t
}

func (a *Analyzer) inferExpr(e ast.Expr) *ast.Type {
	switch n := e.(type) {
	case *ast.IntLit:
		return ast.I64
	case *ast.FloatLit:
		return ast.F64
	case *ast.StringLit:
		return &ast.Type{Kind: ast.KindSlice, Elem: ast.U8}
	case *ast.BoolLit:
		return ast.Bool
	case *ast.Ident:
		if sym, ok := a.currentScope().Resolve(n.Name); ok {
			return sym.Type
		}
		// Unresolved identifier in expression (non-call) context is not
		// an immediate error (spec.md §4.4: may be a deferred
		// module-qualified name the backend resolves).
		return ast.Unknown
	case *ast.UnaryExpr:
		return a.inferUnary(n)
	case *ast.BinaryExpr:
		return a.inferBinary(n)
	case *ast.AssignExpr:
		return a.inferAssign(n)
	case *ast.CallExpr:
		return a.inferCall(n)
	case *ast.MemberExpr:
		return a.inferMember(n)
	case *ast.IndexExpr:
		xt := a.typeOf(n.X)
		a.typeOf(n.Index)
		if xt != nil && (xt.Kind == ast.KindArray || xt.Kind == ast.KindSlice) {
			return xt.Elem
		}
		return ast.Unknown
	case *ast.ArrayLit:
		var elem *ast.Type
		for _, el := range n.Elems {
			t := a.typeOf(el)
			if elem == nil {
				elem = t
			}
		}
		if elem == nil {
			elem = ast.Unknown
		}
		return &ast.Type{Kind: ast.KindArray, Elem: elem, ArrayLen: int64(len(n.Elems))}
	case *ast.StructLit:
		for _, f := range n.Fields {
			a.typeOf(f.Value)
		}
		if _, ok := a.structs[n.Name]; !ok {
			a.report(n, "unknown struct '%s'", n.Name)
			return ast.Unknown
		}
		return &ast.Type{Kind: ast.KindStruct, Name: n.Name}
	case *ast.EnumAccessExpr:
		if ed, ok := a.enums[n.Enum]; ok {
			return &ast.Type{Kind: ast.KindEnum, Name: ed.Name}
		}
		a.report(n, "unknown struct '%s'", n.Enum)
		return ast.Unknown
	default:
		return ast.Unknown
	}
}

func (a *Analyzer) inferUnary(n *ast.UnaryExpr) *ast.Type {
	xt := a.typeOf(n.X)
	switch n.Op {
	case ast.OpNot:
		if xt.Kind != ast.KindBool && xt.Kind != ast.KindUnknown {
			a.typeErr(n, "unsupported operand kinds for 'not'")
		}
		return ast.Bool
	case ast.OpAddr:
		return &ast.Type{Kind: ast.KindPtr, Elem: xt}
	case ast.OpDeref:
		if xt != nil && xt.Kind == ast.KindPtr {
			return xt.Elem
		}
		return ast.Unknown
	default: // OpNeg, OpBitNot
		return xt
	}
}

// inferBinary implements spec.md §4.4's binary-operator type checking
// and the left-operand-type inference rule spec.md §9 flags as
// deliberately kept as-is.
func (a *Analyzer) inferBinary(n *ast.BinaryExpr) *ast.Type {
	lt := a.typeOf(n.Left)
	rt := a.typeOf(n.Right)

	switch n.Op {
	case ast.OpAdd, ast.OpSub, ast.OpMul, ast.OpDiv:
		if !bothNumeric(lt, rt) {
			a.typeErr(n, "unsupported operand kinds for binary operation")
		}
	case ast.OpMod:
		if !bothIntegral(lt, rt) {
			a.typeErr(n, "unsupported operand kinds for binary operation")
		}
	case ast.OpEq, ast.OpNe:
		if !(lt.Equal(rt) || bothNumeric(lt, rt)) {
			a.typeErr(n, "incompatible types for binary operation")
		}
		return ast.Bool
	case ast.OpLt, ast.OpLe, ast.OpGt, ast.OpGe:
		if !bothNumeric(lt, rt) {
			a.typeErr(n, "incompatible types for binary operation")
		}
		return ast.Bool
	case ast.OpAnd, ast.OpOr:
		if lt.Kind != ast.KindBool || rt.Kind != ast.KindBool {
			a.typeErr(n, "unsupported operand kinds for binary operation")
		}
		return ast.Bool
	case ast.OpBitOr, ast.OpBitXor, ast.OpBitAnd, ast.OpShl, ast.OpShr:
		if !bothIntegral(lt, rt) {
			a.typeErr(n, "unsupported operand kinds for binary operation")
		}
	}
	// spec.md §9: binary operators infer as the left operand's type
	// unconditionally — intentionally kept even though it disagrees with
	// proper int/float promotion.
	return lt
}

func bothNumeric(a, b *ast.Type) bool {
	return a != nil && b != nil && (a.Kind == ast.KindUnknown || a.IsNumeric()) && (b.Kind == ast.KindUnknown || b.IsNumeric())
}

func bothIntegral(a, b *ast.Type) bool {
	return a != nil && b != nil && (a.Kind == ast.KindUnknown || a.IsInteger()) && (b.Kind == ast.KindUnknown || b.IsInteger())
}

// inferAssign implements spec.md §4.4's mutability rule: assigning to a
// plain identifier checks is_mut; assigning to obj.field or arr[i] is
// allowed regardless of root mutability (spec.md §9 open question,
// preserved intentionally).
func (a *Analyzer) inferAssign(n *ast.AssignExpr) *ast.Type {
	vt := a.typeOf(n.Value)
	switch target := n.Target.(type) {
	case *ast.Ident:
		if sym, ok := a.currentScope().Resolve(target.Name); ok {
			if sym.Kind == SymVar && !sym.Mutable {
				a.report(n, "cannot assign to immutable binding '%s'", target.Name)
			}
		} else {
			a.report(n, "unknown identifier '%s'", target.Name)
		}
	case *ast.MemberExpr, *ast.IndexExpr:
		a.typeOf(target)
	}
	return vt
}

func (a *Analyzer) inferCall(n *ast.CallExpr) *ast.Type {
	for _, arg := range n.Args {
		a.typeOf(arg)
	}
	callee, ok := n.Callee.(*ast.Ident)
	if !ok {
		a.typeOf(n.Callee)
		return ast.Unknown
	}
	if isBuiltin(callee.Name) {
		return builtinReturnType(callee.Name)
	}
	sym, ok := a.currentScope().Resolve(callee.Name)
	if !ok {
		// Unresolved identifier in call position IS an error (spec.md §4.4).
		a.report(n, "unknown function '%s'", callee.Name)
		return ast.Unknown
	}
	if sym.Kind != SymFn || sym.Type == nil || sym.Type.Kind != ast.KindFn {
		a.report(n, "unknown function '%s'", callee.Name)
		return ast.Unknown
	}
	return sym.Type.Ret
}

func (a *Analyzer) inferMember(n *ast.MemberExpr) *ast.Type {
	xt := a.typeOf(n.X)
	if xt == nil || xt.Kind != ast.KindStruct {
		return ast.Unknown
	}
	decl, ok := a.structs[xt.Name]
	if !ok {
		return ast.Unknown
	}
	for _, f := range decl.Fields {
		if f.Name == n.Field {
			return f.Type
		}
	}
	return ast.Unknown
}

// builtins are dispatched by internal/interp without a user-level
// declaration; the analyzer must still know their signatures to type
// calls to them (spec.md §4.5 names the exact set). __builtin_putstr is
// also declared in internal/preprocess's injected header as a regular
// @extern "C" function, for a native backend to link against libc's
// puts; the tree-walking interpreter instead dispatches it here like
// any other builtin, so io_print's wrapper body produces real output
// under `null run`/`interp` too.
var builtinSet = map[string]bool{
	"puts": true, "print": true, "print_int": true, "println": true,
	"putchar": true, "getchar": true, "exit": true, "__builtin_putstr": true,
}

func isBuiltin(name string) bool { return builtinSet[name] }

func builtinReturnType(name string) *ast.Type {
	switch name {
	case "getchar":
		return ast.I64
	default:
		return ast.Void
	}
}
