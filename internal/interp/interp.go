// Package interp implements the tree-walking interpreter (spec.md §4.5,
// §4.6), grounded on original_source/src/interp.c for the value domain,
// scope stack, call-frame shape, and ret/break/continue propagation
// flags, and on the teacher's Scope/symbol-table pattern
// (internal/transpiler/analysis/symbols.go) for the Go-idiomatic
// reimplementation — maps instead of manual parallel arrays with
// realloc.
package interp

import (
	"bufio"
	"fmt"
	"io"

	"github.com/konacodes/null/internal/analysis"
	"github.com/konacodes/null/internal/ast"
)

// replEntry is the fallback entry point the REPL driver installs when a
// source unit has no `main` (spec.md §4.5: "main if present, otherwise
// __repl_main__").
const replEntry = "__repl_main__"

// controlFlow tracks which of ret/break/continue is currently unwinding
// the statement stack (spec.md §4.5's has_return/has_break/has_continue
// flags, collapsed into one field since at most one is ever active).
type controlFlow int

const (
	flowNone controlFlow = iota
	flowReturn
	flowBreak
	flowContinue
)

// exitSignal unwinds callFn/Run when the `exit` builtin runs, the one
// place control needs to escape arbitrarily deep call frames rather than
// propagate through the ordinary controlFlow flags.
type exitSignal struct{ code int }

// Interp walks an analyzed *ast.Program and executes it. It shares an
// ErrorReporter with the rest of the pipeline (spec.md §9's open-question
// decision: div/mod-by-zero and other runtime diagnostics go through the
// same ReportWarning/ReportTypedError path analysis uses, not a second
// error channel).
type Interp struct {
	Reporter *analysis.ErrorReporterImpl

	global  *scope
	current *scope

	fns     map[string]*ast.FnDecl
	structs map[string]*ast.StructDecl
	enums   map[string]*ast.EnumDecl

	out *bufio.Writer
	in  *bufio.Reader

	returnValue Value
	flow        controlFlow
	loopDepth   int

	hadError bool
}

// New constructs an Interp over the given host I/O streams, sharing
// reporter with whatever already ran the preprocess/lex/parse/analyze
// stages.
func New(reporter *analysis.ErrorReporterImpl, stdout io.Writer, stdin io.Reader) *Interp {
	g := newScope(nil)
	return &Interp{
		Reporter: reporter,
		global:   g,
		current:  g,
		fns:      make(map[string]*ast.FnDecl),
		structs:  make(map[string]*ast.StructDecl),
		enums:    make(map[string]*ast.EnumDecl),
		out:      bufio.NewWriter(stdout),
		in:       bufio.NewReader(stdin),
	}
}

func (it *Interp) load(prog *ast.Program) {
	for _, d := range prog.Decls {
		switch n := d.(type) {
		case *ast.FnDecl:
			it.fns[n.Name] = n
		case *ast.ExternBlock:
			for _, fn := range n.Fns {
				it.fns[fn.Name] = fn
			}
		case *ast.StructDecl:
			it.structs[n.Name] = n
		case *ast.EnumDecl:
			it.enums[n.Name] = n
		}
	}
}

// Run loads prog's declarations and executes the entry point, returning
// the process exit code (spec.md §4.5: the integer return value of
// main/__repl_main__, 0 if it returns void, 1 if any runtime error was
// reported, or whatever `exit(code)` requested).
func (it *Interp) Run(prog *ast.Program) (code int) {
	it.load(prog)
	defer func() {
		it.out.Flush()
		if r := recover(); r != nil {
			sig, ok := r.(exitSignal)
			if !ok {
				panic(r)
			}
			code = sig.code
		}
	}()

	entry, ok := it.fns["main"]
	if !ok {
		entry, ok = it.fns[replEntry]
	}
	if !ok {
		it.runtimeErr(0, 0, "no entry point: neither 'main' nor '%s' is defined", replEntry)
		return 1
	}

	ret := it.callFn(entry, nil)
	if it.hadError {
		return 1
	}
	if ret.Kind == VInt {
		return int(ret.I)
	}
	return 0
}

// callFn binds args into a fresh scope parented at global (spec.md
// §4.5: "function calls never close over the caller's locals") and
// executes the body directly in that scope, the same single-scope
// discipline ForStmt uses for its loop variable.
func (it *Interp) callFn(fn *ast.FnDecl, args []Value) Value {
	if fn.Body == nil {
		return VoidValue()
	}

	fnScope := newScope(it.global)
	for i, p := range fn.Params {
		var v Value
		if i < len(args) {
			v = args[i]
		} else {
			v = VoidValue()
		}
		fnScope.define(p.Name, v)
	}

	prev := it.current
	it.current = fnScope
	it.execStmts(fn.Body.Stmts)
	it.current = prev

	if it.flow == flowReturn {
		it.flow = flowNone
		rv := it.returnValue
		it.returnValue = VoidValue()
		return rv
	}
	return VoidValue()
}

// execStmts runs stmts in order, stopping early the moment a
// return/break/continue flag is set so it can unwind to the construct
// that handles it (loop, function body, or block).
func (it *Interp) execStmts(stmts []ast.Stmt) {
	for _, s := range stmts {
		it.execStmt(s)
		if it.flow != flowNone {
			return
		}
	}
}

func (it *Interp) execBlock(b *ast.Block) {
	prev := it.current
	it.current = newScope(prev)
	it.execStmts(b.Stmts)
	it.current = prev
}

func (it *Interp) execStmt(s ast.Stmt) {
	switch n := s.(type) {
	case *ast.VarDecl:
		it.current.define(n.Name, it.evalExpr(n.Init))

	case *ast.IfStmt:
		if it.evalExpr(n.Cond).IsTruthy() {
			it.execBlock(n.Then)
			return
		}
		for _, e := range n.Elifs {
			if it.evalExpr(e.Cond).IsTruthy() {
				it.execBlock(e.Body)
				return
			}
		}
		if n.Else != nil {
			it.execBlock(n.Else)
		}

	case *ast.WhileStmt:
		it.loopDepth++
		for it.evalExpr(n.Cond).IsTruthy() {
			it.execBlock(n.Body)
			if it.flow == flowBreak {
				it.flow = flowNone
				break
			}
			if it.flow == flowContinue {
				it.flow = flowNone
				continue
			}
			if it.flow == flowReturn {
				break
			}
		}
		it.loopDepth--

	case *ast.ForStmt:
		it.execFor(n)

	case *ast.RetStmt:
		if n.Value != nil {
			it.returnValue = it.evalExpr(n.Value)
		} else {
			it.returnValue = VoidValue()
		}
		it.flow = flowReturn

	case *ast.BreakStmt:
		if it.loopDepth == 0 {
			it.runtimeErrAt(n, "'break' used outside a loop")
			return
		}
		it.flow = flowBreak

	case *ast.ContinueStmt:
		if it.loopDepth == 0 {
			it.runtimeErrAt(n, "'continue' used outside a loop")
			return
		}
		it.flow = flowContinue

	case *ast.ExprStmt:
		it.evalExpr(n.X)
	}
}

// execFor evaluates the range bounds once and binds the loop variable as
// a mutable i64 in one fresh loop scope shared by every iteration's body
// statements (spec.md §4.5: "binds x as a mutable i64 in a fresh loop
// scope"), mirroring internal/analysis's ForStmt handling.
func (it *Interp) execFor(n *ast.ForStmt) {
	from := it.evalExpr(n.From)
	to := it.evalExpr(n.To)

	prev := it.current
	loopScope := newScope(prev)
	it.current = loopScope
	it.loopDepth++

	for i := from.I; i < to.I; i++ {
		loopScope.define(n.Var, IntValue(i))
		it.execStmts(n.Body.Stmts)
		if it.flow == flowBreak {
			it.flow = flowNone
			break
		}
		if it.flow == flowContinue {
			it.flow = flowNone
			continue
		}
		if it.flow == flowReturn {
			break
		}
	}

	it.loopDepth--
	it.current = prev
}

func (it *Interp) evalExpr(e ast.Expr) Value {
	switch n := e.(type) {
	case *ast.IntLit:
		return IntValue(n.Value)
	case *ast.FloatLit:
		return FloatValue(n.Value)
	case *ast.StringLit:
		return StringValue(n.Value)
	case *ast.BoolLit:
		return BoolValue(n.Value)
	case *ast.Ident:
		if v, ok := it.current.lookup(n.Name); ok {
			return v.Clone()
		}
		it.runtimeErrAt(n, "undefined variable '%s'", n.Name)
		return VoidValue()
	case *ast.UnaryExpr:
		return it.evalUnary(n)
	case *ast.BinaryExpr:
		return it.evalBinary(n)
	case *ast.AssignExpr:
		return it.evalAssign(n)
	case *ast.CallExpr:
		return it.evalCall(n)
	case *ast.MemberExpr:
		return it.evalMember(n)
	case *ast.IndexExpr:
		return it.evalIndex(n)
	case *ast.ArrayLit:
		elems := make([]Value, len(n.Elems))
		for i, el := range n.Elems {
			elems[i] = it.evalExpr(el)
		}
		return Value{Kind: VArray, Arr: elems}
	case *ast.StructLit:
		fields := make(map[string]*Value, len(n.Fields))
		for _, f := range n.Fields {
			v := it.evalExpr(f.Value)
			fields[f.Name] = &v
		}
		return StructValue(n.Name, fields)
	case *ast.EnumAccessExpr:
		return it.evalEnumAccess(n)
	default:
		return VoidValue()
	}
}

func (it *Interp) evalEnumAccess(n *ast.EnumAccessExpr) Value {
	ed, ok := it.enums[n.Enum]
	if !ok {
		it.runtimeErrAt(n, "unknown enum '%s'", n.Enum)
		return VoidValue()
	}
	for _, v := range ed.Variants {
		if v.Name == n.Variant {
			return IntValue(v.Value)
		}
	}
	it.runtimeErrAt(n, "unknown enum variant '%s::%s'", n.Enum, n.Variant)
	return VoidValue()
}

func (it *Interp) evalUnary(n *ast.UnaryExpr) Value {
	x := it.evalExpr(n.X)
	switch n.Op {
	case ast.OpNeg:
		if x.Kind == VFloat {
			return FloatValue(-x.F)
		}
		return IntValue(-x.I)
	case ast.OpNot:
		return BoolValue(!x.IsTruthy())
	case ast.OpBitNot:
		return IntValue(^x.I)
	case ast.OpAddr:
		cp := x
		return Value{Kind: VPtr, Ptr: &cp}
	case ast.OpDeref:
		if x.Kind == VPtr && x.Ptr != nil {
			return x.Ptr.Clone()
		}
		it.runtimeErrAt(n, "invalid pointer dereference")
		return VoidValue()
	}
	return VoidValue()
}

func asFloat(v Value) float64 {
	if v.Kind == VFloat {
		return v.F
	}
	return float64(v.I)
}

func valuesEqual(l, r Value) bool {
	if l.Kind != r.Kind {
		if (l.Kind == VInt || l.Kind == VFloat) && (r.Kind == VInt || r.Kind == VFloat) {
			return asFloat(l) == asFloat(r)
		}
		return false
	}
	switch l.Kind {
	case VInt:
		return l.I == r.I
	case VFloat:
		return l.F == r.F
	case VBool:
		return l.Bl == r.Bl
	case VString:
		return l.S == r.S
	default:
		return false
	}
}

func (it *Interp) evalBinary(n *ast.BinaryExpr) Value {
	// and/or short-circuit before the right operand is evaluated at all
	// (spec.md §4.5).
	if n.Op == ast.OpAnd {
		if !it.evalExpr(n.Left).IsTruthy() {
			return BoolValue(false)
		}
		return BoolValue(it.evalExpr(n.Right).IsTruthy())
	}
	if n.Op == ast.OpOr {
		if it.evalExpr(n.Left).IsTruthy() {
			return BoolValue(true)
		}
		return BoolValue(it.evalExpr(n.Right).IsTruthy())
	}

	l := it.evalExpr(n.Left)
	r := it.evalExpr(n.Right)

	switch n.Op {
	case ast.OpEq:
		return BoolValue(valuesEqual(l, r))
	case ast.OpNe:
		return BoolValue(!valuesEqual(l, r))
	case ast.OpLt:
		return BoolValue(asFloat(l) < asFloat(r))
	case ast.OpLe:
		return BoolValue(asFloat(l) <= asFloat(r))
	case ast.OpGt:
		return BoolValue(asFloat(l) > asFloat(r))
	case ast.OpGe:
		return BoolValue(asFloat(l) >= asFloat(r))
	case ast.OpBitOr:
		return IntValue(l.I | r.I)
	case ast.OpBitXor:
		return IntValue(l.I ^ r.I)
	case ast.OpBitAnd:
		return IntValue(l.I & r.I)
	case ast.OpShl:
		return IntValue(l.I << uint64(r.I))
	case ast.OpShr:
		return IntValue(l.I >> uint64(r.I))
	case ast.OpAdd:
		if l.Kind == VFloat || r.Kind == VFloat {
			return FloatValue(asFloat(l) + asFloat(r))
		}
		return IntValue(l.I + r.I)
	case ast.OpSub:
		if l.Kind == VFloat || r.Kind == VFloat {
			return FloatValue(asFloat(l) - asFloat(r))
		}
		return IntValue(l.I - r.I)
	case ast.OpMul:
		if l.Kind == VFloat || r.Kind == VFloat {
			return FloatValue(asFloat(l) * asFloat(r))
		}
		return IntValue(l.I * r.I)
	case ast.OpDiv:
		if l.Kind == VFloat || r.Kind == VFloat {
			return FloatValue(asFloat(l) / asFloat(r))
		}
		if r.I == 0 {
			it.reportDivByZero(n)
			return IntValue(0)
		}
		return IntValue(l.I / r.I)
	case ast.OpMod:
		if r.I == 0 {
			it.reportDivByZero(n)
			return IntValue(0)
		}
		return IntValue(l.I % r.I)
	}
	return VoidValue()
}

// reportDivByZero implements spec.md §9's preserved open-question
// decision: integer division/modulo by zero evaluates to 0 and is
// reported as a warning, not a fatal error; f64 naturally produces
// +Inf/NaN/-Inf under IEEE-754 and needs no special case.
func (it *Interp) reportDivByZero(n *ast.BinaryExpr) {
	p := n.Pos()
	it.Reporter.ReportWarning(p.Line, p.Column, "division or modulo by zero; result defined as 0")
}

func (it *Interp) evalAssign(n *ast.AssignExpr) Value {
	v := it.evalExpr(n.Value)
	cell, ok := it.lvalue(n.Target)
	if !ok {
		it.runtimeErrAt(n, "invalid assignment target")
		return v
	}
	*cell = v.Clone()
	return v
}

// lvalue resolves an assignable expression to the actual storage cell it
// names, walking through live scope bindings and struct/array payloads
// without cloning, so writes through the returned pointer mutate the
// original value (spec.md §4.6: assignment mutates in place; Clone is
// only for value-semantics copies on read).
func (it *Interp) lvalue(e ast.Expr) (*Value, bool) {
	switch n := e.(type) {
	case *ast.Ident:
		return it.current.lookup(n.Name)
	case *ast.MemberExpr:
		base, ok := it.lvalue(n.X)
		if !ok || base.Kind != VStruct {
			return nil, false
		}
		fv, ok := base.Fields[n.Field]
		return fv, ok
	case *ast.IndexExpr:
		base, ok := it.lvalue(n.X)
		if !ok || base.Kind != VArray {
			return nil, false
		}
		idx := it.evalExpr(n.Index)
		i := int(idx.I)
		if i < 0 || i >= len(base.Arr) {
			return nil, false
		}
		return &base.Arr[i], true
	default:
		return nil, false
	}
}

func (it *Interp) evalMember(n *ast.MemberExpr) Value {
	if cell, ok := it.lvalue(n); ok {
		return cell.Clone()
	}
	xv := it.evalExpr(n.X)
	if xv.Kind != VStruct {
		it.runtimeErrAt(n, "'%s' is not a struct", n.Field)
		return VoidValue()
	}
	fv, ok := xv.Fields[n.Field]
	if !ok {
		it.runtimeErrAt(n, "unknown field '%s'", n.Field)
		return VoidValue()
	}
	return fv.Clone()
}

func (it *Interp) evalIndex(n *ast.IndexExpr) Value {
	if cell, ok := it.lvalue(n); ok {
		return cell.Clone()
	}
	xv := it.evalExpr(n.X)
	idx := it.evalExpr(n.Index)
	if xv.Kind != VArray {
		it.runtimeErrAt(n, "value is not indexable")
		return VoidValue()
	}
	i := int(idx.I)
	if i < 0 || i >= len(xv.Arr) {
		it.runtimeErrAt(n, "index %d out of range", i)
		return VoidValue()
	}
	return xv.Arr[i].Clone()
}

func (it *Interp) evalCall(n *ast.CallExpr) Value {
	callee, ok := n.Callee.(*ast.Ident)
	if !ok {
		it.runtimeErrAt(n, "call target is not callable")
		return VoidValue()
	}

	args := make([]Value, len(n.Args))
	for i, a := range n.Args {
		args[i] = it.evalExpr(a)
	}

	if isBuiltinName(callee.Name) {
		return it.callBuiltin(callee.Name, args)
	}

	fn, ok := it.fns[callee.Name]
	if !ok {
		it.runtimeErrAt(n, "unknown function '%s'", callee.Name)
		return VoidValue()
	}
	return it.callFn(fn, args)
}

func (it *Interp) runtimeErrAt(n ast.Node, format string, args ...any) {
	p := n.Pos()
	it.runtimeErr(p.Line, p.Column, format, args...)
}

func (it *Interp) runtimeErr(line, col int, format string, args ...any) {
	it.hadError = true
	it.Reporter.ReportTypedError(line, col, fmt.Sprintf(format, args...), analysis.RuntimeError)
}
