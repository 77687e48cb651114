package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/konacodes/null/internal/arena"
	"github.com/konacodes/null/internal/ast"
	"github.com/konacodes/null/internal/token"
)

func p() token.Pos { return token.Pos{Line: 1, Column: 1} }

func TestHoistDuplicateTopLevelFn(t *testing.T) {
	a := arena.New()
	prog := ast.NewProgram(a, p())
	fn1 := ast.NewFnDecl(a, p())
	fn1.Name = "main"
	fn1.RetType = ast.I64
	fn2 := ast.NewFnDecl(a, p())
	fn2.Name = "main"
	fn2.RetType = ast.I64
	prog.Decls = append(prog.Decls, fn1, fn2)

	an := New()
	err := an.Analyze(prog)
	require.Error(t, err)
	assert.True(t, an.HadError())
}

func buildLetProgram(t *testing.T, value ast.Expr, annotation *ast.Type) (*arena.Arena, *ast.Program, *ast.VarDecl) {
	t.Helper()
	a := arena.New()
	prog := ast.NewProgram(a, p())
	fn := ast.NewFnDecl(a, p())
	fn.Name = "main"
	fn.RetType = ast.I64
	body := ast.NewBlock(a, p())
	decl := ast.NewVarDecl(a, p())
	decl.Bind = ast.BindLet
	decl.Name = "x"
	decl.Annotation = annotation
	decl.Init = value
	body.Stmts = append(body.Stmts, decl)
	ret := ast.NewRetStmt(a, p())
	body.Stmts = append(body.Stmts, ret)
	fn.Body = body
	prog.Decls = append(prog.Decls, fn)
	return a, prog, decl
}

func TestInferIntLiteral(t *testing.T) {
	arn := arena.New()
	_, prog, decl := buildLetProgram(t, ast.NewIntLit(arn, p()), nil)
	an := New()
	require.NoError(t, an.Analyze(prog))
	assert.Equal(t, ast.I64, decl.ResolvedType)
}

func TestExplicitAnnotationWins(t *testing.T) {
	arn := arena.New()
	lit := ast.NewIntLit(arn, p())
	_, prog, decl := buildLetProgram(t, lit, ast.F64)
	an := New()
	require.NoError(t, an.Analyze(prog))
	assert.Equal(t, ast.F64, decl.ResolvedType)
}

func TestMutabilityEnforcement(t *testing.T) {
	a := arena.New()
	prog := ast.NewProgram(a, p())
	fn := ast.NewFnDecl(a, p())
	fn.Name = "main"
	fn.RetType = ast.I64
	body := ast.NewBlock(a, p())

	letDecl := ast.NewVarDecl(a, p())
	letDecl.Bind = ast.BindLet
	letDecl.Name = "x"
	letDecl.Init = ast.NewIntLit(a, p())
	body.Stmts = append(body.Stmts, letDecl)

	assign := ast.NewAssignExpr(a, p())
	target := ast.NewIdent(a, p())
	target.Name = "x"
	assign.Target = target
	assign.Value = ast.NewIntLit(a, p())
	body.Stmts = append(body.Stmts, ast.NewExprStmt(a, p()))
	body.Stmts[len(body.Stmts)-1].(*ast.ExprStmt).X = assign

	fn.Body = body
	prog.Decls = append(prog.Decls, fn)

	an := New()
	err := an.Analyze(prog)
	require.Error(t, err, "assigning to a non-mut let binding must fail analysis")
}

func TestMutAssignmentAllowed(t *testing.T) {
	a := arena.New()
	prog := ast.NewProgram(a, p())
	fn := ast.NewFnDecl(a, p())
	fn.Name = "main"
	fn.RetType = ast.I64
	body := ast.NewBlock(a, p())

	mutDecl := ast.NewVarDecl(a, p())
	mutDecl.Bind = ast.BindMut
	mutDecl.Name = "x"
	mutDecl.Init = ast.NewIntLit(a, p())
	body.Stmts = append(body.Stmts, mutDecl)

	assign := ast.NewAssignExpr(a, p())
	target := ast.NewIdent(a, p())
	target.Name = "x"
	assign.Target = target
	assign.Value = ast.NewIntLit(a, p())
	stmt := ast.NewExprStmt(a, p())
	stmt.X = assign
	body.Stmts = append(body.Stmts, stmt)

	fn.Body = body
	prog.Decls = append(prog.Decls, fn)

	an := New()
	assert.NoError(t, an.Analyze(prog))
}

func TestBreakOutsideLoopIsError(t *testing.T) {
	a := arena.New()
	prog := ast.NewProgram(a, p())
	fn := ast.NewFnDecl(a, p())
	fn.Name = "main"
	fn.RetType = ast.I64
	body := ast.NewBlock(a, p())
	body.Stmts = append(body.Stmts, ast.NewBreakStmt(a, p()))
	fn.Body = body
	prog.Decls = append(prog.Decls, fn)

	an := New()
	err := an.Analyze(prog)
	require.Error(t, err)
}

func TestScopeIsolation(t *testing.T) {
	// A variable declared inside an if-block is not visible afterward.
	a := arena.New()
	prog := ast.NewProgram(a, p())
	fn := ast.NewFnDecl(a, p())
	fn.Name = "main"
	fn.RetType = ast.I64
	body := ast.NewBlock(a, p())

	ifStmt := ast.NewIfStmt(a, p())
	ifStmt.Cond = ast.NewBoolLit(a, p())
	ifStmt.Cond.(*ast.BoolLit).Value = true
	thenBlock := ast.NewBlock(a, p())
	inner := ast.NewVarDecl(a, p())
	inner.Bind = ast.BindLet
	inner.Name = "y"
	inner.Init = ast.NewIntLit(a, p())
	thenBlock.Stmts = append(thenBlock.Stmts, inner)
	ifStmt.Then = thenBlock
	body.Stmts = append(body.Stmts, ifStmt)

	// reference y outside the if block, in call position (an error per spec).
	call := ast.NewCallExpr(a, p())
	callee := ast.NewIdent(a, p())
	callee.Name = "y"
	call.Callee = callee
	exprStmt := ast.NewExprStmt(a, p())
	exprStmt.X = call
	body.Stmts = append(body.Stmts, exprStmt)

	fn.Body = body
	prog.Decls = append(prog.Decls, fn)

	an := New()
	err := an.Analyze(prog)
	require.Error(t, err, "referencing an inner-scope identifier after the block exits must fail in call position")
}

func TestStructFieldTypeResolution(t *testing.T) {
	a := arena.New()
	prog := ast.NewProgram(a, p())

	st := ast.NewStructDecl(a, p())
	st.Name = "Point"
	st.Fields = []ast.Field{{Name: "x", Type: ast.I64}, {Name: "y", Type: ast.I64}}
	prog.Decls = append(prog.Decls, st)

	fn := ast.NewFnDecl(a, p())
	fn.Name = "main"
	fn.RetType = ast.I64
	body := ast.NewBlock(a, p())

	decl := ast.NewVarDecl(a, p())
	decl.Bind = ast.BindLet
	decl.Name = "p"
	lit := ast.NewStructLit(a, p())
	lit.Name = "Point"
	lit.Fields = []ast.FieldInit{
		{Name: "x", Value: ast.NewIntLit(a, p())},
		{Name: "y", Value: ast.NewIntLit(a, p())},
	}
	decl.Init = lit
	body.Stmts = append(body.Stmts, decl)

	member := ast.NewMemberExpr(a, p())
	px := ast.NewIdent(a, p())
	px.Name = "p"
	member.X = px
	member.Field = "x"
	exprStmt := ast.NewExprStmt(a, p())
	exprStmt.X = member
	body.Stmts = append(body.Stmts, exprStmt)

	fn.Body = body
	prog.Decls = append(prog.Decls, fn)

	an := New()
	require.NoError(t, an.Analyze(prog))
	assert.Equal(t, "Point", decl.ResolvedType.Name)
	assert.Equal(t, ast.I64, member.Type())
}

func TestUnknownFunctionCallIsError(t *testing.T) {
	a := arena.New()
	prog := ast.NewProgram(a, p())
	fn := ast.NewFnDecl(a, p())
	fn.Name = "main"
	fn.RetType = ast.I64
	body := ast.NewBlock(a, p())
	call := ast.NewCallExpr(a, p())
	callee := ast.NewIdent(a, p())
	callee.Name = "doesNotExist"
	call.Callee = callee
	stmt := ast.NewExprStmt(a, p())
	stmt.X = call
	body.Stmts = append(body.Stmts, stmt)
	fn.Body = body
	prog.Decls = append(prog.Decls, fn)

	an := New()
	require.Error(t, an.Analyze(prog))
}

func TestBuiltinCallsAreRecognized(t *testing.T) {
	a := arena.New()
	prog := ast.NewProgram(a, p())
	fn := ast.NewFnDecl(a, p())
	fn.Name = "main"
	fn.RetType = ast.I64
	body := ast.NewBlock(a, p())
	call := ast.NewCallExpr(a, p())
	callee := ast.NewIdent(a, p())
	callee.Name = "println"
	call.Callee = callee
	stmt := ast.NewExprStmt(a, p())
	stmt.X = call
	body.Stmts = append(body.Stmts, stmt)
	fn.Body = body
	prog.Decls = append(prog.Decls, fn)

	an := New()
	assert.NoError(t, an.Analyze(prog))
}
