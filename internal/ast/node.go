package ast

import (
	"github.com/konacodes/null/internal/arena"
	"github.com/konacodes/null/internal/token"
)

// Node is embedded by every concrete node struct. Every parsed node has a
// valid source position (spec.md §3 invariant); the embedded base's typ
// is filled in by internal/analysis for expression nodes (a VarDecl's
// type goes to its ResolvedType field instead), and stays nil for
// nodes the analyzer never annotates (spec.md: "every node carries
// (line, column) and an optional resolved Type").
type Node interface {
	Pos() token.Pos
	Type() *Type
	SetType(*Type)
}

type base struct {
	position token.Pos
	typ      *Type
}

func (b *base) Pos() token.Pos   { return b.position }
func (b *base) Type() *Type      { return b.typ }
func (b *base) SetType(t *Type)  { b.typ = t }

// Decl, Stmt, and Expr are marker interfaces distinguishing the three
// grammar categories in spec.md §6. A concrete struct may implement more
// than one — VarDecl is both a Decl (top-level `let`) and a Stmt (local
// `let`/`mut`/`const`).
type Decl interface {
	Node
	declNode()
}

type Stmt interface {
	Node
	stmtNode()
}

type Expr interface {
	Node
	exprNode()
}

// alloc reserves a zero-valued *T from the arena's pool for node kind
// name, the same geometric-growth discipline arena.Pool documents
// (spec.md §2's "Arena" row; §4.3's "geometric capacity doubling").
func alloc[T any](a *arena.Arena, name string) *T {
	return arena.PoolFor[T](a, name).Alloc()
}

// ---- Program -----------------------------------------------------------

// Program is the AST root. Never nil; may hold zero declarations
// (spec.md §4.3: "a Program AST root (never null; may be empty)").
type Program struct {
	base
	Decls []Decl
}

func NewProgram(a *arena.Arena, pos token.Pos) *Program {
	n := alloc[Program](a, "Program")
	n.position = pos
	return n
}

// ---- Declarations -------------------------------------------------------

type Param struct {
	Name string
	Type *Type
	Pos  token.Pos
}

type FnDecl struct {
	base
	Name    string
	Params  []Param
	RetType *Type // Void if omitted
	Body    *Block
	IsExtern bool // declared inside an @extern block: no Body
	ExternABI string
}

func (*FnDecl) declNode() {}

func NewFnDecl(a *arena.Arena, pos token.Pos) *FnDecl {
	n := alloc[FnDecl](a, "FnDecl")
	n.position = pos
	return n
}

type StructDecl struct {
	base
	Name   string
	Fields []Field
}

func (*StructDecl) declNode() {}

func NewStructDecl(a *arena.Arena, pos token.Pos) *StructDecl {
	n := alloc[StructDecl](a, "StructDecl")
	n.position = pos
	return n
}

type EnumDecl struct {
	base
	Name     string
	Variants []Variant
}

func (*EnumDecl) declNode() {}

func NewEnumDecl(a *arena.Arena, pos token.Pos) *EnumDecl {
	n := alloc[EnumDecl](a, "EnumDecl")
	n.position = pos
	return n
}

// BindKind distinguishes let/mut/const — spec.md §9's open question #4:
// const is parsed distinctly but analyzed identically to let.
type BindKind int

const (
	BindLet BindKind = iota
	BindMut
	BindConst
)

// VarDecl covers both top-level and local `let`/`mut`/`const` bindings
// (spec.md §6 grammar: VarDecl appears in both Decl and Stmt).
// Annotation is the explicit `:: T` if the source wrote one, else nil.
// ResolvedType is filled by the analyzer and is never nil after a
// successful analysis pass (spec.md §3 invariant on VAR_DECL.var_type).
type VarDecl struct {
	base
	Bind         BindKind
	Name         string
	Annotation   *Type
	Init         Expr
	ResolvedType *Type
}

func (*VarDecl) declNode() {}
func (*VarDecl) stmtNode() {}

func NewVarDecl(a *arena.Arena, pos token.Pos) *VarDecl {
	n := alloc[VarDecl](a, "VarDecl")
	n.position = pos
	return n
}

// UseDecl models `@use "path" [as Alias]` (spec.md §6).
type UseDecl struct {
	base
	Path  string
	Alias string // "" if no alias
}

func (*UseDecl) declNode() {}

func NewUseDecl(a *arena.Arena, pos token.Pos) *UseDecl {
	n := alloc[UseDecl](a, "UseDecl")
	n.position = pos
	return n
}

// ExternBlock models `@extern "ABI" do fn ... end` (spec.md §6). Its
// Fns are also installed individually in the global scope by the
// analyzer's pass 1, same as ordinary top-level fns (spec.md §4.4).
type ExternBlock struct {
	base
	ABI string
	Fns []*FnDecl
}

func (*ExternBlock) declNode() {}

func NewExternBlock(a *arena.Arena, pos token.Pos) *ExternBlock {
	n := alloc[ExternBlock](a, "ExternBlock")
	n.position = pos
	return n
}

// ---- Statements ----------------------------------------------------------

// Block is a lexical statement sequence; entering one pushes a scope,
// exiting pops it (spec.md §4.4).
type Block struct {
	base
	Stmts []Stmt
}

func NewBlock(a *arena.Arena, pos token.Pos) *Block {
	n := alloc[Block](a, "Block")
	n.position = pos
	return n
}

type ElifClause struct {
	Cond Expr
	Body *Block
	Pos  token.Pos
}

type IfStmt struct {
	base
	Cond  Expr
	Then  *Block
	Elifs []ElifClause
	Else  *Block // nil if no else arm
}

func (*IfStmt) stmtNode() {}

func NewIfStmt(a *arena.Arena, pos token.Pos) *IfStmt {
	n := alloc[IfStmt](a, "IfStmt")
	n.position = pos
	return n
}

type WhileStmt struct {
	base
	Cond Expr
	Body *Block
}

func (*WhileStmt) stmtNode() {}

func NewWhileStmt(a *arena.Arena, pos token.Pos) *WhileStmt {
	n := alloc[WhileStmt](a, "WhileStmt")
	n.position = pos
	return n
}

// ForStmt models `for x in a..b do ... end` (spec.md §4.5).
type ForStmt struct {
	base
	Var  string
	From Expr
	To   Expr
	Body *Block
}

func (*ForStmt) stmtNode() {}

func NewForStmt(a *arena.Arena, pos token.Pos) *ForStmt {
	n := alloc[ForStmt](a, "ForStmt")
	n.position = pos
	return n
}

type RetStmt struct {
	base
	Value Expr // nil for bare `ret`
}

func (*RetStmt) stmtNode() {}

func NewRetStmt(a *arena.Arena, pos token.Pos) *RetStmt {
	n := alloc[RetStmt](a, "RetStmt")
	n.position = pos
	return n
}

type BreakStmt struct{ base }

func (*BreakStmt) stmtNode() {}

func NewBreakStmt(a *arena.Arena, pos token.Pos) *BreakStmt {
	n := alloc[BreakStmt](a, "BreakStmt")
	n.position = pos
	return n
}

type ContinueStmt struct{ base }

func (*ContinueStmt) stmtNode() {}

func NewContinueStmt(a *arena.Arena, pos token.Pos) *ContinueStmt {
	n := alloc[ContinueStmt](a, "ContinueStmt")
	n.position = pos
	return n
}

type ExprStmt struct {
	base
	X Expr
}

func (*ExprStmt) stmtNode() {}

func NewExprStmt(a *arena.Arena, pos token.Pos) *ExprStmt {
	n := alloc[ExprStmt](a, "ExprStmt")
	n.position = pos
	return n
}

// ---- Expressions ----------------------------------------------------------

type Ident struct {
	base
	Name string
}

func (*Ident) exprNode() {}

func NewIdent(a *arena.Arena, pos token.Pos) *Ident {
	n := alloc[Ident](a, "Ident")
	n.position = pos
	return n
}

type IntLit struct {
	base
	Value int64
}

func (*IntLit) exprNode() {}

func NewIntLit(a *arena.Arena, pos token.Pos) *IntLit {
	n := alloc[IntLit](a, "IntLit")
	n.position = pos
	return n
}

type FloatLit struct {
	base
	Value float64
}

func (*FloatLit) exprNode() {}

func NewFloatLit(a *arena.Arena, pos token.Pos) *FloatLit {
	n := alloc[FloatLit](a, "FloatLit")
	n.position = pos
	return n
}

type StringLit struct {
	base
	Value string // escapes already decoded (spec.md §4.2)
}

func (*StringLit) exprNode() {}

func NewStringLit(a *arena.Arena, pos token.Pos) *StringLit {
	n := alloc[StringLit](a, "StringLit")
	n.position = pos
	return n
}

type BoolLit struct {
	base
	Value bool
}

func (*BoolLit) exprNode() {}

func NewBoolLit(a *arena.Arena, pos token.Pos) *BoolLit {
	n := alloc[BoolLit](a, "BoolLit")
	n.position = pos
	return n
}

// BinOp is the closed set of binary operators (spec.md §4.3 precedence
// table, minus assignment and pipe which get their own node kinds).
type BinOp int

const (
	OpOr BinOp = iota
	OpAnd
	OpEq
	OpNe
	OpLt
	OpLe
	OpGt
	OpGe
	OpBitOr
	OpBitXor
	OpBitAnd
	OpShl
	OpShr
	OpAdd
	OpSub
	OpMul
	OpDiv
	OpMod
)

type BinaryExpr struct {
	base
	Op       BinOp
	Left     Expr
	Right    Expr
	OpPos    token.Pos
}

func (*BinaryExpr) exprNode() {}

func NewBinaryExpr(a *arena.Arena, pos token.Pos) *BinaryExpr {
	n := alloc[BinaryExpr](a, "BinaryExpr")
	n.position = pos
	return n
}

// UnOp is the closed set of unary prefix operators (spec.md §4.3 level 12).
type UnOp int

const (
	OpNeg UnOp = iota // -
	OpNot             // not
	OpBitNot          // ~
	OpAddr            // &
	OpDeref           // *
)

type UnaryExpr struct {
	base
	Op UnOp
	X  Expr
}

func (*UnaryExpr) exprNode() {}

func NewUnaryExpr(a *arena.Arena, pos token.Pos) *UnaryExpr {
	n := alloc[UnaryExpr](a, "UnaryExpr")
	n.position = pos
	return n
}

// AssignExpr models `=` (spec.md §4.3 level 1, right-associative). The
// target is either an Ident, a MemberExpr, or an IndexExpr.
type AssignExpr struct {
	base
	Target Expr
	Value  Expr
}

func (*AssignExpr) exprNode() {}

func NewAssignExpr(a *arena.Arena, pos token.Pos) *AssignExpr {
	n := alloc[AssignExpr](a, "AssignExpr")
	n.position = pos
	return n
}

type CallExpr struct {
	base
	Callee Expr
	Args   []Expr
}

func (*CallExpr) exprNode() {}

func NewCallExpr(a *arena.Arena, pos token.Pos) *CallExpr {
	n := alloc[CallExpr](a, "CallExpr")
	n.position = pos
	return n
}

type MemberExpr struct {
	base
	X     Expr
	Field string
}

func (*MemberExpr) exprNode() {}

func NewMemberExpr(a *arena.Arena, pos token.Pos) *MemberExpr {
	n := alloc[MemberExpr](a, "MemberExpr")
	n.position = pos
	return n
}

type IndexExpr struct {
	base
	X     Expr
	Index Expr
}

func (*IndexExpr) exprNode() {}

func NewIndexExpr(a *arena.Arena, pos token.Pos) *IndexExpr {
	n := alloc[IndexExpr](a, "IndexExpr")
	n.position = pos
	return n
}

// ArrayLit models the `[e, ...]` primary form (spec.md §4.3 level 14).
type ArrayLit struct {
	base
	Elems []Expr
}

func (*ArrayLit) exprNode() {}

func NewArrayLit(a *arena.Arena, pos token.Pos) *ArrayLit {
	n := alloc[ArrayLit](a, "ArrayLit")
	n.position = pos
	return n
}

type FieldInit struct {
	Name  string
	Value Expr
}

// StructLit models `Name { field = value, ... }`.
type StructLit struct {
	base
	Name   string
	Fields []FieldInit
}

func (*StructLit) exprNode() {}

func NewStructLit(a *arena.Arena, pos token.Pos) *StructLit {
	n := alloc[StructLit](a, "StructLit")
	n.position = pos
	return n
}

// EnumAccessExpr models `Name::Variant`.
type EnumAccessExpr struct {
	base
	Enum    string
	Variant string
}

func (*EnumAccessExpr) exprNode() {}

func NewEnumAccessExpr(a *arena.Arena, pos token.Pos) *EnumAccessExpr {
	n := alloc[EnumAccessExpr](a, "EnumAccessExpr")
	n.position = pos
	return n
}
