// Package backend declares the facade a native code generator implements
// (spec.md §1, §4's "Backend facade" row: "out of scope — described only
// as an opaque interface this repo's interpreter/analyzer hand entity
// descriptions to"). Grounded on
// internal/transpiler/interfaces.go's CodeGenerator
// (Generate/AddImport/SetPackageName): null's facade keeps that same
// three-method shape but generalizes its single AST/SymbolTable pair into
// the three entity descriptions a backend actually needs from this
// pipeline — function signatures, struct layouts, and enum variants —
// since null has no single "symbol table" type analogous to the
// teacher's.
//
// No implementation lives here. A concrete backend is a separate
// program or plugin that consumes a *Module built from an
// *ast.Program post-analysis; this package only gives that boundary a
// name and a shape.
package backend

import "github.com/konacodes/null/internal/ast"

// FnSignature describes one function's calling shape, enough for a
// backend to emit a call site or a definition stub without walking the
// function body itself.
type FnSignature struct {
	Name    string
	Params  []ast.Param
	RetType *ast.Type

	// IsExtern and ABI mirror ast.FnDecl's @extern metadata (spec.md §6):
	// a backend needs the ABI string to know how to link the symbol.
	IsExtern bool
	ABI      string
}

// StructLayout describes one struct's field order and types. Field order
// matches declaration order (spec.md §3: "Fields, ordered"), which a
// backend needing a fixed memory layout depends on.
type StructLayout struct {
	Name   string
	Fields []ast.Field
}

// EnumLayout describes one enum's variant-to-value mapping.
type EnumLayout struct {
	Name     string
	Variants []ast.Variant
}

// Module is the full set of top-level entity descriptions a backend
// receives for one analyzed program — no expression bodies, no control
// flow, just the shapes a code generator needs to emit declarations and
// call sites. The interpreter (internal/interp) is the only component
// in this repo that actually evaluates function bodies; a backend is
// expected to re-derive bodies from the same *ast.Program it is handed
// alongside the Module, the same way the teacher's CodeGenerator.Generate
// takes both an AST and a SymbolTable rather than either alone.
type Module struct {
	Fns     []FnSignature
	Structs []StructLayout
	Enums   []EnumLayout
}

// CodeGenerator is the facade a native backend implements. Generate
// mirrors the teacher's Generate(ast, symbols) shape, substituting
// null's own Module for the teacher's SymbolTable. AddImport and
// SetPackageName carry over unchanged in spirit: a backend targeting a
// host language needs to know what to import and what package/module
// name to emit under, independent of what that host language is.
type CodeGenerator interface {
	Generate(prog *ast.Program, mod *Module) (string, error)
	AddImport(importPath string)
	SetPackageName(name string)
}

// BuildModule walks an analyzed program's top-level declarations into
// the entity descriptions a CodeGenerator consumes. It does not
// validate anything analysis.Analyzer hasn't already validated; it is
// a pure reshaping step.
func BuildModule(prog *ast.Program) *Module {
	mod := &Module{}
	for _, d := range prog.Decls {
		switch n := d.(type) {
		case *ast.FnDecl:
			mod.Fns = append(mod.Fns, fnSignature(n))
		case *ast.StructDecl:
			mod.Structs = append(mod.Structs, StructLayout{Name: n.Name, Fields: n.Fields})
		case *ast.EnumDecl:
			mod.Enums = append(mod.Enums, EnumLayout{Name: n.Name, Variants: n.Variants})
		case *ast.ExternBlock:
			for _, fn := range n.Fns {
				mod.Fns = append(mod.Fns, fnSignature(fn))
			}
		}
	}
	return mod
}

func fnSignature(fn *ast.FnDecl) FnSignature {
	return FnSignature{
		Name:     fn.Name,
		Params:   fn.Params,
		RetType:  fn.RetType,
		IsExtern: fn.IsExtern,
		ABI:      fn.ExternABI,
	}
}
