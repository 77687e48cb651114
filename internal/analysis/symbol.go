package analysis

import "github.com/konacodes/null/internal/ast"

// SymbolKind is the closed set of entities the analyzer installs into a
// Scope (spec.md GLOSSARY: "Symbol: the analyzer's record of a named
// entity (variable, parameter, function, struct, enum)").
type SymbolKind int

const (
	SymVar SymbolKind = iota
	SymParam
	SymFn
	SymStruct
	SymEnum
)

func (k SymbolKind) String() string {
	switch k {
	case SymVar:
		return "variable"
	case SymParam:
		return "parameter"
	case SymFn:
		return "function"
	case SymStruct:
		return "struct"
	case SymEnum:
		return "enum"
	default:
		return "unknown"
	}
}

// Symbol is a named entity resolved by Scope lookups.
type Symbol struct {
	Name    string
	Kind    SymbolKind
	Type    *ast.Type
	Mutable bool // meaningful only for SymVar/SymParam
}
