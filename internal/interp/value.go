// Package interp implements the tree-walking interpreter (spec.md §4.5,
// §4.6), grounded on original_source/src/interp.c for the value domain,
// scope stack, call-frame shape, and ret/break/continue propagation
// flags, and on the teacher's Scope/symbol-table pattern
// (internal/transpiler/analysis/symbols.go) for the Go-idiomatic
// reimplementation — maps instead of manual parallel arrays with
// realloc.
package interp

import "fmt"

// ValueKind is the closed set of runtime value shapes (spec.md §4.6:
// "Every Value owns its nested contents").
type ValueKind int

const (
	VVoid ValueKind = iota
	VBool
	VInt
	VFloat
	VString
	VArray
	VStruct
	VPtr
)

// Value is the interpreter's tagged-union runtime datum. Composite
// payloads (Arr, Fields) are only meaningful for their matching Kind,
// the same discipline ast.Type follows for the static type domain.
type Value struct {
	Kind ValueKind

	I  int64   // VInt: raw bits, twos-complement, modulo 2^64 (stored as int64)
	F  float64 // VFloat
	Bl bool    // VBool
	S  string  // VString

	Arr        []Value           // VArray
	StructName string            // VStruct
	Fields     map[string]*Value // VStruct: pointer-valued so field assignment can mutate in place

	Ptr *Value // VPtr: copy of the operand of unary '&'; unary '*' reads it back, nothing writes through it
}

func VoidValue() Value           { return Value{Kind: VVoid} }
func IntValue(v int64) Value     { return Value{Kind: VInt, I: v} }
func FloatValue(v float64) Value { return Value{Kind: VFloat, F: v} }
func BoolValue(v bool) Value     { return Value{Kind: VBool, Bl: v} }
func StringValue(v string) Value { return Value{Kind: VString, S: v} }

func StructValue(name string, fields map[string]*Value) Value {
	return Value{Kind: VStruct, StructName: name, Fields: fields}
}

// Clone deep-copies v (spec.md §4.6: "deep clones are the uniform
// policy"). Identifiers, function parameters, and return values all
// clone through this path.
func (v Value) Clone() Value {
	switch v.Kind {
	case VArray:
		c := make([]Value, len(v.Arr))
		for i, e := range v.Arr {
			c[i] = e.Clone()
		}
		return Value{Kind: VArray, Arr: c}
	case VStruct:
		c := make(map[string]*Value, len(v.Fields))
		for k, f := range v.Fields {
			cv := f.Clone()
			c[k] = &cv
		}
		return Value{Kind: VStruct, StructName: v.StructName, Fields: c}
	default:
		return v
	}
}

func (v Value) IsTruthy() bool {
	return v.Kind == VBool && v.Bl
}

func (v Value) String() string {
	switch v.Kind {
	case VVoid:
		return "void"
	case VBool:
		return fmt.Sprintf("%t", v.Bl)
	case VInt:
		return fmt.Sprintf("%d", v.I)
	case VFloat:
		return fmt.Sprintf("%g", v.F)
	case VString:
		return v.S
	case VArray:
		return fmt.Sprintf("[%d elements]", len(v.Arr))
	case VStruct:
		return v.StructName
	case VPtr:
		return "ptr"
	default:
		return "<unknown value>"
	}
}
