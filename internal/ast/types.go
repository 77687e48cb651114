// Package ast defines the node and type datatypes produced by
// internal/parser and mutated in place by internal/analysis (spec.md §3).
package ast

import (
	"fmt"
	"strings"

	"github.com/konacodes/null/internal/token"
)

// Kind is the closed set of Type variants (spec.md §3):
// void | bool | i{8,16,32,64} | u{8,16,32,64} | f{32,64} | ptr<T> |
// array<T,N> | slice<T> | struct | enum | fn | unknown.
type Kind int

const (
	KindVoid Kind = iota
	KindBool
	KindI8
	KindI16
	KindI32
	KindI64
	KindU8
	KindU16
	KindU32
	KindU64
	KindF32
	KindF64
	KindPtr
	KindArray
	KindSlice
	KindStruct
	KindEnum
	KindFn
	KindUnknown
)

var kindNames = map[Kind]string{
	KindVoid: "void", KindBool: "bool",
	KindI8: "i8", KindI16: "i16", KindI32: "i32", KindI64: "i64",
	KindU8: "u8", KindU16: "u16", KindU32: "u32", KindU64: "u64",
	KindF32: "f32", KindF64: "f64",
	KindPtr: "ptr", KindArray: "array", KindSlice: "slice",
	KindStruct: "struct", KindEnum: "enum", KindFn: "fn", KindUnknown: "unknown",
}

// Field is an ordered (name, type) pair inside a struct type.
type Field struct {
	Name string
	Type *Type
}

// Variant is an ordered (name, value) pair inside an enum type.
type Variant struct {
	Name  string
	Value int64
}

// Type is the tagged union described in spec.md §3. Composite payloads are
// only meaningful for their matching Kind; callers switch on Kind before
// reading them, the same discipline original_source/src/parser.c's Type
// union follows (there enforced by the C union itself, here by convention
// since Go has no closed unions). Go does not check switches over Kind
// for exhaustiveness: the switches in this package list the kinds that
// carry a payload and send every other kind to a default arm.
type Type struct {
	Kind Kind
	Pos  token.Pos

	Elem     *Type // Ptr, Array, Slice
	ArrayLen int64 // Array only

	Name     string    // Struct, Enum (nominal identity)
	Fields   []Field   // Struct, ordered
	Variants []Variant // Enum, ordered

	Params []*Type // Fn
	Ret    *Type   // Fn
}

// Void, Bool, and the numeric primitive types are shared immutable
// singletons; composite types (ptr/array/slice/struct/enum/fn) are always
// freshly allocated since they carry their own payload.
var (
	Void    = &Type{Kind: KindVoid}
	Bool    = &Type{Kind: KindBool}
	I8      = &Type{Kind: KindI8}
	I16     = &Type{Kind: KindI16}
	I32     = &Type{Kind: KindI32}
	I64     = &Type{Kind: KindI64}
	U8      = &Type{Kind: KindU8}
	U16     = &Type{Kind: KindU16}
	U32     = &Type{Kind: KindU32}
	U64     = &Type{Kind: KindU64}
	F32     = &Type{Kind: KindF32}
	F64     = &Type{Kind: KindF64}
	Unknown = &Type{Kind: KindUnknown}
)

// IsInteger reports whether t is one of the i{8,16,32,64}/u{8,16,32,64}
// kinds.
func (t *Type) IsInteger() bool {
	switch t.Kind {
	case KindI8, KindI16, KindI32, KindI64, KindU8, KindU16, KindU32, KindU64:
		return true
	default:
		return false
	}
}

// IsFloat reports whether t is f32 or f64.
func (t *Type) IsFloat() bool {
	return t.Kind == KindF32 || t.Kind == KindF64
}

// IsNumeric reports whether t is integer or float.
func (t *Type) IsNumeric() bool {
	return t.IsInteger() || t.IsFloat()
}

// Clone returns a deep, independent copy of t — spec.md §3: "Types are
// value-semantics entities". Shared primitive singletons are copied too,
// since spec.md does not distinguish singleton primitives from freshly
// built ones at the type level; only equality is specified to be
// structural/nominal, not identity.
func (t *Type) Clone() *Type {
	if t == nil {
		return nil
	}
	c := &Type{Kind: t.Kind, Pos: t.Pos, ArrayLen: t.ArrayLen, Name: t.Name}
	c.Elem = t.Elem.Clone()
	c.Ret = t.Ret.Clone()
	if t.Fields != nil {
		c.Fields = make([]Field, len(t.Fields))
		for i, f := range t.Fields {
			c.Fields[i] = Field{Name: f.Name, Type: f.Type.Clone()}
		}
	}
	if t.Variants != nil {
		c.Variants = make([]Variant, len(t.Variants))
		copy(c.Variants, t.Variants)
	}
	if t.Params != nil {
		c.Params = make([]*Type, len(t.Params))
		for i, p := range t.Params {
			c.Params[i] = p.Clone()
		}
	}
	return c
}

// Equal implements spec.md §3's equality rule: structural for every
// composite kind except struct and enum, which compare by name only
// (nominal typing) — two distinct struct declarations that happen to share
// field layout are NOT equal, matching
// original_source/src/parser.c's type_equals.
func (t *Type) Equal(other *Type) bool {
	if t == nil || other == nil {
		return t == other
	}
	if t.Kind != other.Kind {
		return false
	}
	switch t.Kind {
	case KindStruct, KindEnum:
		return t.Name == other.Name
	case KindPtr, KindSlice:
		return t.Elem.Equal(other.Elem)
	case KindArray:
		return t.ArrayLen == other.ArrayLen && t.Elem.Equal(other.Elem)
	case KindFn:
		if !t.Ret.Equal(other.Ret) || len(t.Params) != len(other.Params) {
			return false
		}
		for i := range t.Params {
			if !t.Params[i].Equal(other.Params[i]) {
				return false
			}
		}
		return true
	default:
		return true // primitive kinds with no payload
	}
}

// String renders t the way original_source/src/parser.c's
// type_to_string does, e.g. "ptr<i64>", "[i64; 4]", "Point".
func (t *Type) String() string {
	if t == nil {
		return "<nil type>"
	}
	switch t.Kind {
	case KindPtr:
		return fmt.Sprintf("ptr<%s>", t.Elem.String())
	case KindArray:
		return fmt.Sprintf("[%s; %d]", t.Elem.String(), t.ArrayLen)
	case KindSlice:
		return fmt.Sprintf("[%s]", t.Elem.String())
	case KindStruct:
		return t.Name
	case KindEnum:
		return t.Name
	case KindFn:
		parts := make([]string, len(t.Params))
		for i, p := range t.Params {
			parts[i] = p.String()
		}
		return fmt.Sprintf("fn(%s) -> %s", strings.Join(parts, ", "), t.Ret.String())
	default:
		return kindNames[t.Kind]
	}
}
