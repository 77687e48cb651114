package interp

// scope is a lexical binding frame, mirroring internal/analysis's
// Scope shape but holding live Values instead of static Symbols — the
// interpreter and analyzer deliberately keep separate scope stacks
// since they run over the AST at different times with different
// payloads (spec.md §4.5 names a distinct interpreter-owned "current
// scope stack").
type scope struct {
	parent *scope
	vars   map[string]*Value
}

func newScope(parent *scope) *scope {
	return &scope{parent: parent, vars: make(map[string]*Value)}
}

// define binds name to a fresh copy of v in this scope, overwriting any
// existing binding in this exact scope (spec.md §4.6: "Rebinding an
// identifier drops the previous value").
func (s *scope) define(name string, v Value) {
	cp := v
	s.vars[name] = &cp
}

// lookup resolves name starting at s and walking outward.
func (s *scope) lookup(name string) (*Value, bool) {
	for sc := s; sc != nil; sc = sc.parent {
		if v, ok := sc.vars[name]; ok {
			return v, true
		}
	}
	return nil, false
}
