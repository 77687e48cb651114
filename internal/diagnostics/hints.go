package diagnostics

import "strings"

// hintCatalog maps common error-message prefixes to an advisory hint
// string (spec.md §4.7: "a closed catalog maps common error-message
// prefixes to hint strings"). Hints are advisory only — a missing entry
// is never a correctness bug, only a worse error message.
var hintCatalog = []struct {
	prefix string
	hint   string
}{
	{"expected 'end'", "every 'do' block must be closed with 'end'"},
	{"expected ')'", "check for a missing closing parenthesis"},
	{"expected ']'", "check for a missing closing bracket"},
	{"unterminated string", "string literals must be closed with a matching '\"'"},
	{"unknown directive", "directives are limited to @use, @extern, @alloc, and @free"},
	{"cannot infer type for variable", "add an explicit '::' type annotation to the declaration"},
	{"cannot assign to immutable binding", "declare the variable with 'mut' instead of 'let' to allow reassignment"},
	{"unknown identifier", "check for a typo, or that the variable is declared in an enclosing scope"},
	{"unknown function", "check for a typo, or that the function is declared or imported"},
	{"unsupported operand kinds", "both operands of this operator must share a compatible type"},
	{"division by zero", "guard the divisor with an 'if' check before dividing"},
}

// Hint looks up the advisory hint for a rendered message, matching on a
// case-insensitive prefix. It returns "" when no entry applies.
func Hint(message string) string {
	lower := strings.ToLower(strings.TrimSpace(message))
	for _, e := range hintCatalog {
		if strings.HasPrefix(lower, e.prefix) {
			return e.hint
		}
	}
	return ""
}

// WithAutoHint fills in d.Suggestion from the hint catalog if it is not
// already set explicitly.
func (d Diagnostic) WithAutoHint() Diagnostic {
	if strings.TrimSpace(d.Suggestion) != "" {
		return d
	}
	if h := Hint(d.RenderMessage()); h != "" {
		d.Suggestion = h
	}
	return d
}
