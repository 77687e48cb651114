package diagnostics

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/konacodes/null/internal/source"
)

// Severity distinguishes errors from warnings (the only non-fatal
// diagnostic kind spec.md names is the division-by-zero "logs and
// continues" case in §4.5/§9).
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Diagnostic is a structured compiler diagnostic: (line, column,
// token-length, message) per spec.md §4.7, extended with the stable Code
// and a Params bag the catalog templates read from — grounded on
// internal/transpiler/diagnostics/diagnostic.go, whose Diagnostic shape
// survives unchanged (a code, a message, and arbitrary named params).
type Diagnostic struct {
	Code        Code           `json:"code"`
	Severity    Severity       `json:"severity"`
	File        string         `json:"file,omitempty"`
	Line        int            `json:"line,omitempty"`
	Column      int            `json:"col,omitempty"`
	TokenLength int            `json:"token_length,omitempty"`
	Lexeme      string         `json:"lexeme,omitempty"`
	Message     string         `json:"message"`
	Params      map[string]any `json:"params,omitempty"`
	Suggestion  string         `json:"suggestion,omitempty"`
}

// New constructs a Diagnostic with defaults.
func New(code Code, severity Severity, file string, line, col int, params map[string]any) Diagnostic {
	if params == nil {
		params = make(map[string]any)
	}
	return Diagnostic{
		Code:     code,
		Severity: severity,
		File:     file,
		Line:     line,
		Column:   col,
		Params:   params,
	}
}

// WithSuggestion sets the suggestion text.
func (d Diagnostic) WithSuggestion(s string) Diagnostic {
	d.Suggestion = s
	return d
}

// WithMessage overrides the computed message (rarely needed).
func (d Diagnostic) WithMessage(msg string) Diagnostic {
	d.Message = msg
	return d
}

// WithToken fills in the lexeme and its byte length, used by the caret
// ruler in RenderWithSource.
func (d Diagnostic) WithToken(lexeme string, length int) Diagnostic {
	d.Lexeme = lexeme
	d.TokenLength = length
	return d
}

// RenderText produces Go-style text with code and optional detail lines.
// Format: path:line:col: error: [CODE]: short-message\n[Expected: …]\n[Got: …]\n[Offender: …]\n[Suggestion: …]
func (d Diagnostic) RenderText() string {
	header := renderHeader(d)
	message := d.Message
	if strings.TrimSpace(message) == "" {
		message = renderFromCatalog(d)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s: %s: [%s]: %s", header, strings.ToLower(string(d.Severity)), d.Code, message)

	if exp, ok := d.Params["Expected"]; ok {
		b.WriteString("\nExpected: ")
		b.WriteString(fmt.Sprint(exp))
	}
	if got, ok := d.Params["Got"]; ok {
		b.WriteString("\nGot: ")
		b.WriteString(fmt.Sprint(got))
	}
	if off, ok := d.Params["Offender"]; ok {
		b.WriteString("\nOffender: ")
		b.WriteString(fmt.Sprint(off))
	}
	if s := strings.TrimSpace(d.Suggestion); s != "" {
		b.WriteString("\nSuggestion: ")
		b.WriteString(s)
	}
	return b.String()
}

// RenderJSON renders a machine-friendly representation.
func (d Diagnostic) RenderJSON() ([]byte, error) {
	if strings.TrimSpace(d.Message) == "" {
		d.Message = renderFromCatalog(d)
	}
	return json.Marshal(d)
}

func renderHeader(d Diagnostic) string {
	if d.File != "" {
		return fmt.Sprintf("%s:%d:%d", d.File, d.Line, d.Column)
	}
	if d.Line > 0 || d.Column > 0 {
		return fmt.Sprintf("%d:%d", d.Line, d.Column)
	}
	return "error"
}

// RenderMessage returns only the canonical short message for this code
// and params. If Message is already set, it is returned as-is;
// otherwise the catalog template is used.
func (d Diagnostic) RenderMessage() string {
	if strings.TrimSpace(d.Message) != "" {
		return d.Message
	}
	return renderFromCatalog(d)
}

// RenderBody renders the diagnostic without the location and severity
// header: [CODE]: short-message + optional detail lines.
func (d Diagnostic) RenderBody() string {
	message := d.RenderMessage()
	var b strings.Builder
	b.WriteString("[")
	b.WriteString(string(d.Code))
	b.WriteString("]: ")
	b.WriteString(message)

	if exp, ok := d.Params["Expected"]; ok {
		b.WriteString("\nExpected: ")
		b.WriteString(fmt.Sprint(exp))
	}
	if got, ok := d.Params["Got"]; ok {
		b.WriteString("\nGot: ")
		b.WriteString(fmt.Sprint(got))
	}
	if off, ok := d.Params["Offender"]; ok {
		b.WriteString("\nOffender: ")
		b.WriteString(fmt.Sprint(off))
	}
	if s := strings.TrimSpace(d.Suggestion); s != "" {
		b.WriteString("\nSuggestion: ")
		b.WriteString(s)
	}
	return b.String()
}

// RenderWithSource implements spec.md §4.7's rendering contract: a
// one-line header ("Error at line L, column C near 'lexeme'"), the
// extracted source line with a leading four-digit gutter, then a caret
// ruler positioned under the offending token. Tabs expand to four spaces
// in both the source line and the ruler so columns stay aligned.
func (d Diagnostic) RenderWithSource(m *source.Map) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Error at line %d, column %d near '%s'\n", d.Line, d.Column, d.Lexeme)

	if d.Line < 1 || d.Line > m.LineCount() {
		b.WriteString(d.RenderBody())
		return b.String()
	}

	raw := m.Line(d.Line)
	expanded := source.ExpandTabs(raw)
	gutter := fmt.Sprintf("%04d | ", d.Line)
	fmt.Fprintf(&b, "%s%s\n", gutter, expanded)

	col := expandedColumn(raw, d.Column)
	caretLen := d.TokenLength
	if caretLen < 1 {
		caretLen = 1
	}
	b.WriteString(strings.Repeat(" ", len(gutter)+col-1))
	b.WriteString(strings.Repeat("^", caretLen))
	b.WriteString("\n")
	b.WriteString(d.RenderBody())
	return b.String()
}

// expandedColumn translates a 1-indexed byte column in raw into the
// corresponding 1-indexed column after tab expansion.
func expandedColumn(raw string, col int) int {
	if col < 1 {
		return 1
	}
	expanded := 0
	for i := 0; i < col-1 && i < len(raw); i++ {
		if raw[i] == '\t' {
			expanded += 4
		} else {
			expanded++
		}
	}
	return expanded + 1
}
