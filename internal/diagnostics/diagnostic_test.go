package diagnostics

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/konacodes/null/internal/source"
)

func TestDiagnosticRenderTextJSONBody(t *testing.T) {
	d := New(CodeAnaTypeMismatch, SeverityError, "", 12, 34, map[string]any{
		"Left":  "i64",
		"Right": "bool",
	}).WithSuggestion("convert one side to match the other")

	txt := d.RenderText()
	assert.Contains(t, txt, "[ANALYZE-TYPE-MISMATCH]")
	assert.Contains(t, strings.ToLower(txt), "error:")
	assert.Contains(t, txt, "Suggestion:")

	body := d.RenderBody()
	assert.True(t, strings.HasPrefix(body, "[ANALYZE-TYPE-MISMATCH]:"))

	raw, err := d.RenderJSON()
	require.NoError(t, err)
	var m map[string]any
	require.NoError(t, json.Unmarshal(raw, &m))
	assert.NotEmpty(t, m["message"])
}

func TestDiagnosticRenderHeaderVariants(t *testing.T) {
	d := New(CodeAnaDuplicateDecl, SeverityWarning, "a.nl", 3, 7, nil)
	assert.True(t, strings.HasPrefix(d.RenderText(), "a.nl:3:7:"))

	d2 := New(CodeAnaUnknownFunction, SeverityError, "", 9, 2, nil)
	assert.True(t, strings.HasPrefix(d2.RenderText(), "9:2:"))

	d3 := New(CodeRtDivisionByZero, SeverityError, "", 0, 0, nil)
	assert.True(t, strings.HasPrefix(d3.RenderText(), "error:"))
}

func TestDiagnosticRenderMessageExplicitAndCatalog(t *testing.T) {
	d := New(CodeAnaDuplicateDecl, SeverityError, "", 0, 0, nil).WithMessage("explicit message")
	assert.Equal(t, "explicit message", d.RenderMessage())

	d2 := New(CodeAnaDuplicateDecl, SeverityError, "", 0, 0, map[string]any{"Name": "foo"})
	assert.NotEmpty(t, d2.RenderMessage())
	assert.Contains(t, d2.RenderMessage(), "foo")
}

func TestDiagnosticRenderWithSource(t *testing.T) {
	src := "fn main() -> i64 do\n  ret oops\nend\n"
	m := source.New(src)
	d := New(CodeAnaUnknownIdentifier, SeverityError, "main.nl", 2, 7, map[string]any{"Name": "oops"}).
		WithToken("oops", 4)

	out := d.RenderWithSource(m)
	assert.Contains(t, out, "Error at line 2, column 7 near 'oops'")
	assert.Contains(t, out, "0002 |   ret oops")
	assert.Contains(t, out, "^^^^")
	assert.Contains(t, out, "unknown identifier 'oops'")
}

func TestDiagnosticRenderWithSourceExpandsTabs(t *testing.T) {
	src := "fn main() -> i64 do\n\tret bad\nend\n"
	m := source.New(src)
	d := New(CodeAnaUnknownIdentifier, SeverityError, "main.nl", 2, 6, map[string]any{"Name": "bad"}).
		WithToken("bad", 3)

	out := d.RenderWithSource(m)
	// the tab expands to 4 spaces before "ret bad"
	assert.Contains(t, out, "    ret bad")
}
