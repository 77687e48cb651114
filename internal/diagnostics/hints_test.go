package diagnostics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHintMatchesPrefix(t *testing.T) {
	assert.Contains(t, Hint("Expected 'end', found EOF"), "'do' block")
	assert.Equal(t, "", Hint("some completely unrelated message"))
}

func TestWithAutoHintDoesNotOverrideExplicit(t *testing.T) {
	d := New(CodeAnaCannotInfer, SeverityError, "", 1, 1, map[string]any{"Name": "x"}).
		WithSuggestion("manual hint").
		WithAutoHint()
	assert.Equal(t, "manual hint", d.Suggestion)
}

func TestWithAutoHintFillsFromCatalog(t *testing.T) {
	d := New(CodeAnaCannotInfer, SeverityError, "", 1, 1, map[string]any{"Name": "x"}).WithAutoHint()
	assert.Contains(t, d.Suggestion, "type annotation")
}
