package testutils

import (
	"testing"

	"github.com/heyrt/phpcore/ast"
)

// ParserInterface decouples the test helpers from the parser package to avoid
// an import cycle.
type ParserInterface interface {
	ParseProgram() *ast.Program
	Errors() []string
}

// CheckParserErrors fails the test immediately if the parser recorded errors.
func CheckParserErrors(t *testing.T, p ParserInterface) {
	t.Helper()
	errors := p.Errors()
	if len(errors) == 0 {
		return
	}

	t.Errorf("parser has %d errors", len(errors))
	for _, msg := range errors {
		t.Errorf("parser error: %q", msg)
	}
	t.FailNow()
}
