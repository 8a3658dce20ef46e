package parser

import (
	"github.com/heyrt/phpcore/lexer"
	"github.com/heyrt/phpcore/parser/testutils"
)

// createParserFactory builds a parser factory function shared across test files
func createParserFactory() testutils.ParserFactory {
	return func(l *lexer.Lexer) testutils.ParserInterface {
		return NewPrattParser(l)
	}
}
