package testutils

import (
	"testing"
	
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/heyrt/phpcore/ast"
	"github.com/heyrt/phpcore/lexer"
)

// TestContext carries test fixtures and helpers shared across a test case.
type TestContext struct {
	T       *testing.T
	Parser  ParserInterface
	Lexer   *lexer.Lexer
	Program *ast.Program
	Config  *TestConfig
}

// TestConfig holds test behavior options.
type TestConfig struct {
	StrictMode  bool // fail the test on any parser error
	ValidateAST bool // require the parsed program to be non-nil
}

// ParserFactory constructs a parser instance from a lexer.
type ParserFactory func(*lexer.Lexer) ParserInterface

// ParserTestBuilder builds and runs parser test cases.
type ParserTestBuilder struct {
	config        *TestConfig
	setup         []func(*TestContext)
	parserFactory ParserFactory
}

// NewParserTestBuilder creates a builder using the given parser factory.
func NewParserTestBuilder(parserFactory ParserFactory) *ParserTestBuilder {
	return &ParserTestBuilder{
		config: &TestConfig{
			StrictMode:  true,
			ValidateAST: true,
		},
		parserFactory: parserFactory,
	}
}

// WithConfig overrides the test configuration.
func (b *ParserTestBuilder) WithConfig(config *TestConfig) *ParserTestBuilder {
	b.config = config
	return b
}

// WithStrictMode toggles strict error checking.
func (b *ParserTestBuilder) WithStrictMode(strict bool) *ParserTestBuilder {
	b.config.StrictMode = strict
	return b
}

// WithSetup registers a setup function run before parsing.
func (b *ParserTestBuilder) WithSetup(setup func(*TestContext)) *ParserTestBuilder {
	b.setup = append(b.setup, setup)
	return b
}

// Test parses source and runs validator against the resulting context.
func (b *ParserTestBuilder) Test(t *testing.T, source string, validator func(*TestContext)) {
	t.Helper()
	
	ctx := &TestContext{
		T:      t,
		Lexer:  lexer.New(source),
		Config: b.config,
	}
	
	ctx.Parser = b.parserFactory(ctx.Lexer)
	
	// run setup hooks
	for _, setup := range b.setup {
		setup(ctx)
	}
	
	// parse the program
	ctx.Program = ctx.Parser.ParseProgram()
	
	// error checking
	if b.config.StrictMode {
		CheckParserErrors(t, ctx.Parser)
	}
	
	// AST validation
	if b.config.ValidateAST {
		require.NotNil(t, ctx.Program, "Program should not be nil")
	}
	
	// run the validator
	if validator != nil {
		validator(ctx)
	}
}

// TestTableDriven runs a table of test cases.
func (b *ParserTestBuilder) TestTableDriven(t *testing.T, tests []struct {
	Name      string
	Source    string
	Validator func(*TestContext)
}) {
	t.Helper()
	
	for _, tt := range tests {
		t.Run(tt.Name, func(t *testing.T) {
			b.Test(t, tt.Source, tt.Validator)
		})
	}
}

// ExpectProgram asserts the program body has the expected length.
func ExpectProgram(expectedBodyLen int) func(*TestContext) {
	return func(ctx *TestContext) {
		assert.Len(ctx.T, ctx.Program.Body, expectedBodyLen)
	}
}

// ExpectNoErrors asserts the parser recorded no errors.
func ExpectNoErrors() func(*TestContext) {
	return func(ctx *TestContext) {
		errors := ctx.Parser.Errors()
		assert.Empty(ctx.T, errors, "Expected no parsing errors but got: %v", errors)
	}
}