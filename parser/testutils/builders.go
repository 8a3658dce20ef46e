package testutils

import (
	"testing"
	
	"github.com/heyrt/phpcore/ast"
	"github.com/heyrt/phpcore/lexer"
)

// TestSuiteBuilder builds a named suite of parser test cases.
type TestSuiteBuilder struct {
	name          string
	tests         []TestCase
	parserFactory ParserFactory
	config        *TestConfig
}

// TestCase is a standard test case definition.
type TestCase struct {
	Name      string
	Source    string
	Validator ValidationFunc
	Skip      bool
	Only      bool
	Tags      []string
}

// NewTestSuiteBuilder creates a test suite builder.
func NewTestSuiteBuilder(name string, parserFactory ParserFactory) *TestSuiteBuilder {
	return &TestSuiteBuilder{
		name:          name,
		parserFactory: parserFactory,
		config: &TestConfig{
			StrictMode:  true,
			ValidateAST: true,
		},
	}
}

// WithConfig overrides the suite's test configuration.
func (b *TestSuiteBuilder) WithConfig(config *TestConfig) *TestSuiteBuilder {
	b.config = config
	return b
}

// Add appends a test case to the suite.
func (b *TestSuiteBuilder) Add(testCase TestCase) *TestSuiteBuilder {
	b.tests = append(b.tests, testCase)
	return b
}

// AddSimple adds a basic test case.
func (b *TestSuiteBuilder) AddSimple(name, source string, validator ValidationFunc) *TestSuiteBuilder {
	return b.Add(TestCase{
		Name:      name,
		Source:    source,
		Validator: validator,
	})
}

// AddStringAssignment adds a string assignment test case.
func (b *TestSuiteBuilder) AddStringAssignment(name, varName, value, raw string) *TestSuiteBuilder {
	return b.AddSimple(name,
		"<?php "+varName+" = "+raw+"; ?>",
		ValidateStringAssignment(varName, value, raw))
}

// AddVariableAssignment adds a variable assignment test case.
func (b *TestSuiteBuilder) AddVariableAssignment(name, varName, valueSource string) *TestSuiteBuilder {
	return b.AddSimple(name,
		"<?php "+varName+" = "+valueSource+"; ?>",
		ValidateVariable(varName))
}

// AddEcho adds an echo statement test case.
func (b *TestSuiteBuilder) AddEcho(name string, args []string, validators ...func(ast.Node, *testing.T)) *TestSuiteBuilder {
	argsStr := ""
	for i, arg := range args {
		if i > 0 {
			argsStr += ", "
		}
		argsStr += arg
	}
	
	return b.AddSimple(name,
		"<?php echo "+argsStr+"; ?>",
		ValidateEcho(len(args), validators...))
}

// AddFunction adds a function declaration test case.
func (b *TestSuiteBuilder) AddFunction(name, funcName string, params []string, validators ...func(*ast.FunctionDeclaration, *testing.T)) *TestSuiteBuilder {
	paramsStr := ""
	for i, param := range params {
		if i > 0 {
			paramsStr += ", "
		}
		paramsStr += param
	}
	
	return b.AddSimple(name,
		"<?php function "+funcName+"("+paramsStr+") {} ?>",
		ValidateFunction(funcName, len(params), validators...))
}

// AddClass adds a class declaration test case.
func (b *TestSuiteBuilder) AddClass(name, className, classBody string, validators ...func(*ast.ClassExpression, *testing.T)) *TestSuiteBuilder {
	return b.AddSimple(name,
		"<?php class "+className+" { "+classBody+" } ?>",
		ValidateClass(className, validators...))
}

// AddControlFlow adds a control-flow statement test case.
func (b *TestSuiteBuilder) AddControlFlow(name, flowType, source string, validators ...func(ast.Statement, *testing.T)) *TestSuiteBuilder {
	return b.AddSimple(name,
		"<?php "+source+" ?>",
		ValidateControlFlow(flowType, validators...))
}

// Skip marks a test case by name to be skipped.
func (b *TestSuiteBuilder) Skip(testName string) *TestSuiteBuilder {
	for i, test := range b.tests {
		if test.Name == testName {
			b.tests[i].Skip = true
			break
		}
	}
	return b
}

// Only marks a test case by name as the sole test to run.
func (b *TestSuiteBuilder) Only(testName string) *TestSuiteBuilder {
	for i, test := range b.tests {
		if test.Name == testName {
			b.tests[i].Only = true
		}
	}
	return b
}

// Run executes the suite.
func (b *TestSuiteBuilder) Run(t *testing.T) {
	// check whether any test is marked Only
	hasOnly := false
	for _, test := range b.tests {
		if test.Only {
			hasOnly = true
			break
		}
	}
	
	builder := NewParserTestBuilder(b.parserFactory).WithConfig(b.config)
	
	for _, test := range b.tests {
		// if any test is marked Only, run only those
		if hasOnly && !test.Only {
			continue
		}
		
		// skip tests marked Skip
		if test.Skip {
			t.Run(test.Name, func(t *testing.T) {
				t.Skip("Test marked as skip")
			})
			continue
		}
		
		t.Run(test.Name, func(t *testing.T) {
			builder.Test(t, test.Source, test.Validator)
		})
	}
}

// BenchmarkBuilder builds a named suite of parser benchmarks.
type BenchmarkBuilder struct {
	name          string
	tests         []BenchmarkCase
	parserFactory ParserFactory
}

// BenchmarkCase is a benchmark case definition.
type BenchmarkCase struct {
	Name   string
	Source string
}

// NewBenchmarkBuilder creates a benchmark suite builder.
func NewBenchmarkBuilder(name string, parserFactory ParserFactory) *BenchmarkBuilder {
	return &BenchmarkBuilder{
		name:          name,
		parserFactory: parserFactory,
	}
}

// Add appends a benchmark case to the suite.
func (b *BenchmarkBuilder) Add(name, source string) *BenchmarkBuilder {
	b.tests = append(b.tests, BenchmarkCase{Name: name, Source: source})
	return b
}

// Run executes the benchmark suite.
func (b *BenchmarkBuilder) Run(bench *testing.B) {
	for _, test := range b.tests {
		bench.Run(test.Name, func(innerB *testing.B) {
			innerB.ResetTimer()
			for i := 0; i < innerB.N; i++ {
				ctx := &TestContext{
					T:      &testing.T{}, // scratch *testing.T; benchmarks don't assert
					Lexer:  lexer.New(test.Source),
					Config: &TestConfig{StrictMode: false, ValidateAST: false},
				}
				ctx.Parser = b.parserFactory(ctx.Lexer)
				ctx.Program = ctx.Parser.ParseProgram()
			}
		})
	}
}