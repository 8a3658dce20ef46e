package testutils

import (
	"testing"
	
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/heyrt/phpcore/ast"
)

// ASTAssertions provides AST-specific assertion helpers.
type ASTAssertions struct {
	t *testing.T
}

// NewASTAssertions builds an AST assertion helper.
func NewASTAssertions(t *testing.T) *ASTAssertions {
	return &ASTAssertions{t: t}
}

// AssertVariable asserts a node is a Variable.
func (a *ASTAssertions) AssertVariable(node ast.Node, expectedName string) *ast.Variable {
	a.t.Helper()
	variable, ok := node.(*ast.Variable)
	require.True(a.t, ok, "Node should be Variable, got %T", node)
	assert.Equal(a.t, expectedName, variable.Name, "Variable name mismatch")
	return variable
}

// AssertStringLiteral asserts a node is a StringLiteral.
func (a *ASTAssertions) AssertStringLiteral(node ast.Node, expectedValue, expectedRaw string) *ast.StringLiteral {
	a.t.Helper()
	stringLit, ok := node.(*ast.StringLiteral)
	require.True(a.t, ok, "Node should be StringLiteral, got %T", node)
	assert.Equal(a.t, expectedValue, stringLit.Value, "String value mismatch")
	assert.Equal(a.t, expectedRaw, stringLit.Raw, "String raw mismatch")
	return stringLit
}

// AssertNumberLiteral asserts a node is a NumberLiteral.
func (a *ASTAssertions) AssertNumberLiteral(node ast.Node, expectedValue string) *ast.NumberLiteral {
	a.t.Helper()
	numLit, ok := node.(*ast.NumberLiteral)
	require.True(a.t, ok, "Node should be NumberLiteral, got %T", node)
	assert.Equal(a.t, expectedValue, numLit.Value, "Number value mismatch")
	return numLit
}

// AssertAssignment asserts a node is an AssignmentExpression.
func (a *ASTAssertions) AssertAssignment(node ast.Node, expectedOperator string) *ast.AssignmentExpression {
	a.t.Helper()
	assignment, ok := node.(*ast.AssignmentExpression)
	require.True(a.t, ok, "Node should be AssignmentExpression, got %T", node)
	assert.Equal(a.t, expectedOperator, assignment.Operator, "Assignment operator mismatch")
	return assignment
}

// AssertBinaryExpression asserts a node is a BinaryExpression.
func (a *ASTAssertions) AssertBinaryExpression(node ast.Node, expectedOperator string) *ast.BinaryExpression {
	a.t.Helper()
	binExpr, ok := node.(*ast.BinaryExpression)
	require.True(a.t, ok, "Node should be BinaryExpression, got %T", node)
	assert.Equal(a.t, expectedOperator, binExpr.Operator, "Binary operator mismatch")
	return binExpr
}

// AssertExpressionStatement asserts a statement is an ExpressionStatement.
func (a *ASTAssertions) AssertExpressionStatement(stmt ast.Statement) *ast.ExpressionStatement {
	a.t.Helper()
	exprStmt, ok := stmt.(*ast.ExpressionStatement)
	require.True(a.t, ok, "Statement should be ExpressionStatement, got %T", stmt)
	return exprStmt
}

// AssertEchoStatement asserts a statement is an EchoStatement.
func (a *ASTAssertions) AssertEchoStatement(stmt ast.Statement, expectedArgCount int) *ast.EchoStatement {
	a.t.Helper()
	echoStmt, ok := stmt.(*ast.EchoStatement)
	require.True(a.t, ok, "Statement should be EchoStatement, got %T", stmt)
	assert.Len(a.t, echoStmt.Arguments.Arguments, expectedArgCount, "Echo argument count mismatch")
	return echoStmt
}

// AssertClass asserts a node is a ClassExpression.
func (a *ASTAssertions) AssertClass(node ast.Node, expectedName string) *ast.ClassExpression {
	a.t.Helper()
	classExpr, ok := node.(*ast.ClassExpression)
	require.True(a.t, ok, "Node should be ClassExpression, got %T", node)
	
	nameIdent, ok := classExpr.Name.(*ast.IdentifierNode)
	require.True(a.t, ok, "Class name should be IdentifierNode, got %T", classExpr.Name)
	assert.Equal(a.t, expectedName, nameIdent.Name, "Class name mismatch")
	return classExpr
}

// AssertIdentifier asserts a node is an IdentifierNode.
func (a *ASTAssertions) AssertIdentifier(node ast.Node, expectedName string) *ast.IdentifierNode {
	a.t.Helper()
	ident, ok := node.(*ast.IdentifierNode)
	require.True(a.t, ok, "Node should be IdentifierNode, got %T", node)
	assert.Equal(a.t, expectedName, ident.Name, "Identifier name mismatch")
	return ident
}

// AssertProgramBody asserts the program body has the expected length.
func (a *ASTAssertions) AssertProgramBody(program *ast.Program, expectedLength int) []ast.Statement {
	a.t.Helper()
	require.NotNil(a.t, program, "Program should not be nil")
	assert.Len(a.t, program.Body, expectedLength, "Program body length mismatch")
	return program.Body
}

// ValidationFunc is a test-context validation function.
type ValidationFunc func(*TestContext)

// ValidateVariable builds a validator for a simple variable assignment.
func ValidateVariable(name string) ValidationFunc {
	return func(ctx *TestContext) {
		assertions := NewASTAssertions(ctx.T)
		body := assertions.AssertProgramBody(ctx.Program, 1)
		
		exprStmt := assertions.AssertExpressionStatement(body[0])
		assignment := assertions.AssertAssignment(exprStmt.Expression, "=")
		assertions.AssertVariable(assignment.Left, name)
	}
}

// ValidateStringAssignment builds a validator for a string assignment.
func ValidateStringAssignment(varName, expectedValue, expectedRaw string) ValidationFunc {
	return func(ctx *TestContext) {
		assertions := NewASTAssertions(ctx.T)
		body := assertions.AssertProgramBody(ctx.Program, 1)
		
		exprStmt := assertions.AssertExpressionStatement(body[0])
		assignment := assertions.AssertAssignment(exprStmt.Expression, "=")
		assertions.AssertVariable(assignment.Left, varName)
		assertions.AssertStringLiteral(assignment.Right, expectedValue, expectedRaw)
	}
}