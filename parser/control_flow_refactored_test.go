package parser

import (
	"testing"

	"github.com/heyrt/phpcore/parser/testutils"
)

// TestRefactored_ControlFlowStatements exercises control-flow statement parsing
func TestRefactored_ControlFlowStatements(t *testing.T) {
	suite := testutils.NewTestSuiteBuilder("ControlFlowStatements", createParserFactory())

	// if statement
	suite.AddSimple("if_statement",
		`<?php if ($x > 5) { echo "big"; } ?>`,
		testutils.ValidateIfStatement(
			testutils.ValidateBinaryExpression("$x", ">", "5"),
			testutils.ValidateEchoArgs([]string{`"big"`})))

	// if-else statement
	suite.AddSimple("if_else_statement",
		`<?php if ($x > 5) { echo "big"; } else { echo "small"; } ?>`,
		testutils.ValidateIfElseStatement(
			testutils.ValidateBinaryExpression("$x", ">", "5"),
			testutils.ValidateEchoArgs([]string{`"big"`}),
			testutils.ValidateEchoArgs([]string{`"small"`})))

	// while statement
	suite.AddSimple("while_statement",
		`<?php while ($i < 10) { $i++; } ?>`,
		testutils.ValidateWhileStatement(
			testutils.ValidateBinaryExpression("$i", "<", "10"),
			testutils.ValidatePostfixExpression("$i", "++")))

	// for statement
	suite.AddSimple("for_statement",
		`<?php for ($i = 0; $i < 10; $i++) { echo $i; } ?>`,
		testutils.ValidateForStatement(
			testutils.ValidateAssignmentExpression("$i", "0"),
			testutils.ValidateBinaryExpression("$i", "<", "10"),
			testutils.ValidatePostfixExpression("$i", "++"),
			testutils.ValidateEchoVariable("$i")))

	suite.Run(t)
}

// TestRefactored_AlternativeSyntax exercises alternative-syntax control-flow parsing
func TestRefactored_AlternativeSyntax(t *testing.T) {
	suite := testutils.NewTestSuiteBuilder("AlternativeSyntax", createParserFactory())

	// alternative if syntax
	suite.AddSimple("alternative_if_statement",
		`<?php if ($x > 0): echo "positive"; endif; ?>`,
		testutils.ValidateIfStatement(
			testutils.ValidateBinaryExpression("$x", ">", "0"),
			testutils.ValidateEchoArgs([]string{`"positive"`})))

	// alternative while syntax
	suite.AddSimple("alternative_while_statement",
		`<?php while ($i < 5): $i++; endwhile; ?>`,
		testutils.ValidateWhileStatement(
			testutils.ValidateBinaryExpression("$i", "<", "5"),
			testutils.ValidatePostfixExpression("$i", "++")))

	// alternative for syntax
	suite.AddSimple("alternative_for_statement",
		`<?php for ($i = 0; $i < 3; $i++): echo $i; endfor; ?>`,
		testutils.ValidateForStatement(
			testutils.ValidateAssignmentExpression("$i", "0"),
			testutils.ValidateBinaryExpression("$i", "<", "3"),
			testutils.ValidatePostfixExpression("$i", "++"),
			testutils.ValidateEchoVariable("$i")))

	// alternative foreach syntax
	suite.AddSimple("alternative_foreach_statement",
		`<?php foreach ($items as $item): echo $item; endforeach; ?>`,
		testutils.ValidateForeachStatement("$items", "", "$item",
			testutils.ValidateEchoVariable("$item")))

	suite.Run(t)
}

// TestRefactored_SimpleControlFlow exercises simplified control-flow parsing
func TestRefactored_SimpleControlFlow(t *testing.T) {
	suite := testutils.NewTestSuiteBuilder("SimpleControlFlow", createParserFactory())

	// basic if
	suite.AddSimple("simple_if",
		`<?php if ($x) echo "true"; ?>`,
		testutils.ValidateIfStatement(
			testutils.ValidateVariableExpression("$x"),
			testutils.ValidateEchoArgs([]string{`"true"`})))

	// basic while
	suite.AddSimple("simple_while",
		`<?php while ($i--) doSomething(); ?>`,
		testutils.ValidateWhileStatement(
			testutils.ValidatePostfixExpression("$i", "--"),
			testutils.ValidateFunctionCall("doSomething")))

	suite.Run(t)
}
