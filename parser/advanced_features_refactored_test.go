package parser

import (
	"testing"

	"github.com/heyrt/phpcore/parser/testutils"
)

// TestRefactored_FunctionDeclarations exercises function declaration parsing
func TestRefactored_FunctionDeclarations(t *testing.T) {
	suite := testutils.NewTestSuiteBuilder("FunctionDeclarations", createParserFactory())

	// basic function declaration
	suite.AddSimple("basic_function",
		`<?php function getName() { return "test"; } ?>`,
		testutils.ValidateFunctionDeclaration("getName", []string{}, "",
			testutils.ValidateReturnStatement(`"test"`)))

	// function with parameters
	suite.AddSimple("function_with_parameters",
		`<?php function greet($name, $age) { echo $name; } ?>`,
		testutils.ValidateFunctionWithParameters("greet", []string{"$name", "$age"},
			testutils.ValidateEchoVariable("$name")))

	// function with a return type
	suite.AddSimple("function_with_return_type",
		`<?php function calculate(): int { return 42; } ?>`,
		testutils.ValidateFunctionWithReturnType("calculate", "int",
			testutils.ValidateReturnStatement("42")))

	suite.Run(t)
}

// TestRefactored_AnonymousFunctions exercises anonymous function parsing
func TestRefactored_AnonymousFunctions(t *testing.T) {
	suite := testutils.NewTestSuiteBuilder("AnonymousFunctions", createParserFactory())

	// basic anonymous function
	suite.AddSimple("basic_anonymous_function",
		`<?php $fn = function() { return "hello"; }; ?>`,
		testutils.ValidateAnonymousFunctionAssignment("$fn",
			testutils.ValidateReturnStatement(`"hello"`)))

	// anonymous function with parameters
	suite.AddSimple("anonymous_function_with_params",
		`<?php $fn = function($x, $y) { return $x + $y; }; ?>`,
		testutils.ValidateAnonymousFunctionWithParams("$fn", []string{"$x", "$y"},
			testutils.ValidateReturnBinaryExpression("$x", "+", "$y")))

	// closure using the "use" keyword
	suite.AddSimple("closure_with_use",
		`<?php $fn = function($x) use ($y) { return $x + $y; }; ?>`,
		testutils.ValidateClosureWithUse("$fn", []string{"$x"}, []string{"$y"},
			testutils.ValidateReturnBinaryExpression("$x", "+", "$y")))

	suite.Run(t)
}

// TestRefactored_ArrowFunctions exercises arrow function parsing
func TestRefactored_ArrowFunctions(t *testing.T) {
	suite := testutils.NewTestSuiteBuilder("ArrowFunctions", createParserFactory())

	// basic arrow function - simplified check, only verifies basic structure
	suite.AddSimple("basic_arrow_function",
		`<?php $fn = fn($x) => $x * 2; ?>`,
		testutils.ValidateArrowFunctionAssignment("$fn", []string{"$x"}, nil))

	// arrow function with multiple parameters
	suite.AddSimple("arrow_function_multiple_params",
		`<?php $fn = fn($x, $y) => $x + $y; ?>`,
		testutils.ValidateArrowFunctionAssignment("$fn", []string{"$x", "$y"}, nil))

	suite.Run(t)
}

// TestRefactored_ClassDeclarations exercises class declaration parsing
func TestRefactored_ClassDeclarations(t *testing.T) {
	suite := testutils.NewTestSuiteBuilder("ClassDeclarations", createParserFactory())

	// basic class declaration - simplified to an expression statement
	suite.AddSimple("basic_class",
		`<?php class User { public $name; } ?>`,
		testutils.ValidateClassInExpressionStatement("User"))

	// final class
	suite.AddSimple("final_class",
		`<?php final class Config { } ?>`,
		testutils.ValidateFinalClassInExpressionStatement("Config"))

	// abstract class
	suite.AddSimple("abstract_class",
		`<?php abstract class BaseController { } ?>`,
		testutils.ValidateAbstractClassInExpressionStatement("BaseController"))

	suite.Run(t)
}

// TestRefactored_StaticAccess exercises static access parsing
func TestRefactored_StaticAccess(t *testing.T) {
	suite := testutils.NewTestSuiteBuilder("StaticAccess", createParserFactory())

	// static property access
	suite.AddSimple("static_property_access",
		`<?php $value = User::$count; ?>`,
		testutils.ValidateStaticPropertyAccess("$value", "User", "$count"))

	// static method call
	suite.AddSimple("static_method_call",
		`<?php $result = Math::abs(-5); ?>`,
		testutils.ValidateStaticMethodCall("$result", "Math", "abs", []string{"-5"}))

	// static constant access
	suite.AddSimple("static_constant_access",
		`<?php $value = Status::ACTIVE; ?>`,
		testutils.ValidateStaticConstantAccess("$value", "Status", "ACTIVE"))

	suite.Run(t)
}
