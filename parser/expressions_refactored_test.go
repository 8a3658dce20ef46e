package parser

import (
	"testing"
	
	"github.com/heyrt/phpcore/parser/testutils"
)

// TestRefactored_UnaryExpressions exercises unary expression parsing
func TestRefactored_UnaryExpressions(t *testing.T) {
	suite := testutils.NewTestSuiteBuilder("UnaryExpressions", createParserFactory())
	
	// prefix increment
	suite.AddSimple("prefix_increment",
		`<?php $result = ++$i; ?>`,
		testutils.ValidatePrefixExpression("$result", "$i", "++"))
	
	// postfix increment
	suite.AddSimple("postfix_increment",
		`<?php $result = $i++; ?>`,
		testutils.ValidatePostfixAssignment("$result", "$i", "++"))
	
	// prefix decrement
	suite.AddSimple("prefix_decrement",
		`<?php $result = --$i; ?>`,
		testutils.ValidatePrefixExpression("$result", "$i", "--"))
	
	// postfix decrement
	suite.AddSimple("postfix_decrement",
		`<?php $result = $i--; ?>`,
		testutils.ValidatePostfixAssignment("$result", "$i", "--"))
	
	// unary plus
	suite.AddSimple("unary_plus",
		`<?php $result = +$value; ?>`,
		testutils.ValidatePrefixExpression("$result", "$value", "+"))
	
	// unary minus
	suite.AddSimple("unary_minus",
		`<?php $result = -$value; ?>`,
		testutils.ValidatePrefixExpression("$result", "$value", "-"))
	
	// logical not
	suite.AddSimple("logical_not",
		`<?php $result = !$flag; ?>`,
		testutils.ValidatePrefixExpression("$result", "$flag", "!"))
	
	// bitwise not
	suite.AddSimple("bitwise_not",
		`<?php $result = ~$value; ?>`,
		testutils.ValidatePrefixExpression("$result", "$value", "~"))
	
	suite.Run(t)
}

// TestRefactored_BinaryExpressions exercises binary expression parsing
func TestRefactored_BinaryExpressions(t *testing.T) {
	suite := testutils.NewTestSuiteBuilder("BinaryExpressions", createParserFactory())
	
	// arithmetic operators
	suite.AddSimple("addition",
		`<?php $result = $a + $b; ?>`,
		testutils.ValidateBinaryAssignment("$result", "$a", "+", "$b"))
	
	suite.AddSimple("subtraction", 
		`<?php $result = $a - $b; ?>`,
		testutils.ValidateBinaryAssignment("$result", "$a", "-", "$b"))
	
	suite.AddSimple("multiplication",
		`<?php $result = $a * $b; ?>`,
		testutils.ValidateBinaryAssignment("$result", "$a", "*", "$b"))
	
	suite.AddSimple("division",
		`<?php $result = $a / $b; ?>`,
		testutils.ValidateBinaryAssignment("$result", "$a", "/", "$b"))
	
	suite.AddSimple("modulus",
		`<?php $result = $a % $b; ?>`,
		testutils.ValidateBinaryAssignment("$result", "$a", "%", "$b"))
	
	suite.AddSimple("power",
		`<?php $result = $a ** $b; ?>`,
		testutils.ValidateBinaryAssignment("$result", "$a", "**", "$b"))
	
	// comparison operators
	suite.AddSimple("equal",
		`<?php $result = $a == $b; ?>`,
		testutils.ValidateBinaryAssignment("$result", "$a", "==", "$b"))
	
	suite.AddSimple("not_equal",
		`<?php $result = $a != $b; ?>`,
		testutils.ValidateBinaryAssignment("$result", "$a", "!=", "$b"))
	
	suite.AddSimple("identical",
		`<?php $result = $a === $b; ?>`,
		testutils.ValidateBinaryAssignment("$result", "$a", "===", "$b"))
	
	suite.AddSimple("not_identical",
		`<?php $result = $a !== $b; ?>`,
		testutils.ValidateBinaryAssignment("$result", "$a", "!==", "$b"))
	
	suite.AddSimple("less_than",
		`<?php $result = $a < $b; ?>`,
		testutils.ValidateBinaryAssignment("$result", "$a", "<", "$b"))
	
	suite.AddSimple("greater_than",
		`<?php $result = $a > $b; ?>`,
		testutils.ValidateBinaryAssignment("$result", "$a", ">", "$b"))
	
	suite.AddSimple("less_equal",
		`<?php $result = $a <= $b; ?>`,
		testutils.ValidateBinaryAssignment("$result", "$a", "<=", "$b"))
	
	suite.AddSimple("greater_equal",
		`<?php $result = $a >= $b; ?>`,
		testutils.ValidateBinaryAssignment("$result", "$a", ">=", "$b"))
	
	suite.AddSimple("spaceship",
		`<?php $result = $a <=> $b; ?>`,
		testutils.ValidateBinaryAssignment("$result", "$a", "<=>", "$b"))
	
	// logical operators
	suite.AddSimple("logical_and",
		`<?php $result = $a && $b; ?>`,
		testutils.ValidateBinaryAssignment("$result", "$a", "&&", "$b"))
	
	suite.AddSimple("logical_or",
		`<?php $result = $a || $b; ?>`,
		testutils.ValidateBinaryAssignment("$result", "$a", "||", "$b"))
	
	// bitwise operators
	suite.AddSimple("bitwise_and",
		`<?php $result = $a & $b; ?>`,
		testutils.ValidateBinaryAssignment("$result", "$a", "&", "$b"))
	
	suite.AddSimple("bitwise_or",
		`<?php $result = $a | $b; ?>`,
		testutils.ValidateBinaryAssignment("$result", "$a", "|", "$b"))
	
	suite.AddSimple("bitwise_xor",
		`<?php $result = $a ^ $b; ?>`,
		testutils.ValidateBinaryAssignment("$result", "$a", "^", "$b"))
	
	suite.AddSimple("left_shift",
		`<?php $result = $a << $b; ?>`,
		testutils.ValidateBinaryAssignment("$result", "$a", "<<", "$b"))
	
	suite.AddSimple("right_shift",
		`<?php $result = $a >> $b; ?>`,
		testutils.ValidateBinaryAssignment("$result", "$a", ">>", "$b"))
	
	// string concatenation
	suite.AddSimple("string_concatenation",
		`<?php $result = $a . $b; ?>`,
		testutils.ValidateBinaryAssignment("$result", "$a", ".", "$b"))
	
	// instanceof
	suite.AddSimple("instanceof",
		`<?php $result = $obj instanceof MyClass; ?>`,
		testutils.ValidateInstanceofExpression("$result", "$obj", "MyClass"))
	
	suite.Run(t)
}

// TestRefactored_TernaryExpressions exercises ternary expression parsing
func TestRefactored_TernaryExpressions(t *testing.T) {
	suite := testutils.NewTestSuiteBuilder("TernaryExpressions", createParserFactory())
	
	// basic ternary expression
	suite.AddSimple("basic_ternary",
		`<?php $result = $condition ? $true_val : $false_val; ?>`,
		testutils.ValidateTernaryExpression("$result", "$condition", "$true_val", "$false_val"))
	
	// null coalescing operator
	suite.AddSimple("null_coalescing",
		`<?php $result = $value ?? $default; ?>`,
		testutils.ValidateCoalesceExpression("$result", "$value", "$default"))
	
	// null coalescing assignment operator
	suite.AddSimple("null_coalescing_assignment",
		`<?php $value ??= $default; ?>`,
		testutils.ValidateAssignmentOperation("$value", "??=", "$default"))
	
	suite.Run(t)
}

// TestRefactored_AssignmentExpressions exercises assignment expression parsing
func TestRefactored_AssignmentExpressions(t *testing.T) {
	suite := testutils.NewTestSuiteBuilder("AssignmentExpressions", createParserFactory())
	
	// compound assignment operators
	suite.AddSimple("addition_assignment",
		`<?php $a += $b; ?>`,
		testutils.ValidateAssignmentOperation("$a", "+=", "$b"))
	
	suite.AddSimple("subtraction_assignment",
		`<?php $a -= $b; ?>`,
		testutils.ValidateAssignmentOperation("$a", "-=", "$b"))
	
	suite.AddSimple("multiplication_assignment",
		`<?php $a *= $b; ?>`,
		testutils.ValidateAssignmentOperation("$a", "*=", "$b"))
	
	suite.AddSimple("division_assignment",
		`<?php $a /= $b; ?>`,
		testutils.ValidateAssignmentOperation("$a", "/=", "$b"))
	
	suite.AddSimple("modulus_assignment",
		`<?php $a %= $b; ?>`,
		testutils.ValidateAssignmentOperation("$a", "%=", "$b"))
	
	suite.AddSimple("power_assignment",
		`<?php $a **= $b; ?>`,
		testutils.ValidateAssignmentOperation("$a", "**=", "$b"))
	
	suite.AddSimple("concatenation_assignment",
		`<?php $a .= $b; ?>`,
		testutils.ValidateAssignmentOperation("$a", ".=", "$b"))
	
	suite.AddSimple("bitwise_and_assignment",
		`<?php $a &= $b; ?>`,
		testutils.ValidateAssignmentOperation("$a", "&=", "$b"))
	
	suite.AddSimple("bitwise_or_assignment",
		`<?php $a |= $b; ?>`,
		testutils.ValidateAssignmentOperation("$a", "|=", "$b"))
	
	suite.AddSimple("bitwise_xor_assignment",
		`<?php $a ^= $b; ?>`,
		testutils.ValidateAssignmentOperation("$a", "^=", "$b"))
	
	suite.AddSimple("left_shift_assignment",
		`<?php $a <<= $b; ?>`,
		testutils.ValidateAssignmentOperation("$a", "<<=", "$b"))
	
	suite.AddSimple("right_shift_assignment",
		`<?php $a >>= $b; ?>`,
		testutils.ValidateAssignmentOperation("$a", ">>=", "$b"))
	
	suite.Run(t)
}