package parser

import (
	"testing"

	"github.com/heyrt/phpcore/parser/testutils"
)

// TestRefactored_ArrayExpressions exercises array expression parsing
func TestRefactored_ArrayExpressions(t *testing.T) {
	suite := testutils.NewTestSuiteBuilder("ArrayExpressions", createParserFactory())

	// basic array
	suite.AddSimple("basic_array",
		`<?php $arr = [1, 2, 3]; ?>`,
		testutils.ValidateArrayAssignment("$arr", []testutils.ArrayElement{
			{Value: "1", IsNumeric: true},
			{Value: "2", IsNumeric: true},
			{Value: "3", IsNumeric: true},
		}))

	// associative array with keys
	suite.AddSimple("associative_array",
		`<?php $arr = ["key1" => "value1", "key2" => "value2"]; ?>`,
		testutils.ValidateArrayAssignment("$arr", []testutils.ArrayElement{
			{Key: `"key1"`, Value: `"value1"`},
			{Key: `"key2"`, Value: `"value2"`},
		}))

	// mixed array
	suite.AddSimple("mixed_array",
		`<?php $arr = [1, "key" => "value", 2]; ?>`,
		testutils.ValidateArrayAssignment("$arr", []testutils.ArrayElement{
			{Value: "1", IsNumeric: true},
			{Key: `"key"`, Value: `"value"`},
			{Value: "2", IsNumeric: true},
		}))

	// array with a trailing comma
	suite.AddSimple("array_trailing_comma",
		`<?php $arr = [1, 2, 3,]; ?>`,
		testutils.ValidateArrayAssignment("$arr", []testutils.ArrayElement{
			{Value: "1", IsNumeric: true},
			{Value: "2", IsNumeric: true},
			{Value: "3", IsNumeric: true},
		}))

	// array() function-call syntax
	suite.AddSimple("array_function_syntax",
		`<?php $arr = array(1, 2, 3); ?>`,
		testutils.ValidateArrayAssignment("$arr", []testutils.ArrayElement{
			{Value: "1", IsNumeric: true},
			{Value: "2", IsNumeric: true},
			{Value: "3", IsNumeric: true},
		}))

	suite.Run(t)
}

// TestRefactored_StringLiterals exercises string literal parsing
func TestRefactored_StringLiterals(t *testing.T) {
	suite := testutils.NewTestSuiteBuilder("StringLiterals", createParserFactory())

	// basic string assignment
	suite.AddStringAssignment("basic_string", "$str", "Hello", `"Hello"`)

	// single-quoted string
	suite.AddStringAssignment("single_quote_string", "$str", "World", `'World'`)

	// empty string
	suite.AddStringAssignment("empty_string", "$str", "", `""`)

	suite.Run(t)
}

// TestRefactored_HeredocNowdoc exercises heredoc and nowdoc parsing
func TestRefactored_HeredocNowdoc(t *testing.T) {
	suite := testutils.NewTestSuiteBuilder("HeredocNowdoc", createParserFactory())

	// simple heredoc - trailing newline fixed up
	suite.AddSimple("simple_heredoc",
		`<?php $str = <<<EOD
Hello World
EOD; ?>`,
		testutils.ValidateHeredocAssignment("$str", "Hello World\n"))

	// simple nowdoc - trailing newline fixed up
	suite.AddSimple("simple_nowdoc",
		`<?php $str = <<<'EOD'
Hello World
EOD; ?>`,
		testutils.ValidateNowdocAssignment("$str", "Hello World\n"))

	// simple heredoc with no interpolation
	suite.AddSimple("heredoc_no_interpolation",
		`<?php $str = <<<EOD
Hello John
EOD; ?>`,
		testutils.ValidateHeredocAssignment("$str", "Hello John\n"))

	suite.Run(t)
}

// TestRefactored_ArrayAccess exercises array access parsing
func TestRefactored_ArrayAccess(t *testing.T) {
	suite := testutils.NewTestSuiteBuilder("ArrayAccess", createParserFactory())

	// array element access
	suite.AddSimple("array_element_access",
		`<?php $value = $arr[0]; ?>`,
		testutils.ValidateArrayAccess("$value", "$arr", "0"))

	// associative array access
	suite.AddSimple("associative_array_access",
		`<?php $value = $arr["key"]; ?>`,
		testutils.ValidateArrayAccess("$value", "$arr", `"key"`))

	// multi-dimensional array access
	suite.AddSimple("multi_dimensional_access",
		`<?php $value = $arr[0][1]; ?>`,
		testutils.ValidateChainedArrayAccess("$value", "$arr", []string{"0", "1"}))

	suite.Run(t)
}
