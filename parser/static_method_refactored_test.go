package parser

import (
	"testing"
	
	"github.com/heyrt/phpcore/parser/testutils"
)

// TestRefactored_StaticMethods exercises static method parsing
func TestRefactored_StaticMethods(t *testing.T) {
	suite := testutils.NewTestSuiteBuilder("StaticMethods", createParserFactory())
	
	// basic static method
	suite.AddSimple("static_public_function",
		`<?php
class MyClass {
    static public function fromArray($array) {
        return 1;
    }
}`,
		testutils.ValidateClass("MyClass",
			testutils.ValidateClassMethod("fromArray", "public")))
	
	// modifiers in a different order
	suite.AddSimple("public_static_function",
		`<?php
class MyClass {
    public static function create() {
        return new self();
    }
}`,
		testutils.ValidateClass("MyClass",
			testutils.ValidateClassMethod("create", "public")))
	
	// private static method
	suite.AddSimple("private_static_function",
		`<?php
class MyClass {
    private static function validateInput($data) {
        return true;
    }
}`,
		testutils.ValidateClass("MyClass",
			testutils.ValidateClassMethod("validateInput", "private")))
	
	// protected static method
	suite.AddSimple("protected_static_function",
		`<?php
class MyClass {
    protected static function processData($data) {
        return $data;
    }
}`,
		testutils.ValidateClass("MyClass",
			testutils.ValidateClassMethod("processData", "protected")))
	
	// static method with parameters
	suite.AddSimple("static_method_with_parameters",
		`<?php
class Calculator {
    public static function add($a, $b, $c = 0) {
        return $a + $b + $c;
    }
}`,
		testutils.ValidateClass("Calculator",
			testutils.ValidateClassMethod("add", "public")))
	
	// static method with a return type
	suite.AddSimple("static_method_with_return_type",
		`<?php
class Factory {
    public static function createInstance(): self {
        return new self();
    }
}`,
		testutils.ValidateClass("Factory",
			testutils.ValidateClassMethod("createInstance", "public")))
			
	// final static method
	suite.AddSimple("final_static_method",
		`<?php
class BaseClass {
    final public static function getInstance() {
        return new static();
    }
}`,
		testutils.ValidateClass("BaseClass",
			testutils.ValidateClassMethod("getInstance", "public")))
	
	suite.Run(t)
}