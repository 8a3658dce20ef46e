package testutils

import (
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/heyrt/phpcore/ast"
)

// TypedParam represents a typed parameter.
type TypedParam struct {
	Name string
	Type string
}

// MatchArm represents one arm of a match expression.
type MatchArm struct {
	Condition  string
	Conditions []string // used for multi-condition arms
	Value      string
	IsDefault  bool
}

// EnumCase represents an enum case.
type EnumCase struct {
	Name  string
	Value string
}

// ValidateFunctionDeclaration validates a function declaration.
func ValidateFunctionDeclaration(funcName string, params []string, returnType string, bodyValidator ValidationFunc) ValidationFunc {
	return func(ctx *TestContext) {
		assertions := NewASTAssertions(ctx.T)
		body := assertions.AssertProgramBody(ctx.Program, 1)
		
		funcDecl, ok := body[0].(*ast.FunctionDeclaration)
		require.True(ctx.T, ok, "Statement should be FunctionDeclaration, got %T", body[0])
		
		// validate the function name
		if nameIdent, ok := funcDecl.Name.(*ast.IdentifierNode); ok {
			assert.Equal(ctx.T, funcName, nameIdent.Name)
		}
		
		// validate the parameters
		if len(params) > 0 {
			require.NotNil(ctx.T, funcDecl.Parameters, "Function should have parameters")
			assert.Len(ctx.T, funcDecl.Parameters.Parameters, len(params))
		}
		
		// validate the function body
		if bodyValidator != nil && len(funcDecl.Body) > 0 {
			funcCtx := &TestContext{T: ctx.T, Program: &ast.Program{Body: funcDecl.Body}}
			bodyValidator(funcCtx)
		}
	}
}

// ValidateFunctionWithParameters validates a function with parameters.
func ValidateFunctionWithParameters(funcName string, params []string, bodyValidator ValidationFunc) ValidationFunc {
	return ValidateFunctionDeclaration(funcName, params, "", bodyValidator)
}

// ValidateFunctionWithReturnType validates a function with a return type.
func ValidateFunctionWithReturnType(funcName string, returnType string, bodyValidator ValidationFunc) ValidationFunc {
	return ValidateFunctionDeclaration(funcName, []string{}, returnType, bodyValidator)
}

// ValidateTypedFunction validates a function with typed parameters.
func ValidateTypedFunction(funcName string, params []TypedParam, bodyValidator ValidationFunc) ValidationFunc {
	return func(ctx *TestContext) {
		assertions := NewASTAssertions(ctx.T)
		body := assertions.AssertProgramBody(ctx.Program, 1)
		
		funcDecl, ok := body[0].(*ast.FunctionDeclaration)
		require.True(ctx.T, ok, "Statement should be FunctionDeclaration, got %T", body[0])
		
		if nameIdent, ok := funcDecl.Name.(*ast.IdentifierNode); ok {
			assert.Equal(ctx.T, funcName, nameIdent.Name)
		}
		
		if bodyValidator != nil && len(funcDecl.Body) > 0 {
			funcCtx := &TestContext{T: ctx.T, Program: &ast.Program{Body: funcDecl.Body}}
			bodyValidator(funcCtx)
		}
	}
}

// ValidateAnonymousFunctionAssignment validates an anonymous function assignment.
func ValidateAnonymousFunctionAssignment(varName string, bodyValidator ValidationFunc) ValidationFunc {
	return func(ctx *TestContext) {
		assertions := NewASTAssertions(ctx.T)
		body := assertions.AssertProgramBody(ctx.Program, 1)
		
		exprStmt := assertions.AssertExpressionStatement(body[0])
		assignment := assertions.AssertAssignment(exprStmt.Expression, "=")
		
		// validate the left-hand variable
		leftVar, ok := assignment.Left.(*ast.Variable)
		require.True(ctx.T, ok, "Left side should be Variable")
		assert.Equal(ctx.T, varName, leftVar.Name)
		
		// validate the right-hand anonymous function
		anonFunc, ok := assignment.Right.(*ast.AnonymousFunctionExpression)
		require.True(ctx.T, ok, "Right side should be AnonymousFunctionExpression, got %T", assignment.Right)
		
		if bodyValidator != nil && len(anonFunc.Body) > 0 {
			funcCtx := &TestContext{T: ctx.T, Program: &ast.Program{Body: anonFunc.Body}}
			bodyValidator(funcCtx)
		}
	}
}

// ValidateAnonymousFunctionWithParams validates an anonymous function with parameters.
func ValidateAnonymousFunctionWithParams(varName string, params []string, bodyValidator ValidationFunc) ValidationFunc {
	return func(ctx *TestContext) {
		assertions := NewASTAssertions(ctx.T)
		body := assertions.AssertProgramBody(ctx.Program, 1)
		
		exprStmt := assertions.AssertExpressionStatement(body[0])
		assignment := assertions.AssertAssignment(exprStmt.Expression, "=")
		
		leftVar, ok := assignment.Left.(*ast.Variable)
		require.True(ctx.T, ok, "Left side should be Variable")
		assert.Equal(ctx.T, varName, leftVar.Name)
		
		anonFunc, ok := assignment.Right.(*ast.AnonymousFunctionExpression)
		require.True(ctx.T, ok, "Right side should be AnonymousFunctionExpression")
		
		// validate the parameter count
		if anonFunc.Parameters != nil && len(params) > 0 {
			assert.Len(ctx.T, anonFunc.Parameters.Parameters, len(params))
		}
		
		if bodyValidator != nil && len(anonFunc.Body) > 0 {
			funcCtx := &TestContext{T: ctx.T, Program: &ast.Program{Body: anonFunc.Body}}
			bodyValidator(funcCtx)
		}
	}
}

// ValidateClosureWithUse validates a closure with a use clause.
func ValidateClosureWithUse(varName string, params []string, useVars []string, bodyValidator ValidationFunc) ValidationFunc {
	return func(ctx *TestContext) {
		assertions := NewASTAssertions(ctx.T)
		body := assertions.AssertProgramBody(ctx.Program, 1)
		
		exprStmt := assertions.AssertExpressionStatement(body[0])
		assignment := assertions.AssertAssignment(exprStmt.Expression, "=")
		
		leftVar, ok := assignment.Left.(*ast.Variable)
		require.True(ctx.T, ok, "Left side should be Variable")
		assert.Equal(ctx.T, varName, leftVar.Name)
		
		anonFunc, ok := assignment.Right.(*ast.AnonymousFunctionExpression)
		require.True(ctx.T, ok, "Right side should be AnonymousFunctionExpression")
		
		// validate the use-bound variable
		if len(useVars) > 0 {
			assert.Len(ctx.T, anonFunc.UseClause, len(useVars))
		}
		
		if bodyValidator != nil && len(anonFunc.Body) > 0 {
			funcCtx := &TestContext{T: ctx.T, Program: &ast.Program{Body: anonFunc.Body}}
			bodyValidator(funcCtx)
		}
	}
}

// ValidateArrowFunctionAssignment validates an arrow function assignment.
func ValidateArrowFunctionAssignment(varName string, params []string, bodyValidator ValidationFunc) ValidationFunc {
	return func(ctx *TestContext) {
		assertions := NewASTAssertions(ctx.T)
		body := assertions.AssertProgramBody(ctx.Program, 1)
		
		exprStmt := assertions.AssertExpressionStatement(body[0])
		assignment := assertions.AssertAssignment(exprStmt.Expression, "=")
		
		leftVar, ok := assignment.Left.(*ast.Variable)
		require.True(ctx.T, ok, "Left side should be Variable")
		assert.Equal(ctx.T, varName, leftVar.Name)
		
		arrowFunc, ok := assignment.Right.(*ast.ArrowFunctionExpression)
		require.True(ctx.T, ok, "Right side should be ArrowFunctionExpression, got %T", assignment.Right)
		
		// validate the parameter count
		if arrowFunc.Parameters != nil && len(params) > 0 {
			assert.Len(ctx.T, arrowFunc.Parameters.Parameters, len(params))
		}
		
		// validate the arrow function expression (loose)
		if bodyValidator != nil && arrowFunc.Body != nil {
			// an arrow function's body is an expression; validate it loosely for now
			assert.NotNil(ctx.T, arrowFunc.Body, "Arrow function body should not be nil")
		}
	}
}

// ValidateTypedArrowFunction validates a typed arrow function.
func ValidateTypedArrowFunction(varName string, params []TypedParam, returnType string, bodyValidator ValidationFunc) ValidationFunc {
	return func(ctx *TestContext) {
		assertions := NewASTAssertions(ctx.T)
		body := assertions.AssertProgramBody(ctx.Program, 1)
		
		exprStmt := assertions.AssertExpressionStatement(body[0])
		assignment := assertions.AssertAssignment(exprStmt.Expression, "=")
		
		leftVar, ok := assignment.Left.(*ast.Variable)
		require.True(ctx.T, ok, "Left side should be Variable")
		assert.Equal(ctx.T, varName, leftVar.Name)
		
		arrowFunc, ok := assignment.Right.(*ast.ArrowFunctionExpression)
		require.True(ctx.T, ok, "Right side should be ArrowFunctionExpression")
		
		// validate the return type
		if returnType != "" && arrowFunc.ReturnType != nil {
			assert.NotNil(ctx.T, arrowFunc.ReturnType, "Return type should not be nil")
		}
		
		if bodyValidator != nil && arrowFunc.Body != nil {
			// an arrow function's body is an expression; validate it loosely for now
			assert.NotNil(ctx.T, arrowFunc.Body, "Arrow function body should not be nil")
		}
	}
}

// ValidateClassDeclaration validates a class declaration.
func ValidateClassDeclaration(className, parentClass string, interfaces []string, memberValidator ValidationFunc) ValidationFunc {
	return func(ctx *TestContext) {
		assertions := NewASTAssertions(ctx.T)
		body := assertions.AssertProgramBody(ctx.Program, 1)
		
		exprStmt := assertions.AssertExpressionStatement(body[0])
		classDecl, ok := exprStmt.Expression.(*ast.ClassExpression)
		require.True(ctx.T, ok, "Expression should be ClassExpression, got %T", exprStmt.Expression)
		
		// validate the class name
		if nameIdent, ok := classDecl.Name.(*ast.IdentifierNode); ok {
			assert.Equal(ctx.T, className, nameIdent.Name)
		}
		
		// validate the members
		if memberValidator != nil && classDecl.Body != nil && len(classDecl.Body) > 0 {
			memberCtx := &TestContext{T: ctx.T, Program: &ast.Program{Body: classDecl.Body}}
			memberValidator(memberCtx)
		}
	}
}

// ValidateClassWithInheritance validates a class with inheritance.
func ValidateClassWithInheritance(className, parentClass string, memberValidator ValidationFunc) ValidationFunc {
	return ValidateClassDeclaration(className, parentClass, []string{}, memberValidator)
}

// ValidateClassWithInterfaces validates a class implementing interfaces.
func ValidateClassWithInterfaces(className string, interfaces []string) ValidationFunc {
	return ValidateClassDeclaration(className, "", interfaces, nil)
}

// ValidateFinalClass validates a final class.
func ValidateFinalClass(className string) ValidationFunc {
	return func(ctx *TestContext) {
		assertions := NewASTAssertions(ctx.T)
		body := assertions.AssertProgramBody(ctx.Program, 1)
		
		exprStmt := assertions.AssertExpressionStatement(body[0])
		classDecl, ok := exprStmt.Expression.(*ast.ClassExpression)
		require.True(ctx.T, ok, "Expression should be ClassExpression")
		
		if nameIdent, ok := classDecl.Name.(*ast.IdentifierNode); ok {
			assert.Equal(ctx.T, className, nameIdent.Name)
		}
		
		// check the final modifier
		assert.True(ctx.T, classDecl.Final, "Class should be marked as final")
	}
}

// ValidateAbstractClass validates an abstract class.
func ValidateAbstractClass(className string) ValidationFunc {
	return func(ctx *TestContext) {
		assertions := NewASTAssertions(ctx.T)
		body := assertions.AssertProgramBody(ctx.Program, 1)
		
		exprStmt := assertions.AssertExpressionStatement(body[0])
		classDecl, ok := exprStmt.Expression.(*ast.ClassExpression)
		require.True(ctx.T, ok, "Expression should be ClassExpression")
		
		if nameIdent, ok := classDecl.Name.(*ast.IdentifierNode); ok {
			assert.Equal(ctx.T, className, nameIdent.Name)
		}
		
		// check the abstract modifier
		assert.True(ctx.T, classDecl.Abstract, "Class should be marked as abstract")
	}
}

// ValidateStaticPropertyAccess validates a static property access.
func ValidateStaticPropertyAccess(varName, className, propertyName string) ValidationFunc {
	return func(ctx *TestContext) {
		assertions := NewASTAssertions(ctx.T)
		body := assertions.AssertProgramBody(ctx.Program, 1)
		
		exprStmt := assertions.AssertExpressionStatement(body[0])
		assignment := assertions.AssertAssignment(exprStmt.Expression, "=")
		
		// validate the left-hand variable
		leftVar, ok := assignment.Left.(*ast.Variable)
		require.True(ctx.T, ok, "Left side should be Variable")
		assert.Equal(ctx.T, varName, leftVar.Name)
		
		// validate the static property access
		staticAccess, ok := assignment.Right.(*ast.StaticPropertyAccessExpression)
		require.True(ctx.T, ok, "Right side should be StaticPropertyAccessExpression, got %T", assignment.Right)
		
		// validate the class name
		if classIdent, ok := staticAccess.Class.(*ast.IdentifierNode); ok {
			assert.Equal(ctx.T, className, classIdent.Name)
		}
		
		// validate the property name
		if propVar, ok := staticAccess.Property.(*ast.Variable); ok {
			assert.Equal(ctx.T, propertyName, propVar.Name)
		}
	}
}

// ValidateStaticMethodCall validates a static method call.
func ValidateStaticMethodCall(varName, className, methodName string, args []string) ValidationFunc {
	return func(ctx *TestContext) {
		assertions := NewASTAssertions(ctx.T)
		body := assertions.AssertProgramBody(ctx.Program, 1)
		
		exprStmt := assertions.AssertExpressionStatement(body[0])
		assignment := assertions.AssertAssignment(exprStmt.Expression, "=")
		
		// validate the left-hand variable
		leftVar, ok := assignment.Left.(*ast.Variable)
		require.True(ctx.T, ok, "Left side should be Variable")
		assert.Equal(ctx.T, varName, leftVar.Name)
		
		// loosely validate the static method call - may surface as a special form of call expression
		// the concrete implementation needs to match the actual AST shape
		assert.NotNil(ctx.T, assignment.Right, "Right side should contain static method call")
	}
}

// ValidateStaticConstantAccess validates a static constant access.
func ValidateStaticConstantAccess(varName, className, constantName string) ValidationFunc {
	return func(ctx *TestContext) {
		assertions := NewASTAssertions(ctx.T)
		body := assertions.AssertProgramBody(ctx.Program, 1)
		
		exprStmt := assertions.AssertExpressionStatement(body[0])
		assignment := assertions.AssertAssignment(exprStmt.Expression, "=")
		
		// validate the left-hand variable
		leftVar, ok := assignment.Left.(*ast.Variable)
		require.True(ctx.T, ok, "Left side should be Variable")
		assert.Equal(ctx.T, varName, leftVar.Name)
		
		// validate the static constant access - try a couple of AST node shapes
		if staticAccess, ok := assignment.Right.(*ast.StaticAccessExpression); ok {
			// validate the class name
			if classIdent, ok := staticAccess.Class.(*ast.IdentifierNode); ok {
				assert.Equal(ctx.T, className, classIdent.Name)
			}
			// validate the constant name
			if constIdent, ok := staticAccess.Property.(*ast.IdentifierNode); ok {
				assert.Equal(ctx.T, constantName, constIdent.Name)
			}
		} else if classConstAccess, ok := assignment.Right.(*ast.ClassConstantAccessExpression); ok {
			// might be a ClassConstantAccessExpression
			assert.NotNil(ctx.T, classConstAccess, "Should be class constant access")
		} else {
			require.Fail(ctx.T, "Right side should be StaticAccessExpression or ClassConstantAccessExpression, got %T", assignment.Right)
		}
	}
}

// ValidateChainedStaticCall validates a chained static call (loose version).
func ValidateChainedStaticCall(varName, className, firstMethod string, firstArgs []string, secondMethod string) ValidationFunc {
	return func(ctx *TestContext) {
		assertions := NewASTAssertions(ctx.T)
		body := assertions.AssertProgramBody(ctx.Program, 1)
		
		exprStmt := assertions.AssertExpressionStatement(body[0])
		assignment := assertions.AssertAssignment(exprStmt.Expression, "=")
		
		leftVar, ok := assignment.Left.(*ast.Variable)
		require.True(ctx.T, ok, "Left side should be Variable")
		assert.Equal(ctx.T, varName, leftVar.Name)
		
		// loose validation - check that the expected structure is present
		assert.NotNil(ctx.T, assignment.Right, "Right side should not be nil")
	}
}

// The validators below are loose versions for AST node shapes (match
// expressions, enums, etc.) that may not exist in every grammar variant.

// ValidateMatchExpression validates a match expression (loose version).
func ValidateMatchExpression(varName, matchVar string, arms []MatchArm) ValidationFunc {
	return func(ctx *TestContext) {
		assertions := NewASTAssertions(ctx.T)
		body := assertions.AssertProgramBody(ctx.Program, 1)
		
		exprStmt := assertions.AssertExpressionStatement(body[0])
		assignment := assertions.AssertAssignment(exprStmt.Expression, "=")
		
		leftVar, ok := assignment.Left.(*ast.Variable)
		require.True(ctx.T, ok, "Left side should be Variable")
		assert.Equal(ctx.T, varName, leftVar.Name)
		
		// match expression validation needs to follow the actual AST shape
		assert.NotNil(ctx.T, assignment.Right, "Right side should contain match expression")
	}
}

// ValidateMatchWithMultipleConditions validates a match expression with multi-condition arms (loose version).
func ValidateMatchWithMultipleConditions(varName, matchVar string, arms []MatchArm) ValidationFunc {
	return ValidateMatchExpression(varName, matchVar, arms)
}

// ValidateEnumDeclaration validates an enum declaration (loose version).
func ValidateEnumDeclaration(enumName, backingType string, cases []string) ValidationFunc {
	return func(ctx *TestContext) {
		assertions := NewASTAssertions(ctx.T)
		body := assertions.AssertProgramBody(ctx.Program, 1)
		
		// enum validation needs to follow the actual AST shape
		assert.NotNil(ctx.T, body[0], "Should have enum declaration")
	}
}

// ValidateBackedEnum validates a backed enum (loose version).
func ValidateBackedEnum(enumName, backingType string, cases []EnumCase) ValidationFunc {
	return func(ctx *TestContext) {
		assertions := NewASTAssertions(ctx.T)
		body := assertions.AssertProgramBody(ctx.Program, 1)
		
		// enum validation needs to follow the actual AST shape
		assert.NotNil(ctx.T, body[0], "Should have backed enum declaration")
	}
}

// ValidateFunctionWithUnionType validates a function with a union type (loose version).
func ValidateFunctionWithUnionType(funcName, unionType, paramName string, bodyValidator ValidationFunc) ValidationFunc {
	return ValidateFunctionDeclaration(funcName, []string{paramName}, "", bodyValidator)
}

// ValidateFunctionWithIntersectionType validates a function with an intersection type (loose version).
func ValidateFunctionWithIntersectionType(funcName, intersectionType, paramName string, bodyValidator ValidationFunc) ValidationFunc {
	return ValidateFunctionDeclaration(funcName, []string{paramName}, "", bodyValidator)
}

// ValidateFunctionWithNullableUnionType validates a function with a nullable union type (loose version).
func ValidateFunctionWithNullableUnionType(funcName, nullableUnionType string, bodyValidator ValidationFunc) ValidationFunc {
	return ValidateFunctionDeclaration(funcName, []string{}, nullableUnionType, bodyValidator)
}

// ValidateClassInExpressionStatement validates a class declaration wrapped in an expression statement.
func ValidateClassInExpressionStatement(className string) ValidationFunc {
	return func(ctx *TestContext) {
		assertions := NewASTAssertions(ctx.T)
		body := assertions.AssertProgramBody(ctx.Program, 1)
		
		exprStmt := assertions.AssertExpressionStatement(body[0])
		
		classDecl, ok := exprStmt.Expression.(*ast.ClassExpression)
		require.True(ctx.T, ok, "Expression should be ClassExpression, got %T", exprStmt.Expression)
		
		// validate the class name
		if nameIdent, ok := classDecl.Name.(*ast.IdentifierNode); ok {
			assert.Equal(ctx.T, className, nameIdent.Name)
		}
	}
}

// ValidateFinalClassInExpressionStatement validates a final class wrapped in an expression statement.
func ValidateFinalClassInExpressionStatement(className string) ValidationFunc {
	return func(ctx *TestContext) {
		assertions := NewASTAssertions(ctx.T)
		body := assertions.AssertProgramBody(ctx.Program, 1)
		
		exprStmt := assertions.AssertExpressionStatement(body[0])
		
		classDecl, ok := exprStmt.Expression.(*ast.ClassExpression)
		require.True(ctx.T, ok, "Expression should be ClassExpression")
		
		if nameIdent, ok := classDecl.Name.(*ast.IdentifierNode); ok {
			assert.Equal(ctx.T, className, nameIdent.Name)
		}
		
		// check the final modifier
		assert.True(ctx.T, classDecl.Final, "Class should be marked as final")
	}
}

// ValidateAbstractClassInExpressionStatement validates an abstract class wrapped in an expression statement.
func ValidateAbstractClassInExpressionStatement(className string) ValidationFunc {
	return func(ctx *TestContext) {
		assertions := NewASTAssertions(ctx.T)
		body := assertions.AssertProgramBody(ctx.Program, 1)
		
		exprStmt := assertions.AssertExpressionStatement(body[0])
		
		classDecl, ok := exprStmt.Expression.(*ast.ClassExpression)
		require.True(ctx.T, ok, "Expression should be ClassExpression")
		
		if nameIdent, ok := classDecl.Name.(*ast.IdentifierNode); ok {
			assert.Equal(ctx.T, className, nameIdent.Name)
		}
		
		// check the abstract modifier
		assert.True(ctx.T, classDecl.Abstract, "Class should be marked as abstract")
	}
}