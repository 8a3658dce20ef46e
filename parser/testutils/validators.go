package testutils

import (
	"testing"
	
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/heyrt/phpcore/ast"
)

// Advanced validator set for more complex AST structure checks.

// ValidateEcho validates an echo statement.
func ValidateEcho(expectedArgCount int, argValidators ...func(ast.Node, *testing.T)) ValidationFunc {
	return func(ctx *TestContext) {
		assertions := NewASTAssertions(ctx.T)
		body := assertions.AssertProgramBody(ctx.Program, 1)
		
		echoStmt := assertions.AssertEchoStatement(body[0], expectedArgCount)
		
		// validate each argument
		for i, validator := range argValidators {
			if i < len(echoStmt.Arguments.Arguments) {
				validator(echoStmt.Arguments.Arguments[i], ctx.T)
			}
		}
	}
}

// ValidateStringArg builds a string-argument validator.
func ValidateStringArg(expectedValue, expectedRaw string) func(ast.Node, *testing.T) {
	return func(node ast.Node, t *testing.T) {
		assertions := NewASTAssertions(t)
		assertions.AssertStringLiteral(node, expectedValue, expectedRaw)
	}
}

// ValidateNumberArg builds a number-argument validator.
func ValidateNumberArg(expectedValue string) func(ast.Node, *testing.T) {
	return func(node ast.Node, t *testing.T) {
		assertions := NewASTAssertions(t)
		assertions.AssertNumberLiteral(node, expectedValue)
	}
}

// ValidateBinaryOperation validates a binary operation expression.
func ValidateBinaryOperation(operator string, leftValidator, rightValidator func(ast.Node, *testing.T)) ValidationFunc {
	return func(ctx *TestContext) {
		assertions := NewASTAssertions(ctx.T)
		body := assertions.AssertProgramBody(ctx.Program, 1)
		
		exprStmt := assertions.AssertExpressionStatement(body[0])
		assignment := assertions.AssertAssignment(exprStmt.Expression, "=")
		binExpr := assertions.AssertBinaryExpression(assignment.Right, operator)
		
		if leftValidator != nil {
			leftValidator(binExpr.Left, ctx.T)
		}
		if rightValidator != nil {
			rightValidator(binExpr.Right, ctx.T)
		}
	}
}

// ValidateFunction validates a function declaration.
func ValidateFunction(expectedName string, expectedParamCount int, validators ...func(*ast.FunctionDeclaration, *testing.T)) ValidationFunc {
	return func(ctx *TestContext) {
		assertions := NewASTAssertions(ctx.T)
		body := assertions.AssertProgramBody(ctx.Program, 1)
		
		funcDecl, ok := body[0].(*ast.FunctionDeclaration)
		assert.True(ctx.T, ok, "Statement should be FunctionDeclaration, got %T", body[0])
		
		nameIdent, ok := funcDecl.Name.(*ast.IdentifierNode)
		assert.True(ctx.T, ok, "Function name should be IdentifierNode")
		assert.Equal(ctx.T, expectedName, nameIdent.Name)
		
		if funcDecl.Parameters != nil {
			assert.Len(ctx.T, funcDecl.Parameters.Parameters, expectedParamCount)
		} else {
			assert.Equal(ctx.T, 0, expectedParamCount, "Expected no parameters but Parameters is nil")
		}
		
		// run custom validators
		for _, validator := range validators {
			validator(funcDecl, ctx.T)
		}
	}
}

// ValidateClass validates a class declaration.
func ValidateClass(expectedName string, validators ...func(*ast.ClassExpression, *testing.T)) ValidationFunc {
	return func(ctx *TestContext) {
		assertions := NewASTAssertions(ctx.T)
		body := assertions.AssertProgramBody(ctx.Program, 1)
		
		exprStmt := assertions.AssertExpressionStatement(body[0])
		classExpr := assertions.AssertClass(exprStmt.Expression, expectedName)
		
		// run custom validators
		for _, validator := range validators {
			validator(classExpr, ctx.T)
		}
	}
}

// ValidateClassMethod builds a class method validator.
func ValidateClassMethod(expectedName, expectedVisibility string) func(*ast.ClassExpression, *testing.T) {
	return func(classExpr *ast.ClassExpression, t *testing.T) {
		// find the method
		var foundMethod *ast.FunctionDeclaration
		for _, stmt := range classExpr.Body {
			if funcDecl, ok := stmt.(*ast.FunctionDeclaration); ok {
				if nameIdent, ok := funcDecl.Name.(*ast.IdentifierNode); ok && nameIdent.Name == expectedName {
					foundMethod = funcDecl
					break
				}
			}
		}
		
		assert.NotNil(t, foundMethod, "Method %s not found in class", expectedName)
		if foundMethod != nil {
			assert.Equal(t, expectedVisibility, foundMethod.Visibility, "Method visibility mismatch")
		}
	}
}

// ValidateClassConstant builds a class constant validator.
func ValidateClassConstant(expectedName string, expectedVisibility string) func(*ast.ClassExpression, *testing.T) {
	return func(classExpr *ast.ClassExpression, t *testing.T) {
		// find the constant declaration
		var foundConstant *ast.ClassConstantDeclaration
		for _, stmt := range classExpr.Body {
			if constDecl, ok := stmt.(*ast.ClassConstantDeclaration); ok {
				for _, constant := range constDecl.Constants {
					if nameIdent, ok := constant.Name.(*ast.IdentifierNode); ok && nameIdent.Name == expectedName {
						foundConstant = constDecl
						break
					}
				}
				if foundConstant != nil {
					break
				}
			}
		}
		
		assert.NotNil(t, foundConstant, "Constant %s not found in class", expectedName)
		if foundConstant != nil {
			assert.Equal(t, expectedVisibility, foundConstant.Visibility, "Constant visibility mismatch")
		}
	}
}

// ValidateProperty builds a class property validator.
func ValidateProperty(expectedName string, expectedVisibility string) func(*ast.ClassExpression, *testing.T) {
	return func(classExpr *ast.ClassExpression, t *testing.T) {
		// find the property declaration
		var foundProperty *ast.PropertyDeclaration
		for _, stmt := range classExpr.Body {
			if propDecl, ok := stmt.(*ast.PropertyDeclaration); ok {
				// PropertyDeclaration has a single Name field, not a Properties slice
				if propDecl.Name == expectedName {
					foundProperty = propDecl
					break
				}
			}
		}
		
		assert.NotNil(t, foundProperty, "Property %s not found in class", expectedName)
		if foundProperty != nil {
			assert.Equal(t, expectedVisibility, foundProperty.Visibility, "Property visibility mismatch")
		}
	}
}

// ValidateControlFlow validates a control-flow statement.
func ValidateControlFlow(expectedType string, validators ...func(ast.Statement, *testing.T)) ValidationFunc {
	return func(ctx *TestContext) {
		assertions := NewASTAssertions(ctx.T)
		body := assertions.AssertProgramBody(ctx.Program, 1)
		
		stmt := body[0]
		
		switch expectedType {
		case "if":
			_, ok := stmt.(*ast.IfStatement)
			assert.True(ctx.T, ok, "Statement should be IfStatement")
		case "while":
			_, ok := stmt.(*ast.WhileStatement)
			assert.True(ctx.T, ok, "Statement should be WhileStatement")
		case "for":
			_, ok := stmt.(*ast.ForStatement)
			assert.True(ctx.T, ok, "Statement should be ForStatement")
		case "foreach":
			_, ok := stmt.(*ast.ForeachStatement)
			assert.True(ctx.T, ok, "Statement should be ForeachStatement")
		case "switch":
			_, ok := stmt.(*ast.SwitchStatement)
			assert.True(ctx.T, ok, "Statement should be SwitchStatement")
		case "try":
			_, ok := stmt.(*ast.TryStatement)
			assert.True(ctx.T, ok, "Statement should be TryStatement")
		}
		
		// run custom validators
		for _, validator := range validators {
			validator(stmt, ctx.T)
		}
	}
}

// control-flow validators

// ValidateIfStatement validates an if statement.
func ValidateIfStatement(testValidator ValidationFunc, consequentValidators ...ValidationFunc) ValidationFunc {
	return func(ctx *TestContext) {
		assertions := NewASTAssertions(ctx.T)
		body := assertions.AssertProgramBody(ctx.Program, 1)
		
		// support both if statement variants
		if ifStmt, ok := body[0].(*ast.IfStatement); ok {
			// regular if statement
			// validate the condition
			if testValidator != nil {
				testCtx := &TestContext{
					T: ctx.T,
					Program: &ast.Program{Body: []ast.Statement{&ast.ExpressionStatement{Expression: ifStmt.Test}}},
				}
				testValidator(testCtx)
			}
			
			// validate the consequent block
			for i, validator := range consequentValidators {
				if i < len(ifStmt.Consequent) {
					stmtCtx := &TestContext{
						T: ctx.T,
						Program: &ast.Program{Body: []ast.Statement{ifStmt.Consequent[i]}},
					}
					validator(stmtCtx)
				}
			}
		} else if altIfStmt, ok := body[0].(*ast.AlternativeIfStatement); ok {
			// alternative if statement
			// validate the condition
			if testValidator != nil {
				testCtx := &TestContext{
					T: ctx.T,
					Program: &ast.Program{Body: []ast.Statement{&ast.ExpressionStatement{Expression: altIfStmt.Condition}}},
				}
				testValidator(testCtx)
			}
			
			// validate the consequent block
			for i, validator := range consequentValidators {
				if i < len(altIfStmt.Then) {
					stmtCtx := &TestContext{
						T: ctx.T,
						Program: &ast.Program{Body: []ast.Statement{altIfStmt.Then[i]}},
					}
					validator(stmtCtx)
				}
			}
		} else {
			assert.Fail(ctx.T, "Statement should be IfStatement or AlternativeIfStatement, got %T", body[0])
		}
	}
}

// ValidateIfElseStatement validates an if-else statement.
func ValidateIfElseStatement(testValidator ValidationFunc, consequentValidator ValidationFunc, alternateValidator ValidationFunc) ValidationFunc {
	return func(ctx *TestContext) {
		assertions := NewASTAssertions(ctx.T)
		body := assertions.AssertProgramBody(ctx.Program, 1)
		
		ifStmt, ok := body[0].(*ast.IfStatement)
		assert.True(ctx.T, ok, "Statement should be IfStatement, got %T", body[0])
		
		// validate the condition
		if testValidator != nil {
			testCtx := &TestContext{
				T: ctx.T,
				Program: &ast.Program{Body: []ast.Statement{&ast.ExpressionStatement{Expression: ifStmt.Test}}},
			}
			testValidator(testCtx)
		}
		
		// validate the consequent branch
		if consequentValidator != nil && len(ifStmt.Consequent) > 0 {
			stmtCtx := &TestContext{
				T: ctx.T,
				Program: &ast.Program{Body: []ast.Statement{ifStmt.Consequent[0]}},
			}
			consequentValidator(stmtCtx)
		}
		
		// validate the alternate branch
		if alternateValidator != nil && len(ifStmt.Alternate) > 0 {
			stmtCtx := &TestContext{
				T: ctx.T,
				Program: &ast.Program{Body: []ast.Statement{ifStmt.Alternate[0]}},
			}
			alternateValidator(stmtCtx)
		}
	}
}

// ValidateWhileStatement validates a while statement.
func ValidateWhileStatement(testValidator ValidationFunc, bodyValidators ...ValidationFunc) ValidationFunc {
	return func(ctx *TestContext) {
		assertions := NewASTAssertions(ctx.T)
		body := assertions.AssertProgramBody(ctx.Program, 1)
		
		// support both while statement variants
		if whileStmt, ok := body[0].(*ast.WhileStatement); ok {
			// regular while statement
			// validate the condition
			if testValidator != nil {
				testCtx := &TestContext{
					T: ctx.T,
					Program: &ast.Program{Body: []ast.Statement{&ast.ExpressionStatement{Expression: whileStmt.Test}}},
				}
				testValidator(testCtx)
			}
			
			// validate the loop body
			for i, validator := range bodyValidators {
				if i < len(whileStmt.Body) {
					stmtCtx := &TestContext{
						T: ctx.T,
						Program: &ast.Program{Body: []ast.Statement{whileStmt.Body[i]}},
					}
					validator(stmtCtx)
				}
			}
		} else if altWhileStmt, ok := body[0].(*ast.AlternativeWhileStatement); ok {
			// alternative while statement
			// validate the condition
			if testValidator != nil {
				testCtx := &TestContext{
					T: ctx.T,
					Program: &ast.Program{Body: []ast.Statement{&ast.ExpressionStatement{Expression: altWhileStmt.Condition}}},
				}
				testValidator(testCtx)
			}
			
			// validate the loop body
			for i, validator := range bodyValidators {
				if i < len(altWhileStmt.Body) {
					stmtCtx := &TestContext{
						T: ctx.T,
						Program: &ast.Program{Body: []ast.Statement{altWhileStmt.Body[i]}},
					}
					validator(stmtCtx)
				}
			}
		} else {
			assert.Fail(ctx.T, "Statement should be WhileStatement or AlternativeWhileStatement, got %T", body[0])
		}
	}
}

// ValidateForStatement validates a for statement.
func ValidateForStatement(initValidator, testValidator, updateValidator, bodyValidator ValidationFunc) ValidationFunc {
	return func(ctx *TestContext) {
		assertions := NewASTAssertions(ctx.T)
		body := assertions.AssertProgramBody(ctx.Program, 1)
		
		// support both for statement variants
		if forStmt, ok := body[0].(*ast.ForStatement); ok {
			// regular for statement
			// validate the init clause
			if initValidator != nil && forStmt.Init != nil {
				initCtx := &TestContext{
					T: ctx.T,
					Program: &ast.Program{Body: []ast.Statement{&ast.ExpressionStatement{Expression: forStmt.Init}}},
				}
				initValidator(initCtx)
			}
			
			// validate the condition
			if testValidator != nil && forStmt.Test != nil {
				testCtx := &TestContext{
					T: ctx.T,
					Program: &ast.Program{Body: []ast.Statement{&ast.ExpressionStatement{Expression: forStmt.Test}}},
				}
				testValidator(testCtx)
			}
			
			// validate the update clause
			if updateValidator != nil && forStmt.Update != nil {
				updateCtx := &TestContext{
					T: ctx.T,
					Program: &ast.Program{Body: []ast.Statement{&ast.ExpressionStatement{Expression: forStmt.Update}}},
				}
				updateValidator(updateCtx)
			}
			
			// validate the loop body
			if bodyValidator != nil && len(forStmt.Body) > 0 {
				bodyCtx := &TestContext{
					T: ctx.T,
					Program: &ast.Program{Body: []ast.Statement{forStmt.Body[0]}},
				}
				bodyValidator(bodyCtx)
			}
		} else if altForStmt, ok := body[0].(*ast.AlternativeForStatement); ok {
			// alternative for statement
			// validate the init clause
			if initValidator != nil && len(altForStmt.Init) > 0 && altForStmt.Init[0] != nil {
				initCtx := &TestContext{
					T: ctx.T,
					Program: &ast.Program{Body: []ast.Statement{&ast.ExpressionStatement{Expression: altForStmt.Init[0]}}},
				}
				initValidator(initCtx)
			}
			
			// validate the condition
			if testValidator != nil && len(altForStmt.Condition) > 0 && altForStmt.Condition[0] != nil {
				testCtx := &TestContext{
					T: ctx.T,
					Program: &ast.Program{Body: []ast.Statement{&ast.ExpressionStatement{Expression: altForStmt.Condition[0]}}},
				}
				testValidator(testCtx)
			}
			
			// validate the update clause
			if updateValidator != nil && len(altForStmt.Update) > 0 && altForStmt.Update[0] != nil {
				updateCtx := &TestContext{
					T: ctx.T,
					Program: &ast.Program{Body: []ast.Statement{&ast.ExpressionStatement{Expression: altForStmt.Update[0]}}},
				}
				updateValidator(updateCtx)
			}
			
			// validate the loop body
			if bodyValidator != nil && len(altForStmt.Body) > 0 {
				bodyCtx := &TestContext{
					T: ctx.T,
					Program: &ast.Program{Body: []ast.Statement{altForStmt.Body[0]}},
				}
				bodyValidator(bodyCtx)
			}
		} else {
			assert.Fail(ctx.T, "Statement should be ForStatement or AlternativeForStatement, got %T", body[0])
		}
	}
}

// ValidateForeachStatement validates a foreach statement.
func ValidateForeachStatement(iterableVar, keyVar, valueVar string, bodyValidators ...ValidationFunc) ValidationFunc {
	return func(ctx *TestContext) {
		assertions := NewASTAssertions(ctx.T)
		body := assertions.AssertProgramBody(ctx.Program, 1)
		
		// check whether this is a regular or alternative foreach
		if foreachStmt, ok := body[0].(*ast.ForeachStatement); ok {
			// regular foreach - Body is a single Statement
			// validate the iterable variable
			if iterableVar != "" {
				iterableVariable, ok := foreachStmt.Iterable.(*ast.Variable)
				assert.True(ctx.T, ok, "Iterable should be Variable")
				assert.Equal(ctx.T, iterableVar, iterableVariable.Name)
			}
			
			// validate the value variable
			if valueVar != "" {
				valueVariable, ok := foreachStmt.Value.(*ast.Variable)
				assert.True(ctx.T, ok, "Value should be Variable")
				assert.Equal(ctx.T, valueVar, valueVariable.Name)
			}
			
			// validate the key variable, if present
			if keyVar != "" && foreachStmt.Key != nil {
				keyVariable, ok := foreachStmt.Key.(*ast.Variable)
				assert.True(ctx.T, ok, "Key should be Variable")
				assert.Equal(ctx.T, keyVar, keyVariable.Name)
			}
			
			// validate the loop body (single Statement)
			if len(bodyValidators) > 0 && foreachStmt.Body != nil {
				stmtCtx := &TestContext{
					T: ctx.T,
					Program: &ast.Program{Body: []ast.Statement{foreachStmt.Body}},
				}
				bodyValidators[0](stmtCtx)
			}
		} else if altForeachStmt, ok := body[0].(*ast.AlternativeForeachStatement); ok {
			// alternative foreach - Body is []Statement
			// validate the iterable variable
			if iterableVar != "" {
				iterableVariable, ok := altForeachStmt.Iterable.(*ast.Variable)
				assert.True(ctx.T, ok, "Iterable should be Variable")
				assert.Equal(ctx.T, iterableVar, iterableVariable.Name)
			}
			
			// validate the value variable
			if valueVar != "" {
				valueVariable, ok := altForeachStmt.Value.(*ast.Variable)
				assert.True(ctx.T, ok, "Value should be Variable")
				assert.Equal(ctx.T, valueVar, valueVariable.Name)
			}
			
			// validate the key variable, if present
			if keyVar != "" && altForeachStmt.Key != nil {
				keyVariable, ok := altForeachStmt.Key.(*ast.Variable)
				assert.True(ctx.T, ok, "Key should be Variable")
				assert.Equal(ctx.T, keyVar, keyVariable.Name)
			}
			
			// validate the loop body ([]Statement)
			for i, validator := range bodyValidators {
				if i < len(altForeachStmt.Body) {
					stmtCtx := &TestContext{
						T: ctx.T,
						Program: &ast.Program{Body: []ast.Statement{altForeachStmt.Body[i]}},
					}
					validator(stmtCtx)
				}
			}
		} else {
			assert.Fail(ctx.T, "Statement should be ForeachStatement or AlternativeForeachStatement, got %T", body[0])
		}
	}
}

// type definitions
type CatchClause struct {
	ExceptionType string
	VariableName  string
	BodyValidator ValidationFunc
}

type SwitchCase struct {
	Value      string
	Validators []ValidationFunc
	IsDefault  bool
}

// ValidateTryCatchStatement validates a try-catch statement.
func ValidateTryCatchStatement(tryValidator ValidationFunc, catchValidator CatchClause) ValidationFunc {
	return func(ctx *TestContext) {
		assertions := NewASTAssertions(ctx.T)
		body := assertions.AssertProgramBody(ctx.Program, 1)
		
		tryStmt, ok := body[0].(*ast.TryStatement)
		assert.True(ctx.T, ok, "Statement should be TryStatement, got %T", body[0])
		
		// validate the try block
		if tryValidator != nil && len(tryStmt.Body) > 0 {
			tryCtx := &TestContext{
				T: ctx.T,
				Program: &ast.Program{Body: []ast.Statement{tryStmt.Body[0]}},
			}
			tryValidator(tryCtx)
		}
		
		// validate the catch block
		if len(tryStmt.CatchClauses) > 0 && catchValidator.BodyValidator != nil {
			catchClause := tryStmt.CatchClauses[0]
			
			// validate the exception type - uses Types[0], not Type
			if catchValidator.ExceptionType != "" && len(catchClause.Types) > 0 {
				typeIdent, ok := catchClause.Types[0].(*ast.IdentifierNode)
				assert.True(ctx.T, ok, "Exception type should be IdentifierNode")
				assert.Equal(ctx.T, catchValidator.ExceptionType, typeIdent.Name)
			}
			
			// validate the exception variable - uses Parameter, not Variable
			if catchValidator.VariableName != "" {
				catchVar, ok := catchClause.Parameter.(*ast.Variable)
				assert.True(ctx.T, ok, "Exception parameter should be Variable")
				assert.Equal(ctx.T, catchValidator.VariableName, catchVar.Name)
			}
			
			// validate the catch body
			if len(catchClause.Body) > 0 {
				catchCtx := &TestContext{
					T: ctx.T,
					Program: &ast.Program{Body: []ast.Statement{catchClause.Body[0]}},
				}
				catchValidator.BodyValidator(catchCtx)
			}
		}
	}
}

// ValidateTryCatchFinallyStatement validates a try-catch-finally statement.
func ValidateTryCatchFinallyStatement(tryValidator ValidationFunc, catchValidator CatchClause, finallyValidator ValidationFunc) ValidationFunc {
	return func(ctx *TestContext) {
		// run the try-catch validation first
		tryCatchValidator := ValidateTryCatchStatement(tryValidator, catchValidator)
		tryCatchValidator(ctx)
		
		// then validate the finally block
		if finallyValidator != nil {
			assertions := NewASTAssertions(ctx.T)
			body := assertions.AssertProgramBody(ctx.Program, 1)
			
			tryStmt, ok := body[0].(*ast.TryStatement)
			assert.True(ctx.T, ok, "Statement should be TryStatement")
			
			// uses FinallyBlock, not Finally.Body
			if len(tryStmt.FinallyBlock) > 0 {
				finallyCtx := &TestContext{
					T: ctx.T,
					Program: &ast.Program{Body: []ast.Statement{tryStmt.FinallyBlock[0]}},
				}
				finallyValidator(finallyCtx)
			}
		}
	}
}

// ValidateTryMultipleCatchStatement validates a try statement with multiple catch clauses.
func ValidateTryMultipleCatchStatement(tryValidator ValidationFunc, catchValidators []CatchClause) ValidationFunc {
	return func(ctx *TestContext) {
		assertions := NewASTAssertions(ctx.T)
		body := assertions.AssertProgramBody(ctx.Program, 1)
		
		tryStmt, ok := body[0].(*ast.TryStatement)
		assert.True(ctx.T, ok, "Statement should be TryStatement, got %T", body[0])
		
		// validate the try block
		if tryValidator != nil && len(tryStmt.Body) > 0 {
			tryCtx := &TestContext{
				T: ctx.T,
				Program: &ast.Program{Body: []ast.Statement{tryStmt.Body[0]}},
			}
			tryValidator(tryCtx)
		}
		
		// validate all catch clauses
		assert.Len(ctx.T, tryStmt.CatchClauses, len(catchValidators), "Catch clause count mismatch")
		
		for i, catchValidator := range catchValidators {
			if i < len(tryStmt.CatchClauses) {
				catchClause := tryStmt.CatchClauses[i]
				
				// validate the exception type - uses Types[0], not Type
				if catchValidator.ExceptionType != "" && len(catchClause.Types) > 0 {
					typeIdent, ok := catchClause.Types[0].(*ast.IdentifierNode)
					assert.True(ctx.T, ok, "Exception type should be IdentifierNode")
					assert.Equal(ctx.T, catchValidator.ExceptionType, typeIdent.Name)
				}
				
				// validate the exception variable
				if catchValidator.VariableName != "" {
					catchVar, ok := catchClause.Parameter.(*ast.Variable)
					assert.True(ctx.T, ok, "Exception variable should be Variable")
					assert.Equal(ctx.T, catchValidator.VariableName, catchVar.Name)
				}
				
				// validate the catch body
				if catchValidator.BodyValidator != nil && len(catchClause.Body) > 0 {
					catchCtx := &TestContext{
						T: ctx.T,
						Program: &ast.Program{Body: []ast.Statement{catchClause.Body[0]}},
					}
					catchValidator.BodyValidator(catchCtx)
				}
			}
		}
	}
}

// ValidateSwitchStatement validates a switch statement.
func ValidateSwitchStatement(discriminantVar string, cases []SwitchCase) ValidationFunc {
	return func(ctx *TestContext) {
		assertions := NewASTAssertions(ctx.T)
		body := assertions.AssertProgramBody(ctx.Program, 1)
		
		switchStmt, ok := body[0].(*ast.SwitchStatement)
		assert.True(ctx.T, ok, "Statement should be SwitchStatement, got %T", body[0])
		
		// validate the discriminant
		if discriminantVar != "" {
			discriminantVariable, ok := switchStmt.Discriminant.(*ast.Variable)
			assert.True(ctx.T, ok, "Discriminant should be Variable")
			assert.Equal(ctx.T, discriminantVar, discriminantVariable.Name)
		}
		
		// validate the case clauses
		assert.Len(ctx.T, switchStmt.Cases, len(cases), "Switch case count mismatch")
		
		for i, expectedCase := range cases {
			if i < len(switchStmt.Cases) {
				caseStmt := switchStmt.Cases[i]
				
				if expectedCase.IsDefault {
					assert.Nil(ctx.T, caseStmt.Test, "Default case should have nil test")
				} else {
					// validate the case value
					assert.NotNil(ctx.T, caseStmt.Test, "Case should have test value")
				}
				
				// validate the case body
				for j, validator := range expectedCase.Validators {
					if j < len(caseStmt.Body) {
						caseCtx := &TestContext{
							T: ctx.T,
							Program: &ast.Program{Body: []ast.Statement{caseStmt.Body[j]}},
						}
						validator(caseCtx)
					}
				}
			}
		}
	}
}

// helper validators

// ValidateBinaryExpression builds a binary expression validator.
func ValidateBinaryExpression(leftVar, operator, rightValue string) ValidationFunc {
	return func(ctx *TestContext) {
		assertions := NewASTAssertions(ctx.T)
		body := assertions.AssertProgramBody(ctx.Program, 1)
		
		exprStmt := assertions.AssertExpressionStatement(body[0])
		binExpr := assertions.AssertBinaryExpression(exprStmt.Expression, operator)
		
		// validate the left-hand variable
		if leftVar != "" {
			leftVariable, ok := binExpr.Left.(*ast.Variable)
			assert.True(ctx.T, ok, "Left operand should be Variable")
			assert.Equal(ctx.T, leftVar, leftVariable.Name)
		}
		
		// validate the right-hand value
		if rightValue != "" {
			// try as a number
			if rightNum, ok := binExpr.Right.(*ast.NumberLiteral); ok {
				assert.Equal(ctx.T, rightValue, rightNum.Value)
			} else if rightStr, ok := binExpr.Right.(*ast.StringLiteral); ok {
				assert.Equal(ctx.T, rightValue, rightStr.Raw)
			}
		}
	}
}

// ValidatePostfixExpression builds a postfix expression validator.
func ValidatePostfixExpression(varName, operator string) ValidationFunc {
	return func(ctx *TestContext) {
		assertions := NewASTAssertions(ctx.T)
		body := assertions.AssertProgramBody(ctx.Program, 1)
		
		exprStmt := assertions.AssertExpressionStatement(body[0])
		unaryExpr, ok := exprStmt.Expression.(*ast.UnaryExpression)
		assert.True(ctx.T, ok, "Expression should be PostfixExpression, got %T", exprStmt.Expression)
		
		assert.Equal(ctx.T, operator, unaryExpr.Operator)
		assert.False(ctx.T, unaryExpr.Prefix, "Should be postfix unary expression")
		
		if varName != "" {
			operandVar, ok := unaryExpr.Operand.(*ast.Variable)
			assert.True(ctx.T, ok, "Operand should be Variable")
			assert.Equal(ctx.T, varName, operandVar.Name)
		}
	}
}


// ValidateEchoVariable builds an echo-of-a-variable validator.
func ValidateEchoVariable(varName string) ValidationFunc {
	return func(ctx *TestContext) {
		assertions := NewASTAssertions(ctx.T)
		body := assertions.AssertProgramBody(ctx.Program, 1)
		
		echoStmt := assertions.AssertEchoStatement(body[0], 1)
		variable, ok := echoStmt.Arguments.Arguments[0].(*ast.Variable)
		assert.True(ctx.T, ok, "Echo argument should be Variable")
		assert.Equal(ctx.T, varName, variable.Name)
	}
}

// ValidateEchoArgs builds an echo statement validator.
func ValidateEchoArgs(args []string) ValidationFunc {
	return func(ctx *TestContext) {
		assertions := NewASTAssertions(ctx.T)
		body := assertions.AssertProgramBody(ctx.Program, 1)
		
		echoStmt := assertions.AssertEchoStatement(body[0], len(args))
		
		for i, expectedArg := range args {
			if i < len(echoStmt.Arguments.Arguments) {
				arg := echoStmt.Arguments.Arguments[i]
				
				if stringLit, ok := arg.(*ast.StringLiteral); ok {
					assert.Equal(ctx.T, expectedArg, stringLit.Raw)
				} else if variable, ok := arg.(*ast.Variable); ok {
					assert.Equal(ctx.T, expectedArg, variable.Name)
				}
			}
		}
	}
}

// ValidateFunctionCall builds a function call validator.
func ValidateFunctionCall(funcName string, args ...string) ValidationFunc {
	return func(ctx *TestContext) {
		assertions := NewASTAssertions(ctx.T)
		body := assertions.AssertProgramBody(ctx.Program, 1)
		
		exprStmt := assertions.AssertExpressionStatement(body[0])
		callExpr, ok := exprStmt.Expression.(*ast.CallExpression)
		assert.True(ctx.T, ok, "Expression should be CallExpression, got %T", exprStmt.Expression)
		
		funcIdent, ok := callExpr.Callee.(*ast.IdentifierNode)
		assert.True(ctx.T, ok, "Callee should be IdentifierNode")
		assert.Equal(ctx.T, funcName, funcIdent.Name)
		
		if callExpr.Arguments != nil {
			assert.Len(ctx.T, callExpr.Arguments.Arguments, len(args))
		} else {
			assert.Equal(ctx.T, 0, len(args), "Expected no arguments but got %d", len(args))
		}
	}
}

// ValidateAssignmentExpression builds an assignment validator.
func ValidateAssignmentExpression(varName, value string) ValidationFunc {
	return func(ctx *TestContext) {
		assertions := NewASTAssertions(ctx.T)
		body := assertions.AssertProgramBody(ctx.Program, 1)
		
		exprStmt := assertions.AssertExpressionStatement(body[0])
		assignment := assertions.AssertAssignment(exprStmt.Expression, "=")
		
		// validate the left-hand variable
		if varName != "" {
			leftVar, ok := assignment.Left.(*ast.Variable)
			assert.True(ctx.T, ok, "Left side should be Variable")
			assert.Equal(ctx.T, varName, leftVar.Name)
		}
		
		// validate the right-hand value
		if value != "" {
			// try as a number
			if numberLit, ok := assignment.Right.(*ast.NumberLiteral); ok {
				assert.Equal(ctx.T, value, numberLit.Value)
			} else if stringLit, ok := assignment.Right.(*ast.StringLiteral); ok {
				assert.Equal(ctx.T, value, stringLit.Raw)
			} else if callExpr, ok := assignment.Right.(*ast.CallExpression); ok {
				// function call case
				if funcIdent, ok := callExpr.Callee.(*ast.IdentifierNode); ok {
					assert.Equal(ctx.T, value, funcIdent.Name+"()")
				}
			}
		}
	}
}

// ValidateBreakStatement builds a break statement validator.
func ValidateBreakStatement() ValidationFunc {
	return func(ctx *TestContext) {
		assertions := NewASTAssertions(ctx.T)
		body := assertions.AssertProgramBody(ctx.Program, 1)
		
		_, ok := body[0].(*ast.BreakStatement)
		assert.True(ctx.T, ok, "Statement should be BreakStatement, got %T", body[0])
	}
}

// ValidateCatchClause builds a catch clause validator.
func ValidateCatchClause(exceptionType, varName string, bodyValidator ValidationFunc) CatchClause {
	return CatchClause{
		ExceptionType: exceptionType,
		VariableName:  varName,
		BodyValidator: bodyValidator,
	}
}

// ValidateSwitchCase builds a switch-case validator.
func ValidateSwitchCase(value string, validators ...ValidationFunc) SwitchCase {
	return SwitchCase{
		Value:      value,
		Validators: validators,
		IsDefault:  false,
	}
}

// ValidateDefaultCase builds a default-case validator.
func ValidateDefaultCase(validators ...ValidationFunc) SwitchCase {
	return SwitchCase{
		Validators: validators,
		IsDefault:  true,
	}
}

// ValidateVariable builds a variable-expression validator.
func ValidateVariableExpression(varName string) ValidationFunc {
	return func(ctx *TestContext) {
		assertions := NewASTAssertions(ctx.T)
		body := assertions.AssertProgramBody(ctx.Program, 1)
		
		exprStmt := assertions.AssertExpressionStatement(body[0])
		variable, ok := exprStmt.Expression.(*ast.Variable)
		assert.True(ctx.T, ok, "Expression should be Variable, got %T", exprStmt.Expression)
		assert.Equal(ctx.T, varName, variable.Name)
	}
}

// array and string validators

// ArrayElement represents an array literal element.
type ArrayElement struct {
	Key       string // array key; empty for a list-style array
	Value     string // array value
	IsNumeric bool   // whether the value is numeric
}

// StringInterpolation represents a parsed string interpolation.
type StringInterpolation struct {
	Parts []InterpolationPart
}

// InterpolationPart represents one segment of a string interpolation.
type InterpolationPart struct {
	Text       string // literal text segment
	Variable   string // variable name
	HasBraces  bool   // whether the part used brace syntax
}

// ValidateArrayAssignment validates an array assignment.
func ValidateArrayAssignment(varName string, elements []ArrayElement) ValidationFunc {
	return func(ctx *TestContext) {
		assertions := NewASTAssertions(ctx.T)
		body := assertions.AssertProgramBody(ctx.Program, 1)
		
		exprStmt := assertions.AssertExpressionStatement(body[0])
		assignment := assertions.AssertAssignment(exprStmt.Expression, "=")
		
		// validate the left-hand variable
		leftVar, ok := assignment.Left.(*ast.Variable)
		assert.True(ctx.T, ok, "Left side should be Variable")
		assert.Equal(ctx.T, varName, leftVar.Name)
		
		// validate the right-hand array
		arrayExpr, ok := assignment.Right.(*ast.ArrayExpression)
		assert.True(ctx.T, ok, "Right side should be ArrayExpression, got %T", assignment.Right)
		
		assert.Len(ctx.T, arrayExpr.Elements, len(elements), "Array element count mismatch")
		
		for i, expectedElement := range elements {
			if i >= len(arrayExpr.Elements) {
				break
			}
			
			element := arrayExpr.Elements[i]
			
			// check whether this is a key/value pair
			if arrayElement, ok := element.(*ast.ArrayElementExpression); ok {
				// validate the key
				if expectedElement.Key != "" {
					assert.NotNil(ctx.T, arrayElement.Key, "Array element should have key")
					if keyStr, ok := arrayElement.Key.(*ast.StringLiteral); ok {
						assert.Equal(ctx.T, expectedElement.Key, keyStr.Raw)
					} else if keyNum, ok := arrayElement.Key.(*ast.NumberLiteral); ok {
						assert.Equal(ctx.T, expectedElement.Key, keyNum.Value)
					}
				} else {
					assert.Nil(ctx.T, arrayElement.Key, "Array element should not have key")
				}
				
				// validate the value
				if expectedElement.IsNumeric {
					numVal, ok := arrayElement.Value.(*ast.NumberLiteral)
					assert.True(ctx.T, ok, "Array element value should be NumberLiteral")
					assert.Equal(ctx.T, expectedElement.Value, numVal.Value)
				} else {
					strVal, ok := arrayElement.Value.(*ast.StringLiteral)
					assert.True(ctx.T, ok, "Array element value should be StringLiteral")
					assert.Equal(ctx.T, expectedElement.Value, strVal.Raw)
				}
			} else {
				// direct element (not a key/value pair)
				assert.Equal(ctx.T, "", expectedElement.Key, "Expected direct element but got key")
				
				if expectedElement.IsNumeric {
					numVal, ok := element.(*ast.NumberLiteral)
					assert.True(ctx.T, ok, "Array element should be NumberLiteral")
					assert.Equal(ctx.T, expectedElement.Value, numVal.Value)
				} else {
					strVal, ok := element.(*ast.StringLiteral)
					assert.True(ctx.T, ok, "Array element should be StringLiteral")
					assert.Equal(ctx.T, expectedElement.Value, strVal.Raw)
				}
			}
		}
	}
}

// ValidateHeredocAssignment validates a heredoc assignment.
func ValidateHeredocAssignment(varName, expectedValue string) ValidationFunc {
	return func(ctx *TestContext) {
		assertions := NewASTAssertions(ctx.T)
		body := assertions.AssertProgramBody(ctx.Program, 1)
		
		exprStmt := assertions.AssertExpressionStatement(body[0])
		assignment := assertions.AssertAssignment(exprStmt.Expression, "=")
		
		// validate the left-hand variable
		leftVar, ok := assignment.Left.(*ast.Variable)
		assert.True(ctx.T, ok, "Left side should be Variable")
		assert.Equal(ctx.T, varName, leftVar.Name)
		
		// validate the right-hand heredoc
		stringLit, ok := assignment.Right.(*ast.StringLiteral)
		assert.True(ctx.T, ok, "Right side should be StringLiteral for Heredoc, got %T", assignment.Right)
		assert.Equal(ctx.T, expectedValue, stringLit.Value)
	}
}

// ValidateNowdocAssignment validates a nowdoc assignment.
func ValidateNowdocAssignment(varName, expectedValue string) ValidationFunc {
	return func(ctx *TestContext) {
		assertions := NewASTAssertions(ctx.T)
		body := assertions.AssertProgramBody(ctx.Program, 1)
		
		exprStmt := assertions.AssertExpressionStatement(body[0])
		assignment := assertions.AssertAssignment(exprStmt.Expression, "=")
		
		// validate the left-hand variable
		leftVar, ok := assignment.Left.(*ast.Variable)
		assert.True(ctx.T, ok, "Left side should be Variable")
		assert.Equal(ctx.T, varName, leftVar.Name)
		
		// validate the right-hand nowdoc
		stringLit, ok := assignment.Right.(*ast.StringLiteral)
		assert.True(ctx.T, ok, "Right side should be StringLiteral for Nowdoc, got %T", assignment.Right)
		assert.Equal(ctx.T, expectedValue, stringLit.Value)
	}
}

// ValidateInterpolatedStringAssignment validates an interpolated string assignment.
func ValidateInterpolatedStringAssignment(varName string, interpolation StringInterpolation) ValidationFunc {
	return func(ctx *TestContext) {
		assertions := NewASTAssertions(ctx.T)
		body := assertions.AssertProgramBody(ctx.Program, 1)
		
		exprStmt := assertions.AssertExpressionStatement(body[0])
		assignment := assertions.AssertAssignment(exprStmt.Expression, "=")
		
		// validate the left-hand variable
		leftVar, ok := assignment.Left.(*ast.Variable)
		assert.True(ctx.T, ok, "Left side should be Variable")
		assert.Equal(ctx.T, varName, leftVar.Name)
		
		// validate the right-hand interpolated string
		interpolatedStr, ok := assignment.Right.(*ast.InterpolatedStringExpression)
		assert.True(ctx.T, ok, "Right side should be InterpolatedStringExpression, got %T", assignment.Right)
		
		assert.Len(ctx.T, interpolatedStr.Parts, len(interpolation.Parts), "Interpolation parts count mismatch")
		
		for i, expectedPart := range interpolation.Parts {
			if i >= len(interpolatedStr.Parts) {
				break
			}
			
			part := interpolatedStr.Parts[i]
			
			if expectedPart.Text != "" {
				// text part
				stringLit, ok := part.(*ast.StringLiteral)
				assert.True(ctx.T, ok, "Interpolation part %d should be StringLiteral", i)
				assert.Equal(ctx.T, expectedPart.Text, stringLit.Value)
			} else if expectedPart.Variable != "" {
				// variable part
				variable, ok := part.(*ast.Variable)
				assert.True(ctx.T, ok, "Interpolation part %d should be Variable", i)
				assert.Equal(ctx.T, expectedPart.Variable, variable.Name)
			}
		}
	}
}

// ValidateArrayAccess validates an array access expression.
func ValidateArrayAccess(varName, arrayVar, index string) ValidationFunc {
	return func(ctx *TestContext) {
		assertions := NewASTAssertions(ctx.T)
		body := assertions.AssertProgramBody(ctx.Program, 1)
		
		exprStmt := assertions.AssertExpressionStatement(body[0])
		assignment := assertions.AssertAssignment(exprStmt.Expression, "=")
		
		// validate the left-hand variable
		leftVar, ok := assignment.Left.(*ast.Variable)
		assert.True(ctx.T, ok, "Left side should be Variable")
		assert.Equal(ctx.T, varName, leftVar.Name)
		
		// validate the right-hand array access
		accessExpr, ok := assignment.Right.(*ast.ArrayAccessExpression)
		assert.True(ctx.T, ok, "Right side should be ArrayAccessExpression, got %T", assignment.Right)
		
		// validate the array variable
		arrVar, ok := accessExpr.Array.(*ast.Variable)
		assert.True(ctx.T, ok, "Array should be Variable")
		assert.Equal(ctx.T, arrayVar, arrVar.Name)
		
		// validate the index
		if index[0] == '"' || index[0] == '\'' {
			// string index
			indexStr, ok := (*accessExpr.Index).(*ast.StringLiteral)
			assert.True(ctx.T, ok, "Index should be StringLiteral")
			assert.Equal(ctx.T, index, indexStr.Raw)
		} else {
			// numeric index
			indexNum, ok := (*accessExpr.Index).(*ast.NumberLiteral)
			assert.True(ctx.T, ok, "Index should be NumberLiteral")
			assert.Equal(ctx.T, index, indexNum.Value)
		}
	}
}

// ValidateChainedArrayAccess validates a chained array access expression.
func ValidateChainedArrayAccess(varName, arrayVar string, indices []string) ValidationFunc {
	return func(ctx *TestContext) {
		assertions := NewASTAssertions(ctx.T)
		body := assertions.AssertProgramBody(ctx.Program, 1)
		
		exprStmt := assertions.AssertExpressionStatement(body[0])
		assignment := assertions.AssertAssignment(exprStmt.Expression, "=")
		
		// validate the left-hand variable
		leftVar, ok := assignment.Left.(*ast.Variable)
		assert.True(ctx.T, ok, "Left side should be Variable")
		assert.Equal(ctx.T, varName, leftVar.Name)
		
		// validate the chained array access
		currentExpr := assignment.Right
		
		// walk from the outermost level inward
		for i := len(indices) - 1; i >= 0; i-- {
			accessExpr, ok := currentExpr.(*ast.ArrayAccessExpression)
			assert.True(ctx.T, ok, "Should be ArrayAccessExpression at level %d", i)
			
			// validate the index
			index := indices[i]
			if index[0] == '"' || index[0] == '\'' {
				// string index
				indexStr, ok := (*accessExpr.Index).(*ast.StringLiteral)
				assert.True(ctx.T, ok, "Index should be StringLiteral at level %d", i)
				assert.Equal(ctx.T, index, indexStr.Raw)
			} else {
				// numeric index
				indexNum, ok := (*accessExpr.Index).(*ast.NumberLiteral)
				assert.True(ctx.T, ok, "Index should be NumberLiteral at level %d", i)
				assert.Equal(ctx.T, index, indexNum.Value)
			}
			
			if i == 0 {
				// innermost level, should be the base array variable
				arrVar, ok := accessExpr.Array.(*ast.Variable)
				assert.True(ctx.T, ok, "Base array should be Variable")
				assert.Equal(ctx.T, arrayVar, arrVar.Name)
			} else {
				// continue descending
				currentExpr = accessExpr.Array
			}
		}
	}
}
// expression validators

// ValidatePrefixExpression validates a prefix expression.
func ValidatePrefixExpression(varName, operandVar, operator string) ValidationFunc {
	return func(ctx *TestContext) {
		assertions := NewASTAssertions(ctx.T)
		body := assertions.AssertProgramBody(ctx.Program, 1)
		
		exprStmt := assertions.AssertExpressionStatement(body[0])
		assignment := assertions.AssertAssignment(exprStmt.Expression, "=")
		
		// validate the left-hand variable
		leftVar, ok := assignment.Left.(*ast.Variable)
		assert.True(ctx.T, ok, "Left side should be Variable")
		assert.Equal(ctx.T, varName, leftVar.Name)
		
		// validate the right-hand prefix expression
		unaryExpr, ok := assignment.Right.(*ast.UnaryExpression)
		assert.True(ctx.T, ok, "Right side should be UnaryExpression, got %T", assignment.Right)
		
		assert.Equal(ctx.T, operator, unaryExpr.Operator)
		assert.True(ctx.T, unaryExpr.Prefix, "Should be prefix unary expression")
		
		if operandVar != "" {
			operandVariable, ok := unaryExpr.Operand.(*ast.Variable)
			assert.True(ctx.T, ok, "Operand should be Variable")
			assert.Equal(ctx.T, operandVar, operandVariable.Name)
		}
	}
}

// ValidatePostfixAssignment validates a postfix-expression assignment.
func ValidatePostfixAssignment(varName, operandVar, operator string) ValidationFunc {
	return func(ctx *TestContext) {
		assertions := NewASTAssertions(ctx.T)
		body := assertions.AssertProgramBody(ctx.Program, 1)
		
		exprStmt := assertions.AssertExpressionStatement(body[0])
		assignment := assertions.AssertAssignment(exprStmt.Expression, "=")
		
		// validate the left-hand variable
		leftVar, ok := assignment.Left.(*ast.Variable)
		assert.True(ctx.T, ok, "Left side should be Variable")
		assert.Equal(ctx.T, varName, leftVar.Name)
		
		// validate the right-hand postfix expression
		unaryExpr, ok := assignment.Right.(*ast.UnaryExpression)
		assert.True(ctx.T, ok, "Right side should be UnaryExpression, got %T", assignment.Right)
		
		assert.Equal(ctx.T, operator, unaryExpr.Operator)
		assert.False(ctx.T, unaryExpr.Prefix, "Should be postfix unary expression")
		
		if operandVar != "" {
			operandVariable, ok := unaryExpr.Operand.(*ast.Variable)
			assert.True(ctx.T, ok, "Operand should be Variable")
			assert.Equal(ctx.T, operandVar, operandVariable.Name)
		}
	}
}

// ValidateBinaryAssignment validates a binary-expression assignment.
func ValidateBinaryAssignment(varName, leftVar, operator, rightVar string) ValidationFunc {
	return func(ctx *TestContext) {
		assertions := NewASTAssertions(ctx.T)
		body := assertions.AssertProgramBody(ctx.Program, 1)
		
		exprStmt := assertions.AssertExpressionStatement(body[0])
		assignment := assertions.AssertAssignment(exprStmt.Expression, "=")
		
		// validate the left-hand variable
		leftVariable, ok := assignment.Left.(*ast.Variable)
		assert.True(ctx.T, ok, "Left side should be Variable")
		assert.Equal(ctx.T, varName, leftVariable.Name)
		
		// validate the right-hand binary expression
		binExpr := assertions.AssertBinaryExpression(assignment.Right, operator)
		
		// validate the left operand
		if leftVar != "" {
			leftOperand, ok := binExpr.Left.(*ast.Variable)
			assert.True(ctx.T, ok, "Left operand should be Variable")
			assert.Equal(ctx.T, leftVar, leftOperand.Name)
		}
		
		// validate the right operand
		if rightVar != "" {
			rightOperand, ok := binExpr.Right.(*ast.Variable)
			assert.True(ctx.T, ok, "Right operand should be Variable")
			assert.Equal(ctx.T, rightVar, rightOperand.Name)
		}
	}
}

// ValidateCoalesceExpression validates a null-coalescing expression.
func ValidateCoalesceExpression(varName, leftVar, rightVar string) ValidationFunc {
	return func(ctx *TestContext) {
		assertions := NewASTAssertions(ctx.T)
		body := assertions.AssertProgramBody(ctx.Program, 1)
		
		exprStmt := assertions.AssertExpressionStatement(body[0])
		assignment := assertions.AssertAssignment(exprStmt.Expression, "=")
		
		// validate the left-hand variable
		leftVariable, ok := assignment.Left.(*ast.Variable)
		assert.True(ctx.T, ok, "Left side should be Variable")
		assert.Equal(ctx.T, varName, leftVariable.Name)
		
		// validate the right-hand coalesce expression
		coalesceExpr, ok := assignment.Right.(*ast.CoalesceExpression)
		assert.True(ctx.T, ok, "Right side should be CoalesceExpression, got %T", assignment.Right)
		
		// validate the left operand
		if leftVar != "" {
			leftOperand, ok := coalesceExpr.Left.(*ast.Variable)
			assert.True(ctx.T, ok, "Left operand should be Variable")
			assert.Equal(ctx.T, leftVar, leftOperand.Name)
		}
		
		// validate the right operand
		if rightVar != "" {
			rightOperand, ok := coalesceExpr.Right.(*ast.Variable)
			assert.True(ctx.T, ok, "Right operand should be Variable")
			assert.Equal(ctx.T, rightVar, rightOperand.Name)
		}
	}
}

// ValidateReturnStatement validates a return statement.
func ValidateReturnStatement(expectedValue string) ValidationFunc {
	return func(ctx *TestContext) {
		assertions := NewASTAssertions(ctx.T)
		body := assertions.AssertProgramBody(ctx.Program, 1)
		
		returnStmt, ok := body[0].(*ast.ReturnStatement)
		require.True(ctx.T, ok, "Statement should be ReturnStatement, got %T", body[0])
		
		if expectedValue != "" && returnStmt.Argument != nil {
			// validate based on the expected value's type
			if expectedValue[0] == '"' { // string literal
				stringLit, ok := returnStmt.Argument.(*ast.StringLiteral)
				require.True(ctx.T, ok, "Return argument should be StringLiteral")
				assert.Equal(ctx.T, expectedValue, stringLit.Raw)
			} else if expectedValue[0] >= '0' && expectedValue[0] <= '9' { // number literal
				numLit, ok := returnStmt.Argument.(*ast.NumberLiteral)
				require.True(ctx.T, ok, "Return argument should be NumberLiteral")
				assert.Equal(ctx.T, expectedValue, numLit.Value)
			} else if expectedValue[0] == '$' { // variable
				variable, ok := returnStmt.Argument.(*ast.Variable)
				require.True(ctx.T, ok, "Return argument should be Variable")
				assert.Equal(ctx.T, expectedValue, variable.Name)
			}
		}
	}
}

// ValidateReturnVariable validates a return of a variable.
func ValidateReturnVariable(varName string) ValidationFunc {
	return ValidateReturnStatement(varName)
}

// ValidateReturnBinaryExpression validates a return of a binary expression.
func ValidateReturnBinaryExpression(leftVar, operator, rightVar string) ValidationFunc {
	return func(ctx *TestContext) {
		assertions := NewASTAssertions(ctx.T)
		body := assertions.AssertProgramBody(ctx.Program, 1)
		
		returnStmt, ok := body[0].(*ast.ReturnStatement)
		require.True(ctx.T, ok, "Statement should be ReturnStatement")
		
		binExpr := assertions.AssertBinaryExpression(returnStmt.Argument, operator)
		
		// validate the left operand
		if leftVar != "" {
			if leftVar[0] == '$' {
				leftOperand, ok := binExpr.Left.(*ast.Variable)
				require.True(ctx.T, ok, "Left operand should be Variable")
				assert.Equal(ctx.T, leftVar, leftOperand.Name)
			}
		}
		
		// validate the right operand
		if rightVar != "" {
			if rightVar[0] == '$' {
				rightOperand, ok := binExpr.Right.(*ast.Variable)
				require.True(ctx.T, ok, "Right operand should be Variable")
				assert.Equal(ctx.T, rightVar, rightOperand.Name)
			} else if rightVar[0] >= '0' && rightVar[0] <= '9' {
				rightOperand, ok := binExpr.Right.(*ast.NumberLiteral)
				require.True(ctx.T, ok, "Right operand should be NumberLiteral")
				assert.Equal(ctx.T, rightVar, rightOperand.Value)
			}
		}
	}
}

// ValidateReturnNull validates a return null statement.
func ValidateReturnNull() ValidationFunc {
	return func(ctx *TestContext) {
		assertions := NewASTAssertions(ctx.T)
		body := assertions.AssertProgramBody(ctx.Program, 1)
		
		returnStmt, ok := body[0].(*ast.ReturnStatement)
		require.True(ctx.T, ok, "Statement should be ReturnStatement")
		
		// check whether it is null
		if nullLit, ok := returnStmt.Argument.(*ast.NullLiteral); ok {
			assert.NotNil(ctx.T, nullLit, "Should be null literal")
		} else if ident, ok := returnStmt.Argument.(*ast.IdentifierNode); ok {
			assert.Equal(ctx.T, "null", ident.Name)
		}
	}
}

// ValidatePropertyDeclaration validates a property declaration.
func ValidatePropertyDeclaration(visibility, varName, typeName, defaultValue string) ValidationFunc {
	return func(ctx *TestContext) {
		assertions := NewASTAssertions(ctx.T)
		body := assertions.AssertProgramBody(ctx.Program, 1)
		
		propDecl, ok := body[0].(*ast.PropertyDeclaration)
		require.True(ctx.T, ok, "Statement should be PropertyDeclaration, got %T", body[0])
		
		// validate visibility
		if visibility != "" {
			assert.Equal(ctx.T, visibility, propDecl.Visibility)
		}
		
		// validate the property name
		if varName != "" {
			expectedName := varName
			if expectedName[0] == '$' {
				expectedName = expectedName[1:] // strip the $ prefix; PropertyDeclaration.Name has none
			}
			assert.Equal(ctx.T, expectedName, propDecl.Name)
		}
	}
}

// ValidateInstanceofExpression validates an instanceof expression.
func ValidateInstanceofExpression(varName, objectVar, className string) ValidationFunc {
	return func(ctx *TestContext) {
		assertions := NewASTAssertions(ctx.T)
		body := assertions.AssertProgramBody(ctx.Program, 1)
		
		exprStmt := assertions.AssertExpressionStatement(body[0])
		assignment := assertions.AssertAssignment(exprStmt.Expression, "=")
		
		// validate the left-hand variable
		leftVar, ok := assignment.Left.(*ast.Variable)
		assert.True(ctx.T, ok, "Left side should be Variable")
		assert.Equal(ctx.T, varName, leftVar.Name)
		
		// validate the right-hand instanceof expression
		instanceofExpr, ok := assignment.Right.(*ast.InstanceofExpression)
		assert.True(ctx.T, ok, "Right side should be InstanceofExpression, got %T", assignment.Right)
		
		// validate the object variable
		if objectVar != "" {
			objectVariable, ok := instanceofExpr.Left.(*ast.Variable)
			assert.True(ctx.T, ok, "Left operand should be Variable")
			assert.Equal(ctx.T, objectVar, objectVariable.Name)
		}
		
		// validate the class name
		if className != "" {
			classIdent, ok := instanceofExpr.Right.(*ast.IdentifierNode)
			assert.True(ctx.T, ok, "Right operand should be IdentifierNode")
			assert.Equal(ctx.T, className, classIdent.Name)
		}
	}
}

// ValidateTernaryExpression validates a ternary expression.
func ValidateTernaryExpression(varName, conditionVar, trueVar, falseVar string) ValidationFunc {
	return func(ctx *TestContext) {
		assertions := NewASTAssertions(ctx.T)
		body := assertions.AssertProgramBody(ctx.Program, 1)
		
		exprStmt := assertions.AssertExpressionStatement(body[0])
		assignment := assertions.AssertAssignment(exprStmt.Expression, "=")
		
		// validate the left-hand variable
		leftVar, ok := assignment.Left.(*ast.Variable)
		assert.True(ctx.T, ok, "Left side should be Variable")
		assert.Equal(ctx.T, varName, leftVar.Name)
		
		// validate the right-hand ternary expression
		ternaryExpr, ok := assignment.Right.(*ast.TernaryExpression)
		assert.True(ctx.T, ok, "Right side should be TernaryExpression, got %T", assignment.Right)
		
		// validate the condition
		if conditionVar != "" {
			conditionVariable, ok := ternaryExpr.Test.(*ast.Variable)
			assert.True(ctx.T, ok, "Condition should be Variable")
			assert.Equal(ctx.T, conditionVar, conditionVariable.Name)
		}
		
		// validate the true branch
		if trueVar != "" {
			trueVariable, ok := ternaryExpr.Consequent.(*ast.Variable)
			assert.True(ctx.T, ok, "True value should be Variable")
			assert.Equal(ctx.T, trueVar, trueVariable.Name)
		}
		
		// validate the false branch
		if falseVar != "" {
			falseVariable, ok := ternaryExpr.Alternate.(*ast.Variable)
			assert.True(ctx.T, ok, "False value should be Variable")
			assert.Equal(ctx.T, falseVar, falseVariable.Name)
		}
	}
}

// ValidateAssignmentOperation validates an assignment operation.
func ValidateAssignmentOperation(varName, operator, valueVar string) ValidationFunc {
	return func(ctx *TestContext) {
		assertions := NewASTAssertions(ctx.T)
		body := assertions.AssertProgramBody(ctx.Program, 1)
		
		exprStmt := assertions.AssertExpressionStatement(body[0])
		assignment := assertions.AssertAssignment(exprStmt.Expression, operator)
		
		// validate the left-hand variable
		leftVar, ok := assignment.Left.(*ast.Variable)
		assert.True(ctx.T, ok, "Left side should be Variable")
		assert.Equal(ctx.T, varName, leftVar.Name)
		
		// validate the right-hand value
		if valueVar != "" {
			rightVariable, ok := assignment.Right.(*ast.Variable)
			assert.True(ctx.T, ok, "Right side should be Variable")
			assert.Equal(ctx.T, valueVar, rightVariable.Name)
		}
	}
}
