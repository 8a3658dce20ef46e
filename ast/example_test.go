package ast_test

import (
	"fmt"
	"log"

	"github.com/heyrt/phpcore/ast"
	"github.com/heyrt/phpcore/lexer"
)

// ExampleASTBuilder demonstrates using the AST builder.
func ExampleASTBuilder() {
	pos := lexer.Position{Line: 1, Column: 1, Offset: 0}
	builder := ast.NewASTBuilder()

	// build $name = "John";
	nameVar := builder.CreateVar(pos, "$name")
	john := builder.CreateZval(pos, "John")
	assignment := builder.CreateAssign(pos, nameVar, john)
	assignStmt := builder.CreateExpressionStatement(pos, assignment)

	// build echo $name;
	echoVar := builder.CreateVar(pos, "$name")
	echoStmt := builder.CreateEcho(pos, []ast.Node{echoVar})

	// build the program
	program := builder.CreateStmtList(pos, []ast.Node{assignStmt, echoStmt})

	fmt.Printf("AST Kind: %s\n", program.GetKind().String())
	fmt.Printf("Children: %d\n", len(program.GetChildren()))
	
	// Output:
	// AST Kind: STMT_LIST
	// Children: 2
}

// ExampleVisitor demonstrates using the visitor pattern.
func ExampleVisitor() {
	pos := lexer.Position{Line: 1, Column: 1, Offset: 0}
	builder := ast.NewASTBuilder()

	// build a simple AST: $x = $x + 1;
	x1 := builder.CreateVar(pos, "$x")
	x2 := builder.CreateVar(pos, "$x")
	one := builder.CreateZval(pos, 1)
	addition := builder.CreateBinaryOp(pos, x2, one, "+")
	assignment := builder.CreateAssign(pos, x1, addition)

	// count how many times $x is used
	varCount := ast.CountFunc(assignment, func(node ast.Node) bool {
		if v, ok := node.(*ast.Variable); ok && v.Name == "$x" {
			return true
		}
		return false
	})

	fmt.Printf("Variable $x used %d times\n", varCount)

	// find all binary operations
	binaryOps := ast.FindAllFunc(assignment, func(node ast.Node) bool {
		return node.GetKind() == ast.ASTBinaryOp
	})

	fmt.Printf("Found %d binary operations\n", len(binaryOps))

	// Output:
	// Variable $x used 2 times
	// Found 1 binary operations
}

// ExampleTransform demonstrates using AST transformation.
func ExampleTransform() {
	pos := lexer.Position{Line: 1, Column: 1, Offset: 0}
	
	// create the original variable
	original := ast.NewVariable(pos, "$oldName")

	// use a transformer to rename the variable
	transformed := ast.TransformFunc(original, func(node ast.Node) ast.Node {
		if v, ok := node.(*ast.Variable); ok && v.Name == "$oldName" {
			return ast.NewVariable(pos, "$newName")
		}
		return node
	})

	if v, ok := transformed.(*ast.Variable); ok {
		fmt.Printf("Transformed: %s\n", v.Name)
	}

	// Output:
	// Transformed: $newName
}

// ExampleASTKind demonstrates using AST kinds.
func ExampleASTKind() {
	// check kind properties
	fmt.Printf("ASTZval is special: %t\n", ast.ASTZval.IsSpecial())
	fmt.Printf("ASTArray is list: %t\n", ast.ASTArray.IsList())
	fmt.Printf("ASTFuncDecl is declaration: %t\n", ast.ASTFuncDecl.IsDecl())
	fmt.Printf("ASTBinaryOp has %d children\n", ast.ASTBinaryOp.GetNumChildren())

	// kind's string representation
	fmt.Printf("Kind names: %s, %s, %s\n", 
		ast.ASTVar.String(), 
		ast.ASTBinaryOp.String(), 
		ast.ASTEcho.String())

	// Output:
	// ASTZval is special: true
	// ASTArray is list: true
	// ASTFuncDecl is declaration: true
	// ASTBinaryOp has 2 children
	// Kind names: VAR, BINARY_OP, ECHO
}

// Example_complexAST demonstrates building a more complex AST structure.
func Example_complexAST() {
	pos := lexer.Position{Line: 1, Column: 1, Offset: 0}
	builder := ast.NewASTBuilder()

	// build: if ($x > 0) { echo "positive"; } else { echo "non-positive"; }
	
	// condition: $x > 0
	x := builder.CreateVar(pos, "$x")
	zero := builder.CreateZval(pos, 0)
	condition := builder.CreateBinaryOp(pos, x, zero, ">")

	// then branch: echo "positive";
	positive := builder.CreateZval(pos, "positive")
	echoPositive := builder.CreateEcho(pos, []ast.Node{positive})

	// else branch: echo "non-positive";
	nonPositive := builder.CreateZval(pos, "non-positive")
	echoNonPositive := builder.CreateEcho(pos, []ast.Node{nonPositive})

	// if statement
	ifStmt := builder.CreateIf(pos, condition, 
		[]ast.Node{echoPositive}, 
		[]ast.Node{echoNonPositive})

	// count the nodes
	nodeCount := 0
	ast.Walk(ast.VisitorFunc(func(node ast.Node) bool {
		nodeCount++
		return true
	}), ifStmt)

	fmt.Printf("Total nodes: %d\n", nodeCount)
	fmt.Printf("AST Kind: %s\n", ifStmt.GetKind().String())

	// find all echo statements
	echoNodes := ast.FindAllFunc(ifStmt, func(node ast.Node) bool {
		return node.GetKind() == ast.ASTEcho
	})

	fmt.Printf("Echo statements: %d\n", len(echoNodes))

	// Output:
	// Total nodes: 8
	// AST Kind: IF
	// Echo statements: 2
}

// Example_jsonSerialization demonstrates JSON serialization.
func Example_jsonSerialization() {
	pos := lexer.Position{Line: 1, Column: 1, Offset: 0}
	variable := ast.NewVariable(pos, "$test")

	// serialize to JSON
	jsonData, err := variable.ToJSON()
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("JSON contains kind: %t\n", 
		string(jsonData) != "" && variable.GetKind() == ast.ASTVar)
	fmt.Printf("JSON contains name: %t\n", 
		string(jsonData) != "" && variable.Name == "$test")

	// Output:
	// JSON contains kind: true
	// JSON contains name: true
}