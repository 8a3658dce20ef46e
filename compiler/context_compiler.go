package compiler

import (
	"fmt"
	"strings"

	"github.com/heyrt/phpcore/ast"
	"github.com/heyrt/phpcore/opcodes"
	"github.com/heyrt/phpcore/registry"
	"github.com/heyrt/phpcore/values"
)

// ContextCompilerFixed is the context-based compiler that emits bytecode
// directly against the registry/VM contract instead of an intermediate
// "Compiler*" type hierarchy. The compiler itself is stateless; all state
// lives in the CompileContext threaded through every call.
type ContextCompilerFixed struct{}

// NewContextCompilerFixed creates a new context-based compiler
func NewContextCompilerFixed() *ContextCompilerFixed {
	return &ContextCompilerFixed{}
}

// Compile compiles an AST node using the provided context
func (c *ContextCompilerFixed) Compile(ctx *CompileContext, node ast.Node) error {
	if ctx == nil {
		return fmt.Errorf("compilation context cannot be nil")
	}
	if node == nil {
		return nil
	}

	if err := c.compileStatement(ctx, node); err != nil {
		return err
	}

	if ctx.IsGlobalScope() {
		if len(ctx.Instructions) == 0 || ctx.Instructions[len(ctx.Instructions)-1].Opcode != opcodes.OP_RETURN {
			ctx.EmitInstruction(opcodes.OP_RETURN, opcodes.IS_CONST, ctx.AddConstant(values.NewNull()), opcodes.IS_UNUSED, 0, opcodes.IS_UNUSED, 0)
		}
	}

	return nil
}

// compileStatement dispatches over every statement-ish node the parser can
// hand us, including a bare expression used as a statement.
func (c *ContextCompilerFixed) compileStatement(ctx *CompileContext, node ast.Node) error {
	if node == nil {
		return nil
	}

	switch n := node.(type) {
	case *ast.Program:
		return c.compileProgram(ctx, n)
	case *ast.BlockStatement:
		return c.compileBlock(ctx, n)
	case *ast.ExpressionStatement:
		return c.compileExpressionStatement(ctx, n)
	case *ast.EchoStatement:
		return c.compileEcho(ctx, n)
	case *ast.IfStatement:
		return c.compileIf(ctx, n)
	case *ast.WhileStatement:
		return c.compileWhile(ctx, n)
	case *ast.DoWhileStatement:
		return c.compileDoWhile(ctx, n)
	case *ast.ForStatement:
		return c.compileForLoop(ctx, n)
	case *ast.ForeachStatement:
		return c.compileForeachLoop(ctx, n)
	case *ast.SwitchStatement:
		return c.compileSwitch(ctx, n)
	case *ast.BreakStatement:
		return c.compileBreak(ctx, n)
	case *ast.ContinueStatement:
		return c.compileContinue(ctx, n)
	case *ast.ReturnStatement:
		return c.compileReturn(ctx, n)
	case *ast.ThrowStatement:
		return c.compileThrow(ctx, n)
	case *ast.GlobalStatement:
		return c.compileGlobal(ctx, n)
	case *ast.StaticStatement:
		return c.compileStatic(ctx, n)
	case *ast.UnsetStatement:
		return c.compileUnset(ctx, n)
	case *ast.DeclareStatement:
		return c.compileDeclare(ctx, n)
	case *ast.HaltCompilerStatement:
		return nil
	case *ast.TryStatement:
		return c.compileTry(ctx, n)
	case *ast.FunctionDeclaration:
		return c.compileFunctionDeclaration(ctx, n)
	case *ast.ClassDeclaration:
		return c.compileClassDeclaration(ctx, n)
	case *ast.InterfaceDeclaration:
		return c.compileInterfaceDeclaration(ctx, n)
	case *ast.TraitDeclaration:
		return c.compileTraitDeclaration(ctx, n)
	default:
		return fmt.Errorf("unsupported statement type: %T", n)
	}
}

// compileExpr compiles an expression node and returns the operand holding
// its result - a constant, a temp var, or a local variable slot. Not every
// expression needs an instruction: literals simply intern into the constant
// pool and are referenced directly (the VM has no FETCH_CONSTANT handler,
// so materializing a literal via an instruction would be a runtime error).
func (c *ContextCompilerFixed) compileExpr(ctx *CompileContext, node ast.Node) (Operand, error) {
	switch n := node.(type) {
	case *ast.IntegerLiteral:
		return ctx.ConstOperand(values.NewInt(n.Value)), nil
	case *ast.FloatLiteral:
		return ctx.ConstOperand(values.NewFloat(n.Value)), nil
	case *ast.StringLiteral:
		return ctx.ConstOperand(values.NewString(n.Value)), nil
	case *ast.BooleanLiteral:
		return ctx.ConstOperand(values.NewBool(n.Value)), nil
	case *ast.NullLiteral:
		return ctx.ConstOperand(values.NewNull()), nil
	case *ast.IdentifierNode:
		// A bareword used as an expression: a class name, a function name
		// reference, or a global constant. Global constant fetch has no
		// VM opcode support yet, so barewords are compiled as their raw
		// string - correct for the class/function-name positions that
		// are their only use in this implementation.
		return ctx.ConstOperand(values.NewString(n.Value)), nil
	case *ast.Variable:
		return c.compileVariable(ctx, n)
	case *ast.BinaryExpression:
		return c.compileBinaryOp(ctx, n)
	case *ast.UnaryExpression:
		return c.compileUnaryOp(ctx, n)
	case *ast.AssignmentExpression:
		return c.compileAssignment(ctx, n)
	case *ast.ArrayExpression:
		return c.compileArray(ctx, n)
	case *ast.ArrayAccessExpression:
		return c.compileArrayAccess(ctx, n)
	case *ast.MemberAccessExpression:
		return c.compilePropertyAccess(ctx, n)
	case *ast.FunctionCallExpression:
		return c.compileFunctionCall(ctx, n)
	case *ast.NewExpression:
		return c.compileNew(ctx, n)
	case *ast.AnonymousFunctionExpression:
		return c.compileAnonymousFunction(ctx, n)
	case *ast.PrintExpression:
		return c.compilePrint(ctx, n)
	case *ast.IncludeExpression:
		return c.compileInclude(ctx, n)
	case *ast.MatchExpression:
		return c.compileMatch(ctx, n)
	case *ast.EvalExpression:
		return c.compileEval(ctx, n)
	case *ast.CastExpression:
		return c.compileCastExpr(ctx, n)
	default:
		return UnusedOperand, fmt.Errorf("unsupported expression type: %T", n)
	}
}

// compileCastExpr compiles a `(type) expr` cast. The unset cast was removed
// in PHP 8 but still always evaluated to NULL under PHP 7, so it is folded
// to a constant here rather than wired to a VM opcode.
func (c *ContextCompilerFixed) compileCastExpr(ctx *CompileContext, node *ast.CastExpression) (Operand, error) {
	if node.Type == "unset" {
		return ctx.ConstOperand(values.NewNull()), nil
	}

	operand, err := c.compileExpr(ctx, node.Expression)
	if err != nil {
		return UnusedOperand, err
	}

	switch node.Type {
	case "bool":
		return ctx.Emit1(opcodes.OP_CAST_BOOL, operand), nil
	case "int":
		return ctx.Emit1(opcodes.OP_CAST_LONG, operand), nil
	case "float":
		return ctx.Emit1(opcodes.OP_CAST_DOUBLE, operand), nil
	case "string":
		return ctx.Emit1(opcodes.OP_CAST_STRING, operand), nil
	case "array":
		return ctx.Emit1(opcodes.OP_CAST_ARRAY, operand), nil
	case "object":
		return ctx.Emit1(opcodes.OP_CAST_OBJECT, operand), nil
	default:
		return UnusedOperand, fmt.Errorf("unsupported cast type: %s", node.Type)
	}
}

func (c *ContextCompilerFixed) compileVariable(ctx *CompileContext, node *ast.Variable) (Operand, error) {
	slot := ctx.GetOrCreateVariable(node.Name)
	return ctx.Emit1(opcodes.OP_FETCH_R, Operand{Type: opcodes.IS_VAR, Slot: slot}), nil
}

// Assignment operations

func (c *ContextCompilerFixed) compileAssignment(ctx *CompileContext, node *ast.AssignmentExpression) (Operand, error) {
	if node.Operator != "=" {
		return c.compileCompoundAssignment(ctx, node)
	}

	rhs, err := c.compileExpr(ctx, node.Right)
	if err != nil {
		return UnusedOperand, err
	}

	switch left := node.Left.(type) {
	case *ast.Variable:
		slot := ctx.GetOrCreateVariable(left.Name)
		ctx.EmitInstruction(opcodes.OP_ASSIGN, rhs.Type, rhs.Slot, opcodes.IS_UNUSED, 0, opcodes.IS_VAR, slot)
		return Operand{Type: opcodes.IS_VAR, Slot: slot}, nil

	case *ast.MemberAccessExpression:
		objOp, err := c.compileExpr(ctx, left.Object)
		if err != nil {
			return UnusedOperand, err
		}
		propOp, err := c.compilePropertyNameOperand(ctx, left.Property)
		if err != nil {
			return UnusedOperand, err
		}
		// ASSIGN_OBJ reads the value from the Result operand slot (an
		// inverted convention), so the rhs operand must be preloaded there.
		ctx.EmitInstruction(opcodes.OP_ASSIGN_OBJ, objOp.Type, objOp.Slot, propOp.Type, propOp.Slot, rhs.Type, rhs.Slot)
		return rhs, nil

	case *ast.ArrayAccessExpression:
		arrOp, err := c.compileExpr(ctx, left.Array)
		if err != nil {
			return UnusedOperand, err
		}
		var keyOp Operand
		if left.Index != nil {
			keyOp, err = c.compileExpr(ctx, left.Index)
			if err != nil {
				return UnusedOperand, err
			}
		} else {
			keyOp = UnusedOperand
		}
		ctx.EmitInstruction(opcodes.OP_ASSIGN_DIM, arrOp.Type, arrOp.Slot, keyOp.Type, keyOp.Slot, rhs.Type, rhs.Slot)
		return rhs, nil

	default:
		return UnusedOperand, fmt.Errorf("unsupported assignment target: %T", node.Left)
	}
}

var compoundOpReserved = map[string]byte{
	"+=": 1, "-=": 2, "*=": 3, "/=": 4, "%=": 5, "**=": 6, ".=": 8,
	"&=": 9, "|=": 10, "^=": 11, "<<=": 12, ">>=": 13,
}

func (c *ContextCompilerFixed) compileCompoundAssignment(ctx *CompileContext, node *ast.AssignmentExpression) (Operand, error) {
	reserved, ok := compoundOpReserved[node.Operator]
	if !ok {
		return UnusedOperand, fmt.Errorf("unsupported compound assignment operator: %s", node.Operator)
	}

	variable, ok := node.Left.(*ast.Variable)
	if !ok {
		return UnusedOperand, fmt.Errorf("compound assignment only supports simple variable targets, got %T", node.Left)
	}
	slot := ctx.GetOrCreateVariable(variable.Name)

	rhs, err := c.compileExpr(ctx, node.Right)
	if err != nil {
		return UnusedOperand, err
	}

	result := ctx.GetNextTemp()
	inst := ctx.EmitInstruction(opcodes.OP_ASSIGN_OP, opcodes.IS_VAR, slot, rhs.Type, rhs.Slot, opcodes.IS_VAR, slot)
	inst.Reserved = reserved
	_ = result
	return Operand{Type: opcodes.IS_VAR, Slot: slot}, nil
}

// Binary and unary operations

var binaryOpcodes = map[string]opcodes.Opcode{
	"+": opcodes.OP_ADD, "-": opcodes.OP_SUB, "*": opcodes.OP_MUL,
	"/": opcodes.OP_DIV, "%": opcodes.OP_MOD, "**": opcodes.OP_POW,
	".": opcodes.OP_CONCAT,
	"==": opcodes.OP_IS_EQUAL, "!=": opcodes.OP_IS_NOT_EQUAL, "<>": opcodes.OP_IS_NOT_EQUAL,
	"===": opcodes.OP_IS_IDENTICAL, "!==": opcodes.OP_IS_NOT_IDENTICAL,
	"<": opcodes.OP_IS_SMALLER, "<=": opcodes.OP_IS_SMALLER_OR_EQUAL,
	">": opcodes.OP_IS_GREATER, ">=": opcodes.OP_IS_GREATER_OR_EQUAL,
	"&&": opcodes.OP_BOOLEAN_AND, "and": opcodes.OP_BOOLEAN_AND,
	"||": opcodes.OP_BOOLEAN_OR, "or": opcodes.OP_BOOLEAN_OR,
	"&": opcodes.OP_BW_AND, "|": opcodes.OP_BW_OR, "^": opcodes.OP_BW_XOR,
	"<<": opcodes.OP_SL, ">>": opcodes.OP_SR,
}

func (c *ContextCompilerFixed) compileBinaryOp(ctx *CompileContext, node *ast.BinaryExpression) (Operand, error) {
	left, err := c.compileExpr(ctx, node.Left)
	if err != nil {
		return UnusedOperand, err
	}
	right, err := c.compileExpr(ctx, node.Right)
	if err != nil {
		return UnusedOperand, err
	}
	opcode, ok := binaryOpcodes[node.Operator]
	if !ok {
		return UnusedOperand, fmt.Errorf("unsupported binary operator: %s", node.Operator)
	}
	return ctx.Emit2(opcode, left, right), nil
}

func (c *ContextCompilerFixed) compileUnaryOp(ctx *CompileContext, node *ast.UnaryExpression) (Operand, error) {
	operand, err := c.compileExpr(ctx, node.Right)
	if err != nil {
		return UnusedOperand, err
	}
	switch node.Operator {
	case "-":
		return ctx.Emit1(opcodes.OP_MINUS, operand), nil
	case "+":
		return ctx.Emit1(opcodes.OP_PLUS, operand), nil
	case "!":
		return ctx.Emit1(opcodes.OP_NOT, operand), nil
	case "~":
		return ctx.Emit1(opcodes.OP_BW_NOT, operand), nil
	default:
		return UnusedOperand, fmt.Errorf("unsupported unary operator: %s", node.Operator)
	}
}

// Program and statement compilation

func (c *ContextCompilerFixed) compileProgram(ctx *CompileContext, node *ast.Program) error {
	for _, stmt := range node.Body {
		if err := c.compileStatement(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

func (c *ContextCompilerFixed) compileExpressionStatement(ctx *CompileContext, node *ast.ExpressionStatement) error {
	_, err := c.compileExpr(ctx, node.Expression)
	return err
}

// compileBlock compiles directly into the enclosing context: PHP variables
// are function-scoped, not block-scoped, so a nested CompileContext here
// would both misplace variable slots and strand constants that never get
// merged back into the enclosing instruction stream.
func (c *ContextCompilerFixed) compileBlock(ctx *CompileContext, node *ast.BlockStatement) error {
	for _, stmt := range node.Statements {
		if err := c.compileStatement(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

func (c *ContextCompilerFixed) compileEcho(ctx *CompileContext, node *ast.EchoStatement) error {
	for _, arg := range node.Arguments {
		operand, err := c.compileExpr(ctx, arg)
		if err != nil {
			return err
		}
		ctx.EmitInstruction(opcodes.OP_ECHO, operand.Type, operand.Slot, opcodes.IS_UNUSED, 0, opcodes.IS_UNUSED, 0)
	}
	return nil
}

func (c *ContextCompilerFixed) compilePrint(ctx *CompileContext, node *ast.PrintExpression) (Operand, error) {
	operand, err := c.compileExpr(ctx, node.Expression)
	if err != nil {
		return UnusedOperand, err
	}
	ctx.EmitInstruction(opcodes.OP_ECHO, operand.Type, operand.Slot, opcodes.IS_UNUSED, 0, opcodes.IS_UNUSED, 0)
	return ctx.ConstOperand(values.NewInt(1)), nil
}

// compileInclude lowers include/include_once/require/require_once to the
// matching opcode; the path expression is Op1, the result (the included
// file's return value, or a boolean/int per PHP's include semantics) is
// written to a fresh temp. eval() is not lowered here; compileEval emits
// OP_EVAL for it.
func (c *ContextCompilerFixed) compileInclude(ctx *CompileContext, node *ast.IncludeExpression) (Operand, error) {
	path, err := c.compileExpr(ctx, node.Expression)
	if err != nil {
		return UnusedOperand, err
	}

	var opcode opcodes.Opcode
	switch node.Type {
	case "include":
		opcode = opcodes.OP_INCLUDE
	case "include_once":
		opcode = opcodes.OP_INCLUDE_ONCE
	case "require":
		opcode = opcodes.OP_REQUIRE
	case "require_once":
		opcode = opcodes.OP_REQUIRE_ONCE
	default:
		return UnusedOperand, fmt.Errorf("unknown include type: %s", node.Type)
	}

	result := ctx.GetNextTemp()
	ctx.EmitInstruction(opcode, path.Type, path.Slot, opcodes.IS_UNUSED, 0, opcodes.IS_TMP_VAR, result)
	return Operand{Type: opcodes.IS_TMP_VAR, Slot: result}, nil
}

// compileEval lowers `eval($code)` to OP_EVAL, which lexes/parses the
// operand's string value and runs it through the same CompilerCallback
// execInclude uses, in the caller's own frame (see vm.execEval).
func (c *ContextCompilerFixed) compileEval(ctx *CompileContext, node *ast.EvalExpression) (Operand, error) {
	code, err := c.compileExpr(ctx, node.Code)
	if err != nil {
		return UnusedOperand, err
	}
	result := ctx.GetNextTemp()
	ctx.EmitInstruction(opcodes.OP_EVAL, code.Type, code.Slot, opcodes.IS_UNUSED, 0, opcodes.IS_TMP_VAR, result)
	return Operand{Type: opcodes.IS_TMP_VAR, Slot: result}, nil
}

func (c *ContextCompilerFixed) compileGlobal(ctx *CompileContext, node *ast.GlobalStatement) error {
	for _, v := range node.Variables {
		variable, ok := v.(*ast.Variable)
		if !ok {
			return fmt.Errorf("global statement requires simple variables, got %T", v)
		}
		slot := ctx.GetOrCreateVariable(variable.Name)
		nameConst := ctx.AddConstant(values.NewString(variable.Name))
		ctx.EmitInstruction(opcodes.OP_BIND_GLOBAL, opcodes.IS_CONST, nameConst, opcodes.IS_UNUSED, 0, opcodes.IS_VAR, slot)
	}
	return nil
}

func (c *ContextCompilerFixed) compileStatic(ctx *CompileContext, node *ast.StaticStatement) error {
	for _, v := range node.Variables {
		slot := ctx.GetOrCreateVariable(v.Name)
		var defaultOp Operand
		if v.DefaultValue != nil {
			var err error
			defaultOp, err = c.compileExpr(ctx, v.DefaultValue)
			if err != nil {
				return err
			}
		} else {
			defaultOp = ctx.ConstOperand(values.NewNull())
		}
		ctx.EmitInstruction(opcodes.OP_ASSIGN, defaultOp.Type, defaultOp.Slot, opcodes.IS_UNUSED, 0, opcodes.IS_VAR, slot)
	}
	return nil
}

func (c *ContextCompilerFixed) compileUnset(ctx *CompileContext, node *ast.UnsetStatement) error {
	for _, v := range node.Variables {
		variable, ok := v.(*ast.Variable)
		if !ok {
			return fmt.Errorf("unset requires simple variables, got %T", v)
		}
		slot := ctx.GetOrCreateVariable(variable.Name)
		ctx.EmitInstruction(opcodes.OP_UNSET_VAR, opcodes.IS_VAR, slot, opcodes.IS_UNUSED, 0, opcodes.IS_UNUSED, 0)
	}
	return nil
}

// compileDeclare only handles strict_types: it is compile-time only and
// emits no instructions of its own (per the language's declare semantics),
// but its value must be latched onto the root context before any function
// in this file compiles, since strict_types is captured at definition time.
func (c *ContextCompilerFixed) compileDeclare(ctx *CompileContext, node *ast.DeclareStatement) error {
	for _, decl := range node.Declarations {
		assign, ok := decl.(*ast.AssignmentExpression)
		if !ok {
			continue
		}
		name, ok := expressionName(assign.Left)
		if !ok || name != "strict_types" {
			continue
		}
		if intLit, ok := assign.Right.(*ast.IntegerLiteral); ok {
			ctx.GetRootContext().StrictTypes = intLit.Value != 0
		}
	}

	if node.Body != nil {
		return c.compileStatement(ctx, node.Body)
	}
	return nil
}

// Control flow statements

func (c *ContextCompilerFixed) compileIf(ctx *CompileContext, node *ast.IfStatement) error {
	endLabel := ctx.GetNextLabel()

	cond, err := c.compileExpr(ctx, node.Condition)
	if err != nil {
		return err
	}
	nextLabel := ctx.GetNextLabel()
	ctx.EmitConditionalJump(opcodes.OP_JMPZ, cond, nextLabel)

	if err := c.compileStatement(ctx, node.ThenStatement); err != nil {
		return err
	}
	ctx.EmitJump(endLabel)
	ctx.PlaceLabel(nextLabel)

	for _, elseIf := range node.ElseIfStatements {
		elseIfCond, err := c.compileExpr(ctx, elseIf.Condition)
		if err != nil {
			return err
		}
		afterLabel := ctx.GetNextLabel()
		ctx.EmitConditionalJump(opcodes.OP_JMPZ, elseIfCond, afterLabel)
		if err := c.compileStatement(ctx, elseIf.Body); err != nil {
			return err
		}
		ctx.EmitJump(endLabel)
		ctx.PlaceLabel(afterLabel)
	}

	if node.ElseStatement != nil {
		if err := c.compileStatement(ctx, node.ElseStatement); err != nil {
			return err
		}
	}

	ctx.PlaceLabel(endLabel)
	return nil
}

func (c *ContextCompilerFixed) compileWhile(ctx *CompileContext, node *ast.WhileStatement) error {
	startLabel := ctx.GetNextLabel()
	endLabel := ctx.GetNextLabel()

	oldBreak, oldContinue := ctx.BreakLabel, ctx.ContinueLabel
	ctx.BreakLabel, ctx.ContinueLabel = endLabel, startLabel

	ctx.PlaceLabel(startLabel)
	cond, err := c.compileExpr(ctx, node.Condition)
	if err != nil {
		return err
	}
	ctx.EmitConditionalJump(opcodes.OP_JMPZ, cond, endLabel)

	if err := c.compileStatement(ctx, node.Body); err != nil {
		return err
	}
	ctx.EmitJump(startLabel)
	ctx.PlaceLabel(endLabel)

	ctx.BreakLabel, ctx.ContinueLabel = oldBreak, oldContinue
	return nil
}

func (c *ContextCompilerFixed) compileDoWhile(ctx *CompileContext, node *ast.DoWhileStatement) error {
	startLabel := ctx.GetNextLabel()
	continueLabel := ctx.GetNextLabel()
	endLabel := ctx.GetNextLabel()

	oldBreak, oldContinue := ctx.BreakLabel, ctx.ContinueLabel
	ctx.BreakLabel, ctx.ContinueLabel = endLabel, continueLabel

	ctx.PlaceLabel(startLabel)
	if err := c.compileStatement(ctx, node.Body); err != nil {
		return err
	}
	ctx.PlaceLabel(continueLabel)
	cond, err := c.compileExpr(ctx, node.Condition)
	if err != nil {
		return err
	}
	ctx.EmitConditionalJump(opcodes.OP_JMPNZ, cond, startLabel)
	ctx.PlaceLabel(endLabel)

	ctx.BreakLabel, ctx.ContinueLabel = oldBreak, oldContinue
	return nil
}

func (c *ContextCompilerFixed) compileForLoop(ctx *CompileContext, node *ast.ForStatement) error {
	for _, initExpr := range node.Init {
		if _, err := c.compileExpr(ctx, initExpr); err != nil {
			return err
		}
	}

	startLabel := ctx.GetNextLabel()
	continueLabel := ctx.GetNextLabel()
	endLabel := ctx.GetNextLabel()

	oldBreak, oldContinue := ctx.BreakLabel, ctx.ContinueLabel
	ctx.BreakLabel, ctx.ContinueLabel = endLabel, continueLabel

	ctx.PlaceLabel(startLabel)
	var lastCond Operand
	for _, condExpr := range node.Condition {
		var err error
		lastCond, err = c.compileExpr(ctx, condExpr)
		if err != nil {
			return err
		}
	}
	if len(node.Condition) > 0 {
		ctx.EmitConditionalJump(opcodes.OP_JMPZ, lastCond, endLabel)
	}

	if err := c.compileStatement(ctx, node.Body); err != nil {
		return err
	}

	ctx.PlaceLabel(continueLabel)
	for _, updateExpr := range node.Update {
		if _, err := c.compileExpr(ctx, updateExpr); err != nil {
			return err
		}
	}
	ctx.EmitJump(startLabel)
	ctx.PlaceLabel(endLabel)

	ctx.BreakLabel, ctx.ContinueLabel = oldBreak, oldContinue
	return nil
}

// compileForeachLoop relies on a key-identity exhaustion check: OP_FE_FETCH
// has no exhaustion signal of its own (it always reports "advance normally"
// and writes null/null on the last iteration), but a real PHP array key is
// never null, so comparing the fetched key against the null constant with
// OP_IS_IDENTICAL reliably distinguishes "exhausted" from "key really is
// null" - which cannot happen for array keys.
func (c *ContextCompilerFixed) compileForeachLoop(ctx *CompileContext, node *ast.ForeachStatement) error {
	iterable, err := c.compileExpr(ctx, node.Iterable)
	if err != nil {
		return err
	}

	startLabel := ctx.GetNextLabel()
	endLabel := ctx.GetNextLabel()

	oldBreak, oldContinue := ctx.BreakLabel, ctx.ContinueLabel
	ctx.BreakLabel, ctx.ContinueLabel = endLabel, startLabel

	ctx.EmitInstruction(opcodes.OP_FE_RESET, iterable.Type, iterable.Slot, opcodes.IS_UNUSED, 0, opcodes.IS_UNUSED, 0)

	valueSlot := ctx.GetNextTemp()
	keySlot := ctx.GetOrCreateVariable(fmt.Sprintf("__foreach_key_%d", ctx.NextLabel))

	ctx.PlaceLabel(startLabel)
	ctx.EmitInstruction(opcodes.OP_FE_FETCH, iterable.Type, iterable.Slot, opcodes.IS_TMP_VAR, valueSlot, opcodes.IS_VAR, keySlot)

	exhausted := ctx.Emit2(opcodes.OP_IS_IDENTICAL, Operand{Type: opcodes.IS_VAR, Slot: keySlot}, ctx.ConstOperand(values.NewNull()))
	ctx.EmitConditionalJump(opcodes.OP_JMPNZ, exhausted, endLabel)

	if node.Key != nil {
		if keyVar, ok := node.Key.(*ast.Variable); ok {
			targetSlot := ctx.GetOrCreateVariable(keyVar.Name)
			ctx.EmitInstruction(opcodes.OP_ASSIGN, opcodes.IS_VAR, keySlot, opcodes.IS_UNUSED, 0, opcodes.IS_VAR, targetSlot)
		}
	}

	if valueVar, ok := node.Value.(*ast.Variable); ok {
		targetSlot := ctx.GetOrCreateVariable(valueVar.Name)
		ctx.EmitInstruction(opcodes.OP_ASSIGN, opcodes.IS_TMP_VAR, valueSlot, opcodes.IS_UNUSED, 0, opcodes.IS_VAR, targetSlot)
	}

	if err := c.compileStatement(ctx, node.Body); err != nil {
		return err
	}

	ctx.EmitJump(startLabel)
	ctx.PlaceLabel(endLabel)
	ctx.EmitInstruction(opcodes.OP_FE_FREE, iterable.Type, iterable.Slot, opcodes.IS_UNUSED, 0, opcodes.IS_UNUSED, 0)

	ctx.BreakLabel, ctx.ContinueLabel = oldBreak, oldContinue
	return nil
}

func (c *ContextCompilerFixed) compileSwitch(ctx *CompileContext, node *ast.SwitchStatement) error {
	discriminant, err := c.compileExpr(ctx, node.Expression)
	if err != nil {
		return err
	}

	endLabel := ctx.GetNextLabel()
	oldBreak := ctx.BreakLabel
	ctx.BreakLabel = endLabel

	bodyLabels := make([]string, len(node.Cases))
	for i := range node.Cases {
		bodyLabels[i] = ctx.GetNextLabel()
	}
	defaultIndex := -1

	for i, switchCase := range node.Cases {
		if switchCase.Condition == nil {
			defaultIndex = i
			continue
		}
		caseValue, err := c.compileExpr(ctx, switchCase.Condition)
		if err != nil {
			ctx.BreakLabel = oldBreak
			return err
		}
		cmp := ctx.Emit2(opcodes.OP_IS_EQUAL, discriminant, caseValue)
		ctx.EmitConditionalJump(opcodes.OP_JMPNZ, cmp, bodyLabels[i])
	}

	if defaultIndex >= 0 {
		ctx.EmitJump(bodyLabels[defaultIndex])
	} else {
		ctx.EmitJump(endLabel)
	}

	for i, switchCase := range node.Cases {
		ctx.PlaceLabel(bodyLabels[i])
		for _, stmt := range switchCase.Statements {
			if err := c.compileStatement(ctx, stmt); err != nil {
				ctx.BreakLabel = oldBreak
				return err
			}
		}
	}

	ctx.PlaceLabel(endLabel)
	ctx.BreakLabel = oldBreak
	return nil
}

func (c *ContextCompilerFixed) compileBreak(ctx *CompileContext, node *ast.BreakStatement) error {
	if ctx.BreakLabel == "" {
		return fmt.Errorf("break statement not within a loop or switch")
	}
	ctx.EmitJump(ctx.BreakLabel)
	return nil
}

func (c *ContextCompilerFixed) compileContinue(ctx *CompileContext, node *ast.ContinueStatement) error {
	if ctx.ContinueLabel == "" {
		return fmt.Errorf("continue statement not within a loop")
	}
	ctx.EmitJump(ctx.ContinueLabel)
	return nil
}

func (c *ContextCompilerFixed) compileReturn(ctx *CompileContext, node *ast.ReturnStatement) error {
	if node.Value != nil {
		value, err := c.compileExpr(ctx, node.Value)
		if err != nil {
			return err
		}
		ctx.EmitInstruction(opcodes.OP_RETURN, value.Type, value.Slot, opcodes.IS_UNUSED, 0, opcodes.IS_UNUSED, 0)
	} else {
		nullConstant := ctx.AddConstant(values.NewNull())
		ctx.EmitInstruction(opcodes.OP_RETURN, opcodes.IS_CONST, nullConstant, opcodes.IS_UNUSED, 0, opcodes.IS_UNUSED, 0)
	}
	return nil
}

func (c *ContextCompilerFixed) compileThrow(ctx *CompileContext, node *ast.ThrowStatement) error {
	value, err := c.compileExpr(ctx, node.Expression)
	if err != nil {
		return err
	}
	ctx.EmitInstruction(opcodes.OP_THROW, value.Type, value.Slot, opcodes.IS_UNUSED, 0, opcodes.IS_UNUSED, 0)
	return nil
}

// compileMatch lowers a `match` expression into a cascade of strict (===)
// comparisons against the subject, evaluated once into a temp, mirroring the
// per-arm bodyLabel/nextLabel shape compileTry already uses for catch-clause
// type matching. Each matching arm's value is copied into a shared result
// temp via OP_ASSIGN before jumping to the join point. No arm matching and no
// default clause present means PHP raises UnhandledMatchError; a default arm
// (Conditions == nil) is always tried last regardless of its position in
// source, since match semantics only fall back to it once nothing else
// matched.
func (c *ContextCompilerFixed) compileMatch(ctx *CompileContext, node *ast.MatchExpression) (Operand, error) {
	subject, err := c.compileExpr(ctx, node.Condition)
	if err != nil {
		return UnusedOperand, err
	}
	subjectSlot := ctx.GetNextTemp()
	ctx.EmitInstruction(opcodes.OP_ASSIGN, subject.Type, subject.Slot, opcodes.IS_UNUSED, 0, opcodes.IS_TMP_VAR, subjectSlot)
	subjectOp := Operand{Type: opcodes.IS_TMP_VAR, Slot: subjectSlot}

	resultSlot := ctx.GetNextTemp()
	endLabel := ctx.GetNextLabel()

	var defaultArm *ast.MatchArm
	for _, arm := range node.Arms {
		if arm.Conditions == nil {
			defaultArm = arm
			continue
		}
		bodyLabel := ctx.GetNextLabel()
		nextLabel := ctx.GetNextLabel()
		for _, cond := range arm.Conditions {
			condOp, err := c.compileExpr(ctx, cond)
			if err != nil {
				return UnusedOperand, err
			}
			cmpSlot := ctx.GetNextTemp()
			ctx.EmitInstruction(opcodes.OP_IS_IDENTICAL, subjectOp.Type, subjectOp.Slot, condOp.Type, condOp.Slot, opcodes.IS_TMP_VAR, cmpSlot)
			ctx.EmitConditionalJump(opcodes.OP_JMPNZ, Operand{Type: opcodes.IS_TMP_VAR, Slot: cmpSlot}, bodyLabel)
		}
		ctx.EmitJump(nextLabel)

		ctx.PlaceLabel(bodyLabel)
		value, err := c.compileExpr(ctx, arm.Expression)
		if err != nil {
			return UnusedOperand, err
		}
		ctx.EmitInstruction(opcodes.OP_ASSIGN, value.Type, value.Slot, opcodes.IS_UNUSED, 0, opcodes.IS_TMP_VAR, resultSlot)
		ctx.EmitJump(endLabel)

		ctx.PlaceLabel(nextLabel)
	}

	if defaultArm != nil {
		value, err := c.compileExpr(ctx, defaultArm.Expression)
		if err != nil {
			return UnusedOperand, err
		}
		ctx.EmitInstruction(opcodes.OP_ASSIGN, value.Type, value.Slot, opcodes.IS_UNUSED, 0, opcodes.IS_TMP_VAR, resultSlot)
	} else {
		errClassOp := ctx.ConstOperand(values.NewString("UnhandledMatchError"))
		errSlot := ctx.GetNextTemp()
		ctx.EmitInstruction(opcodes.OP_NEW, errClassOp.Type, errClassOp.Slot, opcodes.IS_UNUSED, 0, opcodes.IS_TMP_VAR, errSlot)
		errOp := Operand{Type: opcodes.IS_TMP_VAR, Slot: errSlot}
		msgOp := ctx.ConstOperand(values.NewString("Unhandled match case"))
		ctorNameOp := ctx.ConstOperand(values.NewString("__construct"))
		ctx.EmitInstruction(opcodes.OP_INIT_METHOD_CALL, errOp.Type, errOp.Slot, ctorNameOp.Type, ctorNameOp.Slot, opcodes.IS_UNUSED, 0)
		ctx.EmitInstruction(opcodes.OP_SEND_VAL, opcodes.IS_UNUSED, 0, msgOp.Type, msgOp.Slot, opcodes.IS_UNUSED, 0)
		ctx.EmitInstruction(opcodes.OP_DO_FCALL, opcodes.IS_UNUSED, 0, opcodes.IS_UNUSED, 0, opcodes.IS_UNUSED, 0)
		ctx.EmitInstruction(opcodes.OP_THROW, errOp.Type, errOp.Slot, opcodes.IS_UNUSED, 0, opcodes.IS_UNUSED, 0)
	}

	ctx.PlaceLabel(endLabel)
	return Operand{Type: opcodes.IS_TMP_VAR, Slot: resultSlot}, nil
}

// compileTry lowers try/catch/finally onto the VM's OP_CATCH primitive:
// OP_CATCH(catchIP, finallyIP) pushes a handler that raiseException consults
// when an exception crosses this frame. catchIP/finallyIP are raw absolute
// instruction indices (not typed operands - the VM reads inst.Op1/Op2
// directly), so they are patched onto the instruction once every label in
// this try statement has a known position. Every catch clause's exception
// types are tried via OP_INSTANCEOF against the pending exception; the
// matching clause's body runs, then OP_CLEAR_EXCEPTION marks it handled.
// If no clause matches (or there are no catches at all), the pending
// exception is still set when control reaches the finally block, and
// OP_FINALLY_END re-raises it once the finally body has run - giving
// "finally always runs, even on an uncaught exception" for free.
func (c *ContextCompilerFixed) compileTry(ctx *CompileContext, node *ast.TryStatement) error {
	hasCatches := len(node.CatchClauses) > 0
	hasFinally := node.FinallyClause != nil

	if !hasCatches && !hasFinally {
		for _, stmt := range node.TryBlock {
			if err := c.compileStatement(ctx, stmt); err != nil {
				return err
			}
		}
		return nil
	}

	// cleanupLabel is reached on every exit from the protected region: normal
	// fall-through, a handled catch, or (via raiseException redirecting here
	// when no catch matches or none exist) an in-flight exception. OP_FINALLY
	// there discards the handler OP_CATCH pushed if it is still on top (true
	// only on the normal/handled paths - raiseException already popped it
	// once it redirects control here), then the source finally body (if any)
	// runs, then OP_FINALLY_END re-raises whatever is still pending.
	endLabel := ctx.GetNextLabel()
	cleanupLabel := ctx.GetNextLabel()
	var catchLabel string
	if hasCatches {
		catchLabel = ctx.GetNextLabel()
	}

	catchInst := ctx.EmitInstruction(opcodes.OP_CATCH,
		opcodes.IS_UNUSED, 0, opcodes.IS_UNUSED, 0, opcodes.IS_UNUSED, 0)

	for _, stmt := range node.TryBlock {
		if err := c.compileStatement(ctx, stmt); err != nil {
			return err
		}
	}
	ctx.EmitJump(cleanupLabel)

	if hasCatches {
		ctx.PlaceLabel(catchLabel)
		for _, clause := range node.CatchClauses {
			bodyLabel := ctx.GetNextLabel()
			nextLabel := ctx.GetNextLabel()

			for _, typeExpr := range clause.ExceptionTypes {
				className, ok := expressionName(typeExpr)
				if !ok {
					continue
				}
				nameConst := ctx.ConstOperand(values.NewString(className))
				tmp := ctx.GetNextTemp()
				ctx.EmitInstruction(opcodes.OP_INSTANCEOF,
					nameConst.Type, nameConst.Slot, opcodes.IS_UNUSED, 0, opcodes.IS_TMP_VAR, tmp)
				ctx.EmitConditionalJump(opcodes.OP_JMPNZ, Operand{Type: opcodes.IS_TMP_VAR, Slot: tmp}, bodyLabel)
			}
			ctx.EmitJump(nextLabel)

			ctx.PlaceLabel(bodyLabel)
			if clause.Variable != nil {
				if v, ok := clause.Variable.(*ast.Variable); ok {
					slot := ctx.GetOrCreateVariable(v.Name)
					ctx.EmitInstruction(opcodes.OP_ASSIGN_EXCEPTION,
						opcodes.IS_CV, slot, opcodes.IS_UNUSED, 0, opcodes.IS_UNUSED, 0)
				}
			}
			for _, stmt := range clause.Body {
				if err := c.compileStatement(ctx, stmt); err != nil {
					return err
				}
			}
			ctx.EmitInstruction(opcodes.OP_CLEAR_EXCEPTION,
				opcodes.IS_UNUSED, 0, opcodes.IS_UNUSED, 0, opcodes.IS_UNUSED, 0)
			ctx.EmitJump(cleanupLabel)
			ctx.PlaceLabel(nextLabel)
		}
		// No clause matched: the exception is still pending; cleanupLabel's
		// OP_FINALLY_END re-raises it once the finally body has run.
		ctx.EmitJump(cleanupLabel)
	}

	ctx.PlaceLabel(cleanupLabel)
	ctx.EmitInstruction(opcodes.OP_FINALLY,
		opcodes.IS_UNUSED, 0, opcodes.IS_UNUSED, 0, opcodes.IS_UNUSED, 0)
	if hasFinally {
		for _, stmt := range node.FinallyClause.Body {
			if err := c.compileStatement(ctx, stmt); err != nil {
				return err
			}
		}
	}
	ctx.EmitInstruction(opcodes.OP_FINALLY_END,
		opcodes.IS_UNUSED, 0, opcodes.IS_UNUSED, 0, opcodes.IS_UNUSED, 0)

	ctx.PlaceLabel(endLabel)

	if hasCatches {
		if pos, ok := ctx.GetLabelPosition(catchLabel); ok {
			catchInst.Op1 = uint32(pos)
		}
	}
	if pos, ok := ctx.GetLabelPosition(cleanupLabel); ok {
		catchInst.Op2 = uint32(pos)
	}
	return nil
}

// Function and class declarations

func paramModifiersToVisibility(modifiers []string) (string, bool) {
	for _, m := range modifiers {
		switch m {
		case "public", "private", "protected":
			return m, true
		}
	}
	return "", false
}

func (c *ContextCompilerFixed) compileParameters(functionCtx *CompileContext, params []*ast.Parameter) ([]*registry.Parameter, error) {
	result := make([]*registry.Parameter, 0, len(params))
	for _, param := range params {
		functionCtx.GetOrCreateVariable(param.Name)
		regParam := &registry.Parameter{
			Name:        param.Name,
			IsReference: param.IsReference,
			HasDefault:  param.DefaultValue != nil,
		}
		if param.Type != nil {
			regParam.Type = param.Type.String()
		}
		if param.DefaultValue != nil {
			defaultOperand, err := c.compileExpr(functionCtx, param.DefaultValue)
			if err != nil {
				return nil, err
			}
			if defaultOperand.Type == opcodes.IS_CONST {
				regParam.DefaultValue = functionCtx.Constants[defaultOperand.Slot]
			} else {
				regParam.DefaultValue = values.NewNull()
			}
		}
		result = append(result, regParam)
	}
	return result, nil
}

func (c *ContextCompilerFixed) finalizeFunctionBody(functionCtx *CompileContext, body ast.Statement) error {
	if body != nil {
		if err := c.compileStatement(functionCtx, body); err != nil {
			return err
		}
	}
	if len(functionCtx.Instructions) == 0 || functionCtx.Instructions[len(functionCtx.Instructions)-1].Opcode != opcodes.OP_RETURN {
		nullConstant := functionCtx.AddConstant(values.NewNull())
		functionCtx.EmitInstruction(opcodes.OP_RETURN, opcodes.IS_CONST, nullConstant, opcodes.IS_UNUSED, 0, opcodes.IS_UNUSED, 0)
	}
	return nil
}

func (c *ContextCompilerFixed) compileFunctionDeclaration(ctx *CompileContext, node *ast.FunctionDeclaration) error {
	functionCtx := ctx.NewChildContext(ScopeFunction)

	fn := &registry.Function{
		Name:               node.Name,
		IsAnonymous:        false,
		ReturnsByReference: node.ReturnsReference,
	}
	if node.ReturnType != nil {
		fn.ReturnType = node.ReturnType.String()
	}
	fn.StrictTypes = ctx.GetRootContext().StrictTypes
	functionCtx.SetCurrentFunction(fn)

	params, err := c.compileParameters(functionCtx, node.Parameters)
	if err != nil {
		return fmt.Errorf("error compiling parameters of function %s: %w", node.Name, err)
	}
	fn.Parameters = params

	if err := c.finalizeFunctionBody(functionCtx, node.Body); err != nil {
		return fmt.Errorf("error compiling function %s: %w", node.Name, err)
	}

	fn.Instructions = functionCtx.Instructions
	fn.Constants = functionCtx.Constants

	ctx.AddFunction(node.Name, fn)
	return nil
}

func classModifiers(modifiers []string) (isAbstract, isFinal bool) {
	for _, m := range modifiers {
		switch m {
		case "abstract":
			isAbstract = true
		case "final":
			isFinal = true
		}
	}
	return
}

// methodModifiers splits a method's modifier list into the visibility word
// ("public" by default) and its static/abstract/final flags, mirroring
// propertyModifiers for the same PHP modifier grammar applied to methods.
func methodModifiers(modifiers []string) (visibility string, isStatic, isAbstract, isFinal bool) {
	visibility = "public"
	for _, m := range modifiers {
		switch m {
		case "public", "private", "protected":
			visibility = m
		case "static":
			isStatic = true
		case "abstract":
			isAbstract = true
		case "final":
			isFinal = true
		}
	}
	return
}

func expressionName(expr ast.Expression) (string, bool) {
	switch n := expr.(type) {
	case *ast.IdentifierNode:
		return n.Value, true
	case *ast.Variable:
		return n.Name, true
	default:
		return "", false
	}
}

func (c *ContextCompilerFixed) compileClassDeclaration(ctx *CompileContext, node *ast.ClassDeclaration) error {
	isAbstract, isFinal := classModifiers(node.Modifiers)
	class := &registry.Class{
		Name:       node.Name,
		Properties: make(map[string]*registry.Property),
		Methods:    make(map[string]*registry.Function),
		Constants:  make(map[string]*registry.ClassConstant),
		IsAbstract: isAbstract,
		IsFinal:    isFinal,
	}

	if node.Extends != nil {
		if parentName, ok := expressionName(node.Extends); ok {
			class.Parent = parentName
		}
	}
	for _, impl := range node.Implements {
		if ifaceName, ok := expressionName(impl); ok {
			class.Interfaces = append(class.Interfaces, ifaceName)
		}
	}

	oldClass := ctx.CurrentClass
	ctx.SetCurrentClass(class)

	for _, member := range node.Members {
		switch m := member.(type) {
		case *ast.PropertyDeclaration:
			if err := c.compilePropertyDeclaration(ctx, class, m); err != nil {
				ctx.SetCurrentClass(oldClass)
				return fmt.Errorf("error compiling property in class %s: %w", node.Name, err)
			}
		case *ast.MethodDeclaration:
			if err := c.compileMethodDeclaration(ctx, class, m); err != nil {
				ctx.SetCurrentClass(oldClass)
				return fmt.Errorf("error compiling method in class %s: %w", node.Name, err)
			}
		case *ast.TraitUseClause:
			c.applyTraitUse(ctx, class, m)
		default:
			// Class constants and other member kinds not yet modelled
			// are skipped rather than failing the whole declaration.
		}
	}

	root := ctx.GetRootContext()
	if err := registry.FinalizeClass(class, root.Classes, root.Interfaces); err != nil {
		ctx.SetCurrentClass(oldClass)
		return err
	}

	ctx.AddClass(node.Name, class)
	c.emitClassDeclareSequence(ctx, class)

	ctx.SetCurrentClass(oldClass)
	return nil
}

// emitClassDeclareSequence emits the runtime class-building opcodes so a
// conditionally-declared class (`if (...) { class Foo {} }`) registers at
// the point execution actually reaches it, matching the VM's INIT_CLASS_TABLE
// / DECLARE_PROPERTY / SET_CLASS_PARENT / DECLARE_CLASS protocol.
func (c *ContextCompilerFixed) emitClassDeclareSequence(ctx *CompileContext, class *registry.Class) {
	nameConst := ctx.AddConstant(values.NewString(class.Name))
	ctx.EmitInstruction(opcodes.OP_INIT_CLASS_TABLE, opcodes.IS_CONST, nameConst, opcodes.IS_UNUSED, 0, opcodes.IS_UNUSED, 0)

	for propName, prop := range class.Properties {
		propNameConst := ctx.AddConstant(values.NewString(propName))
		meta := values.NewArray()
		metaArr := meta.Data.(*values.Array)
		metaArr.Elements["visibility"] = values.NewString(prop.Visibility)
		metaArr.Elements["static"] = values.NewBool(prop.IsStatic)
		if prop.DefaultValue != nil {
			metaArr.Elements["defaultValue"] = prop.DefaultValue
		}
		metaConst := ctx.AddConstant(meta)
		ctx.EmitInstruction(opcodes.OP_DECLARE_PROPERTY, opcodes.IS_CONST, nameConst, opcodes.IS_CONST, propNameConst, opcodes.IS_CONST, metaConst)
	}

	if class.Parent != "" {
		parentConst := ctx.AddConstant(values.NewString(class.Parent))
		ctx.EmitInstruction(opcodes.OP_SET_CLASS_PARENT, opcodes.IS_CONST, nameConst, opcodes.IS_CONST, parentConst, opcodes.IS_UNUSED, 0)
	}

	ctx.EmitInstruction(opcodes.OP_DECLARE_CLASS, opcodes.IS_CONST, nameConst, opcodes.IS_UNUSED, 0, opcodes.IS_UNUSED, 0)
}

func propertyModifiers(modifiers []string) (visibility, writeVisibility string, isStatic, isReadonly bool) {
	visibility = "public"
	for _, m := range modifiers {
		if strings.HasSuffix(m, "(set)") {
			writeVisibility = strings.TrimSuffix(m, "(set)")
			continue
		}
		switch m {
		case "public", "private", "protected":
			visibility = m
		case "static":
			isStatic = true
		case "readonly":
			isReadonly = true
		}
	}
	return
}

func (c *ContextCompilerFixed) compilePropertyDeclaration(ctx *CompileContext, class *registry.Class, node *ast.PropertyDeclaration) error {
	visibility, writeVisibility, isStatic, isReadonly := propertyModifiers(node.Modifiers)
	property := &registry.Property{
		Name:            node.Name,
		Visibility:      visibility,
		WriteVisibility: writeVisibility,
		IsStatic:        isStatic,
		IsReadonly:      isReadonly,
	}
	if node.Type != nil {
		property.Type = node.Type.String()
	}
	if node.DefaultValue != nil {
		operand, err := c.compileExpr(ctx, node.DefaultValue)
		if err != nil {
			return err
		}
		if operand.Type == opcodes.IS_CONST {
			property.DefaultValue = ctx.Constants[operand.Slot]
		} else {
			property.DefaultValue = values.NewNull()
		}
	} else {
		property.DefaultValue = values.NewNull()
	}
	for _, hook := range node.Hooks {
		fn, err := c.compilePropertyHook(ctx, class, node.Name, hook)
		if err != nil {
			return fmt.Errorf("error compiling %s hook for property %s: %w", hook.Name, node.Name, err)
		}
		switch hook.Name {
		case "get":
			property.GetHook = fn
		case "set":
			property.SetHook = fn
		}
	}
	class.Properties[node.Name] = property
	return nil
}

// compilePropertyHook lowers a single `get`/`set` property hook into a
// synthetic method-shaped registry.Function, bound with "this" at slot 0 like
// any other method. A get hook takes no parameters and its body's value (for
// the `=> expr` short form) or explicit `return` (block form) becomes the
// computed value. A set hook takes one implicit parameter, named "value"
// unless the hook declares its own parameter name (`set(string $v) { ... }`);
// its return value is discarded by the VM's property-hook dispatch (the
// OP_FETCH_OBJ_R/OP_ASSIGN_OBJ handlers check for a hooked property before
// touching raw storage), matching the language's own hook semantics.
func (c *ContextCompilerFixed) compilePropertyHook(ctx *CompileContext, class *registry.Class, propName string, hook *ast.PropertyHook) (*registry.Function, error) {
	hookCtx := ctx.NewChildContext(ScopeMethod)
	hookCtx.SetCurrentClass(class)
	hookCtx.GetOrCreateVariable("this")

	fn := &registry.Function{
		Name: fmt.Sprintf("__%s_%s", hook.Name, propName),
	}
	fn.StrictTypes = ctx.GetRootContext().StrictTypes
	hookCtx.SetCurrentFunction(fn)

	params := hook.Parameters
	if hook.Name == "set" && len(params) == 0 {
		params = []*ast.Parameter{{Name: "value"}}
	}
	regParams, err := c.compileParameters(hookCtx, params)
	if err != nil {
		return nil, err
	}
	fn.Parameters = regParams

	switch {
	case hook.Expression != nil:
		value, err := c.compileExpr(hookCtx, hook.Expression)
		if err != nil {
			return nil, err
		}
		hookCtx.EmitInstruction(opcodes.OP_RETURN, value.Type, value.Slot, opcodes.IS_UNUSED, 0, opcodes.IS_UNUSED, 0)
		fn.Instructions = hookCtx.Instructions
		fn.Constants = hookCtx.Constants
	case hook.Body != nil:
		if err := c.finalizeFunctionBody(hookCtx, hook.Body); err != nil {
			return nil, err
		}
		fn.Instructions = hookCtx.Instructions
		fn.Constants = hookCtx.Constants
	default:
		// Abstract hook (interface or abstract class declaration): no body
		// to compile. Dispatch falls back to raw property storage if a
		// concrete override never supplies one.
		fn.IsAbstract = true
	}

	return fn, nil
}

func (c *ContextCompilerFixed) compileMethodDeclaration(ctx *CompileContext, class *registry.Class, node *ast.MethodDeclaration) error {
	methodCtx := ctx.NewChildContext(ScopeMethod)
	methodCtx.SetCurrentClass(class)
	methodCtx.GetOrCreateVariable("this")

	visibility, isStatic, isAbstractMod, _ := methodModifiers(node.Modifiers)
	fn := &registry.Function{
		Name:               node.Name,
		ReturnsByReference: node.ReturnsReference,
		IsAbstract:         node.Body == nil || isAbstractMod,
		Visibility:         visibility,
		IsStatic:           isStatic,
	}
	if node.ReturnType != nil {
		fn.ReturnType = node.ReturnType.String()
	}
	fn.StrictTypes = ctx.GetRootContext().StrictTypes
	methodCtx.SetCurrentFunction(fn)

	params, err := c.compileParameters(methodCtx, node.Parameters)
	if err != nil {
		return err
	}
	fn.Parameters = params

	if strings.EqualFold(node.Name, "__construct") {
		c.emitPromotedProperties(methodCtx, class, node.Parameters)
	}

	if node.Body != nil {
		if err := c.finalizeFunctionBody(methodCtx, node.Body); err != nil {
			return err
		}
		fn.Instructions = methodCtx.Instructions
		fn.Constants = methodCtx.Constants
	}

	class.Methods[strings.ToLower(node.Name)] = fn
	return nil
}

// emitPromotedProperties handles constructor property promotion: a param
// declared with a visibility modifier (`public readonly string $name`)
// both declares a class property and assigns it from the argument, as if
// the constructor body opened with `$this->name = $name;`.
func (c *ContextCompilerFixed) emitPromotedProperties(methodCtx *CompileContext, class *registry.Class, params []*ast.Parameter) {
	thisSlot, _ := methodCtx.GetVariable("this")
	for _, param := range params {
		visibility, ok := paramModifiersToVisibility(param.Modifiers)
		if !ok {
			continue
		}
		_, _, isStatic, isReadonly := propertyModifiers(param.Modifiers)
		prop := &registry.Property{
			Name:         param.Name,
			Visibility:   visibility,
			IsStatic:     isStatic,
			IsReadonly:   isReadonly,
			DefaultValue: values.NewNull(),
		}
		if param.Type != nil {
			prop.Type = param.Type.String()
		}
		class.Properties[param.Name] = prop

		paramSlot := methodCtx.GetOrCreateVariable(param.Name)
		nameConst := methodCtx.ConstOperand(values.NewString(param.Name))
		methodCtx.EmitInstruction(opcodes.OP_ASSIGN_OBJ,
			opcodes.IS_VAR, thisSlot,
			nameConst.Type, nameConst.Slot,
			opcodes.IS_VAR, paramSlot)
	}
}

// applyTraitUse copies a previously-registered trait's properties and
// methods into the using class, mirroring PHP's trait flattening.
func (c *ContextCompilerFixed) applyTraitUse(ctx *CompileContext, class *registry.Class, node *ast.TraitUseClause) {
	for _, traitExpr := range node.Traits {
		name, ok := expressionName(traitExpr)
		if !ok {
			continue
		}
		trait, ok := ctx.GetTrait(name)
		if !ok {
			continue
		}
		class.Traits = append(class.Traits, name)
		for propName, prop := range trait.Properties {
			if _, exists := class.Properties[propName]; !exists {
				class.Properties[propName] = prop
			}
		}
		for methodName, method := range trait.Methods {
			if _, exists := class.Methods[methodName]; !exists {
				class.Methods[methodName] = method
			}
		}
	}
}

func (c *ContextCompilerFixed) compileInterfaceDeclaration(ctx *CompileContext, node *ast.InterfaceDeclaration) error {
	iface := &registry.Interface{
		Name:    node.Name,
		Methods: make(map[string]*registry.InterfaceMethod),
	}
	for _, ext := range node.Extends {
		if name, ok := expressionName(ext); ok {
			iface.Extends = append(iface.Extends, name)
		}
	}

	for _, member := range node.Members {
		method, ok := member.(*ast.MethodDeclaration)
		if !ok {
			continue
		}
		ifaceMethod := &registry.InterfaceMethod{
			Name:       method.Name,
			Visibility: "public",
		}
		if method.ReturnType != nil {
			ifaceMethod.ReturnType = method.ReturnType.String()
		}
		for _, param := range method.Parameters {
			regParam := &registry.Parameter{
				Name:        param.Name,
				IsReference: param.IsReference,
				HasDefault:  param.DefaultValue != nil,
			}
			if param.Type != nil {
				regParam.Type = param.Type.String()
			}
			ifaceMethod.Parameters = append(ifaceMethod.Parameters, regParam)
		}
		iface.Methods[strings.ToLower(method.Name)] = ifaceMethod
	}

	ctx.AddInterface(node.Name, iface)

	nameConstant := ctx.AddConstant(values.NewString(node.Name))
	ctx.EmitInstruction(opcodes.OP_DECLARE_INTERFACE, opcodes.IS_CONST, nameConstant, opcodes.IS_UNUSED, 0, opcodes.IS_UNUSED, 0)
	return nil
}

func (c *ContextCompilerFixed) compileTraitDeclaration(ctx *CompileContext, node *ast.TraitDeclaration) error {
	trait := &registry.Trait{
		Name:       node.Name,
		Properties: make(map[string]*registry.Property),
		Methods:    make(map[string]*registry.Function),
	}

	// Reuse the class-shaped helpers by building a scratch class, then
	// lift its members into the trait - traits and classes share the
	// same member compilation rules (properties, methods).
	scratch := &registry.Class{
		Name:       node.Name,
		Properties: trait.Properties,
		Methods:    trait.Methods,
		Constants:  make(map[string]*registry.ClassConstant),
	}

	for _, member := range node.Members {
		switch m := member.(type) {
		case *ast.PropertyDeclaration:
			if err := c.compilePropertyDeclaration(ctx, scratch, m); err != nil {
				return fmt.Errorf("error compiling property in trait %s: %w", node.Name, err)
			}
		case *ast.MethodDeclaration:
			if err := c.compileMethodDeclaration(ctx, scratch, m); err != nil {
				return fmt.Errorf("error compiling method in trait %s: %w", node.Name, err)
			}
		}
	}

	ctx.AddTrait(node.Name, trait)

	nameConstant := ctx.AddConstant(values.NewString(node.Name))
	ctx.EmitInstruction(opcodes.OP_DECLARE_TRAIT, opcodes.IS_CONST, nameConstant, opcodes.IS_UNUSED, 0, opcodes.IS_UNUSED, 0)
	return nil
}

// Collections, member access, and calls

func (c *ContextCompilerFixed) compileArray(ctx *CompileContext, node *ast.ArrayExpression) (Operand, error) {
	arraySlot := ctx.GetNextTemp()
	ctx.EmitInstruction(opcodes.OP_INIT_ARRAY, opcodes.IS_UNUSED, 0, opcodes.IS_UNUSED, 0, opcodes.IS_TMP_VAR, arraySlot)
	arrayOperand := Operand{Type: opcodes.IS_TMP_VAR, Slot: arraySlot}

	for _, elem := range node.Elements {
		if elem == nil {
			continue
		}
		if elem.IsUnpack {
			value, err := c.compileExpr(ctx, elem.Value)
			if err != nil {
				return UnusedOperand, err
			}
			ctx.EmitInstruction(opcodes.OP_ADD_ARRAY_UNPACK, value.Type, value.Slot, opcodes.IS_UNUSED, 0, arrayOperand.Type, arrayOperand.Slot)
			continue
		}

		value, err := c.compileExpr(ctx, elem.Value)
		if err != nil {
			return UnusedOperand, err
		}
		if elem.Key != nil {
			key, err := c.compileExpr(ctx, elem.Key)
			if err != nil {
				return UnusedOperand, err
			}
			ctx.EmitInstruction(opcodes.OP_ADD_ARRAY_ELEMENT, key.Type, key.Slot, value.Type, value.Slot, arrayOperand.Type, arrayOperand.Slot)
		} else {
			ctx.EmitInstruction(opcodes.OP_ADD_ARRAY_ELEMENT, opcodes.IS_UNUSED, 0, value.Type, value.Slot, arrayOperand.Type, arrayOperand.Slot)
		}
	}

	return arrayOperand, nil
}

func (c *ContextCompilerFixed) compileArrayAccess(ctx *CompileContext, node *ast.ArrayAccessExpression) (Operand, error) {
	arrOp, err := c.compileExpr(ctx, node.Array)
	if err != nil {
		return UnusedOperand, err
	}
	if node.Index == nil {
		return UnusedOperand, fmt.Errorf("array access without an index is only valid as an assignment target")
	}
	keyOp, err := c.compileExpr(ctx, node.Index)
	if err != nil {
		return UnusedOperand, err
	}
	return ctx.Emit2(opcodes.OP_FETCH_DIM_R, arrOp, keyOp), nil
}

// compilePropertyNameOperand compiles a member-access property name: a bare
// identifier names the property directly (a string constant); anything
// else is a computed property name (`$obj->{$expr}`).
func (c *ContextCompilerFixed) compilePropertyNameOperand(ctx *CompileContext, property ast.Expression) (Operand, error) {
	if ident, ok := property.(*ast.IdentifierNode); ok {
		return ctx.ConstOperand(values.NewString(ident.Value)), nil
	}
	return c.compileExpr(ctx, property)
}

func (c *ContextCompilerFixed) compilePropertyAccess(ctx *CompileContext, node *ast.MemberAccessExpression) (Operand, error) {
	objOp, err := c.compileExpr(ctx, node.Object)
	if err != nil {
		return UnusedOperand, err
	}
	propOp, err := c.compilePropertyNameOperand(ctx, node.Property)
	if err != nil {
		return UnusedOperand, err
	}
	return ctx.Emit2(opcodes.OP_FETCH_OBJ_R, objOp, propOp), nil
}

func (c *ContextCompilerFixed) compileArguments(ctx *CompileContext, args []ast.Expression) error {
	for _, arg := range args {
		value, err := c.compileExpr(ctx, arg)
		if err != nil {
			return err
		}
		ctx.EmitInstruction(opcodes.OP_SEND_VAL, opcodes.IS_UNUSED, 0, value.Type, value.Slot, opcodes.IS_UNUSED, 0)
	}
	return nil
}

func (c *ContextCompilerFixed) compileFunctionCall(ctx *CompileContext, node *ast.FunctionCallExpression) (Operand, error) {
	// A method call is represented as a FunctionCallExpression whose
	// Function is a MemberAccessExpression - there is no distinct
	// MethodCallExpression type in this AST.
	if member, ok := node.Function.(*ast.MemberAccessExpression); ok {
		objOp, err := c.compileExpr(ctx, member.Object)
		if err != nil {
			return UnusedOperand, err
		}
		methodOp, err := c.compilePropertyNameOperand(ctx, member.Property)
		if err != nil {
			return UnusedOperand, err
		}
		ctx.EmitInstruction(opcodes.OP_INIT_METHOD_CALL, objOp.Type, objOp.Slot, methodOp.Type, methodOp.Slot, opcodes.IS_UNUSED, 0)
		if err := c.compileArguments(ctx, node.Arguments); err != nil {
			return UnusedOperand, err
		}
		return ctx.Emit1(opcodes.OP_DO_FCALL, UnusedOperand), nil
	}

	callee, err := c.compileExpr(ctx, node.Function)
	if err != nil {
		return UnusedOperand, err
	}
	ctx.EmitInstruction(opcodes.OP_INIT_FCALL, callee.Type, callee.Slot, opcodes.IS_UNUSED, 0, opcodes.IS_UNUSED, 0)
	if err := c.compileArguments(ctx, node.Arguments); err != nil {
		return UnusedOperand, err
	}
	return ctx.Emit1(opcodes.OP_DO_FCALL, UnusedOperand), nil
}

func (c *ContextCompilerFixed) compileNew(ctx *CompileContext, node *ast.NewExpression) (Operand, error) {
	classOp, err := c.compileExpr(ctx, node.Class)
	if err != nil {
		return UnusedOperand, err
	}
	objSlot := ctx.GetNextTemp()
	ctx.EmitInstruction(opcodes.OP_NEW, classOp.Type, classOp.Slot, opcodes.IS_UNUSED, 0, opcodes.IS_TMP_VAR, objSlot)
	objOp := Operand{Type: opcodes.IS_TMP_VAR, Slot: objSlot}

	if len(node.Arguments) > 0 {
		ctorNameOp := ctx.ConstOperand(values.NewString("__construct"))
		ctx.EmitInstruction(opcodes.OP_INIT_METHOD_CALL, objOp.Type, objOp.Slot, ctorNameOp.Type, ctorNameOp.Slot, opcodes.IS_UNUSED, 0)
		if err := c.compileArguments(ctx, node.Arguments); err != nil {
			return UnusedOperand, err
		}
		ctx.Emit1(opcodes.OP_DO_FCALL, UnusedOperand)
	}

	return objOp, nil
}

func (c *ContextCompilerFixed) compileAnonymousFunction(ctx *CompileContext, node *ast.AnonymousFunctionExpression) (Operand, error) {
	functionCtx := ctx.NewChildContext(ScopeFunction)

	anonName := fmt.Sprintf("{closure:%d}", ctx.GetNextLabel())
	fn := &registry.Function{
		Name:               anonName,
		IsAnonymous:        true,
		ReturnsByReference: node.ReturnsReference,
	}
	fn.StrictTypes = ctx.GetRootContext().StrictTypes
	if node.ReturnType != nil {
		fn.ReturnType = node.ReturnType.String()
	}
	functionCtx.SetCurrentFunction(fn)

	for _, use := range node.UseVariables {
		functionCtx.GetOrCreateVariable(use.Name)
	}

	params, err := c.compileParameters(functionCtx, node.Parameters)
	if err != nil {
		return UnusedOperand, err
	}
	fn.Parameters = params

	if err := c.finalizeFunctionBody(functionCtx, node.Body); err != nil {
		return UnusedOperand, fmt.Errorf("error compiling closure: %w", err)
	}
	fn.Instructions = functionCtx.Instructions
	fn.Constants = functionCtx.Constants

	ctx.AddFunction(anonName, fn)

	nameConst := ctx.ConstOperand(values.NewString(anonName))
	return ctx.Emit1(opcodes.OP_CREATE_CLOSURE, nameConst), nil
}
