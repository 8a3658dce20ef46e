package compiler

import (
	"fmt"

	"github.com/heyrt/phpcore/opcodes"
	"github.com/heyrt/phpcore/registry"
	"github.com/heyrt/phpcore/values"
)

// CompileContext represents the compilation context for a scope
// It contains all intermediate compilation state and has a parent chain for scoping
type CompileContext struct {
	// Parent context for scope chain (nil for global context)
	Parent *CompileContext

	// Scope-specific compilation state. Variables are NOT inherited from
	// the parent: PHP function bodies never see an enclosing scope's
	// locals implicitly (that's what `global`/closure `use()` are for),
	// so GetVariable deliberately does not walk the parent chain.
	Variables  map[string]uint32              // variable name -> slot
	Constants  []*values.Value                // constant pool for this context
	Functions  map[string]*registry.Function  // functions defined in this scope
	Classes    map[string]*registry.Class     // classes defined in this scope
	Interfaces map[string]*registry.Interface // interfaces defined in this scope
	Traits     map[string]*registry.Trait     // traits defined in this scope

	// Compilation state
	Instructions   []*opcodes.Instruction // bytecode instructions for this context
	Labels         map[string]int         // label name -> instruction index
	LabelConstants map[string]uint32      // label name -> constant pool index holding its resolved target

	// Scope metadata
	ScopeType ScopeType // type of scope (global, function, class, block)
	NextSlot  uint32    // next available variable slot
	NextTemp  uint32    // next temporary variable counter
	NextLabel int       // next label counter

	// Control flow labels for break/continue
	BreakLabel    string
	ContinueLabel string

	// Current compilation context
	CurrentClass    *registry.Class    // currently compiling class (nil if not in class)
	CurrentFunction *registry.Function // currently compiling function (nil if not in function)

	// StrictTypes is the owning file's declare(strict_types=1) flag. It is
	// set only on the root context (one compile = one file) and captured
	// into every function/method descriptor compiled under it, per PHP's
	// callee-side strict_types semantics.
	StrictTypes bool
}

// Operand is a compiled expression result: either a constant pool index, a
// temporary, a local variable slot, or IS_UNUSED. This mirrors the Zend
// znode_op result of compiling an expression - not every expression needs
// to materialize into a temp var (literals are just constant operands).
type Operand struct {
	Type opcodes.OpType
	Slot uint32
}

var UnusedOperand = Operand{Type: opcodes.IS_UNUSED, Slot: 0}

// ScopeType represents the type of compilation scope
type ScopeType int

const (
	ScopeGlobal ScopeType = iota
	ScopeFunction
	ScopeClass
	ScopeBlock
	ScopeMethod
)

// NewCompileContext creates a new compilation context with optional parent
func NewCompileContext(parent *CompileContext) *CompileContext {
	ctx := &CompileContext{
		Parent:         parent,
		Variables:      make(map[string]uint32),
		Constants:      make([]*values.Value, 0),
		Functions:      make(map[string]*registry.Function),
		Classes:        make(map[string]*registry.Class),
		Interfaces:     make(map[string]*registry.Interface),
		Traits:         make(map[string]*registry.Trait),
		Instructions:   make([]*opcodes.Instruction, 0),
		Labels:         make(map[string]int),
		LabelConstants: make(map[string]uint32),
		ScopeType:      ScopeBlock, // default to block scope
		NextSlot:       0,
		NextTemp:       1000, // start temp vars at 1000 to avoid conflicts with local slots
		NextLabel:      0,
	}

	if parent == nil {
		ctx.ScopeType = ScopeGlobal
	}

	return ctx
}

// GetVariable looks up a variable slot in the current function scope only.
func (ctx *CompileContext) GetVariable(name string) (uint32, bool) {
	slot, exists := ctx.Variables[name]
	return slot, exists
}

// GetOrCreateVariable gets an existing variable or creates a new one in current context
func (ctx *CompileContext) GetOrCreateVariable(name string) uint32 {
	if slot, exists := ctx.Variables[name]; exists {
		return slot
	}
	slot := ctx.NextSlot
	ctx.Variables[name] = slot
	ctx.NextSlot++
	return slot
}

// GetFunction looks up a function in the current context or parent chain
func (ctx *CompileContext) GetFunction(name string) (*registry.Function, bool) {
	if fn, exists := ctx.Functions[name]; exists {
		return fn, true
	}
	if ctx.Parent != nil {
		return ctx.Parent.GetFunction(name)
	}
	return nil, false
}

// GetClass looks up a class in the current context or parent chain
func (ctx *CompileContext) GetClass(name string) (*registry.Class, bool) {
	if class, exists := ctx.Classes[name]; exists {
		return class, true
	}
	if ctx.Parent != nil {
		return ctx.Parent.GetClass(name)
	}
	return nil, false
}

// GetInterface looks up an interface in the current context or parent chain
func (ctx *CompileContext) GetInterface(name string) (*registry.Interface, bool) {
	if iface, exists := ctx.Interfaces[name]; exists {
		return iface, true
	}
	if ctx.Parent != nil {
		return ctx.Parent.GetInterface(name)
	}
	return nil, false
}

// GetTrait looks up a trait in the current context or parent chain
func (ctx *CompileContext) GetTrait(name string) (*registry.Trait, bool) {
	if trait, exists := ctx.Traits[name]; exists {
		return trait, true
	}
	if ctx.Parent != nil {
		return ctx.Parent.GetTrait(name)
	}
	return nil, false
}

// AddConstant adds a constant to the context and returns its index
func (ctx *CompileContext) AddConstant(value *values.Value) uint32 {
	ctx.Constants = append(ctx.Constants, value)
	return uint32(len(ctx.Constants) - 1)
}

// ConstOperand interns a value as a constant and returns its operand.
func (ctx *CompileContext) ConstOperand(value *values.Value) Operand {
	return Operand{Type: opcodes.IS_CONST, Slot: ctx.AddConstant(value)}
}

// EmitInstruction adds an instruction to the current context
func (ctx *CompileContext) EmitInstruction(opcode opcodes.Opcode, op1Type opcodes.OpType, op1 uint32, op2Type opcodes.OpType, op2 uint32, resultType opcodes.OpType, result uint32) *opcodes.Instruction {
	opType1, opType2 := opcodes.EncodeOpTypes(op1Type, op2Type, resultType)
	instruction := &opcodes.Instruction{
		Opcode:  opcode,
		OpType1: opType1,
		OpType2: opType2,
		Op1:     op1,
		Op2:     op2,
		Result:  result,
	}
	ctx.Instructions = append(ctx.Instructions, instruction)
	return instruction
}

// Emit1 emits an instruction taking a single operand and producing a result temp.
func (ctx *CompileContext) Emit1(opcode opcodes.Opcode, op Operand) Operand {
	result := ctx.GetNextTemp()
	ctx.EmitInstruction(opcode, op.Type, op.Slot, opcodes.IS_UNUSED, 0, opcodes.IS_TMP_VAR, result)
	return Operand{Type: opcodes.IS_TMP_VAR, Slot: result}
}

// Emit2 emits an instruction taking two operands and producing a result temp.
func (ctx *CompileContext) Emit2(opcode opcodes.Opcode, op1, op2 Operand) Operand {
	result := ctx.GetNextTemp()
	ctx.EmitInstruction(opcode, op1.Type, op1.Slot, op2.Type, op2.Slot, opcodes.IS_TMP_VAR, result)
	return Operand{Type: opcodes.IS_TMP_VAR, Slot: result}
}

// GetNextTemp returns the next temporary variable counter and increments it
func (ctx *CompileContext) GetNextTemp() uint32 {
	temp := ctx.NextTemp
	ctx.NextTemp++
	return temp
}

// GetNextLabel returns the next label counter and increments it
func (ctx *CompileContext) GetNextLabel() string {
	label := ctx.NextLabel
	ctx.NextLabel++
	return fmt.Sprintf("L%d", label)
}

// GetOrCreateLabelConstant returns the constant pool index reserved for a
// label's eventual resolved instruction index. Jump instructions reference
// this constant as an IS_CONST operand; since IS_CONST operands are indices
// into the constant pool (not literal embedded values), resolving a forward
// jump means mutating the constant's stored value in place once the label
// is placed - NOT patching the instruction's Op1/Op2 fields directly.
func (ctx *CompileContext) GetOrCreateLabelConstant(label string) uint32 {
	if idx, exists := ctx.LabelConstants[label]; exists {
		return idx
	}
	target := int64(-1)
	if pos, placed := ctx.Labels[label]; placed {
		target = int64(pos)
	}
	idx := ctx.AddConstant(values.NewInt(target))
	ctx.LabelConstants[label] = idx
	return idx
}

// PlaceLabel sets a label at the current instruction position and resolves
// any jumps already emitted against it by mutating its reserved constant.
func (ctx *CompileContext) PlaceLabel(label string) {
	pos := len(ctx.Instructions)
	ctx.Labels[label] = pos
	if idx, exists := ctx.LabelConstants[label]; exists {
		*ctx.Constants[idx] = *values.NewInt(int64(pos))
	}
}

// GetLabelPosition returns the instruction index for a label
func (ctx *CompileContext) GetLabelPosition(label string) (int, bool) {
	pos, exists := ctx.Labels[label]
	return pos, exists
}

// EmitJump emits an unconditional jump to label, pre-resolving it immediately
// if the label has already been placed (backward jump) and deferring to
// PlaceLabel otherwise (forward jump).
func (ctx *CompileContext) EmitJump(label string) {
	idx := ctx.GetOrCreateLabelConstant(label)
	ctx.EmitInstruction(opcodes.OP_JMP, opcodes.IS_CONST, idx, opcodes.IS_UNUSED, 0, opcodes.IS_UNUSED, 0)
}

// EmitConditionalJump emits OP_JMPZ/OP_JMPNZ with cond as Op1 and the label's
// reserved constant as Op2, matching execConditionalJump's operand layout.
func (ctx *CompileContext) EmitConditionalJump(opcode opcodes.Opcode, cond Operand, label string) {
	idx := ctx.GetOrCreateLabelConstant(label)
	ctx.EmitInstruction(opcode, cond.Type, cond.Slot, opcodes.IS_CONST, idx, opcodes.IS_UNUSED, 0)
}

// SetCurrentClass sets the current class being compiled
func (ctx *CompileContext) SetCurrentClass(class *registry.Class) {
	ctx.CurrentClass = class
}

// SetCurrentFunction sets the current function being compiled
func (ctx *CompileContext) SetCurrentFunction(function *registry.Function) {
	ctx.CurrentFunction = function
}

// GetRootContext returns the root (global) context
func (ctx *CompileContext) GetRootContext() *CompileContext {
	current := ctx
	for current.Parent != nil {
		current = current.Parent
	}
	return current
}

// IsGlobalScope returns true if this is the global scope
func (ctx *CompileContext) IsGlobalScope() bool {
	return ctx.ScopeType == ScopeGlobal || ctx.Parent == nil
}

// IsFunctionScope returns true if this is a function scope
func (ctx *CompileContext) IsFunctionScope() bool {
	return ctx.ScopeType == ScopeFunction || ctx.ScopeType == ScopeMethod
}

// NewChildContext creates a new child context with the specified scope type.
// Used only for function/method/closure bodies, which compile into their own
// independent instruction stream and constant pool (a separate PHP op array).
func (ctx *CompileContext) NewChildContext(scopeType ScopeType) *CompileContext {
	child := NewCompileContext(ctx)
	child.ScopeType = scopeType
	return child
}

// AddFunction registers a function on the root context so the top-level
// compiler can hand a flat symbol table to the VM regardless of how deeply
// nested the declaration was encountered.
func (ctx *CompileContext) AddFunction(name string, function *registry.Function) {
	ctx.GetRootContext().Functions[name] = function
}

// AddClass registers a class on the root context (see AddFunction).
func (ctx *CompileContext) AddClass(name string, class *registry.Class) {
	ctx.GetRootContext().Classes[name] = class
}

// AddInterface registers an interface on the root context (see AddFunction).
func (ctx *CompileContext) AddInterface(name string, iface *registry.Interface) {
	ctx.GetRootContext().Interfaces[name] = iface
}

// AddTrait registers a trait on the root context (see AddFunction).
func (ctx *CompileContext) AddTrait(name string, trait *registry.Trait) {
	ctx.GetRootContext().Traits[name] = trait
}
