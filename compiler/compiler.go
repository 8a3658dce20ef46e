package compiler

import (
	"github.com/heyrt/phpcore/ast"
	"github.com/heyrt/phpcore/opcodes"
	"github.com/heyrt/phpcore/registry"
	"github.com/heyrt/phpcore/values"
)

// Compiler is the top-level entry point for turning a parsed program into
// bytecode: it owns the root CompileContext for one file's compile and
// drives ContextCompilerFixed over it.
type Compiler struct {
	root        *CompileContext
	impl        *ContextCompilerFixed
	currentFile string
}

// NewCompiler creates a compiler ready to compile a single file/eval unit.
func NewCompiler() *Compiler {
	return &Compiler{
		root: NewCompileContext(nil),
		impl: NewContextCompilerFixed(),
	}
}

// SetCurrentFile records the source file path on the Compiler; nothing in
// this package reads it back. It does not affect strict_types, which is
// derived solely from the file's own leading declare statement.
func (c *Compiler) SetCurrentFile(path string) {
	c.currentFile = path
}

// SetStrictTypes seeds the root context's strict_types flag, used by eval
// to inherit the enclosing file's strictness unless its own source
// contains a top-of-file declare(strict_types=...) that overrides it.
func (c *Compiler) SetStrictTypes(strict bool) {
	c.root.StrictTypes = strict
}

// Compile compiles a parsed program (or any statement) into the root context.
func (c *Compiler) Compile(node ast.Node) error {
	return c.impl.Compile(c.root, node)
}

// GetBytecode returns the top-level instruction stream.
func (c *Compiler) GetBytecode() []*opcodes.Instruction {
	return c.root.Instructions
}

// GetConstants returns the top-level constant pool.
func (c *Compiler) GetConstants() []*values.Value {
	return c.root.Constants
}

// Functions returns every function declared anywhere in this compile unit.
func (c *Compiler) Functions() map[string]*registry.Function {
	return c.root.Functions
}

// Classes returns every class declared anywhere in this compile unit.
func (c *Compiler) Classes() map[string]*registry.Class {
	return c.root.Classes
}

// Interfaces returns every interface declared anywhere in this compile unit.
func (c *Compiler) Interfaces() map[string]*registry.Interface {
	return c.root.Interfaces
}

// Traits returns every trait declared anywhere in this compile unit.
func (c *Compiler) Traits() map[string]*registry.Trait {
	return c.root.Traits
}

// StrictTypes reports the file's resolved strict_types flag after Compile
// has run (it is only meaningful once the leading declare, if any, has
// been compiled).
func (c *Compiler) StrictTypes() bool {
	return c.root.StrictTypes
}
