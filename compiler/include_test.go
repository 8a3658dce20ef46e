package compiler_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heyrt/phpcore/compiler"
	"github.com/heyrt/phpcore/lexer"
	"github.com/heyrt/phpcore/parser"
	"github.com/heyrt/phpcore/vm"
	"github.com/heyrt/phpcore/vmfactory"
)

func TestInclude_RunsIncludedFileAndReturnsValue(t *testing.T) {
	dir := t.TempDir()
	includedPath := filepath.Join(dir, "greeting.php")
	require.NoError(t, os.WriteFile(includedPath, []byte(`<?php
		echo "from-include;";
		return 42;
	`), 0o644))

	src := `<?php
		$result = include '` + includedPath + `';
		echo "result=" . $result;
	`

	l := lexer.New(src)
	p := parser.NewPrattParser(l)
	program := p.ParseProgram()
	require.Empty(t, p.Errors())

	c := compiler.NewCompiler()
	require.NoError(t, c.Compile(program))

	var out bytes.Buffer
	ctx := vm.NewExecutionContext()
	ctx.OutputWriter = &out

	factory := vmfactory.NewVMFactory(func() vmfactory.Compiler { return compiler.NewCompiler() })
	vmachine := factory.CreateVM()
	err := vmachine.Execute(ctx, c.GetBytecode(), c.GetConstants(), c.Functions(), c.Classes())
	require.NoError(t, err)

	assert.Equal(t, "from-include;result=42", out.String())
}

func TestRequireOnce_SecondRequireIsNoop(t *testing.T) {
	dir := t.TempDir()
	includedPath := filepath.Join(dir, "once.php")
	require.NoError(t, os.WriteFile(includedPath, []byte(`<?php
		echo "loaded;";
	`), 0o644))

	src := `<?php
		require_once '` + includedPath + `';
		require_once '` + includedPath + `';
		echo "done";
	`

	l := lexer.New(src)
	p := parser.NewPrattParser(l)
	program := p.ParseProgram()
	require.Empty(t, p.Errors())

	c := compiler.NewCompiler()
	require.NoError(t, c.Compile(program))

	var out bytes.Buffer
	ctx := vm.NewExecutionContext()
	ctx.OutputWriter = &out

	factory := vmfactory.NewVMFactory(func() vmfactory.Compiler { return compiler.NewCompiler() })
	vmachine := factory.CreateVM()
	err := vmachine.Execute(ctx, c.GetBytecode(), c.GetConstants(), c.Functions(), c.Classes())
	require.NoError(t, err)

	assert.Equal(t, "loaded;done", out.String())
}
