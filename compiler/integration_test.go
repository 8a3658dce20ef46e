package compiler_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heyrt/phpcore/compiler"
	"github.com/heyrt/phpcore/lexer"
	"github.com/heyrt/phpcore/parser"
	"github.com/heyrt/phpcore/vm"
)

// runPHP compiles and executes a snippet of PHP source, returning everything
// written to the output stream. It mirrors the compiler-callback wiring in
// vmfactory.VMFactory.createCompilerCallback, minus the include/require
// re-entrancy that only matters for multi-file programs.
func runPHP(t *testing.T, src string) string {
	t.Helper()

	l := lexer.New(src)
	p := parser.NewPrattParser(l)
	program := p.ParseProgram()
	require.Empty(t, p.Errors(), "parse errors for: %s", src)

	c := compiler.NewCompiler()
	require.NoError(t, c.Compile(program))

	var out bytes.Buffer
	ctx := vm.NewExecutionContext()
	ctx.OutputWriter = &out
	ctx.UserInterfaces = c.Interfaces()
	ctx.UserTraits = c.Traits()

	vmachine := vm.NewVirtualMachine()
	err := vmachine.Execute(ctx, c.GetBytecode(), c.GetConstants(), c.Functions(), c.Classes())
	require.NoError(t, err)

	return out.String()
}

func TestTryCatch_CatchesMatchingException(t *testing.T) {
	out := runPHP(t, `<?php
		try {
			throw new Exception("boom");
		} catch (Exception $e) {
			echo "caught: " . $e->getMessage();
		}
		echo "; after";
	`)
	assert.Equal(t, "caught: boom; after", out)
}

func TestTryCatchFinally_FinallyAlwaysRuns(t *testing.T) {
	out := runPHP(t, `<?php
		try {
			throw new Exception("boom");
		} catch (Exception $e) {
			echo "caught;";
		} finally {
			echo "finally;";
		}
	`)
	assert.Equal(t, "caught;finally;", out)
}

func TestTryFinally_NoExceptionStillRunsFinally(t *testing.T) {
	out := runPHP(t, `<?php
		try {
			echo "body;";
		} finally {
			echo "finally;";
		}
		echo "after";
	`)
	assert.Equal(t, "body;finally;after", out)
}

// TestTryCatch_NoLeakAcrossLaterThrow is a regression test for a bug where a
// try/catch with no finally clause never popped the exception handler OP_CATCH
// pushed on the no-exception path, leaving it to wrongly intercept an unrelated
// throw later in the same function.
func TestTryCatch_NoLeakAcrossLaterThrow(t *testing.T) {
	out := runPHP(t, `<?php
		function run() {
			try {
				echo "first;";
			} catch (Exception $e) {
				echo "should-not-run;";
			}

			try {
				throw new Exception("second");
			} catch (Exception $e) {
				echo "caught-second: " . $e->getMessage();
			}
		}
		run();
	`)
	assert.Equal(t, "first;caught-second: second", out)
}

func TestMatch_SelectsFirstMatchingArmByStrictComparison(t *testing.T) {
	out := runPHP(t, `<?php
		function describe($n) {
			return match ($n) {
				1, 2 => "small",
				3 => "medium",
				default => "large",
			};
		}
		echo describe(2) . "," . describe(3) . "," . describe(9);
	`)
	assert.Equal(t, "small,medium,large", out)
}

func TestMatch_NoArmAndNoDefaultThrowsUnhandledMatchError(t *testing.T) {
	out := runPHP(t, `<?php
		try {
			match (5) {
				1 => "one",
			};
		} catch (UnhandledMatchError $e) {
			echo "unhandled";
		}
	`)
	assert.Equal(t, "unhandled", out)
}

func TestEval_ExecutesCodeInCallerScopeAndReturnsExplicitValue(t *testing.T) {
	out := runPHP(t, `<?php
		$x = 10;
		$result = eval('$x = $x + 5; return $x;');
		echo $x . "," . $result;
	`)
	assert.Equal(t, "15,15", out)
}

func TestTryCatchFinally_UncaughtExceptionRethrowsAfterFinally(t *testing.T) {
	l := lexer.New(`<?php
		function inner() {
			try {
				throw new RuntimeException("deep");
			} finally {
				echo "inner-finally;";
			}
		}
		try {
			inner();
		} catch (RuntimeException $e) {
			echo "outer-caught: " . $e->getMessage();
		}
	`)
	p := parser.NewPrattParser(l)
	program := p.ParseProgram()
	require.Empty(t, p.Errors())

	c := compiler.NewCompiler()
	require.NoError(t, c.Compile(program))

	var out bytes.Buffer
	ctx := vm.NewExecutionContext()
	ctx.OutputWriter = &out
	vmachine := vm.NewVirtualMachine()
	err := vmachine.Execute(ctx, c.GetBytecode(), c.GetConstants(), c.Functions(), c.Classes())
	require.NoError(t, err)

	assert.Equal(t, "inner-finally;outer-caught: deep", out.String())
}

func TestCast_ScalarConversions(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"int from string", `<?php echo (int)"42abc";`, "42"},
		{"int from float truncates", `<?php echo (int)3.9;`, "3"},
		{"float from string", `<?php echo (float)"3.5";`, "3.5"},
		{"string from int", `<?php echo (string)7;`, "7"},
		{"bool from empty string is false", `<?php echo (bool)"" ? "t" : "f";`, "f"},
		{"bool from non-empty string is true", `<?php echo (bool)"0.0" ? "t" : "f";`, "t"},
		{"unset cast always null", `<?php echo ((unset)5) === null ? "null" : "not-null";`, "null"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := runPHP(t, tt.src)
			assert.Equal(t, tt.want, out)
		})
	}
}

func TestCast_ArrayAndObject(t *testing.T) {
	out := runPHP(t, `<?php
		$obj = (object)["a" => 1, "b" => 2];
		echo $obj->a . "," . $obj->b . ";";

		$arr = (array)$obj;
		echo $arr["a"] . "," . $arr["b"] . ";";

		$wrapped = (array)5;
		echo $wrapped[0] . ";";

		$empty = (array)null;
		echo $empty ? "non-empty" : "empty";
	`)
	assert.Equal(t, "1,2;1,2;5;empty", out)
}
