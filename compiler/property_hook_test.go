package compiler_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestPropertyHook_GetComputesValue exercises the classic "computed property"
// pattern: a get hook with no backing storage of its own, derived from
// another property.
func TestPropertyHook_GetComputesValue(t *testing.T) {
	out := runPHP(t, `<?php
		class Temperature {
			public function __construct(public int $celsius) {}
			public int $fahrenheit {
				get => $this->celsius * 9 / 5 + 32;
			}
		}
		$t = new Temperature(20);
		echo $t->fahrenheit;
	`)
	assert.Equal(t, "68", out)
}

// TestPropertyHook_SetTransformsAssignedValue exercises a set hook that
// rewrites the assigned value before storing it on a separate backing
// property (the hooked property itself has no raw storage).
func TestPropertyHook_SetTransformsAssignedValue(t *testing.T) {
	out := runPHP(t, `<?php
		class Name {
			private string $raw = "";
			public string $value {
				get => $this->raw;
				set(string $v) {
					$this->raw = strtoupper($v);
				}
			}
		}
		$n = new Name();
		$n->value = "hello";
		echo $n->value;
	`)
	assert.Equal(t, "HELLO", out)
}

// TestPropertyHook_SetHookDefaultParameterName covers the implicit `value`
// parameter name a set hook gets when it declares none of its own.
func TestPropertyHook_SetHookDefaultParameterName(t *testing.T) {
	out := runPHP(t, `<?php
		class Box {
			private int $raw = 0;
			public int $stored {
				get => $this->raw;
				set {
					$this->raw = $value + 1;
				}
			}
		}
		$b = new Box();
		$b->stored = 9;
		echo $b->stored;
	`)
	assert.Equal(t, "10", out)
}
