package ast

import (
	"fmt"
	"strings"
)

// EchoStatement represents `echo expr1, expr2, ...;`.
type EchoStatement struct {
	BaseNode
	Arguments []Expression `json:"arguments"`
}

func (e *EchoStatement) GetChildren() []Node {
	children := make([]Node, 0, len(e.Arguments))
	for _, arg := range e.Arguments {
		children = append(children, arg)
	}
	return children
}

func (e *EchoStatement) String() string {
	var parts []string
	for _, arg := range e.Arguments {
		parts = append(parts, arg.String())
	}
	return fmt.Sprintf("echo %s;", strings.Join(parts, ", "))
}

func (e *EchoStatement) statementNode() {}

// GlobalStatement represents `global $a, $b;`.
type GlobalStatement struct {
	BaseNode
	Variables []Expression `json:"variables"`
}

func (g *GlobalStatement) GetChildren() []Node {
	children := make([]Node, 0, len(g.Variables))
	for _, v := range g.Variables {
		children = append(children, v)
	}
	return children
}

func (g *GlobalStatement) String() string {
	var parts []string
	for _, v := range g.Variables {
		parts = append(parts, v.String())
	}
	return fmt.Sprintf("global %s;", strings.Join(parts, ", "))
}

func (g *GlobalStatement) statementNode() {}

// StaticVariable represents a single `$name [= default]` clause of a static statement.
type StaticVariable struct {
	BaseNode
	Name         string     `json:"name"`
	DefaultValue Expression `json:"default_value,omitempty"`
}

func (s *StaticVariable) GetChildren() []Node {
	if s.DefaultValue != nil {
		return []Node{s.DefaultValue}
	}
	return nil
}

func (s *StaticVariable) String() string {
	if s.DefaultValue != nil {
		return fmt.Sprintf("$%s = %s", s.Name, s.DefaultValue.String())
	}
	return "$" + s.Name
}

func (s *StaticVariable) statementNode() {}

// StaticStatement represents `static $a = 1, $b;` inside a function body.
type StaticStatement struct {
	BaseNode
	Variables []*StaticVariable `json:"variables"`
}

func (s *StaticStatement) GetChildren() []Node {
	children := make([]Node, 0, len(s.Variables))
	for _, v := range s.Variables {
		children = append(children, v)
	}
	return children
}

func (s *StaticStatement) String() string {
	var parts []string
	for _, v := range s.Variables {
		parts = append(parts, v.String())
	}
	return fmt.Sprintf("static %s;", strings.Join(parts, ", "))
}

func (s *StaticStatement) statementNode() {}

// UnsetStatement represents `unset($a, $b);`.
type UnsetStatement struct {
	BaseNode
	Variables []Expression `json:"variables"`
}

func (u *UnsetStatement) GetChildren() []Node {
	children := make([]Node, 0, len(u.Variables))
	for _, v := range u.Variables {
		children = append(children, v)
	}
	return children
}

func (u *UnsetStatement) String() string {
	var parts []string
	for _, v := range u.Variables {
		parts = append(parts, v.String())
	}
	return fmt.Sprintf("unset(%s);", strings.Join(parts, ", "))
}

func (u *UnsetStatement) statementNode() {}

// DeclareStatement represents `declare(strict_types=1);`, its block form
// `declare(strict_types=1) { ... }`, and the alternative-syntax form
// `declare(strict_types=1): ... enddeclare;`. Declarations are parsed as
// ordinary assignment expressions (`strict_types=1`); the compiler reads
// the directive name/value off each one.
type DeclareStatement struct {
	BaseNode
	Declarations []Expression `json:"declarations"`
	Body         Statement    `json:"body,omitempty"`
	Alternative  bool         `json:"alternative,omitempty"`
}

func (d *DeclareStatement) GetChildren() []Node {
	children := make([]Node, 0, len(d.Declarations)+1)
	for _, decl := range d.Declarations {
		children = append(children, decl)
	}
	if d.Body != nil {
		children = append(children, d.Body)
	}
	return children
}

func (d *DeclareStatement) String() string {
	var parts []string
	for _, decl := range d.Declarations {
		parts = append(parts, decl.String())
	}
	header := fmt.Sprintf("declare(%s)", strings.Join(parts, ", "))
	if d.Body != nil {
		return header + " " + d.Body.String()
	}
	return header + ";"
}

func (d *DeclareStatement) statementNode() {}

// HaltCompilerStatement represents `__halt_compiler();`. Everything after
// it in the source is inert data (commonly read via __COMPILER_HALT_OFFSET__),
// not further tokenized or parsed.
type HaltCompilerStatement struct {
	BaseNode
}

func (h *HaltCompilerStatement) GetChildren() []Node { return nil }

func (h *HaltCompilerStatement) String() string { return "__halt_compiler();" }

func (h *HaltCompilerStatement) statementNode() {}
