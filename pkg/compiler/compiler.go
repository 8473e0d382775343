package compiler

import (
	"fmt"

	"github.com/chazu/gobstones/pkg/ast"
	"github.com/chazu/gobstones/pkg/bytecode"
	"github.com/chazu/gobstones/pkg/messages"
	"github.com/chazu/gobstones/pkg/primitives"
	"github.com/chazu/gobstones/pkg/symboltable"
)

// Compiler lowers one ast.Program to one bytecode.Code. Construct a
// fresh Compiler per compilation; its NameGen counters are
// instance-private so two Compilers never collide even when run
// concurrently against the same symbol table and primitives catalog.
type Compiler struct {
	code   *bytecode.Code
	names  *bytecode.NameGen
	symtab symboltable.SymbolTable
	prims  primitives.Catalog
	msgs   *messages.Catalog
}

// New returns a Compiler reading symtab and prims read-only, and
// looking up fixed message-catalog keys (TYPE:Bool, CONS:TIMEOUT,
// errmsg:switch-does-not-match) from msgs.
func New(symtab symboltable.SymbolTable, prims primitives.Catalog, msgs *messages.Catalog) *Compiler {
	return &Compiler{
		symtab: symtab,
		prims:  prims,
		msgs:   msgs,
	}
}

// Compile lowers program to a Code. It never fails on well-formed,
// linted input that stays within the lowered surface; it returns a
// NotImplementedError or UndefinedError where the input reaches a
// reserved extension point or a genuinely undefined call.
func (c *Compiler) Compile(program *ast.Program) (*bytecode.Code, error) {
	c.code = bytecode.NewCode()
	c.names = &bytecode.NameGen{}

	if len(program.Definitions) == 0 {
		span := program.Span()
		c.code.Produce(span.Start, span.End, bytecode.Return())
		return c.code, nil
	}

	for _, def := range program.Definitions {
		switch d := def.(type) {
		case *ast.Entry:
			if err := c.compileEntry(d); err != nil {
				return nil, err
			}
		case *ast.InteractiveProgram:
			return nil, &NotImplementedError{Kind: "Definition", Tag: "InteractiveProgram"}
		}
	}

	for _, def := range program.Definitions {
		switch d := def.(type) {
		case *ast.Procedure:
			return nil, &NotImplementedError{Kind: "Definition", Tag: fmt.Sprintf("Procedure %s", d.Name)}
		case *ast.Function:
			return nil, &NotImplementedError{Kind: "Definition", Tag: fmt.Sprintf("Function %s", d.Name)}
		case *ast.TypeDef:
			// Type definitions contribute no instructions; the compiler
			// only consults them indirectly, through the symbol table.
		}
	}

	return c.code, nil
}

// compileEntry lowers a `program { ... }` entry point: its body,
// statement by statement, followed by an unconditional Return (spec
// §4.1). This trailing Return carries no pushed value, unlike a
// `return e` statement inside the body.
func (c *Compiler) compileEntry(e *ast.Entry) error {
	if err := c.compileBlock(e.Body); err != nil {
		return err
	}
	end := e.Span().End
	c.code.Produce(end, end, bytecode.Return())
	return nil
}

func (c *Compiler) emit(n ast.Node, instr bytecode.Instruction) {
	span := n.Span()
	c.code.Produce(span.Start, span.End, instr)
}

func (c *Compiler) freshLabel() string    { return c.names.FreshLabel() }
func (c *Compiler) freshVariable() string { return c.names.FreshVariable() }
