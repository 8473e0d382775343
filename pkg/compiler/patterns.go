package compiler

import (
	"fmt"

	"github.com/chazu/gobstones/pkg/ast"
	"github.com/chazu/gobstones/pkg/bytecode"
	"github.com/chazu/gobstones/pkg/messages"
)

// checkPattern emits the non-popping check-and-branch phase (spec
// §4.3): it falls through on mismatch and jumps to target on match,
// leaving the subject on the stack either way.
func (c *Compiler) checkPattern(pattern ast.Pattern, target string) error {
	switch p := pattern.(type) {
	case *ast.Wildcard:
		c.emit(p, bytecode.Jump(target))
		return nil
	case *ast.Structure:
		typeName, _ := c.symtab.ConstructorType(p.Constructor)
		c.emit(p, bytecode.TypeCheck(bytecode.StructureType(typeName, nil)))
		c.emit(p, bytecode.JumpIfStructure(p.Constructor, target))
		return nil
	case *ast.Tuple:
		elems := make([]bytecode.TypeExpr, len(p.Params))
		for i := range elems {
			elems[i] = bytecode.Any()
		}
		c.emit(p, bytecode.TypeCheck(bytecode.TupleType(elems...)))
		c.emit(p, bytecode.JumpIfTuple(len(p.Params), target))
		return nil
	case *ast.Timeout:
		timeoutCons := c.msgs.MustLookup(messages.KeyTimeout)
		c.emit(p, bytecode.JumpIfStructure(timeoutCons, target))
		return nil
	default:
		return &NotImplementedError{Kind: "Pattern", Tag: fmt.Sprintf("%T", pattern)}
	}
}

// bindPattern emits the non-popping bind phase and returns the
// parameter names it bound, in binding order, for a later unbind.
func (c *Compiler) bindPattern(pattern ast.Pattern) ([]string, error) {
	switch p := pattern.(type) {
	case *ast.Wildcard, *ast.Timeout:
		return nil, nil
	case *ast.Structure:
		if len(p.Params) == 0 {
			return nil, nil
		}
		fields, _ := c.symtab.ConstructorFields(p.Constructor)
		for i, paramName := range p.Params {
			c.emit(p, bytecode.ReadStructureField(fields[i]))
			c.emit(p, bytecode.SetVariable(paramName))
		}
		return p.Params, nil
	case *ast.Tuple:
		for i, paramName := range p.Params {
			c.emit(p, bytecode.ReadTupleComponent(i))
			c.emit(p, bytecode.SetVariable(paramName))
		}
		return p.Params, nil
	default:
		return nil, &NotImplementedError{Kind: "Pattern", Tag: fmt.Sprintf("%T", pattern)}
	}
}

// unbindPattern emits UnsetVariable for each name bindPattern bound.
func (c *Compiler) unbindPattern(pattern ast.Pattern, bound []string) {
	for _, name := range bound {
		c.emit(pattern, bytecode.UnsetVariable(name))
	}
}
