package compiler

import (
	"fmt"
	"math/big"

	"github.com/chazu/gobstones/pkg/ast"
	"github.com/chazu/gobstones/pkg/bytecode"
)

// compileExpression lowers expr with net stack effect +1 (spec §4.4).
func (c *Compiler) compileExpression(expr ast.Expression) error {
	switch e := expr.(type) {
	case *ast.Variable:
		c.emit(e, bytecode.PushVariable(e.Name))
		return nil
	case *ast.ConstantNumber:
		return c.compileConstantNumber(e)
	case *ast.ConstantString:
		c.emit(e, bytecode.PushString(e.Value))
		return nil
	case *ast.List:
		return c.compileList(e)
	case *ast.TupleExpr:
		return c.compileTupleExpr(e)
	case *ast.StructureExpr:
		return c.compileStructureExpr(e)
	case *ast.FunctionCall:
		return c.compileFunctionCall(e)
	case *ast.Range:
		return &NotImplementedError{Kind: "Expression", Tag: "Range"}
	case *ast.StructureUpdate:
		return &NotImplementedError{Kind: "Expression", Tag: "StructureUpdate"}
	default:
		return &NotImplementedError{Kind: "Expression", Tag: fmt.Sprintf("%T", expr)}
	}
}

func (c *Compiler) compileConstantNumber(n *ast.ConstantNumber) error {
	value, ok := new(big.Int).SetString(n.Value, 10)
	if !ok {
		return fmt.Errorf("compiler: %q is not a valid integer literal", n.Value)
	}
	c.emit(n, bytecode.PushInteger(value))
	return nil
}

func (c *Compiler) compileList(l *ast.List) error {
	for _, elem := range l.Elements {
		if err := c.compileExpression(elem); err != nil {
			return err
		}
	}
	c.emit(l, bytecode.MakeList(len(l.Elements)))
	return nil
}

func (c *Compiler) compileTupleExpr(t *ast.TupleExpr) error {
	for _, elem := range t.Elements {
		if err := c.compileExpression(elem); err != nil {
			return err
		}
	}
	c.emit(t, bytecode.MakeTuple(len(t.Elements)))
	return nil
}

// compileStructureExpr lowers `C(f1 <- v1, ..., fn <- vn)`: each
// field value compiles in source order, and the field-name list
// collected alongside it drives the eventual MakeStructure.
func (c *Compiler) compileStructureExpr(s *ast.StructureExpr) error {
	fieldNames := make([]string, len(s.Fields))
	for i, field := range s.Fields {
		if err := c.compileExpression(field.Value); err != nil {
			return err
		}
		fieldNames[i] = field.Name
	}
	typeName, _ := c.symtab.ConstructorType(s.Constructor)
	c.emit(s, bytecode.MakeStructure(typeName, s.Constructor, fieldNames))
	return nil
}

// compileFunctionCall dispatches f(a1,...,an): short-circuit &&/||
// (reserved extension), primitive function, user function (reserved
// extension), field accessor (reserved extension), or undefined.
func (c *Compiler) compileFunctionCall(f *ast.FunctionCall) error {
	if f.Name == "&&" || f.Name == "||" {
		return &NotImplementedError{Kind: "Expression", Tag: fmt.Sprintf("short-circuit %s", f.Name)}
	}

	for _, arg := range f.Args {
		if err := c.compileExpression(arg); err != nil {
			return err
		}
	}

	switch {
	case c.prims.IsFunction(f.Name):
		c.emit(f, bytecode.PrimitiveCall(f.Name, len(f.Args)))
		return nil
	case c.symtab.IsFunction(f.Name):
		return &NotImplementedError{Kind: "Expression", Tag: fmt.Sprintf("user function call: %s", f.Name)}
	case c.symtab.IsField(f.Name):
		return &NotImplementedError{Kind: "Expression", Tag: fmt.Sprintf("field accessor: %s", f.Name)}
	default:
		return &UndefinedError{Namespace: "function", Name: f.Name}
	}
}
