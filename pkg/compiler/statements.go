package compiler

import (
	"fmt"
	"math/big"

	"github.com/chazu/gobstones/pkg/ast"
	"github.com/chazu/gobstones/pkg/bytecode"
	"github.com/chazu/gobstones/pkg/messages"
)

func (c *Compiler) compileBlock(block *ast.Block) error {
	for _, stmt := range block.Statements {
		if err := c.compileStatement(stmt); err != nil {
			return err
		}
	}
	return nil
}

// compileStatement lowers stmt with net stack effect 0, except Return
// with a value, which leaves 1 (spec §4.2 invariants).
func (c *Compiler) compileStatement(stmt ast.Statement) error {
	switch s := stmt.(type) {
	case *ast.Block:
		return c.compileBlock(s)
	case *ast.Return:
		return c.compileReturn(s)
	case *ast.AssignVariable:
		return c.compileAssignVariable(s)
	case *ast.AssignTuple:
		return c.compileAssignTuple(s)
	case *ast.ProcedureCall:
		return c.compileProcedureCall(s)
	case *ast.If:
		return c.compileIf(s)
	case *ast.While:
		return c.compileWhile(s)
	case *ast.Repeat:
		return c.compileRepeat(s)
	case *ast.Foreach:
		return c.compileForeach(s)
	case *ast.Switch:
		return c.compileSwitch(s)
	default:
		return &NotImplementedError{Kind: "Statement", Tag: fmt.Sprintf("%T", stmt)}
	}
}

func (c *Compiler) compileReturn(r *ast.Return) error {
	if r.Value != nil {
		if err := c.compileExpression(r.Value); err != nil {
			return err
		}
	}
	c.emit(r, bytecode.Return())
	return nil
}

func (c *Compiler) compileAssignVariable(a *ast.AssignVariable) error {
	if err := c.compileExpression(a.Value); err != nil {
		return err
	}
	c.emit(a, bytecode.SetVariable(a.Name))
	return nil
}

// compileAssignTuple lowers `(x1,...,xk) := value` per spec §4.2:
// the value is type-checked as a k-tuple, each component read and
// bound, then the subject itself is discarded.
func (c *Compiler) compileAssignTuple(a *ast.AssignTuple) error {
	if err := c.compileExpression(a.Value); err != nil {
		return err
	}
	elems := make([]bytecode.TypeExpr, len(a.Names))
	for i := range elems {
		elems[i] = bytecode.Any()
	}
	c.emit(a, bytecode.TypeCheck(bytecode.TupleType(elems...)))
	for i, name := range a.Names {
		c.emit(a, bytecode.ReadTupleComponent(i))
		c.emit(a, bytecode.SetVariable(name))
	}
	c.emit(a, bytecode.Pop())
	return nil
}

// compileProcedureCall dispatches P(a1,...,an): primitive procedure,
// user-defined procedure (reserved extension), or undefined. Checks
// IsProcedure, never IsFunction, on the symbol-table side (spec §9's
// noted typo is not reproduced here).
func (c *Compiler) compileProcedureCall(p *ast.ProcedureCall) error {
	for _, arg := range p.Args {
		if err := c.compileExpression(arg); err != nil {
			return err
		}
	}
	switch {
	case c.prims.IsProcedure(p.Name):
		c.emit(p, bytecode.PrimitiveCall(p.Name, len(p.Args)))
		return nil
	case c.symtab.IsProcedure(p.Name):
		return &NotImplementedError{Kind: "Statement", Tag: fmt.Sprintf("user procedure call: %s", p.Name)}
	default:
		return &UndefinedError{Namespace: "procedure", Name: p.Name}
	}
}

func (c *Compiler) boolCheck(n ast.Node) {
	c.emit(n, bytecode.TypeCheck(bytecode.StructureType(c.msgs.MustLookup(messages.KeyBool), nil)))
}

func (c *Compiler) compileIf(i *ast.If) error {
	if err := c.compileExpression(i.Condition); err != nil {
		return err
	}
	c.boolCheck(i)

	elseLabel := c.freshLabel()
	c.emit(i, bytecode.JumpIfFalse(elseLabel))

	if err := c.compileBlock(i.Then); err != nil {
		return err
	}

	if i.Else == nil {
		c.emit(i, bytecode.Label(elseLabel))
		return nil
	}

	endLabel := c.freshLabel()
	c.emit(i, bytecode.Jump(endLabel))
	c.emit(i, bytecode.Label(elseLabel))
	if err := c.compileBlock(i.Else); err != nil {
		return err
	}
	c.emit(i, bytecode.Label(endLabel))
	return nil
}

func (c *Compiler) compileWhile(w *ast.While) error {
	startLabel := c.freshLabel()
	endLabel := c.freshLabel()

	c.emit(w, bytecode.Label(startLabel))
	if err := c.compileExpression(w.Condition); err != nil {
		return err
	}
	c.boolCheck(w)
	c.emit(w, bytecode.JumpIfFalse(endLabel))
	if err := c.compileBlock(w.Body); err != nil {
		return err
	}
	c.emit(w, bytecode.Jump(startLabel))
	c.emit(w, bytecode.Label(endLabel))
	return nil
}

// compileRepeat lowers `repeat <times> times { body }` (spec §4.2).
// The countdown counter lives on the stack, not in a named variable;
// Dup preserves it across the comparison each iteration.
func (c *Compiler) compileRepeat(r *ast.Repeat) error {
	if err := c.compileExpression(r.Times); err != nil {
		return err
	}
	c.emit(r, bytecode.TypeCheck(bytecode.Integer()))

	startLabel := c.freshLabel()
	endLabel := c.freshLabel()

	c.emit(r, bytecode.Label(startLabel))
	c.emit(r, bytecode.Dup())
	c.emit(r, bytecode.PushInteger(big.NewInt(0)))
	c.emit(r, bytecode.PrimitiveCall(">", 2))
	c.emit(r, bytecode.JumpIfFalse(endLabel))

	if err := c.compileBlock(r.Body); err != nil {
		return err
	}

	c.emit(r, bytecode.PushInteger(big.NewInt(1)))
	c.emit(r, bytecode.PrimitiveCall("-", 2))
	c.emit(r, bytecode.Jump(startLabel))
	c.emit(r, bytecode.Label(endLabel))
	c.emit(r, bytecode.Pop())
	return nil
}

// compileForeach lowers `foreach index in range { body }` (spec
// §4.2). Three fresh synthetic variables stand in for the iterated
// list, its length, and the current position; all four bindings
// (including the user index name) are unset on exit.
func (c *Compiler) compileForeach(f *ast.Foreach) error {
	listVar := c.freshVariable()
	nVar := c.freshVariable()
	posVar := c.freshVariable()
	startLabel := c.freshLabel()
	endLabel := c.freshLabel()

	if err := c.compileExpression(f.Range); err != nil {
		return err
	}
	c.emit(f, bytecode.TypeCheck(bytecode.ListType(bytecode.Any())))
	c.emit(f, bytecode.SetVariable(listVar))

	c.emit(f, bytecode.PushVariable(listVar))
	c.emit(f, bytecode.PrimitiveCall("_unsafeListLength", 1))
	c.emit(f, bytecode.SetVariable(nVar))

	c.emit(f, bytecode.PushInteger(big.NewInt(0)))
	c.emit(f, bytecode.SetVariable(posVar))

	c.emit(f, bytecode.Label(startLabel))
	c.emit(f, bytecode.PushVariable(posVar))
	c.emit(f, bytecode.PushVariable(nVar))
	c.emit(f, bytecode.PrimitiveCall("<", 2))
	c.emit(f, bytecode.JumpIfFalse(endLabel))

	c.emit(f, bytecode.PushVariable(listVar))
	c.emit(f, bytecode.PushVariable(posVar))
	c.emit(f, bytecode.PrimitiveCall("_unsafeListNth", 2))
	c.emit(f, bytecode.SetVariable(f.Index))

	if err := c.compileBlock(f.Body); err != nil {
		return err
	}

	c.emit(f, bytecode.PushVariable(posVar))
	c.emit(f, bytecode.PushInteger(big.NewInt(1)))
	c.emit(f, bytecode.PrimitiveCall("+", 2))
	c.emit(f, bytecode.SetVariable(posVar))
	c.emit(f, bytecode.Jump(startLabel))

	c.emit(f, bytecode.Label(endLabel))
	c.emit(f, bytecode.UnsetVariable(listVar))
	c.emit(f, bytecode.UnsetVariable(nVar))
	c.emit(f, bytecode.UnsetVariable(posVar))
	c.emit(f, bytecode.UnsetVariable(f.Index))
	return nil
}

// compileSwitch lowers pattern-matching dispatch (spec §4.2):
// subject pushed once, every branch's check tried in source order
// without popping it, an unconditional fall-through failure after all
// checks, then each branch's bind/body/unbind gated behind its own
// label.
func (c *Compiler) compileSwitch(sw *ast.Switch) error {
	if err := c.compileExpression(sw.Subject); err != nil {
		return err
	}

	branchLabels := make([]string, len(sw.Branches))
	for i, branch := range sw.Branches {
		branchLabels[i] = c.freshLabel()
		if err := c.checkPattern(branch.Pattern, branchLabels[i]); err != nil {
			return err
		}
	}

	failMsg := c.msgs.MustLookup(messages.KeySwitchNoMatch)
	c.emit(sw, bytecode.PushString(failMsg))
	c.emit(sw, bytecode.PrimitiveCall("_FAIL", 1))

	endLabel := c.freshLabel()
	for i, branch := range sw.Branches {
		c.emit(sw, bytecode.Label(branchLabels[i]))
		bound, err := c.bindPattern(branch.Pattern)
		if err != nil {
			return err
		}
		c.emit(sw, bytecode.Pop())
		if err := c.compileBlock(branch.Body); err != nil {
			return err
		}
		c.unbindPattern(branch.Pattern, bound)
		c.emit(sw, bytecode.Jump(endLabel))
	}
	c.emit(sw, bytecode.Label(endLabel))
	return nil
}
