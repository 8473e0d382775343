package bytecode

import (
	"fmt"
	"math/big"
	"regexp"

	"github.com/chazu/gobstones/pkg/ast"
)

// Code is an ordered, append-only sequence of instructions (spec.md
// §3). Labels are unique across a whole Code; every Jump* target names
// some Label in the same Code.
type Code struct {
	Instructions []Instruction
}

// NewCode returns an empty Code.
func NewCode() *Code {
	return &Code{Instructions: make([]Instruction, 0, 64)}
}

// Len reports how many instructions have been produced so far.
func (c *Code) Len() int { return len(c.Instructions) }

// Produce annotates instr with the given positions and appends it.
// This is the sole way instructions enter a Code, guaranteeing the
// "every instruction has positions" invariant (spec.md §3).
func (c *Code) Produce(start, end ast.Pos, instr Instruction) {
	instr.Start = start
	instr.End = end
	c.Instructions = append(c.Instructions, instr)
}

// ProduceList applies Produce to each instr in order, all under the
// same start/end span. Used where one AST node lowers to a fixed run
// of instructions (spec.md §4.5).
func (c *Code) ProduceList(start, end ast.Pos, instrs ...Instruction) {
	for _, instr := range instrs {
		c.Produce(start, end, instr)
	}
}

// ---------------------------------------------------------------------------
// Instruction factories (spec.md §3)
// ---------------------------------------------------------------------------

func PushInteger(n *big.Int) Instruction { return Instruction{Op: OpPushInteger, Num: n} }
func PushString(s string) Instruction    { return Instruction{Op: OpPushString, Str: s} }
func PushVariable(id string) Instruction { return Instruction{Op: OpPushVariable, Name: id} }

func SetVariable(id string) Instruction   { return Instruction{Op: OpSetVariable, Name: id} }
func UnsetVariable(id string) Instruction { return Instruction{Op: OpUnsetVariable, Name: id} }

func Label(name string) Instruction { return Instruction{Op: OpLabel, Label: name} }
func Jump(lbl string) Instruction   { return Instruction{Op: OpJump, Label: lbl} }
func JumpIfFalse(lbl string) Instruction {
	return Instruction{Op: OpJumpIfFalse, Label: lbl}
}
func JumpIfStructure(constructorName, lbl string) Instruction {
	return Instruction{Op: OpJumpIfStructure, Name2: constructorName, Label: lbl}
}
func JumpIfTuple(size int, lbl string) Instruction {
	return Instruction{Op: OpJumpIfTuple, Int: size, Label: lbl}
}
func Call(lbl string, nargs int) Instruction {
	return Instruction{Op: OpCall, Label: lbl, Int: nargs}
}
func Return() Instruction { return Instruction{Op: OpReturn} }

func MakeTuple(size int) Instruction { return Instruction{Op: OpMakeTuple, Int: size} }
func MakeList(size int) Instruction  { return Instruction{Op: OpMakeList, Int: size} }
func MakeStructure(typeName, constructorName string, fieldNames []string) Instruction {
	return Instruction{Op: OpMakeStructure, TypeName: typeName, Name2: constructorName, Names: fieldNames}
}
func UpdateStructure(typeName, constructorName string, fieldNames []string) Instruction {
	return Instruction{Op: OpUpdateStructure, TypeName: typeName, Name2: constructorName, Names: fieldNames}
}

func ReadTupleComponent(index int) Instruction { return Instruction{Op: OpReadTupleComponent, Int: index} }
func ReadStructureField(fieldName string) Instruction {
	return Instruction{Op: OpReadStructureField, Name: fieldName}
}

func Dup() Instruction { return Instruction{Op: OpDup} }
func Pop() Instruction { return Instruction{Op: OpPop} }
func Add() Instruction { return Instruction{Op: OpAdd} }

func PrimitiveCall(name string, nargs int) Instruction {
	return Instruction{Op: OpPrimitiveCall, Name: name, Int: nargs}
}

func SaveState() Instruction    { return Instruction{Op: OpSaveState} }
func RestoreState() Instruction { return Instruction{Op: OpRestoreState} }

func TypeCheck(t TypeExpr) Instruction { return Instruction{Op: OpTypeCheck, Type: &t} }

// ---------------------------------------------------------------------------
// NameGen: fresh label/variable generator (spec.md §4.5)
// ---------------------------------------------------------------------------

// NameGen produces unique label and synthetic-variable names for one
// compilation. It is not safe for concurrent use; each Compiler owns
// its own instance so two concurrent compilations never collide and a
// single compilation is deterministic (spec.md §5, §9).
type NameGen struct {
	nextLabel    int
	nextVariable int
}

// FreshLabel returns the next unique label name, `_l0`, `_l1`, ...
func (g *NameGen) FreshLabel() string {
	name := fmt.Sprintf("_l%d", g.nextLabel)
	g.nextLabel++
	return name
}

// FreshVariable returns the next unique synthetic variable name,
// `_v0`, `_v1`, ...
func (g *NameGen) FreshVariable() string {
	name := fmt.Sprintf("_v%d", g.nextVariable)
	g.nextVariable++
	return name
}

// ---------------------------------------------------------------------------
// Structural validation (spec.md §3 invariants, §8 property tests)
// ---------------------------------------------------------------------------

var syntheticNamePattern = regexp.MustCompile(`^_(l|v)\d+$`)

// zeroPos is the sentinel for "position not set": by convention source
// positions are 1-indexed, so Line 0 never occurs in a real position.
var zeroPos ast.Pos

// Validate checks the structural invariants spec.md §3 names:
// every instruction has non-zero positions, every label is unique,
// every jump target resolves to some label in this Code, and every
// underscore-prefixed label, variable or constructor name matches the
// reserved `_l\d+` / `_v\d+` shape. PrimitiveCall names come from the
// runtime's primitives catalog (e.g. `_unsafeListLength`, `_FAIL`) and
// are not subject to that shape check.
func (c *Code) Validate() error {
	labels := make(map[string]int, len(c.Instructions))
	for idx, instr := range c.Instructions {
		if instr.Start == zeroPos || instr.End == zeroPos {
			return fmt.Errorf("bytecode: instruction %d (%s) is missing source positions", idx, instr.Op)
		}
		if instr.Op == OpLabel {
			labels[instr.Label]++
		}
		names := []string{instr.Name2, instr.Label}
		if instr.Op != OpPrimitiveCall {
			names = append(names, instr.Name)
		}
		for _, name := range names {
			if name != "" && name[0] == '_' && !syntheticNamePattern.MatchString(name) {
				return fmt.Errorf("bytecode: reserved-prefix name %q does not match the synthetic name shape", name)
			}
		}
	}
	for label, count := range labels {
		if count > 1 {
			return fmt.Errorf("bytecode: label %q is declared %d times, must be unique", label, count)
		}
	}
	for idx, instr := range c.Instructions {
		if !instr.Op.IsJump() {
			continue
		}
		if _, ok := labels[instr.Label]; !ok {
			return fmt.Errorf("bytecode: instruction %d (%s) targets undefined label %q", idx, instr.Op, instr.Label)
		}
	}
	return nil
}
