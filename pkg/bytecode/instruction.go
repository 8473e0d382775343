package bytecode

import (
	"math/big"

	"github.com/chazu/gobstones/pkg/ast"
)

// Instruction is one emitted instruction. Only the fields relevant to
// Op are meaningful; the zero value of the rest is never read. Unlike
// the AST, which has one struct per node kind, instructions share this
// "one struct, many optional fields" shape so Code stays a flat
// []Instruction rather than a family of concrete instruction types
// requiring a second type switch at every consumer.
type Instruction struct {
	Op    Opcode
	Start ast.Pos
	End   ast.Pos

	Name  string // PushVariable/SetVariable/UnsetVariable id; ReadStructureField field name
	Name2 string // JumpIfStructure/MakeStructure/UpdateStructure constructor name
	Names []string

	Label string // Jump/JumpIfFalse/JumpIfStructure/JumpIfTuple/Call target; Label's own name

	Int int // JumpIfTuple size, Call/PrimitiveCall nargs, MakeTuple/MakeList size, ReadTupleComponent index

	Str  string // PushString value
	Num  *big.Int

	TypeName string // MakeStructure/UpdateStructure owning type name
	Type     *TypeExpr
}

// Span reports the instruction's source range.
func (i Instruction) Span() ast.Span { return ast.Span{Start: i.Start, End: i.End} }
