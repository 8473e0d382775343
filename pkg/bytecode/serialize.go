package bytecode

import (
	"fmt"
	"math/big"

	"github.com/fxamacker/cbor/v2"

	"github.com/chazu/gobstones/pkg/ast"
)

// wireInstruction is Instruction's on-the-wire shape. math/big.Int
// does not round-trip through CBOR the way a plain decimal string
// does, so the integer literal travels as text and is reparsed on
// load; every other field is already a CBOR-friendly primitive.
type wireInstruction struct {
	Op       Opcode
	Start    ast.Pos
	End      ast.Pos
	Name     string
	Name2    string
	Names    []string `cbor:",omitempty"`
	Label    string
	Int      int
	Str      string
	Num      string `cbor:",omitempty"`
	TypeName string
	Type     *TypeExpr `cbor:",omitempty"`
}

func toWire(i Instruction) wireInstruction {
	w := wireInstruction{
		Op: i.Op, Start: i.Start, End: i.End,
		Name: i.Name, Name2: i.Name2, Names: i.Names,
		Label: i.Label, Int: i.Int, Str: i.Str,
		TypeName: i.TypeName, Type: i.Type,
	}
	if i.Num != nil {
		w.Num = i.Num.String()
	}
	return w
}

func fromWire(w wireInstruction) (Instruction, error) {
	i := Instruction{
		Op: w.Op, Start: w.Start, End: w.End,
		Name: w.Name, Name2: w.Name2, Names: w.Names,
		Label: w.Label, Int: w.Int, Str: w.Str,
		TypeName: w.TypeName, Type: w.Type,
	}
	if w.Num != "" {
		n, ok := new(big.Int).SetString(w.Num, 10)
		if !ok {
			return Instruction{}, fmt.Errorf("bytecode: invalid integer literal %q on the wire", w.Num)
		}
		i.Num = n
	}
	return i, nil
}

// Serialize encodes Code to CBOR for caching or cross-process
// transport. The VM that ultimately executes a Code value reads this
// same encoding.
func (c *Code) Serialize() ([]byte, error) {
	wire := make([]wireInstruction, len(c.Instructions))
	for i, instr := range c.Instructions {
		wire[i] = toWire(instr)
	}
	data, err := cbor.Marshal(wire)
	if err != nil {
		return nil, fmt.Errorf("bytecode: serialize: %w", err)
	}
	return data, nil
}

// Deserialize decodes Code previously produced by Serialize.
func Deserialize(data []byte) (*Code, error) {
	var wire []wireInstruction
	if err := cbor.Unmarshal(data, &wire); err != nil {
		return nil, fmt.Errorf("bytecode: deserialize: %w", err)
	}
	instrs := make([]Instruction, len(wire))
	for i, w := range wire {
		instr, err := fromWire(w)
		if err != nil {
			return nil, err
		}
		instrs[i] = instr
	}
	return &Code{Instructions: instrs}, nil
}
