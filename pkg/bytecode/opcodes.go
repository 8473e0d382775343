package bytecode

import "fmt"

// Opcode identifies an instruction's kind. Values are grouped by
// category the way the covered VM's own instruction set is (spec.md
// §3); the grouping is purely documentation, nothing dispatches on
// numeric ranges here.
type Opcode byte

const (
	// Stack pushes.
	OpPushInteger  Opcode = iota // PushInteger(n)
	OpPushString                 // PushString(s)
	OpPushVariable               // PushVariable(id)

	// Variable binding.
	OpSetVariable   // SetVariable(id)
	OpUnsetVariable // UnsetVariable(id)

	// Control flow.
	OpLabel           // Label(name)
	OpJump            // Jump(lbl)
	OpJumpIfFalse     // JumpIfFalse(lbl)
	OpJumpIfStructure // JumpIfStructure(constructorName, lbl)
	OpJumpIfTuple     // JumpIfTuple(size, lbl)
	OpCall            // Call(lbl, nargs)
	OpReturn          // Return

	// Value construction.
	OpMakeTuple       // MakeTuple(size)
	OpMakeList        // MakeList(size)
	OpMakeStructure   // MakeStructure(typeName, constructorName, fieldNames)
	OpUpdateStructure // UpdateStructure(typeName, constructorName, fieldNames)

	// Value inspection (non-popping).
	OpReadTupleComponent // ReadTupleComponent(index)
	OpReadStructureField // ReadStructureField(fieldName)

	// Stack utilities.
	OpDup // Dup
	OpPop // Pop
	OpAdd // Add (reserved; not used by the covered lowerings)

	// Dispatch.
	OpPrimitiveCall // PrimitiveCall(name, nargs)

	// Global state.
	OpSaveState    // SaveState
	OpRestoreState // RestoreState

	// Type assertion.
	OpTypeCheck // TypeCheck(type)
)

func (op Opcode) String() string {
	switch op {
	case OpPushInteger:
		return "PushInteger"
	case OpPushString:
		return "PushString"
	case OpPushVariable:
		return "PushVariable"
	case OpSetVariable:
		return "SetVariable"
	case OpUnsetVariable:
		return "UnsetVariable"
	case OpLabel:
		return "Label"
	case OpJump:
		return "Jump"
	case OpJumpIfFalse:
		return "JumpIfFalse"
	case OpJumpIfStructure:
		return "JumpIfStructure"
	case OpJumpIfTuple:
		return "JumpIfTuple"
	case OpCall:
		return "Call"
	case OpReturn:
		return "Return"
	case OpMakeTuple:
		return "MakeTuple"
	case OpMakeList:
		return "MakeList"
	case OpMakeStructure:
		return "MakeStructure"
	case OpUpdateStructure:
		return "UpdateStructure"
	case OpReadTupleComponent:
		return "ReadTupleComponent"
	case OpReadStructureField:
		return "ReadStructureField"
	case OpDup:
		return "Dup"
	case OpPop:
		return "Pop"
	case OpAdd:
		return "Add"
	case OpPrimitiveCall:
		return "PrimitiveCall"
	case OpSaveState:
		return "SaveState"
	case OpRestoreState:
		return "RestoreState"
	case OpTypeCheck:
		return "TypeCheck"
	default:
		return fmt.Sprintf("Opcode(%d)", byte(op))
	}
}

// IsJump reports whether op carries a jump target in Instruction.Label.
func (op Opcode) IsJump() bool {
	switch op {
	case OpJump, OpJumpIfFalse, OpJumpIfStructure, OpJumpIfTuple, OpCall:
		return true
	default:
		return false
	}
}

// PopsOperand reports whether op pops the value(s) it inspects, as
// opposed to the non-popping inspection/branch opcodes called out in
// spec.md §3 (JumpIfStructure, JumpIfTuple, ReadTupleComponent,
// ReadStructureField all leave their subject on the stack), plus Dup
// and TypeCheck, which likewise leave the value they read in place.
func (op Opcode) PopsOperand() bool {
	switch op {
	case OpJumpIfStructure, OpJumpIfTuple, OpReadTupleComponent, OpReadStructureField, OpDup, OpTypeCheck:
		return false
	default:
		return true
	}
}
