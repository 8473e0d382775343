// Package bytecode defines the instruction model the compiler emits
// and the Code builder it is assembled into.
//
// Unlike a packed-byte format, instructions here are labelled Go
// structs: control flow targets Label by name rather than by a
// patched byte offset, matching the source language's VM (which
// resolves jump targets by label at load time, not at compile time).
// This keeps Compile a single forward pass with no backpatching.
//
// # Architecture
//
//   - Opcode: an enumerated instruction kind (~25 variants across
//     stack pushes, variable binding, control flow, value
//     construction/inspection, dispatch, and global state).
//
//   - Instruction: one opcode plus its operands and source positions.
//     Every instruction carries a start and end position (spec.md §3).
//
//   - Code: an ordered, append-only sequence of instructions. Code.Validate
//     checks the structural invariants spec.md §3 and §8 require: every
//     instruction has positions, every label is unique, every jump
//     target resolves, and every compiler-generated name matches the
//     reserved `_l\d+` / `_v\d+` shape.
//
//   - NameGen: the fresh-label and fresh-variable generator, one
//     per Compiler instance so two compilations never collide and a
//     single compilation is deterministic.
//
// Code can round-trip to bytes via Serialize/Deserialize (CBOR) for
// caching or cross-process transport; the VM that actually executes
// a Code value is an external collaborator.
package bytecode
