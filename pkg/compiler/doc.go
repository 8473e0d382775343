// Package compiler lowers a linted AST (pkg/ast) to a bytecode.Code
// (pkg/bytecode) for a stack-based virtual machine. It is a single
// syntax-directed translator: statements lower to code with net stack
// effect 0 (Return excepted), expressions to code with net effect +1,
// and patterns lower in three phases (check, bind, unbind) shared by
// switch branches.
//
// Compile trusts its input completely — the parser and linter that
// would normally reject malformed programs live outside this module.
// A Compiler instance holds no shared state beyond what it is
// constructed with: its label/variable counters are private, so two
// Compiler values can lower two programs concurrently (see
// CompileBatch) without coordination.
//
// The AST's top-level "Program" tag is named ast.Entry here to avoid
// colliding with ast.Program, the root of a compilation unit.
package compiler
