package compiler

import "fmt"

// NotImplementedError reports a dispatch site the compiler recognizes
// but does not lower: interactive programs, user-defined procedure or
// function calls, field-accessor expressions, range expressions,
// structure updates, and short-circuited &&/||. These are reserved
// extension points, not malformed input.
type NotImplementedError struct {
	Kind string // "Definition", "Statement", "Pattern", or "Expression"
	Tag  string
}

func (e *NotImplementedError) Error() string {
	return fmt.Sprintf("%s not implemented: %s", e.Kind, e.Tag)
}

// UndefinedError reports a call naming a procedure or function that
// resolves to none of the known namespaces (primitive, user-defined,
// field accessor). On linted input this never happens; Compile
// surfaces it as an error rather than panicking so a caller feeding it
// unlinted input gets a diagnosable failure instead of a crash.
type UndefinedError struct {
	Namespace string // "procedure" or "function"
	Name      string
}

func (e *UndefinedError) Error() string {
	return fmt.Sprintf("undefined %s: %s", e.Namespace, e.Name)
}
