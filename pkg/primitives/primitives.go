// Package primitives defines the read-only view of the runtime
// primitives catalog the compiler queries to decide whether a called
// name dispatches to PrimitiveCall or to a user-defined callable
// (spec.md §4.2, §4.4, §6).
package primitives

// Catalog answers namespace-membership queries for primitive names.
// The runtime that actually implements these primitives lives outside
// this module.
type Catalog interface {
	// IsProcedure reports whether name is a primitive procedure.
	IsProcedure(name string) bool

	// IsFunction reports whether name is a primitive function.
	IsFunction(name string) bool
}

// Names used verbatim by the covered lowerings; the VM must provide
// all of these (spec.md §6).
const (
	GreaterThan      = ">"
	LessThan         = "<"
	Add              = "+"
	Subtract         = "-"
	UnsafeListLength = "_unsafeListLength"
	UnsafeListNth    = "_unsafeListNth"
	Fail             = "_FAIL"
)

// StaticCatalog is a fixed, in-memory Catalog. It seeds the names
// spec.md §6 requires the VM to provide, plus the rest of a believable
// Gobstones-like primitive set (arithmetic, comparison, boolean, and
// list operations) that a real runtime would register alongside them.
type StaticCatalog struct {
	procedures map[string]bool
	functions  map[string]bool
}

// NewStaticCatalog returns a Catalog seeded with the standard runtime
// primitive set.
func NewStaticCatalog() *StaticCatalog {
	c := &StaticCatalog{
		procedures: make(map[string]bool),
		functions:  make(map[string]bool),
	}
	for _, name := range []string{
		GreaterThan, LessThan, Add, Subtract,
		"*", "/", "div", "mod", "**",
		"==", "/=", ">=", "<=",
		"&&", "||", "not",
		UnsafeListLength, UnsafeListNth,
		"head", "tail", "isEmpty", "last", "init",
		"++", "elem",
	} {
		c.functions[name] = true
	}
	for _, name := range []string{
		Fail,
	} {
		c.procedures[name] = true
	}
	return c
}

// WithProcedure registers an additional primitive procedure name.
func (c *StaticCatalog) WithProcedure(name string) *StaticCatalog {
	c.procedures[name] = true
	return c
}

// WithFunction registers an additional primitive function name.
func (c *StaticCatalog) WithFunction(name string) *StaticCatalog {
	c.functions[name] = true
	return c
}

func (c *StaticCatalog) IsProcedure(name string) bool { return c.procedures[name] }

func (c *StaticCatalog) IsFunction(name string) bool { return c.functions[name] }
