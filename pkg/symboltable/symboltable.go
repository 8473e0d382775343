// Package symboltable defines the read-only view of the linter's
// symbol table that the compiler queries. The table itself is
// populated elsewhere (parser + linter); this package only describes
// the contract and ships an in-memory implementation for tests and
// standalone tools.
package symboltable

// SymbolTable is the set of read-only queries the compiler makes
// against an already-populated symbol table (spec.md §6).
type SymbolTable interface {
	// ConstructorType returns the name of the type owning constructor
	// name, or ok=false if name is not a known constructor.
	ConstructorType(name string) (typeName string, ok bool)

	// ConstructorFields returns the ordered field names of constructor
	// name, or ok=false if name is not a known constructor. This order
	// is authoritative for pattern binding and structure construction
	// (spec.md §4.3, §4.4).
	ConstructorFields(name string) (fields []string, ok bool)

	// IsFunction reports whether name denotes a user-defined function.
	IsFunction(name string) bool

	// IsField reports whether name is registered as a constructor
	// field name anywhere in the program.
	IsField(name string) bool

	// IsProcedure reports whether name denotes a user-defined
	// procedure. spec.md §9 notes the covered source mistakenly probed
	// IsFunction here; this interface exposes the correct query.
	IsProcedure(name string) bool
}

// MapSymbolTable is a simple in-memory SymbolTable, built incrementally.
// It mirrors the shape of an already-populated linter table without
// needing a live linter.
type MapSymbolTable struct {
	constructorType   map[string]string
	constructorFields map[string][]string
	functions         map[string]bool
	procedures        map[string]bool
	fields            map[string]bool
}

// NewMapSymbolTable returns an empty, ready-to-populate symbol table.
func NewMapSymbolTable() *MapSymbolTable {
	return &MapSymbolTable{
		constructorType:   make(map[string]string),
		constructorFields: make(map[string][]string),
		functions:         make(map[string]bool),
		procedures:        make(map[string]bool),
		fields:            make(map[string]bool),
	}
}

// AddConstructor registers constructor name as belonging to typeName
// with the given ordered field list.
func (t *MapSymbolTable) AddConstructor(name, typeName string, fields []string) *MapSymbolTable {
	t.constructorType[name] = typeName
	t.constructorFields[name] = append([]string{}, fields...)
	for _, f := range fields {
		t.fields[f] = true
	}
	return t
}

// AddFunction registers name as a user-defined function.
func (t *MapSymbolTable) AddFunction(name string) *MapSymbolTable {
	t.functions[name] = true
	return t
}

// AddProcedure registers name as a user-defined procedure.
func (t *MapSymbolTable) AddProcedure(name string) *MapSymbolTable {
	t.procedures[name] = true
	return t
}

func (t *MapSymbolTable) ConstructorType(name string) (string, bool) {
	typeName, ok := t.constructorType[name]
	return typeName, ok
}

func (t *MapSymbolTable) ConstructorFields(name string) ([]string, bool) {
	fields, ok := t.constructorFields[name]
	return fields, ok
}

func (t *MapSymbolTable) IsFunction(name string) bool { return t.functions[name] }

func (t *MapSymbolTable) IsField(name string) bool { return t.fields[name] }

func (t *MapSymbolTable) IsProcedure(name string) bool { return t.procedures[name] }
