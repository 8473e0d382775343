package bytecode

// TypeKind identifies a node in a TypeCheck assertion tree (spec.md
// §3): Any, Integer, String, Tuple(ts), List(t), or
// Structure(typeName, cases).
type TypeKind int

const (
	TypeAny TypeKind = iota
	TypeInteger
	TypeString
	TypeTuple
	TypeList
	TypeStructure
)

func (k TypeKind) String() string {
	switch k {
	case TypeAny:
		return "Any"
	case TypeInteger:
		return "Integer"
	case TypeString:
		return "String"
	case TypeTuple:
		return "Tuple"
	case TypeList:
		return "List"
	case TypeStructure:
		return "Structure"
	default:
		return "Unknown"
	}
}

// TypeExpr is the runtime type-assertion tree a TypeCheck instruction
// carries. Exactly one field set is meaningful per Kind:
//
//   - Any, Integer, String: no further fields.
//   - Tuple: Elements holds one TypeExpr per component.
//   - List: Elements[0] is the element type.
//   - Structure: TypeName names the owning type; Cases maps each
//     constructor name to a mapping from field name to field type. An
//     empty Cases means "any value of this type, fields unchecked" —
//     the shape TypeCheck(Structure(typeName, {})) uses everywhere the
//     covered lowerings only need a type tag check (spec.md §4.2,
//     §4.3).
type TypeExpr struct {
	Kind     TypeKind
	TypeName string
	Elements []TypeExpr
	Cases    map[string]map[string]TypeExpr
}

// Any is the TypeExpr that accepts anything.
func Any() TypeExpr { return TypeExpr{Kind: TypeAny} }

// Integer is the TypeExpr asserting an integer value.
func Integer() TypeExpr { return TypeExpr{Kind: TypeInteger} }

// StringType is the TypeExpr asserting a string value.
func StringType() TypeExpr { return TypeExpr{Kind: TypeString} }

// TupleType is the TypeExpr asserting a tuple of the given component
// types, in order.
func TupleType(elements ...TypeExpr) TypeExpr {
	return TypeExpr{Kind: TypeTuple, Elements: elements}
}

// ListType is the TypeExpr asserting a list of element.
func ListType(element TypeExpr) TypeExpr {
	return TypeExpr{Kind: TypeList, Elements: []TypeExpr{element}}
}

// StructureType is the TypeExpr asserting a value of typeName. A nil
// or empty cases map means the fields are not checked, only the type
// tag.
func StructureType(typeName string, cases map[string]map[string]TypeExpr) TypeExpr {
	return TypeExpr{Kind: TypeStructure, TypeName: typeName, Cases: cases}
}
