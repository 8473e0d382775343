// JSON encoding for the AST, so a Program can travel between the
// external parser/linter process and this compiler as data rather
// than as Go values. Nodes are tagged sums; on the wire each node is
// a JSON object carrying its own "kind" discriminator alongside its
// fields, decoded by explicit dispatch rather than reflection.
package ast

import (
	"encoding/json"
	"fmt"
)

func encodePos(p Pos) map[string]any {
	return map[string]any{"line": p.Line, "column": p.Column}
}

func decodePos(raw map[string]any) Pos {
	return Pos{Line: asInt(raw["line"]), Column: asInt(raw["column"])}
}

func asInt(v any) int {
	f, _ := v.(float64)
	return int(f)
}

func asString(v any) string {
	s, _ := v.(string)
	return s
}

func asStrings(v any) []string {
	items, _ := v.([]any)
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = asString(item)
	}
	return out
}

func encodeBase(b Base, kind string) map[string]any {
	return map[string]any{
		"kind":  kind,
		"start": encodePos(b.StartPos),
		"end":   encodePos(b.EndPos),
	}
}

func decodeBase(raw map[string]any) Base {
	start, _ := raw["start"].(map[string]any)
	end, _ := raw["end"].(map[string]any)
	return NewBase(decodePos(start), decodePos(end))
}

func kindOf(raw map[string]any) string { return asString(raw["kind"]) }

func toObject(data json.RawMessage) (map[string]any, error) {
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	return m, nil
}

// MarshalProgram encodes a Program to its wire JSON form.
func MarshalProgram(p *Program) ([]byte, error) {
	return json.Marshal(encodeProgram(p))
}

// UnmarshalProgram decodes a Program previously produced by
// MarshalProgram.
func UnmarshalProgram(data []byte) (*Program, error) {
	obj, err := toObject(data)
	if err != nil {
		return nil, fmt.Errorf("ast: unmarshal program: %w", err)
	}
	return decodeProgram(obj)
}

func encodeProgram(p *Program) map[string]any {
	defs := make([]any, len(p.Definitions))
	for i, d := range p.Definitions {
		defs[i] = encodeDefinition(d)
	}
	m := encodeBase(p.Base, "Program")
	m["definitions"] = defs
	return m
}

func decodeProgram(raw map[string]any) (*Program, error) {
	items, _ := raw["definitions"].([]any)
	defs := make([]Definition, len(items))
	for i, item := range items {
		obj, ok := item.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("ast: definition %d is not an object", i)
		}
		def, err := decodeDefinition(obj)
		if err != nil {
			return nil, err
		}
		defs[i] = def
	}
	return &Program{Base: decodeBase(raw), Definitions: defs}, nil
}

// ---------------------------------------------------------------------------
// Definitions
// ---------------------------------------------------------------------------

func encodeDefinition(d Definition) map[string]any {
	switch n := d.(type) {
	case *Entry:
		m := encodeBase(n.Base, "Program")
		m["body"] = encodeBlock(n.Body)
		return m
	case *InteractiveProgram:
		m := encodeBase(n.Base, "InteractiveProgram")
		m["body"] = encodeBlock(n.Body)
		return m
	case *Procedure:
		m := encodeBase(n.Base, "Procedure")
		m["name"] = n.Name
		m["params"] = n.Params
		m["body"] = encodeBlock(n.Body)
		return m
	case *Function:
		m := encodeBase(n.Base, "Function")
		m["name"] = n.Name
		m["params"] = n.Params
		m["body"] = encodeBlock(n.Body)
		return m
	case *TypeDef:
		m := encodeBase(n.Base, "Type")
		m["name"] = n.Name
		m["constructors"] = n.Constructors
		return m
	default:
		panic(fmt.Sprintf("ast: encodeDefinition: unhandled %T", d))
	}
}

func decodeDefinition(raw map[string]any) (Definition, error) {
	switch kindOf(raw) {
	case "Program":
		body, err := decodeBlockField(raw)
		if err != nil {
			return nil, err
		}
		return &Entry{Base: decodeBase(raw), Body: body}, nil
	case "InteractiveProgram":
		body, err := decodeBlockField(raw)
		if err != nil {
			return nil, err
		}
		return &InteractiveProgram{Base: decodeBase(raw), Body: body}, nil
	case "Procedure":
		body, err := decodeBlockField(raw)
		if err != nil {
			return nil, err
		}
		return &Procedure{Base: decodeBase(raw), Name: asString(raw["name"]), Params: asStrings(raw["params"]), Body: body}, nil
	case "Function":
		body, err := decodeBlockField(raw)
		if err != nil {
			return nil, err
		}
		return &Function{Base: decodeBase(raw), Name: asString(raw["name"]), Params: asStrings(raw["params"]), Body: body}, nil
	case "Type":
		return &TypeDef{Base: decodeBase(raw), Name: asString(raw["name"]), Constructors: asStrings(raw["constructors"])}, nil
	default:
		return nil, fmt.Errorf("ast: unknown definition kind %q", kindOf(raw))
	}
}

func decodeBlockField(raw map[string]any) (*Block, error) {
	obj, ok := raw["body"].(map[string]any)
	if !ok {
		return nil, fmt.Errorf("ast: %s is missing a body block", kindOf(raw))
	}
	return decodeBlock(obj)
}

// ---------------------------------------------------------------------------
// Statements
// ---------------------------------------------------------------------------

func encodeBlock(b *Block) map[string]any {
	stmts := make([]any, len(b.Statements))
	for i, s := range b.Statements {
		stmts[i] = encodeStatement(s)
	}
	m := encodeBase(b.Base, "Block")
	m["statements"] = stmts
	return m
}

func decodeBlock(raw map[string]any) (*Block, error) {
	items, _ := raw["statements"].([]any)
	stmts := make([]Statement, len(items))
	for i, item := range items {
		obj, ok := item.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("ast: statement %d is not an object", i)
		}
		stmt, err := decodeStatement(obj)
		if err != nil {
			return nil, err
		}
		stmts[i] = stmt
	}
	return &Block{Base: decodeBase(raw), Statements: stmts}, nil
}

func encodeStatement(s Statement) map[string]any {
	switch n := s.(type) {
	case *Block:
		return encodeBlock(n)
	case *Return:
		m := encodeBase(n.Base, "Return")
		if n.Value != nil {
			m["value"] = encodeExpression(n.Value)
		}
		return m
	case *If:
		m := encodeBase(n.Base, "If")
		m["condition"] = encodeExpression(n.Condition)
		m["then"] = encodeBlock(n.Then)
		if n.Else != nil {
			m["else"] = encodeBlock(n.Else)
		}
		return m
	case *Repeat:
		m := encodeBase(n.Base, "Repeat")
		m["times"] = encodeExpression(n.Times)
		m["body"] = encodeBlock(n.Body)
		return m
	case *Foreach:
		m := encodeBase(n.Base, "Foreach")
		m["index"] = n.Index
		m["range"] = encodeExpression(n.Range)
		m["body"] = encodeBlock(n.Body)
		return m
	case *While:
		m := encodeBase(n.Base, "While")
		m["condition"] = encodeExpression(n.Condition)
		m["body"] = encodeBlock(n.Body)
		return m
	case *Switch:
		m := encodeBase(n.Base, "Switch")
		m["subject"] = encodeExpression(n.Subject)
		branches := make([]any, len(n.Branches))
		for i, br := range n.Branches {
			branches[i] = map[string]any{
				"pattern": encodePattern(br.Pattern),
				"body":    encodeBlock(br.Body),
			}
		}
		m["branches"] = branches
		return m
	case *AssignVariable:
		m := encodeBase(n.Base, "AssignVariable")
		m["name"] = n.Name
		m["value"] = encodeExpression(n.Value)
		return m
	case *AssignTuple:
		m := encodeBase(n.Base, "AssignTuple")
		m["names"] = n.Names
		m["value"] = encodeExpression(n.Value)
		return m
	case *ProcedureCall:
		m := encodeBase(n.Base, "ProcedureCall")
		m["name"] = n.Name
		m["args"] = encodeExpressions(n.Args)
		return m
	default:
		panic(fmt.Sprintf("ast: encodeStatement: unhandled %T", s))
	}
}

func decodeStatement(raw map[string]any) (Statement, error) {
	switch kindOf(raw) {
	case "Block":
		return decodeBlock(raw)
	case "Return":
		var value Expression
		if v, ok := raw["value"].(map[string]any); ok {
			var err error
			value, err = decodeExpression(v)
			if err != nil {
				return nil, err
			}
		}
		return &Return{Base: decodeBase(raw), Value: value}, nil
	case "If":
		cond, err := decodeExpressionField(raw, "condition")
		if err != nil {
			return nil, err
		}
		thenObj, ok := raw["then"].(map[string]any)
		if !ok {
			return nil, fmt.Errorf("ast: If is missing a then block")
		}
		then, err := decodeBlock(thenObj)
		if err != nil {
			return nil, err
		}
		var elseBlock *Block
		if e, ok := raw["else"].(map[string]any); ok {
			elseBlock, err = decodeBlock(e)
			if err != nil {
				return nil, err
			}
		}
		return &If{Base: decodeBase(raw), Condition: cond, Then: then, Else: elseBlock}, nil
	case "Repeat":
		times, err := decodeExpressionField(raw, "times")
		if err != nil {
			return nil, err
		}
		body, err := decodeBlockField(raw)
		if err != nil {
			return nil, err
		}
		return &Repeat{Base: decodeBase(raw), Times: times, Body: body}, nil
	case "Foreach":
		rng, err := decodeExpressionField(raw, "range")
		if err != nil {
			return nil, err
		}
		body, err := decodeBlockField(raw)
		if err != nil {
			return nil, err
		}
		return &Foreach{Base: decodeBase(raw), Index: asString(raw["index"]), Range: rng, Body: body}, nil
	case "While":
		cond, err := decodeExpressionField(raw, "condition")
		if err != nil {
			return nil, err
		}
		body, err := decodeBlockField(raw)
		if err != nil {
			return nil, err
		}
		return &While{Base: decodeBase(raw), Condition: cond, Body: body}, nil
	case "Switch":
		subject, err := decodeExpressionField(raw, "subject")
		if err != nil {
			return nil, err
		}
		items, _ := raw["branches"].([]any)
		branches := make([]SwitchBranch, len(items))
		for i, item := range items {
			obj, ok := item.(map[string]any)
			if !ok {
				return nil, fmt.Errorf("ast: switch branch %d is not an object", i)
			}
			patternObj, ok := obj["pattern"].(map[string]any)
			if !ok {
				return nil, fmt.Errorf("ast: switch branch %d is missing a pattern", i)
			}
			pattern, err := decodePattern(patternObj)
			if err != nil {
				return nil, err
			}
			bodyObj, ok := obj["body"].(map[string]any)
			if !ok {
				return nil, fmt.Errorf("ast: switch branch %d is missing a body", i)
			}
			body, err := decodeBlock(bodyObj)
			if err != nil {
				return nil, err
			}
			branches[i] = SwitchBranch{Pattern: pattern, Body: body}
		}
		return &Switch{Base: decodeBase(raw), Subject: subject, Branches: branches}, nil
	case "AssignVariable":
		value, err := decodeExpressionField(raw, "value")
		if err != nil {
			return nil, err
		}
		return &AssignVariable{Base: decodeBase(raw), Name: asString(raw["name"]), Value: value}, nil
	case "AssignTuple":
		value, err := decodeExpressionField(raw, "value")
		if err != nil {
			return nil, err
		}
		return &AssignTuple{Base: decodeBase(raw), Names: asStrings(raw["names"]), Value: value}, nil
	case "ProcedureCall":
		args, err := decodeExpressionsField(raw, "args")
		if err != nil {
			return nil, err
		}
		return &ProcedureCall{Base: decodeBase(raw), Name: asString(raw["name"]), Args: args}, nil
	default:
		return nil, fmt.Errorf("ast: unknown statement kind %q", kindOf(raw))
	}
}

func decodeExpressionField(raw map[string]any, field string) (Expression, error) {
	obj, ok := raw[field].(map[string]any)
	if !ok {
		return nil, fmt.Errorf("ast: %s is missing field %q", kindOf(raw), field)
	}
	return decodeExpression(obj)
}

func decodeExpressionsField(raw map[string]any, field string) ([]Expression, error) {
	items, _ := raw[field].([]any)
	out := make([]Expression, len(items))
	for i, item := range items {
		obj, ok := item.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("ast: %s[%d] is not an object", field, i)
		}
		expr, err := decodeExpression(obj)
		if err != nil {
			return nil, err
		}
		out[i] = expr
	}
	return out, nil
}

// ---------------------------------------------------------------------------
// Patterns
// ---------------------------------------------------------------------------

func encodePattern(p Pattern) map[string]any {
	switch n := p.(type) {
	case *Wildcard:
		return encodeBase(n.Base, "Wildcard")
	case *Structure:
		m := encodeBase(n.Base, "Structure")
		m["constructor"] = n.Constructor
		m["params"] = n.Params
		return m
	case *Tuple:
		m := encodeBase(n.Base, "Tuple")
		m["params"] = n.Params
		return m
	case *Timeout:
		return encodeBase(n.Base, "Timeout")
	default:
		panic(fmt.Sprintf("ast: encodePattern: unhandled %T", p))
	}
}

func decodePattern(raw map[string]any) (Pattern, error) {
	switch kindOf(raw) {
	case "Wildcard":
		return &Wildcard{Base: decodeBase(raw)}, nil
	case "Structure":
		return &Structure{Base: decodeBase(raw), Constructor: asString(raw["constructor"]), Params: asStrings(raw["params"])}, nil
	case "Tuple":
		return &Tuple{Base: decodeBase(raw), Params: asStrings(raw["params"])}, nil
	case "Timeout":
		return &Timeout{Base: decodeBase(raw)}, nil
	default:
		return nil, fmt.Errorf("ast: unknown pattern kind %q", kindOf(raw))
	}
}

// ---------------------------------------------------------------------------
// Expressions
// ---------------------------------------------------------------------------

func encodeExpressions(exprs []Expression) []any {
	out := make([]any, len(exprs))
	for i, e := range exprs {
		out[i] = encodeExpression(e)
	}
	return out
}

func encodeExpression(e Expression) map[string]any {
	switch n := e.(type) {
	case *Variable:
		m := encodeBase(n.Base, "Variable")
		m["name"] = n.Name
		return m
	case *ConstantNumber:
		m := encodeBase(n.Base, "ConstantNumber")
		m["value"] = n.Value
		return m
	case *ConstantString:
		m := encodeBase(n.Base, "ConstantString")
		m["value"] = n.Value
		return m
	case *List:
		m := encodeBase(n.Base, "List")
		m["elements"] = encodeExpressions(n.Elements)
		return m
	case *Range:
		m := encodeBase(n.Base, "Range")
		m["from"] = encodeExpression(n.From)
		m["to"] = encodeExpression(n.To)
		return m
	case *TupleExpr:
		m := encodeBase(n.Base, "Tuple")
		m["elements"] = encodeExpressions(n.Elements)
		return m
	case *StructureExpr:
		m := encodeBase(n.Base, "Structure")
		m["constructor"] = n.Constructor
		m["fields"] = encodeStructureFields(n.Fields)
		return m
	case *StructureUpdate:
		m := encodeBase(n.Base, "StructureUpdate")
		m["subject"] = encodeExpression(n.Subject)
		m["fields"] = encodeStructureFields(n.Fields)
		return m
	case *FunctionCall:
		m := encodeBase(n.Base, "FunctionCall")
		m["name"] = n.Name
		m["args"] = encodeExpressions(n.Args)
		return m
	default:
		panic(fmt.Sprintf("ast: encodeExpression: unhandled %T", e))
	}
}

func encodeStructureFields(fields []StructureField) []any {
	out := make([]any, len(fields))
	for i, f := range fields {
		out[i] = map[string]any{"name": f.Name, "value": encodeExpression(f.Value)}
	}
	return out
}

func decodeStructureFields(raw any) ([]StructureField, error) {
	items, _ := raw.([]any)
	out := make([]StructureField, len(items))
	for i, item := range items {
		obj, ok := item.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("ast: structure field %d is not an object", i)
		}
		valueObj, ok := obj["value"].(map[string]any)
		if !ok {
			return nil, fmt.Errorf("ast: structure field %d is missing a value", i)
		}
		value, err := decodeExpression(valueObj)
		if err != nil {
			return nil, err
		}
		out[i] = StructureField{Name: asString(obj["name"]), Value: value}
	}
	return out, nil
}

func decodeExpression(raw map[string]any) (Expression, error) {
	switch kindOf(raw) {
	case "Variable":
		return &Variable{Base: decodeBase(raw), Name: asString(raw["name"])}, nil
	case "ConstantNumber":
		return &ConstantNumber{Base: decodeBase(raw), Value: asString(raw["value"])}, nil
	case "ConstantString":
		return &ConstantString{Base: decodeBase(raw), Value: asString(raw["value"])}, nil
	case "List":
		elems, err := decodeExpressionsField(raw, "elements")
		if err != nil {
			return nil, err
		}
		return &List{Base: decodeBase(raw), Elements: elems}, nil
	case "Range":
		from, err := decodeExpressionField(raw, "from")
		if err != nil {
			return nil, err
		}
		to, err := decodeExpressionField(raw, "to")
		if err != nil {
			return nil, err
		}
		return &Range{Base: decodeBase(raw), From: from, To: to}, nil
	case "Tuple":
		elems, err := decodeExpressionsField(raw, "elements")
		if err != nil {
			return nil, err
		}
		return &TupleExpr{Base: decodeBase(raw), Elements: elems}, nil
	case "Structure":
		fields, err := decodeStructureFields(raw["fields"])
		if err != nil {
			return nil, err
		}
		return &StructureExpr{Base: decodeBase(raw), Constructor: asString(raw["constructor"]), Fields: fields}, nil
	case "StructureUpdate":
		subject, err := decodeExpressionField(raw, "subject")
		if err != nil {
			return nil, err
		}
		fields, err := decodeStructureFields(raw["fields"])
		if err != nil {
			return nil, err
		}
		return &StructureUpdate{Base: decodeBase(raw), Subject: subject, Fields: fields}, nil
	case "FunctionCall":
		args, err := decodeExpressionsField(raw, "args")
		if err != nil {
			return nil, err
		}
		return &FunctionCall{Base: decodeBase(raw), Name: asString(raw["name"]), Args: args}, nil
	default:
		return nil, fmt.Errorf("ast: unknown expression kind %q", kindOf(raw))
	}
}
