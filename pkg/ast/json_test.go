package ast

import "testing"

func TestProgramJSONRoundTrip(t *testing.T) {
	p := pos(1, 1)

	program := &Program{
		Base: NewBase(p, p),
		Definitions: []Definition{
			&Entry{
				Base: NewBase(p, p),
				Body: &Block{
					Base: NewBase(p, p),
					Statements: []Statement{
						&AssignVariable{
							Base:  NewBase(p, p),
							Name:  "x",
							Value: &ConstantNumber{Base: NewBase(p, p), Value: "42"},
						},
						&If{
							Base:      NewBase(p, p),
							Condition: &Variable{Base: NewBase(p, p), Name: "b"},
							Then: &Block{Base: NewBase(p, p), Statements: []Statement{
								&ProcedureCall{Base: NewBase(p, p), Name: "Poner", Args: []Expression{
									&ConstantString{Base: NewBase(p, p), Value: "Verde"},
								}},
							}},
							Else: &Block{Base: NewBase(p, p)},
						},
						&Switch{
							Base:    NewBase(p, p),
							Subject: &Variable{Base: NewBase(p, p), Name: "c"},
							Branches: []SwitchBranch{
								{
									Pattern: &Structure{Base: NewBase(p, p), Constructor: "Rojo", Params: []string{"a"}},
									Body:    &Block{Base: NewBase(p, p)},
								},
								{Pattern: &Wildcard{Base: NewBase(p, p)}, Body: &Block{Base: NewBase(p, p)}},
							},
						},
					},
				},
			},
			&TypeDef{Base: NewBase(p, p), Name: "Color", Constructors: []string{"Rojo", "Verde"}},
		},
	}

	data, err := MarshalProgram(program)
	if err != nil {
		t.Fatalf("MarshalProgram: %v", err)
	}

	decoded, err := UnmarshalProgram(data)
	if err != nil {
		t.Fatalf("UnmarshalProgram: %v", err)
	}

	if len(decoded.Definitions) != len(program.Definitions) {
		t.Fatalf("decoded %d definitions, want %d", len(decoded.Definitions), len(program.Definitions))
	}
	entry, ok := decoded.Definitions[0].(*Entry)
	if !ok {
		t.Fatalf("definitions[0] = %T, want *Entry", decoded.Definitions[0])
	}
	if len(entry.Body.Statements) != 3 {
		t.Fatalf("entry body has %d statements, want 3", len(entry.Body.Statements))
	}
	assign, ok := entry.Body.Statements[0].(*AssignVariable)
	if !ok || assign.Name != "x" {
		t.Fatalf("statements[0] = %+v, want AssignVariable(x)", entry.Body.Statements[0])
	}
	sw, ok := entry.Body.Statements[2].(*Switch)
	if !ok || len(sw.Branches) != 2 {
		t.Fatalf("statements[2] = %+v, want Switch with 2 branches", entry.Body.Statements[2])
	}
	structPattern, ok := sw.Branches[0].Pattern.(*Structure)
	if !ok || structPattern.Constructor != "Rojo" || len(structPattern.Params) != 1 {
		t.Fatalf("branch 0 pattern = %+v, want Structure(Rojo, [a])", sw.Branches[0].Pattern)
	}
	typeDef, ok := decoded.Definitions[1].(*TypeDef)
	if !ok || typeDef.Name != "Color" || len(typeDef.Constructors) != 2 {
		t.Fatalf("definitions[1] = %+v, want TypeDef(Color, [Rojo Verde])", decoded.Definitions[1])
	}
}

func pos(line, column int) Pos { return Pos{Line: line, Column: column} }
