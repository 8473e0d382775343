package compiler

import (
	"context"
	"testing"

	"github.com/chazu/gobstones/pkg/ast"
	"github.com/chazu/gobstones/pkg/messages"
	"github.com/chazu/gobstones/pkg/primitives"
	"github.com/chazu/gobstones/pkg/symboltable"
)

func program(value string) *ast.Program {
	p := span(1, 1)
	return &ast.Program{
		Base: p,
		Definitions: []ast.Definition{
			&ast.Entry{
				Base: p,
				Body: &ast.Block{
					Base: p,
					Statements: []ast.Statement{
						&ast.AssignVariable{
							Base:  p,
							Name:  "x",
							Value: &ast.ConstantNumber{Base: p, Value: value},
						},
					},
				},
			},
		},
	}
}

func TestCompileBatchPreservesOrder(t *testing.T) {
	symtab := symboltable.NewMapSymbolTable()
	prims := primitives.NewStaticCatalog()
	msgs, err := messages.Default()
	if err != nil {
		t.Fatalf("messages.Default: %v", err)
	}

	programs := []*ast.Program{program("1"), program("2"), program("3")}
	results, err := CompileBatch(context.Background(), programs, symtab, prims, msgs)
	if err != nil {
		t.Fatalf("CompileBatch: %v", err)
	}
	if len(results) != len(programs) {
		t.Fatalf("got %d results, want %d", len(results), len(programs))
	}
	for i, code := range results {
		want := programs[i].Definitions[0].(*ast.Entry).Body.Statements[0].(*ast.AssignVariable).Value.(*ast.ConstantNumber).Value
		if got := code.Instructions[0].Num.String(); got != want {
			t.Errorf("result %d PushInteger = %s, want %s", i, got, want)
		}
		if err := code.Validate(); err != nil {
			t.Errorf("result %d Validate: %v", i, err)
		}
	}
}

func TestCompileBatchPropagatesError(t *testing.T) {
	symtab := symboltable.NewMapSymbolTable()
	prims := primitives.NewStaticCatalog()
	msgs, err := messages.Default()
	if err != nil {
		t.Fatalf("messages.Default: %v", err)
	}

	bad := &ast.Program{
		Base: span(1, 1),
		Definitions: []ast.Definition{
			&ast.Entry{
				Base: span(1, 1),
				Body: &ast.Block{
					Base: span(1, 1),
					Statements: []ast.Statement{
						&ast.ProcedureCall{Base: span(1, 1), Name: "Nope"},
					},
				},
			},
		},
	}

	_, err = CompileBatch(context.Background(), []*ast.Program{program("1"), bad}, symtab, prims, msgs)
	if err == nil {
		t.Fatal("expected CompileBatch to propagate the undefined-procedure error")
	}
}
