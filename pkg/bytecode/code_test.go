package bytecode

import (
	"math/big"
	"testing"

	"github.com/chazu/gobstones/pkg/ast"
)

func TestNameGenProducesUniqueFreshNames(t *testing.T) {
	g := &NameGen{}
	labels := map[string]bool{}
	for i := 0; i < 5; i++ {
		l := g.FreshLabel()
		if labels[l] {
			t.Fatalf("duplicate label %q", l)
		}
		labels[l] = true
		if !syntheticNamePattern.MatchString(l) {
			t.Errorf("label %q does not match the synthetic name shape", l)
		}
	}

	vars := map[string]bool{}
	for i := 0; i < 5; i++ {
		v := g.FreshVariable()
		if vars[v] {
			t.Fatalf("duplicate variable %q", v)
		}
		vars[v] = true
		if !syntheticNamePattern.MatchString(v) {
			t.Errorf("variable %q does not match the synthetic name shape", v)
		}
	}
}

func TestValidateRejectsMissingPositions(t *testing.T) {
	c := NewCode()
	c.Instructions = append(c.Instructions, Return())
	if err := c.Validate(); err == nil {
		t.Fatal("expected Validate to reject an instruction with no positions")
	}
}

func TestValidateRejectsDuplicateLabels(t *testing.T) {
	c := NewCode()
	start, end := ast.Pos{Line: 1, Column: 1}, ast.Pos{Line: 1, Column: 2}
	c.Produce(start, end, Label("L0"))
	c.Produce(start, end, Label("L0"))
	if err := c.Validate(); err == nil {
		t.Fatal("expected Validate to reject a duplicate label")
	}
}

func TestValidateRejectsUnresolvedJumpTarget(t *testing.T) {
	c := NewCode()
	start, end := ast.Pos{Line: 1, Column: 1}, ast.Pos{Line: 1, Column: 2}
	c.Produce(start, end, Jump("nowhere"))
	if err := c.Validate(); err == nil {
		t.Fatal("expected Validate to reject a jump to an undeclared label")
	}
}

func TestValidateRejectsMalformedSyntheticName(t *testing.T) {
	c := NewCode()
	start, end := ast.Pos{Line: 1, Column: 1}, ast.Pos{Line: 1, Column: 2}
	c.Produce(start, end, PushVariable("_bogus"))
	if err := c.Validate(); err == nil {
		t.Fatal("expected Validate to reject a reserved-prefix name outside the synthetic shape")
	}
}

func TestValidateAcceptsWellFormedCode(t *testing.T) {
	c := NewCode()
	start, end := ast.Pos{Line: 1, Column: 1}, ast.Pos{Line: 1, Column: 2}
	c.Produce(start, end, PushInteger(big.NewInt(1)))
	c.Produce(start, end, Label("_l0"))
	c.Produce(start, end, Jump("_l0"))
	c.Produce(start, end, Return())
	if err := c.Validate(); err != nil {
		t.Errorf("Validate rejected well-formed code: %v", err)
	}
}

func TestSerializeRoundTrip(t *testing.T) {
	c := NewCode()
	start, end := ast.Pos{Line: 3, Column: 1}, ast.Pos{Line: 3, Column: 9}
	c.Produce(start, end, PushInteger(big.NewInt(42)))
	c.Produce(start, end, SetVariable("x"))
	c.Produce(start, end, TypeCheck(StructureType("Bool", nil)))
	c.Produce(start, end, Return())

	data, err := c.Serialize()
	if err != nil {
		t.Fatalf("Serialize: %v", err)
	}
	decoded, err := Deserialize(data)
	if err != nil {
		t.Fatalf("Deserialize: %v", err)
	}
	if len(decoded.Instructions) != len(c.Instructions) {
		t.Fatalf("decoded %d instructions, want %d", len(decoded.Instructions), len(c.Instructions))
	}
	if decoded.Instructions[0].Num.Cmp(big.NewInt(42)) != 0 {
		t.Errorf("decoded PushInteger = %v, want 42", decoded.Instructions[0].Num)
	}
	if decoded.Instructions[1].Name != "x" {
		t.Errorf("decoded SetVariable name = %q, want x", decoded.Instructions[1].Name)
	}
	if decoded.Instructions[2].Type.TypeName != "Bool" {
		t.Errorf("decoded TypeCheck type name = %q, want Bool", decoded.Instructions[2].Type.TypeName)
	}
}
