package cache

import (
	"errors"
	"math/big"
	"testing"

	"github.com/chazu/gobstones/pkg/ast"
	"github.com/chazu/gobstones/pkg/bytecode"
)

func sampleCode() *bytecode.Code {
	c := bytecode.NewCode()
	start, end := ast.Pos{Line: 1, Column: 1}, ast.Pos{Line: 1, Column: 2}
	c.Produce(start, end, bytecode.PushInteger(big.NewInt(7)))
	c.Produce(start, end, bytecode.SetVariable("x"))
	c.Produce(start, end, bytecode.Return())
	return c
}

func TestCachePutGet(t *testing.T) {
	c, err := Open(":memory:")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer c.Close()

	if _, err := c.Get("abc"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Get on empty cache = %v, want ErrNotFound", err)
	}

	code := sampleCode()
	if err := c.Put("abc", code, 1000); err != nil {
		t.Fatalf("Put: %v", err)
	}

	got, err := c.Get("abc")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if len(got.Instructions) != len(code.Instructions) {
		t.Fatalf("got %d instructions, want %d", len(got.Instructions), len(code.Instructions))
	}

	n, err := c.Len()
	if err != nil {
		t.Fatalf("Len: %v", err)
	}
	if n != 1 {
		t.Fatalf("Len = %d, want 1", n)
	}

	if err := c.Delete("abc"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := c.Get("abc"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Get after Delete = %v, want ErrNotFound", err)
	}
}

func TestCachePutOverwrites(t *testing.T) {
	c, err := Open(":memory:")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer c.Close()

	if err := c.Put("k", sampleCode(), 1); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if err := c.Put("k", sampleCode(), 2); err != nil {
		t.Fatalf("Put (overwrite): %v", err)
	}
	n, err := c.Len()
	if err != nil {
		t.Fatalf("Len: %v", err)
	}
	if n != 1 {
		t.Fatalf("Len = %d, want 1 after overwrite", n)
	}
}
