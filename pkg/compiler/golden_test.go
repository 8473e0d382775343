package compiler

import (
	"os"
	"strings"
	"testing"

	"golang.org/x/tools/txtar"

	"github.com/chazu/gobstones/pkg/ast"
)

// TestGoldenFixtures compiles each AST fixture in testdata/golden.txtar
// and checks its opcode sequence against the paired .opcodes listing.
// This exercises ast.UnmarshalProgram end to end alongside Compile,
// unlike the hand-built ast.* literals the rest of this package's
// tests construct directly.
func TestGoldenFixtures(t *testing.T) {
	data, err := os.ReadFile("testdata/golden.txtar")
	if err != nil {
		t.Fatalf("reading golden.txtar: %v", err)
	}
	archive := txtar.Parse(data)

	files := make(map[string][]byte, len(archive.Files))
	for _, f := range archive.Files {
		files[f.Name] = f.Data
	}

	cases := map[string]bool{}
	for name := range files {
		if strings.HasSuffix(name, ".ast.json") {
			cases[strings.TrimSuffix(name, ".ast.json")] = true
		}
	}
	if len(cases) == 0 {
		t.Fatal("golden.txtar contains no .ast.json fixtures")
	}

	for name := range cases {
		name := name
		t.Run(name, func(t *testing.T) {
			astJSON, ok := files[name+".ast.json"]
			if !ok {
				t.Fatalf("missing %s.ast.json", name)
			}
			wantRaw, ok := files[name+".opcodes"]
			if !ok {
				t.Fatalf("missing %s.opcodes", name)
			}

			program, err := ast.UnmarshalProgram(astJSON)
			if err != nil {
				t.Fatalf("UnmarshalProgram: %v", err)
			}

			code, err := newCompiler(t).Compile(program)
			if err != nil {
				t.Fatalf("Compile: %v", err)
			}
			if err := code.Validate(); err != nil {
				t.Fatalf("Validate: %v", err)
			}

			var want []string
			for _, line := range strings.Split(strings.TrimSpace(string(wantRaw)), "\n") {
				if line != "" {
					want = append(want, line)
				}
			}

			got := opcodes(code)
			if len(got) != len(want) {
				t.Fatalf("opcode count = %d, want %d\ngot:  %v\nwant: %v", len(got), len(want), got, want)
			}
			for i, op := range got {
				if op.String() != want[i] {
					t.Errorf("opcode[%d] = %s, want %s", i, op, want[i])
				}
			}
		})
	}
}
