package compiler

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/chazu/gobstones/pkg/ast"
	"github.com/chazu/gobstones/pkg/bytecode"
	"github.com/chazu/gobstones/pkg/messages"
	"github.com/chazu/gobstones/pkg/primitives"
	"github.com/chazu/gobstones/pkg/symboltable"
)

// CompileBatch lowers programs concurrently, one fresh Compiler per
// program, bounded by runtime.GOMAXPROCS(0) concurrent compilations at
// a time. Compilation is pure and synchronous per instance (spec §5),
// so this is safe purely because every goroutine gets its own
// Compiler rather than sharing one; symtab, prims, and msgs are read
// only and shared freely. The result slice preserves input order. The
// first error cancels ctx and aborts the remaining compilations: those
// not yet started are skipped, while those already running finish.
func CompileBatch(
	ctx context.Context,
	programs []*ast.Program,
	symtab symboltable.SymbolTable,
	prims primitives.Catalog,
	msgs *messages.Catalog,
) ([]*bytecode.Code, error) {
	results := make([]*bytecode.Code, len(programs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, program := range programs {
		i, program := i, program
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			code, err := New(symtab, prims, msgs).Compile(program)
			if err != nil {
				return fmt.Errorf("program %d: %w", i, err)
			}
			results[i] = code
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
