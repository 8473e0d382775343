// gbsc compiles a linted Gobstones AST (read as JSON) to bytecode.
//
// Usage:
//
//	gbsc [options] < program.ast.json > program.code.cbor
package main

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/google/uuid"

	"github.com/chazu/gobstones/pkg/ast"
	"github.com/chazu/gobstones/pkg/bytecode"
	"github.com/chazu/gobstones/pkg/cache"
	"github.com/chazu/gobstones/pkg/compiler"
	"github.com/chazu/gobstones/pkg/messages"
	"github.com/chazu/gobstones/pkg/primitives"
	"github.com/chazu/gobstones/pkg/symboltable"
)

var (
	format     = flag.String("format", "cbor", "output format: cbor or json")
	cachePath  = flag.String("cache", "", "path to a SQLite compile cache; empty disables caching")
	verbose    = flag.Bool("v", false, "log each compilation step at debug level")
	configPath = flag.String("config", "", "path to a TOML config file providing defaults for -format/-cache/-v")
)

const versionStr = "0.1.0"

// gbscConfig is the TOML shape loadConfig decodes. It mirrors the flag
// set exactly: a config file only changes the *defaults* those flags
// start from, so any flag given explicitly on the command line still
// wins (main applies the config before flag.Parse runs).
type gbscConfig struct {
	Format  string `toml:"format"`
	Cache   string `toml:"cache"`
	Verbose bool   `toml:"verbose"`
}

func loadConfig(path string) (gbscConfig, error) {
	var cfg gbscConfig
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return gbscConfig{}, fmt.Errorf("decoding %s: %w", path, err)
	}
	return cfg, nil
}

// configPathFromArgs pre-scans args for -config before the real flag
// set runs, since the config file's values must be applied as new flag
// defaults before flag.Parse resolves the rest of the command line.
// Unknown flags and parse errors are ignored here; the real FlagSet
// reports them properly afterward.
func configPathFromArgs(args []string) string {
	fs := flag.NewFlagSet("gbsc-config-prescan", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	path := fs.String("config", "", "")
	fs.Bool("v", false, "")
	fs.String("format", "", "")
	fs.String("cache", "", "")
	_ = fs.Parse(args)
	return *path
}

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "gbsc - Gobstones bytecode compiler\n\n")
		fmt.Fprintf(os.Stderr, "Usage:\n")
		fmt.Fprintf(os.Stderr, "  gbsc [options] < program.ast.json > program.code.cbor\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
	}

	if path := configPathFromArgs(os.Args[1:]); path != "" {
		cfg, err := loadConfig(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "gbsc: %v\n", err)
			os.Exit(1)
		}
		if cfg.Format != "" {
			_ = flag.Set("format", cfg.Format)
		}
		if cfg.Cache != "" {
			_ = flag.Set("cache", cfg.Cache)
		}
		if cfg.Verbose {
			_ = flag.Set("v", "true")
		}
	}

	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	requestID := uuid.New().String()
	logger = logger.With("request_id", requestID, "gbsc_version", versionStr)

	if err := run(logger); err != nil {
		logger.Error("compile failed", "error", err)
		os.Exit(1)
	}
}

func run(logger *slog.Logger) error {
	input, err := io.ReadAll(os.Stdin)
	if err != nil {
		return fmt.Errorf("reading input: %w", err)
	}
	if len(input) == 0 {
		return fmt.Errorf("no input provided; usage: gbsc < program.ast.json")
	}

	digest := sha256.Sum256(input)
	key := hex.EncodeToString(digest[:])
	logger = logger.With("digest", key[:12])

	var store *cache.Cache
	if *cachePath != "" {
		store, err = cache.Open(*cachePath)
		if err != nil {
			return fmt.Errorf("opening cache: %w", err)
		}
		defer store.Close()

		if code, err := store.Get(key); err == nil {
			logger.Debug("cache hit")
			return writeCode(code)
		} else if err != cache.ErrNotFound {
			return fmt.Errorf("reading cache: %w", err)
		}
	}

	program, err := ast.UnmarshalProgram(input)
	if err != nil {
		return fmt.Errorf("parsing AST: %w", err)
	}

	symtab := symboltable.NewMapSymbolTable()
	prims := primitives.NewStaticCatalog()
	msgs, err := messages.Default()
	if err != nil {
		return fmt.Errorf("loading message catalog: %w", err)
	}

	logger.Debug("compiling", "definitions", len(program.Definitions))
	code, err := compiler.New(symtab, prims, msgs).Compile(program)
	if err != nil {
		return fmt.Errorf("compiling: %w", err)
	}
	if err := code.Validate(); err != nil {
		return fmt.Errorf("internal error: emitted code failed validation: %w", err)
	}
	logger.Debug("compiled", "instructions", code.Len())

	if store != nil {
		if err := store.Put(key, code, time.Now().UnixNano()); err != nil {
			logger.Warn("failed to populate cache", "error", err)
		}
	}

	return writeCode(code)
}

func writeCode(code *bytecode.Code) error {
	switch *format {
	case "cbor":
		data, err := code.Serialize()
		if err != nil {
			return fmt.Errorf("serializing code: %w", err)
		}
		_, err = os.Stdout.Write(data)
		return err
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(code.Instructions)
	default:
		return fmt.Errorf("unknown -format %q: want cbor or json", *format)
	}
}
