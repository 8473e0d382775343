// Package messages is the message catalog (i18n) collaborator named in
// spec.md §6. The compiler looks up a handful of names verbatim and
// emits the looked-up string into the instruction stream (for example
// PushString of the looked-up "errmsg:switch-does-not-match" message,
// or the looked-up "CONS:TIMEOUT" constructor name inside a
// JumpIfStructure). Catalog contents are data, not compiler logic.
package messages

import (
	"embed"
	"fmt"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"

	"github.com/BurntSushi/toml"
)

//go:embed catalog.toml schema.cue
var embedded embed.FS

// Catalog is a loaded, validated set of message-key -> text mappings.
type Catalog struct {
	messages map[string]string
}

type catalogFile struct {
	Messages map[string]string `toml:"messages" json:"messages"`
}

// Keys the covered lowerings require to be present (spec.md §4.3,
// §4.2, §6).
const (
	KeyBool          = "TYPE:Bool"
	KeyTimeout       = "CONS:TIMEOUT"
	KeySwitchNoMatch = "errmsg:switch-does-not-match"
)

// Default loads the catalog embedded in this package and validates it
// against schema.cue.
func Default() (*Catalog, error) {
	data, err := embedded.ReadFile("catalog.toml")
	if err != nil {
		return nil, fmt.Errorf("messages: read embedded catalog: %w", err)
	}
	schema, err := embedded.ReadFile("schema.cue")
	if err != nil {
		return nil, fmt.Errorf("messages: read embedded schema: %w", err)
	}
	return LoadBytes(data, schema)
}

// LoadBytes parses a TOML catalog and validates it against a CUE
// schema, both given as raw bytes. Exported so callers can supply a
// locale file (e.g. de.toml) that isn't compiled into the binary.
func LoadBytes(tomlData, cueSchema []byte) (*Catalog, error) {
	var file catalogFile
	if err := toml.Unmarshal(tomlData, &file); err != nil {
		return nil, fmt.Errorf("messages: parse catalog: %w", err)
	}

	if err := validate(file, cueSchema); err != nil {
		return nil, fmt.Errorf("messages: catalog failed schema validation: %w", err)
	}

	return &Catalog{messages: file.Messages}, nil
}

func validate(file catalogFile, cueSchema []byte) error {
	ctx := cuecontext.New()
	schema := ctx.CompileBytes(cueSchema)
	if schema.Err() != nil {
		return fmt.Errorf("compile schema: %w", schema.Err())
	}

	data := ctx.Encode(file)
	unified := schema.Unify(data)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return err
	}
	return nil
}

// Lookup returns the text registered for key, or ok=false if the
// catalog has no such key.
func (c *Catalog) Lookup(key string) (string, bool) {
	v, ok := c.messages[key]
	return v, ok
}

// MustLookup panics if key is absent. Compiler code only calls this
// for the fixed set of keys it emits verbatim, where absence is a
// catalog-packaging bug, not a user-facing condition.
func (c *Catalog) MustLookup(key string) string {
	v, ok := c.Lookup(key)
	if !ok {
		panic(fmt.Sprintf("messages: catalog is missing required key %q", key))
	}
	return v
}
