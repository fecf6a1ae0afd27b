// Package defs loads command definition documents. Definitions come from
// the embedded builtin set plus an optional user file; each entry either
// becomes a registry template or a reported problem, so one bad entry
// never takes down the load.
package defs

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/snova-cli/snova/internal/log"
	"github.com/snova-cli/snova/internal/registry"
	"github.com/snova-cli/snova/internal/template"
)

// CommandDef is one entry of a definition document.
type CommandDef struct {
	Template    string                       `yaml:"template"`
	Description string                       `yaml:"description"`
	Groups      map[string]template.GroupDef `yaml:"groups"`
}

// Document is the top-level shape of a definition file.
type Document struct {
	Commands []CommandDef `yaml:"commands"`
}

// Result reports what a load did: how many templates registered and
// every problem encountered along the way.
type Result struct {
	Loaded   int
	Problems []*template.DefinitionError
}

// Merge folds another result into this one.
func (r *Result) Merge(other *Result) {
	r.Loaded += other.Loaded
	r.Problems = append(r.Problems, other.Problems...)
}

// DefaultUserPath returns where the user's own definitions live.
func DefaultUserPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "snova", "commands.yaml")
}

// Load fills the registry from the builtin set and then the user file,
// in that order, so user duplicates of builtins are reported against the
// builtin provenance. A missing user file is not a problem; an empty
// path skips the user file entirely.
func Load(reg *registry.Registry, userPath string) *Result {
	result := LoadBytes(reg, []byte(builtinDefs), "builtin")

	if userPath == "" {
		return result
	}
	data, err := os.ReadFile(userPath) //nolint:gosec // G304: path comes from user configuration
	if err != nil {
		if os.IsNotExist(err) {
			log.Debug(log.CatDefs, "no user definitions file", "path", userPath)
			return result
		}
		result.Problems = append(result.Problems, &template.DefinitionError{
			Provenance: userPath,
			Reason:     fmt.Sprintf("reading definitions: %v", err),
			Err:        err,
		})
		return result
	}

	result.Merge(LoadBytes(reg, data, userPath))
	return result
}

// LoadBytes decodes one definition document and registers its entries.
// The source names where the bytes came from for provenance reporting.
func LoadBytes(reg *registry.Registry, data []byte, source string) *Result {
	result := &Result{}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	// A file of nothing but comments decodes as EOF, which is just an
	// empty document.
	var doc Document
	if err := dec.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		result.Problems = append(result.Problems, &template.DefinitionError{
			Provenance: source,
			Reason:     fmt.Sprintf("decoding definitions: %v", err),
			Err:        err,
		})
		return result
	}

	for i, def := range doc.Commands {
		provenance := fmt.Sprintf("%s (entry %d)", source, i+1)

		tmpl, err := template.New(def.Template, def.Description, def.Groups)
		if err != nil {
			result.Problems = append(result.Problems, withProvenance(err, provenance, def.Template))
			continue
		}
		if err := reg.Add(tmpl, provenance); err != nil {
			result.Problems = append(result.Problems, withProvenance(err, provenance, def.Template))
			continue
		}
		result.Loaded++
	}

	log.Info(log.CatDefs, "definitions loaded", "source", source,
		"loaded", result.Loaded, "problems", len(result.Problems))
	return result
}

// withProvenance stamps a definition error with where it came from,
// wrapping foreign errors so every problem carries the same shape.
func withProvenance(err error, provenance, raw string) *template.DefinitionError {
	var derr *template.DefinitionError
	if errors.As(err, &derr) {
		derr.Provenance = provenance
		return derr
	}
	return &template.DefinitionError{Provenance: provenance, Template: raw, Reason: err.Error(), Err: err}
}
