package defs

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"

	"github.com/snova-cli/snova/internal/log"
)

// builtinDefs is the definition set shipped with the binary. Every entry
// must load cleanly; TestBuiltinDefs keeps that honest.
//
//go:embed builtin.yaml
var builtinDefs string

//go:embed starter.yaml
var starterDefs string

// DefaultUserDefsTemplate returns a starter user definitions file with a
// commented example entry.
func DefaultUserDefsTemplate() string {
	return starterDefs
}

// WriteDefaultUserDefs creates a starter definitions file at the given
// path. Creates the parent directory if it doesn't exist.
func WriteDefaultUserDefs(path string) error {
	log.Debug(log.CatDefs, "writing starter definitions", "path", path)

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		log.ErrorErr(log.CatDefs, "failed to create definitions directory", err, "dir", dir)
		return fmt.Errorf("creating definitions directory: %w", err)
	}

	if err := os.WriteFile(path, []byte(DefaultUserDefsTemplate()), 0o600); err != nil {
		log.ErrorErr(log.CatDefs, "failed to write definitions file", err, "path", path)
		return fmt.Errorf("writing definitions file: %w", err)
	}

	log.Info(log.CatDefs, "created starter definitions", "path", path)
	return nil
}
