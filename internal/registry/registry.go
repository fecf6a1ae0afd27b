// Package registry holds the loaded command templates, deduplicated on
// whitespace-normalized template text so the same command cannot be
// defined twice under cosmetically different spellings.
package registry

import (
	"fmt"
	"strings"
	"sync"

	"github.com/snova-cli/snova/internal/log"
	"github.com/snova-cli/snova/internal/template"
)

// Entry pairs a loaded template with where it came from.
type Entry struct {
	Template   *template.CommandTemplate
	Provenance string // "builtin" or the defining file path
}

// Registry is the in-memory store of loaded templates. Entries keep
// insertion order; lookups go through the normalized template text.
type Registry struct {
	mu      sync.RWMutex
	entries []*Entry
	byKey   map[string]*Entry
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{byKey: make(map[string]*Entry)}
}

// Normalize collapses whitespace runs to single spaces and trims the
// ends. Normalized text is the registry key: two templates that differ
// only in whitespace are the same command.
func Normalize(raw string) string {
	return strings.Join(strings.Fields(raw), " ")
}

// Add stores a template. A template whose normalized text is already
// present is rejected with a DefinitionError naming both provenances.
func (r *Registry) Add(tmpl *template.CommandTemplate, provenance string) error {
	key := Normalize(tmpl.Raw)

	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.byKey[key]; ok {
		reason := fmt.Sprintf("duplicate of template %q already loaded from %s",
			existing.Template.Raw, existing.Provenance)
		if d := DuplicateDiff(existing.Template.Raw, tmpl.Raw); d != "" {
			reason += ", differing only as " + d
		}
		return &template.DefinitionError{
			Provenance: provenance,
			Template:   tmpl.Raw,
			Reason:     reason,
		}
	}

	entry := &Entry{Template: tmpl, Provenance: provenance}
	r.byKey[key] = entry
	r.entries = append(r.entries, entry)
	log.Debug(log.CatRegistry, "template registered", "template", key, "provenance", provenance)
	return nil
}

// All returns the entries in insertion order.
func (r *Registry) All() []*Entry {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*Entry, len(r.entries))
	copy(out, r.entries)
	return out
}

// Len returns the number of loaded templates.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}

// Lookup finds a template by its text, in any whitespace spelling.
func (r *Registry) Lookup(raw string) (*Entry, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.byKey[Normalize(raw)]
	return e, ok
}

// Filter returns the entries whose template text or description contains
// the query, case-insensitively, in insertion order. An empty query
// returns everything.
func (r *Registry) Filter(query string) []*Entry {
	if query == "" {
		return r.All()
	}
	q := strings.ToLower(query)

	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*Entry
	for _, e := range r.entries {
		if strings.Contains(strings.ToLower(e.Template.Raw), q) ||
			strings.Contains(strings.ToLower(e.Template.Description), q) {
			out = append(out, e)
		}
	}
	return out
}
