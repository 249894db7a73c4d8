// Package fields maps symbolic field, option and iteration names to the
// opaque identifiers GitHub's mutations expect, and coerces raw TSV values
// into the typed payload each field's data type requires.
package fields

import (
	"fmt"
	"strings"

	"github.com/kin230k/boardsync/internal/client"
	"github.com/kin230k/boardsync/internal/models"
)

// Resolver holds the name→field snapshot for one board and resolves option
// and iteration names against the remote field configuration. Lookups are
// cached per field id so repeated option resolutions for the same field
// cost one round-trip per run.
type Resolver struct {
	lookup     client.FieldLookup
	byName     map[string]models.Field
	options    map[string]map[string]string
	iterations map[string]map[string]string
}

func NewResolver(defs []models.Field, lookup client.FieldLookup) *Resolver {
	byName := make(map[string]models.Field, len(defs))
	for _, f := range defs {
		byName[strings.TrimSpace(f.Name)] = f
	}
	return &Resolver{
		lookup:     lookup,
		byName:     byName,
		options:    make(map[string]map[string]string),
		iterations: make(map[string]map[string]string),
	}
}

// Field returns the definition under the trimmed, case-sensitive name.
func (r *Resolver) Field(name string) (models.Field, bool) {
	f, ok := r.byName[strings.TrimSpace(name)]
	return f, ok
}

// ResolveOption returns the option id whose name exactly matches.
func (r *Resolver) ResolveOption(fieldId, name string) (string, error) {
	cached, ok := r.options[fieldId]
	if !ok {
		opts, err := r.lookup.FieldOptions(fieldId)
		if err != nil {
			return "", fmt.Errorf("resolve option %q: %w", name, err)
		}
		cached = make(map[string]string, len(opts))
		for _, o := range opts {
			cached[o.Name] = o.Id
		}
		r.options[fieldId] = cached
	}

	id, ok := cached[name]
	if !ok {
		return "", &client.NotFoundError{Kind: "option", Name: name}
	}
	return id, nil
}

// ResolveIteration returns the iteration id whose title exactly matches.
func (r *Resolver) ResolveIteration(fieldId, title string) (string, error) {
	cached, ok := r.iterations[fieldId]
	if !ok {
		its, err := r.lookup.FieldIterations(fieldId)
		if err != nil {
			return "", fmt.Errorf("resolve iteration %q: %w", title, err)
		}
		cached = make(map[string]string, len(its))
		for _, it := range its {
			cached[it.Title] = it.Id
		}
		r.iterations[fieldId] = cached
	}

	id, ok := cached[title]
	if !ok {
		return "", &client.NotFoundError{Kind: "iteration", Name: title}
	}
	return id, nil
}
