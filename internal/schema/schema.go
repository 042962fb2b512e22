// Package schema owns the fixed set of record schemas (one per payload type
// plus the envelope) and a compiled-validator cache. It hand-rolls structural
// validation over a decoded document and accumulates every failure rather
// than stopping at the first, the same idiom goal-file validation uses,
// instead of vendoring a schema engine for a single caller.
package schema

import (
	"sort"
	"sync"

	"github.com/gitgovernance/core/internal/gerrors"
)

// Schema is a named, ordered set of Rules evaluated against a decoded
// document (map[string]any, the shape produced by json.Unmarshal into
// any). It plays the role a Draft-07 JSON Schema would: a declarative
// description of one record type's structural constraints.
type Schema struct {
	Name  string
	Rules []Rule
}

// Rule checks one constraint against a document and returns every failure
// it finds, in "report everything" mode.
type Rule interface {
	Check(doc map[string]any) []gerrors.FieldError
}

// Validator is a compiled Schema: calling Validate is equivalent to running
// every Rule in order. Compilation here is just the identity function over
// the in-memory Schema (there is no external engine to compile against),
// but the cache still matters: it is the mechanism that makes
// Compile(s) == Compile(s) by reference.
type Validator struct {
	schema *Schema
}

// Validate runs every rule and returns the accumulated field errors (nil
// when the document is valid).
func (v *Validator) Validate(doc map[string]any) []gerrors.FieldError {
	var errs []gerrors.FieldError
	for _, r := range v.schema.Rules {
		errs = append(errs, r.Check(doc)...)
	}
	return errs
}

// Registry owns the compiled-validator cache. The zero value is not usable;
// use NewRegistry.
type Registry struct {
	mu        sync.Mutex
	compiled  map[*Schema]*Validator
	compiles  int
	cacheHits int
}

// NewRegistry returns a registry with an empty cache: no schema is compiled
// until its first Compile call.
func NewRegistry() *Registry {
	r := &Registry{compiled: make(map[*Schema]*Validator)}
	return r
}

// Compile returns the cached Validator for schema, compiling it on first
// use. Two calls with the same *Schema pointer return the identical
// *Validator, by reference equality.
func (r *Registry) Compile(s *Schema) *Validator {
	r.mu.Lock()
	defer r.mu.Unlock()

	if v, ok := r.compiled[s]; ok {
		r.cacheHits++
		return v
	}
	v := &Validator{schema: s}
	r.compiled[s] = v
	r.compiles++
	return v
}

// ClearCache discards every compiled validator. Intended for test harnesses
// that want a clean cache between suites.
func (r *Registry) ClearCache() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.compiled = make(map[*Schema]*Validator)
	r.compiles = 0
	r.cacheHits = 0
}

// Stats reports cache activity for ops/test affordances.
type Stats struct {
	CompiledSchemas int
	CacheHits       int
}

func (r *Registry) Stats() Stats {
	r.mu.Lock()
	defer r.mu.Unlock()
	return Stats{CompiledSchemas: r.compiles, CacheHits: r.cacheHits}
}

// Names returns every schema name in schemas (typically Schemas), sorted,
// for display/debugging.
func Names(schemas map[string]*Schema) []string {
	names := make([]string, 0, len(schemas))
	for n := range schemas {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
