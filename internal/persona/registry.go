package persona

import (
	"context"
	"sort"
)

// Registry merges the built-in catalog with a user's custom personas into one
// addressable namespace. Custom entries shadow built-ins of the same name.
type Registry struct {
	store *Store
}

// NewRegistry creates a registry over the given custom persona store
func NewRegistry(store *Store) *Registry {
	return &Registry{store: store}
}

// Store exposes the underlying custom persona store
func (r *Registry) Store() *Store {
	return r.store
}

// Resolve returns the full persona namespace for a user. An unknown user
// simply yields only built-ins.
func (r *Registry) Resolve(ctx context.Context, userID string) map[string]Definition {
	out := make(map[string]Definition, len(builtins))
	for _, b := range builtins {
		out[b.Name] = b.Clone()
	}
	for name, def := range r.store.Get(ctx, userID) {
		out[name] = def
	}
	return out
}

// Lookup resolves a single persona by name for a user, custom first
func (r *Registry) Lookup(ctx context.Context, userID, name string) (Definition, bool) {
	if def, ok := r.store.Get(ctx, userID)[name]; ok {
		return def, true
	}
	return GetBuiltin(name)
}

// ResolveNames returns all persona names for a user: built-ins in catalog
// order first, then custom-only names sorted.
func (r *Registry) ResolveNames(ctx context.Context, userID string) []string {
	custom := r.store.Get(ctx, userID)

	names := make([]string, 0, len(builtins)+len(custom))
	seen := make(map[string]bool, len(builtins))
	for _, b := range builtins {
		names = append(names, b.Name)
		seen[b.Name] = true
	}

	extra := make([]string, 0, len(custom))
	for name := range custom {
		if !seen[name] {
			extra = append(extra, name)
		}
	}
	sort.Strings(extra)
	return append(names, extra...)
}

// GroupByCategory projects the resolved namespace into category buckets.
// Within a category, built-ins keep catalog order and custom-only names
// follow sorted; a custom persona shadowing a built-in keeps the built-in's
// position but contributes its own category.
func (r *Registry) GroupByCategory(ctx context.Context, userID string) map[string][]string {
	resolved := r.Resolve(ctx, userID)

	out := make(map[string][]string)
	for _, name := range r.ResolveNames(ctx, userID) {
		def, ok := resolved[name]
		if !ok {
			continue
		}
		cat := def.Category
		if cat == "" {
			cat = DefaultCategory
		}
		out[cat] = append(out[cat], name)
	}
	return out
}
