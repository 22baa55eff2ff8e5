package persona

import (
	"context"
	"testing"
)

func TestRegistryResolveBuiltinsOnly(t *testing.T) {
	reg := NewRegistry(NewStore(NullBackend{}))
	ctx := context.Background()

	resolved := reg.Resolve(ctx, "unknown-user")
	if len(resolved) != 14 {
		t.Fatalf("expected 14 personas for unknown user, got %d", len(resolved))
	}
	if resolved["Startup Strategist"].Temperature != 0.7 {
		t.Errorf("builtin temperature wrong: %v", resolved["Startup Strategist"].Temperature)
	}
}

func TestRegistryCustomShadowsBuiltin(t *testing.T) {
	store := NewStore(NullBackend{})
	reg := NewRegistry(store)
	ctx := context.Background()

	err := store.Save(ctx, "u1", Definition{
		Name:                 "Startup Strategist",
		Description:          "X",
		SystemPromptOverride: "Y",
		Temperature:          0.3,
	})
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	resolved := reg.Resolve(ctx, "u1")
	def := resolved["Startup Strategist"]
	if !def.IsCustom {
		t.Error("custom persona did not shadow builtin")
	}
	if def.Temperature != 0.3 {
		t.Errorf("shadowed temperature wrong: %v", def.Temperature)
	}

	// Other users still see the builtin
	if reg.Resolve(ctx, "u2")["Startup Strategist"].IsCustom {
		t.Error("shadowing leaked across users")
	}
}

func TestRegistryLookup(t *testing.T) {
	reg := NewRegistry(NewStore(NullBackend{}))
	ctx := context.Background()

	if _, ok := reg.Lookup(ctx, "u1", "Financial Controller"); !ok {
		t.Error("builtin lookup failed")
	}
	if _, ok := reg.Lookup(ctx, "u1", "Nope"); ok {
		t.Error("unknown persona lookup succeeded")
	}
}

func TestRegistryResolveNamesOrder(t *testing.T) {
	store := NewStore(NullBackend{})
	reg := NewRegistry(store)
	ctx := context.Background()

	if err := store.Save(ctx, "u1", Definition{Name: "Zeta Bot", Description: "d"}); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if err := store.Save(ctx, "u1", Definition{Name: "Alpha Bot", Description: "d"}); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	names := reg.ResolveNames(ctx, "u1")
	if len(names) != 16 {
		t.Fatalf("expected 16 names, got %d", len(names))
	}
	if names[0] != "Startup Strategist" {
		t.Errorf("builtins should lead in catalog order, got %q first", names[0])
	}
	if names[14] != "Alpha Bot" || names[15] != "Zeta Bot" {
		t.Errorf("custom names should follow sorted, got %v", names[14:])
	}
}

func TestRegistryGroupByCategory(t *testing.T) {
	store := NewStore(NullBackend{})
	reg := NewRegistry(store)
	ctx := context.Background()

	if err := store.Save(ctx, "u1", Definition{Name: "My Bot", Description: "d"}); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	groups := reg.GroupByCategory(ctx, "u1")

	ent := groups["Entrepreneurship & Startups"]
	if len(ent) != 3 || ent[0] != "Startup Strategist" {
		t.Errorf("unexpected entrepreneurship group: %v", ent)
	}
	other := groups[DefaultCategory]
	if len(other) != 1 || other[0] != "My Bot" {
		t.Errorf("custom persona missing from %q group: %v", DefaultCategory, other)
	}
}
