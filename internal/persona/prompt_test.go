package persona

import (
	"context"
	"strings"
	"testing"
)

func TestSynthesizePromptDeterministic(t *testing.T) {
	def, _ := GetBuiltin("Startup Strategist")
	a := SynthesizePrompt(&def)
	b := SynthesizePrompt(&def)
	if a != b {
		t.Fatal("synthesis not deterministic")
	}

	if !strings.Contains(a, "You are Startup Strategist, ") {
		t.Errorf("missing identity sentence: %q", a)
	}
	if !strings.Contains(a, "Your specialties include: Business Planning, MVP Development") {
		t.Errorf("missing specialties sentence: %q", a)
	}
	if !strings.Contains(a, "actionable advice") {
		t.Errorf("missing closing instructions: %q", a)
	}
}

func TestSynthesizePromptOmitsEmptySpecialties(t *testing.T) {
	def := Definition{Name: "Plain", Description: "a plain assistant."}
	got := SynthesizePrompt(&def)
	if strings.Contains(got, "specialties") {
		t.Errorf("specialties sentence should be omitted: %q", got)
	}
}

func TestResolvePromptOverrideVerbatim(t *testing.T) {
	def := Definition{
		Name:                 "Custom",
		Description:          "ignored",
		Specialties:          []string{"also ignored"},
		SystemPromptOverride: "Y",
		IsCustom:             true,
		Temperature:          0.3,
	}
	got := ResolvePrompt(&def, 0.7)
	if got.System != "Y" {
		t.Errorf("override not returned verbatim: %q", got.System)
	}
	if got.Source != SourceOverride {
		t.Errorf("wrong source %q", got.Source)
	}
	if got.Temperature != 0.3 {
		t.Errorf("persona temperature not used: %v", got.Temperature)
	}
}

func TestResolvePromptBuiltinIgnoresOverrideFlag(t *testing.T) {
	// A non-custom definition never short-circuits on override
	def := Definition{Name: "B", Description: "d", SystemPromptOverride: "Z"}
	got := ResolvePrompt(&def, 0.7)
	if got.Source != SourceSynthesized {
		t.Errorf("builtin should synthesize, got source %q", got.Source)
	}
}

func TestResolvePromptFallback(t *testing.T) {
	got := ResolvePrompt(nil, 0.55)
	if got.System != FallbackPrompt {
		t.Errorf("unexpected fallback prompt %q", got.System)
	}
	if got.Temperature != 0.55 {
		t.Errorf("caller default temperature not used: %v", got.Temperature)
	}
	if got.Source != SourceFallback {
		t.Errorf("wrong source %q", got.Source)
	}
}

func TestRegistryPrompt(t *testing.T) {
	store := NewStore(NullBackend{})
	reg := NewRegistry(store)
	ctx := context.Background()

	if err := store.Save(ctx, "u1", Definition{
		Name:                 "Startup Strategist",
		Description:          "X",
		SystemPromptOverride: "Y",
		Temperature:          0.3,
	}); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	got := reg.Prompt(ctx, "u1", "Startup Strategist", 0.7)
	if got.System != "Y" {
		t.Errorf("custom override not resolved: %q", got.System)
	}

	fallback := reg.Prompt(ctx, "u1", "Ghost", 0.7)
	if fallback.Source != SourceFallback {
		t.Errorf("expected fallback for unknown persona, got %q", fallback.Source)
	}
}
