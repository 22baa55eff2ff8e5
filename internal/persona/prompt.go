package persona

import (
	"context"
	"fmt"
	"strings"
)

// FallbackPrompt is used when a persona name cannot be resolved
const FallbackPrompt = "You are a helpful AI assistant."

// Prompt source labels
const (
	SourceOverride    = "override"
	SourceSynthesized = "synthesized"
	SourceFallback    = "fallback"
)

// ResolvedPrompt is the system prompt and sampling temperature for one turn
type ResolvedPrompt struct {
	System      string
	Temperature float64
	Source      string
}

// ResolvePrompt computes the system prompt for a persona. Custom personas
// with a non-empty override return it verbatim, never augmented. Everything
// else gets a deterministic synthesized prompt. A nil definition falls back
// to the generic assistant with the caller-supplied temperature.
func ResolvePrompt(def *Definition, defaultTemperature float64) ResolvedPrompt {
	if def == nil {
		return ResolvedPrompt{
			System:      FallbackPrompt,
			Temperature: defaultTemperature,
			Source:      SourceFallback,
		}
	}

	if def.IsCustom && strings.TrimSpace(def.SystemPromptOverride) != "" {
		return ResolvedPrompt{
			System:      def.SystemPromptOverride,
			Temperature: ClampTemperature(def.Temperature),
			Source:      SourceOverride,
		}
	}

	return ResolvedPrompt{
		System:      SynthesizePrompt(def),
		Temperature: ClampTemperature(def.Temperature),
		Source:      SourceSynthesized,
	}
}

// SynthesizePrompt builds a system prompt from the persona's fields.
// Deterministic: the same definition always yields byte-identical output.
func SynthesizePrompt(def *Definition) string {
	var b strings.Builder
	fmt.Fprintf(&b, "You are %s, %s\n", def.Name, def.Description)

	if len(def.Specialties) > 0 {
		fmt.Fprintf(&b, "\nYour specialties include: %s\n", strings.Join(def.Specialties, ", "))
	}

	b.WriteString("\nYou should respond in a professional, helpful manner while staying true to your role and expertise.\n")
	b.WriteString("Provide actionable advice and insights based on your specialization.\n")
	return b.String()
}

// Prompt resolves the system prompt for a named persona in a user's
// namespace. Registry-level convenience over ResolvePrompt.
func (r *Registry) Prompt(ctx context.Context, userID, name string, defaultTemperature float64) ResolvedPrompt {
	def, ok := r.Lookup(ctx, userID, name)
	if !ok {
		return ResolvePrompt(nil, defaultTemperature)
	}
	return ResolvePrompt(&def, defaultTemperature)
}
