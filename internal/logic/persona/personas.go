package persona

import (
	"time"

	"github.com/agentkit/agentkit/internal/persona"
	"github.com/agentkit/agentkit/internal/types"
)

// toPersonaInfo converts a definition to its API representation
func toPersonaInfo(def persona.Definition) types.PersonaInfo {
	info := types.PersonaInfo{
		Name:         def.Name,
		Description:  def.Description,
		Emoji:        def.Emoji,
		Category:     def.Category,
		Temperature:  def.Temperature,
		Specialties:  def.Specialties,
		QuickActions: def.QuickActions,
		IsCustom:     def.IsCustom,
	}
	if info.Specialties == nil {
		info.Specialties = []string{}
	}
	if !def.CreatedAt.IsZero() {
		info.CreatedAt = def.CreatedAt.UTC().Format(time.RFC3339)
	}
	if !def.UpdatedAt.IsZero() {
		info.UpdatedAt = def.UpdatedAt.UTC().Format(time.RFC3339)
	}
	return info
}
