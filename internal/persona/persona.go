// Package persona implements the agent persona model: the built-in catalog,
// per-user custom persona storage, the merged registry, and system prompt
// resolution.
package persona

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Temperature bounds accepted for any persona. Values outside the range are
// clamped, not rejected. Individual providers may clamp further at dispatch.
const (
	MinTemperature = 0.0
	MaxTemperature = 2.0
)

// DefaultCategory is used when a persona does not declare one
const DefaultCategory = "Other"

// ErrNotFound is returned when a persona lookup or delete misses
var ErrNotFound = errors.New("persona not found")

// ValidationError describes a rejected persona definition
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid persona: %s: %s", e.Field, e.Message)
}

// Definition is one assistant personality. Built-ins ship in the catalog;
// custom definitions are user-authored and shadow built-ins of the same name.
type Definition struct {
	Name                 string
	Description          string
	Emoji                string
	Category             string
	Temperature          float64
	Specialties          []string
	QuickActions         []string
	SystemPromptOverride string
	IsCustom             bool
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// Validate checks that the definition carries enough to either synthesize a
// system prompt or use an explicit override. Name and description are always
// required; a blank category is normalized to DefaultCategory and temperature
// is clamped into range.
func (d *Definition) Validate() error {
	d.Name = strings.TrimSpace(d.Name)
	if d.Name == "" {
		return &ValidationError{Field: "name", Message: "must not be empty"}
	}
	d.Description = strings.TrimSpace(d.Description)
	if d.Description == "" && strings.TrimSpace(d.SystemPromptOverride) == "" {
		return &ValidationError{Field: "description", Message: "must not be empty unless a system prompt is provided"}
	}
	if d.Category == "" {
		d.Category = DefaultCategory
	}
	d.Temperature = ClampTemperature(d.Temperature)
	return nil
}

// ClampTemperature forces t into the supported sampling range
func ClampTemperature(t float64) float64 {
	if t < MinTemperature {
		return MinTemperature
	}
	if t > MaxTemperature {
		return MaxTemperature
	}
	return t
}

// Clone returns a deep copy so callers can mutate without affecting the source
func (d Definition) Clone() Definition {
	out := d
	if d.Specialties != nil {
		out.Specialties = append([]string(nil), d.Specialties...)
	}
	if d.QuickActions != nil {
		out.QuickActions = append([]string(nil), d.QuickActions...)
	}
	return out
}
