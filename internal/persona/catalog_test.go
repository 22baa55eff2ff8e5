package persona

import "testing"

func TestListBuiltins(t *testing.T) {
	defs := ListBuiltins()
	if len(defs) != 14 {
		t.Fatalf("expected 14 built-in personas, got %d", len(defs))
	}

	seen := make(map[string]bool)
	for _, d := range defs {
		if d.Name == "" {
			t.Error("built-in persona with empty name")
		}
		if seen[d.Name] {
			t.Errorf("duplicate built-in name %q", d.Name)
		}
		seen[d.Name] = true
		if d.IsCustom {
			t.Errorf("built-in %q marked custom", d.Name)
		}
		if d.Description == "" {
			t.Errorf("built-in %q has no description", d.Name)
		}
		if d.Temperature < MinTemperature || d.Temperature > MaxTemperature {
			t.Errorf("built-in %q temperature %v out of range", d.Name, d.Temperature)
		}
	}
}

func TestListBuiltinsReturnsCopies(t *testing.T) {
	first := ListBuiltins()
	first[0].Name = "mutated"
	first[0].Specialties[0] = "mutated"

	second := ListBuiltins()
	if second[0].Name == "mutated" || second[0].Specialties[0] == "mutated" {
		t.Fatal("catalog mutated through returned slice")
	}
}

func TestGetBuiltin(t *testing.T) {
	def, ok := GetBuiltin("Startup Strategist")
	if !ok {
		t.Fatal("Startup Strategist not found")
	}
	if def.Temperature != 0.7 {
		t.Errorf("expected temperature 0.7, got %v", def.Temperature)
	}
	if def.Category != "Entrepreneurship & Startups" {
		t.Errorf("unexpected category %q", def.Category)
	}

	if _, ok := GetBuiltin("No Such Persona"); ok {
		t.Error("lookup of unknown persona succeeded")
	}
}
