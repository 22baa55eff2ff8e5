package persona

import (
	"context"
	"errors"
	"testing"

	"github.com/agentkit/agentkit/internal/db"
)

func TestStoreSaveGetRoundTrip(t *testing.T) {
	s := NewStore(NullBackend{})
	ctx := context.Background()

	err := s.Save(ctx, "u1", Definition{
		Name:        "My Advisor",
		Description: "Helps with things",
		Temperature: 0.4,
	})
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	got := s.Get(ctx, "u1")
	def, ok := got["My Advisor"]
	if !ok {
		t.Fatal("saved persona not found")
	}
	if !def.IsCustom {
		t.Error("saved persona not marked custom")
	}
	if def.CreatedAt.IsZero() || def.UpdatedAt.IsZero() {
		t.Error("timestamps not stamped")
	}
	if def.Category != DefaultCategory {
		t.Errorf("expected default category, got %q", def.Category)
	}
}

func TestStoreOverwritePreservesCreatedAt(t *testing.T) {
	s := NewStore(NullBackend{})
	ctx := context.Background()

	if err := s.Save(ctx, "u1", Definition{Name: "A", Description: "first"}); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	created := s.Get(ctx, "u1")["A"].CreatedAt

	if err := s.Save(ctx, "u1", Definition{Name: "A", Description: "second"}); err != nil {
		t.Fatalf("overwrite failed: %v", err)
	}

	def := s.Get(ctx, "u1")["A"]
	if def.Description != "second" {
		t.Errorf("overwrite not applied, description = %q", def.Description)
	}
	if !def.CreatedAt.Equal(created) {
		t.Error("createdAt not preserved on overwrite")
	}
	if def.UpdatedAt.Before(created) {
		t.Error("updatedAt went backwards")
	}
}

func TestStoreValidation(t *testing.T) {
	s := NewStore(NullBackend{})
	ctx := context.Background()

	var vErr *ValidationError
	if err := s.Save(ctx, "u1", Definition{Name: "", Description: "x"}); !errors.As(err, &vErr) {
		t.Errorf("expected ValidationError for empty name, got %v", err)
	}
	if err := s.Save(ctx, "u1", Definition{Name: "X"}); !errors.As(err, &vErr) {
		t.Errorf("expected ValidationError for empty description, got %v", err)
	}

	// Override alone is enough to stand in for a description
	if err := s.Save(ctx, "u1", Definition{Name: "X", SystemPromptOverride: "You are X."}); err != nil {
		t.Errorf("override-only persona rejected: %v", err)
	}

	if len(s.Get(ctx, "u1")) != 1 {
		t.Error("failed saves mutated the store")
	}
}

func TestStoreTemperatureClamped(t *testing.T) {
	s := NewStore(NullBackend{})
	ctx := context.Background()

	if err := s.Save(ctx, "u1", Definition{Name: "Hot", Description: "d", Temperature: 7.5}); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if got := s.Get(ctx, "u1")["Hot"].Temperature; got != MaxTemperature {
		t.Errorf("temperature not clamped: %v", got)
	}

	if err := s.Save(ctx, "u1", Definition{Name: "Cold", Description: "d", Temperature: -1}); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if got := s.Get(ctx, "u1")["Cold"].Temperature; got != MinTemperature {
		t.Errorf("temperature not clamped: %v", got)
	}
}

func TestStoreDelete(t *testing.T) {
	s := NewStore(NullBackend{})
	ctx := context.Background()

	if err := s.Save(ctx, "u1", Definition{Name: "A", Description: "d"}); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	if err := s.Delete(ctx, "u1", "Nonexistent"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if len(s.Get(ctx, "u1")) != 1 {
		t.Error("failed delete mutated the store")
	}

	if err := s.Delete(ctx, "u1", "A"); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if err := s.Delete(ctx, "u1", "A"); !errors.Is(err, ErrNotFound) {
		t.Errorf("second delete should fail cleanly, got %v", err)
	}
}

// failingBackend rejects writes so rollback behavior can be observed.
type failingBackend struct {
	NullBackend
	fail bool
}

func (b *failingBackend) SavePersona(ctx context.Context, userID string, def Definition) error {
	if b.fail {
		return errors.New("disk full")
	}
	return nil
}

func (b *failingBackend) DeletePersona(ctx context.Context, userID, name string) (bool, error) {
	if b.fail {
		return false, errors.New("disk full")
	}
	return true, nil
}

func TestStoreRollsBackOnBackendFailure(t *testing.T) {
	backend := &failingBackend{}
	s := NewStore(backend)
	ctx := context.Background()

	if err := s.Save(ctx, "u1", Definition{Name: "A", Description: "first"}); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	backend.fail = true

	// A failed create must not become visible
	if err := s.Save(ctx, "u1", Definition{Name: "B", Description: "d"}); err == nil {
		t.Fatal("expected save to report backend failure")
	}
	if _, ok := s.Get(ctx, "u1")["B"]; ok {
		t.Error("failed create left persona visible")
	}

	// A failed overwrite must keep the previous definition
	if err := s.Save(ctx, "u1", Definition{Name: "A", Description: "second"}); err == nil {
		t.Fatal("expected overwrite to report backend failure")
	}
	if got := s.Get(ctx, "u1")["A"].Description; got != "first" {
		t.Errorf("failed overwrite changed definition, description = %q", got)
	}

	// A failed delete must restore the entry
	if err := s.Delete(ctx, "u1", "A"); err == nil {
		t.Fatal("expected delete to report backend failure")
	}
	if _, ok := s.Get(ctx, "u1")["A"]; !ok {
		t.Error("failed delete removed persona from view")
	}

	backend.fail = false
	if err := s.Delete(ctx, "u1", "A"); err != nil {
		t.Fatalf("delete after recovery failed: %v", err)
	}
}

func TestStoreUserIsolation(t *testing.T) {
	s := NewStore(NullBackend{})
	ctx := context.Background()

	if err := s.Save(ctx, "u1", Definition{Name: "A", Description: "d"}); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	if len(s.Get(ctx, "u2")) != 0 {
		t.Error("u2 sees u1's personas")
	}
}

func TestSQLBackendRoundTrip(t *testing.T) {
	store, err := db.NewMemory()
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	defer store.Close()
	ctx := context.Background()

	if err := store.CreateUser(ctx, db.CreateUserParams{
		ID: "u1", Email: "u1@example.com", PasswordHash: "x",
	}); err != nil {
		t.Fatalf("create user: %v", err)
	}

	backend := NewSQLBackend(store)
	s := NewStore(backend)

	def := Definition{
		Name:                 "Pricing Guru",
		Description:          "Knows pricing",
		Emoji:                "💸",
		Category:             "Finance & Accounting",
		Temperature:          0.3,
		Specialties:          []string{"Pricing", "Packaging"},
		QuickActions:         []string{"Price Audit"},
		SystemPromptOverride: "You are a pricing guru.",
	}
	if err := s.Save(ctx, "u1", def); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	// Fresh store against the same backend must rehydrate from SQLite
	s2 := NewStore(backend)
	got, ok := s2.Get(ctx, "u1")["Pricing Guru"]
	if !ok {
		t.Fatal("persona not rehydrated from backend")
	}
	if got.SystemPromptOverride != def.SystemPromptOverride {
		t.Errorf("override lost: %q", got.SystemPromptOverride)
	}
	if len(got.Specialties) != 2 || got.Specialties[0] != "Pricing" {
		t.Errorf("specialties lost: %v", got.Specialties)
	}
	if !got.IsCustom {
		t.Error("rehydrated persona not marked custom")
	}

	if err := s2.Delete(ctx, "u1", "Pricing Guru"); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	s3 := NewStore(backend)
	if len(s3.Get(ctx, "u1")) != 0 {
		t.Error("delete not mirrored to backend")
	}
}
