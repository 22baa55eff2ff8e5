package chat

import (
	"context"
	"testing"

	"github.com/agentkit/agentkit/internal/db"
)

func TestHistoryAppendAndRead(t *testing.T) {
	h := NewHistory(NullBackend{})
	ctx := context.Background()

	for _, tn := range []Turn{
		turn("A", "a1", "r1"),
		turn("B", "b1", "rb1"),
		turn("A", "a2", "r2"),
	} {
		if err := h.Append(ctx, "u1", tn); err != nil {
			t.Fatalf("append failed: %v", err)
		}
	}

	all := h.All(ctx, "u1", 0)
	if len(all) != 3 {
		t.Fatalf("expected 3 turns, got %d", len(all))
	}

	forA := h.ForPersona(ctx, "u1", "A", 0)
	if len(forA) != 2 || forA[0].UserMessage != "a1" || forA[1].UserMessage != "a2" {
		t.Errorf("unexpected persona history: %+v", forA)
	}

	if got := h.ForPersona(ctx, "u1", "A", 1); len(got) != 1 || got[0].UserMessage != "a2" {
		t.Errorf("limit not applied from the tail: %+v", got)
	}

	if len(h.All(ctx, "u2", 0)) != 0 {
		t.Error("history leaked across users")
	}
}

func TestHistoryClear(t *testing.T) {
	h := NewHistory(NullBackend{})
	ctx := context.Background()

	h.Append(ctx, "u1", turn("A", "a1", "r1"))
	h.Append(ctx, "u1", turn("B", "b1", "rb1"))
	h.Append(ctx, "u1", turn("A", "a2", "r2"))

	removed, err := h.Clear(ctx, "u1", "A")
	if err != nil {
		t.Fatalf("clear failed: %v", err)
	}
	if removed != 2 {
		t.Errorf("removed = %d, want 2", removed)
	}
	if len(h.All(ctx, "u1", 0)) != 1 {
		t.Error("other persona's turns were dropped")
	}

	removed, err = h.Clear(ctx, "u1", "")
	if err != nil {
		t.Fatalf("clear all failed: %v", err)
	}
	if removed != 1 || len(h.All(ctx, "u1", 0)) != 0 {
		t.Error("clear all did not empty the history")
	}
}

func TestHistorySQLBackendRoundTrip(t *testing.T) {
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
	h := NewHistory(backend)

	if err := h.Append(ctx, "u1", Turn{
		PersonaName: "A", UserMessage: "hello", AgentResponse: "hi", Model: "gpt-4",
	}); err != nil {
		t.Fatalf("append failed: %v", err)
	}

	// A fresh history over the same backend rehydrates from SQLite
	h2 := NewHistory(backend)
	got := h2.All(ctx, "u1", 0)
	if len(got) != 1 {
		t.Fatalf("expected 1 rehydrated turn, got %d", len(got))
	}
	if got[0].AgentResponse != "hi" || got[0].Model != "gpt-4" {
		t.Errorf("turn fields lost: %+v", got[0])
	}

	if _, err := h2.Clear(ctx, "u1", ""); err != nil {
		t.Fatalf("clear failed: %v", err)
	}
	h3 := NewHistory(backend)
	if len(h3.All(ctx, "u1", 0)) != 0 {
		t.Error("clear not mirrored to backend")
	}
}
