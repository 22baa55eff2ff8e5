// Package chat implements conversation history, context window assembly, and
// the orchestrator that turns a user message into a provider request.
package chat

import (
	"context"
	"sync"
	"time"

	"github.com/agentkit/agentkit/internal/db"
	"github.com/agentkit/agentkit/internal/logging"
)

// Turn is one completed exchange with a persona
type Turn struct {
	PersonaName   string
	UserMessage   string
	AgentResponse string
	Model         string
	CreatedAt     time.Time
}

// Backend mirrors chat history to durable storage
type Backend interface {
	AppendTurn(ctx context.Context, userID string, turn Turn) error
	LoadHistory(ctx context.Context, userID string, limit int) ([]Turn, error)
	ClearHistory(ctx context.Context, userID, personaName string) (int64, error)
}

// NullBackend keeps history in memory only
type NullBackend struct{}

func (NullBackend) AppendTurn(ctx context.Context, userID string, turn Turn) error {
	return nil
}

func (NullBackend) LoadHistory(ctx context.Context, userID string, limit int) ([]Turn, error) {
	return nil, nil
}

func (NullBackend) ClearHistory(ctx context.Context, userID, personaName string) (int64, error) {
	return 0, nil
}

// rehydrateLimit bounds how much history is pulled back into memory per user
const rehydrateLimit = 200

// History holds per-user chat history, append-only except for explicit
// clears. The in-memory copy is authoritative within a process; the backend
// rehydrates it on first access and absorbs every mutation.
type History struct {
	mu      sync.RWMutex
	users   map[string][]Turn
	loaded  map[string]bool
	backend Backend
}

// NewHistory creates a history store over the given backend
func NewHistory(backend Backend) *History {
	if backend == nil {
		backend = NullBackend{}
	}
	return &History{
		users:   make(map[string][]Turn),
		loaded:  make(map[string]bool),
		backend: backend,
	}
}

// Append records a completed exchange
func (h *History) Append(ctx context.Context, userID string, turn Turn) error {
	if turn.CreatedAt.IsZero() {
		turn.CreatedAt = time.Now().UTC()
	}
	h.ensureLoaded(ctx, userID)

	h.mu.Lock()
	h.users[userID] = append(h.users[userID], turn)
	h.mu.Unlock()

	if err := h.backend.AppendTurn(ctx, userID, turn); err != nil {
		logging.Errorf("chat: failed to persist turn for user %s: %v", userID, err)
		return err
	}
	return nil
}

// All returns the user's history in chronological order. Limit <= 0 returns
// everything; otherwise the most recent limit turns.
func (h *History) All(ctx context.Context, userID string, limit int) []Turn {
	h.ensureLoaded(ctx, userID)

	h.mu.RLock()
	defer h.mu.RUnlock()

	turns := h.users[userID]
	if limit > 0 && len(turns) > limit {
		turns = turns[len(turns)-limit:]
	}
	return append([]Turn(nil), turns...)
}

// ForPersona returns the most recent turns belonging to one persona, in
// chronological order. Never returns turns from a different persona.
func (h *History) ForPersona(ctx context.Context, userID, personaName string, limit int) []Turn {
	h.ensureLoaded(ctx, userID)

	h.mu.RLock()
	defer h.mu.RUnlock()

	var matched []Turn
	for _, turn := range h.users[userID] {
		if turn.PersonaName == personaName {
			matched = append(matched, turn)
		}
	}
	if limit > 0 && len(matched) > limit {
		matched = matched[len(matched)-limit:]
	}
	return matched
}

// Clear drops history for one persona, or all history when personaName is
// empty. Returns the number of turns removed from memory.
func (h *History) Clear(ctx context.Context, userID, personaName string) (int64, error) {
	h.ensureLoaded(ctx, userID)

	h.mu.Lock()
	var kept []Turn
	var removed int64
	for _, turn := range h.users[userID] {
		if personaName == "" || turn.PersonaName == personaName {
			removed++
			continue
		}
		kept = append(kept, turn)
	}
	h.users[userID] = kept
	h.mu.Unlock()

	if _, err := h.backend.ClearHistory(ctx, userID, personaName); err != nil {
		logging.Errorf("chat: failed to clear history for user %s: %v", userID, err)
		return removed, err
	}
	return removed, nil
}

func (h *History) ensureLoaded(ctx context.Context, userID string) {
	h.mu.RLock()
	done := h.loaded[userID]
	h.mu.RUnlock()
	if done {
		return
	}

	turns, err := h.backend.LoadHistory(ctx, userID, rehydrateLimit)
	if err != nil {
		logging.Errorf("chat: failed to load history for user %s: %v", userID, err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.loaded[userID] {
		return
	}
	if len(turns) > 0 {
		h.users[userID] = turns
	}
	h.loaded[userID] = true
}

// -----------------------------------------------------------------------------
// SQLite backend

// SQLBackend persists chat turns through the shared Store
type SQLBackend struct {
	store *db.Store
}

// NewSQLBackend wraps the database store as a chat history Backend
func NewSQLBackend(store *db.Store) *SQLBackend {
	return &SQLBackend{store: store}
}

func (b *SQLBackend) AppendTurn(ctx context.Context, userID string, turn Turn) error {
	return b.store.AppendChatTurn(ctx, db.AppendChatTurnParams{
		UserID:        userID,
		PersonaName:   turn.PersonaName,
		UserMessage:   turn.UserMessage,
		AgentResponse: turn.AgentResponse,
		Model:         turn.Model,
	})
}

func (b *SQLBackend) LoadHistory(ctx context.Context, userID string, limit int) ([]Turn, error) {
	rows, err := b.store.ListChatTurns(ctx, db.ListChatTurnsParams{UserID: userID, Limit: limit})
	if err != nil {
		return nil, err
	}
	out := make([]Turn, len(rows))
	for i, r := range rows {
		out[i] = Turn{
			PersonaName:   r.PersonaName,
			UserMessage:   r.UserMessage,
			AgentResponse: r.AgentResponse,
			Model:         r.Model,
			CreatedAt:     r.CreatedAt,
		}
	}
	return out, nil
}

func (b *SQLBackend) ClearHistory(ctx context.Context, userID, personaName string) (int64, error) {
	return b.store.ClearChatTurns(ctx, userID, personaName)
}
