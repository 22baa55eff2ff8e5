package persona

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/agentkit/agentkit/internal/db"
	"github.com/agentkit/agentkit/internal/logging"
)

// Backend mirrors custom persona writes to durable storage. The in-memory
// store is authoritative within a process; the backend rehydrates it on first
// access per user and absorbs every mutation.
type Backend interface {
	SavePersona(ctx context.Context, userID string, def Definition) error
	LoadPersonas(ctx context.Context, userID string) (map[string]Definition, error)
	DeletePersona(ctx context.Context, userID, name string) (bool, error)
}

// NullBackend is the demo-mode backend: nothing is persisted, every load is
// empty. The store works identically against it.
type NullBackend struct{}

func (NullBackend) SavePersona(ctx context.Context, userID string, def Definition) error {
	return nil
}

func (NullBackend) LoadPersonas(ctx context.Context, userID string) (map[string]Definition, error) {
	return nil, nil
}

func (NullBackend) DeletePersona(ctx context.Context, userID, name string) (bool, error) {
	return false, nil
}

// Store holds per-user custom personas. Each user's mapping is independent;
// concurrent same-user writes to the same name are last-write-wins.
type Store struct {
	mu      sync.RWMutex
	users   map[string]map[string]Definition
	loaded  map[string]bool
	backend Backend
}

// NewStore creates a custom persona store backed by the given Backend.
// Pass NullBackend{} for a purely in-memory store.
func NewStore(backend Backend) *Store {
	if backend == nil {
		backend = NullBackend{}
	}
	return &Store{
		users:   make(map[string]map[string]Definition),
		loaded:  make(map[string]bool),
		backend: backend,
	}
}

// Get returns the user's custom personas keyed by name. An unknown user
// yields an empty mapping, never an error.
func (s *Store) Get(ctx context.Context, userID string) map[string]Definition {
	s.ensureLoaded(ctx, userID)

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string]Definition, len(s.users[userID]))
	for name, def := range s.users[userID] {
		out[name] = def.Clone()
	}
	return out
}

// Save validates and stores a custom persona under (userID, name).
// An existing entry with the same name is overwritten; its CreatedAt is
// preserved and UpdatedAt stamped. Validation failures leave the store
// untouched.
func (s *Store) Save(ctx context.Context, userID string, def Definition) error {
	if err := def.Validate(); err != nil {
		return err
	}
	def.IsCustom = true

	s.ensureLoaded(ctx, userID)

	s.mu.Lock()
	now := time.Now().UTC()
	prev, hadPrev := s.users[userID][def.Name]
	if hadPrev {
		def.CreatedAt = prev.CreatedAt
	} else {
		def.CreatedAt = now
	}
	def.UpdatedAt = now

	if s.users[userID] == nil {
		s.users[userID] = make(map[string]Definition)
	}
	s.users[userID][def.Name] = def.Clone()
	s.mu.Unlock()

	if err := s.backend.SavePersona(ctx, userID, def); err != nil {
		logging.Errorf("persona: failed to persist %q for user %s: %v", def.Name, userID, err)
		// Roll back so the in-memory view never diverges from storage
		// after a reported failure.
		s.mu.Lock()
		if hadPrev {
			s.users[userID][def.Name] = prev
		} else {
			delete(s.users[userID], def.Name)
		}
		s.mu.Unlock()
		return err
	}
	return nil
}

// Exists reports whether the user already has a custom persona with this name
func (s *Store) Exists(ctx context.Context, userID, name string) bool {
	s.ensureLoaded(ctx, userID)

	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.users[userID][name]
	return ok
}

// Delete removes a custom persona. Returns ErrNotFound if no such entry
// exists; a second delete of the same name fails cleanly the same way.
func (s *Store) Delete(ctx context.Context, userID, name string) error {
	s.ensureLoaded(ctx, userID)

	s.mu.Lock()
	prev, ok := s.users[userID][name]
	if ok {
		delete(s.users[userID], name)
	}
	s.mu.Unlock()

	if !ok {
		return ErrNotFound
	}

	if _, err := s.backend.DeletePersona(ctx, userID, name); err != nil {
		logging.Errorf("persona: failed to delete %q for user %s from backend: %v", name, userID, err)
		s.mu.Lock()
		if s.users[userID] == nil {
			s.users[userID] = make(map[string]Definition)
		}
		s.users[userID][name] = prev
		s.mu.Unlock()
		return err
	}
	return nil
}

// ensureLoaded rehydrates a user's personas from the backend once
func (s *Store) ensureLoaded(ctx context.Context, userID string) {
	s.mu.RLock()
	done := s.loaded[userID]
	s.mu.RUnlock()
	if done {
		return
	}

	defs, err := s.backend.LoadPersonas(ctx, userID)
	if err != nil {
		logging.Errorf("persona: failed to load personas for user %s: %v", userID, err)
		// Leave unloaded so a later call retries
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loaded[userID] {
		return
	}
	if len(defs) > 0 {
		m := make(map[string]Definition, len(defs))
		for name, def := range defs {
			m[name] = def.Clone()
		}
		s.users[userID] = m
	}
	s.loaded[userID] = true
}

// -----------------------------------------------------------------------------
// SQLite backend

// SQLBackend persists custom personas through the shared Store
type SQLBackend struct {
	store *db.Store
}

// NewSQLBackend wraps the database store as a persona Backend
func NewSQLBackend(store *db.Store) *SQLBackend {
	return &SQLBackend{store: store}
}

func (b *SQLBackend) SavePersona(ctx context.Context, userID string, def Definition) error {
	specialties, err := json.Marshal(emptyIfNil(def.Specialties))
	if err != nil {
		return err
	}
	actions, err := json.Marshal(emptyIfNil(def.QuickActions))
	if err != nil {
		return err
	}
	return b.store.UpsertCustomPersona(ctx, db.UpsertCustomPersonaParams{
		UserID:       userID,
		Name:         def.Name,
		Description:  def.Description,
		Emoji:        def.Emoji,
		Category:     def.Category,
		Specialties:  string(specialties),
		QuickActions: string(actions),
		SystemPrompt: def.SystemPromptOverride,
		Temperature:  def.Temperature,
	})
}

func (b *SQLBackend) LoadPersonas(ctx context.Context, userID string) (map[string]Definition, error) {
	rows, err := b.store.ListCustomPersonas(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := make(map[string]Definition, len(rows))
	for _, r := range rows {
		def := Definition{
			Name:                 r.Name,
			Description:          r.Description,
			Emoji:                r.Emoji,
			Category:             r.Category,
			Temperature:          r.Temperature,
			SystemPromptOverride: r.SystemPrompt,
			IsCustom:             true,
			CreatedAt:            r.CreatedAt,
			UpdatedAt:            r.UpdatedAt,
		}
		if err := json.Unmarshal([]byte(r.Specialties), &def.Specialties); err != nil {
			logging.Warnf("persona: bad specialties for %s/%s: %v", userID, r.Name, err)
		}
		if err := json.Unmarshal([]byte(r.QuickActions), &def.QuickActions); err != nil {
			logging.Warnf("persona: bad quick actions for %s/%s: %v", userID, r.Name, err)
		}
		out[def.Name] = def
	}
	return out, nil
}

func (b *SQLBackend) DeletePersona(ctx context.Context, userID, name string) (bool, error) {
	n, err := b.store.DeleteCustomPersona(ctx, userID, name)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func emptyIfNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
