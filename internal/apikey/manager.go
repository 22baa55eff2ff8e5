// Package apikey manages per-user provider API keys: format validation,
// encryption at rest, masked listings, and usage counters.
package apikey

import (
	"context"
	"errors"
	"fmt"

	"github.com/agentkit/agentkit/internal/credential"
	"github.com/agentkit/agentkit/internal/db"
	"github.com/agentkit/agentkit/internal/logging"
	"github.com/agentkit/agentkit/internal/provider"
)

// ErrNotFound is returned when a user has no key for a provider
var ErrNotFound = errors.New("api key not found")

// Info is the displayable view of a stored key. The key itself never leaves
// the manager unmasked except through Get.
type Info struct {
	Provider   string
	MaskedKey  string
	Label      string
	UseCount   int64
	LastUsedAt int64 // unix seconds, 0 if never used
	CreatedAt  int64
}

// Manager stores provider API keys encrypted in the database
type Manager struct {
	store *db.Store
}

// NewManager creates an API key manager over the shared store
func NewManager(store *db.Store) *Manager {
	return &Manager{store: store}
}

// Set validates, encrypts, and stores a key for (userID, provider),
// replacing any existing one. Returns the masked key for display.
func (m *Manager) Set(ctx context.Context, userID, providerID, key, label string) (string, error) {
	if _, ok := provider.GetProvider(providerID); !ok {
		return "", fmt.Errorf("unsupported provider %q", providerID)
	}
	if ok, reason := provider.ValidateKeyFormat(providerID, key); !ok {
		return "", fmt.Errorf("invalid key format: %s", reason)
	}

	encrypted, err := credential.Encrypt(key)
	if err != nil {
		return "", fmt.Errorf("failed to encrypt key: %w", err)
	}

	err = m.store.UpsertAPIKey(ctx, db.UpsertAPIKeyParams{
		UserID:       userID,
		Provider:     providerID,
		EncryptedKey: encrypted,
		Label:        label,
	})
	if err != nil {
		return "", err
	}
	return provider.MaskKey(key), nil
}

// Get returns the decrypted key for (userID, provider)
func (m *Manager) Get(ctx context.Context, userID, providerID string) (string, error) {
	row, err := m.store.GetAPIKey(ctx, userID, providerID)
	if errors.Is(err, db.ErrNotFound) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", err
	}
	key, err := credential.Decrypt(row.EncryptedKey)
	if err != nil {
		return "", fmt.Errorf("failed to decrypt key for %s: %w", providerID, err)
	}
	return key, nil
}

// List returns masked views of all the user's keys
func (m *Manager) List(ctx context.Context, userID string) ([]Info, error) {
	rows, err := m.store.ListAPIKeys(ctx, userID)
	if err != nil {
		return nil, err
	}

	out := make([]Info, 0, len(rows))
	for _, row := range rows {
		masked := "********"
		if key, err := credential.Decrypt(row.EncryptedKey); err == nil {
			masked = provider.MaskKey(key)
		} else {
			logging.Warnf("apikey: cannot decrypt stored key for %s/%s: %v", userID, row.Provider, err)
		}
		info := Info{
			Provider:  row.Provider,
			MaskedKey: masked,
			Label:     row.Label,
			UseCount:  row.UseCount,
			CreatedAt: row.CreatedAt.Unix(),
		}
		if row.LastUsedAt.Valid {
			info.LastUsedAt = row.LastUsedAt.Int64
		}
		out = append(out, info)
	}
	return out, nil
}

// Delete removes the user's key for a provider. Returns ErrNotFound if none
// was stored.
func (m *Manager) Delete(ctx context.Context, userID, providerID string) error {
	n, err := m.store.DeleteAPIKey(ctx, userID, providerID)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// TouchUsage bumps the key's usage counter after a successful provider call.
// Best effort: failures are logged, never surfaced.
func (m *Manager) TouchUsage(ctx context.Context, userID, providerID string) {
	if err := m.store.TouchAPIKeyUsage(ctx, userID, providerID); err != nil {
		logging.Warnf("apikey: failed to record usage for %s/%s: %v", userID, providerID, err)
	}
}
