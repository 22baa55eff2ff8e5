package db

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

// ErrNotFound is returned when a requested row does not exist
var ErrNotFound = errors.New("not found")

// Store wraps the database connection with typed query methods
type Store struct {
	db *sql.DB
}

// NewStore creates a Store from an open database connection
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// DB returns the underlying database connection for sharing with other components
func (s *Store) DB() *sql.DB {
	return s.db
}

// Close closes the database connection
func (s *Store) Close() error {
	return s.db.Close()
}

// -----------------------------------------------------------------------------
// Users

type User struct {
	ID           string
	Email        string
	Name         string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type CreateUserParams struct {
	ID           string
	Email        string
	Name         string
	PasswordHash string
}

func (s *Store) CreateUser(ctx context.Context, p CreateUserParams) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO users (id, email, name, password_hash) VALUES (?, ?, ?, ?)`,
		p.ID, p.Email, p.Name, p.PasswordHash,
	)
	return err
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (User, error) {
	return s.scanUser(s.db.QueryRowContext(ctx,
		`SELECT id, email, name, password_hash, created_at, updated_at FROM users WHERE email = ?`,
		email,
	))
}

func (s *Store) GetUserByID(ctx context.Context, id string) (User, error) {
	return s.scanUser(s.db.QueryRowContext(ctx,
		`SELECT id, email, name, password_hash, created_at, updated_at FROM users WHERE id = ?`,
		id,
	))
}

func (s *Store) scanUser(row *sql.Row) (User, error) {
	var u User
	var created, updated int64
	err := row.Scan(&u.ID, &u.Email, &u.Name, &u.PasswordHash, &created, &updated)
	if errors.Is(err, sql.ErrNoRows) {
		return User{}, ErrNotFound
	}
	if err != nil {
		return User{}, err
	}
	u.CreatedAt = time.Unix(created, 0)
	u.UpdatedAt = time.Unix(updated, 0)
	return u, nil
}

// -----------------------------------------------------------------------------
// Refresh tokens

type RefreshToken struct {
	ID        string
	UserID    string
	TokenHash string
	ExpiresAt time.Time
	RevokedAt sql.NullInt64
	CreatedAt time.Time
}

type CreateRefreshTokenParams struct {
	ID        string
	UserID    string
	TokenHash string
	ExpiresAt time.Time
}

func (s *Store) CreateRefreshToken(ctx context.Context, p CreateRefreshTokenParams) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO refresh_tokens (id, user_id, token_hash, expires_at) VALUES (?, ?, ?, ?)`,
		p.ID, p.UserID, p.TokenHash, p.ExpiresAt.Unix(),
	)
	return err
}

func (s *Store) GetRefreshTokenByHash(ctx context.Context, tokenHash string) (RefreshToken, error) {
	var t RefreshToken
	var expires, created int64
	err := s.db.QueryRowContext(ctx,
		`SELECT id, user_id, token_hash, expires_at, revoked_at, created_at
		 FROM refresh_tokens WHERE token_hash = ?`,
		tokenHash,
	).Scan(&t.ID, &t.UserID, &t.TokenHash, &expires, &t.RevokedAt, &created)
	if errors.Is(err, sql.ErrNoRows) {
		return RefreshToken{}, ErrNotFound
	}
	if err != nil {
		return RefreshToken{}, err
	}
	t.ExpiresAt = time.Unix(expires, 0)
	t.CreatedAt = time.Unix(created, 0)
	return t, nil
}

func (s *Store) RevokeRefreshToken(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE refresh_tokens SET revoked_at = unixepoch() WHERE id = ? AND revoked_at IS NULL`,
		id,
	)
	return err
}

func (s *Store) RevokeRefreshTokensForUser(ctx context.Context, userID string) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE refresh_tokens SET revoked_at = unixepoch() WHERE user_id = ? AND revoked_at IS NULL`,
		userID,
	)
	return err
}

// DeleteExpiredRefreshTokens removes tokens past their expiry. Returns rows deleted.
func (s *Store) DeleteExpiredRefreshTokens(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM refresh_tokens WHERE expires_at < unixepoch()`,
	)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// -----------------------------------------------------------------------------
// Custom personas

type CustomPersonaRow struct {
	UserID       string
	Name         string
	Description  string
	Emoji        string
	Category     string
	Specialties  string // JSON array
	QuickActions string // JSON array
	SystemPrompt string
	Temperature  float64
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type UpsertCustomPersonaParams struct {
	UserID       string
	Name         string
	Description  string
	Emoji        string
	Category     string
	Specialties  string
	QuickActions string
	SystemPrompt string
	Temperature  float64
}

func (s *Store) UpsertCustomPersona(ctx context.Context, p UpsertCustomPersonaParams) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO custom_personas
		   (user_id, name, description, emoji, category, specialties,
		    quick_actions, system_prompt, temperature)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(user_id, name) DO UPDATE SET
		   description = excluded.description,
		   emoji = excluded.emoji,
		   category = excluded.category,
		   specialties = excluded.specialties,
		   quick_actions = excluded.quick_actions,
		   system_prompt = excluded.system_prompt,
		   temperature = excluded.temperature,
		   updated_at = unixepoch()`,
		p.UserID, p.Name, p.Description, p.Emoji, p.Category,
		p.Specialties, p.QuickActions, p.SystemPrompt, p.Temperature,
	)
	return err
}

func (s *Store) ListCustomPersonas(ctx context.Context, userID string) ([]CustomPersonaRow, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT user_id, name, description, emoji, category, specialties,
		        quick_actions, system_prompt, temperature, created_at, updated_at
		 FROM custom_personas WHERE user_id = ? ORDER BY name`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []CustomPersonaRow
	for rows.Next() {
		var r CustomPersonaRow
		var created, updated int64
		if err := rows.Scan(&r.UserID, &r.Name, &r.Description, &r.Emoji,
			&r.Category, &r.Specialties, &r.QuickActions,
			&r.SystemPrompt, &r.Temperature, &created, &updated); err != nil {
			return nil, err
		}
		r.CreatedAt = time.Unix(created, 0)
		r.UpdatedAt = time.Unix(updated, 0)
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *Store) DeleteCustomPersona(ctx context.Context, userID, name string) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM custom_personas WHERE user_id = ? AND name = ?`,
		userID, name,
	)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// -----------------------------------------------------------------------------
// Chat turns

type ChatTurnRow struct {
	ID            int64
	UserID        string
	PersonaName   string
	UserMessage   string
	AgentResponse string
	Model         string
	CreatedAt     time.Time
}

type AppendChatTurnParams struct {
	UserID        string
	PersonaName   string
	UserMessage   string
	AgentResponse string
	Model         string
}

func (s *Store) AppendChatTurn(ctx context.Context, p AppendChatTurnParams) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO chat_turns (user_id, persona_name, user_message, agent_response, model)
		 VALUES (?, ?, ?, ?, ?)`,
		p.UserID, p.PersonaName, p.UserMessage, p.AgentResponse, p.Model,
	)
	return err
}

type ListChatTurnsParams struct {
	UserID      string
	PersonaName string // empty matches all personas
	Limit       int
}

// ListChatTurns returns the most recent turns in chronological order.
// Limit <= 0 means no limit.
func (s *Store) ListChatTurns(ctx context.Context, p ListChatTurnsParams) ([]ChatTurnRow, error) {
	limit := p.Limit
	if limit <= 0 {
		limit = -1 // SQLite: no limit
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, user_id, persona_name, user_message, agent_response, model, created_at FROM (
		   SELECT id, user_id, persona_name, user_message, agent_response, model, created_at
		   FROM chat_turns WHERE user_id = ? AND (? = '' OR persona_name = ?)
		   ORDER BY id DESC LIMIT ?
		 ) ORDER BY id ASC`,
		p.UserID, p.PersonaName, p.PersonaName, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ChatTurnRow
	for rows.Next() {
		var r ChatTurnRow
		var created int64
		if err := rows.Scan(&r.ID, &r.UserID, &r.PersonaName, &r.UserMessage,
			&r.AgentResponse, &r.Model, &created); err != nil {
			return nil, err
		}
		r.CreatedAt = time.Unix(created, 0)
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *Store) ClearChatTurns(ctx context.Context, userID, personaName string) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM chat_turns WHERE user_id = ? AND (? = '' OR persona_name = ?)`,
		userID, personaName, personaName,
	)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// -----------------------------------------------------------------------------
// API keys

type APIKeyRow struct {
	UserID       string
	Provider     string
	EncryptedKey string
	Label        string
	UseCount     int64
	LastUsedAt   sql.NullInt64
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type UpsertAPIKeyParams struct {
	UserID       string
	Provider     string
	EncryptedKey string
	Label        string
}

func (s *Store) UpsertAPIKey(ctx context.Context, p UpsertAPIKeyParams) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO api_keys (user_id, provider, encrypted_key, label)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT(user_id, provider) DO UPDATE SET
		   encrypted_key = excluded.encrypted_key,
		   label = excluded.label,
		   updated_at = unixepoch()`,
		p.UserID, p.Provider, p.EncryptedKey, p.Label,
	)
	return err
}

func (s *Store) GetAPIKey(ctx context.Context, userID, provider string) (APIKeyRow, error) {
	var r APIKeyRow
	var created, updated int64
	err := s.db.QueryRowContext(ctx,
		`SELECT user_id, provider, encrypted_key, label, use_count, last_used_at, created_at, updated_at
		 FROM api_keys WHERE user_id = ? AND provider = ?`,
		userID, provider,
	).Scan(&r.UserID, &r.Provider, &r.EncryptedKey, &r.Label, &r.UseCount, &r.LastUsedAt, &created, &updated)
	if errors.Is(err, sql.ErrNoRows) {
		return APIKeyRow{}, ErrNotFound
	}
	if err != nil {
		return APIKeyRow{}, err
	}
	r.CreatedAt = time.Unix(created, 0)
	r.UpdatedAt = time.Unix(updated, 0)
	return r, nil
}

func (s *Store) ListAPIKeys(ctx context.Context, userID string) ([]APIKeyRow, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT user_id, provider, encrypted_key, label, use_count, last_used_at, created_at, updated_at
		 FROM api_keys WHERE user_id = ? ORDER BY provider`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []APIKeyRow
	for rows.Next() {
		var r APIKeyRow
		var created, updated int64
		if err := rows.Scan(&r.UserID, &r.Provider, &r.EncryptedKey, &r.Label,
			&r.UseCount, &r.LastUsedAt, &created, &updated); err != nil {
			return nil, err
		}
		r.CreatedAt = time.Unix(created, 0)
		r.UpdatedAt = time.Unix(updated, 0)
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *Store) DeleteAPIKey(ctx context.Context, userID, provider string) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM api_keys WHERE user_id = ? AND provider = ?`,
		userID, provider,
	)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// TouchAPIKeyUsage bumps the usage counter and last-used timestamp for a key
func (s *Store) TouchAPIKeyUsage(ctx context.Context, userID, provider string) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE api_keys SET use_count = use_count + 1, last_used_at = unixepoch()
		 WHERE user_id = ? AND provider = ?`,
		userID, provider,
	)
	return err
}

// -----------------------------------------------------------------------------
// User preferences

type PreferencesRow struct {
	UserID             string
	DefaultModel       string
	DefaultTemperature float64
	ChatHistoryLimit   int64
	AutoSaveChats      bool
	UpdatedAt          time.Time
}

type UpsertPreferencesParams struct {
	UserID             string
	DefaultModel       string
	DefaultTemperature float64
	ChatHistoryLimit   int64
	AutoSaveChats      bool
}

func (s *Store) GetPreferences(ctx context.Context, userID string) (PreferencesRow, error) {
	var r PreferencesRow
	var autoSave int64
	var updated int64
	err := s.db.QueryRowContext(ctx,
		`SELECT user_id, default_model, default_temperature, chat_history_limit, auto_save_chats, updated_at
		 FROM user_preferences WHERE user_id = ?`,
		userID,
	).Scan(&r.UserID, &r.DefaultModel, &r.DefaultTemperature, &r.ChatHistoryLimit, &autoSave, &updated)
	if errors.Is(err, sql.ErrNoRows) {
		return PreferencesRow{}, ErrNotFound
	}
	if err != nil {
		return PreferencesRow{}, err
	}
	r.AutoSaveChats = autoSave != 0
	r.UpdatedAt = time.Unix(updated, 0)
	return r, nil
}

func (s *Store) UpsertPreferences(ctx context.Context, p UpsertPreferencesParams) error {
	autoSave := 0
	if p.AutoSaveChats {
		autoSave = 1
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO user_preferences
		   (user_id, default_model, default_temperature, chat_history_limit, auto_save_chats)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(user_id) DO UPDATE SET
		   default_model = excluded.default_model,
		   default_temperature = excluded.default_temperature,
		   chat_history_limit = excluded.chat_history_limit,
		   auto_save_chats = excluded.auto_save_chats,
		   updated_at = unixepoch()`,
		p.UserID, p.DefaultModel, p.DefaultTemperature, p.ChatHistoryLimit, autoSave,
	)
	return err
}
