package types

// ---------------------------------------------------------------------------
// Auth

type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name,omitempty"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AuthResponse struct {
	Token        string   `json:"token"`
	RefreshToken string   `json:"refreshToken"`
	ExpiresIn    int64    `json:"expiresIn"`
	User         UserInfo `json:"user"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

type LogoutRequest struct {
	RefreshToken string `json:"refreshToken,omitempty"`
}

type LogoutResponse struct {
	Success bool `json:"success"`
}

type UserInfo struct {
	Id        string `json:"id"`
	Email     string `json:"email"`
	Name      string `json:"name,omitempty"`
	CreatedAt string `json:"createdAt"`
}

// ---------------------------------------------------------------------------
// Personas

type PersonaInfo struct {
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	Emoji        string   `json:"emoji,omitempty"`
	Category     string   `json:"category"`
	Temperature  float64  `json:"temperature"`
	Specialties  []string `json:"specialties"`
	QuickActions []string `json:"quickActions,omitempty"`
	IsCustom     bool     `json:"isCustom"`
	CreatedAt    string   `json:"createdAt,omitempty"`
	UpdatedAt    string   `json:"updatedAt,omitempty"`
}

type ListPersonasRequest struct {
	Category string `form:"category"`
}

type ListPersonasResponse struct {
	Personas []PersonaInfo `json:"personas"`
	Total    int           `json:"total"`
}

type PersonaCategoriesResponse struct {
	Categories map[string][]string `json:"categories"`
}

type GetPersonaRequest struct {
	Name string `path:"name"`
}

type CreatePersonaRequest struct {
	Name         string   `json:"name"`
	Description  string   `json:"description,omitempty"`
	Emoji        string   `json:"emoji,omitempty"`
	Category     string   `json:"category,omitempty"`
	Specialties  []string `json:"specialties,omitempty"`
	QuickActions []string `json:"quickActions,omitempty"`
	SystemPrompt string   `json:"systemPrompt,omitempty"`
	Temperature  *float64 `json:"temperature,omitempty"`
}

type UpdatePersonaRequest struct {
	Name         string   `path:"name"`
	Description  string   `json:"description,omitempty"`
	Emoji        string   `json:"emoji,omitempty"`
	Category     string   `json:"category,omitempty"`
	Specialties  []string `json:"specialties,omitempty"`
	QuickActions []string `json:"quickActions,omitempty"`
	SystemPrompt string   `json:"systemPrompt,omitempty"`
	Temperature  *float64 `json:"temperature,omitempty"`
}

type DeletePersonaRequest struct {
	Name string `path:"name"`
}

type DeletePersonaResponse struct {
	Success bool `json:"success"`
}

type GetPersonaPromptRequest struct {
	Name string `path:"name"`
}

type GetPersonaPromptResponse struct {
	Name         string  `json:"name"`
	SystemPrompt string  `json:"systemPrompt"`
	Temperature  float64 `json:"temperature"`
	Source       string  `json:"source"` // builtin, custom, fallback
}

// ---------------------------------------------------------------------------
// Chat

type SendMessageRequest struct {
	Agent       string   `json:"agent"`
	Message     string   `json:"message"`
	Model       string   `json:"model,omitempty"`
	Temperature *float64 `json:"temperature,omitempty"`
}

type SendMessageResponse struct {
	Agent        string `json:"agent"`
	Reply        string `json:"reply"`
	Model        string `json:"model"`
	PromptTokens int    `json:"promptTokens,omitempty"`
	ReplyTokens  int    `json:"replyTokens,omitempty"`
}

type ChatTurn struct {
	Agent     string `json:"agent"`
	Message   string `json:"message"`
	Response  string `json:"response"`
	Model     string `json:"model,omitempty"`
	CreatedAt string `json:"createdAt"`
}

type GetHistoryRequest struct {
	Agent string `form:"agent"`
	Limit int    `form:"limit"`
}

type GetHistoryResponse struct {
	Agent string     `json:"agent"`
	Turns []ChatTurn `json:"turns"`
	Total int        `json:"total"`
}

type ClearHistoryRequest struct {
	Agent string `form:"agent"`
}

type ClearHistoryResponse struct {
	Success bool  `json:"success"`
	Removed int64 `json:"removed"`
}

// ---------------------------------------------------------------------------
// API keys

type APIKeyInfo struct {
	Provider   string `json:"provider"`
	MaskedKey  string `json:"maskedKey"`
	Label      string `json:"label,omitempty"`
	UseCount   int64  `json:"useCount"`
	LastUsedAt string `json:"lastUsedAt,omitempty"`
	CreatedAt  string `json:"createdAt"`
}

type ListAPIKeysResponse struct {
	Keys []APIKeyInfo `json:"keys"`
}

type SetAPIKeyRequest struct {
	Provider string `path:"provider"`
	Key      string `json:"key"`
	Label    string `json:"label,omitempty"`
}

type SetAPIKeyResponse struct {
	Provider  string `json:"provider"`
	MaskedKey string `json:"maskedKey"`
}

type DeleteAPIKeyRequest struct {
	Provider string `path:"provider"`
}

type DeleteAPIKeyResponse struct {
	Success bool `json:"success"`
}

type ValidateAPIKeyRequest struct {
	Provider string `path:"provider"`
	Key      string `json:"key"`
}

type ValidateAPIKeyResponse struct {
	Provider string `json:"provider"`
	Valid    bool   `json:"valid"`
	Reason   string `json:"reason,omitempty"`
}

// ---------------------------------------------------------------------------
// User preferences

type Preferences struct {
	DefaultModel       string  `json:"defaultModel"`
	DefaultTemperature float64 `json:"defaultTemperature"`
	ChatHistoryLimit   int     `json:"chatHistoryLimit"`
	AutoSaveChats      bool    `json:"autoSaveChats"`
}

type UpdatePreferencesRequest struct {
	DefaultModel       *string  `json:"defaultModel,omitempty"`
	DefaultTemperature *float64 `json:"defaultTemperature,omitempty"`
	ChatHistoryLimit   *int     `json:"chatHistoryLimit,omitempty"`
	AutoSaveChats      *bool    `json:"autoSaveChats,omitempty"`
}

// ---------------------------------------------------------------------------
// Providers

type ModelInfo struct {
	Id       string `json:"id"`
	Provider string `json:"provider"`
	Label    string `json:"label"`
}

type ListModelsResponse struct {
	Models []ModelInfo `json:"models"`
}

type ProviderInfo struct {
	Id     string   `json:"id"`
	Name   string   `json:"name"`
	Icon   string   `json:"icon,omitempty"`
	Models []string `json:"models"`
	HasKey bool     `json:"hasKey"`
}

type ListProvidersResponse struct {
	Providers []ProviderInfo `json:"providers"`
}

// ---------------------------------------------------------------------------
// Health

type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}
