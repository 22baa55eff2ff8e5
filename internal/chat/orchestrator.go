package chat

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/agentkit/agentkit/internal/apikey"
	"github.com/agentkit/agentkit/internal/db"
	"github.com/agentkit/agentkit/internal/logging"
	"github.com/agentkit/agentkit/internal/persona"
	"github.com/agentkit/agentkit/internal/provider"
)

var (
	// ErrEmptyMessage is returned when the user message is blank
	ErrEmptyMessage = errors.New("message must not be empty")
	// ErrUnknownModel is returned when no provider serves the requested model
	ErrUnknownModel = errors.New("unknown model")
	// ErrNoAPIKey is returned when the user has no key for the model's provider
	ErrNoAPIKey = errors.New("no API key configured for provider")
)

// Defaults are the config-level fallbacks applied when neither the request
// nor the user's preferences specify a value.
type Defaults struct {
	Model       string
	Temperature float64
	MaxTokens   int
	Window      int // past exchanges carried as context
	TokenBudget int // prompt token ceiling, 0 disables trimming
}

// SendRequest is one inbound chat message
type SendRequest struct {
	Agent   string
	Message string
	Model   string
	// Temperature is a fallback used only when the resolved persona does not
	// define its own value.
	Temperature *float64
}

// SendResult is the completed exchange
type SendResult struct {
	Agent        string
	Reply        string
	Model        string
	PromptTokens int
	ReplyTokens  int
}

// providerFactory builds a Provider for a provider ID and API key.
// Swappable in tests.
type providerFactory func(id, apiKey string) (provider.Provider, error)

// Orchestrator composes persona prompt, trimmed history, and the new user
// message into one provider call, then records the exchange.
type Orchestrator struct {
	registry *persona.Registry
	history  *History
	keys     *apikey.Manager
	store    *db.Store
	defaults Defaults
	factory  providerFactory
}

// NewOrchestrator wires the chat pipeline
func NewOrchestrator(registry *persona.Registry, history *History, keys *apikey.Manager, store *db.Store, defaults Defaults) *Orchestrator {
	if defaults.Window <= 0 {
		defaults.Window = DefaultWindow
	}
	return &Orchestrator{
		registry: registry,
		history:  history,
		keys:     keys,
		store:    store,
		defaults: defaults,
		factory:  provider.New,
	}
}

// History exposes the underlying history store
func (o *Orchestrator) History() *History {
	return o.history
}

// SendMessage runs one full chat turn for a user. Provider failures come
// back as *provider.ProviderError so callers can classify them.
func (o *Orchestrator) SendMessage(ctx context.Context, userID string, req SendRequest) (*SendResult, error) {
	if strings.TrimSpace(req.Message) == "" {
		return nil, ErrEmptyMessage
	}

	prefs := o.preferences(ctx, userID)

	model := req.Model
	if model == "" {
		model = prefs.DefaultModel
	}
	if model == "" {
		model = o.defaults.Model
	}

	providerID, ok := provider.ProviderForModel(model)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownModel, model)
	}

	key, err := o.keys.Get(ctx, userID, providerID)
	if errors.Is(err, apikey.ErrNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrNoAPIKey, providerID)
	}
	if err != nil {
		return nil, err
	}

	// Temperature precedence: persona's own value, then the request override,
	// then the user preference, then the config default.
	fallbackTemp := o.defaults.Temperature
	if prefs.DefaultTemperature > 0 {
		fallbackTemp = prefs.DefaultTemperature
	}
	if req.Temperature != nil {
		fallbackTemp = persona.ClampTemperature(*req.Temperature)
	}
	prompt := o.registry.Prompt(ctx, userID, req.Agent, fallbackTemp)

	past := o.history.ForPersona(ctx, userID, req.Agent, 0)
	window := BuildWindow(past, req.Agent, o.defaults.Window, req.Message)

	counter := NewTokenCounter(model)
	window = TrimToBudget(counter, prompt.System, window, o.defaults.TokenBudget)

	p, err := o.factory(providerID, key)
	if err != nil {
		return nil, err
	}

	resp, err := p.Complete(ctx, &provider.ChatRequest{
		System:      prompt.System,
		Messages:    window,
		Model:       model,
		Temperature: prompt.Temperature,
		MaxTokens:   o.defaults.MaxTokens,
	})
	if err != nil {
		logging.Errorf("chat: provider %s failed for user %s: %v (%s)",
			providerID, userID, err, provider.ClassifyErrorReason(err))
		return nil, err
	}

	o.keys.TouchUsage(ctx, userID, providerID)

	if prefs.AutoSaveChats {
		turn := Turn{
			PersonaName:   req.Agent,
			UserMessage:   req.Message,
			AgentResponse: resp.Text,
			Model:         model,
		}
		if err := o.history.Append(ctx, userID, turn); err != nil {
			// The reply already exists; losing the record is not fatal
			logging.Warnf("chat: turn not recorded for user %s: %v", userID, err)
		}
	}

	promptTokens := resp.PromptTokens
	if promptTokens == 0 {
		promptTokens = counter.CountText(prompt.System) + counter.CountMessages(window)
	}
	replyTokens := resp.CompletionTokens
	if replyTokens == 0 {
		replyTokens = counter.CountText(resp.Text)
	}

	return &SendResult{
		Agent:        req.Agent,
		Reply:        resp.Text,
		Model:        model,
		PromptTokens: promptTokens,
		ReplyTokens:  replyTokens,
	}, nil
}

// preferences loads the user's stored preferences, falling back to defaults
func (o *Orchestrator) preferences(ctx context.Context, userID string) db.PreferencesRow {
	fallback := db.PreferencesRow{
		UserID:             userID,
		DefaultTemperature: 0, // config default applies
		AutoSaveChats:      true,
	}
	if o.store == nil {
		return fallback
	}
	prefs, err := o.store.GetPreferences(ctx, userID)
	if errors.Is(err, db.ErrNotFound) {
		return fallback
	}
	if err != nil {
		logging.Warnf("chat: failed to load preferences for user %s: %v", userID, err)
		return fallback
	}
	return prefs
}
