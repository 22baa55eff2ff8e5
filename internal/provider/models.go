package provider

import (
	"fmt"
	"strings"
)

// ProviderInfo describes one supported upstream provider
type ProviderInfo struct {
	ID      string
	Name    string
	Icon    string
	Models  []string
	BaseURL string // OpenAI-compatible endpoint, empty for native SDKs
}

// supportedProviders is the fixed provider catalog, in display order
var supportedProviders = []ProviderInfo{
	{
		ID:     "openai",
		Name:   "OpenAI",
		Icon:   "🤖",
		Models: []string{"gpt-4", "gpt-4-turbo", "gpt-3.5-turbo"},
	},
	{
		ID:     "anthropic",
		Name:   "Anthropic",
		Icon:   "🧠",
		Models: []string{"claude-3-opus", "claude-3-sonnet", "claude-3-haiku"},
	},
	{
		ID:     "google",
		Name:   "Google AI",
		Icon:   "🔍",
		Models: []string{"gemini-pro", "gemini-pro-vision"},
	},
	{
		ID:      "deepseek",
		Name:    "DeepSeek",
		Icon:    "🌊",
		Models:  []string{"deepseek-chat", "deepseek-coder"},
		BaseURL: "https://api.deepseek.com/v1",
	},
	{
		ID:      "groq",
		Name:    "Groq",
		Icon:    "⚡",
		Models:  []string{"llama2-70b-4096", "mixtral-8x7b-32768"},
		BaseURL: "https://api.groq.com/openai/v1",
	},
}

// ListProviders returns the provider catalog in display order
func ListProviders() []ProviderInfo {
	return append([]ProviderInfo(nil), supportedProviders...)
}

// GetProvider looks up a provider by ID
func GetProvider(id string) (ProviderInfo, bool) {
	for _, p := range supportedProviders {
		if p.ID == id {
			return p, true
		}
	}
	return ProviderInfo{}, false
}

// ProviderForModel maps a model ID to the provider that serves it
func ProviderForModel(model string) (string, bool) {
	for _, p := range supportedProviders {
		for _, m := range p.Models {
			if m == model {
				return p.ID, true
			}
		}
	}
	return "", false
}

// New constructs a Provider for the given provider ID and API key
func New(id, apiKey string) (Provider, error) {
	switch id {
	case "openai":
		return NewOpenAIProvider(apiKey), nil
	case "anthropic":
		return NewAnthropicProvider(apiKey), nil
	case "google":
		return NewGeminiProvider(apiKey), nil
	case "deepseek", "groq":
		info, _ := GetProvider(id)
		return NewOpenAICompatProvider(id, apiKey, info.BaseURL), nil
	default:
		return nil, fmt.Errorf("unsupported provider %q", id)
	}
}

// ValidateKeyFormat checks the shape of an API key for a provider without
// calling the provider. Returns ok plus a human-readable reason.
func ValidateKeyFormat(providerID, apiKey string) (bool, string) {
	if len(strings.TrimSpace(apiKey)) < 10 {
		return false, "API key is too short"
	}

	switch providerID {
	case "openai":
		if !strings.HasPrefix(apiKey, "sk-") {
			return false, "OpenAI API keys should start with 'sk-'"
		}
	case "anthropic":
		if !strings.HasPrefix(apiKey, "sk-ant-") {
			return false, "Anthropic API keys should start with 'sk-ant-'"
		}
	case "google":
		if len(apiKey) < 20 {
			return false, "Google API keys should be at least 20 characters"
		}
	}

	return true, "Valid format"
}

// MaskKey renders an API key safe for display: first four and last four
// characters with the middle elided.
func MaskKey(apiKey string) string {
	if len(apiKey) <= 8 {
		return strings.Repeat("*", len(apiKey))
	}
	return apiKey[:4] + "..." + apiKey[len(apiKey)-4:]
}
