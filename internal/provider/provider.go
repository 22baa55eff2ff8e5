// Package provider wraps the upstream LLM chat APIs behind one narrow
// request/response interface.
package provider

import (
	"context"
	"strings"
)

// Message is one conversation turn sent upstream
type Message struct {
	Role    string `json:"role"` // user or assistant
	Content string `json:"content"`
}

// ChatRequest is a fully resolved completion request
type ChatRequest struct {
	System      string    `json:"system,omitempty"`
	Messages    []Message `json:"messages"`
	Model       string    `json:"model"`
	Temperature float64   `json:"temperature"`
	MaxTokens   int       `json:"max_tokens,omitempty"`
}

// ChatResponse is the assistant's completed reply
type ChatResponse struct {
	Text             string `json:"text"`
	Model            string `json:"model"`
	PromptTokens     int    `json:"prompt_tokens,omitempty"`
	CompletionTokens int    `json:"completion_tokens,omitempty"`
}

// Provider is a single upstream LLM API
type Provider interface {
	// ID returns the provider identifier (e.g., "anthropic", "openai")
	ID() string

	// Complete sends a request and waits for the full response
	Complete(ctx context.Context, req *ChatRequest) (*ChatResponse, error)
}

// ProviderError represents an error from a provider
type ProviderError struct {
	Provider string `json:"provider,omitempty"`
	Code     string `json:"code,omitempty"`
	Type     string `json:"type,omitempty"`
	Message  string `json:"message"`
}

func (e *ProviderError) Error() string {
	return e.Message
}

// ClassifyErrorReason determines the category of a provider error.
// Returns: "billing", "rate_limit", "auth", "timeout", or "other".
func ClassifyErrorReason(err error) string {
	if err == nil {
		return "other"
	}

	if pe, ok := err.(*ProviderError); ok {
		switch pe.Code {
		case "rate_limit_exceeded":
			return "rate_limit"
		case "authentication_error", "invalid_api_key", "unauthorized":
			return "auth"
		case "insufficient_quota", "billing_error", "payment_required":
			return "billing"
		}
		switch pe.Type {
		case "rate_limit_error":
			return "rate_limit"
		case "authentication_error":
			return "auth"
		}
	}

	msg := strings.ToLower(err.Error())

	billingPatterns := []string{
		"billing", "quota", "payment", "credit", "insufficient",
		"subscription", "exceeded your", "spending limit",
	}
	for _, p := range billingPatterns {
		if strings.Contains(msg, p) {
			return "billing"
		}
	}

	rateLimitPatterns := []string{
		"rate limit", "rate_limit", "too many requests", "429",
		"throttle", "throttling", "slow down",
	}
	for _, p := range rateLimitPatterns {
		if strings.Contains(msg, p) {
			return "rate_limit"
		}
	}

	authPatterns := []string{
		"unauthorized", "authentication", "invalid api key", "invalid key",
		"api key", "401", "403", "forbidden",
	}
	for _, p := range authPatterns {
		if strings.Contains(msg, p) {
			return "auth"
		}
	}

	timeoutPatterns := []string{
		"timeout", "timed out", "deadline exceeded", "connection refused",
	}
	for _, p := range timeoutPatterns {
		if strings.Contains(msg, p) {
			return "timeout"
		}
	}

	return "other"
}

// IsRateLimitOrAuth checks if an error is due to rate limiting or auth issues
func IsRateLimitOrAuth(err error) bool {
	reason := ClassifyErrorReason(err)
	return reason == "rate_limit" || reason == "auth"
}

func codeForStatus(status int) string {
	switch status {
	case 401, 403:
		return "authentication_error"
	case 402:
		return "payment_required"
	case 429:
		return "rate_limit_exceeded"
	default:
		return ""
	}
}
