package provider

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestClassifyErrorReason(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, "other"},
		{"rate limit code", &ProviderError{Code: "rate_limit_exceeded"}, "rate_limit"},
		{"auth code", &ProviderError{Code: "invalid_api_key"}, "auth"},
		{"billing code", &ProviderError{Code: "insufficient_quota"}, "billing"},
		{"rate limit type", &ProviderError{Type: "rate_limit_error"}, "rate_limit"},
		{"billing message", errors.New("you have exceeded your current quota"), "billing"},
		{"rate limit message", errors.New("429 Too Many Requests"), "rate_limit"},
		{"auth message", errors.New("invalid api key provided"), "auth"},
		{"timeout message", errors.New("context deadline exceeded"), "timeout"},
		{"unknown", errors.New("something odd"), "other"},
	}
	for _, tt := range tests {
		if got := ClassifyErrorReason(tt.err); got != tt.want {
			t.Errorf("%s: ClassifyErrorReason = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestProviderForModel(t *testing.T) {
	if id, ok := ProviderForModel("gpt-4"); !ok || id != "openai" {
		t.Errorf("gpt-4 -> %q, %v", id, ok)
	}
	if id, ok := ProviderForModel("claude-3-opus"); !ok || id != "anthropic" {
		t.Errorf("claude-3-opus -> %q, %v", id, ok)
	}
	if id, ok := ProviderForModel("gemini-pro"); !ok || id != "google" {
		t.Errorf("gemini-pro -> %q, %v", id, ok)
	}
	if _, ok := ProviderForModel("made-up-model"); ok {
		t.Error("unknown model resolved to a provider")
	}
}

func TestValidateKeyFormat(t *testing.T) {
	tests := []struct {
		provider string
		key      string
		ok       bool
	}{
		{"openai", "sk-abcdefghijklmnop", true},
		{"openai", "pk-abcdefghijklmnop", false},
		{"openai", "sk-short", false},
		{"anthropic", "sk-ant-abcdefghijklmnop", true},
		{"anthropic", "sk-abcdefghijklmnop", false},
		{"google", "AIzaSyABCDEFGHIJKLMNOPQRS", true},
		{"google", "AIzaShort123", false},
		{"deepseek", "whatever-long-enough", true},
	}
	for _, tt := range tests {
		ok, reason := ValidateKeyFormat(tt.provider, tt.key)
		if ok != tt.ok {
			t.Errorf("ValidateKeyFormat(%s, %s) = %v (%s), want %v", tt.provider, tt.key, ok, reason, tt.ok)
		}
	}
}

func TestMaskKey(t *testing.T) {
	if got := MaskKey("sk-abcdefghijklmnop1234"); got != "sk-a...1234" {
		t.Errorf("MaskKey = %q", got)
	}
	if got := MaskKey("short"); got != "*****" {
		t.Errorf("MaskKey short = %q", got)
	}
}

func TestNewUnsupportedProvider(t *testing.T) {
	if _, err := New("cohere", "key"); err == nil {
		t.Error("expected error for unsupported provider")
	}
}

func TestGeminiComplete(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req geminiRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("bad request body: %v", err)
		}
		if req.SystemInstruction == nil || req.SystemInstruction.Parts[0].Text != "You are Test." {
			t.Error("system instruction not forwarded")
		}
		if len(req.Contents) != 3 || req.Contents[1].Role != "model" {
			t.Errorf("unexpected contents: %+v", req.Contents)
		}

		resp := geminiResponse{}
		resp.Candidates = []struct {
			Content geminiContent `json:"content"`
		}{
			{Content: geminiContent{Role: "model", Parts: []geminiPart{{Text: "hello "}, {Text: "there"}}}},
		}
		resp.UsageMetadata.PromptTokenCount = 12
		resp.UsageMetadata.CandidatesTokenCount = 2
		json.NewEncoder(w).Encode(resp)
	}))
	defer srv.Close()

	p := NewGeminiProvider("test-key")
	p.baseURL = srv.URL

	got, err := p.Complete(context.Background(), &ChatRequest{
		System: "You are Test.",
		Messages: []Message{
			{Role: "user", Content: "hi"},
			{Role: "assistant", Content: "yes?"},
			{Role: "user", Content: "hello?"},
		},
		Model:       "gemini-pro",
		Temperature: 0.7,
	})
	if err != nil {
		t.Fatalf("Complete failed: %v", err)
	}
	if got.Text != "hello there" {
		t.Errorf("unexpected text %q", got.Text)
	}
	if got.PromptTokens != 12 || got.CompletionTokens != 2 {
		t.Errorf("usage not parsed: %+v", got)
	}
}

func TestGeminiCompleteError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error":{"code":429,"message":"Resource has been exhausted","status":"RESOURCE_EXHAUSTED"}}`))
	}))
	defer srv.Close()

	p := NewGeminiProvider("test-key")
	p.baseURL = srv.URL

	_, err := p.Complete(context.Background(), &ChatRequest{Model: "gemini-pro"})
	if err == nil {
		t.Fatal("expected error")
	}
	var pe *ProviderError
	if !errors.As(err, &pe) {
		t.Fatalf("expected ProviderError, got %T", err)
	}
	if ClassifyErrorReason(err) != "rate_limit" {
		t.Errorf("429 not classified as rate_limit: %v", err)
	}
}
