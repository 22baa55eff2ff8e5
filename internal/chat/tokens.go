package chat

import (
	"sync"
	"unicode/utf8"

	"github.com/pkoukk/tiktoken-go"

	"github.com/agentkit/agentkit/internal/logging"
	"github.com/agentkit/agentkit/internal/provider"
)

// Per-message framing overhead in the chat completions format
const tokensPerMessage = 4

// TokenCounter counts prompt tokens for budget enforcement. Encodings are
// resolved per model with cl100k_base as the fallback; if no encoding can be
// loaded at all, a character-based estimate keeps the budget working.
type TokenCounter struct {
	model string

	once sync.Once
	enc  *tiktoken.Tiktoken
}

// NewTokenCounter creates a counter for the given model
func NewTokenCounter(model string) *TokenCounter {
	return &TokenCounter{model: model}
}

func (c *TokenCounter) encoding() *tiktoken.Tiktoken {
	c.once.Do(func() {
		enc, err := tiktoken.EncodingForModel(c.model)
		if err != nil {
			enc, err = tiktoken.GetEncoding("cl100k_base")
		}
		if err != nil {
			logging.Warnf("chat: no token encoding available for %q, using estimate: %v", c.model, err)
			return
		}
		c.enc = enc
	})
	return c.enc
}

// CountText returns the token count of one text fragment
func (c *TokenCounter) CountText(text string) int {
	if text == "" {
		return 0
	}
	if enc := c.encoding(); enc != nil {
		return len(enc.Encode(text, nil, nil))
	}
	// Rough fallback: one token per four characters
	return (utf8.RuneCountInString(text) + 3) / 4
}

// CountMessages returns the token count of a message sequence including
// per-message framing overhead.
func (c *TokenCounter) CountMessages(messages []provider.Message) int {
	total := 0
	for _, m := range messages {
		total += tokensPerMessage + c.CountText(m.Content)
	}
	return total
}
