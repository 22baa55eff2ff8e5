package chat

import (
	"github.com/agentkit/agentkit/internal/provider"
)

// DefaultWindow is the default number of past exchanges carried as context
const DefaultWindow = 3

// BuildWindow assembles the ordered message sequence for one model call:
// the last k exchanges with the target persona as alternating user/assistant
// messages in chronological order, followed by the new user message. Turns
// belonging to other personas are never included. Pure function; the input
// history is not mutated.
func BuildWindow(history []Turn, personaName string, k int, newMessage string) []provider.Message {
	if k <= 0 {
		k = DefaultWindow
	}

	var matched []Turn
	for _, turn := range history {
		if turn.PersonaName == personaName {
			matched = append(matched, turn)
		}
	}
	if len(matched) > k {
		matched = matched[len(matched)-k:]
	}

	out := make([]provider.Message, 0, len(matched)*2+1)
	for _, turn := range matched {
		out = append(out,
			provider.Message{Role: "user", Content: turn.UserMessage},
			provider.Message{Role: "assistant", Content: turn.AgentResponse},
		)
	}
	return append(out, provider.Message{Role: "user", Content: newMessage})
}

// TrimToBudget drops the oldest exchanges until the window plus system prompt
// fits the token budget. The trailing new-message entry is always kept, even
// if it alone exceeds the budget. Budget <= 0 means unlimited.
func TrimToBudget(counter *TokenCounter, system string, window []provider.Message, budget int) []provider.Message {
	if budget <= 0 || len(window) == 0 {
		return window
	}

	systemTokens := counter.CountText(system)
	for len(window) > 1 {
		if systemTokens+counter.CountMessages(window) <= budget {
			break
		}
		// Drop the oldest exchange (user + assistant pair)
		drop := 2
		if len(window)-drop < 1 {
			drop = len(window) - 1
		}
		window = window[drop:]
	}
	return window
}
