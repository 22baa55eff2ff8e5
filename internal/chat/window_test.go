package chat

import (
	"testing"

	"github.com/agentkit/agentkit/internal/provider"
)

func turn(persona, msg, resp string) Turn {
	return Turn{PersonaName: persona, UserMessage: msg, AgentResponse: resp}
}

func TestBuildWindowFiltersAndOrders(t *testing.T) {
	history := []Turn{
		turn("A", "a1", "r1"),
		turn("B", "b1", "rb1"),
		turn("A", "a2", "r2"),
		turn("A", "a3", "r3"),
		turn("B", "b2", "rb2"),
		turn("A", "a4", "r4"),
	}

	got := BuildWindow(history, "A", 3, "a5")

	// 3 exchanges * 2 messages + the new message
	if len(got) != 7 {
		t.Fatalf("expected 7 messages, got %d", len(got))
	}
	wantContents := []string{"a2", "r2", "a3", "r3", "a4", "r4", "a5"}
	for i, want := range wantContents {
		if got[i].Content != want {
			t.Errorf("message %d = %q, want %q", i, got[i].Content, want)
		}
	}
	for i, m := range got {
		wantRole := "user"
		if i%2 == 1 {
			wantRole = "assistant"
		}
		if m.Role != wantRole {
			t.Errorf("message %d role = %q, want %q", i, m.Role, wantRole)
		}
	}
}

func TestBuildWindowFewerThanK(t *testing.T) {
	history := []Turn{turn("A", "a1", "r1")}
	got := BuildWindow(history, "A", 3, "a2")
	if len(got) != 3 {
		t.Fatalf("expected 3 messages, got %d", len(got))
	}
}

func TestBuildWindowNoHistory(t *testing.T) {
	got := BuildWindow(nil, "A", 3, "hello")
	if len(got) != 1 {
		t.Fatalf("expected just the new message, got %d", len(got))
	}
	if got[0].Role != "user" || got[0].Content != "hello" {
		t.Errorf("unexpected message %+v", got[0])
	}
}

func TestBuildWindowExcludesOtherPersonas(t *testing.T) {
	history := []Turn{
		turn("A", "a1", "r1"), turn("A", "a2", "r2"),
		turn("A", "a3", "r3"), turn("A", "a4", "r4"),
		turn("B", "b1", "rb1"), turn("B", "b2", "rb2"),
	}
	got := BuildWindow(history, "A", 3, "next")
	for _, m := range got {
		if m.Content == "b1" || m.Content == "rb1" || m.Content == "b2" || m.Content == "rb2" {
			t.Errorf("window leaked another persona's turn: %q", m.Content)
		}
	}
}

func TestBuildWindowDoesNotMutateHistory(t *testing.T) {
	history := []Turn{turn("A", "a1", "r1"), turn("A", "a2", "r2")}
	before := len(history)
	_ = BuildWindow(history, "A", 1, "x")
	if len(history) != before || history[0].UserMessage != "a1" {
		t.Error("history mutated")
	}
}

func TestTrimToBudget(t *testing.T) {
	counter := NewTokenCounter("gpt-4")
	window := []provider.Message{
		{Role: "user", Content: "first question about many things"},
		{Role: "assistant", Content: "first answer with plenty of words in it"},
		{Role: "user", Content: "second question"},
		{Role: "assistant", Content: "second answer"},
		{Role: "user", Content: "new message"},
	}

	// Unlimited budget keeps everything
	if got := TrimToBudget(counter, "system", window, 0); len(got) != 5 {
		t.Errorf("unlimited budget trimmed to %d", len(got))
	}

	// Tiny budget keeps at least the new message
	got := TrimToBudget(counter, "system", window, 1)
	if len(got) != 1 {
		t.Fatalf("expected only the new message, got %d", len(got))
	}
	if got[0].Content != "new message" {
		t.Errorf("kept wrong message %q", got[0].Content)
	}
}

func TestTokenCounterMonotonic(t *testing.T) {
	counter := NewTokenCounter("gpt-4")
	short := counter.CountText("hi")
	long := counter.CountText("this is a much longer piece of text with many more words in it")
	if short <= 0 || long <= short {
		t.Errorf("counts not sensible: short=%d long=%d", short, long)
	}
}
