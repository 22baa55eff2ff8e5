package config

import (
	"os"
	"testing"
)

func TestLoadFromBytes(t *testing.T) {
	yaml := []byte(`
Port: 9000
Auth:
  AccessSecret: test-secret
  AccessExpire: 3600
Database:
  SQLitePath: /tmp/agentkit-test/agentkit.db
Chat:
  DefaultModel: gpt-4
  DefaultTemperature: 0.5
`)
	c, err := LoadFromBytes(yaml)
	if err != nil {
		t.Fatalf("LoadFromBytes failed: %v", err)
	}
	if c.Port != 9000 {
		t.Errorf("Port = %d, want 9000", c.Port)
	}
	if c.Auth.AccessSecret != "test-secret" {
		t.Errorf("AccessSecret = %q", c.Auth.AccessSecret)
	}
	if c.Chat.DefaultTemperature != 0.5 {
		t.Errorf("DefaultTemperature = %v, want 0.5", c.Chat.DefaultTemperature)
	}
	if c.DataDir() != "/tmp/agentkit-test" {
		t.Errorf("DataDir = %q", c.DataDir())
	}
}

func TestLoadFromBytesDefaults(t *testing.T) {
	c, err := LoadFromBytes([]byte("App:\n  Name: agentkit\n"))
	if err != nil {
		t.Fatalf("LoadFromBytes failed: %v", err)
	}
	if c.Port != 27459 {
		t.Errorf("default Port = %d", c.Port)
	}
	if c.Chat.MaxTokens != 1500 {
		t.Errorf("default MaxTokens = %d", c.Chat.MaxTokens)
	}
	if c.Chat.HistoryWindow != 3 {
		t.Errorf("default HistoryWindow = %d", c.Chat.HistoryWindow)
	}
	if !c.IsRateLimitEnabled() {
		t.Error("rate limit should default to enabled")
	}
	if c.IsDemoMode() {
		t.Error("demo mode should default to disabled")
	}
}

func TestEnvExpansion(t *testing.T) {
	os.Setenv("AGENTKIT_TEST_SECRET", "from-env")
	defer os.Unsetenv("AGENTKIT_TEST_SECRET")

	c, err := LoadFromBytes([]byte("Auth:\n  AccessSecret: ${AGENTKIT_TEST_SECRET}\n"))
	if err != nil {
		t.Fatalf("LoadFromBytes failed: %v", err)
	}
	if c.Auth.AccessSecret != "from-env" {
		t.Errorf("AccessSecret = %q, want from-env", c.Auth.AccessSecret)
	}
}

func TestParseBool(t *testing.T) {
	cases := []struct {
		in   string
		def  bool
		want bool
	}{
		{"true", false, true},
		{"1", false, true},
		{"yes", false, true},
		{"false", true, false},
		{"", true, true},
		{"", false, false},
		{"garbage", true, false},
	}
	for _, tc := range cases {
		if got := parseBool(tc.in, tc.def); got != tc.want {
			t.Errorf("parseBool(%q, %v) = %v, want %v", tc.in, tc.def, got, tc.want)
		}
	}
}
