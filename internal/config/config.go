package config

import (
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// LoadFromBytes loads configuration from YAML bytes with environment variable expansion
func LoadFromBytes(data []byte) (Config, error) {
	var c Config
	expanded := os.ExpandEnv(string(data))
	if err := yaml.Unmarshal([]byte(expanded), &c); err != nil {
		return c, err
	}
	c.applyDefaults()
	return c, nil
}

// parseBool parses a string as boolean with a default value.
// Accepts: "true", "1", "yes" as true; empty or other values return default.
func parseBool(s string, defaultVal bool) bool {
	s = strings.TrimSpace(strings.ToLower(s))
	if s == "" {
		return defaultVal
	}
	return s == "true" || s == "1" || s == "yes"
}

type Config struct {
	Port int `yaml:"Port"`
	App  struct {
		Name           string `yaml:"Name"`
		BaseURL        string `yaml:"BaseURL"`
		ProductionMode string `yaml:"ProductionMode"`
	} `yaml:"App"`
	Auth struct {
		AccessSecret       string `yaml:"AccessSecret"`
		AccessExpire       int64  `yaml:"AccessExpire"`
		RefreshTokenExpire int64  `yaml:"RefreshTokenExpire"`
	} `yaml:"Auth"`
	Database struct {
		SQLitePath string `yaml:"SQLitePath"`
	} `yaml:"Database"`
	Chat struct {
		DefaultModel       string  `yaml:"DefaultModel"`
		DefaultTemperature float64 `yaml:"DefaultTemperature"`
		MaxTokens          int     `yaml:"MaxTokens"`
		HistoryWindow      int     `yaml:"HistoryWindow"`
		TokenBudget        int     `yaml:"TokenBudget"`
	} `yaml:"Chat"`
	Security struct {
		RateLimitEnabled      string `yaml:"RateLimitEnabled"`
		RateLimitRequests     int    `yaml:"RateLimitRequests"`
		RateLimitInterval     int    `yaml:"RateLimitInterval"`
		AuthRateLimitRequests int    `yaml:"AuthRateLimitRequests"`
		AuthRateLimitInterval int    `yaml:"AuthRateLimitInterval"`
		EnableSecurityHeaders string `yaml:"EnableSecurityHeaders"`
		AllowedOrigins        string `yaml:"AllowedOrigins"`
	} `yaml:"Security"`
	Features struct {
		RealtimeEnabled string `yaml:"RealtimeEnabled"`
		DemoMode        string `yaml:"DemoMode"`
	} `yaml:"Features"`
}

func (c *Config) applyDefaults() {
	if c.Port == 0 {
		c.Port = 27459
	}
	if c.Database.SQLitePath == "" {
		c.Database.SQLitePath = "./data/agentkit.db"
	}
	if c.Chat.DefaultModel == "" {
		c.Chat.DefaultModel = "gpt-4"
	}
	if c.Chat.DefaultTemperature == 0 {
		c.Chat.DefaultTemperature = 0.7
	}
	if c.Chat.MaxTokens == 0 {
		c.Chat.MaxTokens = 1500
	}
	if c.Chat.HistoryWindow == 0 {
		c.Chat.HistoryWindow = 3
	}
	if c.Auth.AccessExpire == 0 {
		c.Auth.AccessExpire = 2592000
	}
	if c.Auth.RefreshTokenExpire == 0 {
		c.Auth.RefreshTokenExpire = 2592000
	}
	if c.Security.RateLimitRequests == 0 {
		c.Security.RateLimitRequests = 100
	}
	if c.Security.RateLimitInterval == 0 {
		c.Security.RateLimitInterval = 60
	}
	if c.Security.AuthRateLimitRequests == 0 {
		c.Security.AuthRateLimitRequests = 5
	}
	if c.Security.AuthRateLimitInterval == 0 {
		c.Security.AuthRateLimitInterval = 60
	}
}

// DataDir returns the directory holding the database and local settings.
func (c Config) DataDir() string {
	dir := filepath.Dir(c.Database.SQLitePath)
	if dir == "" {
		return "."
	}
	return dir
}

func (c Config) IsProductionMode() bool {
	return parseBool(c.App.ProductionMode, false)
}

func (c Config) IsRateLimitEnabled() bool {
	return parseBool(c.Security.RateLimitEnabled, true)
}

func (c Config) IsSecurityHeadersEnabled() bool {
	return parseBool(c.Security.EnableSecurityHeaders, true)
}

func (c Config) IsRealtimeEnabled() bool {
	return parseBool(c.Features.RealtimeEnabled, true)
}

// IsDemoMode reports whether the server should run without durable storage.
// In demo mode all stores are session-scoped and lost on restart.
func (c Config) IsDemoMode() bool {
	return parseBool(c.Features.DemoMode, false)
}
