package main

import (
	_ "embed"
	"fmt"
	"os"

	cli "github.com/agentkit/agentkit/cmd/agentkit"
	"github.com/agentkit/agentkit/internal/config"
	"github.com/agentkit/agentkit/internal/local"

	"github.com/joho/godotenv"
)

//go:embed etc/agentkit.yaml
var embeddedConfig []byte

func main() {
	// Load .env file if present (ignore error if not found)
	_ = godotenv.Load()

	// Load embedded config (defaults)
	c, err := config.LoadFromBytes(embeddedConfig)
	if err != nil {
		fmt.Printf("Failed to load embedded config: %v\n", err)
		os.Exit(1)
	}

	// Load local settings (auto-generates secret on first run)
	settings, err := local.LoadSettings(c.DataDir())
	if err != nil {
		fmt.Printf("Failed to load local settings: %v\n", err)
		os.Exit(1)
	}

	// Override auth config with local settings
	if c.Auth.AccessSecret == "" {
		c.Auth.AccessSecret = settings.AccessSecret
	}
	if settings.AccessExpire > 0 {
		c.Auth.AccessExpire = settings.AccessExpire
	}
	if settings.RefreshTokenExpire > 0 {
		c.Auth.RefreshTokenExpire = settings.RefreshTokenExpire
	}

	if err := cli.SetupRootCmd(&c).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
