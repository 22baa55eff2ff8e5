package local

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Settings holds local configuration that can't be in the embedded yaml
type Settings struct {
	AccessSecret       string `json:"accessSecret"`
	AccessExpire       int64  `json:"accessExpire"`
	RefreshTokenExpire int64  `json:"refreshTokenExpire"`
}

// DefaultSettings returns sensible defaults
func DefaultSettings() Settings {
	return Settings{
		AccessExpire:       2592000, // 30 days
		RefreshTokenExpire: 2592000, // 30 days
	}
}

// settingsPath returns the path to the local settings file
func settingsPath(dataDir string) string {
	return filepath.Join(dataDir, "settings.json")
}

// LoadSettings loads local settings from the data directory, creating
// defaults with a generated secret if none exist yet.
func LoadSettings(dataDir string) (*Settings, error) {
	path := settingsPath(dataDir)

	// Ensure directory exists
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create settings directory: %w", err)
	}

	// Try to load existing settings
	data, err := os.ReadFile(path)
	if err == nil {
		var settings Settings
		if err := json.Unmarshal(data, &settings); err == nil {
			// Ensure secret exists (upgrade from older settings)
			if settings.AccessSecret == "" {
				settings.AccessSecret = generateSecret()
				if err := SaveSettings(dataDir, &settings); err != nil {
					return nil, err
				}
			}
			return &settings, nil
		}
	}

	// Create new settings with generated secret
	settings := DefaultSettings()
	settings.AccessSecret = generateSecret()

	if err := SaveSettings(dataDir, &settings); err != nil {
		return nil, err
	}

	return &settings, nil
}

// SaveSettings persists settings to disk
func SaveSettings(dataDir string, settings *Settings) error {
	data, err := json.MarshalIndent(settings, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(settingsPath(dataDir), data, 0600)
}

// generateSecret creates a cryptographically secure random secret
func generateSecret() string {
	bytes := make([]byte, 32)
	if _, err := rand.Read(bytes); err != nil {
		// Fallback to less secure but still random
		return fmt.Sprintf("agentkit-%d", os.Getpid())
	}
	return hex.EncodeToString(bytes)
}
