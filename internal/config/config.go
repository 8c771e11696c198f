// Package config loads the questd server configuration.
package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// ServerConfig holds server-wide configuration settings.
type ServerConfig struct {
	HTTP      HTTPConfig      `yaml:"http"`
	Fixture   FixtureConfig   `yaml:"fixture"`
	WebSocket WebSocketConfig `yaml:"websocket"`
}

// HTTPConfig holds the HTTP listener settings.
type HTTPConfig struct {
	// Addr is the listen address, e.g. ":8080".
	Addr string `yaml:"addr"`
}

// FixtureConfig names the dataset snapshot loaded at startup.
type FixtureConfig struct {
	// Path to the fixture JSON produced by the ingest tool.
	Path string `yaml:"path"`
}

// WebSocketConfig holds WebSocket-specific settings.
type WebSocketConfig struct {
	// AllowedOrigins is a list of origins allowed to connect via WebSocket.
	// Empty list enforces same-origin policy. "*" allows all origins.
	AllowedOrigins []string `yaml:"allowed_origins"`
}

// DefaultConfig returns a ServerConfig with usable defaults.
func DefaultConfig() *ServerConfig {
	return &ServerConfig{
		HTTP: HTTPConfig{
			Addr: ":8080",
		},
		Fixture: FixtureConfig{
			Path: "data/fixture.json",
		},
		WebSocket: WebSocketConfig{
			AllowedOrigins: []string{}, // Same-origin only by default
		},
	}
}

// LoadConfig loads server configuration from a YAML file.
// If the file doesn't exist, returns default config.
func LoadConfig(path string) (*ServerConfig, error) {
	config := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return config, nil
		}
		return config, err
	}

	if err := yaml.Unmarshal(data, config); err != nil {
		return DefaultConfig(), err
	}

	if config.HTTP.Addr == "" {
		config.HTTP.Addr = ":8080"
	}
	if config.Fixture.Path == "" {
		config.Fixture.Path = "data/fixture.json"
	}

	return config, nil
}

// IsOriginAllowed checks whether the given origin may open a WebSocket.
func (c *ServerConfig) IsOriginAllowed(origin string) bool {
	for _, allowed := range c.WebSocket.AllowedOrigins {
		if allowed == "*" || allowed == origin {
			return true
		}
	}
	return false
}
