// Package config loads devdeck settings from a YAML file, overridden by
// DEVDECK_* environment variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/peterkuimelis/devdeck/internal/game"
)

// Config holds all configuration for the application
type Config struct {
	Game    GameConfig    `yaml:"game"`
	Balance game.Balance  `yaml:"balance"`
	Storage StorageConfig `yaml:"storage"`
	Server  ServerConfig  `yaml:"server"`
	MCP     MCPConfig     `yaml:"mcp"`
}

// GameConfig holds session settings
type GameConfig struct {
	Difficulty string `yaml:"difficulty" env:"DEVDECK_DIFFICULTY"`

	// Pacing multiplier for animations; 0 disables delays
	Speed float64 `yaml:"speed" env:"DEVDECK_SPEED"`

	// RNG seed, 0 for random
	Seed int64 `yaml:"seed" env:"DEVDECK_SEED"`

	// Deck file and the deck to start with, by name or 1-based number
	DeckFile string `yaml:"deck_file" env:"DEVDECK_DECK_FILE"`
	Deck     string `yaml:"deck" env:"DEVDECK_DECK"`

	// How long a pre-play selection waits before it is canceled
	SelectionTimeout time.Duration `yaml:"selection_timeout" env:"DEVDECK_SELECTION_TIMEOUT"`

	// Re-panic on faults instead of recording them
	Strict bool `yaml:"strict" env:"DEVDECK_STRICT"`
}

// StorageConfig holds persistence settings
type StorageConfig struct {
	// memory, file or sqlite
	Driver string `yaml:"driver" env:"DEVDECK_STORAGE_DRIVER"`
	Path   string `yaml:"path" env:"DEVDECK_STORAGE_PATH"`
}

// ServerConfig holds network settings
type ServerConfig struct {
	HTTPAddr       string        `yaml:"http_addr" env:"DEVDECK_HTTP_ADDR"`
	TCPAddr        string        `yaml:"tcp_addr" env:"DEVDECK_TCP_ADDR"`
	RequestTimeout time.Duration `yaml:"request_timeout" env:"DEVDECK_REQUEST_TIMEOUT"`
	// debug, info, warn, error
	LogLevel string `yaml:"log_level" env:"DEVDECK_LOG_LEVEL"`
}

// MCPConfig holds the MCP server identity
type MCPConfig struct {
	Name    string `yaml:"name" env:"DEVDECK_MCP_NAME"`
	Version string `yaml:"version" env:"DEVDECK_MCP_VERSION"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() Config {
	return Config{
		Game: GameConfig{
			Difficulty:       "normal",
			Speed:            1,
			DeckFile:         "decks.yaml",
			SelectionTimeout: 2 * time.Minute,
		},
		Balance: game.DefaultBalance(),
		Storage: StorageConfig{
			Driver: "file",
			Path:   "./devdeck-data",
		},
		Server: ServerConfig{
			HTTPAddr:       ":8080",
			TCPAddr:        ":9000",
			RequestTimeout: 30 * time.Second,
			LogLevel:       "info",
		},
		MCP: MCPConfig{
			Name:    "devdeck",
			Version: "1.0.0",
		},
	}
}

// Load reads the config file, writing the defaults there first if it does
// not exist, then applies environment overrides. An empty path skips the
// file.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
			if err := Save(path, cfg); err != nil {
				return cfg, err
			}
		case err != nil:
			return cfg, fmt.Errorf("failed to read config: %w", err)
		default:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return cfg, fmt.Errorf("failed to parse config: %w", err)
			}
		}
	}

	if err := ParseEnv(&cfg); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

// Save writes cfg as YAML, creating the directory if needed.
func Save(path string, cfg Config) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create config directory: %w", err)
		}
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Validate rejects settings the engine cannot run with.
func (c Config) Validate() error {
	if _, err := c.Difficulty(); err != nil {
		return err
	}
	switch c.Storage.Driver {
	case "memory", "file", "sqlite":
	default:
		return fmt.Errorf("unknown storage driver %q", c.Storage.Driver)
	}
	if c.Game.Speed < 0 {
		return fmt.Errorf("speed must not be negative, got %v", c.Game.Speed)
	}
	return nil
}

func (c Config) Difficulty() (game.Difficulty, error) {
	return game.ParseDifficulty(c.Game.Difficulty)
}
