// Package config reads game settings from the environment.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joeshaw/envdecode"
	"github.com/minaorangina/memory/deck"
	"github.com/minaorangina/memory/game"
	"github.com/minaorangina/memory/levels"
)

const (
	AssetsRobohash = "robohash"
	AssetsKey      = "key"
)

// Config holds everything needed to construct a game
type Config struct {
	ResolutionDelay time.Duration `env:"MEMORY_RESOLUTION_DELAY,default=1s"`
	Levels          string        `env:"MEMORY_LEVELS"`
	Seed            uint64        `env:"MEMORY_SEED,default=0"`
	Player          string        `env:"MEMORY_PLAYER,default=Player"`
	Assets          string        `env:"MEMORY_ASSETS,default=robohash"`
}

// Load decodes the environment and validates the result
func Load() (*Config, error) {
	cfg := &Config{}
	if err := envdecode.Decode(cfg); err != nil && !errors.Is(err, envdecode.ErrNoTargetFieldsAreSet) {
		return nil, fmt.Errorf("%w: %v", game.ErrInvalidConfiguration, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the values that envdecode cannot
func (c *Config) Validate() error {
	if c.ResolutionDelay <= 0 {
		return fmt.Errorf("%w: resolution delay must be positive, got %s", game.ErrInvalidConfiguration, c.ResolutionDelay)
	}
	if _, err := c.Table(); err != nil {
		return err
	}
	if _, err := c.AssetFunc(); err != nil {
		return err
	}
	return nil
}

// Table returns the configured level table, or the default one
func (c *Config) Table() (levels.Table, error) {
	if strings.TrimSpace(c.Levels) == "" {
		return levels.DefaultTable(), nil
	}
	return levels.Parse(c.Levels)
}

// AssetFunc returns how pair keys are shown to the player
func (c *Config) AssetFunc() (deck.AssetFunc, error) {
	switch c.Assets {
	case AssetsRobohash, "":
		return deck.RobohashAsset, nil
	case AssetsKey:
		return deck.KeyAsset, nil
	}
	return nil, fmt.Errorf("%w: unknown assets %q", game.ErrInvalidConfiguration, c.Assets)
}
