// Package config provides YAML-based tuning for the game. Defaults match the
// built-in difficulty table; a config file can override any of it.
package config

import (
	"fmt"

	"github.com/ntrubin/skycatch/internal/game"
)

// Config is the top-level game configuration.
type Config struct {
	Play     PlayConfig            `yaml:"play"`
	Profiles map[string]TierConfig `yaml:"profiles"`
}

// PlayConfig defines the session parameters shared by all tiers,
// in game pixels.
type PlayConfig struct {
	EntitySize  int `yaml:"entity_size"`  // Falling object diameter
	SpawnDepth  int `yaml:"spawn_depth"`  // Respawn band above the play area
	Lives       int `yaml:"lives"`        // Misses before game over
	PaddleWidth int `yaml:"paddle_width"` // Paddle width
	PaddleStep  int `yaml:"paddle_step"`  // Paddle movement per key press
}

// TierConfig defines one difficulty tier.
type TierConfig struct {
	Objects int         `yaml:"objects"` // Simultaneous falling entities
	Speed   SpeedConfig `yaml:"speed"`   // Per-tick descent speed range
}

// SpeedConfig is an inclusive speed range.
type SpeedConfig struct {
	Min int `yaml:"min"`
	Max int `yaml:"max"`
}

// Default returns the built-in configuration.
func Default() Config {
	cfg := Config{
		Play: PlayConfig{
			EntitySize:  game.DefaultEntitySize,
			SpawnDepth:  game.DefaultSpawnDepth,
			Lives:       game.DefaultLives,
			PaddleWidth: 60,
			PaddleStep:  10,
		},
		Profiles: make(map[string]TierConfig, len(game.Tiers)),
	}
	for _, tier := range game.Tiers {
		p := game.DefaultProfile(tier)
		cfg.Profiles[tier.String()] = TierConfig{
			Objects: p.ObjectCount,
			Speed:   SpeedConfig{Min: p.Speed.Min, Max: p.Speed.Max},
		}
	}
	return cfg
}

// Profile resolves the game.Profile for a tier, falling back to the built-in
// table when the config has no entry for it.
func (c Config) Profile(tier game.Tier) game.Profile {
	tc, ok := c.Profiles[tier.String()]
	if !ok {
		return game.DefaultProfile(tier)
	}
	return game.Profile{
		ObjectCount: tc.Objects,
		Speed:       game.SpeedRange{Min: tc.Speed.Min, Max: tc.Speed.Max},
	}
}

// SessionOptions converts the play section into session options.
func (c Config) SessionOptions() game.SessionOptions {
	return game.SessionOptions{
		EntitySize: c.Play.EntitySize,
		SpawnDepth: c.Play.SpawnDepth,
		Lives:      c.Play.Lives,
	}
}

// Validate rejects configurations that would make a session unconstructible.
func (c Config) Validate() error {
	if c.Play.EntitySize <= 0 {
		return fmt.Errorf("config: entity_size must be positive, got %d", c.Play.EntitySize)
	}
	if c.Play.SpawnDepth <= 0 {
		return fmt.Errorf("config: spawn_depth must be positive, got %d", c.Play.SpawnDepth)
	}
	if c.Play.Lives <= 0 {
		return fmt.Errorf("config: lives must be positive, got %d", c.Play.Lives)
	}
	if c.Play.PaddleWidth <= 0 || c.Play.PaddleStep <= 0 {
		return fmt.Errorf("config: paddle_width and paddle_step must be positive")
	}
	for _, tier := range game.Tiers {
		if err := c.Profile(tier).Validate(); err != nil {
			return fmt.Errorf("config: profile %s: %w", tier, err)
		}
	}
	return nil
}
