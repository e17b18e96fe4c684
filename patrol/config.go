// Package patrol turns spawn notifications into queued patrol routes: when
// an entity of a configured kind spawns on a configured block, a movement
// queue walking a fixed route is built for it and started.
package patrol

import (
	"fmt"
	"os"

	"github.com/patrol-mc/patrol/game"
	"gopkg.in/yaml.v3"
)

// LegConfig is one leg of a configured route.
type LegConfig struct {
	Direction string  `yaml:"direction"`
	Distance  float32 `yaml:"distance"`
	// CanJump overrides the queue default for this leg when set.
	CanJump *bool `yaml:"can_jump,omitempty"`
}

// MatchConfig decides which spawns trigger a patrol.
type MatchConfig struct {
	// Kind is the entity kind identifier that patrols.
	Kind string `yaml:"kind"`
	// Beneath is the identifier of the block the entity must spawn on.
	Beneath string `yaml:"beneath"`
}

// Config is the full patrol configuration.
type Config struct {
	TickRate int         `yaml:"tick_rate"`
	Match    MatchConfig `yaml:"match"`
	Route    []LegConfig `yaml:"route"`
}

// DefaultConfig returns the standard configuration: an octagonal route of one
// five-block leg per compass direction, walked clockwise from north.
func DefaultConfig() Config {
	cfg := Config{
		TickRate: 20,
		Match:    MatchConfig{Kind: "patroller", Beneath: "minecraft:grass"},
	}
	for _, dir := range game.Directions() {
		cfg.Route = append(cfg.Route, LegConfig{Direction: string(dir), Distance: 5})
	}
	return cfg
}

// ReadConfig loads a yaml configuration file over the defaults.
func ReadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("patrol: read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("patrol: parse config: %w", err)
	}
	return cfg, cfg.validate()
}

func (cfg Config) validate() error {
	if cfg.TickRate <= 0 {
		return fmt.Errorf("patrol: tick_rate must be positive, got %v", cfg.TickRate)
	}
	if len(cfg.Route) == 0 {
		return fmt.Errorf("patrol: route must contain at least one leg")
	}
	for i, leg := range cfg.Route {
		if _, ok := game.Direction(leg.Direction).Vec(); !ok {
			return fmt.Errorf("patrol: route leg %v: unknown direction %q", i, leg.Direction)
		}
		if leg.Distance <= 0 {
			return fmt.Errorf("patrol: route leg %v: distance must be positive, got %v", i, leg.Distance)
		}
	}
	return nil
}
