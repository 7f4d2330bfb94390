package config

import (
	"os"
	"path/filepath"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestDefaultConfigIsValid(t *testing.T) {
	if err := DefaultMatchConfig().Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestEmbeddedYAMLMatchesHardcodedDefault(t *testing.T) {
	var cfg MatchConfig
	if err := yaml.Unmarshal(GetDefaultYAML(), &cfg); err != nil {
		t.Fatalf("embedded YAML does not parse: %v", err)
	}
	if cfg != DefaultMatchConfig() {
		t.Errorf("embedded default %+v differs from hardcoded %+v", cfg, DefaultMatchConfig())
	}
}

func TestValidateRejections(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*MatchConfig)
	}{
		{"zero arena", func(c *MatchConfig) { c.Arena.HalfExtent = 0 }},
		{"negative arena", func(c *MatchConfig) { c.Arena.HalfExtent = -5 }},
		{"zero ship radius", func(c *MatchConfig) { c.Ship.Radius = 0 }},
		{"zero health", func(c *MatchConfig) { c.Ship.Health = 0 }},
		{"negative speed", func(c *MatchConfig) { c.Ship.Speed = -1 }},
		{"zero projectile radius", func(c *MatchConfig) { c.Projectile.Radius = 0 }},
		{"zero projectile speed", func(c *MatchConfig) { c.Projectile.Speed = 0 }},
		{"zero damage", func(c *MatchConfig) { c.Projectile.Damage = 0 }},
		{"spawn margin of exactly one", func(c *MatchConfig) { c.Projectile.SpawnMargin = 1 }},
		{"spawn margin below one", func(c *MatchConfig) { c.Projectile.SpawnMargin = 0.9 }},
		{"zero shoot period", func(c *MatchConfig) { c.Combat.ShootPeriod = 0 }},
		{"negative pre-roll", func(c *MatchConfig) { c.Schedule.PreRollTicks = -1 }},
		{"negative post-roll", func(c *MatchConfig) { c.Schedule.PostRollTicks = -1 }},
		{"zero think budget", func(c *MatchConfig) { c.Script.ThinkBudgetMS = 0 }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultMatchConfig()
			tc.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation to fail")
			}
		})
	}
}

func TestZeroRollTicksAllowed(t *testing.T) {
	cfg := DefaultMatchConfig()
	cfg.Schedule.PreRollTicks = 0
	cfg.Schedule.PostRollTicks = 0
	if err := cfg.Validate(); err != nil {
		t.Errorf("zero roll ticks should be allowed: %v", err)
	}
}

func TestLoadMatchCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "match.yaml")
	content := `
arena:
  half_extent: 25
ship:
  radius: 1.5
  health: 50
  speed: 0.75
projectile:
  radius: 0.4
  speed: 2.0
  damage: 5
  spawn_margin: 1.1
combat:
  shoot_period: 8
schedule:
  pre_roll_ticks: 15
  post_roll_ticks: 30
script:
  think_budget_ms: 25
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("cannot write config: %v", err)
	}

	cfg, err := LoadMatch(path)
	if err != nil {
		t.Fatalf("LoadMatch failed: %v", err)
	}

	if cfg.Arena.HalfExtent != 25 {
		t.Errorf("half_extent = %v, expected 25", cfg.Arena.HalfExtent)
	}
	if cfg.Ship.Health != 50 || cfg.Ship.Speed != 0.75 {
		t.Errorf("ship config = %+v", cfg.Ship)
	}
	if cfg.Projectile.Damage != 5 || cfg.Projectile.SpawnMargin != 1.1 {
		t.Errorf("projectile config = %+v", cfg.Projectile)
	}
	if cfg.Combat.ShootPeriod != 8 {
		t.Errorf("shoot_period = %d, expected 8", cfg.Combat.ShootPeriod)
	}
	if cfg.Script.ThinkBudgetMS != 25 {
		t.Errorf("think_budget_ms = %d, expected 25", cfg.Script.ThinkBudgetMS)
	}
}

func TestLoadMatchMissingCustomPath(t *testing.T) {
	if _, err := LoadMatch(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected an error for a missing custom config")
	}
}

func TestLoadMatchInvalidValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("arena:\n  half_extent: -1\n"), 0o644); err != nil {
		t.Fatalf("cannot write config: %v", err)
	}

	if _, err := LoadMatch(path); err == nil {
		t.Error("expected validation to reject the loaded config")
	}
}
