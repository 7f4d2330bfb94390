// Package config provides YAML-based match configuration loading and
// validation for the duel platform.
package config

import "fmt"

// MatchConfig contains every tunable for a single match.
type MatchConfig struct {
	Arena      ArenaConfig      `yaml:"arena"`
	Ship       ShipConfig       `yaml:"ship"`
	Projectile ProjectileConfig `yaml:"projectile"`
	Combat     CombatConfig     `yaml:"combat"`
	Schedule   ScheduleConfig   `yaml:"schedule"`
	Script     ScriptConfig     `yaml:"script"`
}

// ArenaConfig defines the fixed square arena.
type ArenaConfig struct {
	HalfExtent float64 `yaml:"half_extent"`
}

// ShipConfig defines the combatants' physical parameters.
type ShipConfig struct {
	Radius float64 `yaml:"radius"`
	Health int     `yaml:"health"`
	Speed  float64 `yaml:"speed"`
}

// ProjectileConfig defines the shots ships fire.
type ProjectileConfig struct {
	Radius      float64 `yaml:"radius"`
	Speed       float64 `yaml:"speed"`
	Damage      int     `yaml:"damage"`
	SpawnMargin float64 `yaml:"spawn_margin"` // Multiplier >1 on the spawn offset
}

// CombatConfig defines firing cadence.
type CombatConfig struct {
	ShootPeriod int `yaml:"shoot_period"` // Cooldown ticks between shots
}

// ScheduleConfig defines the pre- and post-roll countdowns in ticks.
type ScheduleConfig struct {
	PreRollTicks  int `yaml:"pre_roll_ticks"`
	PostRollTicks int `yaml:"post_roll_ticks"`
}

// ScriptConfig bounds untrusted script execution.
type ScriptConfig struct {
	ThinkBudgetMS int `yaml:"think_budget_ms"` // Wall-clock budget per think call
}

// Validate checks the physical invariants a match depends on.
// A violation here is a configuration defect, not a script fault.
func (c MatchConfig) Validate() error {
	if c.Arena.HalfExtent <= 0 {
		return fmt.Errorf("config: arena half_extent must be positive, got %v", c.Arena.HalfExtent)
	}
	if c.Ship.Radius <= 0 {
		return fmt.Errorf("config: ship radius must be positive, got %v", c.Ship.Radius)
	}
	if c.Ship.Health <= 0 {
		return fmt.Errorf("config: ship health must be positive, got %d", c.Ship.Health)
	}
	if c.Ship.Speed < 0 {
		return fmt.Errorf("config: ship speed must be non-negative, got %v", c.Ship.Speed)
	}
	if c.Projectile.Radius <= 0 {
		return fmt.Errorf("config: projectile radius must be positive, got %v", c.Projectile.Radius)
	}
	if c.Projectile.Speed <= 0 {
		return fmt.Errorf("config: projectile speed must be positive, got %v", c.Projectile.Speed)
	}
	if c.Projectile.Damage <= 0 {
		return fmt.Errorf("config: projectile damage must be positive, got %d", c.Projectile.Damage)
	}
	if c.Projectile.SpawnMargin <= 1 {
		return fmt.Errorf("config: projectile spawn_margin must be greater than 1, got %v", c.Projectile.SpawnMargin)
	}
	if c.Combat.ShootPeriod <= 0 {
		return fmt.Errorf("config: shoot_period must be positive, got %d", c.Combat.ShootPeriod)
	}
	if c.Schedule.PreRollTicks < 0 || c.Schedule.PostRollTicks < 0 {
		return fmt.Errorf("config: roll tick counts must be non-negative")
	}
	if c.Script.ThinkBudgetMS <= 0 {
		return fmt.Errorf("config: think_budget_ms must be positive, got %d", c.Script.ThinkBudgetMS)
	}
	return nil
}
