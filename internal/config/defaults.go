package config

import (
	_ "embed"
)

//go:embed defaults/match.yaml
var defaultMatchYAML []byte

// DefaultMatchConfig returns the hardcoded default match configuration,
// used as the last-resort fallback when the embedded YAML fails to parse.
func DefaultMatchConfig() MatchConfig {
	return MatchConfig{
		Arena: ArenaConfig{
			HalfExtent: 40.0,
		},
		Ship: ShipConfig{
			Radius: 2.0,
			Health: 100,
			Speed:  0.5,
		},
		Projectile: ProjectileConfig{
			Radius:      0.5,
			Speed:       1.5,
			Damage:      10,
			SpawnMargin: 1.05,
		},
		Combat: CombatConfig{
			ShootPeriod: 10,
		},
		Schedule: ScheduleConfig{
			PreRollTicks:  30,
			PostRollTicks: 60,
		},
		Script: ScriptConfig{
			ThinkBudgetMS: 50,
		},
	}
}

// GetDefaultYAML returns the embedded default match YAML.
func GetDefaultYAML() []byte {
	return defaultMatchYAML
}
