package config

import (
	_ "embed"
)

//go:embed defaults/blockfall.yaml
var defaultBlockfallYAML []byte

// DefaultBlockfallConfig returns the built-in configuration. It matches
// defaults/blockfall.yaml and is used when the embedded file cannot be parsed.
func DefaultBlockfallConfig() BlockfallConfig {
	return BlockfallConfig{
		Field: FieldConfig{
			Cols:       9,
			Rows:       18,
			CellWidth:  30,
			CellHeight: 30,
		},
		Physics: PhysicsConfig{
			FallStep:           2,
			LandingProbeOffset: 1,
		},
		Rules: RulesConfig{
			ClearFullRows:    false,
			AutoSpawn:        false,
			ShowInstructions: true,
		},
		Difficulty: DifficultyConfig{
			Enabled:      false,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "pieces",
				MaxAt: 60,
			},
			Scaling: ScalingConfig{
				SpeedMultiplier: 2.0,
			},
		},
	}
}

// DefaultYAML returns the embedded default YAML.
func DefaultYAML() []byte {
	return defaultBlockfallYAML
}
