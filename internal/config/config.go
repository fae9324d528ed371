// Package config provides YAML-based game configuration loading and
// difficulty management.
package config

// BlockfallConfig contains all configuration for the falling-block game.
type BlockfallConfig struct {
	Field      FieldConfig      `yaml:"field"`
	Physics    PhysicsConfig    `yaml:"physics"`
	Rules      RulesConfig      `yaml:"rules"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// FieldConfig defines the playfield size and the render size of one cell.
type FieldConfig struct {
	Cols       int     `yaml:"cols"`
	Rows       int     `yaml:"rows"`
	CellWidth  float64 `yaml:"cell_width"`
	CellHeight float64 `yaml:"cell_height"`
}

// PhysicsConfig defines gravity for the active piece.
type PhysicsConfig struct {
	FallStep           float64 `yaml:"fall_step"`            // Render units per tick
	LandingProbeOffset float64 `yaml:"landing_probe_offset"` // Extra units for the landing probe
}

// RulesConfig toggles optional game rules.
type RulesConfig struct {
	ClearFullRows    bool `yaml:"clear_full_rows"`
	AutoSpawn        bool `yaml:"auto_spawn"`
	ShowInstructions bool `yaml:"show_instructions"`
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases over time.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "pieces", "time", or "none"
	MaxAt int    `yaml:"max_at"` // Pieces/ticks at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	SpeedMultiplier float64 `yaml:"speed_multiplier"` // Added to the fall speed multiplier at max difficulty
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset converts a CLI value to a preset. Unknown values yield "".
func ParsePreset(s string) DifficultyPreset {
	switch p := DifficultyPreset(s); p {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p
	default:
		return ""
	}
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}
