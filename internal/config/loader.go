package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

// LoadBlockfall loads the game configuration.
// Search order: customPath -> ~/.blockfall/configs/blockfall.yaml ->
// ./configs/blockfall.yaml -> embedded default.
// Files are decoded on top of the defaults, so a file may set only the keys
// it wants to change.
func LoadBlockfall(customPath string) (BlockfallConfig, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return BlockfallConfig{}, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := Parse(data)
		if err != nil {
			return BlockfallConfig{}, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath("blockfall.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := Parse(data); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", "blockfall.yaml")); err == nil {
		if cfg, err := Parse(data); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg, err := Parse(defaultBlockfallYAML)
	if err != nil {
		return DefaultBlockfallConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// Parse decodes YAML on top of DefaultBlockfallConfig and validates the result.
func Parse(data []byte) (BlockfallConfig, error) {
	cfg := DefaultBlockfallConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return BlockfallConfig{}, err
	}
	if err := cfg.Validate(); err != nil {
		return BlockfallConfig{}, err
	}
	return cfg, nil
}

// Validate checks that the configuration describes a playable field.
func (c BlockfallConfig) Validate() error {
	f := c.Field
	if f.Cols <= 0 || f.Rows <= 0 {
		return fmt.Errorf("%w: field must be at least 1x1 cells, got %dx%d", ErrInvalidConfig, f.Cols, f.Rows)
	}
	if f.CellWidth <= 0 || f.CellHeight <= 0 {
		return fmt.Errorf("%w: cell size must be positive, got %gx%g", ErrInvalidConfig, f.CellWidth, f.CellHeight)
	}
	// The fall step is snapped to a divisor of the cell height; a fractional
	// cell has none, and a falling piece would skip cell-aligned positions.
	if f.CellWidth != math.Trunc(f.CellWidth) || f.CellHeight != math.Trunc(f.CellHeight) {
		return fmt.Errorf("%w: cell size must be whole numbers, got %gx%g", ErrInvalidConfig, f.CellWidth, f.CellHeight)
	}
	p := c.Physics
	if p.FallStep <= 0 {
		return fmt.Errorf("%w: fall_step must be positive, got %g", ErrInvalidConfig, p.FallStep)
	}
	if p.FallStep > f.CellHeight {
		return fmt.Errorf("%w: fall_step %g exceeds cell_height %g", ErrInvalidConfig, p.FallStep, f.CellHeight)
	}
	if p.LandingProbeOffset <= 0 || p.LandingProbeOffset >= f.CellHeight {
		return fmt.Errorf("%w: landing_probe_offset must be in (0, cell_height), got %g", ErrInvalidConfig, p.LandingProbeOffset)
	}
	switch c.Difficulty.Progression.Type {
	case "pieces", "time", "none", "":
	default:
		return fmt.Errorf("%w: unknown progression type %q", ErrInvalidConfig, c.Difficulty.Progression.Type)
	}
	return nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".blockfall", "configs", filename)
}

// ApplyPreset modifies the config based on a difficulty preset.
func ApplyPreset(cfg *BlockfallConfig, preset DifficultyPreset) {
	switch preset {
	case "":
		return
	case DifficultyFixed:
		cfg.Difficulty.Enabled = false
	default:
		cfg.Difficulty.Enabled = true
		cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)
	}
}

// Encode returns the configuration as YAML that Parse accepts.
func (c BlockfallConfig) Encode() ([]byte, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("failed to encode config: %w", err)
	}
	return data, nil
}
