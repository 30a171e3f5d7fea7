package config

import (
	"fmt"
	"strings"
)

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// Presets lists the accepted preset names in display order.
func Presets() []DifficultyPreset {
	return []DifficultyPreset{DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed}
}

// ParsePreset accepts a preset name case-insensitively. An empty name is normal.
func ParsePreset(name string) (DifficultyPreset, error) {
	if name == "" {
		return DifficultyNormal, nil
	}
	p := DifficultyPreset(strings.ToLower(strings.TrimSpace(name)))
	for _, known := range Presets() {
		if p == known {
			return p, nil
		}
	}
	return "", fmt.Errorf("config: unknown difficulty %q (want easy, normal, hard or fixed)", name)
}

// IsFixedPreset returns true if the preset disables speed-up.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}

// ApplyWellPreset adjusts the gravity curve for a difficulty preset.
// Normal leaves the loaded values alone.
func ApplyWellPreset(cfg *WellConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Speed.FallStartMs = cfg.Speed.FallStartMs * 3 / 2
		cfg.Speed.FallDecrementMs = cfg.Speed.FallDecrementMs * 3 / 4
		cfg.Speed.FallMinMs = max(cfg.Speed.FallMinMs, 200)
	case DifficultyHard:
		cfg.Speed.FallStartMs = cfg.Speed.FallStartMs * 3 / 5
		cfg.Speed.FallDecrementMs = cfg.Speed.FallDecrementMs * 3 / 2
		cfg.Speed.FallMinMs = min(cfg.Speed.FallMinMs, 60)
	case DifficultyFixed:
		cfg.Speed.FallDecrementMs = 0
	}
	if cfg.Speed.FallMinMs > cfg.Speed.FallStartMs {
		cfg.Speed.FallMinMs = cfg.Speed.FallStartMs
	}
}
