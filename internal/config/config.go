// Package config provides YAML-based configuration loading and difficulty
// presets for the well.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/vovakirdan/tetris3d/internal/well"
)

// WellConfig contains all tunable settings for a game.
type WellConfig struct {
	Grid        GridConfig        `yaml:"grid"`
	Speed       SpeedConfig       `yaml:"speed"`
	Scoring     ScoringConfig     `yaml:"scoring"`
	Progression ProgressionConfig `yaml:"progression"`
	Audio       AudioConfig       `yaml:"audio"`
}

// GridConfig defines the well extents.
type GridConfig struct {
	Cols   int `yaml:"cols"`
	Rows   int `yaml:"rows"`
	Height int `yaml:"height"`
}

// SpeedConfig defines the gravity curve in milliseconds.
type SpeedConfig struct {
	FallStartMs     int `yaml:"fall_start_ms"`
	FallDecrementMs int `yaml:"fall_decrement_ms"`
	FallMinMs       int `yaml:"fall_min_ms"`
}

// ScoringConfig defines points awarded per lock.
type ScoringConfig struct {
	Table          []int `yaml:"table"`           // Base points for clearing 0..4 layers
	OverflowPoints int   `yaml:"overflow_points"` // Per-layer base beyond four
}

// ProgressionConfig defines how levels and special cells advance.
type ProgressionConfig struct {
	LinesPerLevel int `yaml:"lines_per_level"`
	SpecialEvery  int `yaml:"special_every"` // 0 disables special cells
}

// AudioConfig defines sound output.
type AudioConfig struct {
	Enabled    bool    `yaml:"enabled"`
	Volume     float64 `yaml:"volume"`    // 0.0 to 1.0
	RateStep   float64 `yaml:"rate_step"` // Playback rate increase per level
	SampleRate int     `yaml:"sample_rate"`
}

// Smallest well a catalog piece can spawn into.
const (
	minCols   = 5
	minRows   = 5
	minHeight = 4
)

// Validate reports every setting that would make the game unplayable.
func (c WellConfig) Validate() error {
	var errs []error

	if c.Grid.Cols < minCols || c.Grid.Rows < minRows || c.Grid.Height < minHeight {
		errs = append(errs, fmt.Errorf("grid %dx%dx%d is smaller than %dx%dx%d",
			c.Grid.Cols, c.Grid.Rows, c.Grid.Height, minCols, minRows, minHeight))
	}
	if c.Speed.FallStartMs <= 0 || c.Speed.FallMinMs <= 0 {
		errs = append(errs, errors.New("fall_start_ms and fall_min_ms must be positive"))
	}
	if c.Speed.FallDecrementMs < 0 {
		errs = append(errs, errors.New("fall_decrement_ms must not be negative"))
	}
	if c.Speed.FallMinMs > c.Speed.FallStartMs {
		errs = append(errs, fmt.Errorf("fall_min_ms %d exceeds fall_start_ms %d", c.Speed.FallMinMs, c.Speed.FallStartMs))
	}
	if len(c.Scoring.Table) != 5 {
		errs = append(errs, fmt.Errorf("scoring table needs 5 entries, got %d", len(c.Scoring.Table)))
	}
	if c.Progression.LinesPerLevel <= 0 {
		errs = append(errs, errors.New("lines_per_level must be positive"))
	}
	if c.Progression.SpecialEvery < 0 {
		errs = append(errs, errors.New("special_every must not be negative"))
	}
	if c.Audio.Volume < 0 || c.Audio.Volume > 1 {
		errs = append(errs, fmt.Errorf("audio volume %.2f outside [0, 1]", c.Audio.Volume))
	}
	if c.Audio.Enabled && c.Audio.SampleRate <= 0 {
		errs = append(errs, errors.New("audio sample_rate must be positive"))
	}

	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("config: invalid well config: %w", err)
	}
	return nil
}

// Dims returns the well extents.
func (c WellConfig) Dims() well.Dims {
	return well.Dims{Cols: c.Grid.Cols, Rows: c.Grid.Rows, Height: c.Grid.Height}
}

// ToRules converts the scoring, speed and progression sections.
func (c WellConfig) ToRules() well.Rules {
	r := well.Rules{
		OverflowPoints: c.Scoring.OverflowPoints,
		LinesPerLevel:  c.Progression.LinesPerLevel,
		SpecialEvery:   c.Progression.SpecialEvery,
		FallStart:      time.Duration(c.Speed.FallStartMs) * time.Millisecond,
		FallDecrement:  time.Duration(c.Speed.FallDecrementMs) * time.Millisecond,
		FallMin:        time.Duration(c.Speed.FallMinMs) * time.Millisecond,
		RateStep:       c.Audio.RateStep,
	}
	copy(r.ScoreTable[:], c.Scoring.Table)
	return r
}
