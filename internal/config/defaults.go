package config

import (
	_ "embed"
)

//go:embed defaults/well.yaml
var defaultWellYAML []byte

// DefaultWellConfig returns the built-in configuration. It matches
// defaults/well.yaml and is used when even the embedded file cannot be parsed.
func DefaultWellConfig() WellConfig {
	return WellConfig{
		Grid: GridConfig{
			Cols:   6,
			Rows:   6,
			Height: 16,
		},
		Speed: SpeedConfig{
			FallStartMs:     1000,
			FallDecrementMs: 50,
			FallMinMs:       100,
		},
		Scoring: ScoringConfig{
			Table:          []int{0, 100, 300, 500, 800},
			OverflowPoints: 200,
		},
		Progression: ProgressionConfig{
			LinesPerLevel: 10,
			SpecialEvery:  3,
		},
		Audio: AudioConfig{
			Enabled:    true,
			Volume:     0.6,
			RateStep:   0.1,
			SampleRate: 44100,
		},
	}
}
