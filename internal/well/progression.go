package well

import "time"

// Rules holds the tunable progression and scoring parameters.
type Rules struct {
	// ScoreTable holds base points for clearing 0..4 layers at once.
	ScoreTable [5]int
	// OverflowPoints is the per-layer base for clears beyond four.
	OverflowPoints int
	// LinesPerLevel is how many cleared layers advance one level.
	LinesPerLevel int
	// SpecialEvery marks a random block special each time the cleared total
	// crosses a multiple of it. Zero disables special cells.
	SpecialEvery int

	FallStart     time.Duration
	FallDecrement time.Duration
	FallMin       time.Duration

	// RateStep is the playback rate increase per level above 1.
	RateStep float64
}

// DefaultRules returns the reference rule set.
func DefaultRules() Rules {
	return Rules{
		ScoreTable:     [5]int{0, 100, 300, 500, 800},
		OverflowPoints: 200,
		LinesPerLevel:  10,
		SpecialEvery:   3,
		FallStart:      1000 * time.Millisecond,
		FallDecrement:  50 * time.Millisecond,
		FallMin:        100 * time.Millisecond,
		RateStep:       0.1,
	}
}

// ScoreFor returns the points for clearing n layers in one lock at level.
func (r Rules) ScoreFor(n, level int) int {
	if n <= 0 {
		return 0
	}
	if n < len(r.ScoreTable) {
		return r.ScoreTable[n] * level
	}
	return n * r.OverflowPoints * level
}

// LevelFor returns the level reached after clearing total layers.
func (r Rules) LevelFor(total int) int {
	per := r.LinesPerLevel
	if per <= 0 {
		per = 10
	}
	return total/per + 1
}

// FallInterval returns the gravity tick period at level.
func (r Rules) FallInterval(level int) time.Duration {
	d := r.FallStart - time.Duration(level-1)*r.FallDecrement
	if d < r.FallMin {
		return r.FallMin
	}
	return d
}

// PlaybackRate returns the music rate multiplier at level.
func (r Rules) PlaybackRate(level int) float64 {
	return 1 + float64(level-1)*r.RateStep
}

// crossesSpecial reports whether going from prev to next cleared layers
// passes a SpecialEvery boundary.
func (r Rules) crossesSpecial(prev, next int) bool {
	if r.SpecialEvery <= 0 {
		return false
	}
	return next/r.SpecialEvery > prev/r.SpecialEvery
}
