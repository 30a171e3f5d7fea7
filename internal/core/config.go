package core

// RuntimeConfig carries the platform settings a play session starts with.
type RuntimeConfig struct {
	ScreenW int   // Screen width in characters
	ScreenH int   // Screen height in characters
	Seed    int64 // RNG seed; 0 means seed from the clock
	Muted   bool  // Start with audio muted
}

// DefaultConfig returns a RuntimeConfig sized for a classic 80x24 terminal.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW: 80,
		ScreenH: 24,
	}
}

// MinScreenW and MinScreenH are the smallest terminal the three well views fit in.
const (
	MinScreenW = 60
	MinScreenH = 22
)

// FitsScreen reports whether the configured terminal is large enough.
func (c RuntimeConfig) FitsScreen() bool {
	return c.ScreenW >= MinScreenW && c.ScreenH >= MinScreenH
}
