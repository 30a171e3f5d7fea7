// Package audio turns well signals into short synthesized cues played
// through the system speaker. Without an audio device the Player stays
// silent and every call is a no-op.
package audio

import (
	"fmt"
	"io"
	"math"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"

	"github.com/vovakirdan/tetris3d/internal/well"
)

// Config controls output.
type Config struct {
	SampleRate int
	Volume     float64 // 0.0 to 1.0
	Muted      bool
}

// DefaultConfig matches the embedded well.yaml audio section.
func DefaultConfig() Config {
	return Config{SampleRate: 44100, Volume: 0.6}
}

// Player implements well.SignalSink.
type Player struct {
	mu       sync.Mutex
	sr       beep.SampleRate
	volume   float64
	playback float64
	muted    bool
	live     bool
	logger   *log.Logger
}

var _ well.SignalSink = (*Player)(nil)

// NewPlayer creates a silent player. Call Open to attach the speaker.
func NewPlayer(cfg Config, logger *log.Logger) *Player {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if cfg.SampleRate <= 0 {
		cfg.SampleRate = DefaultConfig().SampleRate
	}
	return &Player{
		sr:       beep.SampleRate(cfg.SampleRate),
		volume:   cfg.Volume,
		playback: 1,
		muted:    cfg.Muted,
		logger:   logger,
	}
}

// newVolume wraps s at a linear volume. math.Log2(0) is -Inf, so zero
// becomes a silent effect instead.
func newVolume(s beep.Streamer, vol float64) *effects.Volume {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(min(vol, 1))}
}

// Open initializes the speaker. On failure the player stays silent and the
// error is returned for the caller to report.
func (p *Player) Open() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.live {
		return nil
	}
	if err := speaker.Init(p.sr, p.sr.N(50*time.Millisecond)); err != nil {
		return fmt.Errorf("audio: cannot open speaker: %w", err)
	}
	p.live = true
	p.logger.Debug("speaker ready", "sample_rate", int(p.sr))
	return nil
}

// Close stops playback and releases the speaker.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.live {
		return
	}
	speaker.Clear()
	speaker.Close()
	p.live = false
}

// Play queues the cue for sig. It never blocks on audio output.
func (p *Player) Play(sig well.Signal) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.live || p.muted {
		return
	}
	cue := Cue(sig, p.sr, p.playback)
	if cue == nil {
		return
	}

	speaker.Play(newVolume(cue, p.volume))
}

// SetRate sets the playback multiplier applied to subsequent cues.
func (p *Player) SetRate(rate float64) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if rate <= 0 {
		rate = 1
	}
	p.playback = rate
}

// Rate returns the current playback multiplier.
func (p *Player) Rate() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.playback
}

// ToggleMute flips mute and returns the new state. Muting drops cues that
// are already playing.
func (p *Player) ToggleMute() bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.muted = !p.muted
	if p.muted && p.live {
		speaker.Clear()
	}
	return p.muted
}

// Muted reports whether cues are suppressed.
func (p *Player) Muted() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.muted
}

// Live reports whether the speaker is attached.
func (p *Player) Live() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.live
}
