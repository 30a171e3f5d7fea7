package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"

	"github.com/vovakirdan/tetris3d/internal/well"
)

// Wave selects the oscillator shape.
type Wave int

const (
	WaveSine Wave = iota
	WaveSquare
	WaveTriangle
)

// note is one enveloped tone in a cue.
type note struct {
	freq float64
	dur  time.Duration
	wave Wave
}

// Cues for each signal. Frequencies are equal-tempered pitches.
var cues = map[well.Signal][]note{
	well.SignalMove: {
		// E5
		{freq: 659.25, dur: 25 * time.Millisecond, wave: WaveSquare},
	},
	well.SignalRotate: {
		// A5
		{freq: 880.00, dur: 35 * time.Millisecond, wave: WaveSquare},
	},
	well.SignalDrop: {
		// C3
		{freq: 130.81, dur: 90 * time.Millisecond, wave: WaveTriangle},
	},
	well.SignalClear: {
		// C5 E5 G5
		{freq: 523.25, dur: 70 * time.Millisecond, wave: WaveSine},
		{freq: 659.25, dur: 70 * time.Millisecond, wave: WaveSine},
		{freq: 783.99, dur: 110 * time.Millisecond, wave: WaveSine},
	},
	well.SignalLevelUp: {
		// C5 E5 G5 C6
		{freq: 523.25, dur: 60 * time.Millisecond, wave: WaveSquare},
		{freq: 659.25, dur: 60 * time.Millisecond, wave: WaveSquare},
		{freq: 783.99, dur: 60 * time.Millisecond, wave: WaveSquare},
		{freq: 1046.50, dur: 160 * time.Millisecond, wave: WaveSquare},
	},
	well.SignalGameOver: {
		// G4 Eb4 C4
		{freq: 392.00, dur: 180 * time.Millisecond, wave: WaveTriangle},
		{freq: 311.13, dur: 180 * time.Millisecond, wave: WaveTriangle},
		{freq: 261.63, dur: 400 * time.Millisecond, wave: WaveTriangle},
	},
	well.SignalStart: {
		// C4 G4
		{freq: 261.63, dur: 80 * time.Millisecond, wave: WaveSine},
		{freq: 392.00, dur: 120 * time.Millisecond, wave: WaveSine},
	},
}

// toneAttack and toneRelease bound the envelope ramps.
const (
	toneAttack  = 5 * time.Millisecond
	toneRelease = 20 * time.Millisecond
)

// tone is an enveloped oscillator of fixed length.
type tone struct {
	freq    float64
	wave    Wave
	rate    beep.SampleRate
	phase   float64
	pos     int
	total   int
	attack  int
	release int
}

// NewTone returns a streamer that plays freq for dur with a short linear
// attack and release, so consecutive cue notes do not click.
func NewTone(freq float64, dur time.Duration, wave Wave, rate beep.SampleRate) beep.Streamer {
	total := rate.N(dur)
	return &tone{
		freq:    freq,
		wave:    wave,
		rate:    rate,
		total:   total,
		attack:  min(rate.N(toneAttack), total/2),
		release: min(rate.N(toneRelease), total/2),
	}
}

func (t *tone) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if t.pos >= t.total {
			return i, i > 0
		}
		v := t.sample() * t.gain()
		samples[i][0] = v
		samples[i][1] = v

		t.phase += t.freq / float64(t.rate)
		t.phase -= math.Floor(t.phase)
		t.pos++
	}
	return len(samples), true
}

func (t *tone) Err() error { return nil }

func (t *tone) sample() float64 {
	switch t.wave {
	case WaveSquare:
		if t.phase < 0.5 {
			return 1
		}
		return -1
	case WaveTriangle:
		return 4*math.Abs(t.phase-0.5) - 1
	default:
		return math.Sin(2 * math.Pi * t.phase)
	}
}

func (t *tone) gain() float64 {
	if t.attack > 0 && t.pos < t.attack {
		return float64(t.pos) / float64(t.attack)
	}
	if left := t.total - t.pos; t.release > 0 && left < t.release {
		return float64(left) / float64(t.release)
	}
	return 1
}

// Cue builds the sound for sig at sample rate sr. playback above 1 raises
// pitch and tempo together. Unknown signals yield nil.
func Cue(sig well.Signal, sr beep.SampleRate, playback float64) beep.Streamer {
	notes, ok := cues[sig]
	if !ok {
		return nil
	}

	parts := make([]beep.Streamer, 0, len(notes))
	for _, n := range notes {
		parts = append(parts, NewTone(n.freq, n.dur, n.wave, sr))
	}
	s := beep.Seq(parts...)

	if playback <= 0 || playback == 1 {
		return s
	}
	return beep.ResampleRatio(3, playback, s)
}

// CueLength returns the unresampled duration of the cue for sig.
func CueLength(sig well.Signal) time.Duration {
	var d time.Duration
	for _, n := range cues[sig] {
		d += n.dur
	}
	return d
}
