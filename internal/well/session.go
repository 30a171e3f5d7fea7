package well

import (
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"
)

// Status is the top-level session state.
type Status int

const (
	StatusMenu Status = iota
	StatusPlaying
	StatusPaused
	StatusGameOver
)

func (s Status) String() string {
	switch s {
	case StatusMenu:
		return "MENU"
	case StatusPlaying:
		return "PLAYING"
	case StatusPaused:
		return "PAUSED"
	case StatusGameOver:
		return "GAMEOVER"
	default:
		return "UNKNOWN"
	}
}

// Session is the authoritative game state. Every operation runs to completion
// before returning; a Session must only be driven from one goroutine.
type Session struct {
	dims   Dims
	rules  Rules
	rng    *rand.Rand
	sink   SignalSink
	keeper HighScoreKeeper
	logger *log.Logger

	grid      *Grid
	active    *Piece
	score     int
	level     int
	lines     int
	highScore int
	status    Status
	nextID    uint64

	pending []Signal
}

// Option configures a Session.
type Option func(*Session)

// WithDims overrides the well extents.
func WithDims(d Dims) Option {
	return func(s *Session) { s.dims = d }
}

// WithRules overrides the scoring and progression rules.
func WithRules(r Rules) Option {
	return func(s *Session) { s.rules = r }
}

// WithRand sets the random source used for piece and special-cell selection.
func WithRand(r *rand.Rand) Option {
	return func(s *Session) { s.rng = r }
}

// WithSeed seeds a private random source.
func WithSeed(seed int64) Option {
	return func(s *Session) { s.rng = rand.New(rand.NewSource(seed)) }
}

// WithSink forwards signals to sink as they fire.
func WithSink(sink SignalSink) Option {
	return func(s *Session) {
		if sink != nil {
			s.sink = sink
		}
	}
}

// WithHighScoreKeeper loads the high score from k and saves it back whenever
// it is beaten.
func WithHighScoreKeeper(k HighScoreKeeper) Option {
	return func(s *Session) { s.keeper = k }
}

// WithLogger sets the logger used for persistence failures.
func WithLogger(l *log.Logger) Option {
	return func(s *Session) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewSession creates a session in the MENU state.
func NewSession(opts ...Option) *Session {
	s := &Session{
		dims:   DefaultDims,
		rules:  DefaultRules(),
		sink:   nopSink{},
		logger: log.New(io.Discard),
		level:  1,
		status: StatusMenu,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.rng == nil {
		s.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	s.grid = NewGrid(s.dims)

	if s.keeper != nil {
		high, err := s.keeper.LoadHighScore()
		if err != nil {
			s.logger.Warn("could not load high score", "error", err)
		} else if high > 0 {
			s.highScore = high
		}
	}
	return s
}

// Start begins a new game: empty grid, zeroed counters, level 1, and a
// freshly spawned piece. The high score carries over.
func (s *Session) Start() {
	s.grid = NewGrid(s.dims)
	s.active = nil
	s.score = 0
	s.lines = 0
	s.level = 1
	s.status = StatusPlaying
	s.emit(SignalStart)
	s.sink.SetRate(s.rules.PlaybackRate(s.level))
	s.spawn()
}

// Pause moves a running game to PAUSED.
func (s *Session) Pause() {
	if s.status == StatusPlaying {
		s.status = StatusPaused
	}
}

// Resume continues a paused game.
func (s *Session) Resume() {
	if s.status == StatusPaused {
		s.status = StatusPlaying
	}
}

// TogglePause flips between PLAYING and PAUSED.
func (s *Session) TogglePause() {
	switch s.status {
	case StatusPlaying:
		s.status = StatusPaused
	case StatusPaused:
		s.status = StatusPlaying
	}
}

// Apply executes one command and returns the signals it emitted, in order.
func (s *Session) Apply(cmd Command) []Signal {
	s.pending = s.pending[:0]

	switch c := cmd.(type) {
	case CmdMove:
		s.Move(c.DX, c.DY, c.DZ)
	case CmdRotate:
		s.Rotate(c.Axis, c.Dir)
	case CmdSoftDrop:
		s.SoftDrop()
	case CmdHardDrop:
		s.HardDrop()
	case CmdTick:
		s.Tick()
	case CmdStart:
		s.Start()
	case CmdPause:
		s.Pause()
	case CmdResume:
		s.Resume()
	}

	return s.DrainSignals()
}

// DrainSignals returns the signals emitted since the last drain and clears
// the buffer.
func (s *Session) DrainSignals() []Signal {
	if len(s.pending) == 0 {
		return nil
	}
	out := make([]Signal, len(s.pending))
	copy(out, s.pending)
	s.pending = s.pending[:0]
	return out
}

func (s *Session) emit(sig Signal) {
	s.pending = append(s.pending, sig)
	s.sink.Play(sig)
}

func (s *Session) playing() bool {
	return s.status == StatusPlaying
}

// Status returns the session status.
func (s *Session) Status() Status { return s.status }

// Score returns the current score.
func (s *Session) Score() int { return s.score }

// Level returns the current level (1-based).
func (s *Session) Level() int { return s.level }

// Lines returns the total number of layers cleared this game.
func (s *Session) Lines() int { return s.lines }

// HighScore returns the best score seen, including previous sessions.
func (s *Session) HighScore() int { return s.highScore }

// Dims returns the well extents.
func (s *Session) Dims() Dims { return s.dims }

// Rules returns the rule set in force.
func (s *Session) Rules() Rules { return s.rules }

// Grid returns the live grid. Callers must treat it as read-only.
func (s *Session) Grid() *Grid { return s.grid }

// Active returns a copy of the falling piece, if any.
func (s *Session) Active() (Piece, bool) {
	if s.active == nil {
		return Piece{}, false
	}
	return *s.active, true
}

// FallInterval returns the gravity period for the current level.
func (s *Session) FallInterval() time.Duration {
	return s.rules.FallInterval(s.level)
}

func (s *Session) recordHighScore() {
	if s.score <= s.highScore {
		return
	}
	s.highScore = s.score
	if s.keeper == nil {
		return
	}
	if err := s.keeper.SaveHighScore(s.score); err != nil {
		s.logger.Warn("could not save high score", "score", s.score, "error", err)
	}
}
