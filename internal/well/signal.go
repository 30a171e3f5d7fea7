package well

// Signal is a discrete event emitted by the session for audio and UI feedback.
type Signal int

const (
	SignalMove Signal = iota
	SignalRotate
	SignalDrop
	SignalClear
	SignalLevelUp
	SignalGameOver
	SignalStart
)

func (s Signal) String() string {
	switch s {
	case SignalMove:
		return "move"
	case SignalRotate:
		return "rotate"
	case SignalDrop:
		return "drop"
	case SignalClear:
		return "clear"
	case SignalLevelUp:
		return "levelup"
	case SignalGameOver:
		return "gameover"
	case SignalStart:
		return "start"
	default:
		return "unknown"
	}
}

// SignalSink receives signals synchronously as they fire.
// Implementations must not block.
type SignalSink interface {
	Play(s Signal)
	// SetRate sets the continuous playback rate derived from the level.
	SetRate(rate float64)
}

// HighScoreKeeper persists the single high-score value.
type HighScoreKeeper interface {
	LoadHighScore() (int, error)
	SaveHighScore(score int) error
}

type nopSink struct{}

func (nopSink) Play(Signal)     {}
func (nopSink) SetRate(float64) {}

// Command is a discrete intent sent into the session.
type Command interface {
	command()
}

// CmdMove translates the active piece by a unit step on one axis.
type CmdMove struct {
	DX, DY, DZ int
}

// CmdRotate turns the active piece a quarter turn around Axis.
type CmdRotate struct {
	Axis Axis
	Dir  int
}

// CmdSoftDrop moves the active piece one cell down.
type CmdSoftDrop struct{}

// CmdHardDrop drops and locks the active piece.
type CmdHardDrop struct{}

// CmdTick advances gravity by one step.
type CmdTick struct{}

// CmdStart begins a new game.
type CmdStart struct{}

// CmdPause pauses a running game.
type CmdPause struct{}

// CmdResume resumes a paused game.
type CmdResume struct{}

func (CmdMove) command()     {}
func (CmdRotate) command()   {}
func (CmdSoftDrop) command() {}
func (CmdHardDrop) command() {}
func (CmdTick) command()     {}
func (CmdStart) command()    {}
func (CmdPause) command()    {}
func (CmdResume) command()   {}
