package well

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingSink struct {
	signals []Signal
	rates   []float64
}

func (r *recordingSink) Play(s Signal)        { r.signals = append(r.signals, s) }
func (r *recordingSink) SetRate(rate float64) { r.rates = append(r.rates, rate) }

type memKeeper struct {
	high    int
	saves   []int
	loadErr error
	saveErr error
}

func (m *memKeeper) LoadHighScore() (int, error) { return m.high, m.loadErr }

func (m *memKeeper) SaveHighScore(score int) error {
	m.saves = append(m.saves, score)
	if m.saveErr != nil {
		return m.saveErr
	}
	m.high = score
	return nil
}

func startedSession(t *testing.T, opts ...Option) *Session {
	t.Helper()
	s := NewSession(append([]Option{WithSeed(1)}, opts...)...)
	s.Start()
	require.Equal(t, StatusPlaying, s.Status())
	require.NotNil(t, s.active)
	return s
}

// place replaces the active piece.
func place(s *Session, kind Kind, pos Coord, shape Shape) {
	s.active = &Piece{Kind: kind, Pos: pos, Shape: shape}
}

func verticalI() Shape {
	return RotateShape(ArchetypeOf(KindI).Shape, AxisZ, 1)
}

func TestNewSessionStartsInMenu(t *testing.T) {
	s := NewSession(WithSeed(3))

	assert.Equal(t, StatusMenu, s.Status())
	assert.Equal(t, 1, s.Level())
	assert.Zero(t, s.Score())
	_, ok := s.Active()
	assert.False(t, ok)

	// Commands are ignored outside PLAYING.
	assert.False(t, s.Move(1, 0, 0))
	s.Tick()
	_, ok = s.Active()
	assert.False(t, ok)
}

func TestStartSpawnsAtTopCentre(t *testing.T) {
	s := startedSession(t)

	p, ok := s.Active()
	require.True(t, ok)
	assert.Equal(t, Coord{X: 3, Y: 16, Z: 3}, p.Pos)
	assert.Equal(t, ArchetypeOf(p.Kind).Shape, p.Shape)
	assert.Zero(t, p.Rotation)
}

func TestStartResetsCountersButKeepsHighScore(t *testing.T) {
	s := startedSession(t)
	s.score, s.lines, s.level, s.highScore = 900, 12, 2, 900
	s.grid.Set(Coord{}, &Block{})

	s.Start()

	assert.Zero(t, s.Score())
	assert.Zero(t, s.Lines())
	assert.Equal(t, 1, s.Level())
	assert.Equal(t, 900, s.HighScore())
	assert.Zero(t, s.Grid().Count())
}

func TestSpawnIsDeterministicForSeed(t *testing.T) {
	kinds := func() []Kind {
		s := startedSession(t)
		var out []Kind
		for range 20 {
			p, _ := s.Active()
			out = append(out, p.Kind)
			s.spawn()
		}
		return out
	}
	assert.Equal(t, kinds(), kinds())
}

func TestMove(t *testing.T) {
	s := startedSession(t)
	place(s, KindO, Coord{X: 2, Y: 5, Z: 2}, ArchetypeOf(KindO).Shape)
	s.DrainSignals()

	assert.True(t, s.Move(1, 0, 0))
	assert.True(t, s.Move(0, 0, -1))
	assert.True(t, s.Move(0, -1, 0))
	p, _ := s.Active()
	assert.Equal(t, Coord{X: 3, Y: 4, Z: 1}, p.Pos)
	assert.Equal(t, []Signal{SignalMove, SignalMove, SignalMove}, s.DrainSignals())

	// O spans x and x+1, so x=4 is the last column it fits.
	assert.True(t, s.Move(1, 0, 0))
	assert.False(t, s.Move(1, 0, 0))
	p, _ = s.Active()
	assert.Equal(t, 4, p.Pos.X)
	assert.Equal(t, []Signal{SignalMove}, s.DrainSignals(), "failed moves are silent")
}

func TestMoveRejectsNonUnitSteps(t *testing.T) {
	s := startedSession(t)
	place(s, KindO, Coord{X: 2, Y: 5, Z: 2}, ArchetypeOf(KindO).Shape)

	for _, d := range [][3]int{{0, 0, 0}, {2, 0, 0}, {1, 0, 1}, {0, -1, 1}} {
		assert.False(t, s.Move(d[0], d[1], d[2]), "step %v", d)
	}
	p, _ := s.Active()
	assert.Equal(t, Coord{X: 2, Y: 5, Z: 2}, p.Pos)
}

func TestMoveBlockedByStack(t *testing.T) {
	s := startedSession(t)
	place(s, KindO, Coord{X: 2, Y: 1, Z: 2}, ArchetypeOf(KindO).Shape)
	s.grid.Set(Coord{X: 3, Y: 0, Z: 3}, &Block{})

	assert.False(t, s.Move(0, -1, 0))
	assert.True(t, s.Move(-1, 0, 0))
	assert.True(t, s.Move(0, -1, 0), "O at x=1 clears the block")
}

func TestRotateWithoutKick(t *testing.T) {
	s := startedSession(t)
	t0 := ArchetypeOf(KindT).Shape
	place(s, KindT, Coord{X: 2, Y: 3, Z: 2}, t0)
	s.DrainSignals()

	require.True(t, s.Rotate(AxisY, 1))
	p, _ := s.Active()
	assert.Equal(t, RotateShape(t0, AxisY, 1), p.Shape)
	assert.Equal(t, Coord{X: 2, Y: 3, Z: 2}, p.Pos)
	assert.Equal(t, 1, p.Rotation)
	assert.Equal(t, []Signal{SignalRotate}, s.DrainSignals())

	require.True(t, s.Rotate(AxisY, -1))
	require.True(t, s.Rotate(AxisY, -1))
	p, _ = s.Active()
	assert.Equal(t, 3, p.Rotation)
}

func TestRotateKickIsFirstFreeOffset(t *testing.T) {
	run := func() Piece {
		s := startedSession(t)
		place(s, KindT, Coord{X: 4, Y: 0, Z: 3}, ArchetypeOf(KindT).Shape)
		// Blocks the unkicked rotation; +x pushes past the wall; -x fits.
		s.grid.Set(Coord{X: 4, Y: 0, Z: 2}, &Block{})

		require.True(t, s.Rotate(AxisY, 1))
		p, _ := s.Active()
		return p
	}

	first := run()
	assert.Equal(t, Coord{X: 3, Y: 0, Z: 3}, first.Pos)
	assert.Equal(t, first, run(), "kick selection must be deterministic")
}

func TestRotateUpKick(t *testing.T) {
	s := startedSession(t)
	place(s, KindI, Coord{X: 2, Y: 0, Z: 0}, ArchetypeOf(KindI).Shape)

	// Standing the I up around z would reach below the floor; only the
	// upward kick fits.
	require.True(t, s.Rotate(AxisZ, 1))
	p, _ := s.Active()
	assert.Equal(t, Coord{X: 2, Y: 1, Z: 0}, p.Pos)
	assert.Equal(t, verticalI(), p.Shape)
}

func TestRotateRejectedWhenNoKickFits(t *testing.T) {
	s := startedSession(t)
	i0 := ArchetypeOf(KindI).Shape
	place(s, KindI, Coord{X: 2, Y: 0, Z: 0}, i0)
	s.grid.Set(Coord{X: 2, Y: 2, Z: 0}, &Block{})
	s.DrainSignals()

	assert.False(t, s.Rotate(AxisZ, 1))
	p, _ := s.Active()
	assert.Equal(t, Piece{Kind: KindI, Pos: Coord{X: 2, Y: 0, Z: 0}, Shape: i0}, p)
	assert.Empty(t, s.DrainSignals())
}

func TestRotateRejectsBadDirection(t *testing.T) {
	s := startedSession(t)
	assert.False(t, s.Rotate(AxisX, 0))
	assert.False(t, s.Rotate(AxisX, 2))
}

func TestHardDropLocksImmediately(t *testing.T) {
	s := startedSession(t)
	place(s, KindO, Coord{X: 0, Y: 10, Z: 0}, ArchetypeOf(KindO).Shape)
	s.DrainSignals()

	dist := s.HardDrop()

	assert.Equal(t, 10, dist)
	_, ok := s.Active()
	assert.False(t, ok)
	assert.Equal(t, 4, s.Grid().Count())
	for _, c := range []Coord{{}, {X: 1}, {Z: 1}, {X: 1, Z: 1}} {
		b := s.Grid().At(c)
		require.NotNil(t, b, "cell %s", c)
		assert.Equal(t, KindO, b.Kind)
		assert.Equal(t, ArchetypeOf(KindO).Color, b.Color)
		assert.False(t, b.Special)
	}
	assert.Equal(t, []Signal{SignalDrop}, s.DrainSignals())
}

func TestBlockIDsAreUnique(t *testing.T) {
	s := startedSession(t)
	for range 5 {
		s.Tick()
		s.HardDrop()
	}
	ids := make(map[uint64]bool)
	s.Grid().Each(func(_ Coord, b *Block) {
		assert.False(t, ids[b.ID], "duplicate id %d", b.ID)
		ids[b.ID] = true
	})
}

func TestHardDropMatchesGravity(t *testing.T) {
	for seed := int64(1); seed <= 10; seed++ {
		dropped := NewSession(WithSeed(seed))
		ticked := NewSession(WithSeed(seed))
		dropped.Start()
		ticked.Start()

		for range 8 {
			if dropped.Status() != StatusPlaying {
				break
			}
			dropped.HardDrop()
			dropped.Tick()

			for ticked.active != nil && ticked.Status() == StatusPlaying {
				ticked.Tick()
			}
			ticked.Tick()
		}

		assert.True(t, dropped.Grid().Equal(ticked.Grid()), "seed %d", seed)
		assert.Equal(t, dropped.Score(), ticked.Score(), "seed %d", seed)
		assert.Equal(t, dropped.Status(), ticked.Status(), "seed %d", seed)
	}
}

func TestTickFallsThenLocks(t *testing.T) {
	s := startedSession(t)
	place(s, KindO, Coord{X: 0, Y: 1, Z: 0}, ArchetypeOf(KindO).Shape)
	s.DrainSignals()

	s.Tick()
	p, ok := s.Active()
	require.True(t, ok)
	assert.Equal(t, 0, p.Pos.Y)
	assert.Empty(t, s.DrainSignals(), "gravity does not emit move")

	s.Tick()
	_, ok = s.Active()
	assert.False(t, ok)
	assert.Equal(t, 4, s.Grid().Count())

	s.Tick()
	_, ok = s.Active()
	assert.True(t, ok, "next tick spawns")
}

func TestSingleLayerClearScores(t *testing.T) {
	s := startedSession(t)
	fillLayer(s.grid, 0, []Coord{{X: 0, Z: 0}})
	place(s, KindI, Coord{X: 0, Y: 8, Z: 0}, verticalI())
	s.DrainSignals()

	s.HardDrop()

	assert.Equal(t, 1, s.Lines())
	assert.Equal(t, 100, s.Score())
	// 35 filler blocks + 4 piece cells - one full layer of 36.
	assert.Equal(t, 3, s.Grid().Count())
	for y := range 3 {
		assert.Equal(t, KindI, s.Grid().At(Coord{Y: y}).Kind)
	}
	assert.Equal(t, []Signal{SignalDrop, SignalClear}, s.DrainSignals())
}

func TestMultiLayerClearScores(t *testing.T) {
	tests := []struct {
		layers int
		score  int
	}{
		{1, 100},
		{2, 300},
		{3, 500},
		{4, 800},
	}
	for _, tc := range tests {
		s := startedSession(t, WithRules(func() Rules {
			r := DefaultRules()
			r.SpecialEvery = 0
			return r
		}()))
		for y := range tc.layers {
			fillLayer(s.grid, y, []Coord{{X: 0, Z: 0}})
		}
		place(s, KindI, Coord{X: 0, Y: 8, Z: 0}, verticalI())

		s.HardDrop()

		assert.Equal(t, tc.layers, s.Lines(), "layers %d", tc.layers)
		assert.Equal(t, tc.score, s.Score(), "layers %d", tc.layers)
		assert.Equal(t, 4-tc.layers, s.Grid().Count(), "layers %d", tc.layers)
	}
}

func TestLevelUpAndRate(t *testing.T) {
	sink := &recordingSink{}
	s := startedSession(t, WithSink(sink))
	s.lines = 9
	fillLayer(s.grid, 0, []Coord{{X: 0, Z: 0}})
	place(s, KindI, Coord{X: 0, Y: 8, Z: 0}, verticalI())
	sink.signals = nil

	s.HardDrop()

	assert.Equal(t, 10, s.Lines())
	assert.Equal(t, 2, s.Level())
	assert.Equal(t, 100, s.Score(), "points use the level before the clear")
	assert.Equal(t, []Signal{SignalDrop, SignalClear, SignalLevelUp}, sink.signals)
	require.NotEmpty(t, sink.rates)
	assert.InDelta(t, 1.1, sink.rates[len(sink.rates)-1], 1e-9)
	assert.Equal(t, 950*time.Millisecond, s.FallInterval())
}

func TestSpecialCellOnThirdLayer(t *testing.T) {
	s := startedSession(t)
	for y := range 3 {
		fillLayer(s.grid, y, []Coord{{X: 0, Z: 0}})
	}
	place(s, KindI, Coord{X: 0, Y: 8, Z: 0}, verticalI())

	s.HardDrop()

	require.Equal(t, 3, s.Lines())
	require.Equal(t, 1, s.Grid().Count())
	assert.True(t, s.Grid().At(Coord{}).Special)
}

func TestNoSpecialBeforeThreshold(t *testing.T) {
	s := startedSession(t)
	fillLayer(s.grid, 0, []Coord{{X: 0, Z: 0}})
	place(s, KindI, Coord{X: 0, Y: 8, Z: 0}, verticalI())

	s.HardDrop()

	s.Grid().Each(func(c Coord, b *Block) {
		assert.False(t, b.Special, "cell %s", c)
	})
}

func TestLockAboveCeilingEndsGame(t *testing.T) {
	s := startedSession(t)
	s.grid.Set(Coord{X: 2, Y: 3, Z: 2}, &Block{})
	before := s.Grid().Clone()
	// Vertical I with its top two cells above the well.
	place(s, KindI, Coord{X: 0, Y: 15, Z: 0}, verticalI())
	s.DrainSignals()

	s.lock()

	assert.Equal(t, StatusGameOver, s.Status())
	assert.True(t, before.Equal(s.Grid()), "grid must be untouched")
	assert.Equal(t, []Signal{SignalGameOver}, s.DrainSignals())

	_, ok := s.Active()
	assert.False(t, ok, "the overflowing piece is discarded")
	snap := s.Snapshot()
	assert.False(t, snap.HasPiece)
	assert.Empty(t, snap.Piece)
	assert.Empty(t, snap.Ghost)
}

func TestGameOverWhenCenterColumnFull(t *testing.T) {
	s := startedSession(t)
	for y := range DefaultDims.Height {
		s.grid.Set(Coord{X: 3, Y: y, Z: 3}, &Block{})
	}
	before := s.Grid().Clone()

	// The freshly spawned piece hangs above the well; it cannot fall, and
	// locking it there ends the game.
	signals := s.Apply(CmdTick{})

	assert.Equal(t, StatusGameOver, s.Status())
	assert.Equal(t, []Signal{SignalGameOver}, signals)
	assert.True(t, before.Equal(s.Grid()))

	// Terminal until restarted.
	s.Tick()
	assert.False(t, s.Move(1, 0, 0))
	assert.Equal(t, StatusGameOver, s.Status())

	s.Start()
	assert.Equal(t, StatusPlaying, s.Status())
	assert.Zero(t, s.Grid().Count())
}

func TestPauseGatesCommands(t *testing.T) {
	s := startedSession(t)
	place(s, KindO, Coord{X: 2, Y: 8, Z: 2}, ArchetypeOf(KindO).Shape)

	s.Pause()
	assert.Equal(t, StatusPaused, s.Status())
	assert.False(t, s.Move(1, 0, 0))
	assert.False(t, s.Rotate(AxisY, 1))
	assert.Zero(t, s.HardDrop())
	s.Tick()
	p, _ := s.Active()
	assert.Equal(t, Coord{X: 2, Y: 8, Z: 2}, p.Pos)

	s.Resume()
	assert.Equal(t, StatusPlaying, s.Status())
	assert.True(t, s.Move(1, 0, 0))

	s.TogglePause()
	assert.Equal(t, StatusPaused, s.Status())
	s.TogglePause()
	assert.Equal(t, StatusPlaying, s.Status())
}

func TestPauseIgnoredOutsidePlaying(t *testing.T) {
	s := NewSession()
	s.Pause()
	assert.Equal(t, StatusMenu, s.Status())
	s.Resume()
	assert.Equal(t, StatusMenu, s.Status())
}

func TestApplyReturnsSignals(t *testing.T) {
	s := NewSession(WithSeed(5))

	assert.Equal(t, []Signal{SignalStart}, s.Apply(CmdStart{}))
	place(s, KindO, Coord{X: 2, Y: 4, Z: 2}, ArchetypeOf(KindO).Shape)

	assert.Equal(t, []Signal{SignalMove}, s.Apply(CmdMove{DX: 1}))
	assert.Nil(t, s.Apply(CmdMove{DX: 5}))
	assert.Equal(t, []Signal{SignalRotate}, s.Apply(CmdRotate{Axis: AxisY, Dir: 1}))
	assert.Equal(t, []Signal{SignalMove}, s.Apply(CmdSoftDrop{}))
	assert.Nil(t, s.Apply(CmdPause{}))
	assert.Equal(t, StatusPaused, s.Status())
	assert.Nil(t, s.Apply(CmdHardDrop{}))
	assert.Nil(t, s.Apply(CmdResume{}))
	assert.Equal(t, []Signal{SignalDrop}, s.Apply(CmdHardDrop{}))
}

func TestHighScoreKeeper(t *testing.T) {
	keeper := &memKeeper{high: 50}
	s := startedSession(t, WithHighScoreKeeper(keeper))
	assert.Equal(t, 50, s.HighScore())

	fillLayer(s.grid, 0, []Coord{{X: 0, Z: 0}})
	place(s, KindI, Coord{X: 0, Y: 8, Z: 0}, verticalI())
	s.HardDrop()

	assert.Equal(t, 100, s.HighScore())
	assert.Equal(t, []int{100}, keeper.saves)

	// Locks that do not beat the record do not write.
	place(s, KindO, Coord{X: 3, Y: 8, Z: 3}, ArchetypeOf(KindO).Shape)
	s.HardDrop()
	assert.Equal(t, []int{100}, keeper.saves)
}

func TestHighScoreKeeperErrorsAreNotFatal(t *testing.T) {
	keeper := &memKeeper{loadErr: errors.New("disk gone"), saveErr: errors.New("disk gone")}
	s := startedSession(t, WithHighScoreKeeper(keeper))
	assert.Zero(t, s.HighScore())

	fillLayer(s.grid, 0, []Coord{{X: 0, Z: 0}})
	place(s, KindI, Coord{X: 0, Y: 8, Z: 0}, verticalI())
	s.HardDrop()

	assert.Equal(t, 100, s.HighScore())
	assert.Equal(t, StatusPlaying, s.Status())
}

func TestSnapshotGhostMatchesHardDrop(t *testing.T) {
	s := startedSession(t)
	s.grid.Set(Coord{X: 3, Y: 4, Z: 3}, &Block{Kind: KindJ, Special: true, ID: 99})
	place(s, KindO, Coord{X: 3, Y: 12, Z: 3}, ArchetypeOf(KindO).Shape)

	snap := s.Snapshot()

	require.True(t, snap.HasPiece)
	assert.Equal(t, KindO, snap.PieceKind)
	assert.Equal(t, ArchetypeOf(KindO).Color, snap.PieceColor)
	require.Len(t, snap.Piece, 4)
	require.Len(t, snap.Ghost, 4)
	assert.Contains(t, snap.Ghost, Coord{X: 3, Y: 5, Z: 3})
	require.Len(t, snap.Blocks, 1)
	assert.True(t, snap.Blocks[0].Special)
	assert.Equal(t, time.Second, snap.FallInterval)
	assert.InDelta(t, 1.0, snap.PlaybackRate, 1e-9)

	ghost, ok := s.Ghost()
	require.True(t, ok)
	s.HardDrop()
	assert.Equal(t, Coord{X: 3, Y: 5, Z: 3}, ghost)
	assert.NotNil(t, s.Grid().At(Coord{X: 3, Y: 5, Z: 3}))
}
