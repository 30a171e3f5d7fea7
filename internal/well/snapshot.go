package well

import (
	"time"

	"github.com/vovakirdan/tetris3d/internal/core"
)

// SnapshotBlock is one locked cell as seen by a renderer.
type SnapshotBlock struct {
	Pos     Coord
	Color   core.Color
	Special bool
	ID      uint64
}

// Snapshot is a read-only copy of everything a renderer needs.
type Snapshot struct {
	Dims      Dims
	Status    Status
	Score     int
	Level     int
	Lines     int
	HighScore int

	Blocks []SnapshotBlock

	HasPiece   bool
	PieceKind  Kind
	PieceColor core.Color
	Piece      []Coord
	Ghost      []Coord

	FallInterval time.Duration
	PlaybackRate float64
}

// Snapshot copies the current state for rendering.
func (s *Session) Snapshot() Snapshot {
	snap := Snapshot{
		Dims:         s.dims,
		Status:       s.status,
		Score:        s.score,
		Level:        s.level,
		Lines:        s.lines,
		HighScore:    s.highScore,
		Blocks:       make([]SnapshotBlock, 0, s.grid.Count()),
		FallInterval: s.FallInterval(),
		PlaybackRate: s.rules.PlaybackRate(s.level),
	}
	s.grid.Each(func(c Coord, b *Block) {
		snap.Blocks = append(snap.Blocks, SnapshotBlock{
			Pos:     c,
			Color:   b.Color,
			Special: b.Special,
			ID:      b.ID,
		})
	})

	if s.active == nil {
		return snap
	}
	snap.HasPiece = true
	snap.PieceKind = s.active.Kind
	snap.PieceColor = ArchetypeOf(s.active.Kind).Color

	ghost := s.restingPos(*s.active)
	for _, off := range s.active.Shape {
		snap.Piece = append(snap.Piece, s.active.Pos.Add(off))
		snap.Ghost = append(snap.Ghost, ghost.Add(off))
	}
	return snap
}
