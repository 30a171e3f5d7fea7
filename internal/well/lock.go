package well

// spawn places a random archetype at the top centre of the well. When that
// spot is already blocked the game is over and no piece is created.
func (s *Session) spawn() {
	arch := catalog[s.rng.Intn(len(catalog))]
	pos := Coord{X: s.dims.Cols / 2, Y: s.dims.Height, Z: s.dims.Rows / 2}

	// Catalog shapes spawn flat above the ceiling; this guards taller shapes.
	if Collides(s.grid, pos, arch.Shape) {
		s.gameOver()
		return
	}
	s.active = &Piece{Kind: arch.Kind, Pos: pos, Shape: arch.Shape}
}

// lock merges the active piece into the grid, clears full layers and updates
// progression. A piece with any cell at or above the ceiling ends the game,
// leaves the grid untouched and is discarded.
func (s *Session) lock() {
	p := s.active
	if p == nil {
		return
	}
	cells := p.Cells()
	for _, c := range cells {
		if c.Y >= s.dims.Height {
			s.gameOver()
			return
		}
	}

	color := ArchetypeOf(p.Kind).Color
	for _, c := range cells {
		s.nextID++
		s.grid.Set(c, &Block{Color: color, Kind: p.Kind, ID: s.nextID})
	}

	cleared := ClearLayers(s.grid)
	prevLines, prevLevel := s.lines, s.level

	s.lines += cleared
	s.score += s.rules.ScoreFor(cleared, prevLevel)
	if lvl := s.rules.LevelFor(s.lines); lvl > s.level {
		s.level = lvl
	}
	if s.rules.crossesSpecial(prevLines, s.lines) {
		s.markSpecial()
	}

	s.active = nil
	if cleared > 0 {
		s.emit(SignalClear)
	}
	if s.level > prevLevel {
		s.emit(SignalLevelUp)
	}
	s.sink.SetRate(s.rules.PlaybackRate(s.level))
	s.recordHighScore()
}

func (s *Session) gameOver() {
	s.active = nil
	s.status = StatusGameOver
	s.emit(SignalGameOver)
}

// ClearLayers removes every completely filled horizontal layer and drops the
// layers above it, so no gap is left where a layer was removed. It returns
// the number of layers cleared.
func ClearLayers(g *Grid) int {
	kept := make([][][]*Block, 0, g.dims.Height)
	cleared := 0
	for y := range g.cells {
		if g.LayerFull(y) {
			cleared++
			continue
		}
		kept = append(kept, g.cells[y])
	}
	if cleared == 0 {
		return 0
	}
	for len(kept) < g.dims.Height {
		kept = append(kept, newLayer(g.dims))
	}
	g.cells = kept
	return cleared
}

// markSpecial flags one uniformly chosen occupied block.
func (s *Session) markSpecial() {
	var occupied []*Block
	s.grid.Each(func(_ Coord, b *Block) {
		occupied = append(occupied, b)
	})
	if len(occupied) == 0 {
		return
	}
	occupied[s.rng.Intn(len(occupied))].Special = true
}
