package well

// Piece is the falling piece. Pos is the pivot's absolute position and
// Shape the current, possibly rotated, offsets.
type Piece struct {
	Kind     Kind
	Pos      Coord
	Shape    Shape
	Rotation int // quarter turns applied, 0..3
}

// Cells returns the absolute coordinates the piece covers.
func (p Piece) Cells() [PieceSize]Coord {
	var out [PieceSize]Coord
	for i, off := range p.Shape {
		out[i] = p.Pos.Add(off)
	}
	return out
}

// isUnitStep reports whether exactly one component is +-1 and the rest zero.
func isUnitStep(dx, dy, dz int) bool {
	n := 0
	for _, v := range [3]int{dx, dy, dz} {
		switch v {
		case 0:
		case 1, -1:
			n++
		default:
			return false
		}
	}
	return n == 1
}

// Move shifts the active piece by one cell along one axis. It returns false
// without changing anything when the target is blocked, the step is not a
// unit step, or the game is not running.
func (s *Session) Move(dx, dy, dz int) bool {
	if !s.playing() || s.active == nil || !isUnitStep(dx, dy, dz) {
		return false
	}
	next := s.active.Pos.Add(Coord{X: dx, Y: dy, Z: dz})
	if Collides(s.grid, next, s.active.Shape) {
		return false
	}
	s.active.Pos = next
	s.emit(SignalMove)
	return true
}

// SoftDrop moves the active piece one cell down.
func (s *Session) SoftDrop() bool {
	return s.Move(0, -1, 0)
}

// Rotate turns the active piece a quarter turn around axis, trying each kick
// in order and taking the first that fits. A rotation that fits nowhere is
// dropped and Rotate returns false.
func (s *Session) Rotate(axis Axis, dir int) bool {
	if !s.playing() || s.active == nil || (dir != 1 && dir != -1) {
		return false
	}
	shape := RotateShape(s.active.Shape, axis, dir)
	for _, kick := range Kicks(dir) {
		pos := s.active.Pos.Add(kick)
		if Collides(s.grid, pos, shape) {
			continue
		}
		s.active.Pos = pos
		s.active.Shape = shape
		s.active.Rotation = (s.active.Rotation + dir + 4) % 4
		s.emit(SignalRotate)
		return true
	}
	return false
}

// HardDrop drops the active piece as far as it goes and locks it in the same
// step. It returns the number of cells fallen.
func (s *Session) HardDrop() int {
	if !s.playing() || s.active == nil {
		return 0
	}
	rest := s.restingPos(*s.active)
	dist := s.active.Pos.Y - rest.Y
	s.active.Pos = rest
	s.emit(SignalDrop)
	s.lock()
	return dist
}

// Tick applies one step of gravity: spawn when there is no piece, otherwise
// fall one cell or lock when blocked.
func (s *Session) Tick() {
	if !s.playing() {
		return
	}
	if s.active == nil {
		s.spawn()
		return
	}
	below := s.active.Pos.Add(Coord{Y: -1})
	if Collides(s.grid, below, s.active.Shape) {
		s.lock()
		return
	}
	s.active.Pos = below
}

// Ghost returns where the active piece would come to rest if dropped now.
func (s *Session) Ghost() (Coord, bool) {
	if s.active == nil {
		return Coord{}, false
	}
	return s.restingPos(*s.active), true
}

func (s *Session) restingPos(p Piece) Coord {
	pos := p.Pos
	for !Collides(s.grid, pos.Add(Coord{Y: -1}), p.Shape) {
		pos.Y--
	}
	return pos
}
