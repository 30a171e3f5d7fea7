// Package well implements the 3D falling-block game model: the voxel grid,
// the active piece, collision, rotation with kicks, layer clearing, scoring
// and level progression.
//
// Like the rest of the core it has no terminal or audio dependencies. The
// platform drives it with commands and reads Snapshots back for rendering.
package well

import (
	"fmt"

	"github.com/vovakirdan/tetris3d/internal/core"
)

// Coord is an integer position in the well. X runs along the width,
// Y is the vertical axis (0 is the floor) and Z runs along the depth.
// It is used both for absolute grid positions and for shape offsets.
type Coord struct {
	X, Y, Z int
}

// Add returns the component-wise sum of two coordinates.
func (c Coord) Add(o Coord) Coord {
	return Coord{X: c.X + o.X, Y: c.Y + o.Y, Z: c.Z + o.Z}
}

func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d,%d)", c.X, c.Y, c.Z)
}

// Kind identifies a piece archetype.
type Kind int

const (
	KindNone Kind = iota
	KindI
	KindO
	KindT
	KindS
	KindZ
	KindJ
	KindL
)

// String returns the single-letter archetype name.
func (k Kind) String() string {
	switch k {
	case KindI:
		return "I"
	case KindO:
		return "O"
	case KindT:
		return "T"
	case KindS:
		return "S"
	case KindZ:
		return "Z"
	case KindJ:
		return "J"
	case KindL:
		return "L"
	default:
		return "-"
	}
}

// PieceSize is the number of cells in every archetype.
const PieceSize = 4

// Shape is a piece's cell offsets relative to its pivot.
type Shape [PieceSize]Coord

// Archetype is an immutable piece definition from the catalog.
type Archetype struct {
	Kind  Kind
	Shape Shape // spawn orientation, pivot at (0,0,0)
	Color core.Color
}

// Spawn orientations lie flat in the x/z plane.
var catalog = [...]Archetype{
	{
		Kind:  KindI,
		Shape: Shape{{X: -1}, {}, {X: 1}, {X: 2}},
		Color: core.ColorBrightCyan,
	},
	{
		Kind:  KindO,
		Shape: Shape{{}, {X: 1}, {Z: 1}, {X: 1, Z: 1}},
		Color: core.ColorBrightYellow,
	},
	{
		Kind:  KindT,
		Shape: Shape{{X: -1}, {}, {X: 1}, {Z: 1}},
		Color: core.ColorMagenta,
	},
	{
		Kind:  KindS,
		Shape: Shape{{}, {X: 1}, {X: -1, Z: 1}, {Z: 1}},
		Color: core.ColorBrightGreen,
	},
	{
		Kind:  KindZ,
		Shape: Shape{{X: -1}, {}, {Z: 1}, {X: 1, Z: 1}},
		Color: core.ColorBrightRed,
	},
	{
		Kind:  KindJ,
		Shape: Shape{{X: -1}, {}, {X: 1}, {X: -1, Z: 1}},
		Color: core.ColorBlue,
	},
	{
		Kind:  KindL,
		Shape: Shape{{X: -1}, {}, {X: 1}, {X: 1, Z: 1}},
		Color: core.ColorOrange,
	},
}

// Catalog returns the seven archetypes in a fixed order (I, O, T, S, Z, J, L).
// The returned slice is a copy.
func Catalog() []Archetype {
	out := make([]Archetype, len(catalog))
	copy(out, catalog[:])
	return out
}

// ArchetypeOf returns the catalog entry for kind.
// Panics on KindNone or an unknown kind.
func ArchetypeOf(kind Kind) Archetype {
	idx := int(kind) - 1
	if idx < 0 || idx >= len(catalog) {
		panic(fmt.Sprintf("well: unknown piece kind %d", kind))
	}
	return catalog[idx]
}

// Axis selects the rotation axis.
type Axis int

const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

func (a Axis) String() string {
	switch a {
	case AxisX:
		return "x"
	case AxisY:
		return "y"
	case AxisZ:
		return "z"
	default:
		return "?"
	}
}

// RotatePoint turns an offset by 90 degrees around axis. dir is +1 or -1.
// The transforms are exact integer rotation matrices, so rotating by dir and
// then by -dir restores the original offset.
func RotatePoint(c Coord, axis Axis, dir int) Coord {
	switch axis {
	case AxisX:
		return Coord{X: c.X, Y: -c.Z * dir, Z: c.Y * dir}
	case AxisY:
		return Coord{X: c.Z * dir, Y: c.Y, Z: -c.X * dir}
	default:
		return Coord{X: -c.Y * dir, Y: c.X * dir, Z: c.Z}
	}
}

// RotateShape applies RotatePoint to every offset.
func RotateShape(s Shape, axis Axis, dir int) Shape {
	var out Shape
	for i, c := range s {
		out[i] = RotatePoint(c, axis, dir)
	}
	return out
}

// Kicks returns the ordered positional corrections tried after a rotation:
// none, along x in the rotation direction and against it, the same along z,
// then one cell up.
func Kicks(dir int) [6]Coord {
	return [6]Coord{
		{},
		{X: dir},
		{X: -dir},
		{Z: dir},
		{Z: -dir},
		{Y: 1},
	}
}
