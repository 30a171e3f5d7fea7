package well

import (
	"fmt"

	"github.com/vovakirdan/tetris3d/internal/core"
)

// Dims are the fixed extents of the well.
type Dims struct {
	Cols   int // width, x axis
	Rows   int // depth, z axis
	Height int // y axis
}

// DefaultDims is the reference 6x6x16 well.
var DefaultDims = Dims{Cols: 6, Rows: 6, Height: 16}

// LayerSize returns the number of cells in one horizontal layer.
func (d Dims) LayerSize() int {
	return d.Cols * d.Rows
}

// Block is a placed cell.
type Block struct {
	Color   core.Color
	Kind    Kind
	Special bool   // cosmetic marker, see Rules.SpecialEvery
	ID      uint64 // stable rendering key, unique per session
}

// Grid is the voxel volume of locked blocks, stored as [y][z][x].
// Its extents never change after construction.
type Grid struct {
	dims  Dims
	cells [][][]*Block
}

// NewGrid allocates an empty grid.
func NewGrid(d Dims) *Grid {
	if d.Cols <= 0 || d.Rows <= 0 || d.Height <= 0 {
		panic(fmt.Sprintf("well: invalid grid dims %+v", d))
	}
	g := &Grid{dims: d}
	g.cells = make([][][]*Block, d.Height)
	for y := range g.cells {
		g.cells[y] = newLayer(d)
	}
	return g
}

func newLayer(d Dims) [][]*Block {
	layer := make([][]*Block, d.Rows)
	for z := range layer {
		layer[z] = make([]*Block, d.Cols)
	}
	return layer
}

// Dims returns the grid extents.
func (g *Grid) Dims() Dims {
	return g.dims
}

// InBounds reports whether c lies inside the grid volume.
func (g *Grid) InBounds(c Coord) bool {
	return c.X >= 0 && c.X < g.dims.Cols &&
		c.Z >= 0 && c.Z < g.dims.Rows &&
		c.Y >= 0 && c.Y < g.dims.Height
}

// At returns the block at c, or nil if the cell is empty or out of bounds.
func (g *Grid) At(c Coord) *Block {
	if !g.InBounds(c) {
		return nil
	}
	return g.cells[c.Y][c.Z][c.X]
}

// Occupied reports whether an in-bounds cell holds a block.
func (g *Grid) Occupied(c Coord) bool {
	return g.At(c) != nil
}

// Set stores b at c (nil empties the cell).
// Writing outside the grid is a programming error and panics.
func (g *Grid) Set(c Coord, b *Block) {
	if !g.InBounds(c) {
		panic(fmt.Sprintf("well: grid write out of bounds at %s", c))
	}
	g.cells[c.Y][c.Z][c.X] = b
}

// LayerFull reports whether every cell of layer y is occupied.
func (g *Grid) LayerFull(y int) bool {
	if y < 0 || y >= g.dims.Height {
		return false
	}
	for _, row := range g.cells[y] {
		for _, b := range row {
			if b == nil {
				return false
			}
		}
	}
	return true
}

// Count returns the number of occupied cells.
func (g *Grid) Count() int {
	n := 0
	g.Each(func(Coord, *Block) { n++ })
	return n
}

// Each calls fn for every occupied cell, bottom layer first.
func (g *Grid) Each(fn func(c Coord, b *Block)) {
	for y, layer := range g.cells {
		for z, row := range layer {
			for x, b := range row {
				if b != nil {
					fn(Coord{X: x, Y: y, Z: z}, b)
				}
			}
		}
	}
}

// Clone returns a deep copy of the grid.
func (g *Grid) Clone() *Grid {
	c := NewGrid(g.dims)
	g.Each(func(pos Coord, b *Block) {
		cp := *b
		c.cells[pos.Y][pos.Z][pos.X] = &cp
	})
	return c
}

// Equal reports whether two grids have the same extents and the same
// occupancy, colors, kinds and special markers. Block IDs are ignored.
func (g *Grid) Equal(o *Grid) bool {
	if g.dims != o.dims {
		return false
	}
	for y := range g.cells {
		for z := range g.cells[y] {
			for x := range g.cells[y][z] {
				a, b := g.cells[y][z][x], o.cells[y][z][x]
				if (a == nil) != (b == nil) {
					return false
				}
				if a != nil && (a.Color != b.Color || a.Kind != b.Kind || a.Special != b.Special) {
					return false
				}
			}
		}
	}
	return true
}

// Collides reports whether shape placed at pos hits a wall, the floor or a
// locked block. Cells at or above the well height are free: a piece may
// hang above the stack until lock time decides what that means.
func Collides(g *Grid, pos Coord, shape Shape) bool {
	for _, off := range shape {
		c := pos.Add(off)
		if c.X < 0 || c.X >= g.dims.Cols || c.Z < 0 || c.Z >= g.dims.Rows || c.Y < 0 {
			return true
		}
		if c.Y < g.dims.Height && g.cells[c.Y][c.Z][c.X] != nil {
			return true
		}
	}
	return false
}
