package tui

import (
	"fmt"
	"math"

	"github.com/dustin/go-humanize"

	"github.com/vovakirdan/tetris3d/internal/core"
	"github.com/vovakirdan/tetris3d/internal/well"
)

// cellW is the character width of one voxel; two columns keep cells square.
const cellW = 2

// hudW is the width of the score panel.
const hudW = 22

// depthShades goes from nearest to farthest.
var depthShades = [...]rune{'█', '▓', '▒', '░'}

// projection flattens the well along one axis.
type projection struct {
	title string
	w, h  int // in voxels
	depth int // extent along the viewing axis
	// project maps a well coordinate to a panel cell (u right, v down) and
	// its distance from the viewer.
	project func(c well.Coord) (u, v, d int)
}

func frontView(d well.Dims) projection {
	return projection{
		title: "FRONT x/y",
		w:     d.Cols, h: d.Height, depth: d.Rows,
		project: func(c well.Coord) (int, int, int) {
			return c.X, d.Height - 1 - c.Y, d.Rows - 1 - c.Z
		},
	}
}

func sideView(d well.Dims) projection {
	return projection{
		title: "SIDE z/y",
		w:     d.Rows, h: d.Height, depth: d.Cols,
		project: func(c well.Coord) (int, int, int) {
			return d.Rows - 1 - c.Z, d.Height - 1 - c.Y, d.Cols - 1 - c.X
		},
	}
}

func topView(d well.Dims) projection {
	return projection{
		title: "TOP x/z",
		w:     d.Cols, h: d.Rows, depth: d.Height,
		project: func(c well.Coord) (int, int, int) {
			return c.X, c.Z, d.Height - 1 - c.Y
		},
	}
}

// panelSize is the framed size of a projection in characters.
func (p projection) panelSize() (w, h int) {
	return p.w*cellW + 2, p.h + 2
}

// Layout is where each panel sits on the screen.
type Layout struct {
	Front, Side, Top, HUD core.Rect
	W, H                  int
}

// NewLayout arranges the front and side views next to each other with the
// top view stacked over the HUD in a third column. Row 0 holds panel titles.
func NewLayout(d well.Dims) Layout {
	fw, fh := frontView(d).panelSize()
	sw, sh := sideView(d).panelSize()
	tw, th := topView(d).panelSize()

	col3 := max(tw, hudW)
	l := Layout{
		Front: core.NewRect(0, 1, fw, fh),
		Side:  core.NewRect(fw+1, 1, sw, sh),
		Top:   core.NewRect(fw+sw+2, 1, tw, th),
	}
	l.HUD = core.NewRect(l.Top.X, l.Top.Bottom()+1, col3, 9)
	l.W = l.Top.X + col3
	l.H = max(l.Front.Bottom(), l.Side.Bottom(), l.HUD.Bottom())
	return l
}

// plotted is the nearest thing visible through one panel cell.
type plotted struct {
	depth int
	color core.Color
	glyph [cellW]rune
}

// drawProjection renders snap through p into the area r of scr.
func drawProjection(scr *core.Screen, r core.Rect, p projection, snap well.Snapshot) {
	scr.DrawBox(r, core.ColorGray)
	scr.DrawTextColored(r.X, r.Y-1, p.title, core.ColorGray)

	cells := make([]plotted, p.w*p.h)
	for i := range cells {
		cells[i].depth = math.MaxInt
	}
	at := func(u, v int) *plotted {
		if u < 0 || u >= p.w || v < 0 || v >= p.h {
			return nil
		}
		return &cells[v*p.w+u]
	}

	for _, b := range snap.Blocks {
		u, v, d := p.project(b.Pos)
		c := at(u, v)
		if c == nil || d >= c.depth {
			continue
		}
		g := shade(d, p.depth)
		if b.Special {
			g = '◆'
		}
		*c = plotted{depth: d, color: b.Color, glyph: [cellW]rune{g, g}}
	}

	if snap.HasPiece {
		for _, pos := range snap.Ghost {
			u, v, d := p.project(pos)
			if c := at(u, v); c != nil && d < c.depth {
				*c = plotted{depth: d, color: core.ColorGray, glyph: [cellW]rune{'[', ']'}}
			}
		}
		// The falling piece is always drawn on top so it is never hidden.
		for _, pos := range snap.Piece {
			u, v, _ := p.project(pos)
			if c := at(u, v); c != nil {
				*c = plotted{depth: -1, color: snap.PieceColor, glyph: [cellW]rune{'█', '█'}}
			}
		}
	}

	inner := r.Inset(1)
	for v := range p.h {
		for u := range p.w {
			c := cells[v*p.w+u]
			x, y := inner.X+u*cellW, inner.Y+v
			if c.depth == math.MaxInt {
				scr.SetCell(x, y, ' ', core.ColorDefault)
				scr.SetCell(x+1, y, '·', core.ColorGray)
				continue
			}
			scr.SetCell(x, y, c.glyph[0], c.color)
			scr.SetCell(x+1, y, c.glyph[1], c.color)
		}
	}
}

// shade picks a fill character from the distance to the viewer.
func shade(d, extent int) rune {
	if extent <= 1 {
		return depthShades[0]
	}
	i := d * len(depthShades) / extent
	return depthShades[core.Clamp(i, 0, len(depthShades)-1)]
}

// hudInfo is the non-game state the HUD shows.
type hudInfo struct {
	sound  string
	flash  string
	user   string
	online int // players on the server, 0 when playing locally
}

func drawHUD(scr *core.Screen, r core.Rect, snap well.Snapshot, info hudInfo) {
	scr.DrawBox(r, core.ColorGray)
	inner := r.Inset(1)

	row := func(i int, label, value string, c core.Color) {
		scr.DrawTextColored(inner.X+1, inner.Y+i, label, core.ColorGray)
		scr.DrawTextColored(inner.X+8, inner.Y+i, value, c)
	}
	row(0, "SCORE", humanize.Comma(int64(snap.Score)), core.ColorBrightWhite)
	row(1, "HIGH", humanize.Comma(int64(snap.HighScore)), core.ColorYellow)
	row(2, "LEVEL", fmt.Sprintf("%d", snap.Level), core.ColorBrightCyan)
	row(3, "LINES", fmt.Sprintf("%d", snap.Lines), core.ColorBrightCyan)
	row(4, "SPEED", snap.FallInterval.String(), core.ColorDefault)
	row(5, "SOUND", info.sound, core.ColorDefault)
	if info.flash != "" {
		scr.DrawTextColored(inner.X+1, inner.Y+6, truncate(info.flash, inner.W-1), core.ColorBrightMagenta)
	}
}

// truncate cuts s to at most n runes.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:max(n, 0)])
}

// overlayText is drawn across the front view for non-playing states.
func overlayText(status well.Status) (string, core.Color) {
	switch status {
	case well.StatusMenu:
		return "PRESS ENTER", core.ColorBrightGreen
	case well.StatusPaused:
		return "PAUSED", core.ColorBrightYellow
	case well.StatusGameOver:
		return "GAME OVER", core.ColorBrightRed
	default:
		return "", core.ColorDefault
	}
}

// DrawWell renders every panel for snap. scr must be at least l.W x l.H.
func DrawWell(scr *core.Screen, l Layout, snap well.Snapshot, info hudInfo) {
	scr.Clear()

	drawProjection(scr, l.Front, frontView(snap.Dims), snap)
	drawProjection(scr, l.Side, sideView(snap.Dims), snap)
	drawProjection(scr, l.Top, topView(snap.Dims), snap)
	drawHUD(scr, l.HUD, snap, info)

	label := info.user
	if info.online > 1 {
		label = fmt.Sprintf("%s  %d online", info.user, info.online)
	}
	if label != "" {
		scr.DrawTextColored(l.HUD.X, l.HUD.Y-1, truncate(label, l.HUD.W), core.ColorGray)
	}

	if text, color := overlayText(snap.Status); text != "" {
		x := l.Front.X + (l.Front.W-len(text))/2
		y := l.Front.Y + l.Front.H/2
		scr.DrawTextColored(x, y, text, color)
	}
}
