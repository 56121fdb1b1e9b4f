package fruitmerge

import (
	"fmt"
	"math"

	"github.com/vovakirdan/tui-merge/internal/core"
	"github.com/vovakirdan/tui-merge/internal/games/fruitmerge/engine"
)

// Visual characters for rendering
const (
	DeadlineChar = '┄'
	GuideChar    = '╎'
)

// hudWidth is the number of columns reserved right of the container.
const hudWidth = 24

// layout maps world coordinates to screen cells.
// Terminal cells are about twice as tall as wide, so sx = 2*sy.
type layout struct {
	left, top  int     // Top-left corner of the border
	cols, rows int     // Inner size in cells
	sx, sy     float64 // Cells per world unit
	halfWidth  float64
	height     float64
}

func (g *Game) layout(dst *core.Screen) layout {
	cfg := g.cfg.Container
	rows := dst.Height() - 2
	sy := float64(rows) / cfg.Height
	sx := 2 * sy

	maxCols := dst.Width() - hudWidth - 3
	if cols := cfg.Width * sx; cols > float64(maxCols) {
		sx = float64(maxCols) / cfg.Width
		sy = sx / 2
	}

	l := layout{
		cols:      cellsFor(cfg.Width * sx),
		rows:      cellsFor(cfg.Height * sy),
		sx:        sx,
		sy:        sy,
		halfWidth: cfg.Width / 2,
		height:    cfg.Height,
	}
	l.left = max(0, (dst.Width()-hudWidth-l.cols-2)/2)
	l.top = max(0, dst.Height()-l.rows-2)
	return l
}

// cellsFor rounds a span up to whole cells, ignoring float noise.
func cellsFor(span float64) int {
	return int(math.Ceil(span - 1e-9))
}

// cell converts a world point to screen coordinates.
func (l layout) cell(p core.Vec2) (int, int) {
	x := l.left + 1 + int(math.Floor((p.X+l.halfWidth)*l.sx))
	y := l.top + 1 + int(math.Floor((l.height-p.Y)*l.sy))
	return x, y
}

// world converts the center of a screen cell to a world point.
func (l layout) world(x, y int) core.Vec2 {
	return core.V(
		(float64(x-l.left-1)+0.5)/l.sx-l.halfWidth,
		l.height-(float64(y-l.top-1)+0.5)/l.sy,
	)
}

func (l layout) inside(x, y int) bool {
	return x > l.left && x <= l.left+l.cols && y > l.top && y <= l.top+l.rows
}

// Render draws the current game state into the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	// Check for screen too small
	if g.screenTooSmall {
		msg := "Window too small"
		hint := fmt.Sprintf("Need %dx%d", g.minScreenW, g.minScreenH)
		dst.DrawTextCentered(dst.Height()/2-1, msg)
		dst.DrawTextCentered(dst.Height()/2+1, hint)
		return
	}

	l := g.layout(dst)
	g.renderContainer(dst, l)
	g.renderDeadline(dst, l)

	held := g.session.Held()
	for _, p := range g.session.Pieces() {
		if p != held {
			g.renderPiece(dst, l, p)
		}
	}
	if held != nil {
		g.renderGuide(dst, l, held)
		g.renderPiece(dst, l, held)
	}

	g.renderHUD(dst, l)
	g.renderOverlay(dst)
}

func (g *Game) renderContainer(dst *core.Screen, l layout) {
	// Open top: only the walls and the floor
	dst.DrawVLine(l.left, l.top, l.rows+1, '│', core.ColorGray)
	dst.DrawVLine(l.left+l.cols+1, l.top, l.rows+1, '│', core.ColorGray)
	dst.DrawHLine(l.left+1, l.top+l.rows+1, l.cols, '─', core.ColorGray)
	dst.SetColored(l.left, l.top+l.rows+1, '└', core.ColorGray)
	dst.SetColored(l.left+l.cols+1, l.top+l.rows+1, '┘', core.ColorGray)
}

func (g *Game) renderDeadline(dst *core.Screen, l layout) {
	_, y := l.cell(core.V(0, g.cfg.Deadline.Height))
	color := core.ColorGray
	if g.session.Deadline().Occupied() > 0 {
		color = core.ColorRed
	}
	dst.DrawHLine(l.left+1, y, l.cols, DeadlineChar, color)
}

// renderPiece fills every cell whose center lies inside the piece.
// Pieces smaller than a cell still get their center cell.
func (g *Game) renderPiece(dst *core.Screen, l layout, p *engine.Piece) {
	spec, ok := g.session.Tiers().SpecFor(p.Tier)
	if !ok {
		return
	}
	pos := p.Position()
	r := p.Radius()

	x0, y0 := l.cell(core.V(pos.X-r, pos.Y+r))
	x1, y1 := l.cell(core.V(pos.X+r, pos.Y-r))
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			if l.inside(x, y) && l.world(x, y).Dist(pos) <= r {
				dst.SetColored(x, y, spec.Glyph, spec.Color)
			}
		}
	}
	if cx, cy := l.cell(pos); l.inside(cx, cy) {
		dst.SetColored(cx, cy, spec.Glyph, spec.Color)
	}
}

// renderGuide draws the drop line from the held piece down to the first
// occupied cell or the floor.
func (g *Game) renderGuide(dst *core.Screen, l layout, held *engine.Piece) {
	pos := held.Position()
	x, y := l.cell(core.V(pos.X, pos.Y-held.Radius()))
	for y++; y <= l.top+l.rows; y++ {
		switch dst.Get(x, y) {
		case ' ':
			dst.SetColored(x, y, GuideChar, core.ColorGray)
		case DeadlineChar:
		default:
			return
		}
	}
}

func (g *Game) renderHUD(dst *core.Screen, l layout) {
	x := l.left + l.cols + 4
	y := l.top + 1
	tiers := g.session.Tiers()
	board := g.session.Board()

	dst.DrawTextColored(x, y, g.Title(), core.ColorBrightYellow)
	dst.DrawText(x, y+2, fmt.Sprintf("Score: %d", g.display.Shown()))

	if spec, ok := tiers.SpecFor(board.MaxTierReached()); ok {
		dst.DrawText(x, y+3, "Best:  ")
		dst.SetColored(x+7, y+3, spec.Glyph, spec.Color)
		dst.DrawText(x+9, y+3, spec.Name)
	}

	dst.DrawText(x, y+5, "Next:  ")
	if spec, ok := tiers.SpecFor(g.display.Next()); ok {
		dst.SetColored(x+7, y+5, spec.Glyph, spec.Color)
		dst.DrawText(x+9, y+5, spec.Name)
	}

	dst.DrawText(x, y+7, fmt.Sprintf("Merges: %d", board.Merges()))
	dst.DrawText(x, y+8, fmt.Sprintf("Drops:  %d", board.Drops()))
	if g.fast {
		dst.DrawTextColored(x, y+9, ">> fast", core.ColorCyan)
	}

	// Ladder legend, as many rungs as fit
	for i := range tiers.Count() {
		row := y + 11 + i
		if row >= dst.Height()-3 {
			break
		}
		if spec, ok := tiers.SpecFor(engine.Tier(i)); ok {
			dst.SetColored(x, row, spec.Glyph, spec.Color)
			dst.DrawText(x+2, row, spec.Name)
		}
	}

	dst.DrawText(x, dst.Height()-2, "←/→ move  SPACE drop")
	dst.DrawText(x, dst.Height()-1, "P pause  F fast  Q quit")
}

func (g *Game) renderOverlay(dst *core.Screen) {
	switch {
	case g.session.GameOver():
		subtitle := fmt.Sprintf("Score: %d  |  Press R to restart", g.session.Board().Score())
		g.drawCenteredBox(dst, "GAME OVER", subtitle)
	case g.paused:
		g.drawCenteredBox(dst, "PAUSED", "Press P to resume")
	}
}

func (g *Game) drawCenteredBox(dst *core.Screen, title, subtitle string) {
	w := dst.Width()
	h := dst.Height()

	boxW := max(len(title), len(subtitle)) + 4
	boxH := 5
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	// Draw box background
	for y := boxY; y < boxY+boxH; y++ {
		dst.DrawHLine(boxX, y, boxW, ' ', core.ColorDefault)
	}
	dst.DrawBox(core.NewRect(boxX, boxY, boxW, boxH), core.ColorWhite)

	// Draw text
	dst.DrawTextColored(boxX+(boxW-len(title))/2, boxY+1, title, core.ColorBrightRed)
	dst.DrawText(boxX+(boxW-len(subtitle))/2, boxY+3, subtitle)
}
