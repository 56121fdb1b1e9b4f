package fruitmerge

import (
	"strings"
	"testing"

	"github.com/vovakirdan/tui-merge/internal/config"
	"github.com/vovakirdan/tui-merge/internal/core"
)

func renderGame(t *testing.T, g *Game) *core.Screen {
	t.Helper()
	rt := testRuntime()
	scr := core.NewScreen(rt.ScreenW, rt.ScreenH)
	g.Render(scr)
	return scr
}

func screenContains(scr *core.Screen, text string) bool {
	for y := range scr.Height() {
		if strings.Contains(scr.Row(y), text) {
			return true
		}
	}
	return false
}

func TestRenderHUD(t *testing.T) {
	g := New(config.DifficultyHard)
	g.Reset(testRuntime())
	scr := renderGame(t, g)

	for _, want := range []string{"Fruit Merge (Hard)", "Score: 0", "Next:", "Merges: 0", "SPACE drop"} {
		if !screenContains(scr, want) {
			t.Errorf("screen missing %q:\n%s", want, scr.String())
		}
	}
}

func TestRenderHeldPieceAndGuide(t *testing.T) {
	g := New(config.DifficultyNormal)
	g.Reset(testRuntime())
	scr := renderGame(t, g)

	spec, _ := g.Session().Tiers().SpecFor(g.Session().Held().Tier)
	l := g.layout(scr)
	x, y := l.cell(g.Session().Held().Position())

	if got := scr.Get(x, y); got != spec.Glyph {
		t.Errorf("held piece cell = %q, expected %q", got, spec.Glyph)
	}
	if cell := scr.GetCell(x, y); cell.Color != spec.Color {
		t.Errorf("held piece color = %v, expected %v", cell.Color, spec.Color)
	}

	// Empty board: the guide reaches the floor
	if got := scr.Get(x, l.top+l.rows); got != GuideChar {
		t.Errorf("cell above the floor = %q, expected the drop guide", got)
	}
}

func TestRenderDeadlineLine(t *testing.T) {
	g := New(config.DifficultyNormal)
	g.Reset(testRuntime())
	scr := renderGame(t, g)

	l := g.layout(scr)
	_, y := l.cell(core.V(0, g.cfg.Deadline.Height))
	if got := scr.Get(l.left+1, y); got != DeadlineChar {
		t.Errorf("deadline cell = %q, expected %q", got, DeadlineChar)
	}
	if c := scr.GetCell(l.left+1, y).Color; c != core.ColorGray {
		t.Errorf("deadline color = %v, expected gray while clear", c)
	}
}

func TestLayoutRoundTrip(t *testing.T) {
	g := New(config.DifficultyNormal)
	g.Reset(testRuntime())
	l := g.layout(core.NewScreen(80, 24))

	if l.sx != 2*l.sy {
		t.Errorf("sx = %v, sy = %v, expected sx = 2*sy", l.sx, l.sy)
	}

	for _, p := range []core.Vec2{core.V(0, 1), core.V(-2.5, 0.2), core.V(2.9, 8.8)} {
		x, y := l.cell(p)
		if !l.inside(x, y) {
			t.Errorf("cell(%+v) = (%d, %d), expected inside the container", p, x, y)
			continue
		}
		back := l.world(x, y)
		if back.Dist(p) > 1/l.sy {
			t.Errorf("world(cell(%+v)) = %+v, expected within one cell", p, back)
		}
	}
}

func TestRenderPausedOverlay(t *testing.T) {
	g := New(config.DifficultyNormal)
	g.Reset(testRuntime())
	g.Step(frame(core.ActionPause))

	if scr := renderGame(t, g); !screenContains(scr, "PAUSED") {
		t.Error("paused game should show the PAUSED box")
	}
}

func TestRenderGameOverOverlay(t *testing.T) {
	shallowConfig(t)
	g := New(config.DifficultyNormal)
	g.Reset(testRuntime())
	playUntilOver(t, g, 600)

	if scr := renderGame(t, g); !screenContains(scr, "GAME OVER") {
		t.Error("finished game should show the GAME OVER box")
	}
}

func TestRenderScreenTooSmall(t *testing.T) {
	g := New(config.DifficultyNormal)
	rt := testRuntime()
	rt.ScreenW, rt.ScreenH = 30, 10
	g.Reset(rt)

	scr := core.NewScreen(30, 10)
	g.Render(scr)
	if !screenContains(scr, "Window too small") {
		t.Errorf("expected the too-small message:\n%s", scr.String())
	}
}
