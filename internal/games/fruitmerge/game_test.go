package fruitmerge

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/vovakirdan/tui-merge/internal/config"
	"github.com/vovakirdan/tui-merge/internal/core"
	"github.com/vovakirdan/tui-merge/internal/registry"
)

func testRuntime() core.RuntimeConfig {
	return core.RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     12345,
	}
}

func frame(actions ...core.Action) core.InputFrame {
	in := core.NewInputFrame()
	for _, a := range actions {
		in.Set(a)
	}
	return in
}

// shallowConfig writes a container whose deadline sits on the floor so the
// first piece ends the game shortly after it lands.
func shallowConfig(t *testing.T) {
	t.Helper()
	yaml := `
container: {width: 2.0, height: 3.0}
spawn: {height: 2.5, cooldown: 0.5, nudge: 0.25}
timing: {settle_delay: 0.1, grace_period: 0.1}
deadline: {height: 0.3, thickness: 0.1, dwell_seconds: 0.5}
physics: {gravity: 9.81, linear_damping: 0.5, restitution: 0.1, substeps: 4}
tiers:
  - {name: Cherry, radius: 0.25, mass: 1.0, score: 1, push_strength: 1.0, explosion_radius_multiplier: 2.0, explosion_force: 1.5, color: red, glyph: "c"}
  - {name: Grape, radius: 0.4, mass: 1.5, score: 6, push_strength: 1.4, explosion_radius_multiplier: 2.0, explosion_force: 2.1, color: purple, glyph: "g"}
`
	path := filepath.Join(t.TempDir(), "merge.yaml")
	if err := os.WriteFile(path, []byte(yaml), 0o600); err != nil {
		t.Fatal(err)
	}
	SetConfigPath(path)
	t.Cleanup(func() { SetConfigPath("") })
}

func playUntilOver(t *testing.T, g *Game, maxTicks int) {
	t.Helper()
	for range maxTicks {
		if g.Step(frame(core.ActionDrop)).State.GameOver {
			return
		}
	}
	t.Fatalf("game not over after %d ticks", maxTicks)
}

func TestGameDeterminism(t *testing.T) {
	inputs := make([]core.InputFrame, 900)
	for i := range inputs {
		switch {
		case i%90 == 0:
			inputs[i] = frame(core.ActionDrop)
		case i%7 < 3:
			inputs[i] = frame(core.ActionRight)
		default:
			inputs[i] = frame(core.ActionLeft, core.ActionLeft)
		}
	}

	run := func() *Game {
		g := New(config.DifficultyNormal)
		g.Reset(testRuntime())
		for _, in := range inputs {
			if g.Step(in).State.GameOver {
				break
			}
		}
		return g
	}

	g1, g2 := run(), run()
	s1, s2 := g1.Session().Snapshot(), g2.Session().Snapshot()

	if s1.Hash() != s2.Hash() {
		t.Errorf("Determinism failed: hashes differ. Run1=%d, Run2=%d", s1.Hash(), s2.Hash())
	}
	if s1.Drops != 10 {
		t.Errorf("Drops = %d, expected 10", s1.Drops)
	}
	if s1.Tick != s2.Tick {
		t.Errorf("Determinism failed: tick counts differ. Run1=%d, Run2=%d", s1.Tick, s2.Tick)
	}
}

func TestGameIDs(t *testing.T) {
	tests := []struct {
		preset config.DifficultyPreset
		id     string
		title  string
		diff   string
	}{
		{"", "merge", "Fruit Merge", "normal"},
		{config.DifficultyNormal, "merge", "Fruit Merge", "normal"},
		{config.DifficultyEasy, "merge_easy", "Fruit Merge (Easy)", "easy"},
		{config.DifficultyHard, "merge_hard", "Fruit Merge (Hard)", "hard"},
		{config.DifficultyFixed, "merge_fixed", "Fruit Merge (Fixed)", "fixed"},
	}

	for _, tt := range tests {
		g := New(tt.preset)
		if g.ID() != tt.id {
			t.Errorf("ID() = %q, expected %q", g.ID(), tt.id)
		}
		if g.Title() != tt.title {
			t.Errorf("Title() = %q, expected %q", g.Title(), tt.title)
		}
		if g.Difficulty() != tt.diff {
			t.Errorf("Difficulty() = %q, expected %q", g.Difficulty(), tt.diff)
		}
	}
}

func TestGamesRegistered(t *testing.T) {
	for _, id := range []string{"merge", "merge_easy", "merge_hard", "merge_fixed"} {
		g, err := registry.Create(id)
		if err != nil {
			t.Errorf("registry.Create(%q) error: %v", id, err)
			continue
		}
		if g.ID() != id {
			t.Errorf("registry.Create(%q).ID() = %q", id, g.ID())
		}
		if _, ok := g.(registry.Summarizer); !ok {
			t.Errorf("game %q should provide a session summary", id)
		}
	}
}

func TestGameReset(t *testing.T) {
	g := New(config.DifficultyNormal)
	g.Reset(testRuntime())

	state := g.State()
	if state.Score != 0 || state.GameOver || state.Paused {
		t.Errorf("State() after reset = %+v, expected a fresh game", state)
	}
	if g.Session().Held() == nil {
		t.Error("a piece should be held after reset")
	}
	if len(g.Session().Pieces()) != 1 {
		t.Errorf("len(Pieces()) = %d, expected only the held piece", len(g.Session().Pieces()))
	}
}

func TestGamePause(t *testing.T) {
	g := New(config.DifficultyNormal)
	g.Reset(testRuntime())

	if !g.Step(frame(core.ActionPause)).State.Paused {
		t.Fatal("game should be paused")
	}
	ticks := g.Session().Ticks()
	for range 30 {
		g.Step(frame(core.ActionDrop))
	}
	if g.Session().Ticks() != ticks {
		t.Errorf("Ticks() = %d while paused, expected %d", g.Session().Ticks(), ticks)
	}
	if g.Session().Board().Drops() != 0 {
		t.Error("drop accepted while paused")
	}

	if g.Step(frame(core.ActionPause)).State.Paused {
		t.Error("game should resume")
	}
}

func TestGameFastForward(t *testing.T) {
	g := New(config.DifficultyNormal)
	g.Reset(testRuntime())

	g.Step(frame())
	if g.Session().Ticks() != 1 {
		t.Fatalf("Ticks() = %d, expected 1", g.Session().Ticks())
	}

	g.Step(frame(core.ActionFast))
	if g.Session().Ticks() != 1+fastForward {
		t.Errorf("Ticks() = %d in fast mode, expected %d", g.Session().Ticks(), 1+fastForward)
	}
}

func TestGameNudgeMovesHeldPiece(t *testing.T) {
	g := New(config.DifficultyNormal)
	g.Reset(testRuntime())
	nudge := g.cfg.Spawn.Nudge

	g.Step(frame(core.ActionRight, core.ActionRight, core.ActionRight))
	if x := g.Session().HeldX(); x != 3*nudge {
		t.Errorf("HeldX() = %v, expected %v", x, 3*nudge)
	}

	g.Step(frame(core.ActionLeft))
	if x := g.Session().HeldX(); x != 2*nudge {
		t.Errorf("HeldX() = %v, expected %v", x, 2*nudge)
	}
}

func TestGameRestartAfterGameOver(t *testing.T) {
	shallowConfig(t)

	g := New(config.DifficultyNormal)
	g.Reset(testRuntime())

	// Restart is ignored while playing
	g.Step(frame(core.ActionRestart))
	if g.Session().Ticks() == 0 {
		t.Error("restart should not interrupt a running game")
	}

	playUntilOver(t, g, 600)
	summary := g.Summary()
	if summary.Drops == 0 || summary.Difficulty != "normal" {
		t.Errorf("Summary() = %+v, expected drops and the normal difficulty", summary)
	}
	if !g.display.Over() || g.display.Final() != g.State().Score {
		t.Error("display should have been told about game over")
	}

	// Steps after game over change nothing
	ticks := g.Session().Ticks()
	g.Step(frame(core.ActionDrop))
	if g.Session().Ticks() != ticks {
		t.Error("session advanced after game over")
	}

	g.Step(frame(core.ActionRestart))
	if g.State().GameOver {
		t.Error("game should restart")
	}
	if g.runtime.Seed != testRuntime().Seed+1 {
		t.Errorf("Seed = %d after restart, expected %d", g.runtime.Seed, testRuntime().Seed+1)
	}
}

func TestLoadConfigFailsClosed(t *testing.T) {
	cfg := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"), config.DifficultyNormal, quietLogger())

	if cfg.Probability != nil {
		t.Error("unreadable config should disable weighted spawning")
	}
	if len(cfg.Tiers) != len(config.DefaultMergeConfig().Tiers) {
		t.Errorf("len(Tiers) = %d, expected the default ladder", len(cfg.Tiers))
	}
}

func TestLoadConfigAppliesPreset(t *testing.T) {
	normal := LoadConfig("", config.DifficultyNormal, quietLogger())
	easy := LoadConfig("", config.DifficultyEasy, quietLogger())

	if easy.Deadline.DwellSeconds <= normal.Deadline.DwellSeconds {
		t.Errorf("easy dwell = %v, expected more than %v", easy.Deadline.DwellSeconds, normal.Deadline.DwellSeconds)
	}
}

func TestScreenTooSmall(t *testing.T) {
	g := New(config.DifficultyNormal)
	rt := testRuntime()
	rt.ScreenW = 20
	g.Reset(rt)

	g.Step(frame(core.ActionDrop))
	if g.Session().Ticks() != 0 {
		t.Error("game should not advance when the screen is too small")
	}
}

func TestGameResizeKeepsSession(t *testing.T) {
	g := New(config.DifficultyNormal)
	g.Reset(testRuntime())
	g.Step(frame(core.ActionDrop))
	drops := g.Session().Board().Drops()

	g.Resize(30, 10)
	g.Step(frame())
	ticks := g.Session().Ticks()
	g.Step(frame())
	if g.Session().Ticks() != ticks {
		t.Error("game should wait while the screen is too small")
	}

	g.Resize(100, 30)
	g.Step(frame())
	if g.Session().Ticks() != ticks+1 {
		t.Errorf("Ticks() = %d after growing the window, expected %d", g.Session().Ticks(), ticks+1)
	}
	if g.Session().Board().Drops() != drops {
		t.Error("resize should not restart the session")
	}
}
