// Package fruitmerge adapts the merge simulation to the arcade platform:
// it owns the physics world and the session, maps input to the top slot,
// and renders the board into a character screen.
package fruitmerge

import (
	"io"
	"math/rand"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-merge/internal/config"
	"github.com/vovakirdan/tui-merge/internal/core"
	"github.com/vovakirdan/tui-merge/internal/games/fruitmerge/engine"
	"github.com/vovakirdan/tui-merge/internal/games/fruitmerge/physics"
	"github.com/vovakirdan/tui-merge/internal/registry"
)

// GameID is the base identifier for scores and the registry.
const GameID = "merge"

// fastForward is how many simulation steps run per tick in fast mode.
const fastForward = 3

// configPath stores the custom config path set via CLI
var configPath string

// logger is shared by every game instance
var logger = log.New(io.Discard)

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetLogger sets the logger games report configuration problems and
// session events to.
func SetLogger(l *log.Logger) {
	if l != nil {
		logger = l
	}
}

// Game implements the Fruit Merge game.
type Game struct {
	preset  config.DifficultyPreset
	runtime core.RuntimeConfig
	cfg     config.MergeConfig
	world   *physics.World
	session *engine.Session
	display *ScoreDisplay
	paused  bool
	fast    bool

	minScreenW     int
	minScreenH     int
	screenTooSmall bool
}

// New creates a game with the given difficulty preset.
// An empty preset plays the configuration as loaded.
func New(preset config.DifficultyPreset) *Game {
	return &Game{preset: preset}
}

// ID returns the unique identifier for this game.
// Each preset keeps its own high-score table.
func (g *Game) ID() string {
	return VariantID(g.preset)
}

// VariantID returns the registry ID of a difficulty preset.
func VariantID(preset config.DifficultyPreset) string {
	if preset == "" || preset == config.DifficultyNormal {
		return GameID
	}
	return GameID + "_" + string(preset)
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	if g.preset == "" || g.preset == config.DifficultyNormal {
		return "Fruit Merge"
	}
	p := string(g.preset)
	return "Fruit Merge (" + strings.ToUpper(p[:1]) + p[1:] + ")"
}

// Difficulty returns the preset name, "normal" when none is set.
func (g *Game) Difficulty() string {
	if g.preset == "" {
		return string(config.DifficultyNormal)
	}
	return string(g.preset)
}

// Reset loads configuration and starts a new session.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime
	g.cfg = LoadConfig(configPath, g.preset, logger)
	g.start(rand.New(rand.NewSource(runtime.Seed)))

	g.minScreenW = 40
	g.minScreenH = 16
	g.Resize(runtime.ScreenW, runtime.ScreenH)
}

// start builds the world and the session from g.cfg.
func (g *Game) start(rng *rand.Rand) {
	g.world = physics.NewWorld(physics.ConfigFrom(g.cfg))
	g.display = &ScoreDisplay{}
	g.session = engine.NewSession(g.cfg, g.world, g.display, logger.With("difficulty", g.Difficulty()), rng)
	g.paused = false
	g.fast = false
}

// LoadConfig loads, adjusts and sanitizes the game configuration.
// A file that cannot be loaded fails closed: default world and ladder,
// tier 0 spawning only.
func LoadConfig(path string, preset config.DifficultyPreset, logger *log.Logger) config.MergeConfig {
	cfg, err := config.LoadMerge(path)
	if err != nil {
		logger.Error("cannot load config, spawning tier 0 only", "path", path, "error", err)
		cfg = config.DefaultMergeConfig()
		cfg.Probability = nil
	}
	if preset != "" {
		config.ApplyMergePreset(&cfg, preset)
	}
	return cfg.Sanitize(logger)
}

// Resize adapts to a new terminal size without restarting the session.
func (g *Game) Resize(width, height int) {
	g.runtime.ScreenW = width
	g.runtime.ScreenH = height
	g.screenTooSmall = width < g.minScreenW || height < g.minScreenH
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.screenTooSmall {
		return core.StepResult{State: g.State()}
	}

	// Handle restart
	if in.Has(core.ActionRestart) && g.session.GameOver() {
		g.runtime.Seed++
		g.Reset(g.runtime)
		return core.StepResult{State: g.State()}
	}

	// Handle pause toggle
	if in.Has(core.ActionPause) && !g.session.GameOver() {
		g.paused = !g.paused
	}

	dt := g.runtime.TickSeconds()
	g.display.Tick(dt)

	if g.paused || g.session.GameOver() {
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionFast) {
		g.fast = !g.fast
	}

	if moves := in.Count(core.ActionRight) - in.Count(core.ActionLeft); moves != 0 {
		g.session.Nudge(moves)
	}
	if in.Has(core.ActionDrop) {
		g.session.Drop()
	}

	steps := 1
	if g.fast {
		steps = fastForward
	}
	merges := 0
	for range steps {
		report := g.session.Step(dt)
		merges += len(report.Merges)
		if report.GameOver {
			break
		}
	}

	return core.StepResult{State: g.State(), Merges: merges}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	if g.session == nil {
		return core.GameState{}
	}
	return core.GameState{
		Score:    g.session.Board().Score(),
		GameOver: g.session.GameOver(),
		Paused:   g.paused,
	}
}

// Session exposes the running simulation.
func (g *Game) Session() *engine.Session {
	return g.session
}

// Summary describes the current session for persistence.
func (g *Game) Summary() core.SessionSummary {
	return sessionSummary(g.session, g.Difficulty())
}

// Register one game per difficulty preset.
func init() {
	for _, p := range config.Presets() {
		registry.Register(VariantID(p), func() registry.Game {
			return New(p)
		})
	}
}
