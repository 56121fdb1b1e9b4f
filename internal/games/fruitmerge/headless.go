package fruitmerge

import (
	"errors"
	"io"
	"math/rand"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/cheggaaa/pb/v3"
	"gonum.org/v1/gonum/stat"

	"github.com/vovakirdan/tui-merge/internal/config"
	"github.com/vovakirdan/tui-merge/internal/core"
	"github.com/vovakirdan/tui-merge/internal/games/fruitmerge/engine"
	"github.com/vovakirdan/tui-merge/internal/games/fruitmerge/physics"
)

// botSeedMix decorrelates the bot's choices from the spawn sequence.
const botSeedMix = 0x5eed_b07

// SimOptions configures a batch of headless sessions.
type SimOptions struct {
	Runs       int     // Number of sessions
	Workers    int     // Concurrent sessions
	Seed       int64   // Seed of the first session, the rest count up
	MaxSeconds float64 // Simulated time limit per session
	TickRate   int     // Steps per simulated second
	MaxThink   float64 // Upper bound of the bot's pause before each drop
	Progress   io.Writer
}

// RunResult is the outcome of one headless session.
type RunResult struct {
	Seed     int64
	Summary  core.SessionSummary
	GameOver bool // False when the time limit ended the run
}

// SimReport aggregates a batch.
type SimReport struct {
	Runs         []RunResult
	MeanScore    float64
	StdScore     float64
	MeanDuration float64
	MeanMerges   float64
	TierCounts   []int // Runs per highest tier reached
	Used         time.Duration
}

// Simulate plays opts.Runs sessions with a random dropping bot. Results are
// ordered by seed and do not depend on the worker count.
func Simulate(cfg config.MergeConfig, difficulty string, opts SimOptions, logger *log.Logger) (*SimReport, error) {
	if opts.Runs < 1 || opts.MaxSeconds <= 0 {
		return nil, errors.New("fruitmerge: runs and max seconds must be positive")
	}
	if opts.Workers < 1 {
		opts.Workers = 1
	}
	if opts.TickRate <= 0 {
		opts.TickRate = 60
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}

	results := make([]RunResult, opts.Runs)
	jobs := make(chan int, opts.Runs)

	bar := pb.StartNew(opts.Runs)
	if opts.Progress == nil {
		bar.SetWriter(io.Discard)
	} else {
		bar.SetWriter(opts.Progress)
	}

	wg := new(sync.WaitGroup)
	wg.Add(opts.Workers)
	for range opts.Workers {
		go func() {
			defer wg.Done()
			for i := range jobs {
				results[i] = PlayOut(cfg, difficulty, opts.Seed+int64(i), opts, logger)
				bar.Increment()
			}
		}()
	}
	for i := range opts.Runs {
		jobs <- i
	}
	close(jobs)
	wg.Wait()
	used := time.Since(bar.StartTime())
	bar.Finish()

	report := summarize(results, len(cfg.Tiers))
	report.Used = used
	return report, nil
}

// PlayOut runs one session to game over or the time limit.
func PlayOut(cfg config.MergeConfig, difficulty string, seed int64, opts SimOptions, logger *log.Logger) RunResult {
	tickRate := opts.TickRate
	if tickRate <= 0 {
		tickRate = 60
	}
	dt := 1.0 / float64(tickRate)

	session := engine.NewSession(cfg, physics.NewWorld(physics.ConfigFrom(cfg)), nil,
		logger.With("seed", seed), rand.New(rand.NewSource(seed)))
	bot := rand.New(rand.NewSource(seed ^ botSeedMix))

	half := cfg.Container.Width / 2
	think := 0.0
	for session.Elapsed() < opts.MaxSeconds && !session.GameOver() {
		if session.Held() != nil {
			think -= dt
			if think <= 0 {
				session.MoveHeld((bot.Float64()*2 - 1) * half)
				session.Drop()
				think = bot.Float64() * opts.MaxThink
			}
		}
		session.Step(dt)
	}

	return RunResult{
		Seed:     seed,
		Summary:  sessionSummary(session, difficulty),
		GameOver: session.GameOver(),
	}
}

func summarize(runs []RunResult, tiers int) *SimReport {
	scores := make([]float64, len(runs))
	durations := make([]float64, len(runs))
	merges := make([]float64, len(runs))
	counts := make([]int, max(1, tiers))
	for i, r := range runs {
		scores[i] = float64(r.Summary.Score)
		durations[i] = r.Summary.Duration
		merges[i] = float64(r.Summary.Merges)
		if t := r.Summary.MaxTier; t >= 0 && t < len(counts) {
			counts[t]++
		}
	}

	report := &SimReport{Runs: runs, TierCounts: counts}
	report.MeanScore, report.StdScore = stat.MeanStdDev(scores, nil)
	report.MeanDuration = stat.Mean(durations, nil)
	report.MeanMerges = stat.Mean(merges, nil)
	return report
}

// sessionSummary describes a session for persistence and reports.
func sessionSummary(s *engine.Session, difficulty string) core.SessionSummary {
	b := s.Board()
	name := ""
	if spec, ok := s.Tiers().SpecFor(b.MaxTierReached()); ok {
		name = spec.Name
	}
	return core.SessionSummary{
		Score:       b.Score(),
		MaxTier:     int(b.MaxTierReached()),
		MaxTierName: name,
		Merges:      b.Merges(),
		Drops:       b.Drops(),
		BestChain:   b.BestMergeChain(),
		Duration:    s.Elapsed(),
		Difficulty:  difficulty,
	}
}
