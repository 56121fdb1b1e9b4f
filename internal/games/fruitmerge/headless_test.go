package fruitmerge

import (
	"testing"

	"github.com/vovakirdan/tui-merge/internal/config"
)

func simOptions() SimOptions {
	return SimOptions{
		Runs:       4,
		Workers:    2,
		Seed:       7,
		MaxSeconds: 20,
		TickRate:   60,
		MaxThink:   0.3,
	}
}

func TestPlayOutDeterministic(t *testing.T) {
	cfg := LoadConfig("", config.DifficultyNormal, quietLogger())
	opts := simOptions()

	a := PlayOut(cfg, "normal", 99, opts, quietLogger())
	b := PlayOut(cfg, "normal", 99, opts, quietLogger())

	if a != b {
		t.Errorf("PlayOut() differs for the same seed: %+v vs %+v", a, b)
	}
	if a.Summary.Drops == 0 {
		t.Error("bot should have dropped pieces")
	}
	if !a.GameOver && a.Summary.Duration < opts.MaxSeconds {
		t.Errorf("Duration = %v, expected the run to reach the %v s limit", a.Summary.Duration, opts.MaxSeconds)
	}
}

func TestSimulateIndependentOfWorkers(t *testing.T) {
	cfg := LoadConfig("", config.DifficultyNormal, quietLogger())

	serial := simOptions()
	serial.Workers = 1
	parallel := simOptions()
	parallel.Workers = 4

	r1, err := Simulate(cfg, "normal", serial, quietLogger())
	if err != nil {
		t.Fatalf("Simulate() error: %v", err)
	}
	r2, err := Simulate(cfg, "normal", parallel, quietLogger())
	if err != nil {
		t.Fatalf("Simulate() error: %v", err)
	}

	if len(r1.Runs) != serial.Runs {
		t.Fatalf("len(Runs) = %d, expected %d", len(r1.Runs), serial.Runs)
	}
	for i := range r1.Runs {
		if r1.Runs[i] != r2.Runs[i] {
			t.Errorf("run %d differs between worker counts", i)
		}
		if r1.Runs[i].Seed != serial.Seed+int64(i) {
			t.Errorf("Runs[%d].Seed = %d, expected %d", i, r1.Runs[i].Seed, serial.Seed+int64(i))
		}
	}
	if r1.MeanScore != r2.MeanScore {
		t.Errorf("MeanScore = %v vs %v", r1.MeanScore, r2.MeanScore)
	}
}

func TestSimulateReport(t *testing.T) {
	runs := []RunResult{
		{Seed: 1},
		{Seed: 2},
		{Seed: 3},
	}
	runs[0].Summary.Score, runs[0].Summary.MaxTier, runs[0].Summary.Duration = 10, 2, 30
	runs[1].Summary.Score, runs[1].Summary.MaxTier, runs[1].Summary.Duration = 20, 2, 40
	runs[2].Summary.Score, runs[2].Summary.MaxTier, runs[2].Summary.Duration = 30, 4, 50

	r := summarize(runs, 11)

	if r.MeanScore != 20 {
		t.Errorf("MeanScore = %v, expected 20", r.MeanScore)
	}
	// Sample standard deviation of 10, 20, 30
	if r.StdScore != 10 {
		t.Errorf("StdScore = %v, expected 10", r.StdScore)
	}
	if r.MeanDuration != 40 {
		t.Errorf("MeanDuration = %v, expected 40", r.MeanDuration)
	}
	if len(r.TierCounts) != 11 || r.TierCounts[2] != 2 || r.TierCounts[4] != 1 {
		t.Errorf("TierCounts = %v, expected two runs at tier 2 and one at tier 4", r.TierCounts)
	}
}

func TestSimulateRejectsBadOptions(t *testing.T) {
	cfg := config.DefaultMergeConfig()
	tests := []SimOptions{
		{Runs: 0, MaxSeconds: 10},
		{Runs: 1, MaxSeconds: 0},
	}
	for _, opts := range tests {
		if _, err := Simulate(cfg, "normal", opts, nil); err == nil {
			t.Errorf("Simulate(%+v) expected an error", opts)
		}
	}
}
