package gameplay

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"golang.org/x/sync/errgroup"

	"snakesearch/pkg/game/config"
	"snakesearch/pkg/game/search"
	"snakesearch/pkg/logging"
)

// BenchResult aggregates the headless games of one mode
type BenchResult struct {
	Mode       search.Mode
	Games      int
	MinScore   int
	MaxScore   int
	TotalScore int
	TotalSteps int
	Reasons    map[Reason]int
	Errors     int
	Elapsed    time.Duration
}

// MeanScore returns the average score per game
func (r BenchResult) MeanScore() float64 {
	if r.Games == 0 {
		return 0
	}
	return float64(r.TotalScore) / float64(r.Games)
}

// MeanSteps returns the average number of moves per game
func (r BenchResult) MeanSteps() float64 {
	if r.Games == 0 {
		return 0
	}
	return float64(r.TotalSteps) / float64(r.Games)
}

// BenchOptions configures Bench
type BenchOptions struct {
	Games int

	// MaxSteps stops a game that has not ended on its own with
	// ReasonStepLimit. Zero means no limit.
	MaxSteps int
}

// Bench plays games headless for every mode, one worker per mode, and
// reports score statistics. Game i of every mode uses seed cfg.Seed+i, so
// modes face the same layouts.
func Bench(ctx context.Context, cfg config.Config, modes []search.Mode, opts BenchOptions, logger log.Logger) ([]BenchResult, error) {
	if logger == nil {
		logger = logging.GlobalLogger()
	}
	if opts.Games <= 0 {
		return nil, fmt.Errorf("bench needs at least one game, got %d", opts.Games)
	}
	if err := config.Validate(cfg); err != nil {
		return nil, err
	}

	results := make([]BenchResult, len(modes))
	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(runtime.GOMAXPROCS(0))

	for i, mode := range modes {
		eg.Go(func() error {
			res, err := benchMode(ctx, cfg, mode, opts, logger)
			if err != nil {
				return fmt.Errorf("mode %s: %w", mode, err)
			}
			results[i] = res
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func benchMode(ctx context.Context, cfg config.Config, mode search.Mode, opts BenchOptions, logger log.Logger) (BenchResult, error) {
	res := BenchResult{Mode: mode, Reasons: make(map[Reason]int)}
	start := time.Now()

	for i := 0; i < opts.Games; i++ {
		if err := ctx.Err(); err != nil {
			return res, err
		}

		gameCfg := cfg
		gameCfg.Seed = cfg.Seed + int64(i)
		s, err := NewSession(gameCfg, mode, logger)
		if err != nil {
			return res, err
		}

		out, err := s.runHeadless(opts.MaxSteps)
		if err != nil {
			// A full grid is the end of a perfect game, not a bench failure.
			_ = level.Warn(logger).Log("msg", "game stopped", "mode", mode, "game", i, "err", err)
			res.Errors++
		}
		res.record(out)
	}

	res.Elapsed = time.Since(start)
	_ = level.Info(logger).Log("msg", "bench finished", "mode", mode, "games", res.Games, "mean_score", res.MeanScore(), "max_score", res.MaxScore, "took", res.Elapsed)
	return res, nil
}

func (r *BenchResult) record(out Outcome) {
	if r.Games == 0 || out.Score < r.MinScore {
		r.MinScore = out.Score
	}
	if out.Score > r.MaxScore {
		r.MaxScore = out.Score
	}
	r.Games++
	r.TotalScore += out.Score
	r.TotalSteps += out.Step
	r.Reasons[out.Reason]++
}

// runHeadless steps the session with no input and no delay
func (s *Session) runHeadless(maxSteps int) (Outcome, error) {
	for {
		out, err := s.Step()
		if err != nil || out.Reason.Terminal() {
			return out, err
		}
		if maxSteps > 0 && s.steps >= maxSteps {
			return s.finish(ReasonStepLimit), nil
		}
	}
}
