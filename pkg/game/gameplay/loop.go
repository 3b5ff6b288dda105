package gameplay

import (
	"context"
	"time"

	"github.com/go-kit/log/level"

	"snakesearch/pkg/engine/input"
	"snakesearch/pkg/game/renderer"
	"snakesearch/pkg/game/search"
)

// Speed returns the current tick rate in steps per second. Manual play
// speeds up by SpeedUp every SpeedThreshold points, capped at the automatic
// rate; search modes always run at the automatic rate.
func (s *Session) Speed() int {
	if s.Mode != search.ModeManual {
		return s.cfg.AutoSpeed
	}
	speed := s.cfg.InitialSpeed + (s.Game.Score/s.cfg.SpeedThreshold)*s.cfg.SpeedUp
	if speed > s.cfg.AutoSpeed {
		speed = s.cfg.AutoSpeed
	}
	return speed
}

// TickInterval returns the delay between steps, or zero when unpaced
func (s *Session) TickInterval() time.Duration {
	if !s.paced {
		return 0
	}
	return time.Second / time.Duration(s.Speed())
}

// Run steps the game until it ends, emitting a frame to sink after every
// step (and once before the first). Context cancellation ends the game as a
// user quit.
func (s *Session) Run(ctx context.Context, src input.Source, sink renderer.Sink) (Outcome, error) {
	if src == nil {
		src = input.NopSource{}
	}
	if sink == nil {
		sink = renderer.Nop{}
	}

	sink.RenderFrame(s.Snapshot())
	for {
		var out Outcome
		var err error
		if ctx.Err() != nil {
			out = s.finish(ReasonUserQuit)
		} else {
			out, err = s.Step(src.Poll()...)
		}
		sink.RenderFrame(s.Snapshot())
		if err != nil || out.Reason.Terminal() {
			return out, err
		}

		if err := s.wait(ctx); err != nil {
			out = s.finish(ReasonUserQuit)
			sink.RenderFrame(s.Snapshot())
			return out, nil
		}
	}
}

// Play runs rounds back to back. After a game ends it waits for a restart or
// quit intent; restart starts a fresh round. It returns the outcome of every
// finished round.
func (s *Session) Play(ctx context.Context, src input.Source, sink renderer.Sink) ([]Outcome, error) {
	var rounds []Outcome
	for {
		out, err := s.Run(ctx, src, sink)
		rounds = append(rounds, out)
		if err != nil || ctx.Err() != nil || out.Reason == ReasonUserQuit {
			return rounds, err
		}

		restart, err := s.awaitRestart(ctx, src)
		if err != nil || !restart {
			return rounds, nil
		}
		if err := s.Reset(); err != nil {
			return rounds, err
		}
		_ = level.Info(s.logger).Log("msg", "round restarted", "round", len(rounds)+1)
	}
}

// awaitRestart polls src until a restart (true) or quit (false) arrives
func (s *Session) awaitRestart(ctx context.Context, src input.Source) (bool, error) {
	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()

	for {
		intents := src.Poll()
		if quitRequested(intents) {
			return false, nil
		}
		if restartRequested(intents) {
			return true, nil
		}

		select {
		case <-ctx.Done():
			return false, ctx.Err()
		case <-ticker.C:
		}
	}
}

func (s *Session) wait(ctx context.Context) error {
	interval := s.TickInterval()
	if interval <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(interval)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
