package gameplay

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/go-kit/log"

	"snakesearch/pkg/engine/input"
	"snakesearch/pkg/engine/world"
	"snakesearch/pkg/game/config"
	"snakesearch/pkg/game/renderer"
	"snakesearch/pkg/game/search"
	"snakesearch/pkg/game/state"
	"snakesearch/pkg/logging"
)

func TestSpeed(t *testing.T) {
	tests := []struct {
		name  string
		mode  search.Mode
		score int
		want  int
	}{
		{"manual start", search.ModeManual, 0, 10},
		{"manual below threshold", search.ModeManual, 19, 10},
		{"manual first step up", search.ModeManual, 20, 13},
		{"manual later", search.ModeManual, 45, 16},
		{"manual capped", search.ModeManual, 1000, 40},
		{"search mode fixed", search.ModeBFS, 0, 40},
		{"search mode ignores score", search.ModeRandom, 500, 40},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := makeSession(t, tt.mode, 10, 10)
			s.Game.Score = tt.score
			if got := s.Speed(); got != tt.want {
				t.Errorf("Speed() at score %d = %d, want %d", tt.score, got, tt.want)
			}
		})
	}
}

func TestTickInterval(t *testing.T) {
	s := makeSession(t, search.ModeManual, 10, 10)
	if got := s.TickInterval(); got != 0 {
		t.Errorf("TickInterval() unpaced = %v, want 0", got)
	}

	s.SetPaced(true)
	if got := s.TickInterval(); got != 100*time.Millisecond {
		t.Errorf("TickInterval() at speed 10 = %v, want 100ms", got)
	}
}

func TestRun_QuitIntent(t *testing.T) {
	s := makeSession(t, search.ModeBFS, 10, 10)
	src := input.NewQueueSource()
	src.Push(input.Intent{Action: input.ActionQuit})
	rec := &renderer.Recorder{}

	out, err := s.Run(context.Background(), src, rec)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if out.Reason != ReasonUserQuit {
		t.Errorf("Run().Reason = %v, want user_quit", out.Reason)
	}
	if len(rec.Frames) != 2 {
		t.Fatalf("Run() emitted %d frames, want 2", len(rec.Frames))
	}
	last, _ := rec.Last()
	if last.Reason != "user_quit" || last.SessionID != s.ID || last.Mode != "bfs" {
		t.Errorf("last frame = reason %q session %q mode %q", last.Reason, last.SessionID, last.Mode)
	}
}

func TestRun_CancelledContext(t *testing.T) {
	s := makeSession(t, search.ModeHamiltonian, 10, 10)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	out, err := s.Run(ctx, nil, nil)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if out.Reason != ReasonUserQuit {
		t.Errorf("Run() with a cancelled context .Reason = %v, want user_quit", out.Reason)
	}
}

func TestRun_FrameEveryStep(t *testing.T) {
	s := makeSession(t, search.ModeManual, 10, 10)
	arrange(s, pt(9, 9), pt(5, 3), pt(5, 4))
	rec := &renderer.Recorder{}

	out, err := s.Run(context.Background(), input.NopSource{}, rec)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if out.Reason != ReasonCollided {
		t.Fatalf("Run().Reason = %v, want collided", out.Reason)
	}
	// Three safe moves up, then one into the wall, plus the opening frame.
	if len(rec.Frames) != 5 {
		t.Errorf("Run() emitted %d frames, want 5", len(rec.Frames))
	}
	for i, f := range rec.Frames {
		if f.Step != i {
			t.Errorf("frame %d has Step %d", i, f.Step)
		}
	}
}

func TestPlay_RestartThenQuit(t *testing.T) {
	s := makeSession(t, search.ModeManual, 10, 10)
	arrange(s, pt(9, 9), pt(5, 0), pt(5, 1))

	src := input.NewQueueSource()
	calls := 0
	sink := renderer.SinkFunc(func(snap state.Snapshot) {
		if snap.Reason == "" {
			return
		}
		calls++
		if calls == 1 {
			src.Push(input.Intent{Action: input.ActionRestart})
		} else {
			src.Push(input.Intent{Action: input.ActionQuit})
		}
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	rounds, err := s.Play(ctx, src, sink)
	if err != nil {
		t.Fatalf("Play() error = %v", err)
	}
	if len(rounds) != 2 {
		t.Fatalf("Play() played %d rounds, want 2", len(rounds))
	}
	if rounds[0].Reason != ReasonCollided {
		t.Errorf("round 1 reason = %v, want collided", rounds[0].Reason)
	}
}

func TestReset(t *testing.T) {
	s := makeSession(t, search.ModeBFS, 10, 10)
	arrange(s, pt(9, 9), pt(5, 0))
	for i := 0; i < 3; i++ {
		if _, err := s.Step(); err != nil {
			t.Fatalf("Step() error = %v", err)
		}
	}
	s.Game.Score = 7

	if err := s.Reset(); err != nil {
		t.Fatalf("Reset() error = %v", err)
	}
	if s.Steps() != 0 || s.Reason() != ReasonNone || s.Game.Score != 0 {
		t.Errorf("after Reset(): steps %d reason %v score %d", s.Steps(), s.Reason(), s.Game.Score)
	}
	if len(s.Game.Snake) != 1 || s.Game.Head() != s.Game.Grid.Center() {
		t.Errorf("after Reset(): snake %v, want one segment at the center", s.Game.Snake)
	}
	if len(s.Game.Path) == 0 {
		t.Error("after Reset(): planner has no route")
	}
}

func TestNewSession_Errors(t *testing.T) {
	cfg := config.Default()
	if _, err := NewSession(cfg, search.Mode("teleport"), nil); err == nil {
		t.Error("NewSession(unknown mode) = nil error, want error")
	}

	cfg.CellSize = 0
	if _, err := NewSession(cfg, search.ModeBFS, nil); err == nil {
		t.Error("NewSession(invalid config) = nil error, want error")
	}
}

func TestNewSession_DefaultsToProcessLogger(t *testing.T) {
	saved := logging.GlobalLogger()
	t.Cleanup(func() { logging.SetGlobalLogger(saved) })

	var buf bytes.Buffer
	logging.SetGlobalLogger(log.NewLogfmtLogger(&buf))

	cfg := config.Default()
	cfg.Seed = 1
	if _, err := NewSession(cfg, search.ModeBFS, nil); err != nil {
		t.Fatalf("NewSession() error = %v", err)
	}
	if !strings.Contains(buf.String(), `msg="session created"`) {
		t.Errorf("process logger got %q, want the session creation line", buf.String())
	}
}

func TestSnapshot_RunningHasNoReason(t *testing.T) {
	s := makeSession(t, search.ModeBFS, 10, 10)
	snap := s.Snapshot()
	if snap.Reason != "" {
		t.Errorf("Snapshot().Reason while running = %q, want empty", snap.Reason)
	}
	if snap.Head != s.Game.Head() || snap.Food != s.Game.Food {
		t.Errorf("Snapshot() = head %v food %v, want %v %v", snap.Head, snap.Food, s.Game.Head(), s.Game.Food)
	}
	if snap.Direction != world.Up {
		t.Errorf("Snapshot().Direction = %v, want up", snap.Direction)
	}
}

func TestBench(t *testing.T) {
	cfg := config.Default()
	cfg.Width, cfg.Height = 200, 200
	cfg.Seed = 4
	modes := []search.Mode{search.ModeBFS, search.ModeSteepestAscentHillClimbing, search.ModeHamiltonian}

	results, err := Bench(context.Background(), cfg, modes, BenchOptions{Games: 3, MaxSteps: 2000}, nil)
	if err != nil {
		t.Fatalf("Bench() error = %v", err)
	}
	if len(results) != len(modes) {
		t.Fatalf("len(Bench()) = %d, want %d", len(results), len(modes))
	}
	for i, r := range results {
		if r.Mode != modes[i] {
			t.Errorf("results[%d].Mode = %s, want %s", i, r.Mode, modes[i])
		}
		if r.Games != 3 {
			t.Errorf("%s: Games = %d, want 3", r.Mode, r.Games)
		}
		total := 0
		for _, n := range r.Reasons {
			total += n
		}
		if total != 3 {
			t.Errorf("%s: %d reasons recorded, want 3", r.Mode, total)
		}
		if r.MinScore > r.MaxScore || r.MeanScore() < float64(r.MinScore) || r.MeanScore() > float64(r.MaxScore) {
			t.Errorf("%s: inconsistent scores min %d mean %.2f max %d", r.Mode, r.MinScore, r.MeanScore(), r.MaxScore)
		}
	}
}

func TestBench_StepLimit(t *testing.T) {
	cfg := config.Default()
	cfg.Width, cfg.Height = 200, 200
	cfg.Seed = 9

	results, err := Bench(context.Background(), cfg, []search.Mode{search.ModeHamiltonian}, BenchOptions{Games: 2, MaxSteps: 5}, nil)
	if err != nil {
		t.Fatalf("Bench() error = %v", err)
	}
	r := results[0]
	if got := r.Reasons[ReasonStepLimit]; got != 2 {
		t.Errorf("Reasons[step_limit] = %d, want 2 (reasons %v)", got, r.Reasons)
	}
	if got := r.Reasons[ReasonUserQuit]; got != 0 {
		t.Errorf("Reasons[user_quit] = %d, want 0", got)
	}
	if r.TotalSteps != 10 {
		t.Errorf("TotalSteps = %d, want 10", r.TotalSteps)
	}
}

func TestBench_Errors(t *testing.T) {
	cfg := config.Default()
	if _, err := Bench(context.Background(), cfg, []search.Mode{search.ModeBFS}, BenchOptions{}, nil); err == nil {
		t.Error("Bench() with zero games = nil error, want error")
	}

	cfg.Width = 100
	cfg.Height = 100
	_, err := Bench(context.Background(), cfg, []search.Mode{search.ModeHamiltonian}, BenchOptions{Games: 1}, nil)
	if err == nil {
		t.Error("Bench(hamiltonian on a 5x5 grid) = nil error, want error")
	}
}
