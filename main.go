// Command snakesearch plays Snake on a grid, either by hand or driven by one
// of the search strategies (random, hill climbing, BFS, DFS, best-first, A*,
// Hamiltonian cycle).
//
// Commands:
//
//	play   play rounds in the terminal, an Ebiten window or headless (default)
//	bench  play headless games for several modes and compare their scores
//	modes  list the strategy identifiers
//
// Every flag can also be set through a SNAKE_* environment variable, and a
// .env file in the working directory is loaded first.
package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/gookit/color"
	"github.com/joho/godotenv"
	"github.com/urfave/cli/v3"

	"snakesearch/pkg/engine/input"
	"snakesearch/pkg/engine/terminal"
	"snakesearch/pkg/game/config"
	"snakesearch/pkg/game/devtools"
	"snakesearch/pkg/game/gameplay"
	"snakesearch/pkg/game/renderer"
	ebitenrenderer "snakesearch/pkg/game/renderer/ebiten"
	"snakesearch/pkg/game/renderer/tui"
	"snakesearch/pkg/game/search"
	"snakesearch/pkg/logging"
	"snakesearch/pkg/transport/websocket"
)

// Version information
const (
	Version = "1.0.0"
	AppName = "snakesearch"
)

// Renderer names accepted by --renderer
const (
	rendererTUI    = "tui"
	rendererEbiten = "ebiten"
	rendererNone   = "none"
)

func main() {
	// Load .env file if it exists (ignore error if not found)
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "Warning: error loading .env file: %v\n", err)
	}

	if err := newCommand().Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", AppName, err)
		os.Exit(1)
	}
}

func newCommand() *cli.Command {
	return &cli.Command{
		Name:    AppName,
		Usage:   "play Snake by hand or watch a search strategy play it",
		Version: Version,
		Flags:   gameFlags(),
		Action:  runPlay,
		Commands: []*cli.Command{
			{
				Name:   "play",
				Usage:  "play rounds until quit",
				Action: runPlay,
			},
			{
				Name:  "bench",
				Usage: "play headless games and report per-mode scores",
				Flags: []cli.Flag{
					&cli.StringSliceFlag{
						Name:    "modes",
						Usage:   "modes to compare (default: every automatic mode)",
						Sources: cli.EnvVars("SNAKE_BENCH_MODES"),
					},
					&cli.IntFlag{
						Name:    "games",
						Value:   20,
						Usage:   "games per mode",
						Sources: cli.EnvVars("SNAKE_BENCH_GAMES"),
					},
					&cli.IntFlag{
						Name:    "max-steps",
						Value:   100000,
						Usage:   "stop a game after this many moves (0 for no limit)",
						Sources: cli.EnvVars("SNAKE_BENCH_MAX_STEPS"),
					},
				},
				Action: runBench,
			},
			{
				Name:   "modes",
				Usage:  "list the strategy identifiers",
				Action: runModes,
			},
		},
	}
}

func gameFlags() []cli.Flag {
	defaults := config.Default()
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "mode",
			Aliases: []string{"m"},
			Value:   string(search.ModeManual),
			Usage:   "strategy driving the snake (see the modes command)",
			Sources: cli.EnvVars("SNAKE_MODE"),
		},
		&cli.BoolFlag{
			Name:    "obstacles",
			Usage:   "place static obstacles on the board",
			Sources: cli.EnvVars("SNAKE_OBSTACLES"),
		},
		&cli.IntFlag{
			Name:    "obstacle-count",
			Value:   defaults.ObstacleCount,
			Usage:   "number of obstacles when enabled",
			Sources: cli.EnvVars("SNAKE_OBSTACLE_COUNT"),
		},
		&cli.IntFlag{
			Name:    "width",
			Value:   defaults.Width,
			Usage:   "board width in pixels, a multiple of cell-size",
			Sources: cli.EnvVars("SNAKE_WIDTH"),
		},
		&cli.IntFlag{
			Name:    "height",
			Value:   defaults.Height,
			Usage:   "board height in pixels, a multiple of cell-size",
			Sources: cli.EnvVars("SNAKE_HEIGHT"),
		},
		&cli.IntFlag{
			Name:    "cell-size",
			Value:   defaults.CellSize,
			Usage:   "cell edge in pixels",
			Sources: cli.EnvVars("SNAKE_CELL_SIZE"),
		},
		&cli.IntFlag{
			Name:    "speed",
			Value:   defaults.AutoSpeed,
			Usage:   "steps per second for search modes, and the cap for manual play",
			Sources: cli.EnvVars("SNAKE_SPEED"),
		},
		&cli.Int64Flag{
			Name:    "seed",
			Usage:   "random seed (0 picks one from the clock)",
			Sources: cli.EnvVars("SNAKE_SEED"),
		},
		&cli.StringFlag{
			Name:    "renderer",
			Value:   rendererTUI,
			Usage:   "front end: tui, ebiten or none",
			Sources: cli.EnvVars("SNAKE_RENDERER"),
		},
		&cli.BoolFlag{
			Name:    "show-path",
			Value:   true,
			Usage:   "draw the planned route",
			Sources: cli.EnvVars("SNAKE_SHOW_PATH"),
		},
		&cli.StringFlag{
			Name:    "serve",
			Usage:   "address to stream frames over websocket, e.g. :8080",
			Sources: cli.EnvVars("SNAKE_SERVE"),
		},
		&cli.BoolFlag{
			Name:    "remote-control",
			Usage:   "let websocket clients send key and action commands",
			Sources: cli.EnvVars("SNAKE_REMOTE_CONTROL"),
		},
		&cli.StringSliceFlag{
			Name:    "bind",
			Usage:   "rebind an action to one key as action=code, e.g. quit=x",
			Sources: cli.EnvVars("SNAKE_BIND"),
		},
		&cli.StringFlag{
			Name:    "locale-dir",
			Usage:   "directory holding <lang>/LC_MESSAGES/default.po translations",
			Sources: cli.EnvVars("SNAKE_LOCALE_DIR"),
		},
		&cli.StringFlag{
			Name:    "locale",
			Value:   "en_GB",
			Usage:   "translation language",
			Sources: cli.EnvVars("SNAKE_LOCALE"),
		},
		&cli.StringFlag{
			Name:    "dump-dir",
			Usage:   "write a text dump of every finished game's board here",
			Sources: cli.EnvVars("SNAKE_DUMP_DIR"),
		},
		&cli.StringFlag{
			Name:    "log-file",
			Usage:   "write logs here instead of stderr",
			Sources: cli.EnvVars("SNAKE_LOG_FILE"),
		},
		&cli.BoolFlag{
			Name:    "debug",
			Usage:   "enable debug logging",
			Sources: cli.EnvVars("SNAKE_DEBUG"),
		},
	}
}

// configFrom builds the game configuration from flags
func configFrom(cmd *cli.Command) (config.Config, error) {
	cfg := config.Default()
	cfg.Width = cmd.Int("width")
	cfg.Height = cmd.Int("height")
	cfg.CellSize = cmd.Int("cell-size")
	cfg.ObstaclesEnabled = cmd.Bool("obstacles")
	cfg.ObstacleCount = cmd.Int("obstacle-count")
	cfg.AutoSpeed = cmd.Int("speed")
	if cfg.InitialSpeed > cfg.AutoSpeed {
		cfg.InitialSpeed = cfg.AutoSpeed
	}
	if seed := cmd.Int64("seed"); seed != 0 {
		cfg.Seed = seed
	}

	if err := config.Validate(cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// setupLogging installs the process logger. The terminal renderer owns
// stdout and raw mode mangles stderr, so without a log file it logs nowhere.
func setupLogging(cmd *cli.Command) (log.Logger, func(), error) {
	var w io.Writer = os.Stderr
	closeFn := func() {}

	switch path := cmd.String("log-file"); {
	case path != "":
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("opening log file: %w", err)
		}
		w = f
		closeFn = func() { f.Close() }
	case cmd.String("renderer") == rendererTUI && cmd.Name != "bench":
		w = io.Discard
	}

	logger := logging.New(w, cmd.Bool("debug"))
	logging.SetGlobalLogger(logger)
	return logger, closeFn, nil
}

// applyBindings applies --bind action=code pairs. Reserved keys keep working.
func applyBindings(pairs []string) error {
	for _, pair := range pairs {
		name, code, ok := strings.Cut(pair, "=")
		if !ok || code == "" {
			return fmt.Errorf("bad binding %q, want action=code", pair)
		}
		action, ok := input.ParseAction(name)
		if !ok {
			return fmt.Errorf("bad binding %q: unknown action %q", pair, name)
		}
		input.SetSingleBinding(action, strings.ToLower(code))
	}
	return nil
}

func runPlay(ctx context.Context, cmd *cli.Command) error {
	logger, closeLog, err := setupLogging(cmd)
	if err != nil {
		return err
	}
	defer closeLog()

	cfg, err := configFrom(cmd)
	if err != nil {
		return err
	}
	mode, err := search.ParseMode(cmd.String("mode"))
	if err != nil {
		return err
	}
	if err := applyBindings(cmd.StringSlice("bind")); err != nil {
		return err
	}
	renderer.InitLocale(cmd.String("locale-dir"), cmd.String("locale"))

	session, err := gameplay.NewSession(cfg, mode, logger)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	queue := input.NewQueueSource()
	sinks := renderer.Multi{}

	if addr := cmd.String("serve"); addr != "" {
		hub, shutdown := serve(ctx, addr, remoteInput(cmd, queue), logger)
		defer shutdown()
		sinks = append(sinks, hub)
	}
	if dir := cmd.String("dump-dir"); dir != "" {
		sinks = append(sinks, devtools.DumpSink{Dir: dir, Logger: logger})
	}

	_ = level.Info(logger).Log("msg", "starting", "mode", mode, "cols", cfg.Cols(), "rows", cfg.Rows(), "seed", cfg.Seed)

	var rounds []gameplay.Outcome
	switch name := cmd.String("renderer"); name {
	case rendererTUI:
		rounds, err = playTUI(ctx, session, queue, sinks, cmd.Bool("show-path"))

	case rendererEbiten:
		window := ebitenrenderer.New(cfg, queue, logger)
		window.Manual = mode == search.ModeManual
		window.ShowPath = cmd.Bool("show-path")
		sinks = append(sinks, window)

		title := fmt.Sprintf("%s - %s", AppName, renderer.ModeTitle(string(mode)))
		err = window.Run(ctx, title, func(ctx context.Context) error {
			var playErr error
			rounds, playErr = session.Play(ctx, queue, sinks)
			return playErr
		})

	case rendererNone:
		rounds, err = session.Play(ctx, queue, sinks)

	default:
		return fmt.Errorf("unknown renderer %q, want %s, %s or %s", name, rendererTUI, rendererEbiten, rendererNone)
	}

	printRounds(os.Stdout, rounds)
	return err
}

// playTUI runs rounds in the terminal, reading keys from stdin in raw mode
func playTUI(ctx context.Context, session *gameplay.Session, queue *input.QueueSource, sinks renderer.Multi, showPath bool) ([]gameplay.Outcome, error) {
	if !terminal.IsTerminal(os.Stdin) {
		return nil, fmt.Errorf("the tui renderer needs a terminal on stdin; try --renderer none")
	}

	keys, err := input.NewKeyboardSource(os.Stdin)
	if err != nil {
		return nil, err
	}
	defer keys.Close()

	screen := tui.New(os.Stdout)
	screen.ClearScreen = true
	screen.ShowPath = showPath
	screen.Manual = session.Mode == search.ModeManual
	sinks = append(sinks, screen)

	return session.Play(ctx, input.MultiSource{keys, queue}, sinks)
}

// remoteInput returns the queue websocket clients steer through, or nil when
// --remote-control is off
func remoteInput(cmd *cli.Command, queue *input.QueueSource) *input.QueueSource {
	if !cmd.Bool("remote-control") {
		return nil
	}
	return queue
}

// serve starts the websocket endpoint at addr/ws. Remote commands are
// queued on queue; a nil queue only streams frames.
func serve(ctx context.Context, addr string, queue *input.QueueSource, logger log.Logger) (*websocket.Hub, func()) {
	hub := websocket.NewHub(queue, logger)
	go hub.Run(ctx)

	mux := http.NewServeMux()
	mux.Handle("/ws", hub)

	server := &http.Server{
		Addr:        addr,
		Handler:     mux,
		ReadTimeout: 15 * time.Second,
		IdleTimeout: 60 * time.Second,
	}
	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			_ = level.Error(logger).Log("msg", "websocket server failed", "addr", addr, "err", err)
		}
	}()
	_ = level.Info(logger).Log("msg", "serving frames", "addr", addr, "path", "/ws")

	return hub, func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}
}

func printRounds(w io.Writer, rounds []gameplay.Outcome) {
	for i, out := range rounds {
		fmt.Fprintf(w, "round %d: %s after %d steps, score %d\n", i+1, out.Reason, out.Step, out.Score)
	}
}

func runBench(ctx context.Context, cmd *cli.Command) error {
	logger, closeLog, err := setupLogging(cmd)
	if err != nil {
		return err
	}
	defer closeLog()

	cfg, err := configFrom(cmd)
	if err != nil {
		return err
	}

	var modes []search.Mode
	for _, name := range cmd.StringSlice("modes") {
		mode, err := search.ParseMode(name)
		if err != nil {
			return err
		}
		modes = append(modes, mode)
	}
	if len(modes) == 0 {
		for _, mode := range search.Modes() {
			if mode != search.ModeManual {
				modes = append(modes, mode)
			}
		}
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	results, err := gameplay.Bench(ctx, cfg, modes, gameplay.BenchOptions{
		Games:    cmd.Int("games"),
		MaxSteps: cmd.Int("max-steps"),
	}, logger)
	if err != nil {
		return err
	}

	printBench(os.Stdout, results)
	return nil
}

func printBench(w io.Writer, results []gameplay.BenchResult) {
	title := color.Style{color.FgMagenta, color.OpBold}
	fmt.Fprintln(w, title.Sprintf("%d modes benchmarked", len(results)))

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "MODE\tGAMES\tMIN\tMEAN\tMAX\tMEAN STEPS\tCOLLIDED\tNO PATH\tNO MOVE\tCAPPED\tERRORS\tTIME")
	for _, r := range results {
		fmt.Fprintf(tw, "%s\t%d\t%d\t%.2f\t%d\t%.1f\t%d\t%d\t%d\t%d\t%d\t%s\n",
			r.Mode, r.Games, r.MinScore, r.MeanScore(), r.MaxScore, r.MeanSteps(),
			r.Reasons[gameplay.ReasonCollided], r.Reasons[gameplay.ReasonNoPath],
			r.Reasons[gameplay.ReasonNoMove], r.Reasons[gameplay.ReasonStepLimit],
			r.Errors, r.Elapsed.Round(time.Millisecond))
	}
	tw.Flush()
}

func runModes(ctx context.Context, cmd *cli.Command) error {
	for _, mode := range search.Modes() {
		fmt.Printf("%-20s %s\n", mode, renderer.ModeTitle(string(mode)))
	}
	return nil
}
