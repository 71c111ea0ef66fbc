package main

import (
	"flag"
	"log/slog"
	"os"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/homeward/config"
	"github.com/pthm-cable/homeward/game"
	"github.com/pthm-cable/homeward/renderer"
	"github.com/pthm-cable/homeward/telemetry"
	"github.com/pthm-cable/homeward/ui"
)

func main() {
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	headless := flag.Bool("headless", false, "Run without graphics")
	logStats := flag.Bool("log-stats", false, "Output per-day stats via slog")
	outputDir := flag.String("output-dir", "", "Output directory for CSV samples and config snapshot")
	dbPath := flag.String("db", "", "SQLite file for run history (empty = disabled)")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	maxDays := flag.Int("max-days", 0, "Stop after N dawns (0 = unlimited)")

	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	output, err := telemetry.NewOutputManager(*outputDir)
	if err != nil {
		slog.Error("failed to set up output directory", "error", err)
		os.Exit(1)
	}
	if output != nil {
		defer output.Close()
		if err := output.WriteConfig(cfg); err != nil {
			slog.Error("failed to snapshot config", "error", err)
		}
	}

	var store *telemetry.Store
	if *dbPath != "" {
		store, err = telemetry.OpenStore(*dbPath, rngSeed)
		if err != nil {
			slog.Error("failed to open store", "error", err)
			os.Exit(1)
		}
		defer store.Close()
	}

	opts := game.Options{
		Config:   cfg,
		Seed:     rngSeed,
		Output:   output,
		Store:    store,
		LogStats: *logStats,
	}

	slog.Info("starting simulation",
		"seed", rngSeed,
		"headless", *headless,
		"max_days", *maxDays,
	)

	if *headless {
		runHeadless(opts, *maxDays)
		return
	}
	runGraphical(opts, *maxDays)
}

// runHeadless steps the simulation with the fixed config delta until
// extinction or the day limit.
func runHeadless(opts game.Options, maxDays int) {
	g := game.New(opts)
	dt := opts.Config.Derived.DT32

	for !g.Terminated() {
		g.Step(dt)
		if maxDays > 0 && g.Day() >= maxDays {
			slog.Info("day limit reached", "day", g.Day(), "tick", g.Tick())
			return
		}
	}
}

// runGraphical opens the raylib window and drives the simulation from the
// frame clock. The window size is the world size; resizing the window
// resizes the playing field.
func runGraphical(opts game.Options, maxDays int) {
	cfg := opts.Config

	rl.SetConfigFlags(rl.FlagWindowResizable)
	rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), "Homeward")
	defer rl.CloseWindow()
	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

	opts.Bounds = func() (float32, float32) {
		return float32(rl.GetScreenWidth()), float32(rl.GetScreenHeight())
	}

	g := game.New(opts)
	r := renderer.New()
	panel := ui.NewOptionsPanel(cfg)
	paused := false

	for !rl.WindowShouldClose() {
		if rl.IsKeyPressed(rl.KeySpace) {
			paused = !paused
		}
		if rl.IsKeyPressed(rl.KeyTab) {
			panel.Toggle()
		}

		if !paused {
			g.Step(rl.GetFrameTime())
		}

		rl.BeginDrawing()
		r.Draw(g, paused)
		if panel.Draw() {
			next, err := panel.Apply(cfg)
			if err != nil {
				slog.Error("rejected pending config", "error", err)
			} else {
				opts.Config = next
				opts.Seed = time.Now().UnixNano()
				// Telemetry sinks rotate per run so a restart never
				// appends to the previous simulation's series.
				if err := opts.Output.NewRun(next); err != nil {
					slog.Error("failed to rotate output", "error", err)
				}
				if err := opts.Store.NewRun(opts.Seed); err != nil {
					slog.Error("failed to register run", "error", err)
				}
				g = game.New(opts)
				slog.Info("restarted", "seed", opts.Seed)
			}
		}
		rl.EndDrawing()

		if maxDays > 0 && g.Day() >= maxDays {
			slog.Info("day limit reached", "day", g.Day(), "tick", g.Tick())
			return
		}
	}
}
