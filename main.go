package main

import (
	"flag"
	"io"
	"log/slog"
	"os"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/solwind/config"
	"github.com/pthm-cable/solwind/scene"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	dataPath := flag.String("data", "", "Path to field sample file (.json or .csv)")
	landmarksPath := flag.String("landmarks", "", "Path to NDJSON landmark stream (- = stdin)")
	headless := flag.Bool("headless", false, "Run without graphics")
	logStats := flag.Bool("log-stats", false, "Output stats via slog")
	statsWindow := flag.Float64("stats-window", 0, "Stats window size in seconds (0 = use config)")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	maxTicks := flag.Int("max-ticks", 0, "Stop after N ticks (0 = unlimited)")

	flag.Parse()

	// Initialize config before anything else
	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	// Set up slog (JSON to stdout for structured logging)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	landmarkReader, err := openLandmarks(*landmarksPath)
	if err != nil {
		slog.Error("failed to open landmark stream", "path", *landmarksPath, "error", err)
		os.Exit(1)
	}

	opts := scene.Options{
		Seed:           rngSeed,
		DataPath:       *dataPath,
		LandmarkReader: landmarkReader,
		Headless:       *headless,
		LogStats:       *logStats,
		StatsWindowSec: *statsWindow,
		OutputDir:      *outputDir,
	}

	if *headless {
		// Headless mode - simulation only, no raylib window
		s := scene.New(opts)
		defer s.Unload()

		slog.Info("starting headless run",
			"seed", rngSeed,
			"data", *dataPath,
			"max_ticks", *maxTicks,
		)

		for {
			s.UpdateHeadless()

			if *maxTicks > 0 && int(s.Tick()) >= *maxTicks {
				slog.Info("max ticks reached", "tick", s.Tick())
				return
			}
		}
	} else {
		// Graphical mode
		rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), "Solar Wind")
		defer rl.CloseWindow()

		rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

		s := scene.New(opts)
		defer s.Unload()

		for !rl.WindowShouldClose() {
			s.Update()
			s.Draw()

			if *maxTicks > 0 && int(s.Tick()) >= *maxTicks {
				break
			}
		}
	}
}

// openLandmarks resolves the landmark stream flag: empty means no
// gesture input, "-" means stdin, anything else is a file path.
func openLandmarks(path string) (io.Reader, error) {
	switch path {
	case "":
		return nil, nil
	case "-":
		return os.Stdin, nil
	default:
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		return f, nil
	}
}
