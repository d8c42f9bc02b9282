package main

import (
	"flag"
	"log/slog"
	"os"

	"github.com/manifoldweb/simlab/config"
	"github.com/manifoldweb/simlab/sim"
	"github.com/manifoldweb/simlab/telemetry"
)

func main() {
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	steps := flag.Int("steps", 50, "Number of ticks to run")
	seed := flag.Int64("seed", 0, "RNG seed override (0 = use config)")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	flag.Parse()

	// Set up slog (JSON to stdout for structured logging)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	if *seed != 0 {
		cfg.Sim.Seed = *seed
	}

	out, err := telemetry.NewOutputManager(*outputDir)
	if err != nil {
		slog.Error("failed to set up output", "error", err)
		os.Exit(1)
	}
	defer out.Close()
	if err := out.WriteConfig(cfg); err != nil {
		slog.Error("failed to write config snapshot", "error", err)
		os.Exit(1)
	}

	model, err := sim.New(cfg.Sim)
	if err != nil {
		slog.Error("failed to initialize model", "error", err)
		os.Exit(1)
	}

	collector := telemetry.NewCollector(cfg.Telemetry.PerAgent, out)
	model.AddObserver(collector)

	slog.Info("starting simulation",
		"agents", cfg.Sim.Agents,
		"grid_width", cfg.Sim.GridWidth,
		"grid_height", cfg.Sim.GridHeight,
		"resources", cfg.Sim.Resources,
		"seed", model.Seed(),
		"steps", *steps,
	)

	for i := 0; i < *steps; i++ {
		model.Tick()
		if (i+1)%10 == 0 {
			slog.Info("progress", "step", i+1, "alive", model.Snapshot().Alive)
		}
	}

	if err := collector.Err(); err != nil {
		slog.Error("telemetry output failed", "error", err)
	}

	summary := telemetry.Summarize(model.TickCount(), model.Snapshot().Agents)
	slog.Info("simulation complete", "summary", summary)
}
