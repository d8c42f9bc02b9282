// Command evolve runs the byte-genome genetic algorithm demonstration.
package main

import (
	"encoding/hex"
	"flag"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"

	"github.com/manifoldweb/simlab/ga"
)

func main() {
	population := flag.Int("population", 50, "Population size")
	genomeLength := flag.Int("genome-length", 32, "Genome length in bytes")
	generations := flag.Int("generations", 20, "Number of generations")
	mutationRate := flag.Float64("mutation-rate", 0.01, "Per-byte bit-flip probability")
	crossoverRate := flag.Float64("crossover-rate", 0.7, "Per-pair crossover probability")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	outputDir := flag.String("output-dir", "", "Output directory for the per-generation CSV log")
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	opts := ga.Options{
		PopulationSize: *population,
		GenomeLength:   *genomeLength,
		Generations:    *generations,
		MutationRate:   *mutationRate,
		CrossoverRate:  *crossoverRate,
		Seed:           *seed,
	}

	slog.Info("starting evolution",
		"population", opts.PopulationSize,
		"genome_length", opts.GenomeLength,
		"generations", opts.Generations,
		"mutation_rate", opts.MutationRate,
		"crossover_rate", opts.CrossoverRate,
	)

	best, history, err := ga.Evolve(opts, ga.SumBytes)
	if err != nil {
		slog.Error("evolution failed", "error", err)
		os.Exit(1)
	}

	for _, gs := range history {
		slog.Info("generation",
			"gen", gs.Generation,
			"avg", gs.Mean,
			"std", gs.Std,
			"min", gs.Min,
			"max", gs.Max,
		)
	}

	if *outputDir != "" {
		if err := writeHistory(*outputDir, history); err != nil {
			slog.Error("failed to write generation log", "error", err)
			os.Exit(1)
		}
	}

	preview := best.Genome
	if len(preview) > 16 {
		preview = preview[:16]
	}
	slog.Info("evolution complete",
		"best_fitness", best.Fitness,
		"best_genome_prefix", hex.EncodeToString(preview),
	)
}

func writeHistory(dir string, history []ga.GenerationStats) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	f, err := os.Create(filepath.Join(dir, "generations.csv"))
	if err != nil {
		return err
	}
	defer f.Close()
	return gocsv.Marshal(history, f)
}
