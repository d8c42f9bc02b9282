// Package ga implements a small genetic algorithm over independent
// byte-array genomes: tournament selection, single-point crossover, and
// per-byte bit-flip mutation. It is a self-contained demonstration and does
// not interact with the grid simulation.
package ga

import (
	"fmt"
	"math/rand"
	"time"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Genome is a fixed-length byte string.
type Genome []byte

// Fitness scores a genome; higher is better.
type Fitness func(Genome) float64

// SumBytes is the demonstration fitness: the sum of all byte values.
func SumBytes(g Genome) float64 {
	var sum float64
	for _, b := range g {
		sum += float64(b)
	}
	return sum
}

// Individual pairs a genome with its cached fitness.
type Individual struct {
	Genome  Genome
	Fitness float64
}

// Options configure an evolution run.
type Options struct {
	PopulationSize int
	GenomeLength   int
	Generations    int
	MutationRate   float64 // per-byte probability of a random bit flip
	CrossoverRate  float64 // per-pair probability of single-point crossover
	TournamentSize int     // 0 = default of 3
	Seed           int64   // 0 = time-based
}

// GenerationStats summarizes fitness across one generation.
type GenerationStats struct {
	Generation int     `csv:"gen"`
	Mean       float64 `csv:"avg"`
	Std        float64 `csv:"std"`
	Min        float64 `csv:"min"`
	Max        float64 `csv:"max"`
}

// Evolve runs the genetic algorithm for opts.Generations generations and
// returns the best individual of the final population along with
// per-generation statistics (the initial population is generation 0).
func Evolve(opts Options, fitness Fitness) (Individual, []GenerationStats, error) {
	if opts.PopulationSize <= 0 {
		return Individual{}, nil, fmt.Errorf("ga: population size must be positive, got %d", opts.PopulationSize)
	}
	if opts.GenomeLength <= 0 {
		return Individual{}, nil, fmt.Errorf("ga: genome length must be positive, got %d", opts.GenomeLength)
	}
	if opts.Generations < 0 {
		return Individual{}, nil, fmt.Errorf("ga: generations must be non-negative, got %d", opts.Generations)
	}
	if opts.TournamentSize == 0 {
		opts.TournamentSize = 3
	}
	if fitness == nil {
		fitness = SumBytes
	}

	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	// Initial population: uniformly random bytes.
	pop := make([]Individual, opts.PopulationSize)
	for i := range pop {
		g := make(Genome, opts.GenomeLength)
		for j := range g {
			g[j] = byte(rng.Intn(256))
		}
		pop[i] = Individual{Genome: g, Fitness: fitness(g)}
	}

	history := make([]GenerationStats, 0, opts.Generations+1)
	history = append(history, summarize(0, pop))

	for gen := 1; gen <= opts.Generations; gen++ {
		// Select parents, clone so variation never mutates survivors.
		next := make([]Individual, opts.PopulationSize)
		for i := range next {
			next[i] = Individual{Genome: tournament(rng, pop, opts.TournamentSize).Genome.clone()}
		}

		// Mate adjacent pairs.
		for i := 0; i+1 < len(next); i += 2 {
			if rng.Float64() < opts.CrossoverRate {
				SinglePointCrossover(rng, next[i].Genome, next[i+1].Genome)
			}
		}

		for i := range next {
			MutateBitFlip(rng, next[i].Genome, opts.MutationRate)
			next[i].Fitness = fitness(next[i].Genome)
		}

		pop = next
		history = append(history, summarize(gen, pop))
	}

	best := pop[0]
	for _, ind := range pop[1:] {
		if ind.Fitness > best.Fitness {
			best = ind
		}
	}
	return best, history, nil
}

// SinglePointCrossover picks a random point in [1, size) and swaps the tails
// of a and b in place. Genomes shorter than two bytes are left unchanged.
func SinglePointCrossover(rng *rand.Rand, a, b Genome) {
	size := len(a)
	if len(b) < size {
		size = len(b)
	}
	if size < 2 {
		return
	}
	point := 1 + rng.Intn(size-1)
	for i := point; i < size; i++ {
		a[i], b[i] = b[i], a[i]
	}
}

// MutateBitFlip visits every byte and, with probability rate, flips one
// uniformly chosen bit in it.
func MutateBitFlip(rng *rand.Rand, g Genome, rate float64) {
	for i := range g {
		if rng.Float64() < rate {
			g[i] ^= 1 << uint(rng.Intn(8))
		}
	}
}

// tournament returns the fittest of k uniformly drawn individuals.
func tournament(rng *rand.Rand, pop []Individual, k int) Individual {
	best := pop[rng.Intn(len(pop))]
	for i := 1; i < k; i++ {
		c := pop[rng.Intn(len(pop))]
		if c.Fitness > best.Fitness {
			best = c
		}
	}
	return best
}

func (g Genome) clone() Genome {
	out := make(Genome, len(g))
	copy(out, g)
	return out
}

func summarize(gen int, pop []Individual) GenerationStats {
	vals := make([]float64, len(pop))
	for i, ind := range pop {
		vals[i] = ind.Fitness
	}
	gs := GenerationStats{
		Generation: gen,
		Mean:       stat.Mean(vals, nil),
		Min:        floats.Min(vals),
		Max:        floats.Max(vals),
	}
	if len(vals) > 1 {
		gs.Std = stat.StdDev(vals, nil)
	}
	return gs
}
