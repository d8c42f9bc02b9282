package telemetry

import (
	"log/slog"

	"gonum.org/v1/gonum/stat"

	"github.com/manifoldweb/simlab/sim"
)

// Summary is the end-of-run report. It is derived from the final per-agent
// records alone, so it can be recomputed from the registry at any time.
type Summary struct {
	Ticks           int
	Alive           int
	Dead            int
	MeanEnergyAlive float64 // zero when no agent survived
	TotalCollected  int
}

// Summarize derives a run summary from the final per-agent records.
func Summarize(ticks int, records []sim.AgentRecord) Summary {
	s := Summary{Ticks: ticks}

	var energies []float64
	for _, r := range records {
		s.TotalCollected += r.Collected
		if r.Alive {
			s.Alive++
			energies = append(energies, float64(r.Energy))
		} else {
			s.Dead++
		}
	}

	if len(energies) > 0 {
		s.MeanEnergyAlive = stat.Mean(energies, nil)
	}

	return s
}

// LogValue implements slog.LogValuer for structured logging.
func (s Summary) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("ticks", s.Ticks),
		slog.Int("alive", s.Alive),
		slog.Int("dead", s.Dead),
		slog.Float64("mean_energy_alive", s.MeanEnergyAlive),
		slog.Int("total_collected", s.TotalCollected),
	)
}
