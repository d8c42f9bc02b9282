package sim

import (
	"math/rand"

	"github.com/mlange-42/ark/ecs"

	"github.com/manifoldweb/simlab/components"
)

// Scheduler produces the activation order for each tick: a fresh uniform
// permutation of the currently-alive agents. Dead agents do not appear in
// the order at all, so they never consume a turn.
type Scheduler struct {
	rng *rand.Rand
}

// NewScheduler creates a scheduler drawing from the given random stream.
func NewScheduler(rng *rand.Rand) *Scheduler {
	return &Scheduler{rng: rng}
}

// Order returns this tick's activation order. The alive set is collected in
// registry creation order and then shuffled, so the result depends only on
// the random stream. The permutation is drawn fresh on every call, never
// cached across ticks.
func (s *Scheduler) Order(reg *Registry, agents *ecs.Map2[components.Position, components.Agent]) []ecs.Entity {
	alive := make([]ecs.Entity, 0, reg.AgentCount())
	for _, e := range reg.Agents() {
		_, ag := agents.Get(e)
		if ag.Alive {
			alive = append(alive, e)
		}
	}
	s.rng.Shuffle(len(alive), func(i, j int) {
		alive[i], alive[j] = alive[j], alive[i]
	})
	return alive
}
