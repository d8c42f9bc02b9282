package sim

import (
	"log/slog"

	"github.com/mlange-42/ark/ecs"

	"github.com/manifoldweb/simlab/components"
	"github.com/manifoldweb/simlab/space"
)

// stepAgent runs one agent's turn: move, decay, consume, death check.
// Side effects are local to the acting agent and at most one resource.
func (m *Model) stepAgent(e ecs.Entity) {
	pos, ag := m.agents.Get(e)
	if !ag.Alive {
		return
	}

	m.move(e, pos)
	ag.Energy-- // movement cost, applied unconditionally
	m.consumeAt(*pos, ag)

	if ag.Energy <= 0 {
		ag.Alive = false
		slog.Debug("agent died", "agent", ag.ID, "tick", m.tick)
	}
}

// move relocates the agent to a uniformly chosen Moore neighbor. Staying put
// happens only on a 1x1 grid, where no distinct neighbor exists.
func (m *Model) move(e ecs.Entity, pos *components.Position) {
	cells := m.grid.Neighborhood(pos.X, pos.Y, false)
	if len(cells) == 0 {
		return
	}
	next := cells[m.rng.Intn(len(cells))]
	m.grid.Move(space.Ref{Kind: space.KindAgent, Entity: e}, next.X, next.Y)
	*pos = next
}

// consumeAt claims at most one unconsumed resource in the agent's cell. The
// lowest resource ID wins, so the claim does not depend on cell insertion
// order. Finding nothing is a normal outcome, not an error.
func (m *Model) consumeAt(pos components.Position, ag *components.Agent) {
	var claim *components.Resource
	for _, ref := range m.grid.Contents(pos.X, pos.Y) {
		if ref.Kind != space.KindResource {
			continue
		}
		_, res := m.resources.Get(ref.Entity)
		if res.Consumed {
			continue
		}
		if claim == nil || res.ID < claim.ID {
			claim = res
		}
	}
	if claim == nil {
		return
	}

	ag.Energy += claim.Value
	claim.Consumed = true
	ag.Collected++
	slog.Debug("resource consumed",
		"agent", ag.ID,
		"resource", claim.ID,
		"value", claim.Value,
		"energy", ag.Energy,
	)
}
