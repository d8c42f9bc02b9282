// Package sim implements the discrete-time grid simulation core: the entity
// registry, the randomized activation scheduler, the agent lifecycle, and
// the model that orchestrates them. A run is single-threaded and, given a
// fixed seed, bit-for-bit reproducible.
package sim

import (
	"math/rand"
	"time"

	"github.com/mlange-42/ark/ecs"

	"github.com/manifoldweb/simlab/components"
	"github.com/manifoldweb/simlab/config"
	"github.com/manifoldweb/simlab/space"
)

// AgentRecord is the per-agent reporting view: energy and liveness keyed by
// the agent's stable ID.
type AgentRecord struct {
	ID        int
	Energy    int
	Alive     bool
	Collected int
}

// TickSnapshot is handed to observers at the start of every tick, before any
// agent has acted.
type TickSnapshot struct {
	Tick   int
	Alive  int
	Agents []AgentRecord
}

// Observer consumes per-tick snapshots. The core makes no assumption about
// how observers store or display them.
type Observer interface {
	OnTick(TickSnapshot)
}

// Model composes the grid, the registry and the scheduler, owns the seeded
// random stream, and drives the tick loop.
type Model struct {
	world     *ecs.World
	grid      *space.Grid
	registry  *Registry
	scheduler *Scheduler
	rng       *rand.Rand
	seed      int64
	cfg       config.SimConfig

	agents      *ecs.Map2[components.Position, components.Agent]
	resources   *ecs.Map2[components.Position, components.Resource]
	agentFilter *ecs.Filter2[components.Position, components.Agent]

	tick      int
	observers []Observer
}

// New builds a model from cfg. Construction fails on invalid parameters. A
// zero seed is replaced with the current time, which makes the run
// non-reproducible.
func New(cfg config.SimConfig) (*Model, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	grid, err := space.NewGrid(cfg.GridWidth, cfg.GridHeight)
	if err != nil {
		return nil, err
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	world := ecs.NewWorld()
	m := &Model{
		world:       world,
		grid:        grid,
		registry:    &Registry{},
		scheduler:   NewScheduler(rng),
		rng:         rng,
		seed:        seed,
		cfg:         cfg,
		agents:      ecs.NewMap2[components.Position, components.Agent](world),
		resources:   ecs.NewMap2[components.Position, components.Resource](world),
		agentFilter: ecs.NewFilter2[components.Position, components.Agent](world),
	}

	// Agents first, then resources; both at independently uniform positions.
	// Placement is unconstrained, so agents and resources may coincide.
	for i := 0; i < cfg.Agents; i++ {
		pos := components.Position{X: rng.Intn(grid.Width()), Y: rng.Intn(grid.Height())}
		ag := components.Agent{ID: i, Energy: cfg.InitialEnergy, Alive: true}
		e := m.agents.NewEntity(&pos, &ag)
		grid.Place(space.Ref{Kind: space.KindAgent, Entity: e}, pos.X, pos.Y)
		m.registry.addAgent(e)
	}
	for i := 0; i < cfg.Resources; i++ {
		pos := components.Position{X: rng.Intn(grid.Width()), Y: rng.Intn(grid.Height())}
		res := components.Resource{ID: i, Value: cfg.ResourceEnergy}
		e := m.resources.NewEntity(&pos, &res)
		grid.Place(space.Ref{Kind: space.KindResource, Entity: e}, pos.X, pos.Y)
		m.registry.addResource(e)
	}

	return m, nil
}

// AddObserver registers an observer for per-tick snapshots.
func (m *Model) AddObserver(o Observer) {
	m.observers = append(m.observers, o)
}

// Tick advances the simulation one step. Observers receive the pre-step
// snapshot first, then every currently-alive agent acts once in this tick's
// activation order. Agents activated earlier see the side effects of their
// own moves and claims; agents activated later see everything before them.
func (m *Model) Tick() {
	if len(m.observers) > 0 {
		snap := m.Snapshot()
		for _, o := range m.observers {
			o.OnTick(snap)
		}
	}

	for _, e := range m.scheduler.Order(m.registry, m.agents) {
		m.stepAgent(e)
	}

	m.tick++
}

// Run executes n ticks sequentially. Ticks keep counting even after every
// agent has died.
func (m *Model) Run(n int) {
	for i := 0; i < n; i++ {
		m.Tick()
	}
}

// Snapshot captures the current per-agent state and the aggregate alive
// count. Records appear in agent creation order.
func (m *Model) Snapshot() TickSnapshot {
	snap := TickSnapshot{
		Tick:   m.tick,
		Agents: make([]AgentRecord, 0, m.registry.AgentCount()),
	}
	query := m.agentFilter.Query()
	for query.Next() {
		_, ag := query.Get()
		if ag.Alive {
			snap.Alive++
		}
		snap.Agents = append(snap.Agents, AgentRecord{
			ID:        ag.ID,
			Energy:    ag.Energy,
			Alive:     ag.Alive,
			Collected: ag.Collected,
		})
	}
	return snap
}

// TickCount returns the number of completed ticks.
func (m *Model) TickCount() int { return m.tick }

// Seed returns the seed the random stream was initialized with.
func (m *Model) Seed() int64 { return m.seed }

// Registry returns the entity registry.
func (m *Model) Registry() *Registry { return m.registry }

// Grid returns the spatial grid.
func (m *Model) Grid() *space.Grid { return m.grid }
