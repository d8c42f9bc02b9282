// Package telemetry implements the reporting collaborators of the
// simulation core: per-tick data collection, CSV output, and run summaries.
// It consumes model snapshots and never mutates simulation state.
package telemetry

import (
	"github.com/manifoldweb/simlab/sim"
)

// TickStats is one model-level row: the aggregate state observed at the
// start of a tick, before any agent has acted.
type TickStats struct {
	Tick  int `csv:"tick"`
	Alive int `csv:"alive"`
}

// AgentRow is one per-agent row, keyed by tick and agent ID.
type AgentRow struct {
	Tick      int  `csv:"tick"`
	AgentID   int  `csv:"agent_id"`
	Energy    int  `csv:"energy"`
	Alive     bool `csv:"alive"`
	Collected int  `csv:"collected"`
}

// Collector accumulates model-level and per-agent records for every tick
// and optionally streams them to CSV through an OutputManager. It implements
// sim.Observer.
type Collector struct {
	perAgent bool
	out      *OutputManager

	ticks  []TickStats
	agents []AgentRow
	err    error
}

// NewCollector creates a collector. out may be nil (in-memory collection
// only). perAgent controls whether per-agent rows are recorded.
func NewCollector(perAgent bool, out *OutputManager) *Collector {
	return &Collector{perAgent: perAgent, out: out}
}

// OnTick records the snapshot. Output errors are retained and reported via
// Err rather than interrupting the run.
func (c *Collector) OnTick(s sim.TickSnapshot) {
	ts := TickStats{Tick: s.Tick, Alive: s.Alive}
	c.ticks = append(c.ticks, ts)
	if err := c.out.WriteTickStats(ts); err != nil && c.err == nil {
		c.err = err
	}

	if !c.perAgent {
		return
	}
	for _, a := range s.Agents {
		row := AgentRow{
			Tick:      s.Tick,
			AgentID:   a.ID,
			Energy:    a.Energy,
			Alive:     a.Alive,
			Collected: a.Collected,
		}
		c.agents = append(c.agents, row)
		if err := c.out.WriteAgentRow(row); err != nil && c.err == nil {
			c.err = err
		}
	}
}

// Ticks returns all model-level rows collected so far.
func (c *Collector) Ticks() []TickStats { return c.ticks }

// Agents returns all per-agent rows collected so far.
func (c *Collector) Agents() []AgentRow { return c.agents }

// Err returns the first output error encountered, if any.
func (c *Collector) Err() error { return c.err }
