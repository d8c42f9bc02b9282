// Package components defines the data attached to simulation entities.
package components

// Position is a cell coordinate on the toroidal grid.
type Position struct {
	X int
	Y int
}

// Agent holds the mutable state of one autonomous agent. Alive is true iff
// energy was above zero at the last death check; once false it never becomes
// true again.
type Agent struct {
	ID        int
	Energy    int
	Alive     bool
	Collected int // resources consumed over the agent's lifetime
}

// Resource is a consumable energy source. Consumed flips false to true at
// most once; a consumed resource stays on the grid but never yields energy
// again.
type Resource struct {
	ID       int
	Value    int
	Consumed bool
}
