package sim

import "github.com/mlange-42/ark/ecs"

// Registry owns the canonical set of agents and resources ever created, in
// creation order. Entities are never removed: dead agents and consumed
// resources stay queryable for reporting.
type Registry struct {
	agents    []ecs.Entity
	resources []ecs.Entity
}

func (r *Registry) addAgent(e ecs.Entity)    { r.agents = append(r.agents, e) }
func (r *Registry) addResource(e ecs.Entity) { r.resources = append(r.resources, e) }

// Agents returns all agents ever created, in creation order.
func (r *Registry) Agents() []ecs.Entity { return r.agents }

// Resources returns all resources ever created, in creation order.
func (r *Registry) Resources() []ecs.Entity { return r.resources }

// AgentCount returns the number of agents ever created, dead or alive.
func (r *Registry) AgentCount() int { return len(r.agents) }

// ResourceCount returns the number of resources ever created.
func (r *Registry) ResourceCount() int { return len(r.resources) }
