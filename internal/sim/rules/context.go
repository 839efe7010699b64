// Package rules implements the small typed command interpreter that drives
// the simulation: value accessors over the global, local and map-cell
// resource scopes, commands that mutate them, and rate-gated rules that
// run command lists with all-or-nothing semantics.
package rules

import "github.com/mitchelldurbincs/glassbox/internal/sim/core"

// CellGrid is what a rule sees of a resource map: bounded radius reads and
// writes around a cell. Radius 0 touches the single cell.
type CellGrid interface {
	Amount(u, v, radius int) uint32
	Capacity() uint32
	Add(u, v, radius int, amount uint32)
	Remove(u, v, radius int, amount uint32)
}

// Host is what a rule sees of the unit it runs on.
type Host interface {
	ID() uint32
	HasWays() bool
}

// World is what a rule sees of the owning city.
type World interface {
	// Grid returns the named resource map, or nil if unregistered.
	Grid(id string) CellGrid
	// SpawnAgent creates a mobile carrier owned by the city.
	SpawnAgent(kind *core.AgentType, owner Host, payload *core.Resources, target string)
}

// Context is the short-lived binding a rule invocation reads and writes
// through. It is refreshed (U/V for map rules) before each invocation and
// holds no ownership over anything it points at.
type Context struct {
	City    World
	Unit    Host            // nil for map rules
	Locals  *core.Resources // the unit's own bag, nil for map rules
	Globals *core.Resources // the city's bag
	U, V    int             // grid coordinate the rule applies at
	Radius  int             // radius for map-cell operations
}
