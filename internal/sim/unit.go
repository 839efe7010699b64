// Package sim ties the engine together: stationary units running rules,
// mobile agents carrying resources over the graph, cities owning one of
// everything, and the fixed-step simulation driving them.
package sim

import (
	"github.com/mitchelldurbincs/glassbox/internal/sim/core"
	"github.com/mitchelldurbincs/glassbox/internal/sim/graph"
	"github.com/mitchelldurbincs/glassbox/internal/sim/rules"
)

// UnitType describes a kind of stationary unit: the rules it runs, the
// target names it accepts deliveries for, and its initial resources
// (amounts and capacities).
type UnitType struct {
	Name      string
	Color     uint32
	Radius    int
	Targets   []string
	Rules     []*rules.UnitRule
	Resources *core.Resources
}

// Unit is a stationary resource holder anchored to one node of a path.
// It lives for the whole city lifetime.
type Unit struct {
	kind      *UnitType
	node      *graph.Node
	resources *core.Resources
	ticks     uint32
	ctx       rules.Context
}

// NewUnit places a unit of the given type on a node of the city. The
// unit's bag is seeded from the type's initial resources and the rule
// context is bound once: locals to the unit's own bag, grid coordinate to
// the node position projected onto the city grid.
func NewUnit(kind *UnitType, node *graph.Node, city *City) *Unit {
	res := core.NewResources()
	if kind.Resources != nil {
		res = kind.Resources.Clone()
	}

	u := &Unit{
		kind:      kind,
		node:      node,
		resources: res,
	}
	node.Attach(u)

	u.ctx = rules.Context{
		City:    city,
		Unit:    u,
		Locals:  u.resources,
		Globals: city.Globals(),
		Radius:  kind.Radius,
	}
	u.ctx.U, u.ctx.V = city.WorldToGrid(node.Position())
	return u
}

func (u *Unit) Type() string                { return u.kind.Name }
func (u *Unit) Color() uint32               { return u.kind.Color }
func (u *Unit) ID() uint32                  { return u.node.ID() }
func (u *Unit) Node() *graph.Node           { return u.node }
func (u *Unit) Position() core.Vec3         { return u.node.Position() }
func (u *Unit) Resources() *core.Resources  { return u.resources }
func (u *Unit) HasWays() bool               { return u.node.HasWays() }

// Accepts reports whether this unit is a valid delivery destination for
// an agent searching for target and carrying payload. Both conditions are
// required: headroom for at least one carried type, and the target name
// in the unit's configured target list.
func (u *Unit) Accepts(target string, payload *core.Resources) bool {
	if !u.resources.CanAddSome(payload) {
		return false
	}
	for _, t := range u.kind.Targets {
		if t == target {
			return true
		}
	}
	return false
}

// ExecuteRules advances the unit one tick and runs every rule whose rate
// divides the tick counter, in reverse declaration order.
func (u *Unit) ExecuteRules() {
	u.ticks++
	for i := len(u.kind.Rules); i > 0; {
		i--
		if u.ticks%u.kind.Rules[i].Rate() == 0 {
			u.kind.Rules[i].Execute(&u.ctx)
		}
	}
}
