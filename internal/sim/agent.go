package sim

import (
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/mitchelldurbincs/glassbox/internal/sim/core"
	"github.com/mitchelldurbincs/glassbox/internal/sim/graph"
)

// Agent is a mobile resource carrier walking the path graph toward a unit
// that accepts its payload. It is a two-state machine: at a node
// (next == nil) it unloads and picks the next hop; traveling it advances
// along the current way.
type Agent struct {
	id         uint32
	kind       *core.AgentType
	target     string
	resources  *core.Resources
	position   core.Vec3
	offset     float64
	currentWay *graph.Way
	last       *graph.Node
	next       *graph.Node
	logger     zerolog.Logger
}

func newAgent(id uint32, kind *core.AgentType, owner *Unit, payload *core.Resources, target string) *Agent {
	return &Agent{
		id:        id,
		kind:      kind,
		target:    target,
		resources: payload,
		position:  owner.Node().Position(),
		last:      owner.Node(),
		logger:    log.With().Str("component", "agent").Uint32("agent_id", id).Logger(),
	}
}

func (a *Agent) ID() uint32                 { return a.id }
func (a *Agent) Type() string               { return a.kind.Name }
func (a *Agent) Color() uint32              { return a.kind.Color }
func (a *Agent) Position() core.Vec3        { return a.position }
func (a *Agent) Resources() *core.Resources { return a.resources }
func (a *Agent) Target() string             { return a.target }

// Translate shifts the agent's world position, used when the owning city
// moves.
func (a *Agent) Translate(dir core.Vec3) {
	a.position = a.position.Add(dir)
}

// Update advances the agent one tick and reports whether it has delivered
// everything and should be removed.
func (a *Agent) Update(d *graph.Dijkstra, ticksPerSecond float64) bool {
	if a.next == nil {
		if a.unload() {
			return true
		}
		a.findNextNode(d)
		return false
	}
	a.moveTowardNext(ticksPerSecond)
	return false
}

// unload transfers the payload into an accepting resident unit, if any,
// and reports whether the payload is now empty. Resident units are
// scanned in reverse so the most recently placed one gets first pick.
func (a *Agent) unload() bool {
	units := a.last.Units()
	for i := len(units); i > 0; {
		i--
		if units[i].Accepts(a.target, a.resources) {
			a.resources.TransferTo(units[i].Resources())
			break
		}
	}
	return a.resources.IsEmpty()
}

func (a *Agent) findNextNode(d *graph.Dijkstra) {
	a.next = d.FindNextPoint(a.last, a.target, a.resources)
	if a.next == nil {
		// Nowhere to go this tick; hold position and retry next tick.
		a.currentWay = nil
		return
	}
	a.currentWay = a.last.WayTo(a.next)
	if a.currentWay == nil {
		a.logger.Error().
			Uint32("from", a.last.ID()).
			Uint32("to", a.next.ID()).
			Msg("no way joins the chosen next node")
		return
	}
	if a.last == a.currentWay.From() {
		a.offset = 0.0
	} else {
		a.offset = 1.0
	}
}

func (a *Agent) moveTowardNext(ticksPerSecond float64) {
	if a.currentWay == nil {
		// Ill-formed traveling state: snap to the last known node and
		// report, but keep the agent alive.
		a.logger.Warn().
			Uint32("node", a.last.ID()).
			Msg("traveling without a way, snapping to last node")
		a.position = a.last.Position()
		a.next = nil
		return
	}

	direction := 1.0
	if a.next != a.currentWay.To() {
		direction = -1.0
	}
	a.offset += direction * (a.kind.Speed / ticksPerSecond) / a.currentWay.Length()

	if a.offset < 0.0 {
		a.offset = 0.0
		a.last = a.currentWay.From()
		a.next = nil
	} else if a.offset > 1.0 {
		a.offset = 1.0
		a.last = a.currentWay.To()
		a.next = nil
	}
	a.position = a.currentWay.PositionAt(a.offset)
}
