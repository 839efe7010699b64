package sim

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/mitchelldurbincs/glassbox/internal/sim/core"
	"github.com/mitchelldurbincs/glassbox/internal/sim/events"
	"github.com/mitchelldurbincs/glassbox/internal/sim/graph"
	"github.com/mitchelldurbincs/glassbox/internal/sim/grid"
	"github.com/mitchelldurbincs/glassbox/internal/sim/rules"
)

// City owns one instance of everything: resource maps, path networks,
// units, agents, a global resource bag and a pathfinder. It advances them
// all once per tick in a fixed order: agents, then units, then maps.
type City struct {
	name           string
	position       core.Vec3
	sizeU, sizeV   int
	nextAgentID    uint32
	globals        *core.Resources
	maps           []*grid.Map // insertion order, never a bare Go map
	mapIndex       map[string]*grid.Map
	paths          []*graph.Path
	pathIndex      map[string]*graph.Path
	units          []*Unit
	agents         []*Agent
	dijkstra       *graph.Dijkstra
	rng            *rand.Rand
	listener       events.Listener
	ticksPerSecond float64
	logger         zerolog.Logger
}

// NewCity creates an empty city at a world position with the given grid
// dimensions. A nil rng is seeded from the clock; pass a seeded source
// for reproducible runs.
func NewCity(name string, position core.Vec3, sizeU, sizeV int, rng *rand.Rand) *City {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &City{
		name:           name,
		position:       position,
		sizeU:          sizeU,
		sizeV:          sizeV,
		globals:        core.NewResources(),
		mapIndex:       make(map[string]*grid.Map),
		pathIndex:      make(map[string]*graph.Path),
		dijkstra:       graph.NewDijkstra(rng),
		rng:            rng,
		listener:       events.Nop{},
		ticksPerSecond: DefaultTicksPerSecond,
		logger:         log.With().Str("component", "city").Str("city", name).Logger(),
	}
}

// SetListener installs the event listener. A nil listener restores the
// no-op default.
func (c *City) SetListener(l events.Listener) {
	if l == nil {
		l = events.Nop{}
	}
	c.listener = l
}

// SetTicksPerSecond overrides the tick rate agents scale their speed by.
func (c *City) SetTicksPerSecond(tps float64) {
	if tps > 0 {
		c.ticksPerSecond = tps
	}
}

func (c *City) Name() string         { return c.name }
func (c *City) Position() core.Vec3  { return c.position }
func (c *City) GridSizeU() int       { return c.sizeU }
func (c *City) GridSizeV() int       { return c.sizeV }
func (c *City) Globals() *core.Resources { return c.globals }
func (c *City) Units() []*Unit       { return c.units }
func (c *City) Agents() []*Agent     { return c.agents }
func (c *City) Maps() []*grid.Map    { return c.maps }
func (c *City) Paths() []*graph.Path { return c.paths }

// Update advances the city one tick: agents first (back to front so
// finished ones can be swap-removed), then units, then maps, both in
// reverse declaration order.
func (c *City) Update() {
	for i := len(c.agents) - 1; i >= 0; i-- {
		if c.agents[i].Update(c.dijkstra, c.ticksPerSecond) {
			removed := c.agents[i]
			last := len(c.agents) - 1
			c.agents[i] = c.agents[last]
			c.agents = c.agents[:last]
			c.listener.Handle(events.NewAgentRemoved(c.name, removed.Type(), removed.ID()))
		}
	}

	for i := len(c.units); i > 0; {
		i--
		c.units[i].ExecuteRules()
		c.listener.Handle(events.NewUnitUpdated(c.name, c.units[i].Type(), c.units[i].ID()))
	}

	for _, m := range c.maps {
		m.ExecuteRules()
		c.listener.Handle(events.NewMapUpdated(c.name, m.Type()))
	}
}

// Translate moves the city and everything anchored to it: paths cascade
// into nodes and way lengths, agents shift directly. Units follow their
// nodes; maps derive their position from the city.
func (c *City) Translate(dir core.Vec3) {
	c.position = c.position.Add(dir)
	for _, p := range c.paths {
		p.Translate(dir)
	}
	for _, m := range c.maps {
		m.Translate(dir)
	}
	for _, a := range c.agents {
		a.Translate(dir)
	}
}

// WorldToGrid projects a world position onto the city grid, clamped to
// the grid bounds.
func (c *City) WorldToGrid(pos core.Vec3) (u, v int) {
	x := (pos.X - c.position.X) / core.GridSize
	y := (pos.Y - c.position.Y) / core.GridSize

	u = int(x)
	if x < 0 {
		u = 0
	} else if u >= c.sizeU {
		u = c.sizeU - 1
	}
	v = int(y)
	if y < 0 {
		v = 0
	} else if v >= c.sizeV {
		v = c.sizeV - 1
	}
	return u, v
}

// AddMap registers a resource map of the given type, replacing any
// previous map of the same name.
func (c *City) AddMap(kind *grid.MapType) *grid.Map {
	m := grid.NewMap(kind, c, c.globals, c.position, c.sizeU, c.sizeV, c.rng)
	if _, exists := c.mapIndex[kind.Name]; exists {
		for i, old := range c.maps {
			if old.Type() == kind.Name {
				c.maps[i] = m
				break
			}
		}
	} else {
		c.maps = append(c.maps, m)
	}
	c.mapIndex[kind.Name] = m
	c.listener.Handle(events.NewMapAdded(c.name, kind.Name))
	return m
}

// Map returns the registered map of the given name.
func (c *City) Map(name string) (*grid.Map, error) {
	m, ok := c.mapIndex[name]
	if !ok {
		return nil, fmt.Errorf("map %q: %w", name, core.ErrNotFound)
	}
	return m, nil
}

// Grid implements rules.World.
func (c *City) Grid(name string) rules.CellGrid {
	if m, ok := c.mapIndex[name]; ok {
		return m
	}
	return nil
}

// AddPath registers a path network of the given type.
func (c *City) AddPath(kind *graph.PathType) *graph.Path {
	p := graph.NewPath(kind)
	if _, exists := c.pathIndex[kind.Name]; exists {
		for i, old := range c.paths {
			if old.Type() == kind.Name {
				c.paths[i] = p
				break
			}
		}
	} else {
		c.paths = append(c.paths, p)
	}
	c.pathIndex[kind.Name] = p
	c.listener.Handle(events.NewPathAdded(c.name, kind.Name))
	return p
}

// Path returns the registered path of the given name.
func (c *City) Path(name string) (*graph.Path, error) {
	p, ok := c.pathIndex[name]
	if !ok {
		return nil, fmt.Errorf("path %q: %w", name, core.ErrNotFound)
	}
	return p, nil
}

// AddUnit places a unit of the given type on an existing node.
func (c *City) AddUnit(kind *UnitType, node *graph.Node) *Unit {
	u := NewUnit(kind, node, c)
	c.units = append(c.units, u)
	c.listener.Handle(events.NewUnitAdded(c.name, u.Type(), u.ID()))
	return u
}

// AddUnitOnWay splits a way at the given offset and places a unit of the
// given type on the node created there.
func (c *City) AddUnitOnWay(kind *UnitType, path *graph.Path, way *graph.Way, offset float64) *Unit {
	return c.AddUnit(kind, path.SplitWay(way, offset))
}

// AddAgent creates a carrier owned by the city, starting at the owner
// unit's node.
func (c *City) AddAgent(kind *core.AgentType, owner *Unit, payload *core.Resources, target string) *Agent {
	a := newAgent(c.nextAgentID, kind, owner, payload, target)
	c.nextAgentID++
	c.agents = append(c.agents, a)
	c.listener.Handle(events.NewAgentSpawned(c.name, a.Type(), a.ID(), target))
	return a
}

// SpawnAgent implements rules.World. The owner must be a unit of this
// city; anything else is dropped with a log line.
func (c *City) SpawnAgent(kind *core.AgentType, owner rules.Host, payload *core.Resources, target string) {
	unit, ok := owner.(*Unit)
	if !ok {
		c.logger.Error().Uint32("owner_id", owner.ID()).Msg("spawn requested by a non-unit host")
		return
	}
	c.AddAgent(kind, unit, payload, target)
}
