package events

import "time"

// Event type constants.
const (
	TypeCityAdded    = "city.added"
	TypeMapAdded     = "map.added"
	TypeMapUpdated   = "map.updated"
	TypePathAdded    = "path.added"
	TypeUnitAdded    = "unit.added"
	TypeUnitUpdated  = "unit.updated"
	TypeAgentSpawned = "agent.spawned"
	TypeAgentRemoved = "agent.removed"
)

func base(eventType, city string) BaseEvent {
	return BaseEvent{EventType: eventType, Time: time.Now(), City: city}
}

// CityAdded is published when a city joins the simulation.
type CityAdded struct {
	BaseEvent
	GridWidth  int
	GridHeight int
}

func NewCityAdded(city string, gridWidth, gridHeight int) *CityAdded {
	return &CityAdded{BaseEvent: base(TypeCityAdded, city), GridWidth: gridWidth, GridHeight: gridHeight}
}

// MapAdded is published when a resource map is registered on a city.
type MapAdded struct {
	BaseEvent
	MapType string
}

func NewMapAdded(city, mapType string) *MapAdded {
	return &MapAdded{BaseEvent: base(TypeMapAdded, city), MapType: mapType}
}

// MapUpdated is published after a map finishes its rule pass for a tick.
type MapUpdated struct {
	BaseEvent
	MapType string
}

func NewMapUpdated(city, mapType string) *MapUpdated {
	return &MapUpdated{BaseEvent: base(TypeMapUpdated, city), MapType: mapType}
}

// PathAdded is published when a path network is registered on a city.
type PathAdded struct {
	BaseEvent
	PathType string
}

func NewPathAdded(city, pathType string) *PathAdded {
	return &PathAdded{BaseEvent: base(TypePathAdded, city), PathType: pathType}
}

// UnitAdded is published when a unit is placed.
type UnitAdded struct {
	BaseEvent
	UnitType string
	UnitID   uint32
}

func NewUnitAdded(city, unitType string, unitID uint32) *UnitAdded {
	return &UnitAdded{BaseEvent: base(TypeUnitAdded, city), UnitType: unitType, UnitID: unitID}
}

// UnitUpdated is published after a unit finishes its rule pass for a tick.
type UnitUpdated struct {
	BaseEvent
	UnitType string
	UnitID   uint32
}

func NewUnitUpdated(city, unitType string, unitID uint32) *UnitUpdated {
	return &UnitUpdated{BaseEvent: base(TypeUnitUpdated, city), UnitType: unitType, UnitID: unitID}
}

// AgentSpawned is published when a rule creates a carrier.
type AgentSpawned struct {
	BaseEvent
	AgentType string
	AgentID   uint32
	Target    string
}

func NewAgentSpawned(city, agentType string, agentID uint32, target string) *AgentSpawned {
	return &AgentSpawned{BaseEvent: base(TypeAgentSpawned, city), AgentType: agentType, AgentID: agentID, Target: target}
}

// AgentRemoved is published when a carrier finishes delivery and is
// destroyed.
type AgentRemoved struct {
	BaseEvent
	AgentType string
	AgentID   uint32
}

func NewAgentRemoved(city, agentType string, agentID uint32) *AgentRemoved {
	return &AgentRemoved{BaseEvent: base(TypeAgentRemoved, city), AgentType: agentType, AgentID: agentID}
}
