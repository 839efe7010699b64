package core

// AgentType describes a kind of mobile carrier: how fast it walks the
// graph, its rendering radius and color. Instances are immutable once
// registered.
type AgentType struct {
	Name   string
	Speed  float64
	Radius float64
	Color  uint32
}
