package graph

import "github.com/mitchelldurbincs/glassbox/internal/sim/core"

// PathType describes a kind of network (roads, power grid).
type PathType struct {
	Name  string
	Color uint32
}

// Path owns the nodes and ways of one network and hands out monotonic
// ids. Entities are appended, never removed.
type Path struct {
	kind       *PathType
	nodes      []*Node
	ways       []*Way
	nextNodeID uint32
	nextWayID  uint32
}

func NewPath(kind *PathType) *Path {
	return &Path{kind: kind}
}

func (p *Path) Type() string   { return p.kind.Name }
func (p *Path) Color() uint32  { return p.kind.Color }
func (p *Path) Nodes() []*Node { return p.nodes }
func (p *Path) Ways() []*Way   { return p.ways }

// AddNode creates a node at the given world position.
func (p *Path) AddNode(position core.Vec3) *Node {
	n := newNode(p.nextNodeID, position)
	p.nextNodeID++
	p.nodes = append(p.nodes, n)
	return n
}

// AddWay creates a way joining two nodes and registers it in both
// endpoints' incident lists.
func (p *Path) AddWay(kind *WayType, from, to *Node) *Way {
	w := newWay(p.nextWayID, kind, from, to)
	p.nextWayID++
	p.ways = append(p.ways, w)
	return w
}

// SplitWay inserts a node at offset along the way, turning one way into
// two that share the new node. Offsets at or beyond an endpoint return
// that endpoint without mutation. Connectivity of both original endpoints
// is preserved.
func (p *Path) SplitWay(w *Way, offset float64) *Node {
	if offset <= 0.0 {
		return w.from
	}
	if offset >= 1.0 {
		return w.to
	}

	split := p.AddNode(w.PositionAt(offset))
	p.AddWay(w.kind, split, w.to)

	// Rewire the original way's far half onto the new node.
	w.to.removeWay(w)
	w.to = split
	split.ways = append(split.ways, w)
	w.refresh()

	return split
}

// Translate moves every node, cascading into the cached way lengths.
func (p *Path) Translate(dir core.Vec3) {
	for _, n := range p.nodes {
		n.Translate(dir)
	}
}
