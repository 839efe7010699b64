// Package graph implements the transportation network: nodes joined by
// ways, owned by paths, plus the pathfinder agents use to pick their next
// hop. The graph only grows; nothing is ever removed.
package graph

import (
	"github.com/mitchelldurbincs/glassbox/internal/sim/core"
)

// Occupant is what the graph sees of a unit resident on a node: enough to
// decide whether it is a valid delivery destination.
type Occupant interface {
	Accepts(target string, payload *core.Resources) bool
	Resources() *core.Resources
}

// Node is a vertex of the network, holding back-references to its incident
// ways and resident units. Both lists are shared, not owned.
type Node struct {
	id       uint32
	position core.Vec3
	ways     []*Way
	units    []Occupant
}

func newNode(id uint32, position core.Vec3) *Node {
	return &Node{id: id, position: position}
}

func (n *Node) ID() uint32          { return n.id }
func (n *Node) Position() core.Vec3 { return n.position }
func (n *Node) Ways() []*Way        { return n.ways }
func (n *Node) HasWays() bool       { return len(n.ways) > 0 }
func (n *Node) Units() []Occupant   { return n.units }

// Attach registers a resident unit on this node.
func (n *Node) Attach(u Occupant) {
	n.units = append(n.units, u)
}

// Translate moves the node and refreshes the cached length of every
// incident way.
func (n *Node) Translate(dir core.Vec3) {
	n.position = n.position.Add(dir)
	for _, w := range n.ways {
		w.refresh()
	}
}

// WayTo returns the incident way joining this node to other, in either
// orientation, or nil.
func (n *Node) WayTo(other *Node) *Way {
	for _, w := range n.ways {
		if (w.from == n && w.to == other) || (w.from == other && w.to == n) {
			return w
		}
	}
	return nil
}

func (n *Node) removeWay(w *Way) {
	for i, candidate := range n.ways {
		if candidate == w {
			n.ways = append(n.ways[:i], n.ways[i+1:]...)
			return
		}
	}
}
