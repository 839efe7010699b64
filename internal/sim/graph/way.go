package graph

import "github.com/mitchelldurbincs/glassbox/internal/sim/core"

// WayType describes a kind of edge (road, dirt track, power line).
type WayType struct {
	Name  string
	Color uint32
}

// Way is an edge joining two nodes, with its scalar length cached for
// pathfinding. A way always appears in both endpoints' incident lists.
type Way struct {
	id     uint32
	kind   *WayType
	from   *Node
	to     *Node
	length float64
}

func newWay(id uint32, kind *WayType, from, to *Node) *Way {
	w := &Way{id: id, kind: kind, from: from, to: to}
	from.ways = append(from.ways, w)
	to.ways = append(to.ways, w)
	w.refresh()
	return w
}

func (w *Way) ID() uint32      { return w.id }
func (w *Way) Type() string    { return w.kind.Name }
func (w *Way) Color() uint32   { return w.kind.Color }
func (w *Way) From() *Node     { return w.from }
func (w *Way) To() *Node       { return w.to }
func (w *Way) Length() float64 { return w.length }

// Opposite returns the endpoint that is not n, or nil when n is not an
// endpoint.
func (w *Way) Opposite(n *Node) *Node {
	switch n {
	case w.from:
		return w.to
	case w.to:
		return w.from
	}
	return nil
}

// refresh recomputes the cached length from the endpoint positions.
func (w *Way) refresh() {
	w.length = w.to.position.Sub(w.from.position).Length()
}

// PositionAt interpolates a world position along the way at offset in
// [0,1], measured from the from endpoint.
func (w *Way) PositionAt(offset float64) core.Vec3 {
	return core.Lerp(w.from.position, w.to.position, offset)
}
