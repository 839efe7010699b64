package graph

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mitchelldurbincs/glassbox/internal/sim/core"
)

// depot is a test occupant accepting one target name while it has headroom.
type depot struct {
	target    string
	resources *core.Resources
}

func newDepot(target, kind string, capacity uint32) *depot {
	rs := core.NewResources()
	rs.SetCapacity(kind, capacity)
	return &depot{target: target, resources: rs}
}

func (d *depot) Accepts(target string, payload *core.Resources) bool {
	return target == d.target && d.resources.CanAddSome(payload)
}

func (d *depot) Resources() *core.Resources { return d.resources }

func peoplePayload(n uint32) *core.Resources {
	rs := core.NewResources()
	rs.Add("People", n)
	return rs
}

func TestDijkstra_NoWaysReturnsNil(t *testing.T) {
	p := NewPath(roadPath)
	lonely := p.AddNode(core.NewVec3(0, 0, 0))

	d := NewDijkstra(rand.New(rand.NewSource(1)))
	assert.Nil(t, d.FindNextPoint(lonely, "Work", peoplePayload(1)))
}

func TestDijkstra_AlreadyAtDestination(t *testing.T) {
	p := NewPath(roadPath)
	a := p.AddNode(core.NewVec3(0, 0, 0))
	b := p.AddNode(core.NewVec3(10, 0, 0))
	p.AddWay(dirtWay, a, b)
	a.Attach(newDepot("Work", "People", 10))

	d := NewDijkstra(rand.New(rand.NewSource(1)))
	assert.Same(t, a, d.FindNextPoint(a, "Work", peoplePayload(1)))
}

func TestDijkstra_ReturnsFirstHop(t *testing.T) {
	// a --- b --- c, destination unit at c: the next hop from a is b.
	p := NewPath(roadPath)
	a := p.AddNode(core.NewVec3(0, 0, 0))
	b := p.AddNode(core.NewVec3(5, 0, 0))
	c := p.AddNode(core.NewVec3(10, 0, 0))
	p.AddWay(dirtWay, a, b)
	p.AddWay(dirtWay, b, c)
	c.Attach(newDepot("Work", "People", 10))

	d := NewDijkstra(rand.New(rand.NewSource(1)))
	assert.Same(t, b, d.FindNextPoint(a, "Work", peoplePayload(1)))
}

func TestDijkstra_PicksShorterBranch(t *testing.T) {
	// Two destinations; the closer one wins.
	p := NewPath(roadPath)
	a := p.AddNode(core.NewVec3(0, 0, 0))
	near := p.AddNode(core.NewVec3(2, 0, 0))
	far := p.AddNode(core.NewVec3(-9, 0, 0))
	p.AddWay(dirtWay, a, near)
	p.AddWay(dirtWay, a, far)
	near.Attach(newDepot("Work", "People", 10))
	far.Attach(newDepot("Work", "People", 10))

	d := NewDijkstra(rand.New(rand.NewSource(1)))
	assert.Same(t, near, d.FindNextPoint(a, "Work", peoplePayload(1)))
}

func TestDijkstra_AcceptancePredicate(t *testing.T) {
	p := NewPath(roadPath)
	a := p.AddNode(core.NewVec3(0, 0, 0))
	b := p.AddNode(core.NewVec3(5, 0, 0))
	c := p.AddNode(core.NewVec3(10, 0, 0))
	p.AddWay(dirtWay, a, b)
	p.AddWay(dirtWay, b, c)

	// b lists a different target; c is the real destination despite being
	// farther.
	b.Attach(newDepot("Home", "People", 10))
	c.Attach(newDepot("Work", "People", 10))

	d := NewDijkstra(rand.New(rand.NewSource(1)))
	assert.Same(t, b, d.FindNextPoint(a, "Work", peoplePayload(1)), "first hop toward c")
}

func TestDijkstra_FullDestinationTriggersFallback(t *testing.T) {
	p := NewPath(roadPath)
	a := p.AddNode(core.NewVec3(0, 0, 0))
	b := p.AddNode(core.NewVec3(5, 0, 0))
	p.AddWay(dirtWay, a, b)

	full := newDepot("Work", "People", 2)
	full.resources.Add("People", 2)
	b.Attach(full)

	d := NewDijkstra(rand.New(rand.NewSource(1)))
	next := d.FindNextPoint(a, "Work", peoplePayload(1))
	require.NotNil(t, next, "fallback keeps the agent moving")
	assert.Same(t, b, next, "only neighbor available")
}

func TestDijkstra_FallbackIsSeedable(t *testing.T) {
	p := NewPath(roadPath)
	center := p.AddNode(core.NewVec3(0, 0, 0))
	for i := 0; i < 4; i++ {
		n := p.AddNode(core.NewVec3(float64(i+1), 0, 0))
		p.AddWay(dirtWay, center, n)
	}

	pick := func(seed int64) *Node {
		d := NewDijkstra(rand.New(rand.NewSource(seed)))
		return d.FindNextPoint(center, "Work", peoplePayload(1))
	}

	assert.Same(t, pick(42), pick(42), "same seed, same wander")
}

func TestDijkstra_ScratchStateReuse(t *testing.T) {
	p := NewPath(roadPath)
	a := p.AddNode(core.NewVec3(0, 0, 0))
	b := p.AddNode(core.NewVec3(5, 0, 0))
	c := p.AddNode(core.NewVec3(10, 0, 0))
	p.AddWay(dirtWay, a, b)
	p.AddWay(dirtWay, b, c)
	c.Attach(newDepot("Work", "People", 10))

	d := NewDijkstra(rand.New(rand.NewSource(1)))
	for i := 0; i < 3; i++ {
		assert.Same(t, b, d.FindNextPoint(a, "Work", peoplePayload(1)), "call %d", i)
	}
}
