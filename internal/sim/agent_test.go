package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mitchelldurbincs/glassbox/internal/sim/core"
	"github.com/mitchelldurbincs/glassbox/internal/sim/graph"
)

func peopleBag(amount, capacity uint32) *core.Resources {
	rs := core.NewResources()
	rs.SetCapacity("People", capacity)
	rs.Add("People", amount)
	return rs
}

func TestAgent_DeliversAlongSingleWay(t *testing.T) {
	c := newTestCity(t)
	homeType := &UnitType{Name: "Home", Targets: []string{"Home"}, Resources: peopleBag(4, 4)}
	workType := &UnitType{Name: "Work", Targets: []string{"Work"}, Resources: peopleBag(0, 4)}
	home, work := addLineUnits(t, c, homeType, workType)

	carried := core.NewResources()
	carried.Add("People", 2)
	kind := &core.AgentType{Name: "People", Speed: 40}
	c.AddAgent(kind, home, carried, "Work")
	require.Len(t, c.Agents(), 1)

	for i := 0; i < 500 && len(c.Agents()) > 0; i++ {
		c.Update()
	}

	assert.Empty(t, c.Agents(), "agent should deliver and despawn")
	assert.Equal(t, uint32(2), work.Resources().Amount("People"))
}

func TestAgent_OffsetStaysClamped(t *testing.T) {
	c := newTestCity(t)
	homeType := &UnitType{Name: "Home", Targets: []string{"Home"}, Resources: peopleBag(4, 4)}
	workType := &UnitType{Name: "Work", Targets: []string{"Work"}, Resources: peopleBag(0, 4)}
	home, _ := addLineUnits(t, c, homeType, workType)

	carried := core.NewResources()
	carried.Add("People", 1)
	// Fast enough to overshoot the way in one tick; the offset must snap
	// to the endpoint instead of passing it.
	kind := &core.AgentType{Name: "People", Speed: 100000}
	a := c.AddAgent(kind, home, carried, "Work")

	c.Update() // picks next node
	c.Update() // overshoots, snaps to endpoint
	if len(c.Agents()) > 0 {
		assert.GreaterOrEqual(t, a.offset, 0.0)
		assert.LessOrEqual(t, a.offset, 1.0)
	}
}

func TestAgent_NoRouteHoldsPosition(t *testing.T) {
	c := newTestCity(t)
	road := c.AddPath(&graph.PathType{Name: "Road"})
	lonely := road.AddNode(core.NewVec3(3, 3, 0))
	home := c.AddUnit(&UnitType{Name: "Home", Resources: peopleBag(4, 4)}, lonely)

	carried := core.NewResources()
	carried.Add("People", 1)
	a := c.AddAgent(&core.AgentType{Name: "People", Speed: 10}, home, carried, "Work")

	for i := 0; i < 10; i++ {
		c.Update()
	}
	require.Len(t, c.Agents(), 1)
	assert.Equal(t, lonely.Position(), a.Position())
}

func TestAgent_PartialDeliveryKeepsCarrying(t *testing.T) {
	c := newTestCity(t)
	homeType := &UnitType{Name: "Home", Targets: []string{"Home"}, Resources: peopleBag(4, 4)}
	// Destination only has headroom for 1 of the 3 carried.
	workType := &UnitType{Name: "Work", Targets: []string{"Work"}, Resources: peopleBag(0, 1)}
	home, work := addLineUnits(t, c, homeType, workType)

	carried := core.NewResources()
	carried.Add("People", 3)
	a := c.AddAgent(&core.AgentType{Name: "People", Speed: 40}, home, carried, "Work")

	for i := 0; i < 500 && a.Resources().Amount("People") == 3; i++ {
		c.Update()
	}

	assert.Equal(t, uint32(1), work.Resources().Amount("People"))
	assert.Equal(t, uint32(2), a.Resources().Amount("People"))
	assert.Len(t, c.Agents(), 1, "agent still holds undelivered cargo")
}

func TestAgent_UnloadPrefersNewestResident(t *testing.T) {
	c := newTestCity(t)
	road := c.AddPath(&graph.PathType{Name: "Road"})
	a := road.AddNode(core.NewVec3(0, 0, 0))
	b := road.AddNode(core.NewVec3(10, 0, 0))
	road.AddWay(&graph.WayType{Name: "Dirt"}, a, b)

	home := c.AddUnit(&UnitType{Name: "Home", Resources: peopleBag(4, 4)}, a)
	first := c.AddUnit(&UnitType{Name: "Work", Targets: []string{"Work"}, Resources: peopleBag(0, 4)}, b)
	second := c.AddUnit(&UnitType{Name: "Work", Targets: []string{"Work"}, Resources: peopleBag(0, 4)}, b)

	carried := core.NewResources()
	carried.Add("People", 2)
	c.AddAgent(&core.AgentType{Name: "People", Speed: 40}, home, carried, "Work")

	for i := 0; i < 500 && len(c.Agents()) > 0; i++ {
		c.Update()
	}

	assert.Equal(t, uint32(2), second.Resources().Amount("People"))
	assert.Equal(t, uint32(0), first.Resources().Amount("People"))
}
