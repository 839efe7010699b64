package grid

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mitchelldurbincs/glassbox/internal/sim/core"
	"github.com/mitchelldurbincs/glassbox/internal/sim/rules"
)

type testWorld struct {
	grids map[string]rules.CellGrid
}

func (w *testWorld) Grid(id string) rules.CellGrid { return w.grids[id] }
func (w *testWorld) SpawnAgent(kind *core.AgentType, owner rules.Host, payload *core.Resources, target string) {
}

func newTestMap(t *MapType, sizeU, sizeV int, seed int64) (*Map, *testWorld) {
	w := &testWorld{grids: map[string]rules.CellGrid{}}
	m := NewMap(t, w, core.NewResources(), core.Vec3{}, sizeU, sizeV, rand.New(rand.NewSource(seed)))
	w.grids[t.Name] = m
	return m, w
}

func TestMap_SingleCellRoundTrip(t *testing.T) {
	m, _ := newTestMap(&MapType{Name: "Water", Capacity: 100}, 8, 8, 1)

	m.AddResource(3, 5, 42, 0, false)
	assert.Equal(t, uint32(42), m.Resource(3, 5))
	assert.Equal(t, uint32(42), m.Amount(3, 5, 0))

	// Bounded by the per-cell capacity.
	m.AddResource(3, 5, 1000, 0, false)
	assert.Equal(t, uint32(100), m.Resource(3, 5))

	m.RemoveResource(3, 5, 30, 0, false)
	assert.Equal(t, uint32(70), m.Resource(3, 5))
	m.RemoveResource(3, 5, 1000, 0, false)
	assert.Equal(t, uint32(0), m.Resource(3, 5))
}

func TestMap_SetResourceClampsAndBounds(t *testing.T) {
	m, _ := newTestMap(&MapType{Name: "Water", Capacity: 10}, 4, 4, 1)

	m.SetResource(0, 0, 25)
	assert.Equal(t, uint32(10), m.Resource(0, 0))

	// Out of bounds reads zero, writes are dropped.
	m.SetResource(-1, 0, 5)
	m.SetResource(0, 9, 5)
	assert.Equal(t, uint32(0), m.Resource(-1, 0))
	assert.Equal(t, uint32(0), m.Resource(0, 9))
}

func TestMap_AddDistributedConsumesBudget(t *testing.T) {
	m, _ := newTestMap(&MapType{Name: "Water", Capacity: 3}, 8, 8, 3)

	// Radius 1 around the center has 5 cells of capacity 3 each: a budget
	// of 7 lands in full somewhere within the pattern.
	m.AddResource(4, 4, 7, 1, true)
	assert.Equal(t, uint32(7), m.Amount(4, 4, 1))
	for v := 0; v < 8; v++ {
		for u := 0; u < 8; u++ {
			assert.LessOrEqual(t, m.Resource(u, v), uint32(3))
		}
	}
}

func TestMap_AddReplicatedOffersToEveryCell(t *testing.T) {
	m, _ := newTestMap(&MapType{Name: "Water", Capacity: 10}, 8, 8, 3)

	// Non-distributed: each of the 5 cells receives the full amount.
	m.AddResource(4, 4, 2, 1, false)
	assert.Equal(t, uint32(10), m.Amount(4, 4, 1))
	assert.Equal(t, uint32(2), m.Resource(4, 4))
	assert.Equal(t, uint32(2), m.Resource(3, 4))
	assert.Equal(t, uint32(2), m.Resource(5, 4))
	assert.Equal(t, uint32(2), m.Resource(4, 3))
	assert.Equal(t, uint32(2), m.Resource(4, 5))
}

func TestMap_RemoveDistributed(t *testing.T) {
	m, _ := newTestMap(&MapType{Name: "Water", Capacity: 10}, 8, 8, 5)
	m.AddResource(4, 4, 2, 1, false) // 2 in each of the 5 cells

	m.RemoveResource(4, 4, 6, 1, true)
	assert.Equal(t, uint32(4), m.Amount(4, 4, 1))
}

func TestMap_RuleRandomTilesVisitsExactCount(t *testing.T) {
	rule := rules.NewMapRule("spawn", 1, []rules.Command{
		rules.NewAdd(rules.NewMap("Grass"), 1),
	}, true, 50)
	m, _ := newTestMap(&MapType{Name: "Grass", Capacity: 100, Rules: []*rules.MapRule{rule}}, 4, 4, 11)

	m.ExecuteRules()

	touched := 0
	for v := 0; v < 4; v++ {
		for u := 0; u < 4; u++ {
			if m.Resource(u, v) > 0 {
				require.Equal(t, uint32(1), m.Resource(u, v), "cells drawn without replacement")
				touched++
			}
		}
	}
	assert.Equal(t, 8, touched, "half of a 4x4 grid")
}

func TestMap_RuleFullGridPass(t *testing.T) {
	rule := rules.NewMapRule("grow", 2, []rules.Command{
		rules.NewAdd(rules.NewMap("Grass"), 1),
	}, false, 0)
	m, _ := newTestMap(&MapType{Name: "Grass", Capacity: 100, Rules: []*rules.MapRule{rule}}, 4, 4, 11)

	// Rate 2: nothing on the first tick.
	m.ExecuteRules()
	assert.Equal(t, uint32(0), m.Amount(0, 0, 0))

	m.ExecuteRules()
	for v := 0; v < 4; v++ {
		for u := 0; u < 4; u++ {
			assert.Equal(t, uint32(1), m.Resource(u, v))
		}
	}
}

func TestMap_DeterministicUnderSeed(t *testing.T) {
	build := func(seed int64) *Map {
		rule := rules.NewMapRule("spawn", 1, []rules.Command{
			rules.NewAdd(rules.NewMap("Grass"), 3),
		}, true, 40)
		m, _ := newTestMap(&MapType{Name: "Grass", Capacity: 100, Rules: []*rules.MapRule{rule}}, 6, 6, seed)
		for i := 0; i < 10; i++ {
			m.ExecuteRules()
		}
		return m
	}

	a, b := build(99), build(99)
	for v := 0; v < 6; v++ {
		for u := 0; u < 6; u++ {
			assert.Equal(t, a.Resource(u, v), b.Resource(u, v), "cell (%d,%d)", u, v)
		}
	}
}

func TestMap_WorldPosition(t *testing.T) {
	m, _ := newTestMap(&MapType{Name: "Water", Capacity: 10}, 4, 4, 1)
	p := m.WorldPosition(2, 3)
	assert.Equal(t, core.NewVec3(2, 3, 0), p)

	// Clamped to the grid edge.
	p = m.WorldPosition(-2, 9)
	assert.Equal(t, core.NewVec3(0, 4, 0), p)
}
