// Package grid implements the per-city resource maps: flat W×H grids of
// per-cell amounts with bounded-radius spread operations and rate-gated
// tile rules.
package grid

import (
	"math/rand"

	"github.com/mitchelldurbincs/glassbox/internal/sim/core"
	"github.com/mitchelldurbincs/glassbox/internal/sim/rules"
)

// MapType describes a kind of resource map: per-cell capacity, rendering
// color and the tile rules it runs.
type MapType struct {
	Name     string
	Color    uint32
	Capacity uint32
	Rules    []*rules.MapRule
}

// Map is a W×H grid of resource amounts, each cell bounded by the type's
// capacity. Cells are stored row-major at index v*W+u.
type Map struct {
	kind     *MapType
	position core.Vec3
	sizeU    int
	sizeV    int
	cells    []uint32
	ticks    uint32
	ctx      rules.Context
	rng      *rand.Rand
}

// NewMap creates an empty grid owned by world, positioned at the owning
// city's origin.
func NewMap(kind *MapType, world rules.World, globals *core.Resources, position core.Vec3, sizeU, sizeV int, rng *rand.Rand) *Map {
	return &Map{
		kind:     kind,
		position: position,
		sizeU:    sizeU,
		sizeV:    sizeV,
		cells:    make([]uint32, sizeU*sizeV),
		ctx: rules.Context{
			City:    world,
			Globals: globals,
		},
		rng: rng,
	}
}

func (m *Map) Type() string        { return m.kind.Name }
func (m *Map) Color() uint32       { return m.kind.Color }
func (m *Map) Capacity() uint32    { return m.kind.Capacity }
func (m *Map) SizeU() int          { return m.sizeU }
func (m *Map) SizeV() int          { return m.sizeV }
func (m *Map) Position() core.Vec3 { return m.position }
func (m *Map) Ticks() uint32       { return m.ticks }

func (m *Map) index(u, v int) (int, bool) {
	if u < 0 || u >= m.sizeU || v < 0 || v >= m.sizeV {
		return 0, false
	}
	return v*m.sizeU + u, true
}

// Resource returns the amount held by a single cell, zero out of bounds.
func (m *Map) Resource(u, v int) uint32 {
	i, ok := m.index(u, v)
	if !ok {
		return 0
	}
	return m.cells[i]
}

// SetResource overwrites a cell, clamped to the type's capacity.
func (m *Map) SetResource(u, v int, amount uint32) {
	if amount > m.kind.Capacity {
		amount = m.kind.Capacity
	}
	if i, ok := m.index(u, v); ok {
		m.cells[i] = amount
	}
}

// Amount sums cell values within the Manhattan radius of (u,v), visiting
// the canonical pattern order. Radius 0 reads the single cell.
func (m *Map) Amount(u, v, radius int) uint32 {
	if radius == 0 {
		return m.Resource(u, v)
	}
	var total uint32
	it := NewRadiusIter(radius, u, v, m.sizeU, m.sizeV, false, m.rng)
	for {
		cu, cv, ok := it.Next()
		if !ok {
			break
		}
		total += m.Resource(cu, cv)
	}
	return total
}

// AddResource spreads amount over the cells within radius of (u,v). When
// distributed, amount is a budget consumed across cells (visited in a
// shuffled order) until exhausted; otherwise the full amount is offered
// to every cell independently, each bounded by its own headroom.
func (m *Map) AddResource(u, v int, amount uint32, radius int, distributed bool) {
	if radius == 0 {
		cell := m.Resource(u, v)
		if cell >= core.MaxCapacity-amount {
			cell = core.MaxCapacity
		} else {
			cell += amount
		}
		m.SetResource(u, v, cell)
		return
	}

	remaining := amount
	it := NewRadiusIter(radius, u, v, m.sizeU, m.sizeV, distributed, m.rng)
	for remaining > 0 {
		cu, cv, ok := it.Next()
		if !ok {
			break
		}
		cell := m.Resource(cu, cv)
		headroom := m.kind.Capacity - cell
		toAdd := remaining
		if headroom < toAdd {
			toAdd = headroom
		}
		if toAdd > 0 {
			if distributed {
				remaining -= toAdd
			}
			m.SetResource(cu, cv, cell+toAdd)
		}
	}
}

// RemoveResource mirrors AddResource for removal.
func (m *Map) RemoveResource(u, v int, amount uint32, radius int, distributed bool) {
	if radius == 0 {
		cell := m.Resource(u, v)
		if cell > amount {
			cell -= amount
		} else {
			cell = 0
		}
		m.SetResource(u, v, cell)
		return
	}

	remaining := amount
	it := NewRadiusIter(radius, u, v, m.sizeU, m.sizeV, distributed, m.rng)
	for remaining > 0 {
		cu, cv, ok := it.Next()
		if !ok {
			break
		}
		cell := m.Resource(cu, cv)
		toRemove := remaining
		if cell < toRemove {
			toRemove = cell
		}
		if toRemove > 0 {
			if distributed {
				remaining -= toRemove
			}
			m.SetResource(cu, cv, cell-toRemove)
		}
	}
}

// Add implements rules.CellGrid: a distributed spread.
func (m *Map) Add(u, v, radius int, amount uint32) {
	m.AddResource(u, v, amount, radius, true)
}

// Remove implements rules.CellGrid: a distributed removal.
func (m *Map) Remove(u, v, radius int, amount uint32) {
	m.RemoveResource(u, v, amount, radius, true)
}

// WorldPosition projects a grid coordinate into world space, relative to
// the map's origin.
func (m *Map) WorldPosition(u, v int) core.Vec3 {
	if u < 0 {
		u = 0
	} else if u > m.sizeU {
		u = m.sizeU
	}
	if v < 0 {
		v = 0
	} else if v > m.sizeV {
		v = m.sizeV
	}
	return m.position.Add(core.NewVec3(float64(u)*core.GridSize, float64(v)*core.GridSize, 0))
}

// Translate moves the map's world origin.
func (m *Map) Translate(dir core.Vec3) {
	m.position = m.position.Add(dir)
}

// ExecuteRules advances the map one tick and runs every rule whose rate
// divides the tick counter. Rules run in reverse declaration order. Full
// grid passes visit cells row-major ascending (v outer, u inner); random
// mode draws percent% of the grid's cells without replacement.
func (m *Map) ExecuteRules() {
	m.ticks++
	for i := len(m.kind.Rules); i > 0; {
		i--
		rule := m.kind.Rules[i]
		if m.ticks%rule.Rate() != 0 {
			continue
		}
		if rule.Random() {
			sampler := NewSampler(m.sizeU, m.sizeV, m.rng)
			for n := rule.Percent(m.sizeU * m.sizeV); n > 0; n-- {
				u, v, ok := sampler.Next()
				if !ok {
					break
				}
				m.ctx.U, m.ctx.V = u, v
				rule.Execute(&m.ctx)
			}
		} else {
			for v := 0; v < m.sizeV; v++ {
				for u := 0; u < m.sizeU; u++ {
					m.ctx.U, m.ctx.V = u, v
					rule.Execute(&m.ctx)
				}
			}
		}
	}
}
