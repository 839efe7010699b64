package grid

import (
	"math/rand"
	"sync"
)

// relativeCoords caches the Manhattan-diamond offset pattern per radius.
// The generation order is canonical: v from -r to r, u from -r to r,
// filtered to |u|+|v| <= r. Radius 1 keeps the historical plus-sign order
// with the center first.
var (
	coordMu    sync.Mutex
	coordCache = map[int][][2]int{}
)

func relativeCoords(radius int) [][2]int {
	coordMu.Lock()
	defer coordMu.Unlock()

	if c, ok := coordCache[radius]; ok {
		return c
	}

	var coords [][2]int
	if radius == 1 {
		coords = [][2]int{{0, 0}, {-1, 0}, {1, 0}, {0, -1}, {0, 1}}
	} else {
		for v := -radius; v <= radius; v++ {
			for u := -radius; u <= radius; u++ {
				if abs(u)+abs(v) <= radius {
					coords = append(coords, [2]int{u, v})
				}
			}
		}
	}
	coordCache[radius] = coords
	return coords
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// RadiusIter walks the cells within a Manhattan radius of a center,
// clipped to the grid bounds. When shuffled, the visiting order is a
// permutation drawn from rng; otherwise it is the canonical pattern order.
type RadiusIter struct {
	coords           [][2]int
	idx              int
	centerU, centerV int
	maxU, maxV       int
}

// NewRadiusIter prepares an iterator over the cells at Manhattan distance
// <= radius from (centerU, centerV), bounded by [0,maxU)x[0,maxV).
func NewRadiusIter(radius, centerU, centerV, maxU, maxV int, shuffled bool, rng *rand.Rand) RadiusIter {
	coords := relativeCoords(radius)
	if shuffled {
		shuffledCoords := make([][2]int, len(coords))
		copy(shuffledCoords, coords)
		rng.Shuffle(len(shuffledCoords), func(i, j int) {
			shuffledCoords[i], shuffledCoords[j] = shuffledCoords[j], shuffledCoords[i]
		})
		coords = shuffledCoords
	}
	return RadiusIter{
		coords:  coords,
		centerU: centerU,
		centerV: centerV,
		maxU:    maxU,
		maxV:    maxV,
	}
}

// Next returns the next in-bounds cell, or ok=false once exhausted.
func (it *RadiusIter) Next() (u, v int, ok bool) {
	for it.idx < len(it.coords) {
		rel := it.coords[it.idx]
		it.idx++
		u = it.centerU + rel[0]
		v = it.centerV + rel[1]
		if u >= 0 && u < it.maxU && v >= 0 && v < it.maxV {
			return u, v, true
		}
	}
	return 0, 0, false
}
