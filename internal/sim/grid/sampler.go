package grid

import "math/rand"

// Sampler draws distinct cells of a W×H grid in a random order, without
// replacement. Used by map rules running in random-tile mode.
type Sampler struct {
	coords [][2]int
}

// NewSampler shuffles the full coordinate set of the grid with rng.
func NewSampler(sizeU, sizeV int, rng *rand.Rand) *Sampler {
	coords := make([][2]int, 0, sizeU*sizeV)
	for v := 0; v < sizeV; v++ {
		for u := 0; u < sizeU; u++ {
			coords = append(coords, [2]int{u, v})
		}
	}
	rng.Shuffle(len(coords), func(i, j int) {
		coords[i], coords[j] = coords[j], coords[i]
	})
	return &Sampler{coords: coords}
}

// Next pops one remaining cell, or ok=false once the grid is exhausted.
func (s *Sampler) Next() (u, v int, ok bool) {
	if len(s.coords) == 0 {
		return 0, 0, false
	}
	last := len(s.coords) - 1
	c := s.coords[last]
	s.coords = s.coords[:last]
	return c[0], c[1], true
}

// Remaining reports how many cells have not been drawn yet.
func (s *Sampler) Remaining() int { return len(s.coords) }
