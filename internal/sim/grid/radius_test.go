package grid

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func collect(it RadiusIter) [][2]int {
	var out [][2]int
	for {
		u, v, ok := it.Next()
		if !ok {
			return out
		}
		out = append(out, [2]int{u, v})
	}
}

func TestRadiusIter_PatternSizes(t *testing.T) {
	tests := []struct {
		radius   int
		expected int
	}{
		{0, 1},
		{1, 5},  // plus sign
		{2, 13}, // Manhattan diamond
		{3, 25},
	}

	for _, tt := range tests {
		it := NewRadiusIter(tt.radius, 10, 10, 100, 100, false, nil)
		assert.Len(t, collect(it), tt.expected, "radius %d", tt.radius)
	}
}

func TestRadiusIter_RadiusOnePlusSign(t *testing.T) {
	it := NewRadiusIter(1, 5, 5, 10, 10, false, nil)
	assert.Equal(t, [][2]int{{5, 5}, {4, 5}, {6, 5}, {5, 4}, {5, 6}}, collect(it))
}

func TestRadiusIter_ClipsToBounds(t *testing.T) {
	// Center at the origin of a 3x3 grid: the left and top arms fall off.
	it := NewRadiusIter(1, 0, 0, 3, 3, false, nil)
	assert.Equal(t, [][2]int{{0, 0}, {1, 0}, {0, 1}}, collect(it))
}

func TestRadiusIter_ManhattanBound(t *testing.T) {
	it := NewRadiusIter(2, 10, 10, 100, 100, false, nil)
	for _, c := range collect(it) {
		d := abs(c[0]-10) + abs(c[1]-10)
		assert.LessOrEqual(t, d, 2)
	}
}

func TestRadiusIter_ShuffledIsPermutation(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	fixed := collect(NewRadiusIter(2, 10, 10, 100, 100, false, nil))
	shuffled := collect(NewRadiusIter(2, 10, 10, 100, 100, true, rng))
	assert.ElementsMatch(t, fixed, shuffled)
}

func TestSampler_DrawsEveryCellOnce(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	s := NewSampler(4, 4, rng)
	assert.Equal(t, 16, s.Remaining())

	seen := map[[2]int]bool{}
	for {
		u, v, ok := s.Next()
		if !ok {
			break
		}
		c := [2]int{u, v}
		assert.False(t, seen[c], "cell drawn twice: %v", c)
		seen[c] = true
	}
	assert.Len(t, seen, 16)
}
