package graph

import (
	"math"
	"math/rand"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/mitchelldurbincs/glassbox/internal/sim/core"
)

// Dijkstra finds the next hop toward the closest node holding a unit that
// accepts a given target and payload. The search is best-first over
// accumulated way lengths, with the squared distance back to the start as
// a tie-breaking heuristic; it is intentionally approximate rather than
// admissible. Scratch state is reused across calls.
type Dijkstra struct {
	rng    *rand.Rand
	logger zerolog.Logger

	open      []*Node
	inOpen    map[*Node]bool
	closed    map[*Node]bool
	cameFrom  map[*Node]*Node
	fromStart map[*Node]float64
	withHeur  map[*Node]float64
}

func NewDijkstra(rng *rand.Rand) *Dijkstra {
	return &Dijkstra{
		rng:       rng,
		logger:    log.With().Str("component", "dijkstra").Logger(),
		inOpen:    make(map[*Node]bool),
		closed:    make(map[*Node]bool),
		cameFrom:  make(map[*Node]*Node),
		fromStart: make(map[*Node]float64),
		withHeur:  make(map[*Node]float64),
	}
}

func (d *Dijkstra) reset() {
	d.open = d.open[:0]
	clear(d.inOpen)
	clear(d.closed)
	clear(d.cameFrom)
	clear(d.fromStart)
	clear(d.withHeur)
}

// FindNextPoint returns the next node to step toward from `from` so as to
// reach the nearest node holding a unit that accepts (target, payload),
// or `from` itself if such a unit resides right there. When no accepting
// unit is reachable it degrades gracefully: a uniformly random neighbor
// keeps the caller moving. Only a node with no ways at all yields nil.
func (d *Dijkstra) FindNextPoint(from *Node, target string, payload *core.Resources) *Node {
	d.reset()

	d.open = append(d.open, from)
	d.inOpen[from] = true
	d.fromStart[from] = 0
	d.withHeur[from] = 0

	for len(d.open) > 0 {
		current := d.popLowest()

		if hasAcceptingUnit(current, target, payload) {
			if current == from {
				return from
			}
			// Walk the chain back to the first hop out of `from`.
			for {
				prev, ok := d.cameFrom[current]
				if !ok || prev == from {
					return current
				}
				current = prev
			}
		}

		d.closed[current] = true

		for _, way := range current.ways {
			neighbor := way.Opposite(current)
			tentative := d.fromStart[current] + way.length

			if d.closed[neighbor] && tentative >= d.score(neighbor) {
				continue
			}
			if !d.inOpen[neighbor] || tentative < d.score(neighbor) {
				d.cameFrom[neighbor] = current
				d.fromStart[neighbor] = tentative
				d.withHeur[neighbor] = tentative + heuristic(neighbor, from)
				if !d.inOpen[neighbor] {
					d.open = append(d.open, neighbor)
					d.inOpen[neighbor] = true
				}
			}
		}
	}

	// Nothing accepts the payload right now. Wander: pick a random
	// incident way so the agent keeps moving and retries from elsewhere.
	if len(from.ways) > 0 {
		way := from.ways[d.rng.Intn(len(from.ways))]
		d.logger.Debug().
			Uint32("from", from.id).
			Str("target", target).
			Msg("no accepting destination reachable, wandering")
		return way.Opposite(from)
	}
	return nil
}

// popLowest removes and returns the open node with the lowest combined
// score. Ties resolve to insertion order, which keeps searches
// reproducible.
func (d *Dijkstra) popLowest() *Node {
	best := 0
	for i := 1; i < len(d.open); i++ {
		if d.withHeur[d.open[i]] < d.withHeur[d.open[best]] {
			best = i
		}
	}
	n := d.open[best]
	d.open = append(d.open[:best], d.open[best+1:]...)
	delete(d.inOpen, n)
	return n
}

func (d *Dijkstra) score(n *Node) float64 {
	if s, ok := d.fromStart[n]; ok {
		return s
	}
	return math.Inf(1)
}

// heuristic is the squared Euclidean distance between the nodes; the
// sqrt is not worth paying for a tie-breaker.
func heuristic(a, b *Node) float64 {
	return b.position.Sub(a.position).LengthSq()
}

func hasAcceptingUnit(n *Node, target string, payload *core.Resources) bool {
	for _, u := range n.units {
		if u.Accepts(target, payload) {
			return true
		}
	}
	return false
}
