package sim

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/mitchelldurbincs/glassbox/internal/sim/core"
	"github.com/mitchelldurbincs/glassbox/internal/sim/events"
)

const (
	// DefaultTicksPerSecond is the fixed simulation rate. Wall-clock time
	// fed to Update is sliced into ticks of 1/DefaultTicksPerSecond.
	DefaultTicksPerSecond = 200.0

	// DefaultMaxIterationsPerUpdate caps how many ticks a single Update call
	// may run, bounding per-call work after a long stall. Leftover time
	// stays in the accumulator.
	DefaultMaxIterationsPerUpdate = 20
)

// Config carries the knobs for a Simulation. The zero value is usable;
// NewSimulation fills in defaults.
type Config struct {
	GridWidth              int
	GridHeight             int
	TicksPerSecond         float64
	MaxIterationsPerUpdate int
	Seed                   int64
	RNG                    *rand.Rand
	Listener               events.Listener
}

// Simulation steps a set of cities with a fixed timestep. Callers feed it
// variable frame deltas; it converts them into zero or more whole ticks.
type Simulation struct {
	cfg       Config
	cities    []*City
	cityIndex map[string]int
	time      float64
	totalTicks uint64
	rng       *rand.Rand
	listener  events.Listener
	logger    zerolog.Logger
}

// NewSimulation builds a simulation from the config, applying defaults
// for any zero field. When cfg.RNG is nil a source is built from
// cfg.Seed, or from the clock when the seed is zero too.
func NewSimulation(cfg Config) *Simulation {
	if cfg.GridWidth <= 0 {
		cfg.GridWidth = 32
	}
	if cfg.GridHeight <= 0 {
		cfg.GridHeight = 32
	}
	if cfg.TicksPerSecond <= 0 {
		cfg.TicksPerSecond = DefaultTicksPerSecond
	}
	if cfg.MaxIterationsPerUpdate <= 0 {
		cfg.MaxIterationsPerUpdate = DefaultMaxIterationsPerUpdate
	}
	rng := cfg.RNG
	if rng == nil {
		seed := cfg.Seed
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		rng = rand.New(rand.NewSource(seed))
	}
	listener := cfg.Listener
	if listener == nil {
		listener = events.Nop{}
	}
	return &Simulation{
		cfg:       cfg,
		cityIndex: make(map[string]int),
		rng:       rng,
		listener:  listener,
		logger:    log.With().Str("component", "simulation").Logger(),
	}
}

// TickDuration returns the length of one tick in seconds.
func (s *Simulation) TickDuration() float64 { return 1.0 / s.cfg.TicksPerSecond }

// TotalTicks returns how many ticks have run since construction.
func (s *Simulation) TotalTicks() uint64 { return s.totalTicks }

// Cities returns the cities in the order they were added.
func (s *Simulation) Cities() []*City { return s.cities }

// AddCity creates a city with the simulation's grid dimensions and rng
// and registers it. Adding a name that already exists replaces the old
// city in place, keeping its position in the update order.
func (s *Simulation) AddCity(name string, position core.Vec3) *City {
	c := NewCity(name, position, s.cfg.GridWidth, s.cfg.GridHeight, s.rng)
	c.SetListener(s.listener)
	c.SetTicksPerSecond(s.cfg.TicksPerSecond)
	if i, ok := s.cityIndex[name]; ok {
		s.logger.Warn().Str("city", name).Msg("replacing existing city")
		s.cities[i] = c
	} else {
		s.cityIndex[name] = len(s.cities)
		s.cities = append(s.cities, c)
	}
	s.listener.Handle(events.NewCityAdded(name, s.cfg.GridWidth, s.cfg.GridHeight))
	return c
}

// GetCity returns the city registered under name.
func (s *Simulation) GetCity(name string) (*City, error) {
	i, ok := s.cityIndex[name]
	if !ok {
		return nil, fmt.Errorf("city %q: %w", name, core.ErrNotFound)
	}
	return s.cities[i], nil
}

// Update accumulates dt seconds and steps every city once per whole tick
// elapsed, up to the iteration cap. Residual time below one tick stays
// in the accumulator for the next call.
func (s *Simulation) Update(dt float64) {
	tick := s.TickDuration()
	s.time += dt
	for iter := s.cfg.MaxIterationsPerUpdate; s.time >= tick && iter > 0; iter-- {
		s.time -= tick
		s.step()
	}
}

// Step runs exactly one tick, bypassing the accumulator. Useful for
// tests and headless drivers that count ticks rather than seconds.
func (s *Simulation) Step() { s.step() }

func (s *Simulation) step() {
	for _, c := range s.cities {
		c.Update()
	}
	s.totalTicks++
}
