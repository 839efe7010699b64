// Package script loads simulation scenario files: plain-text, token-based
// definitions of resources, rules, maps, paths, way segments, agents and
// units. Parsed types are handed to the engine to build cities from.
package script

import (
	"fmt"
	"os"

	"github.com/rs/zerolog/log"

	"github.com/mitchelldurbincs/glassbox/internal/sim"
	"github.com/mitchelldurbincs/glassbox/internal/sim/core"
	"github.com/mitchelldurbincs/glassbox/internal/sim/graph"
	"github.com/mitchelldurbincs/glassbox/internal/sim/grid"
	"github.com/mitchelldurbincs/glassbox/internal/sim/rules"
)

// Script holds every type parsed from a scenario file, keyed by name.
type Script struct {
	resources  map[string]struct{}
	pathTypes  map[string]*graph.PathType
	wayTypes   map[string]*graph.WayType
	agentTypes map[string]*core.AgentType
	mapRules   map[string]*rules.MapRule
	unitRules  map[string]*rules.UnitRule
	mapTypes   map[string]*grid.MapType
	unitTypes  map[string]*sim.UnitType
}

// New returns an empty script. Call Parse to fill it.
func New() *Script {
	return &Script{
		resources:  make(map[string]struct{}),
		pathTypes:  make(map[string]*graph.PathType),
		wayTypes:   make(map[string]*graph.WayType),
		agentTypes: make(map[string]*core.AgentType),
		mapRules:   make(map[string]*rules.MapRule),
		unitRules:  make(map[string]*rules.UnitRule),
		mapTypes:   make(map[string]*grid.MapType),
		unitTypes:  make(map[string]*sim.UnitType),
	}
}

// Parse reads and parses a scenario file, accumulating its definitions
// into the script. Referenced names (resources, agents, rules) must be
// defined before use.
func (s *Script) Parse(path string) error {
	logger := log.With().Str("component", "script").Str("file", path).Logger()
	logger.Info().Msg("parsing scenario")

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening scenario: %w", err)
	}
	defer f.Close()

	if err := s.parse(newLexer(f)); err != nil {
		return fmt.Errorf("parsing scenario %s: %w", path, err)
	}
	logger.Info().
		Int("resources", len(s.resources)).
		Int("map_types", len(s.mapTypes)).
		Int("unit_types", len(s.unitTypes)).
		Int("agent_types", len(s.agentTypes)).
		Msg("scenario loaded")
	return nil
}

// PathType returns the named path type.
func (s *Script) PathType(name string) (*graph.PathType, error) {
	t, ok := s.pathTypes[name]
	if !ok {
		return nil, fmt.Errorf("path type %q: %w", name, core.ErrNotFound)
	}
	return t, nil
}

// WayType returns the named way segment type.
func (s *Script) WayType(name string) (*graph.WayType, error) {
	t, ok := s.wayTypes[name]
	if !ok {
		return nil, fmt.Errorf("way type %q: %w", name, core.ErrNotFound)
	}
	return t, nil
}

// AgentType returns the named agent type.
func (s *Script) AgentType(name string) (*core.AgentType, error) {
	t, ok := s.agentTypes[name]
	if !ok {
		return nil, fmt.Errorf("agent type %q: %w", name, core.ErrNotFound)
	}
	return t, nil
}

// MapType returns the named map type.
func (s *Script) MapType(name string) (*grid.MapType, error) {
	t, ok := s.mapTypes[name]
	if !ok {
		return nil, fmt.Errorf("map type %q: %w", name, core.ErrNotFound)
	}
	return t, nil
}

// UnitType returns the named unit type.
func (s *Script) UnitType(name string) (*sim.UnitType, error) {
	t, ok := s.unitTypes[name]
	if !ok {
		return nil, fmt.Errorf("unit type %q: %w", name, core.ErrNotFound)
	}
	return t, nil
}

// MapRule returns the named map rule.
func (s *Script) MapRule(name string) (*rules.MapRule, error) {
	r, ok := s.mapRules[name]
	if !ok {
		return nil, fmt.Errorf("map rule %q: %w", name, core.ErrNotFound)
	}
	return r, nil
}

// UnitRule returns the named unit rule.
func (s *Script) UnitRule(name string) (*rules.UnitRule, error) {
	r, ok := s.unitRules[name]
	if !ok {
		return nil, fmt.Errorf("unit rule %q: %w", name, core.ErrNotFound)
	}
	return r, nil
}

// HasResource reports whether a resource name was declared.
func (s *Script) HasResource(name string) bool {
	_, ok := s.resources[name]
	return ok
}
