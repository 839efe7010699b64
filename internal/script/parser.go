package script

import (
	"bufio"
	"fmt"
	"io"
	"strconv"

	"github.com/mitchelldurbincs/glassbox/internal/sim"
	"github.com/mitchelldurbincs/glassbox/internal/sim/core"
	"github.com/mitchelldurbincs/glassbox/internal/sim/graph"
	"github.com/mitchelldurbincs/glassbox/internal/sim/grid"
	"github.com/mitchelldurbincs/glassbox/internal/sim/rules"
)

// lexer splits the scenario stream into whitespace-separated tokens.
type lexer struct {
	sc    *bufio.Scanner
	token string
}

func newLexer(r io.Reader) *lexer {
	sc := bufio.NewScanner(r)
	sc.Split(bufio.ScanWords)
	return &lexer{sc: sc}
}

// next advances to the following token, returning "" at end of input.
func (l *lexer) next() string {
	if l.sc.Scan() {
		l.token = l.sc.Text()
	} else {
		l.token = ""
	}
	return l.token
}

func (s *Script) parse(l *lexer) error {
	sawSection := false
	for {
		switch tok := l.next(); tok {
		case "resources":
			if err := s.parseResources(l); err != nil {
				return err
			}
		case "rules":
			if err := s.parseRules(l); err != nil {
				return err
			}
		case "maps":
			if err := s.parseMaps(l); err != nil {
				return err
			}
		case "paths":
			if err := s.parsePaths(l); err != nil {
				return err
			}
		case "segments":
			if err := s.parseWays(l); err != nil {
				return err
			}
		case "agents":
			if err := s.parseAgents(l); err != nil {
				return err
			}
		case "units":
			if err := s.parseUnits(l); err != nil {
				return err
			}
		case "":
			if !sawSection {
				return fmt.Errorf("empty scenario")
			}
			return nil
		default:
			return fmt.Errorf("unexpected token %q, want a section name", tok)
		}
		sawSection = true
	}
}

func (s *Script) parseResources(l *lexer) error {
	for {
		switch tok := l.next(); tok {
		case "end":
			return nil
		case "resource":
			s.resources[l.next()] = struct{}{}
		default:
			return fmt.Errorf("resources: unexpected token %q", tok)
		}
	}
}

func (s *Script) parsePaths(l *lexer) error {
	for {
		switch tok := l.next(); tok {
		case "end":
			return nil
		case "path":
			t := &graph.PathType{Name: l.next()}
			if tok := l.next(); tok != "color" {
				return fmt.Errorf("path %s: unexpected token %q", t.Name, tok)
			}
			color, err := toColor(l.next())
			if err != nil {
				return fmt.Errorf("path %s: %w", t.Name, err)
			}
			t.Color = color
			s.pathTypes[t.Name] = t
		default:
			return fmt.Errorf("paths: unexpected token %q", tok)
		}
	}
}

func (s *Script) parseWays(l *lexer) error {
	for {
		switch tok := l.next(); tok {
		case "end":
			return nil
		case "segment":
			t := &graph.WayType{Name: l.next()}
			if tok := l.next(); tok != "color" {
				return fmt.Errorf("segment %s: unexpected token %q", t.Name, tok)
			}
			color, err := toColor(l.next())
			if err != nil {
				return fmt.Errorf("segment %s: %w", t.Name, err)
			}
			t.Color = color
			s.wayTypes[t.Name] = t
		default:
			return fmt.Errorf("segments: unexpected token %q", tok)
		}
	}
}

func (s *Script) parseAgents(l *lexer) error {
	for {
		switch tok := l.next(); tok {
		case "end":
			return nil
		case "agent":
			if err := s.parseAgent(l); err != nil {
				return err
			}
		default:
			return fmt.Errorf("agents: unexpected token %q", tok)
		}
	}
}

// parseAgent reads one agent definition. speed is the closing attribute.
func (s *Script) parseAgent(l *lexer) error {
	t := &core.AgentType{Name: l.next()}
	for {
		switch tok := l.next(); tok {
		case "color":
			color, err := toColor(l.next())
			if err != nil {
				return fmt.Errorf("agent %s: %w", t.Name, err)
			}
			t.Color = color
		case "speed":
			speed, err := strconv.ParseFloat(l.next(), 64)
			if err != nil {
				return fmt.Errorf("agent %s: bad speed: %w", t.Name, err)
			}
			t.Speed = speed
			s.agentTypes[t.Name] = t
			return nil
		default:
			return fmt.Errorf("agent %s: unexpected token %q", t.Name, tok)
		}
	}
}

func (s *Script) parseRules(l *lexer) error {
	for {
		switch tok := l.next(); tok {
		case "end":
			return nil
		case "mapRule":
			if err := s.parseMapRule(l); err != nil {
				return err
			}
		case "unitRule":
			if err := s.parseUnitRule(l); err != nil {
				return err
			}
		default:
			return fmt.Errorf("rules: unexpected token %q", tok)
		}
	}
}

func (s *Script) parseMapRule(l *lexer) error {
	name := l.next()
	var (
		rate     uint32 = 1
		random   bool
		percent  uint32
		commands []rules.Command
	)
	for {
		switch tok := l.next(); tok {
		case "end":
			s.mapRules[name] = rules.NewMapRule(name, rate, commands, random, percent)
			return nil
		case "rate":
			n, err := toUint(l.next())
			if err != nil {
				return fmt.Errorf("mapRule %s: bad rate: %w", name, err)
			}
			rate = n
		case "randomTiles":
			b, err := toBool(l.next())
			if err != nil {
				return fmt.Errorf("mapRule %s: %w", name, err)
			}
			random = b
		case "randomTilesPercent":
			n, err := toUint(l.next())
			if err != nil {
				return fmt.Errorf("mapRule %s: bad percent: %w", name, err)
			}
			random = true
			percent = n
		case "":
			return fmt.Errorf("mapRule %s: unexpected end of input", name)
		default:
			cmd, err := s.parseCommand(l, tok)
			if err != nil {
				return fmt.Errorf("mapRule %s: %w", name, err)
			}
			commands = append(commands, cmd)
		}
	}
}

func (s *Script) parseUnitRule(l *lexer) error {
	name := l.next()
	var (
		rate     uint32 = 1
		commands []rules.Command
	)
	for {
		switch tok := l.next(); tok {
		case "end":
			s.unitRules[name] = rules.NewUnitRule(name, rate, commands, nil)
			return nil
		case "rate":
			n, err := toUint(l.next())
			if err != nil {
				return fmt.Errorf("unitRule %s: bad rate: %w", name, err)
			}
			rate = n
		case "":
			return fmt.Errorf("unitRule %s: unexpected end of input", name)
		default:
			cmd, err := s.parseCommand(l, tok)
			if err != nil {
				return fmt.Errorf("unitRule %s: %w", name, err)
			}
			commands = append(commands, cmd)
		}
	}
}

// parseCommand reads one rule command starting from its already-consumed
// leading token: a value scope (local, global, map) followed by an
// operation, or an agent spawn clause.
func (s *Script) parseCommand(l *lexer, lead string) (rules.Command, error) {
	var target rules.Value
	switch lead {
	case "local":
		name := l.next()
		if !s.HasResource(name) {
			return nil, fmt.Errorf("undeclared resource %q", name)
		}
		target = rules.NewLocal(name)
	case "global":
		name := l.next()
		if !s.HasResource(name) {
			return nil, fmt.Errorf("undeclared resource %q", name)
		}
		target = rules.NewGlobal(name)
	case "map":
		target = rules.NewMap(l.next())
	case "agent":
		return s.parseSpawnCommand(l)
	default:
		return nil, fmt.Errorf("unexpected token %q, want a command", lead)
	}

	op := l.next()
	amount, err := toUint(l.next())
	if err != nil {
		return nil, fmt.Errorf("command %s %s: bad amount: %w", lead, op, err)
	}
	switch op {
	case "add":
		return rules.NewAdd(target, amount), nil
	case "remove":
		return rules.NewRemove(target, amount), nil
	case "greater":
		return rules.NewTest(target, rules.Greater, amount), nil
	case "less":
		return rules.NewTest(target, rules.Less, amount), nil
	case "equals":
		return rules.NewTest(target, rules.Equals, amount), nil
	default:
		return nil, fmt.Errorf("unexpected operation %q", op)
	}
}

func (s *Script) parseSpawnCommand(l *lexer) (rules.Command, error) {
	name := l.next()
	agent, err := s.AgentType(name)
	if err != nil {
		return nil, err
	}
	var target string
	payload := core.NewResources()
	for {
		switch tok := l.next(); tok {
		case "to":
			target = l.next()
		case "add":
			if err := s.parseResourcesArray(l, payload); err != nil {
				return nil, fmt.Errorf("agent %s: %w", name, err)
			}
			return rules.NewSpawn(agent, target, payload), nil
		default:
			return nil, fmt.Errorf("agent %s: unexpected token %q", name, tok)
		}
	}
}

func (s *Script) parseMaps(l *lexer) error {
	for {
		switch tok := l.next(); tok {
		case "end":
			return nil
		case "map":
			if err := s.parseMap(l); err != nil {
				return err
			}
		default:
			return fmt.Errorf("maps: unexpected token %q", tok)
		}
	}
}

// parseMap reads one map type. The rules array is the closing attribute.
func (s *Script) parseMap(l *lexer) error {
	t := &grid.MapType{Name: l.next()}
	for {
		switch tok := l.next(); tok {
		case "color":
			color, err := toColor(l.next())
			if err != nil {
				return fmt.Errorf("map %s: %w", t.Name, err)
			}
			t.Color = color
		case "capacity":
			n, err := toUint(l.next())
			if err != nil {
				return fmt.Errorf("map %s: bad capacity: %w", t.Name, err)
			}
			t.Capacity = n
		case "rules":
			if err := s.parseMapRuleArray(l, &t.Rules); err != nil {
				return fmt.Errorf("map %s: %w", t.Name, err)
			}
			s.mapTypes[t.Name] = t
			return nil
		case "":
			return fmt.Errorf("map %s: unexpected end of input", t.Name)
		default:
			return fmt.Errorf("map %s: unexpected token %q", t.Name, tok)
		}
	}
}

func (s *Script) parseUnits(l *lexer) error {
	for {
		switch tok := l.next(); tok {
		case "end":
			return nil
		case "unit":
			if err := s.parseUnit(l); err != nil {
				return err
			}
		default:
			return fmt.Errorf("units: unexpected token %q", tok)
		}
	}
}

// parseUnit reads one unit type. The resources array is the closing
// attribute; caps must come before it so capacities bound the amounts.
func (s *Script) parseUnit(l *lexer) error {
	t := &sim.UnitType{Name: l.next(), Resources: core.NewResources()}
	for {
		switch tok := l.next(); tok {
		case "color":
			color, err := toColor(l.next())
			if err != nil {
				return fmt.Errorf("unit %s: %w", t.Name, err)
			}
			t.Color = color
		case "mapRadius":
			n, err := toUint(l.next())
			if err != nil {
				return fmt.Errorf("unit %s: bad mapRadius: %w", t.Name, err)
			}
			t.Radius = int(n)
		case "rules":
			if err := s.parseUnitRuleArray(l, &t.Rules); err != nil {
				return fmt.Errorf("unit %s: %w", t.Name, err)
			}
		case "targets":
			if err := parseStringArray(l, &t.Targets); err != nil {
				return fmt.Errorf("unit %s: %w", t.Name, err)
			}
		case "caps":
			caps := core.NewResources()
			if err := s.parseCapacitiesArray(l, caps); err != nil {
				return fmt.Errorf("unit %s: %w", t.Name, err)
			}
			t.Resources.SetCapacities(caps)
		case "resources":
			initial := core.NewResources()
			if err := s.parseResourcesArray(l, initial); err != nil {
				return fmt.Errorf("unit %s: %w", t.Name, err)
			}
			t.Resources.AddAll(initial)
			s.unitTypes[t.Name] = t
			return nil
		case "":
			return fmt.Errorf("unit %s: unexpected end of input", t.Name)
		default:
			return fmt.Errorf("unit %s: unexpected token %q", t.Name, tok)
		}
	}
}

// parseResourcesArray reads "[ name amount ... ]" pairs into rs.
func (s *Script) parseResourcesArray(l *lexer, rs *core.Resources) error {
	if tok := l.next(); tok != "[" {
		return fmt.Errorf("unexpected token %q, want [", tok)
	}
	for {
		tok := l.next()
		if tok == "]" {
			return nil
		}
		if tok == "" {
			return fmt.Errorf("unterminated resource array")
		}
		if !s.HasResource(tok) {
			return fmt.Errorf("undeclared resource %q", tok)
		}
		amount, err := toUint(l.next())
		if err != nil {
			return fmt.Errorf("resource %s: bad amount: %w", tok, err)
		}
		rs.Add(tok, amount)
	}
}

func (s *Script) parseCapacitiesArray(l *lexer, rs *core.Resources) error {
	if tok := l.next(); tok != "[" {
		return fmt.Errorf("unexpected token %q, want [", tok)
	}
	for {
		tok := l.next()
		if tok == "]" {
			return nil
		}
		if tok == "" {
			return fmt.Errorf("unterminated capacity array")
		}
		if !s.HasResource(tok) {
			return fmt.Errorf("undeclared resource %q", tok)
		}
		capacity, err := toUint(l.next())
		if err != nil {
			return fmt.Errorf("resource %s: bad capacity: %w", tok, err)
		}
		rs.SetCapacity(tok, capacity)
	}
}

func (s *Script) parseMapRuleArray(l *lexer, out *[]*rules.MapRule) error {
	if tok := l.next(); tok != "[" {
		return fmt.Errorf("unexpected token %q, want [", tok)
	}
	for {
		tok := l.next()
		if tok == "]" {
			return nil
		}
		if tok == "" {
			return fmt.Errorf("unterminated rule array")
		}
		r, err := s.MapRule(tok)
		if err != nil {
			return err
		}
		*out = append(*out, r)
	}
}

func (s *Script) parseUnitRuleArray(l *lexer, out *[]*rules.UnitRule) error {
	if tok := l.next(); tok != "[" {
		return fmt.Errorf("unexpected token %q, want [", tok)
	}
	for {
		tok := l.next()
		if tok == "]" {
			return nil
		}
		if tok == "" {
			return fmt.Errorf("unterminated rule array")
		}
		r, err := s.UnitRule(tok)
		if err != nil {
			return err
		}
		*out = append(*out, r)
	}
}

func parseStringArray(l *lexer, out *[]string) error {
	if tok := l.next(); tok != "[" {
		return fmt.Errorf("unexpected token %q, want [", tok)
	}
	for {
		tok := l.next()
		if tok == "]" {
			return nil
		}
		if tok == "" {
			return fmt.Errorf("unterminated string array")
		}
		*out = append(*out, tok)
	}
}

func toUint(word string) (uint32, error) {
	n, err := strconv.ParseUint(word, 10, 32)
	if err != nil {
		return 0, err
	}
	return uint32(n), nil
}

func toColor(word string) (uint32, error) {
	n, err := strconv.ParseUint(word, 16, 32)
	if err != nil {
		return 0, fmt.Errorf("bad color %q: %w", word, err)
	}
	return uint32(n), nil
}

func toBool(word string) (bool, error) {
	switch word {
	case "true":
		return true, nil
	case "false":
		return false, nil
	}
	n, err := toUint(word)
	if err != nil {
		return false, fmt.Errorf("bad boolean %q: %w", word, err)
	}
	return n != 0, nil
}
