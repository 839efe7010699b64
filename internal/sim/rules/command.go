package rules

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/mitchelldurbincs/glassbox/internal/sim/core"
)

// Comparison selects the predicate of a Test command.
type Comparison int

const (
	Equals Comparison = iota
	Greater
	Less
)

func (c Comparison) String() string {
	switch c {
	case Equals:
		return "equals"
	case Greater:
		return "greater"
	case Less:
		return "less"
	}
	return "unknown"
}

// Command is one step of a rule. Validate must be free of side effects;
// Execute runs only after every command of the rule validated.
type Command interface {
	Validate(ctx *Context) bool
	Execute(ctx *Context)
	Label() string
}

// AddCommand increases a value by a fixed quantity. It validates only
// while the value still has headroom.
type AddCommand struct {
	target Value
	amount uint32
}

func NewAdd(target Value, amount uint32) *AddCommand {
	return &AddCommand{target: target, amount: amount}
}

func (c *AddCommand) Validate(ctx *Context) bool {
	return c.target.Get(ctx) < c.target.Capacity(ctx)
}

func (c *AddCommand) Execute(ctx *Context) {
	c.target.Add(ctx, c.amount)
}

func (c *AddCommand) Label() string {
	return fmt.Sprintf("%s add %d", c.target.Label(), c.amount)
}

// RemoveCommand decreases a value by a fixed quantity. It validates only
// while the value holds at least that much.
type RemoveCommand struct {
	target Value
	amount uint32
}

func NewRemove(target Value, amount uint32) *RemoveCommand {
	return &RemoveCommand{target: target, amount: amount}
}

func (c *RemoveCommand) Validate(ctx *Context) bool {
	return c.target.Get(ctx) >= c.amount
}

func (c *RemoveCommand) Execute(ctx *Context) {
	c.target.Remove(ctx, c.amount)
}

func (c *RemoveCommand) Label() string {
	return fmt.Sprintf("%s remove %d", c.target.Label(), c.amount)
}

// TestCommand is a pure gate: it validates a comparison against a literal
// and executes nothing.
type TestCommand struct {
	target     Value
	comparison Comparison
	amount     uint32
}

func NewTest(target Value, comparison Comparison, amount uint32) *TestCommand {
	return &TestCommand{target: target, comparison: comparison, amount: amount}
}

func (c *TestCommand) Validate(ctx *Context) bool {
	v := c.target.Get(ctx)
	switch c.comparison {
	case Equals:
		return v == c.amount
	case Greater:
		return v > c.amount
	case Less:
		return v < c.amount
	}
	return false
}

func (c *TestCommand) Execute(ctx *Context) {}

func (c *TestCommand) Label() string {
	return fmt.Sprintf("%s %s %d", c.target.Label(), c.comparison, c.amount)
}

// SpawnCommand creates an agent carrying a copy of its configured payload,
// targeting units of the given type. It always validates; spawning from a
// unit whose node has no ways is a silent no-op, since the agent could
// never leave.
type SpawnCommand struct {
	agent   *core.AgentType
	target  string
	payload *core.Resources
}

func NewSpawn(agent *core.AgentType, target string, payload *core.Resources) *SpawnCommand {
	return &SpawnCommand{agent: agent, target: target, payload: payload}
}

func (c *SpawnCommand) Validate(ctx *Context) bool { return true }

func (c *SpawnCommand) Execute(ctx *Context) {
	if ctx.Unit == nil || !ctx.Unit.HasWays() {
		if ctx.Unit != nil {
			log.Debug().
				Str("component", "rules").
				Uint32("unit_id", ctx.Unit.ID()).
				Str("agent_type", c.agent.Name).
				Msg("spawn skipped: unit sits on an orphan node")
		}
		return
	}
	ctx.City.SpawnAgent(c.agent, ctx.Unit, c.payload.Clone(), c.target)
}

func (c *SpawnCommand) Label() string {
	return fmt.Sprintf("agent %s to %s", c.agent.Name, c.target)
}
