package rules

// Rule is a named, rate-gated, ordered command list. Execution is
// two-phase: every command validates first (in reverse declaration order,
// matching execution) and if any fails the rule aborts with zero side
// effects; otherwise every command executes in the same order.
type Rule struct {
	name     string
	rate     uint32
	commands []Command
}

func newRule(name string, rate uint32, commands []Command) Rule {
	if rate == 0 {
		rate = 1
	}
	return Rule{name: name, rate: rate, commands: commands}
}

func (r *Rule) Name() string        { return r.name }
func (r *Rule) Rate() uint32        { return r.rate }
func (r *Rule) Commands() []Command { return r.commands }

// Execute runs the rule against ctx and reports success. Failure means a
// validation did not pass; the context is untouched in that case.
func (r *Rule) Execute(ctx *Context) bool {
	for i := len(r.commands); i > 0; {
		i--
		if !r.commands[i].Validate(ctx) {
			return false
		}
	}
	for i := len(r.commands); i > 0; {
		i--
		r.commands[i].Execute(ctx)
	}
	return true
}

// MapRule is a rule applied over a map's cells. In random mode an
// application pass visits percent% of the grid's cells, drawn without
// replacement, instead of every cell.
type MapRule struct {
	Rule
	random  bool
	percent uint32
}

func NewMapRule(name string, rate uint32, commands []Command, random bool, percent uint32) *MapRule {
	if percent > 100 {
		percent = 100
	}
	return &MapRule{Rule: newRule(name, rate, commands), random: random, percent: percent}
}

func (r *MapRule) Random() bool { return r.random }

// Percent returns percent% of total, truncated.
func (r *MapRule) Percent(total int) int {
	return total * int(r.percent) / 100
}

// UnitRule is a rule run by a unit, with an optional fallback rule that
// runs instead when the primary fails.
type UnitRule struct {
	Rule
	onFail *UnitRule
}

func NewUnitRule(name string, rate uint32, commands []Command, onFail *UnitRule) *UnitRule {
	return &UnitRule{Rule: newRule(name, rate, commands), onFail: onFail}
}

func (r *UnitRule) OnFail() *UnitRule { return r.onFail }

func (r *UnitRule) Execute(ctx *Context) bool {
	if r.Rule.Execute(ctx) {
		return true
	}
	if r.onFail != nil {
		return r.onFail.Execute(ctx)
	}
	return false
}
