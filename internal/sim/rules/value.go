package rules

// Value is a typed accessor a command reads or mutates through the current
// context. The set of variants is closed: global resource, local resource,
// map cells.
type Value interface {
	Get(ctx *Context) uint32
	Capacity(ctx *Context) uint32
	Add(ctx *Context, n uint32)
	Remove(ctx *Context, n uint32)
	Label() string
}

// GlobalValue addresses a resource in the city's global bag by name.
type GlobalValue struct {
	resource string
}

func NewGlobal(resource string) *GlobalValue {
	return &GlobalValue{resource: resource}
}

func (g *GlobalValue) Get(ctx *Context) uint32      { return ctx.Globals.Amount(g.resource) }
func (g *GlobalValue) Capacity(ctx *Context) uint32 { return ctx.Globals.Capacity(g.resource) }
func (g *GlobalValue) Add(ctx *Context, n uint32)   { ctx.Globals.Add(g.resource, n) }
func (g *GlobalValue) Remove(ctx *Context, n uint32) {
	ctx.Globals.Remove(g.resource, n)
}
func (g *GlobalValue) Label() string { return "global " + g.resource }

// LocalValue addresses a resource in the rule owner's local bag by name.
type LocalValue struct {
	resource string
}

func NewLocal(resource string) *LocalValue {
	return &LocalValue{resource: resource}
}

func (l *LocalValue) Get(ctx *Context) uint32      { return ctx.Locals.Amount(l.resource) }
func (l *LocalValue) Capacity(ctx *Context) uint32 { return ctx.Locals.Capacity(l.resource) }
func (l *LocalValue) Add(ctx *Context, n uint32)   { ctx.Locals.Add(l.resource, n) }
func (l *LocalValue) Remove(ctx *Context, n uint32) {
	ctx.Locals.Remove(l.resource, n)
}
func (l *LocalValue) Label() string { return "local " + l.resource }

// MapValue addresses the cells of a named map at the context's (U,V) and
// radius. A missing map reads as zero and absorbs writes; the script
// front end rejects unknown map names before rules ever run.
type MapValue struct {
	mapID string
}

func NewMap(mapID string) *MapValue {
	return &MapValue{mapID: mapID}
}

func (m *MapValue) Get(ctx *Context) uint32 {
	g := ctx.City.Grid(m.mapID)
	if g == nil {
		return 0
	}
	return g.Amount(ctx.U, ctx.V, ctx.Radius)
}

func (m *MapValue) Capacity(ctx *Context) uint32 {
	g := ctx.City.Grid(m.mapID)
	if g == nil {
		return 0
	}
	return g.Capacity()
}

func (m *MapValue) Add(ctx *Context, n uint32) {
	if g := ctx.City.Grid(m.mapID); g != nil {
		g.Add(ctx.U, ctx.V, ctx.Radius, n)
	}
}

func (m *MapValue) Remove(ctx *Context, n uint32) {
	if g := ctx.City.Grid(m.mapID); g != nil {
		g.Remove(ctx.U, ctx.V, ctx.Radius, n)
	}
}

func (m *MapValue) Label() string { return "map " + m.mapID }
