package sim

import (
	"github.com/mitchelldurbincs/glassbox/internal/sim/core"
	"github.com/mitchelldurbincs/glassbox/internal/sim/graph"
	"github.com/mitchelldurbincs/glassbox/internal/sim/grid"
	"github.com/mitchelldurbincs/glassbox/internal/sim/rules"
)

// DemoTypes bundles the type definitions the built-in demo scenario uses.
// The same types back the headless demo command and the engine tests.
type DemoTypes struct {
	Grass  *grid.MapType
	Water  *grid.MapType
	Road   *graph.PathType
	Dirt   *graph.WayType
	People *core.AgentType
	Home   *UnitType
	Work   *UnitType
}

// NewDemoTypes builds the demo type set: homes hold People and ship them
// to workplaces over dirt roads, while a map rule slowly turns water
// tiles into grass.
func NewDemoTypes() *DemoTypes {
	people := &core.AgentType{Name: "People", Speed: 10.5, Radius: 0.2, Color: 0xFFFF00}

	homeResources := core.NewResources()
	homeResources.SetCapacity("People", 4)
	homeResources.Add("People", 4)

	workResources := core.NewResources()
	workResources.SetCapacity("People", 2)

	sendPeople := rules.NewUnitRule("SendPeopleToWork", 20, []rules.Command{
		rules.NewRemove(rules.NewLocal("People"), 1),
		rules.NewSpawn(people, "Work", peoplePayload(1)),
	}, nil)

	growGrass := rules.NewMapRule("CreateGrass", 7, []rules.Command{
		rules.NewTest(rules.NewMap("Water"), rules.Greater, 0),
		rules.NewRemove(rules.NewMap("Water"), 1),
		rules.NewAdd(rules.NewMap("Grass"), 1),
	}, true, 10)

	return &DemoTypes{
		Grass:  &grid.MapType{Name: "Grass", Color: 0x00FF00, Capacity: 10, Rules: []*rules.MapRule{growGrass}},
		Water:  &grid.MapType{Name: "Water", Color: 0x0000FF, Capacity: 100},
		Road:   &graph.PathType{Name: "Road", Color: 0xAAAAAA},
		Dirt:   &graph.WayType{Name: "Dirt", Color: 0xAAAAAA},
		People: people,
		Home: &UnitType{
			Name:      "Home",
			Color:     0xFF00FF,
			Radius:    1,
			Targets:   []string{"Home"},
			Rules:     []*rules.UnitRule{sendPeople},
			Resources: homeResources,
		},
		Work: &UnitType{
			Name:      "Work",
			Color:     0x00AAFF,
			Radius:    3,
			Targets:   []string{"Work"},
			Resources: workResources,
		},
	}
}

func peoplePayload(n uint32) *core.Resources {
	rs := core.NewResources()
	rs.Add("People", n)
	return rs
}

// BuildDemoCity populates a city with the demo layout: a triangle of
// roads with two homes and two workplaces spread along its edges, plus
// grass and water maps.
func BuildDemoCity(c *City, types *DemoTypes) {
	road := c.AddPath(types.Road)
	origin := c.Position()
	n1 := road.AddNode(core.NewVec3(60, 60, 0).Add(origin))
	n2 := road.AddNode(core.NewVec3(300, 300, 0).Add(origin))
	n3 := road.AddNode(core.NewVec3(60, 300, 0).Add(origin))

	w1 := road.AddWay(types.Dirt, n1, n2)
	w2 := road.AddWay(types.Dirt, n2, n3)
	w3 := road.AddWay(types.Dirt, n3, n1)

	c.AddUnitOnWay(types.Home, road, w1, 0.66)
	c.AddUnitOnWay(types.Home, road, w1, 0.5)
	c.AddUnitOnWay(types.Work, road, w2, 0.5)
	c.AddUnitOnWay(types.Work, road, w3, 0.5)

	water := c.AddMap(types.Water)
	c.AddMap(types.Grass)
	for v := 0; v < water.SizeV(); v++ {
		for u := 0; u < water.SizeU(); u++ {
			water.SetResource(u, v, types.Water.Capacity/2)
		}
	}
}

// BuildDemoNeighborCity populates a smaller satellite city and connects
// its road to the first node of the neighbor's first path, so agents can
// commute between the two.
func BuildDemoNeighborCity(c, neighbor *City, types *DemoTypes) {
	c.AddMap(types.Water)
	c.AddMap(types.Grass)

	road := c.AddPath(types.Road)
	origin := c.Position()
	n1 := road.AddNode(core.NewVec3(40, 20, 0).Add(origin))
	n2 := road.AddNode(core.NewVec3(300, 300, 0).Add(origin))
	w1 := road.AddWay(types.Dirt, n1, n2)
	c.AddUnitOnWay(types.Work, road, w1, 0.8)

	if len(neighbor.Paths()) == 0 || len(neighbor.Paths()[0].Nodes()) == 0 {
		return
	}
	gateway := neighbor.Paths()[0].Nodes()[0]
	link := road.AddWay(types.Dirt, n2, gateway)
	c.AddUnitOnWay(types.Home, road, link, 0.1)
}
