package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"

	"github.com/mitchelldurbincs/glassbox/internal/config"
	"github.com/mitchelldurbincs/glassbox/internal/sim"
	"github.com/mitchelldurbincs/glassbox/internal/sim/events"
)

// agentCounts tallies carrier lifecycle events over a run.
type agentCounts struct {
	spawned int
	removed int
}

// newSimulation builds a simulation from config with an event bus wired
// to count agent traffic.
func newSimulation(cfg *config.Config, seed int64) (*sim.Simulation, *agentCounts) {
	counts := &agentCounts{}
	bus := events.NewBus()
	bus.Subscribe(events.TypeAgentSpawned, func(events.Event) { counts.spawned++ })
	bus.Subscribe(events.TypeAgentRemoved, func(events.Event) { counts.removed++ })

	s := sim.NewSimulation(sim.Config{
		GridWidth:              cfg.Engine.Grid.Width,
		GridHeight:             cfg.Engine.Grid.Height,
		TicksPerSecond:         cfg.Engine.TicksPerSecond,
		MaxIterationsPerUpdate: cfg.Engine.MaxIterationsPerUpdate,
		Seed:                   seed,
		Listener:               bus,
	})
	return s, counts
}

func reportSimulation(s *sim.Simulation, counts *agentCounts) {
	title := color.New(color.FgCyan, color.Bold)
	title.Printf("\nSimulation finished after %d ticks\n", s.TotalTicks())
	fmt.Printf("Agents spawned: %d, delivered: %d\n\n", counts.spawned, counts.removed)

	for _, c := range s.Cities() {
		title.Printf("City %s\n", c.Name())
		reportUnits(c)
		reportMaps(c)
		fmt.Printf("Agents in flight: %d\n\n", len(c.Agents()))
	}
}

func reportUnits(c *sim.City) {
	table := tablewriter.NewTable(os.Stdout,
		tablewriter.WithHeader([]string{"Unit", "Node", "Resources"}),
	)
	for _, u := range c.Units() {
		table.Append([]string{
			u.Type(),
			fmt.Sprintf("%d", u.ID()),
			u.Resources().String(),
		})
	}
	table.Render()
}

func reportMaps(c *sim.City) {
	table := tablewriter.NewTable(os.Stdout,
		tablewriter.WithHeader([]string{"Map", "Cell Capacity", "Total Amount"}),
	)
	for _, m := range c.Maps() {
		var total uint64
		for v := 0; v < m.SizeV(); v++ {
			for u := 0; u < m.SizeU(); u++ {
				total += uint64(m.Resource(u, v))
			}
		}
		table.Append([]string{
			m.Type(),
			fmt.Sprintf("%d", m.Capacity()),
			fmt.Sprintf("%d", total),
		})
	}
	table.Render()
}
