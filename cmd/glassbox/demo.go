package main

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/mitchelldurbincs/glassbox/internal/config"
	"github.com/mitchelldurbincs/glassbox/internal/sim"
	"github.com/mitchelldurbincs/glassbox/internal/sim/core"
)

func newDemoCmd() *cobra.Command {
	var (
		duration float64
		seed     int64
	)

	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Run the built-in two-city demo scenario",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Get()
			if duration == 0 {
				duration = cfg.Demo.DurationSeconds
			}
			if seed == 0 {
				seed = cfg.Engine.Seed
			}

			s, counts := newSimulation(cfg, seed)
			types := sim.NewDemoTypes()
			paris := s.AddCity(cfg.Demo.CityName, core.NewVec3(400, 200, 0))
			sim.BuildDemoCity(paris, types)
			versailles := s.AddCity("Versailles", core.NewVec3(0, 30, 0))
			sim.BuildDemoNeighborCity(versailles, paris, types)

			log.Info().
				Float64("duration_s", duration).
				Int64("seed", seed).
				Msg("running demo")
			runFor(s, duration)

			reportSimulation(s, counts)
			return nil
		},
	}

	cmd.Flags().Float64Var(&duration, "duration", 0, "Simulated seconds to run (default from config)")
	cmd.Flags().Int64Var(&seed, "seed", 0, "Random seed, 0 for time-based")
	return cmd
}

// runFor feeds the simulation frame-sized deltas until the requested
// simulated duration has elapsed.
func runFor(s *sim.Simulation, seconds float64) {
	const frame = 1.0 / 60.0
	for elapsed := 0.0; elapsed < seconds; elapsed += frame {
		s.Update(frame)
	}
}
