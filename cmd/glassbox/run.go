package main

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/mitchelldurbincs/glassbox/internal/config"
	"github.com/mitchelldurbincs/glassbox/internal/script"
	"github.com/mitchelldurbincs/glassbox/internal/sim"
	"github.com/mitchelldurbincs/glassbox/internal/sim/core"
)

func newRunCmd() *cobra.Command {
	var (
		duration float64
		seed     int64
	)

	cmd := &cobra.Command{
		Use:   "run <scenario file>",
		Short: "Run a scenario script",
		Long: `Parses a scenario file defining resources, rules, maps, paths,
segments, agents and units, builds the standard two-city layout from the
parsed types, and steps the simulation headlessly.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Get()
			if duration == 0 {
				duration = cfg.Demo.DurationSeconds
			}
			if seed == 0 {
				seed = cfg.Engine.Seed
			}

			sc := script.New()
			if err := sc.Parse(args[0]); err != nil {
				return err
			}

			s, counts := newSimulation(cfg, seed)
			if err := buildScriptedCities(s, sc, cfg.Demo.CityName); err != nil {
				return err
			}

			log.Info().
				Str("scenario", args[0]).
				Float64("duration_s", duration).
				Int64("seed", seed).
				Msg("running scenario")
			runFor(s, duration)

			reportSimulation(s, counts)
			return nil
		},
	}

	cmd.Flags().Float64Var(&duration, "duration", 0, "Simulated seconds to run (default from config)")
	cmd.Flags().Int64Var(&seed, "seed", 0, "Random seed, 0 for time-based")
	return cmd
}

// buildScriptedCities instantiates the standard demo layout from script
// types. The scenario must define the Grass and Water maps, the Road path,
// the Dirt segment and the Home and Work units.
func buildScriptedCities(s *sim.Simulation, sc *script.Script, cityName string) error {
	grass, err := sc.MapType("Grass")
	if err != nil {
		return fmt.Errorf("scenario is missing a required type: %w", err)
	}
	water, err := sc.MapType("Water")
	if err != nil {
		return fmt.Errorf("scenario is missing a required type: %w", err)
	}
	road, err := sc.PathType("Road")
	if err != nil {
		return fmt.Errorf("scenario is missing a required type: %w", err)
	}
	dirt, err := sc.WayType("Dirt")
	if err != nil {
		return fmt.Errorf("scenario is missing a required type: %w", err)
	}
	home, err := sc.UnitType("Home")
	if err != nil {
		return fmt.Errorf("scenario is missing a required type: %w", err)
	}
	work, err := sc.UnitType("Work")
	if err != nil {
		return fmt.Errorf("scenario is missing a required type: %w", err)
	}

	types := &sim.DemoTypes{
		Grass: grass,
		Water: water,
		Road:  road,
		Dirt:  dirt,
		Home:  home,
		Work:  work,
	}

	paris := s.AddCity(cityName, core.NewVec3(400, 200, 0))
	sim.BuildDemoCity(paris, types)
	versailles := s.AddCity("Versailles", core.NewVec3(0, 30, 0))
	sim.BuildDemoNeighborCity(versailles, paris, types)
	return nil
}
