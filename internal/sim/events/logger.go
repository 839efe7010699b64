package events

import "github.com/rs/zerolog"

// NewLogListener returns a Listener writing every event to structured
// logs at the given level. Wire it into a Bus (or directly into a city)
// to trace a run.
func NewLogListener(logger zerolog.Logger, level zerolog.Level) Listener {
	l := logger.With().Str("component", "event_log").Logger()
	return Handler(func(e Event) {
		l.WithLevel(level).
			Str("event_type", e.Type()).
			Str("city", e.CityName()).
			Time("at", e.Timestamp()).
			Msg("simulation event")
	})
}
