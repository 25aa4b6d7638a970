// Package metrics holds run observers that reduce a world to one number.
package metrics

import "github.com/san-kum/sparks/internal/sim"

// DefaultEscapeRadius bounds the play area of every bundled scenario.
const DefaultEscapeRadius = 1000.0

// Standard returns a fresh set of the metrics recorded for every run.
func Standard() []sim.Metric {
	return []sim.Metric{
		NewLiveCount(),
		NewPeakCount(),
		NewPeakHeight(),
		NewKineticEnergy(),
		NewPeakEnergy(),
		NewEscape(DefaultEscapeRadius),
	}
}
