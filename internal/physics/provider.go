package physics

import "context"

// DensityProvider looks up observed population density from an external
// source. Implementations own their own timeouts; the core never blocks the
// casualty path on a provider call.
type DensityProvider interface {
	// PopulationDensity returns people/km² at the given coordinates.
	PopulationDensity(ctx context.Context, lat, lon float64) (float64, error)
}
