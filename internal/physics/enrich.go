package physics

import (
	"context"
	"log/slog"
)

// EnrichWithObservedDensity annotates a computed result with an observed
// population density from an external provider. The annotation is advisory:
// casualty figures were already derived from the embedded heuristic and are
// never revised here. A nil provider or a failed lookup leaves the result
// unchanged apart from the source tag (graceful degradation).
func EnrichWithObservedDensity(ctx context.Context, result ImpactResult, lat, lon float64, provider DensityProvider, logger *slog.Logger) ImpactResult {
	if provider == nil {
		return result
	}

	density, err := provider.PopulationDensity(ctx, lat, lon)
	if err != nil {
		logger.Warn("remote density lookup failed",
			"lat", lat,
			"lon", lon,
			"error", err,
		)
		result.Metadata.ObservedDensitySource = "failed"
		return result
	}
	if density <= 0 {
		result.Metadata.ObservedDensitySource = "empty"
		return result
	}

	result.Metadata.ObservedDensityKm2 = density
	result.Metadata.ObservedDensitySource = "remote"
	return result
}
