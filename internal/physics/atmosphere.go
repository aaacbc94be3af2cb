package physics

// Velocity retention bins, after the simplified deceleration treatment in
// Collins et al. (2005). The step discontinuities at the bin edges are a
// documented model limitation.
const (
	retentionSmall  = 0.70 // < 50 m: significant deceleration
	retentionMedium = 0.85 // 50–200 m
	retentionLarge  = 0.95 // ≥ 200 m: retains most entry velocity

	smallBinEdgeM  = 50.0
	mediumBinEdgeM = 200.0
)

// velocityRetention returns the fraction of entry velocity retained at the
// surface for an object of the given diameter.
func velocityRetention(diameterM float64) float64 {
	switch {
	case diameterM < smallBinEdgeM:
		return retentionSmall
	case diameterM < mediumBinEdgeM:
		return retentionMedium
	default:
		return retentionLarge
	}
}

// SurfaceVelocity attenuates an entry velocity (km/s) to a surface impact
// velocity (m/s) using the size-binned retention model.
func SurfaceVelocity(entrySpeedKmS, diameterM float64) float64 {
	return entrySpeedKmS * 1000 * velocityRetention(diameterM)
}
