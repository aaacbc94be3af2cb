package physics

import "math"

// Crater scaling constants (Collins et al. 2005).
const (
	craterK1       = 1.25
	targetDensity  = 2500.0 // kg/m³, Earth crust
	surfaceGravity = 9.81   // m/s²

	// minAngleDeg clamps shallow trajectories before the sin(θ) term to
	// avoid the degenerate zero-sine singularity.
	minAngleDeg = 15.0

	// complexCraterKm is the simple-to-complex transition diameter.
	complexCraterKm = 4.0
)

// CraterGeometry describes the final crater left by a surface impact.
type CraterGeometry struct {
	DiameterKm float64 `json:"diameter_km"`
	DepthKm    float64 `json:"depth_km"`
}

// ScaleCrater converts impact energy and projectile density into crater
// geometry using the Collins scaling law:
//
//	D = K1 · E^0.22 · ρ_p^0.33 · (1/ρ_t)^0.33 · (1/g)^0.22 · sin(θ)^0.33
//
// Fractional exponents are applied to absolute values so degenerate negative
// inputs cannot yield NaN. Regression tests pin this exact formulation; do
// not "simplify" the absolute-value wrapping.
func ScaleCrater(energyJoules, projectileDensityKgM3, angleDeg float64) CraterGeometry {
	if angleDeg < minAngleDeg {
		angleDeg = minAngleDeg
	}
	angleRad := angleDeg * math.Pi / 180

	diameterM := craterK1 *
		math.Pow(math.Abs(energyJoules), 0.22) *
		math.Pow(math.Abs(projectileDensityKgM3), 0.33) *
		math.Pow(math.Abs(1/targetDensity), 0.33) *
		math.Pow(math.Abs(1/surfaceGravity), 0.22) *
		math.Pow(math.Abs(math.Sin(angleRad)), 0.33)

	diameterKm := diameterM / 1000

	// Complex craters (> 4 km) collapse to a shallower profile.
	ratio := 0.3
	if diameterKm > complexCraterKm {
		ratio = 0.2
	}

	return CraterGeometry{
		DiameterKm: diameterKm,
		DepthKm:    diameterKm * ratio,
	}
}
