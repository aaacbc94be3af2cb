package physics

import (
	"errors"
	"fmt"
	"math"
)

// JoulesPerMegaton converts impact energy to megatons of TNT equivalent.
const JoulesPerMegaton = 4.184e15

// ErrNumericDegeneracy reports that a model stage would produce a non-finite
// value. The core fails loudly instead of propagating NaN to callers.
var ErrNumericDegeneracy = errors.New("non-finite numeric result")

// EnergyResult holds the mass and kinetic energy of an impactor at the surface.
type EnergyResult struct {
	MassKg            float64 `json:"mass_kg"`
	SurfaceVelocityMS float64 `json:"surface_velocity_m_s"`
	EnergyJoules      float64 `json:"energy_joules"`
	EnergyMegatons    float64 `json:"energy_megatons_tnt"`
}

// ComputeEnergy derives impactor mass from spherical geometry and bulk
// density, then kinetic energy from the surface velocity. Finite positive
// inputs cannot fail; non-finite intermediate values are rejected with
// ErrNumericDegeneracy.
func ComputeEnergy(diameterM, densityKgM3, surfaceVelocityMS float64) (EnergyResult, error) {
	radiusM := diameterM / 2
	volumeM3 := (4.0 / 3.0) * math.Pi * radiusM * radiusM * radiusM
	massKg := volumeM3 * densityKgM3

	energyJoules := 0.5 * massKg * surfaceVelocityMS * surfaceVelocityMS

	r := EnergyResult{
		MassKg:            massKg,
		SurfaceVelocityMS: surfaceVelocityMS,
		EnergyJoules:      energyJoules,
		EnergyMegatons:    energyJoules / JoulesPerMegaton,
	}

	for _, v := range []float64{massKg, energyJoules, r.EnergyMegatons} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return EnergyResult{}, fmt.Errorf("energy for diameter %g m, density %g kg/m³, velocity %g m/s: %w",
				diameterM, densityKgM3, surfaceVelocityMS, ErrNumericDegeneracy)
		}
	}
	return r, nil
}
