package physics

import (
	"errors"
	"fmt"
	"math"
	"time"
)

// Supported deflection method names.
const (
	MethodKineticImpactor = "kinetic_impactor"
	MethodGravityTractor  = "gravity_tractor"
	MethodNuclear         = "nuclear"
)

// ErrUnknownMethod reports a deflection method outside the supported set.
// Callers get an explicit error, never a silent default method.
var ErrUnknownMethod = errors.New("unknown deflection method")

// EarthRadiusKm is the mean Earth radius used for miss-distance bands.
const EarthRadiusKm = 6371.0

// gravitationalConstant in m³/(kg·s²).
const gravitationalConstant = 6.674e-11

// Default spacecraft parameters for kinetic and nuclear missions.
const (
	DefaultSpacecraftMassKg      = 1000.0
	DefaultSpacecraftVelocityKmS = 10.0
)

// DeflectionParameters describe an asteroid and a candidate mitigation
// mission. Zero spacecraft fields fall back to the documented defaults.
type DeflectionParameters struct {
	Method string `json:"method"`

	AsteroidDiameterM   float64 `json:"asteroid_diameter_m"`
	AsteroidMassKg      float64 `json:"asteroid_mass_kg"`
	AsteroidVelocityKmS float64 `json:"asteroid_velocity_km_s"`
	TimeToImpactDays    float64 `json:"time_to_impact_days"`

	SpacecraftMassKg      float64 `json:"spacecraft_mass_kg,omitempty"`
	SpacecraftVelocityKmS float64 `json:"spacecraft_velocity_km_s,omitempty"`
}

// DeflectionResult is the outcome of one mitigation model run.
type DeflectionResult struct {
	Method               string    `json:"method"`
	VelocityChangeKmS    float64   `json:"velocity_change_km_s"`
	DeflectionDistanceKm float64   `json:"deflection_distance_km"`
	Effectiveness        int       `json:"effectiveness"`       // 0–100
	Status               string    `json:"status"`
	MissionLeadTimeDays  float64   `json:"time_required_days"`
	SuccessProbability   int       `json:"success_probability"` // 0–100
	Description          string    `json:"description"`
	ComputedAt           time.Time `json:"computed_at"`
}

// ComputeDeflection dispatches on the method name to one of the three
// mitigation models. Each model is pure and stateless.
func ComputeDeflection(p DeflectionParameters) (DeflectionResult, error) {
	if p.SpacecraftMassKg == 0 {
		p.SpacecraftMassKg = DefaultSpacecraftMassKg
	}
	if p.SpacecraftVelocityKmS == 0 {
		p.SpacecraftVelocityKmS = DefaultSpacecraftVelocityKmS
	}

	var r DeflectionResult
	switch p.Method {
	case MethodKineticImpactor:
		r = kineticImpactorDeflection(p)
	case MethodGravityTractor:
		r = gravityTractorDeflection(p)
	case MethodNuclear:
		r = nuclearDeflection(p)
	default:
		return DeflectionResult{}, fmt.Errorf("method %q: %w", p.Method, ErrUnknownMethod)
	}
	r.ComputedAt = clock.Now()
	return r, nil
}

// missDistanceKm is the simplified linear miss-distance proxy Δv × time.
// This is a first-order approximation, not a trajectory integration; the
// true miss distance depends on where along the orbit the Δv is applied.
func missDistanceKm(velocityChangeKmS, timeToImpactDays float64) float64 {
	return velocityChangeKmS * timeToImpactDays * 24
}

// kineticImpactorDeflection models a DART-style perfectly inelastic
// momentum transfer.
func kineticImpactorDeflection(p DeflectionParameters) DeflectionResult {
	spacecraftVelocityMS := p.SpacecraftVelocityKmS * 1000
	velocityChangeMS := (p.SpacecraftMassKg * spacecraftVelocityMS) / (p.AsteroidMassKg + p.SpacecraftMassKg)
	velocityChangeKmS := velocityChangeMS / 1000

	distanceKm := missDistanceKm(velocityChangeKmS, p.TimeToImpactDays)

	var effectiveness int
	var status string
	switch {
	case distanceKm > EarthRadiusKm*2:
		effectiveness, status = 100, "Complete deflection - Earth safe"
	case distanceKm > EarthRadiusKm:
		effectiveness, status = 80, "Major deflection - reduced impact"
	case distanceKm > EarthRadiusKm*0.5:
		effectiveness, status = 50, "Partial deflection - impact reduced"
	default:
		effectiveness, status = 20, "Minimal deflection - impact still likely"
	}

	return DeflectionResult{
		Method:               "Kinetic Impactor",
		VelocityChangeKmS:    velocityChangeKmS,
		DeflectionDistanceKm: distanceKm,
		Effectiveness:        effectiveness,
		Status:               status,
		MissionLeadTimeDays:  30,
		SuccessProbability:   clampInt(effectiveness+10, 20, 95),
		Description:          fmt.Sprintf("High-speed spacecraft collision changes asteroid velocity by %.4f km/s", velocityChangeKmS),
	}
}

// gravityTractorDeflection models a station-keeping spacecraft tugging the
// asteroid gravitationally over the remaining mission time.
func gravityTractorDeflection(p DeflectionParameters) DeflectionResult {
	const (
		tractorMassKg    = 10000.0
		tractorStandoffM = 100.0
	)

	forceN := gravitationalConstant * p.AsteroidMassKg * tractorMassKg / (tractorStandoffM * tractorStandoffM)
	accelerationMS2 := forceN / p.AsteroidMassKg
	velocityChangeKmS := accelerationMS2 * p.TimeToImpactDays * 24 * 3600 / 1000

	distanceKm := missDistanceKm(velocityChangeKmS, p.TimeToImpactDays)

	var effectiveness int
	var status string
	switch {
	case distanceKm > EarthRadiusKm*1.5:
		effectiveness, status = 90, "Excellent deflection - Earth safe"
	case distanceKm > EarthRadiusKm:
		effectiveness, status = 70, "Good deflection - impact avoided"
	case distanceKm > EarthRadiusKm*0.3:
		effectiveness, status = 40, "Moderate deflection - impact reduced"
	default:
		effectiveness, status = 15, "Minimal deflection - impact still likely"
	}

	return DeflectionResult{
		Method:               "Gravity Tractor",
		VelocityChangeKmS:    velocityChangeKmS,
		DeflectionDistanceKm: distanceKm,
		Effectiveness:        effectiveness,
		Status:               status,
		MissionLeadTimeDays:  math.Max(365, p.TimeToImpactDays-100),
		SuccessProbability:   clampInt(effectiveness+5, 30, 85),
		Description:          fmt.Sprintf("Gravitational tug gradually changes asteroid velocity by %.4f km/s", velocityChangeKmS),
	}
}

// nuclearDeflection models a standoff detonation of a fixed 1 Mt device
// with 10% of the yield converted to asteroid kinetic energy.
func nuclearDeflection(p DeflectionParameters) DeflectionResult {
	const (
		deviceYieldMegatons = 1.0
		couplingFraction    = 0.1
	)

	kineticEnergyJ := deviceYieldMegatons * JoulesPerMegaton * couplingFraction
	velocityChangeKmS := math.Sqrt(2*kineticEnergyJ/p.AsteroidMassKg) / 1000

	distanceKm := missDistanceKm(velocityChangeKmS, p.TimeToImpactDays)

	var effectiveness int
	var status string
	switch {
	case distanceKm > EarthRadiusKm*3:
		effectiveness, status = 95, "Maximum deflection - Earth safe"
	case distanceKm > EarthRadiusKm*1.5:
		effectiveness, status = 85, "Strong deflection - impact avoided"
	case distanceKm > EarthRadiusKm*0.5:
		effectiveness, status = 60, "Significant deflection - impact reduced"
	default:
		effectiveness, status = 25, "Limited deflection - impact still likely"
	}

	return DeflectionResult{
		Method:               "Nuclear Deflection",
		VelocityChangeKmS:    velocityChangeKmS,
		DeflectionDistanceKm: distanceKm,
		Effectiveness:        effectiveness,
		Status:               status,
		MissionLeadTimeDays:  60,
		SuccessProbability:   clampInt(effectiveness, 40, 90),
		Description:          fmt.Sprintf("Nuclear detonation changes asteroid velocity by %.4f km/s", velocityChangeKmS),
	}
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
