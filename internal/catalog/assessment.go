package catalog

import (
	"fmt"
	"time"

	"github.com/couchcryptid/asteroid-impact-service/internal/physics"
)

// worstCaseAngleDeg is the entry angle assumed when assessing a catalogued
// object: 45° is the most probable entry angle for an isotropic flux.
const worstCaseAngleDeg = 45.0

// Assessment couples a catalogued object with a hypothetical-impact result
// for downstream consumers. The impact site is nominal (the sub-approach
// point is unknowable this far out), so casualty figures are indicative only.
type Assessment struct {
	AsteroidID     string               `json:"asteroid_id"`
	Name           string               `json:"name"`
	ApproachDate   time.Time            `json:"approach_date"`
	MissDistanceKm float64              `json:"miss_distance_km"`
	Hazardous      bool                 `json:"is_potentially_hazardous"`
	Impact         physics.ImpactResult `json:"impact"`
}

// Assess runs the impact orchestrator for an object's nearest recorded
// approach, using the NeoWs diameter midpoint, the approach velocity, and a
// 45° entry at the given nominal coordinates.
func Assess(a Asteroid, lat, lon float64) (Assessment, error) {
	approach, ok := a.NearestApproach()
	if !ok {
		return Assessment{}, fmt.Errorf("assess %s: no close approach data", a.ID)
	}

	result, err := physics.ComputeImpact(physics.ImpactParameters{
		DiameterM:          a.AverageDiameterM(),
		EntrySpeedKmS:      approach.RelativeVelocityKmS,
		EntryAngleDeg:      worstCaseAngleDeg,
		Latitude:           lat,
		Longitude:          lon,
		AbsoluteMagnitudeH: a.AbsoluteMagnitudeH,
	})
	if err != nil {
		return Assessment{}, fmt.Errorf("assess %s: %w", a.ID, err)
	}

	return Assessment{
		AsteroidID:     a.ID,
		Name:           a.Name,
		ApproachDate:   approach.Date,
		MissDistanceKm: approach.MissDistanceKm,
		Hazardous:      a.IsPotentiallyHazardous,
		Impact:         result,
	}, nil
}
