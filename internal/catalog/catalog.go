// Package catalog models near-Earth objects as reported by the NASA NeoWs
// feed, and derives threat summaries from them. Assessment math lives in
// the physics package; this package only carries catalog data and the
// simple mass/energy previews shown in threat listings.
package catalog

import (
	"context"
	"math"
	"sort"
	"time"
)

// previewDensityKgM3 is the rocky-asteroid density assumed for catalog
// previews. Full assessments re-derive density from the H-magnitude
// taxonomy; this constant only feeds the listing-level energy figures.
const previewDensityKgM3 = 3000.0

// joulesPerMegaton mirrors the physics package conversion.
const joulesPerMegaton = 4.184e15

// CloseApproach is one Earth flyby of a catalogued object.
type CloseApproach struct {
	Date                time.Time `json:"close_approach_date"`
	RelativeVelocityKmS float64   `json:"relative_velocity_km_s"`
	MissDistanceKm      float64   `json:"miss_distance_km"`
	OrbitingBody        string    `json:"orbiting_body"`

	// Kinetic energy preview at the preview density.
	KineticEnergyJoules   float64 `json:"kinetic_energy_joules"`
	KineticEnergyMegatons float64 `json:"kinetic_energy_megatons_tnt"`
}

// Asteroid is a catalogued near-Earth object.
type Asteroid struct {
	ID                     string          `json:"id"`
	Name                   string          `json:"name"`
	AbsoluteMagnitudeH     *float64        `json:"absolute_magnitude_h,omitempty"`
	EstimatedDiameterMin   float64         `json:"estimated_diameter_min_m"`
	EstimatedDiameterMax   float64         `json:"estimated_diameter_max_m"`
	IsPotentiallyHazardous bool            `json:"is_potentially_hazardous"`
	CloseApproaches        []CloseApproach `json:"close_approach_data"`
}

// AverageDiameterM is the midpoint of the NeoWs diameter estimate range.
func (a Asteroid) AverageDiameterM() float64 {
	return (a.EstimatedDiameterMin + a.EstimatedDiameterMax) / 2
}

// EstimatedMassKg previews the object's mass assuming a rocky bulk density.
func (a Asteroid) EstimatedMassKg() float64 {
	r := a.AverageDiameterM() / 2
	return (4.0 / 3.0) * math.Pi * r * r * r * previewDensityKgM3
}

// NearestApproach returns the close approach with the smallest miss
// distance, or false if the object has none on record.
func (a Asteroid) NearestApproach() (CloseApproach, bool) {
	if len(a.CloseApproaches) == 0 {
		return CloseApproach{}, false
	}
	nearest := a.CloseApproaches[0]
	for _, ca := range a.CloseApproaches[1:] {
		if ca.MissDistanceKm < nearest.MissDistanceKm {
			nearest = ca
		}
	}
	return nearest, true
}

// FillEnergyPreviews computes the kinetic-energy preview for every close
// approach from the object's estimated mass.
func (a *Asteroid) FillEnergyPreviews() {
	mass := a.EstimatedMassKg()
	for i := range a.CloseApproaches {
		v := a.CloseApproaches[i].RelativeVelocityKmS * 1000
		j := 0.5 * mass * v * v
		a.CloseApproaches[i].KineticEnergyJoules = j
		a.CloseApproaches[i].KineticEnergyMegatons = j / joulesPerMegaton
	}
}

// SortByMissDistance orders objects by their nearest approach, closest
// first. Objects without approach data sort last.
func SortByMissDistance(asteroids []Asteroid) {
	sort.SliceStable(asteroids, func(i, j int) bool {
		return nearestDistance(asteroids[i]) < nearestDistance(asteroids[j])
	})
}

func nearestDistance(a Asteroid) float64 {
	if ca, ok := a.NearestApproach(); ok {
		return ca.MissDistanceKm
	}
	return math.Inf(1)
}

// Source fetches catalogued objects from an upstream feed.
type Source interface {
	// Feed returns objects approaching Earth within the given date window.
	Feed(ctx context.Context, start, end time.Time) ([]Asteroid, error)

	// Lookup returns a single object by its catalog ID.
	Lookup(ctx context.Context, id string) (Asteroid, error)
}
