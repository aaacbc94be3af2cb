package physics

import (
	"math"
	"sort"
)

// Damage zone categories, from the crater outward.
const (
	ZoneCrater           = "crater"
	ZoneTotalDestruction = "total_destruction"
	ZoneSevereDamage     = "severe_damage"
	ZoneModerateDamage   = "moderate_damage"
	ZoneThermalBurns     = "thermal_burns"
	ZoneSeismicDamage    = "seismic_damage"
)

// groundCouplingFactor captures that surface impacts couple energy into
// overpressure more efficiently than an equivalent air burst.
const groundCouplingFactor = 1.3

// seismicThresholdMegatons gates the seismic zone: sub-megaton impacts do
// not produce damaging ground motion at range.
const seismicThresholdMegatons = 1.0

// DamageZone is one concentric damage ring around the impact point.
type DamageZone struct {
	RadiusKm float64 `json:"radius_km"`
	Category string  `json:"type"`
	Color    string  `json:"color"` // render tag for map layering
}

// BuildDamageZones converts impact energy and crater size into the ordered
// set of concentric damage rings. The crater-size correction terms widen the
// blast rings for large craters. Zones with zero radius are dropped, and the
// result is ordered largest-to-smallest for layered rendering.
func BuildDamageZones(energyMegatons float64, crater CraterGeometry, projectileDensityKgM3 float64) []DamageZone {
	tntTons := energyMegatons * groundCouplingFactor * 1e6
	cubeRoot := math.Pow(tntTons, 1.0/3.0)
	craterKm := crater.DiameterKm

	thermalFactor := 1.0
	if projectileDensityKgM3 > 4000 {
		// Dense (metallic) impactors radiate a hotter fireball.
		thermalFactor = 1.2
	}

	seismicKm := 0.0
	if energyMegatons > seismicThresholdMegatons {
		seismicKm = 2.5 * math.Pow(tntTons, 0.25)
	}

	zones := []DamageZone{
		{RadiusKm: craterKm / 2, Category: ZoneCrater, Color: "black"},
		{RadiusKm: 0.32 * cubeRoot * (1 + craterKm/10), Category: ZoneTotalDestruction, Color: "red"},
		{RadiusKm: 0.61 * cubeRoot * (1 + craterKm/20), Category: ZoneSevereDamage, Color: "orange"},
		{RadiusKm: 1.15 * cubeRoot * (1 + craterKm/30), Category: ZoneModerateDamage, Color: "yellow"},
		{RadiusKm: 0.18 * math.Pow(tntTons, 0.41) * thermalFactor, Category: ZoneThermalBurns, Color: "pink"},
		{RadiusKm: seismicKm, Category: ZoneSeismicDamage, Color: "brown"},
	}

	out := zones[:0]
	for _, z := range zones {
		if z.RadiusKm > 0 {
			out = append(out, z)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].RadiusKm > out[j].RadiusKm })
	return out
}

// ZoneRadius returns the radius of the named zone category, or 0 when the
// zone was dropped from the set.
func ZoneRadius(zones []DamageZone, category string) float64 {
	for _, z := range zones {
		if z.Category == category {
			return z.RadiusKm
		}
	}
	return 0
}
