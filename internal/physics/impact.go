package physics

import (
	"fmt"
	"time"
)

// ImpactParameters are the validated observational inputs to an impact
// assessment. The HTTP layer enforces the documented ranges (diameter
// 10–10000 m, speed 10–70 km/s, angle 15–90°, lat ±90, lon ±180) before the
// core sees them; the core additionally clamps the entry angle and guards
// against non-finite intermediate results.
type ImpactParameters struct {
	DiameterM     float64 `json:"diameter_m"`
	EntrySpeedKmS float64 `json:"speed_km_s"`
	EntryAngleDeg float64 `json:"angle_deg"`
	Latitude      float64 `json:"lat"`
	Longitude     float64 `json:"lon"`

	// AbsoluteMagnitudeH drives the composition taxonomy; nil means
	// brightness is unknown and the S-type average is assumed.
	AbsoluteMagnitudeH *float64 `json:"absolute_magnitude_h,omitempty"`

	// DensityOverride bypasses the taxonomy entirely when set (kg/m³).
	DensityOverride *float64 `json:"density_kg_m3,omitempty"`
}

// ImpactMetadata records which model variants produced a result.
type ImpactMetadata struct {
	TaxonomicClass             string  `json:"taxonomic_class"`
	DensityUsedKgM3            float64 `json:"density_used_kg_m3"`
	DensityConfidence          float64 `json:"density_confidence"`
	AtmosphericDecelerationPct float64 `json:"atmospheric_deceleration_pct"`
	PopulationDensityUsed      float64 `json:"population_density_used"`
	PopulationSource           string  `json:"population_source"`
	CasualtyModel              string  `json:"casualty_model"`

	// Advisory remote density observation; never feeds the casualty math.
	ObservedDensityKm2    float64 `json:"observed_density_km2,omitempty"`
	ObservedDensitySource string  `json:"observed_density_source,omitempty"`
}

// ImpactResult is the complete record produced by one impact assessment.
type ImpactResult struct {
	Energy      EnergyResult     `json:"energy"`
	Crater      CraterGeometry   `json:"crater"`
	DamageZones []DamageZone     `json:"damage_zones"`
	Casualties  CasualtyEstimate `json:"casualties"`
	Comparison  string           `json:"comparison"`
	Metadata    ImpactMetadata   `json:"scientific_metadata"`
	ComputedAt  time.Time        `json:"computed_at"`
}

// ComputeImpact runs the full model chain: composition, atmospheric entry,
// energy, crater scaling, damage zones, and casualties. It is pure and
// idempotent: the same parameters always produce the same physical numbers.
// The only failure mode for validated parameters is NumericDegeneracy in an
// upstream stage.
func ComputeImpact(p ImpactParameters) (ImpactResult, error) {
	comp := EstimateComposition(p.AbsoluteMagnitudeH, p.DiameterM, p.DensityOverride)

	surfaceVelocity := SurfaceVelocity(p.EntrySpeedKmS, p.DiameterM)

	energy, err := ComputeEnergy(p.DiameterM, comp.DensityKgM3, surfaceVelocity)
	if err != nil {
		return ImpactResult{}, fmt.Errorf("compute impact: %w", err)
	}

	crater := ScaleCrater(energy.EnergyJoules, comp.DensityKgM3, p.EntryAngleDeg)
	zones := BuildDamageZones(energy.EnergyMegatons, crater, comp.DensityKgM3)

	density := EstimatePopulationDensity(p.Latitude, p.Longitude)
	casualties := EstimateCasualties(ZoneRadius(zones, ZoneTotalDestruction), density.DensityKm2)

	entryVelocityMS := p.EntrySpeedKmS * 1000
	decelerationPct := 0.0
	if entryVelocityMS > 0 {
		decelerationPct = (entryVelocityMS - surfaceVelocity) / entryVelocityMS * 100
	}

	return ImpactResult{
		Energy:      energy,
		Crater:      crater,
		DamageZones: zones,
		Casualties:  casualties,
		Comparison:  EnergyComparison(energy.EnergyMegatons),
		Metadata: ImpactMetadata{
			TaxonomicClass:             comp.TaxonomicClass,
			DensityUsedKgM3:            comp.DensityKgM3,
			DensityConfidence:          comp.Confidence,
			AtmosphericDecelerationPct: decelerationPct,
			PopulationDensityUsed:      density.DensityKm2,
			PopulationSource:           density.Source,
			CasualtyModel:              CasualtyModelName,
		},
		ComputedAt: clock.Now(),
	}, nil
}

// hiroshimaMegatons is the ~15 kt reference yield for comparison strings.
const hiroshimaMegatons = 0.015

// EnergyComparison renders a human-readable scale comparison for an impact
// energy in megatons TNT.
func EnergyComparison(megatons float64) string {
	switch {
	case megatons < hiroshimaMegatons:
		return fmt.Sprintf("%.1f kilotons (smaller than Hiroshima)", megatons*1000)
	case megatons < 15:
		return fmt.Sprintf("%.0fx Hiroshima bomb", megatons/hiroshimaMegatons)
	case megatons < 1000:
		if megatons >= 10 && megatons <= 20 {
			return fmt.Sprintf("Tunguska event scale (%.0f megatons)", megatons)
		}
		return fmt.Sprintf("%.0f megatons (major catastrophe)", megatons)
	case megatons < 100000:
		return fmt.Sprintf("%.0f megatons (civilization-threatening)", megatons)
	default:
		return fmt.Sprintf("%.0f megatons (dinosaur extinction level)", megatons)
	}
}
