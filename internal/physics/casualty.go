package physics

import "math"

// CasualtyModelName identifies the overpressure-to-mortality table in result
// metadata.
const CasualtyModelName = "Glasstone & Dolan (1977)"

// totalDestructionPsi is the overpressure at the total-destruction zone
// boundary, where the casualty curve is evaluated.
const totalDestructionPsi = 20.0

// CasualtyEstimate partitions the affected population by outcome.
// fatalities + injuries ≤ affected always holds because the rate table
// never sums above 1.
type CasualtyEstimate struct {
	AffectedPopulation int     `json:"affected_population"`
	Fatalities         int     `json:"fatalities"`
	Injuries           int     `json:"injuries"`
	Survivors          int     `json:"survivors"`
	FatalityRate       float64 `json:"fatality_rate"`
	InjuryRate         float64 `json:"injury_rate"`
}

// CasualtyRates returns the Glasstone & Dolan fatality and injury rates at a
// given blast overpressure. Break points at 1/5/10/20/35/55 psi; the 35–55
// band interpolates linearly between 1% and 99% fatality.
func CasualtyRates(overpressurePsi float64) (fatalityRate, injuryRate float64) {
	switch {
	case overpressurePsi >= 55:
		return 0.99, 0.01
	case overpressurePsi >= 35:
		f := 0.01 + (overpressurePsi-35)*0.049 // 0.98/20 per psi
		return f, 0.8 * (1 - f)
	case overpressurePsi >= 20:
		return 0.8, 0.15
	case overpressurePsi >= 10:
		return 0.5, 0.4
	case overpressurePsi >= 5:
		return 0.05, 0.7
	case overpressurePsi >= 1:
		return 0.001, 0.1
	default:
		return 0, 0
	}
}

// EstimateCasualties applies the casualty curve at the total-destruction
// boundary to the population inside that zone.
func EstimateCasualties(totalDestructionKm, populationDensityKm2 float64) CasualtyEstimate {
	areaKm2 := math.Pi * totalDestructionKm * totalDestructionKm
	affected := int(areaKm2 * populationDensityKm2)

	fatalityRate, injuryRate := CasualtyRates(totalDestructionPsi)
	fatalities := int(float64(affected) * fatalityRate)
	injuries := int(float64(affected) * injuryRate)

	return CasualtyEstimate{
		AffectedPopulation: affected,
		Fatalities:         fatalities,
		Injuries:           injuries,
		Survivors:          affected - fatalities - injuries,
		FatalityRate:       fatalityRate,
		InjuryRate:         injuryRate,
	}
}
