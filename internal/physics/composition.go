package physics

// Taxonomic class labels assigned by EstimateComposition.
const (
	ClassCType   = "C-type"
	ClassSType   = "S-type"
	ClassAssumed = "S-type (assumed)"
	ClassCustom  = "custom"
)

// Densities from Carry (2012), kg/m³ ± ~690.
const (
	densityCarbonaceous = 1410.0
	densitySilicaceous  = 2700.0

	// porosityFactor models ~20% rubble-pile porosity in small objects.
	porosityFactor     = 0.8
	porosityThresholdM = 100.0
)

// Composition is the inferred bulk composition of an asteroid.
type Composition struct {
	DensityKgM3    float64 `json:"density_kg_m3"`
	TaxonomicClass string  `json:"taxonomic_class"`
	Confidence     float64 `json:"confidence"` // 0.0–1.0
}

// EstimateComposition infers bulk density from the absolute magnitude H and
// diameter. A non-nil densityOverride takes precedence over the taxonomy and
// is returned verbatim with full confidence. When H is unavailable the
// S-type average is assumed at low confidence. The porosity correction is
// applied only to inferred densities, never to an explicit override.
//
// There are no error conditions: every input yields a usable estimate.
func EstimateComposition(absoluteMagnitudeH *float64, diameterM float64, densityOverride *float64) Composition {
	if densityOverride != nil {
		return Composition{
			DensityKgM3:    *densityOverride,
			TaxonomicClass: ClassCustom,
			Confidence:     1.0,
		}
	}

	var c Composition
	switch {
	case absoluteMagnitudeH == nil:
		c = Composition{DensityKgM3: densitySilicaceous, TaxonomicClass: ClassAssumed, Confidence: 0.5}
	case *absoluteMagnitudeH > 22:
		// Small, faint objects are predominantly carbonaceous.
		c = Composition{DensityKgM3: densityCarbonaceous, TaxonomicClass: ClassCType, Confidence: 0.8}
	case *absoluteMagnitudeH > 18:
		c = Composition{DensityKgM3: densitySilicaceous, TaxonomicClass: ClassSType, Confidence: 0.7}
	default:
		// Large objects of mixed composition; conservative S-type estimate.
		c = Composition{DensityKgM3: densitySilicaceous, TaxonomicClass: ClassSType, Confidence: 0.6}
	}

	if diameterM < porosityThresholdM {
		c.DensityKgM3 *= porosityFactor
	}
	return c
}
