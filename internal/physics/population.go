package physics

import "math"

// populationCenter is one entry in the embedded density table. Densities are
// metro-average people/km²; influence radii approximate the built-up extent
// plus commuter belt.
type populationCenter struct {
	name        string
	lat, lon    float64
	densityKm2  float64
	influenceKm float64
}

// populationCenters is a static lookup table of major population centers.
// Embedded constant data keeps the density heuristic dependency-free and
// deterministic; no external population service is consulted on this path.
var populationCenters = []populationCenter{
	{"Tokyo", 35.68, 139.69, 6200, 100},
	{"Delhi", 28.61, 77.21, 11300, 80},
	{"Shanghai", 31.23, 121.47, 3900, 90},
	{"Dhaka", 23.81, 90.41, 23000, 50},
	{"São Paulo", -23.55, -46.63, 7200, 70},
	{"Cairo", 30.04, 31.24, 9800, 60},
	{"Mexico City", 19.43, -99.13, 6000, 70},
	{"Beijing", 39.90, 116.41, 1300, 90},
	{"Mumbai", 19.08, 72.88, 20700, 60},
	{"Osaka", 34.69, 135.50, 4600, 60},
	{"Karachi", 24.86, 67.01, 24000, 60},
	{"New York", 40.71, -74.01, 10700, 80},
	{"Istanbul", 41.01, 28.98, 2900, 70},
	{"Kolkata", 22.57, 88.36, 24000, 50},
	{"Lagos", 6.52, 3.38, 13700, 60},
	{"Buenos Aires", -34.60, -58.38, 14500, 60},
	{"Manila", 14.60, 120.98, 42800, 40},
	{"Rio de Janeiro", -22.91, -43.17, 5300, 50},
	{"Los Angeles", 34.05, -118.24, 3200, 90},
	{"Moscow", 55.76, 37.62, 4900, 70},
	{"London", 51.51, -0.13, 5700, 70},
	{"Paris", 48.86, 2.35, 20500, 50},
}

// cityMatchFloor is the density below which a city-influence match is
// considered meaningless and the latitude-band fallback applies.
const cityMatchFloor = 50.0

// minDensityKm2 floors the fallback heuristic; even open ocean gets a
// nominal density so casualty math stays defined.
const minDensityKm2 = 0.1

// PopulationDensityEstimate is the synchronous heuristic density at a point.
type PopulationDensityEstimate struct {
	DensityKm2 float64 `json:"density_km2"`
	Source     string  `json:"source"` // matched city name, or "latitude_band"
}

// EstimatePopulationDensity returns the heuristic population density at the
// given coordinates. Each city contributes densityKm2·max(0, 1−sqrt(d/r))
// inside its influence radius; the maximum across overlapping influences
// wins. Points with no meaningful city match fall back to latitude-band
// densities scaled by rough continental longitude bands.
func EstimatePopulationDensity(lat, lon float64) PopulationDensityEstimate {
	best := 0.0
	source := ""
	for _, c := range populationCenters {
		d := haversineKm(lat, lon, c.lat, c.lon)
		if d >= c.influenceKm {
			continue
		}
		density := c.densityKm2 * math.Max(0, 1-math.Sqrt(d/c.influenceKm))
		if density > best {
			best = density
			source = c.name
		}
	}
	if best >= cityMatchFloor {
		return PopulationDensityEstimate{DensityKm2: best, Source: source}
	}

	return PopulationDensityEstimate{
		DensityKm2: math.Max(minDensityKm2, latitudeBandDensity(lat)*longitudeBandFactor(lon)),
		Source:     "latitude_band",
	}
}

// latitudeBandDensity is the coarse rural-density prior by climate band.
func latitudeBandDensity(lat float64) float64 {
	absLat := math.Abs(lat)
	switch {
	case absLat > 66.5:
		return 0.1 // polar
	case absLat > 23.5:
		return 20 // temperate rural
	default:
		return 15 // tropical rural
	}
}

// longitudeBandFactor scales the latitude prior by rough continental
// longitude bands; open-ocean longitudes get no boost.
func longitudeBandFactor(lon float64) float64 {
	switch {
	case lon >= 60 && lon < 150:
		return 2.0 // South/East Asia
	case lon >= -10 && lon < 60:
		return 1.5 // Europe/Africa/Middle East
	case lon >= -130 && lon < -30:
		return 1.2 // Americas
	default:
		return 1.0
	}
}

// haversineKm returns the great-circle distance between two WGS-84 points.
func haversineKm(lat1, lon1, lat2, lon2 float64) float64 {
	const earthRadiusKm = 6371.0
	toRad := math.Pi / 180

	dLat := (lat2 - lat1) * toRad
	dLon := (lon2 - lon1) * toRad
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1*toRad)*math.Cos(lat2*toRad)*math.Sin(dLon/2)*math.Sin(dLon/2)
	return 2 * earthRadiusKm * math.Asin(math.Min(1, math.Sqrt(a)))
}
