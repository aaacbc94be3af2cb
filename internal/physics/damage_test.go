package physics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildDamageZones(t *testing.T) {
	crater := CraterGeometry{DiameterKm: 4.449931982315713, DepthKm: 0.8899863964631426}

	t.Run("reference 100 m impactor", func(t *testing.T) {
		zones := BuildDamageZones(48.82458467965494, crater, 2700)

		assert.InDelta(t, 184.4490479023926, ZoneRadius(zones, ZoneTotalDestruction), 1e-6)
		assert.InDelta(t, 297.46654640082266, ZoneRadius(zones, ZoneSevereDamage), 1e-6)
		assert.InDelta(t, 526.7755280028731, ZoneRadius(zones, ZoneModerateDamage), 1e-6)
		assert.InDelta(t, 284.66304341181245, ZoneRadius(zones, ZoneThermalBurns), 1e-6)
		assert.InDelta(t, 223.14413993751623, ZoneRadius(zones, ZoneSeismicDamage), 1e-6)
		assert.InDelta(t, crater.DiameterKm/2, ZoneRadius(zones, ZoneCrater), 1e-12)
	})

	t.Run("blast rings are ordered", func(t *testing.T) {
		zones := BuildDamageZones(48.82458467965494, crater, 2700)

		craterR := ZoneRadius(zones, ZoneCrater)
		td := ZoneRadius(zones, ZoneTotalDestruction)
		sd := ZoneRadius(zones, ZoneSevereDamage)
		md := ZoneRadius(zones, ZoneModerateDamage)
		assert.LessOrEqual(t, craterR, td)
		assert.LessOrEqual(t, td, sd)
		assert.LessOrEqual(t, sd, md)
	})

	t.Run("zones are sorted largest to smallest", func(t *testing.T) {
		zones := BuildDamageZones(48.82458467965494, crater, 2700)

		require.NotEmpty(t, zones)
		for i := 1; i < len(zones); i++ {
			assert.GreaterOrEqual(t, zones[i-1].RadiusKm, zones[i].RadiusKm)
		}
	})

	t.Run("sub-megaton impacts have no seismic zone", func(t *testing.T) {
		smallCrater := CraterGeometry{DiameterKm: 0.6, DepthKm: 0.18}
		zones := BuildDamageZones(0.074, smallCrater, 1128)

		assert.Equal(t, 0.0, ZoneRadius(zones, ZoneSeismicDamage))
		for _, z := range zones {
			assert.NotEqual(t, ZoneSeismicDamage, z.Category)
			assert.Positive(t, z.RadiusKm, "zero-radius zones must be dropped")
		}
	})

	t.Run("dense impactors widen the thermal ring", func(t *testing.T) {
		stony := BuildDamageZones(10, crater, 2700)
		metallic := BuildDamageZones(10, crater, 7800)

		assert.InDelta(t,
			ZoneRadius(stony, ZoneThermalBurns)*1.2,
			ZoneRadius(metallic, ZoneThermalBurns),
			1e-9,
		)
	})
}
