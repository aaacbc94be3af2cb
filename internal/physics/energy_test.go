package physics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeEnergy(t *testing.T) {
	t.Run("reference 100 m impactor", func(t *testing.T) {
		r, err := ComputeEnergy(100, 2700, 17000)
		require.NoError(t, err)

		assert.InDelta(t, 1.4137166941154068e9, r.MassKg, 1)
		assert.Equal(t, 17000.0, r.SurfaceVelocityMS)
		assert.InDelta(t, 2.0428206229967626e17, r.EnergyJoules, 1e9)
		assert.InDelta(t, 48.82458467965494, r.EnergyMegatons, 1e-9)
	})

	t.Run("megaton conversion is exact", func(t *testing.T) {
		r, err := ComputeEnergy(50, 2160, 14000)
		require.NoError(t, err)

		assert.Equal(t, r.EnergyJoules/4.184e15, r.EnergyMegatons)
	})

	t.Run("non-finite velocity is rejected", func(t *testing.T) {
		_, err := ComputeEnergy(100, 2700, math.Inf(1))

		require.Error(t, err)
		assert.ErrorIs(t, err, ErrNumericDegeneracy)
	})

	t.Run("NaN density is rejected", func(t *testing.T) {
		_, err := ComputeEnergy(100, math.NaN(), 17000)

		assert.ErrorIs(t, err, ErrNumericDegeneracy)
	})
}
