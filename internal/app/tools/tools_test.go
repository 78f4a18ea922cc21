package tools

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDistanceKm(t *testing.T) {
	t.Run("same point", func(t *testing.T) {
		assert.Equal(t, 0.0, DistanceKm(-33.9429, 151.2562, -33.9429, 151.2562))
	})

	t.Run("symmetric", func(t *testing.T) {
		ab := DistanceKm(-33.8688, 151.2093, -37.8136, 144.9631)
		ba := DistanceKm(-37.8136, 144.9631, -33.8688, 151.2093)
		assert.InDelta(t, ab, ba, 1e-9)
	})

	t.Run("sydney to melbourne", func(t *testing.T) {
		d := DistanceKm(-33.8688, 151.2093, -37.8136, 144.9631)
		assert.InDelta(t, 713.4, d, 2.0)
	})

	t.Run("one degree of latitude", func(t *testing.T) {
		d := DistanceKm(0, 0, 1, 0)
		assert.InDelta(t, earthRadiusKm*math.Pi/180, d, 1e-6)
	})

	t.Run("monotonic with separation", func(t *testing.T) {
		prev := 0.0
		for i := 1; i <= 20; i++ {
			d := DistanceKm(-33.9429, 151.2562, -33.9429+float64(i)*0.005, 151.2562)
			assert.Greater(t, d, prev)
			prev = d
		}
	})

	t.Run("NaN is not validated", func(t *testing.T) {
		assert.True(t, math.IsNaN(DistanceKm(math.NaN(), 0, 0, 0)))
	})
}

func TestGetLocation(t *testing.T) {
	loc, err := GetLocation("-33.9429, 151.2562")
	require.NoError(t, err)
	assert.Equal(t, -33.9429, loc.Lat)
	assert.Equal(t, 151.2562, loc.Lon)
	assert.Equal(t, 0.0, loc.Distance(-33.9429, 151.2562))

	for _, bad := range []string{"", "1.0", "a,b", "1,2,3", "91,0", "0,181"} {
		_, err := GetLocation(bad)
		assert.Error(t, err, bad)
	}
}
