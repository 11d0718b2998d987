package geo

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBoundingBox_Ordering(t *testing.T) {
	cases := []struct {
		name   string
		lat    float64
		lon    float64
		sizeKM float64
	}{
		{"vienna 1km", 48.2082, 16.3738, 1.0},
		{"equator 10km", 0.0, 0.0, 10.0},
		{"southern hemisphere", -33.8688, 151.2093, 5.0},
		{"high latitude", 69.6496, 18.9553, 2.0},
		{"minimum size", 48.2082, 16.3738, 0.5},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			box, err := NewBoundingBox(tc.lat, tc.lon, tc.sizeKM)
			require.NoError(t, err)
			assert.Less(t, box.South, box.North)
			assert.Less(t, box.West, box.East)
		})
	}
}

func TestNewBoundingBox_SymmetricAroundCenter(t *testing.T) {
	box, err := NewBoundingBox(48.2082, 16.3738, 1.0)
	require.NoError(t, err)

	assert.InDelta(t, 48.2082, (box.South+box.North)/2, 1e-9)
	assert.InDelta(t, 16.3738, (box.West+box.East)/2, 1e-9)
}

func TestNewBoundingBox_LatSpan(t *testing.T) {
	box, err := NewBoundingBox(48.2082, 16.3738, 1.0)
	require.NoError(t, err)

	// 1 km total span is 1/111 degrees of latitude.
	assert.InDelta(t, 1.0/111.0, box.North-box.South, 1e-9)
}

func TestNewBoundingBox_LonSpanWidensWithLatitude(t *testing.T) {
	equator, err := NewBoundingBox(0, 0, 1.0)
	require.NoError(t, err)
	north, err := NewBoundingBox(60, 0, 1.0)
	require.NoError(t, err)

	// At 60°N cos(lat)=0.5, so the longitude span doubles.
	eqSpan := equator.East - equator.West
	northSpan := north.East - north.West
	assert.InDelta(t, 2.0, northSpan/eqSpan, 1e-6)
}

func TestNewBoundingBox_RejectsNearPole(t *testing.T) {
	for _, lat := range []float64{90, -90, 89.95, -89.95} {
		_, err := NewBoundingBox(lat, 0, 1.0)
		assert.ErrorIs(t, err, ErrLatitudeOutOfRange, "lat %v", lat)
	}

	_, err := NewBoundingBox(89.9, 0, 1.0)
	assert.NoError(t, err)
}

func TestAOI_AxisOrder(t *testing.T) {
	box := BoundingBox{South: 1, West: 2, North: 3, East: 4}
	aoi := box.AOI()

	// orb bounds are (lon, lat): Min is west/south, Max is east/north.
	assert.Equal(t, 2.0, aoi.Min.Lon())
	assert.Equal(t, 1.0, aoi.Min.Lat())
	assert.Equal(t, 4.0, aoi.Max.Lon())
	assert.Equal(t, 3.0, aoi.Max.Lat())
	assert.False(t, aoi.IsEmpty())
}

func TestNewBoundingBox_NoNaN(t *testing.T) {
	box, err := NewBoundingBox(89.9, 10, 10)
	require.NoError(t, err)
	for _, v := range []float64{box.South, box.West, box.North, box.East} {
		assert.False(t, math.IsNaN(v) || math.IsInf(v, 0))
	}
}
