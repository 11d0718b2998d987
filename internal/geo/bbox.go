// Package geo provides bounding-box math and surface classification for OSM
// features.
package geo

import (
	"math"

	"github.com/paulmach/orb"
	"github.com/rotisserie/eris"
)

// kmPerDegree is the approximate ground distance of one degree of latitude.
const kmPerDegree = 111.0

// maxCenterLat bounds the center latitude so the meridian-convergence factor
// cos(lat) stays away from zero. Beyond it the longitude span is undefined.
const maxCenterLat = 89.9

// ErrLatitudeOutOfRange is returned for center latitudes too close to a pole.
var ErrLatitudeOutOfRange = eris.New("geo: center latitude must be within ±89.9 degrees")

// BoundingBox is a geographic box in degrees. Invariant: South < North and
// West < East. Values are request-scoped and never mutated after creation.
type BoundingBox struct {
	South float64
	West  float64
	North float64
	East  float64
}

// NewBoundingBox derives the box for a square of sizeKM kilometers centered
// on (lat, lon). The longitude offset is corrected for meridian convergence
// by cos(lat), so latitudes within 0.1 degree of a pole are rejected.
func NewBoundingBox(lat, lon, sizeKM float64) (BoundingBox, error) {
	if math.Abs(lat) > maxCenterLat {
		return BoundingBox{}, ErrLatitudeOutOfRange
	}

	halfKM := sizeKM / 2
	latOffset := halfKM / kmPerDegree
	lonOffset := halfKM / (kmPerDegree * math.Cos(lat*math.Pi/180))

	return BoundingBox{
		South: lat - latOffset,
		West:  lon - lonOffset,
		North: lat + latOffset,
		East:  lon + lonOffset,
	}, nil
}

// AOI returns the box as an orb.Bound. Note the axis order: orb bounds are
// (lon, lat) min/max, i.e. west/south to east/north.
func (b BoundingBox) AOI() orb.Bound {
	return orb.Bound{
		Min: orb.Point{b.West, b.South},
		Max: orb.Point{b.East, b.North},
	}
}
