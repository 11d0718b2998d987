package imagery

import "time"

// Region is a geographic rectangle in degrees. Axis order follows the
// geometry-constructor convention: west/south/east/north.
type Region struct {
	West  float64 `json:"west"`
	South float64 `json:"south"`
	East  float64 `json:"east"`
	North float64 `json:"north"`
}

// Calibration is a linear transform applied to raw band values before
// reduction or sampling: value = raw*Scale + Offset.
type Calibration struct {
	Scale  float64 `json:"scale"`
	Offset float64 `json:"offset"`
}

// Apply converts a raw digital number to a calibrated value.
func (c Calibration) Apply(raw float64) float64 {
	return raw*c.Scale + c.Offset
}

// SceneQuery selects scenes from one or more collections by area, date
// window, and cloud cover.
type SceneQuery struct {
	Collections   []string  `json:"collections"`
	Region        Region    `json:"region"`
	Start         time.Time `json:"start"`
	End           time.Time `json:"end"`
	MaxCloudCover float64   `json:"max_cloud_cover"`
}

// Scene identifies a single selected scene.
type Scene struct {
	ID         string    `json:"id"`
	CaptureAt  time.Time `json:"capture_at"`
	CloudCover float64   `json:"cloud_cover"`
}

// CaptureDate formats the scene's capture timestamp as YYYY-MM-DD.
func (s Scene) CaptureDate() string {
	return s.CaptureAt.Format("2006-01-02")
}

// StatisticsQuery requests min/max/mean of a calibrated band over a region.
type StatisticsQuery struct {
	SceneID     string      `json:"scene_id"`
	Band        string      `json:"band"`
	Calibration Calibration `json:"calibration"`
	Region      Region      `json:"region"`
	ScaleMeters float64     `json:"scale_meters"`
	MaxPixels   int64       `json:"max_pixels"`
}

// RegionStats holds reduced band statistics over a region.
type RegionStats struct {
	Min  float64 `json:"min"`
	Max  float64 `json:"max"`
	Mean float64 `json:"mean"`
}

// SampleQuery requests calibrated point samples on a regular grid across a
// region at the given ground scale.
type SampleQuery struct {
	SceneID     string      `json:"scene_id"`
	Band        string      `json:"band"`
	Calibration Calibration `json:"calibration"`
	Region      Region      `json:"region"`
	ScaleMeters float64     `json:"scale_meters"`
}

// PointSample is a geolocated calibrated band value.
type PointSample struct {
	Longitude float64 `json:"lon"`
	Latitude  float64 `json:"lat"`
	Value     float64 `json:"value"`
}
