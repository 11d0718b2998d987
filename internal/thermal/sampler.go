// Package thermal retrieves Landsat surface temperature for an area of
// interest and synthesizes a sampled polygon grid.
package thermal

import (
	"context"
	"math"
	"time"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/rotisserie/eris"

	"github.com/surface-labs/surface-layers/internal/geo"
	"github.com/surface-labs/surface-layers/pkg/imagery"
)

// Landsat 8 and 9 Collection 2 Level-2 archives, both carrying the ST_B10
// surface temperature band.
var landsatCollections = []string{
	"LANDSAT/LC08/C02/T1_L2",
	"LANDSAT/LC09/C02/T1_L2",
}

const (
	thermalBand   = "ST_B10"
	maxCloudCover = 20.0

	// Landsat C02 L2 ST_B10 linear calibration to Kelvin.
	calibrationScale  = 0.00341802
	calibrationOffset = 149.0
	kelvinOffset      = 273.15

	// Scene search window, trailing from now.
	searchWindowMonths = 6

	// Reduction runs at the band's 30 m nominal resolution with a hard
	// pixel budget.
	nativeScaleMeters = 30.0
	maxPixels         = int64(1e9)

	// Sampling grid dimension. The grid only sets the sampling scale; the
	// backend returns however many valued pixels the scale yields.
	gridSize = 50

	// Approximate meters per degree for synthesizing sample squares. The
	// conversion distorts at high latitudes and squares overlap slightly
	// rather than tile exactly.
	metersPerDegree = 111320.0
)

// celsiusCalibration converts raw ST_B10 digital numbers straight to Celsius:
// Kelvin = raw*scale + offset, Celsius = Kelvin - 273.15.
func celsiusCalibration() imagery.Calibration {
	return imagery.Calibration{
		Scale:  calibrationScale,
		Offset: calibrationOffset - kelvinOffset,
	}
}

// SampleScale returns the grid sampling scale in meters for a region of the
// given size, never finer than the sensor's native resolution.
func SampleScale(sizeKM float64) float64 {
	return math.Max(sizeKM*1000.0/gridSize, nativeScaleMeters)
}

// Result is a complete surface temperature readout for one area of interest.
type Result struct {
	Grid      *geojson.FeatureCollection
	Stats     imagery.RegionStats
	ImageDate string
}

// Sampler runs the surface temperature pipeline against an imagery client.
type Sampler struct {
	client imagery.Client
	now    func() time.Time
}

// NewSampler creates a Sampler over the given imagery client.
func NewSampler(client imagery.Client) *Sampler {
	return &Sampler{client: client, now: time.Now}
}

// Sample retrieves calibrated surface temperature for the bounding box:
// least-cloudy scene within the trailing window, region statistics, and a
// sampled square-polygon grid. The imagery calls are sequential; each is
// bounded only by the client's own timeout.
func (s *Sampler) Sample(ctx context.Context, box geo.BoundingBox, sizeKM float64) (*Result, error) {
	region := imagery.Region{
		West:  box.West,
		South: box.South,
		East:  box.East,
		North: box.North,
	}

	end := s.now().UTC()
	start := end.AddDate(0, -searchWindowMonths, 0)

	scene, err := s.client.LeastCloudyScene(ctx, imagery.SceneQuery{
		Collections:   landsatCollections,
		Region:        region,
		Start:         start,
		End:           end,
		MaxCloudCover: maxCloudCover,
	})
	if err != nil {
		if eris.Is(err, imagery.ErrNoScenes) {
			return nil, err
		}
		return nil, eris.Wrap(err, "thermal: scene lookup")
	}

	cal := celsiusCalibration()

	stats, err := s.client.RegionStatistics(ctx, imagery.StatisticsQuery{
		SceneID:     scene.ID,
		Band:        thermalBand,
		Calibration: cal,
		Region:      region,
		ScaleMeters: nativeScaleMeters,
		MaxPixels:   maxPixels,
	})
	if err != nil {
		return nil, eris.Wrap(err, "thermal: region statistics")
	}

	scale := SampleScale(sizeKM)
	samples, err := s.client.SamplePoints(ctx, imagery.SampleQuery{
		SceneID:     scene.ID,
		Band:        thermalBand,
		Calibration: cal,
		Region:      region,
		ScaleMeters: scale,
	})
	if err != nil {
		return nil, eris.Wrap(err, "thermal: sample points")
	}

	return &Result{
		Grid: buildGrid(samples, scale),
		Stats: imagery.RegionStats{
			Min:  round2(stats.Min),
			Max:  round2(stats.Max),
			Mean: round2(stats.Mean),
		},
		ImageDate: scene.CaptureDate(),
	}, nil
}

// buildGrid synthesizes a square polygon centered on each sample point. The
// half-width matches the sampling scale so neighboring squares form
// continuous coverage.
func buildGrid(samples []imagery.PointSample, scaleMeters float64) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	half := scaleMeters / metersPerDegree

	for _, sample := range samples {
		lon, lat := sample.Longitude, sample.Latitude
		square := orb.Polygon{orb.Ring{
			{lon - half, lat - half},
			{lon + half, lat - half},
			{lon + half, lat + half},
			{lon - half, lat + half},
			{lon - half, lat - half},
		}}

		feature := geojson.NewFeature(square)
		feature.Properties = geojson.Properties{
			"temperature": round2(sample.Value),
		}
		fc.Append(feature)
	}

	return fc
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
