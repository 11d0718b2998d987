package thermal

import (
	"context"
	"testing"
	"time"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/surface-labs/surface-layers/internal/geo"
	"github.com/surface-labs/surface-layers/pkg/imagery"
	"github.com/surface-labs/surface-layers/pkg/imagery/mocks"
)

var testBox = geo.BoundingBox{South: 48.2, West: 16.3, North: 48.3, East: 16.4}

func fixedSampler(client imagery.Client) *Sampler {
	s := NewSampler(client)
	s.now = func() time.Time {
		return time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	}
	return s
}

func TestSampleScale(t *testing.T) {
	// 5 km over a 50-point grid samples at 100 m.
	assert.Equal(t, 100.0, SampleScale(5))
	// Small areas clamp to the 30 m native resolution.
	assert.Equal(t, 30.0, SampleScale(1))
	assert.Equal(t, 30.0, SampleScale(0.5))
	assert.Equal(t, 200.0, SampleScale(10))
}

func TestCelsiusCalibration(t *testing.T) {
	cal := celsiusCalibration()
	assert.InDelta(t, -124.15, cal.Apply(0), 1e-9)
}

func TestSample_FullPipeline(t *testing.T) {
	client := &mocks.MockClient{}

	scene := &imagery.Scene{
		ID:         "LC09_191027_20260712",
		CaptureAt:  time.Date(2026, 7, 12, 9, 45, 0, 0, time.UTC),
		CloudCover: 3.1,
	}
	client.On("LeastCloudyScene", mock.Anything, mock.MatchedBy(func(q imagery.SceneQuery) bool {
		return len(q.Collections) == 2 &&
			q.Collections[0] == "LANDSAT/LC08/C02/T1_L2" &&
			q.Collections[1] == "LANDSAT/LC09/C02/T1_L2" &&
			q.MaxCloudCover == 20.0 &&
			q.Region.West == 16.3 && q.Region.South == 48.2 &&
			q.End.Sub(q.Start) > 0 &&
			q.End.Equal(time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC))
	})).Return(scene, nil)

	client.On("RegionStatistics", mock.Anything, mock.MatchedBy(func(q imagery.StatisticsQuery) bool {
		return q.SceneID == scene.ID &&
			q.Band == "ST_B10" &&
			q.ScaleMeters == 30.0 &&
			q.MaxPixels == int64(1e9)
	})).Return(&imagery.RegionStats{Min: 18.4482, Max: 41.2351, Mean: 27.935}, nil)

	client.On("SamplePoints", mock.Anything, mock.MatchedBy(func(q imagery.SampleQuery) bool {
		return q.SceneID == scene.ID && q.ScaleMeters == 100.0
	})).Return([]imagery.PointSample{
		{Longitude: 16.35, Latitude: 48.25, Value: 31.456},
		{Longitude: 16.36, Latitude: 48.25, Value: 29.901},
	}, nil)

	result, err := fixedSampler(client).Sample(context.Background(), testBox, 5.0)
	require.NoError(t, err)

	assert.Equal(t, "2026-07-12", result.ImageDate)
	assert.Equal(t, 18.45, result.Stats.Min)
	assert.Equal(t, 41.24, result.Stats.Max)
	assert.Equal(t, 27.94, result.Stats.Mean)
	assert.Len(t, result.Grid.Features, 2)
	assert.Equal(t, 31.46, result.Grid.Features[0].Properties["temperature"])

	client.AssertExpectations(t)
}

func TestSample_SquareGeometry(t *testing.T) {
	client := &mocks.MockClient{}
	client.On("LeastCloudyScene", mock.Anything, mock.Anything).
		Return(&imagery.Scene{ID: "scene", CaptureAt: time.Unix(0, 0).UTC()}, nil)
	client.On("RegionStatistics", mock.Anything, mock.Anything).
		Return(&imagery.RegionStats{}, nil)
	client.On("SamplePoints", mock.Anything, mock.Anything).
		Return([]imagery.PointSample{{Longitude: 16.37, Latitude: 48.21, Value: 30}}, nil)

	result, err := fixedSampler(client).Sample(context.Background(), testBox, 5.0)
	require.NoError(t, err)
	require.Len(t, result.Grid.Features, 1)

	poly, ok := result.Grid.Features[0].Geometry.(orb.Polygon)
	require.True(t, ok)
	ring := poly[0]
	require.Len(t, ring, 5)

	// Half-width for a 100 m scale: 100/111320 degrees.
	half := 100.0 / 111320.0
	assert.InDelta(t, 0.000898, half, 1e-6)
	assert.InDelta(t, 16.37-half, ring[0][0], 1e-12)
	assert.InDelta(t, 48.21-half, ring[0][1], 1e-12)
	assert.Equal(t, ring[0], ring[4])

	// Square spans exactly twice the half-width on both axes.
	assert.InDelta(t, 2*half, ring[1][0]-ring[0][0], 1e-12)
	assert.InDelta(t, 2*half, ring[2][1]-ring[1][1], 1e-12)
}

func TestSample_NoImagery(t *testing.T) {
	client := &mocks.MockClient{}
	client.On("LeastCloudyScene", mock.Anything, mock.Anything).
		Return(nil, imagery.ErrNoScenes)

	_, err := fixedSampler(client).Sample(context.Background(), testBox, 1.0)
	assert.ErrorIs(t, err, imagery.ErrNoScenes)
}

func TestSample_StatsFailure(t *testing.T) {
	client := &mocks.MockClient{}
	client.On("LeastCloudyScene", mock.Anything, mock.Anything).
		Return(&imagery.Scene{ID: "scene"}, nil)
	client.On("RegionStatistics", mock.Anything, mock.Anything).
		Return(nil, &imagery.APIError{StatusCode: 500, Message: "reducer failed"})

	_, err := fixedSampler(client).Sample(context.Background(), testBox, 1.0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "region statistics")

	var apiErr *imagery.APIError
	assert.ErrorAs(t, err, &apiErr)
}

func TestSample_EmptySamples(t *testing.T) {
	client := &mocks.MockClient{}
	client.On("LeastCloudyScene", mock.Anything, mock.Anything).
		Return(&imagery.Scene{ID: "scene"}, nil)
	client.On("RegionStatistics", mock.Anything, mock.Anything).
		Return(&imagery.RegionStats{Min: 1, Max: 2, Mean: 1.5}, nil)
	client.On("SamplePoints", mock.Anything, mock.Anything).
		Return([]imagery.PointSample{}, nil)

	result, err := fixedSampler(client).Sample(context.Background(), testBox, 1.0)
	require.NoError(t, err)
	assert.Empty(t, result.Grid.Features)
	assert.Equal(t, 1.5, result.Stats.Mean)
}
