// Package mocks provides test doubles for the imagery client.
package mocks

import (
	"context"

	mock "github.com/stretchr/testify/mock"

	imagery "github.com/surface-labs/surface-layers/pkg/imagery"
)

// MockClient is a mock type for the Client interface.
type MockClient struct {
	mock.Mock
}

// LeastCloudyScene provides a mock function with given fields: ctx, q
func (_m *MockClient) LeastCloudyScene(ctx context.Context, q imagery.SceneQuery) (*imagery.Scene, error) {
	ret := _m.Called(ctx, q)

	if len(ret) == 0 {
		panic("no return value specified for LeastCloudyScene")
	}

	var r0 *imagery.Scene
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context, imagery.SceneQuery) (*imagery.Scene, error)); ok {
		return rf(ctx, q)
	}
	if rf, ok := ret.Get(0).(func(context.Context, imagery.SceneQuery) *imagery.Scene); ok {
		r0 = rf(ctx, q)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).(*imagery.Scene)
		}
	}

	if rf, ok := ret.Get(1).(func(context.Context, imagery.SceneQuery) error); ok {
		r1 = rf(ctx, q)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// RegionStatistics provides a mock function with given fields: ctx, q
func (_m *MockClient) RegionStatistics(ctx context.Context, q imagery.StatisticsQuery) (*imagery.RegionStats, error) {
	ret := _m.Called(ctx, q)

	if len(ret) == 0 {
		panic("no return value specified for RegionStatistics")
	}

	var r0 *imagery.RegionStats
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context, imagery.StatisticsQuery) (*imagery.RegionStats, error)); ok {
		return rf(ctx, q)
	}
	if rf, ok := ret.Get(0).(func(context.Context, imagery.StatisticsQuery) *imagery.RegionStats); ok {
		r0 = rf(ctx, q)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).(*imagery.RegionStats)
		}
	}

	if rf, ok := ret.Get(1).(func(context.Context, imagery.StatisticsQuery) error); ok {
		r1 = rf(ctx, q)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// SamplePoints provides a mock function with given fields: ctx, q
func (_m *MockClient) SamplePoints(ctx context.Context, q imagery.SampleQuery) ([]imagery.PointSample, error) {
	ret := _m.Called(ctx, q)

	if len(ret) == 0 {
		panic("no return value specified for SamplePoints")
	}

	var r0 []imagery.PointSample
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context, imagery.SampleQuery) ([]imagery.PointSample, error)); ok {
		return rf(ctx, q)
	}
	if rf, ok := ret.Get(0).(func(context.Context, imagery.SampleQuery) []imagery.PointSample); ok {
		r0 = rf(ctx, q)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).([]imagery.PointSample)
		}
	}

	if rf, ok := ret.Get(1).(func(context.Context, imagery.SampleQuery) error); ok {
		r1 = rf(ctx, q)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}
