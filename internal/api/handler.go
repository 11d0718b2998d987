// Package api exposes the surface-layer generation endpoints.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/paulmach/orb/geojson"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/surface-labs/surface-layers/internal/geo"
	"github.com/surface-labs/surface-layers/internal/thermal"
	"github.com/surface-labs/surface-layers/pkg/imagery"
	"github.com/surface-labs/surface-layers/pkg/overpass"
)

// statusSuccess marks a fully assembled response payload.
const statusSuccess = "success"

// FeatureFetcher fetches raw OSM data for a query.
type FeatureFetcher interface {
	Fetch(ctx context.Context, query string) (*overpass.Response, error)
}

// TemperatureSampler retrieves the surface temperature readout for a box.
type TemperatureSampler interface {
	Sample(ctx context.Context, box geo.BoundingBox, sizeKM float64) (*thermal.Result, error)
}

// Handler serves the two surface-layer operations. It is stateless across
// requests; all state lives in the injected clients.
type Handler struct {
	fetcher FeatureFetcher
	sampler TemperatureSampler
}

// NewHandler creates a Handler over the given collaborators.
func NewHandler(fetcher FeatureFetcher, sampler TemperatureSampler) *Handler {
	return &Handler{fetcher: fetcher, sampler: sampler}
}

// LayerRequest is the shared input for both operations.
type LayerRequest struct {
	Lat    float64 `json:"lat"`
	Lon    float64 `json:"lon"`
	SizeKM float64 `json:"size_km"`
}

// Validate checks the request against the documented input ranges.
func (r LayerRequest) Validate() error {
	if r.Lat < -90 || r.Lat > 90 {
		return eris.New("lat must be between -90 and 90")
	}
	if r.Lon < -180 || r.Lon > 180 {
		return eris.New("lon must be between -180 and 180")
	}
	if r.SizeKM < 0.5 || r.SizeKM > 10 {
		return eris.New("size_km must be between 0.5 and 10")
	}
	return nil
}

// LayerResponse is the generate-layers payload.
type LayerResponse struct {
	SealedGeoJSON   *geojson.FeatureCollection `json:"sealed_geojson"`
	UnsealedGeoJSON *geojson.FeatureCollection `json:"unsealed_geojson"`
	Status          string                     `json:"status"`
	SealedCount     int                        `json:"sealed_count"`
	UnsealedCount   int                        `json:"unsealed_count"`
}

// TemperatureResponse is the surface-temperature payload.
type TemperatureResponse struct {
	TemperatureData *geojson.FeatureCollection `json:"temperature_data"`
	MinTemp         float64                    `json:"min_temp"`
	MaxTemp         float64                    `json:"max_temp"`
	MeanTemp        float64                    `json:"mean_temp"`
	Status          string                     `json:"status"`
	ImageDate       string                     `json:"image_date"`
}

// GenerateLayers handles POST /api/generate-layers: fetch OSM features for
// the requested box and partition them into sealed and unsealed collections.
func (h *Handler) GenerateLayers(w http.ResponseWriter, r *http.Request) {
	req, box, ok := h.decodeRequest(w, r)
	if !ok {
		return
	}

	query := overpass.BuildQuery(box.South, box.West, box.North, box.East)
	osmData, err := h.fetcher.Fetch(r.Context(), query)
	if err != nil {
		if eris.Is(err, overpass.ErrUnavailable) {
			writeError(w, http.StatusServiceUnavailable, "All Overpass API servers are unavailable")
			return
		}
		zap.L().Error("feature fetch failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Error fetching feature data")
		return
	}

	sealed, unsealed := geo.Classify(osmData)

	zap.L().Info("layers generated",
		zap.Float64("lat", req.Lat),
		zap.Float64("lon", req.Lon),
		zap.Float64("size_km", req.SizeKM),
		zap.Int("sealed", len(sealed.Features)),
		zap.Int("unsealed", len(unsealed.Features)),
	)

	writeJSON(w, http.StatusOK, LayerResponse{
		SealedGeoJSON:   sealed,
		UnsealedGeoJSON: unsealed,
		Status:          statusSuccess,
		SealedCount:     len(sealed.Features),
		UnsealedCount:   len(unsealed.Features),
	})
}

// SurfaceTemperature handles POST /api/surface-temperature: run the thermal
// pipeline and return the sampled grid plus summary statistics.
func (h *Handler) SurfaceTemperature(w http.ResponseWriter, r *http.Request) {
	req, box, ok := h.decodeRequest(w, r)
	if !ok {
		return
	}

	result, err := h.sampler.Sample(r.Context(), box, req.SizeKM)
	if err != nil {
		switch {
		case eris.Is(err, imagery.ErrNoScenes):
			writeError(w, http.StatusNotFound, "No cloud-free Landsat 8/9 L2 ST images in the last 6 months for this area.")
		case isImageryAPIError(err):
			zap.L().Error("imagery engine failure", zap.Error(err))
			writeError(w, http.StatusInternalServerError, "Imagery engine error: "+err.Error())
		default:
			zap.L().Error("temperature pipeline failed", zap.Error(err))
			writeError(w, http.StatusInternalServerError, "Error fetching temperature data: "+err.Error())
		}
		return
	}

	zap.L().Info("surface temperature sampled",
		zap.Float64("lat", req.Lat),
		zap.Float64("lon", req.Lon),
		zap.String("image_date", result.ImageDate),
		zap.Int("samples", len(result.Grid.Features)),
	)

	writeJSON(w, http.StatusOK, TemperatureResponse{
		TemperatureData: result.Grid,
		MinTemp:         result.Stats.Min,
		MaxTemp:         result.Stats.Max,
		MeanTemp:        result.Stats.Mean,
		Status:          statusSuccess,
		ImageDate:       result.ImageDate,
	})
}

// decodeRequest parses and validates the shared request body and derives the
// bounding box. Validation happens before any external call.
func (h *Handler) decodeRequest(w http.ResponseWriter, r *http.Request) (LayerRequest, geo.BoundingBox, bool) {
	var req LayerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return req, geo.BoundingBox{}, false
	}

	if err := req.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return req, geo.BoundingBox{}, false
	}

	box, err := geo.NewBoundingBox(req.Lat, req.Lon, req.SizeKM)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return req, geo.BoundingBox{}, false
	}

	return req, box, true
}

func isImageryAPIError(err error) bool {
	var apiErr *imagery.APIError
	return errors.As(err, &apiErr)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		zap.L().Error("encode response failed", zap.Error(err))
	}
}

func writeError(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}
