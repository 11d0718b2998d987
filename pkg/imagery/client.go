// Package imagery provides a client for the satellite imagery processing
// service that backs surface temperature retrieval.
package imagery

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rotisserie/eris"
	"golang.org/x/oauth2"
)

// ErrNoScenes is returned when a scene query matches nothing within its
// filters.
var ErrNoScenes = eris.New("imagery: no scenes match the query")

// APIError is a failure reported by the imagery service itself, as opposed to
// transport or local errors.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("imagery service returned status %d: %s", e.StatusCode, e.Message)
}

// Client performs imagery processing operations. Implementations must be safe
// for concurrent use; one client instance is constructed at startup and
// injected into the temperature pipeline.
type Client interface {
	// LeastCloudyScene returns the scene with the lowest cloud cover among
	// those matching the query, or ErrNoScenes.
	LeastCloudyScene(ctx context.Context, q SceneQuery) (*Scene, error)

	// RegionStatistics reduces a calibrated band to min/max/mean over a region.
	RegionStatistics(ctx context.Context, q StatisticsQuery) (*RegionStats, error)

	// SamplePoints samples a calibrated band on a regular grid over a region.
	// Pixels with no value are omitted from the result.
	SamplePoints(ctx context.Context, q SampleQuery) ([]PointSample, error)
}

// Option configures the client.
type Option func(*httpClient)

// WithHTTPClient overrides the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *httpClient) {
		c.http = hc
	}
}

// WithTokenSource sets the bearer-token source for request auth.
func WithTokenSource(ts oauth2.TokenSource) Option {
	return func(c *httpClient) {
		c.tokens = ts
	}
}

type httpClient struct {
	baseURL string
	http    *http.Client
	tokens  oauth2.TokenSource
}

// NewClient creates an imagery service client for the given base URL.
func NewClient(baseURL string, opts ...Option) Client {
	c := &httpClient{
		baseURL: baseURL,
		http: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

type sceneSearchResponse struct {
	Scenes []Scene `json:"scenes"`
}

func (c *httpClient) LeastCloudyScene(ctx context.Context, q SceneQuery) (*Scene, error) {
	var result sceneSearchResponse
	if err := c.post(ctx, "/v1/scenes:search", q, &result); err != nil {
		return nil, err
	}
	if len(result.Scenes) == 0 {
		return nil, ErrNoScenes
	}
	// The service returns scenes sorted ascending by cloud cover.
	return &result.Scenes[0], nil
}

func (c *httpClient) RegionStatistics(ctx context.Context, q StatisticsQuery) (*RegionStats, error) {
	var result RegionStats
	if err := c.post(ctx, "/v1/scenes/"+q.SceneID+":reduce", q, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

type sampleResponse struct {
	Samples []PointSample `json:"samples"`
}

func (c *httpClient) SamplePoints(ctx context.Context, q SampleQuery) ([]PointSample, error) {
	var result sampleResponse
	if err := c.post(ctx, "/v1/scenes/"+q.SceneID+":sample", q, &result); err != nil {
		return nil, err
	}
	return result.Samples, nil
}

func (c *httpClient) post(ctx context.Context, path string, payload, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return eris.Wrap(err, "imagery: marshal request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return eris.Wrap(err, "imagery: create request")
	}
	req.Header.Set("Content-Type", "application/json")

	if c.tokens != nil {
		tok, err := c.tokens.Token()
		if err != nil {
			return eris.Wrap(err, "imagery: fetch access token")
		}
		tok.SetAuthHeader(req)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return eris.Wrap(err, "imagery: send request")
	}
	defer resp.Body.Close() //nolint:errcheck

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return eris.Wrap(err, "imagery: read response")
	}

	if resp.StatusCode != http.StatusOK {
		return &APIError{StatusCode: resp.StatusCode, Message: string(respBody)}
	}

	if err := json.Unmarshal(respBody, out); err != nil {
		return eris.Wrap(err, "imagery: unmarshal response")
	}

	return nil
}
