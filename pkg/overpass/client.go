package overpass

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"golang.org/x/time/rate"

	"github.com/surface-labs/surface-layers/internal/resilience"
)

// ErrUnavailable is returned when every configured interpreter endpoint
// failed. The individual causes are logged but deliberately not surfaced to
// callers.
var ErrUnavailable = eris.New("overpass: all interpreter endpoints unavailable")

// Options configures the Overpass client.
type Options struct {
	// Endpoints is the priority-ordered interpreter fallback chain.
	Endpoints []string
	Timeout   time.Duration
	UserAgent string
}

// Client posts queries to a prioritized list of Overpass interpreters,
// returning the first successfully parsed response. Attempts are sequential:
// one request in flight at a time, each bounded by the configured timeout.
type Client struct {
	http      *http.Client
	endpoints []string
	userAgent string
	limiter   *rate.Limiter
}

// NewClient creates an Overpass client for the given endpoint chain.
func NewClient(opts Options) *Client {
	if opts.Timeout == 0 {
		opts.Timeout = 90 * time.Second
	}
	if opts.UserAgent == "" {
		opts.UserAgent = "surface-layers/1.0"
	}
	return &Client{
		http: &http.Client{
			Timeout: opts.Timeout,
		},
		endpoints: opts.Endpoints,
		userAgent: opts.UserAgent,
		// Public interpreters ask clients to stay around one query per second.
		limiter: rate.NewLimiter(1, 2),
	}
}

// Fetch posts the query to each endpoint in order and returns the first
// successful response. It fails with ErrUnavailable only when every endpoint
// failed; there are no per-endpoint retries and no backoff.
func (c *Client) Fetch(ctx context.Context, query string) (*Response, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, eris.Wrap(err, "overpass: rate limiter wait")
	}

	cfg := resilience.FallbackConfig{OnFailure: resilience.FailureLogger("overpass")}
	resp, err := resilience.FirstSuccess(ctx, cfg, c.endpoints,
		func(endpoint string) string { return endpoint },
		func(ctx context.Context, endpoint string) (*Response, error) {
			return c.fetchOne(ctx, endpoint, query)
		})
	if err != nil {
		if eris.Is(err, context.Canceled) || eris.Is(err, context.DeadlineExceeded) {
			return nil, eris.Wrap(err, "overpass: fetch")
		}
		return nil, ErrUnavailable
	}
	return resp, nil
}

// fetchOne performs a single interpreter call.
func (c *Client) fetchOne(ctx context.Context, endpoint, query string) (*Response, error) {
	form := url.Values{"data": {query}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, eris.Wrap(err, "overpass: build request")
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, eris.Wrap(err, "overpass: send request")
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, eris.Errorf("overpass: unexpected status %d from %s", resp.StatusCode, endpoint)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, eris.Wrap(err, "overpass: read response")
	}

	var parsed Response
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, eris.Wrap(err, "overpass: parse response")
	}

	return &parsed, nil
}
