// Package uis is the HTTP transport to the UNESCO Institute for
// Statistics SDMX API. It owns the connection concerns the core stays
// clear of: URL construction, the subscription key, throttling and
// timeouts. Payloads are handed back raw; all interpretation happens in
// the core's translate service.
package uis

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/edstats-labs/uisdata-cli/internal/core/domain"
	"github.com/edstats-labs/uisdata-cli/internal/core/ports/driven"
	"github.com/edstats-labs/uisdata-cli/internal/logger"
)

// Ensure Client implements the interface.
var _ driven.Provider = (*Client)(nil)

// Default configuration values.
const (
	// DefaultBaseURL is the education statistics dataflow endpoint.
	DefaultBaseURL = "https://api.uis.unesco.org/sdmx/data/UNESCO,EDU_NON_FINANCE,3.0"

	// DefaultTimeout bounds a single request. Large multi-country
	// queries are slow on the provider side.
	DefaultTimeout = 60 * time.Second

	// DefaultRequestsPerSecond throttles proactively; the API has no
	// documented limit but degrades under bursts.
	DefaultRequestsPerSecond = 2
)

// Config holds configuration for the UIS API client.
type Config struct {
	// BaseURL is the dataflow endpoint (default: DefaultBaseURL).
	BaseURL string

	// SubscriptionKey authenticates requests. The client passes it
	// through without validating it; an invalid key surfaces as an HTTP
	// error from the provider.
	SubscriptionKey string

	// Timeout is the per-request timeout (default: DefaultTimeout).
	Timeout time.Duration

	// RequestsPerSecond overrides the proactive throttle when positive.
	RequestsPerSecond float64
}

// Client performs requests against the UIS SDMX API.
type Client struct {
	client          *http.Client
	baseURL         string
	subscriptionKey string
	limiter         *rate.Limiter
}

// NewClient creates a UIS API client.
func NewClient(cfg Config) *Client {
	base := cfg.BaseURL
	if base == "" {
		base = DefaultBaseURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	rps := cfg.RequestsPerSecond
	if rps <= 0 {
		rps = DefaultRequestsPerSecond
	}
	return &Client{
		client:          &http.Client{Timeout: timeout},
		baseURL:         strings.TrimRight(base, "/"),
		subscriptionKey: cfg.SubscriptionKey,
		limiter:         rate.NewLimiter(rate.Limit(rps), 1),
	}
}

// Data fetches the observations selected by the parameter set.
func (c *Client) Data(ctx context.Context, params domain.ParamSet) (*domain.Message, error) {
	return c.get(ctx, params)
}

// Dimensions discovers the dataflow's ordered dimension list via a
// keys-only query. The list is returned exactly as the provider reports
// it, time-period pseudo-dimension included.
func (c *Client) Dimensions(ctx context.Context) ([]string, error) {
	msg, err := c.get(ctx, domain.ParamSet{Detail: domain.DetailSeriesKeysOnly})
	if err != nil {
		return nil, err
	}
	observation := msg.Structure.Dimensions.Observation
	if len(observation) == 0 {
		return nil, fmt.Errorf("discovery returned no dimensions: %w", domain.ErrMalformedResponse)
	}
	dims := make([]string, len(observation))
	for i, dim := range observation {
		dims[i] = dim.ID
	}
	return dims, nil
}

func (c *Client) get(ctx context.Context, params domain.ParamSet) (*domain.Message, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	endpoint := c.baseURL
	if params.FilterPath != "" {
		endpoint += "/" + url.PathEscape(params.FilterPath)
	}
	query := params.Query()
	if c.subscriptionKey != "" {
		query.Set("subscription-key", c.subscriptionKey)
	}

	requestID := uuid.NewString()
	logger.Section("Provider Request")
	logger.Debug("[%s] GET %s", requestID, endpoint)
	logger.Debug("[%s] params: startPeriod=%s endPeriod=%s detail=%s",
		requestID, params.StartPeriod, params.EndPeriod, params.Detail)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+query.Encode(), http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("uis request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		logger.Warn("[%s] HTTP %d: %s", requestID, resp.StatusCode, string(body))
		return nil, fmt.Errorf("uis request failed with status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var msg domain.Message
	if err := json.NewDecoder(resp.Body).Decode(&msg); err != nil {
		return nil, fmt.Errorf("decoding response: %w", domain.ErrMalformedResponse)
	}
	logger.Info("[%s] OK", requestID)
	return &msg, nil
}
