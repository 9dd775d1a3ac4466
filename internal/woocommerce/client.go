package woocommerce

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"wc-order-export/internal/config"

	"github.com/rs/zerolog"
)

// apiPrefix is the versioned REST namespace all endpoints live under.
const apiPrefix = "/wp-json/wc/v3"

// StatusError reports a non-success HTTP response from the store API. It is
// never handled below the top level: a failed fetch aborts the whole run
// before any output is written.
type StatusError struct {
	StatusCode int
	Method     string
	URL        string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s %s returned status %d", e.Method, e.URL, e.StatusCode)
}

// Client performs authenticated requests against a WooCommerce REST API.
type Client struct {
	baseURL        string
	consumerKey    string
	consumerSecret string
	maxPages       int
	httpClient     *http.Client
	logger         zerolog.Logger
}

// NewClient creates a new store API client.
func NewClient(cfg config.StoreConfig, logger zerolog.Logger) *Client {
	return &Client{
		baseURL:        strings.TrimRight(cfg.BaseURL, "/"),
		consumerKey:    cfg.ConsumerKey,
		consumerSecret: cfg.ConsumerSecret,
		maxPages:       cfg.MaxPages,
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second,
		},
		logger: logger.With().Str("component", "wc-client").Logger(),
	}
}

// Get issues one authenticated GET against the versioned API namespace and
// returns the raw response body. A 4xx/5xx status yields a *StatusError; the
// body is returned as-is otherwise, decoding is the caller's concern.
func (c *Client) Get(ctx context.Context, endpoint string, params url.Values) ([]byte, error) {
	reqURL := c.baseURL + apiPrefix + endpoint
	if len(params) > 0 {
		reqURL += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request for %s: %w", endpoint, err)
	}
	req.SetBasicAuth(c.consumerKey, c.consumerSecret)

	c.logger.Debug().Str("endpoint", endpoint).Msg("fetching")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request to %s failed: %w", endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		c.logger.Error().
			Int("status", resp.StatusCode).
			Str("endpoint", endpoint).
			Msg("store API returned an error status")
		return nil, &StatusError{
			StatusCode: resp.StatusCode,
			Method:     http.MethodGet,
			URL:        reqURL,
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response from %s: %w", endpoint, err)
	}

	return body, nil
}
