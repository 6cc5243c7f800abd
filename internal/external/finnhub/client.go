// Package finnhub is the primary market data provider: company news and
// daily candles.
package finnhub

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"golang.org/x/time/rate"

	"github.com/ekurt/newspulse/pkg/config"
	"github.com/ekurt/newspulse/pkg/httputil"
	"github.com/ekurt/newspulse/pkg/logger"
)

// Client handles communication with the Finnhub REST API
// SSOT: all Finnhub calls go through this client
type Client struct {
	httpClient *httputil.Client
	logger     *logger.Logger
	limiter    *rate.Limiter
	baseURL    string
	apiKey     string
}

// NewClient creates a Finnhub client. The in-process limiter keeps a
// single instance inside the free-tier budget even when the shared
// Redis limiter is disabled.
func NewClient(cfg *config.Config, httpClient *httputil.Client, log *logger.Logger) *Client {
	perMinute := cfg.Finnhub.RateLimit
	if perMinute <= 0 {
		perMinute = 50
	}

	return &Client{
		httpClient: httpClient,
		logger:     log,
		limiter:    rate.NewLimiter(rate.Limit(float64(perMinute)/60.0), perMinute),
		baseURL:    cfg.Finnhub.BaseURL,
		apiKey:     cfg.Finnhub.APIKey,
	}
}

// getJSON performs a rate-limited GET and decodes the JSON response
func (c *Client) getJSON(ctx context.Context, path string, params url.Values, dest interface{}) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit wait failed: %w", err)
	}

	params.Set("token", c.apiKey)
	fullURL := fmt.Sprintf("%s%s?%s", c.baseURL, path, params.Encode())

	resp, err := c.httpClient.Get(ctx, fullURL)
	if err != nil {
		return fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("unexpected status code %d: %s", resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("decode response failed: %w", err)
	}

	return nil
}
