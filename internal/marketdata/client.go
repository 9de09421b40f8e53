package marketdata

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"tradejournal/internal/config"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// ClientInterface defines the interface for the public quote API client.
type ClientInterface interface {
	Ping(ctx context.Context) error
	GetSimplePrices(ctx context.Context, ids []string) (map[string]float64, error)
}

// Client fetches spot quotes from a CoinGecko-compatible public API for the
// journal's watchlist. The API is unauthenticated and aggressively rate
// limited, so every request goes through a local limiter plus retry with
// backoff.
type Client struct {
	client   *resty.Client
	logger   *zap.Logger
	limiter  *rate.Limiter
	currency string
}

// ensure Client implements the interface
var _ ClientInterface = (*Client)(nil)

// NewClient creates a new quote API client.
func NewClient(cfg *config.MarketData, logger *zap.Logger) *Client {
	client := resty.New().SetBaseURL(cfg.BaseURL)
	limiter := rate.NewLimiter(rate.Limit(cfg.RateLimit), cfg.RateLimitBurst)

	return &Client{
		client:   client,
		logger:   logger,
		limiter:  limiter,
		currency: cfg.Currency,
	}
}

// Ping checks connectivity to the quote API.
func (c *Client) Ping(ctx context.Context) error {
	req := c.client.R().SetContext(ctx)
	if _, err := c.doRequest(ctx, "GET", "/ping", req); err != nil {
		return fmt.Errorf("failed to ping quote api: %w", err)
	}
	return nil
}

// GetSimplePrices fetches the latest price for the given instrument ids in
// the configured display currency.
func (c *Client) GetSimplePrices(ctx context.Context, ids []string) (map[string]float64, error) {
	var result map[string]map[string]float64

	req := c.client.R().
		SetContext(ctx).
		SetResult(&result).
		SetQueryParam("ids", strings.Join(ids, ",")).
		SetQueryParam("vs_currencies", c.currency)

	if _, err := c.doRequest(ctx, "GET", "/simple/price", req); err != nil {
		return nil, fmt.Errorf("failed to get prices: %w", err)
	}

	prices := make(map[string]float64, len(result))
	for id, quote := range result {
		if p, ok := quote[c.currency]; ok {
			prices[id] = p
		}
	}
	return prices, nil
}

// doRequest handles the actual request execution with rate limiting and retry logic.
func (c *Client) doRequest(ctx context.Context, method, url string, req *resty.Request) (*resty.Response, error) {
	var resp *resty.Response
	var err error
	const maxRetries = 3

	for i := 0; i < maxRetries; i++ {
		// Wait for the rate limiter
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter wait failed: %w", err)
		}

		c.logger.Debug("Executing request", zap.String("method", method), zap.String("url", c.client.BaseURL+url))
		resp, err = req.Execute(method, url)

		if err == nil && !resp.IsError() {
			return resp, nil // Success
		}

		// Analyze error and decide whether to retry
		shouldRetry := false
		var retryAfter time.Duration

		if resp != nil {
			statusCode := resp.StatusCode()
			if statusCode == http.StatusTooManyRequests {
				shouldRetry = true
				retryAfterHeader := resp.Header().Get("Retry-After")
				if seconds, err := strconv.Atoi(retryAfterHeader); err == nil {
					retryAfter = time.Duration(seconds) * time.Second
				}
			} else if statusCode >= 500 { // Server errors
				shouldRetry = true
			}
		} else { // Network or other client-side errors
			shouldRetry = true
		}

		if !shouldRetry {
			return nil, fmt.Errorf("request failed with status %s: %s", resp.Status(), resp.String())
		}

		if retryAfter == 0 {
			// Exponential backoff: 1s, 2s, 4s
			retryAfter = time.Duration(math.Pow(2, float64(i))) * time.Second
		}

		c.logger.Warn("Request failed, retrying...",
			zap.Int("attempt", i+1),
			zap.Duration("retry_after", retryAfter),
			zap.Error(err),
		)

		select {
		case <-time.After(retryAfter):
			continue
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	return nil, fmt.Errorf("request failed after %d attempts: %w", maxRetries, err)
}
