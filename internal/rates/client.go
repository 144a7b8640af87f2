// Package rates resolves exchange rates to USD from the free
// ExchangeRate-API feed. The feed publishes a single USD-base document,
// so one successful fetch caches the full rate table for the lifetime of
// the client.
package rates

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/shopspring/decimal"
)

// DefaultEndpoint is ExchangeRate-API's free USD-base endpoint.
const DefaultEndpoint = "https://open.er-api.com/v6/latest/USD"

// ErrUnknownCurrency is returned when the feed carries no rate for the
// requested currency.
var ErrUnknownCurrency = errors.New("unknown currency")

const maxFetchRetries = 3

type Client struct {
	httpClient *http.Client
	endpoint   string

	mu    sync.Mutex
	toUSD map[string]decimal.Decimal
}

// NewClient creates a rates client. An empty endpoint selects
// DefaultEndpoint.
func NewClient(endpoint string) *Client {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	return &Client{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		endpoint:   endpoint,
		toUSD:      make(map[string]decimal.Decimal),
	}
}

type ratesResponse struct {
	Result string             `json:"result"`
	Rates  map[string]float64 `json:"rates"`
}

// RateToUSD returns the multiplier converting one unit of the given
// currency to USD. Empty and "USD" currencies short-circuit to 1 without
// touching the network.
func (c *Client) RateToUSD(ctx context.Context, currency string) (decimal.Decimal, error) {
	currency = strings.ToUpper(strings.TrimSpace(currency))
	if currency == "" || currency == "USD" {
		return decimal.NewFromInt(1), nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if rate, ok := c.toUSD[currency]; ok {
		return rate, nil
	}

	if err := c.fetchLocked(ctx); err != nil {
		return decimal.Decimal{}, err
	}

	rate, ok := c.toUSD[currency]
	if !ok {
		return decimal.Decimal{}, fmt.Errorf("%w: %s", ErrUnknownCurrency, currency)
	}
	return rate, nil
}

// ConvertToUSD converts the amount to USD, rounded to cents to match the
// amount_usd column precision.
func (c *Client) ConvertToUSD(ctx context.Context, amount decimal.Decimal, currency string) (decimal.Decimal, error) {
	rate, err := c.RateToUSD(ctx, currency)
	if err != nil {
		return decimal.Decimal{}, err
	}
	return amount.Mul(rate).Round(2), nil
}

// fetchLocked downloads the full rate table, retrying transient failures
// with exponential backoff. Callers must hold c.mu.
func (c *Client) fetchLocked(ctx context.Context) error {
	operation := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint, nil)
		if err != nil {
			return backoff.Permanent(err)
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("rates endpoint returned status %d", resp.StatusCode)
		}

		var payload ratesResponse
		if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
			return err
		}
		if payload.Result != "success" {
			return fmt.Errorf("rates endpoint result %q", payload.Result)
		}

		one := decimal.NewFromInt(1)
		for currency, rate := range payload.Rates {
			if rate <= 0 {
				continue
			}
			// The feed is USD-base, so the to-USD rate is the inverse.
			c.toUSD[strings.ToUpper(currency)] = one.Div(decimal.NewFromFloat(rate))
		}
		return nil
	}

	policy := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), maxFetchRetries), ctx)
	return backoff.Retry(operation, policy)
}
