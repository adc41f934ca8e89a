// Package coingecko fetches the BTC/USD spot rate from the CoinGecko public
// API. The provider does a single bounded request per call; outage handling
// lives in the rates service, not here.
package coingecko

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/shopspring/decimal"
)

const defaultBaseURL = "https://api.coingecko.com/api/v3"

const ratePath = "/simple/price?ids=bitcoin&vs_currencies=usd"

// Provider fetches exchange rates from the CoinGecko API.
type Provider struct {
	baseURL    string
	httpClient *http.Client
	log        *slog.Logger
}

// NewProvider creates a Provider with the default CoinGecko API URL.
func NewProvider(timeout time.Duration, logger *slog.Logger) *Provider {
	return NewProviderWithURL(defaultBaseURL, timeout, logger)
}

// NewProviderWithURL creates a Provider with a custom base URL (for testing).
func NewProviderWithURL(baseURL string, timeout time.Duration, logger *slog.Logger) *Provider {
	return &Provider{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
		log:        logger.With("adapter", "coingecko"),
	}
}

// FetchRate fetches the current BTC/USD rate. Any failure (transport,
// non-200 status, malformed body, non-positive rate) is an error; the
// provider never substitutes a cached or default value.
func (p *Provider) FetchRate(ctx context.Context) (decimal.Decimal, error) {
	reqURL := p.baseURL + ratePath

	p.log.DebugContext(ctx, "coingecko request")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("coingecko: create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		p.log.ErrorContext(ctx, "coingecko request failed", slog.String("error", err.Error()))
		return decimal.Decimal{}, fmt.Errorf("coingecko: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		p.log.ErrorContext(ctx, "coingecko unexpected status", slog.Int("status", resp.StatusCode))
		return decimal.Decimal{}, fmt.Errorf("coingecko: unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("coingecko: read body: %w", err)
	}

	var payload simplePriceResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return decimal.Decimal{}, fmt.Errorf("coingecko: decode json: %w", err)
	}

	rate, ok := payload.rate()
	if !ok {
		return decimal.Decimal{}, fmt.Errorf("coingecko: response missing bitcoin.usd")
	}
	if !rate.IsPositive() {
		return decimal.Decimal{}, fmt.Errorf("coingecko: non-positive rate %s", rate)
	}

	p.log.DebugContext(ctx, "coingecko response", slog.String("rate", rate.String()))

	return rate, nil
}
