package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"github.com/username/portfoliopulse/backend/src/logger"
	"golang.org/x/net/publicsuffix"
)

const browserUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36"

type yahooChartResponse struct {
	Chart struct {
		Result []struct {
			Meta struct {
				Currency           string  `json:"currency"`
				Symbol             string  `json:"symbol"`
				RegularMarketPrice float64 `json:"regularMarketPrice"`
			} `json:"meta"`
		} `json:"result"`
		Error interface{} `json:"error"`
	} `json:"chart"`
}

type yahooPriceService struct {
	httpClient *http.Client
	baseURL    string
	cache      *MarketCache
}

// NewPriceService returns a PriceService backed by the Yahoo Finance chart
// API, reading and writing price entries through the shared cache. The
// client timeout bounds each quote call so a hung upstream cannot stall a
// whole enrichment batch.
func NewPriceService(baseURL string, timeout time.Duration, cache *MarketCache) PriceService {
	jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		logger.L.Error("Failed to create cookie jar", "error", err)
	}
	return &yahooPriceService{
		httpClient: &http.Client{Jar: jar, Timeout: timeout},
		baseURL:    strings.TrimRight(baseURL, "/"),
		cache:      cache,
	}
}

// FetchPrice returns the current market price for symbol, or 0 when no
// price is available. Provider failures are logged and swallowed; 0 is the
// uniform "unknown" sentinel and is never cached, so a failed symbol is
// retried on the next pass.
func (s *yahooPriceService) FetchPrice(ctx context.Context, symbol string) float64 {
	if strings.TrimSpace(symbol) == "" {
		return 0
	}

	if price, ok := s.cache.GetPrice(symbol); ok {
		return price
	}

	price, err := s.fetchQuote(ctx, symbol)
	if err != nil {
		logger.FromContext(ctx).Warn("Price fetch failed, falling back to static value", "symbol", symbol, "error", err)
		return 0
	}
	if price > 0 {
		s.cache.SetPrice(symbol, price)
	}
	return price
}

func (s *yahooPriceService) fetchQuote(ctx context.Context, symbol string) (float64, error) {
	quoteURL := fmt.Sprintf("%s/v8/finance/chart/%s", s.baseURL, url.PathEscape(symbol))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, quoteURL, nil)
	if err != nil {
		return 0, err
	}
	req.Header.Set("User-Agent", browserUserAgent)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("failed to call Yahoo chart API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("yahoo chart API returned non-OK status %d", resp.StatusCode)
	}

	var chartData yahooChartResponse
	if err := json.NewDecoder(resp.Body).Decode(&chartData); err != nil {
		return 0, fmt.Errorf("failed to decode Yahoo chart response: %w", err)
	}
	if chartData.Chart.Error != nil {
		return 0, fmt.Errorf("yahoo chart API returned an error: %v", chartData.Chart.Error)
	}
	if len(chartData.Chart.Result) == 0 {
		// Successful call with no quote for the symbol.
		return 0, nil
	}
	return chartData.Chart.Result[0].Meta.RegularMarketPrice, nil
}
