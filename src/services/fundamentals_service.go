package services

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/username/portfoliopulse/backend/src/logger"
)

type financePageService struct {
	httpClient *http.Client
	baseURL    string
	cache      *MarketCache
	parser     fundamentalsParser
}

// NewFundamentalsService returns a FundamentalsService that scrapes the
// public finance quote page for a symbol, through the shared cache. The
// timeout is deliberately short so one slow upstream page cannot stall a
// whole enrichment batch.
func NewFundamentalsService(baseURL string, timeout time.Duration, cache *MarketCache) FundamentalsService {
	return &financePageService{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    strings.TrimRight(baseURL, "/"),
		cache:      cache,
		parser:     quotePageParser{},
	}
}

// FetchFundamentals returns the P/E ratio and latest EPS for symbol. Fields
// that are missing from the page parse as 0 individually; partial success
// is still cached. A failed fetch returns the zero pair, is logged, and
// caches nothing so the symbol is retried on the next pass.
func (s *financePageService) FetchFundamentals(ctx context.Context, symbol string) Fundamentals {
	if strings.TrimSpace(symbol) == "" {
		return Fundamentals{}
	}

	if cached, ok := s.cache.GetFundamentals(symbol); ok {
		return cached
	}

	markup, err := s.fetchQuotePage(ctx, symbol)
	if err != nil {
		logger.FromContext(ctx).Warn("Fundamentals fetch failed, falling back to static values", "symbol", symbol, "error", err)
		return Fundamentals{}
	}

	f := s.parser.Parse(markup)
	s.cache.SetFundamentals(symbol, f)
	return f
}

func (s *financePageService) fetchQuotePage(ctx context.Context, symbol string) (string, error) {
	pageURL := fmt.Sprintf("%s/%s", s.baseURL, url.PathEscape(symbol))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", browserUserAgent)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch finance page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("finance page returned non-OK status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read finance page body: %w", err)
	}
	return string(body), nil
}
