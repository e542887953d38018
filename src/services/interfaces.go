package services

import (
	"context"

	"github.com/username/portfoliopulse/backend/src/models"
)

// Fundamentals is the pair scraped from the finance quote page.
// A zero field means "unavailable", not an observed value of zero.
type Fundamentals struct {
	PERatio        float64 `json:"peRatio"`
	LatestEarnings float64 `json:"latestEarnings"`
}

// PriceService fetches the current market price for a symbol.
// Implementations never return an error: upstream failures are logged and
// degrade to the 0 sentinel so one dead provider cannot take the page down.
type PriceService interface {
	FetchPrice(ctx context.Context, symbol string) float64
}

// FundamentalsService fetches the P/E ratio and latest EPS for a symbol.
// Same degradation contract as PriceService, at field granularity.
type FundamentalsService interface {
	FetchFundamentals(ctx context.Context, symbol string) Fundamentals
}

// EnrichmentService attaches live market data to the immutable holdings.
// An error here is a pipeline-level failure, not a per-holding one; those
// degrade to static fallbacks inside the services above.
type EnrichmentService interface {
	Enrich(ctx context.Context, holdings []models.Holding) ([]models.Stock, error)
}
