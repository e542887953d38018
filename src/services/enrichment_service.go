package services

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/username/portfoliopulse/backend/src/models"
	"golang.org/x/sync/errgroup"
)

type enrichmentService struct {
	prices       PriceService
	fundamentals FundamentalsService
	batchSize    int
	now          func() time.Time
}

// NewEnrichmentService wires the two fetchers into the batch pipeline.
// batchSize bounds peak concurrent outbound requests to 2*batchSize (one
// price and one fundamentals call per holding in flight).
func NewEnrichmentService(prices PriceService, fundamentals FundamentalsService, batchSize int) EnrichmentService {
	if batchSize <= 0 {
		batchSize = 10
	}
	return &enrichmentService{
		prices:       prices,
		fundamentals: fundamentals,
		batchSize:    batchSize,
		now:          time.Now,
	}
}

// Enrich produces one Stock per Holding, preserving input order. Batches
// run strictly sequentially; holdings within a batch run concurrently.
// Per-holding fetch failures never surface here, they degrade to the
// holding's static fallbacks inside the fetchers. A returned error means
// the whole pass failed and no partial result is usable.
func (s *enrichmentService) Enrich(ctx context.Context, holdings []models.Holding) ([]models.Stock, error) {
	stocks := make([]models.Stock, len(holdings))

	for start := 0; start < len(holdings); start += s.batchSize {
		end := min(start+s.batchSize, len(holdings))

		g, gctx := errgroup.WithContext(ctx)
		for i := start; i < end; i++ {
			i := i
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				// Results are placed by input index, so output order never
				// depends on fetch completion order.
				stocks[i] = s.enrichOne(gctx, holdings[i])
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
	}
	return stocks, nil
}

func (s *enrichmentService) enrichOne(ctx context.Context, h models.Holding) models.Stock {
	// A holding without a symbol is never enriched from the network; its
	// static values pass through unchanged.
	if strings.TrimSpace(h.Symbol) == "" {
		return models.NewStock(h, h.CMP, h.PERatio, h.LatestEarnings, s.timestamp())
	}

	var (
		livePrice float64
		liveFund  Fundamentals
		wg        sync.WaitGroup
	)
	wg.Add(1)
	go func() {
		defer wg.Done()
		liveFund = s.fundamentals.FetchFundamentals(ctx, h.Symbol)
	}()
	livePrice = s.prices.FetchPrice(ctx, h.Symbol)
	wg.Wait()

	// Live data wins only when the fetch produced a real value; 0 is the
	// "unavailable" sentinel and falls back to the static figures.
	cmp := h.CMP
	if livePrice > 0 {
		cmp = livePrice
	}
	peRatio := h.PERatio
	if liveFund.PERatio != 0 {
		peRatio = liveFund.PERatio
	}
	latestEarnings := h.LatestEarnings
	if liveFund.LatestEarnings != 0 {
		latestEarnings = liveFund.LatestEarnings
	}

	return models.NewStock(h, cmp, peRatio, latestEarnings, s.timestamp())
}

func (s *enrichmentService) timestamp() string {
	return s.now().UTC().Format(time.RFC3339)
}
