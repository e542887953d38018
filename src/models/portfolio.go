package models

// Holding is one owned equity position as loaded from the holdings file.
// It is immutable after load; enrichment produces a Stock, it never writes
// back into the Holding.
type Holding struct {
	ID                  string  `json:"id"`
	Name                string  `json:"name"`
	Symbol              string  `json:"symbol"`
	Sector              string  `json:"sector"`
	PurchasePrice       float64 `json:"purchasePrice"`
	Quantity            int     `json:"quantity"`
	Investment          float64 `json:"investment"` // always purchasePrice * quantity, recomputed at load
	PortfolioPercentage float64 `json:"portfolioPercentage"`
	NSECode             string  `json:"nseCode"`
	BSECode             string  `json:"bseCode"`

	// Static fallbacks used when live data is unavailable.
	CMP            float64 `json:"cmp"`
	PERatio        float64 `json:"peRatio"`
	LatestEarnings float64 `json:"latestEarnings"`
}

// Stock is a Holding enriched with live market data. The json field names
// are the wire contract consumed by the frontend.
type Stock struct {
	ID                  string  `json:"id"`
	Name                string  `json:"name"`
	Symbol              string  `json:"symbol"`
	Sector              string  `json:"sector"`
	PurchasePrice       float64 `json:"purchasePrice"`
	Quantity            int     `json:"quantity"`
	Investment          float64 `json:"investment"`
	PortfolioPercentage float64 `json:"portfolioPercentage"`
	NSECode             string  `json:"nseCode"`
	BSECode             string  `json:"bseCode"`
	CMP                 float64 `json:"cmp"`
	PresentValue        float64 `json:"presentValue"`
	GainLoss            float64 `json:"gainLoss"`
	GainLossPercentage  float64 `json:"gainLossPercentage"`
	PERatio             float64 `json:"peRatio"` // 0 means "unavailable", not a real ratio of zero
	LatestEarnings      float64 `json:"latestEarnings"`
	LastUpdated         string  `json:"lastUpdated"`
}

// SectorSummary aggregates all stocks sharing a sector label.
type SectorSummary struct {
	Sector                  string  `json:"sector"`
	StockCount              int     `json:"stockCount"`
	TotalInvestment         float64 `json:"totalInvestment"`
	TotalPresentValue       float64 `json:"totalPresentValue"`
	TotalGainLoss           float64 `json:"totalGainLoss"`
	TotalGainLossPercentage float64 `json:"totalGainLossPercentage"`
}

// Portfolio is the full snapshot returned by GET /api/portfolio.
type Portfolio struct {
	Stocks                  []Stock         `json:"stocks"`
	SectorSummaries         []SectorSummary `json:"sectorSummaries"`
	TotalInvestment         float64         `json:"totalInvestment"`
	TotalPresentValue       float64         `json:"totalPresentValue"`
	TotalGainLoss           float64         `json:"totalGainLoss"`
	TotalGainLossPercentage float64         `json:"totalGainLossPercentage"`
	LastUpdated             string          `json:"lastUpdated"`
}

// PortfolioResponse is the top-level response envelope.
type PortfolioResponse struct {
	Portfolio Portfolio `json:"portfolio"`
	Error     string    `json:"error,omitempty"`
}

// EmptyPortfolio returns a valid all-zero snapshot.
func EmptyPortfolio(lastUpdated string) Portfolio {
	return Portfolio{
		Stocks:          []Stock{},
		SectorSummaries: []SectorSummary{},
		LastUpdated:     lastUpdated,
	}
}

// NewStock derives the enriched record for a holding from the resolved
// current price and fundamentals. presentValue, gainLoss and
// gainLossPercentage are recomputed here so they are always consistent with
// cmp at the moment of construction.
func NewStock(h Holding, cmp, peRatio, latestEarnings float64, lastUpdated string) Stock {
	presentValue := cmp * float64(h.Quantity)
	gainLoss := presentValue - h.Investment
	gainLossPct := 0.0
	if h.Investment > 0 {
		gainLossPct = gainLoss / h.Investment * 100
	}
	return Stock{
		ID:                  h.ID,
		Name:                h.Name,
		Symbol:              h.Symbol,
		Sector:              h.Sector,
		PurchasePrice:       h.PurchasePrice,
		Quantity:            h.Quantity,
		Investment:          h.Investment,
		PortfolioPercentage: h.PortfolioPercentage,
		NSECode:             h.NSECode,
		BSECode:             h.BSECode,
		CMP:                 cmp,
		PresentValue:        presentValue,
		GainLoss:            gainLoss,
		GainLossPercentage:  gainLossPct,
		PERatio:             peRatio,
		LatestEarnings:      latestEarnings,
		LastUpdated:         lastUpdated,
	}
}
