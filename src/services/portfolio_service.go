package services

import (
	"time"

	"github.com/username/portfoliopulse/backend/src/models"
)

// defaultSector is the grouping label for holdings without a sector.
const defaultSector = "Other"

// PortfolioService rolls enriched stocks up into the portfolio snapshot.
type PortfolioService struct {
	now func() time.Time
}

func NewPortfolioService() *PortfolioService {
	return &PortfolioService{now: time.Now}
}

// BuildSnapshot aggregates stocks into sector summaries and portfolio
// totals. Totals are computed over all stocks independently of the sector
// grouping; the two must agree, and that equality is covered by tests.
// Empty input yields a valid empty snapshot.
func (s *PortfolioService) BuildSnapshot(stocks []models.Stock) models.Portfolio {
	lastUpdated := s.now().UTC().Format(time.RFC3339)
	if len(stocks) == 0 {
		return models.EmptyPortfolio(lastUpdated)
	}

	var totalInvestment, totalPresentValue float64
	for _, st := range stocks {
		totalInvestment += st.Investment
		totalPresentValue += st.PresentValue
	}
	totalGainLoss := totalPresentValue - totalInvestment
	totalGainLossPct := 0.0
	if totalInvestment > 0 {
		totalGainLossPct = totalGainLoss / totalInvestment * 100
	}

	return models.Portfolio{
		Stocks:                  stocks,
		SectorSummaries:         sectorSummaries(stocks),
		TotalInvestment:         totalInvestment,
		TotalPresentValue:       totalPresentValue,
		TotalGainLoss:           totalGainLoss,
		TotalGainLossPercentage: totalGainLossPct,
		LastUpdated:             lastUpdated,
	}
}

// sectorSummaries groups stocks by sector label in first-seen order.
func sectorSummaries(stocks []models.Stock) []models.SectorSummary {
	index := make(map[string]int)
	summaries := make([]models.SectorSummary, 0)

	for _, st := range stocks {
		sector := st.Sector
		if sector == "" {
			sector = defaultSector
		}
		i, seen := index[sector]
		if !seen {
			i = len(summaries)
			index[sector] = i
			summaries = append(summaries, models.SectorSummary{Sector: sector})
		}
		sm := &summaries[i]
		sm.StockCount++
		sm.TotalInvestment += st.Investment
		sm.TotalPresentValue += st.PresentValue
		sm.TotalGainLoss += st.GainLoss
	}

	for i := range summaries {
		if summaries[i].TotalInvestment > 0 {
			summaries[i].TotalGainLossPercentage = summaries[i].TotalGainLoss / summaries[i].TotalInvestment * 100
		}
	}
	return summaries
}
