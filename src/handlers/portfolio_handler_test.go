package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/username/portfoliopulse/backend/src/logger"
	"github.com/username/portfoliopulse/backend/src/models"
	"github.com/username/portfoliopulse/backend/src/services"
)

func TestMain(m *testing.M) {
	logger.InitLogger("error")
	os.Exit(m.Run())
}

type stubEnrichment struct {
	stocks []models.Stock
	err    error
	called bool
}

func (s *stubEnrichment) Enrich(ctx context.Context, holdings []models.Holding) ([]models.Stock, error) {
	s.called = true
	return s.stocks, s.err
}

func getPortfolio(t *testing.T, h *PortfolioHandler) (*httptest.ResponseRecorder, models.PortfolioResponse) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/api/portfolio", nil)
	rec := httptest.NewRecorder()
	h.HandleGetPortfolio(rec, req)

	var body models.PortfolioResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return rec, body
}

func TestHandleGetPortfolioSuccess(t *testing.T) {
	holdings := []models.Holding{{
		ID: "1", Name: "HDFC Bank", Symbol: "HDFCBANK.NS", Sector: "Banking & Financial",
		PurchasePrice: 1490, Quantity: 50, Investment: 74500,
	}}
	stub := &stubEnrichment{stocks: []models.Stock{
		models.NewStock(holdings[0], 1700.15, 18.69, 91.02, "ts"),
	}}
	h := NewPortfolioHandler(holdings, stub, services.NewPortfolioService())

	rec, body := getPortfolio(t, h)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Empty(t, body.Error)
	require.Len(t, body.Portfolio.Stocks, 1)
	assert.Equal(t, "HDFCBANK.NS", body.Portfolio.Stocks[0].Symbol)
	assert.InDelta(t, 85007.5, body.Portfolio.Stocks[0].PresentValue, 1e-6)
	require.Len(t, body.Portfolio.SectorSummaries, 1)
	assert.InDelta(t, 74500.0, body.Portfolio.TotalInvestment, 1e-6)
}

func TestHandleGetPortfolioWireFieldNames(t *testing.T) {
	holdings := []models.Holding{{
		ID: "1", Symbol: "X.NS", Sector: "Other", PurchasePrice: 1, Quantity: 1, Investment: 1,
	}}
	stub := &stubEnrichment{stocks: []models.Stock{
		models.NewStock(holdings[0], 2, 3, 4, "ts"),
	}}
	h := NewPortfolioHandler(holdings, stub, services.NewPortfolioService())

	rec, _ := getPortfolio(t, h)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &raw))
	portfolio := raw["portfolio"].(map[string]any)
	stock := portfolio["stocks"].([]any)[0].(map[string]any)
	for _, field := range []string{
		"id", "name", "symbol", "sector", "purchasePrice", "quantity", "investment",
		"portfolioPercentage", "nseCode", "bseCode", "cmp", "presentValue",
		"gainLoss", "gainLossPercentage", "peRatio", "latestEarnings", "lastUpdated",
	} {
		assert.Contains(t, stock, field)
	}
	for _, field := range []string{
		"stocks", "sectorSummaries", "totalInvestment", "totalPresentValue",
		"totalGainLoss", "totalGainLossPercentage", "lastUpdated",
	} {
		assert.Contains(t, portfolio, field)
	}
}

func TestHandleGetPortfolioEmptyHoldings(t *testing.T) {
	stub := &stubEnrichment{}
	h := NewPortfolioHandler(nil, stub, services.NewPortfolioService())

	rec, body := getPortfolio(t, h)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, stub.called, "empty holdings must not trigger enrichment")
	assert.Empty(t, body.Error)
	assert.Empty(t, body.Portfolio.Stocks)
	assert.Empty(t, body.Portfolio.SectorSummaries)
	assert.Zero(t, body.Portfolio.TotalInvestment)
}

func TestHandleGetPortfolioPipelineFailure(t *testing.T) {
	holdings := []models.Holding{{ID: "1", PurchasePrice: 1, Quantity: 1, Investment: 1}}
	stub := &stubEnrichment{err: errors.New("boom")}
	h := NewPortfolioHandler(holdings, stub, services.NewPortfolioService())

	rec, body := getPortfolio(t, h)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Failed to process portfolio data", body.Error)
	assert.Empty(t, body.Portfolio.Stocks)
	assert.Zero(t, body.Portfolio.TotalInvestment)
}
