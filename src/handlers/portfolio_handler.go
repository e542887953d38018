package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/username/portfoliopulse/backend/src/logger"
	"github.com/username/portfoliopulse/backend/src/models"
	"github.com/username/portfoliopulse/backend/src/services"
)

type PortfolioHandler struct {
	holdings         []models.Holding
	enrichment       services.EnrichmentService
	portfolioService *services.PortfolioService
}

func NewPortfolioHandler(holdings []models.Holding, enrichment services.EnrichmentService, portfolioService *services.PortfolioService) *PortfolioHandler {
	return &PortfolioHandler{
		holdings:         holdings,
		enrichment:       enrichment,
		portfolioService: portfolioService,
	}
}

// HandleGetPortfolio serves GET /api/portfolio: the full enriched and
// aggregated snapshot. An empty holdings list is a valid empty portfolio,
// not an error. A pipeline-level failure yields a 500 with an all-zero
// snapshot; per-holding fetch failures never reach this level.
func (h *PortfolioHandler) HandleGetPortfolio(w http.ResponseWriter, r *http.Request) {
	ctxLogger := logger.FromContext(r.Context())

	if len(h.holdings) == 0 {
		ctxLogger.Info("No holdings configured, returning empty portfolio")
		writeJSON(w, http.StatusOK, models.PortfolioResponse{
			Portfolio: h.portfolioService.BuildSnapshot(nil),
		})
		return
	}

	stocks, err := h.enrichment.Enrich(r.Context(), h.holdings)
	if err != nil {
		ctxLogger.Error("Portfolio enrichment failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, models.PortfolioResponse{
			Portfolio: h.portfolioService.BuildSnapshot(nil),
			Error:     "Failed to process portfolio data",
		})
		return
	}

	snapshot := h.portfolioService.BuildSnapshot(stocks)
	ctxLogger.Info("Portfolio snapshot served", "stocks", len(snapshot.Stocks), "sectors", len(snapshot.SectorSummaries))
	writeJSON(w, http.StatusOK, models.PortfolioResponse{Portfolio: snapshot})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
