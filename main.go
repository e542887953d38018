package main

import (
	"encoding/json"
	stdlog "log"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/username/portfoliopulse/backend/src/config"
	"github.com/username/portfoliopulse/backend/src/handlers"
	"github.com/username/portfoliopulse/backend/src/holdings"
	"github.com/username/portfoliopulse/backend/src/logger"
	"github.com/username/portfoliopulse/backend/src/services"
	"github.com/username/portfoliopulse/backend/src/utils"
	"golang.org/x/time/rate"
)

var limiter = rate.NewLimiter(rate.Every(100*time.Millisecond), 30)

func rateLimitMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !limiter.Allow() {
			http.Error(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
			logger.L.Warn("Rate limit exceeded", "path", r.URL.Path)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func enableCORS(next http.Handler) http.Handler {
	allowedOrigins := make(map[string]bool, len(config.Cfg.AllowedOrigins))
	for _, origin := range config.Cfg.AllowedOrigins {
		allowedOrigins[origin] = true
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if allowedOrigins[origin] {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Accept, Content-Type, Accept-Encoding")
		} else if origin == "" {
			w.Header().Set("Access-Control-Allow-Origin", "*")
		}

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func main() {
	config.LoadConfig()
	logger.InitLogger(config.Cfg.LogLevel)

	logger.L.Info("PortfolioPulse backend server starting...")

	logger.L.Info("Loading holdings...", "path", config.Cfg.HoldingsPath)
	holdingsList, err := holdings.Load(config.Cfg.HoldingsPath)
	if err != nil {
		logger.L.Error("Failed to load holdings", "error", err)
		os.Exit(1)
	}
	logger.L.Info("Holdings loaded", "count", len(holdingsList))

	marketCache := services.NewMarketCache(config.Cfg.CacheTTL)
	priceService := services.NewPriceService(config.Cfg.QuoteAPIBaseURL, config.Cfg.PriceTimeout, marketCache)
	fundamentalsService := services.NewFundamentalsService(config.Cfg.FinancePageBaseURL, config.Cfg.FundamentalsTimeout, marketCache)
	enrichmentService := services.NewEnrichmentService(priceService, fundamentalsService, config.Cfg.BatchSize)
	portfolioService := services.NewPortfolioService()

	portfolioHandler := handlers.NewPortfolioHandler(holdingsList, enrichmentService, portfolioService)

	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(handlers.ContextualLoggerMiddleware)
	r.Use(enableCORS)
	r.Use(rateLimitMiddleware)

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"message": "PortfolioPulse Backend is running"})
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/portfolio", portfolioHandler.HandleGetPortfolio)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		utils.SendJSONError(w, "not found", http.StatusNotFound)
	})

	serverAddr := ":" + config.Cfg.Port
	server := &http.Server{
		Addr:        serverAddr,
		Handler:     r,
		ReadTimeout: 15 * time.Second,
		// The write timeout must cover a full enrichment pass with cold
		// caches and slow upstreams.
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	logger.L.Info("Server starting", "address", serverAddr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		stdlog.Fatalf("Failed to start server: %v", err)
	}
}
