package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/raulgutierrezyuno/ZenithPay/internal/ingestion"
	"github.com/raulgutierrezyuno/ZenithPay/internal/repository"
)

// NewRouter creates the Chi router with all API routes mounted.
func NewRouter(txnRepo *repository.TransactionRepo, ingestionSvc *ingestion.Service) http.Handler {
	h := &Handlers{
		txnRepo:      txnRepo,
		ingestionSvc: ingestionSvc,
	}

	r := chi.NewRouter()

	// Middleware.
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.SetHeader("Content-Type", "application/json"))

	r.Route("/api/v1", func(r chi.Router) {
		// Analytics.
		r.Get("/metrics", h.GetMetrics)
		r.Get("/insights", h.GetInsights)

		// Transaction feed.
		r.Get("/transactions", h.ListTransactions)
		r.Post("/transactions/import", h.ImportFeed)
	})

	return r
}
