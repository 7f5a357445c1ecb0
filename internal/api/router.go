// internal/api/router.go
package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"starpoint/internal/api/handler"
)

// NewRouter sets up and returns a new HTTP router.
func NewRouter(ledgerHandler *handler.LedgerHandler, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()

	// Global middlewares
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(handler.DefaultTimeout))

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	r.Post("/deposits", ledgerHandler.RecordDeposit)
	r.Post("/withdrawals", ledgerHandler.RecordWithdrawal)

	r.Route("/users", func(r chi.Router) {
		r.Get("/", ledgerHandler.ListUsers)
		r.Get("/{user}/balance", ledgerHandler.GetBalance)
		r.Get("/{user}/history", ledgerHandler.GetHistory)
	})

	r.Get("/summary", ledgerHandler.GetSummary)
	r.Post("/maintenance/normalize-users", ledgerHandler.NormalizeUsers)

	r.Route("/export", func(r chi.Router) {
		r.Get("/summary.csv", ledgerHandler.ExportSummary)
		r.Get("/snapshot.zip", ledgerHandler.ExportSnapshot)
	})

	logger.Debug("Routes registered")
	return r
}
