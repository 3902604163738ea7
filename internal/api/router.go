package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/basworks/gstpapers/internal/ingestion"
	"github.com/basworks/gstpapers/internal/repository"
	"github.com/basworks/gstpapers/internal/review"
)

// NewRouter creates the Chi router with all API routes mounted.
func NewRouter(
	ingestionSvc *ingestion.Service,
	reviewSvc *review.Service,
	batches *repository.BatchRepo,
	log zerolog.Logger,
) http.Handler {
	h := &Handlers{
		ingestionSvc: ingestionSvc,
		reviewSvc:    reviewSvc,
		batches:      batches,
		log:          log,
	}

	r := chi.NewRouter()

	// Middleware.
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Route("/api/v1", func(r chi.Router) {
		// Ingestion: one batch per upload pair.
		r.Post("/batches", h.IngestBatch)

		// Review surface.
		r.Get("/batches/{id}/ledger", h.GetLedger)
		r.Put("/batches/{id}/revisions", h.PutRevisions)

		// BAS figures.
		r.Get("/batches/{id}/summary", h.GetSummary)

		// Export target.
		r.Get("/batches/{id}/export", h.ExportBatch)

		// Discard after export.
		r.Delete("/batches/{id}", h.DeleteBatch)
	})

	return r
}
