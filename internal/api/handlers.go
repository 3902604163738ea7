package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/basworks/gstpapers/internal/domain"
	"github.com/basworks/gstpapers/internal/export"
	"github.com/basworks/gstpapers/internal/ingestion"
	"github.com/basworks/gstpapers/internal/repository"
	"github.com/basworks/gstpapers/internal/review"
	"github.com/basworks/gstpapers/internal/summary"
)

// Handlers groups all HTTP handler methods and their dependencies.
type Handlers struct {
	ingestionSvc *ingestion.Service
	reviewSvc    *review.Service
	batches      *repository.BatchRepo
	log          zerolog.Logger
}

// --- helpers ---

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	// The status line is already out; an encode failure here cannot be
	// reported to the client.
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// readFormFile returns the named upload's bytes, or nil when the field
// is absent. Absence is not an error here: the ingest precondition is
// checked for both files at once.
func readFormFile(r *http.Request, field string) ([]byte, error) {
	file, _, err := r.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("form file %q: %w", field, err)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("read %q: %w", field, err)
	}
	return data, nil
}

func (h *Handlers) notFoundOrInternal(w http.ResponseWriter, err error) {
	if errors.Is(err, repository.ErrBatchNotFound) {
		writeError(w, http.StatusNotFound, "batch not found")
		return
	}
	h.log.Error().Err(err).Msg("request failed")
	writeError(w, http.StatusInternalServerError, err.Error())
}

// --- IngestBatch ---

// IngestBatch accepts a multipart form with fields "commonwealth" and
// "wise", runs the full pipeline, and returns the new batch with its
// classified ledger and summary.
func (h *Handlers) IngestBatch(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart form: "+err.Error())
		return
	}

	commonwealth, err := readFormFile(r, "commonwealth")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	wise, err := readFormFile(r, "wise")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.ingestionSvc.IngestBatch(commonwealth, wise)
	if err != nil {
		// Missing file is a failed precondition; anything else (missing
		// Wise column, unreadable CSV) is a structural input error.
		if errors.Is(err, ingestion.ErrInputsIncomplete) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	ledger, err := h.reviewSvc.Ledger(result.BatchID)
	if err != nil {
		h.notFoundOrInternal(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"batch":   result,
		"ledger":  ledger,
		"summary": summary.Summarize(ledger),
	})
}

// --- GetLedger ---

func (h *Handlers) GetLedger(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	ledger, err := h.reviewSvc.Ledger(id)
	if err != nil {
		h.notFoundOrInternal(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"batch_id": id,
		"ledger":   ledger,
	})
}

// --- PutRevisions ---

// PutRevisions replaces the batch's full edit set. Only the claimable
// flag and the comment are writable per row; everything else in the
// ledger is read-only through review.
func (h *Handlers) PutRevisions(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var body struct {
		Revisions []domain.Revision `json:"revisions"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid body: "+err.Error())
		return
	}

	ledger, err := h.reviewSvc.Apply(id, body.Revisions)
	if err != nil {
		if errors.Is(err, review.ErrInvalidRevision) {
			writeError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		h.notFoundOrInternal(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"batch_id": id,
		"ledger":   ledger,
		"summary":  summary.Summarize(ledger),
	})
}

// --- GetSummary ---

func (h *Handlers) GetSummary(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	ledger, err := h.reviewSvc.Ledger(id)
	if err != nil {
		h.notFoundOrInternal(w, err)
		return
	}

	writeJSON(w, http.StatusOK, summary.Summarize(ledger))
}

// --- ExportBatch ---

// ExportBatch streams the xlsx working papers. With ?formulas=1 the
// derived and summary cells are live formulas instead of literals.
func (h *Handlers) ExportBatch(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	ledger, err := h.reviewSvc.Ledger(id)
	if err != nil {
		h.notFoundOrInternal(w, err)
		return
	}

	formulas := r.URL.Query().Get("formulas") == "1"
	data, err := export.Workbook(ledger, summary.Summarize(ledger), formulas)
	if err != nil {
		h.notFoundOrInternal(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="GST_Working_Papers.xlsx"`)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		h.log.Error().Err(err).Msg("write export")
	}
}

// --- DeleteBatch ---

func (h *Handlers) DeleteBatch(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.batches.DeleteBatch(id); err != nil {
		h.notFoundOrInternal(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
