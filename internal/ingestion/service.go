package ingestion

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/basworks/gstpapers/internal/classify"
	"github.com/basworks/gstpapers/internal/domain"
	"github.com/basworks/gstpapers/internal/gst"
	"github.com/basworks/gstpapers/internal/repository"
)

// ErrInputsIncomplete marks an ingest attempt with one or both bank
// exports missing. The pipeline does not run partially.
var ErrInputsIncomplete = errors.New("inputs incomplete: both commonwealth and wise files are required")

// Result summarises a successful batch ingestion.
type Result struct {
	BatchID          string `json:"batch_id"`
	CommonwealthRows int    `json:"commonwealth_rows"`
	WiseRows         int    `json:"wise_rows"`
	TotalRows        int    `json:"total_rows"`
}

// Service runs the ingest pipeline: parse both exports, merge them into
// one ledger, classify and derive every row, and store the batch as the
// review baseline.
type Service struct {
	batches *repository.BatchRepo
	log     zerolog.Logger
}

func NewService(batches *repository.BatchRepo, log zerolog.Logger) *Service {
	return &Service{batches: batches, log: log}
}

// IngestBatch processes one pair of bank exports. The merged ledger
// keeps each source's row order, Commonwealth first. Nothing is stored
// when either file fails structurally, so no partial batch can leak
// into review or export.
func (s *Service) IngestBatch(commonwealth, wise []byte) (*Result, error) {
	if len(commonwealth) == 0 || len(wise) == 0 {
		return nil, ErrInputsIncomplete
	}

	cbaEntries, err := ParseCommonwealthCSV(commonwealth)
	if err != nil {
		return nil, fmt.Errorf("parse commonwealth: %w", err)
	}
	wiseEntries, err := ParseWiseCSV(wise)
	if err != nil {
		return nil, fmt.Errorf("parse wise: %w", err)
	}

	ledger := make([]domain.LedgerEntry, 0, len(cbaEntries)+len(wiseEntries))
	ledger = append(ledger, cbaEntries...)
	ledger = append(ledger, wiseEntries...)

	entries := make([]domain.ClassifiedEntry, len(ledger))
	for i, le := range ledger {
		category, claimable, rationale := classify.Classify(le)
		e := domain.ClassifiedEntry{
			LedgerEntry: le,
			Row:         i,
			Category:    category,
			Claimable:   claimable,
			Rationale:   rationale,
		}
		gst.Recalculate(&e)
		entries[i] = e
	}

	batchID := uuid.NewString()
	if err := s.batches.CreateBatch(batchID, entries); err != nil {
		return nil, fmt.Errorf("store batch: %w", err)
	}

	s.log.Info().
		Str("batch_id", batchID).
		Int("commonwealth_rows", len(cbaEntries)).
		Int("wise_rows", len(wiseEntries)).
		Msg("batch ingested")

	return &Result{
		BatchID:          batchID,
		CommonwealthRows: len(cbaEntries),
		WiseRows:         len(wiseEntries),
		TotalRows:        len(entries),
	}, nil
}
