// Package review applies user revisions to a batch's classifier
// baseline. The revised ledger is never stored: it is rebuilt from the
// baseline plus the current edit set on every read, which keeps the
// derived GST fields consistent with the flags by construction.
package review

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/basworks/gstpapers/internal/domain"
	"github.com/basworks/gstpapers/internal/gst"
	"github.com/basworks/gstpapers/internal/repository"
)

// ErrInvalidRevision is returned when an edit set fails validation.
var ErrInvalidRevision = errors.New("invalid revision")

// Service merges user edits onto classified entries.
type Service struct {
	batches *repository.BatchRepo
	log     zerolog.Logger
}

func NewService(batches *repository.BatchRepo, log zerolog.Logger) *Service {
	return &Service{batches: batches, log: log}
}

// Ledger returns the batch's entries with the current edit set applied
// and the GST fields rederived per row.
func (s *Service) Ledger(batchID string) ([]domain.ClassifiedEntry, error) {
	baseline, err := s.batches.Baseline(batchID)
	if err != nil {
		return nil, err
	}
	revs, err := s.batches.Revisions(batchID)
	if err != nil {
		return nil, err
	}
	return apply(baseline, revs), nil
}

// Apply replaces the batch's edit set with the given one and returns
// the resulting ledger. Rows outside the batch are rejected: review
// never adds or removes rows. Applying the same set twice yields an
// identical ledger.
func (s *Service) Apply(batchID string, revs []domain.Revision) ([]domain.ClassifiedEntry, error) {
	batch, err := s.batches.GetBatch(batchID)
	if err != nil {
		return nil, err
	}

	seen := make(map[int]bool, len(revs))
	for _, rev := range revs {
		if rev.Row < 0 || rev.Row >= batch.RowCount {
			return nil, fmt.Errorf("%w: row %d out of range [0,%d)", ErrInvalidRevision, rev.Row, batch.RowCount)
		}
		if seen[rev.Row] {
			return nil, fmt.Errorf("%w: duplicate row %d", ErrInvalidRevision, rev.Row)
		}
		seen[rev.Row] = true
	}

	if err := s.batches.ReplaceRevisions(batchID, revs); err != nil {
		return nil, err
	}

	s.log.Info().
		Str("batch_id", batchID).
		Int("revisions", len(revs)).
		Msg("revision set applied")

	return s.Ledger(batchID)
}

// apply overlays the edit set on the baseline and rederives the GST
// fields. The baseline slice is not mutated.
func apply(baseline []domain.ClassifiedEntry, revs []domain.Revision) []domain.ClassifiedEntry {
	byRow := make(map[int]domain.Revision, len(revs))
	for _, rev := range revs {
		byRow[rev.Row] = rev
	}

	revised := make([]domain.ClassifiedEntry, len(baseline))
	for i, e := range baseline {
		if rev, ok := byRow[e.Row]; ok {
			if rev.Claimable != nil {
				e.Claimable = *rev.Claimable
			}
			if rev.Comment != nil {
				e.Comment = *rev.Comment
			}
		}
		gst.Recalculate(&e)
		revised[i] = e
	}
	return revised
}
