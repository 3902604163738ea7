package review

import (
	"errors"
	"io"
	"reflect"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/basworks/gstpapers/internal/classify"
	"github.com/basworks/gstpapers/internal/domain"
	"github.com/basworks/gstpapers/internal/gst"
	"github.com/basworks/gstpapers/internal/logger"
	"github.com/basworks/gstpapers/internal/repository"
)

func boolPtr(b bool) *bool           { return &b }
func strPtr(s string) *string        { return &s }
func datePtr(t time.Time) *time.Time { return &t }

func newTestService(t *testing.T) (*Service, string) {
	t.Helper()
	db, err := repository.InitDB(":memory:")
	if err != nil {
		t.Fatalf("InitDB: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	repo := repository.NewBatchRepo(db)

	ledger := []domain.LedgerEntry{
		{
			Date:        datePtr(time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)),
			Account:     domain.AccountCommonwealth,
			Description: "Office Supplies Pty Ltd",
			Direction:   domain.DirectionOut,
			Amount:      decimal.RequireFromString("-110.00"),
		},
		{
			Date:        datePtr(time.Date(2024, 1, 6, 0, 0, 0, 0, time.UTC)),
			Account:     domain.AccountCommonwealth,
			Description: "Client Payment",
			Direction:   domain.DirectionIn,
			Amount:      decimal.RequireFromString("500.00"),
		},
		{
			Date:        datePtr(time.Date(2024, 2, 15, 0, 0, 0, 0, time.UTC)),
			Account:     domain.AccountWise,
			Description: "Acme Hosting",
			Direction:   domain.DirectionOut,
			Amount:      decimal.RequireFromString("-89.10"),
		},
	}

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

	const batchID = "batch-1"
	if err := repo.CreateBatch(batchID, entries); err != nil {
		t.Fatalf("CreateBatch: %v", err)
	}

	return NewService(repo, logger.NewWithWriter(io.Discard)), batchID
}

func TestApplyEmptyEditSetIsNoop(t *testing.T) {
	svc, batchID := newTestService(t)

	before, err := svc.Ledger(batchID)
	if err != nil {
		t.Fatalf("Ledger: %v", err)
	}

	after, err := svc.Apply(batchID, nil)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}

	if !reflect.DeepEqual(before, after) {
		t.Fatalf("empty edit set changed the ledger:\nbefore %+v\nafter  %+v", before, after)
	}
}

func TestApplyClaimableOverrideRecomputesGST(t *testing.T) {
	svc, batchID := newTestService(t)

	// Row 0 classified as a claimable Expense; the reviewer marks it
	// private.
	ledger, err := svc.Apply(batchID, []domain.Revision{
		{Row: 0, Claimable: boolPtr(false), Comment: strPtr("private purchase")},
	})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}

	e := ledger[0]
	if e.Claimable {
		t.Error("claimable = true, want overridden to false")
	}
	if e.Category != domain.CategoryExpense {
		t.Errorf("category = %q, want Expense unchanged", e.Category)
	}
	if e.Rationale != "Australian business expense – GST assumed" {
		t.Errorf("rationale = %q, want unchanged", e.Rationale)
	}
	if !e.GST.IsZero() {
		t.Errorf("gst = %s, want 0 after override", e.GST)
	}
	if !e.Net.Equal(e.Gross) {
		t.Errorf("net = %s, want gross %s after override", e.Net, e.Gross)
	}
	if e.Comment != "private purchase" {
		t.Errorf("comment = %q", e.Comment)
	}

	// Untouched rows keep their classifier values.
	if ledger[2].GST.String() != "8.1" {
		t.Errorf("row 2 gst = %s, want 8.1", ledger[2].GST)
	}
}

func TestApplyIsIdempotent(t *testing.T) {
	svc, batchID := newTestService(t)

	revs := []domain.Revision{{Row: 0, Claimable: boolPtr(false)}}

	first, err := svc.Apply(batchID, revs)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	second, err := svc.Apply(batchID, revs)
	if err != nil {
		t.Fatalf("Apply (repeat): %v", err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Fatal("applying the same edit set twice produced different ledgers")
	}
}

func TestApplyReplacesEditSet(t *testing.T) {
	svc, batchID := newTestService(t)

	if _, err := svc.Apply(batchID, []domain.Revision{{Row: 0, Claimable: boolPtr(false)}}); err != nil {
		t.Fatalf("Apply: %v", err)
	}

	// A later PUT with an empty set restores the classifier baseline.
	ledger, err := svc.Apply(batchID, nil)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if !ledger[0].Claimable {
		t.Error("claimable = false, want baseline value restored after edit set replaced")
	}
	if ledger[0].GST.String() != "10" {
		t.Errorf("gst = %s, want baseline 10", ledger[0].GST)
	}
}

func TestApplyRejectsBadRows(t *testing.T) {
	svc, batchID := newTestService(t)

	if _, err := svc.Apply(batchID, []domain.Revision{{Row: 3}}); !errors.Is(err, ErrInvalidRevision) {
		t.Errorf("out-of-range row err = %v, want ErrInvalidRevision", err)
	}
	if _, err := svc.Apply(batchID, []domain.Revision{{Row: -1}}); !errors.Is(err, ErrInvalidRevision) {
		t.Errorf("negative row err = %v, want ErrInvalidRevision", err)
	}
	if _, err := svc.Apply(batchID, []domain.Revision{{Row: 0}, {Row: 0}}); !errors.Is(err, ErrInvalidRevision) {
		t.Errorf("duplicate rows err = %v, want ErrInvalidRevision", err)
	}
}

func TestUnknownBatch(t *testing.T) {
	svc, _ := newTestService(t)

	if _, err := svc.Ledger("nope"); !errors.Is(err, repository.ErrBatchNotFound) {
		t.Errorf("Ledger err = %v, want ErrBatchNotFound", err)
	}
	if _, err := svc.Apply("nope", nil); !errors.Is(err, repository.ErrBatchNotFound) {
		t.Errorf("Apply err = %v, want ErrBatchNotFound", err)
	}
}
