package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/basworks/gstpapers/internal/domain"
)

// ErrBatchNotFound is returned when the batch id does not exist.
var ErrBatchNotFound = errors.New("batch not found")

// BatchRepo stores ingested batches, their classifier baseline entries,
// and the user's revision set.
type BatchRepo struct {
	db *sql.DB
}

func NewBatchRepo(db *sql.DB) *BatchRepo {
	return &BatchRepo{db: db}
}

// CreateBatch inserts the batch header and its classified baseline in
// one transaction, so a failed insert leaves no partial batch behind.
func (r *BatchRepo) CreateBatch(id string, entries []domain.ClassifiedEntry) error {
	sqlTx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer sqlTx.Rollback()

	_, err = sqlTx.Exec(
		"INSERT INTO batches (id, ingested_at, row_count) VALUES (?,?,?)",
		id, time.Now().UTC().Format(time.RFC3339), len(entries),
	)
	if err != nil {
		return fmt.Errorf("insert batch: %w", err)
	}

	stmt, err := sqlTx.Prepare(
		`INSERT INTO ledger_entries
		(batch_id, row_pos, entry_date, account, description, direction,
		 amount, category, claimable, rationale, gross, gst, net)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?)`,
	)
	if err != nil {
		return fmt.Errorf("prepare: %w", err)
	}
	defer stmt.Close()

	for i := range entries {
		e := &entries[i]
		_, err := stmt.Exec(
			id, e.Row, formatNullableDate(e.Date), string(e.Account),
			e.Description, string(e.Direction), e.Amount.String(),
			string(e.Category), e.Claimable, e.Rationale,
			e.Gross.String(), e.GST.String(), e.Net.String(),
		)
		if err != nil {
			return fmt.Errorf("insert row %d: %w", i, err)
		}
	}

	if err := sqlTx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func (r *BatchRepo) GetBatch(id string) (*domain.Batch, error) {
	var b domain.Batch
	var ingestedAt string
	err := r.db.QueryRow(
		"SELECT id, ingested_at, row_count FROM batches WHERE id = ?", id,
	).Scan(&b.ID, &ingestedAt, &b.RowCount)
	if err == sql.ErrNoRows {
		return nil, ErrBatchNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get batch: %w", err)
	}
	b.IngestedAt, _ = time.Parse(time.RFC3339, ingestedAt)
	return &b, nil
}

// Baseline returns the batch's classifier output in ledger order,
// untouched by any revision.
func (r *BatchRepo) Baseline(id string) ([]domain.ClassifiedEntry, error) {
	if _, err := r.GetBatch(id); err != nil {
		return nil, err
	}

	rows, err := r.db.Query(
		`SELECT row_pos, entry_date, account, description, direction,
		        amount, category, claimable, rationale, gross, gst, net
		 FROM ledger_entries WHERE batch_id = ? ORDER BY row_pos`, id,
	)
	if err != nil {
		return nil, fmt.Errorf("query entries: %w", err)
	}
	defer rows.Close()

	var entries []domain.ClassifiedEntry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("scan entry: %w", err)
		}
		entries = append(entries, *e)
	}
	return entries, rows.Err()
}

// ReplaceRevisions swaps the batch's stored edit set for the given one.
// The whole set is replaced rather than merged so that re-applying the
// same set is a no-op.
func (r *BatchRepo) ReplaceRevisions(id string, revs []domain.Revision) error {
	if _, err := r.GetBatch(id); err != nil {
		return err
	}

	sqlTx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer sqlTx.Rollback()

	if _, err := sqlTx.Exec("DELETE FROM revisions WHERE batch_id = ?", id); err != nil {
		return fmt.Errorf("clear revisions: %w", err)
	}

	stmt, err := sqlTx.Prepare(
		"INSERT INTO revisions (batch_id, row_pos, claimable, comment) VALUES (?,?,?,?)",
	)
	if err != nil {
		return fmt.Errorf("prepare: %w", err)
	}
	defer stmt.Close()

	for i := range revs {
		rev := &revs[i]
		var claimable any
		if rev.Claimable != nil {
			claimable = *rev.Claimable
		}
		var comment any
		if rev.Comment != nil {
			comment = *rev.Comment
		}
		if _, err := stmt.Exec(id, rev.Row, claimable, comment); err != nil {
			return fmt.Errorf("insert revision %d: %w", i, err)
		}
	}

	if err := sqlTx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// Revisions returns the batch's current edit set ordered by row.
func (r *BatchRepo) Revisions(id string) ([]domain.Revision, error) {
	rows, err := r.db.Query(
		"SELECT row_pos, claimable, comment FROM revisions WHERE batch_id = ? ORDER BY row_pos", id,
	)
	if err != nil {
		return nil, fmt.Errorf("query revisions: %w", err)
	}
	defer rows.Close()

	var revs []domain.Revision
	for rows.Next() {
		var rev domain.Revision
		var claimable sql.NullBool
		var comment sql.NullString
		if err := rows.Scan(&rev.Row, &claimable, &comment); err != nil {
			return nil, fmt.Errorf("scan revision: %w", err)
		}
		if claimable.Valid {
			v := claimable.Bool
			rev.Claimable = &v
		}
		if comment.Valid {
			v := comment.String
			rev.Comment = &v
		}
		revs = append(revs, rev)
	}
	return revs, rows.Err()
}

// DeleteBatch removes the batch with its entries and revisions.
func (r *BatchRepo) DeleteBatch(id string) error {
	res, err := r.db.Exec("DELETE FROM batches WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete batch: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrBatchNotFound
	}
	return nil
}

// --- helpers ---

func formatNullableDate(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.Format(time.RFC3339)
}

func scanEntry(rows *sql.Rows) (*domain.ClassifiedEntry, error) {
	var e domain.ClassifiedEntry
	var dateNull sql.NullString
	var account, direction, category string
	var amount, gross, gst, net string

	err := rows.Scan(
		&e.Row, &dateNull, &account, &e.Description, &direction,
		&amount, &category, &e.Claimable, &e.Rationale, &gross, &gst, &net,
	)
	if err != nil {
		return nil, err
	}

	e.Account = domain.Account(account)
	e.Direction = domain.Direction(direction)
	e.Category = domain.Category(category)

	if dateNull.Valid {
		t, err := time.Parse(time.RFC3339, dateNull.String)
		if err != nil {
			return nil, fmt.Errorf("entry_date %q: %w", dateNull.String, err)
		}
		e.Date = &t
	}

	if e.Amount, err = decimal.NewFromString(amount); err != nil {
		return nil, fmt.Errorf("amount %q: %w", amount, err)
	}
	if e.Gross, err = decimal.NewFromString(gross); err != nil {
		return nil, fmt.Errorf("gross %q: %w", gross, err)
	}
	if e.GST, err = decimal.NewFromString(gst); err != nil {
		return nil, fmt.Errorf("gst %q: %w", gst, err)
	}
	if e.Net, err = decimal.NewFromString(net); err != nil {
		return nil, fmt.Errorf("net %q: %w", net, err)
	}

	return &e, nil
}
