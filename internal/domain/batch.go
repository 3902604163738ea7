package domain

import "time"

// Batch is one ingested pair of bank exports. Batches live only for the
// review session: the store defaults to in-memory and a batch is
// deleted once its working papers have been exported.
type Batch struct {
	ID         string    `json:"id"`
	IngestedAt time.Time `json:"ingested_at"`
	RowCount   int       `json:"row_count"`
}
