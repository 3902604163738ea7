package ingestion

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// parseAmount coerces a source cell to a two-decimal amount. An
// unparseable value becomes zero rather than failing the row, so the
// entry still reaches the ledger for manual review.
func parseAmount(s string) decimal.Decimal {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimPrefix(s, "$")
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d.Round(2)
}

// parseDate tries each layout in order and returns nil when none
// matches. A nil date keeps the row in the ledger but excludes it from
// quarter detection.
func parseDate(s string, layouts []string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}
	return nil
}

// cell returns the i-th field of a row, or "" when the row is short.
func cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return row[i]
}
