package ingestion

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/basworks/gstpapers/internal/domain"
)

// Commonwealth exports use day-first dates, zero-padded or not.
var commonwealthDateLayouts = []string{
	"02/01/2006",
	"2/1/2006",
	"02-01-2006",
	"2006-01-02",
}

// ParseCommonwealthCSV parses the Commonwealth Bank statement export.
//
// The file has no header row and exactly 4 positional columns:
//
//	date,amount,description,balance
//
// Direction is derived from the sign of the amount (IN when positive).
// The balance column is read but not carried into the ledger. A cell
// that is missing or fails to parse never drops the row: the date
// becomes nil and the amount becomes zero.
func ParseCommonwealthCSV(data []byte) ([]domain.LedgerEntry, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	var entries []domain.LedgerEntry
	lineNum := 0

	for {
		lineNum++
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNum, err)
		}
		amount := parseAmount(cell(row, 1))

		entry := domain.LedgerEntry{
			Date:        parseDate(cell(row, 0), commonwealthDateLayouts),
			Account:     domain.AccountCommonwealth,
			Description: strings.TrimSpace(cell(row, 2)),
			Direction:   domain.DirectionOut,
			Amount:      amount,
		}
		if amount.IsPositive() {
			entry.Direction = domain.DirectionIn
		}
		entries = append(entries, entry)
	}

	return entries, nil
}
