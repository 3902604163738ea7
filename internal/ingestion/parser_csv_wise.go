package ingestion

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/basworks/gstpapers/internal/domain"
)

// ErrMissingColumn marks a Wise export that lacks one of the required
// columns. Unlike a single malformed cell, a whole missing column would
// corrupt every row, so it fails the batch before any output.
var ErrMissingColumn = errors.New("missing required column")

// Required Wise export columns, matched case-insensitively.
const (
	colFinishedOn   = "finished on"
	colSourceName   = "source name"
	colDirection    = "direction"
	colTargetAmount = "target amount (after fees)"
)

// Wise timestamps are ISO-ordered, with or without a time component.
var wiseDateLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05Z07:00",
	"2006-01-02",
	"02-01-2006 15:04:05",
}

// ParseWiseCSV parses the Wise statement export.
//
// The file is headered; columns are located by name so their order does
// not matter. The source's own direction flag is carried through, and
// the amount is the post-fee settlement amount. Malformed date or
// amount cells degrade to nil/zero without dropping the row.
func ParseWiseCSV(data []byte) ([]domain.LedgerEntry, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	idx := make(map[string]int, len(header))
	for i, name := range header {
		idx[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, name := range []string{colFinishedOn, colSourceName, colDirection, colTargetAmount} {
		if _, ok := idx[name]; !ok {
			return nil, fmt.Errorf("%w: %q", ErrMissingColumn, name)
		}
	}

	var entries []domain.LedgerEntry
	lineNum := 1

	for {
		lineNum++
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNum, err)
		}

		direction := domain.DirectionOut
		if strings.EqualFold(strings.TrimSpace(cell(row, idx[colDirection])), "IN") {
			direction = domain.DirectionIn
		}

		entries = append(entries, domain.LedgerEntry{
			Date:        parseDate(cell(row, idx[colFinishedOn]), wiseDateLayouts),
			Account:     domain.AccountWise,
			Description: strings.TrimSpace(cell(row, idx[colSourceName])),
			Direction:   direction,
			Amount:      parseAmount(cell(row, idx[colTargetAmount])),
		})
	}

	return entries, nil
}
