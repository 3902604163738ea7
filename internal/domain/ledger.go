package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type Account string

const (
	AccountCommonwealth Account = "Commonwealth"
	AccountWise         Account = "Wise"
)

type Direction string

const (
	DirectionIn  Direction = "IN"
	DirectionOut Direction = "OUT"
)

type Category string

const (
	CategoryIncome   Category = "Income"
	CategoryTransfer Category = "Transfer"
	CategoryFee      Category = "Fee"
	CategoryExpense  Category = "Expense"
)

// LedgerEntry is the canonical transaction record both bank adapters
// normalize into. Date is nil when the source cell did not parse; the
// row is kept anyway so the reviewer can see and fix it.
type LedgerEntry struct {
	Date        *time.Time      `json:"date"`
	Account     Account         `json:"account"`
	Description string          `json:"description"`
	Direction   Direction       `json:"direction"`
	Amount      decimal.Decimal `json:"amount"`
}

// ClassifiedEntry is a ledger entry after GST classification. Row is
// the entry's position in the merged ledger and identifies it across
// revisions; rows are never added or removed by review.
type ClassifiedEntry struct {
	LedgerEntry
	Row       int             `json:"row"`
	Category  Category        `json:"category"`
	Claimable bool            `json:"claimable"`
	Rationale string          `json:"rationale"`
	Gross     decimal.Decimal `json:"gross_amount"`
	GST       decimal.Decimal `json:"gst_amount"`
	Net       decimal.Decimal `json:"net_amount"`
	Comment   string          `json:"comment"`
}
