package domain

import "github.com/shopspring/decimal"

// Quarter is a fiscal reporting quarter label.
type Quarter string

const (
	QuarterQ1 Quarter = "Q1"
	QuarterQ2 Quarter = "Q2"
	QuarterQ3 Quarter = "Q3"
	QuarterQ4 Quarter = "Q4"

	// QuarterUnknown is returned when no row in the batch carries a
	// parseable date.
	QuarterUnknown Quarter = ""
)

// BASSummary holds the five BAS figures plus the batch overview shown
// alongside them. It has no identity of its own: it is recomputed from
// the current ledger on every request.
type BASSummary struct {
	Quarter Quarter `json:"quarter"`

	G1TotalSales      decimal.Decimal `json:"g1_total_sales"`
	GSTOnSales        decimal.Decimal `json:"gst_on_sales_1a"`
	ClaimableExpenses decimal.Decimal `json:"gst_claimable_expenses_gross"`
	GSTOnPurchases    decimal.Decimal `json:"gst_on_purchases_1b"`
	NetGSTPayable     decimal.Decimal `json:"net_gst_payable"`

	CommonwealthRows int `json:"commonwealth_rows"`
	WiseRows         int `json:"wise_rows"`
	TotalRows        int `json:"total_rows"`
}
