// Package summary reduces a classified ledger to the BAS figures and
// detects the batch's fiscal quarter. Everything here is a pure
// function over the current ledger: figures are recomputed on every
// call and never cached.
package summary

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/basworks/gstpapers/internal/domain"
)

var eleven = decimal.NewFromInt(11)

// QuarterOf maps a calendar month to its fiscal quarter.
func QuarterOf(month time.Month) domain.Quarter {
	switch {
	case month <= time.March:
		return domain.QuarterQ1
	case month <= time.June:
		return domain.QuarterQ2
	case month <= time.September:
		return domain.QuarterQ3
	default:
		return domain.QuarterQ4
	}
}

// DetectQuarter returns the most frequent quarter across the batch's
// dated rows. Rows without a parseable date do not vote. On a tie the
// earliest quarter wins, so the result does not depend on row order.
func DetectQuarter(entries []domain.ClassifiedEntry) domain.Quarter {
	var counts [4]int
	dated := 0
	for _, e := range entries {
		if e.Date == nil {
			continue
		}
		counts[(int(e.Date.Month())-1)/3]++
		dated++
	}
	if dated == 0 {
		return domain.QuarterUnknown
	}

	quarters := [4]domain.Quarter{
		domain.QuarterQ1, domain.QuarterQ2, domain.QuarterQ3, domain.QuarterQ4,
	}
	best := 0
	for i := 1; i < len(counts); i++ {
		if counts[i] > counts[best] {
			best = i
		}
	}
	return quarters[best]
}

// Summarize computes the five BAS figures plus the batch overview from
// the current (possibly revised) ledger. Rows with a nil date still
// count in every monetary sum; date validity only affects quarter
// detection.
func Summarize(entries []domain.ClassifiedEntry) domain.BASSummary {
	s := domain.BASSummary{
		Quarter:           DetectQuarter(entries),
		G1TotalSales:      decimal.Zero,
		ClaimableExpenses: decimal.Zero,
		GSTOnPurchases:    decimal.Zero,
		TotalRows:         len(entries),
	}

	for _, e := range entries {
		switch e.Account {
		case domain.AccountCommonwealth:
			s.CommonwealthRows++
		case domain.AccountWise:
			s.WiseRows++
		}

		if e.Category == domain.CategoryIncome {
			s.G1TotalSales = s.G1TotalSales.Add(e.Gross)
		}
		if e.Claimable {
			s.ClaimableExpenses = s.ClaimableExpenses.Add(e.Gross)
			s.GSTOnPurchases = s.GSTOnPurchases.Add(e.GST)
		}
	}

	s.GSTOnSales = s.G1TotalSales.Div(eleven).Round(2)
	s.NetGSTPayable = s.GSTOnSales.Sub(s.GSTOnPurchases)
	return s
}
