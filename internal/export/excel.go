// Package export renders the final ledger and BAS summary as the
// two-sheet xlsx working-papers file.
package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/basworks/gstpapers/internal/domain"
)

const (
	ledgerSheet  = "GST Working Papers"
	summarySheet = "GST Summary"
)

// Ledger sheet layout. The claimable column (G) and gross column (I)
// are what the live formulas reference, so a reviewer toggling a claim
// flag in the spreadsheet sees GST, net, and summary cells recalculate.
var ledgerHeader = []any{
	"Date", "Account", "Description", "Direction", "Amount",
	"Transaction Type", "GST Claimable", "System Reason",
	"Gross Amount", "GST Amount", "Net (ex GST)", "Comment",
}

// BAS labels as they appear on the return.
var basLabels = []string{
	"G1 – Total sales (incl GST)",
	"1A – GST on sales",
	"GST-claimable expenses (gross)",
	"1B – GST on purchases",
	"Net GST payable",
}

// Workbook builds the export artifact. With formulas set, the GST
// amount, net amount, and all five summary figures are written as
// spreadsheet formulas over the ledger's claimable and gross columns;
// otherwise they are written as the precomputed values. Both forms
// reduce to the same figures.
func Workbook(entries []domain.ClassifiedEntry, sum domain.BASSummary, formulas bool) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", ledgerSheet); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}
	if err := writeLedgerSheet(f, entries, formulas); err != nil {
		return nil, fmt.Errorf("ledger sheet: %w", err)
	}
	if err := writeSummarySheet(f, sum, formulas); err != nil {
		return nil, fmt.Errorf("summary sheet: %w", err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func writeLedgerSheet(f *excelize.File, entries []domain.ClassifiedEntry, formulas bool) error {
	if err := f.SetSheetRow(ledgerSheet, "A1", &ledgerHeader); err != nil {
		return err
	}

	for i, e := range entries {
		rowNum := i + 2

		date := ""
		if e.Date != nil {
			date = e.Date.Format("2006-01-02")
		}
		claimable := "NO"
		if e.Claimable {
			claimable = "YES"
		}

		row := []any{
			date, string(e.Account), e.Description, string(e.Direction),
			e.Amount.InexactFloat64(), string(e.Category), claimable,
			e.Rationale, e.Gross.InexactFloat64(), e.GST.InexactFloat64(),
			e.Net.InexactFloat64(), e.Comment,
		}
		if err := f.SetSheetRow(ledgerSheet, fmt.Sprintf("A%d", rowNum), &row); err != nil {
			return err
		}

		if formulas {
			gstFormula := fmt.Sprintf(`=IF(G%d="YES",ROUND(I%d/11,2),0)`, rowNum, rowNum)
			if err := f.SetCellFormula(ledgerSheet, fmt.Sprintf("J%d", rowNum), gstFormula); err != nil {
				return err
			}
			netFormula := fmt.Sprintf("=I%d-J%d", rowNum, rowNum)
			if err := f.SetCellFormula(ledgerSheet, fmt.Sprintf("K%d", rowNum), netFormula); err != nil {
				return err
			}
		}
	}

	// Descriptions and rationales are the widest columns.
	if err := f.SetColWidth(ledgerSheet, "C", "C", 36); err != nil {
		return err
	}
	return f.SetColWidth(ledgerSheet, "H", "H", 36)
}

func writeSummarySheet(f *excelize.File, sum domain.BASSummary, formulas bool) error {
	if _, err := f.NewSheet(summarySheet); err != nil {
		return err
	}

	header := []any{"BAS Label", "Amount (AUD)"}
	if err := f.SetSheetRow(summarySheet, "A1", &header); err != nil {
		return err
	}

	values := []float64{
		sum.G1TotalSales.InexactFloat64(),
		sum.GSTOnSales.InexactFloat64(),
		sum.ClaimableExpenses.InexactFloat64(),
		sum.GSTOnPurchases.InexactFloat64(),
		sum.NetGSTPayable.InexactFloat64(),
	}
	for i, label := range basLabels {
		rowNum := i + 2
		row := []any{label, values[i]}
		if err := f.SetSheetRow(summarySheet, fmt.Sprintf("A%d", rowNum), &row); err != nil {
			return err
		}
	}

	if formulas {
		// Figures recompute from the ledger sheet: F = category,
		// G = claimable flag, I = gross, J = GST.
		ledgerFormulas := map[string]string{
			"B2": fmt.Sprintf(`=SUMIF('%[1]s'!$F:$F,"Income",'%[1]s'!$I:$I)`, ledgerSheet),
			"B3": "=ROUND(B2/11,2)",
			"B4": fmt.Sprintf(`=SUMIF('%[1]s'!$G:$G,"YES",'%[1]s'!$I:$I)`, ledgerSheet),
			"B5": fmt.Sprintf(`=SUMIF('%[1]s'!$G:$G,"YES",'%[1]s'!$J:$J)`, ledgerSheet),
			"B6": "=B3-B5",
		}
		for cell, formula := range ledgerFormulas {
			if err := f.SetCellFormula(summarySheet, cell, formula); err != nil {
				return err
			}
		}
	}

	quarterRow := []any{"Reporting quarter", string(sum.Quarter)}
	if err := f.SetSheetRow(summarySheet, "A8", &quarterRow); err != nil {
		return err
	}

	return f.SetColWidth(summarySheet, "A", "A", 34)
}
