package gst

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/basworks/gstpapers/internal/domain"
)

func TestDerive(t *testing.T) {
	tests := []struct {
		name      string
		amount    string
		claimable bool
		wantGross string
		wantGST   string
		wantNet   string
	}{
		{
			name:      "claimable expense of -110",
			amount:    "-110.00",
			claimable: true,
			wantGross: "110",
			wantGST:   "10",
			wantNet:   "100",
		},
		{
			name:      "gross is the absolute value",
			amount:    "-55",
			claimable: true,
			wantGross: "55",
			wantGST:   "5",
			wantNet:   "50",
		},
		{
			name:      "non-claimable has zero gst",
			amount:    "500.00",
			claimable: false,
			wantGross: "500",
			wantGST:   "0",
			wantNet:   "500",
		},
		{
			name:      "rounding to two decimals",
			amount:    "-100.00",
			claimable: true,
			wantGross: "100",
			wantGST:   "9.09",
			wantNet:   "90.91",
		},
		{
			name:      "zero amount",
			amount:    "0",
			claimable: true,
			wantGross: "0",
			wantGST:   "0",
			wantNet:   "0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			amount := decimal.RequireFromString(tt.amount)
			gross, gst, net := Derive(amount, tt.claimable)

			if !gross.Equal(decimal.RequireFromString(tt.wantGross)) {
				t.Errorf("gross = %s, want %s", gross, tt.wantGross)
			}
			if !gst.Equal(decimal.RequireFromString(tt.wantGST)) {
				t.Errorf("gst = %s, want %s", gst, tt.wantGST)
			}
			if !net.Equal(decimal.RequireFromString(tt.wantNet)) {
				t.Errorf("net = %s, want %s", net, tt.wantNet)
			}
		})
	}
}

// gst + net must equal gross for any amount, claimable or not.
func TestDeriveIdentity(t *testing.T) {
	amounts := []string{
		"-110.00", "110.00", "-0.01", "0.01", "-33.33", "1234567.89",
		"-1", "-10", "-100", "-1000.55", "0",
	}

	for _, a := range amounts {
		for _, claimable := range []bool{true, false} {
			amount := decimal.RequireFromString(a)
			gross, gst, net := Derive(amount, claimable)

			if gross.IsNegative() {
				t.Errorf("Derive(%s, %v): gross %s is negative", a, claimable, gross)
			}
			if !gst.Add(net).Equal(gross) {
				t.Errorf("Derive(%s, %v): gst %s + net %s != gross %s",
					a, claimable, gst, net, gross)
			}
			if !claimable && !gst.IsZero() {
				t.Errorf("Derive(%s, false): gst = %s, want 0", a, gst)
			}
		}
	}
}

func TestRecalculate(t *testing.T) {
	e := domain.ClassifiedEntry{
		LedgerEntry: domain.LedgerEntry{
			Amount: decimal.RequireFromString("-110.00"),
		},
		Claimable: true,
	}
	Recalculate(&e)
	if !e.GST.Equal(decimal.RequireFromString("10")) {
		t.Fatalf("gst = %s, want 10", e.GST)
	}

	// Flipping the flag and recalculating must zero the tax and restore
	// net to gross.
	e.Claimable = false
	Recalculate(&e)
	if !e.GST.IsZero() {
		t.Errorf("gst after override = %s, want 0", e.GST)
	}
	if !e.Net.Equal(e.Gross) {
		t.Errorf("net after override = %s, want gross %s", e.Net, e.Gross)
	}
}
