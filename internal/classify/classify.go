// Package classify assigns each ledger entry a GST category, a claim
// flag, and a fixed rationale string. Classification is a default
// heuristic, not a verified tax determination: every expense defaults
// to claimable and relies on human review to catch false positives.
package classify

import (
	"strings"

	"github.com/basworks/gstpapers/internal/domain"
)

// feeKeywords mark GST-free fees and government charges. Matched as
// substrings of the lower-cased description.
var feeKeywords = []string{"fee", "fx", "asic", "ato", "bpay", "tax"}

// rule couples a predicate with its fixed outcome. Rules run in order
// and the first match wins: the income rule shadows the keyword rules,
// so an incoming payment described as a "fee" is still income.
type rule struct {
	matches   func(direction domain.Direction, desc string) bool
	category  domain.Category
	claimable bool
	rationale string
}

var rules = []rule{
	{
		matches:   func(d domain.Direction, _ string) bool { return d == domain.DirectionIn },
		category:  domain.CategoryIncome,
		claimable: false,
		rationale: "Income received",
	},
	{
		matches:   func(_ domain.Direction, desc string) bool { return strings.Contains(desc, "transfer") },
		category:  domain.CategoryTransfer,
		claimable: false,
		rationale: "Internal transfer",
	},
	{
		matches: func(_ domain.Direction, desc string) bool {
			for _, k := range feeKeywords {
				if strings.Contains(desc, k) {
					return true
				}
			}
			return false
		},
		category:  domain.CategoryFee,
		claimable: false,
		rationale: "GST-free fee or government charge",
	},
	{
		matches:   func(domain.Direction, string) bool { return true },
		category:  domain.CategoryExpense,
		claimable: true,
		rationale: "Australian business expense – GST assumed",
	},
}

// Classify maps one ledger entry to its (category, claimable,
// rationale) triple. It is pure and total: the final rule matches
// unconditionally, so every entry gets exactly one category.
func Classify(e domain.LedgerEntry) (domain.Category, bool, string) {
	desc := strings.ToLower(e.Description)
	for _, r := range rules {
		if r.matches(e.Direction, desc) {
			return r.category, r.claimable, r.rationale
		}
	}
	// Unreachable: the default rule always matches.
	last := rules[len(rules)-1]
	return last.category, last.claimable, last.rationale
}
