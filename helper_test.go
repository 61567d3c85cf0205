package wealthflow

import (
	"context"
	"fmt"
	"time"
)

// TWD is a helper for test to create money from const.
func TWD(v float64) Money { return M(v, "TWD") }

// NO is a helper for test to create money from const with no currency set.
func NO(v float64) Money { return M(v, "") }

// household is the snapshot of the literal examples: one asset, a mortgage and
// its payment.
func household() Snapshot {
	return Snapshot{
		Assets:      []Asset{{ID: "a1", Name: "Private equity", Type: PrivateEquity, Value: TWD(2_000_000), Liquidity: LowLiquidity}},
		Liabilities: []Liability{{ID: "l1", Name: "Mortgage", Type: Mortgage, Amount: TWD(1_200_000), MonthlyPayment: TWD(45_000)}},
		Incomes:     []CashFlow{{ID: "i1", Name: "Salary", Amount: TWD(80_000), Kind: Income}},
		Expenses:    []CashFlow{{ID: "e1", Name: "Mortgage Payment", Amount: TWD(45_000), Kind: Expense}},
	}
}

// fixedSummary is a summarizer that always succeeds.
func fixedSummary(text string) Summarizer {
	return SummarizerFunc(func(context.Context, Snapshot, Snapshot) (string, error) { return text, nil })
}

// failingSummary is a summarizer that always fails.
var failingSummary = SummarizerFunc(func(context.Context, Snapshot, Snapshot) (string, error) {
	return "", fmt.Errorf("quota exceeded")
})

// sequence returns an id generator producing prefix-1, prefix-2...
func sequence(prefix string) func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("%s-%d", prefix, n)
	}
}

var day = time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

// clock returns a clock starting at day, moving one hour on each call.
func clock() func() time.Time {
	t := day
	return func() time.Time {
		t = t.Add(time.Hour)
		return t
	}
}

// ids returns the ids of a list of items.
func ids[T Item](list []T) []string {
	out := make([]string, 0, len(list))
	for _, it := range list {
		out = append(out, it.ItemID())
	}
	return out
}
