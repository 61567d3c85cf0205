package renderer

import (
	"strings"
	"testing"

	"github.com/etnz/wealthflow"
)

func household() wealthflow.Snapshot {
	m := func(v int) wealthflow.Money { return wealthflow.M(v, "EUR") }
	return wealthflow.Snapshot{
		Assets:      []wealthflow.Asset{{ID: "a1", Name: "Private equity", Type: wealthflow.PrivateEquity, Value: m(2_000_000), Liquidity: wealthflow.LowLiquidity}},
		Liabilities: []wealthflow.Liability{{ID: "l1", Name: "Mortgage", Type: wealthflow.Mortgage, Amount: m(1_200_000), MonthlyPayment: m(45_000)}},
		Incomes:     []wealthflow.CashFlow{{ID: "i1", Name: "Salary", Amount: m(80_000), Kind: wealthflow.Income}},
		Expenses:    []wealthflow.CashFlow{{ID: "e1", Name: "Mortgage Payment", Amount: m(45_000), Kind: wealthflow.Expense}},
	}
}

// contains checks that every want appears in got, in order.
func contains(t *testing.T, got string, want ...string) {
	t.Helper()
	rest := got
	for _, w := range want {
		i := strings.Index(rest, w)
		if i < 0 {
			t.Errorf("missing %q in:\n%s", w, got)
			return
		}
		rest = rest[i+len(w):]
	}
}

func TestDashboardMarkdown(t *testing.T) {
	got := DashboardMarkdown(household())
	contains(t, got,
		"# Financial Dashboard",
		"Net Worth", "800,000.00",
		"Monthly Cash Flow", "35,000.00",
		"## Assets", "Private equity", "private_equity",
		"## Liabilities", "Mortgage",
		"## Monthly Incomes", "Salary",
		"## Monthly Expenses", "Mortgage Payment",
	)
	if strings.Contains(got, "deficit") {
		t.Errorf("no deficit expected:\n%s", got)
	}

	t.Run("empty", func(t *testing.T) {
		got := DashboardMarkdown(wealthflow.Snapshot{})
		contains(t, got, "No assets.", "No liabilities.", "No incomes.", "No expenses.")
	})
}

func TestProjectionMarkdown(t *testing.T) {
	s := wealthflow.NewSession("Pay off the house", household())
	if err := s.Toggle(wealthflow.Liabilities, "l1", nil); err != nil {
		t.Fatal(err)
	}
	p, err := s.Project(household())
	if err != nil {
		t.Fatal(err)
	}
	got := ProjectionMarkdown(s, p)
	contains(t, got,
		"# Scenario: Pay off the house",
		"Monthly Cash Flow", "35,000.00", "80,000.00", "+", "45,000.00",
		"## Liquidity", "1,200,000.00",
		"## Released", "Pay off Mortgage", "Cut expense Mortgage Payment",
	)

	t.Run("nothing released", func(t *testing.T) {
		s := wealthflow.NewSession("Idle", household())
		p, err := s.Project(household())
		if err != nil {
			t.Fatal(err)
		}
		contains(t, ProjectionMarkdown(s, p), "Nothing released yet.")
	})
}

func TestScenariosMarkdown(t *testing.T) {
	list := []wealthflow.Scenario{{ID: "0b6e6f1c-5d1e-4b6a-9a55-0c2d8c1f9e11", Name: "Sell", Data: household(), Summary: "Sold the shares."}}
	got := ScenariosMarkdown(list, 8)
	contains(t, got, "# Saved Scenarios (1/8)", "0b6e6f1c", "Sell", "800,000.00", "Sold the shares.")
	if strings.Contains(got, "5d1e") {
		t.Errorf("uuid should be shortened:\n%s", got)
	}
	contains(t, ScenariosMarkdown(nil, 8), "No saved scenario.")
}

func TestAdviceMarkdown(t *testing.T) {
	a := wealthflow.Advice{
		Summary:          "Negative cash flow.",
		HealthScore:      42,
		ImmediateActions: []string{"Cut subscriptions", "Sell the bonds"},
		StrategicAdvice:  "Pay off the card first.",
	}
	contains(t, AdviceMarkdown(a), "# Financial Health: 42/100", "Negative cash flow.", "## Immediate Actions", "Cut subscriptions", "Sell the bonds", "## Strategy", "Pay off the card first.")

	saved := []wealthflow.SavedAdvice{{Title: "Financial analysis - 2025-03-01 10:00", Content: "Pay off the card first.", Score: 42}}
	contains(t, SavedAdvicesMarkdown(saved), "# Saved Advices", "Financial analysis - 2025-03-01 10:00 (score 42)", "Pay off the card first.")
	contains(t, SavedAdvicesMarkdown(nil), "No saved advice.")
}
