package wealthflow

import (
	"bytes"
	"strings"
	"testing"
)

func TestDocumentRoundTrip(t *testing.T) {
	in := Document{
		Financials: household(),
		Scenarios: []Scenario{{
			ID: "s1", Name: "No mortgage", Summary: "Paid off the mortgage.",
			Data:      Snapshot{Assets: household().Assets, Incomes: household().Incomes},
			CreatedAt: day,
		}},
		SavedAdvices: []SavedAdvice{{ID: "adv", Title: "t", Content: "c", Score: 60, CreatedAt: day}},
	}
	var buf bytes.Buffer
	if err := EncodeDocument(&buf, in); err != nil {
		t.Fatal(err)
	}
	if strings.Contains(buf.String(), "updatedAt") {
		t.Error("zero UpdatedAt should be omitted")
	}
	if !strings.Contains(buf.String(), `"aiSummary": "Paid off the mortgage."`) {
		t.Errorf("summary not encoded as aiSummary:\n%s", buf.String())
	}

	out, err := DecodeDocument(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if !equalMetrics(ComputeMetrics(out.Financials), ComputeMetrics(in.Financials)) {
		t.Errorf("financials changed: %+v", out.Financials)
	}
	if got := out.Financials.Liabilities[0].MonthlyPayment; !got.Equal(TWD(45_000)) || got.Currency() != "TWD" {
		t.Errorf("MonthlyPayment = %v", got)
	}
	if len(out.Scenarios) != 1 || !out.Scenarios[0].CreatedAt.Equal(day) || len(out.Scenarios[0].Data.Incomes) != 1 {
		t.Errorf("scenarios = %+v", out.Scenarios)
	}
}

func TestDecodeDocument_Kinds(t *testing.T) {
	// clients may omit the cash flow type; the list decides.
	doc, err := DecodeDocument(strings.NewReader(`{"financials":{"incomes":[{"id":"i","name":"Salary","amount":100}],"expenses":[{"id":"e","name":"Rent","amount":50,"type":"Income"}]}}`))
	if err != nil {
		t.Fatal(err)
	}
	if doc.Financials.Incomes[0].Kind != Income || doc.Financials.Expenses[0].Kind != Expense {
		t.Errorf("kinds = %q %q", doc.Financials.Incomes[0].Kind, doc.Financials.Expenses[0].Kind)
	}
	if _, err := DecodeDocument(strings.NewReader(`{"financials":`)); err == nil {
		t.Error("DecodeDocument() should fail on truncated input")
	}
}

func TestDecodeSnapshotYAML(t *testing.T) {
	const file = `
currency: TWD
assets:
  - name: US Treasury 20Y
    type: us_bond
    value: 1_500_000
    returnRate: 4.5
    liquidity: High
  - name: Brokerage
    type: stock
    value: {currency: USD, amount: "12000.50"}
liabilities:
  - name: Home Mortgage
    type: mortgage
    amount: 12000000
    interestRate: 2.1
    monthlyPayment: 45000
expenses:
  - name: Home Mortgage Payment
    amount: 45000
`
	s, err := DecodeSnapshotYAML(strings.NewReader(file), "EUR")
	if err != nil {
		t.Fatal(err)
	}
	if len(s.Assets) != 2 || len(s.Liabilities) != 1 || len(s.Expenses) != 1 || len(s.Incomes) != 0 {
		t.Fatalf("DecodeSnapshotYAML() = %+v", s)
	}
	bond := s.Assets[0]
	if bond.Type != USBond || bond.Liquidity != HighLiquidity || !bond.ReturnRate.Equal(4.5) {
		t.Errorf("bond = %+v", bond)
	}
	if want := TWD(1_500_000); !bond.Value.Equal(want) || bond.Value.Currency() != "TWD" {
		t.Errorf("bond value = %v, want %v", bond.Value, want)
	}
	if v := s.Assets[1].Value; v.Currency() != "USD" || !v.Equal(M(12000.5, "USD")) {
		t.Errorf("brokerage value = %v", v)
	}
	if s.Expenses[0].Kind != Expense {
		t.Errorf("Kind = %q, want Expense", s.Expenses[0].Kind)
	}
	if c := s.Liabilities[0].MonthlyPayment.Currency(); c != "TWD" {
		t.Errorf("monthly payment currency = %q, want TWD", c)
	}

	t.Run("default currency", func(t *testing.T) {
		s, err := DecodeSnapshotYAML(strings.NewReader("incomes:\n  - name: Salary\n    amount: 3000\n"), "EUR")
		if err != nil {
			t.Fatal(err)
		}
		if c := s.Incomes[0].Amount.Currency(); c != "EUR" || s.Incomes[0].Kind != Income {
			t.Errorf("income = %+v", s.Incomes[0])
		}
	})

	t.Run("empty file", func(t *testing.T) {
		s, err := DecodeSnapshotYAML(strings.NewReader(""), "EUR")
		if err != nil || len(s.Assets) != 0 {
			t.Errorf("DecodeSnapshotYAML() = %+v, %v", s, err)
		}
	})

	t.Run("invalid amount", func(t *testing.T) {
		_, err := DecodeSnapshotYAML(strings.NewReader("assets:\n  - name: x\n    value: lots\n"), "EUR")
		if err == nil || !strings.Contains(err.Error(), "invalid amount") {
			t.Errorf("DecodeSnapshotYAML() error = %v", err)
		}
	})
}

func TestWithDefaultCurrency(t *testing.T) {
	e := WithDefaultCurrency(CashFlow{Name: "Rent", Amount: NO(100), Kind: Expense}, "TWD").(CashFlow)
	if e.Amount.Currency() != "TWD" || e.Kind != Expense {
		t.Errorf("WithDefaultCurrency() = %+v", e)
	}
	a := WithDefaultCurrency(Asset{Name: "Cash", Value: M(5, "EUR")}, "TWD").(Asset)
	if a.Value.Currency() != "EUR" {
		t.Errorf("WithDefaultCurrency() changed an explicit currency: %v", a.Value)
	}
}
