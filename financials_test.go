package wealthflow

import (
	"errors"
	"slices"
	"strings"
	"testing"
)

func TestFinancials_Put(t *testing.T) {
	f := NewFinancials(household())
	f.newID = sequence("new")

	t.Run("add with a fresh id", func(t *testing.T) {
		it, err := f.Put(Asset{Name: "Savings", Type: Cash, Value: TWD(100_000), Liquidity: HighLiquidity})
		if err != nil {
			t.Fatal(err)
		}
		if it.ItemID() != "new-1" {
			t.Errorf("ItemID() = %q, want new-1", it.ItemID())
		}
		if got := ids(f.Snapshot().Assets); !slices.Equal(got, []string{"a1", "new-1"}) {
			t.Errorf("Assets = %v", got)
		}
	})

	t.Run("replace in place", func(t *testing.T) {
		_, err := f.Put(Asset{ID: "a1", Name: "Private equity", Value: TWD(2_500_000)})
		if err != nil {
			t.Fatal(err)
		}
		s := f.Snapshot()
		if len(s.Assets) != 2 || !s.Assets[0].Value.Equal(TWD(2_500_000)) {
			t.Errorf("Assets = %+v", s.Assets)
		}
	})

	t.Run("move an expense to incomes", func(t *testing.T) {
		_, err := f.Put(CashFlow{ID: "e1", Name: "Rent received", Amount: TWD(20_000), Kind: Income})
		if err != nil {
			t.Fatal(err)
		}
		s := f.Snapshot()
		if len(s.Expenses) != 0 {
			t.Errorf("Expenses = %v, want none", ids(s.Expenses))
		}
		if got := ids(s.Incomes); !slices.Equal(got, []string{"i1", "e1"}) {
			t.Errorf("Incomes = %v", got)
		}
	})

	t.Run("other currency", func(t *testing.T) {
		_, err := f.Put(Asset{Name: "Paris flat", Value: M(300_000, "EUR")})
		if err == nil || !strings.Contains(err.Error(), "in EUR, the financials are in TWD") {
			t.Errorf("Put() error = %v", err)
		}
		if _, err := f.Put(Asset{Name: "Coins", Value: NO(10)}); err != nil {
			t.Errorf("Put() without currency error = %v", err)
		}
	})

	t.Run("invalid item", func(t *testing.T) {
		before := f.Snapshot()
		if _, err := f.Put(Liability{Name: " ", Amount: TWD(-1)}); err == nil {
			t.Error("Put() should refuse an invalid item")
		}
		if len(f.Snapshot().Liabilities) != len(before.Liabilities) {
			t.Error("an invalid item was stored")
		}
	})
}

func TestFinancials_Remove(t *testing.T) {
	f := NewFinancials(household())
	if !f.Remove(Expenses, "e1") {
		t.Error("Remove() = false, want true")
	}
	if f.Remove(Expenses, "e1") {
		t.Error("second Remove() = true, want false")
	}
	if f.Remove(Assets, "e1") {
		t.Error("Remove() in the wrong category = true, want false")
	}
	if n := len(f.Snapshot().Expenses); n != 0 {
		t.Errorf("len(Expenses) = %d, want 0", n)
	}
}

func TestFinancials_Import(t *testing.T) {
	f := NewFinancials(Snapshot{})
	f.newID = sequence("imp")
	in := Snapshot{
		Assets:      []Asset{{ID: "bank-1", Name: "Checking", Value: TWD(50_000)}},
		Liabilities: []Liability{{ID: "bank-2", Name: "Card", Amount: TWD(3_000), LinkedExpenseID: "bank-9"}},
	}
	added, err := f.Import(in)
	if err != nil {
		t.Fatal(err)
	}
	if len(added) != 2 || added[0].ItemID() != "imp-1" || added[1].ItemID() != "imp-2" {
		t.Errorf("Import() = %+v", added)
	}
	if l := f.Snapshot().Liabilities[0]; l.LinkedExpenseID != "" {
		t.Errorf("LinkedExpenseID = %q, want it dropped", l.LinkedExpenseID)
	}

	_, err = f.Import(Snapshot{Assets: []Asset{{Name: ""}}})
	if err == nil || !strings.Contains(err.Error(), "name is required") {
		t.Errorf("Import() error = %v, want name is required", err)
	}
}

func TestFinancials_Subscribe(t *testing.T) {
	f := NewFinancials(Snapshot{})
	var got []int
	cancel := f.Subscribe(func(s Snapshot) { got = append(got, s.Len(Assets)) })

	f.Put(Asset{Name: "A", Value: TWD(1)})
	f.Put(Asset{Name: "B", Value: TWD(2)})
	f.Remove(Assets, "nope") // no change, no notification
	f.Restore(Snapshot{})    // silent
	cancel()
	f.Put(Asset{Name: "C", Value: TWD(3)})

	if !slices.Equal(got, []int{1, 2}) {
		t.Errorf("notifications = %v, want [1 2]", got)
	}
}

func TestFinancials_Snapshot(t *testing.T) {
	f := NewFinancials(household())
	s := f.Snapshot()
	s.Assets[0].Name = "changed"
	if f.Snapshot().Assets[0].Name == "changed" {
		t.Error("Snapshot() shares memory with the live financials")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		item    Item
		wantErr string
	}{
		{"valid asset", Asset{Name: "Cash", Value: TWD(0)}, ""},
		{"missing name", Asset{Value: TWD(1)}, "name is required"},
		{"negative value", Asset{Name: "x", Value: TWD(-1)}, "amount must not be negative"},
		{"negative payment", Liability{Name: "x", MonthlyPayment: TWD(-1)}, "monthly payment"},
		{"bad kind", CashFlow{Name: "x", Kind: "Bonus"}, "cash flow type"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.item)
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() error = %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() error = %v, want %q", err, tt.wantErr)
			}
		})
	}

	t.Run("errors are joined", func(t *testing.T) {
		err := Validate(Asset{Value: TWD(-5)})
		var joined interface{ Unwrap() []error }
		if !errors.As(err, &joined) || len(joined.Unwrap()) != 2 {
			t.Errorf("Validate() error = %v, want two errors", err)
		}
	})
}

func TestWorkspace(t *testing.T) {
	doc := Document{
		Financials:   household(),
		Scenarios:    []Scenario{{ID: "s1", Name: "Old"}},
		SavedAdvices: []SavedAdvice{{ID: "adv1", Title: "first"}},
	}
	w := NewWorkspace(doc, fixedSummary("summary"), WithIDs(sequence("sc")), WithLogger(quietLogger()))
	defer w.Close()

	var docs []Document
	w.Subscribe(func(d Document) { docs = append(docs, d) })

	w.Financials.Put(Asset{Name: "Cash", Value: TWD(1)})
	w.Simulator.Start()
	w.Simulator.Toggle(Assets, "a1")
	if _, err := w.Simulator.Save(t.Context()); err != nil {
		t.Fatal(err)
	}
	w.SaveAdvice(Advice{StrategicAdvice: "Build an emergency fund.", HealthScore: 140}, day)

	if len(docs) != 3 {
		t.Fatalf("got %d notifications, want 3", len(docs))
	}
	last := docs[2]
	if len(last.Financials.Assets) != 2 || len(last.Scenarios) != 2 || len(last.SavedAdvices) != 2 {
		t.Errorf("last document = %+v", last)
	}
	adv := last.SavedAdvices[0]
	if adv.Content != "Build an emergency fund." || adv.Score != 100 || adv.Title != "Financial analysis - 2025-03-01 10:00" {
		t.Errorf("saved advice = %+v", adv)
	}

	w.Restore(Document{})
	if d := w.Document(); len(d.Scenarios) != 0 || len(d.SavedAdvices) != 0 || len(d.Financials.Assets) != 0 {
		t.Errorf("Document() after Restore = %+v", d)
	}
	if len(docs) != 3 {
		t.Error("Restore() should not notify")
	}
}
