package wealthflow

import (
	"testing"
)

func TestLinkKey(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"Home Mortgage Payment", "home"},
		{"  Car-Loan  ", "car"},
		{"Mortgage", ""},
		{"Credit card bill", "creditcard"},
		{"房屋貸款", "房屋"},
		{"房貸支出", ""},
		{"", ""},
	}
	for _, tt := range tests {
		if got := LinkKey(tt.name); got != tt.want {
			t.Errorf("LinkKey(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestNameLinker(t *testing.T) {
	tests := []struct {
		liability, expense string
		want               bool
	}{
		{"Mortgage", "Mortgage Payment", true},
		{"Home Mortgage", "Home Mortgage Payment", true},
		{"HOME mortgage", "home-mortgage fee", true},
		{"Car Loan", "Groceries", false},
		{"Car Loan", "Car insurance", true}, // a known false positive
		{"房貸", "房貸支出", true},
		{"房屋貸款", "房貸支出", false}, // needs an explicit link
		{"Loan", "", false},
		{"", "Rent", false},
	}
	for _, tt := range tests {
		l := Liability{ID: "l", Name: tt.liability}
		e := CashFlow{ID: "e", Name: tt.expense, Kind: Expense}
		if got := (NameLinker{}).Linked(l, e); got != tt.want {
			t.Errorf("NameLinker.Linked(%q, %q) = %v, want %v", tt.liability, tt.expense, got, tt.want)
		}
	}
}

func TestExplicitLinker(t *testing.T) {
	e := CashFlow{ID: "e1", Name: "Bank transfer", Kind: Expense}
	if !(ExplicitLinker{}).Linked(Liability{Name: "Mortgage", LinkedExpenseID: "e1"}, e) {
		t.Error("liability referencing the expense should be linked")
	}
	if (ExplicitLinker{}).Linked(Liability{Name: "Bank transfer"}, e) {
		t.Error("liability without reference should not be linked, whatever its name")
	}
	if (ExplicitLinker{}).Linked(Liability{Name: "Mortgage"}, CashFlow{Name: "Rent"}) {
		t.Error("two empty ids should not be linked")
	}
}

func TestExplicitNameLinker(t *testing.T) {
	linker, err := ParseLinker("explicit+name")
	if err != nil {
		t.Fatal(err)
	}
	e := CashFlow{ID: "e1", Name: "房貸支出", Kind: Expense}
	if linker.Linked(Liability{Name: "房屋貸款"}, e) {
		t.Error("房屋貸款 should not be linked to 房貸支出 by name")
	}
	if !linker.Linked(Liability{Name: "房屋貸款", LinkedExpenseID: "e1"}, e) {
		t.Error("房屋貸款 should be linked to 房貸支出 once the link is set")
	}
	if !linker.Linked(Liability{Name: "Mortgage"}, CashFlow{ID: "e2", Name: "Mortgage Payment", Kind: Expense}) {
		t.Error("names should still link")
	}
}

func TestFuzzyLinker(t *testing.T) {
	tests := []struct {
		liability, expense string
		threshold          float64
		want               bool
	}{
		{"Renovation loan", "Renovaton payment", 0, true},
		{"Mortgage", "Mortgage Payment", 0, true},
		{"Studnet loan", "Student loan payment", 0, false},
		{"Studnet loan", "Student loan payment", 0.7, true},
		{"Car Loan", "Groceries", 0, false},
	}
	for _, tt := range tests {
		l := Liability{ID: "l", Name: tt.liability}
		e := CashFlow{ID: "e", Name: tt.expense, Kind: Expense}
		if got := (FuzzyLinker{Threshold: tt.threshold}).Linked(l, e); got != tt.want {
			t.Errorf("FuzzyLinker{%v}.Linked(%q, %q) = %v, want %v", tt.threshold, tt.liability, tt.expense, got, tt.want)
		}
	}
}

func TestParseLinker(t *testing.T) {
	for _, name := range []string{"", "name", "Explicit", "fuzzy", "explicit+name"} {
		if _, err := ParseLinker(name); err != nil {
			t.Errorf("ParseLinker(%q) error = %v", name, err)
		}
	}
	if _, err := ParseLinker("regexp"); err == nil {
		t.Error("ParseLinker(\"regexp\") should fail")
	}

	l, _ := ParseLinker("explicit+name")
	byID := Liability{Name: "Mortgage", LinkedExpenseID: "e9"}
	if !l.Linked(byID, CashFlow{ID: "e9", Name: "Transfer"}) {
		t.Error("explicit+name should link by id")
	}
	if !l.Linked(byID, CashFlow{ID: "e1", Name: "Mortgage Payment"}) {
		t.Error("explicit+name should link by name")
	}
}
