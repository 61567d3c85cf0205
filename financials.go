package wealthflow

import (
	"errors"
	"fmt"
	"strings"
	"sync"
)

// Financials is the live financial state of a user, edited item by item.
//
// It is the single owner of the live snapshot: readers get copies, and
// subscribers are told about every change so that persistence can follow.
// Financials is safe for concurrent use.
type Financials struct {
	newID func() string

	mu   sync.Mutex
	snap Snapshot
	subs subscribers[Snapshot]
}

// NewFinancials returns live financials starting from a copy of initial.
func NewFinancials(initial Snapshot) *Financials {
	return &Financials{snap: initial.Clone(), newID: NewID}
}

// Snapshot returns a copy of the live financials.
func (f *Financials) Snapshot() Snapshot {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.snap.Clone()
}

// Put adds an item, or replaces the item of the same category with the same
// id. An item without id gets a new one. Put returns the stored item.
func (f *Financials) Put(it Item) (Item, error) {
	if err := Validate(it); err != nil {
		return nil, err
	}
	f.mu.Lock()
	if cur, got := f.snap.currency(), itemCurrency(it); cur != "" && got != "" && got != cur {
		f.mu.Unlock()
		return nil, fmt.Errorf("%s %q is in %s, the financials are in %s", it.Category(), it.ItemName(), got, cur)
	}
	switch v := it.(type) {
	case Asset:
		if v.ID == "" {
			v.ID = f.newID()
		}
		f.snap.Assets, it = put(f.snap.Assets, v), v
	case Liability:
		if v.ID == "" {
			v.ID = f.newID()
		}
		f.snap.Liabilities, it = put(f.snap.Liabilities, v), v
	case CashFlow:
		if v.ID == "" {
			v.ID = f.newID()
		}
		// an edit can move a cash flow from one kind to the other.
		if v.Kind == Income {
			f.snap.Expenses = without(f.snap.Expenses, v.ID)
			f.snap.Incomes = put(f.snap.Incomes, v)
		} else {
			f.snap.Incomes = without(f.snap.Incomes, v.ID)
			f.snap.Expenses = put(f.snap.Expenses, v)
		}
		it = v
	default:
		f.mu.Unlock()
		return nil, fmt.Errorf("unsupported item %T", it)
	}
	notify, snap := f.changed()
	f.mu.Unlock()
	notify(snap)
	return it, nil
}

// Remove deletes an item. It reports whether the item existed.
func (f *Financials) Remove(c Category, id string) bool {
	f.mu.Lock()
	if !f.snap.Contains(c, id) {
		f.mu.Unlock()
		return false
	}
	switch c {
	case Assets:
		f.snap.Assets = without(f.snap.Assets, id)
	case Liabilities:
		f.snap.Liabilities = without(f.snap.Liabilities, id)
	case Incomes:
		f.snap.Incomes = without(f.snap.Incomes, id)
	case Expenses:
		f.snap.Expenses = without(f.snap.Expenses, id)
	}
	notify, snap := f.changed()
	f.mu.Unlock()
	notify(snap)
	return true
}

// Import adds every item of s with a fresh id and returns the stored items.
func (f *Financials) Import(s Snapshot) ([]Item, error) {
	var added []Item
	for _, c := range Categories {
		for _, it := range s.Items(c) {
			it = withoutID(it)
			stored, err := f.Put(it)
			if err != nil {
				return added, fmt.Errorf("could not import %s %q: %w", c, it.ItemName(), err)
			}
			added = append(added, stored)
		}
	}
	return added, nil
}

// Restore replaces the live financials, typically with what was loaded from
// storage. Subscribers are not notified.
func (f *Financials) Restore(s Snapshot) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.snap = s.Clone()
}

// Subscribe registers fn to be called with a copy of the live financials after
// each change. The returned function cancels the subscription.
func (f *Financials) Subscribe(fn func(Snapshot)) (cancel func()) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.subs.add(fn, &f.mu)
}

// changed must be called with the lock held.
func (f *Financials) changed() (func(Snapshot), Snapshot) {
	return f.subs.snapshot(), f.snap.Clone()
}

// currency returns the first currency found in s.
func (s Snapshot) currency() string {
	for _, c := range Categories {
		for _, it := range s.Items(c) {
			if cur := itemCurrency(it); cur != "" {
				return cur
			}
		}
	}
	return ""
}

func itemCurrency(it Item) string {
	if l, ok := it.(Liability); ok && l.Amount.Currency() == "" {
		return l.MonthlyPayment.Currency()
	}
	return it.Magnitude().Currency()
}

func put[T Item](list []T, v T) []T {
	if i := indexOf(list, v.ItemID()); i >= 0 {
		list[i] = v
		return list
	}
	return append(list, v)
}

func withoutID(it Item) Item {
	switch v := it.(type) {
	case Asset:
		v.ID = ""
		return v
	case Liability:
		v.ID, v.LinkedExpenseID = "", ""
		return v
	case CashFlow:
		v.ID = ""
		return v
	}
	return it
}

// Validate checks an item at the data entry boundary: a name, and no negative amount.
func Validate(it Item) error {
	var errs []error
	if strings.TrimSpace(it.ItemName()) == "" {
		errs = append(errs, errors.New("name is required"))
	}
	if it.Magnitude().IsNegative() {
		errs = append(errs, fmt.Errorf("amount must not be negative, got %v", it.Magnitude()))
	}
	switch v := it.(type) {
	case Liability:
		if v.MonthlyPayment.IsNegative() {
			errs = append(errs, fmt.Errorf("monthly payment must not be negative, got %v", v.MonthlyPayment))
		}
	case CashFlow:
		if v.Kind != Income && v.Kind != Expense {
			errs = append(errs, fmt.Errorf("cash flow type must be %q or %q, got %q", Income, Expense, v.Kind))
		}
	}
	return errors.Join(errs...)
}
