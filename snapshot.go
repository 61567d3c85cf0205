package wealthflow

import "slices"

// Snapshot captures the four collections of financial items at one instant.
//
// A Snapshot is a plain value: its slices must never be shared between two
// snapshots that can evolve independently, use Clone to take a copy.
type Snapshot struct {
	Assets      []Asset     `json:"assets" yaml:"assets"`
	Liabilities []Liability `json:"liabilities" yaml:"liabilities"`
	Incomes     []CashFlow  `json:"incomes" yaml:"incomes"`
	Expenses    []CashFlow  `json:"expenses" yaml:"expenses"`
}

// Clone returns a full structural copy of s. Items are values, so copying the
// slices is enough to guarantee no shared mutable state.
func (s Snapshot) Clone() Snapshot {
	return Snapshot{
		Assets:      slices.Clone(s.Assets),
		Liabilities: slices.Clone(s.Liabilities),
		Incomes:     slices.Clone(s.Incomes),
		Expenses:    slices.Clone(s.Expenses),
	}
}

// Len returns the number of items in a category.
func (s Snapshot) Len(c Category) int {
	switch c {
	case Assets:
		return len(s.Assets)
	case Liabilities:
		return len(s.Liabilities)
	case Incomes:
		return len(s.Incomes)
	case Expenses:
		return len(s.Expenses)
	}
	return 0
}

// Contains reports whether the category holds an item with the given id.
func (s Snapshot) Contains(c Category, id string) bool {
	_, ok := s.Item(c, id)
	return ok
}

// Item looks up an item by category and id.
func (s Snapshot) Item(c Category, id string) (Item, bool) {
	switch c {
	case Assets:
		return lookup(s.Assets, id)
	case Liabilities:
		return lookup(s.Liabilities, id)
	case Incomes:
		return lookup(s.Incomes, id)
	case Expenses:
		return lookup(s.Expenses, id)
	}
	return nil, false
}

// Items returns the items of a category through the Item interface.
func (s Snapshot) Items(c Category) []Item {
	switch c {
	case Assets:
		return items(s.Assets)
	case Liabilities:
		return items(s.Liabilities)
	case Incomes:
		return items(s.Incomes)
	case Expenses:
		return items(s.Expenses)
	}
	return nil
}

// Find looks up an item by id in any category.
func (s Snapshot) Find(id string) (Item, bool) {
	for _, c := range Categories {
		if it, ok := s.Item(c, id); ok {
			return it, true
		}
	}
	return nil, false
}

func lookup[T Item](list []T, id string) (Item, bool) {
	if i := indexOf(list, id); i >= 0 {
		return list[i], true
	}
	return nil, false
}

func items[T Item](list []T) []Item {
	out := make([]Item, len(list))
	for i, it := range list {
		out[i] = it
	}
	return out
}
