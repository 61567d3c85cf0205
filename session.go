package wealthflow

import "fmt"

// Session is a scenario being edited. It is never persisted.
//
// Original is the baseline the session started from, Current is what the
// user keeps. Releasing an item removes it from Current, keeping it again
// restores the Original version.
type Session struct {
	ID       string   `json:"id,omitempty"` // empty until the scenario is saved once
	Name     string   `json:"name"`
	Current  Snapshot `json:"current"`
	Original Snapshot `json:"original"`
}

// NewSession starts a session on a copy of the live financials.
func NewSession(name string, live Snapshot) *Session {
	return &Session{
		Name:     name,
		Current:  live.Clone(),
		Original: live.Clone(),
	}
}

// LoadSession reopens a saved scenario. The baseline is the live financials,
// not the baseline the scenario was first created from.
func LoadSession(s Scenario, live Snapshot) *Session {
	return &Session{
		ID:       s.ID,
		Name:     s.Name,
		Current:  s.Data.Clone(),
		Original: live.Clone(),
	}
}

// Kept reports whether the item is in the working copy.
func (s *Session) Kept(c Category, id string) bool { return s.Current.Contains(c, id) }

// Toggle releases the item if it is kept, and keeps it again otherwise.
//
// Releasing a liability also releases every kept expense the linker ties to
// it. Keeping a liability again restores the first linked expense of the
// baseline that is not kept yet.
func (s *Session) Toggle(c Category, id string, linker Linker) error {
	if linker == nil {
		linker = NameLinker{}
	}
	cur, orig := &s.Current, &s.Original
	switch c {
	case Assets:
		return toggle(&cur.Assets, orig.Assets, c, id)
	case Incomes:
		return toggle(&cur.Incomes, orig.Incomes, c, id)
	case Expenses:
		return toggle(&cur.Expenses, orig.Expenses, c, id)
	case Liabilities:
		if i := indexOf(cur.Liabilities, id); i >= 0 {
			l := cur.Liabilities[i]
			cur.Liabilities = without(cur.Liabilities, id)
			cur.Expenses = unlink(cur.Expenses, l, linker)
			return nil
		}
		if err := toggle(&cur.Liabilities, orig.Liabilities, c, id); err != nil {
			return err
		}
		l := cur.Liabilities[len(cur.Liabilities)-1]
		cur.Expenses = relink(cur.Expenses, orig.Expenses, l, linker)
		return nil
	}
	return fmt.Errorf("unknown category %q", c)
}

// Rename changes the scenario name.
func (s *Session) Rename(name string) { s.Name = name }

// toggle removes id from *cur when present, or appends the baseline version of
// the item.
func toggle[T Item](cur *[]T, orig []T, c Category, id string) error {
	if i := indexOf(*cur, id); i >= 0 {
		*cur = without(*cur, id)
		return nil
	}
	i := indexOf(orig, id)
	if i < 0 {
		return fmt.Errorf("%w: %s %q is not part of the scenario", ErrUnknownItem, c, id)
	}
	*cur = append(*cur, orig[i])
	return nil
}

func unlink(expenses []CashFlow, l Liability, linker Linker) []CashFlow {
	out := make([]CashFlow, 0, len(expenses))
	for _, e := range expenses {
		if !linker.Linked(l, e) {
			out = append(out, e)
		}
	}
	return out
}

func relink(expenses, baseline []CashFlow, l Liability, linker Linker) []CashFlow {
	for _, e := range baseline {
		if !linker.Linked(l, e) {
			continue
		}
		if indexOf(expenses, e.ID) < 0 {
			return append(expenses, e)
		}
		return expenses
	}
	return expenses
}

// Released lists what the scenario gave up compared to its baseline.
type Released struct {
	Assets      []Asset     `json:"assets"`
	Liabilities []Liability `json:"liabilities"`
	Incomes     []CashFlow  `json:"incomes"`
	Expenses    []CashFlow  `json:"expenses"`
}

// Released returns the items of Original missing from Current.
func (s *Session) Released() Released {
	return Released{
		Assets:      missing(s.Original.Assets, s.Current.Assets),
		Liabilities: missing(s.Original.Liabilities, s.Current.Liabilities),
		Incomes:     missing(s.Original.Incomes, s.Current.Incomes),
		Expenses:    missing(s.Original.Expenses, s.Current.Expenses),
	}
}

// CashEffect is the one-off cash effect of a scenario.
type CashEffect struct {
	CashGenerated Money `json:"cashGenerated"` // selling released assets
	CashRequired  Money `json:"cashRequired"`  // paying off released liabilities
	Net           Money `json:"net"`
}

// Liquidity computes the cash generated and required by the released items.
func (s *Session) Liquidity() CashEffect {
	r := s.Released()
	l := CashEffect{
		CashGenerated: total(r.Assets),
		CashRequired:  total(r.Liabilities),
	}
	l.Net = l.CashGenerated.Sub(l.CashRequired)
	return l
}

// Projection is what the scenario would look like.
type Projection struct {
	Metrics   Metrics   `json:"metrics"`
	Baseline  Metrics   `json:"baseline"` // of the live financials
	Liquidity CashEffect `json:"liquidity"`
	// CashFlowDelta is the change of monthly cash flow against the live financials.
	CashFlowDelta Money `json:"cashFlowDelta"`
}

// Project computes the projection of the session against the live financials.
// It returns a *CurrencyError when the live financials moved to another
// currency since the session was opened.
func (s *Session) Project(live Snapshot) (Projection, error) {
	if err := sameCurrency(s.Current, live); err != nil {
		return Projection{}, err
	}
	if err := sameCurrency(s.Original, live); err != nil {
		return Projection{}, err
	}
	p := Projection{
		Metrics:   ComputeMetrics(s.Current),
		Baseline:  ComputeMetrics(live),
		Liquidity: s.Liquidity(),
	}
	p.CashFlowDelta = p.Metrics.MonthlyCashFlow.Sub(p.Baseline.MonthlyCashFlow)
	return p, nil
}

func (s *Session) clone() *Session {
	return &Session{
		ID:       s.ID,
		Name:     s.Name,
		Current:  s.Current.Clone(),
		Original: s.Original.Clone(),
	}
}
