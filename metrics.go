package wealthflow

// Metrics are the figures derived from a Snapshot. They are always recomputed,
// never stored.
type Metrics struct {
	TotalAssets      Money `json:"totalAssets"`
	TotalLiabilities Money `json:"totalLiabilities"`
	NetWorth         Money `json:"netWorth"`
	TotalIncome      Money `json:"totalIncome"`
	TotalExpenses    Money `json:"totalExpenses"`
	MonthlyCashFlow  Money `json:"monthlyCashFlow"`
}

// ComputeMetrics aggregates a snapshot. It never fails: the total of an empty
// collection is zero, and a negative cash flow is a valid deficit.
func ComputeMetrics(s Snapshot) Metrics {
	m := Metrics{
		TotalAssets:      total(s.Assets),
		TotalLiabilities: total(s.Liabilities),
		TotalIncome:      total(s.Incomes),
		TotalExpenses:    total(s.Expenses),
	}
	m.NetWorth = m.TotalAssets.Sub(m.TotalLiabilities)
	m.MonthlyCashFlow = m.TotalIncome.Sub(m.TotalExpenses)
	return m
}

// Surplus reports whether the monthly cash flow is not negative.
func (m Metrics) Surplus() bool { return !m.MonthlyCashFlow.IsNegative() }
