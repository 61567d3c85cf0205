package renderer

import (
	"bytes"
	"fmt"

	"github.com/etnz/wealthflow"
	md "github.com/nao1215/markdown"
)

// DashboardMarkdown renders the metrics and every item of a snapshot.
func DashboardMarkdown(s wealthflow.Snapshot) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Financial Dashboard")
	metricsTable(doc, wealthflow.ComputeMetrics(s))

	doc.H2("Assets")
	if len(s.Assets) == 0 {
		doc.PlainText("No assets.")
	} else {
		doc.Table(assetTable(s.Assets))
	}

	doc.H2("Liabilities")
	if len(s.Liabilities) == 0 {
		doc.PlainText("No liabilities.")
	} else {
		doc.Table(liabilityTable(s.Liabilities))
	}

	doc.H2("Monthly Incomes")
	if len(s.Incomes) == 0 {
		doc.PlainText("No incomes.")
	} else {
		doc.Table(cashFlowTable(s.Incomes))
	}

	doc.H2("Monthly Expenses")
	if len(s.Expenses) == 0 {
		doc.PlainText("No expenses.")
	} else {
		doc.Table(cashFlowTable(s.Expenses))
	}

	return doc.String()
}

// MetricsMarkdown renders the metrics of a snapshot only.
func MetricsMarkdown(m wealthflow.Metrics) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)
	metricsTable(doc, m)
	return doc.String()
}

func metricsTable(doc *md.Markdown, m wealthflow.Metrics) {
	doc.Table(md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight},
		Header:    []string{"Metric", "Value"},
		Rows: [][]string{
			{"Net Worth", m.NetWorth.String()},
			{"Total Assets", m.TotalAssets.String()},
			{"Total Liabilities", m.TotalLiabilities.String()},
			{"Monthly Income", m.TotalIncome.String()},
			{"Monthly Expenses", m.TotalExpenses.String()},
			{"Monthly Cash Flow", cashFlow(m.MonthlyCashFlow)},
		},
	})
}

func assetTable(list []wealthflow.Asset) md.TableSet {
	t := md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignLeft, md.AlignLeft, md.AlignRight, md.AlignRight, md.AlignLeft},
		Header:    []string{"ID", "Name", "Type", "Value", "Return", "Liquidity"},
		Rows:      [][]string{},
	}
	for _, a := range list {
		t.Rows = append(t.Rows, []string{shortID(a.ID), a.Name, string(a.Type), a.Value.String(), a.ReturnRate.String(), string(a.Liquidity)})
	}
	return t
}

func liabilityTable(list []wealthflow.Liability) md.TableSet {
	t := md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignLeft, md.AlignLeft, md.AlignRight, md.AlignRight, md.AlignRight},
		Header:    []string{"ID", "Name", "Type", "Amount", "Rate", "Monthly Payment"},
		Rows:      [][]string{},
	}
	for _, l := range list {
		t.Rows = append(t.Rows, []string{shortID(l.ID), l.Name, string(l.Type), l.Amount.String(), l.InterestRate.String(), l.MonthlyPayment.String()})
	}
	return t
}

func cashFlowTable(list []wealthflow.CashFlow) md.TableSet {
	t := md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignLeft, md.AlignRight},
		Header:    []string{"ID", "Name", "Amount"},
		Rows:      [][]string{},
	}
	for _, c := range list {
		t.Rows = append(t.Rows, []string{shortID(c.ID), c.Name, c.Amount.String()})
	}
	return t
}

// cashFlow flags a deficit.
func cashFlow(m wealthflow.Money) string {
	if m.IsNegative() {
		return fmt.Sprintf("%s (deficit)", m)
	}
	return m.String()
}
