package renderer

import (
	"bytes"
	"fmt"

	"github.com/etnz/wealthflow"
	md "github.com/nao1215/markdown"
)

// ProjectionMarkdown renders a scenario being edited: its figures against the
// live financials, the one-off liquidity and the released items.
func ProjectionMarkdown(s *wealthflow.Session, p wealthflow.Projection) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("Scenario: %s", s.Name))

	m, b := p.Metrics, p.Baseline
	doc.Table(md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight, md.AlignRight, md.AlignRight},
		Header:    []string{"Metric", "Current", "Scenario", "Change"},
		Rows: [][]string{
			{"Net Worth", b.NetWorth.String(), m.NetWorth.String(), m.NetWorth.Sub(b.NetWorth).SignedString()},
			{"Total Assets", b.TotalAssets.String(), m.TotalAssets.String(), m.TotalAssets.Sub(b.TotalAssets).SignedString()},
			{"Total Liabilities", b.TotalLiabilities.String(), m.TotalLiabilities.String(), m.TotalLiabilities.Sub(b.TotalLiabilities).SignedString()},
			{"Monthly Cash Flow", cashFlow(b.MonthlyCashFlow), cashFlow(m.MonthlyCashFlow), p.CashFlowDelta.SignedString()},
		},
	})

	doc.H2("Liquidity")
	l := p.Liquidity
	doc.Table(md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight},
		Header:    []string{"", "Amount"},
		Rows: [][]string{
			{"Cash generated (assets sold)", l.CashGenerated.String()},
			{"Cash required (liabilities paid off)", l.CashRequired.String()},
			{"Net", l.Net.SignedString()},
		},
	})

	doc.H2("Released")
	if lines := releasedLines(s.Released()); len(lines) > 0 {
		doc.BulletList(lines...)
	} else {
		doc.PlainText("Nothing released yet.")
	}

	return doc.String()
}

// ScenariosMarkdown renders the list of saved scenarios.
func ScenariosMarkdown(list []wealthflow.Scenario, limit int) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("Saved Scenarios (%d/%d)", len(list), limit))
	if len(list) == 0 {
		doc.PlainText("No saved scenario.")
		return doc.String()
	}
	t := md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignLeft, md.AlignRight, md.AlignRight, md.AlignLeft},
		Header:    []string{"ID", "Name", "Net Worth", "Cash Flow", "Summary"},
		Rows:      [][]string{},
	}
	for _, sc := range list {
		m := wealthflow.ComputeMetrics(sc.Data)
		t.Rows = append(t.Rows, []string{shortID(sc.ID), sc.Name, m.NetWorth.String(), cashFlow(m.MonthlyCashFlow), sc.Summary})
	}
	doc.Table(t)
	return doc.String()
}

func releasedLines(r wealthflow.Released) []string {
	var lines []string
	for _, a := range r.Assets {
		lines = append(lines, fmt.Sprintf("Sell %s (%s)", a.Name, a.Value))
	}
	for _, l := range r.Liabilities {
		lines = append(lines, fmt.Sprintf("Pay off %s (%s)", l.Name, l.Amount))
	}
	for _, c := range r.Incomes {
		lines = append(lines, fmt.Sprintf("Stop income %s (%s)", c.Name, c.Amount))
	}
	for _, c := range r.Expenses {
		lines = append(lines, fmt.Sprintf("Cut expense %s (%s)", c.Name, c.Amount))
	}
	return lines
}
