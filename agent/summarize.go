package agent

import (
	"context"
	"fmt"
	"strings"

	"github.com/etnz/wealthflow"
	"google.golang.org/genai"
)

// Summarize describes in a few words what a scenario changed compared to its
// baseline. It implements wealthflow.Summarizer.
func (g *Gemini) Summarize(ctx context.Context, original, current wealthflow.Snapshot) (string, error) {
	prompt := summaryPrompt(original, current, g.language)
	return g.generate(ctx, "summarize", []*genai.Part{genai.NewPartFromText(prompt)}, nil)
}

func summaryPrompt(original, current wealthflow.Snapshot, language string) string {
	var b strings.Builder
	b.WriteString("Compare the baseline financial state with the simulated scenario state.\n\n")
	b.WriteString("Changes detected (items removed or disposed of):\n")
	for _, c := range wealthflow.Categories {
		fmt.Fprintf(&b, "- Removed %s: %s\n", c, removedNames(original, current, c))
	}
	before, after := wealthflow.ComputeMetrics(original), wealthflow.ComputeMetrics(current)
	fmt.Fprintf(&b, "\nMonthly cash flow goes from %s to %s.\n", before.MonthlyCashFlow, after.MonthlyCashFlow)
	fmt.Fprintf(&b, "Net worth goes from %s to %s.\n\n", before.NetWorth, after.NetWorth)
	fmt.Fprintf(&b, `Write a concise summary in %s explaining what this scenario represents.
Focus on the actions taken (e.g. "Sold the property", "Cut insurance costs") and how they impact the cash flow.
Keep it under 50 words. Answer with the summary only.`, language)
	return b.String()
}

// removedNames lists the names of the items of c released by the scenario.
func removedNames(original, current wealthflow.Snapshot, c wealthflow.Category) string {
	var names []string
	for _, it := range original.Items(c) {
		if !current.Contains(c, it.ItemID()) {
			names = append(names, it.ItemName())
		}
	}
	if len(names) == 0 {
		return "None"
	}
	return strings.Join(names, ", ")
}
