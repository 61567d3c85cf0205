package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/etnz/wealthflow"
	"google.golang.org/genai"
)

const plannerInstruction = `You are an expert Certified Financial Planner specializing in debt management, asset allocation and cash flow optimization.

Your goal:
1. Analyze the net worth and the monthly cash flow.
2. If expenses exceed income, prioritize immediate survival strategies.
3. Suggest which assets to liquidate based on their liquidity and expected return (private equity is hard to sell, bonds are liquid but consider their yield).
4. Suggest which liabilities to pay off first (avalanche or snowball method).
5. Provide specific, actionable steps in %s.`

var adviceSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"summary":          {Type: genai.TypeString, Description: "Short summary of the current situation."},
		"healthScore":      {Type: genai.TypeInteger, Description: "Financial health from 0 (critical) to 100 (excellent)."},
		"immediateActions": {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}},
		"strategicAdvice":  {Type: genai.TypeString, Description: "Detailed paragraph explaining the strategy."},
	},
	Required:         []string{"summary", "healthScore", "immediateActions", "strategicAdvice"},
	PropertyOrdering: []string{"summary", "healthScore", "immediateActions", "strategicAdvice"},
}

// Analyze asks for a diagnosis of the financials. It implements wealthflow.Advisor.
func (g *Gemini) Analyze(ctx context.Context, s wealthflow.Snapshot) (wealthflow.Advice, error) {
	prompt, err := advicePrompt(s)
	if err != nil {
		return wealthflow.Advice{}, err
	}
	var a wealthflow.Advice
	system := fmt.Sprintf(plannerInstruction, g.language)
	if err := g.generateJSON(ctx, "analyze", []*genai.Part{genai.NewPartFromText(prompt)}, system, adviceSchema, &a); err != nil {
		return wealthflow.Advice{}, err
	}
	a.HealthScore = min(max(a.HealthScore, 0), 100)
	return a, nil
}

func advicePrompt(s wealthflow.Snapshot) (string, error) {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return "", fmt.Errorf("could not encode financials: %w", err)
	}
	m := wealthflow.ComputeMetrics(s)
	var b strings.Builder
	b.WriteString("Please analyze my current financial situation based on the following data:\n\n")
	b.Write(data)
	fmt.Fprintf(&b, "\n\nTotal monthly income: %s\n", m.TotalIncome)
	fmt.Fprintf(&b, "Total monthly expenses: %s\n", m.TotalExpenses)
	fmt.Fprintf(&b, "Net worth: %s\n\n", m.NetWorth)
	b.WriteString("Please provide advice on how to optimize my portfolio, especially if I have a cash flow deficit.")
	return b.String(), nil
}
