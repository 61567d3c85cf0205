package agent

import (
	"context"
	"fmt"

	"github.com/etnz/wealthflow"
	"github.com/etnz/wealthflow/docs"
	"github.com/etnz/wealthflow/renderer"
	"google.golang.org/genai"
)

// DefaultChatModel is the model of the chat experts.
const DefaultChatModel = "gemini-2.5-pro"

func instruction(s string) *genai.Content {
	return &genai.Content{Parts: []*genai.Part{{Text: s}}}
}

// creates the facilitator
func newFacilitator(model string, experts ...*Expert) *Expert {
	if model == "" {
		model = DefaultChatModel
	}
	return &Expert{
		Name:      "Facilitator",
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(experts)},
			},
			SystemInstruction: instruction(`
			You are a professional, empathetic personal financial advisor. You are in charge of the
			conversation and of solving the user's request.

			Learn about the expert's skill that you can get from the Tools to ask them questions.
			They are at your service and 100% dedicated to you, they keep context of your previous questions.

			The user expects you to know their financial situation: ask the Planner first.
			Give concise, actionable answers. When the monthly cash flow is negative, say so first.
		`),
		},
		Library: NewLibrary(experts),
	}
}

// NewResearcher returns an expert grounded on Google Search.
func NewResearcher(model string) *Expert {
	if model == "" {
		model = DefaultChatModel
	}
	return &Expert{
		Name: "Researcher",
		Description: `This is an expert researcher, very well aware of financial products,
		interest rates, real estate and bond markets and the latest economic news.
		Ask the Researcher whenever you need recent or grounding information.`,
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{GoogleSearch: &genai.GoogleSearch{}},
			},
			SystemInstruction: instruction(`
			You are an expert in personal finance markets. You leverage Google Search to
			ground your assertions in a solid truth, and relate the latest news to the question.
			`),
		},
	}
}

// NewPlanner returns the expert reading the user's workspace.
func NewPlanner(ws *wealthflow.Workspace, model string) *Expert {
	if model == "" {
		model = DefaultChatModel
	}
	lib := PlannerFunctions(ws)
	return &Expert{
		Name: "Planner",
		Description: `This is the Planner. It knows the user's assets, liabilities, monthly incomes
		and expenses, and the what-if scenarios they saved.`,
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(lib)},
			},
			SystemInstruction: instruction(`
			You are a financial planner in charge of the user's financials.
			You know how to use the Tools to extract relevant information: the dashboard with
			net worth and monthly cash flow, the saved scenarios and the projection of a scenario.
			You are part of a team of experts, pardon their approximative language and figure out what they meant.
			`),
		},
		Library: NewLibrary(lib),
	}
}

// PlannerFunctions are the functions reading a workspace.
func PlannerFunctions(ws *wealthflow.Workspace) []Function {
	return []Function{
		&Func{
			Decl: &genai.FunctionDeclaration{
				Name:        "Dashboard",
				Description: "Dashboard returns the metrics and every item of the user's live financials.",
				Response: &genai.Schema{
					Type:        genai.TypeString,
					Description: "A markdown document with the metrics table, then one table per category.",
				},
			},
			Func: func(_ context.Context, id string, _ map[string]any) *genai.FunctionResponse {
				return outputResponse(id, "Dashboard", renderer.DashboardMarkdown(ws.Financials.Snapshot()))
			},
		},
		&Func{
			Decl: &genai.FunctionDeclaration{
				Name:        "Scenarios",
				Description: "Scenarios lists the saved what-if scenarios with their id, metrics and summary.",
				Response: &genai.Schema{
					Type:        genai.TypeString,
					Description: "A markdown table of the saved scenarios.",
				},
			},
			Func: func(_ context.Context, id string, _ map[string]any) *genai.FunctionResponse {
				return outputResponse(id, "Scenarios", renderer.ScenariosMarkdown(ws.Simulator.Scenarios(), ws.Simulator.Limit()))
			},
		},
		&Func{
			Decl: &genai.FunctionDeclaration{
				Name:        "Projection",
				Description: "Projection compares a saved scenario to the live financials.\n\n" + must(docs.GetTopic("scenarios")),
				Parameters: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"scenario": {Type: genai.TypeString, Description: "The id or the name of the scenario."},
					},
					Required: []string{"scenario"},
				},
				Response: &genai.Schema{
					Type:        genai.TypeString,
					Description: "A markdown document with the metrics before and after, the liquidity and the released items.",
				},
			},
			Func: func(_ context.Context, id string, args map[string]any) *genai.FunctionResponse {
				ref, _ := args["scenario"].(string)
				sc, ok := findScenario(ws.Simulator.Scenarios(), ref)
				if !ok {
					return errorResponse(id, "Projection", fmt.Errorf("%w: %q", wealthflow.ErrScenarioNotFound, ref))
				}
				live := ws.Financials.Snapshot()
				s := wealthflow.LoadSession(sc, live)
				p, err := s.Project(live)
				if err != nil {
					return errorResponse(id, "Projection", err)
				}
				return outputResponse(id, "Projection", renderer.ProjectionMarkdown(s, p))
			},
		},
	}
}

func findScenario(list []wealthflow.Scenario, ref string) (wealthflow.Scenario, bool) {
	for _, sc := range list {
		if sc.ID == ref || sc.Name == ref {
			return sc, true
		}
	}
	return wealthflow.Scenario{}, false
}

func must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}
