package agent

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/etnz/wealthflow"
	"github.com/sirupsen/logrus"
	"google.golang.org/genai"
)

func reply(text string) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{Candidates: []*genai.Candidate{{
		Content: &genai.Content{Role: genai.RoleModel, Parts: []*genai.Part{{Text: text}}},
	}}}
}

// fakeGenerator records the last request and answers with a fixed response.
type fakeGenerator struct {
	text string
	err  error

	model    string
	contents []*genai.Content
	config   *genai.GenerateContentConfig
}

func (f *fakeGenerator) GenerateContent(_ context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	f.model, f.contents, f.config = model, contents, config
	if f.err != nil {
		return nil, f.err
	}
	return reply(f.text), nil
}

// prompt returns the text sent in the last request.
func (f *fakeGenerator) prompt() string {
	var b strings.Builder
	for _, c := range f.contents {
		for _, p := range c.Parts {
			b.WriteString(p.Text)
		}
	}
	return b.String()
}

func quiet() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func household() wealthflow.Snapshot {
	m := func(v int) wealthflow.Money { return wealthflow.M(v, "TWD") }
	return wealthflow.Snapshot{
		Assets:      []wealthflow.Asset{{ID: "a1", Name: "Private equity", Value: m(2_000_000)}, {ID: "a2", Name: "Home", Value: m(15_000_000)}},
		Liabilities: []wealthflow.Liability{{ID: "l1", Name: "Mortgage", Amount: m(1_200_000)}},
		Incomes:     []wealthflow.CashFlow{{ID: "i1", Name: "Salary", Amount: m(80_000), Kind: wealthflow.Income}},
		Expenses:    []wealthflow.CashFlow{{ID: "e1", Name: "Mortgage Payment", Amount: m(45_000), Kind: wealthflow.Expense}, {ID: "e2", Name: "Insurance fee", Amount: m(5_000), Kind: wealthflow.Expense}},
	}
}

func TestSummarize(t *testing.T) {
	gen := &fakeGenerator{text: "  Sold the house and cut insurance.\n"}
	g := newGemini(gen, WithLogger(quiet()), WithLanguage("Traditional Chinese"))

	current := household()
	current.Assets = current.Assets[:1]
	current.Expenses = current.Expenses[:1]

	got, err := g.Summarize(context.Background(), household(), current)
	if err != nil {
		t.Fatalf("Summarize() error = %v", err)
	}
	if want := "Sold the house and cut insurance."; got != want {
		t.Errorf("Summarize() = %q, want %q", got, want)
	}
	if gen.model != DefaultModel {
		t.Errorf("model = %q, want %q", gen.model, DefaultModel)
	}
	p := gen.prompt()
	for _, want := range []string{"Removed assets: Home", "Removed expenses: Insurance fee", "Removed liabilities: None", "Traditional Chinese", "50 words"} {
		if !strings.Contains(p, want) {
			t.Errorf("prompt misses %q:\n%s", want, p)
		}
	}
}

func TestSummarize_Errors(t *testing.T) {
	t.Run("request fails", func(t *testing.T) {
		boom := errors.New("quota exceeded")
		g := newGemini(&fakeGenerator{err: boom}, WithLogger(quiet()))
		if _, err := g.Summarize(context.Background(), household(), household()); !errors.Is(err, boom) {
			t.Errorf("Summarize() error = %v, want %v", err, boom)
		}
	})
	t.Run("empty response", func(t *testing.T) {
		g := newGemini(&fakeGenerator{text: "  "}, WithLogger(quiet()))
		if _, err := g.Summarize(context.Background(), household(), household()); err == nil {
			t.Error("Summarize() should fail on an empty response")
		}
	})
}

func TestAnalyze(t *testing.T) {
	gen := &fakeGenerator{text: "```json\n" + `{"summary":"Tight cash flow.","healthScore":120,"immediateActions":["Cut insurance"],"strategicAdvice":"Keep the bonds."}` + "\n```"}
	g := newGemini(gen, WithLogger(quiet()), WithModel("gemini-test"))

	a, err := g.Analyze(context.Background(), household())
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	if a.Summary != "Tight cash flow." || a.HealthScore != 100 || len(a.ImmediateActions) != 1 || a.StrategicAdvice != "Keep the bonds." {
		t.Errorf("Analyze() = %+v", a)
	}
	if gen.model != "gemini-test" {
		t.Errorf("model = %q", gen.model)
	}
	if gen.config == nil || gen.config.ResponseMIMEType != "application/json" || gen.config.ResponseSchema == nil || gen.config.SystemInstruction == nil {
		t.Errorf("config = %+v, want JSON mode with a schema and instructions", gen.config)
	}
	if p := gen.prompt(); !strings.Contains(p, "Private equity") || !strings.Contains(p, "Total monthly income") {
		t.Errorf("prompt misses the financials:\n%s", p)
	}

	t.Run("invalid JSON", func(t *testing.T) {
		g := newGemini(&fakeGenerator{text: "I cannot help"}, WithLogger(quiet()))
		if _, err := g.Analyze(context.Background(), household()); err == nil || !strings.Contains(err.Error(), "invalid JSON") {
			t.Errorf("Analyze() error = %v", err)
		}
	})
}

func TestParseStatement(t *testing.T) {
	gen := &fakeGenerator{text: `{
		"assets": [
			{"name": "Checking", "type": "cash", "value": 52000.5, "liquidity": "High"},
			{"name": "TSMC", "type": "equity", "value": 100000},
			{"name": "", "type": "cash", "value": 1}
		],
		"liabilities": [
			{"name": "Credit card bill", "type": "credit_card", "amount": -3200, "monthlyPayment": 3200}
		]
	}`}
	g := newGemini(gen, WithLogger(quiet()), WithCurrency("TWD"))

	s, err := g.ParseStatement(context.Background(), []byte{0xff, 0xd8}, "")
	if err != nil {
		t.Fatalf("ParseStatement() error = %v", err)
	}
	if len(s.Assets) != 2 || len(s.Liabilities) != 1 {
		t.Fatalf("ParseStatement() = %+v", s)
	}
	if a := s.Assets[0]; a.Type != wealthflow.Cash || a.Liquidity != wealthflow.HighLiquidity || !a.Value.Equal(wealthflow.M(52000.5, "TWD")) || a.Value.Currency() != "TWD" {
		t.Errorf("checking = %+v", a)
	}
	if a := s.Assets[1]; a.Type != wealthflow.OtherAsset || a.Liquidity != wealthflow.MediumLiquidity {
		t.Errorf("unknown type should fall back: %+v", a)
	}
	if l := s.Liabilities[0]; l.Type != wealthflow.CreditCard || !l.Amount.Equal(wealthflow.M(3200, "TWD")) {
		t.Errorf("card = %+v", l)
	}
	if n := len(gen.contents[0].Parts); n != 2 || gen.contents[0].Parts[0].InlineData == nil || gen.contents[0].Parts[0].InlineData.MIMEType != "image/jpeg" {
		t.Errorf("request should carry the image first, got %d parts", n)
	}

	if _, err := g.ParseStatement(context.Background(), nil, "image/png"); err == nil {
		t.Error("ParseStatement() should refuse an empty image")
	}
}

// fakeChat replays responses in order.
type fakeChat struct {
	responses []*genai.GenerateContentResponse
	sent      [][]*genai.Part
}

func (f *fakeChat) Send(_ context.Context, parts ...*genai.Part) (*genai.GenerateContentResponse, error) {
	f.sent = append(f.sent, parts)
	if len(f.responses) == 0 {
		return nil, errors.New("no more responses")
	}
	r := f.responses[0]
	f.responses = f.responses[1:]
	return r, nil
}

func functionCall(name string, args map[string]any) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{Candidates: []*genai.Candidate{{
		Content: &genai.Content{Parts: []*genai.Part{{FunctionCall: &genai.FunctionCall{ID: "call-1", Name: name, Args: args}}}},
	}}}
}

func TestExpert_Ask(t *testing.T) {
	ws := wealthflow.NewWorkspace(wealthflow.Document{Financials: household()}, nil)
	defer ws.Close()

	planner := NewPlanner(ws, "")
	c := &fakeChat{responses: []*genai.GenerateContentResponse{
		functionCall("Dashboard", nil),
		reply("Your net worth is positive."),
	}}
	planner.chat = c

	got, err := planner.Ask(context.Background(), &genai.Part{Text: "How am I doing?"})
	if err != nil {
		t.Fatalf("Ask() error = %v", err)
	}
	if text(got) != "Your net worth is positive." {
		t.Errorf("Ask() = %q", text(got))
	}
	if len(c.sent) != 2 {
		t.Fatalf("sent %d messages, want 2", len(c.sent))
	}
	fr := c.sent[1][0].FunctionResponse
	if fr == nil || fr.Name != "Dashboard" || fr.ID != "call-1" {
		t.Fatalf("function response = %+v", fr)
	}
	if out, _ := fr.Response["output"].(string); !strings.Contains(out, "# Financial Dashboard") {
		t.Errorf("dashboard output = %q", out)
	}
}

func TestExpert_Call(t *testing.T) {
	e := NewExpert("Echo", "repeats")
	e.chat = &fakeChat{responses: []*genai.GenerateContentResponse{reply("pong")}}

	if r := e.Call(context.Background(), "1", map[string]any{"question": 42}); r.Response["error"] == nil {
		t.Errorf("Call() with a bad argument = %+v, want an error", r.Response)
	}
	r := e.Call(context.Background(), "2", map[string]any{"question": "ping"})
	if r.Response["output"] != "pong" {
		t.Errorf("Call() = %+v, want pong", r.Response)
	}
	if r := e.Call(context.Background(), "3", map[string]any{"question": "again"}); r.Response["error"] == nil {
		t.Errorf("Call() after a chat failure = %+v, want an error", r.Response)
	}
}

func TestPlannerFunctions(t *testing.T) {
	ws := wealthflow.NewWorkspace(wealthflow.Document{
		Financials: household(),
		Scenarios:  []wealthflow.Scenario{{ID: "s1", Name: "Sell the house", Data: wealthflow.Snapshot{Assets: household().Assets[:1]}}},
	}, nil)
	defer ws.Close()
	lib := NewLibrary(PlannerFunctions(ws))

	call := func(name string, args map[string]any) map[string]any {
		return lib(context.Background(), &genai.FunctionCall{ID: "x", Name: name, Args: args}).Response
	}

	if out, _ := call("Scenarios", nil)["output"].(string); !strings.Contains(out, "Sell the house") {
		t.Errorf("Scenarios = %q", out)
	}
	if out, _ := call("Projection", map[string]any{"scenario": "Sell the house"})["output"].(string); !strings.Contains(out, "Sell Home") {
		t.Errorf("Projection = %q", out)
	}
	if r := call("Projection", map[string]any{"scenario": "nope"}); r["error"] == nil {
		t.Errorf("Projection of an unknown scenario = %+v", r)
	}
	if r := call("Transfer", nil); r["error"] == nil {
		t.Errorf("unknown function = %+v", r)
	}
}

func TestAgent_Run(t *testing.T) {
	var out strings.Builder
	a := New(&out, strings.NewReader("\nbye\n"), "")
	a.Facilitator.chat = &fakeChat{responses: []*genai.GenerateContentResponse{reply("Hello!")}}

	if err := a.Run(context.Background(), nil, "hi"); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	got := out.String()
	for _, want := range []string{"Welcome to wf", "assist> hi", "Hello!"} {
		if !strings.Contains(got, want) {
			t.Errorf("output misses %q:\n%s", want, got)
		}
	}
}
