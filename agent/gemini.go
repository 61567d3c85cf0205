package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/etnz/wealthflow/telemetry"
	"github.com/sirupsen/logrus"
	"google.golang.org/genai"
)

// DefaultModel is the model used for single-shot requests.
const DefaultModel = "gemini-2.5-flash"

// NewClient creates a Gemini client. An empty apiKey lets the client read
// GEMINI_API_KEY or GOOGLE_API_KEY from the environment.
func NewClient(ctx context.Context, apiKey string) (*genai.Client, error) {
	var cfg *genai.ClientConfig
	if apiKey != "" {
		cfg = &genai.ClientConfig{APIKey: apiKey, Backend: genai.BackendGeminiAPI}
	}
	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("could not create Gemini client: %w", err)
	}
	return client, nil
}

// generator is the part of genai.Models used by Gemini.
type generator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// Gemini implements the single-shot collaborators of wealthflow on top of
// Gemini: scenario summaries, financial advice and statement parsing.
type Gemini struct {
	gen      generator
	model    string
	language string // of the generated text
	currency string // of parsed statements
	log      logrus.FieldLogger
}

// GeminiOption configures Gemini.
type GeminiOption func(*Gemini)

// WithModel sets the model name.
func WithModel(model string) GeminiOption { return func(g *Gemini) { g.model = model } }

// WithLanguage sets the language of the generated text.
func WithLanguage(lang string) GeminiOption { return func(g *Gemini) { g.language = lang } }

// WithCurrency sets the currency of the amounts read on statements.
func WithCurrency(cur string) GeminiOption { return func(g *Gemini) { g.currency = cur } }

// WithLogger sets the logger.
func WithLogger(l logrus.FieldLogger) GeminiOption { return func(g *Gemini) { g.log = l } }

// NewGemini returns collaborators using client.
func NewGemini(client *genai.Client, opts ...GeminiOption) *Gemini {
	return newGemini(client.Models, opts...)
}

func newGemini(gen generator, opts ...GeminiOption) *Gemini {
	g := &Gemini{
		gen:      gen,
		model:    DefaultModel,
		language: "English",
		log:      logrus.StandardLogger(),
	}
	for _, o := range opts {
		o(g)
	}
	if g.model == "" {
		g.model = DefaultModel
	}
	return g
}

// generate sends a single request and returns the response text.
func (g *Gemini) generate(ctx context.Context, operation string, parts []*genai.Part, config *genai.GenerateContentConfig) (text string, err error) {
	start := time.Now()
	defer func() {
		telemetry.ObserveGemini(operation, start, err)
		entry := g.log.WithFields(logrus.Fields{"operation": operation, "model": g.model, "elapsed": time.Since(start)})
		if err != nil {
			entry.WithError(err).Warn("gemini request failed")
			return
		}
		entry.Debug("gemini request done")
	}()

	contents := []*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)}
	resp, err := g.gen.GenerateContent(ctx, g.model, contents, config)
	if err != nil {
		return "", fmt.Errorf("%s: %w", operation, err)
	}
	text = strings.TrimSpace(resp.Text())
	if text == "" {
		return "", fmt.Errorf("%s: empty response from %s", operation, g.model)
	}
	return text, nil
}

// generateJSON sends a request in JSON mode and decodes the response into v.
func (g *Gemini) generateJSON(ctx context.Context, operation string, parts []*genai.Part, system string, schema *genai.Schema, v any) error {
	config := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   schema,
	}
	if system != "" {
		config.SystemInstruction = genai.NewContentFromText(system, genai.RoleUser)
	}
	text, err := g.generate(ctx, operation, parts, config)
	if err != nil {
		return err
	}
	if err := json.Unmarshal([]byte(stripFence(text)), v); err != nil {
		return fmt.Errorf("%s: invalid JSON response: %w", operation, err)
	}
	return nil
}

// stripFence removes a markdown code fence around a JSON response.
func stripFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
