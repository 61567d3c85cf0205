package cmd

import (
	"context"
	"sync"

	"github.com/etnz/wealthflow"
	"github.com/etnz/wealthflow/agent"
	"github.com/etnz/wealthflow/config"
	"github.com/sirupsen/logrus"
	"google.golang.org/genai"
)

// lazyGemini connects to Gemini on first use, so that commands not needing it
// work without an API key.
type lazyGemini struct {
	cfg config.Config
	log logrus.FieldLogger

	once   sync.Once
	client *genai.Client
	gemini *agent.Gemini
	err    error
}

func (l *lazyGemini) connect(ctx context.Context) (*genai.Client, *agent.Gemini, error) {
	l.once.Do(func() {
		l.client, l.err = agent.NewClient(ctx, l.cfg.Gemini.APIKey)
		if l.err != nil {
			return
		}
		l.gemini = agent.NewGemini(l.client,
			agent.WithModel(l.cfg.Gemini.Model),
			agent.WithLanguage(l.cfg.Gemini.Language),
			agent.WithCurrency(l.cfg.Currency),
			agent.WithLogger(l.log),
		)
	})
	return l.client, l.gemini, l.err
}

func (l *lazyGemini) Summarize(ctx context.Context, original, current wealthflow.Snapshot) (string, error) {
	_, g, err := l.connect(ctx)
	if err != nil {
		return "", err
	}
	return g.Summarize(ctx, original, current)
}

func (l *lazyGemini) Analyze(ctx context.Context, s wealthflow.Snapshot) (wealthflow.Advice, error) {
	_, g, err := l.connect(ctx)
	if err != nil {
		return wealthflow.Advice{}, err
	}
	return g.Analyze(ctx, s)
}

func (l *lazyGemini) ParseStatement(ctx context.Context, image []byte, mimeType string) (wealthflow.Snapshot, error) {
	_, g, err := l.connect(ctx)
	if err != nil {
		return wealthflow.Snapshot{}, err
	}
	return g.ParseStatement(ctx, image, mimeType)
}
