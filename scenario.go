package wealthflow

import (
	"context"
	"slices"
	"time"
)

// Scenario is a saved what-if: the items kept and a generated description of
// what changed.
type Scenario struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Data      Snapshot  `json:"data"`
	Summary   string    `json:"aiSummary"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt,omitzero"`
}

// Summarizer describes in natural language what a scenario changed compared
// to its baseline. Implementations call a remote service and may fail.
type Summarizer interface {
	Summarize(ctx context.Context, original, current Snapshot) (string, error)
}

// SummarizerFunc adapts a function to the Summarizer interface.
type SummarizerFunc func(ctx context.Context, original, current Snapshot) (string, error)

func (f SummarizerFunc) Summarize(ctx context.Context, original, current Snapshot) (string, error) {
	return f(ctx, original, current)
}

// cloneScenarios copies a scenario list, snapshots included.
func cloneScenarios(list []Scenario) []Scenario {
	out := slices.Clone(list)
	for i := range out {
		out[i].Data = out[i].Data.Clone()
	}
	return out
}

func scenarioIndex(list []Scenario, id string) int {
	return slices.IndexFunc(list, func(s Scenario) bool { return s.ID == id })
}
