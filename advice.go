package wealthflow

import (
	"context"
	"fmt"
	"time"
)

// Advice is a financial diagnosis produced by an Advisor.
type Advice struct {
	Summary          string   `json:"summary"`
	HealthScore      int      `json:"healthScore"` // 0 to 100
	ImmediateActions []string `json:"immediateActions"`
	StrategicAdvice  string   `json:"strategicAdvice"`
}

// Advisor analyzes a snapshot.
type Advisor interface {
	Analyze(ctx context.Context, s Snapshot) (Advice, error)
}

// SavedAdvice is an advice kept in the user's history.
type SavedAdvice struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Score     int       `json:"score"`
	CreatedAt time.Time `json:"createdAt"`
}

// NewSavedAdvice records the strategic part of an advice.
func NewSavedAdvice(a Advice, now time.Time) SavedAdvice {
	return SavedAdvice{
		ID:        NewID(),
		Title:     fmt.Sprintf("Financial analysis - %s", now.Format("2006-01-02 15:04")),
		Content:   a.StrategicAdvice,
		Score:     clampScore(a.HealthScore),
		CreatedAt: now,
	}
}

func clampScore(s int) int {
	return min(max(s, 0), 100)
}
