package wealthflow

import (
	"slices"
	"sync"
	"time"
)

// Document is everything persisted for a user.
type Document struct {
	Financials   Snapshot      `json:"financials"`
	Scenarios    []Scenario    `json:"scenarios"`
	SavedAdvices []SavedAdvice `json:"savedAdvices"`
}

// Workspace gathers the live financials, the scenario simulator and the
// advice history of one user, and reports every change as a Document.
type Workspace struct {
	Financials *Financials
	Simulator  *Simulator

	mu      sync.Mutex
	advices []SavedAdvice
	subs    subscribers[Document]
	cancels []func()
}

// NewWorkspace restores a workspace from a document.
func NewWorkspace(doc Document, summarizer Summarizer, opts ...Option) *Workspace {
	w := &Workspace{
		Financials: NewFinancials(doc.Financials),
		advices:    slices.Clone(doc.SavedAdvices),
	}
	opts = append([]Option{WithScenarios(doc.Scenarios)}, opts...)
	w.Simulator = NewSimulator(w.Financials, summarizer, opts...)
	w.cancels = []func(){
		w.Financials.Subscribe(func(Snapshot) { w.changed() }),
		w.Simulator.Subscribe(func([]Scenario) { w.changed() }),
	}
	return w
}

// Document returns a copy of the workspace content.
func (w *Workspace) Document() Document {
	w.mu.Lock()
	advices := slices.Clone(w.advices)
	w.mu.Unlock()
	return Document{
		Financials:   w.Financials.Snapshot(),
		Scenarios:    w.Simulator.Scenarios(),
		SavedAdvices: advices,
	}
}

// Restore replaces the whole content, typically with a document loaded from
// storage. Subscribers are not notified.
func (w *Workspace) Restore(doc Document) {
	w.Financials.Restore(doc.Financials)
	w.Simulator.Restore(doc.Scenarios)
	w.mu.Lock()
	w.advices = slices.Clone(doc.SavedAdvices)
	w.mu.Unlock()
}

// SaveAdvice records an advice at the top of the history.
func (w *Workspace) SaveAdvice(a Advice, now time.Time) SavedAdvice {
	saved := NewSavedAdvice(a, now)
	w.mu.Lock()
	w.advices = append([]SavedAdvice{saved}, w.advices...)
	w.mu.Unlock()
	w.changed()
	return saved
}

// Advices returns the advice history, newest first.
func (w *Workspace) Advices() []SavedAdvice {
	w.mu.Lock()
	defer w.mu.Unlock()
	return slices.Clone(w.advices)
}

// Subscribe registers f to be called with the document after each change.
func (w *Workspace) Subscribe(f func(Document)) (cancel func()) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.subs.add(f, &w.mu)
}

// Close detaches the workspace from its components.
func (w *Workspace) Close() {
	for _, c := range w.cancels {
		c()
	}
}

func (w *Workspace) changed() {
	w.mu.Lock()
	notify := w.subs.snapshot()
	w.mu.Unlock()
	notify(w.Document())
}
