package wealthflow

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// DefaultScenarioLimit is the number of scenarios a user can save.
const DefaultScenarioLimit = 8

// LiveSource provides the current live financials.
type LiveSource interface {
	Snapshot() Snapshot
}

// Simulator owns the saved scenarios and the scenario being edited.
//
// It has two states: no session, or editing a session. Start and Load open a
// session; Save, Exit and deleting the edited scenario close it. A single save
// can be in flight: while the summary is being generated, every operation that
// would change the session or the scenario it saves is refused with
// ErrSaveInProgress.
//
// A Simulator is safe for concurrent use.
type Simulator struct {
	live       LiveSource
	summarizer Summarizer
	linker     Linker
	limit      int
	now        func() time.Time
	newID      func() string
	log        logrus.FieldLogger

	mu        sync.Mutex
	scenarios []Scenario
	session   *Session
	saving    bool
	subs      subscribers[[]Scenario]
}

// Option configures a Simulator.
type Option func(*Simulator)

// WithLimit sets the maximum number of saved scenarios.
func WithLimit(n int) Option { return func(s *Simulator) { s.limit = n } }

// WithLinker sets how liabilities are linked to their payment expenses.
func WithLinker(l Linker) Option { return func(s *Simulator) { s.linker = l } }

// WithClock sets the clock used to timestamp scenarios.
func WithClock(now func() time.Time) Option { return func(s *Simulator) { s.now = now } }

// WithIDs sets the generator of scenario ids.
func WithIDs(newID func() string) Option { return func(s *Simulator) { s.newID = newID } }

// WithLogger sets the logger.
func WithLogger(l logrus.FieldLogger) Option { return func(s *Simulator) { s.log = l } }

// WithScenarios sets the initially saved scenarios.
func WithScenarios(list []Scenario) Option {
	return func(s *Simulator) { s.scenarios = cloneScenarios(list) }
}

// NewSimulator creates a simulator over the live financials.
func NewSimulator(live LiveSource, summarizer Summarizer, opts ...Option) *Simulator {
	s := &Simulator{
		live:       live,
		summarizer: summarizer,
		linker:     NameLinker{},
		limit:      DefaultScenarioLimit,
		now:        time.Now,
		newID:      NewID,
		log:        logrus.StandardLogger(),
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Limit returns the maximum number of saved scenarios.
func (s *Simulator) Limit() int { return s.limit }

// Scenarios returns a copy of the saved scenarios.
func (s *Simulator) Scenarios() []Scenario {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneScenarios(s.scenarios)
}

// Scenario returns a copy of a saved scenario.
func (s *Simulator) Scenario(id string) (Scenario, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := scenarioIndex(s.scenarios, id)
	if i < 0 {
		return Scenario{}, false
	}
	sc := s.scenarios[i]
	sc.Data = sc.Data.Clone()
	return sc, true
}

// Session returns a copy of the session being edited, or nil.
func (s *Simulator) Session() *Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.session == nil {
		return nil
	}
	return s.session.clone()
}

// Saving reports whether a save is waiting for its summary.
func (s *Simulator) Saving() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saving
}

// Start opens a new session on the live financials. It is refused when the
// scenario limit is reached; an open session is discarded.
func (s *Simulator) Start() (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.saving {
		return nil, ErrSaveInProgress
	}
	if len(s.scenarios) >= s.limit {
		return nil, &LimitError{Max: s.limit}
	}
	name := fmt.Sprintf("Scenario %d", len(s.scenarios)+1)
	s.session = NewSession(name, s.live.Snapshot())
	s.log.WithField("name", name).Debug("scenario session started")
	return s.session.clone(), nil
}

// Load opens a session on a saved scenario. A scenario in another currency
// than the live financials is refused with a *CurrencyError.
func (s *Simulator) Load(id string) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.saving {
		return nil, ErrSaveInProgress
	}
	i := scenarioIndex(s.scenarios, id)
	if i < 0 {
		return nil, fmt.Errorf("%w: %q", ErrScenarioNotFound, id)
	}
	live := s.live.Snapshot()
	if err := sameCurrency(s.scenarios[i].Data, live); err != nil {
		return nil, fmt.Errorf("could not load scenario %q: %w", s.scenarios[i].Name, err)
	}
	s.session = LoadSession(s.scenarios[i], live)
	s.log.WithField("scenario", id).Debug("scenario session loaded")
	return s.session.clone(), nil
}

// Toggle releases or keeps an item in the session.
func (s *Simulator) Toggle(c Category, id string) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.editable(); err != nil {
		return nil, err
	}
	if err := s.session.Toggle(c, id, s.linker); err != nil {
		return nil, err
	}
	return s.session.clone(), nil
}

// Rename renames the session.
func (s *Simulator) Rename(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.editable(); err != nil {
		return err
	}
	s.session.Rename(name)
	return nil
}

// Exit discards the session without saving.
func (s *Simulator) Exit() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.editable(); err != nil {
		return err
	}
	s.session = nil
	return nil
}

// Project computes the projection of the session against the live financials.
func (s *Simulator) Project() (Projection, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.session == nil {
		return Projection{}, ErrNoSession
	}
	return s.session.Project(s.live.Snapshot())
}

// Save asks the summarizer to describe the session, then records it as a
// scenario, overwriting the scenario with the same id if any, and closes the
// session.
//
// When the summarizer fails, the returned error is a *SummaryError, nothing
// is recorded and the session stays open so the caller can retry.
func (s *Simulator) Save(ctx context.Context) (Scenario, error) {
	s.mu.Lock()
	if err := s.editable(); err != nil {
		s.mu.Unlock()
		return Scenario{}, err
	}
	s.saving = true
	sess := s.session.clone()
	s.mu.Unlock()

	summary, err := s.summarizer.Summarize(ctx, sess.Original, sess.Current)

	s.mu.Lock()
	s.saving = false
	if err != nil {
		s.mu.Unlock()
		s.log.WithError(err).WithField("name", sess.Name).Warn("scenario summary failed, scenario not saved")
		return Scenario{}, &SummaryError{Err: err}
	}

	now := s.now()
	sc := Scenario{
		ID:        sess.ID,
		Name:      sess.Name,
		Data:      sess.Current,
		Summary:   summary,
		CreatedAt: now,
	}
	if sc.ID == "" {
		sc.ID = s.newID()
	}
	if i := scenarioIndex(s.scenarios, sc.ID); i >= 0 {
		sc.CreatedAt = s.scenarios[i].CreatedAt
		sc.UpdatedAt = now
		s.scenarios[i] = sc
	} else {
		s.scenarios = append(s.scenarios, sc)
	}
	s.session = nil
	notify := s.subs.snapshot()
	list := cloneScenarios(s.scenarios)
	s.mu.Unlock()

	s.log.WithFields(logrus.Fields{"scenario": sc.ID, "name": sc.Name}).Info("scenario saved")
	notify(list)
	sc.Data = sc.Data.Clone()
	return sc, nil
}

// Delete removes a saved scenario. Deleting the scenario being edited also
// closes the session.
func (s *Simulator) Delete(id string) error {
	s.mu.Lock()
	i := scenarioIndex(s.scenarios, id)
	if i < 0 {
		s.mu.Unlock()
		return fmt.Errorf("%w: %q", ErrScenarioNotFound, id)
	}
	edited := s.session != nil && s.session.ID == id
	if edited && s.saving {
		s.mu.Unlock()
		return ErrSaveInProgress
	}
	s.scenarios = append(s.scenarios[:i:i], s.scenarios[i+1:]...)
	if edited {
		s.session = nil
	}
	notify := s.subs.snapshot()
	list := cloneScenarios(s.scenarios)
	s.mu.Unlock()

	s.log.WithFields(logrus.Fields{"scenario": id, "edited": edited}).Info("scenario deleted")
	notify(list)
	return nil
}

// Restore replaces the saved scenarios, typically with the ones loaded from
// storage. Subscribers are not notified.
func (s *Simulator) Restore(list []Scenario) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.scenarios = cloneScenarios(list)
}

// Subscribe registers f to be called with the saved scenarios after each
// change. The returned function cancels the subscription.
func (s *Simulator) Subscribe(f func([]Scenario)) (cancel func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.subs.add(f, &s.mu)
}

// editable must be called with the lock held.
func (s *Simulator) editable() error {
	if s.session == nil {
		return ErrNoSession
	}
	if s.saving {
		return ErrSaveInProgress
	}
	return nil
}
