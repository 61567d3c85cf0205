package wealthflow

import (
	"errors"
	"fmt"
)

var (
	// ErrScenarioLimit is returned when starting a scenario while the maximum
	// number of saved scenarios is reached.
	ErrScenarioLimit = errors.New("scenario limit reached")
	// ErrNoSession is returned by session operations when no scenario is being edited.
	ErrNoSession = errors.New("no scenario is being edited")
	// ErrSaveInProgress is returned while a save is waiting for its summary.
	ErrSaveInProgress = errors.New("a scenario save is in progress")
	// ErrUnknownItem is returned when toggling an item that belongs neither to
	// the working copy nor to the baseline. It reveals a programming error in
	// the caller.
	ErrUnknownItem = errors.New("unknown item")
	// ErrScenarioNotFound is returned for an unknown scenario id.
	ErrScenarioNotFound = errors.New("scenario not found")
	// ErrCurrencyMismatch is returned when a scenario and the live financials
	// are not in the same currency.
	ErrCurrencyMismatch = errors.New("currency mismatch")
)

// LimitError tells the configured maximum of saved scenarios.
type LimitError struct {
	Max int
}

func (e *LimitError) Error() string {
	return fmt.Sprintf("at most %d scenarios can be saved", e.Max)
}

func (e *LimitError) Unwrap() error { return ErrScenarioLimit }

// SummaryError wraps a failure of the summarization service. The scenario
// was not saved and the session is still open.
type SummaryError struct {
	Err error
}

func (e *SummaryError) Error() string {
	return fmt.Sprintf("could not summarize scenario: %v", e.Err)
}

func (e *SummaryError) Unwrap() error { return e.Err }

// CurrencyError tells the currencies of a scenario and of the live financials
// when they differ.
type CurrencyError struct {
	Scenario, Live string
}

func (e *CurrencyError) Error() string {
	return fmt.Sprintf("the scenario is in %s, the financials are in %s", e.Scenario, e.Live)
}

func (e *CurrencyError) Unwrap() error { return ErrCurrencyMismatch }

// sameCurrency checks that the scenario data and the live financials share a
// currency. Empty snapshots match anything.
func sameCurrency(scenario, live Snapshot) error {
	a, b := scenario.currency(), live.currency()
	if a == "" || b == "" || a == b {
		return nil
	}
	return &CurrencyError{Scenario: a, Live: b}
}
