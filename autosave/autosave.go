// Package autosave writes a workspace to storage once it has been quiet for a
// while.
package autosave

import (
	"context"
	"sync"
	"time"

	"github.com/etnz/wealthflow"
	"github.com/etnz/wealthflow/storage"
	"github.com/etnz/wealthflow/telemetry"
	"github.com/sirupsen/logrus"
)

// DefaultDelay is the quiet period before a change is written.
const DefaultDelay = 2 * time.Second

// Status tells whether the last change reached the storage.
type Status string

const (
	Offline Status = "offline" // the last write failed, or nothing is persisted
	Saving  Status = "saving"  // a change is waiting to be written
	Synced  Status = "synced"
)

// Saver debounces document changes and writes the last one to a store.
// A Saver is safe for concurrent use.
type Saver struct {
	store  storage.Store
	userID string
	delay  time.Duration
	log    logrus.FieldLogger

	write sync.Mutex // serializes store writes

	mu      sync.Mutex
	timer   *time.Timer
	pending *wealthflow.Document
	status  Status
	lastErr error
}

// New returns a saver writing the documents of userID to store.
func New(store storage.Store, userID string, delay time.Duration, log logrus.FieldLogger) *Saver {
	if delay <= 0 {
		delay = DefaultDelay
	}
	return &Saver{
		store:  store,
		userID: userID,
		delay:  delay,
		log:    log.WithField("user", userID),
		status: Synced,
	}
}

// Watch schedules a write after each change of the workspace. The returned
// function stops watching.
func (s *Saver) Watch(ws *wealthflow.Workspace) (cancel func()) {
	return ws.Subscribe(s.Schedule)
}

// Schedule records doc as the document to write, and restarts the quiet period.
func (s *Saver) Schedule(doc wealthflow.Document) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending = &doc
	s.status = Saving
	if s.timer == nil {
		s.timer = time.AfterFunc(s.delay, s.fire)
		return
	}
	s.timer.Reset(s.delay)
}

func (s *Saver) fire() {
	if err := s.Flush(context.Background()); err != nil {
		s.log.WithError(err).Warn("autosave failed, will retry on next change")
	}
}

// Flush writes the pending document now, if any.
func (s *Saver) Flush(ctx context.Context) error {
	s.write.Lock()
	defer s.write.Unlock()

	s.mu.Lock()
	doc := s.pending
	s.pending = nil
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.mu.Unlock()
	if doc == nil {
		return nil
	}

	start := time.Now()
	err := s.store.Save(ctx, s.userID, *doc)
	telemetry.DocumentWrites.WithLabelValues(telemetry.Outcome(err)).Inc()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastErr = err
	if err != nil {
		s.status = Offline
		if s.pending == nil {
			s.pending = doc
		}
		return err
	}
	if s.pending == nil {
		s.status = Synced
	}
	s.log.WithField("elapsed", time.Since(start)).Debug("document synced")
	return nil
}

// Status returns the synchronization status and the error of the last write.
func (s *Saver) Status() (Status, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status, s.lastErr
}

// Close writes what is pending.
func (s *Saver) Close(ctx context.Context) error {
	return s.Flush(ctx)
}
