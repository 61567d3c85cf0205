// Package server exposes wealthflow workspaces over HTTP.
//
// Each authenticated user gets a workspace loaded from the store on first use
// and written back by an autosaver. Requests without a token get a guest
// workspace filled with demo data, kept in memory only.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/etnz/wealthflow"
	"github.com/etnz/wealthflow/autosave"
	"github.com/etnz/wealthflow/storage"
	"github.com/etnz/wealthflow/telemetry"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

// Assistant is the remote intelligence the server relies on.
type Assistant interface {
	wealthflow.Summarizer
	wealthflow.Advisor
	ParseStatement(ctx context.Context, image []byte, mimeType string) (wealthflow.Snapshot, error)
}

// Config configures a Server.
type Config struct {
	Store     storage.Store
	Assistant Assistant
	// Secret signs the bearer tokens. Without secret only guests are served.
	Secret        []byte
	Currency      string
	AutosaveDelay time.Duration
	// Options apply to every workspace simulator.
	Options []wealthflow.Option
	Log     logrus.FieldLogger
	Now     func() time.Time
}

// Server serves the wealthflow API.
type Server struct {
	cfg    Config
	log    logrus.FieldLogger
	router *mux.Router

	mu         sync.Mutex
	workspaces map[string]*workspace
}

// workspace is a cached user workspace. saver is nil for guests.
type workspace struct {
	*wealthflow.Workspace
	saver  *autosave.Saver
	cancel func()
}

// New returns a server. Call Close to flush pending writes.
func New(cfg Config) *Server {
	if cfg.Log == nil {
		cfg.Log = logrus.StandardLogger()
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.Assistant == nil {
		cfg.Assistant = unavailable{}
	}
	if cfg.Store == nil {
		cfg.Store = storage.NewMemory()
	}
	s := &Server{
		cfg:        cfg,
		log:        cfg.Log,
		workspaces: make(map[string]*workspace),
	}
	s.router = s.routes()
	return s
}

func (s *Server) routes() *mux.Router {
	r := mux.NewRouter()
	r.Use(s.instrument)
	r.Handle("/metrics", telemetry.Handler()).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()
	api.Use(s.authenticate)
	api.HandleFunc("/dashboard", s.with(s.dashboard)).Methods(http.MethodGet)
	api.HandleFunc("/items/{category}", s.with(s.putItem)).Methods(http.MethodPost)
	api.HandleFunc("/items/{category}/{id}", s.with(s.removeItem)).Methods(http.MethodDelete)
	api.HandleFunc("/import", s.with(s.importStatement)).Methods(http.MethodPost)

	api.HandleFunc("/session", s.with(s.getSession)).Methods(http.MethodGet)
	api.HandleFunc("/session", s.with(s.startSession)).Methods(http.MethodPost)
	api.HandleFunc("/session", s.with(s.exitSession)).Methods(http.MethodDelete)
	api.HandleFunc("/session/toggle", s.with(s.toggle)).Methods(http.MethodPost)
	api.HandleFunc("/session/rename", s.with(s.rename)).Methods(http.MethodPost)
	api.HandleFunc("/session/save", s.with(s.saveSession)).Methods(http.MethodPost)

	api.HandleFunc("/scenarios", s.with(s.scenarios)).Methods(http.MethodGet)
	api.HandleFunc("/scenarios/{id}", s.with(s.deleteScenario)).Methods(http.MethodDelete)

	api.HandleFunc("/advice", s.with(s.advise)).Methods(http.MethodPost)
	api.HandleFunc("/advices", s.with(s.advices)).Methods(http.MethodGet)
	api.HandleFunc("/advices", s.with(s.saveAdvice)).Methods(http.MethodPost)
	return r
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Run serves on addr until ctx is done, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      s,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 2 * time.Minute, // Gemini calls are slow
	}
	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()
	s.log.WithField("addr", addr).Info("server started")

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}
	shutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdown); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return s.Close(shutdown)
}

// Close writes every pending document and releases the workspaces.
func (s *Server) Close(ctx context.Context) error {
	s.mu.Lock()
	cached := s.workspaces
	s.workspaces = make(map[string]*workspace)
	s.mu.Unlock()

	var errs []error
	for id, ws := range cached {
		ws.cancel()
		ws.Close()
		if ws.saver == nil {
			continue
		}
		if err := ws.saver.Close(ctx); err != nil {
			errs = append(errs, fmt.Errorf("user %q: %w", id, err))
		}
	}
	return errors.Join(errs...)
}

// workspace returns the cached workspace of u, loading it on first use.
func (s *Server) workspace(ctx context.Context, u user) (*workspace, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if ws, ok := s.workspaces[u.key()]; ok {
		return ws, nil
	}

	log := s.log.WithField("user", u.key())
	var doc wealthflow.Document
	if u.guest {
		doc.Financials = wealthflow.DemoSnapshot(s.cfg.Currency)
	} else {
		loaded, err := s.cfg.Store.Load(ctx, u.id)
		switch {
		case errors.Is(err, storage.ErrNotFound):
			log.Info("new user, starting with an empty workspace")
		case err != nil:
			return nil, fmt.Errorf("could not load workspace: %w", err)
		default:
			doc = loaded
		}
	}

	opts := append([]wealthflow.Option{wealthflow.WithLogger(log)}, s.cfg.Options...)
	ws := &workspace{
		Workspace: wealthflow.NewWorkspace(doc, s.cfg.Assistant, opts...),
		cancel:    func() {},
	}
	if !u.guest {
		ws.saver = autosave.New(s.cfg.Store, u.id, s.cfg.AutosaveDelay, log)
		ws.cancel = ws.saver.Watch(ws.Workspace)
	}
	s.workspaces[u.key()] = ws
	return ws, nil
}

// syncStatus is the autosave status of a workspace; guests are always offline.
func (ws *workspace) syncStatus() autosave.Status {
	if ws.saver == nil {
		return autosave.Offline
	}
	st, _ := ws.saver.Status()
	return st
}
