package server

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/etnz/wealthflow"
	"github.com/etnz/wealthflow/autosave"
	"github.com/etnz/wealthflow/telemetry"
	"github.com/gorilla/mux"
)

// maxImageSize bounds statement uploads.
const maxImageSize = 10 << 20

// errUnavailable is returned by the assistant stub used when none is configured.
var errUnavailable = errors.New("assistant is not configured")

type unavailable struct{}

func (unavailable) Summarize(context.Context, wealthflow.Snapshot, wealthflow.Snapshot) (string, error) {
	return "", errUnavailable
}

func (unavailable) Analyze(context.Context, wealthflow.Snapshot) (wealthflow.Advice, error) {
	return wealthflow.Advice{}, errUnavailable
}

func (unavailable) ParseStatement(context.Context, []byte, string) (wealthflow.Snapshot, error) {
	return wealthflow.Snapshot{}, errUnavailable
}

// handlerFunc is a handler working on the workspace of the caller.
type handlerFunc func(w http.ResponseWriter, r *http.Request, ws *workspace) error

// with resolves the workspace of the caller and reports the handler error.
func (s *Server) with(h handlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ws, err := s.workspace(r.Context(), userFrom(r.Context()))
		if err == nil {
			err = h(w, r, ws)
		}
		if err != nil {
			writeError(w, s.log, err)
		}
	}
}

type dashboardResponse struct {
	Metrics    wealthflow.Metrics  `json:"metrics"`
	Financials wealthflow.Snapshot `json:"financials"`
	Sync       autosave.Status     `json:"sync"`
}

func (s *Server) dashboard(w http.ResponseWriter, r *http.Request, ws *workspace) error {
	snap := ws.Financials.Snapshot()
	writeJSON(w, http.StatusOK, dashboardResponse{
		Metrics:    wealthflow.ComputeMetrics(snap),
		Financials: snap,
		Sync:       ws.syncStatus(),
	})
	return nil
}

func category(r *http.Request) (wealthflow.Category, error) {
	c, err := wealthflow.ParseCategory(mux.Vars(r)["category"])
	if err != nil {
		return "", badRequest("%v", err)
	}
	return c, nil
}

// decodeItem reads an item of category c.
func decodeItem(w http.ResponseWriter, r *http.Request, c wealthflow.Category) (wealthflow.Item, error) {
	switch c {
	case wealthflow.Assets:
		var a wealthflow.Asset
		err := decode(w, r, &a)
		return a, err
	case wealthflow.Liabilities:
		var l wealthflow.Liability
		err := decode(w, r, &l)
		return l, err
	case wealthflow.Incomes, wealthflow.Expenses:
		var f wealthflow.CashFlow
		err := decode(w, r, &f)
		f.Kind = wealthflow.Expense
		if c == wealthflow.Incomes {
			f.Kind = wealthflow.Income
		}
		return f, err
	}
	return nil, badRequest("unknown category %q", c)
}

func (s *Server) putItem(w http.ResponseWriter, r *http.Request, ws *workspace) error {
	c, err := category(r)
	if err != nil {
		return err
	}
	it, err := decodeItem(w, r, c)
	if err != nil {
		return err
	}
	stored, err := ws.Financials.Put(wealthflow.WithDefaultCurrency(it, s.cfg.Currency))
	if err != nil {
		return badRequest("invalid %s: %v", c, err)
	}
	writeJSON(w, http.StatusOK, stored)
	return nil
}

func (s *Server) removeItem(w http.ResponseWriter, r *http.Request, ws *workspace) error {
	c, err := category(r)
	if err != nil {
		return err
	}
	id := mux.Vars(r)["id"]
	if !ws.Financials.Remove(c, id) {
		return notFound("%s %q not found", c, id)
	}
	w.WriteHeader(http.StatusNoContent)
	return nil
}

func (s *Server) importStatement(w http.ResponseWriter, r *http.Request, ws *workspace) error {
	image, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxImageSize))
	if err != nil {
		return statusError{http.StatusRequestEntityTooLarge, err}
	}
	if len(image) == 0 {
		return badRequest("empty image")
	}
	mimeType, _, _ := strings.Cut(r.Header.Get("Content-Type"), ";")
	parsed, err := s.cfg.Assistant.ParseStatement(r.Context(), image, mimeType)
	if err != nil {
		return statusError{http.StatusBadGateway, err}
	}
	added, err := ws.Financials.Import(parsed)
	if err != nil {
		return badRequest("%v", err)
	}
	writeJSON(w, http.StatusOK, map[string]any{"added": added})
	return nil
}

type sessionResponse struct {
	Session    *wealthflow.Session    `json:"session"`
	Projection *wealthflow.Projection `json:"projection,omitempty"`
	Released   *wealthflow.Released   `json:"released,omitempty"`
	// ProjectionError is set when the session can no longer be projected
	// on the live financials.
	ProjectionError string `json:"projectionError,omitempty"`
	Saving          bool   `json:"saving"`
}

func (ws *workspace) sessionView(sess *wealthflow.Session) sessionResponse {
	resp := sessionResponse{Session: sess, Saving: ws.Simulator.Saving()}
	if sess != nil {
		rel := sess.Released()
		resp.Released = &rel
		if p, err := sess.Project(ws.Financials.Snapshot()); err != nil {
			resp.ProjectionError = err.Error()
		} else {
			resp.Projection = &p
		}
	}
	return resp
}

func (s *Server) getSession(w http.ResponseWriter, r *http.Request, ws *workspace) error {
	writeJSON(w, http.StatusOK, ws.sessionView(ws.Simulator.Session()))
	return nil
}

func (s *Server) startSession(w http.ResponseWriter, r *http.Request, ws *workspace) error {
	var req struct {
		ScenarioID string `json:"scenarioId"`
	}
	if r.ContentLength != 0 {
		if err := decode(w, r, &req); err != nil {
			return err
		}
	}
	var (
		sess *wealthflow.Session
		err  error
	)
	if req.ScenarioID != "" {
		sess, err = ws.Simulator.Load(req.ScenarioID)
	} else {
		sess, err = ws.Simulator.Start()
	}
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusCreated, ws.sessionView(sess))
	return nil
}

func (s *Server) exitSession(w http.ResponseWriter, r *http.Request, ws *workspace) error {
	if err := ws.Simulator.Exit(); err != nil {
		return err
	}
	w.WriteHeader(http.StatusNoContent)
	return nil
}

func (s *Server) toggle(w http.ResponseWriter, r *http.Request, ws *workspace) error {
	var req struct {
		Category string `json:"category"`
		ID       string `json:"id"`
	}
	if err := decode(w, r, &req); err != nil {
		return err
	}
	c, err := wealthflow.ParseCategory(req.Category)
	if err != nil {
		return badRequest("%v", err)
	}
	sess, err := ws.Simulator.Toggle(c, req.ID)
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, ws.sessionView(sess))
	return nil
}

func (s *Server) rename(w http.ResponseWriter, r *http.Request, ws *workspace) error {
	var req struct {
		Name string `json:"name"`
	}
	if err := decode(w, r, &req); err != nil {
		return err
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return badRequest("name is required")
	}
	if err := ws.Simulator.Rename(name); err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, ws.sessionView(ws.Simulator.Session()))
	return nil
}

func (s *Server) saveSession(w http.ResponseWriter, r *http.Request, ws *workspace) error {
	sc, err := ws.Simulator.Save(r.Context())
	telemetry.ScenarioSaves.WithLabelValues(telemetry.Outcome(err)).Inc()
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, sc)
	return nil
}

type scenariosResponse struct {
	Scenarios []wealthflow.Scenario `json:"scenarios"`
	Limit     int                   `json:"limit"`
}

func (s *Server) scenarios(w http.ResponseWriter, r *http.Request, ws *workspace) error {
	writeJSON(w, http.StatusOK, scenariosResponse{
		Scenarios: ws.Simulator.Scenarios(),
		Limit:     ws.Simulator.Limit(),
	})
	return nil
}

func (s *Server) deleteScenario(w http.ResponseWriter, r *http.Request, ws *workspace) error {
	if err := ws.Simulator.Delete(mux.Vars(r)["id"]); err != nil {
		return err
	}
	w.WriteHeader(http.StatusNoContent)
	return nil
}

func (s *Server) advise(w http.ResponseWriter, r *http.Request, ws *workspace) error {
	advice, err := s.cfg.Assistant.Analyze(r.Context(), ws.Financials.Snapshot())
	if err != nil {
		return statusError{http.StatusBadGateway, err}
	}
	writeJSON(w, http.StatusOK, advice)
	return nil
}

func (s *Server) advices(w http.ResponseWriter, r *http.Request, ws *workspace) error {
	writeJSON(w, http.StatusOK, map[string]any{"advices": ws.Advices()})
	return nil
}

func (s *Server) saveAdvice(w http.ResponseWriter, r *http.Request, ws *workspace) error {
	var a wealthflow.Advice
	if err := decode(w, r, &a); err != nil {
		return err
	}
	writeJSON(w, http.StatusCreated, ws.SaveAdvice(a, s.cfg.Now()))
	return nil
}
