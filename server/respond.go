package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/etnz/wealthflow"
	"github.com/etnz/wealthflow/telemetry"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

// statusError carries the HTTP status of an error.
type statusError struct {
	code int
	err  error
}

func (e statusError) Error() string { return e.err.Error() }
func (e statusError) Unwrap() error { return e.err }

func badRequest(format string, args ...any) error {
	return statusError{http.StatusBadRequest, fmt.Errorf(format, args...)}
}

func notFound(format string, args ...any) error {
	return statusError{http.StatusNotFound, fmt.Errorf(format, args...)}
}

// status maps an error to an HTTP status code.
func status(err error) int {
	var se statusError
	var limit *wealthflow.LimitError
	var summary *wealthflow.SummaryError
	switch {
	case errors.As(err, &se):
		return se.code
	case errors.As(err, &limit),
		errors.Is(err, wealthflow.ErrNoSession),
		errors.Is(err, wealthflow.ErrSaveInProgress),
		errors.Is(err, wealthflow.ErrCurrencyMismatch):
		return http.StatusConflict
	case errors.As(err, &summary):
		return http.StatusBadGateway
	case errors.Is(err, wealthflow.ErrScenarioNotFound),
		errors.Is(err, wealthflow.ErrUnknownItem):
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

type errorBody struct {
	Error string `json:"error"`
	Limit int    `json:"limit,omitempty"`
}

func writeError(w http.ResponseWriter, log logrus.FieldLogger, err error) {
	code := status(err)
	body := errorBody{Error: err.Error()}
	var limit *wealthflow.LimitError
	if errors.As(err, &limit) {
		body.Limit = limit.Max
	}
	if code >= http.StatusInternalServerError {
		log.WithError(err).Error("request failed")
	}
	writeJSON(w, code, body)
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// decode reads a JSON request body of at most 1 MiB.
func decode(w http.ResponseWriter, r *http.Request, v any) error {
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20)).Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return badRequest("empty request body")
		}
		return badRequest("invalid request body: %v", err)
	}
	return nil
}

// recorder captures the status code written by a handler.
type recorder struct {
	http.ResponseWriter
	code int
}

func (r *recorder) WriteHeader(code int) {
	r.code = code
	r.ResponseWriter.WriteHeader(code)
}

// instrument counts requests by route template and status code.
func (s *Server) instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := &recorder{ResponseWriter: w, code: http.StatusOK}
		next.ServeHTTP(rec, r)
		route := "unknown"
		if cr := mux.CurrentRoute(r); cr != nil {
			if tpl, err := cr.GetPathTemplate(); err == nil {
				route = tpl
			}
		}
		telemetry.HTTPRequests.WithLabelValues(route, strconv.Itoa(rec.code)).Inc()
		s.log.WithFields(logrus.Fields{
			"method": r.Method,
			"route":  route,
			"code":   rec.code,
		}).Debug("request served")
	})
}
