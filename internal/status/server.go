// Package status serves health, metrics and run control over HTTP.
package status

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/raoulx24/tempsweep/internal/job"
	"github.com/raoulx24/tempsweep/internal/logging"
	"github.com/raoulx24/tempsweep/internal/service"
)

// Controller is satisfied by *service.Service.
type Controller interface {
	RunNow(req job.Request) bool
	Cancel() bool
	Pause()
	Continue()
	Status() service.Status
}

type Server struct {
	ctl     Controller
	metrics http.Handler
	log     logging.Logger
	srv     *http.Server
}

// New builds the server. metrics may be nil.
func New(addr string, ctl Controller, metrics http.Handler, log logging.Logger) *Server {
	s := &Server{ctl: ctl, metrics: metrics, log: log}
	s.srv = &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s
}

func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "up"})
	})
	if s.metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.metrics)
	}

	r.Get("/status", s.handleStatus)
	r.Post("/run", s.handleRun)
	r.Post("/cancel", s.handleCancel)
	r.Post("/pause", func(w http.ResponseWriter, r *http.Request) {
		s.ctl.Pause()
		writeJSON(w, http.StatusOK, map[string]bool{"paused": true})
	})
	r.Post("/continue", func(w http.ResponseWriter, r *http.Request) {
		s.ctl.Continue()
		writeJSON(w, http.StatusOK, map[string]bool{"paused": false})
	})
	return r
}

// ListenAndServe serves until ctx is done, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.log.Info("status server listening", "addr", s.srv.Addr)
		errCh <- s.srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return s.srv.Shutdown(shutdownCtx)
	}
}

type runResponse struct {
	Queued   bool   `json:"queued"`
	Replaced bool   `json:"replaced"`
	DaysAgo  *int   `json:"daysAgo,omitempty"`
	Warning  string `json:"warning,omitempty"`
}

func (s *Server) handleRun(w http.ResponseWriter, r *http.Request) {
	req := job.NewRequest(job.ReasonManual)
	resp := runResponse{Queued: true}

	if raw := r.URL.Query().Get("daysAgo"); raw != "" {
		if days, ok := job.ParseDaysAgo(raw); ok {
			req = req.WithDaysAgo(days)
			resp.DaysAgo = req.DaysAgo
		} else {
			s.log.Warn("invalid daysAgo in run request, using configured policy", "value", raw)
			resp.Warning = "invalid daysAgo ignored, configured policy applies"
		}
	}

	resp.Replaced = s.ctl.RunNow(req)
	writeJSON(w, http.StatusAccepted, resp)
}

func (s *Server) handleCancel(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]bool{"canceled": s.ctl.Cancel()})
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, viewOf(s.ctl.Status()))
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
