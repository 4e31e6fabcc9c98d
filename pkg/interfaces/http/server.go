// Package httpadapter exposes the analysis orchestrator as a JSON API.
package httpadapter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"

	"github.com/fleetdesk/fleetplan/pkg/application/dto"
	"github.com/fleetdesk/fleetplan/pkg/domain/entities"
	"github.com/fleetdesk/fleetplan/pkg/domain/repositories"
)

const maxBodyBytes = 1 << 20

// Analyzer is the application surface the API serves
type Analyzer interface {
	AnalyzeCapacity(ctx context.Context, req dto.CapacityRequest) (*dto.CapacityAnalysis, error)
	AnalyzeParts(ctx context.Context, req dto.PartsRequest) (*dto.PartsAnalysis, error)
	AnalyzeDashboard(ctx context.Context, req dto.DashboardRequest) (*dto.DashboardAnalysis, error)
	SimulateAcquisition(ctx context.Context, req dto.AcquisitionRequest) (*entities.SimulationResult, error)
	Sectors(ctx context.Context) ([]entities.Sector, error)
}

// Server routes HTTP requests to the analyzer
type Server struct {
	analyzer Analyzer
	logger   zerolog.Logger
}

// New creates a new API server
func New(analyzer Analyzer, logger zerolog.Logger) *Server {
	return &Server{analyzer: analyzer, logger: logger.With().Str("component", "http").Logger()}
}

// Routes returns a chi.Router with access logging and panic recovery
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(hlog.NewHandler(s.logger))
	r.Use(hlog.RequestIDHandler("req_id", "X-Request-Id"))
	r.Use(hlog.AccessHandler(func(r *http.Request, status, size int, duration time.Duration) {
		hlog.FromRequest(r).Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", status).
			Int("size", size).
			Dur("duration", duration).
			Msg("request")
	}))
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.healthz)
	r.Get("/sectors", s.sectors)
	r.Route("/analysis", func(r chi.Router) {
		r.Post("/capacity", s.capacity)
		r.Post("/parts", s.parts)
		r.Post("/dashboard", s.dashboard)
	})
	r.Post("/parts/{id}/simulate", s.simulate)
	return r
}

// ListenAndServe serves until ctx is cancelled, then drains in-flight requests
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()
	s.logger.Info().Str("addr", addr).Msg("listening")

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
		s.logger.Info().Msg("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) healthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) sectors(w http.ResponseWriter, r *http.Request) {
	sectors, err := s.analyzer.Sectors(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string][]entities.Sector{"sectors": sectors})
}

func (s *Server) capacity(w http.ResponseWriter, r *http.Request) {
	var req dto.CapacityRequest
	if !decode(w, r, &req) {
		return
	}
	result, err := s.analyzer.AnalyzeCapacity(r.Context(), req)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) parts(w http.ResponseWriter, r *http.Request) {
	var req dto.PartsRequest
	if !decode(w, r, &req) {
		return
	}
	result, err := s.analyzer.AnalyzeParts(r.Context(), req)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) dashboard(w http.ResponseWriter, r *http.Request) {
	var req dto.DashboardRequest
	if !decode(w, r, &req) {
		return
	}
	result, err := s.analyzer.AnalyzeDashboard(r.Context(), req)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) simulate(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid part id")
		return
	}
	var body struct {
		Quantity entities.Quantity `json:"quantity"`
	}
	if !decode(w, r, &body) {
		return
	}

	result, err := s.analyzer.SimulateAcquisition(r.Context(), dto.AcquisitionRequest{PartID: entities.PartID(id), Quantity: body.Quantity})
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, repositories.ErrNotFound) {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	hlog.FromRequest(r).Error().Err(err).Msg("request failed")
	writeError(w, http.StatusInternalServerError, "internal error")
}

// decode reads a JSON body; an empty body leaves v at its zero value
func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(v); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
