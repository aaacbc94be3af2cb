// Package http exposes the impact and deflection models, the NeoWs threat
// catalog, and operational endpoints over REST.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/couchcryptid/asteroid-impact-service/internal/catalog"
	"github.com/couchcryptid/asteroid-impact-service/internal/observability"
	"github.com/couchcryptid/asteroid-impact-service/internal/physics"
)

// ReadinessChecker reports whether the service is ready to serve traffic.
type ReadinessChecker interface {
	CheckReadiness(ctx context.Context) error
}

// ReadinessFunc adapts a function to the ReadinessChecker interface.
type ReadinessFunc func(ctx context.Context) error

func (f ReadinessFunc) CheckReadiness(ctx context.Context) error { return f(ctx) }

// Server exposes the assessment API plus health, readiness, and metrics
// endpoints.
type Server struct {
	httpServer *http.Server
	source     catalog.Source
	provider   physics.DensityProvider
	metrics    *observability.Metrics
	logger     *slog.Logger
}

// NewServer creates the HTTP server. source may be nil when the NeoWs
// catalog is unavailable; the catalog routes then return 503. provider may
// be nil, which disables the advisory density annotation.
func NewServer(addr string, ready ReadinessChecker, source catalog.Source, provider physics.DensityProvider, metrics *observability.Metrics, logger *slog.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      withCORS(mux),
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		source:   source,
		provider: provider,
		metrics:  metrics,
		logger:   logger,
	}

	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /readyz", handleReady(ready))
	mux.Handle("GET /metrics", promhttp.Handler())

	mux.HandleFunc("POST /api/impact", s.handleImpact)
	mux.HandleFunc("POST /api/deflection", s.handleDeflection)
	mux.HandleFunc("GET /api/validation", s.handleValidation)
	mux.HandleFunc("GET /api/threats", s.handleThreats)
	mux.HandleFunc("GET /api/asteroid/{id}", s.handleAsteroid)

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func handleReady(checker ReadinessChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := checker.CheckReadiness(ctx); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{
				"status": "not ready",
				"error":  err.Error(),
			})
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
	}
}

func (s *Server) handleImpact(w http.ResponseWriter, r *http.Request) {
	var params physics.ImpactParameters
	if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
		return
	}

	if msg := validateImpactParams(&params); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	start := time.Now()
	result, err := physics.ComputeImpact(params)
	s.metrics.CalculationDuration.WithLabelValues("impact").Observe(time.Since(start).Seconds())
	if err != nil {
		s.logger.Error("impact calculation failed", "error", err)
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	s.metrics.ImpactCalculations.Inc()

	result = physics.EnrichWithObservedDensity(r.Context(), result, params.Latitude, params.Longitude, s.provider, s.logger)

	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleDeflection(w http.ResponseWriter, r *http.Request) {
	var params physics.DeflectionParameters
	if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
		return
	}

	if msg := validateDeflectionParams(params); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	start := time.Now()
	result, err := physics.ComputeDeflection(params)
	s.metrics.CalculationDuration.WithLabelValues("deflection").Observe(time.Since(start).Seconds())
	if err != nil {
		if errors.Is(err, physics.ErrUnknownMethod) {
			s.metrics.DeflectionCalculations.WithLabelValues(params.Method, "unknown_method").Inc()
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		s.metrics.DeflectionCalculations.WithLabelValues(params.Method, "error").Inc()
		s.logger.Error("deflection calculation failed", "error", err)
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	s.metrics.DeflectionCalculations.WithLabelValues(params.Method, "success").Inc()

	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleValidation(w http.ResponseWriter, _ *http.Request) {
	records := physics.RunValidationSuite()
	s.metrics.ValidationRuns.Inc()
	writeJSON(w, http.StatusOK, map[string]any{"results": records})
}

func (s *Server) handleThreats(w http.ResponseWriter, r *http.Request) {
	if s.source == nil {
		writeError(w, http.StatusServiceUnavailable, "asteroid catalog is not configured")
		return
	}

	start := time.Now().UTC().Truncate(24 * time.Hour)
	asteroids, err := s.source.Feed(r.Context(), start, start.AddDate(0, 0, 7))
	if err != nil {
		s.logger.Error("threat feed fetch failed", "error", err)
		writeError(w, http.StatusBadGateway, "upstream catalog unavailable")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"count":     len(asteroids),
		"asteroids": asteroids,
	})
}

func (s *Server) handleAsteroid(w http.ResponseWriter, r *http.Request) {
	if s.source == nil {
		writeError(w, http.StatusServiceUnavailable, "asteroid catalog is not configured")
		return
	}

	id := r.PathValue("id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "asteroid id is required")
		return
	}

	a, err := s.source.Lookup(r.Context(), id)
	if err != nil {
		s.logger.Error("asteroid lookup failed", "id", id, "error", err)
		writeError(w, http.StatusBadGateway, "upstream catalog unavailable")
		return
	}

	writeJSON(w, http.StatusOK, a)
}

// validateImpactParams enforces the documented input ranges. Longitudes in
// (±180, ±360] wrap into the principal range.
func validateImpactParams(p *physics.ImpactParameters) string {
	if p.DiameterM < 10 || p.DiameterM > 10000 {
		return "diameter_m must be within [10, 10000]"
	}
	if p.EntrySpeedKmS < 10 || p.EntrySpeedKmS > 70 {
		return "speed_km_s must be within [10, 70]"
	}
	if p.EntryAngleDeg < 15 || p.EntryAngleDeg > 90 {
		return "angle_deg must be within [15, 90]"
	}
	if p.Latitude < -90 || p.Latitude > 90 {
		return "lat must be within [-90, 90]"
	}
	if p.Longitude < -360 || p.Longitude > 360 {
		return "lon must be within [-360, 360]"
	}
	if p.Longitude > 180 {
		p.Longitude -= 360
	} else if p.Longitude < -180 {
		p.Longitude += 360
	}
	if p.DensityOverride != nil && *p.DensityOverride <= 0 {
		return "density_kg_m3 must be positive"
	}
	return ""
}

func validateDeflectionParams(p physics.DeflectionParameters) string {
	if p.Method == "" {
		return "method is required"
	}
	if p.AsteroidDiameterM <= 0 {
		return "asteroid_diameter_m must be positive"
	}
	if p.AsteroidMassKg <= 0 {
		return "asteroid_mass_kg must be positive"
	}
	if p.AsteroidVelocityKmS <= 0 {
		return "asteroid_velocity_km_s must be positive"
	}
	if p.TimeToImpactDays <= 0 {
		return "time_to_impact_days must be positive"
	}
	if p.SpacecraftMassKg < 0 {
		return "spacecraft_mass_kg must not be negative"
	}
	if p.SpacecraftVelocityKmS < 0 {
		return "spacecraft_velocity_km_s must not be negative"
	}
	return ""
}

// withCORS allows browser front ends on other origins to call the API.
func withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // best-effort response
}
