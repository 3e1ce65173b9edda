package httpapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/XavierBriggs/Themis/internal/metrics"
	"github.com/XavierBriggs/Themis/internal/progress"
	"github.com/XavierBriggs/Themis/internal/slip"
	"github.com/XavierBriggs/Themis/pkg/contracts"
	"github.com/XavierBriggs/Themis/pkg/models"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Server is the read-mostly HTTP surface: slip import, active wagers,
// live progress, health, and metrics. Settlement itself never flows
// through HTTP; the scheduler owns it.
type Server struct {
	store     contracts.WagerStore
	projector *progress.Projector
	userID    string
}

// NewServer creates the HTTP API server.
func NewServer(store contracts.WagerStore, projector *progress.Projector, userID string) *Server {
	return &Server{store: store, projector: projector, userID: userID}
}

// Router builds the chi router with the standard middleware stack.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(30 * time.Second))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/healthz", s.HealthCheck)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/slips", s.ImportSlip)
		r.Get("/wagers", s.GetActiveWagers)
		r.Get("/wagers/{wagerID}/progress", s.GetWagerProgress)
	})

	return r
}

// HealthCheck reports liveness.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"timestamp": time.Now().UTC(),
		"service":   "themis",
	})
}

// slipRequest is a pasted bet slip to import.
type slipRequest struct {
	Text string `json:"text"`
}

type slipResponse struct {
	Imported int               `json:"imported"`
	Wagers   []models.Wager    `json:"wagers"`
	Errors   []slip.ParseError `json:"errors,omitempty"`
}

// ImportSlip parses pasted slip text and persists the resulting wagers.
// Partial success is the norm: parse errors ride along in the response
// instead of failing the batch.
func (s *Server) ImportSlip(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var req slipRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}
	if req.Text == "" {
		respondError(w, http.StatusBadRequest, "empty slip text", nil)
		return
	}

	wagers, parseErrs := slip.Parse(req.Text)
	for range parseErrs {
		metrics.SlipParseFailures.Inc()
	}
	if len(wagers) > 0 {
		if err := s.store.InsertWagers(ctx, s.userID, wagers); err != nil {
			respondError(w, http.StatusInternalServerError, "persist wagers", err)
			return
		}
	}

	respondJSON(w, http.StatusCreated, slipResponse{
		Imported: len(wagers),
		Wagers:   wagers,
		Errors:   parseErrs,
	})
}

// GetActiveWagers lists pending and active wagers.
func (s *Server) GetActiveWagers(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	wagers, err := s.store.GetActiveWagers(ctx, s.userID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "load wagers", err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"wagers": wagers,
		"count":  len(wagers),
	})
}

// GetWagerProgress returns the live projection for one wager.
func (s *Server) GetWagerProgress(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	wagerID := chi.URLParam(r, "wagerID")

	wagers, err := s.store.GetActiveWagers(ctx, s.userID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "load wagers", err)
		return
	}

	for i := range wagers {
		if wagers[i].ID != wagerID {
			continue
		}
		proj, err := s.projector.Project(ctx, &wagers[i])
		if err != nil {
			respondError(w, http.StatusBadGateway, "project progress", err)
			return
		}
		respondJSON(w, http.StatusOK, proj)
		return
	}
	respondError(w, http.StatusNotFound, "wager not found or not active", nil)
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		fmt.Printf("error encoding response: %v\n", err)
	}
}

func respondError(w http.ResponseWriter, status int, message string, err error) {
	if err != nil {
		fmt.Printf("error: %s - %v\n", message, err)
	}
	respondJSON(w, status, map[string]interface{}{
		"error":   http.StatusText(status),
		"message": message,
		"code":    status,
	})
}
