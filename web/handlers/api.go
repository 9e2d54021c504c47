package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/scrypster/inkwell/internal/engine"
	"github.com/scrypster/inkwell/pkg/types"
)

// defaultStatsWindow is the aggregation window used when the client doesn't
// pass ?days=N.
const defaultStatsWindow = 30

// JournalAPI exposes the journaling core over HTTP.
type JournalAPI struct {
	engine *engine.JournalEngine
}

// NewJournalAPI creates a JournalAPI backed by the given engine.
func NewJournalAPI(eng *engine.JournalEngine) *JournalAPI {
	return &JournalAPI{engine: eng}
}

// NewRouter builds the chi router with all API routes and middleware.
func NewRouter(api *JournalAPI, limiter *RateLimiter) chi.Router {
	r := chi.NewRouter()
	r.Use(SecurityHeaders)
	if limiter != nil {
		r.Use(limiter.Middleware)
	}

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", api.GetHealth)
		r.Post("/entries", api.CreateEntry)
		r.Get("/entries", api.ListEntries)
		r.Get("/stats", api.GetStats)
		r.Get("/streak", api.GetStreak)
		r.Get("/insights", api.GetInsights)
	})

	return r
}

// GetHealth handles GET /api/health.
func (api *JournalAPI) GetHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, HealthResponse{
		Status:  "ok",
		Entries: len(api.engine.Entries()),
	})
}

// CreateEntry handles POST /api/entries. The entry is persisted immediately
// with placeholder classification and enriched asynchronously; the response
// reflects the pre-enrichment state.
func (api *JournalAPI) CreateEntry(w http.ResponseWriter, r *http.Request) {
	var req CreateEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_BODY", err)
		return
	}

	entry, err := api.engine.AddEntry(r.Context(), req.Text)
	if err != nil {
		if errors.Is(err, engine.ErrEmptyText) {
			respondError(w, http.StatusBadRequest, "EMPTY_TEXT", err)
			return
		}
		respondError(w, http.StatusInternalServerError, "STORE_FAILED", err)
		return
	}

	respondJSON(w, http.StatusCreated, entry)
}

// ListEntries handles GET /api/entries, most recent first.
func (api *JournalAPI) ListEntries(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, api.engine.Entries())
}

// GetStats handles GET /api/stats?days=N.
func (api *JournalAPI) GetStats(w http.ResponseWriter, r *http.Request) {
	days := defaultStatsWindow
	if raw := r.URL.Query().Get("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			respondError(w, http.StatusBadRequest, "INVALID_DAYS", err)
			return
		}
		days = parsed
	}

	stats, err := api.engine.Stats(days)
	if err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_DAYS", err)
		return
	}
	respondJSON(w, http.StatusOK, stats)
}

// GetStreak handles GET /api/streak.
func (api *JournalAPI) GetStreak(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, StreakResponse{Streak: api.engine.Streak()})
}

// GetInsights handles GET /api/insights?period=week|month.
func (api *JournalAPI) GetInsights(w http.ResponseWriter, r *http.Request) {
	period := types.Period(r.URL.Query().Get("period"))
	if period == "" {
		period = types.PeriodWeek
	}

	insight, err := api.engine.Insight(period)
	if err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_PERIOD", err)
		return
	}
	respondJSON(w, http.StatusOK, insight)
}
