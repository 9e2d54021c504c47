// Package handlers provides the HTTP API for the Inkwell journaling core.
package handlers

import (
	"encoding/json"
	"log"
	"net/http"
)

// ErrorResponse is the standard error body returned by every endpoint.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// CreateEntryRequest is the body for POST /api/entries.
type CreateEntryRequest struct {
	Text string `json:"text"`
}

// StreakResponse is the body for GET /api/streak.
type StreakResponse struct {
	Streak int `json:"streak"`
}

// HealthResponse is the body for GET /api/health.
type HealthResponse struct {
	Status  string `json:"status"`
	Entries int    `json:"entries"`
}

// respondJSON writes a JSON response with the given status code.
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("handlers: failed to encode response: %v", err)
	}
}

// respondError writes a standard error response.
func respondError(w http.ResponseWriter, status int, code string, err error) {
	message := code
	if err != nil {
		message = err.Error()
	}
	respondJSON(w, status, ErrorResponse{Error: message, Code: code})
}
