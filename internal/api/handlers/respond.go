package handlers

import (
	"encoding/json"
	"net/http"
)

// Handlers bundles the API handlers for router wiring.
type Handlers struct {
	Screener *ScreenerHandler
	Series   *SeriesHandler
	Ranking  *RankingHandler
	Status   *StatusHandler
	Compare  *CompareHandler
}

// respondJSON writes a JSON response with the given status code.
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		_ = json.NewEncoder(w).Encode(payload)
	}
}

// respondError writes a JSON error response.
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"detail": message})
}
