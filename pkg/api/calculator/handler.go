// Package calculator exposes the financial calculation engine over HTTP.
package calculator

import (
	"encoding/json"
	"net/http"

	"finbot/pkg/core/calc"
)

// Handler provides HTTP handlers for calculator endpoints.
type Handler struct{}

// NewHandler creates a new calculator handler
func NewHandler() *Handler {
	return &Handler{}
}

// CalculateRequest carries the raw calculation query, either a JSON object
// serialized as a string or positional text like "roi 1000 1500".
type CalculateRequest struct {
	Query string `json:"query"`
}

// HandleCalculate runs one calculation and returns the structured outcome.
func (h *Handler) HandleCalculate(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

	if r.Method == "OPTIONS" {
		w.WriteHeader(http.StatusOK)
		return
	}
	if r.Method != "POST" {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req CalculateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	outcome := calc.ExecuteOutcome(req.Query)
	json.NewEncoder(w).Encode(outcome)
}

// RatioInfo describes one catalog entry for clients.
type RatioInfo struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Labels      []string `json:"labels"`
}

// HandleRatios lists the supported financial ratios.
func (h *Handler) HandleRatios(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")

	var ratios []RatioInfo
	for _, name := range calc.RatioNames() {
		def, _ := calc.LookupRatio(name)
		ratios = append(ratios, RatioInfo{
			Name:        name,
			Description: def.Description,
			Labels:      def.Labels,
		})
	}
	json.NewEncoder(w).Encode(ratios)
}
