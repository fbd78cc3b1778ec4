// Package market exposes live stock data queries over HTTP.
package market

import (
	"encoding/json"
	"net/http"

	"finbot/pkg/core/market"
)

// Handler provides HTTP handlers for market data endpoints.
type Handler struct {
	tool *market.Tool
}

// NewHandler creates a new market handler over the given data source.
func NewHandler(source market.Source) *Handler {
	return &Handler{tool: market.NewTool(source)}
}

// QueryRequest carries a market query: a JSON object serialized as a string
// or positional text like "AAPL history 1mo 1d".
type QueryRequest struct {
	Query string `json:"query"`
}

// QueryResponse returns the rendered Spanish report.
type QueryResponse struct {
	Result string `json:"result"`
}

// HandleQuery answers one market data query.
func (h *Handler) HandleQuery(w http.ResponseWriter, r *http.Request) {
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

	var req QueryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	json.NewEncoder(w).Encode(QueryResponse{Result: h.tool.Execute(r.Context(), req.Query)})
}
