// Package assistant exposes the conversational endpoint of FinBot.
package assistant

import (
	"encoding/json"
	"net/http"

	"finbot/pkg/core/agent"
)

// Handler provides HTTP handlers for the assistant.
type Handler struct {
	assistant *agent.Assistant
}

// NewHandler creates a new assistant handler
func NewHandler(a *agent.Assistant) *Handler {
	return &Handler{assistant: a}
}

// ChatRequest is the user's natural language query.
type ChatRequest struct {
	Message string `json:"message"`
}

// ChatResponse carries the assistant's answer.
type ChatResponse struct {
	Answer string `json:"answer"`
	Error  string `json:"error,omitempty"`
}

// HandleChat answers one user message.
func (h *Handler) HandleChat(w http.ResponseWriter, r *http.Request) {
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

	var req ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	answer, err := h.assistant.Answer(r.Context(), req.Message)
	if err != nil {
		w.WriteHeader(http.StatusUnprocessableEntity)
		json.NewEncoder(w).Encode(ChatResponse{Error: err.Error()})
		return
	}

	json.NewEncoder(w).Encode(ChatResponse{Answer: answer})
}
