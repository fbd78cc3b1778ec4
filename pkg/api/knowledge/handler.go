// Package knowledge exposes the retrieval base over HTTP: querying,
// listing and ingesting documents.
package knowledge

import (
	"encoding/json"
	"net/http"

	"finbot/pkg/core/knowledge"
)

// Handler provides HTTP handlers for knowledge base endpoints.
type Handler struct {
	base *knowledge.Base
}

// NewHandler creates a new knowledge handler
func NewHandler(base *knowledge.Base) *Handler {
	return &Handler{base: base}
}

// QueryRequest asks for the chunks most similar to a question.
type QueryRequest struct {
	Question string `json:"question"`
	TopK     int    `json:"top_k,omitempty"`
}

// QueryResponse returns the ranked chunks and the joined context block.
type QueryResponse struct {
	Chunks  []knowledge.ScoredChunk `json:"chunks"`
	Context string                  `json:"context"`
}

// HandleQuery runs a similarity search.
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

	chunks, err := h.base.Query(r.Context(), req.Question, req.TopK)
	if err != nil {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}

	json.NewEncoder(w).Encode(QueryResponse{
		Chunks:  chunks,
		Context: knowledge.BuildContext(chunks),
	})
}

// IngestRequest registers a new source: a local file path or a URL.
type IngestRequest struct {
	Path string `json:"path,omitempty"`
	URL  string `json:"url,omitempty"`
}

// IngestResponse reports what was indexed.
type IngestResponse struct {
	DocumentID string `json:"document_id"`
	Title      string `json:"title"`
	Chunks     int    `json:"chunks"`
}

// HandleIngest indexes a file or web page into the knowledge base.
func (h *Handler) HandleIngest(w http.ResponseWriter, r *http.Request) {
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

	var req IngestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	var (
		doc knowledge.Document
		n   int
		err error
	)
	switch {
	case req.URL != "":
		doc, n, err = h.base.IngestURL(r.Context(), req.URL)
	case req.Path != "":
		doc, n, err = h.base.IngestFile(r.Context(), req.Path)
	default:
		http.Error(w, "Either 'path' or 'url' is required", http.StatusBadRequest)
		return
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}

	json.NewEncoder(w).Encode(IngestResponse{DocumentID: doc.ID, Title: doc.Title, Chunks: n})
}

// HandleDocuments lists the indexed documents.
func (h *Handler) HandleDocuments(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")

	docs, err := h.base.Documents(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	// Strip full content from the listing; clients only need metadata.
	type docSummary struct {
		ID        string `json:"id"`
		Source    string `json:"source"`
		Title     string `json:"title"`
		CreatedAt string `json:"created_at"`
	}
	summaries := make([]docSummary, 0, len(docs))
	for _, d := range docs {
		summaries = append(summaries, docSummary{
			ID:        d.ID,
			Source:    d.Source,
			Title:     d.Title,
			CreatedAt: d.CreatedAt.Format("2006-01-02 15:04:05"),
		})
	}
	json.NewEncoder(w).Encode(summaries)
}
