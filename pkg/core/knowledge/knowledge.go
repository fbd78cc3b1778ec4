// Package knowledge implements the assistant's retrieval base: document
// ingestion, chunking, embedding and similarity search over financial
// reference material.
package knowledge

import (
	"time"

	"github.com/google/uuid"
)

// Document is a source text registered in the knowledge base.
type Document struct {
	ID        string    `json:"id"`
	Source    string    `json:"source"` // file path, URL or "seed"
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// Chunk is a splitter-produced fragment of a document, the unit of
// embedding and retrieval.
type Chunk struct {
	ID         string    `json:"id"`
	DocumentID string    `json:"document_id"`
	Index      int       `json:"index"`
	Content    string    `json:"content"`
	Embedding  []float32 `json:"embedding,omitempty"`
}

// ScoredChunk pairs a retrieved chunk with its similarity to the query.
type ScoredChunk struct {
	Chunk Chunk   `json:"chunk"`
	Score float64 `json:"score"`
}

// NewDocument builds a document with a fresh ID and timestamp.
func NewDocument(source, title, content string) Document {
	return Document{
		ID:        uuid.NewString(),
		Source:    source,
		Title:     title,
		Content:   content,
		CreatedAt: time.Now().UTC(),
	}
}
