package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"finbot/pkg/core/knowledge"
)

// KnowledgeRepo persists knowledge base documents and chunks in Postgres.
// It implements knowledge.VectorStore; similarity is scored in-process
// after loading the candidate chunks.
type KnowledgeRepo struct{}

// NewKnowledgeRepo creates a new repository instance.
func NewKnowledgeRepo() *KnowledgeRepo {
	return &KnowledgeRepo{}
}

var _ knowledge.VectorStore = (*KnowledgeRepo)(nil)

// EnsureSchema creates the knowledge tables if they do not exist.
func (r *KnowledgeRepo) EnsureSchema(ctx context.Context) error {
	pool := GetPool()
	if pool == nil {
		return fmt.Errorf("database pool not initialized")
	}

	schema := `
		CREATE TABLE IF NOT EXISTS knowledge_documents (
			id TEXT PRIMARY KEY,
			source TEXT,
			title TEXT,
			content TEXT,
			created_at TIMESTAMPTZ
		);
		CREATE TABLE IF NOT EXISTS knowledge_chunks (
			id TEXT PRIMARY KEY,
			document_id TEXT REFERENCES knowledge_documents(id) ON DELETE CASCADE,
			chunk_index INT,
			content TEXT,
			embedding JSONB
		);
	`
	if _, err := pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("failed to create knowledge schema: %w", err)
	}
	return nil
}

// AddDocument upserts the document row and inserts its chunks. The
// embedding is stored as a JSONB array, following the single-blob storage
// convention used elsewhere in the store.
func (r *KnowledgeRepo) AddDocument(ctx context.Context, doc knowledge.Document, chunks []knowledge.Chunk) error {
	pool := GetPool()
	if pool == nil {
		return fmt.Errorf("database pool not initialized")
	}

	docQuery := `
		INSERT INTO knowledge_documents (id, source, title, content, created_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id)
		DO UPDATE SET
			source = EXCLUDED.source,
			title = EXCLUDED.title,
			content = EXCLUDED.content;
	`
	if _, err := pool.Exec(ctx, docQuery, doc.ID, doc.Source, doc.Title, doc.Content, doc.CreatedAt); err != nil {
		return fmt.Errorf("failed to save document %q: %w", doc.Title, err)
	}

	chunkQuery := `
		INSERT INTO knowledge_chunks (id, document_id, chunk_index, content, embedding)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO NOTHING;
	`
	for _, c := range chunks {
		embJSON, err := json.Marshal(c.Embedding)
		if err != nil {
			return fmt.Errorf("failed to marshal embedding: %w", err)
		}
		if _, err := pool.Exec(ctx, chunkQuery, c.ID, c.DocumentID, c.Index, c.Content, embJSON); err != nil {
			return fmt.Errorf("failed to save chunk %d of %q: %w", c.Index, doc.Title, err)
		}
	}
	return nil
}

// Search loads all chunks and ranks them by cosine similarity.
func (r *KnowledgeRepo) Search(ctx context.Context, query []float32, k int) ([]knowledge.ScoredChunk, error) {
	pool := GetPool()
	if pool == nil {
		return nil, fmt.Errorf("database pool not initialized")
	}

	rows, err := pool.Query(ctx, `SELECT id, document_id, chunk_index, content, embedding FROM knowledge_chunks`)
	if err != nil {
		return nil, fmt.Errorf("failed to query chunks: %w", err)
	}
	defer rows.Close()

	var scored []knowledge.ScoredChunk
	for rows.Next() {
		var c knowledge.Chunk
		var embJSON []byte
		if err := rows.Scan(&c.ID, &c.DocumentID, &c.Index, &c.Content, &embJSON); err != nil {
			return nil, fmt.Errorf("failed to scan chunk: %w", err)
		}
		if err := json.Unmarshal(embJSON, &c.Embedding); err != nil {
			return nil, fmt.Errorf("failed to unmarshal embedding for chunk %s: %w", c.ID, err)
		}
		scored = append(scored, knowledge.ScoredChunk{
			Chunk: c,
			Score: knowledge.CosineSimilarity(query, c.Embedding),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})
	if k > len(scored) {
		k = len(scored)
	}
	return scored[:k], nil
}

// Count returns the number of indexed chunks.
func (r *KnowledgeRepo) Count(ctx context.Context) (int, error) {
	pool := GetPool()
	if pool == nil {
		return 0, fmt.Errorf("database pool not initialized")
	}

	var count int
	if err := pool.QueryRow(ctx, `SELECT COUNT(*) FROM knowledge_chunks`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count chunks: %w", err)
	}
	return count, nil
}

// Documents lists the indexed documents, newest first.
func (r *KnowledgeRepo) Documents(ctx context.Context) ([]knowledge.Document, error) {
	pool := GetPool()
	if pool == nil {
		return nil, fmt.Errorf("database pool not initialized")
	}

	rows, err := pool.Query(ctx, `SELECT id, source, title, content, created_at FROM knowledge_documents ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query documents: %w", err)
	}
	defer rows.Close()

	var docs []knowledge.Document
	for rows.Next() {
		var d knowledge.Document
		if err := rows.Scan(&d.ID, &d.Source, &d.Title, &d.Content, &d.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan document: %w", err)
		}
		docs = append(docs, d)
	}
	return docs, rows.Err()
}
