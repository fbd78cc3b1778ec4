package knowledge

import (
	"context"
	"fmt"
	"hash/fnv"
	"math"
	"os"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// Embedder turns texts into dense vectors for similarity search.
type Embedder interface {
	Embed(ctx context.Context, texts []string) ([][]float32, error)
}

// ====================================================================
// Gemini embedder
// ====================================================================

// GeminiEmbedder produces embeddings with Google's embedding models.
type GeminiEmbedder struct {
	Model string // e.g. "text-embedding-004"
}

var _ Embedder = (*GeminiEmbedder)(nil)

func (e *GeminiEmbedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY_MISSING: Please set GEMINI_API_KEY env var")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("GEMINI_CLIENT_ERROR: %v", err)
	}
	defer client.Close()

	model := e.Model
	if model == "" {
		model = "text-embedding-004"
	}
	em := client.EmbeddingModel(model)

	batch := em.NewBatch()
	for _, text := range texts {
		batch.AddContent(genai.Text(text))
	}

	res, err := em.BatchEmbedContents(ctx, batch)
	if err != nil {
		return nil, fmt.Errorf("GEMINI_EMBED_ERROR: %v", err)
	}
	if len(res.Embeddings) != len(texts) {
		return nil, fmt.Errorf("GEMINI_EMBED_ERROR: got %d embeddings for %d texts", len(res.Embeddings), len(texts))
	}

	vectors := make([][]float32, len(res.Embeddings))
	for i, emb := range res.Embeddings {
		vectors[i] = emb.Values
	}
	return vectors, nil
}

// ====================================================================
// Hash embedder
// ====================================================================

// hashDimensions keeps the offline vectors small but discriminative.
const hashDimensions = 256

// HashEmbedder is a deterministic offline embedder: each token hashes into a
// bucket of a fixed-size vector, which is then L2-normalized. It gives
// keyword-level retrieval without any API and is the default when no key is
// configured.
type HashEmbedder struct{}

var _ Embedder = (*HashEmbedder)(nil)

func (e *HashEmbedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	vectors := make([][]float32, len(texts))
	for i, text := range texts {
		vectors[i] = hashVector(text)
	}
	return vectors, nil
}

func hashVector(text string) []float32 {
	vec := make([]float32, hashDimensions)
	for _, token := range tokenize(text) {
		h := fnv.New32a()
		h.Write([]byte(token))
		vec[h.Sum32()%hashDimensions]++
	}

	var norm float64
	for _, v := range vec {
		norm += float64(v) * float64(v)
	}
	if norm > 0 {
		scale := float32(1 / math.Sqrt(norm))
		for i := range vec {
			vec[i] *= scale
		}
	}
	return vec
}

func tokenize(text string) []string {
	var tokens []string
	var current []rune
	for _, r := range text {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r >= 'á' && r <= 'ú':
			current = append(current, r)
		case r >= 'A' && r <= 'Z':
			current = append(current, r+('a'-'A'))
		default:
			if len(current) > 0 {
				tokens = append(tokens, string(current))
				current = nil
			}
		}
	}
	if len(current) > 0 {
		tokens = append(tokens, string(current))
	}
	return tokens
}
