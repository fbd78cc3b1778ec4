// Command ingest indexes documents into the Postgres knowledge base.
//
// Usage:
//
//	ingest <file-or-url> [more...]
package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"finbot/pkg/core/knowledge"
	"finbot/pkg/core/store"
)

func main() {
	godotenv.Load()

	if len(os.Args) < 2 {
		fmt.Println("Usage: ingest <file-or-url> [more...]")
		os.Exit(1)
	}

	ctx := context.Background()

	if os.Getenv("DATABASE_URL") == "" {
		fmt.Println("[FATAL] DATABASE_URL not set; the ingest tool writes to Postgres")
		os.Exit(1)
	}
	if err := store.InitDB(ctx); err != nil {
		fmt.Printf("[FATAL] Failed to connect to database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	repo := store.NewKnowledgeRepo()
	if err := repo.EnsureSchema(ctx); err != nil {
		fmt.Printf("[FATAL] Failed to create schema: %v\n", err)
		os.Exit(1)
	}

	var embedder knowledge.Embedder = &knowledge.HashEmbedder{}
	if os.Getenv("GEMINI_API_KEY") != "" {
		embedder = &knowledge.GeminiEmbedder{}
	} else {
		fmt.Println("[WARNING] GEMINI_API_KEY not set, using hash embeddings")
	}

	base := knowledge.NewBase(repo, embedder)

	failed := 0
	for _, source := range os.Args[1:] {
		var (
			doc knowledge.Document
			n   int
			err error
		)
		if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
			doc, n, err = base.IngestURL(ctx, source)
		} else {
			doc, n, err = base.IngestFile(ctx, source)
		}
		if err != nil {
			fmt.Printf("[ERROR] %s: %v\n", source, err)
			failed++
			continue
		}
		fmt.Printf("[OK] %s -> %q (%d chunks)\n", source, doc.Title, n)
	}

	if failed > 0 {
		os.Exit(1)
	}
}
