package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"

	"finbot/pkg/api/assistant"
	"finbot/pkg/api/calculator"
	"finbot/pkg/api/config"
	apiknowledge "finbot/pkg/api/knowledge"
	apimarket "finbot/pkg/api/market"
	"finbot/pkg/core/agent"
	"finbot/pkg/core/knowledge"
	"finbot/pkg/core/market"
	"finbot/pkg/core/prompt"
	"finbot/pkg/core/store"
)

func main() {
	// Load environment variables
	godotenv.Load()

	ctx := context.Background()

	// Initialize Prompt Library
	// Determine resources path (relative to executable or working directory)
	resourcesPath := "resources"
	if _, err := os.Stat(resourcesPath); os.IsNotExist(err) {
		// Try from executable directory
		exePath, _ := os.Executable()
		resourcesPath = filepath.Join(filepath.Dir(exePath), "resources")
	}
	if err := prompt.LoadFromDirectory(resourcesPath); err != nil {
		fmt.Printf("[WARNING] Failed to load prompt library: %v\n", err)
		fmt.Println("  Falling back to built-in prompts")
	}

	// Initialize manager from config
	configData, _ := os.ReadFile("config/models.yaml")
	var agentCfg agent.Config
	yaml.Unmarshal(configData, &agentCfg)
	agentMgr := agent.NewManager(agentCfg)

	// Knowledge base: Postgres-backed when DATABASE_URL is set, in-memory
	// otherwise. The Gemini embedder needs an API key; without one the
	// deterministic hash embedder keeps retrieval working offline.
	var embedder knowledge.Embedder = &knowledge.HashEmbedder{}
	if os.Getenv("GEMINI_API_KEY") != "" {
		embedder = &knowledge.GeminiEmbedder{}
		fmt.Println("[KNOWLEDGE] Using Gemini embeddings")
	} else {
		fmt.Println("[KNOWLEDGE] GEMINI_API_KEY not set, using hash embeddings")
	}

	var vectorStore knowledge.VectorStore = knowledge.NewMemoryStore()
	if os.Getenv("DATABASE_URL") != "" {
		if err := store.InitDB(ctx); err != nil {
			fmt.Printf("[WARNING] Database unavailable, using in-memory store: %v\n", err)
		} else {
			defer store.Close()
			repo := store.NewKnowledgeRepo()
			if err := repo.EnsureSchema(ctx); err != nil {
				fmt.Printf("[WARNING] Schema setup failed, using in-memory store: %v\n", err)
			} else {
				vectorStore = repo
				fmt.Println("[KNOWLEDGE] Using Postgres store")
			}
		}
	}

	base := knowledge.NewBase(vectorStore, embedder)
	if err := base.SeedIfEmpty(ctx); err != nil {
		fmt.Printf("[WARNING] Failed to seed knowledge base: %v\n", err)
	}

	// Market data source
	yahoo := market.NewYahooClient()

	// Assistant with its three tools
	finbot := agent.NewAssistant(agentMgr,
		&agent.CalculatorTool{},
		agent.NewMarketTool(yahoo),
		agent.NewKnowledgeTool(base),
	)

	// Config endpoints
	configHandler := config.NewHandler(agentMgr)
	http.HandleFunc("/api/config", configHandler.HandleConfig)
	http.HandleFunc("/api/config/switch", configHandler.HandleSwitch)

	// Assistant endpoint
	assistantHandler := assistant.NewHandler(finbot)
	http.HandleFunc("/api/chat", assistantHandler.HandleChat)

	// Calculator endpoints
	calcHandler := calculator.NewHandler()
	http.HandleFunc("/api/calculator", calcHandler.HandleCalculate)
	http.HandleFunc("/api/calculator/ratios", calcHandler.HandleRatios)

	// Market data endpoint
	marketHandler := apimarket.NewHandler(yahoo)
	http.HandleFunc("/api/market", marketHandler.HandleQuery)

	// Knowledge base endpoints
	knowledgeHandler := apiknowledge.NewHandler(base)
	http.HandleFunc("/api/knowledge/query", knowledgeHandler.HandleQuery)
	http.HandleFunc("/api/knowledge/ingest", knowledgeHandler.HandleIngest)
	http.HandleFunc("/api/knowledge/documents", knowledgeHandler.HandleDocuments)

	fmt.Println("API server starting on :8080...")
	fmt.Println("  - GET  /api/config")
	fmt.Println("  - POST /api/config/switch")
	fmt.Println("  - POST /api/chat")
	fmt.Println("  - POST /api/calculator")
	fmt.Println("  - GET  /api/calculator/ratios")
	fmt.Println("  - POST /api/market")
	fmt.Println("  - POST /api/knowledge/query")
	fmt.Println("  - POST /api/knowledge/ingest")
	fmt.Println("  - GET  /api/knowledge/documents")

	if err := http.ListenAndServe(":8080", nil); err != nil {
		fmt.Printf("[FATAL] Server failed to start: %v\n", err)
		os.Exit(1)
	}
}
