// Command chat runs FinBot as an interactive terminal session.
package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"

	"finbot/pkg/core/agent"
	"finbot/pkg/core/knowledge"
	"finbot/pkg/core/market"
	"finbot/pkg/core/prompt"
)

var exampleQueries = []string{
	"¿Qué es el ratio P/E?",
	"Muéstrame información sobre AAPL",
	"Calcula el ROI de una inversión de $1000 que ahora vale $1500",
	"¿Cuál es el historial de precios de MSFT en el último mes?",
	"Calcula el pago mensual de un préstamo de $10000 al 5% a 3 años",
}

func main() {
	godotenv.Load()

	fmt.Println("Inicializando FinBot - Asistente de Análisis Financiero...")

	if err := prompt.LoadFromDirectory("resources"); err != nil {
		fmt.Println("  (usando prompts integrados)")
	}

	configData, _ := os.ReadFile("config/models.yaml")
	var agentCfg agent.Config
	yaml.Unmarshal(configData, &agentCfg)
	agentMgr := agent.NewManager(agentCfg)

	ctx := context.Background()

	var embedder knowledge.Embedder = &knowledge.HashEmbedder{}
	if os.Getenv("GEMINI_API_KEY") != "" {
		embedder = &knowledge.GeminiEmbedder{}
	}
	base := knowledge.NewBase(knowledge.NewMemoryStore(), embedder)
	if err := base.SeedIfEmpty(ctx); err != nil {
		fmt.Printf("[WARNING] Failed to seed knowledge base: %v\n", err)
	}

	finbot := agent.NewAssistant(agentMgr,
		&agent.CalculatorTool{},
		agent.NewMarketTool(market.NewYahooClient()),
		agent.NewKnowledgeTool(base),
	)

	fmt.Println()
	fmt.Println("Ejemplos de consultas:")
	for _, q := range exampleQueries {
		fmt.Println("  - " + q)
	}
	fmt.Println()
	fmt.Println("Escribe 'salir' para terminar.")
	fmt.Println()

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("Tú: ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "salir" || line == "exit" || line == "quit" {
			fmt.Println("¡Hasta luego!")
			return
		}

		answer, err := finbot.Answer(ctx, line)
		if err != nil {
			fmt.Printf("FinBot: Lo siento, ocurrió un error: %v\n\n", err)
			continue
		}
		fmt.Printf("FinBot: %s\n\n", answer)
	}
}
