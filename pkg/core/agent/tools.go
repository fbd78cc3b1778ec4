package agent

import (
	"context"
	"fmt"
	"strings"

	"finbot/pkg/core/calc"
	"finbot/pkg/core/knowledge"
	"finbot/pkg/core/market"
)

// Tool is a capability the assistant can route a query to.
type Tool interface {
	Name() string
	Description() string
	Run(ctx context.Context, input string) (string, error)
}

// ====================================================================
// Calculator tool
// ====================================================================

// CalculatorTool runs financial calculations: ROI, compound interest,
// loan payments, ratios, NPV and IRR.
type CalculatorTool struct{}

func (t *CalculatorTool) Name() string { return "calculator" }

func (t *CalculatorTool) Description() string {
	return `Realiza cálculos financieros específicos.
Tipos soportados: roi, compuesto (interés compuesto), prestamo, ratio, npv/van, irr/tir.
Formatos de entrada:
1. JSON: {"type": "roi", "initial_investment": 1000, "final_value": 1500}
2. Texto: "roi 1000 1500", "prestamo 200000 4.5 360", "ratio current 200 100", "tir -1000 300 400 500"`
}

func (t *CalculatorTool) Run(ctx context.Context, input string) (string, error) {
	return calc.Execute(input), nil
}

// ====================================================================
// Market data tool
// ====================================================================

// MarketTool queries live stock data through the market package.
type MarketTool struct {
	tool *market.Tool
}

// NewMarketTool wraps a market data source.
func NewMarketTool(source market.Source) *MarketTool {
	return &MarketTool{tool: market.NewTool(source)}
}

func (t *MarketTool) Name() string { return "financial_data_api" }

func (t *MarketTool) Description() string {
	return `Consulta datos financieros actualizados de empresas que cotizan en bolsa:
precio actual, información de la empresa, historial de precios y estados financieros.
Formatos de entrada:
1. JSON: {"ticker": "AAPL", "action": "info"}
2. Texto: "AAPL info", "MSFT history 1mo 1d", "GOOGL financials balance"`
}

func (t *MarketTool) Run(ctx context.Context, input string) (string, error) {
	return t.tool.Execute(ctx, input), nil
}

// ====================================================================
// Knowledge tool
// ====================================================================

// KnowledgeTool retrieves reference material from the knowledge base.
type KnowledgeTool struct {
	base *knowledge.Base
	topK int
}

// NewKnowledgeTool wraps the knowledge base as a retrieval tool.
func NewKnowledgeTool(base *knowledge.Base) *KnowledgeTool {
	return &KnowledgeTool{base: base, topK: 4}
}

func (t *KnowledgeTool) Name() string { return "knowledge_base" }

func (t *KnowledgeTool) Description() string {
	return `Busca en la base de conocimiento financiera: definiciones, conceptos,
ratios, estados financieros y funcionamiento del mercado de valores.
Entrada: la pregunta en lenguaje natural.`
}

func (t *KnowledgeTool) Run(ctx context.Context, input string) (string, error) {
	results, err := t.base.Query(ctx, input, t.topK)
	if err != nil {
		return "", err
	}
	if len(results) == 0 {
		return "No se encontró información relevante en la base de conocimiento.", nil
	}
	return knowledge.BuildContext(results), nil
}

// describeTools renders the tool list for the router prompt.
func describeTools(tools []Tool) string {
	var sb strings.Builder
	for i, t := range tools {
		if i > 0 {
			sb.WriteString("\n")
		}
		desc := strings.ReplaceAll(t.Description(), "\n", " ")
		sb.WriteString(fmt.Sprintf("- %s: %s", t.Name(), desc))
	}
	return sb.String()
}
