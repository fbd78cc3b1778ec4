package agent

import (
	"context"
	"fmt"
	"strings"

	"finbot/pkg/core/prompt"
	"finbot/pkg/core/utils"
)

// maxIterations bounds the tool loop so a misbehaving router cannot spin.
const maxIterations = 3

// Assistant is the conversational front: it routes each question through
// the tools and synthesizes a final Spanish answer.
type Assistant struct {
	manager *Manager
	tools   []Tool
}

// NewAssistant builds an assistant over the given provider manager and tools.
func NewAssistant(manager *Manager, tools ...Tool) *Assistant {
	return &Assistant{manager: manager, tools: tools}
}

// toolCall is the structured decision the router prompt asks the model for.
type toolCall struct {
	Tool  string `json:"tool"`
	Input string `json:"input"`
}

// Answer resolves a user question. The model picks a tool, the tool runs,
// and the observations feed a final synthesis. When no provider is
// reachable the assistant degrades to keyword routing with raw tool output.
func (a *Assistant) Answer(ctx context.Context, question string) (string, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return "", fmt.Errorf("la consulta está vacía")
	}

	systemPrompt := prompt.GetAssistantSystemPrompt()

	var observations []string
	var lastCall toolCall

	for i := 0; i < maxIterations; i++ {
		routerOut, err := a.route(ctx, question, observations)
		if err != nil {
			if i == 0 {
				return a.fallback(ctx, question)
			}
			break
		}

		var call toolCall
		if err := utils.DecodeLenient(routerOut, &call); err != nil {
			// The model answered directly instead of picking a tool.
			if len(observations) == 0 && strings.TrimSpace(routerOut) != "" {
				return strings.TrimSpace(routerOut), nil
			}
			break
		}

		if call.Tool == "" || call.Tool == "none" {
			break
		}
		if call == lastCall {
			break
		}
		lastCall = call

		tool := a.findTool(call.Tool)
		if tool == nil {
			observations = append(observations, fmt.Sprintf("La herramienta '%s' no existe.", call.Tool))
			continue
		}

		fmt.Printf("[agent.Assistant] Tool %s <- %q\n", tool.Name(), call.Input)
		output, err := tool.Run(ctx, call.Input)
		if err != nil {
			output = "Error: " + err.Error()
		}
		observations = append(observations, fmt.Sprintf("[%s] %s", tool.Name(), output))
	}

	if len(observations) == 0 {
		// Nothing was gathered; answer from the model alone.
		out, err := a.manager.ExecutePrompt(ctx, "assistant", question, systemPrompt, nil)
		if err != nil {
			return a.fallback(ctx, question)
		}
		return strings.TrimSpace(out), nil
	}

	return a.synthesize(ctx, question, observations)
}

// route asks the model which tool to use next.
func (a *Assistant) route(ctx context.Context, question string, observations []string) (string, error) {
	full := question
	if len(observations) > 0 {
		full = question + "\n\nObservaciones previas:\n" + strings.Join(observations, "\n")
	}

	rendered, err := prompt.RenderUserPrompt(prompt.GetRouterTemplate(), prompt.NewContext().
		Set("Tools", describeTools(a.tools)).
		Set("Question", full))
	if err != nil {
		return "", err
	}

	return a.manager.ExecutePrompt(ctx, "router", rendered, "", map[string]interface{}{
		"response_format": map[string]interface{}{"type": "json_object"},
	})
}

// synthesize turns tool observations into the final answer using the RAG
// template, falling back to the raw observations if the model is down.
func (a *Assistant) synthesize(ctx context.Context, question string, observations []string) (string, error) {
	rendered, err := prompt.RenderUserPrompt(prompt.GetRAGTemplate(), prompt.NewContext().
		Set("Context", strings.Join(observations, "\n\n")).
		Set("Question", question))
	if err != nil {
		return "", err
	}

	out, err := a.manager.ExecutePrompt(ctx, "assistant", rendered, prompt.GetAssistantSystemPrompt(), nil)
	if err != nil {
		return strings.Join(observations, "\n\n"), nil
	}
	return strings.TrimSpace(out), nil
}

func (a *Assistant) findTool(name string) Tool {
	for _, t := range a.tools {
		if t.Name() == name {
			return t
		}
	}
	return nil
}

// ====================================================================
// Keyword fallback
// ====================================================================

var calculatorKeywords = []string{
	"roi", "retorno", "compuesto", "interés", "interes",
	"prestamo", "préstamo", "ratio", "npv", "van", "irr", "tir", "calcul",
}

var marketKeywords = []string{
	"precio", "cotiza", "acción", "accion", "mercado",
	"bolsa", "ticker", "history", "financials", "info",
}

// fallback routes by keywords when no model is reachable and returns the
// tool output as-is.
func (a *Assistant) fallback(ctx context.Context, question string) (string, error) {
	name := routeByKeywords(question)
	tool := a.findTool(name)
	if tool == nil {
		return "", fmt.Errorf("no hay ningún proveedor LLM disponible y la herramienta '%s' no está registrada", name)
	}

	fmt.Printf("[agent.Assistant] Fallback routing -> %s\n", name)
	output, err := tool.Run(ctx, question)
	if err != nil {
		return "", err
	}
	if name == "knowledge_base" {
		return "Según la base de conocimiento:\n\n" + output, nil
	}
	return output, nil
}

// routeByKeywords picks a tool from surface features of the question.
func routeByKeywords(question string) string {
	lower := strings.ToLower(question)
	for _, kw := range calculatorKeywords {
		if strings.Contains(lower, kw) {
			return "calculator"
		}
	}
	for _, kw := range marketKeywords {
		if strings.Contains(lower, kw) {
			return "financial_data_api"
		}
	}
	// A leading uppercase token that looks like a ticker also goes to the
	// market tool, matching "AAPL info" style queries.
	fields := strings.Fields(question)
	if len(fields) > 0 {
		first := fields[0]
		if len(first) >= 2 && len(first) <= 5 && first == strings.ToUpper(first) && isAlpha(first) {
			return "financial_data_api"
		}
	}
	return "knowledge_base"
}

func isAlpha(s string) bool {
	for _, r := range s {
		if r < 'A' || r > 'Z' {
			return false
		}
	}
	return true
}
