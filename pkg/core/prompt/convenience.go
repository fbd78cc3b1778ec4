package prompt

// Convenience functions for common prompt operations

// Prompt IDs used by the assistant. The JSON files under resources/prompts
// override these; the fallbacks keep the assistant usable without them.
var PromptIDs = struct {
	AssistantSystem string
	AssistantRAG    string
	RouterTool      string
}{
	AssistantSystem: "assistant.system",
	AssistantRAG:    "assistant.rag",
	RouterTool:      "router.tool_selection",
}

const fallbackSystemPrompt = `Eres FinBot, un asistente financiero inteligente especializado en análisis de datos financieros.

Tu objetivo es ayudar a los usuarios a entender información financiera, analizar datos del mercado, y proporcionar análisis útiles sobre empresas que cotizan en bolsa.

Tienes acceso a las siguientes capacidades:
1. Una base de conocimiento (RAG) con información financiera general, definiciones y conceptos.
2. Una API financiera para consultar datos actualizados sobre empresas y mercados.
3. Una calculadora financiera para realizar cálculos específicos.

Para cada consulta del usuario, debes:
1. Determinar si necesitas consultar tu base de conocimiento, obtener datos en tiempo real, o realizar cálculos.
2. Utilizar la herramienta más adecuada en cada caso. Si es necesaria información general o definiciones, utiliza la base de conocimiento RAG.
3. Si necesitas datos actualizados de una acción o empresa, utiliza la API financiera.
4. Para análisis o comparaciones que requieran cálculos específicos, utiliza la calculadora financiera.
5. Combina los resultados de manera coherente para dar una respuesta completa y útil al usuario.

Cuando des respuestas sobre datos financieros:
- Sé preciso con los números y las fechas
- Explica los conceptos financieros de manera sencilla
- Cita la fuente de los datos cuando uses la API
- Menciona cualquier limitación en tu análisis
- Evita dar consejos de inversión directos

Recuerda que los usuarios podrían tener diferentes niveles de conocimiento financiero, así que ajusta tus explicaciones según sea necesario.`

const fallbackRAGTemplate = `Utiliza la siguiente información para responder a la pregunta del usuario.
Si la información proporcionada no es suficiente, indica que no tienes esa información específica.

Contexto: {{.Context}}

Pregunta del usuario: {{.Question}}

Tu respuesta:`

const fallbackRouterPrompt = `Eres el componente de enrutamiento de FinBot. Dada la consulta del usuario, decide qué herramienta usar y con qué entrada.

Herramientas disponibles:
{{.Tools}}

Responde ÚNICAMENTE con un objeto JSON con esta forma exacta:
{"tool": "<nombre de la herramienta o 'none'>", "input": "<entrada para la herramienta>"}

Si ninguna herramienta aplica, usa "none" y deja la entrada vacía.

Consulta del usuario: {{.Question}}`

// GetAssistantSystemPrompt returns the assistant system prompt, falling back
// to the built-in text when no JSON prompt was loaded.
func GetAssistantSystemPrompt() string {
	if p, err := Get().GetSystemPrompt(PromptIDs.AssistantSystem); err == nil && p != "" {
		return p
	}
	return fallbackSystemPrompt
}

// GetRAGTemplate returns the template used to answer with retrieved context.
func GetRAGTemplate() *PromptTemplate {
	if pt, err := Get().GetPrompt(PromptIDs.AssistantRAG); err == nil && pt.UserPromptTmpl != "" {
		return pt
	}
	return &PromptTemplate{
		ID:             PromptIDs.AssistantRAG,
		Name:           "RAG Answer",
		Category:       "assistant",
		UserPromptTmpl: fallbackRAGTemplate,
	}
}

// GetRouterTemplate returns the tool-selection prompt for the agent loop.
func GetRouterTemplate() *PromptTemplate {
	if pt, err := Get().GetPrompt(PromptIDs.RouterTool); err == nil && pt.UserPromptTmpl != "" {
		return pt
	}
	return &PromptTemplate{
		ID:             PromptIDs.RouterTool,
		Name:           "Tool Selection",
		Category:       "router",
		UserPromptTmpl: fallbackRouterPrompt,
	}
}
