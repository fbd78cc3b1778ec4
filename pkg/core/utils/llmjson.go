// Package utils provides small shared helpers: tolerant JSON handling for
// LLM output and plain-text extraction from markdown documents.
package utils

import (
	"encoding/json"
	"fmt"
	"strings"

	jsonrepair "github.com/RealAlexandreAI/json-repair"
	hjson "github.com/hjson/hjson-go/v4"
)

// StripCodeFence removes a wrapping markdown code block (``` or ```json)
// from a model response, which models add even when told not to.
func StripCodeFence(input string) string {
	cleaned := strings.TrimSpace(input)
	if !strings.HasPrefix(cleaned, "```") {
		return cleaned
	}
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")
	return strings.TrimSpace(cleaned)
}

// RepairJSON fixes common JSON defects in LLM output: missing quotes around
// keys, single quotes, unclosed brackets, trailing commas, code fences.
func RepairJSON(malformed string) (string, error) {
	repaired, err := jsonrepair.RepairJSON(malformed)
	if err != nil {
		return "", fmt.Errorf("no se pudo reparar el JSON: %w", err)
	}
	return repaired, nil
}

// DecodeLenient unmarshals a model response into target, trying strict JSON
// first, then Hjson, then json-repair. Hjson must run before repair: repair
// turns newline-separated unquoted pairs into a single JSON string value,
// swallowing every key after the first, and reports success doing so. The
// code fence, if any, is stripped before every attempt.
func DecodeLenient(input string, target interface{}) error {
	cleaned := StripCodeFence(input)

	if err := json.Unmarshal([]byte(cleaned), target); err == nil {
		return nil
	}

	if err := hjson.Unmarshal([]byte(cleaned), target); err == nil {
		return nil
	}

	if repaired, err := jsonrepair.RepairJSON(cleaned); err == nil {
		if err := json.Unmarshal([]byte(repaired), target); err == nil {
			return nil
		}
	}

	return fmt.Errorf("la respuesta del modelo no contiene JSON válido")
}
