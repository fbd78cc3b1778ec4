// Package calc implements FinBot's financial calculation engine: it parses a
// raw query (JSON or positional text), dispatches it to one of six
// deterministic calculators and renders the result as a Spanish narrative.
package calc

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	jsonrepair "github.com/RealAlexandreAI/json-repair"
)

// Type identifies a calculation. The canonical tokens and their aliases form
// the wire format of the positional grammar and must stay stable.
type Type string

const (
	TypeROI      Type = "roi"
	TypeCompound Type = "compuesto"
	TypeLoan     Type = "prestamo"
	TypeRatio    Type = "ratio"
	TypeNPV      Type = "npv"
	TypeIRR      Type = "irr"
	TypeCompare  Type = "compare"
)

// aliases maps every accepted type token (canonical and localized) to its
// canonical Type.
var aliases = map[string]Type{
	"roi":               TypeROI,
	"retorno":           TypeROI,
	"compuesto":         TypeCompound,
	"interes_compuesto": TypeCompound,
	"prestamo":          TypeLoan,
	"loan":              TypeLoan,
	"ratio":             TypeRatio,
	"ratios":            TypeRatio,
	"npv":               TypeNPV,
	"van":               TypeNPV,
	"irr":               TypeIRR,
	"tir":               TypeIRR,
	"compare":           TypeCompare,
	"comparar":          TypeCompare,
}

// ResolveType maps a raw type token to its canonical Type.
func ResolveType(token string) (Type, bool) {
	t, ok := aliases[strings.ToLower(strings.TrimSpace(token))]
	return t, ok
}

// Request is a normalized calculation request. RawType keeps the token as the
// caller wrote it (lowercased) so the dispatcher can report unrecognized
// types verbatim; Params carries the named parameters, whose required keys
// depend on the resolved type.
type Request struct {
	RawType string
	Params  map[string]interface{}
}

// ParseRequest turns a raw query into a Request. It first attempts structured
// JSON parsing (repairing almost-JSON the way LLM tool calls tend to produce
// it); if that fails it falls back to the whitespace-tokenized positional
// grammar. The only error surfaced here is the inability to determine a
// calculation type.
func ParseRequest(raw string) (*Request, error) {
	if params, ok := parseStructured(raw); ok {
		rawType, ok := params["type"].(string)
		if !ok || strings.TrimSpace(rawType) == "" {
			return nil, &ParseError{Msg: "Se requiere especificar el tipo de cálculo."}
		}
		delete(params, "type")
		return &Request{RawType: strings.ToLower(strings.TrimSpace(rawType)), Params: params}, nil
	}
	return parseText(raw)
}

// parseStructured attempts strict JSON first and falls back to json-repair
// when the input at least looks like an object. Non-object JSON (a bare
// number, an array) is not a structured request.
func parseStructured(raw string) (map[string]interface{}, bool) {
	trimmed := strings.TrimSpace(raw)

	var params map[string]interface{}
	if err := json.Unmarshal([]byte(trimmed), &params); err == nil {
		return params, true
	}

	if !strings.HasPrefix(trimmed, "{") {
		return nil, false
	}
	repaired, err := jsonrepair.RepairJSON(trimmed)
	if err != nil {
		return nil, false
	}
	if err := json.Unmarshal([]byte(repaired), &params); err != nil {
		return nil, false
	}
	return params, true
}

// parseText applies the fixed positional grammar per calculation type:
// token 0 is the type, the remaining tokens are mapped by position.
func parseText(raw string) (*Request, error) {
	tokens := strings.Fields(raw)
	if len(tokens) == 0 {
		return nil, &ParseError{Msg: "Consulta vacía"}
	}

	rawType := strings.ToLower(tokens[0])
	params := map[string]interface{}{}
	req := &Request{RawType: rawType, Params: params}

	resolved, known := ResolveType(rawType)
	if !known {
		// Free-standing key=value tokens become ad hoc parameters, numbers
		// first, strings otherwise.
		for _, tok := range tokens[1:] {
			key, value, found := strings.Cut(tok, "=")
			if !found {
				continue
			}
			if f, err := strconv.ParseFloat(value, 64); err == nil {
				params[key] = f
			} else {
				params[key] = value
			}
		}
		return req, nil
	}

	switch resolved {
	case TypeROI:
		if len(tokens) >= 3 {
			if err := setFloatToken(params, "initial", tokens[1]); err != nil {
				return nil, err
			}
			if err := setFloatToken(params, "final", tokens[2]); err != nil {
				return nil, err
			}
		}
	case TypeCompound:
		if len(tokens) >= 4 {
			for i, key := range []string{"principal", "rate", "periods"} {
				if err := setFloatToken(params, key, tokens[i+1]); err != nil {
					return nil, err
				}
			}
			if len(tokens) >= 5 {
				params["frequency"] = tokens[4]
			}
		}
	case TypeLoan:
		if len(tokens) >= 4 {
			for i, key := range []string{"principal", "rate", "periods"} {
				if err := setFloatToken(params, key, tokens[i+1]); err != nil {
					return nil, err
				}
			}
		}
	case TypeRatio:
		if len(tokens) >= 2 {
			params["ratio_name"] = tokens[1]
			values, err := parseFloatTokens(tokens[2:])
			if err != nil {
				return nil, err
			}
			params["values"] = values
		}
	case TypeNPV:
		if len(tokens) >= 3 {
			if err := setFloatToken(params, "rate", tokens[1]); err != nil {
				return nil, err
			}
			flows, err := parseFloatTokens(tokens[2:])
			if err != nil {
				return nil, err
			}
			params["cash_flows"] = flows
		}
	case TypeIRR:
		if len(tokens) >= 2 {
			flows, err := parseFloatTokens(tokens[1:])
			if err != nil {
				return nil, err
			}
			params["cash_flows"] = flows
		}
	case TypeCompare:
		if len(tokens) >= 3 {
			params["metric"] = tokens[1]
			params["tickers"] = tokens[2:]
		}
	}
	return req, nil
}

func setFloatToken(params map[string]interface{}, key, token string) error {
	f, err := strconv.ParseFloat(token, 64)
	if err != nil {
		return parseErrorf("El valor '%s' no es un número válido.", token)
	}
	params[key] = f
	return nil
}

func parseFloatTokens(tokens []string) ([]float64, error) {
	values := make([]float64, 0, len(tokens))
	for _, tok := range tokens {
		f, err := strconv.ParseFloat(tok, 64)
		if err != nil {
			return nil, parseErrorf("El valor '%s' no es un número válido.", tok)
		}
		values = append(values, f)
	}
	return values, nil
}

// =============================================================================
// PARAMETER ACCESSORS
// Structured input carries mixed types (json numbers, numeric strings); the
// accessors coerce to float64 and report non-coercible values as validation
// errors, keeping the parser itself type-agnostic.
// =============================================================================

// Has reports whether a parameter is present, regardless of its type.
func (r *Request) Has(key string) bool {
	_, ok := r.Params[key]
	return ok
}

// Float returns a numeric parameter, coercing json numbers and numeric
// strings.
func (r *Request) Float(key string) (float64, error) {
	v, ok := r.Params[key]
	if !ok {
		return 0, validationErrorf(key, "Falta el valor '%s'.", key)
	}
	f, err := coerceFloat(v)
	if err != nil {
		return 0, validationErrorf(key, "El valor '%s' debe ser numérico.", key)
	}
	return f, nil
}

// Floats returns a numeric series parameter.
func (r *Request) Floats(key string) ([]float64, error) {
	v, ok := r.Params[key]
	if !ok {
		return nil, validationErrorf(key, "Falta el valor '%s'.", key)
	}
	switch vs := v.(type) {
	case []float64:
		return vs, nil
	case []interface{}:
		out := make([]float64, 0, len(vs))
		for _, item := range vs {
			f, err := coerceFloat(item)
			if err != nil {
				return nil, validationErrorf(key, "Todos los valores de '%s' deben ser numéricos.", key)
			}
			out = append(out, f)
		}
		return out, nil
	default:
		return nil, validationErrorf(key, "El valor '%s' debe ser una lista numérica.", key)
	}
}

// String returns a string parameter; non-string values are rendered with fmt.
func (r *Request) String(key string) (string, bool) {
	v, ok := r.Params[key]
	if !ok {
		return "", false
	}
	if s, ok := v.(string); ok {
		return s, true
	}
	return fmt.Sprintf("%v", v), true
}

func coerceFloat(v interface{}) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case float32:
		return float64(n), nil
	case int:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case json.Number:
		return n.Float64()
	case string:
		return strconv.ParseFloat(strings.TrimSpace(n), 64)
	default:
		return 0, fmt.Errorf("not a number: %T", v)
	}
}
