package calc

import (
	"fmt"
	"strings"
)

// =============================================================================
// RATIO CATALOG
// Static, immutable, loaded once. Adding a ratio is a data change here plus
// one case in computeRatio; interpretation thresholds are product decisions
// and are reproduced exactly.
// =============================================================================

// RatioDefinition describes one named financial ratio: how many inputs it
// takes, their labels (used in validation messages and echoed back in the
// explanation), and whether the result is presented as a percentage.
type RatioDefinition struct {
	Name           string
	Description    string
	RequiredValues int
	Labels         []string
	Percentage     bool
}

// ratioOrder fixes the enumeration order for error messages.
var ratioOrder = []string{"current", "quick", "debt", "roe", "roa", "profit_margin", "pe", "pb"}

var ratioCatalog = map[string]RatioDefinition{
	"current": {
		Name:           "current",
		Description:    "Ratio de liquidez corriente (Activo Corriente / Pasivo Corriente)",
		RequiredValues: 2,
		Labels:         []string{"Activo Corriente", "Pasivo Corriente"},
	},
	"quick": {
		Name:           "quick",
		Description:    "Ratio de prueba ácida ((Activo Corriente - Inventarios) / Pasivo Corriente)",
		RequiredValues: 3,
		Labels:         []string{"Activo Corriente", "Inventarios", "Pasivo Corriente"},
	},
	"debt": {
		Name:           "debt",
		Description:    "Ratio de endeudamiento (Pasivo Total / Activo Total)",
		RequiredValues: 2,
		Labels:         []string{"Pasivo Total", "Activo Total"},
		Percentage:     true,
	},
	"roe": {
		Name:           "roe",
		Description:    "Return on Equity - ROE (Beneficio Neto / Patrimonio Neto)",
		RequiredValues: 2,
		Labels:         []string{"Beneficio Neto", "Patrimonio Neto"},
		Percentage:     true,
	},
	"roa": {
		Name:           "roa",
		Description:    "Return on Assets - ROA (Beneficio Neto / Activos Totales)",
		RequiredValues: 2,
		Labels:         []string{"Beneficio Neto", "Activos Totales"},
		Percentage:     true,
	},
	"profit_margin": {
		Name:           "profit_margin",
		Description:    "Margen de Beneficio Neto (Beneficio Neto / Ventas Netas)",
		RequiredValues: 2,
		Labels:         []string{"Beneficio Neto", "Ventas Netas"},
		Percentage:     true,
	},
	"pe": {
		Name:           "pe",
		Description:    "Price-to-Earnings Ratio (Precio por Acción / Beneficio por Acción)",
		RequiredValues: 2,
		Labels:         []string{"Precio por Acción", "Beneficio por Acción (EPS)"},
	},
	"pb": {
		Name:           "pb",
		Description:    "Price-to-Book Ratio (Precio por Acción / Valor en Libros por Acción)",
		RequiredValues: 2,
		Labels:         []string{"Precio por Acción", "Valor en Libros por Acción"},
	},
}

// liabilityLabels is the explicit set of labels denoting liability/debt-type
// quantities, exempt from the non-negative input rule because net positions
// can legitimately be negative. Keyed by exact label, not substring.
var liabilityLabels = map[string]bool{
	"Pasivo Corriente": true,
	"Pasivo Total":     true,
}

// LookupRatio returns the definition for a ratio name, case-insensitively.
func LookupRatio(name string) (RatioDefinition, bool) {
	def, ok := ratioCatalog[strings.ToLower(name)]
	return def, ok
}

// RatioNames returns the valid ratio names in catalog order.
func RatioNames() []string {
	return append([]string(nil), ratioOrder...)
}

// FinancialRatio calculates a named financial ratio from its ordered input
// values and produces a threshold-banded Spanish explanation.
func FinancialRatio(name string, values []float64) (*RatioResult, error) {
	name = strings.ToLower(name)
	def, ok := ratioCatalog[name]
	if !ok {
		return nil, validationErrorf("ratio_name",
			"Ratio no reconocido. Ratios disponibles: %s", strings.Join(ratioOrder, ", "))
	}

	if len(values) < def.RequiredValues {
		return nil, validationErrorf("values",
			"El ratio '%s' requiere %d valores: %s", name, def.RequiredValues, strings.Join(def.Labels, ", "))
	}

	for i, value := range values {
		if i >= len(def.Labels) {
			break
		}
		label := def.Labels[i]
		if !liabilityLabels[label] && value < 0 {
			return nil, validationErrorf("values",
				"El valor para '%s' debe ser mayor o igual a cero.", label)
		}
	}

	ratio, explanation, err := computeRatio(name, values)
	if err != nil {
		return nil, err
	}

	echoed := make([]RatioInput, 0, def.RequiredValues)
	for i := 0; i < len(values) && i < len(def.Labels); i++ {
		echoed = append(echoed, RatioInput{Label: def.Labels[i], Value: values[i]})
	}

	result := &RatioResult{
		Name:        name,
		Description: def.Description,
		Values:      echoed,
		RatioValue:  ratio,
		Explanation: explanation,
	}
	if def.Percentage {
		pct := ratio * 100
		result.Percentage = &pct
	}
	return result, nil
}

// computeRatio is the single dispatch point for per-ratio formulas and their
// zero-denominator guards.
func computeRatio(name string, v []float64) (float64, string, error) {
	switch name {
	case "current":
		if v[1] == 0 {
			return 0, "", validationErrorf("values", "El pasivo corriente no puede ser cero.")
		}
		ratio := v[0] / v[1]
		expl := fmt.Sprintf(
			"Un ratio de liquidez corriente de %.2f significa que la empresa tiene $%.2f de activos corrientes por cada $1 de pasivos corrientes. ",
			ratio, ratio)
		switch {
		case ratio < 1:
			expl += "Esto puede indicar problemas para cubrir las obligaciones a corto plazo."
		case ratio < 1.5:
			expl += "Esto indica una capacidad adecuada para cubrir las obligaciones a corto plazo."
		default:
			expl += "Esto indica una buena liquidez, aunque un ratio muy alto podría sugerir un uso ineficiente de los activos."
		}
		return ratio, expl, nil

	case "quick":
		if v[2] == 0 {
			return 0, "", validationErrorf("values", "El pasivo corriente no puede ser cero.")
		}
		ratio := (v[0] - v[1]) / v[2]
		expl := fmt.Sprintf(
			"Un ratio de prueba ácida de %.2f significa que la empresa tiene $%.2f de activos líquidos por cada $1 de pasivos corrientes. ",
			ratio, ratio)
		if ratio < 1 {
			expl += "Esto podría indicar dificultades para cubrir las obligaciones a corto plazo sin vender inventarios."
		} else {
			expl += "Esto indica una buena capacidad para cubrir las obligaciones a corto plazo sin depender de los inventarios."
		}
		return ratio, expl, nil

	case "debt":
		if v[1] == 0 {
			return 0, "", validationErrorf("values", "El activo total no puede ser cero.")
		}
		ratio := v[0] / v[1]
		pct := ratio * 100
		expl := fmt.Sprintf(
			"Un ratio de endeudamiento del %.2f%% significa que el %.2f%% de los activos de la empresa están financiados con deuda. ",
			pct, pct)
		switch {
		case ratio < 0.4:
			expl += "Este nivel de endeudamiento es generalmente considerado bajo."
		case ratio < 0.6:
			expl += "Este nivel de endeudamiento es generalmente considerado moderado."
		default:
			expl += "Este nivel de endeudamiento es generalmente considerado alto."
		}
		return ratio, expl, nil

	case "roe":
		if v[1] == 0 {
			return 0, "", validationErrorf("values", "El patrimonio neto no puede ser cero.")
		}
		ratio := v[0] / v[1]
		expl := fmt.Sprintf(
			"Un ROE del %.2f%% significa que la empresa genera un beneficio de $%.2f por cada $1 invertido por los accionistas. ",
			ratio*100, ratio)
		switch {
		case ratio < 0.1:
			expl += "Este retorno es generalmente considerado bajo."
		case ratio < 0.2:
			expl += "Este retorno es generalmente considerado adecuado."
		default:
			expl += "Este retorno es generalmente considerado bueno."
		}
		return ratio, expl, nil

	case "roa":
		if v[1] == 0 {
			return 0, "", validationErrorf("values", "Los activos totales no pueden ser cero.")
		}
		ratio := v[0] / v[1]
		expl := fmt.Sprintf(
			"Un ROA del %.2f%% significa que la empresa genera un beneficio de $%.2f por cada $1 en activos. ",
			ratio*100, ratio)
		switch {
		case ratio < 0.05:
			expl += "Este retorno sobre activos es generalmente considerado bajo."
		case ratio < 0.1:
			expl += "Este retorno sobre activos es generalmente considerado adecuado."
		default:
			expl += "Este retorno sobre activos es generalmente considerado bueno."
		}
		return ratio, expl, nil

	case "profit_margin":
		if v[1] == 0 {
			return 0, "", validationErrorf("values", "Las ventas netas no pueden ser cero.")
		}
		ratio := v[0] / v[1]
		expl := fmt.Sprintf(
			"Un margen de beneficio neto del %.2f%% significa que la empresa genera $%.2f de beneficio por cada $1 de ventas. ",
			ratio*100, ratio)
		expl += "La interpretación de este margen depende del sector de la empresa."
		return ratio, expl, nil

	case "pe":
		if v[1] == 0 {
			return 0, "", validationErrorf("values", "El beneficio por acción (EPS) no puede ser cero.")
		}
		ratio := v[0] / v[1]
		expl := fmt.Sprintf(
			"Un ratio P/E de %.2f significa que los inversores están dispuestos a pagar $%.2f por cada $1 de beneficio por acción. ",
			ratio, ratio)
		switch {
		case ratio < 10:
			expl += "Este P/E es generalmente considerado bajo, lo que podría indicar que la acción está infravalorada."
		case ratio < 20:
			expl += "Este P/E es generalmente considerado moderado."
		default:
			expl += "Este P/E es generalmente considerado alto, lo que podría indicar que los inversores esperan un fuerte crecimiento futuro."
		}
		return ratio, expl, nil

	case "pb":
		if v[1] == 0 {
			return 0, "", validationErrorf("values", "El valor en libros por acción no puede ser cero.")
		}
		ratio := v[0] / v[1]
		expl := fmt.Sprintf(
			"Un ratio P/B de %.2f significa que los inversores están dispuestos a pagar $%.2f por cada $1 de valor en libros. ",
			ratio, ratio)
		switch {
		case ratio < 1:
			expl += "Este P/B es generalmente considerado bajo, lo que podría indicar que la acción está infravalorada."
		case ratio < 3:
			expl += "Este P/B es generalmente considerado moderado."
		default:
			expl += "Este P/B es generalmente considerado alto, lo que podría indicar que los inversores esperan un fuerte rendimiento sobre el patrimonio."
		}
		return ratio, expl, nil
	}

	return 0, "", validationErrorf("ratio_name",
		"Ratio no reconocido. Ratios disponibles: %s", strings.Join(ratioOrder, ", "))
}
