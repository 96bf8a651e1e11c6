// Package units resolves unit symbols and unit-appropriate defaults.
//
// Schema defaults are authored in imperial units with optional hand-tuned
// metric variants. The resolver decides which of the two applies for a given
// document so a metric document never silently presents an imperial number.
package units

import "github.com/luthierlabs/fretbridge/pkg/domain"

// SymbolFor maps a unit kind and document unit to a display symbol.
// Only length parameters carry a symbol; every other kind is unitless.
func SymbolFor(kind domain.UnitKind, unit domain.Unit) string {
	if kind != domain.KindLength {
		return ""
	}
	if unit == domain.UnitMetric {
		return string(domain.UnitMetric)
	}
	return string(domain.UnitImperial)
}

// ResolveDefault returns the default expression appropriate for the document
// unit. The metric default is substituted only when the proposed expression
// still equals the imperial default; an expression the user already touched
// is left alone.
func ResolveDefault(def domain.ParameterDef, unit domain.Unit, proposed string) string {
	if unit == domain.UnitMetric && def.DefaultMetric != "" && proposed == def.Default {
		return def.DefaultMetric
	}
	return proposed
}

// Default returns the untouched unit-appropriate default expression.
func Default(def domain.ParameterDef, unit domain.Unit) string {
	return ResolveDefault(def, unit, def.Default)
}

// Bounds returns the min/max/step values for the document unit, falling back
// to the imperial values when no metric variant is authored.
func Bounds(def domain.ParameterDef, unit domain.Unit) (min, max, step *float64) {
	min, max, step = def.Min, def.Max, def.Step
	if unit != domain.UnitMetric {
		return min, max, step
	}
	if def.MinMetric != nil {
		min = def.MinMetric
	}
	if def.MaxMetric != nil {
		max = def.MaxMetric
	}
	if def.StepMetric != nil {
		step = def.StepMetric
	}
	return min, max, step
}
