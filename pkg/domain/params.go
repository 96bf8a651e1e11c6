package domain

// Unit is the document's default length unit.
type Unit string

const (
	UnitImperial Unit = "in"
	UnitMetric   Unit = "mm"
)

// Toggle returns the other length unit.
func (u Unit) Toggle() Unit {
	if u == UnitMetric {
		return UnitImperial
	}
	return UnitMetric
}

// Valid reports whether u is one of the two supported document units.
func (u Unit) Valid() bool {
	return u == UnitImperial || u == UnitMetric
}

// UnitKind classifies what a parameter measures.
type UnitKind string

const (
	KindLength   UnitKind = "length"
	KindUnitless UnitKind = "unitless"
	KindAngle    UnitKind = "angle"
	KindCount    UnitKind = "count"
)

// FingerprintParam is the reserved user parameter whose presence on a
// document marks it as managed by fretbridge. It is set exactly once, right
// after the starting document is materialized, and never cleared.
const FingerprintParam = "FretboardMakerVersion"

// ParameterDef declares a single schema parameter. Bounds and step are
// authored twice when the metric variant differs from the imperial one;
// the metric fields are nil when a straight conversion is acceptable.
type ParameterDef struct {
	Name          string   `json:"name" yaml:"name"`
	Label         string   `json:"label" yaml:"label"`
	UnitKind      UnitKind `json:"unitKind" yaml:"unitKind"`
	ControlType   string   `json:"controlType" yaml:"controlType"`
	Editable      bool     `json:"editable" yaml:"editable"`
	Default       string   `json:"default" yaml:"default"`
	DefaultMetric string   `json:"defaultMetric,omitempty" yaml:"defaultMetric"`
	Min           *float64 `json:"min,omitempty" yaml:"min"`
	Max           *float64 `json:"max,omitempty" yaml:"max"`
	MinMetric     *float64 `json:"minMetric,omitempty" yaml:"minMetric"`
	MaxMetric     *float64 `json:"maxMetric,omitempty" yaml:"maxMetric"`
	Step          *float64 `json:"step,omitempty" yaml:"step"`
	StepMetric    *float64 `json:"stepMetric,omitempty" yaml:"stepMetric"`
	Description   string   `json:"description,omitempty" yaml:"description"`
}

// SchemaGroup is an ordered collection of parameter definitions.
type SchemaGroup struct {
	ID         string         `json:"id" yaml:"id"`
	Label      string         `json:"label" yaml:"label"`
	Order      int            `json:"order" yaml:"order"`
	Parameters []ParameterDef `json:"parameters" yaml:"parameters"`
}

// LiveParameter is a named value currently stored on the host document.
// The textual expression is authoritative; Value is the host's evaluation
// of it and may be stale relative to a just-written expression.
type LiveParameter struct {
	Name       string  `json:"name"`
	Expression string  `json:"expression"`
	Value      float64 `json:"value"`
	Unit       string  `json:"unit"`
	Comment    string  `json:"comment,omitempty"`
}
