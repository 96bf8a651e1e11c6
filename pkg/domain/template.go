package domain

// Template is a saved, named mapping of parameter expressions. The metric
// name/description variants are optional and only authored on shipped
// presets; user templates leave them empty.
type Template struct {
	ID                string            `json:"id,omitempty"`
	Name              string            `json:"name"`
	NameMetric        string            `json:"name_metric,omitempty"`
	Description       string            `json:"description"`
	DescriptionMetric string            `json:"description_metric,omitempty"`
	CreatedAt         string            `json:"createdAt"`
	SchemaVersion     string            `json:"schemaVersion"`
	Readonly          bool              `json:"readonly,omitempty"`
	Parameters        map[string]string `json:"parameters"`
}

// DisplayName returns the unit-appropriate name for listing.
func (t *Template) DisplayName(unit Unit) string {
	if unit == UnitMetric && t.NameMetric != "" {
		return t.NameMetric
	}
	return t.Name
}

// DisplayDescription returns the unit-appropriate description for listing.
func (t *Template) DisplayDescription(unit Unit) string {
	if unit == UnitMetric && t.DescriptionMetric != "" {
		return t.DescriptionMetric
	}
	return t.Description
}

// MetricValue looks up the metric-specific override for a parameter
// (stored under "<name>_metric") and reports whether one is authored.
func (t *Template) MetricValue(name string) (string, bool) {
	v, ok := t.Parameters[name+"_metric"]
	return v, ok
}
