package reconcile

import (
	"strconv"
	"strings"

	"github.com/luthierlabs/fretbridge/pkg/domain"
)

// Mode names which builder produced a payload.
type Mode string

const (
	ModeSchema   Mode = "schema"
	ModeLive     Mode = "live"
	ModeTemplate Mode = "template"
)

// ResolveMode maps fingerprint presence to the read-path mode. This is a
// total function; there is no third outcome.
func ResolveMode(hasFingerprint bool) Mode {
	if hasFingerprint {
		return ModeLive
	}
	return ModeSchema
}

// ParamRow is a single UI-facing parameter entry. Value is nil when the
// expression does not parse as a bare number; the expression stays
// authoritative either way.
type ParamRow struct {
	Name        string          `json:"name"`
	Label       string          `json:"label"`
	UnitKind    domain.UnitKind `json:"unitKind"`
	ControlType string          `json:"controlType"`
	Editable    bool            `json:"editable"`
	Default     string          `json:"default"`
	Min         *float64        `json:"min,omitempty"`
	Max         *float64        `json:"max,omitempty"`
	Step        *float64        `json:"step,omitempty"`
	Description string          `json:"description,omitempty"`
	Expression  string          `json:"expression"`
	Value       *float64        `json:"value"`
	Unit        string          `json:"unit"`
	GroupID     string          `json:"groupId,omitempty"`
}

// GroupRow is an ordered collection of parameter rows.
type GroupRow struct {
	ID         string     `json:"id"`
	Label      string     `json:"label"`
	Order      int        `json:"order"`
	Parameters []ParamRow `json:"parameters"`
}

// ModelState is the full PUSH_MODEL_STATE payload.
type ModelState struct {
	SchemaVersion   string      `json:"schemaVersion"`
	TemplateVersion string      `json:"templateVersion"`
	Groups          []GroupRow  `json:"groups"`
	Missing         []string    `json:"missing"`
	Extra           []string    `json:"extra"`
	ExtraParams     []ParamRow  `json:"extraParams"`
	Mode            Mode        `json:"mode"`
	TemplateName    string      `json:"templateName,omitempty"`
	DocumentUnit    domain.Unit `json:"documentUnit"`
	Fingerprint     string      `json:"fingerprint,omitempty"`
	HasFingerprint  bool        `json:"hasFingerprint"`
}

// parseNumber coerces an expression to a number for display. Expressions
// carrying a unit suffix or formula do not parse; that is fine.
func parseNumber(expr string) *float64 {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return nil
	}
	v, err := strconv.ParseFloat(expr, 64)
	if err != nil {
		return nil
	}
	return &v
}
