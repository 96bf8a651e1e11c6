package reconcile

import (
	"github.com/luthierlabs/fretbridge/pkg/domain"
	"github.com/luthierlabs/fretbridge/pkg/schema"
	"github.com/luthierlabs/fretbridge/pkg/units"
)

// BuildSchemaPayload emits default-only rows for every schema parameter.
// No document is required to exist.
func BuildSchemaPayload(s *schema.Schema, unit domain.Unit) ModelState {
	state := newState(s, unit, ModeSchema)
	for _, g := range s.SortedGroups() {
		row := GroupRow{ID: g.ID, Label: g.Label, Order: g.Order, Parameters: []ParamRow{}}
		for _, def := range g.Parameters {
			expr := units.Default(def, unit)
			row.Parameters = append(row.Parameters, buildRow(def, unit, expr, parseNumber(expr)))
		}
		state.Groups = append(state.Groups, row)
	}
	return state
}

// BuildLivePayload emits the live expression and value for every schema
// parameter present on the document and the unit-resolved default for the
// rest. Live parameters outside the schema surface in the extra list,
// excluding the fingerprint.
func BuildLivePayload(s *schema.Schema, unit domain.Unit, live []domain.LiveParameter) ModelState {
	state := newState(s, unit, ModeLive)
	byName := liveByName(live)
	for _, g := range s.SortedGroups() {
		row := GroupRow{ID: g.ID, Label: g.Label, Order: g.Order, Parameters: []ParamRow{}}
		for _, def := range g.Parameters {
			if lp, ok := byName[def.Name]; ok {
				v := lp.Value
				row.Parameters = append(row.Parameters, buildRow(def, unit, lp.Expression, &v))
				continue
			}
			state.Missing = append(state.Missing, def.Name)
			expr := units.Default(def, unit)
			row.Parameters = append(row.Parameters, buildRow(def, unit, expr, parseNumber(expr)))
		}
		state.Groups = append(state.Groups, row)
	}
	state.fillExtras(s, live)
	return state
}

// BuildTemplatePayload is the live builder with template overrides layered
// on top. Only editable parameters are emitted; for each the template's
// metric-specific value wins in a metric document, then the template's
// primary value, then the schema default.
func BuildTemplatePayload(s *schema.Schema, unit domain.Unit, live []domain.LiveParameter, tpl *domain.Template) ModelState {
	state := newState(s, unit, ModeTemplate)
	state.TemplateName = tpl.Name
	for _, g := range s.SortedGroups() {
		row := GroupRow{ID: g.ID, Label: g.Label, Order: g.Order, Parameters: []ParamRow{}}
		for _, def := range g.Parameters {
			if !def.Editable {
				continue
			}
			expr := templateValue(def, unit, tpl)
			expr = units.ResolveDefault(def, unit, expr)
			row.Parameters = append(row.Parameters, buildRow(def, unit, expr, parseNumber(expr)))
		}
		state.Groups = append(state.Groups, row)
	}
	state.fillExtras(s, live)
	return state
}

func liveByName(live []domain.LiveParameter) map[string]domain.LiveParameter {
	byName := make(map[string]domain.LiveParameter, len(live))
	for _, lp := range live {
		byName[lp.Name] = lp
	}
	return byName
}

func templateValue(def domain.ParameterDef, unit domain.Unit, tpl *domain.Template) string {
	if unit == domain.UnitMetric && def.UnitKind == domain.KindLength {
		if v, ok := tpl.MetricValue(def.Name); ok {
			return v
		}
	}
	if v, ok := tpl.Parameters[def.Name]; ok {
		return v
	}
	return units.Default(def, unit)
}

func newState(s *schema.Schema, unit domain.Unit, mode Mode) ModelState {
	return ModelState{
		SchemaVersion:   s.SchemaVersion,
		TemplateVersion: s.TemplateVersion,
		Groups:          []GroupRow{},
		Missing:         []string{},
		Extra:           []string{},
		ExtraParams:     []ParamRow{},
		Mode:            mode,
		DocumentUnit:    unit,
	}
}

func buildRow(def domain.ParameterDef, unit domain.Unit, expr string, value *float64) ParamRow {
	min, max, step := units.Bounds(def, unit)
	return ParamRow{
		Name:        def.Name,
		Label:       def.Label,
		UnitKind:    def.UnitKind,
		ControlType: def.ControlType,
		Editable:    def.Editable,
		Default:     units.Default(def, unit),
		Min:         min,
		Max:         max,
		Step:        step,
		Description: def.Description,
		Expression:  expr,
		Value:       value,
		Unit:        units.SymbolFor(def.UnitKind, unit),
	}
}

// fillExtras records fingerprint state and user-added parameters that the
// schema does not declare. Document order is preserved.
func (m *ModelState) fillExtras(s *schema.Schema, live []domain.LiveParameter) {
	known := s.ParamNames()
	for _, lp := range live {
		if lp.Name == domain.FingerprintParam {
			m.Fingerprint = lp.Expression
			m.HasFingerprint = true
			continue
		}
		if _, ok := known[lp.Name]; ok {
			continue
		}
		v := lp.Value
		groupID, description := domain.ParseGroupComment(lp.Comment)
		m.Extra = append(m.Extra, lp.Name)
		m.ExtraParams = append(m.ExtraParams, ParamRow{
			Name:        lp.Name,
			Label:       lp.Name,
			UnitKind:    domain.KindUnitless,
			ControlType: "number",
			Editable:    true,
			Description: description,
			Expression:  lp.Expression,
			Value:       &v,
			Unit:        lp.Unit,
			GroupID:     groupID,
		})
	}
}
