package schema

import (
	"github.com/luthierlabs/fretbridge/pkg/domain"
)

var knownKinds = map[domain.UnitKind]struct{}{
	domain.KindLength:   {},
	domain.KindUnitless: {},
	domain.KindAngle:    {},
	domain.KindCount:    {},
}

// Validate checks the structural invariants of a parsed schema: a version,
// at least one group, unique group IDs, schema-wide unique parameter names,
// known unit kinds, and a default on every editable parameter. All failures
// are collected into a single AggregateError.
func Validate(s *Schema) error {
	var errs []error

	if s.SchemaVersion == "" {
		errs = append(errs, &DefError{Group: "", Reason: "schemaVersion is required"})
	}
	if len(s.Groups) == 0 {
		errs = append(errs, &DefError{Group: "", Reason: "at least one group is required"})
	}

	groupIDs := make(map[string]struct{})
	paramNames := make(map[string]string) // name -> owning group

	for _, g := range s.Groups {
		if g.ID == "" {
			errs = append(errs, &DefError{Group: g.Label, Reason: "group id is required"})
			continue
		}
		if _, dup := groupIDs[g.ID]; dup {
			errs = append(errs, &DefError{Group: g.ID, Reason: "duplicate group id"})
		}
		groupIDs[g.ID] = struct{}{}

		for _, p := range g.Parameters {
			if p.Name == "" {
				errs = append(errs, &DefError{Group: g.ID, Reason: "parameter name is required"})
				continue
			}
			if owner, dup := paramNames[p.Name]; dup {
				errs = append(errs, &DefError{Group: g.ID, Param: p.Name,
					Reason: "duplicate parameter name (already declared in group " + owner + ")"})
			}
			paramNames[p.Name] = g.ID

			if _, ok := knownKinds[p.UnitKind]; !ok {
				errs = append(errs, &DefError{Group: g.ID, Param: p.Name,
					Reason: "unknown unit kind " + string(p.UnitKind)})
			}
			if p.Editable && p.Default == "" {
				errs = append(errs, &DefError{Group: g.ID, Param: p.Name,
					Reason: "editable parameter requires a default"})
			}
			if p.Name == domain.FingerprintParam {
				errs = append(errs, &DefError{Group: g.ID, Param: p.Name,
					Reason: "name collides with the reserved fingerprint parameter"})
			}
		}
	}

	if len(errs) > 0 {
		return &AggregateError{Errors: errs}
	}
	return nil
}
