package schema

import (
	"sort"

	"github.com/luthierlabs/fretbridge/pkg/domain"
)

// Schema is the immutable, versioned declaration of parameter groups.
// Instances handed out by the Store must not be modified.
type Schema struct {
	SchemaVersion   string               `json:"schemaVersion" yaml:"schemaVersion"`
	TemplateVersion string               `json:"templateVersion" yaml:"templateVersion"`
	Groups          []domain.SchemaGroup `json:"groups" yaml:"groups"`
}

// SortedGroups returns the groups in ascending display order. Parameter
// order within each group is declaration order and is left untouched.
func (s *Schema) SortedGroups() []domain.SchemaGroup {
	groups := make([]domain.SchemaGroup, len(s.Groups))
	copy(groups, s.Groups)
	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].Order < groups[j].Order
	})
	return groups
}

// ParamNames returns the set of parameter names declared by the schema.
func (s *Schema) ParamNames() map[string]struct{} {
	names := make(map[string]struct{})
	for _, g := range s.Groups {
		for _, p := range g.Parameters {
			names[p.Name] = struct{}{}
		}
	}
	return names
}

// Find locates a parameter definition by name.
func (s *Schema) Find(name string) (domain.ParameterDef, bool) {
	for _, g := range s.Groups {
		for _, p := range g.Parameters {
			if p.Name == name {
				return p, true
			}
		}
	}
	return domain.ParameterDef{}, false
}

// GroupIDs returns the declared group identifiers in display order.
func (s *Schema) GroupIDs() []string {
	groups := s.SortedGroups()
	ids := make([]string, 0, len(groups))
	for _, g := range groups {
		ids = append(ids, g.ID)
	}
	return ids
}
