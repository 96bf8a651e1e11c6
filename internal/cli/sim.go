package cli

import (
	"github.com/luthierlabs/fretbridge/pkg/adapters/memory"
	"github.com/luthierlabs/fretbridge/pkg/domain"
	"github.com/luthierlabs/fretbridge/pkg/ports"
	"github.com/luthierlabs/fretbridge/pkg/schema"
	"github.com/luthierlabs/fretbridge/pkg/units"
)

// NewSimulatorHost builds an in-memory host for developing against the
// bridge without a CAD application. The initial document is unmanaged
// (schema mode) and carries a representative timeline; the first apply
// bootstraps a document seeded with schema defaults.
func NewSimulatorHost(schemas *schema.Store) ports.Host {
	doc := memory.NewDocument("Untitled", domain.UnitMetric)
	doc.SetTimeline(sampleTimeline())

	return memory.NewHost(
		memory.WithActiveDocument(doc),
		memory.WithSeed(schemaSeed(schemas)),
	)
}

func schemaSeed(schemas *schema.Store) memory.SeedFunc {
	return func(unit domain.Unit) []domain.LiveParameter {
		s, err := schemas.Get()
		if err != nil {
			return nil
		}
		var params []domain.LiveParameter
		for _, group := range s.SortedGroups() {
			for _, def := range group.Parameters {
				params = append(params, domain.LiveParameter{
					Name:       def.Name,
					Expression: units.Default(def, unit),
					Comment:    def.Description,
				})
			}
		}
		return params
	}
}

func sampleTimeline() *memory.Timeline {
	return memory.NewTimeline(
		memory.Feature("BoardSketch", "adsk::fusion::Sketch"),
		memory.Feature("BoardExtrude", "adsk::fusion::ExtrudeFeature"),
		memory.Group("Fret Slots",
			memory.Feature("SlotSketch", "adsk::fusion::Sketch"),
			memory.Feature("SlotCut", "adsk::fusion::ExtrudeFeature"),
		),
		memory.Feature("RadiusCut", "adsk::fusion::LoftFeature"),
		memory.Feature("NutSlot", "adsk::fusion::ExtrudeFeature"),
	)
}
