package bridge

import (
	"context"
	"errors"
	"strings"

	"github.com/luthierlabs/fretbridge/pkg/domain"
	"github.com/luthierlabs/fretbridge/pkg/reconcile"
)

// TemplateEntry is one row of the PUSH_TEMPLATES payload. Name and
// description are already resolved for the document unit.
type TemplateEntry struct {
	ID            string            `json:"id"`
	Name          string            `json:"name"`
	Description   string            `json:"description"`
	CreatedAt     string            `json:"createdAt"`
	SchemaVersion string            `json:"schemaVersion"`
	Readonly      bool              `json:"readonly"`
	Parameters    map[string]string `json:"parameters"`
}

// TemplateList is the PUSH_TEMPLATES payload: the two disjoint
// namespaces, each sorted by name.
type TemplateList struct {
	Presets       []TemplateEntry `json:"presets"`
	UserTemplates []TemplateEntry `json:"userTemplates"`
}

func (b *Bridge) pushTemplates(ctx context.Context) {
	list := b.templateList(ctx)
	b.send(ctx, PushTemplates, list)
	b.logger.Debug("sent template list",
		"presets", len(list.Presets), "user_templates", len(list.UserTemplates))
}

// templateList enumerates both namespaces. The document unit, when a
// document is active, selects preset display names and descriptions.
func (b *Bridge) templateList(ctx context.Context) TemplateList {
	unit := domain.UnitImperial
	if doc, err := b.host.ActiveDocument(); err == nil {
		unit = doc.Unit()
	}

	list := TemplateList{Presets: []TemplateEntry{}, UserTemplates: []TemplateEntry{}}

	if b.presets != nil {
		presets, err := b.presets.List(ctx)
		if err != nil {
			b.logger.Error("failed to list presets", "err", err)
		}
		for _, p := range presets {
			list.Presets = append(list.Presets, entryFor(&p, unit, true))
		}
	}

	if b.templates != nil {
		templates, err := b.templates.List(ctx)
		if err != nil {
			b.logger.Error("failed to list user templates", "err", err)
		}
		for _, t := range templates {
			list.UserTemplates = append(list.UserTemplates, entryFor(&t, unit, false))
		}
	}
	return list
}

func entryFor(tpl *domain.Template, unit domain.Unit, readonly bool) TemplateEntry {
	return TemplateEntry{
		ID:            tpl.ID,
		Name:          tpl.DisplayName(unit),
		Description:   tpl.DisplayDescription(unit),
		CreatedAt:     tpl.CreatedAt,
		SchemaVersion: tpl.SchemaVersion,
		Readonly:      readonly,
		Parameters:    tpl.Parameters,
	}
}

func (b *Bridge) onSaveTemplate(ctx context.Context, data []byte) {
	if b.templates == nil {
		b.logger.Warn("save template dropped, no template store configured")
		return
	}

	var req SaveTemplateRequest
	if err := decode(data, &req); err != nil {
		b.logger.Error("bad save-template payload", "err", err)
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		b.logger.Warn("save template dropped, name is required")
		return
	}

	schemaVersion := req.SchemaVersion
	if schemaVersion == "" {
		if s, err := b.schemas.Get(); err == nil {
			schemaVersion = s.SchemaVersion
		}
	}

	id, err := b.templates.Save(ctx, domain.Template{
		Name:          req.Name,
		Description:   req.Description,
		SchemaVersion: schemaVersion,
		Parameters:    req.Parameters,
	})
	if err != nil {
		b.logger.Error("failed to save template", "name", req.Name, "err", err)
		return
	}
	b.logger.Info("saved template", "name", req.Name, "id", id)

	b.pushTemplates(ctx)
}

func (b *Bridge) onDeleteTemplate(ctx context.Context, data []byte) {
	if b.templates == nil {
		return
	}

	var req TemplateIDRequest
	if err := decode(data, &req); err != nil {
		b.logger.Error("bad delete-template payload", "err", err)
		return
	}
	if req.ID == "" {
		return
	}

	err := b.templates.Delete(ctx, req.ID)
	switch {
	case errors.Is(err, domain.ErrPathTraversal):
		b.logger.Warn("delete template blocked", "id", req.ID, "err", err)
		return
	case errors.Is(err, domain.ErrTemplateNotFound):
		b.logger.Warn("delete template no-op, record absent", "id", req.ID)
	case err != nil:
		b.logger.Error("failed to delete template", "id", req.ID, "err", err)
	default:
		b.logger.Info("deleted template", "id", req.ID)
	}

	b.pushTemplates(ctx)
}

func (b *Bridge) onLoadTemplate(ctx context.Context, data []byte) {
	var req TemplateIDRequest
	if err := decode(data, &req); err != nil {
		b.logger.Error("bad load-template payload", "err", err)
		return
	}

	var (
		tpl *domain.Template
		err error
	)
	if req.Readonly {
		if b.presets == nil {
			b.logger.Warn("load preset dropped, no preset library configured")
			return
		}
		tpl, err = b.presets.Load(ctx, req.ID)
	} else {
		if b.templates == nil {
			b.logger.Warn("load template dropped, no template store configured")
			return
		}
		tpl, err = b.templates.Load(ctx, req.ID)
	}
	if err != nil {
		b.logger.Warn("failed to load template", "id", req.ID, "readonly", req.Readonly, "err", err)
		return
	}

	s, err := b.schemas.Get()
	if err != nil {
		b.logger.Error("failed to build template state", "err", err)
		return
	}

	unit := domain.UnitImperial
	var live []domain.LiveParameter
	if doc, err := b.host.ActiveDocument(); err == nil {
		unit = doc.Unit()
		live, _ = doc.Parameters()
	}

	state := reconcile.BuildTemplatePayload(s, unit, live, tpl)
	b.send(ctx, PushModelState, state)
	b.logger.Info("loaded template", "name", tpl.Name, "params", len(tpl.Parameters))
}
