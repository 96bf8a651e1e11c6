package bridge

import (
	"context"

	"github.com/luthierlabs/fretbridge/pkg/domain"
)

// Extra-parameter management. These touch only parameter metadata (name,
// comment), never expressions, so the host permits them outside the
// document loop.

func (b *Bridge) onSetParamCategory(ctx context.Context, data []byte) {
	var req SetParamCategoryRequest
	if err := decode(data, &req); err != nil {
		b.logger.Error("bad set-param-category payload", "err", err)
		return
	}

	doc, err := b.host.ActiveDocument()
	if err != nil {
		b.logger.Warn("set param category dropped", "err", err)
		return
	}
	p, ok := doc.Parameter(req.Name)
	if !ok {
		b.logger.Warn("set param category, unknown parameter", "name", req.Name)
		return
	}

	_, description := domain.ParseGroupComment(p.Comment)
	if err := doc.SetComment(req.Name, domain.EncodeGroupComment(req.GroupID, description)); err != nil {
		b.logger.Error("failed to set param category",
			"name", req.Name, "group", req.GroupID, "err", err)
		return
	}
	b.logger.Info("set param category", "name", req.Name, "group", req.GroupID)

	b.pushModelState(ctx)
}

func (b *Bridge) onEditParam(ctx context.Context, data []byte) {
	var req EditParamRequest
	if err := decode(data, &req); err != nil {
		b.logger.Error("bad edit-param payload", "err", err)
		return
	}
	if req.NewName == "" {
		req.NewName = req.OldName
	}

	doc, err := b.host.ActiveDocument()
	if err != nil {
		b.logger.Warn("edit param dropped", "err", err)
		return
	}

	name := req.OldName
	if req.NewName != req.OldName {
		if err := doc.RenameParameter(req.OldName, req.NewName); err != nil {
			b.logger.Error("failed to rename parameter",
				"old", req.OldName, "new", req.NewName, "err", err)
			return
		}
		name = req.NewName
	}

	if err := doc.SetComment(name, domain.EncodeGroupComment(req.GroupID, req.Description)); err != nil {
		b.logger.Error("failed to update parameter comment", "name", name, "err", err)
		return
	}
	b.logger.Info("edited parameter", "old", req.OldName, "new", name)

	b.pushModelState(ctx)
}

func (b *Bridge) onDeleteParam(ctx context.Context, data []byte) {
	var req DeleteParamRequest
	if err := decode(data, &req); err != nil {
		b.logger.Error("bad delete-param payload", "err", err)
		return
	}
	if req.Name == domain.FingerprintParam {
		// The fingerprint, once set, is never cleared by this system.
		b.logger.Warn("delete param refused for fingerprint parameter")
		return
	}

	doc, err := b.host.ActiveDocument()
	if err != nil {
		b.logger.Warn("delete param dropped", "err", err)
		return
	}
	if err := doc.DeleteParameter(req.Name); err != nil {
		b.logger.Error("failed to delete parameter", "name", req.Name, "err", err)
		return
	}
	b.logger.Info("deleted parameter", "name", req.Name)

	b.pushModelState(ctx)
}
