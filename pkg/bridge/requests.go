package bridge

import (
	"encoding/json"
	"fmt"

	"github.com/mitchellh/mapstructure"

	"github.com/luthierlabs/fretbridge/pkg/domain"
)

// CreateSpec describes one parameter to create during an apply.
type CreateSpec struct {
	Name        string `json:"name" mapstructure:"name"`
	Expression  string `json:"expression" mapstructure:"expression"`
	Description string `json:"description" mapstructure:"description"`
}

// ApplyRequest is the canonical apply payload. Legacy flat mappings are
// normalized into this shape at the boundary; nothing downstream branches
// on the wire format.
type ApplyRequest struct {
	Updates map[string]string `json:"updates" mapstructure:"updates"`
	Creates []CreateSpec      `json:"creates" mapstructure:"creates"`
}

// UnitSwitchRequest carries an optional explicit target unit. An empty
// unit means "toggle from current".
type UnitSwitchRequest struct {
	Unit string `json:"unit" mapstructure:"unit"`
}

// OpenURLRequest names a URL to open in the default browser.
type OpenURLRequest struct {
	URL string `json:"url" mapstructure:"url"`
}

// SaveTemplateRequest carries a template to persist.
type SaveTemplateRequest struct {
	Name          string            `json:"name" mapstructure:"name"`
	Description   string            `json:"description" mapstructure:"description"`
	SchemaVersion string            `json:"schemaVersion" mapstructure:"schemaVersion"`
	Parameters    map[string]string `json:"parameters" mapstructure:"parameters"`
}

// TemplateIDRequest identifies a template by slug. Readonly selects the
// preset namespace on loads.
type TemplateIDRequest struct {
	ID       string `json:"id" mapstructure:"id"`
	Readonly bool   `json:"readonly" mapstructure:"readonly"`
}

// SetParamCategoryRequest assigns an extra parameter to a schema group.
type SetParamCategoryRequest struct {
	Name    string `json:"name" mapstructure:"name"`
	GroupID string `json:"groupId" mapstructure:"groupId"`
}

// EditParamRequest renames an extra parameter and updates its description
// and group assignment.
type EditParamRequest struct {
	OldName     string `json:"oldName" mapstructure:"oldName"`
	NewName     string `json:"newName" mapstructure:"newName"`
	Description string `json:"description" mapstructure:"description"`
	GroupID     string `json:"groupId" mapstructure:"groupId"`
}

// DeleteParamRequest names a user parameter to remove.
type DeleteParamRequest struct {
	Name string `json:"name" mapstructure:"name"`
}

// TimelineChangesRequest is a suppression change batch.
type TimelineChangesRequest struct {
	Changes []domain.TimelineChange `json:"changes" mapstructure:"changes"`
}

// decode unmarshals a message body into a request struct. Weak typing
// tolerates the UI sending numbers where expressions are expected.
func decode(data []byte, out any) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrMalformedRequest, err)
	}
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           out,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return err
	}
	if err := dec.Decode(raw); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrMalformedRequest, err)
	}
	return nil
}

// decodeApply normalizes both apply wire formats into ApplyRequest.
func decodeApply(data []byte) (ApplyRequest, error) {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return ApplyRequest{}, fmt.Errorf("%w: %v", domain.ErrMalformedRequest, err)
	}

	_, hasUpdates := raw["updates"]
	_, hasCreates := raw["creates"]
	if !hasUpdates && !hasCreates {
		// Legacy flat mapping: the whole body is the updates map.
		var req ApplyRequest
		if err := decode(data, &req.Updates); err != nil {
			return ApplyRequest{}, err
		}
		req.Creates = []CreateSpec{}
		return req, nil
	}

	var req ApplyRequest
	if err := decode(data, &req); err != nil {
		return ApplyRequest{}, err
	}
	if req.Updates == nil {
		req.Updates = map[string]string{}
	}
	if req.Creates == nil {
		req.Creates = []CreateSpec{}
	}
	return req, nil
}
