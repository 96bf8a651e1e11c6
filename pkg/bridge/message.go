package bridge

// Channel is the UI peer: a sink for named JSON messages. Implementations
// must be safe for concurrent Send calls; the bridge pushes from both the
// channel context and the document loop.
type Channel interface {
	Send(action string, payload any) error
}

// Inbound actions (UI to bridge).
const (
	ActionReady               = "ready"
	ActionGetModelState       = "GET_MODEL_STATE"
	ActionApplyParams         = "APPLY_PARAMS"
	ActionCancel              = "cancel"
	ActionOpenURL             = "OPEN_URL"
	ActionOpenTemplatesFolder = "OPEN_TEMPLATES_FOLDER"
	ActionSwitchUnits         = "SWITCH_UNITS"
	ActionGetTemplates        = "GET_TEMPLATES"
	ActionSaveTemplate        = "SAVE_TEMPLATE"
	ActionDeleteTemplate      = "DELETE_TEMPLATE"
	ActionLoadTemplate        = "LOAD_TEMPLATE"
	ActionSetParamCategory    = "SET_PARAM_CATEGORY"
	ActionEditParam           = "EDIT_PARAM"
	ActionDeleteParam         = "DELETE_PARAM"
	ActionGetTimelineItems    = "GET_TIMELINE_ITEMS"
	ActionApplyTimeline       = "APPLY_TIMELINE_CHANGES"
	ActionGetTimelineSummary  = "GET_TIMELINE_SUMMARY"

	// actionResponse is the channel's internal acknowledgment; ignored.
	actionResponse = "response"
)

// Outbound actions (bridge to UI).
const (
	PushModelState          = "PUSH_MODEL_STATE"
	PushTemplates           = "PUSH_TEMPLATES"
	PushTimelineItems       = "PUSH_TIMELINE_ITEMS"
	PushTimelineSummary     = "PUSH_TIMELINE_SUMMARY"
	TimelineOperationResult = "TIMELINE_OPERATION_RESULT"
	Computing               = "COMPUTING"
)
