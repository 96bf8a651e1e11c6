package domain

// ItemKind distinguishes timeline features from timeline groups.
type ItemKind string

const (
	KindFeature ItemKind = "Feature"
	KindGroup   ItemKind = "Group"
)

// TimelineItem is the bridge-facing snapshot of a host timeline entry.
// Groups carry their fully resolved children; the host's visual
// collapse state never hides them.
type TimelineItem struct {
	Name       string         `json:"name"`
	Kind       ItemKind       `json:"type"`
	Category   string         `json:"featureType,omitempty"`
	Suppressed bool           `json:"suppressed"`
	Index      int            `json:"index"`
	Children   []TimelineItem `json:"children,omitempty"`
}

// TimelineChange is one entry of an APPLY_TIMELINE_CHANGES batch.
type TimelineChange struct {
	Name       string   `json:"name" mapstructure:"name"`
	Kind       ItemKind `json:"type" mapstructure:"type"`
	Suppressed bool     `json:"suppressed" mapstructure:"suppressed"`
}

// TimelineBatchResult aggregates the outcome of a change batch. For group
// changes only the header operation's outcome is counted; child cascade
// failures are log-only and never appear in Failed.
type TimelineBatchResult struct {
	Success      bool     `json:"success"`
	Message      string   `json:"message"`
	SuccessCount int      `json:"successCount"`
	Failed       []string `json:"failed"`
}

// TimelineSummary counts timeline items. Group children count as features
// and contribute to the active/suppressed totals; the group header itself
// counts toward the group total only.
type TimelineSummary struct {
	TotalItems      int `json:"total_items"`
	ActiveCount     int `json:"active_count"`
	SuppressedCount int `json:"suppressed_count"`
	GroupCount      int `json:"group_count"`
	FeatureCount    int `json:"feature_count"`
}
