package assignment

import "github.com/tvindima/crm-plus-sub000/pkg/enums"

// Mismatch records a property whose stored agent disagrees with the routing table.
type Mismatch struct {
	PropertyID     int64  `json:"property_id"`
	Reference      string `json:"reference"`
	CurrentAgentID *int64 `json:"current_agent_id"`
	CorrectAgentID int64  `json:"correct_agent_id"`
}

// FixReport summarizes one fix_all batch. Error is set when the batch rolled
// back; the counters then describe nothing.
type FixReport struct {
	Total    int             `json:"total"`
	Updated  int             `json:"updated"`
	Orphaned int             `json:"orphaned"`
	Skipped  int             `json:"skipped"`
	ByAgent  map[int64]int   `json:"by_agent"`
	Error    string          `json:"error,omitempty"`
}

// RouteInput carries the fields for creating or updating a prefix route.
type RouteInput struct {
	Prefix  string                `json:"prefix" validate:"required,alpha,min=2,max=3"`
	AgentID int64                 `json:"agent_id" validate:"required,gt=0"`
	Kind    enums.PrefixRouteKind `json:"kind" validate:"required"`
}
