package visits

import (
	"time"

	"github.com/tvindima/crm-plus-sub000/pkg/enums"
	"github.com/tvindima/crm-plus-sub000/pkg/types"
)

// ScheduleInput creates a new visit.
type ScheduleInput struct {
	PropertyID  int64     `json:"property_id" validate:"required,gt=0"`
	LeadID      *int64    `json:"lead_id,omitempty"`
	AgentID     int64     `json:"agent_id" validate:"required,gt=0"`
	ScheduledAt time.Time `json:"scheduled_at" validate:"required"`
}

// CheckInput carries one GPS-tagged check-in or check-out.
type CheckInput struct {
	Point types.GeoPoint `json:"point" validate:"required"`
	At    *time.Time     `json:"at,omitempty"`
}

// FeedbackInput records the post-visit survey.
type FeedbackInput struct {
	Rating        *int                 `json:"rating,omitempty" validate:"omitempty,min=1,max=5"`
	InterestLevel *enums.InterestLevel `json:"interest_level,omitempty"`
	Notes         *string              `json:"notes,omitempty"`
	WillReturn    *bool                `json:"will_return,omitempty"`
}

// ListFilters narrows the visit listing.
type ListFilters struct {
	AgentID    *int64
	PropertyID *int64
	LeadID     *int64
	Status     *enums.VisitStatus
	From       *time.Time
	To         *time.Time
}
