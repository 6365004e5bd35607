package models

import (
	"time"

	"github.com/tvindima/crm-plus-sub000/pkg/enums"
)

// Visit is a scheduled property viewing with GPS-tagged check-in/out.
type Visit struct {
	ID int64 `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	// PropertyID is nulled when the property is deleted; the visit stays as
	// history.
	PropertyID *int64            `gorm:"column:property_id;index" json:"property_id,omitempty"`
	LeadID     *int64            `gorm:"column:lead_id;index" json:"lead_id,omitempty"`
	AgentID    int64             `gorm:"column:agent_id;index;not null" json:"agent_id"`
	Status     enums.VisitStatus `gorm:"column:status;type:text;not null;default:'scheduled'" json:"status"`

	ScheduledAt time.Time `gorm:"column:scheduled_at;not null" json:"scheduled_at"`

	CheckedInAt      *time.Time `gorm:"column:checked_in_at" json:"checked_in_at,omitempty"`
	CheckInLat       *float64   `gorm:"column:check_in_lat" json:"check_in_lat,omitempty"`
	CheckInLng       *float64   `gorm:"column:check_in_lng" json:"check_in_lng,omitempty"`
	CheckInAccuracy  *float64   `gorm:"column:check_in_accuracy" json:"check_in_accuracy,omitempty"`
	CheckedOutAt     *time.Time `gorm:"column:checked_out_at" json:"checked_out_at,omitempty"`
	CheckOutLat      *float64   `gorm:"column:check_out_lat" json:"check_out_lat,omitempty"`
	CheckOutLng      *float64   `gorm:"column:check_out_lng" json:"check_out_lng,omitempty"`
	CheckOutAccuracy *float64   `gorm:"column:check_out_accuracy" json:"check_out_accuracy,omitempty"`

	Rating        *int                 `gorm:"column:rating" json:"rating,omitempty"`
	InterestLevel *enums.InterestLevel `gorm:"column:interest_level;type:text" json:"interest_level,omitempty"`
	FeedbackNotes *string              `gorm:"column:feedback_notes" json:"feedback_notes,omitempty"`
	WillReturn    *bool                `gorm:"column:will_return" json:"will_return,omitempty"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

// IsActive reports whether the visit still occupies the agent's calendar.
func (v *Visit) IsActive() bool {
	return v.Status.IsActive()
}

// DurationActualMinutes derives the on-site duration. Nil unless both stamps
// are set; never persisted.
func (v *Visit) DurationActualMinutes() *int {
	if v.CheckedInAt == nil || v.CheckedOutAt == nil {
		return nil
	}
	minutes := int(v.CheckedOutAt.Sub(*v.CheckedInAt) / time.Minute)
	return &minutes
}
