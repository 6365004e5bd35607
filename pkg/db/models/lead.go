package models

import (
	"time"

	"github.com/tvindima/crm-plus-sub000/pkg/enums"
)

// Lead is a prospective buyer moving through the sales funnel.
type Lead struct {
	ID          int64            `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Name        string           `gorm:"column:name;not null" json:"name"`
	Email       *string          `gorm:"column:email" json:"email,omitempty"`
	Phone       *string          `gorm:"column:phone" json:"phone,omitempty"`
	Message     *string          `gorm:"column:message" json:"message,omitempty"`
	Status      enums.LeadStatus `gorm:"column:status;type:text;not null;default:'new'" json:"status"`
	Source      enums.LeadSource `gorm:"column:source;type:text;not null;default:'other'" json:"source"`
	PropertyID  *int64           `gorm:"column:property_id;index" json:"property_id,omitempty"`
	AgentID     *int64           `gorm:"column:agent_id;index" json:"agent_id,omitempty"`
	LockVersion int64            `gorm:"column:lock_version;not null;default:0" json:"lock_version"`
	CreatedAt   time.Time        `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time        `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}
