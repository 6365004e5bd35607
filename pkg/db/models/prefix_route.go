package models

import (
	"time"

	"github.com/tvindima/crm-plus-sub000/pkg/enums"
)

// PrefixRoute maps a property reference prefix to the agent who owns it.
// Orphan rows route prefixes without a dedicated owner to a coordinator agent.
type PrefixRoute struct {
	ID        int64                 `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Prefix    string                `gorm:"column:prefix;uniqueIndex;not null" json:"prefix"`
	AgentID   int64                 `gorm:"column:agent_id;not null" json:"agent_id"`
	Kind      enums.PrefixRouteKind `gorm:"column:kind;type:text;not null;default:'direct'" json:"kind"`
	CreatedAt time.Time             `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time             `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

// TableName maps the model onto the agent_prefix_routes table.
func (PrefixRoute) TableName() string {
	return "agent_prefix_routes"
}
