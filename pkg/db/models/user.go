package models

import (
	"time"

	"github.com/tvindima/crm-plus-sub000/pkg/enums"
)

// User is a login identity. Agents get a linked user row; admins do not need one.
type User struct {
	ID           int64          `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Email        string         `gorm:"column:email;uniqueIndex;not null" json:"email"`
	PasswordHash string         `gorm:"column:password_hash;not null" json:"-"`
	Role         enums.UserRole `gorm:"column:role;type:text;not null;default:'agent'" json:"role"`
	AgentID      *int64         `gorm:"column:agent_id" json:"agent_id,omitempty"`
	CreatedAt    time.Time      `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time      `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}
