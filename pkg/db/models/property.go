package models

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/tvindima/crm-plus-sub000/pkg/enums"
)

// Property is a listing identified by its human-facing reference code.
type Property struct {
	ID          int64                `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Reference   string               `gorm:"column:reference;uniqueIndex;not null" json:"reference"`
	Title       string               `gorm:"column:title;not null" json:"title"`
	Price       decimal.Decimal      `gorm:"column:price;type:numeric(14,2);not null" json:"price"`
	AreaSqm     *float64             `gorm:"column:area_sqm" json:"area_sqm,omitempty"`
	Location    *string              `gorm:"column:location" json:"location,omitempty"`
	Latitude    *float64             `gorm:"column:latitude" json:"latitude,omitempty"`
	Longitude   *float64             `gorm:"column:longitude" json:"longitude,omitempty"`
	Status      enums.PropertyStatus `gorm:"column:status;type:text;not null;default:'available'" json:"status"`
	AgentID     *int64               `gorm:"column:agent_id;index" json:"agent_id,omitempty"`
	LockVersion int64                `gorm:"column:lock_version;not null;default:0" json:"lock_version"`
	CreatedAt   time.Time            `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time            `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}
