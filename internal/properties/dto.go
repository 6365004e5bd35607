package properties

import (
	"github.com/shopspring/decimal"
	"github.com/tvindima/crm-plus-sub000/pkg/enums"
)

// CreateInput creates a listing. AgentID may be omitted; the prefix routing
// table then decides the owner.
type CreateInput struct {
	Reference string          `json:"reference" validate:"required"`
	Title     string          `json:"title" validate:"required"`
	Price     decimal.Decimal `json:"price" validate:"required"`
	AreaSqm   *float64        `json:"area_sqm,omitempty"`
	Location  *string         `json:"location,omitempty"`
	Latitude  *float64        `json:"latitude,omitempty"`
	Longitude *float64        `json:"longitude,omitempty"`
	AgentID   *int64          `json:"agent_id,omitempty"`
}

// UpdateInput patches listing fields. LockVersion, when present, must match
// the stored row or the update is rejected.
type UpdateInput struct {
	Title       *string               `json:"title,omitempty"`
	Price       *decimal.Decimal      `json:"price,omitempty"`
	AreaSqm     *float64              `json:"area_sqm,omitempty"`
	Location    *string               `json:"location,omitempty"`
	Latitude    *float64              `json:"latitude,omitempty"`
	Longitude   *float64              `json:"longitude,omitempty"`
	Status      *enums.PropertyStatus `json:"status,omitempty"`
	AgentID     *int64                `json:"agent_id,omitempty"`
	LockVersion *int64                `json:"lock_version,omitempty"`
}

// ListFilters narrows the property listing.
type ListFilters struct {
	Status   *enums.PropertyStatus
	AgentID  *int64
	MinPrice *decimal.Decimal
	MaxPrice *decimal.Decimal
}
