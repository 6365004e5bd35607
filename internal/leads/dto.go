package leads

import "github.com/tvindima/crm-plus-sub000/pkg/enums"

// CreateInput is a back-office lead creation.
type CreateInput struct {
	Name       string           `json:"name" validate:"required"`
	Email      *string          `json:"email,omitempty" validate:"omitempty,email"`
	Phone      *string          `json:"phone,omitempty"`
	Message    *string          `json:"message,omitempty"`
	Source     enums.LeadSource `json:"source" validate:"required"`
	PropertyID *int64           `json:"property_id,omitempty"`
	AgentID    *int64           `json:"agent_id,omitempty"`
}

// WebsiteInput is the public contact-form intake. The source is forced to
// website and the agent is inherited from the referenced property.
type WebsiteInput struct {
	Name       string  `json:"name" validate:"required"`
	Email      *string `json:"email,omitempty" validate:"omitempty,email"`
	Phone      *string `json:"phone,omitempty"`
	Message    *string `json:"message,omitempty"`
	PropertyID *int64  `json:"property_id,omitempty"`
}

// UpdateInput patches lead fields. LockVersion, when present, must match the
// stored row or the update is rejected.
type UpdateInput struct {
	Name        *string           `json:"name,omitempty"`
	Email       *string           `json:"email,omitempty" validate:"omitempty,email"`
	Phone       *string           `json:"phone,omitempty"`
	Message     *string           `json:"message,omitempty"`
	Source      *enums.LeadSource `json:"source,omitempty"`
	PropertyID  *int64            `json:"property_id,omitempty"`
	LockVersion *int64            `json:"lock_version,omitempty"`
}

// StatusInput moves a lead through the funnel.
type StatusInput struct {
	Status      enums.LeadStatus `json:"status" validate:"required"`
	LockVersion *int64           `json:"lock_version,omitempty"`
}

// ListFilters narrows the lead listing.
type ListFilters struct {
	Status     *enums.LeadStatus
	Source     *enums.LeadSource
	AgentID    *int64
	PropertyID *int64
}
