package agents

// CreateInput registers a new sales agent.
type CreateInput struct {
	Name  string  `json:"name" validate:"required"`
	Email string  `json:"email" validate:"required,email"`
	Phone *string `json:"phone,omitempty"`
	Team  *string `json:"team,omitempty"`
}

// UpdateInput patches agent fields.
type UpdateInput struct {
	Name   *string `json:"name,omitempty"`
	Email  *string `json:"email,omitempty"`
	Phone  *string `json:"phone,omitempty"`
	Team   *string `json:"team,omitempty"`
	Active *bool   `json:"active,omitempty"`
}

// ListFilters narrows the agent listing.
type ListFilters struct {
	Active *bool
	Team   *string
}
