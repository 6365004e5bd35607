package auth

import (
	"time"

	"github.com/tvindima/crm-plus-sub000/pkg/db/models"
	"github.com/tvindima/crm-plus-sub000/pkg/enums"
)

// LoginRequest carries the credentials posted to the login endpoint. ClientIP
// is filled in by the controller, never by the request body.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	ClientIP string `json:"-"`
}

// LoginResponse is the successful login payload.
type LoginResponse struct {
	AccessToken string         `json:"access_token"`
	TokenType   string         `json:"token_type"`
	ExpiresAt   time.Time      `json:"expires_at"`
	User        *models.User   `json:"user"`
	Role        enums.UserRole `json:"role"`
}

// CreateUserInput provisions a login identity. Password may be omitted; a
// temporary one is generated and returned exactly once.
type CreateUserInput struct {
	Email    string         `json:"email" validate:"required,email"`
	Password *string        `json:"password,omitempty"`
	Role     enums.UserRole `json:"role" validate:"required"`
	AgentID  *int64         `json:"agent_id,omitempty"`
}

// CreateUserResult returns the stored user plus the generated credential, if any.
type CreateUserResult struct {
	User         *models.User `json:"user"`
	TempPassword string       `json:"temp_password,omitempty"`
}

// ChangePasswordInput rotates a user's own password.
type ChangePasswordInput struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=8"`
}
