package auth

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/tvindima/crm-plus-sub000/pkg/enums"
)

// AccessTokenPayload captures the data available when minting a JWT.
type AccessTokenPayload struct {
	UserID  int64
	Role    enums.UserRole
	AgentID *int64
	JTI     string
}

// AccessTokenClaims represents the typed JWT issued to clients. AgentID is
// present only for users bound to an agent profile.
type AccessTokenClaims struct {
	UserID  int64          `json:"user_id"`
	Role    enums.UserRole `json:"role"`
	AgentID *int64         `json:"agent_id,omitempty"`
	jwt.RegisteredClaims
}
