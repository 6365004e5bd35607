package auth

import (
	"context"

	"github.com/tvindima/crm-plus-sub000/pkg/db/models"
)

// Repository defines the persistence surface the auth service needs.
type Repository interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id int64) (*models.User, error)
	Create(ctx context.Context, user *models.User) (*models.User, error)
	UpdatePasswordHash(ctx context.Context, id int64, hash string) error
	AgentExists(ctx context.Context, id int64) (bool, error)
}
