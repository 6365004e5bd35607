package assignment

import (
	"context"

	"github.com/tvindima/crm-plus-sub000/pkg/db/models"
	"gorm.io/gorm"
)

// Repository defines persistence operations for routes and the properties they govern.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	ListRoutes(ctx context.Context) ([]models.PrefixRoute, error)
	FindRoute(ctx context.Context, id int64) (*models.PrefixRoute, error)
	CreateRoute(ctx context.Context, route *models.PrefixRoute) (*models.PrefixRoute, error)
	UpdateRoute(ctx context.Context, id int64, updates map[string]any) error
	DeleteRoute(ctx context.Context, id int64) error
	LoadTable(ctx context.Context) (*Table, error)
	ListProperties(ctx context.Context) ([]models.Property, error)
	UpdatePropertyAgent(ctx context.Context, propertyID int64, agentID *int64) error
}
