package visits

import (
	"context"

	"github.com/tvindima/crm-plus-sub000/pkg/db/models"
	"github.com/tvindima/crm-plus-sub000/pkg/enums"
	"github.com/tvindima/crm-plus-sub000/pkg/pagination"
	"gorm.io/gorm"
)

// Repository defines persistence operations for visits.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, visit *models.Visit) (*models.Visit, error)
	Find(ctx context.Context, id int64) (*models.Visit, error)
	List(ctx context.Context, filters ListFilters, params pagination.Params) ([]models.Visit, string, error)
	// UpdateGuarded applies updates only while the visit still holds the
	// expected status; false means another writer got there first.
	UpdateGuarded(ctx context.Context, id int64, expected enums.VisitStatus, updates map[string]any) (bool, error)
	Update(ctx context.Context, id int64, updates map[string]any) error
	PropertyExists(ctx context.Context, id int64) (bool, error)
	AgentExists(ctx context.Context, id int64) (bool, error)
	LeadExists(ctx context.Context, id int64) (bool, error)
	CancelActiveByProperty(ctx context.Context, propertyID int64) (int64, error)
	// DetachProperty nulls property_id so visit history survives property
	// deletion.
	DetachProperty(ctx context.Context, propertyID int64) (int64, error)
}
