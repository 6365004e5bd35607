package leads

import (
	"context"

	"github.com/tvindima/crm-plus-sub000/pkg/db/models"
	"github.com/tvindima/crm-plus-sub000/pkg/pagination"
	"gorm.io/gorm"
)

// Repository defines persistence operations for leads.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, lead *models.Lead) (*models.Lead, error)
	Find(ctx context.Context, id int64) (*models.Lead, error)
	List(ctx context.Context, filters ListFilters, params pagination.Params) ([]models.Lead, string, error)
	// UpdateVersioned applies updates and bumps lock_version. A non-nil
	// expectedVersion turns the write into a compare-and-set; false means the
	// row moved underneath the caller.
	UpdateVersioned(ctx context.Context, id int64, expectedVersion *int64, updates map[string]any) (bool, error)
	Delete(ctx context.Context, id int64) error
	PropertyAgent(ctx context.Context, propertyID int64) (*int64, bool, error)
	AgentExists(ctx context.Context, id int64) (bool, error)
	PropertyExists(ctx context.Context, id int64) (bool, error)
}
