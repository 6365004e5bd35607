package properties

import (
	"context"

	"github.com/tvindima/crm-plus-sub000/internal/assignment"
	"github.com/tvindima/crm-plus-sub000/pkg/db/models"
	"github.com/tvindima/crm-plus-sub000/pkg/pagination"
	"gorm.io/gorm"
)

// Repository defines persistence operations for properties.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, property *models.Property) (*models.Property, error)
	Find(ctx context.Context, id int64) (*models.Property, error)
	FindByReference(ctx context.Context, reference string) (*models.Property, error)
	List(ctx context.Context, filters ListFilters, params pagination.Params) ([]models.Property, string, error)
	// UpdateVersioned applies updates and bumps lock_version. A non-nil
	// expectedVersion turns the write into a compare-and-set.
	UpdateVersioned(ctx context.Context, id int64, expectedVersion *int64, updates map[string]any) (bool, error)
	Delete(ctx context.Context, id int64) error
	NullifyLeadLinks(ctx context.Context, propertyID int64) (int64, error)
	AgentExists(ctx context.Context, id int64) (bool, error)
}

// Resolver maps a property reference to its owning agent.
type Resolver interface {
	Resolve(ctx context.Context, reference string) (*assignment.Match, error)
}
