package agents

import (
	"context"

	"github.com/tvindima/crm-plus-sub000/pkg/db/models"
	"gorm.io/gorm"
)

// Repository defines persistence operations for agents.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, agent *models.Agent) (*models.Agent, error)
	Find(ctx context.Context, id int64) (*models.Agent, error)
	List(ctx context.Context, filters ListFilters) ([]models.Agent, error)
	Update(ctx context.Context, id int64, updates map[string]any) error
	Delete(ctx context.Context, id int64) error
	CountVisits(ctx context.Context, agentID int64) (int64, error)
	DetachOwnership(ctx context.Context, agentID int64) error
}
