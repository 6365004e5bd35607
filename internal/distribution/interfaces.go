package distribution

import (
	"context"

	"github.com/tvindima/crm-plus-sub000/pkg/db/models"
	"gorm.io/gorm"
)

// Repository defines the persistence surface the distribution engine needs.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	FindLeadsByIDs(ctx context.Context, ids []int64) ([]models.Lead, error)
	ListAgents(ctx context.Context) ([]models.Agent, error)
	FindAgent(ctx context.Context, id int64) (*models.Agent, error)
	CountActiveLeadsByAgent(ctx context.Context) (map[int64]int, error)
	UpdateLeadAgent(ctx context.Context, leadID, agentID int64) error
}
