package analytics

import (
	"context"
	"time"

	"github.com/tvindima/crm-plus-sub000/pkg/db/models"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

// NewRepository builds an analytics repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) ListLeadsCreatedSince(ctx context.Context, since time.Time) ([]models.Lead, error) {
	var leads []models.Lead
	err := r.db.WithContext(ctx).
		Select("id", "status", "source", "agent_id", "created_at", "updated_at").
		Where("created_at >= ?", since).
		Order("created_at ASC").
		Find(&leads).Error
	if err != nil {
		return nil, err
	}
	return leads, nil
}

func (r *repository) AgentNames(ctx context.Context, ids []int64) (map[int64]string, error) {
	if len(ids) == 0 {
		return map[int64]string{}, nil
	}
	var agents []models.Agent
	err := r.db.WithContext(ctx).
		Select("id", "name").
		Where("id IN ?", ids).
		Find(&agents).Error
	if err != nil {
		return nil, err
	}
	names := make(map[int64]string, len(agents))
	for _, agent := range agents {
		names[agent.ID] = agent.Name
	}
	return names, nil
}
