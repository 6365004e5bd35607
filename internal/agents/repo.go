package agents

import (
	"context"

	"github.com/tvindima/crm-plus-sub000/pkg/db/models"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

// NewRepository builds an agents repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, agent *models.Agent) (*models.Agent, error) {
	if err := r.db.WithContext(ctx).Create(agent).Error; err != nil {
		return nil, err
	}
	return agent, nil
}

func (r *repository) Find(ctx context.Context, id int64) (*models.Agent, error) {
	var agent models.Agent
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&agent).Error
	if err != nil {
		return nil, err
	}
	return &agent, nil
}

func (r *repository) List(ctx context.Context, filters ListFilters) ([]models.Agent, error) {
	query := r.db.WithContext(ctx).Model(&models.Agent{})
	if filters.Active != nil {
		query = query.Where("active = ?", *filters.Active)
	}
	if filters.Team != nil {
		query = query.Where("team = ?", *filters.Team)
	}

	var agents []models.Agent
	if err := query.Order("id ASC").Find(&agents).Error; err != nil {
		return nil, err
	}
	return agents, nil
}

func (r *repository) Update(ctx context.Context, id int64, updates map[string]any) error {
	return r.db.WithContext(ctx).
		Model(&models.Agent{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&models.Agent{}).Error
}

func (r *repository) CountVisits(ctx context.Context, agentID int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Visit{}).
		Where("agent_id = ?", agentID).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

// DetachOwnership clears the agent's links before the row is removed. Prefix
// routes go with the agent; properties and leads revert to unassigned.
func (r *repository) DetachOwnership(ctx context.Context, agentID int64) error {
	if err := r.db.WithContext(ctx).
		Model(&models.Property{}).
		Where("agent_id = ?", agentID).
		Update("agent_id", nil).Error; err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).
		Model(&models.Lead{}).
		Where("agent_id = ?", agentID).
		Update("agent_id", nil).Error; err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("agent_id = ?", agentID).
		Update("agent_id", nil).Error; err != nil {
		return err
	}
	return r.db.WithContext(ctx).
		Where("agent_id = ?", agentID).
		Delete(&models.PrefixRoute{}).Error
}
