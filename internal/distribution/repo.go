package distribution

import (
	"context"

	"github.com/tvindima/crm-plus-sub000/pkg/db/models"
	"github.com/tvindima/crm-plus-sub000/pkg/enums"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

// NewRepository builds a distribution repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) FindLeadsByIDs(ctx context.Context, ids []int64) ([]models.Lead, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var leads []models.Lead
	err := r.db.WithContext(ctx).
		Where("id IN ?", ids).
		Find(&leads).Error
	if err != nil {
		return nil, err
	}
	return leads, nil
}

func (r *repository) ListAgents(ctx context.Context) ([]models.Agent, error) {
	var agents []models.Agent
	err := r.db.WithContext(ctx).
		Order("id ASC").
		Find(&agents).Error
	if err != nil {
		return nil, err
	}
	return agents, nil
}

func (r *repository) FindAgent(ctx context.Context, id int64) (*models.Agent, error) {
	var agent models.Agent
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&agent).Error
	if err != nil {
		return nil, err
	}
	return &agent, nil
}

func (r *repository) CountActiveLeadsByAgent(ctx context.Context) (map[int64]int, error) {
	type row struct {
		AgentID int64
		Total   int
	}
	var rows []row
	err := r.db.WithContext(ctx).
		Model(&models.Lead{}).
		Select("agent_id AS agent_id", "COUNT(*) AS total").
		Where("agent_id IS NOT NULL").
		Where("status IN ?", enums.ActiveLeadStatuses).
		Group("agent_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	counts := make(map[int64]int, len(rows))
	for _, r := range rows {
		counts[r.AgentID] = r.Total
	}
	return counts, nil
}

func (r *repository) UpdateLeadAgent(ctx context.Context, leadID, agentID int64) error {
	return r.db.WithContext(ctx).
		Model(&models.Lead{}).
		Where("id = ?", leadID).
		Updates(map[string]any{
			"agent_id":     agentID,
			"lock_version": gorm.Expr("lock_version + 1"),
		}).Error
}
