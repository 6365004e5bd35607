package visits

import (
	"context"

	"github.com/tvindima/crm-plus-sub000/pkg/db/models"
	"github.com/tvindima/crm-plus-sub000/pkg/enums"
	"github.com/tvindima/crm-plus-sub000/pkg/pagination"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

// NewRepository builds a visits repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, visit *models.Visit) (*models.Visit, error) {
	if err := r.db.WithContext(ctx).Create(visit).Error; err != nil {
		return nil, err
	}
	return visit, nil
}

func (r *repository) Find(ctx context.Context, id int64) (*models.Visit, error) {
	var visit models.Visit
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&visit).Error
	if err != nil {
		return nil, err
	}
	return &visit, nil
}

func (r *repository) List(ctx context.Context, filters ListFilters, params pagination.Params) ([]models.Visit, string, error) {
	query := r.db.WithContext(ctx).Model(&models.Visit{})
	if filters.AgentID != nil {
		query = query.Where("agent_id = ?", *filters.AgentID)
	}
	if filters.PropertyID != nil {
		query = query.Where("property_id = ?", *filters.PropertyID)
	}
	if filters.LeadID != nil {
		query = query.Where("lead_id = ?", *filters.LeadID)
	}
	if filters.Status != nil {
		query = query.Where("status = ?", *filters.Status)
	}
	if filters.From != nil {
		query = query.Where("scheduled_at >= ?", *filters.From)
	}
	if filters.To != nil {
		query = query.Where("scheduled_at < ?", *filters.To)
	}

	cursor, err := pagination.ParseCursor(params.Cursor)
	if err != nil {
		return nil, "", err
	}
	if cursor != nil {
		query = query.Where(
			"(created_at < ?) OR (created_at = ? AND id < ?)",
			cursor.CreatedAt, cursor.CreatedAt, cursor.ID,
		)
	}

	limit := pagination.NormalizeLimit(params.Limit)
	var visits []models.Visit
	err = query.
		Order("created_at DESC, id DESC").
		Limit(pagination.LimitWithBuffer(params.Limit)).
		Find(&visits).Error
	if err != nil {
		return nil, "", err
	}

	next := ""
	if len(visits) > limit {
		visits = visits[:limit]
		last := visits[len(visits)-1]
		next = pagination.EncodeCursor(pagination.Cursor{CreatedAt: last.CreatedAt, ID: last.ID})
	}
	return visits, next, nil
}

func (r *repository) UpdateGuarded(ctx context.Context, id int64, expected enums.VisitStatus, updates map[string]any) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Visit{}).
		Where("id = ? AND status = ?", id, expected).
		Updates(updates)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *repository) Update(ctx context.Context, id int64, updates map[string]any) error {
	return r.db.WithContext(ctx).
		Model(&models.Visit{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (r *repository) PropertyExists(ctx context.Context, id int64) (bool, error) {
	return r.exists(ctx, &models.Property{}, id)
}

func (r *repository) AgentExists(ctx context.Context, id int64) (bool, error) {
	return r.exists(ctx, &models.Agent{}, id)
}

func (r *repository) LeadExists(ctx context.Context, id int64) (bool, error) {
	return r.exists(ctx, &models.Lead{}, id)
}

func (r *repository) exists(ctx context.Context, model any, id int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(model).
		Where("id = ?", id).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *repository) CancelActiveByProperty(ctx context.Context, propertyID int64) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Visit{}).
		Where("property_id = ?", propertyID).
		Where("status IN ?", []enums.VisitStatus{
			enums.VisitStatusScheduled,
			enums.VisitStatusConfirmed,
			enums.VisitStatusInProgress,
		}).
		Update("status", enums.VisitStatusCancelled)
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

func (r *repository) DetachProperty(ctx context.Context, propertyID int64) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Visit{}).
		Where("property_id = ?", propertyID).
		Update("property_id", nil)
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}
