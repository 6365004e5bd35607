package assignment

import (
	"context"

	"github.com/tvindima/crm-plus-sub000/pkg/db/models"
	"github.com/tvindima/crm-plus-sub000/pkg/enums"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

// NewRepository builds an assignment repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) ListRoutes(ctx context.Context) ([]models.PrefixRoute, error) {
	var routes []models.PrefixRoute
	err := r.db.WithContext(ctx).
		Order("prefix ASC").
		Find(&routes).Error
	if err != nil {
		return nil, err
	}
	return routes, nil
}

func (r *repository) FindRoute(ctx context.Context, id int64) (*models.PrefixRoute, error) {
	var route models.PrefixRoute
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&route).Error
	if err != nil {
		return nil, err
	}
	return &route, nil
}

func (r *repository) CreateRoute(ctx context.Context, route *models.PrefixRoute) (*models.PrefixRoute, error) {
	if err := r.db.WithContext(ctx).Create(route).Error; err != nil {
		return nil, err
	}
	return route, nil
}

func (r *repository) UpdateRoute(ctx context.Context, id int64, updates map[string]any) error {
	return r.db.WithContext(ctx).
		Model(&models.PrefixRoute{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (r *repository) DeleteRoute(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&models.PrefixRoute{}).Error
}

func (r *repository) LoadTable(ctx context.Context) (*Table, error) {
	routes, err := r.ListRoutes(ctx)
	if err != nil {
		return nil, err
	}
	direct := map[string]int64{}
	orphan := map[string]int64{}
	for _, route := range routes {
		switch route.Kind {
		case enums.PrefixRouteKindOrphan:
			orphan[route.Prefix] = route.AgentID
		default:
			direct[route.Prefix] = route.AgentID
		}
	}
	return NewTable(direct, orphan), nil
}

func (r *repository) ListProperties(ctx context.Context) ([]models.Property, error) {
	var properties []models.Property
	err := r.db.WithContext(ctx).
		Select("id", "reference", "agent_id").
		Order("id ASC").
		Find(&properties).Error
	if err != nil {
		return nil, err
	}
	return properties, nil
}

func (r *repository) UpdatePropertyAgent(ctx context.Context, propertyID int64, agentID *int64) error {
	return r.db.WithContext(ctx).
		Model(&models.Property{}).
		Where("id = ?", propertyID).
		Updates(map[string]any{
			"agent_id":     agentID,
			"lock_version": gorm.Expr("lock_version + 1"),
		}).Error
}
