package analytics

import (
	"context"
	"time"

	"github.com/tvindima/crm-plus-sub000/pkg/db/models"
)

// Repository defines the read surface for the reporting queries.
type Repository interface {
	ListLeadsCreatedSince(ctx context.Context, since time.Time) ([]models.Lead, error)
	AgentNames(ctx context.Context, ids []int64) (map[int64]string, error)
}
