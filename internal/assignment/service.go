package assignment

import (
	"context"
	"fmt"
	"strings"

	pkgdb "github.com/tvindima/crm-plus-sub000/pkg/db"
	"github.com/tvindima/crm-plus-sub000/pkg/db/models"
	"github.com/tvindima/crm-plus-sub000/pkg/enums"
	pkgerrors "github.com/tvindima/crm-plus-sub000/pkg/errors"
	"gorm.io/gorm"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service exposes prefix routing, assignment validation and batch correction.
type Service interface {
	Resolve(ctx context.Context, reference string) (*Match, error)
	Validate(ctx context.Context) ([]Mismatch, error)
	FixAll(ctx context.Context) (*FixReport, error)
	ListRoutes(ctx context.Context) ([]models.PrefixRoute, error)
	CreateRoute(ctx context.Context, input RouteInput) (*models.PrefixRoute, error)
	UpdateRoute(ctx context.Context, id int64, input RouteInput) (*models.PrefixRoute, error)
	DeleteRoute(ctx context.Context, id int64) error
}

type service struct {
	repo Repository
	tx   txRunner
}

// NewService builds an assignment service with the required dependencies.
func NewService(repo Repository, tx txRunner) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("assignment repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	return &service{repo: repo, tx: tx}, nil
}

func (s *service) Resolve(ctx context.Context, reference string) (*Match, error) {
	if strings.TrimSpace(reference) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "reference required")
	}
	table, err := s.repo.LoadTable(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load prefix routes")
	}
	return table.Resolve(reference), nil
}

// Validate reports every property whose stored agent disagrees with the
// routing table. Read-only; properties without a current agent are ignored.
func (s *service) Validate(ctx context.Context) ([]Mismatch, error) {
	table, err := s.repo.LoadTable(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load prefix routes")
	}
	properties, err := s.repo.ListProperties(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list properties")
	}

	mismatches := []Mismatch{}
	for _, property := range properties {
		if property.AgentID == nil {
			continue
		}
		match := table.Resolve(property.Reference)
		if match == nil || match.AgentID == *property.AgentID {
			continue
		}
		mismatches = append(mismatches, Mismatch{
			PropertyID:     property.ID,
			Reference:      property.Reference,
			CurrentAgentID: property.AgentID,
			CorrectAgentID: match.AgentID,
		})
	}
	return mismatches, nil
}

// FixAll rescans every property and rewrites stale assignments in one
// transaction. A batch failure rolls everything back and is reported through
// the Error field instead of a transport error.
func (s *service) FixAll(ctx context.Context) (*FixReport, error) {
	table, err := s.repo.LoadTable(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load prefix routes")
	}

	report := &FixReport{ByAgent: map[int64]int{}}
	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		properties, err := repo.ListProperties(ctx)
		if err != nil {
			return fmt.Errorf("list properties: %w", err)
		}

		for _, property := range properties {
			report.Total++
			match := table.Resolve(property.Reference)
			if match == nil {
				report.Skipped++
				continue
			}
			if property.AgentID != nil && *property.AgentID == match.AgentID {
				continue
			}
			agentID := match.AgentID
			if err := repo.UpdatePropertyAgent(ctx, property.ID, &agentID); err != nil {
				return fmt.Errorf("update property %d: %w", property.ID, err)
			}
			report.Updated++
			report.ByAgent[match.AgentID]++
			if match.Kind == enums.PrefixRouteKindOrphan {
				report.Orphaned++
			}
		}
		return nil
	})
	if err != nil {
		return &FixReport{ByAgent: map[int64]int{}, Error: err.Error()}, nil
	}
	return report, nil
}

func (s *service) ListRoutes(ctx context.Context) ([]models.PrefixRoute, error) {
	routes, err := s.repo.ListRoutes(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list prefix routes")
	}
	return routes, nil
}

func (s *service) CreateRoute(ctx context.Context, input RouteInput) (*models.PrefixRoute, error) {
	normalized, err := normalizeRouteInput(input)
	if err != nil {
		return nil, err
	}
	route := &models.PrefixRoute{
		Prefix:  normalized.Prefix,
		AgentID: normalized.AgentID,
		Kind:    normalized.Kind,
	}
	created, err := s.repo.CreateRoute(ctx, route)
	if err != nil {
		if pkgdb.IsUniqueViolation(err) {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "prefix already routed")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create prefix route")
	}
	return created, nil
}

func (s *service) UpdateRoute(ctx context.Context, id int64, input RouteInput) (*models.PrefixRoute, error) {
	normalized, err := normalizeRouteInput(input)
	if err != nil {
		return nil, err
	}
	if _, err := s.repo.FindRoute(ctx, id); err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "prefix route not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load prefix route")
	}
	updates := map[string]any{
		"prefix":   normalized.Prefix,
		"agent_id": normalized.AgentID,
		"kind":     normalized.Kind,
	}
	if err := s.repo.UpdateRoute(ctx, id, updates); err != nil {
		if pkgdb.IsUniqueViolation(err) {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "prefix already routed")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update prefix route")
	}
	route, err := s.repo.FindRoute(ctx, id)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reload prefix route")
	}
	return route, nil
}

func (s *service) DeleteRoute(ctx context.Context, id int64) error {
	if _, err := s.repo.FindRoute(ctx, id); err != nil {
		if err == gorm.ErrRecordNotFound {
			return pkgerrors.New(pkgerrors.CodeNotFound, "prefix route not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load prefix route")
	}
	if err := s.repo.DeleteRoute(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete prefix route")
	}
	return nil
}

func normalizeRouteInput(input RouteInput) (RouteInput, error) {
	input.Prefix = strings.ToUpper(strings.TrimSpace(input.Prefix))
	if len(input.Prefix) < 2 || len(input.Prefix) > 3 {
		return input, pkgerrors.New(pkgerrors.CodeValidation, "prefix must be 2 or 3 letters")
	}
	if ExtractPrefix(input.Prefix) != input.Prefix {
		return input, pkgerrors.New(pkgerrors.CodeValidation, "prefix must be alphabetic")
	}
	if input.AgentID <= 0 {
		return input, pkgerrors.New(pkgerrors.CodeValidation, "agent id required")
	}
	if !input.Kind.IsValid() {
		return input, pkgerrors.New(pkgerrors.CodeValidation, "invalid route kind")
	}
	return input, nil
}
