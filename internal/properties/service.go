package properties

import (
	"context"
	"fmt"
	"strings"

	"github.com/tvindima/crm-plus-sub000/internal/visits"
	pkgdb "github.com/tvindima/crm-plus-sub000/pkg/db"
	"github.com/tvindima/crm-plus-sub000/pkg/db/models"
	"github.com/tvindima/crm-plus-sub000/pkg/enums"
	pkgerrors "github.com/tvindima/crm-plus-sub000/pkg/errors"
	"github.com/tvindima/crm-plus-sub000/pkg/pagination"
	"gorm.io/gorm"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service exposes listing CRUD. Ownership defaults to the prefix routing
// table when the caller does not name an agent.
type Service interface {
	Create(ctx context.Context, input CreateInput) (*models.Property, error)
	Get(ctx context.Context, id int64) (*models.Property, error)
	GetByReference(ctx context.Context, reference string) (*models.Property, error)
	List(ctx context.Context, filters ListFilters, params pagination.Params) ([]models.Property, string, error)
	Update(ctx context.Context, id int64, input UpdateInput) (*models.Property, error)
	Delete(ctx context.Context, id int64) error
}

type service struct {
	repo     Repository
	visits   visits.Repository
	resolver Resolver
	tx       txRunner
}

// NewService builds a property service. The resolver is optional; without it
// unowned listings stay unassigned.
func NewService(repo Repository, visitsRepo visits.Repository, resolver Resolver, tx txRunner) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("properties repository required")
	}
	if visitsRepo == nil {
		return nil, fmt.Errorf("visits repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	return &service{repo: repo, visits: visitsRepo, resolver: resolver, tx: tx}, nil
}

func (s *service) Create(ctx context.Context, input CreateInput) (*models.Property, error) {
	reference := strings.ToUpper(strings.TrimSpace(input.Reference))
	if reference == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "reference required")
	}
	if strings.TrimSpace(input.Title) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "title required")
	}
	if input.Price.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "price cannot be negative")
	}

	agentID := input.AgentID
	if agentID != nil {
		if ok, err := s.repo.AgentExists(ctx, *agentID); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check agent")
		} else if !ok {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "agent not found")
		}
	} else if s.resolver != nil {
		match, err := s.resolver.Resolve(ctx, reference)
		if err != nil {
			return nil, err
		}
		if match != nil {
			agentID = &match.AgentID
		}
	}

	property := &models.Property{
		Reference: reference,
		Title:     strings.TrimSpace(input.Title),
		Price:     input.Price,
		AreaSqm:   input.AreaSqm,
		Location:  input.Location,
		Latitude:  input.Latitude,
		Longitude: input.Longitude,
		Status:    enums.PropertyStatusAvailable,
		AgentID:   agentID,
	}
	created, err := s.repo.Create(ctx, property)
	if err != nil {
		if pkgdb.IsUniqueViolation(err) {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "reference already in use")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create property")
	}
	return created, nil
}

func (s *service) Get(ctx context.Context, id int64) (*models.Property, error) {
	return s.find(ctx, id)
}

func (s *service) GetByReference(ctx context.Context, reference string) (*models.Property, error) {
	property, err := s.repo.FindByReference(ctx, strings.ToUpper(strings.TrimSpace(reference)))
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "property not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load property")
	}
	return property, nil
}

func (s *service) List(ctx context.Context, filters ListFilters, params pagination.Params) ([]models.Property, string, error) {
	listings, next, err := s.repo.List(ctx, filters, params)
	if err != nil {
		return nil, "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list properties")
	}
	return listings, next, nil
}

// Update patches the listing. Moving a property to sold cancels whatever
// active visits were still on the calendar, in the same transaction.
func (s *service) Update(ctx context.Context, id int64, input UpdateInput) (*models.Property, error) {
	current, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	updates := map[string]any{}
	if input.Title != nil {
		if strings.TrimSpace(*input.Title) == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "title cannot be empty")
		}
		updates["title"] = strings.TrimSpace(*input.Title)
	}
	if input.Price != nil {
		if input.Price.IsNegative() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "price cannot be negative")
		}
		updates["price"] = *input.Price
	}
	if input.AreaSqm != nil {
		updates["area_sqm"] = *input.AreaSqm
	}
	if input.Location != nil {
		updates["location"] = *input.Location
	}
	if input.Latitude != nil {
		updates["latitude"] = *input.Latitude
	}
	if input.Longitude != nil {
		updates["longitude"] = *input.Longitude
	}
	soldNow := false
	if input.Status != nil {
		if !input.Status.IsValid() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid property status")
		}
		updates["status"] = *input.Status
		soldNow = *input.Status == enums.PropertyStatusSold && current.Status != enums.PropertyStatusSold
	}
	if input.AgentID != nil {
		if ok, err := s.repo.AgentExists(ctx, *input.AgentID); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check agent")
		} else if !ok {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "agent not found")
		}
		updates["agent_id"] = *input.AgentID
	}
	if len(updates) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "no fields to update")
	}

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		applied, err := repo.UpdateVersioned(ctx, id, input.LockVersion, updates)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update property")
		}
		if !applied {
			return pkgerrors.New(pkgerrors.CodeConflict, "property was modified by another request")
		}
		if soldNow {
			if _, err := s.visits.WithTx(tx).CancelActiveByProperty(ctx, id); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "cancel open visits")
			}
		}
		return nil
	})
	if err != nil {
		if typed := pkgerrors.As(err); typed != nil {
			return nil, typed
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update property")
	}
	return s.find(ctx, id)
}

// Delete removes the listing. Leads and visits survive as history: lead
// links are nulled, open visits get cancelled and every visit is detached
// from the property, all in one transaction.
func (s *service) Delete(ctx context.Context, id int64) error {
	if _, err := s.find(ctx, id); err != nil {
		return err
	}

	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		visitsRepo := s.visits.WithTx(tx)
		if _, err := repo.NullifyLeadLinks(ctx, id); err != nil {
			return fmt.Errorf("detach leads: %w", err)
		}
		if _, err := visitsRepo.CancelActiveByProperty(ctx, id); err != nil {
			return fmt.Errorf("cancel open visits: %w", err)
		}
		if _, err := visitsRepo.DetachProperty(ctx, id); err != nil {
			return fmt.Errorf("detach visits: %w", err)
		}
		if err := repo.Delete(ctx, id); err != nil {
			return fmt.Errorf("delete property: %w", err)
		}
		return nil
	})
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete property")
	}
	return nil
}

func (s *service) find(ctx context.Context, id int64) (*models.Property, error) {
	property, err := s.repo.Find(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "property not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load property")
	}
	return property, nil
}
