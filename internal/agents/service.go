package agents

import (
	"context"
	"errors"
	"fmt"
	"strings"

	pkgdb "github.com/tvindima/crm-plus-sub000/pkg/db"
	"github.com/tvindima/crm-plus-sub000/pkg/db/models"
	pkgerrors "github.com/tvindima/crm-plus-sub000/pkg/errors"
	"gorm.io/gorm"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service exposes agent CRUD. Agents with visit history cannot be deleted,
// only deactivated.
type Service interface {
	Create(ctx context.Context, input CreateInput) (*models.Agent, error)
	Get(ctx context.Context, id int64) (*models.Agent, error)
	List(ctx context.Context, filters ListFilters) ([]models.Agent, error)
	Update(ctx context.Context, id int64, input UpdateInput) (*models.Agent, error)
	Deactivate(ctx context.Context, id int64) (*models.Agent, error)
	Delete(ctx context.Context, id int64) error
}

type service struct {
	repo Repository
	tx   txRunner
}

func NewService(repo Repository, tx txRunner) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("agents repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	return &service{repo: repo, tx: tx}, nil
}

func (s *service) Create(ctx context.Context, input CreateInput) (*models.Agent, error) {
	name := strings.TrimSpace(input.Name)
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name required")
	}
	if email == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "email required")
	}

	agent, err := s.repo.Create(ctx, &models.Agent{
		Name:   name,
		Email:  email,
		Phone:  input.Phone,
		Team:   input.Team,
		Active: true,
	})
	if err != nil {
		if pkgdb.IsUniqueViolation(err) {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "email already in use")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create agent")
	}
	return agent, nil
}

func (s *service) Get(ctx context.Context, id int64) (*models.Agent, error) {
	return s.find(ctx, id)
}

func (s *service) List(ctx context.Context, filters ListFilters) ([]models.Agent, error) {
	agents, err := s.repo.List(ctx, filters)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list agents")
	}
	return agents, nil
}

func (s *service) Update(ctx context.Context, id int64, input UpdateInput) (*models.Agent, error) {
	if _, err := s.find(ctx, id); err != nil {
		return nil, err
	}

	updates := map[string]any{}
	if input.Name != nil {
		if strings.TrimSpace(*input.Name) == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "name cannot be empty")
		}
		updates["name"] = strings.TrimSpace(*input.Name)
	}
	if input.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*input.Email))
		if email == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "email cannot be empty")
		}
		updates["email"] = email
	}
	if input.Phone != nil {
		updates["phone"] = *input.Phone
	}
	if input.Team != nil {
		updates["team"] = *input.Team
	}
	if input.Active != nil {
		updates["active"] = *input.Active
	}
	if len(updates) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "no fields to update")
	}

	if err := s.repo.Update(ctx, id, updates); err != nil {
		if pkgdb.IsUniqueViolation(err) {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "email already in use")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update agent")
	}
	return s.find(ctx, id)
}

// Deactivate takes the agent out of distribution and assignment rotation
// without touching their history.
func (s *service) Deactivate(ctx context.Context, id int64) (*models.Agent, error) {
	if _, err := s.find(ctx, id); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, id, map[string]any{"active": false}); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "deactivate agent")
	}
	return s.find(ctx, id)
}

// Delete removes an agent with no visit history. Their properties and leads
// revert to unassigned and their prefix routes are dropped.
func (s *service) Delete(ctx context.Context, id int64) error {
	if _, err := s.find(ctx, id); err != nil {
		return err
	}

	visitCount, err := s.repo.CountVisits(ctx, id)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count visits")
	}
	if visitCount > 0 {
		return pkgerrors.New(pkgerrors.CodeStateConflict, "agent has visit history; deactivate instead")
	}

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		if err := repo.DetachOwnership(ctx, id); err != nil {
			return fmt.Errorf("detach ownership: %w", err)
		}
		if err := repo.Delete(ctx, id); err != nil {
			return fmt.Errorf("delete agent: %w", err)
		}
		return nil
	})
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete agent")
	}
	return nil
}

func (s *service) find(ctx context.Context, id int64) (*models.Agent, error) {
	agent, err := s.repo.Find(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "agent not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load agent")
	}
	return agent, nil
}
