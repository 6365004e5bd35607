package leads

import (
	"context"
	"fmt"
	"strings"

	"github.com/tvindima/crm-plus-sub000/pkg/db/models"
	"github.com/tvindima/crm-plus-sub000/pkg/enums"
	pkgerrors "github.com/tvindima/crm-plus-sub000/pkg/errors"
	"github.com/tvindima/crm-plus-sub000/pkg/pagination"
	"gorm.io/gorm"
)

// transitionAllowed enforces forward-only funnel movement. Any non-terminal
// lead may be marked lost; stage skipping is legal.
func transitionAllowed(from, to enums.LeadStatus) bool {
	if from.IsTerminal() {
		return false
	}
	if to == enums.LeadStatusLost {
		return true
	}
	fromIdx, toIdx := from.FunnelIndex(), to.FunnelIndex()
	return fromIdx >= 0 && toIdx > fromIdx
}

// Service exposes lead CRUD and funnel movement.
type Service interface {
	Create(ctx context.Context, input CreateInput) (*models.Lead, error)
	CreateFromWebsite(ctx context.Context, input WebsiteInput) (*models.Lead, error)
	Get(ctx context.Context, id int64) (*models.Lead, error)
	List(ctx context.Context, filters ListFilters, params pagination.Params) ([]models.Lead, string, error)
	Update(ctx context.Context, id int64, input UpdateInput) (*models.Lead, error)
	UpdateStatus(ctx context.Context, id int64, input StatusInput) (*models.Lead, error)
	Assign(ctx context.Context, id, agentID int64) (*models.Lead, error)
	Delete(ctx context.Context, id int64) error
}

type service struct {
	repo Repository
}

// NewService builds a lead service.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("leads repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) Create(ctx context.Context, input CreateInput) (*models.Lead, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name required")
	}
	if !input.Source.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid lead source")
	}
	if input.PropertyID != nil {
		if ok, err := s.repo.PropertyExists(ctx, *input.PropertyID); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check property")
		} else if !ok {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "property not found")
		}
	}
	if input.AgentID != nil {
		if ok, err := s.repo.AgentExists(ctx, *input.AgentID); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check agent")
		} else if !ok {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "agent not found")
		}
	}

	lead := &models.Lead{
		Name:       strings.TrimSpace(input.Name),
		Email:      input.Email,
		Phone:      input.Phone,
		Message:    input.Message,
		Status:     enums.LeadStatusNew,
		Source:     input.Source,
		PropertyID: input.PropertyID,
		AgentID:    input.AgentID,
	}
	created, err := s.repo.Create(ctx, lead)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create lead")
	}
	return created, nil
}

// CreateFromWebsite handles the public contact form. A lead tied to a
// property inherits that property's agent so nobody has to triage it.
func (s *service) CreateFromWebsite(ctx context.Context, input WebsiteInput) (*models.Lead, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name required")
	}

	var agentID *int64
	if input.PropertyID != nil {
		propertyAgent, found, err := s.repo.PropertyAgent(ctx, *input.PropertyID)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load property agent")
		}
		if !found {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "property not found")
		}
		agentID = propertyAgent
	}

	lead := &models.Lead{
		Name:       strings.TrimSpace(input.Name),
		Email:      input.Email,
		Phone:      input.Phone,
		Message:    input.Message,
		Status:     enums.LeadStatusNew,
		Source:     enums.LeadSourceWebsite,
		PropertyID: input.PropertyID,
		AgentID:    agentID,
	}
	created, err := s.repo.Create(ctx, lead)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create lead")
	}
	return created, nil
}

func (s *service) Get(ctx context.Context, id int64) (*models.Lead, error) {
	return s.find(ctx, id)
}

func (s *service) List(ctx context.Context, filters ListFilters, params pagination.Params) ([]models.Lead, string, error) {
	leads, next, err := s.repo.List(ctx, filters, params)
	if err != nil {
		return nil, "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list leads")
	}
	return leads, next, nil
}

func (s *service) Update(ctx context.Context, id int64, input UpdateInput) (*models.Lead, error) {
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
		updates["email"] = *input.Email
	}
	if input.Phone != nil {
		updates["phone"] = *input.Phone
	}
	if input.Message != nil {
		updates["message"] = *input.Message
	}
	if input.Source != nil {
		if !input.Source.IsValid() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid lead source")
		}
		updates["source"] = *input.Source
	}
	if input.PropertyID != nil {
		if ok, err := s.repo.PropertyExists(ctx, *input.PropertyID); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check property")
		} else if !ok {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "property not found")
		}
		updates["property_id"] = *input.PropertyID
	}
	if len(updates) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "no fields to update")
	}

	return s.applyVersioned(ctx, id, input.LockVersion, updates)
}

// UpdateStatus moves a lead through the funnel, rejecting backward moves and
// writes against terminal leads.
func (s *service) UpdateStatus(ctx context.Context, id int64, input StatusInput) (*models.Lead, error) {
	if !input.Status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid lead status")
	}
	lead, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if !transitionAllowed(lead.Status, input.Status) {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict,
			fmt.Sprintf("cannot move lead from %s to %s", lead.Status, input.Status))
	}

	return s.applyVersioned(ctx, id, input.LockVersion, map[string]any{"status": input.Status})
}

func (s *service) Assign(ctx context.Context, id, agentID int64) (*models.Lead, error) {
	if _, err := s.find(ctx, id); err != nil {
		return nil, err
	}
	if ok, err := s.repo.AgentExists(ctx, agentID); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check agent")
	} else if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "agent not found")
	}
	return s.applyVersioned(ctx, id, nil, map[string]any{"agent_id": agentID})
}

func (s *service) Delete(ctx context.Context, id int64) error {
	if _, err := s.find(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete lead")
	}
	return nil
}

func (s *service) applyVersioned(ctx context.Context, id int64, expectedVersion *int64, updates map[string]any) (*models.Lead, error) {
	applied, err := s.repo.UpdateVersioned(ctx, id, expectedVersion, updates)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update lead")
	}
	if !applied {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "lead was modified by another request")
	}
	return s.find(ctx, id)
}

func (s *service) find(ctx context.Context, id int64) (*models.Lead, error) {
	lead, err := s.repo.Find(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "lead not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load lead")
	}
	return lead, nil
}
