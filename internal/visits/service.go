package visits

import (
	"context"
	"fmt"
	"time"

	"github.com/tvindima/crm-plus-sub000/pkg/db/models"
	"github.com/tvindima/crm-plus-sub000/pkg/enums"
	pkgerrors "github.com/tvindima/crm-plus-sub000/pkg/errors"
	"github.com/tvindima/crm-plus-sub000/pkg/pagination"
	"gorm.io/gorm"
)

// allowedTransitions is the enforced lifecycle graph. Completed, cancelled and
// no_show are terminal.
var allowedTransitions = map[enums.VisitStatus][]enums.VisitStatus{
	enums.VisitStatusScheduled: {
		enums.VisitStatusConfirmed,
		enums.VisitStatusInProgress,
		enums.VisitStatusCancelled,
		enums.VisitStatusNoShow,
	},
	enums.VisitStatusConfirmed: {
		enums.VisitStatusInProgress,
		enums.VisitStatusCancelled,
		enums.VisitStatusNoShow,
	},
	enums.VisitStatusInProgress: {
		enums.VisitStatusCompleted,
		enums.VisitStatusNoShow,
		enums.VisitStatusCancelled,
	},
}

func transitionAllowed(from, to enums.VisitStatus) bool {
	for _, candidate := range allowedTransitions[from] {
		if candidate == to {
			return true
		}
	}
	return false
}

// Service drives the visit lifecycle.
type Service interface {
	Schedule(ctx context.Context, input ScheduleInput) (*models.Visit, error)
	Get(ctx context.Context, id int64) (*models.Visit, error)
	List(ctx context.Context, filters ListFilters, params pagination.Params) ([]models.Visit, string, error)
	Confirm(ctx context.Context, id int64) (*models.Visit, error)
	Cancel(ctx context.Context, id int64) (*models.Visit, error)
	MarkNoShow(ctx context.Context, id int64) (*models.Visit, error)
	CheckIn(ctx context.Context, id int64, input CheckInput) (*models.Visit, error)
	CheckOut(ctx context.Context, id int64, input CheckInput) (*models.Visit, error)
	SubmitFeedback(ctx context.Context, id int64, input FeedbackInput) (*models.Visit, error)
}

type service struct {
	repo Repository
	now  func() time.Time
}

// NewService builds a visit service. The clock is injectable for tests.
func NewService(repo Repository, now func() time.Time) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("visits repository required")
	}
	if now == nil {
		now = time.Now
	}
	return &service{repo: repo, now: now}, nil
}

func (s *service) Schedule(ctx context.Context, input ScheduleInput) (*models.Visit, error) {
	if input.ScheduledAt.IsZero() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "scheduled_at required")
	}
	if ok, err := s.repo.PropertyExists(ctx, input.PropertyID); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check property")
	} else if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "property not found")
	}
	if ok, err := s.repo.AgentExists(ctx, input.AgentID); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check agent")
	} else if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "agent not found")
	}
	if input.LeadID != nil {
		if ok, err := s.repo.LeadExists(ctx, *input.LeadID); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check lead")
		} else if !ok {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "lead not found")
		}
	}

	visit := &models.Visit{
		PropertyID:  &input.PropertyID,
		LeadID:      input.LeadID,
		AgentID:     input.AgentID,
		Status:      enums.VisitStatusScheduled,
		ScheduledAt: input.ScheduledAt,
	}
	created, err := s.repo.Create(ctx, visit)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create visit")
	}
	return created, nil
}

func (s *service) Get(ctx context.Context, id int64) (*models.Visit, error) {
	return s.find(ctx, id)
}

func (s *service) List(ctx context.Context, filters ListFilters, params pagination.Params) ([]models.Visit, string, error) {
	visits, next, err := s.repo.List(ctx, filters, params)
	if err != nil {
		return nil, "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list visits")
	}
	return visits, next, nil
}

func (s *service) Confirm(ctx context.Context, id int64) (*models.Visit, error) {
	return s.transition(ctx, id, enums.VisitStatusConfirmed, nil)
}

func (s *service) Cancel(ctx context.Context, id int64) (*models.Visit, error) {
	return s.transition(ctx, id, enums.VisitStatusCancelled, nil)
}

func (s *service) MarkNoShow(ctx context.Context, id int64) (*models.Visit, error) {
	return s.transition(ctx, id, enums.VisitStatusNoShow, nil)
}

// CheckIn stamps the arrival and moves the visit in progress.
func (s *service) CheckIn(ctx context.Context, id int64, input CheckInput) (*models.Visit, error) {
	at := s.now()
	if input.At != nil {
		at = *input.At
	}
	updates := map[string]any{
		"checked_in_at": at,
		"check_in_lat":  input.Point.Lat,
		"check_in_lng":  input.Point.Lng,
	}
	if input.Point.Accuracy != nil {
		updates["check_in_accuracy"] = *input.Point.Accuracy
	}
	return s.transition(ctx, id, enums.VisitStatusInProgress, updates)
}

// CheckOut stamps the departure and completes the visit. The departure must
// not precede the arrival.
func (s *service) CheckOut(ctx context.Context, id int64, input CheckInput) (*models.Visit, error) {
	visit, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if visit.CheckedInAt == nil {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "visit has no check-in")
	}

	at := s.now()
	if input.At != nil {
		at = *input.At
	}
	if at.Before(*visit.CheckedInAt) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "check-out precedes check-in")
	}

	updates := map[string]any{
		"checked_out_at": at,
		"check_out_lat":  input.Point.Lat,
		"check_out_lng":  input.Point.Lng,
	}
	if input.Point.Accuracy != nil {
		updates["check_out_accuracy"] = *input.Point.Accuracy
	}
	return s.transition(ctx, id, enums.VisitStatusCompleted, updates)
}

// SubmitFeedback records the survey on a completed visit.
func (s *service) SubmitFeedback(ctx context.Context, id int64, input FeedbackInput) (*models.Visit, error) {
	visit, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if visit.Status != enums.VisitStatusCompleted {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "feedback requires a completed visit")
	}
	if input.Rating != nil && (*input.Rating < 1 || *input.Rating > 5) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "rating must be between 1 and 5")
	}
	if input.InterestLevel != nil && !input.InterestLevel.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid interest level")
	}

	updates := map[string]any{}
	if input.Rating != nil {
		updates["rating"] = *input.Rating
	}
	if input.InterestLevel != nil {
		updates["interest_level"] = *input.InterestLevel
	}
	if input.Notes != nil {
		updates["feedback_notes"] = *input.Notes
	}
	if input.WillReturn != nil {
		updates["will_return"] = *input.WillReturn
	}
	if len(updates) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "no feedback fields provided")
	}
	if err := s.repo.Update(ctx, id, updates); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save feedback")
	}
	return s.find(ctx, id)
}

func (s *service) transition(ctx context.Context, id int64, target enums.VisitStatus, extra map[string]any) (*models.Visit, error) {
	visit, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if !transitionAllowed(visit.Status, target) {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict,
			fmt.Sprintf("cannot move visit from %s to %s", visit.Status, target))
	}

	updates := map[string]any{"status": target}
	for k, v := range extra {
		updates[k] = v
	}
	applied, err := s.repo.UpdateGuarded(ctx, id, visit.Status, updates)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update visit")
	}
	if !applied {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "visit changed concurrently")
	}
	return s.find(ctx, id)
}

func (s *service) find(ctx context.Context, id int64) (*models.Visit, error) {
	visit, err := s.repo.Find(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "visit not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load visit")
	}
	return visit, nil
}
