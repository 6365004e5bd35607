package controllers

import (
	"context"
	"net/http"
	"strings"

	"github.com/tvindima/crm-plus-sub000/api/responses"
	"github.com/tvindima/crm-plus-sub000/api/validators"
	"github.com/tvindima/crm-plus-sub000/internal/visits"
	"github.com/tvindima/crm-plus-sub000/pkg/db/models"
	"github.com/tvindima/crm-plus-sub000/pkg/enums"
	pkgerrors "github.com/tvindima/crm-plus-sub000/pkg/errors"
	"github.com/tvindima/crm-plus-sub000/pkg/logger"
)

func VisitsList(svc visits.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filters, err := visitFilters(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		params, err := pageParams(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		listed, next, err := svc.List(r.Context(), filters, params)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"visits": listed, "next_cursor": next})
	}
}

func visitFilters(r *http.Request) (visits.ListFilters, error) {
	filters := visits.ListFilters{}

	if raw := strings.TrimSpace(r.URL.Query().Get("status")); raw != "" {
		status, err := enums.ParseVisitStatus(raw)
		if err != nil {
			return filters, pkgerrors.New(pkgerrors.CodeValidation, "invalid visit status")
		}
		filters.Status = &status
	}

	agentID, err := validators.ParseQueryInt64(r, "agent_id")
	if err != nil {
		return filters, err
	}
	filters.AgentID = agentID

	propertyID, err := validators.ParseQueryInt64(r, "property_id")
	if err != nil {
		return filters, err
	}
	filters.PropertyID = propertyID

	leadID, err := validators.ParseQueryInt64(r, "lead_id")
	if err != nil {
		return filters, err
	}
	filters.LeadID = leadID

	from, err := queryTime(r, "from")
	if err != nil {
		return filters, err
	}
	filters.From = from

	to, err := queryTime(r, "to")
	if err != nil {
		return filters, err
	}
	filters.To = to

	return filters, nil
}

func VisitsGet(svc visits.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "visitID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		visit, err := svc.Get(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, visit)
	}
}

func VisitsSchedule(svc visits.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input visits.ScheduleInput
		if err := validators.DecodeJSONBody(r, &input); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		created, err := svc.Schedule(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, created)
	}
}

func VisitsConfirm(svc visits.Service, logg *logger.Logger) http.HandlerFunc {
	return visitTransition(func(ctx context.Context, id int64) (*models.Visit, error) {
		return svc.Confirm(ctx, id)
	}, logg)
}

func VisitsCancel(svc visits.Service, logg *logger.Logger) http.HandlerFunc {
	return visitTransition(func(ctx context.Context, id int64) (*models.Visit, error) {
		return svc.Cancel(ctx, id)
	}, logg)
}

func VisitsMarkNoShow(svc visits.Service, logg *logger.Logger) http.HandlerFunc {
	return visitTransition(func(ctx context.Context, id int64) (*models.Visit, error) {
		return svc.MarkNoShow(ctx, id)
	}, logg)
}

func visitTransition(op func(ctx context.Context, id int64) (*models.Visit, error), logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "visitID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		visit, err := op(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, visit)
	}
}

func VisitsCheckIn(svc visits.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "visitID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var input visits.CheckInput
		if err := validators.DecodeJSONBody(r, &input); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		visit, err := svc.CheckIn(r.Context(), id, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, visit)
	}
}

func VisitsCheckOut(svc visits.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "visitID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var input visits.CheckInput
		if err := validators.DecodeJSONBody(r, &input); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		visit, err := svc.CheckOut(r.Context(), id, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, visit)
	}
}

func VisitsSubmitFeedback(svc visits.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "visitID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var input visits.FeedbackInput
		if err := validators.DecodeJSONBody(r, &input); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		visit, err := svc.SubmitFeedback(r.Context(), id, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, visit)
	}
}
