package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tvindima/crm-plus-sub000/internal/visits"
	"github.com/tvindima/crm-plus-sub000/pkg/db/models"
	"github.com/tvindima/crm-plus-sub000/pkg/enums"
	pkgerrors "github.com/tvindima/crm-plus-sub000/pkg/errors"
)

type stubVisitsService struct {
	visits.Service

	checkIn  func(ctx context.Context, id int64, input visits.CheckInput) (*models.Visit, error)
	checkOut func(ctx context.Context, id int64, input visits.CheckInput) (*models.Visit, error)
	confirm  func(ctx context.Context, id int64) (*models.Visit, error)
}

func (s *stubVisitsService) CheckIn(ctx context.Context, id int64, input visits.CheckInput) (*models.Visit, error) {
	return s.checkIn(ctx, id, input)
}

func (s *stubVisitsService) CheckOut(ctx context.Context, id int64, input visits.CheckInput) (*models.Visit, error) {
	return s.checkOut(ctx, id, input)
}

func (s *stubVisitsService) Confirm(ctx context.Context, id int64) (*models.Visit, error) {
	return s.confirm(ctx, id)
}

func visitsTestRouter(svc visits.Service) http.Handler {
	router := chi.NewRouter()
	router.Post("/api/v1/visits/{visitID}/confirm", VisitsConfirm(svc, nil))
	router.Post("/api/v1/visits/{visitID}/check-in", VisitsCheckIn(svc, nil))
	router.Post("/api/v1/visits/{visitID}/check-out", VisitsCheckOut(svc, nil))
	return router
}

func TestVisitsCheckInPassesGPS(t *testing.T) {
	var seenID int64
	var seenInput visits.CheckInput
	svc := &stubVisitsService{
		checkIn: func(ctx context.Context, id int64, input visits.CheckInput) (*models.Visit, error) {
			seenID = id
			seenInput = input
			return &models.Visit{ID: id, Status: enums.VisitStatusInProgress}, nil
		},
	}

	body := `{"point":{"lat":38.7369,"lng":-9.1427,"accuracy":8.5}}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/visits/12/check-in", strings.NewReader(body))
	rec := httptest.NewRecorder()
	visitsTestRouter(svc).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(12), seenID)
	assert.InDelta(t, 38.7369, seenInput.Point.Lat, 0.0001)
	assert.InDelta(t, -9.1427, seenInput.Point.Lng, 0.0001)
	require.NotNil(t, seenInput.Point.Accuracy)
	assert.InDelta(t, 8.5, *seenInput.Point.Accuracy, 0.0001)

	var envelope struct {
		Data models.Visit `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.Equal(t, enums.VisitStatusInProgress, envelope.Data.Status)
}

func TestVisitsCheckOutBeforeCheckIn(t *testing.T) {
	svc := &stubVisitsService{
		checkOut: func(ctx context.Context, id int64, input visits.CheckInput) (*models.Visit, error) {
			return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "visit has no check-in")
		},
	}

	body := `{"point":{"lat":38.7,"lng":-9.1}}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/visits/12/check-out", strings.NewReader(body))
	rec := httptest.NewRecorder()
	visitsTestRouter(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestVisitsConfirmInvalidID(t *testing.T) {
	svc := &stubVisitsService{
		confirm: func(ctx context.Context, id int64) (*models.Visit, error) {
			t.Fatal("service should not be called")
			return nil, nil
		},
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/visits/abc/confirm", nil)
	rec := httptest.NewRecorder()
	visitsTestRouter(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
