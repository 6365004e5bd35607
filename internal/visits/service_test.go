package visits

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tvindima/crm-plus-sub000/pkg/db/models"
	"github.com/tvindima/crm-plus-sub000/pkg/enums"
	pkgerrors "github.com/tvindima/crm-plus-sub000/pkg/errors"
	"github.com/tvindima/crm-plus-sub000/pkg/pagination"
	"github.com/tvindima/crm-plus-sub000/pkg/types"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var visitTestNow = time.Date(2026, 4, 2, 9, 0, 0, 0, time.UTC)

func setupVisitsTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	ddl := []string{`
CREATE TABLE IF NOT EXISTS agents (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  name TEXT NOT NULL,
  email TEXT NOT NULL UNIQUE,
  phone TEXT,
  team TEXT,
  active INTEGER NOT NULL DEFAULT 1,
  created_at DATETIME,
  updated_at DATETIME
);`, `
CREATE TABLE IF NOT EXISTS properties (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  reference TEXT NOT NULL UNIQUE,
  title TEXT NOT NULL,
  price NUMERIC NOT NULL,
  area_sqm REAL,
  location TEXT,
  latitude REAL,
  longitude REAL,
  status TEXT NOT NULL DEFAULT 'available',
  agent_id INTEGER,
  lock_version INTEGER NOT NULL DEFAULT 0,
  created_at DATETIME,
  updated_at DATETIME
);`, `
CREATE TABLE IF NOT EXISTS leads (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  name TEXT NOT NULL,
  email TEXT,
  phone TEXT,
  message TEXT,
  status TEXT NOT NULL DEFAULT 'new',
  source TEXT NOT NULL DEFAULT 'other',
  property_id INTEGER,
  agent_id INTEGER,
  lock_version INTEGER NOT NULL DEFAULT 0,
  created_at DATETIME,
  updated_at DATETIME
);`, `
CREATE TABLE IF NOT EXISTS visits (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  property_id INTEGER,
  lead_id INTEGER,
  agent_id INTEGER NOT NULL,
  status TEXT NOT NULL DEFAULT 'scheduled',
  scheduled_at DATETIME NOT NULL,
  checked_in_at DATETIME,
  check_in_lat REAL,
  check_in_lng REAL,
  check_in_accuracy REAL,
  checked_out_at DATETIME,
  check_out_lat REAL,
  check_out_lng REAL,
  check_out_accuracy REAL,
  rating INTEGER,
  interest_level TEXT,
  feedback_notes TEXT,
  will_return INTEGER,
  created_at DATETIME,
  updated_at DATETIME
);`}
	for _, stmt := range ddl {
		require.NoError(t, db.Exec(stmt).Error)
	}
	return db
}

type fixture struct {
	db       *gorm.DB
	svc      Service
	property *models.Property
	agent    *models.Agent
	lead     *models.Lead
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := setupVisitsTestDB(t)

	svc, err := NewService(NewRepository(db), func() time.Time { return visitTestNow })
	require.NoError(t, err)

	agent := &models.Agent{Name: "Ana Matos", Email: "ana@crmplus.test", Active: true}
	require.NoError(t, db.Create(agent).Error)
	property := &models.Property{
		Reference: "PR100",
		Title:     "T2 Campo de Ourique",
		Price:     decimal.NewFromInt(420000),
		Status:    enums.PropertyStatusAvailable,
	}
	require.NoError(t, db.Create(property).Error)
	lead := &models.Lead{Name: "Bruno Silva", Status: enums.LeadStatusQualified, Source: enums.LeadSourceWebsite}
	require.NoError(t, db.Create(lead).Error)

	return &fixture{db: db, svc: svc, property: property, agent: agent, lead: lead}
}

func (f *fixture) schedule(t *testing.T) *models.Visit {
	t.Helper()
	visit, err := f.svc.Schedule(context.Background(), ScheduleInput{
		PropertyID:  f.property.ID,
		LeadID:      &f.lead.ID,
		AgentID:     f.agent.ID,
		ScheduledAt: visitTestNow.Add(24 * time.Hour),
	})
	require.NoError(t, err)
	return visit
}

func point(lat, lng float64) types.GeoPoint {
	accuracy := 8.5
	return types.GeoPoint{Lat: lat, Lng: lng, Accuracy: &accuracy}
}

func TestScheduleCreatesScheduledVisit(t *testing.T) {
	f := newFixture(t)

	visit := f.schedule(t)
	assert.Equal(t, enums.VisitStatusScheduled, visit.Status)
	require.NotNil(t, visit.PropertyID)
	assert.Equal(t, f.property.ID, *visit.PropertyID)
	assert.Equal(t, f.agent.ID, visit.AgentID)
	require.NotNil(t, visit.LeadID)
	assert.Equal(t, f.lead.ID, *visit.LeadID)
}

func TestScheduleUnknownEntities(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Schedule(ctx, ScheduleInput{PropertyID: 999, AgentID: f.agent.ID, ScheduledAt: visitTestNow})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeNotFound, pkgerrors.As(err).Code())

	_, err = f.svc.Schedule(ctx, ScheduleInput{PropertyID: f.property.ID, AgentID: 999, ScheduledAt: visitTestNow})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeNotFound, pkgerrors.As(err).Code())

	missingLead := int64(999)
	_, err = f.svc.Schedule(ctx, ScheduleInput{
		PropertyID: f.property.ID, AgentID: f.agent.ID, LeadID: &missingLead, ScheduledAt: visitTestNow,
	})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeNotFound, pkgerrors.As(err).Code())
}

func TestConfirmThenCheckInThenCheckOut(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	visit := f.schedule(t)

	confirmed, err := f.svc.Confirm(ctx, visit.ID)
	require.NoError(t, err)
	assert.Equal(t, enums.VisitStatusConfirmed, confirmed.Status)

	checkInAt := time.Date(2026, 4, 2, 10, 0, 0, 0, time.UTC)
	inProgress, err := f.svc.CheckIn(ctx, visit.ID, CheckInput{Point: point(38.7223, -9.1393), At: &checkInAt})
	require.NoError(t, err)
	assert.Equal(t, enums.VisitStatusInProgress, inProgress.Status)
	require.NotNil(t, inProgress.CheckedInAt)
	assert.NotNil(t, inProgress.CheckInLat)

	checkOutAt := checkInAt.Add(45 * time.Minute)
	completed, err := f.svc.CheckOut(ctx, visit.ID, CheckInput{Point: point(38.7224, -9.1390), At: &checkOutAt})
	require.NoError(t, err)
	assert.Equal(t, enums.VisitStatusCompleted, completed.Status)

	minutes := completed.DurationActualMinutes()
	require.NotNil(t, minutes)
	assert.Equal(t, 45, *minutes)
}

func TestCheckInStraightFromScheduled(t *testing.T) {
	f := newFixture(t)
	visit := f.schedule(t)

	inProgress, err := f.svc.CheckIn(context.Background(), visit.ID, CheckInput{Point: point(38.7, -9.1)})
	require.NoError(t, err)
	assert.Equal(t, enums.VisitStatusInProgress, inProgress.Status)
	require.NotNil(t, inProgress.CheckedInAt)
	assert.True(t, inProgress.CheckedInAt.Equal(visitTestNow))
}

func TestCheckOutBeforeCheckInRejected(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	visit := f.schedule(t)

	checkInAt := time.Date(2026, 4, 2, 10, 0, 0, 0, time.UTC)
	_, err := f.svc.CheckIn(ctx, visit.ID, CheckInput{Point: point(38.7, -9.1), At: &checkInAt})
	require.NoError(t, err)

	early := checkInAt.Add(-5 * time.Minute)
	_, err = f.svc.CheckOut(ctx, visit.ID, CheckInput{Point: point(38.7, -9.1), At: &early})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
}

func TestCheckOutWithoutCheckInRejected(t *testing.T) {
	f := newFixture(t)
	visit := f.schedule(t)

	_, err := f.svc.CheckOut(context.Background(), visit.ID, CheckInput{Point: point(38.7, -9.1)})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeStateConflict, pkgerrors.As(err).Code())
}

func TestIllegalTransitionsRejected(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	visit := f.schedule(t)
	cancelled, err := f.svc.Cancel(ctx, visit.ID)
	require.NoError(t, err)
	assert.Equal(t, enums.VisitStatusCancelled, cancelled.Status)

	// cancelled is terminal
	_, err = f.svc.Confirm(ctx, visit.ID)
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeStateConflict, pkgerrors.As(err).Code())

	_, err = f.svc.CheckIn(ctx, visit.ID, CheckInput{Point: point(38.7, -9.1)})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeStateConflict, pkgerrors.As(err).Code())

	other := f.schedule(t)
	_, err = f.svc.CheckIn(ctx, other.ID, CheckInput{Point: point(38.7, -9.1)})
	require.NoError(t, err)

	// in_progress cannot go back to confirmed
	_, err = f.svc.Confirm(ctx, other.ID)
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeStateConflict, pkgerrors.As(err).Code())
}

func TestMarkNoShow(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	visit := f.schedule(t)
	_, err := f.svc.Confirm(ctx, visit.ID)
	require.NoError(t, err)

	noShow, err := f.svc.MarkNoShow(ctx, visit.ID)
	require.NoError(t, err)
	assert.Equal(t, enums.VisitStatusNoShow, noShow.Status)
	assert.False(t, noShow.IsActive())
}

func TestSubmitFeedback(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	visit := f.schedule(t)

	rating := 4
	interest := enums.InterestLevelHigh
	notes := "asked about garage access"
	willReturn := true

	// feedback before completion is rejected
	_, err := f.svc.SubmitFeedback(ctx, visit.ID, FeedbackInput{Rating: &rating})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeStateConflict, pkgerrors.As(err).Code())

	checkInAt := time.Date(2026, 4, 2, 10, 0, 0, 0, time.UTC)
	checkOutAt := checkInAt.Add(30 * time.Minute)
	_, err = f.svc.CheckIn(ctx, visit.ID, CheckInput{Point: point(38.7, -9.1), At: &checkInAt})
	require.NoError(t, err)
	_, err = f.svc.CheckOut(ctx, visit.ID, CheckInput{Point: point(38.7, -9.1), At: &checkOutAt})
	require.NoError(t, err)

	updated, err := f.svc.SubmitFeedback(ctx, visit.ID, FeedbackInput{
		Rating:        &rating,
		InterestLevel: &interest,
		Notes:         &notes,
		WillReturn:    &willReturn,
	})
	require.NoError(t, err)
	require.NotNil(t, updated.Rating)
	assert.Equal(t, 4, *updated.Rating)
	require.NotNil(t, updated.InterestLevel)
	assert.Equal(t, enums.InterestLevelHigh, *updated.InterestLevel)
	require.NotNil(t, updated.WillReturn)
	assert.True(t, *updated.WillReturn)

	badRating := 9
	_, err = f.svc.SubmitFeedback(ctx, visit.ID, FeedbackInput{Rating: &badRating})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
}

func TestListFiltersByStatusAndAgent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	v1 := f.schedule(t)
	f.schedule(t)
	_, err := f.svc.Cancel(ctx, v1.ID)
	require.NoError(t, err)

	status := enums.VisitStatusScheduled
	visits, next, err := f.svc.List(ctx, ListFilters{Status: &status}, pagination.Params{})
	require.NoError(t, err)
	assert.Empty(t, next)
	require.Len(t, visits, 1)
	assert.NotEqual(t, v1.ID, visits[0].ID)

	agentID := f.agent.ID
	visits, _, err = f.svc.List(ctx, ListFilters{AgentID: &agentID}, pagination.Params{})
	require.NoError(t, err)
	assert.Len(t, visits, 2)
}

func TestGetUnknownVisit(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Get(context.Background(), 12345)
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeNotFound, pkgerrors.As(err).Code())
}
