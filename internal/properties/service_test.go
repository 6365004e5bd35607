package properties

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tvindima/crm-plus-sub000/internal/assignment"
	"github.com/tvindima/crm-plus-sub000/internal/visits"
	"github.com/tvindima/crm-plus-sub000/pkg/db/models"
	"github.com/tvindima/crm-plus-sub000/pkg/enums"
	pkgerrors "github.com/tvindima/crm-plus-sub000/pkg/errors"
	"github.com/tvindima/crm-plus-sub000/pkg/pagination"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupPropertiesTestDB(t *testing.T) *gorm.DB {
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

type gormTxRunner struct {
	db *gorm.DB
}

func (r gormTxRunner) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return r.db.Transaction(fn)
}

type stubResolver struct {
	matches map[string]*assignment.Match
}

func (s *stubResolver) Resolve(ctx context.Context, reference string) (*assignment.Match, error) {
	return s.matches[assignment.ExtractPrefix(reference)], nil
}

func newPropertyService(t *testing.T, db *gorm.DB, resolver Resolver) Service {
	t.Helper()
	svc, err := NewService(NewRepository(db), visits.NewRepository(db), resolver, gormTxRunner{db: db})
	require.NoError(t, err)
	return svc
}

func seedAgent(t *testing.T, db *gorm.DB, name string) *models.Agent {
	t.Helper()
	agent := &models.Agent{Name: name, Email: name + "@crmplus.test", Active: true}
	require.NoError(t, db.Create(agent).Error)
	return agent
}

func TestCreatePropertyResolvesOwnerFromPrefix(t *testing.T) {
	db := setupPropertiesTestDB(t)
	agent := seedAgent(t, db, "ana")
	resolver := &stubResolver{matches: map[string]*assignment.Match{
		"PR": {AgentID: agent.ID, Prefix: "PR", Kind: enums.PrefixRouteKindDirect},
	}}
	svc := newPropertyService(t, db, resolver)

	created, err := svc.Create(context.Background(), CreateInput{
		Reference: "pr123",
		Title:     "T3 Alvalade",
		Price:     decimal.NewFromInt(380000),
	})
	require.NoError(t, err)
	assert.Equal(t, "PR123", created.Reference)
	require.NotNil(t, created.AgentID)
	assert.Equal(t, agent.ID, *created.AgentID)

	// no routing rule leaves the listing unowned
	unrouted, err := svc.Create(context.Background(), CreateInput{
		Reference: "XX900",
		Title:     "Moradia Sintra",
		Price:     decimal.NewFromInt(550000),
	})
	require.NoError(t, err)
	assert.Nil(t, unrouted.AgentID)
}

func TestCreatePropertyExplicitAgentWins(t *testing.T) {
	db := setupPropertiesTestDB(t)
	agent := seedAgent(t, db, "ana")
	other := seedAgent(t, db, "rui")
	resolver := &stubResolver{matches: map[string]*assignment.Match{
		"PR": {AgentID: other.ID, Prefix: "PR", Kind: enums.PrefixRouteKindDirect},
	}}
	svc := newPropertyService(t, db, resolver)

	created, err := svc.Create(context.Background(), CreateInput{
		Reference: "PR500",
		Title:     "Estúdio Baixa",
		Price:     decimal.NewFromInt(210000),
		AgentID:   &agent.ID,
	})
	require.NoError(t, err)
	require.NotNil(t, created.AgentID)
	assert.Equal(t, agent.ID, *created.AgentID)
}

func TestCreatePropertyDuplicateReference(t *testing.T) {
	db := setupPropertiesTestDB(t)
	svc := newPropertyService(t, db, nil)
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateInput{Reference: "PR100", Title: "A", Price: decimal.NewFromInt(1)})
	require.NoError(t, err)

	_, err = svc.Create(ctx, CreateInput{Reference: "PR100", Title: "B", Price: decimal.NewFromInt(2)})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeConflict, pkgerrors.As(err).Code())
}

func TestUpdatePropertyLockVersion(t *testing.T) {
	db := setupPropertiesTestDB(t)
	svc := newPropertyService(t, db, nil)
	ctx := context.Background()

	created, err := svc.Create(ctx, CreateInput{Reference: "PR100", Title: "A", Price: decimal.NewFromInt(100)})
	require.NoError(t, err)

	stale := created.LockVersion
	title := "A renovated"
	updated, err := svc.Update(ctx, created.ID, UpdateInput{Title: &title, LockVersion: &stale})
	require.NoError(t, err)
	assert.Equal(t, "A renovated", updated.Title)
	assert.Equal(t, stale+1, updated.LockVersion)

	other := "competing write"
	_, err = svc.Update(ctx, created.ID, UpdateInput{Title: &other, LockVersion: &stale})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeConflict, pkgerrors.As(err).Code())
}

func TestMarkSoldCancelsActiveVisits(t *testing.T) {
	db := setupPropertiesTestDB(t)
	svc := newPropertyService(t, db, nil)
	ctx := context.Background()

	agent := seedAgent(t, db, "ana")
	created, err := svc.Create(ctx, CreateInput{Reference: "PR100", Title: "A", Price: decimal.NewFromInt(100)})
	require.NoError(t, err)

	open := &models.Visit{PropertyID: &created.ID, AgentID: agent.ID, Status: enums.VisitStatusConfirmed, ScheduledAt: time.Now()}
	done := &models.Visit{PropertyID: &created.ID, AgentID: agent.ID, Status: enums.VisitStatusCompleted, ScheduledAt: time.Now()}
	require.NoError(t, db.Create(open).Error)
	require.NoError(t, db.Create(done).Error)

	sold := enums.PropertyStatusSold
	_, err = svc.Update(ctx, created.ID, UpdateInput{Status: &sold})
	require.NoError(t, err)

	var reloadedOpen, reloadedDone models.Visit
	require.NoError(t, db.First(&reloadedOpen, open.ID).Error)
	require.NoError(t, db.First(&reloadedDone, done.ID).Error)
	assert.Equal(t, enums.VisitStatusCancelled, reloadedOpen.Status)
	assert.Equal(t, enums.VisitStatusCompleted, reloadedDone.Status)
}

func TestDeletePropertyDetachesLeads(t *testing.T) {
	db := setupPropertiesTestDB(t)
	svc := newPropertyService(t, db, nil)
	ctx := context.Background()

	created, err := svc.Create(ctx, CreateInput{Reference: "PR100", Title: "A", Price: decimal.NewFromInt(100)})
	require.NoError(t, err)

	lead := &models.Lead{Name: "Bruno", Status: enums.LeadStatusNew, Source: enums.LeadSourceWebsite, PropertyID: &created.ID}
	require.NoError(t, db.Create(lead).Error)

	require.NoError(t, svc.Delete(ctx, created.ID))

	var reloaded models.Lead
	require.NoError(t, db.First(&reloaded, lead.ID).Error)
	assert.Nil(t, reloaded.PropertyID)

	_, err = svc.Get(ctx, created.ID)
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeNotFound, pkgerrors.As(err).Code())
}

func TestDeletePropertyKeepsVisitHistory(t *testing.T) {
	db := setupPropertiesTestDB(t)
	svc := newPropertyService(t, db, nil)
	ctx := context.Background()

	agent := seedAgent(t, db, "ana")
	created, err := svc.Create(ctx, CreateInput{Reference: "PR100", Title: "A", Price: decimal.NewFromInt(100)})
	require.NoError(t, err)

	open := &models.Visit{PropertyID: &created.ID, AgentID: agent.ID, Status: enums.VisitStatusConfirmed, ScheduledAt: time.Now()}
	done := &models.Visit{PropertyID: &created.ID, AgentID: agent.ID, Status: enums.VisitStatusCompleted, ScheduledAt: time.Now()}
	require.NoError(t, db.Create(open).Error)
	require.NoError(t, db.Create(done).Error)

	require.NoError(t, svc.Delete(ctx, created.ID))

	var reloadedOpen, reloadedDone models.Visit
	require.NoError(t, db.First(&reloadedOpen, open.ID).Error)
	require.NoError(t, db.First(&reloadedDone, done.ID).Error)

	assert.Equal(t, enums.VisitStatusCancelled, reloadedOpen.Status)
	assert.Nil(t, reloadedOpen.PropertyID)

	// completed visits keep their feedback value as history
	assert.Equal(t, enums.VisitStatusCompleted, reloadedDone.Status)
	assert.Nil(t, reloadedDone.PropertyID)
}

func TestListPropertiesFilters(t *testing.T) {
	db := setupPropertiesTestDB(t)
	svc := newPropertyService(t, db, nil)
	ctx := context.Background()

	agent := seedAgent(t, db, "ana")
	_, err := svc.Create(ctx, CreateInput{Reference: "PR1", Title: "cheap", Price: decimal.NewFromInt(100000), AgentID: &agent.ID})
	require.NoError(t, err)
	_, err = svc.Create(ctx, CreateInput{Reference: "PR2", Title: "pricey", Price: decimal.NewFromInt(900000)})
	require.NoError(t, err)

	min := decimal.NewFromInt(500000)
	listings, _, err := svc.List(ctx, ListFilters{MinPrice: &min}, pagination.Params{})
	require.NoError(t, err)
	require.Len(t, listings, 1)
	assert.Equal(t, "PR2", listings[0].Reference)

	listings, _, err = svc.List(ctx, ListFilters{AgentID: &agent.ID}, pagination.Params{})
	require.NoError(t, err)
	require.Len(t, listings, 1)
	assert.Equal(t, "PR1", listings[0].Reference)
}

func TestGetByReference(t *testing.T) {
	db := setupPropertiesTestDB(t)
	svc := newPropertyService(t, db, nil)
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateInput{Reference: "PR100", Title: "A", Price: decimal.NewFromInt(100)})
	require.NoError(t, err)

	found, err := svc.GetByReference(ctx, "pr100")
	require.NoError(t, err)
	assert.Equal(t, "PR100", found.Reference)

	_, err = svc.GetByReference(ctx, "ZZ1")
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeNotFound, pkgerrors.As(err).Code())
}
