package repository

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"seniorcare-lead-api/internal/database"
	"seniorcare-lead-api/internal/domain"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
		Logger:                                   logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, database.AutoMigrate(db))
	return db
}

type fixture struct {
	db      *gorm.DB
	spaceID uuid.UUID
	user    domain.User
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := setupTestDB(t)
	space := domain.Space{Name: "Maple Grove " + uuid.NewString()[:8]}
	require.NoError(t, db.Create(&space).Error)
	user := domain.User{SpaceID: space.ID, FirstName: "Dana", LastName: "Reyes", Email: uuid.NewString() + "@example.com", Enabled: true}
	require.NoError(t, db.Create(&user).Error)
	return &fixture{db: db, spaceID: space.ID, user: user}
}

func (f *fixture) lead(t *testing.T, first string, mutate ...func(*domain.Lead)) domain.Lead {
	t.Helper()
	lead := domain.Lead{
		SpaceID:            f.spaceID,
		FirstName:          first,
		LastName:           "Walker",
		OwnerID:            f.user.ID,
		State:              domain.LeadStateOpen,
		ResponsibleEmail:   "family@example.com",
		InitialContactDate: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
	}
	for _, m := range mutate {
		m(&lead)
	}
	require.NoError(t, f.db.Create(&lead).Error)
	return lead
}

func count(t *testing.T, db *gorm.DB, model interface{}, where string, args ...interface{}) int64 {
	t.Helper()
	var n int64
	q := db.Model(model)
	if where != "" {
		q = q.Where(where, args...)
	}
	require.NoError(t, q.Count(&n).Error)
	return n
}

func uuidPtr(id uuid.UUID) *uuid.UUID {
	return &id
}
