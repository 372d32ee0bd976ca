package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func TestAutoMigrate_CreatesEveryTable(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{DisableForeignKeyConstraintWhenMigrating: true})
	require.NoError(t, err)

	require.NoError(t, AutoMigrate(db))

	for _, m := range allModels() {
		assert.True(t, db.Migrator().HasTable(m.tableName), m.tableName)
	}
	for _, join := range []string{"lead_facilities", "lead_hobbies", "lead_qualifications", "outreach_contacts", "outreach_participants"} {
		assert.True(t, db.Migrator().HasTable(join), join)
	}
}

func TestSafeAutoMigrateWithRetry_Idempotent(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{DisableForeignKeyConstraintWhenMigrating: true})
	require.NoError(t, err)

	require.NoError(t, SafeAutoMigrateWithRetry(db, zap.NewNop(), 1))
	require.NoError(t, SafeAutoMigrateWithRetry(db, zap.NewNop(), 1))
}
