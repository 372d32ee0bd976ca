package database

import (
	"database/sql"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// mockMetricsRecorder is a mock implementation of MetricsRecorder for testing
type mockMetricsRecorder struct {
	mu      sync.Mutex
	queries []queryRecord
	dbStats []sql.DBStats
}

type queryRecord struct {
	operation string
	table     string
	duration  time.Duration
	err       error
}

func (m *mockMetricsRecorder) RecordDBQuery(operation, table string, duration time.Duration, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.queries = append(m.queries, queryRecord{operation: operation, table: table, duration: duration, err: err})
}

func (m *mockMetricsRecorder) UpdateDBStats(stats interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if dbStats, ok := stats.(sql.DBStats); ok {
		m.dbStats = append(m.dbStats, dbStats)
	}
}

func (m *mockMetricsRecorder) statsCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.dbStats)
}

func (m *mockMetricsRecorder) reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.queries = nil
}

// note is a small model with a text id so sqlite needs no uuid support
type note struct {
	ID        string `gorm:"type:text;primaryKey"`
	Body      string `gorm:"type:varchar(255)"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (note) TableName() string {
	return "notes"
}

func setupNoteDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&note{}))
	return db
}

func TestRegisterMetricsCallbacks_RecordsEachOperation(t *testing.T) {
	db := setupNoteDB(t)
	recorder := &mockMetricsRecorder{}
	RegisterMetricsCallbacks(db, recorder)

	n := note{ID: uuid.NewString(), Body: "first call"}
	require.NoError(t, db.Create(&n).Error)

	var loaded note
	require.NoError(t, db.First(&loaded, "id = ?", n.ID).Error)
	require.NoError(t, db.Model(&n).Update("Body", "follow up").Error)
	require.NoError(t, db.Delete(&n).Error)

	require.Len(t, recorder.queries, 4)
	for i, op := range []string{"insert", "select", "update", "delete"} {
		assert.Equal(t, op, recorder.queries[i].operation)
		assert.Equal(t, "notes", recorder.queries[i].table)
		assert.Greater(t, recorder.queries[i].duration, time.Duration(0))
		assert.NoError(t, recorder.queries[i].err)
	}
}

func TestRegisterMetricsCallbacks_RecordsErrors(t *testing.T) {
	db := setupNoteDB(t)
	recorder := &mockMetricsRecorder{}
	RegisterMetricsCallbacks(db, recorder)

	t.Run("select miss", func(t *testing.T) {
		recorder.reset()
		var loaded note
		require.Error(t, db.First(&loaded, "id = ?", uuid.NewString()).Error)
		require.Len(t, recorder.queries, 1)
		assert.Equal(t, "select", recorder.queries[0].operation)
		assert.Error(t, recorder.queries[0].err)
	})

	t.Run("duplicate insert", func(t *testing.T) {
		id := uuid.NewString()
		require.NoError(t, db.Create(&note{ID: id}).Error)
		recorder.reset()
		require.Error(t, db.Create(&note{ID: id}).Error)
		require.Len(t, recorder.queries, 1)
		assert.Equal(t, "insert", recorder.queries[0].operation)
		assert.Error(t, recorder.queries[0].err)
	})
}

func TestRegisterMetricsCallbacks_InsideTransaction(t *testing.T) {
	db := setupNoteDB(t)
	recorder := &mockMetricsRecorder{}
	RegisterMetricsCallbacks(db, recorder)

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&note{ID: uuid.NewString()}).Error; err != nil {
			return err
		}
		return tx.Create(&note{ID: uuid.NewString()}).Error
	})
	require.NoError(t, err)

	require.Len(t, recorder.queries, 2)
	assert.Equal(t, "insert", recorder.queries[0].operation)
	assert.Equal(t, "insert", recorder.queries[1].operation)
}

func TestStartDBStatsCollector(t *testing.T) {
	db := setupNoteDB(t)
	recorder := &mockMetricsRecorder{}

	done := StartDBStatsCollector(db, recorder, 10*time.Millisecond)
	defer close(done)

	assert.Eventually(t, func() bool {
		return recorder.statsCalls() > 0
	}, time.Second, 10*time.Millisecond)
}
