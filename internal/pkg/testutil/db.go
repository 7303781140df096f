package testutil

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/pixelcraft/studio/app/models"
	"github.com/pixelcraft/studio/internal/pkg/database"
)

// NewTestDB opens a migrated in-memory SQLite database private to the test.
// All connections share one cache and the pool is limited to a single
// connection, so concurrent writers serialize instead of failing with
// "database is locked".
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_busy_timeout=5000", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, database.Migrate(db))
	return db
}

// CreateUser persists a user with the given balance and returns it.
func CreateUser(t *testing.T, db *gorm.DB, email string, credits int) *models.User {
	t.Helper()

	u, err := models.CreateUser(strings.Split(email, "@")[0]+"-user", email, "password123")
	require.NoError(t, err)
	require.NoError(t, db.Create(u).Error)

	// Create skips zero values in favor of the column default
	require.NoError(t, db.Model(u).Update("credits", credits).Error)
	u.Credits = credits
	return u
}
