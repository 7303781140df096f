package database

import (
	"testing"
	"time"

	mysqldriver "github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pixelcraft/studio/internal/pkg/config"
)

func TestDSN(t *testing.T) {
	cfg := &config.Config{
		DBUser:     "studio",
		DBPassword: "secret",
		DBHost:     "db",
		DBPort:     "3306",
		DBName:     "studio",
	}

	parsed, err := mysqldriver.ParseDSN(DSN(cfg))
	require.NoError(t, err)

	assert.Equal(t, "studio", parsed.User)
	assert.Equal(t, "secret", parsed.Passwd)
	assert.Equal(t, "db:3306", parsed.Addr)
	assert.Equal(t, "studio", parsed.DBName)
	assert.True(t, parsed.ParseTime)
	assert.Equal(t, time.UTC, parsed.Loc)
	// webhook dedupe counts affected rows of ON DUPLICATE KEY UPDATE
	assert.False(t, parsed.ClientFoundRows)
}
