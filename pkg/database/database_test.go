package database

import (
	"testing"
	"time"

	"exam_ai_backend/internal/config"

	mysqldriver "github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDSN(t *testing.T) {
	dsn := DSN(&config.DatabaseConfig{
		Host:      "db.internal",
		Port:      3307,
		User:      "exam",
		Password:  "p@ss:word",
		DBName:    "exam_ai",
		Charset:   "utf8mb4",
		ParseTime: true,
	})

	parsed, err := mysqldriver.ParseDSN(dsn)
	require.NoError(t, err)
	assert.Equal(t, "exam", parsed.User)
	assert.Equal(t, "p@ss:word", parsed.Passwd)
	assert.Equal(t, "db.internal:3307", parsed.Addr)
	assert.Equal(t, "exam_ai", parsed.DBName)
	assert.True(t, parsed.ParseTime)
	assert.Equal(t, time.Local, parsed.Loc)
	assert.Equal(t, "utf8mb4", parsed.Params["charset"])
	assert.False(t, parsed.MultiStatements)
}
