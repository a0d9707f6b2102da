// Package dbtest opens a migrated, file-backed sqlite database for tests.
package dbtest

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"ecodrive/config"
	"ecodrive/database"
)

// Open returns a fresh database with foreign keys enforced. It is closed when t ends.
func Open(t testing.TB) *gorm.DB {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), "ecodrive.db") + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
	db, err := database.Open(config.DatabaseConfig{
		Driver:          "sqlite",
		DSN:             dsn,
		MaxOpenConns:    4,
		ConnMaxLifetime: time.Hour,
		ConnectRetries:  1,
		LogLevel:        "silent",
	}, zap.NewNop())
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	t.Cleanup(func() { _ = database.Close(db) })
	return db
}
