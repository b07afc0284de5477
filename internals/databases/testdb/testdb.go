// Package testdb menyiapkan SQLite in-memory dengan skema hasil migrator.
// Hanya dipakai dari _test.go.
package testdb

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"sirumah_backend/internals/databases/migration"
	_ "sirumah_backend/internals/databases/migrations"
)

// Open: satu koneksi per test supaya database in-memory tidak tercampur.
func Open(t testing.TB) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:?_foreign_keys=1"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	_, err = migration.NewMigrator(db, nil).Up()
	require.NoError(t, err)
	return db
}
