package migration_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"sirumah_backend/internals/databases/migration"
	_ "sirumah_backend/internals/databases/migrations"
)

func openDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:?_foreign_keys=1"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	return db
}

func TestMigratorUpDownStatus(t *testing.T) {
	db := openDB(t)
	m := migration.NewMigrator(db, nil)

	n, err := m.Up()
	require.NoError(t, err)
	assert.Equal(t, 5, n)
	for _, table := range []string{"users", "houses", "residents", "payments", "complaints"} {
		assert.Truef(t, db.Migrator().HasTable(table), "table %s", table)
	}

	// idempotent
	n, err = m.Up()
	require.NoError(t, err)
	assert.Zero(t, n)

	rolled, err := m.Down()
	require.NoError(t, err)
	assert.True(t, rolled)
	assert.False(t, db.Migrator().HasTable("complaints"))

	st, err := m.Status()
	require.NoError(t, err)
	require.Len(t, st, 5)
	assert.Equal(t, "create_complaints_table", st[4].Name)
	assert.False(t, st[4].Applied)
	assert.True(t, st[0].Applied)

	n, err = m.Up()
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestRegisteredMigrationsAreOrdered(t *testing.T) {
	ms := migration.GetRegisteredMigrations()
	require.NotEmpty(t, ms)
	for i := 1; i < len(ms); i++ {
		assert.Less(t, ms[i-1].Version, ms[i].Version)
	}
}
