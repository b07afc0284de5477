// Package migration menjalankan migrasi skema berversi.
package migration

import (
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Migration struct {
	Version string
	Name    string
	Up      func(*gorm.DB) error
	Down    func(*gorm.DB) error
}

type MigrationRecord struct {
	Version   string    `gorm:"column:version;primaryKey;size:64"`
	Name      string    `gorm:"column:name;not null"`
	AppliedAt time.Time `gorm:"column:applied_at;not null"`
}

func (MigrationRecord) TableName() string { return "schema_migrations" }

var (
	globalMigrations = make([]*Migration, 0)
	registryMutex    sync.RWMutex
)

// RegisterMigration dipanggil dari init() paket migrations.
func RegisterMigration(m *Migration) {
	registryMutex.Lock()
	defer registryMutex.Unlock()
	globalMigrations = append(globalMigrations, m)
}

func GetRegisteredMigrations() []*Migration {
	registryMutex.RLock()
	defer registryMutex.RUnlock()

	out := make([]*Migration, len(globalMigrations))
	copy(out, globalMigrations)
	sort.Slice(out, func(i, j int) bool { return out[i].Version < out[j].Version })
	return out
}

type Migrator struct {
	db         *gorm.DB
	log        *zap.Logger
	migrations []*Migration
}

func NewMigrator(db *gorm.DB, log *zap.Logger) *Migrator {
	if log == nil {
		log = zap.NewNop()
	}
	return &Migrator{db: db, log: log, migrations: GetRegisteredMigrations()}
}

func (m *Migrator) ensureVersionTable() error {
	return m.db.AutoMigrate(&MigrationRecord{})
}

func (m *Migrator) AppliedVersions() (map[string]bool, error) {
	if err := m.ensureVersionTable(); err != nil {
		return nil, err
	}
	var records []MigrationRecord
	if err := m.db.Find(&records).Error; err != nil {
		return nil, err
	}
	versions := make(map[string]bool, len(records))
	for _, r := range records {
		versions[r.Version] = true
	}
	return versions, nil
}

// Up menjalankan semua migrasi yang belum diterapkan, masing-masing dalam
// transaksi sendiri. Mengembalikan jumlah migrasi yang diterapkan.
func (m *Migrator) Up() (int, error) {
	applied, err := m.AppliedVersions()
	if err != nil {
		return 0, err
	}
	n := 0
	for _, mg := range m.migrations {
		if applied[mg.Version] {
			continue
		}
		err := m.db.Transaction(func(tx *gorm.DB) error {
			if err := mg.Up(tx); err != nil {
				return err
			}
			return tx.Create(&MigrationRecord{
				Version:   mg.Version,
				Name:      mg.Name,
				AppliedAt: time.Now(),
			}).Error
		})
		if err != nil {
			m.log.Error("migration failed", zap.String("version", mg.Version), zap.Error(err))
			return n, err
		}
		m.log.Info("migration applied", zap.String("version", mg.Version), zap.String("name", mg.Name))
		n++
	}
	return n, nil
}

// Down membatalkan migrasi terakhir. false kalau tidak ada yang dibatalkan.
func (m *Migrator) Down() (bool, error) {
	if err := m.ensureVersionTable(); err != nil {
		return false, err
	}
	var last MigrationRecord
	res := m.db.Order("version DESC").Limit(1).Find(&last)
	if res.Error != nil {
		return false, res.Error
	}
	if res.RowsAffected == 0 {
		return false, nil
	}

	var target *Migration
	for _, mg := range m.migrations {
		if mg.Version == last.Version {
			target = mg
			break
		}
	}
	if target == nil {
		return false, nil
	}

	err := m.db.Transaction(func(tx *gorm.DB) error {
		if err := target.Down(tx); err != nil {
			return err
		}
		return tx.Delete(&last).Error
	})
	if err != nil {
		return false, err
	}
	m.log.Info("migration rolled back", zap.String("version", last.Version))
	return true, nil
}

type Status struct {
	Version string
	Name    string
	Applied bool
}

func (m *Migrator) Status() ([]Status, error) {
	applied, err := m.AppliedVersions()
	if err != nil {
		return nil, err
	}
	out := make([]Status, 0, len(m.migrations))
	for _, mg := range m.migrations {
		out = append(out, Status{Version: mg.Version, Name: mg.Name, Applied: applied[mg.Version]})
	}
	return out, nil
}
