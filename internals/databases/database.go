package database

import (
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"sirumah_backend/internals/configs"
)

// ConnectDB membuka koneksi sesuai DB_DRIVER (postgres default, sqlite untuk dev).
func ConnectDB(cfg configs.Config, log *zap.Logger) (*gorm.DB, error) {
	level := gormLogger.Warn
	if cfg.LogLevel == "debug" {
		level = gormLogger.Info
	}
	gcfg := &gorm.Config{
		Logger:         configs.NewGormLogger(log, level),
		TranslateError: true,
	}

	var (
		db  *gorm.DB
		err error
	)
	switch cfg.DBDriver {
	case "sqlite":
		log.Info("🔌 Koneksi ke SQLite", zap.String("path", cfg.SQLitePath))
		db, err = gorm.Open(sqlite.Open(cfg.SQLitePath+"?_foreign_keys=1"), gcfg)
	default:
		log.Info("🔌 Koneksi ke PostgreSQL", zap.String("host", cfg.DBHost), zap.String("db", cfg.DBName))
		db, err = gorm.Open(postgres.New(postgres.Config{
			DSN:                  dsn(cfg),
			PreferSimpleProtocol: true, // 👍 cocok untuk PgBouncer (transaction pooling)
		}), gcfg)
	}
	if err != nil {
		return nil, fmt.Errorf("gagal konek DB: %w", err)
	}
	log.Info("✅ DB connected.")
	return db, nil
}

func dsn(cfg configs.Config) string {
	if cfg.DBURL != "" {
		return cfg.DBURL
	}
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&application_name=sirumah&options=-c statement_timeout=3000",
		cfg.DBUser, cfg.DBPassword, cfg.DBHost, cfg.DBPort, cfg.DBName, cfg.DBSSLMode,
	)
}

func TunePool(db *gorm.DB, driver string) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	if driver == "sqlite" {
		// satu writer
		sqlDB.SetMaxOpenConns(1)
		return nil
	}
	sqlDB.SetMaxOpenConns(20)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxIdleTime(60 * time.Second)
	sqlDB.SetConnMaxLifetime(10 * time.Minute)
	return nil
}

// Ping dipakai health check.
func Ping(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}
