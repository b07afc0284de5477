package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"sirumah_backend/internals/configs"
	database "sirumah_backend/internals/databases"
	"sirumah_backend/internals/helpers/dbtime"
)

// app: state bersama semua subcommand (diisi di PersistentPreRunE).
type app struct {
	cfg configs.Config
	log *zap.Logger
}

func main() {
	a := &app{}
	root := &cobra.Command{
		Use:           "sirumah",
		Short:         "SiRumah: backend manajemen perumahan",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = a.log.Sync()
		},
		// tanpa subcommand = serve
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.serve()
		},
	}

	root.AddCommand(
		a.serveCmd(),
		a.migrateCmd(),
		a.seedCmd(),
	)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func (a *app) init() error {
	a.cfg = configs.LoadEnv()

	log, err := configs.NewLogger(a.cfg.LogLevel, a.cfg.LogFormat, "sirumah")
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	a.log = log

	if err := dbtime.SetLocation(a.cfg.AppTimezone); err != nil {
		a.log.Warn("APP_TIMEZONE tidak dikenal, pakai default", zap.String("tz", a.cfg.AppTimezone), zap.Error(err))
	}
	return nil
}

// openDB: connect + pool tuning.
func (a *app) openDB() (*gorm.DB, error) {
	db, err := database.ConnectDB(a.cfg, a.log)
	if err != nil {
		return nil, err
	}
	if err := database.TunePool(db, a.cfg.DBDriver); err != nil {
		return nil, err
	}
	return db, nil
}

func closeDB(db *gorm.DB) {
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
