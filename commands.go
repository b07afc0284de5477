package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"sirumah_backend/internals/databases/migration"
	_ "sirumah_backend/internals/databases/migrations"
	"sirumah_backend/internals/helpers/dbtime"
	routes "sirumah_backend/internals/route"
	"sirumah_backend/internals/seeds"
)

/* =========================
   serve
   ========================= */

func (a *app) serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Jalankan HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.serve()
		},
	}
}

func (a *app) serve() error {
	if a.cfg.JWTSecret == "" {
		return errors.New("JWT_SECRET wajib diisi")
	}
	db, err := a.openDB()
	if err != nil {
		return err
	}
	defer closeDB(db)

	app := routes.NewApp(routes.Deps{
		Cfg:   a.cfg,
		DB:    db,
		Log:   a.log,
		Clock: dbtime.SystemClock{},
	})

	// 🔒 Keep-Alive & timeout koneksi server
	app.Server().ReadTimeout = 15 * time.Second
	app.Server().WriteTimeout = 30 * time.Second
	app.Server().IdleTimeout = 90 * time.Second

	// Start server non-blocking
	errCh := make(chan error, 1)
	go func() {
		a.log.Info("✅ Listening", zap.String("port", a.cfg.Port))
		errCh <- app.Listen("0.0.0.0:" + a.cfg.Port)
	}()

	// graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case sig := <-quit:
		a.log.Info("shutting down", zap.String("signal", sig.String()))
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return app.ShutdownWithContext(ctx)
}

/* =========================
   migrate up|down|status
   ========================= */

func (a *app) migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Migrasi skema database",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Jalankan semua migrasi yang belum diterapkan",
			RunE: a.withMigrator(func(m *migration.Migrator) error {
				n, err := m.Up()
				if err != nil {
					return err
				}
				fmt.Printf("%d migrasi diterapkan\n", n)
				return nil
			}),
		},
		&cobra.Command{
			Use:   "down",
			Short: "Rollback migrasi terakhir",
			RunE: a.withMigrator(func(m *migration.Migrator) error {
				rolled, err := m.Down()
				if err != nil {
					return err
				}
				if !rolled {
					fmt.Println("tidak ada migrasi untuk di-rollback")
				}
				return nil
			}),
		},
		&cobra.Command{
			Use:   "status",
			Short: "Tampilkan status migrasi",
			RunE: a.withMigrator(func(m *migration.Migrator) error {
				list, err := m.Status()
				if err != nil {
					return err
				}
				for _, s := range list {
					mark := "pending"
					if s.Applied {
						mark = "applied"
					}
					fmt.Printf("%-20s %-8s %s\n", s.Version, mark, s.Name)
				}
				return nil
			}),
		},
	)
	return cmd
}

func (a *app) withMigrator(fn func(*migration.Migrator) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		db, err := a.openDB()
		if err != nil {
			return err
		}
		defer closeDB(db)
		return fn(migration.NewMigrator(db, a.log))
	}
}

/* =========================
   seed
   ========================= */

func (a *app) seedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Isi data demo (admin/manager/sales + penghuni, rumah, iuran, keluhan)",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := a.openDB()
			if err != nil {
				return err
			}
			defer closeDB(db)
			return seeds.RunAllSeeds(db, dbtime.SystemClock{}, a.log)
		},
	}
}
