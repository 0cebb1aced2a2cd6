package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"estate-backend/bootstrap"
	"estate-backend/internal/application/reports"
	"estate-backend/internal/infrastructure/database"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd)
		},
	}
}

func runServe(cmd *cobra.Command) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv, err := bootstrap.New(ctx, cfg)
	if err != nil {
		return err
	}
	defer srv.Close()

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("Server running")
		errCh <- srv.App.Listen(":" + cfg.Port)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		log.Info().Msg("Shutting down")
		return srv.App.ShutdownWithTimeout(10 * time.Second)
	}
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the ledger tables",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			db, err := database.OpenAndMigrate(cfg.DatabaseURL)
			if err != nil {
				return err
			}
			if sqlDB, err := db.DB(); err == nil {
				defer sqlDB.Close()
			}
			log.Info().Msg("Migration complete")
			return nil
		},
	}
}

func verifySafesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "verify-safes",
		Short: "Check every safe balance against its vouchers",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			db, err := database.Open(cfg.DatabaseURL)
			if err != nil {
				return err
			}
			if sqlDB, err := db.DB(); err == nil {
				defer sqlDB.Close()
			}
			report, err := (&reports.Service{DB: db}).VerifySafes(context.Background())
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			if err := enc.Encode(report); err != nil {
				return err
			}
			if !report.OK {
				return fmt.Errorf("safe balances do not match their vouchers")
			}
			return nil
		},
	}
}

func backupCmd() *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "backup",
		Short: "Write the ledger tables to an .xlsx workbook",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			db, err := database.Open(cfg.DatabaseURL)
			if err != nil {
				return err
			}
			if sqlDB, err := db.DB(); err == nil {
				defer sqlDB.Close()
			}
			wb, err := (&reports.Service{DB: db}).Workbook(context.Background())
			if err != nil {
				return err
			}
			defer wb.Close()
			if out == "" {
				out = fmt.Sprintf("ledger_%s.xlsx", time.Now().Format("20060102_150405"))
			}
			if err := wb.SaveAs(out); err != nil {
				return err
			}
			log.Info().Str("file", out).Msg("Backup written")
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file (default ledger_<timestamp>.xlsx)")
	return cmd
}
