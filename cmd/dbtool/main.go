package main

import (
	"context"
	"database/sql"
	"delivery-ops-service/internal/adapters/repositories"
	"delivery-ops-service/internal/config"
	"delivery-ops-service/internal/platform/auth"
	"delivery-ops-service/internal/platform/db"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

func main() {
	if !config.LoadDotEnv() {
		log.Println("No .env file found (using environment variables)")
	}

	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "dbtool",
		Short:        "Database and token utilities for the delivery ops service",
		SilenceUsage: true,
	}

	root.AddCommand(newInitCmd(), newSeedCmd(), newTokenCmd())
	return root
}

func newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create tables and views",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDB(cmd.Context(), func(ctx context.Context, sqlDB *sql.DB) error {
				log.Println("Initializing database schema...")
				if err := repositories.InitSchema(ctx, sqlDB); err != nil {
					return fmt.Errorf("schema initialization failed: %w", err)
				}
				log.Println("Schema ready.")
				return nil
			})
		},
	}
}

func newSeedCmd() *cobra.Command {
	var path string
	var withSchema bool

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load YAML fixtures (stores, supplies, drivers, runs)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDB(cmd.Context(), func(ctx context.Context, sqlDB *sql.DB) error {
				if withSchema {
					if err := repositories.InitSchema(ctx, sqlDB); err != nil {
						return fmt.Errorf("schema initialization failed: %w", err)
					}
				}

				log.Printf("Seeding database from %s...", path)
				if err := repositories.SeedFromYAML(ctx, sqlDB, path); err != nil {
					return fmt.Errorf("seeding failed: %w", err)
				}
				log.Println("Seeding complete.")
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&path, "file", config.SeedPath(), "seed file")
	cmd.Flags().BoolVar(&withSchema, "init", false, "create the schema first")
	return cmd
}

func newTokenCmd() *cobra.Command {
	var role string
	var ttl time.Duration

	cmd := &cobra.Command{
		Use:   "token <user-id>",
		Short: "Mint a development access token",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			secret := os.Getenv("JWT_SECRET")
			if strings.TrimSpace(secret) == "" {
				return errors.New("JWT_SECRET is required")
			}

			tok, err := auth.Sign([]byte(secret), args[0], strings.ToUpper(role), ttl, time.Now())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), tok)
			return nil
		},
	}

	cmd.Flags().StringVar(&role, "role", "DRIVER", "role claim (DRIVER or ADMIN)")
	cmd.Flags().DurationVar(&ttl, "ttl", 24*time.Hour, "token lifetime")
	return cmd
}

func withDB(ctx context.Context, fn func(context.Context, *sql.DB) error) error {
	databaseURL := os.Getenv("DATABASE_URL")
	if strings.TrimSpace(databaseURL) == "" {
		return errors.New("DATABASE_URL is required")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	sqlDB, err := db.Open(ctx, databaseURL)
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	return fn(ctx, sqlDB)
}
