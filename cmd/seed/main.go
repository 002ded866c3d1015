package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"shopapi/internal/auth"
	"shopapi/internal/config"
	"shopapi/internal/db"
	"shopapi/internal/logging"
	"shopapi/internal/service"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "seed",
		Short:         "Seed data into the configured store",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.AddCommand(newAdminCommand())
	return cmd
}

func newAdminCommand() *cobra.Command {
	var email, password string
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Create an admin account or promote an existing one",
		Long: `Create an admin account or promote an existing one.

With STORAGE_DRIVER=file the server keeps the collections in memory and
rewrites the files on every change, so stop it before seeding or the
seeded account is lost on its next write.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			return seedAdmin(cmd.Context(), cfg, email, password)
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "Admin email")
	cmd.Flags().StringVar(&password, "password", "", "Admin password")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func seedAdmin(ctx context.Context, cfg *config.Config, email, password string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	logger, err := logging.New(cfg.LogLevel, cfg.LogJSON)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	stores, err := db.OpenStores(cfg, afero.NewOsFs())
	if err != nil {
		return err
	}
	defer stores.Close()

	user, created, err := service.EnsureAdmin(ctx, stores.Users, auth.NewBcryptHasher(cfg.BcryptCost), email, password, cfg.AdminRole)
	if err != nil {
		return err
	}
	logger.Info("admin seeded",
		zap.Int("id", user.ID),
		zap.String("email", user.Email),
		zap.String("role", user.Role),
		zap.Bool("created", created),
	)
	return nil
}
