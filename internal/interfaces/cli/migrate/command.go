package migrate

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"orbit/internal/infrastructure/auth"
	"orbit/internal/infrastructure/config"
	"orbit/internal/infrastructure/database"
	"orbit/internal/infrastructure/migration"
	"orbit/internal/infrastructure/repository"
	"orbit/internal/infrastructure/seed"
	"orbit/internal/shared/logger"
)

var (
	env      string
	seedFile string
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage database schema",
	}

	cmd.PersistentFlags().StringVarP(&env, "env", "e", "development", "Environment (development, test, production)")

	up := &cobra.Command{
		Use:   "up",
		Short: "Apply schema migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDatabase(func() error {
				return migration.Run(database.Get())
			})
		},
	}

	seedCmd := &cobra.Command{
		Use:   "seed",
		Short: "Create initial users",
		Long:  `Create initial users from a YAML seed file, or one user per role when no file is given.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDatabase(runSeed)
		},
	}
	seedCmd.Flags().StringVarP(&seedFile, "file", "f", "", "YAML seed file (defaults to one user per role)")

	cmd.AddCommand(up, seedCmd)
	return cmd
}

func withDatabase(fn func() error) error {
	if envVar := os.Getenv("ENV"); envVar != "" {
		env = envVar
	}

	cfg, err := config.Load(env)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if err := logger.Init(&cfg.Logger); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	if err := database.Init(&cfg.Database); err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer database.Close()

	return fn()
}

func runSeed() error {
	cfg := config.Get()

	userRepo := repository.NewUserRepository(database.Get())
	hasher := auth.NewBcryptPasswordHasher(cfg.Auth.Password.BcryptCost)
	seeder := seed.NewSeeder(userRepo, hasher, logger.NewLogger())

	ctx := context.Background()
	if seedFile != "" {
		return seeder.SeedFromFile(ctx, seedFile)
	}
	return seeder.SeedDefaults(ctx)
}
