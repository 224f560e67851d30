package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jakechorley/tox-oncall/cmd/cli/commands"
	"github.com/jakechorley/tox-oncall/internal/config"
	"github.com/jakechorley/tox-oncall/pkg/postgres"
	"github.com/jakechorley/tox-oncall/pkg/utils/logging"
)

var (
	env        string
	configPath string
	verbose    bool
	app        = &commands.AppContext{}
	database   *postgres.DB
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "oncall",
		Short: "Toxicology on-call scheduler",
		Long:  `A CLI tool for generating monthly toxicology fellowship on-call schedules.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initApp()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if database != nil {
				database.Close()
			}
			if app.Logger != nil {
				app.Logger.Sync()
			}
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVarP(&env, "env", "e", "", "Environment (required: test, prod, etc.)")
	rootCmd.MarkPersistentFlagRequired("env")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to the config file (default: oncall_config.yaml in . or $HOME)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log debug output to the console")

	rootCmd.AddCommand(commands.GenerateCmd(app))
	rootCmd.AddCommand(commands.AddFellowCmd(app))
	rootCmd.AddCommand(commands.AddOffDaysCmd(app))
	rootCmd.AddCommand(commands.AddDutyShiftCmd(app))
	rootCmd.AddCommand(commands.ListFellowsCmd(app))
	rootCmd.AddCommand(commands.InteractiveCmd(app))

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// initApp sets up logger, config and, when configured, the database
func initApp() error {
	var err error
	app.Ctx = context.Background()

	logger, logFile, err := logging.InitLogger(logging.Options{Env: env, Verbose: verbose})
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	app.Logger = logger

	app.Logger.Info("Starting application", zap.String("environment", env))
	app.Logger.Debug("Logging to file", zap.String("path", logFile))

	app.Logger.Info("Loading configuration")
	if configPath != "" {
		app.Cfg, err = config.LoadFromPath(configPath)
	} else {
		app.Cfg, err = config.Load()
	}
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	app.Logger.Debug("Configuration loaded successfully",
		zap.Int("first_year_fellows", len(app.Cfg.FirstYearFellows)),
		zap.Int("second_year_fellows", len(app.Cfg.SecondYearFellows)))

	if app.Cfg.DatabaseURL == "" {
		app.Logger.Debug("No database configured, using config roster")
		return nil
	}

	app.Logger.Info("Connecting to database")
	database, err = postgres.NewDB(app.Ctx, app.Cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}

	applied, err := database.RunMigrations(app.Ctx)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	if len(applied) > 0 {
		app.Logger.Info("Applied migrations", zap.Strings("migrations", applied))
	}

	app.Database = database
	app.Logger.Info("Database initialized successfully")

	return nil
}
