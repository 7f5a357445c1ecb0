// cmd/starpoint/main.go
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	app "starpoint/internal"
	"starpoint/internal/config"
)

type cliOptions struct {
	dbPath   string
	logLevel string
}

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &cliOptions{}
	application := app.NewApplication()

	rootCmd := &cobra.Command{
		Use:          "starpoint",
		Short:        "StarPoint loyalty points ledger",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return bootstrap(cmd, application, opts)
		},
		PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
			if application.DB == nil {
				return nil
			}
			return application.Shutdown(cmd.Context())
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVar(&opts.dbPath, "db", "", "ledger file (overrides STARPOINT_DB)")
	rootCmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "debug, info, warn or error (overrides LOG_LEVEL)")

	rootCmd.AddCommand(
		newDepositCmd(application),
		newWithdrawCmd(application),
		newBalanceCmd(application),
		newHistoryCmd(application),
		newUsersCmd(application),
		newSummaryCmd(application),
		newNormalizeCmd(application),
		newExportCmd(application),
		newBackupCmd(application),
	)
	return rootCmd
}

// bootstrap loads config, applies flag overrides and opens the ledger.
func bootstrap(cmd *cobra.Command, application *app.Application, opts *cliOptions) error {
	if !cmd.HasParent() || cmd.Name() == "help" {
		return nil
	}
	if parent := cmd.Parent(); parent != nil && parent.Name() == "completion" {
		return nil
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}
	if opts.dbPath != "" {
		cfg.DB.Path = opts.dbPath
	}
	if opts.logLevel != "" {
		cfg.LogLevel = opts.logLevel
	}
	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", cfg.LogLevel, err)
	}

	handler := log.NewWithOptions(cmd.ErrOrStderr(), log.Options{
		ReportTimestamp: true,
		Prefix:          "starpoint",
		Level:           level,
	})
	application.Config = cfg
	application.Logger = slog.New(handler)

	return application.Initialize(cmd.Context())
}
