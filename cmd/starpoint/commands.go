// cmd/starpoint/commands.go
package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	app "starpoint/internal"
	"starpoint/internal/export"
	"starpoint/internal/util"
	"starpoint/pkg/db"
)

func parseAmount(raw string) (decimal.Decimal, error) {
	amount, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return decimal.Zero, util.NewValidationError("amount", fmt.Sprintf("%q is not a number", raw))
	}
	return amount, nil
}

func newDepositCmd(application *app.Application) *cobra.Command {
	return &cobra.Command{
		Use:   "deposit <user> <amount>",
		Short: "Record a deposit at the current time",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := parseAmount(args[1])
			if err != nil {
				return err
			}
			deposit, err := application.LedgerService.RecordDeposit(cmd.Context(), args[0], amount, time.Time{})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deposit #%d: %s +%s points\n",
				deposit.ID, deposit.User, deposit.Points.StringFixed(2))
			return nil
		},
	}
}

func newWithdrawCmd(application *app.Application) *cobra.Command {
	var at string
	cmd := &cobra.Command{
		Use:   "withdraw <user> <amount>",
		Short: "Record a withdrawal, now or at a time of day",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := parseAmount(args[1])
			if err != nil {
				return err
			}
			var when time.Time
			if at != "" {
				if when, err = application.LedgerService.WithdrawalTime(at); err != nil {
					return err
				}
			}
			withdrawal, err := application.LedgerService.RecordWithdrawal(cmd.Context(), args[0], amount, when)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "withdrawal #%d: %s -%s points\n",
				withdrawal.ID, withdrawal.User, withdrawal.PointsOrZero().StringFixed(2))
			return nil
		},
	}
	cmd.Flags().StringVar(&at, "time", "", `time of day today, e.g. "9 PM", "9:05 PM" or "21:05"`)
	return cmd
}

func newBalanceCmd(application *app.Application) *cobra.Command {
	return &cobra.Command{
		Use:   "balance <user>",
		Short: "Show a user's current points",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			balance, err := application.LedgerService.BalanceOf(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), balance.StringFixed(2))
			return nil
		},
	}
}

func newHistoryCmd(application *app.Application) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "history <user>",
		Short: "Show a user's movements, newest first",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			movements, err := application.LedgerService.HistoryOf(cmd.Context(), args[0], limit)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderHistory(movements))
			return nil
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 0, "maximum rows (defaults to STARPOINT_HISTORY_LIMIT)")
	return cmd
}

func newUsersCmd(application *app.Application) *cobra.Command {
	return &cobra.Command{
		Use:   "users",
		Short: "List known users",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			users, err := application.LedgerService.ListUsers(cmd.Context())
			if err != nil {
				return err
			}
			for _, u := range users {
				fmt.Fprintln(cmd.OutOrStdout(), u)
			}
			return nil
		},
	}
}

func newSummaryCmd(application *app.Application) *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Show per-user totals and balances",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			summary, err := application.ReportService.Summary(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderSummary(summary, application.Config.Ledger.TimeZone))
			return nil
		},
	}
}

func newNormalizeCmd(application *app.Application) *cobra.Command {
	return &cobra.Command{
		Use:   "normalize",
		Short: "Trim surrounding whitespace from stored user identifiers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			changed, err := application.LedgerService.NormalizeStoredUsers(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d identifiers rewritten\n", changed)
			return nil
		},
	}
}

func newExportCmd(application *app.Application) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:       "export <summary|snapshot>",
		Short:     "Write the summary CSV or the full snapshot zip",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"summary", "snapshot"},
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				data []byte
				name string
				err  error
			)
			now := time.Now()
			switch args[0] {
			case "summary":
				data, err = application.Exporter.ExportSummary(cmd.Context())
				name = export.SummaryFileName(now)
			case "snapshot":
				data, err = application.Exporter.ExportFullSnapshot(cmd.Context())
				name = export.SnapshotFileName(now)
			}
			if err != nil {
				return err
			}
			if output != "" {
				name = output
			}
			if err := os.WriteFile(name, data, 0o644); err != nil {
				return fmt.Errorf("failed to write %s: %w", name, err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), name)
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "destination file (defaults to a timestamped name)")
	return cmd
}

func newBackupCmd(application *app.Application) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "backup",
		Short: "Copy the live ledger to a standalone SQLite file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := db.Backup(cmd.Context(), application.DB, output); err != nil {
				return &util.BackupError{Err: err}
			}
			fmt.Fprintln(cmd.OutOrStdout(), output)
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "destination file")
	_ = cmd.MarkFlagRequired("output")
	return cmd
}
