package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/riskibarqy/fantasy-badminton/internal/usecase"
	"github.com/spf13/cobra"
)

const (
	ExitSuccess = 0
	ExitError   = 1
)

// Application is the wired job the commands drive.
type Application interface {
	Run(ctx context.Context, opts usecase.RunOptions) (usecase.RunReport, error)
	ListLedger(ctx context.Context) ([]string, error)
	SeedPlayers(ctx context.Context) (int, error)
	Close(ctx context.Context) error
}

// Factory builds the application lazily so --help never opens a database.
type Factory func(ctx context.Context) (Application, error)

type runFlags struct {
	dryRun        bool
	format        string
	reportPlayers bool
}

func NewRootCmd(factory Factory) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "ingest",
		Short:         "Scrape completed badminton matches and award fantasy points",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.AddCommand(
		newRunCmd(factory),
		newReportCmd(factory),
		newLedgerCmd(factory),
		newSeedCmd(factory),
	)
	return cmd
}

func newRunCmd(factory Factory) *cobra.Command {
	flags := runFlags{}
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Ingest every day of the lookback window that is not in the ledger yet",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := validateFormat(flags.format); err != nil {
				return err
			}
			return withApp(cmd.Context(), factory, func(ctx context.Context, a Application) error {
				report, runErr := a.Run(ctx, usecase.RunOptions{
					DryRun:           flags.dryRun,
					WithPlayerReport: flags.reportPlayers,
				})
				if report.RunID != "" {
					if err := writeReport(cmd.OutOrStdout(), flags.format, report); err != nil {
						return fmt.Errorf("write report: %w", err)
					}
				}
				return runErr
			})
		},
	}

	cmd.Flags().BoolVar(&flags.dryRun, "dry-run", false, "Scrape and report without writing scores or the ledger")
	cmd.Flags().StringVar(&flags.format, "format", formatText, "Output format: text or json")
	cmd.Flags().BoolVar(&flags.reportPlayers, "report-players", false, "Compare scraped names against the registry")
	return cmd
}

func newReportCmd(factory Factory) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Scrape without writing and list participant names missing from the registry",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := validateFormat(format); err != nil {
				return err
			}
			return withApp(cmd.Context(), factory, func(ctx context.Context, a Application) error {
				report, err := a.Run(ctx, usecase.RunOptions{DryRun: true, WithPlayerReport: true})
				if err != nil {
					return err
				}
				return writeReport(cmd.OutOrStdout(), format, report)
			})
		},
	}
	cmd.Flags().StringVar(&format, "format", formatText, "Output format: text or json")
	return cmd
}

func newLedgerCmd(factory Factory) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ledger",
		Short: "Inspect the ingested-days ledger",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List ingested day labels, most recent first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd.Context(), factory, func(ctx context.Context, a Application) error {
				labels, err := a.ListLedger(ctx)
				if err != nil {
					return err
				}
				return renderLedger(cmd.OutOrStdout(), labels)
			})
		},
	})
	return cmd
}

func newSeedCmd(factory Factory) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Upsert the starter player registry",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd.Context(), factory, func(ctx context.Context, a Application) error {
				n, err := a.SeedPlayers(ctx)
				if err != nil {
					return err
				}
				_, err = fmt.Fprintf(cmd.OutOrStdout(), "Seeded %d players.\n", n)
				return err
			})
		},
	}
}

func withApp(ctx context.Context, factory Factory, fn func(context.Context, Application) error) (err error) {
	if ctx == nil {
		ctx = context.Background()
	}
	a, err := factory(ctx)
	if err != nil {
		return fmt.Errorf("build app: %w", err)
	}
	defer func() {
		if closeErr := a.Close(context.WithoutCancel(ctx)); closeErr != nil {
			err = errors.Join(err, fmt.Errorf("close app: %w", closeErr))
		}
	}()
	return fn(ctx, a)
}

func validateFormat(format string) error {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case formatText, formatJSON:
		return nil
	default:
		return fmt.Errorf("invalid format: %s (must be 'text' or 'json')", format)
	}
}

// Execute runs the root command and returns the process exit code.
func Execute(ctx context.Context, factory Factory, args []string, stdout, stderr io.Writer) int {
	cmd := NewRootCmd(factory)
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	if err := cmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return ExitError
	}
	return ExitSuccess
}
