package cmd

import (
	"fmt"
	"time"

	"github.com/dorapulse/dorapulse/internal/usecase"
	"github.com/samber/do"
	"github.com/spf13/cobra"
)

var metricsFlags struct {
	from string
	to   string
}

var metricsCmd = &cobra.Command{
	Use:          "metrics",
	Short:        "Compute the DORA report for a time window",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		injector, err := newInjector(ctx, loadConfig())
		if err != nil {
			return err
		}

		var start, end *time.Time
		if metricsFlags.from != "" {
			t, err := time.Parse(time.RFC3339, metricsFlags.from)
			if err != nil {
				return fmt.Errorf("parse --from: %w", err)
			}
			start = &t
		}
		if metricsFlags.to != "" {
			t, err := time.Parse(time.RFC3339, metricsFlags.to)
			if err != nil {
				return fmt.Errorf("parse --to: %w", err)
			}
			end = &t
		}

		uc := do.MustInvoke[usecase.CalculateMetricsUsecase](injector)
		report, err := uc.Execute(ctx, start, end)
		if err != nil {
			return err
		}
		return printJSON(report)
	},
}

func init() {
	metricsCmd.Flags().StringVar(&metricsFlags.from, "from", "", "Period start (RFC 3339), default 30 days before the end")
	metricsCmd.Flags().StringVar(&metricsFlags.to, "to", "", "Period end (RFC 3339), default now")
}
