package cmd

import (
	"time"

	"github.com/iwvelando/mortgage-calc/internal/report"
	"github.com/spf13/cobra"
)

// nowFunc anchors loans without a start date.
var nowFunc = func() time.Time { return time.Now().UTC() }

func newReportCommand(opts *rootOptions) *cobra.Command {
	var (
		withSchedule bool
		curve        bool
		region       string
	)

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Compute every configured section: loan, affordability and purchase costs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := report.Generate(opts.logger, opts.conf, report.Options{
				FixedTime:   nowFunc(),
				Sensitivity: curve,
				Region:      region,
			})
			if err != nil {
				return err
			}
			return opts.write(cmd, result, withSchedule)
		},
	}

	cmd.Flags().BoolVar(&withSchedule, "schedule", false, "include the full amortization schedule")
	cmd.Flags().BoolVar(&curve, "curve", false, "include the rate sensitivity curve")
	cmd.Flags().StringVar(&region, "region", "", "region whose tax rates apply (overrides purchase.region)")
	return cmd
}
