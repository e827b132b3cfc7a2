package cmd

import (
	"github.com/iwvelando/mortgage-calc/internal/report"
	"github.com/spf13/cobra"
)

func newCostsCommand(opts *rootOptions) *cobra.Command {
	var region string

	cmd := &cobra.Command{
		Use:   "costs",
		Short: "Itemize the taxes and fees of the configured purchase",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.logWarnings("cmd.costs")

			costs, err := report.BuildPurchase(opts.logger, opts.conf, region)
			if err != nil {
				return err
			}
			return opts.write(cmd, &report.Report{Purchase: costs}, false)
		},
	}

	cmd.Flags().StringVar(&region, "region", "", "region whose tax rates apply (overrides purchase.region)")
	return cmd
}
