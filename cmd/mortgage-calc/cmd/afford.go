package cmd

import (
	"github.com/iwvelando/mortgage-calc/internal/report"
	"github.com/spf13/cobra"
)

func newAffordCommand(opts *rootOptions) *cobra.Command {
	var curve bool

	cmd := &cobra.Command{
		Use:   "afford",
		Short: "Estimate the payment, principal and price a household can afford",
		Long: `Estimate the maximum and suggested monthly payment from the household
income, debts and effort ratio, and convert them into a principal and a home
price. With stressTest enabled the suggested principal is also priced at a
higher rate.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.conf.RequireAffordability()
			if err != nil {
				return err
			}
			opts.logWarnings("cmd.afford")

			result := &report.Report{Affordability: report.BuildAffordability(opts.logger, a, curve)}
			return opts.write(cmd, result, false)
		},
	}

	cmd.Flags().BoolVar(&curve, "curve", false, "add the payment of the suggested principal across a range of rates")
	return cmd
}
