package cmd

import (
	"github.com/iwvelando/mortgage-calc/internal/config"
	"github.com/iwvelando/mortgage-calc/internal/report"
	"github.com/spf13/cobra"
)

// loanFlags override the loan section of the configuration.
type loanFlags struct {
	principal float64
	rate      float64
	years     int
	start     string
}

func (f *loanFlags) register(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&f.principal, "principal", 0, "amount borrowed (overrides loan.homeValue and loan.downPaymentPct)")
	cmd.Flags().Float64Var(&f.rate, "rate", 0, "annual interest rate in percent")
	cmd.Flags().IntVar(&f.years, "years", 0, "loan term in years")
	cmd.Flags().StringVar(&f.start, "start", "", "first payment month as YYYY-MM-DD (default today)")
}

// apply merges the changed flags into the configuration, creating the loan
// section when only flags are given.
func (f *loanFlags) apply(cmd *cobra.Command, conf *config.Configuration) {
	changed := cmd.Flags().Changed
	if !changed("principal") && !changed("rate") && !changed("years") && !changed("start") {
		return
	}
	if conf.Loan == nil {
		conf.Loan = &config.LoanConfig{}
	}
	if changed("principal") {
		conf.Loan.Principal = f.principal
	}
	if changed("rate") {
		conf.Loan.AnnualRatePct = f.rate
	}
	if changed("years") {
		conf.Loan.TermYears = f.years
	}
	if changed("start") {
		conf.Loan.StartDate = f.start
	}
}

func newPaymentCommand(opts *rootOptions) *cobra.Command {
	flags := &loanFlags{}

	cmd := &cobra.Command{
		Use:   "payment",
		Short: "Compute the fixed monthly payment of the configured loan",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLoan(cmd, opts, flags, "cmd.payment", false)
		},
	}
	flags.register(cmd)
	return cmd
}

func newScheduleCommand(opts *rootOptions) *cobra.Command {
	flags := &loanFlags{}

	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Print the full amortization schedule of the configured loan",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLoan(cmd, opts, flags, "cmd.schedule", true)
		},
	}
	flags.register(cmd)
	return cmd
}

func runLoan(cmd *cobra.Command, opts *rootOptions, flags *loanFlags, op string, withSchedule bool) error {
	flags.apply(cmd, opts.conf)

	loan, err := opts.conf.RequireLoan()
	if err != nil {
		return err
	}
	opts.logWarnings(op)

	loanReport, err := report.BuildLoan(opts.logger, loan, nowFunc())
	if err != nil {
		return err
	}
	return opts.write(cmd, &report.Report{Loan: loanReport}, withSchedule)
}
