// Package report defines the data structures of a computed mortgage report and
// includes functions for computing them from a configuration.
package report

import (
	"errors"
	"fmt"
	"time"

	"github.com/iwvelando/mortgage-calc/internal/config"
	"github.com/iwvelando/mortgage-calc/pkg/affordability"
	"github.com/iwvelando/mortgage-calc/pkg/constants"
	"github.com/iwvelando/mortgage-calc/pkg/loans"
	"github.com/iwvelando/mortgage-calc/pkg/purchase"
	"go.uber.org/zap"
)

// ErrNothingToReport is returned when a configuration has no loan,
// affordability or purchase section.
var ErrNothingToReport = errors.New("configuration has no loan, affordability or purchase section")

// Report holds every computed section of a scenario. Sections that are not
// configured are nil.
type Report struct {
	Loan          *LoanReport
	Affordability *AffordabilityReport
	Purchase      *purchase.Costs
	Warnings      []string
}

// LoanReport holds the payment, schedule and totals of a loan.
type LoanReport struct {
	HomeValue    float64
	DownPayment  float64
	Terms        loans.Terms
	Payment      float64
	MonthlyCosts float64
	// TotalMonthly is the loan payment plus the recurring monthly costs.
	TotalMonthly float64
	Schedule     []loans.Period
	Summary      loans.Summary
}

// AffordabilityReport holds the affordability result and, optionally, the
// payment curve of the suggested principal across rates.
type AffordabilityReport struct {
	Result      affordability.Result
	Sensitivity []affordability.RatePoint
}

// Options tune report generation.
type Options struct {
	// FixedTime replaces the current date for loans without a start date.
	FixedTime time.Time
	// Sensitivity adds the rate sensitivity curve to the affordability report.
	Sensitivity bool
	// Region overrides the configured purchase region when non-empty.
	Region string
}

// Generate computes every configured section of the report.
func Generate(logger *zap.Logger, conf *config.Configuration, opts Options) (*Report, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if conf.Loan == nil && conf.Affordability == nil && conf.Purchase == nil {
		return nil, ErrNothingToReport
	}

	result := &Report{Warnings: conf.ValidateConfiguration()}

	if conf.Loan != nil {
		loanReport, err := BuildLoan(logger, conf.Loan, opts.FixedTime)
		if err != nil {
			return nil, err
		}
		result.Loan = loanReport
	}

	if conf.Affordability != nil {
		result.Affordability = BuildAffordability(logger, conf.Affordability, opts.Sensitivity)
	}

	if conf.Purchase != nil {
		costs, err := BuildPurchase(logger, conf, opts.Region)
		if err != nil {
			return nil, err
		}
		result.Purchase = costs
	}

	logger.Debug("report generated",
		zap.String("op", "report.Generate"),
		zap.Bool("loan", result.Loan != nil),
		zap.Bool("affordability", result.Affordability != nil),
		zap.Bool("purchase", result.Purchase != nil),
		zap.Int("warnings", len(result.Warnings)),
	)

	return result, nil
}

// BuildLoan computes the payment and amortization schedule of a loan. A zero
// fixedTime means today.
func BuildLoan(logger *zap.Logger, loan *config.LoanConfig, fixedTime time.Time) (*LoanReport, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if fixedTime.IsZero() {
		fixedTime = time.Now().UTC()
	}

	start, err := loan.StartWithFixedTime(fixedTime)
	if err != nil {
		return nil, err
	}

	terms := loan.Terms()
	schedule := loans.NewScheduleGenerator(logger).Build(terms, start)
	payment := terms.Payment()
	monthlyCosts := loan.MonthlyCosts.Total()

	logger.Debug(fmt.Sprintf("built schedule of %d periods for principal %.2f", len(schedule), terms.Principal),
		zap.String("op", "report.BuildLoan"),
	)

	return &LoanReport{
		HomeValue:    loan.HomeValue,
		DownPayment:  loan.DownPayment(),
		Terms:        terms,
		Payment:      payment,
		MonthlyCosts: monthlyCosts,
		TotalMonthly: payment + monthlyCosts,
		Schedule:     schedule,
		Summary:      loans.Summarize(schedule),
	}, nil
}

// BuildAffordability evaluates the household, adding the rate sensitivity
// curve of the suggested principal when requested.
func BuildAffordability(logger *zap.Logger, a *config.AffordabilityConfig, sensitivity bool) *AffordabilityReport {
	if logger == nil {
		logger = zap.NewNop()
	}

	in := a.Input()
	result := &AffordabilityReport{Result: affordability.Estimate(in)}

	if sensitivity {
		from, to := affordability.DefaultSensitivityWindow(a.AnnualRatePct)
		result.Sensitivity = affordability.RateSensitivity(result.Result.SuggestedPrincipal,
			from, to, constants.SensitivitySteps, in.Periods)
	}

	logger.Debug(fmt.Sprintf("suggested principal %.2f for available payment %.2f",
		result.Result.SuggestedPrincipal, result.Result.AvailablePayment),
		zap.String("op", "report.BuildAffordability"),
	)

	return result
}

// BuildPurchase estimates the purchase costs in the configured region, or in
// regionOverride when non-empty.
func BuildPurchase(logger *zap.Logger, conf *config.Configuration, regionOverride string) (*purchase.Costs, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	p, err := conf.RequirePurchase()
	if err != nil {
		return nil, err
	}

	name := p.Region
	if regionOverride != "" {
		name = regionOverride
	}
	region, err := purchase.FindRegion(conf.RegionTable(), name)
	if err != nil {
		return nil, err
	}

	costs := purchase.Estimate(p.Input(), region)

	logger.Debug(fmt.Sprintf("estimated purchase costs %.2f in %s", costs.Total, region.Name),
		zap.String("op", "report.BuildPurchase"),
		zap.Bool("newBuild", p.NewBuild),
	)

	return &costs, nil
}
