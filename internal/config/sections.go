package config

import (
	"fmt"
	"time"

	"github.com/iwvelando/mortgage-calc/pkg/affordability"
	"github.com/iwvelando/mortgage-calc/pkg/constants"
	"github.com/iwvelando/mortgage-calc/pkg/datetime"
	"github.com/iwvelando/mortgage-calc/pkg/loans"
	"github.com/iwvelando/mortgage-calc/pkg/mathutil"
	"github.com/iwvelando/mortgage-calc/pkg/purchase"
)

// LoanConfig describes the mortgage to amortize.
type LoanConfig struct {
	HomeValue float64 `yaml:"homeValue" json:"homeValue"`
	// Principal overrides the amount derived from HomeValue and
	// DownPaymentPct when positive.
	Principal      float64      `yaml:"principal,omitempty" json:"principal,omitempty"`
	DownPaymentPct float64      `yaml:"downPaymentPct" json:"downPaymentPct"`
	AnnualRatePct  float64      `yaml:"annualRatePct" json:"annualRatePct"`
	TermYears      int          `yaml:"termYears" json:"termYears"`
	StartDate      string       `yaml:"startDate,omitempty" json:"startDate,omitempty"` // empty means today
	MonthlyCosts   MonthlyCosts `yaml:"monthlyCosts,omitempty" json:"monthlyCosts,omitempty"`
}

// MonthlyCosts holds recurring housing costs paid alongside the loan.
type MonthlyCosts struct {
	HomeInsurance float64 `yaml:"homeInsurance,omitempty" json:"homeInsurance,omitempty"`
	LifeInsurance float64 `yaml:"lifeInsurance,omitempty" json:"lifeInsurance,omitempty"`
	PropertyTax   float64 `yaml:"propertyTax,omitempty" json:"propertyTax,omitempty"`
}

// Total sums the monthly costs.
func (m MonthlyCosts) Total() float64 {
	return m.HomeInsurance + m.LifeInsurance + m.PropertyTax
}

// DownPayment returns the down payment amount on the home value.
func (loan *LoanConfig) DownPayment() float64 {
	return mathutil.ApplyPercentage(loan.HomeValue, loan.DownPaymentPct)
}

// FinancedPrincipal returns the amount borrowed.
func (loan *LoanConfig) FinancedPrincipal() float64 {
	if loan.Principal > 0 {
		return loan.Principal
	}
	return mathutil.NonNegative(loan.HomeValue - loan.DownPayment())
}

// Terms converts the loan into calculator terms.
func (loan *LoanConfig) Terms() loans.Terms {
	return loans.NewTerms(loan.FinancedPrincipal(), loan.AnnualRatePct, loan.TermYears)
}

// StartWithFixedTime returns the schedule anchor date, falling back to
// fixedTime when no start date is configured.
func (loan *LoanConfig) StartWithFixedTime(fixedTime time.Time) (time.Time, error) {
	start, err := datetime.ParseDateOr(loan.StartDate, fixedTime)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid loan.startDate %q: %w", loan.StartDate, err)
	}
	return start, nil
}

// AffordabilityConfig describes the household to evaluate.
type AffordabilityConfig struct {
	Income         float64 `yaml:"income" json:"income"`
	FixedCosts     float64 `yaml:"fixedCosts" json:"fixedCosts"`
	MonthlyDebts   float64 `yaml:"monthlyDebts" json:"monthlyDebts"`
	EffortRatioPct float64 `yaml:"effortRatioPct" json:"effortRatioPct"`
	AnnualRatePct  float64 `yaml:"annualRatePct" json:"annualRatePct"`
	TermYears      int     `yaml:"termYears" json:"termYears"`
	DownPaymentPct float64 `yaml:"downPaymentPct" json:"downPaymentPct"`
	StressTest     bool    `yaml:"stressTest,omitempty" json:"stressTest,omitempty"`
	// StressDeltaPct is the annual rate shock in percentage points.
	StressDeltaPct float64 `yaml:"stressDeltaPct,omitempty" json:"stressDeltaPct,omitempty"`
}

// ApplyDefaults sets the stress delta when the stress test is enabled without
// one.
func (a *AffordabilityConfig) ApplyDefaults() {
	if a.StressTest && a.StressDeltaPct == 0 {
		a.StressDeltaPct = constants.DefaultStressDeltaPct
	}
}

// Input converts the section into estimator input.
func (a *AffordabilityConfig) Input() affordability.Input {
	in := affordability.Input{
		Income:         a.Income,
		FixedCosts:     a.FixedCosts,
		MonthlyDebts:   a.MonthlyDebts,
		EffortRatioPct: a.EffortRatioPct,
		Rate:           loans.PeriodicRate(a.AnnualRatePct),
		Periods:        loans.TermPeriods(a.TermYears),
		DownPaymentPct: a.DownPaymentPct,
	}
	if a.StressTest {
		in.StressDelta = affordability.StressDeltaFromAnnualPct(a.StressDeltaPct)
	}
	return in
}

// PurchaseConfig describes the purchase whose taxes and fees are estimated.
type PurchaseConfig struct {
	Price    float64       `yaml:"price" json:"price"`
	NewBuild bool          `yaml:"newBuild,omitempty" json:"newBuild,omitempty"`
	Region   string        `yaml:"region" json:"region"`
	VATPct   float64       `yaml:"vatPct" json:"vatPct"`
	Fees     purchase.Fees `yaml:"fees,omitempty" json:"fees,omitempty"`
}

// Input converts the section into estimator input.
func (p *PurchaseConfig) Input() purchase.Input {
	return purchase.Input{
		Price:    p.Price,
		NewBuild: p.NewBuild,
		VATPct:   p.VATPct,
		Fees:     p.Fees,
	}
}

// RegionConfig is one row of a user supplied regional tax table.
type RegionConfig struct {
	Name           string  `yaml:"name" json:"name"`
	TransferTaxPct float64 `yaml:"transferTaxPct" json:"transferTaxPct"`
	StampDutyPct   float64 `yaml:"stampDutyPct" json:"stampDutyPct"`
}

// RegionTable returns the configured regional tax table, or the built-in one
// when none is configured.
func (conf *Configuration) RegionTable() []purchase.Region {
	if len(conf.Regions) == 0 {
		return purchase.DefaultRegions()
	}
	regions := make([]purchase.Region, 0, len(conf.Regions))
	for _, r := range conf.Regions {
		regions = append(regions, purchase.Region{
			Name:           r.Name,
			TransferTaxPct: r.TransferTaxPct,
			StampDutyPct:   r.StampDutyPct,
		})
	}
	return regions
}
