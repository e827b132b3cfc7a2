package config

import (
	"github.com/iwvelando/mortgage-calc/pkg/purchase"
	"github.com/iwvelando/mortgage-calc/pkg/validation"
)

// ValidateConfiguration performs general validation of the configuration and
// returns warnings. Nothing here is fatal: the calculators accept any input.
func (conf *Configuration) ValidateConfiguration() []string {
	validator := validation.ConfigValidator{}

	if loan := conf.Loan; loan != nil {
		validator.Loan = &validation.LoanConfig{
			HomeValue:      loan.HomeValue,
			Principal:      loan.Principal,
			DownPaymentPct: loan.DownPaymentPct,
			AnnualRatePct:  loan.AnnualRatePct,
			TermYears:      loan.TermYears,
			StartDate:      loan.StartDate,
			MonthlyCosts: []float64{
				loan.MonthlyCosts.HomeInsurance,
				loan.MonthlyCosts.LifeInsurance,
				loan.MonthlyCosts.PropertyTax,
			},
		}
	}

	if a := conf.Affordability; a != nil {
		validator.Affordability = &validation.AffordabilityConfig{
			Income:         a.Income,
			FixedCosts:     a.FixedCosts,
			MonthlyDebts:   a.MonthlyDebts,
			EffortRatioPct: a.EffortRatioPct,
			AnnualRatePct:  a.AnnualRatePct,
			TermYears:      a.TermYears,
			DownPaymentPct: a.DownPaymentPct,
			StressDeltaPct: a.StressDeltaPct,
		}
	}

	if p := conf.Purchase; p != nil {
		_, err := purchase.FindRegion(conf.RegionTable(), p.Region)
		validator.Purchase = &validation.PurchaseConfig{
			Price:       p.Price,
			VATPct:      p.VATPct,
			Fees:        []float64{p.Fees.Notary, p.Fees.Registry, p.Fees.Agency, p.Fees.Appraisal},
			Region:      p.Region,
			KnownRegion: err == nil,
		}
	}

	return validator.ValidateAll()
}

// CheckTerms returns an error when the loan or affordability term is outside
// 1..MaxTermYears. Surfaces serving untrusted input call it before building
// schedules; ValidateConfiguration only warns.
func (conf *Configuration) CheckTerms() error {
	if conf.Loan != nil {
		if err := validation.CheckTerm("loan.termYears", conf.Loan.TermYears); err != nil {
			return err
		}
	}
	if conf.Affordability != nil {
		if err := validation.CheckTerm("affordability.termYears", conf.Affordability.TermYears); err != nil {
			return err
		}
	}
	return nil
}
