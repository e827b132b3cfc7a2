// Package validation provides configuration validation utilities.
package validation

import (
	"errors"
	"fmt"
	"time"

	"github.com/iwvelando/mortgage-calc/pkg/constants"
	"github.com/iwvelando/mortgage-calc/pkg/datetime"
)

// ValidateNonNegative returns a warning when an amount is negative. Negative
// amounts are still computed but are clamped by the calculators.
func ValidateNonNegative(field string, value float64) string {
	if value < 0 {
		return fmt.Sprintf("%s is negative (%.2f); results are clamped at zero", field, value)
	}
	return ""
}

// ValidateDownPayment warns when the down payment leaves nothing to finance.
// consequence describes what that means for the section being validated.
func ValidateDownPayment(field string, pct float64, consequence string) string {
	if pct >= constants.PercentageMultiplier {
		return fmt.Sprintf("%s of %.2f%% leaves nothing to finance; %s", field, pct, consequence)
	}
	return ""
}

// ErrTermOutOfRange is returned by CheckTerm.
var ErrTermOutOfRange = errors.New("term out of range")

// ValidateTerm warns when a loan term yields no payment periods or exceeds
// MaxTermYears.
func ValidateTerm(field string, years int) string {
	switch {
	case years <= 0:
		return fmt.Sprintf("%s of %d years yields no payments", field, years)
	case years > constants.MaxTermYears:
		return fmt.Sprintf("%s of %d years exceeds the %d year maximum", field, years, constants.MaxTermYears)
	}
	return ""
}

// CheckTerm is the strict form of ValidateTerm for surfaces that must refuse
// to compute a schedule.
func CheckTerm(field string, years int) error {
	if years <= 0 || years > constants.MaxTermYears {
		return fmt.Errorf("%w: %s must be between 1 and %d years, got %d",
			ErrTermOutOfRange, field, constants.MaxTermYears, years)
	}
	return nil
}

// ValidateEffortRatio warns when the effort ratio is outside the usual range.
func ValidateEffortRatio(pct float64) string {
	if pct < constants.MinEffortRatioPct || pct > constants.MaxEffortRatioPct {
		return fmt.Sprintf("effort ratio %.1f%% is outside the usual %.0f-%.0f%% range",
			pct, constants.MinEffortRatioPct, constants.MaxEffortRatioPct)
	}
	return ""
}

// ValidateDate checks that a non-empty date uses the expected layout.
func ValidateDate(field, date string) string {
	if date == "" {
		return ""
	}
	if _, err := time.Parse(datetime.DateLayout, date); err != nil {
		return fmt.Sprintf("%s %q is not a %s date", field, date, datetime.DateLayout)
	}
	return ""
}

// ConfigValidator performs comprehensive configuration validation
type ConfigValidator struct {
	Loan          *LoanConfig
	Affordability *AffordabilityConfig
	Purchase      *PurchaseConfig
}

// LoanConfig holds the loan fields subject to validation.
type LoanConfig struct {
	HomeValue      float64
	Principal      float64
	DownPaymentPct float64
	AnnualRatePct  float64
	TermYears      int
	StartDate      string
	MonthlyCosts   []float64
}

// AffordabilityConfig holds the affordability fields subject to validation.
type AffordabilityConfig struct {
	Income         float64
	FixedCosts     float64
	MonthlyDebts   float64
	EffortRatioPct float64
	AnnualRatePct  float64
	TermYears      int
	DownPaymentPct float64
	StressDeltaPct float64
}

// PurchaseConfig holds the purchase fields subject to validation.
type PurchaseConfig struct {
	Price       float64
	VATPct      float64
	Fees        []float64
	Region      string
	KnownRegion bool
}

// ValidateAll validates every configured section and returns warnings
func (cv *ConfigValidator) ValidateAll() []string {
	var warnings []string
	add := func(w string) {
		if w != "" {
			warnings = append(warnings, w)
		}
	}

	if loan := cv.Loan; loan != nil {
		add(ValidateNonNegative("loan.homeValue", loan.HomeValue))
		add(ValidateNonNegative("loan.principal", loan.Principal))
		add(ValidateNonNegative("loan.annualRatePct", loan.AnnualRatePct))
		add(ValidateNonNegative("loan.downPaymentPct", loan.DownPaymentPct))
		add(ValidateDownPayment("loan.downPaymentPct", loan.DownPaymentPct, "the financed principal is 0"))
		add(ValidateTerm("loan.termYears", loan.TermYears))
		add(ValidateDate("loan.startDate", loan.StartDate))
		for _, cost := range loan.MonthlyCosts {
			add(ValidateNonNegative("loan.monthlyCosts", cost))
		}
	}

	if a := cv.Affordability; a != nil {
		add(ValidateNonNegative("affordability.income", a.Income))
		add(ValidateNonNegative("affordability.fixedCosts", a.FixedCosts))
		add(ValidateNonNegative("affordability.monthlyDebts", a.MonthlyDebts))
		add(ValidateNonNegative("affordability.annualRatePct", a.AnnualRatePct))
		add(ValidateNonNegative("affordability.stressDeltaPct", a.StressDeltaPct))
		add(ValidateEffortRatio(a.EffortRatioPct))
		add(ValidateTerm("affordability.termYears", a.TermYears))
		add(ValidateDownPayment("affordability.downPaymentPct", a.DownPaymentPct, "price will equal principal"))
	}

	if p := cv.Purchase; p != nil {
		add(ValidateNonNegative("purchase.price", p.Price))
		add(ValidateNonNegative("purchase.vatPct", p.VATPct))
		for _, fee := range p.Fees {
			add(ValidateNonNegative("purchase.fees", fee))
		}
		if !p.KnownRegion {
			add(fmt.Sprintf("purchase.region %q is not in the region table", p.Region))
		}
	}

	return warnings
}
