// Package loans provides the annuity conversions and amortization schedule
// generation for fixed-rate, fixed-term loans.
package loans

import (
	"math"

	"github.com/iwvelando/mortgage-calc/pkg/constants"
	"github.com/iwvelando/mortgage-calc/pkg/mathutil"
)

// Terms holds the parameters of a fully amortizing loan. Rate is the periodic
// (not annual) rate expressed as a fraction, e.g. 0.0325/12.
type Terms struct {
	Principal float64
	Rate      float64
	Periods   int
}

// NewTerms builds Terms from an annual percentage rate and a term in years.
func NewTerms(principal, annualRatePct float64, termYears int) Terms {
	return Terms{
		Principal: principal,
		Rate:      PeriodicRate(annualRatePct),
		Periods:   TermPeriods(termYears),
	}
}

// Payment returns the flat periodic payment for the terms.
func (t Terms) Payment() float64 {
	return PaymentForPrincipal(t.Principal, t.Rate, t.Periods)
}

// PeriodicRate converts an annual percentage rate into a monthly rate.
func PeriodicRate(annualRatePct float64) float64 {
	return annualRatePct / (constants.PercentageMultiplier * constants.MonthsPerYear)
}

// TermPeriods converts a term in years into a number of monthly periods.
func TermPeriods(termYears int) int {
	return termYears * constants.MonthsPerYear
}

// PaymentForPrincipal calculates the fixed periodic payment that fully repays
// principal over periods at the given periodic rate:
//
//	P = L * r / (1 - (1+r)^-n)
func PaymentForPrincipal(principal, rate float64, periods int) float64 {
	if periods <= 0 {
		return 0
	}
	if mathutil.IsNegligibleRate(rate) {
		// For zero interest, simply divide the principal by term
		return principal / float64(periods)
	}
	return principal * rate / (1 - math.Pow(1+rate, -float64(periods)))
}

// PrincipalForPayment is the algebraic inverse of PaymentForPrincipal: the
// principal a fixed payment can repay over periods at the given rate.
//
//	L = P * (1 - (1+r)^-n) / r
func PrincipalForPayment(payment, rate float64, periods int) float64 {
	if periods <= 0 {
		return 0
	}
	if mathutil.IsNegligibleRate(rate) {
		return payment * float64(periods)
	}
	return payment * (1 - math.Pow(1+rate, -float64(periods))) / rate
}

// InterestPayment calculates the interest portion of a payment on the balance
// entering the period.
func InterestPayment(balance, rate float64) float64 {
	if mathutil.IsNegligibleRate(rate) {
		return 0
	}
	return balance * rate
}
