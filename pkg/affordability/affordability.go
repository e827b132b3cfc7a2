// Package affordability derives borrowing limits from income constraints by
// inverting the annuity formula.
package affordability

import (
	"github.com/iwvelando/mortgage-calc/pkg/constants"
	"github.com/iwvelando/mortgage-calc/pkg/loans"
	"github.com/iwvelando/mortgage-calc/pkg/mathutil"
)

// FixedCostBuffer is the share of fixed costs held back from the available
// payment when suggesting a payment. It is a policy constant.
const FixedCostBuffer = constants.FixedCostBuffer

// Input holds the monthly household figures and loan terms to evaluate.
// Rate and StressDelta are periodic rates, not annual percentages.
type Input struct {
	Income         float64
	FixedCosts     float64
	MonthlyDebts   float64
	EffortRatioPct float64
	Rate           float64
	Periods        int
	DownPaymentPct float64
	// StressDelta, when set, is added to Rate for a one-shot stress test.
	StressDelta *float64
}

// Result holds the derived affordability figures.
type Result struct {
	MaxPaymentByRatio  float64
	AvailablePayment   float64
	SuggestedPayment   float64
	MaxPrincipal       float64
	SuggestedPrincipal float64
	MaxPrice           float64
	SuggestedPrice     float64
	// StressedPayment is nil unless Input.StressDelta was set.
	StressedPayment *float64
}

// Estimate computes the affordability result. It never fails; intermediate
// amounts are clamped at zero.
func Estimate(in Input) Result {
	var res Result

	res.MaxPaymentByRatio = mathutil.ApplyPercentage(in.Income, in.EffortRatioPct)
	res.AvailablePayment = mathutil.NonNegative(res.MaxPaymentByRatio - in.MonthlyDebts)
	buffer := mathutil.NonNegative(in.FixedCosts * FixedCostBuffer)
	res.SuggestedPayment = mathutil.NonNegative(res.AvailablePayment - buffer)

	res.MaxPrincipal = loans.PrincipalForPayment(res.AvailablePayment, in.Rate, in.Periods)
	res.SuggestedPrincipal = loans.PrincipalForPayment(res.SuggestedPayment, in.Rate, in.Periods)

	res.MaxPrice = PriceForPrincipal(res.MaxPrincipal, in.DownPaymentPct)
	res.SuggestedPrice = PriceForPrincipal(res.SuggestedPrincipal, in.DownPaymentPct)

	if in.StressDelta != nil {
		stressed := loans.PaymentForPrincipal(res.SuggestedPrincipal, in.Rate+*in.StressDelta, in.Periods)
		res.StressedPayment = &stressed
	}

	return res
}

// PriceForPrincipal returns the purchase price a principal finances when the
// buyer contributes downPaymentPct of the price. A down payment of 100% or
// more leaves nothing to divide by, so the principal itself is returned.
func PriceForPrincipal(principal, downPaymentPct float64) float64 {
	divisor := 1 - downPaymentPct/constants.PercentageMultiplier
	if divisor <= 0 {
		return principal
	}
	return principal / divisor
}

// StressDeltaFromAnnualPct converts an annual rate shock in percentage points
// into the periodic delta Estimate expects.
func StressDeltaFromAnnualPct(pct float64) *float64 {
	delta := loans.PeriodicRate(pct)
	return &delta
}
