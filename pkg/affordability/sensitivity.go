package affordability

import (
	"github.com/iwvelando/mortgage-calc/pkg/constants"
	"github.com/iwvelando/mortgage-calc/pkg/loans"
	"github.com/iwvelando/mortgage-calc/pkg/mathutil"
)

// RatePoint is one point of a payment sensitivity curve.
type RatePoint struct {
	AnnualRatePct float64
	Payment       float64
}

// RateSensitivity returns the payment for principal at steps evenly spaced
// annual rates from fromPct to toPct inclusive. Fewer than two steps yields a
// single point at fromPct.
func RateSensitivity(principal, fromPct, toPct float64, steps, periods int) []RatePoint {
	if steps < 2 {
		return []RatePoint{{
			AnnualRatePct: fromPct,
			Payment:       loans.PaymentForPrincipal(principal, loans.PeriodicRate(fromPct), periods),
		}}
	}

	points := make([]RatePoint, steps)
	step := (toPct - fromPct) / float64(steps-1)
	for i := range points {
		pct := fromPct + step*float64(i)
		if i == steps-1 {
			pct = toPct
		}
		points[i] = RatePoint{
			AnnualRatePct: pct,
			Payment:       loans.PaymentForPrincipal(principal, loans.PeriodicRate(pct), periods),
		}
	}
	return points
}

// DefaultSensitivityWindow returns the annual rate range plotted around a base
// rate: a couple of points below (never under the floor) to a few above.
func DefaultSensitivityWindow(baseAnnualPct float64) (float64, float64) {
	from := mathutil.Max(baseAnnualPct-constants.SensitivityBelowPct, constants.SensitivityFloorPct)
	return from, baseAnnualPct + constants.SensitivityAbovePct
}
