package loans

import (
	"fmt"
	"time"

	"github.com/iwvelando/mortgage-calc/pkg/constants"
	"github.com/iwvelando/mortgage-calc/pkg/datetime"
	"github.com/iwvelando/mortgage-calc/pkg/mathutil"
	"go.uber.org/zap"
)

// Period holds the values for a given payment period of a schedule.
type Period struct {
	Index        int // 1-based
	Date         time.Time
	Payment      float64
	Interest     float64
	Amortization float64
	Balance      float64 // remaining after this period
}

// Rounded returns a copy of the period with every amount rounded to cents.
// Schedules are tracked at full precision; round only for display.
func (p Period) Rounded() Period {
	p.Payment = mathutil.Round(p.Payment)
	p.Interest = mathutil.Round(p.Interest)
	p.Amortization = mathutil.Round(p.Amortization)
	p.Balance = mathutil.Round(p.Balance)
	return p
}

// ScheduleGenerator provides utilities for generating loan amortization schedules
type ScheduleGenerator struct {
	logger *zap.Logger
}

// NewScheduleGenerator creates a new generator instance
func NewScheduleGenerator(logger *zap.Logger) *ScheduleGenerator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ScheduleGenerator{logger: logger}
}

// Build creates the complete amortization schedule for the terms. The first
// period falls on the first day of the month containing start and each
// following period one month later.
//
// Inputs are not validated; a non-positive number of periods yields an empty
// schedule.
func (g *ScheduleGenerator) Build(terms Terms, start time.Time) []Period {
	if terms.Periods <= 0 {
		return []Period{}
	}

	flatPayment := terms.Payment()
	zeroRate := mathutil.IsNegligibleRate(terms.Rate)
	evenSplit := terms.Principal / float64(terms.Periods)

	g.logger.Debug(fmt.Sprintf("computed flat payment %.2f for principal %.2f over %d periods",
		flatPayment, terms.Principal, terms.Periods),
		zap.String("op", "loans.Build"),
		zap.Float64("rate", terms.Rate),
	)

	schedule := make([]Period, 0, terms.Periods)
	balance := terms.Principal

	for i := 1; i <= terms.Periods; i++ {
		var interest, amortization float64
		if zeroRate {
			amortization = evenSplit
		} else {
			interest = InterestPayment(balance, terms.Rate)
			amortization = flatPayment - interest
		}
		payment := flatPayment

		if amortization > balance {
			g.logger.Debug(fmt.Sprintf("period %d: capping amortization %.6f to remaining balance %.6f",
				i, amortization, balance),
				zap.String("op", "loans.Build"),
			)
			amortization = balance
			payment = interest + amortization
		} else if i == terms.Periods && mathutil.WithinTolerance(balance, amortization, constants.CurrencyTolerance) {
			// Fold floating point residue into the last period so the
			// schedule closes at exactly zero.
			amortization = balance
			payment = interest + amortization
		}

		balance = mathutil.NonNegative(balance - amortization)

		schedule = append(schedule, Period{
			Index:        i,
			Date:         datetime.OffsetMonth(start, i-1),
			Payment:      payment,
			Interest:     interest,
			Amortization: amortization,
			Balance:      balance,
		})
	}

	return schedule
}

// Summary aggregates a schedule.
type Summary struct {
	Periods        int
	Payment        float64 // flat payment of the first period
	TotalInterest  float64
	TotalPrincipal float64
	TotalPaid      float64
	FirstDate      time.Time
	LastDate       time.Time
}

// Summarize totals a schedule. An empty schedule yields a zero Summary.
func Summarize(schedule []Period) Summary {
	var s Summary
	if len(schedule) == 0 {
		return s
	}

	s.Periods = len(schedule)
	s.Payment = schedule[0].Payment
	s.FirstDate = schedule[0].Date
	s.LastDate = schedule[len(schedule)-1].Date
	for _, p := range schedule {
		s.TotalInterest += p.Interest
		s.TotalPrincipal += p.Amortization
		s.TotalPaid += p.Payment
	}
	return s
}
