package output

import (
	"github.com/iwvelando/mortgage-calc/internal/report"
	"github.com/iwvelando/mortgage-calc/pkg/affordability"
	"github.com/iwvelando/mortgage-calc/pkg/datetime"
	"github.com/iwvelando/mortgage-calc/pkg/loans"
	"github.com/iwvelando/mortgage-calc/pkg/mathutil"
	"github.com/iwvelando/mortgage-calc/pkg/purchase"
)

// The view types are the serialized form of report values. Amounts are
// rounded to cents here and nowhere earlier.

// ReportView is the serialized form of a report.Report.
type ReportView struct {
	Loan          *LoanView          `json:"loan,omitempty"`
	Affordability *AffordabilityView `json:"affordability,omitempty"`
	Purchase      *PurchaseView      `json:"purchase,omitempty"`
	Warnings      []string           `json:"warnings,omitempty"`
}

// LoanView is the serialized form of a report.LoanReport.
type LoanView struct {
	HomeValue    float64      `json:"homeValue"`
	DownPayment  float64      `json:"downPayment"`
	Principal    float64      `json:"principal"`
	PeriodicRate float64      `json:"periodicRate"`
	Periods      int          `json:"periods"`
	Payment      float64      `json:"payment"`
	MonthlyCosts float64      `json:"monthlyCosts"`
	TotalMonthly float64      `json:"totalMonthly"`
	Summary      SummaryView  `json:"summary"`
	Schedule     []PeriodView `json:"schedule,omitempty"`
}

// SummaryView is the serialized form of a loans.Summary.
type SummaryView struct {
	Periods        int     `json:"periods"`
	Payment        float64 `json:"payment"`
	TotalInterest  float64 `json:"totalInterest"`
	TotalPrincipal float64 `json:"totalPrincipal"`
	TotalPaid      float64 `json:"totalPaid"`
	FirstDate      string  `json:"firstDate,omitempty"`
	LastDate       string  `json:"lastDate,omitempty"`
}

// PeriodView is the serialized form of a loans.Period.
type PeriodView struct {
	Index        int     `json:"period"`
	Date         string  `json:"date"`
	Payment      float64 `json:"payment"`
	Interest     float64 `json:"interest"`
	Amortization float64 `json:"amortization"`
	Balance      float64 `json:"balance"`
}

// AffordabilityView is the serialized form of a report.AffordabilityReport.
type AffordabilityView struct {
	MaxPaymentByRatio  float64         `json:"maxPaymentByRatio"`
	AvailablePayment   float64         `json:"availablePayment"`
	SuggestedPayment   float64         `json:"suggestedPayment"`
	MaxPrincipal       float64         `json:"maxPrincipal"`
	SuggestedPrincipal float64         `json:"suggestedPrincipal"`
	MaxPrice           float64         `json:"maxPrice"`
	SuggestedPrice     float64         `json:"suggestedPrice"`
	StressedPayment    *float64        `json:"stressedPayment,omitempty"`
	Sensitivity        []RatePointView `json:"sensitivity,omitempty"`
}

// RatePointView is the serialized form of an affordability.RatePoint.
type RatePointView struct {
	AnnualRatePct float64 `json:"annualRatePct"`
	Payment       float64 `json:"payment"`
}

// PurchaseView is the serialized form of purchase.Costs.
type PurchaseView struct {
	Region   string    `json:"region"`
	Taxes    []TaxView `json:"taxes"`
	TaxTotal float64   `json:"taxTotal"`
	FeeTotal float64   `json:"feeTotal"`
	Total    float64   `json:"total"`
}

// TaxView is the serialized form of a purchase.Tax.
type TaxView struct {
	Label   string  `json:"label"`
	RatePct float64 `json:"ratePct"`
	Amount  float64 `json:"amount"`
}

// NewReportView converts a report. withSchedule controls whether the full
// period table is included.
func NewReportView(r *report.Report, withSchedule bool) ReportView {
	view := ReportView{Warnings: r.Warnings}
	if r.Loan != nil {
		loan := NewLoanView(r.Loan, withSchedule)
		view.Loan = &loan
	}
	if r.Affordability != nil {
		aff := NewAffordabilityView(r.Affordability)
		view.Affordability = &aff
	}
	if r.Purchase != nil {
		costs := NewPurchaseView(*r.Purchase)
		view.Purchase = &costs
	}
	return view
}

// NewLoanView converts a loan report.
func NewLoanView(l *report.LoanReport, withSchedule bool) LoanView {
	view := LoanView{
		HomeValue:    mathutil.Round(l.HomeValue),
		DownPayment:  mathutil.Round(l.DownPayment),
		Principal:    mathutil.Round(l.Terms.Principal),
		PeriodicRate: l.Terms.Rate,
		Periods:      l.Terms.Periods,
		Payment:      mathutil.Round(l.Payment),
		MonthlyCosts: mathutil.Round(l.MonthlyCosts),
		TotalMonthly: mathutil.Round(l.TotalMonthly),
		Summary:      NewSummaryView(l.Summary),
	}
	if withSchedule {
		view.Schedule = NewScheduleView(l.Schedule)
	}
	return view
}

// NewSummaryView converts a schedule summary.
func NewSummaryView(s loans.Summary) SummaryView {
	return SummaryView{
		Periods:        s.Periods,
		Payment:        mathutil.Round(s.Payment),
		TotalInterest:  mathutil.Round(s.TotalInterest),
		TotalPrincipal: mathutil.Round(s.TotalPrincipal),
		TotalPaid:      mathutil.Round(s.TotalPaid),
		FirstDate:      datetime.Format(s.FirstDate),
		LastDate:       datetime.Format(s.LastDate),
	}
}

// NewScheduleView converts a schedule, rounding every period.
func NewScheduleView(schedule []loans.Period) []PeriodView {
	views := make([]PeriodView, 0, len(schedule))
	for _, p := range schedule {
		r := p.Rounded()
		views = append(views, PeriodView{
			Index:        r.Index,
			Date:         datetime.Format(r.Date),
			Payment:      r.Payment,
			Interest:     r.Interest,
			Amortization: r.Amortization,
			Balance:      r.Balance,
		})
	}
	return views
}

// NewAffordabilityView converts an affordability report.
func NewAffordabilityView(a *report.AffordabilityReport) AffordabilityView {
	res := a.Result
	view := AffordabilityView{
		MaxPaymentByRatio:  mathutil.Round(res.MaxPaymentByRatio),
		AvailablePayment:   mathutil.Round(res.AvailablePayment),
		SuggestedPayment:   mathutil.Round(res.SuggestedPayment),
		MaxPrincipal:       mathutil.Round(res.MaxPrincipal),
		SuggestedPrincipal: mathutil.Round(res.SuggestedPrincipal),
		MaxPrice:           mathutil.Round(res.MaxPrice),
		SuggestedPrice:     mathutil.Round(res.SuggestedPrice),
		Sensitivity:        NewSensitivityView(a.Sensitivity),
	}
	if res.StressedPayment != nil {
		stressed := mathutil.Round(*res.StressedPayment)
		view.StressedPayment = &stressed
	}
	return view
}

// NewSensitivityView converts a sensitivity curve.
func NewSensitivityView(points []affordability.RatePoint) []RatePointView {
	if len(points) == 0 {
		return nil
	}
	views := make([]RatePointView, 0, len(points))
	for _, p := range points {
		views = append(views, RatePointView{
			AnnualRatePct: mathutil.Round(p.AnnualRatePct),
			Payment:       mathutil.Round(p.Payment),
		})
	}
	return views
}

// NewPurchaseView converts purchase costs.
func NewPurchaseView(c purchase.Costs) PurchaseView {
	view := PurchaseView{
		Region:   c.Region,
		Taxes:    make([]TaxView, 0, len(c.Taxes)),
		TaxTotal: mathutil.Round(c.TaxTotal),
		FeeTotal: mathutil.Round(c.FeeTotal),
		Total:    mathutil.Round(c.Total),
	}
	for _, tax := range c.Taxes {
		view.Taxes = append(view.Taxes, TaxView{
			Label:   tax.Label,
			RatePct: tax.RatePct,
			Amount:  mathutil.Round(tax.Amount),
		})
	}
	return view
}
