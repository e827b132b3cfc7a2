// Package output provides utilities for formatting and displaying mortgage reports.
package output

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/iwvelando/mortgage-calc/pkg/constants"
	"github.com/iwvelando/mortgage-calc/pkg/format"
	"github.com/iwvelando/mortgage-calc/pkg/validation"
)

// Write renders a report view in the requested output format.
func Write(w io.Writer, outputFormat string, view ReportView) error {
	switch outputFormat {
	case constants.OutputFormatJSON:
		return WriteJSON(w, view)
	case constants.OutputFormatPretty, "":
		PrettyReport(w, view)
		return nil
	default:
		return validation.ValidateOutputFormat(outputFormat)
	}
}

// WriteJSON outputs any value as indented JSON.
func WriteJSON(w io.Writer, v interface{}) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

// PrettyReport outputs every section of a report as human-readable text.
func PrettyReport(w io.Writer, view ReportView) {
	sections := 0
	separate := func() {
		if sections > 0 {
			_, _ = fmt.Fprintf(w, "\n")
		}
		sections++
	}

	if view.Loan != nil {
		separate()
		PrettyLoan(w, *view.Loan)
		if len(view.Loan.Schedule) > 0 {
			_, _ = fmt.Fprintf(w, "\n")
			PrettySchedule(w, view.Loan.Schedule)
		}
	}
	if view.Affordability != nil {
		separate()
		PrettyAffordability(w, *view.Affordability)
	}
	if view.Purchase != nil {
		separate()
		PrettyPurchase(w, *view.Purchase)
	}
	if len(view.Warnings) > 0 {
		separate()
		_, _ = fmt.Fprintf(w, "--- Warnings ---\n")
		for _, warning := range view.Warnings {
			_, _ = fmt.Fprintf(w, "* %s\n", warning)
		}
	}
}

// PrettyLoan outputs the loan terms, monthly payment and schedule totals.
func PrettyLoan(w io.Writer, loan LoanView) {
	_, _ = fmt.Fprintf(w, "--- Loan ---\n")
	if loan.HomeValue > 0 {
		_, _ = fmt.Fprintf(w, "Home value          | %s\n", format.Currency(loan.HomeValue))
		_, _ = fmt.Fprintf(w, "Down payment        | %s\n", format.Currency(loan.DownPayment))
	}
	_, _ = fmt.Fprintf(w, "Principal           | %s\n", format.Currency(loan.Principal))
	_, _ = fmt.Fprintf(w, "Annual rate         | %s\n", format.Percent(loan.PeriodicRate*constants.MonthsPerYear*constants.PercentageMultiplier))
	_, _ = fmt.Fprintf(w, "Periods             | %d\n", loan.Periods)
	_, _ = fmt.Fprintf(w, "Monthly payment     | %s\n", format.Currency(loan.Payment))
	if loan.MonthlyCosts > 0 {
		_, _ = fmt.Fprintf(w, "Monthly costs       | %s\n", format.Currency(loan.MonthlyCosts))
		_, _ = fmt.Fprintf(w, "Total monthly       | %s\n", format.Currency(loan.TotalMonthly))
	}
	_, _ = fmt.Fprintf(w, "Total interest      | %s\n", format.Currency(loan.Summary.TotalInterest))
	_, _ = fmt.Fprintf(w, "Total paid          | %s\n", format.Currency(loan.Summary.TotalPaid))
	if loan.Summary.LastDate != "" {
		_, _ = fmt.Fprintf(w, "Last payment        | %s\n", loan.Summary.LastDate)
	}
}

// PrettySchedule outputs an amortization table.
func PrettySchedule(w io.Writer, schedule []PeriodView) {
	_, _ = fmt.Fprintf(w, "Period | Date       | Payment | Interest | Amortization | Balance\n")
	_, _ = fmt.Fprintf(w, "______ | __________ | _______ | ________ | ____________ | _______\n")
	for _, p := range schedule {
		_, _ = fmt.Fprintf(w, "%6d | %s | %s | %s | %s | %s\n",
			p.Index, p.Date,
			format.NumericCurrency(p.Payment),
			format.NumericCurrency(p.Interest),
			format.NumericCurrency(p.Amortization),
			format.NumericCurrency(p.Balance),
		)
	}
}

// PrettyAffordability outputs the affordability figures and, when present,
// the rate sensitivity curve.
func PrettyAffordability(w io.Writer, a AffordabilityView) {
	_, _ = fmt.Fprintf(w, "--- Affordability ---\n")
	_, _ = fmt.Fprintf(w, "Max payment by ratio | %s\n", format.Currency(a.MaxPaymentByRatio))
	_, _ = fmt.Fprintf(w, "Available payment    | %s\n", format.Currency(a.AvailablePayment))
	_, _ = fmt.Fprintf(w, "Suggested payment    | %s\n", format.Currency(a.SuggestedPayment))
	_, _ = fmt.Fprintf(w, "Max principal        | %s\n", format.Currency(a.MaxPrincipal))
	_, _ = fmt.Fprintf(w, "Suggested principal  | %s\n", format.Currency(a.SuggestedPrincipal))
	_, _ = fmt.Fprintf(w, "Max price            | %s\n", format.Currency(a.MaxPrice))
	_, _ = fmt.Fprintf(w, "Suggested price      | %s\n", format.Currency(a.SuggestedPrice))
	if a.StressedPayment != nil {
		_, _ = fmt.Fprintf(w, "Stressed payment     | %s\n", format.Currency(*a.StressedPayment))
	}

	if len(a.Sensitivity) > 0 {
		_, _ = fmt.Fprintf(w, "\nRate   | Payment\n")
		_, _ = fmt.Fprintf(w, "____   | _______\n")
		for _, point := range a.Sensitivity {
			_, _ = fmt.Fprintf(w, "%s | %s\n", format.Percent(point.AnnualRatePct), format.Currency(point.Payment))
		}
	}
}

// PrettyPurchase outputs the taxes and fees of a purchase.
func PrettyPurchase(w io.Writer, c PurchaseView) {
	_, _ = fmt.Fprintf(w, "--- Purchase costs (%s) ---\n", c.Region)
	for _, tax := range c.Taxes {
		_, _ = fmt.Fprintf(w, "%-12s %6s | %s\n", tax.Label, format.Percent(tax.RatePct), format.Currency(tax.Amount))
	}
	_, _ = fmt.Fprintf(w, "Taxes               | %s\n", format.Currency(c.TaxTotal))
	_, _ = fmt.Fprintf(w, "Fees                | %s\n", format.Currency(c.FeeTotal))
	_, _ = fmt.Fprintf(w, "Total               | %s\n", format.Currency(c.Total))
}
