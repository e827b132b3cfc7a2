// Package purchase estimates the taxes and closing fees due when buying a home
// in a given region.
package purchase

import (
	"errors"
	"fmt"
	"strings"

	"github.com/iwvelando/mortgage-calc/pkg/mathutil"
)

// ErrUnknownRegion is returned when a region is not present in a rate table.
var ErrUnknownRegion = errors.New("unknown region")

// Region holds the purchase tax rates of one region, in percent of the price.
type Region struct {
	Name           string  `yaml:"name" json:"name"`
	TransferTaxPct float64 `yaml:"transferTaxPct" json:"transferTaxPct"`
	StampDutyPct   float64 `yaml:"stampDutyPct" json:"stampDutyPct"`
}

// Fees holds the fixed closing fees of a purchase.
type Fees struct {
	Notary    float64 `yaml:"notary" json:"notary"`
	Registry  float64 `yaml:"registry" json:"registry"`
	Agency    float64 `yaml:"agency" json:"agency"`
	Appraisal float64 `yaml:"appraisal" json:"appraisal"`
}

// Total sums the fees.
func (f Fees) Total() float64 {
	return f.Notary + f.Registry + f.Agency + f.Appraisal
}

// Input describes the purchase to estimate.
type Input struct {
	Price float64
	// NewBuild selects VAT plus stamp duty instead of the transfer tax.
	NewBuild bool
	VATPct   float64
	Fees     Fees
}

// Tax is a single itemized tax line.
type Tax struct {
	Label   string
	RatePct float64
	Amount  float64
}

// Costs holds the estimated purchase costs.
type Costs struct {
	Region string
	Taxes  []Tax
	// TaxTotal is the sum of Taxes.
	TaxTotal float64
	FeeTotal float64
	Total    float64
}

// Estimate computes the purchase costs for the input in the given region.
// Resale homes pay the regional transfer tax; new builds pay VAT and the
// regional stamp duty.
func Estimate(in Input, region Region) Costs {
	costs := Costs{Region: region.Name}

	if in.NewBuild {
		costs.Taxes = []Tax{
			{Label: "VAT", RatePct: in.VATPct, Amount: mathutil.ApplyPercentage(in.Price, in.VATPct)},
			{Label: "Stamp duty", RatePct: region.StampDutyPct, Amount: mathutil.ApplyPercentage(in.Price, region.StampDutyPct)},
		}
	} else {
		costs.Taxes = []Tax{
			{Label: "Transfer tax", RatePct: region.TransferTaxPct, Amount: mathutil.ApplyPercentage(in.Price, region.TransferTaxPct)},
		}
	}

	for _, tax := range costs.Taxes {
		costs.TaxTotal += tax.Amount
	}
	costs.FeeTotal = in.Fees.Total()
	costs.Total = costs.TaxTotal + costs.FeeTotal
	return costs
}

// FindRegion looks up a region by name, ignoring case and surrounding space.
func FindRegion(regions []Region, name string) (Region, error) {
	wanted := strings.TrimSpace(name)
	for _, region := range regions {
		if strings.EqualFold(region.Name, wanted) {
			return region, nil
		}
	}
	return Region{}, fmt.Errorf("%w: %q", ErrUnknownRegion, name)
}

// DefaultRegions returns indicative rates for the Spanish autonomous
// communities. Actual rates vary with reduced regimes (young buyers, large
// families, subsidized housing) and change yearly.
func DefaultRegions() []Region {
	return []Region{
		{Name: "Andalucía", TransferTaxPct: 7, StampDutyPct: 1.2},
		{Name: "Aragón", TransferTaxPct: 8, StampDutyPct: 1.5},
		{Name: "Asturias", TransferTaxPct: 8, StampDutyPct: 1.2},
		{Name: "Baleares", TransferTaxPct: 8, StampDutyPct: 1.5},
		{Name: "Canarias", TransferTaxPct: 6.5, StampDutyPct: 0.75},
		{Name: "Cantabria", TransferTaxPct: 9, StampDutyPct: 1.5},
		{Name: "Castilla-La Mancha", TransferTaxPct: 9, StampDutyPct: 1.5},
		{Name: "Castilla y León", TransferTaxPct: 8, StampDutyPct: 1.5},
		{Name: "Cataluña", TransferTaxPct: 10, StampDutyPct: 1.5},
		{Name: "Comunidad Valenciana", TransferTaxPct: 10, StampDutyPct: 1.5},
		{Name: "Extremadura", TransferTaxPct: 8, StampDutyPct: 1.5},
		{Name: "Galicia", TransferTaxPct: 9, StampDutyPct: 1.5},
		{Name: "La Rioja", TransferTaxPct: 7, StampDutyPct: 1},
		{Name: "Madrid", TransferTaxPct: 6, StampDutyPct: 0.75},
		{Name: "Murcia", TransferTaxPct: 8, StampDutyPct: 1.5},
		{Name: "Navarra", TransferTaxPct: 6, StampDutyPct: 0.5},
		{Name: "País Vasco", TransferTaxPct: 4, StampDutyPct: 0.5},
		{Name: "Ceuta", TransferTaxPct: 6, StampDutyPct: 0.5},
		{Name: "Melilla", TransferTaxPct: 6, StampDutyPct: 0.5},
	}
}
