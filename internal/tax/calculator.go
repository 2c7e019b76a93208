// Package tax computes the taxable base and state/county taxes for a deal.
package tax

import (
	"github.com/Veraticus/dealcalc/internal/model"
	"github.com/Veraticus/dealcalc/internal/rules"
)

// defaultStateRates holds the hard fallback rate per state, used when the
// rule store has no tax rule for the jurisdiction. A calculation must
// never fail for missing rules.
var defaultStateRates = map[string]float64{
	"FL": 0.06,
}

// DefaultStateTaxRate is the fallback for states with no entry in the
// default table.
const DefaultStateTaxRate = 0.06

// Calculate computes the tax breakdown for a deal.
//
// The taxable base is the selling price, less positive trade-in equity,
// plus all taxable fee line items. A county rule may cap the base used
// for the county portion; the state portion is never capped.
func Calculate(in model.ScenarioInput, govItems, dealerItems []model.LineItem, taxRules rules.TaxRulePair) model.TaxBreakdown {
	base := in.Deal.SellingPrice - tradeEquity(in.TradeIns)
	base += taxableFees(govItems)
	base += taxableFees(dealerItems)

	breakdown := model.TaxBreakdown{
		TaxableBase:  base,
		StateTaxRate: stateRate(taxRules.State, in.Jurisdiction.StateCode),
	}
	breakdown.StateTax = base * breakdown.StateTaxRate

	if taxRules.County != nil && taxRules.County.Payload.TaxRate != nil {
		breakdown.CountyTaxRate = *taxRules.County.Payload.TaxRate
		countyBase := base
		if capAmount := taxRules.County.Payload.CapAmount; capAmount != nil {
			if base > *capAmount {
				countyBase = *capAmount
				breakdown.CountyTaxCapped = true
			}
		}
		breakdown.CountyTax = countyBase * breakdown.CountyTaxRate
	}

	breakdown.TotalTax = breakdown.StateTax + breakdown.CountyTax
	return breakdown
}

// tradeEquity sums the positive equity across all trade-ins. Negative
// equity contributes zero; it never increases the base.
func tradeEquity(tradeIns []model.TradeIn) float64 {
	var total float64
	for _, t := range tradeIns {
		total += t.Equity()
	}
	return total
}

func taxableFees(items []model.LineItem) float64 {
	var total float64
	for _, item := range items {
		if item.Taxable {
			total += item.Amount
		}
	}
	return total
}

func stateRate(rule *model.JurisdictionRule, stateCode string) float64 {
	if rule != nil && rule.Payload.TaxRate != nil {
		return *rule.Payload.TaxRate
	}
	if rate, ok := defaultStateRates[stateCode]; ok {
		return rate
	}
	return DefaultStateTaxRate
}
