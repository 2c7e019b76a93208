package model

// LineItemCategory distinguishes government fees from dealer fees.
type LineItemCategory string

// Line item categories.
const (
	CategoryGovernment LineItemCategory = "government"
	CategoryDealer     LineItemCategory = "dealer"
)

// LineItem is the atomic output unit of a fee calculation.
type LineItem struct {
	Code        string           `json:"code"`
	Category    LineItemCategory `json:"category"`
	Description string           `json:"description"`
	Amount      float64          `json:"amount"`
	Taxable     bool             `json:"taxable"`
}

// TaxBreakdown reports the tax side of a computed deal.
type TaxBreakdown struct {
	StateTaxRate    float64 `json:"state_tax_rate"`
	StateTax        float64 `json:"state_tax"`
	CountyTaxRate   float64 `json:"county_tax_rate"`
	CountyTax       float64 `json:"county_tax"`
	CountyTaxCapped bool    `json:"county_tax_capped"`
	TaxableBase     float64 `json:"taxable_base"`
	TotalTax        float64 `json:"total_tax"`
}

// Totals aggregates the money amounts of a ScenarioResult.
type Totals struct {
	GovernmentFees float64 `json:"government_fees"`
	DealerFees     float64 `json:"dealer_fees"`
	TotalFees      float64 `json:"total_fees"`
	AmountFinanced float64 `json:"amount_financed"`
}

// ScenarioResult is the sole output of a deal computation. It is fully
// derived from its inputs and carries no hidden state.
type ScenarioResult struct {
	DetectedScenario DetectedScenario `json:"detected_scenario"`
	LineItems        []LineItem       `json:"line_items"`
	Totals           Totals           `json:"totals"`
	TaxBreakdown     TaxBreakdown     `json:"tax_breakdown"`
}
