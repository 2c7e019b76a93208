// Package model defines the core data structures for the dealcalc engine.
package model

// ScenarioInput captures everything the engine needs to price a deal.
// It is treated as immutable for the duration of a computation.
type ScenarioInput struct {
	Jurisdiction Jurisdiction  `json:"jurisdiction"`
	Dealer       DealerContext `json:"dealer"`
	Deal         DealTerms     `json:"deal"`
	Vehicle      Vehicle       `json:"vehicle"`
	TradeIns     []TradeIn     `json:"trade_ins,omitempty"`
	Registration Registration  `json:"registration"`
	Customer     Customer      `json:"customer"`
}

// Jurisdiction identifies where the deal is being registered.
type Jurisdiction struct {
	Country    string `json:"country"`
	StateCode  string `json:"state_code"`
	CountyName string `json:"county_name"`
	PostalCode string `json:"postal_code"`
}

// DealerContext identifies the selling dealer and its fee package selection.
type DealerContext struct {
	DealerID     string `json:"dealer_id"`
	FeePackageID string `json:"fee_package_id,omitempty"`
}

// DealTerms holds the negotiated financial terms of the deal.
type DealTerms struct {
	SellingPrice float64 `json:"selling_price"`
	CashDown     float64 `json:"cash_down"`
	TermMonths   int     `json:"term_months"`
	APRPercent   float64 `json:"apr_percent"`
	LenderType   string  `json:"lender_type,omitempty"`
	DealType     string  `json:"deal_type,omitempty"`
}

// Vehicle describes the unit being purchased.
type Vehicle struct {
	VIN       string `json:"vin,omitempty"`
	Year      int    `json:"year,omitempty"`
	Make      string `json:"make,omitempty"`
	Model     string `json:"model,omitempty"`
	Condition string `json:"condition,omitempty"`
}

// TradeIn is a vehicle the customer is trading against the purchase.
type TradeIn struct {
	EstimatedValue float64 `json:"estimated_value"`
	PayoffAmount   float64 `json:"payoff_amount"`
}

// Equity returns the positive equity this trade-in contributes to the
// deal. Negative equity never reduces the taxable base, so it clamps to 0.
func (t TradeIn) Equity() float64 {
	if eq := t.EstimatedValue - t.PayoffAmount; eq > 0 {
		return eq
	}
	return 0
}

// PlateScenario values recognized by the scenario detector.
const (
	PlateTransferExisting = "transfer_existing_plate"
	PlateNew              = "new_plate"
)

// Registration holds plate and titling facts for the deal.
type Registration struct {
	PlateScenario         string `json:"plate_scenario"`
	FirstTimeRegistration bool   `json:"first_time_registration"`
}

// Customer holds the residency facts relevant to jurisdiction rules.
type Customer struct {
	ResidencyState string `json:"residency_state,omitempty"`
}

// ScenarioType is one of the six mutually exclusive purchase archetypes.
type ScenarioType string

// Scenario type constants.
const (
	ScenarioTradeInTagTransferFinanced ScenarioType = "trade_in_tag_transfer_financed"
	ScenarioTradeInTagTransferCash     ScenarioType = "trade_in_tag_transfer_cash"
	ScenarioNewTagFinanced             ScenarioType = "new_tag_financed"
	ScenarioNewTagCash                 ScenarioType = "new_tag_cash"
	ScenarioStandardFinanced           ScenarioType = "standard_financed"
	ScenarioStandardCash               ScenarioType = "standard_cash"
)

// DetectedScenario is the discrete classification derived from a
// ScenarioInput. It is never stored independently of its input.
type DetectedScenario struct {
	Type                    ScenarioType `json:"type"`
	HasTradeIn              bool         `json:"has_trade_in"`
	IsFinanced              bool         `json:"is_financed"`
	IsTagTransfer           bool         `json:"is_tag_transfer"`
	IsFirstTimeRegistration bool         `json:"is_first_time_registration"`
}
