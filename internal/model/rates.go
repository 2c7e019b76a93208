package model

import "time"

// LenderRateRecord is one row of a lender's rate table.
type LenderRateRecord struct {
	EffectiveDate    time.Time `json:"effective_date,omitempty"`
	ProviderID       string    `json:"provider_id"`
	Source           string    `json:"source,omitempty"`
	ProgramLabel     string    `json:"program_label"`
	VehicleCondition string    `json:"vehicle_condition"`
	TermMin          int       `json:"term_min"`
	TermMax          int       `json:"term_max"`
	CreditScoreMin   int       `json:"credit_score_min,omitempty"`
	CreditScoreMax   int       `json:"credit_score_max,omitempty"`
	APRPercent       float64   `json:"apr_percent"`
}

// RateSet is a lender's rate table. IsCreditBanded is a property of the
// set as a whole: banded sets cannot select a program without a credit
// score.
type RateSet struct {
	ProviderID     string             `json:"provider_id"`
	Records        []LenderRateRecord `json:"records"`
	IsCreditBanded bool               `json:"is_credit_banded"`
}
