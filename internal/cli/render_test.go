package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Veraticus/dealcalc/internal/model"
	"github.com/Veraticus/dealcalc/internal/rates"
)

func TestRenderQuote(t *testing.T) {
	result := &model.ScenarioResult{
		DetectedScenario: model.DetectedScenario{Type: model.ScenarioStandardFinanced, IsFinanced: true},
		LineItems: []model.LineItem{
			{Code: "TITLE", Category: model.CategoryGovernment, Description: "Title Fee", Amount: 75.25},
			{Code: "DOC", Category: model.CategoryDealer, Description: "Doc Fee", Amount: 799, Taxable: true},
		},
		Totals: model.Totals{
			GovernmentFees: 75.25,
			DealerFees:     799,
			TotalFees:      874.25,
			AmountFinanced: 32724.25,
		},
		TaxBreakdown: model.TaxBreakdown{
			TaxableBase:  30799,
			StateTaxRate: 0.06,
			StateTax:     1847.94,
			TotalTax:     1847.94,
		},
	}

	out := RenderQuote(result)

	assert.Contains(t, out, "Title Fee")
	assert.Contains(t, out, "$75.25")
	assert.Contains(t, out, "Doc Fee")
	assert.Contains(t, out, "State tax (6.00%)")
	assert.Contains(t, out, "Amount financed")
}

func TestRenderQuoteCashDeal(t *testing.T) {
	result := &model.ScenarioResult{
		DetectedScenario: model.DetectedScenario{Type: model.ScenarioStandardCash},
		Totals:           model.Totals{AmountFinanced: 31850},
		TaxBreakdown:     model.TaxBreakdown{TaxableBase: 30000, StateTaxRate: 0.06, StateTax: 1800, TotalTax: 1800},
	}

	out := RenderQuote(result)

	assert.Contains(t, out, "Cash due")
	assert.NotContains(t, out, "Amount financed")
}

func TestRenderRateMatch(t *testing.T) {
	matched := rates.MatchResult{
		Status: rates.StatusMatched,
		Match: &model.LenderRateRecord{
			ProgramLabel: "used tier 1",
			APRPercent:   5.49,
			TermMin:      24,
			TermMax:      60,
		},
	}
	assert.Contains(t, RenderRateMatch(matched), "5.49")

	assert.Contains(t, RenderRateMatch(rates.MatchResult{Status: rates.StatusNeedsCreditScore}), "credit banded")
	assert.Contains(t, RenderRateMatch(rates.MatchResult{Status: rates.StatusNoMatch}), "no rate program")
}

func TestRenderRuleList(t *testing.T) {
	rate := 0.06
	out := RenderRuleList([]model.JurisdictionRule{
		{ID: "fl-title", StateCode: "FL", RuleType: model.RuleTypeGovernmentFee, Payload: model.RulePayload{Amount: 75.25}},
		{ID: "fl-state-tax", StateCode: "FL", RuleType: model.RuleTypeTaxCalculation, Payload: model.RulePayload{TaxRate: &rate}},
	})

	assert.Contains(t, out, "fl-title")
	assert.Contains(t, out, "$75.25")
	assert.Contains(t, out, "6.00%")

	assert.Contains(t, RenderRuleList(nil), "no rules")
}
