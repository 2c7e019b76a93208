package rules

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/dealcalc/internal/model"
)

func intPtr(i int) *int           { return &i }
func floatPtr(f float64) *float64 { return &f }

func feeRule(id string, priority *int, conditionJSON string) model.JurisdictionRule {
	rule := model.JurisdictionRule{
		ID:        id,
		StateCode: "FL",
		RuleType:  model.RuleTypeGovernmentFee,
		Payload: model.RulePayload{
			FeeCode:  id,
			Amount:   10,
			Priority: priority,
		},
	}
	if conditionJSON != "" {
		if err := json.Unmarshal([]byte(conditionJSON), &rule.Conditions); err != nil {
			panic(err)
		}
	}
	return rule
}

func taxRule(id, state, county string, rate float64, capAmount *float64) model.JurisdictionRule {
	return model.JurisdictionRule{
		ID:         id,
		StateCode:  state,
		CountyName: county,
		RuleType:   model.RuleTypeTaxCalculation,
		Payload: model.RulePayload{
			TaxRate:   floatPtr(rate),
			CapAmount: capAmount,
		},
	}
}

func financedRecord() map[string]any {
	return map[string]any{
		"scenario": map[string]any{
			"isFinanced": true,
		},
	}
}

func TestFindApplicableGovernmentFees(t *testing.T) {
	tests := []struct {
		name    string
		rules   []model.JurisdictionRule
		wantIDs []string
	}{
		{
			name: "unconditional rules all match",
			rules: []model.JurisdictionRule{
				feeRule("title", intPtr(100), ""),
				feeRule("plate", intPtr(80), ""),
			},
			wantIDs: []string{"title", "plate"},
		},
		{
			name: "sorted descending by priority",
			rules: []model.JurisdictionRule{
				feeRule("plate", intPtr(80), ""),
				feeRule("title", intPtr(100), ""),
				feeRule("lien", intPtr(90), ""),
			},
			wantIDs: []string{"title", "lien", "plate"},
		},
		{
			name: "condition filters non-matching rules",
			rules: []model.JurisdictionRule{
				feeRule("title", intPtr(100), ""),
				feeRule("lien", intPtr(90), `{"==": [{"var": "scenario.isFinanced"}, true]}`),
				feeRule("cash-only", intPtr(95), `{"==": [{"var": "scenario.isFinanced"}, false]}`),
			},
			wantIDs: []string{"title", "lien"},
		},
		{
			name: "missing priority sorts as zero",
			rules: []model.JurisdictionRule{
				feeRule("unranked", nil, ""),
				feeRule("ranked", intPtr(1), ""),
				feeRule("negative", intPtr(-5), ""),
			},
			wantIDs: []string{"ranked", "unranked", "negative"},
		},
		{
			name: "equal priority keeps input order",
			rules: []model.JurisdictionRule{
				feeRule("first", intPtr(50), ""),
				feeRule("second", intPtr(50), ""),
				feeRule("third", intPtr(50), ""),
			},
			wantIDs: []string{"first", "second", "third"},
		},
		{
			name: "tax rules are excluded",
			rules: []model.JurisdictionRule{
				feeRule("title", intPtr(100), ""),
				taxRule("state-tax", "FL", "", 0.06, nil),
			},
			wantIDs: []string{"title"},
		},
		{
			name: "malformed condition fails closed",
			rules: []model.JurisdictionRule{
				feeRule("title", intPtr(100), ""),
				feeRule("broken", intPtr(200), `{"regex_match": [{"var": "x"}, "y"]}`),
			},
			wantIDs: []string{"title"},
		},
		{
			name:    "empty input",
			rules:   nil,
			wantIDs: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FindApplicableGovernmentFees(tt.rules, financedRecord())

			gotIDs := make([]string, 0, len(got))
			for _, rule := range got {
				gotIDs = append(gotIDs, rule.ID)
			}
			if tt.wantIDs == nil {
				assert.Empty(t, gotIDs)
			} else {
				assert.Equal(t, tt.wantIDs, gotIDs)
			}
		})
	}
}

func TestFindApplicableGovernmentFeesDoesNotMutateInput(t *testing.T) {
	input := []model.JurisdictionRule{
		feeRule("low", intPtr(1), ""),
		feeRule("high", intPtr(100), ""),
	}

	_ = FindApplicableGovernmentFees(input, financedRecord())

	assert.Equal(t, "low", input[0].ID)
	assert.Equal(t, "high", input[1].ID)
}

func TestFindTaxRules(t *testing.T) {
	ruleSet := []model.JurisdictionRule{
		feeRule("title", intPtr(100), ""),
		taxRule("fl-state", "FL", "", 0.06, nil),
		taxRule("fl-hillsborough", "FL", "Hillsborough", 0.01, floatPtr(5000)),
		taxRule("ga-state", "GA", "", 0.07, nil),
	}

	t.Run("state and county both resolve", func(t *testing.T) {
		pair := FindTaxRules(ruleSet, "FL", "Hillsborough")
		require.NotNil(t, pair.State)
		require.NotNil(t, pair.County)
		assert.Equal(t, "fl-state", pair.State.ID)
		assert.Equal(t, "fl-hillsborough", pair.County.ID)
	})

	t.Run("unknown county leaves county nil", func(t *testing.T) {
		pair := FindTaxRules(ruleSet, "FL", "Duval")
		require.NotNil(t, pair.State)
		assert.Nil(t, pair.County)
	})

	t.Run("county match is case sensitive", func(t *testing.T) {
		pair := FindTaxRules(ruleSet, "FL", "hillsborough")
		assert.Nil(t, pair.County)
	})

	t.Run("state without rules", func(t *testing.T) {
		pair := FindTaxRules(ruleSet, "TX", "")
		assert.Nil(t, pair.State)
		assert.Nil(t, pair.County)
	})

	t.Run("first state rule wins", func(t *testing.T) {
		doubled := append([]model.JurisdictionRule{}, ruleSet...)
		doubled = append(doubled, taxRule("fl-state-2", "FL", "", 0.065, nil))
		pair := FindTaxRules(doubled, "FL", "")
		require.NotNil(t, pair.State)
		assert.Equal(t, "fl-state", pair.State.ID)
	})

	t.Run("empty county name requested", func(t *testing.T) {
		pair := FindTaxRules(ruleSet, "FL", "")
		require.NotNil(t, pair.State)
		assert.Nil(t, pair.County)
	})
}
