// Package rules selects the jurisdiction rules that apply to a deal.
package rules

import (
	"sort"

	"github.com/Veraticus/dealcalc/internal/condition"
	"github.com/Veraticus/dealcalc/internal/model"
)

// FindApplicableGovernmentFees filters government fee rules whose
// conditions hold for the scenario record and sorts them by descending
// priority. The sort is stable: equal-priority rules keep their input
// order, and a missing priority counts as 0.
func FindApplicableGovernmentFees(rules []model.JurisdictionRule, record map[string]any) []model.JurisdictionRule {
	var matches []model.JurisdictionRule

	for _, rule := range rules {
		if rule.RuleType != model.RuleTypeGovernmentFee {
			continue
		}
		if !condition.Evaluate(rule.Conditions, record) {
			continue
		}
		matches = append(matches, rule)
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].PriorityOrZero() > matches[j].PriorityOrZero()
	})

	return matches
}

// TaxRulePair holds the tax rules resolved for a jurisdiction. Either
// side may be nil; the tax calculator falls back to jurisdiction defaults.
type TaxRulePair struct {
	State  *model.JurisdictionRule
	County *model.JurisdictionRule
}

// FindTaxRules resolves the state-level and county-level tax rules for a
// jurisdiction: the first tax rule scoped to the state with no county,
// and the first scoped to the exact county name as stored.
func FindTaxRules(rules []model.JurisdictionRule, stateCode, countyName string) TaxRulePair {
	var pair TaxRulePair

	for i := range rules {
		rule := &rules[i]
		if rule.RuleType != model.RuleTypeTaxCalculation || rule.StateCode != stateCode {
			continue
		}
		if rule.CountyName == "" {
			if pair.State == nil {
				pair.State = rule
			}
		} else if countyName != "" && rule.CountyName == countyName {
			if pair.County == nil {
				pair.County = rule
			}
		}
		if pair.State != nil && pair.County != nil {
			break
		}
	}

	return pair
}
