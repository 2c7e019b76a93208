// Package engine orchestrates the deal computation pipeline: scenario
// detection, rule matching, fee assembly, and tax calculation.
package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Veraticus/dealcalc/internal/common"
	"github.com/Veraticus/dealcalc/internal/model"
	"github.com/Veraticus/dealcalc/internal/rules"
	"github.com/Veraticus/dealcalc/internal/scenario"
	"github.com/Veraticus/dealcalc/internal/service"
	"github.com/Veraticus/dealcalc/internal/tax"
)

// Calculator computes deal terms. Rule and dealer config retrieval is the
// only I/O boundary; everything downstream of Compute is pure and safe to
// run concurrently.
type Calculator struct {
	rules   service.RuleStore
	dealers service.DealerConfigStore
}

// New creates a calculator backed by the given stores.
func New(ruleStore service.RuleStore, dealerStore service.DealerConfigStore) *Calculator {
	return &Calculator{
		rules:   ruleStore,
		dealers: dealerStore,
	}
}

// Calculate resolves the deal's reference data from the stores and runs
// the pure computation. A dealer with no config gets empty dealer fees; a
// jurisdiction with no rules gets default tax rates and no government
// fees. Only store I/O can fail.
func (c *Calculator) Calculate(ctx context.Context, in model.ScenarioInput) (*model.ScenarioResult, error) {
	jurisdictionRules, err := c.rules.GetRulesForJurisdiction(ctx, in.Jurisdiction.StateCode, in.Jurisdiction.CountyName)
	if err != nil {
		return nil, fmt.Errorf("failed to load jurisdiction rules: %w", err)
	}

	dealerConfig, err := c.dealers.GetDealerConfig(ctx, in.Dealer.DealerID)
	if err != nil && !errors.Is(err, common.ErrNotFound) {
		return nil, fmt.Errorf("failed to load dealer config: %w", err)
	}

	slog.Debug("Computing deal",
		"state", in.Jurisdiction.StateCode,
		"county", in.Jurisdiction.CountyName,
		"rules", len(jurisdictionRules),
		"dealer", in.Dealer.DealerID)

	result := Compute(in, jurisdictionRules, dealerConfig)
	return result, nil
}

// Compute runs the deal computation over fully resolved inputs. It is a
// pure function: identical inputs always produce identical results, and
// the inputs are never mutated.
func Compute(in model.ScenarioInput, jurisdictionRules []model.JurisdictionRule, dealerConfig *model.DealerConfig) *model.ScenarioResult {
	detected := scenario.Detect(in)
	record := model.Record(in, detected)

	govRules := rules.FindApplicableGovernmentFees(jurisdictionRules, record)
	govItems := make([]model.LineItem, 0, len(govRules))
	for _, rule := range govRules {
		govItems = append(govItems, model.LineItem{
			Code:        rule.Payload.FeeCode,
			Category:    model.CategoryGovernment,
			Description: rule.Payload.Label,
			Amount:      rule.Payload.Amount,
			Taxable:     rule.Payload.Taxable,
		})
	}

	var dealerItems []model.LineItem
	if pkg, ok := dealerConfig.ResolvePackage(in.Dealer.FeePackageID); ok {
		dealerItems = make([]model.LineItem, 0, len(pkg.Fees))
		for _, fee := range pkg.Fees {
			dealerItems = append(dealerItems, model.LineItem{
				Code:        fee.Code,
				Category:    model.CategoryDealer,
				Description: fee.Description,
				Amount:      fee.Amount,
				Taxable:     fee.Taxable,
			})
		}
	}

	taxRules := rules.FindTaxRules(jurisdictionRules, in.Jurisdiction.StateCode, in.Jurisdiction.CountyName)
	breakdown := tax.Calculate(in, govItems, dealerItems, taxRules)

	totals := model.Totals{
		GovernmentFees: sumAmounts(govItems),
		DealerFees:     sumAmounts(dealerItems),
	}
	totals.TotalFees = totals.GovernmentFees + totals.DealerFees
	// For cash deals this is simply the cash due at signing.
	totals.AmountFinanced = in.Deal.SellingPrice - in.Deal.CashDown + totals.TotalFees + breakdown.TotalTax

	lineItems := make([]model.LineItem, 0, len(govItems)+len(dealerItems))
	lineItems = append(lineItems, govItems...)
	lineItems = append(lineItems, dealerItems...)

	return &model.ScenarioResult{
		DetectedScenario: detected,
		LineItems:        lineItems,
		Totals:           totals,
		TaxBreakdown:     breakdown,
	}
}

func sumAmounts(items []model.LineItem) float64 {
	var total float64
	for _, item := range items {
		total += item.Amount
	}
	return total
}
