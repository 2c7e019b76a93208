package cli

import (
	"fmt"
	"strings"

	"github.com/Veraticus/dealcalc/internal/model"
	"github.com/Veraticus/dealcalc/internal/rates"
)

// RenderQuote formats a computed deal for the terminal.
func RenderQuote(result *model.ScenarioResult) string {
	var b strings.Builder

	b.WriteString(TitleStyle.Render("Deal Summary"))
	b.WriteString("\n")
	b.WriteString(SubtleStyle.Render(fmt.Sprintf("Scenario: %s", result.DetectedScenario.Type)))
	b.WriteString("\n\n")

	if items := filterCategory(result.LineItems, model.CategoryGovernment); len(items) > 0 {
		b.WriteString(BoldStyle.Render("Government Fees"))
		b.WriteString("\n")
		writeLineItems(&b, items)
		b.WriteString(fmt.Sprintf("  %-28s %10s\n", "Subtotal", money(result.Totals.GovernmentFees)))
		b.WriteString("\n")
	}

	if items := filterCategory(result.LineItems, model.CategoryDealer); len(items) > 0 {
		b.WriteString(BoldStyle.Render("Dealer Fees"))
		b.WriteString("\n")
		writeLineItems(&b, items)
		b.WriteString(fmt.Sprintf("  %-28s %10s\n", "Subtotal", money(result.Totals.DealerFees)))
		b.WriteString("\n")
	}

	b.WriteString(BoldStyle.Render("Taxes"))
	b.WriteString("\n")
	tb := result.TaxBreakdown
	b.WriteString(fmt.Sprintf("  %-28s %10s\n", "Taxable base", money(tb.TaxableBase)))
	b.WriteString(fmt.Sprintf("  %-28s %10s\n", fmt.Sprintf("State tax (%.2f%%)", tb.StateTaxRate*100), money(tb.StateTax)))
	if tb.CountyTaxRate > 0 {
		label := fmt.Sprintf("County tax (%.2f%%)", tb.CountyTaxRate*100)
		if tb.CountyTaxCapped {
			label += " capped"
		}
		b.WriteString(fmt.Sprintf("  %-28s %10s\n", label, money(tb.CountyTax)))
	}
	b.WriteString(fmt.Sprintf("  %-28s %10s\n", "Total tax", money(tb.TotalTax)))
	b.WriteString("\n")

	b.WriteString(BoldStyle.Render("Totals"))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("  %-28s %10s\n", "Total fees", money(result.Totals.TotalFees)))
	amountLabel := "Amount financed"
	if !result.DetectedScenario.IsFinanced {
		amountLabel = "Cash due"
	}
	b.WriteString(fmt.Sprintf("  %-28s %10s\n", amountLabel, money(result.Totals.AmountFinanced)))

	return b.String()
}

// RenderRateMatch formats the outcome of a rate program lookup.
func RenderRateMatch(result rates.MatchResult) string {
	switch result.Status {
	case rates.StatusMatched:
		m := result.Match
		return FormatSuccess(fmt.Sprintf("%s: %.2f%% APR (terms %d-%d months)",
			m.ProgramLabel, m.APRPercent, m.TermMin, m.TermMax))
	case rates.StatusNeedsCreditScore:
		return FormatWarning("rate set is credit banded; supply --score to match a program")
	default:
		return FormatError("no rate program matches the requested term and condition")
	}
}

// RenderRuleList formats jurisdiction rules as a table.
func RenderRuleList(ruleList []model.JurisdictionRule) string {
	if len(ruleList) == 0 {
		return SubtleStyle.Render("no rules")
	}

	var b strings.Builder
	b.WriteString(HeaderStyle.Render(fmt.Sprintf("%-30s %-6s %-16s %-16s %10s", "ID", "State", "County", "Type", "Amount")))
	b.WriteString("\n")
	for _, rule := range ruleList {
		amount := money(rule.Payload.Amount)
		if rule.RuleType == model.RuleTypeTaxCalculation && rule.Payload.TaxRate != nil {
			amount = fmt.Sprintf("%.2f%%", *rule.Payload.TaxRate*100)
		}
		b.WriteString(fmt.Sprintf("%-30s %-6s %-16s %-16s %10s\n",
			truncate(rule.ID, 30), rule.StateCode, rule.CountyName, rule.RuleType, amount))
	}
	return b.String()
}

func filterCategory(items []model.LineItem, category model.LineItemCategory) []model.LineItem {
	var filtered []model.LineItem
	for _, item := range items {
		if item.Category == category {
			filtered = append(filtered, item)
		}
	}
	return filtered
}

func writeLineItems(b *strings.Builder, items []model.LineItem) {
	for _, item := range items {
		desc := item.Description
		if desc == "" {
			desc = item.Code
		}
		taxable := ""
		if item.Taxable {
			taxable = SubtleStyle.Render(" (taxable)")
		}
		b.WriteString(fmt.Sprintf("  %-28s %10s%s\n", truncate(desc, 28), money(item.Amount), taxable))
	}
}

func money(amount float64) string {
	return fmt.Sprintf("$%.2f", amount)
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	if max <= 3 {
		return s[:max]
	}
	return s[:max-3] + "..."
}
