package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Veraticus/dealcalc/internal/cli"
	"github.com/Veraticus/dealcalc/internal/engine"
	"github.com/Veraticus/dealcalc/internal/expr"
	"github.com/Veraticus/dealcalc/internal/model"
	"github.com/Veraticus/dealcalc/internal/rates"
)

func quoteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "quote",
		Short: "Compute the full terms of a deal",
		Long: `Compute government fees, dealer fees, taxes, and the amount
financed for a deal, using the jurisdiction rules and dealer config in
the local database.

Money flags accept free-form entry: "$30,000", "28000 + 1500", etc.`,
		RunE: runQuote,
	}

	cmd.Flags().String("state", "", "two-letter state code (required)")
	cmd.Flags().String("county", "", "county name as stored in the rule data")
	cmd.Flags().String("price", "", "vehicle selling price (required)")
	cmd.Flags().String("down", "0", "cash down payment")
	cmd.Flags().Int("term", 0, "loan term in months; 0 means a cash deal")
	cmd.Flags().String("apr", "", "quoted APR; falls back to a matched rate program")
	cmd.Flags().String("dealer", "", "dealer id for fee package lookup")
	cmd.Flags().String("package", "", "dealer fee package id; defaults to the dealer's default package")
	cmd.Flags().StringArray("trade", nil, "trade-in as value:payoff (repeatable)")
	cmd.Flags().String("plate", model.PlateNew, "plate scenario (new_plate, transfer_existing_plate)")
	cmd.Flags().Bool("first-time", false, "first-time registration")
	cmd.Flags().String("deal-type", "retail", "deal type")
	cmd.Flags().String("condition", "used", "vehicle condition (new, used)")
	cmd.Flags().String("provider", "", "rate provider id, used when --apr is omitted")
	cmd.Flags().Int("score", 0, "credit score, for credit-banded rate sets")

	_ = cmd.MarkFlagRequired("state")
	_ = cmd.MarkFlagRequired("price")

	return cmd
}

func runQuote(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	in, err := scenarioFromFlags(cmd)
	if err != nil {
		return err
	}

	if err := fillAPRFromRateProgram(cmd, in); err != nil {
		return err
	}

	store, err := initStorage(ctx)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() { _ = store.Close() }()

	calc := engine.New(store, store)
	result, err := calc.Calculate(ctx, *in)
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), cli.RenderQuote(result))

	if result.DetectedScenario.IsFinanced {
		monthlyRate := in.Deal.APRPercent / 100 / 12
		payment := rates.MonthlyPayment(result.Totals.AmountFinanced, monthlyRate, in.Deal.TermMonths, 0)
		fmt.Fprintf(cmd.OutOrStdout(), "  %-28s %10s\n",
			fmt.Sprintf("Monthly payment (%dmo)", in.Deal.TermMonths), fmt.Sprintf("$%.2f", payment))
	}

	return nil
}

func scenarioFromFlags(cmd *cobra.Command) (*model.ScenarioInput, error) {
	state, _ := cmd.Flags().GetString("state")
	county, _ := cmd.Flags().GetString("county")
	priceText, _ := cmd.Flags().GetString("price")
	downText, _ := cmd.Flags().GetString("down")
	term, _ := cmd.Flags().GetInt("term")
	aprText, _ := cmd.Flags().GetString("apr")
	dealer, _ := cmd.Flags().GetString("dealer")
	feePackage, _ := cmd.Flags().GetString("package")
	trades, _ := cmd.Flags().GetStringArray("trade")
	plate, _ := cmd.Flags().GetString("plate")
	firstTime, _ := cmd.Flags().GetBool("first-time")
	dealType, _ := cmd.Flags().GetString("deal-type")
	vehicleCondition, _ := cmd.Flags().GetString("condition")

	price, err := expr.EvaluateCurrency(priceText)
	if err != nil {
		return nil, fmt.Errorf("invalid --price %q: %w", priceText, err)
	}
	down, err := expr.EvaluateCurrency(downText)
	if err != nil {
		return nil, fmt.Errorf("invalid --down %q: %w", downText, err)
	}

	// An APR entered as "5.99" or "5.99%" both mean 5.99 percent.
	apr := expr.EvaluatePercent(aprText, 0) * 100

	tradeIns := make([]model.TradeIn, 0, len(trades))
	for _, spec := range trades {
		tradeIn, err := parseTradeIn(spec)
		if err != nil {
			return nil, err
		}
		tradeIns = append(tradeIns, tradeIn)
	}

	return &model.ScenarioInput{
		Jurisdiction: model.Jurisdiction{
			Country:    "US",
			StateCode:  strings.ToUpper(state),
			CountyName: county,
		},
		Dealer: model.DealerContext{
			DealerID:     dealer,
			FeePackageID: feePackage,
		},
		Deal: model.DealTerms{
			SellingPrice: price,
			CashDown:     down,
			TermMonths:   term,
			APRPercent:   apr,
			DealType:     dealType,
		},
		Vehicle: model.Vehicle{
			Condition: vehicleCondition,
		},
		TradeIns: tradeIns,
		Registration: model.Registration{
			PlateScenario:         plate,
			FirstTimeRegistration: firstTime,
		},
	}, nil
}

// fillAPRFromRateProgram resolves the deal APR from a cached lender rate
// program when no --apr was supplied for a financed deal.
func fillAPRFromRateProgram(cmd *cobra.Command, in *model.ScenarioInput) error {
	provider, _ := cmd.Flags().GetString("provider")
	if provider == "" || in.Deal.APRPercent != 0 || in.Deal.TermMonths <= 0 {
		return nil
	}

	cache := initRateCache()
	set, err := cache.GetRateSet(cmd.Context(), provider)
	if err != nil {
		return fmt.Errorf("failed to load rate set for %s: %w", provider, err)
	}

	criteria := rates.Criteria{
		TermMonths: in.Deal.TermMonths,
		Condition:  in.Vehicle.Condition,
	}
	if cmd.Flags().Changed("score") {
		score, _ := cmd.Flags().GetInt("score")
		criteria.CreditScore = &score
	}

	result := rates.MatchProgram(*set, criteria)
	if result.Status != rates.StatusMatched {
		fmt.Fprintln(cmd.OutOrStdout(), cli.RenderRateMatch(result))
		return fmt.Errorf("no usable rate program from %s; pass --apr explicitly", provider)
	}

	in.Deal.APRPercent = result.Match.APRPercent
	fmt.Fprintln(cmd.OutOrStdout(), cli.RenderRateMatch(result))
	return nil
}

// parseTradeIn parses a value:payoff pair; the payoff may be omitted.
func parseTradeIn(spec string) (model.TradeIn, error) {
	valueText, payoffText, _ := strings.Cut(spec, ":")

	value, err := expr.EvaluateCurrency(valueText)
	if err != nil {
		return model.TradeIn{}, fmt.Errorf("invalid --trade value %q: %w", spec, err)
	}

	var payoff float64
	if payoffText != "" {
		payoff, err = expr.EvaluateCurrency(payoffText)
		if err != nil {
			return model.TradeIn{}, fmt.Errorf("invalid --trade payoff %q: %w", spec, err)
		}
	}

	return model.TradeIn{EstimatedValue: value, PayoffAmount: payoff}, nil
}
