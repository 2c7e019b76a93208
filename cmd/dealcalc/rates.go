package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Veraticus/dealcalc/internal/cli"
	"github.com/Veraticus/dealcalc/internal/rates"
)

func ratesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rates",
		Short: "Match a lender rate program",
		Long: `Select the lowest-APR program from a lender's cached rate table
for the requested term and vehicle condition. Credit-banded rate sets
also need --score.`,
		RunE: runRates,
	}

	cmd.Flags().String("provider", "", "rate provider id (required)")
	cmd.Flags().Int("term", 0, "loan term in months (required)")
	cmd.Flags().String("condition", "used", "vehicle condition (new, used)")
	cmd.Flags().Int("score", 0, "credit score, for credit-banded rate sets")

	_ = cmd.MarkFlagRequired("provider")
	_ = cmd.MarkFlagRequired("term")

	return cmd
}

func runRates(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	provider, _ := cmd.Flags().GetString("provider")
	term, _ := cmd.Flags().GetInt("term")
	vehicleCondition, _ := cmd.Flags().GetString("condition")

	criteria := rates.Criteria{
		TermMonths: term,
		Condition:  vehicleCondition,
	}
	if cmd.Flags().Changed("score") {
		score, _ := cmd.Flags().GetInt("score")
		criteria.CreditScore = &score
	}

	cache := initRateCache()
	set, err := cache.GetRateSet(ctx, provider)
	if err != nil {
		return fmt.Errorf("failed to load rate set for %s: %w", provider, err)
	}

	result := rates.MatchProgram(*set, criteria)
	fmt.Fprintln(cmd.OutOrStdout(), cli.RenderRateMatch(result))

	return nil
}
