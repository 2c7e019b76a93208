package main

import (
	"errors"
	"fmt"
	"math"

	"github.com/spf13/cobra"

	"github.com/Veraticus/dealcalc/internal/cli"
	"github.com/Veraticus/dealcalc/internal/expr"
	"github.com/Veraticus/dealcalc/internal/rates"
)

func amortizeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "amortize",
		Short: "Loan payment math",
		Long: `Solve the annuity equation in any direction:

  --principal --term        monthly payment
  --payment --term          principal a payment supports
  --principal --payment     months to pay off

--apr applies to all three; omit it for a zero-interest calculation.`,
		RunE: runAmortize,
	}

	cmd.Flags().String("principal", "", "loan principal")
	cmd.Flags().String("payment", "", "monthly payment")
	cmd.Flags().Int("term", 0, "term in months")
	cmd.Flags().String("apr", "0", "annual percentage rate")

	return cmd
}

func runAmortize(cmd *cobra.Command, _ []string) error {
	principalText, _ := cmd.Flags().GetString("principal")
	paymentText, _ := cmd.Flags().GetString("payment")
	term, _ := cmd.Flags().GetInt("term")
	aprText, _ := cmd.Flags().GetString("apr")

	monthlyRate := expr.EvaluatePercent(aprText, 0) / 12
	out := cmd.OutOrStdout()

	hasPrincipal := principalText != ""
	hasPayment := paymentText != ""

	switch {
	case hasPrincipal && term > 0 && !hasPayment:
		principal, err := expr.EvaluateCurrency(principalText)
		if err != nil {
			return fmt.Errorf("invalid --principal %q: %w", principalText, err)
		}
		payment := rates.MonthlyPayment(principal, monthlyRate, term, 0)
		fmt.Fprintf(out, "Monthly payment: $%.2f\n", payment)
		fmt.Fprintf(out, "Total paid:      $%.2f\n", payment*float64(term))

	case hasPayment && term > 0 && !hasPrincipal:
		payment, err := expr.EvaluateCurrency(paymentText)
		if err != nil {
			return fmt.Errorf("invalid --payment %q: %w", paymentText, err)
		}
		principal := rates.PrincipalFromPayment(payment, monthlyRate, term)
		fmt.Fprintf(out, "Principal: $%.2f\n", principal)

	case hasPrincipal && hasPayment:
		principal, err := expr.EvaluateCurrency(principalText)
		if err != nil {
			return fmt.Errorf("invalid --principal %q: %w", principalText, err)
		}
		payment, err := expr.EvaluateCurrency(paymentText)
		if err != nil {
			return fmt.Errorf("invalid --payment %q: %w", paymentText, err)
		}
		months, err := rates.SolveTermForPayment(principal, payment, monthlyRate)
		if errors.Is(err, rates.ErrPaymentTooSmall) {
			fmt.Fprintln(out, cli.FormatError("payment does not cover monthly interest; the loan never amortizes"))
			return nil
		}
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Term: %.1f months (%d payments)\n", months, int(math.Ceil(months)))

	default:
		return errors.New("provide two of --principal, --payment, --term")
	}

	return nil
}
