package rates

import (
	"errors"
	"math"
)

// ErrPaymentTooSmall is returned by SolveTermForPayment when the payment
// does not cover the first month's interest, so no term of any length
// amortizes the loan.
var ErrPaymentTooSmall = errors.New("payment too small to amortize the loan")

// MonthlyPayment computes the level payment for a loan using the standard
// annuity formula P * r(1+r)^n / ((1+r)^n - 1). A monthly rate that is
// not a finite positive number is replaced by fallbackAPR/12; if the
// resulting rate is exactly 0 the principal is spread evenly with no
// discounting.
func MonthlyPayment(principal, monthlyRate float64, termMonths int, fallbackAPR float64) float64 {
	if termMonths <= 0 {
		return 0
	}
	rate := monthlyRate
	if math.IsNaN(rate) || math.IsInf(rate, 0) || rate <= 0 {
		rate = fallbackAPR / 12
	}
	if rate == 0 {
		return principal / float64(termMonths)
	}

	factor := math.Pow(1+rate, float64(termMonths))
	return principal * rate * factor / (factor - 1)
}

// PrincipalFromPayment is the algebraic inverse of MonthlyPayment: the
// principal a given payment retires over the term at the given rate.
func PrincipalFromPayment(payment, monthlyRate float64, termMonths int) float64 {
	if termMonths <= 0 {
		return 0
	}
	if monthlyRate == 0 {
		return payment * float64(termMonths)
	}

	factor := math.Pow(1+monthlyRate, float64(termMonths))
	return payment * (factor - 1) / (monthlyRate * factor)
}

// SolveTermForPayment finds the number of months needed to retire the
// principal at the given payment. The annuity formula has no closed-form
// inverse for n, but the logarithmic identity
//
//	n = -ln(1 - r*P/payment) / ln(1+r)
//
// solves it when r*P/payment < 1. A payment at or below the monthly
// interest can never amortize and is reported as ErrPaymentTooSmall
// rather than a negative or infinite term.
func SolveTermForPayment(principal, payment, monthlyRate float64) (float64, error) {
	if payment <= 0 {
		return 0, ErrPaymentTooSmall
	}
	if monthlyRate == 0 {
		return principal / payment, nil
	}

	ratio := monthlyRate * principal / payment
	if ratio >= 1 {
		return 0, ErrPaymentTooSmall
	}

	return -math.Log(1-ratio) / math.Log(1+monthlyRate), nil
}
