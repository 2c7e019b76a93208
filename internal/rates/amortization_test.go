package rates

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMonthlyPayment(t *testing.T) {
	tests := []struct {
		name        string
		principal   float64
		monthlyRate float64
		termMonths  int
		fallbackAPR float64
		want        float64
	}{
		{
			name:        "standard annuity",
			principal:   30000,
			monthlyRate: 0.0599 / 12,
			termMonths:  60,
			want:        579.84,
		},
		{
			name:        "zero rate spreads evenly",
			principal:   12000,
			monthlyRate: 0,
			termMonths:  12,
			want:        1000,
		},
		{
			name:        "negative rate uses fallback",
			principal:   12000,
			monthlyRate: -0.01,
			termMonths:  12,
			fallbackAPR: 0.12,
			want:        1066.19,
		},
		{
			name:        "nan rate uses fallback",
			principal:   12000,
			monthlyRate: math.NaN(),
			termMonths:  12,
			fallbackAPR: 0.12,
			want:        1066.19,
		},
		{
			name:        "infinite rate with zero fallback spreads evenly",
			principal:   12000,
			monthlyRate: math.Inf(1),
			termMonths:  12,
			want:        1000,
		},
		{
			name:       "zero term",
			principal:  12000,
			termMonths: 0,
			want:       0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MonthlyPayment(tt.principal, tt.monthlyRate, tt.termMonths, tt.fallbackAPR)
			assert.InDelta(t, tt.want, got, 0.05)
		})
	}
}

func TestPrincipalFromPaymentInvertsMonthlyPayment(t *testing.T) {
	tests := []struct {
		name        string
		principal   float64
		monthlyRate float64
		termMonths  int
	}{
		{name: "typical loan", principal: 30000, monthlyRate: 0.0599 / 12, termMonths: 60},
		{name: "short high rate", principal: 5000, monthlyRate: 0.18 / 12, termMonths: 12},
		{name: "long low rate", principal: 80000, monthlyRate: 0.029 / 12, termMonths: 84},
		{name: "zero rate", principal: 24000, monthlyRate: 0, termMonths: 48},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payment := MonthlyPayment(tt.principal, tt.monthlyRate, tt.termMonths, tt.monthlyRate*12)
			recovered := PrincipalFromPayment(payment, tt.monthlyRate, tt.termMonths)
			assert.InDelta(t, tt.principal, recovered, 0.01)
		})
	}
}

func TestSolveTermForPayment(t *testing.T) {
	t.Run("recovers the original term", func(t *testing.T) {
		monthlyRate := 0.0599 / 12
		payment := MonthlyPayment(30000, monthlyRate, 60, 0.0599)

		months, err := SolveTermForPayment(30000, payment, monthlyRate)
		require.NoError(t, err)
		assert.InDelta(t, 60, months, 0.01)
	})

	t.Run("zero rate solves linearly", func(t *testing.T) {
		months, err := SolveTermForPayment(12000, 500, 0)
		require.NoError(t, err)
		assert.InDelta(t, 24, months, 1e-9)
	})

	t.Run("payment equal to monthly interest never amortizes", func(t *testing.T) {
		monthlyRate := 0.06 / 12
		// Interest on 30000 at 0.5%/month is exactly 150.
		_, err := SolveTermForPayment(30000, 150, monthlyRate)
		assert.ErrorIs(t, err, ErrPaymentTooSmall)
	})

	t.Run("payment below monthly interest never amortizes", func(t *testing.T) {
		_, err := SolveTermForPayment(30000, 100, 0.06/12)
		assert.ErrorIs(t, err, ErrPaymentTooSmall)
	})

	t.Run("zero payment rejected", func(t *testing.T) {
		_, err := SolveTermForPayment(30000, 0, 0.06/12)
		assert.ErrorIs(t, err, ErrPaymentTooSmall)
	})

	t.Run("negative payment rejected at zero rate", func(t *testing.T) {
		_, err := SolveTermForPayment(30000, -50, 0)
		assert.ErrorIs(t, err, ErrPaymentTooSmall)
	})

	t.Run("result is positive and finite", func(t *testing.T) {
		months, err := SolveTermForPayment(30000, 600, 0.0599/12)
		require.NoError(t, err)
		assert.Greater(t, months, 0.0)
		assert.False(t, math.IsInf(months, 0))
	})
}
