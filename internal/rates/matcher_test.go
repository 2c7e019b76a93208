package rates

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/dealcalc/internal/model"
)

func intPtr(i int) *int { return &i }

func bandedSet() model.RateSet {
	return model.RateSet{
		ProviderID:     "acme-credit",
		IsCreditBanded: true,
		Records: []model.LenderRateRecord{
			{ProgramLabel: "used tier 1", VehicleCondition: "used", TermMin: 24, TermMax: 60, CreditScoreMin: 720, CreditScoreMax: 850, APRPercent: 5.49},
			{ProgramLabel: "used tier 2", VehicleCondition: "used", TermMin: 24, TermMax: 60, CreditScoreMin: 640, CreditScoreMax: 719, APRPercent: 7.99},
			{ProgramLabel: "used long", VehicleCondition: "used", TermMin: 61, TermMax: 84, CreditScoreMin: 640, CreditScoreMax: 850, APRPercent: 8.49},
			{ProgramLabel: "new tier 1", VehicleCondition: "new", TermMin: 24, TermMax: 72, CreditScoreMin: 720, CreditScoreMax: 850, APRPercent: 4.99},
		},
	}
}

func unbandedSet() model.RateSet {
	return model.RateSet{
		ProviderID: "flat-rate-bank",
		Records: []model.LenderRateRecord{
			{ProgramLabel: "used standard", VehicleCondition: "used", TermMin: 12, TermMax: 72, APRPercent: 6.99},
			{ProgramLabel: "used promo", VehicleCondition: "used", TermMin: 36, TermMax: 60, APRPercent: 5.99},
			{ProgramLabel: "used promo twin", VehicleCondition: "used", TermMin: 36, TermMax: 60, APRPercent: 5.99},
		},
	}
}

func TestMatchProgram(t *testing.T) {
	tests := []struct {
		name       string
		set        model.RateSet
		criteria   Criteria
		wantStatus MatchStatus
		wantLabel  string
	}{
		{
			name:       "banded with score matches cheapest in band",
			set:        bandedSet(),
			criteria:   Criteria{TermMonths: 60, Condition: "used", CreditScore: intPtr(750)},
			wantStatus: StatusMatched,
			wantLabel:  "used tier 1",
		},
		{
			name:       "banded without score needs credit score",
			set:        bandedSet(),
			criteria:   Criteria{TermMonths: 60, Condition: "used"},
			wantStatus: StatusNeedsCreditScore,
		},
		{
			name:       "banded without score but no term match is no match",
			set:        bandedSet(),
			criteria:   Criteria{TermMonths: 96, Condition: "used"},
			wantStatus: StatusNoMatch,
		},
		{
			name:       "score outside every band",
			set:        bandedSet(),
			criteria:   Criteria{TermMonths: 60, Condition: "used", CreditScore: intPtr(500)},
			wantStatus: StatusNoMatch,
		},
		{
			name:       "score boundary is inclusive",
			set:        bandedSet(),
			criteria:   Criteria{TermMonths: 60, Condition: "used", CreditScore: intPtr(719)},
			wantStatus: StatusMatched,
			wantLabel:  "used tier 2",
		},
		{
			name:       "term boundary is inclusive",
			set:        bandedSet(),
			criteria:   Criteria{TermMonths: 24, Condition: "used", CreditScore: intPtr(750)},
			wantStatus: StatusMatched,
			wantLabel:  "used tier 1",
		},
		{
			name:       "condition filters records",
			set:        bandedSet(),
			criteria:   Criteria{TermMonths: 60, Condition: "new", CreditScore: intPtr(750)},
			wantStatus: StatusMatched,
			wantLabel:  "new tier 1",
		},
		{
			name:       "unknown condition is no match",
			set:        bandedSet(),
			criteria:   Criteria{TermMonths: 60, Condition: "certified", CreditScore: intPtr(750)},
			wantStatus: StatusNoMatch,
		},
		{
			name:       "unbanded picks lowest apr without score",
			set:        unbandedSet(),
			criteria:   Criteria{TermMonths: 48, Condition: "used"},
			wantStatus: StatusMatched,
			wantLabel:  "used promo",
		},
		{
			name:       "unbanded apr tie keeps first encountered",
			set:        unbandedSet(),
			criteria:   Criteria{TermMonths: 60, Condition: "used"},
			wantStatus: StatusMatched,
			wantLabel:  "used promo",
		},
		{
			name:       "unbanded ignores supplied score",
			set:        unbandedSet(),
			criteria:   Criteria{TermMonths: 48, Condition: "used", CreditScore: intPtr(400)},
			wantStatus: StatusMatched,
			wantLabel:  "used promo",
		},
		{
			name:       "empty rate set",
			set:        model.RateSet{ProviderID: "empty"},
			criteria:   Criteria{TermMonths: 60, Condition: "used"},
			wantStatus: StatusNoMatch,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MatchProgram(tt.set, tt.criteria)

			assert.Equal(t, tt.wantStatus, got.Status)
			if tt.wantStatus == StatusMatched {
				require.NotNil(t, got.Match)
				assert.Equal(t, tt.wantLabel, got.Match.ProgramLabel)
			} else {
				assert.Nil(t, got.Match)
			}
		})
	}
}
