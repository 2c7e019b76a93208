package scenario

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Veraticus/dealcalc/internal/model"
)

func buildInput(tradeIns int, termMonths int, plate string, firstTime bool) model.ScenarioInput {
	in := model.ScenarioInput{
		Deal: model.DealTerms{TermMonths: termMonths},
		Registration: model.Registration{
			PlateScenario:         plate,
			FirstTimeRegistration: firstTime,
		},
	}
	for i := 0; i < tradeIns; i++ {
		in.TradeIns = append(in.TradeIns, model.TradeIn{EstimatedValue: 5000})
	}
	return in
}

func TestDetect(t *testing.T) {
	tests := []struct {
		name      string
		input     model.ScenarioInput
		wantType  model.ScenarioType
		wantFlags model.DetectedScenario
	}{
		{
			name:     "trade-in with tag transfer financed",
			input:    buildInput(1, 60, model.PlateTransferExisting, false),
			wantType: model.ScenarioTradeInTagTransferFinanced,
		},
		{
			name:     "trade-in with tag transfer cash",
			input:    buildInput(2, 0, model.PlateTransferExisting, false),
			wantType: model.ScenarioTradeInTagTransferCash,
		},
		{
			name:     "first time registration financed",
			input:    buildInput(0, 48, model.PlateNew, true),
			wantType: model.ScenarioNewTagFinanced,
		},
		{
			name:     "first time registration cash",
			input:    buildInput(0, 0, model.PlateNew, true),
			wantType: model.ScenarioNewTagCash,
		},
		{
			name:     "standard financed",
			input:    buildInput(0, 72, model.PlateNew, false),
			wantType: model.ScenarioStandardFinanced,
		},
		{
			name:     "standard cash",
			input:    buildInput(0, 0, model.PlateNew, false),
			wantType: model.ScenarioStandardCash,
		},
		{
			name:     "trade-in without tag transfer stays standard",
			input:    buildInput(1, 60, model.PlateNew, false),
			wantType: model.ScenarioStandardFinanced,
		},
		{
			name:     "trade-in without tag transfer first time goes new tag",
			input:    buildInput(1, 0, model.PlateNew, true),
			wantType: model.ScenarioNewTagCash,
		},
		{
			name:     "tag transfer without trade-in stays standard",
			input:    buildInput(0, 36, model.PlateTransferExisting, false),
			wantType: model.ScenarioStandardFinanced,
		},
		{
			name:     "trade-in tag transfer beats first time registration",
			input:    buildInput(1, 60, model.PlateTransferExisting, true),
			wantType: model.ScenarioTradeInTagTransferFinanced,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Detect(tt.input)
			assert.Equal(t, tt.wantType, got.Type)
		})
	}
}

func TestDetectFlags(t *testing.T) {
	got := Detect(buildInput(1, 60, model.PlateTransferExisting, true))

	assert.True(t, got.HasTradeIn)
	assert.True(t, got.IsFinanced)
	assert.True(t, got.IsTagTransfer)
	assert.True(t, got.IsFirstTimeRegistration)
}

// Every combination of the classification inputs lands on exactly one of
// the six scenario types.
func TestDetectIsTotal(t *testing.T) {
	valid := map[model.ScenarioType]bool{
		model.ScenarioTradeInTagTransferFinanced: true,
		model.ScenarioTradeInTagTransferCash:     true,
		model.ScenarioNewTagFinanced:             true,
		model.ScenarioNewTagCash:                 true,
		model.ScenarioStandardFinanced:           true,
		model.ScenarioStandardCash:               true,
	}

	for _, tradeIns := range []int{0, 1} {
		for _, term := range []int{0, 60} {
			for _, plate := range []string{model.PlateNew, model.PlateTransferExisting, ""} {
				for _, firstTime := range []bool{false, true} {
					got := Detect(buildInput(tradeIns, term, plate, firstTime))
					assert.True(t, valid[got.Type],
						"unexpected type %q for tradeIns=%d term=%d plate=%q firstTime=%v",
						got.Type, tradeIns, term, plate, firstTime)
				}
			}
		}
	}
}

func TestDetectDeterministic(t *testing.T) {
	in := buildInput(1, 60, model.PlateTransferExisting, false)
	first := Detect(in)
	second := Detect(in)
	assert.Equal(t, first, second)
}
