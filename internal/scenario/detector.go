// Package scenario classifies a deal into one of six purchase archetypes.
package scenario

import "github.com/Veraticus/dealcalc/internal/model"

// Detect derives the discrete purchase scenario from deal attributes.
// The classification is a pure decision table: trade-in plus tag transfer
// wins, then first-time registration, then standard; each splits on
// financed vs cash. A trade-in without a tag transfer does not change the
// branch.
func Detect(in model.ScenarioInput) model.DetectedScenario {
	det := model.DetectedScenario{
		HasTradeIn:              len(in.TradeIns) > 0,
		IsFinanced:              in.Deal.TermMonths > 0,
		IsTagTransfer:           in.Registration.PlateScenario == model.PlateTransferExisting,
		IsFirstTimeRegistration: in.Registration.FirstTimeRegistration,
	}

	switch {
	case det.HasTradeIn && det.IsTagTransfer:
		if det.IsFinanced {
			det.Type = model.ScenarioTradeInTagTransferFinanced
		} else {
			det.Type = model.ScenarioTradeInTagTransferCash
		}
	case det.IsFirstTimeRegistration:
		if det.IsFinanced {
			det.Type = model.ScenarioNewTagFinanced
		} else {
			det.Type = model.ScenarioNewTagCash
		}
	default:
		if det.IsFinanced {
			det.Type = model.ScenarioStandardFinanced
		} else {
			det.Type = model.ScenarioStandardCash
		}
	}

	return det
}
