package model

// Record flattens a scenario and its detected classification into the
// loosely-typed map that rule conditions resolve field paths against.
// This is the single normalization step at the engine boundary: rule
// authors see these paths, internal components see the typed structs.
// Numbers are represented as float64 to match JSON-decoded literals in
// rule conditions.
func Record(in ScenarioInput, det DetectedScenario) map[string]any {
	return map[string]any{
		"jurisdiction": map[string]any{
			"country":    in.Jurisdiction.Country,
			"state":      in.Jurisdiction.StateCode,
			"county":     in.Jurisdiction.CountyName,
			"postalCode": in.Jurisdiction.PostalCode,
		},
		"dealer": map[string]any{
			"id":           in.Dealer.DealerID,
			"feePackageId": in.Dealer.FeePackageID,
		},
		"deal": map[string]any{
			"sellingPrice": in.Deal.SellingPrice,
			"cashDown":     in.Deal.CashDown,
			"termMonths":   float64(in.Deal.TermMonths),
			"aprPercent":   in.Deal.APRPercent,
			"lenderType":   in.Deal.LenderType,
			"dealType":     in.Deal.DealType,
		},
		"vehicle": map[string]any{
			"vin":       in.Vehicle.VIN,
			"year":      float64(in.Vehicle.Year),
			"make":      in.Vehicle.Make,
			"model":     in.Vehicle.Model,
			"condition": in.Vehicle.Condition,
		},
		"tradeIns": map[string]any{
			"count": float64(len(in.TradeIns)),
		},
		"registration": map[string]any{
			"plateScenario":         in.Registration.PlateScenario,
			"firstTimeRegistration": in.Registration.FirstTimeRegistration,
		},
		"customer": map[string]any{
			"residencyState": in.Customer.ResidencyState,
		},
		"scenario": map[string]any{
			"type":                    string(det.Type),
			"hasTradeIn":              det.HasTradeIn,
			"isFinanced":              det.IsFinanced,
			"isTagTransfer":           det.IsTagTransfer,
			"isFirstTimeRegistration": det.IsFirstTimeRegistration,
		},
	}
}
