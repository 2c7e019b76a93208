// Package rates selects lender APR programs and does amortization math.
package rates

import "github.com/Veraticus/dealcalc/internal/model"

// MatchStatus reports the outcome of a rate program lookup.
type MatchStatus string

// Match statuses. NeedsCreditScore is not an error: it tells the caller
// to prompt for more input before a program can be selected.
const (
	StatusMatched          MatchStatus = "matched"
	StatusNeedsCreditScore MatchStatus = "needs_credit_score"
	StatusNoMatch          MatchStatus = "no_match"
)

// Criteria describes the loan being priced. CreditScore is optional; it
// is only required when the rate set is credit banded.
type Criteria struct {
	CreditScore *int
	Condition   string
	TermMonths  int
}

// MatchResult is the outcome of MatchProgram. Match is set only when
// Status is StatusMatched.
type MatchResult struct {
	Match  *model.LenderRateRecord
	Status MatchStatus
}

// MatchProgram selects the cheapest applicable APR program from a
// lender's rate set. Term and credit score ranges are closed intervals on
// both ends. For a credit-banded set with no score supplied, no match is
// attempted.
func MatchProgram(set model.RateSet, criteria Criteria) MatchResult {
	var candidates []model.LenderRateRecord
	for _, rec := range set.Records {
		if rec.VehicleCondition != criteria.Condition {
			continue
		}
		if criteria.TermMonths < rec.TermMin || criteria.TermMonths > rec.TermMax {
			continue
		}
		candidates = append(candidates, rec)
	}

	if len(candidates) == 0 {
		return MatchResult{Status: StatusNoMatch}
	}

	if set.IsCreditBanded {
		if criteria.CreditScore == nil {
			return MatchResult{Status: StatusNeedsCreditScore}
		}
		score := *criteria.CreditScore
		banded := candidates[:0]
		for _, rec := range candidates {
			if score < rec.CreditScoreMin || score > rec.CreditScoreMax {
				continue
			}
			banded = append(banded, rec)
		}
		candidates = banded
		if len(candidates) == 0 {
			return MatchResult{Status: StatusNoMatch}
		}
	}

	// Lowest APR wins; ties keep the first-encountered record.
	best := candidates[0]
	for _, rec := range candidates[1:] {
		if rec.APRPercent < best.APRPercent {
			best = rec
		}
	}

	return MatchResult{Status: StatusMatched, Match: &best}
}
