/*
affordability.go - Prospective spend evaluation

PURPOSE:
  Answers "can I afford this?" without committing anything. The
  evaluator is a read-only projection over the current state; whether
  to actually record the spend is a separate decision made by the
  caller via the ledger.

DECISION RULE:
  approved <=> amount <= (DiscretionaryBudget - DiscretionaryUsed)

  With a zero or negative budget nothing is affordable: the check is
  forced to not-approved and usage is reported as 100%, which also
  sidesteps the divide-by-zero in the usage calculation.
*/
package engine

import "github.com/shopspring/decimal"

// AffordabilityResult is the structured verdict for a prospective spend.
type AffordabilityResult struct {
	Approved        bool
	RemainingBefore decimal.Decimal
	RemainingAfter  decimal.Decimal
	UsagePct        decimal.Decimal
	// Shortfall is how far the amount exceeds the remaining budget.
	// Always positive when not approved, zero when approved.
	Shortfall decimal.Decimal
}

// Evaluate decides approve/reject for spending amount now. Performs no
// mutation.
func Evaluate(s *FinancialState, amount decimal.Decimal) AffordabilityResult {
	remaining := s.RemainingDiscretionary()
	result := AffordabilityResult{RemainingBefore: remaining}

	if !s.DiscretionaryBudget.IsPositive() {
		// Nothing is affordable against an empty or negative budget.
		result.UsagePct = decimal.NewFromInt(100)
		result.Shortfall = amount.Sub(remaining)
		result.RemainingAfter = remaining
		return result
	}

	result.UsagePct = s.DiscretionaryUsed.Add(amount).
		Div(s.DiscretionaryBudget).
		Mul(decimal.NewFromInt(100)).
		Round(1)

	if amount.LessThanOrEqual(remaining) {
		result.Approved = true
		result.RemainingAfter = remaining.Sub(amount)
	} else {
		result.Shortfall = amount.Sub(remaining)
		result.RemainingAfter = remaining
	}
	return result
}
