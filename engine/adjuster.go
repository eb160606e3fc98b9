/*
adjuster.go - Adaptive daily-limit adjustment

PURPOSE:
  Two independent, idempotent behaviors that react to how the period is
  actually going:

  1. Mid-period tightening: once more than 80% of the discretionary
     budget is used, the daily limit is recomputed over the days that
     are actually left instead of the planning default. This override
     stands for the remainder of the period (Tighten runs after
     Recalculate on every mutation, so it always wins while usage
     stays above the threshold).

  2. Period-end surplus reallocation: at the period boundary, a
     lightly-used budget (<50%) hands its surplus to savings. Either
     way usage resets to zero for the new period, and the monthly
     savings allocation is credited to the balance.
*/
package engine

import (
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	tightenThreshold = decimal.NewFromInt(80)
	surplusThreshold = decimal.NewFromInt(50)
)

// Tighten recomputes the daily limit over the remaining days when usage
// has passed 80%. Returns an advisory describing the adjustment, or ""
// when nothing changed. Safe to call repeatedly with the same inputs.
func Tighten(s *FinancialState) string {
	if !s.DiscretionaryBudget.IsPositive() {
		return "" // nothing to tighten
	}
	if s.UsagePct().LessThanOrEqual(tightenThreshold) {
		return ""
	}

	daysLeft := DaysPerPeriod - s.CurrentDay
	if daysLeft < 1 {
		daysLeft = 1
	}
	limit := s.RemainingDiscretionary().
		Div(decimal.NewFromInt(int64(daysLeft))).
		Round(2)

	s.DailyLimit = limit
	s.Touch()
	return fmt.Sprintf(
		"high spending detected: daily limit reduced to %s to stretch the remaining budget over %d day(s)",
		limit.StringFixed(2), daysLeft)
}

// ClosePeriod runs the period-boundary reconciliation: surplus moves to
// savings when usage stayed under 50%, the monthly savings allocation is
// credited, usage resets to zero, and derived fields are recomputed for
// the new period. Returns advisories describing what happened.
func ClosePeriod(s *FinancialState) []string {
	var advisories []string

	if s.UsagePct().LessThan(surplusThreshold) {
		surplus := s.RemainingDiscretionary()
		if surplus.IsPositive() {
			s.CurrentSavings = s.CurrentSavings.Add(surplus)
			if s.Goal != nil {
				s.Goal.CurrentSavings = s.Goal.CurrentSavings.Add(surplus)
			}
			advisories = append(advisories, fmt.Sprintf(
				"unused budget of %s moved to savings", surplus.StringFixed(2)))
		}
	}

	if s.SavingsAllocation.IsPositive() {
		s.CurrentSavings = s.CurrentSavings.Add(s.SavingsAllocation)
		if s.Goal != nil {
			s.Goal.CurrentSavings = s.Goal.CurrentSavings.Add(s.SavingsAllocation)
		}
		advisories = append(advisories, fmt.Sprintf(
			"monthly savings allocation of %s credited", s.SavingsAllocation.StringFixed(2)))
	}

	s.DiscretionaryUsed = decimal.Zero
	s.CurrentDay = 1
	Recalculate(s)
	s.Touch()
	return advisories
}
