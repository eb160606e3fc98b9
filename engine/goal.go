/*
goal.go - Savings goal projection and feasibility

PURPOSE:
  Projects the effect of a spend on the savings goal, and sanity-checks
  a new goal against the user's income. Both produce advisories, never
  errors: an aggressive goal is the user's to keep.

DELAY MODEL:
  If a spend leaves less than the required monthly contribution, the
  goal slips. The slip is proportional: missing the whole contribution
  delays by a full 30-day month, missing half delays by 15 days.
*/
package engine

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// GoalImpact projects how a hypothetical or actual spend affects the
// savings goal.
type GoalImpact struct {
	OnTrack   bool
	DelayDays decimal.Decimal
}

// Impact computes the goal effect of spending amount now. With no goal
// set there is nothing to delay: on-track, zero delay.
func Impact(s *FinancialState, amount decimal.Decimal) GoalImpact {
	if s.Goal == nil {
		return GoalImpact{OnTrack: true, DelayDays: decimal.Zero}
	}

	required := s.Goal.RequiredMonthly()
	if !required.IsPositive() {
		// Unreachable with validated goals (positive target, positive
		// timeframe); treated as on-track to avoid dividing by zero.
		return GoalImpact{OnTrack: true, DelayDays: decimal.Zero}
	}

	remainingAfter := s.RemainingDiscretionary().Sub(amount)
	if remainingAfter.GreaterThanOrEqual(required) {
		return GoalImpact{OnTrack: true, DelayDays: decimal.Zero}
	}

	shortfall := required.Sub(remainingAfter)
	delay := shortfall.Div(required).Mul(decimal.NewFromInt(DaysPerPeriod)).Round(1)
	return GoalImpact{OnTrack: false, DelayDays: delay}
}

// =============================================================================
// FEASIBILITY - Reality check when a goal is set
// =============================================================================

// CheckGoalFeasibility returns an advisory when the goal is aggressive
// relative to income, or "" when it looks achievable. Advisories never
// block the goal from being set.
func CheckGoalFeasibility(s *FinancialState, goal SavingsGoal) string {
	if s.MonthlyIncome.IsZero() {
		return "no income set; set your monthly income before relying on this goal"
	}

	required := goal.RequiredMonthly()
	afterFixed := s.MonthlyIncome.Sub(s.TotalFixedExpenses())

	if required.GreaterThan(s.MonthlyIncome) {
		return fmt.Sprintf(
			"impossible goal: requires %s/month, more than your entire income of %s",
			required.StringFixed(2), s.MonthlyIncome.StringFixed(2))
	}

	if !afterFixed.IsPositive() || required.GreaterThan(afterFixed.Mul(MustMoney("0.80"))) {
		return fmt.Sprintf(
			"unrealistic goal: requires %s/month against %s available after fixed expenses",
			required.StringFixed(2), afterFixed.StringFixed(2))
	}

	// More than half of free income is very aggressive; suggest a
	// timeframe that would hold the savings rate at 50%.
	comfortable := afterFixed.Mul(MustMoney("0.50"))
	if required.GreaterThan(comfortable) {
		months := goal.TargetAmount.Div(comfortable).Ceil().IntPart()
		return fmt.Sprintf(
			"challenging goal: requires %s/month; a %d-month timeframe would keep savings at half your free income",
			required.StringFixed(2), months)
	}

	return ""
}
