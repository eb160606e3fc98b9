/*
budget.go - Derived budget recomputation

PURPOSE:
  Recalculate is the single writer of the three derived state fields:
  SavingsAllocation, DiscretionaryBudget, DailyLimit. It must run after
  any mutation to income, fixed expenses, the goal, or discretionary
  usage. Because the derived fields are always recomputed from source
  fields, they cannot drift.

THE ALLOCATION RULES:
  SavingsAllocation   = max(goal target / timeframe, 20% of income)
  DiscretionaryBudget = income - fixed expenses - savings allocation
  DailyLimit          = remaining discretionary / days remaining

  The allocation identity holds for every valid state:
  DiscretionaryBudget + fixed + SavingsAllocation == income.

NEGATIVE BUDGETS:
  DiscretionaryBudget may go negative when income is over-committed.
  That is a valid, reportable state - the affordability evaluator will
  refuse everything, but nothing errors.
*/
package engine

import "github.com/shopspring/decimal"

// savingsRate is the baseline share of income set aside even without a
// goal. A goal requiring more than this takes precedence.
var savingsRate = MustMoney("0.20")

// Recalculate rewrites the derived fields from income, fixed expenses,
// and the goal. Pure with respect to everything else: it never touches
// DiscretionaryUsed or Transactions, and calling it twice in a row
// yields the identical result.
func Recalculate(s *FinancialState) {
	required := decimal.Zero
	if s.Goal != nil {
		required = s.Goal.RequiredMonthly()
	}

	baseline := s.MonthlyIncome.Mul(savingsRate).Round(2)
	s.SavingsAllocation = decimal.Max(required, baseline)

	s.DiscretionaryBudget = s.MonthlyIncome.
		Sub(s.TotalFixedExpenses()).
		Sub(s.SavingsAllocation)

	days := decimal.NewFromInt(int64(s.DaysRemaining()))
	s.DailyLimit = s.RemainingDiscretionary().Div(days).Round(2)
}
