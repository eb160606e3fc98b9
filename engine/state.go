/*
Package engine provides the core budget rules engine.

PURPOSE:
  This package contains the deterministic, rule-based logic for personal
  budget management: budget allocation, affordability evaluation, savings
  goal projection, and adaptive daily-limit adjustment. Every decision is
  explainable arithmetic over a single FinancialState - no heuristics, no
  forecasting models.

KEY CONCEPTS IN THIS FILE (state.go):
  - FinancialState: The single mutable record for one user session
  - FixedExpense: A recurring monthly obligation (rent, bills)
  - SavingsGoal: An optional target amount with a timeframe
  - Transaction: An immutable record of discretionary spending

DESIGN PRINCIPLES:
  1. Derived fields (DiscretionaryBudget, SavingsAllocation, DailyLimit)
     are only ever written by Recalculate - nothing sets them directly
  2. Precision: decimal.Decimal for all money, never float64
  3. Append-only history: transactions are corrected by compensating
     entries, never edited
  4. One state per session, passed explicitly - no package-level globals

SEE ALSO:
  - budget.go: Recalculate, the derived-field recompute
  - ledger.go: Transaction recording
  - affordability.go: Spend approval logic
  - adjuster.go: Mid-period tightening and period close
*/
package engine

import (
	"time"

	"github.com/shopspring/decimal"
)

// DaysPerPeriod is the fixed budgeting period length. Budgets are planned
// against a 30-day month regardless of the calendar month's true length.
const DaysPerPeriod = 30

// =============================================================================
// MONEY HELPERS
// =============================================================================

// Money constructs a decimal amount from a float literal.
func Money(v float64) decimal.Decimal {
	return decimal.NewFromFloat(v)
}

// MustMoney parses a decimal string, returning zero on malformed input.
func MustMoney(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// =============================================================================
// FIXED EXPENSES
// =============================================================================

type ExpenseFrequency string

const (
	FrequencyMonthly ExpenseFrequency = "monthly"
)

// FixedExpense is a recurring obligation keyed by name in FinancialState.
type FixedExpense struct {
	Name      string
	Amount    decimal.Decimal
	Frequency ExpenseFrequency
}

// =============================================================================
// SAVINGS GOAL
// =============================================================================

// SavingsGoal is an optional target the user is saving toward.
type SavingsGoal struct {
	Item            string
	TargetAmount    decimal.Decimal
	TimeframeMonths int
	CurrentSavings  decimal.Decimal
	CreatedAt       time.Time
}

// RequiredMonthly returns the monthly contribution needed to reach the
// target within the timeframe, rounded to cents. A non-positive timeframe
// is unreachable through validation; it yields zero rather than dividing
// by zero.
func (g SavingsGoal) RequiredMonthly() decimal.Decimal {
	if g.TimeframeMonths <= 0 {
		return decimal.Zero
	}
	return g.TargetAmount.Div(decimal.NewFromInt(int64(g.TimeframeMonths))).Round(2)
}

// ProgressPct returns progress toward the target as a percentage.
func (g SavingsGoal) ProgressPct() decimal.Decimal {
	if !g.TargetAmount.IsPositive() {
		return decimal.NewFromInt(100)
	}
	return g.CurrentSavings.Div(g.TargetAmount).Mul(decimal.NewFromInt(100)).Round(1)
}

// =============================================================================
// TRANSACTION - Immutable spending record
// =============================================================================

type TransactionKind string

const (
	TxPurchase TransactionKind = "purchase"
	TxExpense  TransactionKind = "expense"
)

// Transaction records a single discretionary spend. Once appended to the
// state it is never modified; corrections are new compensating entries.
type Transaction struct {
	ID        string
	Timestamp time.Time
	Kind      TransactionKind
	Label     string // item for purchases, category for expenses
	Amount    decimal.Decimal

	// RemainingAfter is the discretionary budget remaining immediately
	// after this transaction was applied. Part of the audit trail.
	RemainingAfter decimal.Decimal
}

// =============================================================================
// FINANCIAL STATE - The single owned record for one user session
// =============================================================================

// FinancialState holds everything the engine reads and writes. It is
// loaded whole from a StateStore before an operation and saved whole
// after - the engine never sees partial state.
type FinancialState struct {
	MonthlyIncome decimal.Decimal
	FixedExpenses map[string]FixedExpense
	Goal          *SavingsGoal

	// Derived fields. Written only by Recalculate (and the adjuster's
	// daily-limit override); reads elsewhere, writes nowhere else.
	DiscretionaryBudget decimal.Decimal
	SavingsAllocation   decimal.Decimal
	DailyLimit          decimal.Decimal

	DiscretionaryUsed decimal.Decimal
	CurrentSavings    decimal.Decimal

	Transactions []Transaction

	// CurrentDay is the day of the budgeting period, 1..30. Supplied by
	// the caller; only the adaptive adjuster reads it.
	CurrentDay int

	CreatedAt   time.Time
	LastUpdated time.Time
}

// NewFinancialState returns an empty state positioned at day 1.
func NewFinancialState() *FinancialState {
	now := time.Now().UTC()
	return &FinancialState{
		FixedExpenses: make(map[string]FixedExpense),
		CurrentDay:    1,
		CreatedAt:     now,
		LastUpdated:   now,
	}
}

// TotalFixedExpenses sums all recurring monthly obligations.
func (s *FinancialState) TotalFixedExpenses() decimal.Decimal {
	total := decimal.Zero
	for _, e := range s.FixedExpenses {
		total = total.Add(e.Amount)
	}
	return total
}

// RemainingDiscretionary is what is left to spend this period. It may be
// negative: an over-committed budget is a valid state, not an error.
func (s *FinancialState) RemainingDiscretionary() decimal.Decimal {
	return s.DiscretionaryBudget.Sub(s.DiscretionaryUsed)
}

// UsagePct returns discretionary usage as a percentage of the budget.
// A zero or negative budget reports 100 - there is nothing left to use.
func (s *FinancialState) UsagePct() decimal.Decimal {
	if !s.DiscretionaryBudget.IsPositive() {
		return decimal.NewFromInt(100)
	}
	return s.DiscretionaryUsed.Div(s.DiscretionaryBudget).Mul(decimal.NewFromInt(100)).Round(1)
}

// DaysRemaining returns how many days of the period are left, counting
// the current day. Never less than 1.
func (s *FinancialState) DaysRemaining() int {
	remaining := DaysPerPeriod - s.CurrentDay + 1
	if remaining < 1 {
		return 1
	}
	return remaining
}

// Touch stamps the state as modified.
func (s *FinancialState) Touch() {
	s.LastUpdated = time.Now().UTC()
}
