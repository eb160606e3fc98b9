/*
Package intent defines the structured commands the budget engine consumes,
and the resolver that completes partially-specified ones.

PURPOSE:
  Callers (a chat surface, an HTTP client, a parser) produce intents; the
  engine only ever sees a complete one. Each intent kind is a concrete
  type that declares its own required fields, so the resolver's
  completion logic is exhaustive per kind instead of probing a bag of
  optional keys.

KEY CONCEPTS:
  - Intent: a recognized user action, possibly missing a required field
  - Missing(): names the first absent required field ("" = complete)
  - Completable: intents that can absorb a bare numeric follow-up
  - Resolver (resolver.go): the two-state pending-intent machine
  - Parse (parser.go): keyword fallback from free text to an intent
*/
package intent

import "github.com/shopspring/decimal"

type Kind string

const (
	KindSetIncome          Kind = "SET_INCOME"
	KindSetFixedExpense    Kind = "SET_FIXED_EXPENSE"
	KindSetGoal            Kind = "SET_GOAL"
	KindAffordabilityCheck Kind = "AFFORDABILITY_CHECK"
	KindLogPurchase        Kind = "LOG_PURCHASE"
	KindLogExpense         Kind = "LOG_EXPENSE"
	KindShowStatus         Kind = "SHOW_STATUS"
	KindHelp               Kind = "HELP"
	KindUnknown            Kind = "UNKNOWN"
)

// Intent is a structured user action. Implementations are the closed set
// of types in this file - the engine dispatches exhaustively over them.
type Intent interface {
	Kind() Kind

	// Missing returns the name of the first required field that is
	// absent, or "" when the intent is ready to dispatch.
	Missing() string
}

// Completable intents can merge a bare numeric follow-up ("2000") into
// their missing field.
type Completable interface {
	Intent
	Complete(v decimal.Decimal) Intent
}

// =============================================================================
// INTENT VARIANTS
// =============================================================================

// SetIncome replaces the monthly income.
type SetIncome struct {
	Amount *decimal.Decimal
}

func (i SetIncome) Kind() Kind { return KindSetIncome }

func (i SetIncome) Missing() string {
	if i.Amount == nil {
		return "amount"
	}
	return ""
}

func (i SetIncome) Complete(v decimal.Decimal) Intent {
	i.Amount = &v
	return i
}

// SetFixedExpense adds or replaces a recurring expense by name.
type SetFixedExpense struct {
	Name   string
	Amount *decimal.Decimal
}

func (i SetFixedExpense) Kind() Kind { return KindSetFixedExpense }

func (i SetFixedExpense) Missing() string {
	if i.Amount == nil {
		return "amount"
	}
	return ""
}

func (i SetFixedExpense) Complete(v decimal.Decimal) Intent {
	i.Amount = &v
	return i
}

// SetGoal replaces the savings goal.
type SetGoal struct {
	Item            string
	TargetAmount    *decimal.Decimal
	TimeframeMonths int
}

func (i SetGoal) Kind() Kind { return KindSetGoal }

func (i SetGoal) Missing() string {
	if i.TargetAmount == nil {
		return "target_amount"
	}
	if i.TimeframeMonths <= 0 {
		return "timeframe_months"
	}
	return ""
}

// Complete fills the target amount first, then the timeframe.
func (i SetGoal) Complete(v decimal.Decimal) Intent {
	if i.TargetAmount == nil {
		i.TargetAmount = &v
		return i
	}
	if i.TimeframeMonths <= 0 {
		i.TimeframeMonths = int(v.IntPart())
	}
	return i
}

// AffordabilityCheck asks whether a prospective purchase fits the budget.
type AffordabilityCheck struct {
	Item   string
	Amount *decimal.Decimal
}

func (i AffordabilityCheck) Kind() Kind { return KindAffordabilityCheck }

func (i AffordabilityCheck) Missing() string {
	if i.Amount == nil {
		return "amount"
	}
	return ""
}

func (i AffordabilityCheck) Complete(v decimal.Decimal) Intent {
	i.Amount = &v
	return i
}

// LogPurchase records a completed purchase.
type LogPurchase struct {
	Item     string
	Category string
	Amount   *decimal.Decimal
}

func (i LogPurchase) Kind() Kind { return KindLogPurchase }

func (i LogPurchase) Missing() string {
	if i.Amount == nil {
		return "amount"
	}
	return ""
}

func (i LogPurchase) Complete(v decimal.Decimal) Intent {
	i.Amount = &v
	return i
}

// LogExpense records a general expense against a category.
type LogExpense struct {
	Category string
	Amount   *decimal.Decimal
}

func (i LogExpense) Kind() Kind { return KindLogExpense }

func (i LogExpense) Missing() string {
	if i.Amount == nil {
		return "amount"
	}
	return ""
}

func (i LogExpense) Complete(v decimal.Decimal) Intent {
	i.Amount = &v
	return i
}

// ShowStatus requests the full budget snapshot.
type ShowStatus struct{}

func (ShowStatus) Kind() Kind      { return KindShowStatus }
func (ShowStatus) Missing() string { return "" }

// Help requests usage guidance.
type Help struct{}

func (Help) Kind() Kind      { return KindHelp }
func (Help) Missing() string { return "" }

// Unknown is the catch-all for unrecognized input.
type Unknown struct{}

func (Unknown) Kind() Kind      { return KindUnknown }
func (Unknown) Missing() string { return "" }
