package engine

import (
	"github.com/shopspring/decimal"

	"github.com/warp/budget-engine/intent"
)

// =============================================================================
// RESPONSES - One structured response type per intent kind
// =============================================================================

// Response is the closed set of engine outputs. The caller renders them;
// the engine never formats for display beyond advisory sentences.
type Response interface {
	ResponseKind() intent.Kind
}

// Ack acknowledges a state mutation (income, expense, goal, logging).
type Ack struct {
	Kind       intent.Kind
	Message    string
	Advisories []string
}

func (a Ack) ResponseKind() intent.Kind { return a.Kind }

// AffordabilityResponse answers an affordability check.
type AffordabilityResponse struct {
	Item            string
	Amount          decimal.Decimal
	Approved        bool
	RemainingBefore decimal.Decimal
	RemainingAfter  decimal.Decimal
	UsagePct        decimal.Decimal
	Shortfall       decimal.Decimal
	DailyLimit      decimal.Decimal
	GoalImpact      *GoalImpact
	Advisories      []string
}

func (AffordabilityResponse) ResponseKind() intent.Kind { return intent.KindAffordabilityCheck }

// GoalStatus is the goal section of a status snapshot.
type GoalStatus struct {
	Item            string
	TargetAmount    decimal.Decimal
	TimeframeMonths int
	CurrentSavings  decimal.Decimal
	RequiredMonthly decimal.Decimal
	ProgressPct     decimal.Decimal
}

// StatusResponse is the snapshot of every derived budget field.
type StatusResponse struct {
	MonthlyIncome       decimal.Decimal
	TotalFixedExpenses  decimal.Decimal
	FixedExpenses       []FixedExpense
	DiscretionaryBudget decimal.Decimal
	DiscretionaryUsed   decimal.Decimal
	Remaining           decimal.Decimal
	UsagePct            decimal.Decimal
	SavingsAllocation   decimal.Decimal
	CurrentSavings      decimal.Decimal
	DailyLimit          decimal.Decimal
	CurrentDay          int
	Goal                *GoalStatus
	RecentTransactions  []Transaction
	TransactionCount    int
}

func (StatusResponse) ResponseKind() intent.Kind { return intent.KindShowStatus }

// HelpResponse carries usage guidance for the caller to render.
type HelpResponse struct {
	Kind intent.Kind // Help or Unknown (unknown input gets a short hint)
	Text string
}

func (h HelpResponse) ResponseKind() intent.Kind { return h.Kind }
