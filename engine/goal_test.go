package engine_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/budget-engine/engine"
)

// =============================================================================
// IMPACT PROJECTION TESTS
// =============================================================================

func TestImpact_NoGoalIsAlwaysOnTrack(t *testing.T) {
	s := newState("10000")

	impact := engine.Impact(s, engine.MustMoney("9999"))

	assert.True(t, impact.OnTrack)
	assert.True(t, impact.DelayDays.IsZero())
}

func TestImpact_EnoughLeftForContribution(t *testing.T) {
	// GIVEN: 1000/month required, 5000 remaining
	// WHEN: Spending 3000 (leaving 2000, still above the contribution)
	// THEN: On track

	s := newState("10000")
	addExpense(s, "rent", "3000")
	setGoal(s, "laptop", "6000", 6) // required 1000, baseline 2000 wins allocation

	impact := engine.Impact(s, engine.MustMoney("1000"))
	assert.True(t, impact.OnTrack)
}

func TestImpact_ProportionalDelay(t *testing.T) {
	// GIVEN: 1000/month required, 1500 remaining
	// WHEN: Spending 1000 leaves 500, half the contribution short
	// THEN: The goal slips by half a month: 15 days

	s := newState("10000")
	addExpense(s, "rent", "3000")
	setGoal(s, "laptop", "6000", 6)
	s.DiscretionaryUsed = s.DiscretionaryBudget.Sub(engine.MustMoney("1500"))

	impact := engine.Impact(s, engine.MustMoney("1000"))

	assert.False(t, impact.OnTrack)
	assert.Equal(t, "15.0", impact.DelayDays.StringFixed(1))
}

func TestImpact_FullContributionMissedDelaysFullMonth(t *testing.T) {
	// GIVEN: Remaining budget exactly equals the spend
	// THEN: The whole contribution is missed: 30 days

	s := newState("10000")
	addExpense(s, "rent", "3000")
	setGoal(s, "laptop", "6000", 6)
	s.DiscretionaryUsed = s.DiscretionaryBudget // remaining 0

	impact := engine.Impact(s, engine.Money(0))

	assert.False(t, impact.OnTrack)
	assert.Equal(t, "30.0", impact.DelayDays.StringFixed(1))
}

func TestImpact_ProjectionMatchesStateAfterCommit(t *testing.T) {
	// GIVEN: An approved purchase
	// WHEN: Projecting its goal impact before recording, then recording
	//       it and projecting a zero further spend
	// THEN: Both projections agree - committing the spend lands the goal
	//       exactly where the pre-commit projection said it would

	s := newState("10000")
	addExpense(s, "rent", "3000")
	setGoal(s, "laptop", "6000", 6)

	amount := engine.MustMoney("4500")
	require.True(t, engine.Evaluate(s, amount).Approved)
	projected := engine.Impact(s, amount)

	_, err := engine.Record(s, engine.TxPurchase, "laptop", amount)
	require.NoError(t, err)
	actual := engine.Impact(s, engine.Money(0))

	assert.Equal(t, projected.OnTrack, actual.OnTrack)
	assert.True(t, projected.DelayDays.Equal(actual.DelayDays),
		"projected %s, actual %s", projected.DelayDays, actual.DelayDays)
}

// =============================================================================
// FEASIBILITY TESTS
// =============================================================================

func TestCheckGoalFeasibility_NoIncome(t *testing.T) {
	s := engine.NewFinancialState()
	goal := engine.SavingsGoal{TargetAmount: engine.MustMoney("1000"), TimeframeMonths: 10}

	warn := engine.CheckGoalFeasibility(s, goal)
	assert.Contains(t, warn, "no income")
}

func TestCheckGoalFeasibility_Impossible(t *testing.T) {
	// Requires more per month than the entire income.
	s := newState("5000")
	goal := engine.SavingsGoal{TargetAmount: engine.MustMoney("60000"), TimeframeMonths: 6}

	warn := engine.CheckGoalFeasibility(s, goal)
	assert.True(t, strings.HasPrefix(warn, "impossible goal"))
}

func TestCheckGoalFeasibility_Unrealistic(t *testing.T) {
	// GIVEN: 2000 free after fixed expenses
	// WHEN: The goal needs more than 80% of that
	s := newState("5000")
	addExpense(s, "rent", "3000")
	goal := engine.SavingsGoal{TargetAmount: engine.MustMoney("10000"), TimeframeMonths: 5} // 2000/mo

	warn := engine.CheckGoalFeasibility(s, goal)
	assert.True(t, strings.HasPrefix(warn, "unrealistic goal"))
}

func TestCheckGoalFeasibility_ChallengingSuggestsTimeframe(t *testing.T) {
	// GIVEN: 2000 free after fixed expenses; comfortable pace is 1000/mo
	// WHEN: The goal needs 1500/mo (over half, under 80%)
	// THEN: Advisory suggests the timeframe that holds the pace at 1000

	s := newState("5000")
	addExpense(s, "rent", "3000")
	goal := engine.SavingsGoal{TargetAmount: engine.MustMoney("6000"), TimeframeMonths: 4}

	warn := engine.CheckGoalFeasibility(s, goal)
	assert.True(t, strings.HasPrefix(warn, "challenging goal"))
	assert.Contains(t, warn, "6-month timeframe") // 6000 / 1000
}

func TestCheckGoalFeasibility_Achievable(t *testing.T) {
	s := newState("10000")
	addExpense(s, "rent", "3000")
	goal := engine.SavingsGoal{TargetAmount: engine.MustMoney("6000"), TimeframeMonths: 6}

	assert.Empty(t, engine.CheckGoalFeasibility(s, goal))
}
