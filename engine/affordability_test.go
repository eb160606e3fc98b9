package engine_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/warp/budget-engine/engine"
)

func TestEvaluate_ExactRemainingIsApproved(t *testing.T) {
	// GIVEN: 5000 budget, nothing spent
	// WHEN: Evaluating a spend of exactly 5000
	// THEN: Approved, with zero remaining after and usage at 100%

	s := newState("10000")
	addExpense(s, "rent", "3000")

	result := engine.Evaluate(s, engine.MustMoney("5000"))

	assert.True(t, result.Approved)
	assert.Equal(t, "5000.00", result.RemainingBefore.StringFixed(2))
	assert.Equal(t, "0.00", result.RemainingAfter.StringFixed(2))
	assert.Equal(t, "100.0", result.UsagePct.StringFixed(1))
	assert.True(t, result.Shortfall.IsZero())
}

func TestEvaluate_OneOverIsRejected(t *testing.T) {
	// GIVEN: 5000 budget
	// WHEN: Evaluating 5001
	// THEN: Rejected with a shortfall of exactly 1

	s := newState("10000")
	addExpense(s, "rent", "3000")

	result := engine.Evaluate(s, engine.MustMoney("5001"))

	assert.False(t, result.Approved)
	assert.Equal(t, "1.00", result.Shortfall.StringFixed(2))
	// Remaining is unchanged when rejected.
	assert.Equal(t, "5000.00", result.RemainingAfter.StringFixed(2))
}

func TestEvaluate_AccountsForPriorSpending(t *testing.T) {
	// GIVEN: 5000 budget with 4500 already used
	// THEN: Only 500 is approvable

	s := newState("10000")
	addExpense(s, "rent", "3000")
	s.DiscretionaryUsed = engine.MustMoney("4500")

	assert.True(t, engine.Evaluate(s, engine.MustMoney("500")).Approved)
	assert.False(t, engine.Evaluate(s, engine.MustMoney("501")).Approved)
}

func TestEvaluate_ZeroBudgetRejectsEverything(t *testing.T) {
	// GIVEN: No income set, so the budget is zero
	// THEN: Any amount is rejected and usage reports 100%

	s := engine.NewFinancialState()
	engine.Recalculate(s)

	result := engine.Evaluate(s, engine.MustMoney("1"))

	assert.False(t, result.Approved)
	assert.Equal(t, "100.0", result.UsagePct.StringFixed(1))
	assert.Equal(t, "1.00", result.Shortfall.StringFixed(2))
}

func TestEvaluate_NegativeBudgetRejectsEverything(t *testing.T) {
	// GIVEN: An over-committed budget (rent alone exceeds income)
	// THEN: Rejected, shortfall includes the deficit

	s := newState("3000")
	addExpense(s, "rent", "2800") // budget -400

	result := engine.Evaluate(s, engine.MustMoney("100"))

	assert.False(t, result.Approved)
	assert.Equal(t, "500.00", result.Shortfall.StringFixed(2))
}

func TestEvaluate_DoesNotMutateState(t *testing.T) {
	// Evaluation is a projection; the ledger is what commits.

	s := newState("10000")
	addExpense(s, "rent", "3000")
	before := s.DiscretionaryUsed

	engine.Evaluate(s, engine.MustMoney("4000"))

	assert.True(t, s.DiscretionaryUsed.Equal(before))
	assert.Empty(t, s.Transactions)
}
