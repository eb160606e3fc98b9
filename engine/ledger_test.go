package engine_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/budget-engine/engine"
)

func TestRecord_AppendsAndBumpsUsage(t *testing.T) {
	// GIVEN: A fresh 5000 budget
	// WHEN: Recording a 2000 purchase
	// THEN: Usage grows by exactly the amount and the entry freezes the
	//       remaining budget at append time

	s := newState("10000")
	addExpense(s, "rent", "3000")

	tx, err := engine.Record(s, engine.TxPurchase, "fridge", engine.MustMoney("2000"))
	require.NoError(t, err)

	assert.Equal(t, "2000.00", s.DiscretionaryUsed.StringFixed(2))
	assert.Equal(t, "3000.00", tx.RemainingAfter.StringFixed(2))
	assert.Equal(t, engine.TxPurchase, tx.Kind)
	assert.Equal(t, "fridge", tx.Label)
	assert.NotEmpty(t, tx.ID)
	require.Len(t, s.Transactions, 1)
}

func TestRecord_RemainingAfterIsFrozen(t *testing.T) {
	// Later spending must not rewrite earlier audit values.

	s := newState("10000")
	addExpense(s, "rent", "3000")

	first, err := engine.Record(s, engine.TxExpense, "food", engine.MustMoney("1000"))
	require.NoError(t, err)
	_, err = engine.Record(s, engine.TxExpense, "transport", engine.MustMoney("500"))
	require.NoError(t, err)

	assert.Equal(t, "4000.00", s.Transactions[0].RemainingAfter.StringFixed(2))
	assert.True(t, s.Transactions[0].RemainingAfter.Equal(first.RemainingAfter))
	assert.Equal(t, "3500.00", s.Transactions[1].RemainingAfter.StringFixed(2))
}

func TestRecord_OverspendIsRecordedNotRejected(t *testing.T) {
	// The ledger records reality; affordability is advisory. Spending past
	// the budget drives the remaining value negative.

	s := newState("10000")
	addExpense(s, "rent", "3000")

	tx, err := engine.Record(s, engine.TxPurchase, "tv", engine.MustMoney("6000"))
	require.NoError(t, err)

	assert.Equal(t, "-1000.00", tx.RemainingAfter.StringFixed(2))
}

func TestRecord_RejectsNonPositiveAmounts(t *testing.T) {
	s := newState("10000")

	for _, amount := range []string{"0", "-5"} {
		_, err := engine.Record(s, engine.TxExpense, "food", engine.MustMoney(amount))
		assert.ErrorIs(t, err, engine.ErrValidation, "amount %s", amount)
	}

	// Nothing was appended by the rejected calls.
	assert.Empty(t, s.Transactions)
	assert.True(t, s.DiscretionaryUsed.IsZero())
}

func TestRecord_UsageIsMonotone(t *testing.T) {
	// Every append grows DiscretionaryUsed by exactly its amount.

	s := newState("10000")
	addExpense(s, "rent", "3000")

	total := engine.Money(0)
	for _, amount := range []string{"100", "250.50", "49.99"} {
		before := s.DiscretionaryUsed
		_, err := engine.Record(s, engine.TxExpense, "misc", engine.MustMoney(amount))
		require.NoError(t, err)

		delta := s.DiscretionaryUsed.Sub(before)
		assert.True(t, delta.Equal(engine.MustMoney(amount)))
		total = total.Add(delta)
	}
	assert.True(t, s.DiscretionaryUsed.Equal(total))
	assert.Len(t, s.Transactions, 3)
}

func TestRecord_RefreshesDailyLimit(t *testing.T) {
	// The daily limit tracks the remaining budget after each spend.

	s := newState("10000")
	addExpense(s, "rent", "3000")
	require.Equal(t, "166.67", s.DailyLimit.StringFixed(2))

	_, err := engine.Record(s, engine.TxPurchase, "chair", engine.MustMoney("2000"))
	require.NoError(t, err)

	assert.Equal(t, "100.00", s.DailyLimit.StringFixed(2)) // 3000 / 30
}
