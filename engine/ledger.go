/*
ledger.go - Append-only spending ledger

PURPOSE:
  Records discretionary spending against the financial state. The
  transaction list is the audit trail for how DiscretionaryUsed reached
  its current value.

CRITICAL INVARIANTS:
  1. APPEND-ONLY: transactions are never removed or mutated
  2. AUDITABLE: each entry stores the remaining budget at append time,
     computed once and frozen
  3. MONOTONE: DiscretionaryUsed grows by exactly the recorded amount

CORRECTIONS:
  A mistaken entry is not edited. The caller appends a compensating
  entry instead, so both the mistake and the correction stay visible.
*/
package engine

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Record appends a spend to the ledger, bumps DiscretionaryUsed, and
// refreshes the derived fields (the daily limit depends on usage).
// Rejects non-positive amounts with a validation error before touching
// anything.
func Record(s *FinancialState, kind TransactionKind, label string, amount decimal.Decimal) (Transaction, error) {
	if !amount.IsPositive() {
		return Transaction{}, errNonPositiveAmount("amount")
	}

	s.DiscretionaryUsed = s.DiscretionaryUsed.Add(amount)

	tx := Transaction{
		ID:             uuid.NewString(),
		Timestamp:      time.Now().UTC(),
		Kind:           kind,
		Label:          label,
		Amount:         amount,
		RemainingAfter: s.RemainingDiscretionary(),
	}
	s.Transactions = append(s.Transactions, tx)

	Recalculate(s)
	s.Touch()
	return tx, nil
}
