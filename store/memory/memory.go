// Package memory provides an in-memory StateStore for tests and dev.
package memory

import (
	"context"
	"sync"

	"github.com/warp/budget-engine/engine"
)

type Store struct {
	mu    sync.Mutex
	state *engine.FinancialState
}

func New() *Store {
	return &Store{}
}

func (m *Store) Load(_ context.Context) (*engine.FinancialState, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state == nil {
		return nil, engine.ErrStateNotFound
	}
	return clone(m.state), nil
}

func (m *Store) Save(_ context.Context, s *engine.FinancialState) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = clone(s)
	return nil
}

// clone copies the state so callers never share mutable internals with
// the store.
func clone(s *engine.FinancialState) *engine.FinancialState {
	out := *s

	out.FixedExpenses = make(map[string]engine.FixedExpense, len(s.FixedExpenses))
	for k, v := range s.FixedExpenses {
		out.FixedExpenses[k] = v
	}

	if s.Goal != nil {
		goal := *s.Goal
		out.Goal = &goal
	}

	out.Transactions = append([]engine.Transaction(nil), s.Transactions...)
	return &out
}
