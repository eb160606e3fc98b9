package engine

import (
	"context"
	"errors"
)

// StateStore is the load/save boundary for persisted financial state.
//
// The engine treats persistence as atomic and whole: Load returns a
// fully-populated state before an operation, Save writes the complete
// state after. Implementations must never expose partially read or
// partially written state to the engine.
//
// Implementations:
//   - store/jsonfile: JSON snapshot on disk
//   - store/sqlite:   SQLite state row + append-only transaction archive
//   - store/memory:   in-memory, for tests and dev
type StateStore interface {
	// Load returns the persisted state, or ErrStateNotFound when no
	// state has been saved yet.
	Load(ctx context.Context) (*FinancialState, error)

	// Save persists the complete state, replacing the previous snapshot.
	// Transaction history may only grow between saves.
	Save(ctx context.Context, s *FinancialState) error
}

// LoadOrNew loads the persisted state, starting a fresh one when nothing
// has been saved yet.
func LoadOrNew(ctx context.Context, st StateStore) (*FinancialState, error) {
	s, err := st.Load(ctx)
	if errors.Is(err, ErrStateNotFound) {
		return NewFinancialState(), nil
	}
	if err != nil {
		return nil, err
	}
	return s, nil
}
