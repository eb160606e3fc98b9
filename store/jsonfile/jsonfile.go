/*
Package jsonfile persists the financial state as a single JSON snapshot.

PURPOSE:
  The simplest durable StateStore: one file, one record, rewritten
  whole on every save. Matches the engine's atomic load/save contract -
  a reader never observes a partial state because writes go to a temp
  file and are renamed into place.

LAYOUT:
  <dir>/state.json                     current snapshot
  <dir>/state_backup_<timestamp>.json  created before Clear
  <dir>/transactions_<timestamp>.json  Export output

FORMAT:
  Field-for-field mapping of engine.FinancialState: decimals as JSON
  numbers (serialized via json.Number to keep exact precision),
  timestamps as ISO-8601 strings, transactions as an ordered list.
*/
package jsonfile

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/warp/budget-engine/engine"
)

const stateFile = "state.json"

type Store struct {
	mu  sync.Mutex
	dir string
}

// New creates the data directory if needed and returns the store.
func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	return &Store{dir: dir}, nil
}

func (st *Store) path() string { return filepath.Join(st.dir, stateFile) }

func (st *Store) Load(_ context.Context) (*engine.FinancialState, error) {
	st.mu.Lock()
	defer st.mu.Unlock()

	data, err := os.ReadFile(st.path())
	if os.IsNotExist(err) {
		return nil, engine.ErrStateNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("read state: %w", err)
	}

	var rec stateRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("decode state: %w", err)
	}
	return rec.toState()
}

func (st *Store) Save(_ context.Context, s *engine.FinancialState) error {
	st.mu.Lock()
	defer st.mu.Unlock()

	data, err := json.MarshalIndent(fromState(s), "", "  ")
	if err != nil {
		return fmt.Errorf("encode state: %w", err)
	}

	// Temp file + rename keeps the snapshot atomic on the same volume.
	tmp, err := os.CreateTemp(st.dir, stateFile+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp state: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write state: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("close temp state: %w", err)
	}
	if err := os.Rename(tmp.Name(), st.path()); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("replace state: %w", err)
	}
	return nil
}

// Backup copies the current snapshot to a timestamped file. Returns the
// backup path, or "" when there is nothing to back up.
func (st *Store) Backup() (string, error) {
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.backupLocked()
}

func (st *Store) backupLocked() (string, error) {
	data, err := os.ReadFile(st.path())
	if os.IsNotExist(err) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("read state for backup: %w", err)
	}

	name := fmt.Sprintf("state_backup_%s.json", time.Now().UTC().Format("20060102_150405"))
	backup := filepath.Join(st.dir, name)
	if err := os.WriteFile(backup, data, 0o644); err != nil {
		return "", fmt.Errorf("write backup: %w", err)
	}
	return backup, nil
}

// Clear removes the snapshot after taking a backup.
func (st *Store) Clear() error {
	st.mu.Lock()
	defer st.mu.Unlock()

	if _, err := st.backupLocked(); err != nil {
		return err
	}
	if err := os.Remove(st.path()); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove state: %w", err)
	}
	return nil
}

// Export writes the transaction history to a timestamped JSON file and
// returns its path. Returns "" when there are no transactions.
func (st *Store) Export(ctx context.Context) (string, error) {
	s, err := st.Load(ctx)
	if err != nil {
		return "", err
	}
	if len(s.Transactions) == 0 {
		return "", nil
	}

	recs := make([]txRecord, len(s.Transactions))
	for i, tx := range s.Transactions {
		recs[i] = fromTransaction(tx)
	}
	data, err := json.MarshalIndent(recs, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode transactions: %w", err)
	}

	name := fmt.Sprintf("transactions_%s.json", time.Now().UTC().Format("20060102_150405"))
	out := filepath.Join(st.dir, name)
	if err := os.WriteFile(out, data, 0o644); err != nil {
		return "", fmt.Errorf("write export: %w", err)
	}
	return out, nil
}

// =============================================================================
// RECORDS - On-disk representation
// =============================================================================

type stateRecord struct {
	MonthlyIncome       json.Number              `json:"monthly_income"`
	FixedExpenses       map[string]expenseRecord `json:"fixed_expenses"`
	Goal                *goalRecord              `json:"goal,omitempty"`
	DiscretionaryBudget json.Number              `json:"discretionary_budget"`
	DiscretionaryUsed   json.Number              `json:"discretionary_used"`
	SavingsAllocation   json.Number              `json:"savings_allocation"`
	CurrentSavings      json.Number              `json:"current_savings"`
	DailyLimit          json.Number              `json:"daily_limit"`
	Transactions        []txRecord               `json:"transactions"`
	CurrentDay          int                      `json:"current_day"`
	CreatedAt           string                   `json:"created_at"`
	LastUpdated         string                   `json:"last_updated"`
}

type expenseRecord struct {
	Name      string      `json:"name"`
	Amount    json.Number `json:"amount"`
	Frequency string      `json:"frequency"`
}

type goalRecord struct {
	Item            string      `json:"item"`
	TargetAmount    json.Number `json:"target_amount"`
	TimeframeMonths int         `json:"timeframe_months"`
	CurrentSavings  json.Number `json:"current_savings"`
	CreatedAt       string      `json:"created_at"`
}

type txRecord struct {
	ID             string      `json:"id"`
	Timestamp      string      `json:"timestamp"`
	Kind           string      `json:"kind"`
	Label          string      `json:"label"`
	Amount         json.Number `json:"amount"`
	RemainingAfter json.Number `json:"remaining_discretionary_after"`
}

func num(d decimal.Decimal) json.Number { return json.Number(d.String()) }

func dec(n json.Number) (decimal.Decimal, error) {
	if n == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(string(n))
}

func stamp(t time.Time) string { return t.UTC().Format(time.RFC3339) }

func parseStamp(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

func fromState(s *engine.FinancialState) stateRecord {
	rec := stateRecord{
		MonthlyIncome:       num(s.MonthlyIncome),
		FixedExpenses:       make(map[string]expenseRecord, len(s.FixedExpenses)),
		DiscretionaryBudget: num(s.DiscretionaryBudget),
		DiscretionaryUsed:   num(s.DiscretionaryUsed),
		SavingsAllocation:   num(s.SavingsAllocation),
		CurrentSavings:      num(s.CurrentSavings),
		DailyLimit:          num(s.DailyLimit),
		Transactions:        make([]txRecord, len(s.Transactions)),
		CurrentDay:          s.CurrentDay,
		CreatedAt:           stamp(s.CreatedAt),
		LastUpdated:         stamp(s.LastUpdated),
	}

	for name, e := range s.FixedExpenses {
		rec.FixedExpenses[name] = expenseRecord{
			Name:      e.Name,
			Amount:    num(e.Amount),
			Frequency: string(e.Frequency),
		}
	}
	if s.Goal != nil {
		rec.Goal = &goalRecord{
			Item:            s.Goal.Item,
			TargetAmount:    num(s.Goal.TargetAmount),
			TimeframeMonths: s.Goal.TimeframeMonths,
			CurrentSavings:  num(s.Goal.CurrentSavings),
			CreatedAt:       stamp(s.Goal.CreatedAt),
		}
	}
	for i, tx := range s.Transactions {
		rec.Transactions[i] = fromTransaction(tx)
	}
	return rec
}

func fromTransaction(tx engine.Transaction) txRecord {
	return txRecord{
		ID:             tx.ID,
		Timestamp:      stamp(tx.Timestamp),
		Kind:           string(tx.Kind),
		Label:          tx.Label,
		Amount:         num(tx.Amount),
		RemainingAfter: num(tx.RemainingAfter),
	}
}

func (rec stateRecord) toState() (*engine.FinancialState, error) {
	s := engine.NewFinancialState()

	var err error
	if s.MonthlyIncome, err = dec(rec.MonthlyIncome); err != nil {
		return nil, fmt.Errorf("monthly_income: %w", err)
	}
	if s.DiscretionaryBudget, err = dec(rec.DiscretionaryBudget); err != nil {
		return nil, fmt.Errorf("discretionary_budget: %w", err)
	}
	if s.DiscretionaryUsed, err = dec(rec.DiscretionaryUsed); err != nil {
		return nil, fmt.Errorf("discretionary_used: %w", err)
	}
	if s.SavingsAllocation, err = dec(rec.SavingsAllocation); err != nil {
		return nil, fmt.Errorf("savings_allocation: %w", err)
	}
	if s.CurrentSavings, err = dec(rec.CurrentSavings); err != nil {
		return nil, fmt.Errorf("current_savings: %w", err)
	}
	if s.DailyLimit, err = dec(rec.DailyLimit); err != nil {
		return nil, fmt.Errorf("daily_limit: %w", err)
	}

	for name, e := range rec.FixedExpenses {
		amount, err := dec(e.Amount)
		if err != nil {
			return nil, fmt.Errorf("fixed expense %q: %w", name, err)
		}
		s.FixedExpenses[name] = engine.FixedExpense{
			Name:      e.Name,
			Amount:    amount,
			Frequency: engine.ExpenseFrequency(e.Frequency),
		}
	}

	if rec.Goal != nil {
		target, err := dec(rec.Goal.TargetAmount)
		if err != nil {
			return nil, fmt.Errorf("goal target: %w", err)
		}
		saved, err := dec(rec.Goal.CurrentSavings)
		if err != nil {
			return nil, fmt.Errorf("goal savings: %w", err)
		}
		s.Goal = &engine.SavingsGoal{
			Item:            rec.Goal.Item,
			TargetAmount:    target,
			TimeframeMonths: rec.Goal.TimeframeMonths,
			CurrentSavings:  saved,
			CreatedAt:       parseStamp(rec.Goal.CreatedAt),
		}
	}

	s.Transactions = make([]engine.Transaction, len(rec.Transactions))
	for i, tr := range rec.Transactions {
		amount, err := dec(tr.Amount)
		if err != nil {
			return nil, fmt.Errorf("transaction %s amount: %w", tr.ID, err)
		}
		remaining, err := dec(tr.RemainingAfter)
		if err != nil {
			return nil, fmt.Errorf("transaction %s remaining: %w", tr.ID, err)
		}
		s.Transactions[i] = engine.Transaction{
			ID:             tr.ID,
			Timestamp:      parseStamp(tr.Timestamp),
			Kind:           engine.TransactionKind(tr.Kind),
			Label:          tr.Label,
			Amount:         amount,
			RemainingAfter: remaining,
		}
	}

	if rec.CurrentDay >= 1 {
		s.CurrentDay = rec.CurrentDay
	}
	s.CreatedAt = parseStamp(rec.CreatedAt)
	s.LastUpdated = parseStamp(rec.LastUpdated)
	return s, nil
}
