/*
Package sqlite provides a SQLite-backed StateStore.

PURPOSE:
  Durable persistence for the financial state: a single state row plus
  an append-only transaction archive. The archive mirrors the engine's
  ledger discipline at the storage layer - transactions are inserted
  once and never updated or deleted.

KEY TABLES:
  financial_state:  one row (id=1) with all scalar fields, compound
                    fields (expenses, goal) JSON-encoded
  transactions:     immutable spending archive, ordered by insertion

APPEND-ONLY ENFORCEMENT:
  Save upserts the state row but only ever INSERTs into transactions.
  The single exception is Clear, the full reset: it wipes the state row
  and the archive together so a fresh state never carries old history.

WAL MODE:
  Opened with WAL so readers don't block the single writer.

USAGE:
  store, err := sqlite.New("./data/budget.db")   // or ":memory:"
  defer store.Close()
*/
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"

	"github.com/warp/budget-engine/engine"
)

type Store struct {
	db *sql.DB
	mu sync.Mutex
}

// New opens (or creates) the database and migrates the schema.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	st := &Store{db: db}
	if err := st.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate database: %w", err)
	}
	return st, nil
}

func (st *Store) Close() error { return st.db.Close() }

func (st *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS financial_state (
		id INTEGER PRIMARY KEY CHECK (id = 1),
		monthly_income TEXT NOT NULL,
		fixed_expenses_json TEXT NOT NULL,
		goal_json TEXT,
		discretionary_budget TEXT NOT NULL,
		discretionary_used TEXT NOT NULL,
		savings_allocation TEXT NOT NULL,
		current_savings TEXT NOT NULL,
		daily_limit TEXT NOT NULL,
		current_day INTEGER NOT NULL,
		created_at TEXT NOT NULL,
		last_updated TEXT NOT NULL
	);

	-- Append-only spending archive. Insertion order is ledger order.
	CREATE TABLE IF NOT EXISTS transactions (
		id TEXT PRIMARY KEY,
		ts TEXT NOT NULL,
		kind TEXT NOT NULL,
		label TEXT NOT NULL,
		amount TEXT NOT NULL,
		remaining_after TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_transactions_ts ON transactions(ts);
	`
	_, err := st.db.Exec(schema)
	return err
}

// =============================================================================
// STATESTORE IMPLEMENTATION
// =============================================================================

func (st *Store) Load(ctx context.Context) (*engine.FinancialState, error) {
	st.mu.Lock()
	defer st.mu.Unlock()

	row := st.db.QueryRowContext(ctx, `
		SELECT monthly_income, fixed_expenses_json, goal_json,
		       discretionary_budget, discretionary_used, savings_allocation,
		       current_savings, daily_limit, current_day, created_at, last_updated
		FROM financial_state WHERE id = 1`)

	var (
		income, budget, used, alloc, savings, limit string
		expensesJSON                                string
		goalJSON                                    sql.NullString
		day                                         int
		createdAt, lastUpdated                      string
	)
	err := row.Scan(&income, &expensesJSON, &goalJSON, &budget, &used,
		&alloc, &savings, &limit, &day, &createdAt, &lastUpdated)
	if err == sql.ErrNoRows {
		return nil, engine.ErrStateNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load state: %w", err)
	}

	s := engine.NewFinancialState()
	if s.MonthlyIncome, err = parseDec(income); err != nil {
		return nil, err
	}
	if s.DiscretionaryBudget, err = parseDec(budget); err != nil {
		return nil, err
	}
	if s.DiscretionaryUsed, err = parseDec(used); err != nil {
		return nil, err
	}
	if s.SavingsAllocation, err = parseDec(alloc); err != nil {
		return nil, err
	}
	if s.CurrentSavings, err = parseDec(savings); err != nil {
		return nil, err
	}
	if s.DailyLimit, err = parseDec(limit); err != nil {
		return nil, err
	}
	s.CurrentDay = day
	s.CreatedAt = parseTime(createdAt)
	s.LastUpdated = parseTime(lastUpdated)

	var expenses map[string]expenseJSON
	if err := json.Unmarshal([]byte(expensesJSON), &expenses); err != nil {
		return nil, fmt.Errorf("decode fixed expenses: %w", err)
	}
	for name, e := range expenses {
		amount, err := parseDec(e.Amount)
		if err != nil {
			return nil, err
		}
		s.FixedExpenses[name] = engine.FixedExpense{
			Name:      e.Name,
			Amount:    amount,
			Frequency: engine.ExpenseFrequency(e.Frequency),
		}
	}

	if goalJSON.Valid && goalJSON.String != "" {
		var g goalJSONRecord
		if err := json.Unmarshal([]byte(goalJSON.String), &g); err != nil {
			return nil, fmt.Errorf("decode goal: %w", err)
		}
		target, err := parseDec(g.TargetAmount)
		if err != nil {
			return nil, err
		}
		saved, err := parseDec(g.CurrentSavings)
		if err != nil {
			return nil, err
		}
		s.Goal = &engine.SavingsGoal{
			Item:            g.Item,
			TargetAmount:    target,
			TimeframeMonths: g.TimeframeMonths,
			CurrentSavings:  saved,
			CreatedAt:       parseTime(g.CreatedAt),
		}
	}

	if s.Transactions, err = st.loadTransactions(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

func (st *Store) loadTransactions(ctx context.Context) ([]engine.Transaction, error) {
	rows, err := st.db.QueryContext(ctx, `
		SELECT id, ts, kind, label, amount, remaining_after
		FROM transactions ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("load transactions: %w", err)
	}
	defer rows.Close()

	var txs []engine.Transaction
	for rows.Next() {
		var (
			tx                    engine.Transaction
			ts, kind, amt, remain string
		)
		if err := rows.Scan(&tx.ID, &ts, &kind, &tx.Label, &amt, &remain); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		tx.Timestamp = parseTime(ts)
		tx.Kind = engine.TransactionKind(kind)
		if tx.Amount, err = parseDec(amt); err != nil {
			return nil, err
		}
		if tx.RemainingAfter, err = parseDec(remain); err != nil {
			return nil, err
		}
		txs = append(txs, tx)
	}
	return txs, rows.Err()
}

func (st *Store) Save(ctx context.Context, s *engine.FinancialState) error {
	st.mu.Lock()
	defer st.mu.Unlock()

	expenses := make(map[string]expenseJSON, len(s.FixedExpenses))
	for name, e := range s.FixedExpenses {
		expenses[name] = expenseJSON{
			Name:      e.Name,
			Amount:    e.Amount.String(),
			Frequency: string(e.Frequency),
		}
	}
	expensesJSON, err := json.Marshal(expenses)
	if err != nil {
		return fmt.Errorf("encode fixed expenses: %w", err)
	}

	var goalJSON any
	if s.Goal != nil {
		data, err := json.Marshal(goalJSONRecord{
			Item:            s.Goal.Item,
			TargetAmount:    s.Goal.TargetAmount.String(),
			TimeframeMonths: s.Goal.TimeframeMonths,
			CurrentSavings:  s.Goal.CurrentSavings.String(),
			CreatedAt:       formatTime(s.Goal.CreatedAt),
		})
		if err != nil {
			return fmt.Errorf("encode goal: %w", err)
		}
		goalJSON = string(data)
	}

	tx, err := st.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin save: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO financial_state (
			id, monthly_income, fixed_expenses_json, goal_json,
			discretionary_budget, discretionary_used, savings_allocation,
			current_savings, daily_limit, current_day, created_at, last_updated
		) VALUES (1, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			monthly_income = excluded.monthly_income,
			fixed_expenses_json = excluded.fixed_expenses_json,
			goal_json = excluded.goal_json,
			discretionary_budget = excluded.discretionary_budget,
			discretionary_used = excluded.discretionary_used,
			savings_allocation = excluded.savings_allocation,
			current_savings = excluded.current_savings,
			daily_limit = excluded.daily_limit,
			current_day = excluded.current_day,
			last_updated = excluded.last_updated`,
		s.MonthlyIncome.String(), string(expensesJSON), goalJSON,
		s.DiscretionaryBudget.String(), s.DiscretionaryUsed.String(),
		s.SavingsAllocation.String(), s.CurrentSavings.String(),
		s.DailyLimit.String(), s.CurrentDay,
		formatTime(s.CreatedAt), formatTime(s.LastUpdated))
	if err != nil {
		return fmt.Errorf("save state: %w", err)
	}

	// Archive is insert-only: known ids are skipped, nothing is ever
	// rewritten in place.
	for _, rec := range s.Transactions {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO transactions (id, ts, kind, label, amount, remaining_after)
			VALUES (?, ?, ?, ?, ?, ?)
			ON CONFLICT(id) DO NOTHING`,
			rec.ID, formatTime(rec.Timestamp), string(rec.Kind), rec.Label,
			rec.Amount.String(), rec.RemainingAfter.String())
		if err != nil {
			return fmt.Errorf("archive transaction %s: %w", rec.ID, err)
		}
	}

	return tx.Commit()
}

// Clear removes the state row and the transaction archive in one
// database transaction. This is the reset path: a wiped store must not
// hand a fresh state an old ledger.
func (st *Store) Clear() error {
	st.mu.Lock()
	defer st.mu.Unlock()

	tx, err := st.db.Begin()
	if err != nil {
		return fmt.Errorf("begin clear: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM financial_state`); err != nil {
		return fmt.Errorf("clear state: %w", err)
	}
	if _, err := tx.Exec(`DELETE FROM transactions`); err != nil {
		return fmt.Errorf("clear transactions: %w", err)
	}
	return tx.Commit()
}

// =============================================================================
// ENCODING HELPERS
// =============================================================================

type expenseJSON struct {
	Name      string `json:"name"`
	Amount    string `json:"amount"`
	Frequency string `json:"frequency"`
}

type goalJSONRecord struct {
	Item            string `json:"item"`
	TargetAmount    string `json:"target_amount"`
	TimeframeMonths int    `json:"timeframe_months"`
	CurrentSavings  string `json:"current_savings"`
	CreatedAt       string `json:"created_at"`
}

func parseDec(s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("parse decimal %q: %w", s, err)
	}
	return d, nil
}

func formatTime(t time.Time) string { return t.UTC().Format(time.RFC3339) }

func parseTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
