/*
handlers.go - HTTP API handlers for the budget engine

PURPOSE:
  Exposes the rules engine via REST. Handles HTTP request/response, JSON
  serialization, the per-session pending-intent resolver, and delegates
  every decision to the engine package.

ENDPOINTS:
  Intents:
    POST /api/intents        Submit a structured intent
    POST /api/messages       Submit free text (keyword parser)

  Read:
    GET  /api/status         Full budget snapshot
    GET  /api/transactions   Spending ledger

  Admin:
    POST /api/period/close   Run the period rollover
    POST /api/reset          Discard state and start over

REQUEST FLOW:
  1. Parse HTTP request into an intent (or text)
  2. Load state from the store
  3. Run the resolver; a clarification short-circuits without mutation
  4. Dispatch the complete intent
  5. Save state, serialize the envelope

SESSION MODEL:
  One state, one resolver, guarded by a mutex. Requests are serialized so
  a clarification and its follow-up cannot interleave with another
  mutation. This matches the single-user scope of the engine.

ERROR HANDLING:
  - 400: Validation errors, malformed input
  - 500: Store failures, internal errors

SEE ALSO:
  - dto.go: Request/response data structures
  - server.go: Router setup and middleware
*/
package api

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/warp/budget-engine/engine"
	"github.com/warp/budget-engine/intent"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Resetter is implemented by stores that can discard their snapshot
// (taking a backup first, where the backend supports it).
type Resetter interface {
	Clear() error
}

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Store engine.StateStore

	mu       sync.Mutex
	resolver intent.Resolver
}

// NewHandler creates a new handler backed by the given store.
func NewHandler(store engine.StateStore) *Handler {
	return &Handler{Store: store}
}

// =============================================================================
// INTENT HANDLERS
// =============================================================================

// SubmitIntent runs one structured intent through the resolver and engine.
func (h *Handler) SubmitIntent(w http.ResponseWriter, r *http.Request) {
	var req IntentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	in, err := toIntent(req)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid intent", err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	h.run(w, r, func() intent.Outcome { return h.resolver.Submit(in) })
}

// SubmitMessage runs free text through the parser, resolver and engine.
func (h *Handler) SubmitMessage(w http.ResponseWriter, r *http.Request) {
	var req MessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.Text == "" {
		writeError(w, http.StatusBadRequest, "Text is required", nil)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	h.run(w, r, func() intent.Outcome { return h.resolver.SubmitText(req.Text) })
}

// run executes one resolver outcome against loaded state and writes the
// envelope. Caller must hold h.mu.
func (h *Handler) run(w http.ResponseWriter, r *http.Request, submit func() intent.Outcome) {
	ctx := r.Context()

	state, err := engine.LoadOrNew(ctx, h.Store)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load state", err)
		return
	}

	outcome := submit()
	if outcome.Prompt != "" {
		writeJSON(w, http.StatusOK, EnvelopeDTO{
			Kind:          "CLARIFICATION",
			Clarification: outcome.Prompt,
		})
		return
	}

	resp, err := engine.Dispatch(state, outcome.Intent)
	if err != nil {
		if engine.IsClientError(err) {
			writeError(w, http.StatusBadRequest, "Invalid intent", err)
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to process intent", err)
		return
	}

	if err := h.Store.Save(ctx, state); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save state", err)
		return
	}

	writeJSON(w, http.StatusOK, toEnvelope(resp))
}

// =============================================================================
// READ HANDLERS
// =============================================================================

// GetStatus returns the full budget snapshot.
func (h *Handler) GetStatus(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	defer h.mu.Unlock()

	state, err := engine.LoadOrNew(r.Context(), h.Store)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load state", err)
		return
	}

	resp, err := engine.Dispatch(state, intent.ShowStatus{})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to build status", err)
		return
	}

	status := toStatusDTO(resp.(engine.StatusResponse))
	writeJSON(w, http.StatusOK, status)
}

// GetTransactions returns the complete spending ledger, oldest first.
func (h *Handler) GetTransactions(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	defer h.mu.Unlock()

	state, err := engine.LoadOrNew(r.Context(), h.Store)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load state", err)
		return
	}

	dtos := make([]TransactionDTO, len(state.Transactions))
	for i, tx := range state.Transactions {
		dtos[i] = toTransactionDTO(tx)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// =============================================================================
// ADMIN HANDLERS
// =============================================================================

// ClosePeriod runs the end-of-period rollover: surplus sweep, savings
// credit, usage reset.
func (h *Handler) ClosePeriod(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	defer h.mu.Unlock()
	ctx := r.Context()

	state, err := engine.LoadOrNew(ctx, h.Store)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load state", err)
		return
	}

	notes := engine.ClosePeriod(state)
	state.Touch()

	if err := h.Store.Save(ctx, state); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save state", err)
		return
	}

	writeJSON(w, http.StatusOK, PeriodCloseDTO{
		Notes:          notes,
		CurrentSavings: num(state.CurrentSavings),
		CurrentDay:     state.CurrentDay,
	})
}

// Reset discards all state and any pending intent.
func (h *Handler) Reset(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	defer h.mu.Unlock()
	ctx := r.Context()

	if c, ok := h.Store.(Resetter); ok {
		if err := c.Clear(); err != nil {
			writeError(w, http.StatusInternalServerError, "Failed to clear state", err)
			return
		}
	}

	if err := h.Store.Save(ctx, engine.NewFinancialState()); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to reset state", err)
		return
	}
	h.resolver.Reset()

	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// =============================================================================
// HELPERS
// =============================================================================

// toIntent maps a wire request onto an intent variant. Absent amounts
// stay nil so the resolver can ask for them.
func toIntent(req IntentRequest) (intent.Intent, error) {
	amount, err := parseAmount(req.Amount)
	if err != nil {
		return nil, err
	}
	target, err := parseAmount(req.TargetAmount)
	if err != nil {
		return nil, err
	}

	switch intent.Kind(req.Kind) {
	case intent.KindSetIncome:
		return intent.SetIncome{Amount: amount}, nil
	case intent.KindSetFixedExpense:
		return intent.SetFixedExpense{Name: req.Name, Amount: amount}, nil
	case intent.KindSetGoal:
		return intent.SetGoal{Item: req.Item, TargetAmount: target, TimeframeMonths: req.TimeframeMonths}, nil
	case intent.KindAffordabilityCheck:
		return intent.AffordabilityCheck{Item: req.Item, Amount: amount}, nil
	case intent.KindLogPurchase:
		return intent.LogPurchase{Item: req.Item, Category: req.Category, Amount: amount}, nil
	case intent.KindLogExpense:
		return intent.LogExpense{Category: req.Category, Amount: amount}, nil
	case intent.KindShowStatus:
		return intent.ShowStatus{}, nil
	case intent.KindHelp:
		return intent.Help{}, nil
	default:
		return intent.Unknown{}, nil
	}
}

func parseAmount(n *json.Number) (*decimal.Decimal, error) {
	if n == nil {
		return nil, nil
	}
	d, err := decimal.NewFromString(n.String())
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}
