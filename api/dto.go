/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. These types decouple
  the engine's decimal-typed responses from the wire format: every money
  field is emitted as a plain JSON number built from the decimal's exact
  string form, so clients never see float artifacts.

NAMING CONVENTION:
  - *Request: Request body types from clients
  - *DTO: Response types returned to clients

ENVELOPE:
  Every intent submission (structured or free text) returns EnvelopeDTO.
  Exactly one of the payload sections is populated, selected by Kind:
  - clarification: the resolver needs one more field
  - message/advisories: mutation acknowledgements
  - affordability: AFFORDABILITY_CHECK verdict
  - status: SHOW_STATUS snapshot
  - help: HELP or UNKNOWN guidance text

SEE ALSO:
  - handlers.go: Builds these from engine responses
*/
package api

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"

	"github.com/warp/budget-engine/engine"
	"github.com/warp/budget-engine/intent"
)

// =============================================================================
// REQUEST TYPES
// =============================================================================

// IntentRequest is a structured intent submission. Amount fields are
// pointers so "absent" and "zero" stay distinguishable - an absent
// required field triggers a clarification, not an error.
type IntentRequest struct {
	Kind            string       `json:"kind"`
	Item            string       `json:"item,omitempty"`
	Name            string       `json:"name,omitempty"`
	Category        string       `json:"category,omitempty"`
	Amount          *json.Number `json:"amount,omitempty"`
	TargetAmount    *json.Number `json:"target_amount,omitempty"`
	TimeframeMonths int          `json:"timeframe_months,omitempty"`
}

// MessageRequest is a free-text submission routed through the parser.
type MessageRequest struct {
	Text string `json:"text"`
}

// =============================================================================
// RESPONSE TYPES
// =============================================================================

// EnvelopeDTO wraps every intent outcome.
type EnvelopeDTO struct {
	Kind          string            `json:"kind"`
	Clarification string            `json:"clarification,omitempty"`
	Message       string            `json:"message,omitempty"`
	Advisories    []string          `json:"advisories,omitempty"`
	Affordability *AffordabilityDTO `json:"affordability,omitempty"`
	Status        *StatusDTO        `json:"status,omitempty"`
	Help          string            `json:"help,omitempty"`
}

// AffordabilityDTO is the verdict for an affordability check.
type AffordabilityDTO struct {
	Item            string         `json:"item"`
	Amount          json.Number    `json:"amount"`
	Approved        bool           `json:"approved"`
	RemainingBefore json.Number    `json:"remaining_before"`
	RemainingAfter  json.Number    `json:"remaining_after"`
	UsagePct        json.Number    `json:"usage_pct"`
	Shortfall       json.Number    `json:"shortfall"`
	DailyLimit      json.Number    `json:"daily_limit"`
	GoalImpact      *GoalImpactDTO `json:"goal_impact,omitempty"`
}

// GoalImpactDTO projects a purchase's effect on the savings goal.
type GoalImpactDTO struct {
	OnTrack   bool        `json:"on_track"`
	DelayDays json.Number `json:"delay_days"`
}

// StatusDTO is the full budget snapshot.
type StatusDTO struct {
	MonthlyIncome       json.Number      `json:"monthly_income"`
	TotalFixedExpenses  json.Number      `json:"total_fixed_expenses"`
	FixedExpenses       []ExpenseDTO     `json:"fixed_expenses"`
	DiscretionaryBudget json.Number      `json:"discretionary_budget"`
	DiscretionaryUsed   json.Number      `json:"discretionary_used"`
	Remaining           json.Number      `json:"remaining"`
	UsagePct            json.Number      `json:"usage_pct"`
	SavingsAllocation   json.Number      `json:"savings_allocation"`
	CurrentSavings      json.Number      `json:"current_savings"`
	DailyLimit          json.Number      `json:"daily_limit"`
	CurrentDay          int              `json:"current_day"`
	Goal                *GoalStatusDTO   `json:"goal,omitempty"`
	RecentTransactions  []TransactionDTO `json:"recent_transactions"`
	TransactionCount    int              `json:"transaction_count"`
}

// ExpenseDTO is one fixed expense line.
type ExpenseDTO struct {
	Name      string      `json:"name"`
	Amount    json.Number `json:"amount"`
	Frequency string      `json:"frequency"`
}

// GoalStatusDTO is the goal section of the snapshot.
type GoalStatusDTO struct {
	Item            string      `json:"item"`
	TargetAmount    json.Number `json:"target_amount"`
	TimeframeMonths int         `json:"timeframe_months"`
	CurrentSavings  json.Number `json:"current_savings"`
	RequiredMonthly json.Number `json:"required_monthly"`
	ProgressPct     json.Number `json:"progress_pct"`
}

// TransactionDTO is one ledger entry.
type TransactionDTO struct {
	ID             string      `json:"id"`
	Timestamp      string      `json:"timestamp"`
	Kind           string      `json:"kind"`
	Label          string      `json:"label"`
	Amount         json.Number `json:"amount"`
	RemainingAfter json.Number `json:"remaining_after"`
}

// PeriodCloseDTO reports the rollover outcome.
type PeriodCloseDTO struct {
	Notes          []string    `json:"notes"`
	CurrentSavings json.Number `json:"current_savings"`
	CurrentDay     int         `json:"current_day"`
}

// ErrorResponse is the JSON body for failed requests.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// =============================================================================
// CONVERSIONS
// =============================================================================

func num(d decimal.Decimal) json.Number { return json.Number(d.String()) }

func toEnvelope(resp engine.Response) EnvelopeDTO {
	switch v := resp.(type) {
	case engine.Ack:
		return EnvelopeDTO{Kind: string(v.Kind), Message: v.Message, Advisories: v.Advisories}
	case engine.AffordabilityResponse:
		dto := &AffordabilityDTO{
			Item:            v.Item,
			Amount:          num(v.Amount),
			Approved:        v.Approved,
			RemainingBefore: num(v.RemainingBefore),
			RemainingAfter:  num(v.RemainingAfter),
			UsagePct:        num(v.UsagePct),
			Shortfall:       num(v.Shortfall),
			DailyLimit:      num(v.DailyLimit),
		}
		if v.GoalImpact != nil {
			dto.GoalImpact = &GoalImpactDTO{
				OnTrack:   v.GoalImpact.OnTrack,
				DelayDays: num(v.GoalImpact.DelayDays),
			}
		}
		return EnvelopeDTO{
			Kind:          string(intent.KindAffordabilityCheck),
			Advisories:    v.Advisories,
			Affordability: dto,
		}
	case engine.StatusResponse:
		status := toStatusDTO(v)
		return EnvelopeDTO{Kind: string(intent.KindShowStatus), Status: &status}
	case engine.HelpResponse:
		return EnvelopeDTO{Kind: string(v.Kind), Help: v.Text}
	default:
		return EnvelopeDTO{Kind: string(resp.ResponseKind())}
	}
}

func toStatusDTO(v engine.StatusResponse) StatusDTO {
	dto := StatusDTO{
		MonthlyIncome:       num(v.MonthlyIncome),
		TotalFixedExpenses:  num(v.TotalFixedExpenses),
		FixedExpenses:       make([]ExpenseDTO, 0, len(v.FixedExpenses)),
		DiscretionaryBudget: num(v.DiscretionaryBudget),
		DiscretionaryUsed:   num(v.DiscretionaryUsed),
		Remaining:           num(v.Remaining),
		UsagePct:            num(v.UsagePct),
		SavingsAllocation:   num(v.SavingsAllocation),
		CurrentSavings:      num(v.CurrentSavings),
		DailyLimit:          num(v.DailyLimit),
		CurrentDay:          v.CurrentDay,
		RecentTransactions:  make([]TransactionDTO, 0, len(v.RecentTransactions)),
		TransactionCount:    v.TransactionCount,
	}

	for _, e := range v.FixedExpenses {
		dto.FixedExpenses = append(dto.FixedExpenses, ExpenseDTO{
			Name:      e.Name,
			Amount:    num(e.Amount),
			Frequency: string(e.Frequency),
		})
	}
	if v.Goal != nil {
		dto.Goal = &GoalStatusDTO{
			Item:            v.Goal.Item,
			TargetAmount:    num(v.Goal.TargetAmount),
			TimeframeMonths: v.Goal.TimeframeMonths,
			CurrentSavings:  num(v.Goal.CurrentSavings),
			RequiredMonthly: num(v.Goal.RequiredMonthly),
			ProgressPct:     num(v.Goal.ProgressPct),
		}
	}
	for _, tx := range v.RecentTransactions {
		dto.RecentTransactions = append(dto.RecentTransactions, toTransactionDTO(tx))
	}
	return dto
}

func toTransactionDTO(tx engine.Transaction) TransactionDTO {
	return TransactionDTO{
		ID:             tx.ID,
		Timestamp:      tx.Timestamp.UTC().Format(time.RFC3339),
		Kind:           string(tx.Kind),
		Label:          tx.Label,
		Amount:         num(tx.Amount),
		RemainingAfter: num(tx.RemainingAfter),
	}
}
