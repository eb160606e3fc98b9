/*
dispatch.go - Intent dispatch

PURPOSE:
  Routes a completed intent to the component that handles it and builds
  the structured response. The pending-intent resolver sits upstream:
  by the time an intent reaches Dispatch, every required field is
  present, so a missing field here is a hard validation error rather
  than a clarification.

MUTATION DISCIPLINE:
  Every mutating branch ends with Recalculate (via the component), so
  derived fields always reflect the latest inputs. Spend recording
  additionally runs the adaptive adjuster, which may tighten the daily
  limit; setup intents (income, expenses, goal) do not. Read-only
  branches (affordability, status, help) never touch the state.
*/
package engine

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/warp/budget-engine/intent"
)

// Dispatch executes one completed intent against the state.
func Dispatch(s *FinancialState, in intent.Intent) (Response, error) {
	if missing := in.Missing(); missing != "" {
		return nil, &ValidationError{Field: missing, Reason: "required"}
	}

	switch v := in.(type) {
	case intent.SetIncome:
		return setIncome(s, *v.Amount)
	case intent.SetFixedExpense:
		return setFixedExpense(s, v.Name, *v.Amount)
	case intent.SetGoal:
		return setGoal(s, v.Item, *v.TargetAmount, v.TimeframeMonths)
	case intent.AffordabilityCheck:
		return checkAffordability(s, v.Item, *v.Amount)
	case intent.LogPurchase:
		return logSpend(s, TxPurchase, labelFor(v.Item, "item"), *v.Amount)
	case intent.LogExpense:
		return logSpend(s, TxExpense, labelFor(v.Category, "general"), *v.Amount)
	case intent.ShowStatus:
		return status(s), nil
	case intent.Help:
		return HelpResponse{Kind: intent.KindHelp, Text: HelpText}, nil
	case intent.Unknown:
		return HelpResponse{Kind: intent.KindUnknown, Text: unknownHint}, nil
	default:
		return nil, &ValidationError{Field: "intent", Reason: fmt.Sprintf("unrecognized kind %q", in.Kind())}
	}
}

func setIncome(s *FinancialState, amount decimal.Decimal) (Response, error) {
	if amount.IsNegative() {
		return nil, &ValidationError{Field: "amount", Reason: "income cannot be negative"}
	}
	s.MonthlyIncome = amount
	Recalculate(s)
	s.Touch()

	return Ack{
		Kind:    intent.KindSetIncome,
		Message: fmt.Sprintf("monthly income set to %s", amount.StringFixed(2)),
	}, nil
}

func setFixedExpense(s *FinancialState, name string, amount decimal.Decimal) (Response, error) {
	if !amount.IsPositive() {
		return nil, errNonPositiveAmount("amount")
	}
	if name == "" {
		name = "expense"
	}
	s.FixedExpenses[name] = FixedExpense{Name: name, Amount: amount, Frequency: FrequencyMonthly}
	Recalculate(s)
	s.Touch()

	var advisories []string
	if s.DiscretionaryBudget.IsNegative() {
		advisories = append(advisories, overCommittedAdvisory(s))
	}
	return Ack{
		Kind:       intent.KindSetFixedExpense,
		Message:    fmt.Sprintf("fixed expense %q set to %s/month", name, amount.StringFixed(2)),
		Advisories: advisories,
	}, nil
}

func setGoal(s *FinancialState, item string, target decimal.Decimal, months int) (Response, error) {
	if !target.IsPositive() {
		return nil, errNonPositiveAmount("target_amount")
	}
	if months <= 0 {
		return nil, &ValidationError{Field: "timeframe_months", Reason: "must be greater than zero"}
	}

	goal := SavingsGoal{
		Item:            item,
		TargetAmount:    target,
		TimeframeMonths: months,
		CurrentSavings:  s.CurrentSavings,
		CreatedAt:       s.LastUpdated,
	}

	var advisories []string
	if warn := CheckGoalFeasibility(s, goal); warn != "" {
		advisories = append(advisories, warn)
	}

	s.Goal = &goal
	Recalculate(s)
	s.Touch()

	if s.DiscretionaryBudget.IsNegative() {
		advisories = append(advisories, overCommittedAdvisory(s))
	}
	return Ack{
		Kind: intent.KindSetGoal,
		Message: fmt.Sprintf("goal set: %s for %s over %d month(s), saving %s/month",
			labelFor(item, "goal"), target.StringFixed(2), months, goal.RequiredMonthly().StringFixed(2)),
		Advisories: advisories,
	}, nil
}

func checkAffordability(s *FinancialState, item string, amount decimal.Decimal) (Response, error) {
	if !amount.IsPositive() {
		return nil, errNonPositiveAmount("amount")
	}

	result := Evaluate(s, amount)
	resp := AffordabilityResponse{
		Item:            labelFor(item, "item"),
		Amount:          amount,
		Approved:        result.Approved,
		RemainingBefore: result.RemainingBefore,
		RemainingAfter:  result.RemainingAfter,
		UsagePct:        result.UsagePct,
		Shortfall:       result.Shortfall,
		DailyLimit:      s.DailyLimit,
	}

	if s.Goal != nil {
		impact := Impact(s, amount)
		resp.GoalImpact = &impact
		if !result.Approved {
			resp.Advisories = append(resp.Advisories, "this purchase would compromise your savings goal")
		} else if !impact.OnTrack {
			resp.Advisories = append(resp.Advisories, fmt.Sprintf(
				"may delay your goal by about %s days", impact.DelayDays.StringFixed(0)))
		}
	}

	if !result.Approved {
		resp.Advisories = append(resp.Advisories, fmt.Sprintf(
			"exceeds your remaining budget by %s", result.Shortfall.StringFixed(2)))
	} else if result.UsagePct.GreaterThan(decimal.NewFromInt(50)) {
		resp.Advisories = append(resp.Advisories, "this purchase uses over half of your discretionary budget")
	}

	return resp, nil
}

func logSpend(s *FinancialState, kind TransactionKind, label string, amount decimal.Decimal) (Response, error) {
	tx, err := Record(s, kind, label, amount)
	if err != nil {
		return nil, err
	}

	var advisories []string
	if s.Goal != nil && s.RemainingDiscretionary().LessThan(s.Goal.RequiredMonthly()) {
		advisories = append(advisories, "remaining budget has dropped below your monthly goal contribution")
	}
	if msg := Tighten(s); msg != "" {
		advisories = append(advisories, msg)
	}

	respKind := intent.KindLogPurchase
	noun := "purchase"
	if kind == TxExpense {
		respKind = intent.KindLogExpense
		noun = "expense"
	}
	return Ack{
		Kind: respKind,
		Message: fmt.Sprintf("%s logged: %s for %s, %s remaining",
			noun, label, amount.StringFixed(2), tx.RemainingAfter.StringFixed(2)),
		Advisories: advisories,
	}, nil
}

func status(s *FinancialState) StatusResponse {
	resp := StatusResponse{
		MonthlyIncome:       s.MonthlyIncome,
		TotalFixedExpenses:  s.TotalFixedExpenses(),
		DiscretionaryBudget: s.DiscretionaryBudget,
		DiscretionaryUsed:   s.DiscretionaryUsed,
		Remaining:           s.RemainingDiscretionary(),
		UsagePct:            s.UsagePct(),
		SavingsAllocation:   s.SavingsAllocation,
		CurrentSavings:      s.CurrentSavings,
		DailyLimit:          s.DailyLimit,
		CurrentDay:          s.CurrentDay,
		TransactionCount:    len(s.Transactions),
	}

	for _, e := range s.FixedExpenses {
		resp.FixedExpenses = append(resp.FixedExpenses, e)
	}

	if s.Goal != nil {
		resp.Goal = &GoalStatus{
			Item:            s.Goal.Item,
			TargetAmount:    s.Goal.TargetAmount,
			TimeframeMonths: s.Goal.TimeframeMonths,
			CurrentSavings:  s.Goal.CurrentSavings,
			RequiredMonthly: s.Goal.RequiredMonthly(),
			ProgressPct:     s.Goal.ProgressPct(),
		}
	}

	// Last five, newest last.
	n := len(s.Transactions)
	start := n - 5
	if start < 0 {
		start = 0
	}
	resp.RecentTransactions = append(resp.RecentTransactions, s.Transactions[start:]...)

	return resp
}

func overCommittedAdvisory(s *FinancialState) string {
	return fmt.Sprintf(
		"income is over-committed: discretionary budget is %s; consider raising income, trimming fixed expenses, or relaxing the goal",
		s.DiscretionaryBudget.StringFixed(2))
}

func labelFor(label, fallback string) string {
	if label == "" {
		return fallback
	}
	return label
}

// HelpText lists what the engine can do, for callers that render help.
const HelpText = `I can help you make spending decisions:

Setup:
  "my salary is 12000"              set monthly income
  "rent is 2500 monthly"            set a fixed expense
  "save 50000 for a car in 6 months" set a savings goal

Daily use:
  "can I buy a laptop for 5000?"    check affordability
  "I bought a fridge for 2000"      log a purchase
  "spent 40 on food"                log an expense
  "summary"                         show budget status

All decisions are rule-based and explainable.`

const unknownHint = `I didn't catch that. Try:
  "can I buy [item] for [amount]?"  check affordability
  "I bought [item] for [amount]"    log a purchase
  "spent [amount] on [category]"    log an expense
  "summary"                         show budget status`
