/*
resolver.go - Pending-intent state machine

PURPOSE:
  Holds an action that was recognized but is missing a required field
  ("buy a fridge" with no price) until a later turn supplies it. The
  machine has exactly two states:

    Idle          no pending intent
    AwaitingField one intent stored, one named field missing

TRANSITIONS:
  Idle + complete intent            -> dispatch, stay Idle
  Idle + incomplete intent          -> store it, prompt for the field
  Awaiting + bare number            -> merge, dispatch, back to Idle
  Awaiting + new parseable intent   -> most-recent wins: pending is
                                       discarded in favor of the new one
  Awaiting + anything else          -> reprompt, state unchanged

  No timeout: a pending intent survives until resolved or superseded.
  An incomplete intent is a normal state, never a validation error -
  this resolver is the only component allowed to treat a missing field
  as "ask" instead of "reject".
*/
package intent

import "fmt"

// Outcome is the resolver's answer for one input: either an intent to
// dispatch now, or a prompt asking the caller to come back with more.
type Outcome struct {
	Intent Intent
	Prompt string
}

// Resolver is the per-session pending-intent machine. Zero value is Idle.
type Resolver struct {
	pending Completable
}

// Pending reports whether the resolver is awaiting a field.
func (r *Resolver) Pending() bool { return r.pending != nil }

// Reset drops any pending intent and returns to Idle.
func (r *Resolver) Reset() { r.pending = nil }

// Submit feeds a structured intent through the machine.
func (r *Resolver) Submit(in Intent) Outcome {
	if in.Kind() == KindUnknown {
		if r.pending != nil {
			return Outcome{Prompt: r.reprompt()}
		}
		return Outcome{Intent: in}
	}

	missing := in.Missing()
	if missing == "" {
		// Complete intents dispatch immediately; any pending intent is
		// superseded (most-recent wins, no queueing).
		r.pending = nil
		return Outcome{Intent: in}
	}

	c, ok := in.(Completable)
	if !ok {
		// Intents without optional fields are always complete; this
		// branch exists only to keep the type switch total.
		return Outcome{Intent: in}
	}
	r.pending = c
	return Outcome{Prompt: clarification(c, missing)}
}

// SubmitText feeds free-form text through the machine: a bare number
// completes the pending intent, otherwise the text is parsed as a new
// intent.
func (r *Resolver) SubmitText(text string) Outcome {
	if r.pending != nil {
		if v, ok := ParseNumber(text); ok {
			merged := r.pending.Complete(v)
			if missing := merged.Missing(); missing != "" {
				r.pending = merged.(Completable)
				return Outcome{Prompt: clarification(merged, missing)}
			}
			r.pending = nil
			return Outcome{Intent: merged}
		}

		in, _ := Parse(text)
		if in.Kind() == KindUnknown {
			return Outcome{Prompt: r.reprompt()}
		}
		return r.Submit(in)
	}

	in, _ := Parse(text)
	return r.Submit(in)
}

func (r *Resolver) reprompt() string {
	return clarification(r.pending, r.pending.Missing())
}

// clarification names the missing field in user terms.
func clarification(in Intent, missing string) string {
	switch v := in.(type) {
	case AffordabilityCheck:
		return fmt.Sprintf("how much does the %s cost?", labelOr(v.Item, "item"))
	case LogPurchase:
		return fmt.Sprintf("how much did the %s cost?", labelOr(v.Item, "item"))
	case LogExpense:
		return fmt.Sprintf("how much did you spend on %s?", labelOr(v.Category, "that"))
	case SetIncome:
		return "what is your monthly income?"
	case SetFixedExpense:
		return fmt.Sprintf("how much is %s per month?", labelOr(v.Name, "that expense"))
	case SetGoal:
		if missing == "timeframe_months" {
			return fmt.Sprintf("over how many months do you want to save for the %s?", labelOr(v.Item, "goal"))
		}
		return fmt.Sprintf("how much do you want to save for the %s?", labelOr(v.Item, "goal"))
	default:
		return fmt.Sprintf("please provide the %s", missing)
	}
}

func labelOr(label, fallback string) string {
	if label == "" {
		return fallback
	}
	return label
}
