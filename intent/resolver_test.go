package intent_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/budget-engine/intent"
)

func amt(s string) *decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return &d
}

// =============================================================================
// STRUCTURED SUBMISSION
// =============================================================================

func TestResolver_CompleteIntentPassesThrough(t *testing.T) {
	var r intent.Resolver

	out := r.Submit(intent.SetIncome{Amount: amt("12000")})

	assert.Empty(t, out.Prompt)
	assert.Equal(t, intent.KindSetIncome, out.Intent.Kind())
	assert.False(t, r.Pending())
}

func TestResolver_IncompleteIntentIsHeld(t *testing.T) {
	// GIVEN: "buy a fridge" with no price
	// THEN: The machine moves to AwaitingField and asks for the cost

	var r intent.Resolver

	out := r.Submit(intent.AffordabilityCheck{Item: "fridge"})

	assert.Nil(t, out.Intent)
	assert.Equal(t, "how much does the fridge cost?", out.Prompt)
	assert.True(t, r.Pending())
}

func TestResolver_BareNumberCompletesPending(t *testing.T) {
	// GIVEN: A pending affordability check
	// WHEN: The next turn is just "2000"
	// THEN: The number merges into the missing field and dispatches

	var r intent.Resolver
	r.Submit(intent.AffordabilityCheck{Item: "fridge"})

	out := r.SubmitText("2000")

	require.NotNil(t, out.Intent)
	check := out.Intent.(intent.AffordabilityCheck)
	assert.Equal(t, "fridge", check.Item)
	assert.Equal(t, "2000", check.Amount.String())
	assert.False(t, r.Pending())
}

func TestResolver_NewIntentSupersedesPending(t *testing.T) {
	// Most-recent wins: a fresh complete intent discards the pending one.

	var r intent.Resolver
	r.Submit(intent.AffordabilityCheck{Item: "fridge"})

	out := r.SubmitText("my salary is 9000")

	require.NotNil(t, out.Intent)
	assert.Equal(t, intent.KindSetIncome, out.Intent.Kind())
	assert.False(t, r.Pending())
}

func TestResolver_NewIncompleteIntentReplacesPending(t *testing.T) {
	// A newer incomplete intent takes the slot; the old one is gone.

	var r intent.Resolver
	r.Submit(intent.AffordabilityCheck{Item: "fridge"})

	out := r.SubmitText("i bought a couch")
	assert.Equal(t, "how much did the couch cost?", out.Prompt)

	// The follow-up number completes the purchase, not the fridge check.
	out = r.SubmitText("800")
	require.NotNil(t, out.Intent)
	p := out.Intent.(intent.LogPurchase)
	assert.Equal(t, "couch", p.Item)
}

func TestResolver_UnrecognizedTextReprompts(t *testing.T) {
	// Noise while awaiting a field keeps the state and asks again.

	var r intent.Resolver
	r.Submit(intent.AffordabilityCheck{Item: "fridge"})

	out := r.SubmitText("hmm not sure")

	assert.Nil(t, out.Intent)
	assert.Equal(t, "how much does the fridge cost?", out.Prompt)
	assert.True(t, r.Pending())
}

func TestResolver_UnknownWhileIdleDispatchesUnknown(t *testing.T) {
	var r intent.Resolver

	out := r.SubmitText("hmm not sure")

	require.NotNil(t, out.Intent)
	assert.Equal(t, intent.KindUnknown, out.Intent.Kind())
}

func TestResolver_GoalCompletesFieldByField(t *testing.T) {
	// GIVEN: A goal with neither target nor timeframe
	// THEN: The resolver asks for the target first, then the months

	var r intent.Resolver

	out := r.Submit(intent.SetGoal{Item: "car"})
	assert.Equal(t, "how much do you want to save for the car?", out.Prompt)

	out = r.SubmitText("50000")
	assert.Equal(t, "over how many months do you want to save for the car?", out.Prompt)
	assert.True(t, r.Pending())

	out = r.SubmitText("6")
	require.NotNil(t, out.Intent)
	g := out.Intent.(intent.SetGoal)
	assert.Equal(t, "50000", g.TargetAmount.String())
	assert.Equal(t, 6, g.TimeframeMonths)
	assert.False(t, r.Pending())
}

func TestResolver_FreeTextEndToEnd(t *testing.T) {
	// The parser and resolver together: recognize, hold, complete.

	var r intent.Resolver

	out := r.SubmitText("can I buy a fridge")
	assert.Equal(t, "how much does the fridge cost?", out.Prompt)

	out = r.SubmitText("2,000")
	require.NotNil(t, out.Intent)
	check := out.Intent.(intent.AffordabilityCheck)
	assert.Equal(t, "2000", check.Amount.String())
}

func TestResolver_Reset(t *testing.T) {
	var r intent.Resolver
	r.Submit(intent.AffordabilityCheck{Item: "fridge"})
	require.True(t, r.Pending())

	r.Reset()

	assert.False(t, r.Pending())
	// A bare number with nothing pending parses as no recognizable intent.
	out := r.SubmitText("2000")
	require.NotNil(t, out.Intent)
	assert.Equal(t, intent.KindUnknown, out.Intent.Kind())
}
