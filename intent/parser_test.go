package intent_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/budget-engine/intent"
)

// =============================================================================
// NUMBER PARSING
// =============================================================================

func TestParseNumber(t *testing.T) {
	for _, tc := range []struct {
		text string
		want string
		ok   bool
	}{
		{"2000", "2000", true},
		{"  2000.50 ", "2000.5", true},
		{"2,000", "2000", true},
		{"about 2000", "", false},
		{"2000 dollars", "", false},
		{"", "", false},
	} {
		d, ok := intent.ParseNumber(tc.text)
		assert.Equal(t, tc.ok, ok, "text %q", tc.text)
		if tc.ok {
			assert.Equal(t, tc.want, d.String(), "text %q", tc.text)
		}
	}
}

// =============================================================================
// KEYWORD PARSING
// =============================================================================

func TestParse_Affordability(t *testing.T) {
	in, conf := intent.Parse("can I buy a laptop for 5000?")

	check, ok := in.(intent.AffordabilityCheck)
	require.True(t, ok)
	assert.Equal(t, "laptop", check.Item)
	require.NotNil(t, check.Amount)
	assert.Equal(t, "5000", check.Amount.String())
	assert.Greater(t, conf, 0.0)
}

func TestParse_AffordabilityWithoutAmount(t *testing.T) {
	// No number: the resolver will ask for it.
	in, _ := intent.Parse("can I buy a fridge")

	check, ok := in.(intent.AffordabilityCheck)
	require.True(t, ok)
	assert.Equal(t, "fridge", check.Item)
	assert.Nil(t, check.Amount)
	assert.Equal(t, "amount", check.Missing())
}

func TestParse_Purchase(t *testing.T) {
	in, _ := intent.Parse("I bought a fridge for 2000")

	p, ok := in.(intent.LogPurchase)
	require.True(t, ok)
	assert.Equal(t, "fridge", p.Item)
	assert.Equal(t, "2000", p.Amount.String())
}

func TestParse_PurchaseMisspelled(t *testing.T) {
	in, _ := intent.Parse("i bogt a tv for 3000")

	_, ok := in.(intent.LogPurchase)
	assert.True(t, ok)
}

func TestParse_Expense(t *testing.T) {
	in, _ := intent.Parse("spent 40 on food")

	e, ok := in.(intent.LogExpense)
	require.True(t, ok)
	assert.Equal(t, "food", e.Category)
	assert.Equal(t, "40", e.Amount.String())
}

func TestParse_Income(t *testing.T) {
	for _, text := range []string{"my salary is 12000", "my salery is 12000", "I earn 12000"} {
		in, _ := intent.Parse(text)
		inc, ok := in.(intent.SetIncome)
		require.True(t, ok, "text %q", text)
		assert.Equal(t, "12000", inc.Amount.String())
	}
}

func TestParse_FixedExpense(t *testing.T) {
	in, _ := intent.Parse("rent is 2500 monthly")

	e, ok := in.(intent.SetFixedExpense)
	require.True(t, ok)
	assert.Equal(t, "rent", e.Name)
	assert.Equal(t, "2500", e.Amount.String())
}

func TestParse_Goal(t *testing.T) {
	in, _ := intent.Parse("i want to save 50000 for a car in 6 months")

	g, ok := in.(intent.SetGoal)
	require.True(t, ok)
	require.NotNil(t, g.TargetAmount)
	assert.Equal(t, "50000", g.TargetAmount.String())
	assert.Equal(t, 6, g.TimeframeMonths)
	assert.Empty(t, g.Missing())
}

func TestParse_Status(t *testing.T) {
	for _, text := range []string{"summary", "show budget", "how much left"} {
		in, _ := intent.Parse(text)
		_, ok := in.(intent.ShowStatus)
		assert.True(t, ok, "text %q", text)
	}
}

func TestParse_GreetingAndHelp(t *testing.T) {
	in, conf := intent.Parse("hello")
	_, ok := in.(intent.Help)
	assert.True(t, ok)
	assert.Equal(t, 1.0, conf)

	in, _ = intent.Parse("what can you do")
	_, ok = in.(intent.Help)
	assert.True(t, ok)
}

func TestParse_Unknown(t *testing.T) {
	for _, text := range []string{"", "   ", "the weather is nice today"} {
		in, conf := intent.Parse(text)
		assert.Equal(t, intent.KindUnknown, in.Kind(), "text %q", text)
		assert.Equal(t, 0.0, conf)
	}
}
