/*
parser.go - Keyword fallback parser

PURPOSE:
  Turns free text into a structured intent with simple keyword and
  number matching. This is the offline path: no model calls, tolerant
  of common misspellings ("bogt", "salery"), and deliberately modest -
  anything it cannot place becomes Unknown rather than a guess.

  The confidence score is informational only; the engine treats every
  parsed intent the same.
*/
package intent

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	numberRe    = regexp.MustCompile(`\d+(?:\.\d+)?`)
	bareNumRe   = regexp.MustCompile(`^\s*[\d,]+(?:\.\d+)?\s*$`)
	timeframeRe = regexp.MustCompile(`(\d+)\s*month`)
	articleRe   = regexp.MustCompile(`^(?i:a|an)\s+`)
)

// ParseNumber reports whether the text is a bare numeric value, as the
// resolver expects for field completion.
func ParseNumber(text string) (decimal.Decimal, bool) {
	if !bareNumRe.MatchString(text) {
		return decimal.Zero, false
	}
	cleaned := strings.ReplaceAll(strings.TrimSpace(text), ",", "")
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

// Parse maps free text to an intent plus a rough confidence score.
func Parse(text string) (Intent, float64) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return Unknown{}, 0
	}
	lower := strings.ToLower(trimmed)

	if isGreeting(lower) {
		return Help{}, 1.0
	}

	amount := firstNumber(trimmed)

	if phrase := matchPhrase(lower, affordPhrases); phrase != "" {
		return AffordabilityCheck{
			Item:   extractItem(trimmed, affordPhrases),
			Amount: amount,
		}, 0.7
	}

	if phrase := matchPhrase(lower, purchasePhrases); phrase != "" {
		return LogPurchase{
			Item:   extractItem(trimmed, purchasePhrases),
			Amount: amount,
		}, 0.7
	}

	if matchWord(lower, expenseWords) {
		return LogExpense{
			Category: categoryAfterOn(lower),
			Amount:   amount,
		}, 0.7
	}

	if matchWord(lower, incomeWords) {
		return SetIncome{Amount: amount}, 0.8
	}

	if matchWord(lower, fixedExpenseWords) {
		return SetFixedExpense{
			Name:   fixedExpenseName(lower),
			Amount: amount,
		}, 0.7
	}

	if matchPhrase(lower, goalPhrases) != "" {
		return SetGoal{
			Item:            extractItem(trimmed, goalPhrases),
			TargetAmount:    amount,
			TimeframeMonths: timeframeMonths(lower),
		}, 0.6
	}

	if matchPhrase(lower, statusPhrases) != "" {
		return ShowStatus{}, 0.9
	}

	if matchWord(lower, helpWords) {
		return Help{}, 1.0
	}

	return Unknown{}, 0
}

// =============================================================================
// KEYWORD TABLES
// =============================================================================

var (
	affordPhrases = []string{
		"can i buy", "should i buy", "can i afford", "thinking of getting",
		"want to buy", "thinking of buying", "can i get", "should i get",
		"aford", "affor",
	}
	purchasePhrases = []string{
		"i bought", "purchased", "paid for", "already bought", "got a",
		"bought a", "i bot", "i bogt", "just bought", "bough", "purchas",
	}
	expenseWords = []string{"spent", "expense", "spen", "spnt", "spnd"}
	incomeWords  = []string{"salary", "income", "earn", "salery", "sallary", "incm"}

	fixedExpenseWords = []string{"rent", "utilities", "utility", "internet", "monthly bill", "fixed expense"}

	goalPhrases = []string{
		"change my goal to", "update my goal to", "change goal to",
		"update goal to", "save for", "saving for", "want to save",
		"goal", "target",
	}
	statusPhrases = []string{
		"summary", "status", "how much left", "show budget", "my budget",
		"remaining", "balance", "what's left", "how much do i have",
	}
	helpWords = []string{"help", "what can you do", "commands", "how to use"}
)

func isGreeting(lower string) bool {
	switch lower {
	case "hi", "hello", "hey", "yo", "sup", "hii", "hiii":
		return true
	}
	return false
}

func matchPhrase(lower string, phrases []string) string {
	for _, p := range phrases {
		if strings.Contains(lower, p) {
			return p
		}
	}
	return ""
}

func matchWord(lower string, words []string) bool {
	return matchPhrase(lower, words) != ""
}

func firstNumber(text string) *decimal.Decimal {
	m := numberRe.FindString(text)
	if m == "" {
		return nil
	}
	f, err := strconv.ParseFloat(m, 64)
	if err != nil {
		return nil
	}
	d := decimal.NewFromFloat(f)
	return &d
}

// extractItem pulls the words following the matched phrase, skipping
// articles, connective words, and the trailing amount.
func extractItem(text string, phrases []string) string {
	lower := strings.ToLower(text)
	for _, p := range phrases {
		idx := strings.Index(lower, p)
		if idx < 0 {
			continue
		}
		rest := strings.TrimSpace(text[idx+len(p):])
		rest = articleRe.ReplaceAllString(rest, "")

		var words []string
		for _, w := range strings.Fields(rest) {
			if numberRe.MatchString(w) {
				break
			}
			switch strings.ToLower(w) {
			case "for", "in", "to":
				continue
			}
			words = append(words, w)
			if len(words) == 3 {
				break
			}
		}
		if len(words) > 0 {
			return strings.Join(words, " ")
		}
	}
	return ""
}

func categoryAfterOn(lower string) string {
	_, after, found := strings.Cut(lower, " on ")
	if !found {
		return ""
	}
	fields := strings.Fields(after)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

func fixedExpenseName(lower string) string {
	switch {
	case strings.Contains(lower, "rent"):
		return "rent"
	case strings.Contains(lower, "utilit"):
		return "utilities"
	case strings.Contains(lower, "internet"):
		return "internet"
	default:
		return "expense"
	}
}

func timeframeMonths(lower string) int {
	m := timeframeRe.FindStringSubmatch(lower)
	if m == nil {
		return 0
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0
	}
	return n
}
