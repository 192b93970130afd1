package query

import "github.com/rimbakita/kemari/internal/models"

// intentRule pairs a trigger phrase with the intent it signals and the token
// policy for the trigger. Ordering intents (cheapest, top rated) drop their
// trigger words since they carry no content; facility intents keep them so
// the facility terms still count toward the similarity score.
type intentRule struct {
	phrase []string
	intent models.Intent
	keep   bool
}

// intentRules is scanned in declaration order and the first rule whose
// phrase occurs anywhere in the token sequence wins.
var intentRules = []intentRule{
	{phrase: []string{"termurah"}, intent: models.IntentCheapest},
	{phrase: []string{"paling", "murah"}, intent: models.IntentCheapest},
	{phrase: []string{"terbaik"}, intent: models.IntentTopRated},
	{phrase: []string{"paling", "bagus"}, intent: models.IntentTopRated},
	{phrase: []string{"kolam", "renang"}, intent: models.IntentHasPool, keep: true},
	{phrase: []string{"wifi"}, intent: models.IntentHasWiFi, keep: true},
}

// detectIntent returns the first matching intent and the tokens left for
// ranking under the winning rule's keep policy.
func detectIntent(tokens []string) ([]string, models.Intent) {
	for _, rule := range intentRules {
		if findPhrase(tokens, rule.phrase) < 0 {
			continue
		}
		if rule.keep {
			return tokens, rule.intent
		}
		return removePhrase(tokens, rule.phrase), rule.intent
	}
	return tokens, models.IntentNone
}

// findPhrase returns the index of the first occurrence of phrase in tokens,
// or -1.
func findPhrase(tokens, phrase []string) int {
	if len(phrase) == 0 || len(phrase) > len(tokens) {
		return -1
	}
	for i := 0; i+len(phrase) <= len(tokens); i++ {
		if phraseAt(tokens, i, phrase) {
			return i
		}
	}
	return -1
}

// removePhrase drops every non-overlapping occurrence of phrase.
func removePhrase(tokens, phrase []string) []string {
	rest := make([]string, 0, len(tokens))
	for i := 0; i < len(tokens); {
		if phraseAt(tokens, i, phrase) {
			i += len(phrase)
			continue
		}
		rest = append(rest, tokens[i])
		i++
	}
	return rest
}

func phraseAt(tokens []string, i int, phrase []string) bool {
	if i+len(phrase) > len(tokens) {
		return false
	}
	for j, p := range phrase {
		if tokens[i+j] != p {
			return false
		}
	}
	return true
}
