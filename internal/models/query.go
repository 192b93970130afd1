package models

// Intent is a recognized special query pattern that alters ranking or
// filtering beyond plain keyword matching.
type Intent string

// The closed set of recognized intents. IntentNone means plain ranking.
const (
	IntentNone     Intent = ""
	IntentCheapest Intent = "cheapest"
	IntentTopRated Intent = "top_rated"
	IntentHasPool  Intent = "has_pool"
	IntentHasWiFi  Intent = "has_wifi"
)

// AnalyzedQuery is the outcome of query analysis: the ranking token set plus
// any intent and region filter extracted from the raw text. Intent and
// region are independent; a query may carry both.
type AnalyzedQuery struct {
	Raw    string   `json:"raw"`
	Tokens []string `json:"tokens"`
	Intent Intent   `json:"intent,omitempty"`
	Region string   `json:"region,omitempty"`
}

// Empty reports whether no ranking tokens survived normalization.
func (q *AnalyzedQuery) Empty() bool {
	return len(q.Tokens) == 0
}
