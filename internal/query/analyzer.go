// Package query turns raw search text into the analyzed form the engine
// ranks with: the normalized ranking tokens plus any extracted intent and
// region filter.
package query

import (
	"github.com/rimbakita/kemari/internal/analysis"
	"github.com/rimbakita/kemari/internal/gazetteer"
	"github.com/rimbakita/kemari/internal/models"
)

// Analyzer runs the query analysis pipeline: text normalization, intent
// detection, then region extraction. Intent runs first so multi-word
// triggers are still intact when the gazetteer scan removes region tokens;
// apart from that overlap rule the two extractions are independent.
type Analyzer struct {
	text *analysis.Analyzer
	gaz  *gazetteer.Gazetteer
}

// New builds the analyzer around the standard text pipeline and the
// built-in gazetteer.
func New() *Analyzer {
	return NewWith(analysis.New(), gazetteer.New())
}

// NewWith injects a specific pipeline and gazetteer.
func NewWith(text *analysis.Analyzer, gaz *gazetteer.Gazetteer) *Analyzer {
	return &Analyzer{text: text, gaz: gaz}
}

// Analyze normalizes raw query text and extracts intent and region. Empty
// or all-stop-word input yields an empty token set, never an error.
func (a *Analyzer) Analyze(raw string) *models.AnalyzedQuery {
	q := &models.AnalyzedQuery{Raw: raw}

	tokens := a.text.Tokens(raw)
	tokens, q.Intent = detectIntent(tokens)
	if region, rest, ok := a.gaz.Extract(tokens); ok {
		q.Region = region
		tokens = rest
	}
	q.Tokens = tokens
	return q
}
