// Package analysis provides the text normalization pipeline shared by the
// indexer and the query analyzer. Corpus documents and queries must pass
// through the exact same pipeline or ranking scores are meaningless, so the
// pipeline configuration is fingerprinted and recorded in every bundle.
package analysis

import (
	"strings"

	"github.com/blevesearch/bleve/v2/analysis"
	"github.com/blevesearch/bleve/v2/analysis/char/asciifolding"
	"github.com/blevesearch/bleve/v2/analysis/token/lowercase"
	"github.com/blevesearch/bleve/v2/analysis/token/stop"
	"github.com/blevesearch/bleve/v2/analysis/tokenizer/unicode"
)

// Analyzer normalizes free text into an ordered token sequence: diacritics
// folded to ASCII, unicode word tokenization (punctuation dropped),
// lowercasing, then stop-word removal. No stemming is applied.
type Analyzer struct {
	chain     *analysis.Analyzer
	stopwords []string
}

// New returns the standard pipeline with the built-in Indonesian stop-word set.
func New() *Analyzer {
	return NewWithStopwords(IndonesianStopwords)
}

// NewWithStopwords builds the pipeline with a caller-supplied stop-word set.
// The set is matched after lowercasing, so entries must be lowercase.
func NewWithStopwords(stopwords []string) *Analyzer {
	tm := analysis.NewTokenMap()
	for _, w := range stopwords {
		tm.AddToken(w)
	}
	chain := &analysis.Analyzer{
		CharFilters: []analysis.CharFilter{
			asciifolding.New(),
		},
		Tokenizer: unicode.NewUnicodeTokenizer(),
		TokenFilters: []analysis.TokenFilter{
			lowercase.NewLowerCaseFilter(),
			stop.NewStopTokensFilter(tm),
		},
	}
	return &Analyzer{chain: chain, stopwords: sortedCopy(stopwords)}
}

// Tokens normalizes text into its ordered token sequence. Empty input and
// input consisting only of stop-words yield nil, never an error.
func (a *Analyzer) Tokens(text string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	stream := a.chain.Analyze([]byte(text))
	if len(stream) == 0 {
		return nil
	}
	tokens := make([]string, 0, len(stream))
	for _, tok := range stream {
		tokens = append(tokens, string(tok.Term))
	}
	return tokens
}

// TermFrequencies folds Tokens into raw per-term counts.
func (a *Analyzer) TermFrequencies(text string) map[string]int {
	tokens := a.Tokens(text)
	if len(tokens) == 0 {
		return nil
	}
	freqs := make(map[string]int, len(tokens))
	for _, t := range tokens {
		freqs[t]++
	}
	return freqs
}

// Stopwords returns the analyzer's stop-word set in sorted order.
func (a *Analyzer) Stopwords() []string {
	return append([]string(nil), a.stopwords...)
}
