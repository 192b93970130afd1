package analysis

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/blevesearch/bleve/v2/analysis/char/asciifolding"
	"github.com/blevesearch/bleve/v2/analysis/token/lowercase"
	"github.com/blevesearch/bleve/v2/analysis/token/stop"
	"github.com/blevesearch/bleve/v2/analysis/tokenizer/unicode"
)

// pipelineVersion bumps whenever the pipeline shape changes in a way that
// invalidates existing bundles.
const pipelineVersion = 1

// Fingerprint identifies an exact pipeline configuration. The indexer stores
// it in the bundle; the engine refuses bundles whose fingerprint differs
// from its own, since their vectors were built under different rules.
type Fingerprint struct {
	Version      int      `json:"version"`
	CharFilters  []string `json:"char_filters"`
	Tokenizer    string   `json:"tokenizer"`
	TokenFilters []string `json:"token_filters"`
	StopwordHash string   `json:"stopword_hash"`
}

// Fingerprint returns the analyzer's pipeline fingerprint.
func (a *Analyzer) Fingerprint() Fingerprint {
	sum := sha256.Sum256([]byte(strings.Join(a.stopwords, "\n")))
	return Fingerprint{
		Version:      pipelineVersion,
		CharFilters:  []string{asciifolding.Name},
		Tokenizer:    unicode.Name,
		TokenFilters: []string{lowercase.Name, stop.Name},
		StopwordHash: hex.EncodeToString(sum[:]),
	}
}

// String returns the canonical JSON encoding stored in the bundle.
func (f Fingerprint) String() string {
	b, err := json.Marshal(f)
	if err != nil {
		return ""
	}
	return string(b)
}

// ParseFingerprint decodes a fingerprint previously encoded with String.
func ParseFingerprint(s string) (Fingerprint, error) {
	var f Fingerprint
	if err := json.Unmarshal([]byte(s), &f); err != nil {
		return Fingerprint{}, fmt.Errorf("parse analyzer fingerprint: %w", err)
	}
	return f, nil
}

// Equal reports whether two fingerprints describe the same pipeline.
func (f Fingerprint) Equal(other Fingerprint) bool {
	return f.Version == other.Version &&
		f.Tokenizer == other.Tokenizer &&
		f.StopwordHash == other.StopwordHash &&
		equalStrings(f.CharFilters, other.CharFilters) &&
		equalStrings(f.TokenFilters, other.TokenFilters)
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func sortedCopy(words []string) []string {
	out := append([]string(nil), words...)
	sort.Strings(out)
	return out
}
