// Package ranking implements the TF-IDF vector space ranker: queries become
// term vectors weighted like corpus documents, and candidates are scored by
// cosine similarity accumulated term-at-a-time over the posting lists.
package ranking

import (
	"sort"

	"github.com/RoaringBitmap/roaring"

	"github.com/rimbakita/kemari/internal/corpus"
	"github.com/rimbakita/kemari/pkg/utils"
)

// RankedListing pairs a listing with its cosine similarity score in [0,1].
type RankedListing struct {
	ListingID string  `json:"listing_id"`
	Ordinal   uint32  `json:"-"`
	Score     float64 `json:"score"`
}

// Ranker scores query token sequences against the corpus document vectors.
// It holds only read-only corpus state and is safe for concurrent use.
type Ranker struct {
	store *corpus.Store
}

// NewRanker creates a Ranker over the given corpus.
func NewRanker(store *corpus.Store) *Ranker {
	return &Ranker{store: store}
}

// QueryVector builds the query's term vector with the same weighting as
// corpus documents: raw term frequency times corpus IDF. Out-of-vocabulary
// terms (and terms present in every document, whose IDF is zero) get zero
// weight and drop out. A query with no weighted terms yields nil.
func (r *Ranker) QueryVector(tokens []string) map[string]float64 {
	if len(tokens) == 0 {
		return nil
	}
	freqs := make(map[string]int, len(tokens))
	for _, t := range tokens {
		freqs[t]++
	}
	vec := make(map[string]float64, len(freqs))
	for term, tf := range freqs {
		if idf := r.store.IDF(term); idf > 0 {
			vec[term] = float64(tf) * idf
		}
	}
	if len(vec) == 0 {
		return nil
	}
	return vec
}

// Rank scores the query tokens against every document sharing at least one
// weighted term and returns them ordered by score descending, ties broken
// by ascending listing id. Documents with zero term overlap are never
// touched, which prunes without changing any surviving score. A nil
// candidates bitmap means the whole corpus; otherwise only members of the
// bitmap may appear. Zero usable tokens yield an empty ranking.
func (r *Ranker) Rank(tokens []string, candidates *roaring.Bitmap) []RankedListing {
	qvec := r.QueryVector(tokens)
	if len(qvec) == 0 {
		return nil
	}
	qnorm := utils.VectorNorm(qvec)

	dots := make(map[uint32]float64)
	for term, qw := range qvec {
		for _, p := range r.store.Postings(term) {
			if candidates != nil && !candidates.Contains(p.Ordinal) {
				continue
			}
			dots[p.Ordinal] += qw * p.Weight
		}
	}
	if len(dots) == 0 {
		return nil
	}

	ranked := make([]RankedListing, 0, len(dots))
	for ord, dot := range dots {
		dnorm := r.store.Norm(ord)
		if dnorm == 0 {
			continue
		}
		ranked = append(ranked, RankedListing{
			ListingID: r.store.ByOrdinal(ord).ID,
			Ordinal:   ord,
			Score:     clamp01(dot / (qnorm * dnorm)),
		})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Score != ranked[j].Score {
			return ranked[i].Score > ranked[j].Score
		}
		return ranked[i].ListingID < ranked[j].ListingID
	})
	return ranked
}

// FilterByMinScore drops results scoring below minScore, preserving order.
func FilterByMinScore(results []RankedListing, minScore float64) []RankedListing {
	if minScore <= 0 {
		return results
	}
	filtered := make([]RankedListing, 0, len(results))
	for _, r := range results {
		if r.Score >= minScore {
			filtered = append(filtered, r)
		}
	}
	return filtered
}

// TopN returns the first n results; n <= 0 means no truncation.
func TopN(results []RankedListing, n int) []RankedListing {
	if n <= 0 || n >= len(results) {
		return results
	}
	return results[:n]
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
