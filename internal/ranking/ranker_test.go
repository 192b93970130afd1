package ranking

import (
	"math"
	"testing"

	"github.com/RoaringBitmap/roaring"

	"github.com/rimbakita/kemari/internal/corpus"
	"github.com/rimbakita/kemari/internal/models"
)

// newTestStore builds a three-document corpus whose vectors are consistent
// with raw-TF times IDF weighting:
//
//	l-perahu: tokens [danau perahu]
//	l-tenda:  tokens [danau tenda tenda]
//	l-sungai: tokens [sungai]
func newTestStore(t *testing.T) *corpus.Store {
	t.Helper()

	idfDanau := math.Log(3.0 / 2.0)
	idfRare := math.Log(3.0)

	listings := []*models.Listing{
		{ID: "l-perahu", Name: "Danau Perahu Camp"},
		{ID: "l-tenda", Name: "Tenda Danau Camp"},
		{ID: "l-sungai", Name: "Sungai Camp"},
	}
	vectors := map[string]map[string]float64{
		"l-perahu": {"danau": idfDanau, "perahu": idfRare},
		"l-tenda":  {"danau": idfDanau, "tenda": 2 * idfRare},
		"l-sungai": {"sungai": idfRare},
	}
	docFreqs := map[string]int{"danau": 2, "perahu": 1, "tenda": 1, "sungai": 1}

	store, err := corpus.Build(listings, vectors, docFreqs)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	return store
}

func TestQueryVector(t *testing.T) {
	r := NewRanker(newTestStore(t))

	tests := []struct {
		name   string
		tokens []string
		want   map[string]float64
	}{
		{
			name:   "known terms weighted by tf times idf",
			tokens: []string{"danau", "perahu", "perahu"},
			want: map[string]float64{
				"danau":  math.Log(1.5),
				"perahu": 2 * math.Log(3),
			},
		},
		{
			name:   "unknown terms drop out",
			tokens: []string{"danau", "pantai"},
			want:   map[string]float64{"danau": math.Log(1.5)},
		},
		{
			name:   "only unknown terms",
			tokens: []string{"pantai", "gunung"},
			want:   nil,
		},
		{
			name:   "no tokens",
			tokens: nil,
			want:   nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := r.QueryVector(tt.tokens)
			if len(got) != len(tt.want) {
				t.Fatalf("QueryVector(%v) = %v, want %v", tt.tokens, got, tt.want)
			}
			for term, w := range tt.want {
				if math.Abs(got[term]-w) > 1e-12 {
					t.Errorf("weight[%q] = %v, want %v", term, got[term], w)
				}
			}
		})
	}
}

func TestRank_SelfQueryRanksFirst(t *testing.T) {
	r := NewRanker(newTestStore(t))

	// The exact token sequence of l-perahu's document.
	results := r.Rank([]string{"danau", "perahu"}, nil)
	if len(results) != 2 {
		t.Fatalf("Rank() returned %d results, want 2 (l-sungai shares no terms)", len(results))
	}
	if results[0].ListingID != "l-perahu" {
		t.Fatalf("top result = %s, want l-perahu", results[0].ListingID)
	}
	if math.Abs(results[0].Score-1.0) > 1e-9 {
		t.Errorf("self-query score = %v, want 1.0", results[0].Score)
	}
	if results[1].ListingID != "l-tenda" {
		t.Errorf("second result = %s, want l-tenda", results[1].ListingID)
	}
	if results[1].Score >= results[0].Score {
		t.Errorf("scores not descending: %v then %v", results[0].Score, results[1].Score)
	}
}

func TestRank_ZeroOverlapPruned(t *testing.T) {
	r := NewRanker(newTestStore(t))

	results := r.Rank([]string{"sungai"}, nil)
	if len(results) != 1 {
		t.Fatalf("Rank() returned %d results, want 1", len(results))
	}
	if results[0].ListingID != "l-sungai" {
		t.Errorf("result = %s, want l-sungai", results[0].ListingID)
	}
}

func TestRank_EmptyQueries(t *testing.T) {
	r := NewRanker(newTestStore(t))

	tests := []struct {
		name   string
		tokens []string
	}{
		{"no tokens", nil},
		{"only unknown tokens", []string{"pantai", "laut"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := r.Rank(tt.tokens, nil); len(got) != 0 {
				t.Errorf("Rank(%v) = %v, want empty", tt.tokens, got)
			}
		})
	}
}

func TestRank_TieBreakByListingID(t *testing.T) {
	// Two listings with identical vectors score identically; input order
	// must not decide the tie, the listing id must.
	idf := math.Log(1.5)
	listings := []*models.Listing{
		{ID: "b-kemah", Name: "Kemah B"},
		{ID: "a-kemah", Name: "Kemah A"},
		{ID: "c-hutan", Name: "Hutan C"},
	}
	vectors := map[string]map[string]float64{
		"b-kemah": {"kemah": idf},
		"a-kemah": {"kemah": idf},
		"c-hutan": {"hutan": math.Log(3)},
	}
	docFreqs := map[string]int{"kemah": 2, "hutan": 1}
	store, err := corpus.Build(listings, vectors, docFreqs)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	results := NewRanker(store).Rank([]string{"kemah"}, nil)
	if len(results) != 2 {
		t.Fatalf("Rank() returned %d results, want 2", len(results))
	}
	if results[0].ListingID != "a-kemah" || results[1].ListingID != "b-kemah" {
		t.Errorf("tie order = [%s %s], want [a-kemah b-kemah]",
			results[0].ListingID, results[1].ListingID)
	}
	if results[0].Score != results[1].Score {
		t.Errorf("expected equal scores, got %v and %v", results[0].Score, results[1].Score)
	}
}

func TestRank_CandidateMask(t *testing.T) {
	store := newTestStore(t)
	r := NewRanker(store)

	ordTenda, ok := store.Ordinal("l-tenda")
	if !ok {
		t.Fatal("Ordinal(l-tenda) not found")
	}
	mask := roaring.New()
	mask.Add(ordTenda)

	results := r.Rank([]string{"danau"}, mask)
	if len(results) != 1 {
		t.Fatalf("Rank() returned %d results, want 1", len(results))
	}
	if results[0].ListingID != "l-tenda" {
		t.Errorf("result = %s, want l-tenda", results[0].ListingID)
	}

	// Masking must not change the surviving score.
	full := r.Rank([]string{"danau"}, nil)
	for _, fr := range full {
		if fr.ListingID == "l-tenda" && fr.Score != results[0].Score {
			t.Errorf("masked score %v differs from unmasked %v", results[0].Score, fr.Score)
		}
	}
}

func TestRank_Deterministic(t *testing.T) {
	r := NewRanker(newTestStore(t))

	first := r.Rank([]string{"danau", "tenda"}, nil)
	for i := 0; i < 20; i++ {
		again := r.Rank([]string{"danau", "tenda"}, nil)
		if len(again) != len(first) {
			t.Fatalf("run %d: length %d, want %d", i, len(again), len(first))
		}
		for j := range first {
			if again[j] != first[j] {
				t.Fatalf("run %d: result[%d] = %+v, want %+v", i, j, again[j], first[j])
			}
		}
	}
}

func TestRank_ScoresWithinUnitRange(t *testing.T) {
	r := NewRanker(newTestStore(t))

	for _, res := range r.Rank([]string{"danau", "tenda", "perahu", "sungai"}, nil) {
		if res.Score < 0 || res.Score > 1 {
			t.Errorf("score for %s = %v, outside [0,1]", res.ListingID, res.Score)
		}
	}
}

func TestFilterByMinScore(t *testing.T) {
	results := []RankedListing{
		{ListingID: "a", Score: 0.9},
		{ListingID: "b", Score: 0.5},
		{ListingID: "c", Score: 0.1},
	}

	tests := []struct {
		name     string
		minScore float64
		wantIDs  []string
	}{
		{"zero keeps all", 0, []string{"a", "b", "c"}},
		{"threshold drops tail", 0.5, []string{"a", "b"}},
		{"above all", 0.95, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterByMinScore(results, tt.minScore)
			if len(got) != len(tt.wantIDs) {
				t.Fatalf("FilterByMinScore() kept %d, want %d", len(got), len(tt.wantIDs))
			}
			for i, id := range tt.wantIDs {
				if got[i].ListingID != id {
					t.Errorf("result[%d] = %s, want %s", i, got[i].ListingID, id)
				}
			}
		})
	}
}

func TestTopN(t *testing.T) {
	results := []RankedListing{{ListingID: "a"}, {ListingID: "b"}, {ListingID: "c"}}

	tests := []struct {
		name string
		n    int
		want int
	}{
		{"truncates", 2, 2},
		{"larger than input", 10, 3},
		{"zero means all", 0, 3},
		{"negative means all", -1, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TopN(results, tt.n); len(got) != tt.want {
				t.Errorf("TopN(%d) returned %d results, want %d", tt.n, len(got), tt.want)
			}
		})
	}
}
