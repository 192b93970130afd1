// Package corpus holds the immutable in-memory search corpus: listings,
// precomputed term vectors in postings form, the document-frequency table,
// and bitmap indexes over region and facility tags. A Store is built once
// from one bundle and never mutated, so concurrent readers need no locking.
package corpus

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/RoaringBitmap/roaring"

	"github.com/rimbakita/kemari/internal/models"
	"github.com/rimbakita/kemari/pkg/utils"
)

// Posting is one document entry in a term's posting list. Ordinals are the
// dense ids assigned by Build: listings sorted by id ascending, so posting
// lists ordered by ordinal are also ordered by listing id.
type Posting struct {
	Ordinal uint32
	Weight  float64
}

// TermStat pairs a vocabulary term with its document frequency.
type TermStat struct {
	Term     string `json:"term"`
	DocCount int    `json:"doc_count"`
}

// Stats summarizes corpus-wide counters.
type Stats struct {
	Listings   int `json:"listings"`
	Vocabulary int `json:"vocabulary"`
	Regions    int `json:"regions"`
	Facilities int `json:"facilities"`
}

// Store is the read-only corpus.
type Store struct {
	listings   []*models.Listing
	byID       map[string]uint32
	postings   map[string][]Posting
	docFreqs   map[string]int
	idf        map[string]float64
	norms      []float64
	regions    map[string]*roaring.Bitmap
	facilities map[string]*roaring.Bitmap
}

// Build assembles the store from one bundle's worth of data. The vectors
// and document frequencies must come from the same build as the listings;
// Build fails when a listing has no vector or a vector references an
// unknown listing id, since that means the bundle is out of sync.
func Build(listings []*models.Listing, vectors map[string]map[string]float64, docFreqs map[string]int) (*Store, error) {
	s := &Store{
		byID:       make(map[string]uint32, len(listings)),
		postings:   make(map[string][]Posting),
		docFreqs:   make(map[string]int, len(docFreqs)),
		idf:        make(map[string]float64, len(docFreqs)),
		regions:    make(map[string]*roaring.Bitmap),
		facilities: make(map[string]*roaring.Bitmap),
	}

	s.listings = append([]*models.Listing(nil), listings...)
	sort.Slice(s.listings, func(i, j int) bool { return s.listings[i].ID < s.listings[j].ID })

	s.norms = make([]float64, len(s.listings))
	for ord, l := range s.listings {
		if l.ID == "" {
			return nil, fmt.Errorf("listing %q has an empty id", l.Name)
		}
		if _, dup := s.byID[l.ID]; dup {
			return nil, fmt.Errorf("duplicate listing id %q", l.ID)
		}
		s.byID[l.ID] = uint32(ord)

		vec, ok := vectors[l.ID]
		if !ok {
			return nil, fmt.Errorf("listing %q has no term vector", l.ID)
		}
		for term, weight := range vec {
			if weight <= 0 {
				continue
			}
			s.postings[term] = append(s.postings[term], Posting{Ordinal: uint32(ord), Weight: weight})
		}
		s.norms[ord] = utils.VectorNorm(vec)

		for _, region := range l.Regions {
			addTag(s.regions, region, uint32(ord))
		}
		for _, f := range l.FacilityList() {
			addTag(s.facilities, NormalizeFacility(f), uint32(ord))
		}
	}
	if len(vectors) > len(s.listings) {
		for id := range vectors {
			if _, ok := s.byID[id]; !ok {
				return nil, fmt.Errorf("term vector for unknown listing id %q", id)
			}
		}
	}

	for term := range s.postings {
		list := s.postings[term]
		sort.Slice(list, func(i, j int) bool { return list[i].Ordinal < list[j].Ordinal })
	}

	n := float64(len(s.listings))
	for term, df := range docFreqs {
		if df <= 0 {
			continue
		}
		s.docFreqs[term] = df
		s.idf[term] = math.Log(n / float64(df))
	}
	return s, nil
}

// Len returns the number of listings.
func (s *Store) Len() int { return len(s.listings) }

// Listing returns the listing with the given id.
func (s *Store) Listing(id string) (*models.Listing, bool) {
	ord, ok := s.byID[id]
	if !ok {
		return nil, false
	}
	return s.listings[ord], true
}

// ByOrdinal returns the listing at the given ordinal.
func (s *Store) ByOrdinal(ord uint32) *models.Listing {
	return s.listings[ord]
}

// Ordinal returns the dense ordinal assigned to the listing id.
func (s *Store) Ordinal(id string) (uint32, bool) {
	ord, ok := s.byID[id]
	return ord, ok
}

// Postings returns the posting list for term, ordered by ordinal ascending.
// The returned slice is shared and must not be modified.
func (s *Store) Postings(term string) []Posting {
	return s.postings[term]
}

// IDF returns ln(N/df) for the term, or 0 for out-of-vocabulary terms.
func (s *Store) IDF(term string) float64 {
	return s.idf[term]
}

// DocFrequency returns the number of listings whose vector carries the term.
func (s *Store) DocFrequency(term string) int {
	return s.docFreqs[term]
}

// Norm returns the precomputed L2 norm of the listing vector at ord.
func (s *Store) Norm(ord uint32) float64 {
	return s.norms[ord]
}

// All returns a fresh bitmap holding every ordinal.
func (s *Store) All() *roaring.Bitmap {
	bm := roaring.New()
	if n := len(s.listings); n > 0 {
		bm.AddRange(0, uint64(n))
	}
	return bm
}

// RegionSet returns the members of a canonical region tag, or nil when the
// corpus has no listing in that region. The bitmap is shared; do not modify.
func (s *Store) RegionSet(region string) *roaring.Bitmap {
	return s.regions[region]
}

// FacilitySet returns the members of a normalized facility tag, or nil.
// The bitmap is shared; do not modify.
func (s *Store) FacilitySet(facility string) *roaring.Bitmap {
	return s.facilities[facility]
}

// MatchFacility returns a fresh bitmap of every listing with a facility tag
// containing the normalized phrase, so "kolam renang anak" still satisfies
// "kolam renang". Returns nil when no tag matches.
func (s *Store) MatchFacility(phrase string) *roaring.Bitmap {
	phrase = NormalizeFacility(phrase)
	if phrase == "" {
		return nil
	}
	var union *roaring.Bitmap
	for tag, bm := range s.facilities {
		if strings.Contains(tag, phrase) {
			if union == nil {
				union = roaring.New()
			}
			union.Or(bm)
		}
	}
	return union
}

// Regions returns all region tags present in the corpus, sorted.
func (s *Store) Regions() []string {
	return sortedKeys(s.regions)
}

// Facilities returns all facility tags present in the corpus, sorted.
func (s *Store) Facilities() []string {
	return sortedKeys(s.facilities)
}

// Stats returns corpus-wide counters.
func (s *Store) Stats() Stats {
	return Stats{
		Listings:   len(s.listings),
		Vocabulary: len(s.docFreqs),
		Regions:    len(s.regions),
		Facilities: len(s.facilities),
	}
}

// TopTerms returns the n highest-document-frequency terms, ties broken
// alphabetically. n <= 0 returns the full vocabulary.
func (s *Store) TopTerms(n int) []TermStat {
	stats := make([]TermStat, 0, len(s.docFreqs))
	for term, df := range s.docFreqs {
		stats = append(stats, TermStat{Term: term, DocCount: df})
	}
	sort.Slice(stats, func(i, j int) bool {
		if stats[i].DocCount != stats[j].DocCount {
			return stats[i].DocCount > stats[j].DocCount
		}
		return stats[i].Term < stats[j].Term
	})
	if n > 0 && n < len(stats) {
		stats = stats[:n]
	}
	return stats
}

// NormalizeFacility folds a facility name into its tag form: lowercased
// with runs of whitespace collapsed to single spaces. Intent rules address
// facility sets through these tags ("kolam renang", "wifi").
func NormalizeFacility(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(name)), " ")
}

func addTag(sets map[string]*roaring.Bitmap, tag string, ord uint32) {
	if tag == "" {
		return
	}
	bm, ok := sets[tag]
	if !ok {
		bm = roaring.New()
		sets[tag] = bm
	}
	bm.Add(ord)
}

func sortedKeys(sets map[string]*roaring.Bitmap) []string {
	keys := make([]string, 0, len(sets))
	for k := range sets {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
