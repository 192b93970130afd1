package engine

import (
	"sort"

	"github.com/RoaringBitmap/roaring"
	"go.uber.org/zap"

	"github.com/rimbakita/kemari/internal/models"
	"github.com/rimbakita/kemari/internal/ranking"
)

// intentFacilities maps narrowing intents to the facility phrase a listing
// must carry to stay a candidate.
var intentFacilities = map[models.Intent]string{
	models.IntentHasPool: "kolam renang",
	models.IntentHasWiFi: "wifi",
}

type match struct {
	listing *models.Listing
	score   float64
}

// match turns an analyzed query into an ordered slice of listings. The
// pipeline is: narrow candidates by facility intent, rank by cosine
// similarity, drop listings outside the query region, join listing
// metadata, then let ordering intents re-sort the survivors. Region
// filtering happens after ranking and before any truncation, so a region
// never changes a surviving listing's score.
func (e *Engine) match(analyzed *models.AnalyzedQuery) []match {
	var candidates *roaring.Bitmap
	if phrase, ok := intentFacilities[analyzed.Intent]; ok {
		candidates = e.store.MatchFacility(phrase)
		if candidates == nil || candidates.IsEmpty() {
			return nil
		}
	}

	ranked := e.ranker.Rank(analyzed.Tokens, candidates)
	ranked = ranking.FilterByMinScore(ranked, e.cfg.Search.MinScore)

	var regionSet *roaring.Bitmap
	if analyzed.Region != "" {
		regionSet = e.store.RegionSet(analyzed.Region)
		if regionSet == nil {
			return nil
		}
	}

	var matches []match
	if len(analyzed.Tokens) == 0 && isOrderingIntent(analyzed.Intent) {
		// "termurah" or "terbaik" with nothing left to rank on: the
		// whole (region-filtered) catalog competes on the override.
		matches = e.catalogMatches(regionSet)
	} else {
		matches = make([]match, 0, len(ranked))
		for _, r := range ranked {
			if regionSet != nil && !regionSet.Contains(r.Ordinal) {
				continue
			}
			listing, ok := e.store.Listing(r.ListingID)
			if !ok {
				e.logger.Warn("ranked listing missing from catalog",
					zap.String("listing_id", r.ListingID))
				continue
			}
			matches = append(matches, match{listing: listing, score: r.Score})
		}
	}

	applyIntentOrder(analyzed.Intent, matches)
	return matches
}

// catalogMatches returns every listing, optionally region-filtered, in
// listing id order with zero scores.
func (e *Engine) catalogMatches(regionSet *roaring.Bitmap) []match {
	n := e.store.Len()
	matches := make([]match, 0, n)
	for ord := uint32(0); ord < uint32(n); ord++ {
		if regionSet != nil && !regionSet.Contains(ord) {
			continue
		}
		matches = append(matches, match{listing: e.store.ByOrdinal(ord)})
	}
	return matches
}

// applyIntentOrder re-sorts matches for ordering intents. Sorting is
// stable, so ties keep the score-descending, id-ascending arrival order.
func applyIntentOrder(intent models.Intent, matches []match) {
	switch intent {
	case models.IntentCheapest:
		sort.SliceStable(matches, func(i, j int) bool {
			pi, iok := matches[i].listing.MinPrice()
			pj, jok := matches[j].listing.MinPrice()
			if iok != jok {
				// Listings without any priced item sort last.
				return iok
			}
			return iok && pi < pj
		})
	case models.IntentTopRated:
		sort.SliceStable(matches, func(i, j int) bool {
			return matches[i].listing.AvgRating > matches[j].listing.AvgRating
		})
	}
}

func isOrderingIntent(intent models.Intent) bool {
	return intent == models.IntentCheapest || intent == models.IntentTopRated
}
