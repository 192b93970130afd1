// Package indexer builds search bundles from listing datasets: it reads the
// dataset, normalizes rows into listings, tags regions, computes TF-IDF term
// vectors, and writes everything into a bundle.
package indexer

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/rimbakita/kemari/internal/analysis"
	"github.com/rimbakita/kemari/internal/config"
	"github.com/rimbakita/kemari/internal/gazetteer"
	"github.com/rimbakita/kemari/internal/models"
	"github.com/rimbakita/kemari/internal/storage"
)

// listingNamespace is the UUID namespace for deterministic listing ids, so
// rebuilding an unchanged dataset yields identical bundles.
var listingNamespace = uuid.MustParse("8fb6d5e4-402f-4f6e-9d2b-6a4f0c2e7a91")

// Indexer builds search bundles from listing datasets.
type Indexer struct {
	cfg    *config.Config
	text   *analysis.Analyzer
	gaz    *gazetteer.Gazetteer
	logger *zap.Logger // optional; when set, logs build progress
}

// IndexerOption configures an Indexer.
type IndexerOption func(*Indexer)

// WithLogger sets a logger for build progress and row-level warnings.
func WithLogger(l *zap.Logger) IndexerOption {
	return func(idx *Indexer) { idx.logger = l }
}

// NewIndexer creates an indexer using the same analysis pipeline and
// gazetteer as the query side, so bundles and queries stay comparable.
func NewIndexer(cfg *config.Config, opts ...IndexerOption) *Indexer {
	idx := &Indexer{
		cfg:  cfg,
		text: analysis.New(),
		gaz:  gazetteer.New(),
	}
	for _, opt := range opts {
		opt(idx)
	}
	return idx
}

// BuildStats summarizes one bundle build.
type BuildStats struct {
	Listings   int
	Skipped    int
	Vocabulary int
	Regions    int
	BundlePath string
	Took       time.Duration
}

// Build reads the configured dataset, computes term vectors, and writes the
// bundle atomically to the configured path.
func (idx *Indexer) Build(ctx context.Context) (*BuildStats, error) {
	start := time.Now()

	datasetPath := idx.cfg.Index.DatasetPath
	if datasetPath == "" {
		return nil, fmt.Errorf("no dataset configured")
	}

	records, err := readDataset(datasetPath, idx.cfg.Index.Sheet)
	if err != nil {
		return nil, err
	}

	listings, skipped := idx.toListings(records)
	if len(listings) == 0 {
		return nil, fmt.Errorf("dataset %s has no usable rows", datasetPath)
	}

	vectors, docFreqs, err := ComputeVectors(listings, idx.text, idx.cfg.Index.Workers)
	if err != nil {
		return nil, err
	}

	regions := make(map[string]struct{})
	for _, l := range listings {
		for _, r := range l.Regions {
			regions[r] = struct{}{}
		}
	}

	bundle := &storage.Bundle{
		Listings: listings,
		Vectors:  vectors,
		DocFreqs: docFreqs,
		Info: storage.BundleInfo{
			BuiltAt:             time.Now().UTC(),
			AnalyzerFingerprint: idx.text.Fingerprint().String(),
			DatasetPath:         datasetPath,
		},
	}
	if err := storage.WriteBundle(ctx, idx.cfg.Bundle.Path, bundle); err != nil {
		return nil, err
	}

	stats := &BuildStats{
		Listings:   len(listings),
		Skipped:    skipped,
		Vocabulary: len(docFreqs),
		Regions:    len(regions),
		BundlePath: idx.cfg.Bundle.Path,
		Took:       time.Since(start),
	}
	if idx.logger != nil {
		idx.logger.Info("bundle built",
			zap.String("dataset", datasetPath),
			zap.String("bundle", stats.BundlePath),
			zap.Int("listings", stats.Listings),
			zap.Int("skipped", stats.Skipped),
			zap.Int("vocabulary", stats.Vocabulary),
			zap.Int("regions", stats.Regions),
			zap.Duration("took", stats.Took))
	}
	return stats, nil
}

// toListings normalizes records into listings, skipping rows without a name
// and rows whose id collides with an earlier one.
func (idx *Indexer) toListings(records []record) (listings []*models.Listing, skipped int) {
	seen := make(map[string]int, len(records))
	for n, rec := range records {
		if strings.TrimSpace(rec.Name) == "" {
			if idx.logger != nil {
				idx.logger.Warn("skipping dataset row without a name", zap.Int("row", n+2))
			}
			skipped++
			continue
		}
		listing := idx.buildListing(rec)
		if prev, dup := seen[listing.ID]; dup {
			if idx.logger != nil {
				idx.logger.Warn("skipping dataset row with duplicate id",
					zap.Int("row", n+2),
					zap.Int("first_row", prev),
					zap.String("listing_id", listing.ID))
			}
			skipped++
			continue
		}
		seen[listing.ID] = n + 2
		listings = append(listings, listing)
	}
	return listings, skipped
}

// buildListing turns one record into a listing: a deterministic id when the
// dataset carries none, region tags matched from the location, and the
// document text the vectors are computed from.
func (idx *Indexer) buildListing(rec record) *models.Listing {
	id := strings.TrimSpace(rec.ID)
	if id == "" {
		id = uuid.NewSHA1(listingNamespace, []byte(rec.Name+"\x00"+rec.Location)).String()
	}
	return &models.Listing{
		ID:         id,
		Name:       rec.Name,
		Location:   rec.Location,
		Regions:    idx.gaz.MatchAll(idx.text.Tokens(rec.Location)),
		AvgRating:  rec.AvgRating,
		PriceItems: rec.PriceItems,
		Facilities: rec.Facilities,
		PhotoURL:   rec.PhotoURL,
		GmapsLink:  rec.GmapsLink,
		Document:   composeDocument(rec),
	}
}

// composeDocument joins the searchable text fields of a record. Cells may
// carry stray newlines from spreadsheet exports, so each part is collapsed
// to single spaces. Facility separators need no scrubbing, the tokenizer
// drops punctuation anyway.
func composeDocument(rec record) string {
	parts := make([]string, 0, 4)
	for _, p := range []string{rec.Name, rec.Location, rec.Description, rec.Facilities} {
		if s := Preprocess(p); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, " ")
}
