// Package storage reads and writes search bundles: self-contained SQLite
// files holding the listing catalog, precomputed term vectors, document
// frequencies, and build metadata.
package storage

import (
	"errors"
	"time"

	"github.com/rimbakita/kemari/internal/models"
)

// BundleFormatVersion is the schema version written into bundle_info.
// Loading a bundle with a different version fails with ErrBundleCorrupt.
const BundleFormatVersion = 1

var (
	// ErrBundleNotFound means no bundle file exists at the given path.
	ErrBundleNotFound = errors.New("bundle not found")

	// ErrBundleCorrupt means the bundle exists but its schema, metadata,
	// or internal counts do not line up.
	ErrBundleCorrupt = errors.New("bundle corrupt")
)

// Bundle is the full persisted state of one index build.
type Bundle struct {
	Listings []*models.Listing
	// Vectors maps listing id to its term vector (term -> tf*idf weight).
	Vectors map[string]map[string]float64
	// DocFreqs maps each term to the number of documents containing it.
	DocFreqs map[string]int
	Info     BundleInfo
}

// BundleInfo is the build metadata stored in the bundle_info table.
type BundleInfo struct {
	FormatVersion int
	BuiltAt       time.Time
	ListingCount  int
	TermCount     int
	// AnalyzerFingerprint is the serialized fingerprint of the analysis
	// pipeline the vectors were produced with.
	AnalyzerFingerprint string
	// DatasetPath records the source dataset, for provenance only.
	DatasetPath string
}

// bundle_info keys.
const (
	infoKeyFormatVersion = "format_version"
	infoKeyBuiltAt       = "built_at"
	infoKeyListingCount  = "listing_count"
	infoKeyTermCount     = "term_count"
	infoKeyAnalyzer      = "analyzer"
	infoKeyDatasetPath   = "dataset_path"
)

type listingRow struct {
	ID         string  `db:"id"`
	Name       string  `db:"name"`
	Location   string  `db:"location"`
	Regions    string  `db:"regions"`
	AvgRating  float64 `db:"avg_rating"`
	PriceItems string  `db:"price_items"`
	Facilities string  `db:"facilities"`
	PhotoURL   string  `db:"photo_url"`
	GmapsLink  string  `db:"gmaps_link"`
	Document   string  `db:"document"`
}

type termVectorRow struct {
	ListingID string `db:"listing_id"`
	Weights   string `db:"weights"`
}

type docFreqRow struct {
	Term     string  `db:"term"`
	DocCount int     `db:"doc_count"`
	IDF      float64 `db:"idf"`
}

type infoRow struct {
	Key   string `db:"key"`
	Value string `db:"value"`
}
