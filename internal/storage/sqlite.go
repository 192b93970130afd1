package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"

	"github.com/rimbakita/kemari/internal/models"
)

const bundleSchema = `
CREATE TABLE IF NOT EXISTS listings (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	location TEXT,
	regions TEXT,
	avg_rating REAL,
	price_items TEXT,
	facilities TEXT,
	photo_url TEXT,
	gmaps_link TEXT,
	document TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS term_vectors (
	listing_id TEXT PRIMARY KEY,
	weights TEXT NOT NULL,
	FOREIGN KEY (listing_id) REFERENCES listings(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS document_frequencies (
	term TEXT PRIMARY KEY,
	doc_count INTEGER NOT NULL,
	idf REAL NOT NULL
);

CREATE TABLE IF NOT EXISTS bundle_info (
	key TEXT PRIMARY KEY,
	value TEXT NOT NULL
);
`

// WriteBundle persists a bundle to path atomically: the database is built
// under a temporary name in the same directory and renamed over the target
// only after a successful commit. Parent directories are created as needed.
func WriteBundle(ctx context.Context, path string, bundle *Bundle) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create bundle directory: %w", err)
		}
	}

	tmpPath := path + ".tmp"
	_ = os.Remove(tmpPath)

	db, err := sqlx.Open("sqlite3", tmpPath)
	if err != nil {
		return fmt.Errorf("failed to open bundle database: %w", err)
	}

	if err := writeBundleDB(ctx, db, bundle); err != nil {
		_ = db.Close()
		_ = os.Remove(tmpPath)
		return err
	}
	if err := db.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to close bundle database: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to move bundle into place: %w", err)
	}
	return nil
}

func writeBundleDB(ctx context.Context, db *sqlx.DB, bundle *Bundle) error {
	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		return fmt.Errorf("failed to enable WAL: %w", err)
	}
	if _, err := db.ExecContext(ctx, bundleSchema); err != nil {
		return fmt.Errorf("failed to initialize bundle schema: %w", err)
	}

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, listing := range bundle.Listings {
		row, err := listingToRow(listing)
		if err != nil {
			return fmt.Errorf("failed to encode listing %s: %w", listing.ID, err)
		}
		if _, err := tx.NamedExecContext(ctx,
			`INSERT INTO listings (id, name, location, regions, avg_rating, price_items, facilities, photo_url, gmaps_link, document)
			 VALUES (:id, :name, :location, :regions, :avg_rating, :price_items, :facilities, :photo_url, :gmaps_link, :document)`,
			row,
		); err != nil {
			return fmt.Errorf("failed to insert listing %s: %w", listing.ID, err)
		}
	}

	ids := make([]string, 0, len(bundle.Vectors))
	for id := range bundle.Vectors {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		weightsJSON, err := json.Marshal(bundle.Vectors[id])
		if err != nil {
			return fmt.Errorf("failed to encode term vector for %s: %w", id, err)
		}
		if _, err := tx.NamedExecContext(ctx,
			`INSERT INTO term_vectors (listing_id, weights) VALUES (:listing_id, :weights)`,
			termVectorRow{ListingID: id, Weights: string(weightsJSON)},
		); err != nil {
			return fmt.Errorf("failed to insert term vector for %s: %w", id, err)
		}
	}

	n := len(bundle.Listings)
	terms := make([]string, 0, len(bundle.DocFreqs))
	for term := range bundle.DocFreqs {
		terms = append(terms, term)
	}
	sort.Strings(terms)
	for _, term := range terms {
		df := bundle.DocFreqs[term]
		idf := 0.0
		if df > 0 && n > 0 {
			idf = math.Log(float64(n) / float64(df))
		}
		if _, err := tx.NamedExecContext(ctx,
			`INSERT INTO document_frequencies (term, doc_count, idf) VALUES (:term, :doc_count, :idf)`,
			docFreqRow{Term: term, DocCount: df, IDF: idf},
		); err != nil {
			return fmt.Errorf("failed to insert document frequency for %q: %w", term, err)
		}
	}

	info := map[string]string{
		infoKeyFormatVersion: strconv.Itoa(BundleFormatVersion),
		infoKeyBuiltAt:       bundle.Info.BuiltAt.UTC().Format(time.RFC3339),
		infoKeyListingCount:  strconv.Itoa(len(bundle.Listings)),
		infoKeyTermCount:     strconv.Itoa(len(bundle.DocFreqs)),
		infoKeyAnalyzer:      bundle.Info.AnalyzerFingerprint,
		infoKeyDatasetPath:   bundle.Info.DatasetPath,
	}
	keys := make([]string, 0, len(info))
	for k := range info {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if _, err := tx.NamedExecContext(ctx,
			`INSERT INTO bundle_info (key, value) VALUES (:key, :value)`,
			infoRow{Key: k, Value: info[k]},
		); err != nil {
			return fmt.Errorf("failed to insert bundle info %q: %w", k, err)
		}
	}

	return tx.Commit()
}

// LoadBundle reads the bundle at path and cross-checks its metadata against
// the stored rows. A missing file yields ErrBundleNotFound; any structural
// problem yields an error wrapping ErrBundleCorrupt.
func LoadBundle(ctx context.Context, path string) (*Bundle, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrBundleNotFound, path)
		}
		return nil, fmt.Errorf("failed to stat bundle: %w", err)
	}

	db, err := sqlx.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open bundle database: %w", err)
	}
	defer db.Close()

	info, err := readBundleInfo(ctx, db)
	if err != nil {
		return nil, err
	}
	if info.FormatVersion != BundleFormatVersion {
		return nil, fmt.Errorf("%w: format version %d, expected %d",
			ErrBundleCorrupt, info.FormatVersion, BundleFormatVersion)
	}

	var listingRows []listingRow
	if err := db.SelectContext(ctx, &listingRows, `SELECT * FROM listings ORDER BY id`); err != nil {
		return nil, fmt.Errorf("%w: failed to read listings: %v", ErrBundleCorrupt, err)
	}
	listings := make([]*models.Listing, 0, len(listingRows))
	for _, row := range listingRows {
		listing, err := rowToListing(row)
		if err != nil {
			return nil, fmt.Errorf("%w: listing %s: %v", ErrBundleCorrupt, row.ID, err)
		}
		listings = append(listings, listing)
	}

	var vectorRows []termVectorRow
	if err := db.SelectContext(ctx, &vectorRows, `SELECT listing_id, weights FROM term_vectors`); err != nil {
		return nil, fmt.Errorf("%w: failed to read term vectors: %v", ErrBundleCorrupt, err)
	}
	vectors := make(map[string]map[string]float64, len(vectorRows))
	for _, row := range vectorRows {
		var weights map[string]float64
		if err := json.Unmarshal([]byte(row.Weights), &weights); err != nil {
			return nil, fmt.Errorf("%w: term vector for %s: %v", ErrBundleCorrupt, row.ListingID, err)
		}
		vectors[row.ListingID] = weights
	}

	var freqRows []docFreqRow
	if err := db.SelectContext(ctx, &freqRows, `SELECT term, doc_count, idf FROM document_frequencies`); err != nil {
		return nil, fmt.Errorf("%w: failed to read document frequencies: %v", ErrBundleCorrupt, err)
	}
	docFreqs := make(map[string]int, len(freqRows))
	for _, row := range freqRows {
		docFreqs[row.Term] = row.DocCount
	}

	if len(listings) != info.ListingCount {
		return nil, fmt.Errorf("%w: %d listings stored, metadata says %d",
			ErrBundleCorrupt, len(listings), info.ListingCount)
	}
	if len(docFreqs) != info.TermCount {
		return nil, fmt.Errorf("%w: %d terms stored, metadata says %d",
			ErrBundleCorrupt, len(docFreqs), info.TermCount)
	}
	for _, listing := range listings {
		if _, ok := vectors[listing.ID]; !ok {
			return nil, fmt.Errorf("%w: listing %s has no term vector", ErrBundleCorrupt, listing.ID)
		}
	}
	if len(vectors) != len(listings) {
		return nil, fmt.Errorf("%w: %d term vectors for %d listings",
			ErrBundleCorrupt, len(vectors), len(listings))
	}

	return &Bundle{
		Listings: listings,
		Vectors:  vectors,
		DocFreqs: docFreqs,
		Info:     info,
	}, nil
}

func readBundleInfo(ctx context.Context, db *sqlx.DB) (BundleInfo, error) {
	var rows []infoRow
	if err := db.SelectContext(ctx, &rows, `SELECT key, value FROM bundle_info`); err != nil {
		return BundleInfo{}, fmt.Errorf("%w: failed to read bundle info: %v", ErrBundleCorrupt, err)
	}
	values := make(map[string]string, len(rows))
	for _, row := range rows {
		values[row.Key] = row.Value
	}

	var info BundleInfo
	var err error

	if info.FormatVersion, err = strconv.Atoi(values[infoKeyFormatVersion]); err != nil {
		return BundleInfo{}, fmt.Errorf("%w: bad format_version %q", ErrBundleCorrupt, values[infoKeyFormatVersion])
	}
	if info.ListingCount, err = strconv.Atoi(values[infoKeyListingCount]); err != nil {
		return BundleInfo{}, fmt.Errorf("%w: bad listing_count %q", ErrBundleCorrupt, values[infoKeyListingCount])
	}
	if info.TermCount, err = strconv.Atoi(values[infoKeyTermCount]); err != nil {
		return BundleInfo{}, fmt.Errorf("%w: bad term_count %q", ErrBundleCorrupt, values[infoKeyTermCount])
	}
	if info.BuiltAt, err = time.Parse(time.RFC3339, values[infoKeyBuiltAt]); err != nil {
		return BundleInfo{}, fmt.Errorf("%w: bad built_at %q", ErrBundleCorrupt, values[infoKeyBuiltAt])
	}
	info.AnalyzerFingerprint = values[infoKeyAnalyzer]
	info.DatasetPath = values[infoKeyDatasetPath]
	return info, nil
}

func listingToRow(listing *models.Listing) (listingRow, error) {
	regionsJSON, err := json.Marshal(listing.Regions)
	if err != nil {
		return listingRow{}, err
	}
	priceJSON, err := json.Marshal(listing.PriceItems)
	if err != nil {
		return listingRow{}, err
	}
	return listingRow{
		ID:         listing.ID,
		Name:       listing.Name,
		Location:   listing.Location,
		Regions:    string(regionsJSON),
		AvgRating:  listing.AvgRating,
		PriceItems: string(priceJSON),
		Facilities: listing.Facilities,
		PhotoURL:   listing.PhotoURL,
		GmapsLink:  listing.GmapsLink,
		Document:   listing.Document,
	}, nil
}

func rowToListing(row listingRow) (*models.Listing, error) {
	listing := &models.Listing{
		ID:         row.ID,
		Name:       row.Name,
		Location:   row.Location,
		AvgRating:  row.AvgRating,
		Facilities: row.Facilities,
		PhotoURL:   row.PhotoURL,
		GmapsLink:  row.GmapsLink,
		Document:   row.Document,
	}
	if row.Regions != "" {
		if err := json.Unmarshal([]byte(row.Regions), &listing.Regions); err != nil {
			return nil, fmt.Errorf("bad regions: %w", err)
		}
	}
	if row.PriceItems != "" {
		if err := json.Unmarshal([]byte(row.PriceItems), &listing.PriceItems); err != nil {
			return nil, fmt.Errorf("bad price items: %w", err)
		}
	}
	return listing, nil
}
