package indexer

import (
	"context"
	"encoding/csv"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/rimbakita/kemari/internal/analysis"
	"github.com/rimbakita/kemari/internal/config"
	"github.com/rimbakita/kemari/internal/models"
	"github.com/rimbakita/kemari/internal/storage"
)

func writeCSV(t *testing.T, path string, rows [][]string) {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	w := csv.NewWriter(f)
	if err := w.WriteAll(rows); err != nil {
		t.Fatal(err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}
}

func testConfig(dir, datasetPath string) *config.Config {
	return &config.Config{
		Bundle: config.BundleConfig{Path: filepath.Join(dir, "bundle.db")},
		Index:  config.IndexConfig{DatasetPath: datasetPath, Workers: 2},
	}
}

func TestRowsToRecords(t *testing.T) {
	rows := [][]string{
		{"Nama", "Lokasi", "Rating", "Fasilitas", "price_items", "deskripsi"},
		{"Kemah Asri", "Sleman, Yogyakarta", "4,6", "Kolam Renang|WiFi",
			`[{"item":"Tiket Masuk","harga":15000}]`, "Tenda tepi danau"},
		{"Bukit Hijau", "Lembang, Bandung", "4.2", "", "", ""},
	}

	records, err := rowsToRecords(rows)
	if err != nil {
		t.Fatalf("rowsToRecords() error = %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("got %d records, want 2", len(records))
	}
	first := records[0]
	if first.Name != "Kemah Asri" || first.Location != "Sleman, Yogyakarta" {
		t.Errorf("record fields mangled: %+v", first)
	}
	if first.AvgRating != 4.6 {
		t.Errorf("comma-decimal rating = %v, want 4.6", first.AvgRating)
	}
	if len(first.PriceItems) != 1 || first.PriceItems[0].Item != "Tiket Masuk" {
		t.Errorf("price items = %+v", first.PriceItems)
	}
	if first.PriceItems[0].Harga.IsDecimal() || first.PriceItems[0].Harga.Float64() != 15000 {
		t.Errorf("harga = %+v, want integer 15000", first.PriceItems[0].Harga)
	}
	if records[1].AvgRating != 4.2 {
		t.Errorf("dot-decimal rating = %v, want 4.2", records[1].AvgRating)
	}
}

func TestRowsToRecords_Errors(t *testing.T) {
	tests := []struct {
		name string
		rows [][]string
	}{
		{"empty dataset", nil},
		{"no name column", [][]string{{"lokasi", "rating"}, {"Sleman", "4.5"}}},
		{"bad rating", [][]string{{"name", "rating"}, {"Camp", "empat"}}},
		{"bad price json", [][]string{{"name", "price_items"}, {"Camp", "{broken"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := rowsToRecords(tt.rows); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestReadDataset_CSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dataset.csv")
	writeCSV(t, path, [][]string{
		{"name", "location"},
		{"Kemah Asri", "Sleman"},
	})

	records, err := readDataset(path, "")
	if err != nil {
		t.Fatalf("readDataset() error = %v", err)
	}
	if len(records) != 1 || records[0].Name != "Kemah Asri" {
		t.Errorf("records = %+v", records)
	}
}

func TestReadDataset_Excel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dataset.xlsx")
	f := excelize.NewFile()
	f.SetCellValue("Sheet1", "A1", "name")
	f.SetCellValue("Sheet1", "B1", "location")
	f.SetCellValue("Sheet1", "C1", "rating")
	f.SetCellValue("Sheet1", "A2", "Kemah Asri")
	f.SetCellValue("Sheet1", "B2", "Kaliurang, Sleman")
	f.SetCellValue("Sheet1", "C2", "4.7")
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("SaveAs: %v", err)
	}
	f.Close()

	records, err := readDataset(path, "")
	if err != nil {
		t.Fatalf("readDataset() error = %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("got %d records, want 1", len(records))
	}
	if records[0].Name != "Kemah Asri" || records[0].AvgRating != 4.7 {
		t.Errorf("record = %+v", records[0])
	}
}

func TestReadDataset_JSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dataset.json")
	content := `[
		{"name": "Kemah Asri", "location": "Sleman", "avg_rating": 4.5,
		 "price_items": [{"item": "Tiket", "harga": 10000.5}]},
		{"name": "Bukit Hijau", "location": "Bogor"}
	]`
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}

	records, err := readDataset(path, "")
	if err != nil {
		t.Fatalf("readDataset() error = %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("got %d records, want 2", len(records))
	}
	if !records[0].PriceItems[0].Harga.IsDecimal() {
		t.Error("decimal harga should keep its kind")
	}
}

func TestReadDataset_UnsupportedFormat(t *testing.T) {
	if _, err := readDataset("dataset.parquet", ""); err == nil {
		t.Error("expected an error for unsupported format")
	}
}

func TestBuildListing(t *testing.T) {
	idx := NewIndexer(testConfig(t.TempDir(), ""))

	rec := record{
		Name:        "Kemah Asri",
		Location:    "Kaliurang, Sleman, Yogyakarta",
		Description: "Tenda tepi danau",
		Facilities:  "Kolam Renang|WiFi",
	}
	listing := idx.buildListing(rec)

	if listing.ID == "" {
		t.Fatal("listing id should be derived")
	}
	again := idx.buildListing(rec)
	if listing.ID != again.ID {
		t.Errorf("derived ids differ: %s vs %s", listing.ID, again.ID)
	}

	other := rec
	other.Location = "Lembang, Bandung"
	if idx.buildListing(other).ID == listing.ID {
		t.Error("different locations should derive different ids")
	}

	wantRegions := []string{"kaliurang", "sleman", "yogyakarta"}
	if len(listing.Regions) != len(wantRegions) {
		t.Fatalf("regions = %v, want %v", listing.Regions, wantRegions)
	}
	for i, r := range wantRegions {
		if listing.Regions[i] != r {
			t.Errorf("regions[%d] = %s, want %s", i, listing.Regions[i], r)
		}
	}

	wantDoc := "Kemah Asri Kaliurang, Sleman, Yogyakarta Tenda tepi danau Kolam Renang|WiFi"
	if listing.Document != wantDoc {
		t.Errorf("document = %q, want %q", listing.Document, wantDoc)
	}
}

func TestBuildListing_KeepsExplicitID(t *testing.T) {
	idx := NewIndexer(testConfig(t.TempDir(), ""))
	listing := idx.buildListing(record{ID: "custom-7", Name: "Camp"})
	if listing.ID != "custom-7" {
		t.Errorf("id = %s, want custom-7", listing.ID)
	}
}

func TestBuildListing_AliasRegionCanonicalized(t *testing.T) {
	idx := NewIndexer(testConfig(t.TempDir(), ""))
	listing := idx.buildListing(record{Name: "Camp", Location: "Pinggiran Jogja"})
	if len(listing.Regions) != 1 || listing.Regions[0] != "yogyakarta" {
		t.Errorf("regions = %v, want [yogyakarta]", listing.Regions)
	}
}

func TestBuildListing_CollapsesDocumentWhitespace(t *testing.T) {
	idx := NewIndexer(testConfig(t.TempDir(), ""))
	listing := idx.buildListing(record{
		Name:        "Kemah  Asri",
		Location:    "Sleman,\nYogyakarta",
		Description: "Tenda tepi danau\r\ndengan  api unggun",
	})
	want := "Kemah Asri Sleman, Yogyakarta Tenda tepi danau dengan api unggun"
	if listing.Document != want {
		t.Errorf("document = %q, want %q", listing.Document, want)
	}
}

func TestPreprocess(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"   ", ""},
		{"kemah danau", "kemah danau"},
		{"  kemah   danau  ", "kemah danau"},
		{"baris satu\nbaris dua", "baris satu baris dua"},
		{"tab\there", "tab here"},
	}
	for _, tt := range tests {
		if got := Preprocess(tt.in); got != tt.want {
			t.Errorf("Preprocess(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestComputeVectors(t *testing.T) {
	listings := []*models.Listing{
		{ID: "a", Document: "kemah danau perahu"},
		{ID: "b", Document: "kemah danau tenda tenda"},
		{ID: "c", Document: "kemah sungai"},
	}
	text := analysis.New()

	vectors, docFreqs, err := ComputeVectors(listings, text, 1)
	if err != nil {
		t.Fatalf("ComputeVectors() error = %v", err)
	}

	wantDF := map[string]int{"kemah": 3, "danau": 2, "perahu": 1, "tenda": 1, "sungai": 1}
	for term, df := range wantDF {
		if docFreqs[term] != df {
			t.Errorf("df[%s] = %d, want %d", term, docFreqs[term], df)
		}
	}

	// kemah occurs everywhere: ln(3/3) = 0, pruned from vectors but kept
	// in the frequency table.
	if _, ok := vectors["a"]["kemah"]; ok {
		t.Error("zero-idf term should be pruned from vectors")
	}
	if w := vectors["b"]["tenda"]; math.Abs(w-2*math.Log(3)) > 1e-12 {
		t.Errorf("weight[b][tenda] = %v, want 2*ln(3)", w)
	}
	if w := vectors["a"]["danau"]; math.Abs(w-math.Log(1.5)) > 1e-12 {
		t.Errorf("weight[a][danau] = %v, want ln(1.5)", w)
	}
}

func TestComputeVectors_ParallelMatchesSequential(t *testing.T) {
	listings := []*models.Listing{
		{ID: "a", Document: "kemah danau perahu indah"},
		{ID: "b", Document: "kemah danau tenda keluarga"},
		{ID: "c", Document: "kemah sungai arung jeram"},
		{ID: "d", Document: "bukit kabut pagi tenda"},
	}
	text := analysis.New()

	seqVec, seqDF, err := ComputeVectors(listings, text, 1)
	if err != nil {
		t.Fatal(err)
	}
	parVec, parDF, err := ComputeVectors(listings, text, 4)
	if err != nil {
		t.Fatal(err)
	}

	if len(parDF) != len(seqDF) {
		t.Fatalf("df sizes differ: %d vs %d", len(parDF), len(seqDF))
	}
	for term, df := range seqDF {
		if parDF[term] != df {
			t.Errorf("df[%s] = %d, want %d", term, parDF[term], df)
		}
	}
	for id, vec := range seqVec {
		for term, w := range vec {
			if math.Abs(parVec[id][term]-w) > 1e-12 {
				t.Errorf("vector[%s][%s] = %v, want %v", id, term, parVec[id][term], w)
			}
		}
	}
}

func TestIndexer_Build(t *testing.T) {
	dir := t.TempDir()
	dataset := filepath.Join(dir, "dataset.csv")
	writeCSV(t, dataset, [][]string{
		{"name", "location", "rating", "facilities", "price_items", "description"},
		{"Kemah Asri", "Kaliurang, Sleman, Yogyakarta", "4.6", "Kolam Renang|WiFi",
			`[{"item":"Tiket Masuk","harga":15000}]`, "Tenda tepi danau"},
		{"Bukit Hijau", "Lembang, Bandung", "4.2", "WiFi", "", "Bukit berkabut"},
		{"", "Tanpa Nama", "", "", "", ""},
		{"Kemah Asri", "Kaliurang, Sleman, Yogyakarta", "4.6", "", "", "Duplikat"},
	})
	cfg := testConfig(dir, dataset)

	stats, err := NewIndexer(cfg).Build(context.Background())
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if stats.Listings != 2 {
		t.Errorf("Listings = %d, want 2", stats.Listings)
	}
	if stats.Skipped != 2 {
		t.Errorf("Skipped = %d, want 2 (empty name and duplicate)", stats.Skipped)
	}
	if stats.Regions == 0 || stats.Vocabulary == 0 {
		t.Errorf("stats counters empty: %+v", stats)
	}

	bundle, err := storage.LoadBundle(context.Background(), cfg.Bundle.Path)
	if err != nil {
		t.Fatalf("LoadBundle() error = %v", err)
	}
	if len(bundle.Listings) != 2 {
		t.Fatalf("bundle has %d listings, want 2", len(bundle.Listings))
	}

	fp, err := analysis.ParseFingerprint(bundle.Info.AnalyzerFingerprint)
	if err != nil {
		t.Fatalf("ParseFingerprint() error = %v", err)
	}
	if !fp.Equal(analysis.New().Fingerprint()) {
		t.Error("bundle fingerprint should match the current analysis pipeline")
	}

	for _, l := range bundle.Listings {
		if vec := bundle.Vectors[l.ID]; len(vec) == 0 {
			t.Errorf("listing %s has an empty vector", l.ID)
		}
	}
}

func TestIndexer_Build_Deterministic(t *testing.T) {
	dir := t.TempDir()
	dataset := filepath.Join(dir, "dataset.csv")
	writeCSV(t, dataset, [][]string{
		{"name", "location"},
		{"Kemah Asri", "Sleman"},
		{"Bukit Hijau", "Bogor"},
	})
	cfg := testConfig(dir, dataset)
	idx := NewIndexer(cfg)

	if _, err := idx.Build(context.Background()); err != nil {
		t.Fatal(err)
	}
	first, err := storage.LoadBundle(context.Background(), cfg.Bundle.Path)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := idx.Build(context.Background()); err != nil {
		t.Fatal(err)
	}
	second, err := storage.LoadBundle(context.Background(), cfg.Bundle.Path)
	if err != nil {
		t.Fatal(err)
	}

	if len(first.Listings) != len(second.Listings) {
		t.Fatal("rebuild changed the listing count")
	}
	for i := range first.Listings {
		if first.Listings[i].ID != second.Listings[i].ID {
			t.Errorf("rebuild changed listing id %d: %s vs %s",
				i, first.Listings[i].ID, second.Listings[i].ID)
		}
	}
}

func TestIndexer_Build_NoDataset(t *testing.T) {
	cfg := testConfig(t.TempDir(), "")
	if _, err := NewIndexer(cfg).Build(context.Background()); err == nil {
		t.Error("expected an error when no dataset is configured")
	}
}

func TestIndexer_Build_MissingDatasetFile(t *testing.T) {
	dir := t.TempDir()
	cfg := testConfig(dir, filepath.Join(dir, "missing.csv"))
	if _, err := NewIndexer(cfg).Build(context.Background()); err == nil {
		t.Error("expected an error when the dataset file is absent")
	}
}
