package e2e

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// DatasetExtensions lists the dataset formats the indexer reads. E2E runs
// the same corpus through every one of them.
var DatasetExtensions = []string{".csv", ".xlsx", ".json"}

var datasetHeader = []string{"id", "name", "location", "rating", "facilities", "price_items", "description"}

// WriteDataset writes the corpus listings to path in the format implied by
// its extension.
func WriteDataset(path string, listings []CorpusListing) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return writeCSVDataset(path, listings)
	case ".xlsx":
		return writeExcelDataset(path, listings)
	case ".json":
		return writeJSONDataset(path, listings)
	default:
		return fmt.Errorf("unsupported dataset extension: %s", path)
	}
}

func writeCSVDataset(path string, listings []CorpusListing) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	rows := [][]string{datasetHeader}
	for _, l := range listings {
		rows = append(rows, []string{
			l.ID,
			l.Name,
			l.Location,
			strconv.FormatFloat(l.Rating, 'f', -1, 64),
			l.Facilities,
			l.PriceItems,
			l.Description,
		})
	}
	if err := w.WriteAll(rows); err != nil {
		return err
	}
	return w.Error()
}

func writeExcelDataset(path string, listings []CorpusListing) error {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Sheet1"
	for col, name := range datasetHeader {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, name); err != nil {
			return err
		}
	}
	for row, l := range listings {
		values := []any{l.ID, l.Name, l.Location, l.Rating, l.Facilities, l.PriceItems, l.Description}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return err
			}
		}
	}
	return f.SaveAs(path)
}

func writeJSONDataset(path string, listings []CorpusListing) error {
	type row struct {
		ID          string          `json:"id,omitempty"`
		Name        string          `json:"name"`
		Location    string          `json:"location"`
		Rating      float64         `json:"avg_rating"`
		Facilities  string          `json:"facilities,omitempty"`
		PriceItems  json.RawMessage `json:"price_items,omitempty"`
		Description string          `json:"description,omitempty"`
	}

	rows := make([]row, 0, len(listings))
	for _, l := range listings {
		r := row{
			ID:          l.ID,
			Name:        l.Name,
			Location:    l.Location,
			Rating:      l.Rating,
			Facilities:  l.Facilities,
			Description: l.Description,
		}
		if l.PriceItems != "" {
			r.PriceItems = json.RawMessage(l.PriceItems)
		}
		rows = append(rows, r)
	}

	data, err := json.MarshalIndent(rows, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
