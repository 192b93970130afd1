package indexer

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/rimbakita/kemari/internal/models"
)

// record is one dataset row before normalization into a Listing.
type record struct {
	ID          string             `json:"id"`
	Name        string             `json:"name"`
	Location    string             `json:"location"`
	AvgRating   float64            `json:"avg_rating"`
	PriceItems  []models.PriceItem `json:"price_items"`
	Facilities  string             `json:"facilities"`
	PhotoURL    string             `json:"photo_url"`
	GmapsLink   string             `json:"gmaps_link"`
	Description string             `json:"description"`
}

// columnAliases maps accepted header spellings to canonical column names.
// Indonesian dataset exports use the local spellings.
var columnAliases = map[string]string{
	"id":          "id",
	"name":        "name",
	"nama":        "name",
	"location":    "location",
	"lokasi":      "location",
	"alamat":      "location",
	"rating":      "rating",
	"avg_rating":  "rating",
	"price_items": "price_items",
	"facilities":  "facilities",
	"fasilitas":   "facilities",
	"photo_url":   "photo",
	"photo":       "photo",
	"foto":        "photo",
	"gmaps_link":  "gmaps",
	"gmaps":       "gmaps",
	"maps_link":   "gmaps",
	"description": "description",
	"deskripsi":   "description",
}

// readDataset loads records from path, dispatching on the file extension.
// sheet selects the worksheet for .xlsx files; empty means the first.
func readDataset(path, sheet string) ([]record, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		return readExcelDataset(path, sheet)
	case ".csv":
		return readCSVDataset(path)
	case ".json":
		return readJSONDataset(path)
	default:
		return nil, fmt.Errorf("unsupported dataset format %q", filepath.Ext(path))
	}
}

func readExcelDataset(path, sheet string) ([]record, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset: %w", err)
	}
	defer f.Close()

	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("dataset %s has no sheets", path)
		}
		sheet = sheets[0]
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
	}
	return rowsToRecords(rows)
}

func readCSVDataset(path string) ([]record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse csv: %w", err)
	}
	return rowsToRecords(rows)
}

func readJSONDataset(path string) ([]record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset: %w", err)
	}
	var records []record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to parse json dataset: %w", err)
	}
	return records, nil
}

// rowsToRecords converts tabular rows (header first) into records. Column
// order is free; headers are matched through columnAliases. Rows whose cells
// fail to parse are reported with their 1-based row number.
func rowsToRecords(rows [][]string) ([]record, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("dataset is empty")
	}

	cols := make(map[string]int)
	for i, header := range rows[0] {
		canonical, ok := columnAliases[strings.ToLower(strings.TrimSpace(header))]
		if !ok {
			continue
		}
		if _, dup := cols[canonical]; !dup {
			cols[canonical] = i
		}
	}
	if _, ok := cols["name"]; !ok {
		return nil, fmt.Errorf("dataset has no name column")
	}

	cell := func(row []string, col string) string {
		i, ok := cols[col]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	records := make([]record, 0, len(rows)-1)
	for n, row := range rows[1:] {
		rec := record{
			ID:          cell(row, "id"),
			Name:        cell(row, "name"),
			Location:    cell(row, "location"),
			Facilities:  cell(row, "facilities"),
			PhotoURL:    cell(row, "photo"),
			GmapsLink:   cell(row, "gmaps"),
			Description: cell(row, "description"),
		}

		if raw := cell(row, "rating"); raw != "" {
			rating, err := strconv.ParseFloat(strings.ReplaceAll(raw, ",", "."), 64)
			if err != nil {
				return nil, fmt.Errorf("row %d: bad rating %q", n+2, raw)
			}
			rec.AvgRating = rating
		}
		if raw := cell(row, "price_items"); raw != "" {
			if err := json.Unmarshal([]byte(raw), &rec.PriceItems); err != nil {
				return nil, fmt.Errorf("row %d: bad price_items: %v", n+2, err)
			}
		}
		records = append(records, rec)
	}
	return records, nil
}
