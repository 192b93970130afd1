// Package cli renders search responses for the kemari command line.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/rimbakita/kemari/internal/models"
	"github.com/rimbakita/kemari/pkg/utils"
)

// SearchOutputFormat is the format for search result output.
type SearchOutputFormat string

const (
	// OutputText is human-readable text (default).
	OutputText SearchOutputFormat = "text"
	// OutputJSON is structured JSON for machine consumption.
	OutputJSON SearchOutputFormat = "json"
)

// WriteSearchResults writes a search response to w in the given format.
// Use OutputJSON for parseable output consumable by other apps.
func WriteSearchResults(w io.Writer, response *models.SearchResponse, format SearchOutputFormat) error {
	switch format {
	case OutputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(response)
	default:
		writeSearchResultsText(w, response)
		return nil
	}
}

func writeSearchResultsText(w io.Writer, response *models.SearchResponse) {
	var notes []string
	if response.Query.Intent != models.IntentNone {
		notes = append(notes, "intent: "+string(response.Query.Intent))
	}
	if response.Query.Region != "" {
		notes = append(notes, "region: "+response.Query.Region)
	}
	suffix := ""
	if len(notes) > 0 {
		suffix = " (" + strings.Join(notes, ", ") + ")"
	}
	fmt.Fprintf(w, "\nFound %d results in %dms%s\n\n", response.Total, response.QueryTime, suffix)

	if len(response.Results) == 0 {
		fmt.Fprintln(w, "No listings matched.")
		return
	}
	if response.Total > len(response.Results) {
		fmt.Fprintf(w, "Showing the first %d:\n\n", len(response.Results))
	}
	for i, result := range response.Results {
		writeOneResult(w, i+1, result)
	}
}

func writeOneResult(w io.Writer, rank int, result *models.SearchResult) {
	fmt.Fprintf(w, "─────────────────────────────────────────────────────────\n")
	fmt.Fprintf(w, "Rank: %d | Score: %.4f\n", rank, result.TopScore)
	fmt.Fprintf(w, "%s\n", result.Name)
	if result.Location != "" {
		fmt.Fprintf(w, "Location: %s\n", result.Location)
	}
	if result.AvgRating > 0 {
		fmt.Fprintf(w, "Rating: %.1f\n", result.AvgRating)
	}
	if amount, ok := minPrice(result.PriceItems); ok {
		fmt.Fprintf(w, "From: Rp%s\n", amount.String())
	}
	if result.Facilities != "" {
		fmt.Fprintf(w, "Facilities: %s\n", utils.Truncate(result.Facilities, 120))
	}
	if result.GmapsLink != "" {
		fmt.Fprintf(w, "Maps: %s\n", result.GmapsLink)
	}
	fmt.Fprintln(w)
}

// minPrice returns the smallest amount across the price items.
func minPrice(items []models.PriceItem) (models.PriceAmount, bool) {
	var min models.PriceAmount
	found := false
	for _, item := range items {
		if !found || item.Harga.Float64() < min.Float64() {
			min = item.Harga
			found = true
		}
	}
	return min, found
}
