// Package models defines core data structures for listings, queries, and search results.
package models

import "strings"

// FacilityDelimiter separates facility names inside the pipe-joined
// facilities string, e.g. "Kolam Renang|WiFi|Toilet".
const FacilityDelimiter = "|"

// Listing represents one campground record. Listings are immutable once the
// corpus is loaded; search requests only read them.
type Listing struct {
	ID         string      `json:"id"`
	Name       string      `json:"name"`
	Location   string      `json:"location"`
	Regions    []string    `json:"regions,omitempty"`
	AvgRating  float64     `json:"avg_rating"`
	PriceItems []PriceItem `json:"price_items,omitempty"`
	Facilities string      `json:"facilities,omitempty"`
	PhotoURL   string      `json:"photo_url,omitempty"`
	GmapsLink  string      `json:"gmaps_link,omitempty"`
	Document   string      `json:"document,omitempty"`
}

// PriceItem is one labeled price entry, e.g. {"item": "Tiket Masuk", "harga": 20000}.
// Field names follow the dataset contract consumed by downstream clients.
type PriceItem struct {
	Item  string      `json:"item"`
	Harga PriceAmount `json:"harga"`
}

// FacilityList splits the pipe-joined facilities string into trimmed names.
// Empty segments are dropped.
func (l *Listing) FacilityList() []string {
	if l.Facilities == "" {
		return nil
	}
	parts := strings.Split(l.Facilities, FacilityDelimiter)
	names := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			names = append(names, p)
		}
	}
	return names
}

// HasRegion reports whether the listing carries the given canonical region tag.
func (l *Listing) HasRegion(region string) bool {
	for _, r := range l.Regions {
		if r == region {
			return true
		}
	}
	return false
}

// MinPrice returns the smallest amount across the listing's price items.
// ok is false when the listing has no price items.
func (l *Listing) MinPrice() (amount float64, ok bool) {
	for i, p := range l.PriceItems {
		v := p.Harga.Float64()
		if i == 0 || v < amount {
			amount = v
		}
		ok = true
	}
	return amount, ok
}

// Result shapes the listing into a SearchResult carrying the given score.
func (l *Listing) Result(score float64) *SearchResult {
	items := l.PriceItems
	if items == nil {
		items = []PriceItem{}
	}
	return &SearchResult{
		Name:       l.Name,
		Location:   l.Location,
		AvgRating:  l.AvgRating,
		TopScore:   score,
		PhotoURL:   l.PhotoURL,
		GmapsLink:  l.GmapsLink,
		PriceItems: items,
		Facilities: l.Facilities,
	}
}
