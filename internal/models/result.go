package models

// SearchResult is one retrieved listing shaped for the caller. Field names
// follow the record contract of the consumed dataset: top_vsm_score is the
// listing's cosine similarity against the query, harga values inside
// price_items keep their source numeric kind.
type SearchResult struct {
	Name       string      `json:"name"`
	Location   string      `json:"location"`
	AvgRating  float64     `json:"avg_rating"`
	TopScore   float64     `json:"top_vsm_score"`
	PhotoURL   string      `json:"photo_url"`
	GmapsLink  string      `json:"gmaps_link"`
	PriceItems []PriceItem `json:"price_items"`
	Facilities string      `json:"facilities"`
}

// SearchResponse is the response for one search request.
type SearchResponse struct {
	Results   []*SearchResult `json:"results"`
	Total     int             `json:"total"`
	Query     AnalyzedQuery   `json:"query"`
	QueryTime int64           `json:"query_time_ms"`
}
