package domain

// RawItem is a candidate product as reported by a storefront, either
// extracted from a live response or taken from the fallback catalog.
type RawItem struct {
	Name  string   `json:"name" yaml:"name"`
	Price *float64 `json:"price" yaml:"price"` // nil when the storefront did not report one
	Unit  string   `json:"unit" yaml:"unit"`
	Image string   `json:"image" yaml:"image"`
}

// ScoredProduct is a RawItem accepted by the relevance filter and tagged
// with its source and deep link
type ScoredProduct struct {
	Name   string   `json:"name"`
	Price  *float64 `json:"price"`
	Unit   string   `json:"unit"`
	Image  string   `json:"image"`
	Source string   `json:"source"`
	Score  float64  `json:"score"`
	Link   string   `json:"link"`
}

// HasPrice reports whether the product carries a known price
func (p ScoredProduct) HasPrice() bool {
	return p.Price != nil
}

// SearchRequest is the body accepted by the search endpoint
type SearchRequest struct {
	Prompt string `json:"prompt"`
}

// SearchResponse is the aggregated, ranked result of one search call
type SearchResponse struct {
	Prompt  string          `json:"prompt"`
	Query   string          `json:"query"`
	Total   int             `json:"total"`
	Summary string          `json:"summary"`
	Results []ScoredProduct `json:"results"`
}

// PriceOf returns a pointer to v, for building catalog entries in code
func PriceOf(v float64) *float64 {
	return &v
}
