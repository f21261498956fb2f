package domain

import (
	"net/url"
	"strings"
)

// DefaultSearchPath is appended to a source's base URL ahead of the escaped query
const DefaultSearchPath = "/search?query="

// Source is one configured storefront
type Source struct {
	ID         string `yaml:"id"`
	Title      string `yaml:"title,omitempty"`
	BaseURL    string `yaml:"base_url"`
	SearchPath string `yaml:"search_path,omitempty"`
}

// SearchURL builds the retrieval URL for query. The same URL is used as the
// user-facing deep link.
func (s Source) SearchURL(query string) string {
	path := s.SearchPath
	if path == "" {
		path = DefaultSearchPath
	}
	return strings.TrimRight(s.BaseURL, "/") + path + EscapeQuery(query)
}

// EscapeQuery escapes a query for use as a URL query value, encoding spaces as %20
func EscapeQuery(query string) string {
	return strings.ReplaceAll(url.QueryEscape(query), "+", "%20")
}
