package domain

import "context"

// SourceFetcher returns candidate items for a query from one storefront.
// Implementations never fail: any retrieval problem degrades to the
// source's fallback catalog.
type SourceFetcher interface {
	Fetch(ctx context.Context, source Source, query string) []RawItem
}

// RawExtractor pulls candidate items out of a raw storefront response body
type RawExtractor interface {
	Extract(body []byte) []RawItem
}

// FallbackProvider supplies the static catalog for a source
type FallbackProvider interface {
	Fallback(sourceID string) []RawItem
}
