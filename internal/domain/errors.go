package domain

import "errors"

var (
	// ErrEmptyPrompt is returned when the prompt is empty after trimming
	ErrEmptyPrompt = errors.New("prompt is required")

	// ErrRetrievalFailed wraps any failure of a live storefront fetch
	ErrRetrievalFailed = errors.New("storefront retrieval failed")

	// ErrExtractionMiss is returned when a live response yielded no candidates
	ErrExtractionMiss = errors.New("no candidates extracted from storefront response")

	// ErrRateLimited is returned when a rate limit is exceeded
	ErrRateLimited = errors.New("rate limit exceeded")

	// ErrInvalidCatalog is returned when a catalog document fails validation
	ErrInvalidCatalog = errors.New("invalid catalog")
)
