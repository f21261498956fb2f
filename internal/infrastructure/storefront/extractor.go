package storefront

import (
	"regexp"

	"github.com/grocerlens/backend/internal/domain"
)

// Defaults for the regex extractor
const (
	DefaultMaxMatches    = 10
	DefaultMinNameLength = 4
)

// nameFieldPattern matches a quoted "name" key followed by a quoted string value,
// as found in JSON blobs embedded in storefront search pages.
var nameFieldPattern = regexp.MustCompile(`"name"\s*:\s*"([^"]+)"`)

// RegexExtractor is a best-effort domain.RawExtractor that scans a raw body
// for embedded name fields. Only names are recovered; price, unit and image
// stay unknown.
type RegexExtractor struct {
	maxMatches    int
	minNameLength int
}

// NewRegexExtractor creates an extractor that considers at most maxMatches
// matches and drops names shorter than minNameLength characters
func NewRegexExtractor(maxMatches, minNameLength int) *RegexExtractor {
	if maxMatches <= 0 {
		maxMatches = DefaultMaxMatches
	}
	if minNameLength < 0 {
		minNameLength = DefaultMinNameLength
	}
	return &RegexExtractor{
		maxMatches:    maxMatches,
		minNameLength: minNameLength,
	}
}

// Extract returns one RawItem per surviving name match. The match cap is
// applied before the length filter.
func (e *RegexExtractor) Extract(body []byte) []domain.RawItem {
	if len(body) == 0 {
		return nil
	}

	matches := nameFieldPattern.FindAllSubmatch(body, e.maxMatches)
	names := make([]string, 0, len(matches))
	for _, m := range matches {
		names = append(names, string(m[1]))
	}

	return mapExtractedNames(names, e.minNameLength)
}
