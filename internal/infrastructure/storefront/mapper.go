package storefront

import (
	"strings"
	"unicode/utf8"

	"github.com/grocerlens/backend/internal/domain"
)

// mapExtractedNames converts raw name matches into name-only RawItems,
// dropping noise shorter than minLength runes
func mapExtractedNames(names []string, minLength int) []domain.RawItem {
	var items []domain.RawItem

	for _, raw := range names {
		name := strings.ToValidUTF8(raw, "")
		if utf8.RuneCountInString(name) < minLength {
			continue
		}
		items = append(items, mapToRawItem(name))
	}

	return items
}

// mapToRawItem builds a RawItem that carries only a name
func mapToRawItem(name string) domain.RawItem {
	return domain.RawItem{
		Name:  name,
		Price: nil,
		Unit:  "",
		Image: "",
	}
}
