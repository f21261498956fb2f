package usecase

import (
	"fmt"
	"strings"

	"github.com/grocerlens/backend/internal/domain"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const summarySeparator = " | "

// BuildSummary renders a per-source average price comparison over the
// accepted products, one fragment per source in source order. Unknown
// prices are excluded from the average rather than counted as zero.
func BuildSummary(sources []domain.Source, products []domain.ScoredProduct, currency string) string {
	type tally struct {
		sum   float64
		count int
	}

	totals := make(map[string]*tally, len(sources))
	for _, s := range sources {
		totals[s.ID] = &tally{}
	}

	for _, p := range products {
		t, ok := totals[p.Source]
		if !ok || !p.HasPrice() {
			continue
		}
		t.sum += *p.Price
		t.count++
	}

	// Casers are stateful and must not be shared across goroutines
	caser := cases.Title(language.English)

	parts := make([]string, 0, len(sources))
	for _, s := range sources {
		title := s.Title
		if title == "" {
			title = caser.String(s.ID)
		}

		t := totals[s.ID]
		if t.count == 0 {
			parts = append(parts, fmt.Sprintf("%s: no price data", title))
			continue
		}
		parts = append(parts, fmt.Sprintf("%s: avg %s%.1f", title, currency, t.sum/float64(t.count)))
	}

	return strings.Join(parts, summarySeparator)
}
