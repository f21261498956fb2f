package usecase

import "strings"

// RelevanceScorer measures how much of a query a candidate name covers
type RelevanceScorer struct{}

// NewRelevanceScorer creates a scorer
func NewRelevanceScorer() *RelevanceScorer {
	return &RelevanceScorer{}
}

// Score returns the fraction of distinct query tokens present in the
// candidate name, in [0,1]. Extra candidate tokens are not penalized.
func (s *RelevanceScorer) Score(query, candidate string) float64 {
	queryTokens := tokenSet(strings.Fields(strings.ToLower(query)))
	candidateTokens := tokenSet(normalizeTokens(candidate))

	if len(queryTokens) == 0 || len(candidateTokens) == 0 {
		return 0
	}

	overlap := findIntersection(queryTokens, candidateTokens)
	return float64(overlap) / float64(len(queryTokens))
}

// tokenSet collapses duplicate tokens
func tokenSet(tokens []string) map[string]struct{} {
	set := make(map[string]struct{}, len(tokens))
	for _, t := range tokens {
		set[t] = struct{}{}
	}
	return set
}

// findIntersection returns the number of tokens in both sets
func findIntersection(a, b map[string]struct{}) int {
	count := 0
	for t := range a {
		if _, ok := b[t]; ok {
			count++
		}
	}
	return count
}
