package usecase

import (
	"context"
	"math"
	"sort"
	"time"

	"github.com/grocerlens/backend/internal/domain"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// DefaultScoreThreshold is the minimum relevance for a candidate to be kept
const DefaultScoreThreshold = 0.18

// DefaultCurrency prefixes averages in the price summary
const DefaultCurrency = "₹"

// unknownProductName replaces a missing candidate name
const unknownProductName = "Unknown product"

// SearchServiceConfig holds configuration for the search service
type SearchServiceConfig struct {
	ScoreThreshold float64
	Currency       string
}

// SearchService runs the search pipeline: interpret the prompt, fetch every
// source concurrently, score and filter candidates, rank and summarize.
// It holds no per-call state and is safe for concurrent use.
type SearchService struct {
	sources     []domain.Source
	interpreter *PromptInterpreter
	fetcher     domain.SourceFetcher
	scorer      *RelevanceScorer
	threshold   float64
	currency    string
	logger      *logrus.Logger
}

// NewSearchService creates a search service over the given sources, queried
// in order
func NewSearchService(
	sources []domain.Source,
	interpreter *PromptInterpreter,
	fetcher domain.SourceFetcher,
	config SearchServiceConfig,
	logger *logrus.Logger,
) *SearchService {
	threshold := config.ScoreThreshold
	if threshold <= 0 {
		threshold = DefaultScoreThreshold
	}

	currency := config.Currency
	if currency == "" {
		currency = DefaultCurrency
	}

	if logger == nil {
		logger = logrus.StandardLogger()
	}

	return &SearchService{
		sources:     append([]domain.Source(nil), sources...),
		interpreter: interpreter,
		fetcher:     fetcher,
		scorer:      NewRelevanceScorer(),
		threshold:   threshold,
		currency:    currency,
		logger:      logger,
	}
}

// Search returns the ranked cross-source product list for prompt. It never
// fails; sources that cannot be reached contribute their fallback catalogs.
func (s *SearchService) Search(ctx context.Context, prompt string) *domain.SearchResponse {
	start := time.Now()
	query := s.interpreter.Parse(prompt)

	perSource := s.fetchAll(ctx, query)

	products := make([]domain.ScoredProduct, 0)
	for i, source := range s.sources {
		for _, item := range perSource[i] {
			score := s.scorer.Score(query, item.Name)

			if s.logger.IsLevelEnabled(logrus.DebugLevel) {
				s.logger.WithFields(logrus.Fields{
					"source":    source.ID,
					"candidate": item.Name,
					"score":     score,
				}).Debug("Candidate scored")
			}

			if score < s.threshold {
				continue
			}
			products = append(products, newScoredProduct(item, source, query, score))
		}
	}

	rankProducts(products)

	response := &domain.SearchResponse{
		Prompt:  prompt,
		Query:   query,
		Total:   len(products),
		Summary: BuildSummary(s.sources, products, s.currency),
		Results: products,
	}

	s.logger.WithFields(logrus.Fields{
		"query":   query,
		"total":   response.Total,
		"sources": len(s.sources),
		"elapsed": time.Since(start).String(),
	}).Info("Search completed")

	return response
}

// fetchAll queries every source concurrently and gathers the results in
// source order. Fetches never fail, so the group never cancels siblings.
func (s *SearchService) fetchAll(ctx context.Context, query string) [][]domain.RawItem {
	results := make([][]domain.RawItem, len(s.sources))

	var g errgroup.Group
	for i, source := range s.sources {
		i, source := i, source
		g.Go(func() error {
			results[i] = s.fetcher.Fetch(ctx, source, query)
			return nil
		})
	}
	_ = g.Wait()

	return results
}

// newScoredProduct builds the accepted form of a candidate
func newScoredProduct(item domain.RawItem, source domain.Source, query string, score float64) domain.ScoredProduct {
	name := item.Name
	if name == "" {
		name = unknownProductName
	}

	var price *float64
	if item.Price != nil {
		price = domain.PriceOf(*item.Price)
	}

	return domain.ScoredProduct{
		Name:   name,
		Price:  price,
		Unit:   item.Unit,
		Image:  item.Image,
		Source: source.ID,
		Score:  roundScore(score),
		Link:   source.SearchURL(query),
	}
}

// roundScore rounds to three decimal places
func roundScore(score float64) float64 {
	return math.Round(score*1000) / 1000
}

// rankProducts orders products cheapest first, unknown prices last, and by
// descending score among equal prices. Full ties keep source order.
func rankProducts(products []domain.ScoredProduct) {
	sort.SliceStable(products, func(i, j int) bool {
		pi, pj := sortPrice(products[i]), sortPrice(products[j])
		if pi != pj {
			return pi < pj
		}
		return products[i].Score > products[j].Score
	})
}

// sortPrice maps an unknown price above every known price
func sortPrice(p domain.ScoredProduct) float64 {
	if !p.HasPrice() {
		return math.Inf(1)
	}
	return *p.Price
}
