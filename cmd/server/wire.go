package main

import (
	"fmt"

	"github.com/grocerlens/backend/config"
	"github.com/grocerlens/backend/internal/infrastructure/catalog"
	"github.com/grocerlens/backend/internal/infrastructure/storefront"
	"github.com/grocerlens/backend/internal/usecase"
	"github.com/sirupsen/logrus"
)

// buildSearchService assembles the search pipeline from configuration
func buildSearchService(cfg *config.Config, logger *logrus.Logger) (*usecase.SearchService, error) {
	cat, err := catalog.Load(cfg.Search.CatalogFile)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}

	sources := cat.Sources()

	client := storefront.NewClient(
		sources,
		cat,
		storefront.NewRegexExtractor(cfg.Search.MaxExtracted, cfg.Search.MinNameLength),
		storefront.ClientConfig{
			UserAgent:      cfg.Search.UserAgent,
			Timeout:        cfg.Search.FetchTimeout,
			PerSourceRate:  cfg.RateLimit.PerSource,
			PerSourceBurst: cfg.RateLimit.PerSourceBurst,
		},
		logger,
	)

	ids := make([]string, 0, len(sources))
	for _, s := range sources {
		ids = append(ids, s.ID)
	}
	logger.WithFields(logrus.Fields{
		"sources":   ids,
		"threshold": cfg.Search.ScoreThreshold,
		"timeout":   cfg.Search.FetchTimeout.String(),
	}).Info("Search pipeline configured")

	return usecase.NewSearchService(
		sources,
		usecase.NewPromptInterpreter(cat.StopWords(), logger),
		client,
		usecase.SearchServiceConfig{
			ScoreThreshold: cfg.Search.ScoreThreshold,
			Currency:       cfg.Search.Currency,
		},
		logger,
	), nil
}
