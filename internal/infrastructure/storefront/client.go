// Package storefront retrieves candidate products from grocery storefronts.
// Live retrieval is best effort; every failure degrades to the source's
// static fallback catalog.
package storefront

import (
	"context"
	"time"

	"github.com/gocolly/colly/v2"
	"github.com/grocerlens/backend/internal/domain"
	"github.com/rotisserie/eris"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

// DefaultUserAgent is a browser-like identity that avoids trivial bot blocking
const DefaultUserAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 Chrome/124.0 Safari/537.36"

// ClientConfig holds the retrieval settings shared by all sources
type ClientConfig struct {
	UserAgent string
	Timeout   time.Duration
	// PerSourceRate is the outbound request rate per source, in requests per second.
	// Zero disables limiting.
	PerSourceRate  float64
	PerSourceBurst int
}

// Client implements domain.SourceFetcher on top of a colly collector
type Client struct {
	collector *colly.Collector
	extractor domain.RawExtractor
	fallback  domain.FallbackProvider
	limiters  map[string]*rate.Limiter
	timeout   time.Duration
	logger    *logrus.Logger
}

// NewClient creates a storefront client. The limiter table is built once from
// sources and only read afterwards.
func NewClient(
	sources []domain.Source,
	fallback domain.FallbackProvider,
	extractor domain.RawExtractor,
	config ClientConfig,
	logger *logrus.Logger,
) *Client {
	userAgent := config.UserAgent
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}

	timeout := config.Timeout
	if timeout <= 0 {
		timeout = 3500 * time.Millisecond
	}

	c := colly.NewCollector(
		colly.UserAgent(userAgent),
		colly.AllowURLRevisit(),
	)
	c.SetRequestTimeout(timeout)

	limiters := make(map[string]*rate.Limiter, len(sources))
	if config.PerSourceRate > 0 {
		burst := config.PerSourceBurst
		if burst <= 0 {
			burst = 1
		}
		for _, s := range sources {
			limiters[s.ID] = rate.NewLimiter(rate.Limit(config.PerSourceRate), burst)
		}
	}

	if extractor == nil {
		extractor = NewRegexExtractor(DefaultMaxMatches, DefaultMinNameLength)
	}
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	return &Client{
		collector: c,
		extractor: extractor,
		fallback:  fallback,
		limiters:  limiters,
		timeout:   timeout,
		logger:    logger,
	}
}

// Fetch returns live candidates for query, or the source's fallback catalog
// when retrieval fails or nothing usable was extracted. It never fails.
func (c *Client) Fetch(ctx context.Context, source domain.Source, query string) []domain.RawItem {
	log := c.logger.WithFields(logrus.Fields{
		"source": source.ID,
		"query":  query,
	})

	start := time.Now()
	items, err := c.fetchLive(ctx, source, query)
	if err != nil {
		log.WithFields(logrus.Fields{
			"reason":  err.Error(),
			"elapsed": time.Since(start).String(),
		}).Debug("Live retrieval unavailable, using fallback catalog")
		return c.fallback.Fallback(source.ID)
	}

	log.WithFields(logrus.Fields{
		"items":   len(items),
		"elapsed": time.Since(start).String(),
	}).Debug("Live retrieval succeeded")
	return items
}

// fetchLive performs one bounded retrieval and extraction
func (c *Client) fetchLive(ctx context.Context, source domain.Source, query string) ([]domain.RawItem, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	if limiter := c.limiters[source.ID]; limiter != nil {
		if err := limiter.Wait(ctx); err != nil {
			return nil, eris.Wrapf(domain.ErrRateLimited, "source %s: %v", source.ID, err)
		}
	}

	if err := ctx.Err(); err != nil {
		return nil, eris.Wrapf(domain.ErrRetrievalFailed, "source %s: %v", source.ID, err)
	}

	body, err := c.retrieve(source.SearchURL(query))
	if err != nil {
		return nil, eris.Wrapf(domain.ErrRetrievalFailed, "source %s: %v", source.ID, err)
	}

	items := c.extractor.Extract(body)
	if len(items) == 0 {
		return nil, eris.Wrapf(domain.ErrExtractionMiss, "source %s", source.ID)
	}

	return items, nil
}

// retrieve GETs target and returns the raw body. Each call uses its own
// clone of the collector so concurrent fetches never share callbacks.
func (c *Client) retrieve(target string) ([]byte, error) {
	collector := c.collector.Clone()

	var body []byte
	collector.OnResponse(func(r *colly.Response) {
		body = r.Body
	})

	if err := collector.Visit(target); err != nil {
		return nil, err
	}

	return body, nil
}
